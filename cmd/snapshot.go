package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/bridgegen/pkg/action/snapshot"
	"github.com/cmmoran/bridgegen/pkg/converter"
)

func init() {
	var snapshotCmd = NewSnapshotCommand()
	rootCmd.AddCommand(snapshotCmd)
}

func NewSnapshotCommand() *cobra.Command {
	var (
		options          = converter.NewOptions()
		valueTypeStrings = make([]string, 0)
		manifestPath     string
		artifactName     string
		artifactVersion  string
	)

	// snapshotCmd represents the bridgegen snapshot command
	var snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "manage bridge snapshots",
		Long:  "Record, list and diff versioned bridge previews",
	}
	snapshotCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "bridge/manifest.yaml", "manifest file tracking snapshots")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a versioned snapshot",
		RunE: func(c *cobra.Command, args []string) error {
			_, err := snapshot.Generate(options, manifestPath, artifactName, artifactVersion)
			return err
		},
	}
	generateCmd.Flags().StringVarP(&options.Input, "input", "i", "", "raw module description to convert (JSON)")
	generateCmd.Flags().StringVarP(&options.OutDir, "output-directory", "o", "bridge", "directory to write the preview")
	generateCmd.Flags().StringVarP(&options.OutFile, "output-file", "f", "bridge_gen.go", "output file where the preview will be written")
	generateCmd.Flags().StringVarP(&options.Package, "package", "p", "bridge", "import path of the bridge package")
	generateCmd.Flags().StringSliceVarP(&options.Includes, "include", "I", []string{}, "header(s) every generated bridge includes")
	generateCmd.Flags().StringVar(&options.ExtraInclude, "extra-include", "", "additional header appended after --include")
	generateCmd.Flags().StringSliceVarP(&valueTypeStrings, "value-types", "t", []string{}, "type name(s) requested to pass by value, ex: ns::Point")
	generateCmd.Flags().BoolVar(&options.Legacy, "legacy", false, "suppress extern declarations for by-value structs")
	generateCmd.Flags().StringVarP(&artifactName, "name", "n", "bridge", "snapshot name")
	generateCmd.Flags().StringVarP(&artifactVersion, "snapshot-version", "V", "v1", "snapshot version")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			for _, a := range m.Artifacts {
				c.Printf("%s %s %s\n", a.Name, a.Version, a.File)
			}
			return nil
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		RunE: func(c *cobra.Command, args []string) error {
			d, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			c.Print(d)
			return nil
		},
	}

	snapshotOpts := func() {
		options.Normalize(valueTypeStrings...)
	}
	cobra.OnInitialize(snapshotOpts)

	snapshotCmd.AddCommand(generateCmd, listCmd, diffCmd)
	return snapshotCmd
}
