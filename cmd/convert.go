package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/bridgegen/pkg/action/convert"
	"github.com/cmmoran/bridgegen/pkg/converter"
)

func init() {
	var convertCmd = NewConvertCommand()
	rootCmd.AddCommand(convertCmd)
}

func NewConvertCommand() *cobra.Command {
	var (
		options          = converter.NewOptions()
		valueTypeStrings = make([]string, 0)
	)

	// convertCmd represents the bridgegen convert command
	var convertCmd = &cobra.Command{
		Use:   "convert",
		Short: "convert a raw module",
		Long:  "Convert a raw native module description into a generated Go bridge preview",
		RunE: func(c *cobra.Command, args []string) error {
			_, _, err := convert.Generate(options)
			return err
		},
	}
	convertCmd.PersistentFlags().StringVarP(&options.Input, "input", "i", "", "raw module description to convert (JSON)")
	convertCmd.PersistentFlags().StringVarP(&options.OutDir, "output-directory", "o", "bridge", "directory to write the preview")
	convertCmd.PersistentFlags().StringVarP(&options.OutFile, "output-file", "f", "bridge_gen.go", "output file where the preview will be written")
	convertCmd.PersistentFlags().StringVarP(&options.Package, "package", "p", "bridge", "import path of the bridge package")
	convertCmd.PersistentFlags().StringSliceVarP(&options.Includes, "include", "I", []string{}, "header(s) every generated bridge includes")
	convertCmd.PersistentFlags().StringVar(&options.ExtraInclude, "extra-include", "", "additional header appended after --include")
	convertCmd.PersistentFlags().StringSliceVarP(&valueTypeStrings, "value-types", "t", []string{}, "type name(s) requested to pass by value, ex: ns::Point")
	convertCmd.PersistentFlags().BoolVar(&options.Legacy, "legacy", false, "suppress extern declarations for by-value structs")
	convertCmd.PersistentFlags().StringVarP(&options.Manifest, "manifest", "m", "", "manifest file to record the artifact in")
	convertOpts := func() {
		options.Normalize(valueTypeStrings...)
	}
	cobra.OnInitialize(convertOpts)

	return convertCmd
}
