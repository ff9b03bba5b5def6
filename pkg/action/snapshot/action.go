package snapshot

import (
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/bridgegen/pkg/action/convert"
	"github.com/cmmoran/bridgegen/pkg/converter"
	"github.com/cmmoran/bridgegen/pkg/manifest"
)

// Generate writes a bridge preview for the current raw module and records
// it in the manifest under the provided name and version.
func Generate(opts *converter.Options, manifestPath, artifactName, artifactVersion string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	outFile, conv, err := convert.Generate(opts)
	if err != nil {
		return "", err
	}

	m.AddArtifact(convert.BuildArtifact(opts, conv, outFile, artifactName, artifactVersion))

	if err := m.Save(manifestPath); err != nil {
		return "", err
	}

	return outFile, nil
}

// List returns all artifacts recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// artifact files, and returns a textual diff of their contents.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous artifacts recorded")
	}

	currentPath := m.ArtifactFile(m.CurrentVersion)
	previousPath := m.ArtifactFile(m.PreviousVersion)

	if currentPath == "" || previousPath == "" {
		return "", fmt.Errorf("artifact files not found in manifest")
	}

	current, err := os.ReadFile(currentPath)
	if err != nil {
		return "", fmt.Errorf("read current artifact: %w", err)
	}

	previous, err := os.ReadFile(previousPath)
	if err != nil {
		return "", fmt.Errorf("read previous artifact: %w", err)
	}

	return cmp.Diff(string(previous), string(current)), nil
}
