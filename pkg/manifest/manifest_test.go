package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyManifest(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, &Manifest{}, m)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "manifest.yaml")
	m := &Manifest{}
	m.AddArtifact(Artifact{
		Name:       "bridge_gen",
		Version:    "v1",
		File:       "bridge/bridge_gen.go",
		Package:    "bridge",
		Headers:    []string{"widget.h"},
		ValueTypes: []string{"Point"},
		Structs:    []string{"Point", "Widget"},
		Enums:      []string{"Color"},
		Factories:  []string{"Point"},
	})
	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(m, got); diff != "" {
		t.Logf("diff: %s", diff)
	}
	require.Equal(t, m, got)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("artifacts: {not a list}"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unmarshal manifest")
}

func TestAddArtifactTracksVersions(t *testing.T) {
	m := &Manifest{}

	m.AddArtifact(Artifact{Name: "bridge_gen", Version: "v1", File: "v1/bridge_gen.go"})
	require.Equal(t, "v1", m.CurrentVersion)
	require.Equal(t, "", m.PreviousVersion)

	m.AddArtifact(Artifact{Name: "bridge_gen", Version: "v2", File: "v2/bridge_gen.go"})
	require.Equal(t, "v2", m.CurrentVersion)
	require.Equal(t, "v1", m.PreviousVersion)
	require.Len(t, m.Artifacts, 2)

	// Re-recording the same name and version replaces in place.
	m.AddArtifact(Artifact{Name: "bridge_gen", Version: "v2", File: "v2b/bridge_gen.go"})
	require.Len(t, m.Artifacts, 2)
	require.Equal(t, "v2b/bridge_gen.go", m.ArtifactFile("v2"))

	require.Equal(t, "v1/bridge_gen.go", m.ArtifactFile("v1"))
	require.Equal(t, "", m.ArtifactFile("v9"))
}
