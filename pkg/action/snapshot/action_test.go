package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/bridgegen/pkg/converter"
	"github.com/cmmoran/bridgegen/pkg/manifest"
)

const rawPoint = `{
  "name": "points",
  "body": {"items": [
    {"kind": "struct", "name": "Point", "fields": [
      {"name": "x", "type": {"kind": "named", "segments": [{"name": "i32"}]}},
      {"name": "y", "type": {"kind": "named", "segments": [{"name": "i32"}]}}
    ]},
    {"kind": "foreign_block", "abi": "C", "items": [
      {"kind": "fn", "sig": {
        "name": "Point_Point",
        "params": [{"name": "this", "type": {"kind": "pointer", "mutable": true, "elem": {"kind": "named", "segments": [{"name": "Point"}]}}}],
        "ret": null,
        "unsafe": true
      }}
    ]},
    {"kind": "impl", "self_type": {"kind": "named", "segments": [{"name": "Point"}]}, "methods": [
      {"sig": {
        "name": "new",
        "params": [{"name": "this", "type": {"kind": "pointer", "mutable": true, "elem": {"kind": "named", "segments": [{"name": "Point"}]}}}],
        "ret": null,
        "unsafe": true
      }}
    ]}
  ]}
}`

const rawPointGrown = `{
  "name": "points",
  "body": {"items": [
    {"kind": "struct", "name": "Point", "fields": [
      {"name": "x", "type": {"kind": "named", "segments": [{"name": "i32"}]}},
      {"name": "y", "type": {"kind": "named", "segments": [{"name": "i32"}]}},
      {"name": "z", "type": {"kind": "named", "segments": [{"name": "i32"}]}}
    ]}
  ]}
}`

func writeRaw(t *testing.T, dir, name, payload string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(payload), 0o644))
	return p
}

func TestGenerateRecordsArtifact(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")

	opts := converter.NewOptions()
	opts.Input = writeRaw(t, dir, "raw.json", rawPoint)
	opts.OutDir = filepath.Join(dir, "v1")
	opts.ValueTypes = []string{"Point"}

	outFile, err := Generate(opts, manifestPath, "bridge", "v1")
	require.NoError(t, err)
	require.FileExists(t, outFile)

	m, err := List(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "v1", m.CurrentVersion)
	require.Len(t, m.Artifacts, 1)
	require.Equal(t, "bridge", m.Artifacts[0].Name)
	require.Equal(t, outFile, m.Artifacts[0].File)
	require.Equal(t, []string{"Point"}, m.Artifacts[0].Structs)
	require.Equal(t, []string{"Point"}, m.Artifacts[0].Factories)
}

func TestDiffCurrentWithPrevious(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")

	opts := converter.NewOptions()
	opts.ValueTypes = []string{"Point"}

	opts.Input = writeRaw(t, dir, "raw_v1.json", rawPoint)
	opts.OutDir = filepath.Join(dir, "v1")
	_, err := Generate(opts, manifestPath, "bridge", "v1")
	require.NoError(t, err)

	opts.Input = writeRaw(t, dir, "raw_v2.json", rawPointGrown)
	opts.OutDir = filepath.Join(dir, "v2")
	_, err = Generate(opts, manifestPath, "bridge", "v2")
	require.NoError(t, err)

	d, err := DiffCurrentWithPrevious(manifestPath)
	require.NoError(t, err)
	require.NotEmpty(t, d)
	require.Contains(t, d, "z int32")
}

func TestDiffRequiresTwoVersions(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "manifest.yaml")

	_, err := DiffCurrentWithPrevious(manifestPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no current/previous artifacts recorded")
}

func TestDiffMissingArtifactFiles(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "manifest.yaml")
	m := &manifest.Manifest{CurrentVersion: "v2", PreviousVersion: "v1"}
	require.NoError(t, m.Save(manifestPath))

	_, err := DiffCurrentWithPrevious(manifestPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "artifact files not found in manifest")
}
