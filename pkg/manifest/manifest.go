package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Artifact represents one generated bridge preview entry in the manifest.
type Artifact struct {
	Name       string   `yaml:"name" json:"name"`
	Version    string   `yaml:"version" json:"version"`
	File       string   `yaml:"file" json:"file"`
	Package    string   `yaml:"package,omitempty" json:"package,omitempty"`
	Headers    []string `yaml:"headers,omitempty" json:"headers,omitempty"`
	ValueTypes []string `yaml:"value_types,omitempty" json:"value_types,omitempty"`
	Structs    []string `yaml:"structs,omitempty" json:"structs,omitempty"`
	Enums      []string `yaml:"enums,omitempty" json:"enums,omitempty"`
	Factories  []string `yaml:"factories,omitempty" json:"factories,omitempty"`
}

// Manifest tracks the lifecycle of generated bridge artifacts.
type Manifest struct {
	CurrentVersion  string     `yaml:"current_version" json:"current_version"`
	PreviousVersion string     `yaml:"previous_version" json:"previous_version"`
	Artifacts       []Artifact `yaml:"artifacts" json:"artifacts"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// AddArtifact records an artifact, updating version pointers and de-duplicating
// existing entries that share the same name and version.
func (m *Manifest) AddArtifact(a Artifact) {
	if m.CurrentVersion != "" {
		m.PreviousVersion = m.CurrentVersion
	}
	m.CurrentVersion = a.Version

	for i := range m.Artifacts {
		if m.Artifacts[i].Name == a.Name && m.Artifacts[i].Version == a.Version {
			m.Artifacts[i] = a
			return
		}
	}

	m.Artifacts = append(m.Artifacts, a)
}

// ArtifactFile returns the path associated with the provided version, if present.
func (m *Manifest) ArtifactFile(version string) string {
	for _, a := range m.Artifacts {
		if a.Version == version {
			return a.File
		}
	}
	return ""
}
