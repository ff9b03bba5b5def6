package converter

import (
	"path/filepath"
	"strings"
)

// Options control conversion and preview rendering.
//
// Input        – path to the raw module description (JSON)
// Includes     – headers every generated bridge includes
// ExtraInclude – one more header appended after Includes
// ValueTypes   – names of types requested to pass by value
// Legacy       – suppress extern declarations for by-value structs
// OutDir       – output directory for the preview file
// OutFile      – preview filename
// Package      – import path of the bridge package
// Manifest     – manifest file recording generated artifacts (optional)
type Options struct {
	Input        string   `json:"input,omitempty" yaml:"input,omitempty" toml:"input,omitempty" mapstructure:"input,omitempty"`
	Includes     []string `json:"includes,omitempty" yaml:"includes,omitempty" toml:"includes,omitempty" mapstructure:"includes,omitempty"`
	ExtraInclude string   `json:"extra_include,omitempty" yaml:"extra_include,omitempty" toml:"extra_include,omitempty" mapstructure:"extra_include,omitempty"`
	ValueTypes   []string `json:"value_types,omitempty" yaml:"value_types,omitempty" toml:"value_types,omitempty" mapstructure:"value_types,omitempty"`
	Legacy       bool     `json:"legacy,omitempty" yaml:"legacy,omitempty" toml:"legacy,omitempty" mapstructure:"legacy,omitempty"`
	OutDir       string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile      string   `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" mapstructure:"package,omitempty"`
	Manifest     string   `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		OutDir:  "bridge",
		OutFile: "bridge_gen.go",
		Package: "bridge",
	}
}

func (o *Options) Normalize(valueTypeStrings ...string) {
	for _, s := range valueTypeStrings {
		if s = strings.TrimSpace(s); s != "" {
			o.ValueTypes = append(o.ValueTypes, s)
		}
	}
	if strings.Contains(o.Input, string(filepath.Separator)) {
		o.Input, _ = filepath.Abs(o.Input)
	}
	if len(o.OutDir) == 0 {
		o.OutDir = "bridge"
	}
	if strings.Contains(o.OutDir, string(filepath.Separator)) {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if len(o.OutFile) == 0 {
		o.OutFile = "bridge_gen.go"
	}
	if len(o.Package) == 0 {
		o.Package = "bridge"
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInput(p string) Option    { return func(o *Options) { o.Input = p } }
func WithOutDir(d string) Option   { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option  { return func(o *Options) { o.OutFile = f } }
func WithPackage(p string) Option  { return func(o *Options) { o.Package = p } }
func WithManifest(m string) Option { return func(o *Options) { o.Manifest = m } }
func WithLegacy() Option           { return func(o *Options) { o.Legacy = true } }
func WithIncludes(headers ...string) Option {
	return func(o *Options) { o.Includes = append(o.Includes, headers...) }
}
func WithExtraInclude(h string) Option { return func(o *Options) { o.ExtraInclude = h } }
func WithValueTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ValueTypes = append(o.ValueTypes, strings.TrimSpace(n))
		}
	}
}
