// Package convert exposes bridge conversion as a filesystem action: read a
// raw module description, rewrite it, and write the generated Go preview.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cmmoran/bridgegen/internal/render"
	"github.com/cmmoran/bridgegen/pkg/analysis"
	"github.com/cmmoran/bridgegen/pkg/converter"
	"github.com/cmmoran/bridgegen/pkg/ir"
	"github.com/cmmoran/bridgegen/pkg/manifest"
)

// Generate runs the full pipeline for opts and returns the path of the
// written preview alongside the conversion it rendered. When opts.Manifest
// is set the artifact is recorded there under the version "latest".
func Generate(opts *converter.Options) (string, *converter.Conversion, error) {
	opts.Normalize()

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return "", nil, fmt.Errorf("read raw module: %w", err)
	}

	mod, err := ir.DecodeModule(data)
	if err != nil {
		return "", nil, fmt.Errorf("decode raw module: %w", err)
	}

	conv, err := converter.Convert(opts, mod)
	if err != nil {
		return "", nil, err
	}

	f, err := render.File(conv, opts.Package)
	if err != nil {
		return "", nil, err
	}

	if err = os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create output directory: %w", err)
	}
	outFile := filepath.Clean(filepath.Join(opts.OutDir, opts.OutFile))
	ff, err := os.OpenFile(outFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", nil, fmt.Errorf("open preview: %w", err)
	}
	if err = f.Render(ff); err != nil {
		_ = ff.Close()
		return "", nil, fmt.Errorf("render preview: %w", err)
	}
	if err = ff.Close(); err != nil {
		return "", nil, err
	}

	if opts.Manifest != "" {
		m, err := manifest.Load(opts.Manifest)
		if err != nil {
			return "", nil, err
		}
		name := strings.TrimSuffix(opts.OutFile, filepath.Ext(opts.OutFile))
		m.AddArtifact(BuildArtifact(opts, conv, outFile, name, "latest"))
		if err = m.Save(opts.Manifest); err != nil {
			return "", nil, err
		}
	}

	logConversion(conv)
	return outFile, conv, nil
}

// BuildArtifact assembles the manifest entry for a rendered conversion.
func BuildArtifact(opts *converter.Options, conv *converter.Conversion, file, name, version string) manifest.Artifact {
	headers := append([]string{}, opts.Includes...)
	if opts.ExtraInclude != "" {
		headers = append(headers, opts.ExtraInclude)
	}

	var structs, enums []string
	for _, et := range conv.Encountered {
		switch et.Kind {
		case ir.EncounteredStruct:
			structs = append(structs, et.Name.String())
		case ir.EncounteredEnum:
			enums = append(enums, et.Name.String())
		}
	}

	var factories []string
	for _, need := range conv.Needs {
		if mu, ok := need.(*ir.MakeUnique); ok {
			factories = append(factories, mu.Type.String())
		}
	}

	return manifest.Artifact{
		Name:       name,
		Version:    version,
		File:       file,
		Package:    opts.Package,
		Headers:    headers,
		ValueTypes: opts.ValueTypes,
		Structs:    structs,
		Enums:      enums,
		Factories:  factories,
	}
}

func logConversion(conv *converter.Conversion) {
	log := zap.L()
	log.Info("bridge converted", zap.String("summary", conv.Summary()))
	for _, api := range analysis.Provisional(conv.Items) {
		log.Debug("api dependencies",
			zap.String("api", api.Name().String()),
			zap.String("deps", analysis.FormatDeps(api)),
		)
	}
}
