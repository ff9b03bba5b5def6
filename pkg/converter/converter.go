// Package converter is the public entry point for bridge conversion. It
// wires by-value classification and the rewrite pass behind one call and
// re-exports the result and error types callers match on.
package converter

import (
	"go.uber.org/zap"

	"github.com/cmmoran/bridgegen/internal/convert"
	"github.com/cmmoran/bridgegen/pkg/ir"
)

// Conversion is the rewrite result: the converted items plus the
// encountered-type and additional-need records accumulated on the way.
type Conversion = convert.Conversion

// Error is a terminal conversion failure. Match its kind with errors.Is
// against the exported sentinels.
type Error = convert.Error

var (
	ErrNoContent          = convert.ErrNoContent
	ErrUnsafePodType      = convert.ErrUnsafePodType
	ErrUnknownForeignItem = convert.ErrUnknownForeignItem
)

// SetLogger routes conversion logging to l.
func SetLogger(l *zap.Logger) { convert.SetLogger(l) }

// Convert rewrites mod according to opts. The module is left untouched;
// all rewritten items are fresh values.
func Convert(opts *Options, mod *ir.Module) (*Conversion, error) {
	requests := make([]ir.QualifiedName, 0, len(opts.ValueTypes))
	for _, s := range opts.ValueTypes {
		requests = append(requests, ir.ParseQualifiedName(s))
	}
	return convert.New(opts.Includes, requests, opts.Legacy).Convert(mod, opts.ExtraInclude)
}
