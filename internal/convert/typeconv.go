package convert

import (
	"github.com/cmmoran/bridgegen/internal/known"
	"github.com/cmmoran/bridgegen/pkg/ir"
)

// convertType is the total structural rewrite applied to every parameter
// and return type in a converted signature. It never fails: well-known
// leaf names are substituted with their bridge-safe replacements
// (recursing through generic arguments), raw pointers become references
// of matching mutability with the lifetime left unbound, references
// recurse into their referent, and every other shape passes through
// unchanged. Applying it twice yields the same result, since no
// replacement name is itself a well-known raw name.
func convertType(t ir.Type) ir.Type {
	switch t := t.(type) {
	case *ir.NamedType:
		return convertNamed(t)
	case *ir.PointerType:
		return &ir.ReferenceType{Mutable: t.Mutable, Elem: convertType(t.Elem)}
	case *ir.ReferenceType:
		return &ir.ReferenceType{Mutable: t.Mutable, Elem: convertType(t.Elem)}
	default:
		return t
	}
}

func convertNamed(t *ir.NamedType) ir.Type {
	segments := make([]ir.TypeSegment, 0, len(t.Segments))
	for i, seg := range t.Segments {
		name := seg.Name
		if i == len(t.Segments)-1 {
			if repl, ok := known.Replacement(name); ok {
				name = repl
			}
		}
		var args []ir.Type
		for _, a := range seg.Args {
			args = append(args, convertType(a))
		}
		segments = append(segments, ir.TypeSegment{Name: name, Args: args})
	}
	return &ir.NamedType{Segments: segments}
}
