package analysis

import (
	"strings"

	"github.com/cmmoran/bridgegen/pkg/ir"
)

// HasDependencies is the query surface the emission planner uses: an item
// must be emitted no earlier than everything Dependencies returns. The
// result is order-preserving and may contain duplicates; callers that need
// a set dedupe themselves.
type HasDependencies interface {
	Name() ir.QualifiedName
	Dependencies() []ir.QualifiedName
}

// FormatDeps renders an item's dependencies for diagnostics.
func FormatDeps(h HasDependencies) string {
	deps := h.Dependencies()
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		names = append(names, d.String())
	}
	return strings.Join(names, ",")
}

// Dependencies of a typedef: the aliased original name, when known,
// followed by its recorded analysis dependencies.
func (t *Typedef) Dependencies() []ir.QualifiedName {
	out := make([]ir.QualifiedName, 0, len(t.Deps)+1)
	if t.OldName != nil {
		out = append(out, *t.OldName)
	}
	return append(out, t.Deps...)
}

// Dependencies of a struct vary by phase and kind. Early phase: pod
// structs depend on their field types, opaque structs on nothing yet.
// Allocator phase: pod structs additionally depend on their
// constructor/allocator findings, opaque structs on those findings only.
func (s *Struct) Dependencies() []ir.QualifiedName {
	switch a := s.Analysis.(type) {
	case PodAnalysis:
		if a.Kind != Pod {
			return nil
		}
		return append([]ir.QualifiedName(nil), a.FieldTypes...)
	case PodAndDepAnalysis:
		if a.Pod.Kind != Pod {
			return append([]ir.QualifiedName(nil), a.ConstructorDeps...)
		}
		out := make([]ir.QualifiedName, 0, len(a.Pod.FieldTypes)+len(a.ConstructorDeps))
		out = append(out, a.Pod.FieldTypes...)
		return append(out, a.ConstructorDeps...)
	default:
		return nil
	}
}

func (e *Enum) Dependencies() []ir.QualifiedName { return nil }

func (f *Function) Dependencies() []ir.QualifiedName {
	return append([]ir.QualifiedName(nil), f.Deps...)
}

func (c *Const) Dependencies() []ir.QualifiedName { return nil }

func (f *ForwardDeclaration) Dependencies() []ir.QualifiedName { return nil }

// Dependencies of a subclass: its single superclass.
func (s *Subclass) Dependencies() []ir.QualifiedName {
	return []ir.QualifiedName{s.Superclass}
}

func (s *SubclassFn) Dependencies() []ir.QualifiedName {
	return append([]ir.QualifiedName(nil), s.Deps...)
}
