// Package analysis models discovered interface items as the semantic
// analysis stages see them, and answers per-item dependency queries for the
// emission planner.
package analysis

import "github.com/cmmoran/bridgegen/pkg/ir"

// TypeKind classifies a struct item's bridge treatment.
type TypeKind int

const (
	// Pod structs cross the bridge by value with their fields exposed.
	Pod TypeKind = iota
	// Opaque structs stay behind indirection.
	Opaque
)

func (k TypeKind) String() string {
	if k == Pod {
		return "pod"
	}
	return "opaque"
}

// Api is the closed set of discovered interface items. Every kind
// implements HasDependencies; adding a kind means adding a type here, not
// inspecting anything at runtime.
type Api interface {
	HasDependencies
	isApi()
}

// StructAnalysis is the phase-tagged payload of a Struct. The early
// field-discovery phase attaches PodAnalysis; the later allocator phase
// replaces it with PodAndDepAnalysis. Constructor dependency data only
// exists on the later payload, so no query can observe it before that
// phase has run.
type StructAnalysis interface {
	isStructAnalysis()
}

// PodAnalysis is the early-phase struct payload.
type PodAnalysis struct {
	Kind       TypeKind
	FieldTypes []ir.QualifiedName
}

// PodAndDepAnalysis is the allocator-phase struct payload. It wraps the
// early payload rather than duplicating it, so the two phases cannot
// drift apart.
type PodAndDepAnalysis struct {
	Pod             PodAnalysis
	ConstructorDeps []ir.QualifiedName
}

func (PodAnalysis) isStructAnalysis()       {}
func (PodAndDepAnalysis) isStructAnalysis() {}

// Typedef aliases one name to another.
type Typedef struct {
	Ident   ir.QualifiedName
	OldName *ir.QualifiedName // the aliased original, nil when unresolved
	Deps    []ir.QualifiedName
}

// Struct is an aggregate item carrying its phase-specific payload.
type Struct struct {
	Ident    ir.QualifiedName
	Analysis StructAnalysis
}

// WithConstructorDeps returns a copy of s upgraded to the allocator phase.
func (s *Struct) WithConstructorDeps(deps ...ir.QualifiedName) *Struct {
	pod, ok := s.Analysis.(PodAnalysis)
	if !ok {
		pod = s.Analysis.(PodAndDepAnalysis).Pod
	}
	return &Struct{Ident: s.Ident, Analysis: PodAndDepAnalysis{Pod: pod, ConstructorDeps: deps}}
}

// Enum is an enumeration item.
type Enum struct {
	Ident ir.QualifiedName
}

// Function is a callable item with its analysis-recorded dependencies.
type Function struct {
	Ident ir.QualifiedName
	Deps  []ir.QualifiedName
}

// Const is a constant item.
type Const struct {
	Ident ir.QualifiedName
}

// ForwardDeclaration is a type known only by name.
type ForwardDeclaration struct {
	Ident ir.QualifiedName
}

// Subclass extends a native superclass.
type Subclass struct {
	Ident      ir.QualifiedName
	Superclass ir.QualifiedName
}

// SubclassFn is a generated subclass trampoline with its recorded
// dependency list.
type SubclassFn struct {
	Ident ir.QualifiedName
	Deps  []ir.QualifiedName
}

func (t *Typedef) Name() ir.QualifiedName            { return t.Ident }
func (s *Struct) Name() ir.QualifiedName             { return s.Ident }
func (e *Enum) Name() ir.QualifiedName               { return e.Ident }
func (f *Function) Name() ir.QualifiedName           { return f.Ident }
func (c *Const) Name() ir.QualifiedName              { return c.Ident }
func (f *ForwardDeclaration) Name() ir.QualifiedName { return f.Ident }
func (s *Subclass) Name() ir.QualifiedName           { return s.Ident }
func (s *SubclassFn) Name() ir.QualifiedName         { return s.Ident }

func (*Typedef) isApi()            {}
func (*Struct) isApi()             {}
func (*Enum) isApi()               {}
func (*Function) isApi()           {}
func (*Const) isApi()              {}
func (*ForwardDeclaration) isApi() {}
func (*Subclass) isApi()           {}
func (*SubclassFn) isApi()         {}
