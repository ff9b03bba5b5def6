package ir

// EncounteredKind discriminates the foreign type kinds the rewriter handles
// itself.
type EncounteredKind int

const (
	EncounteredStruct EncounteredKind = iota
	EncounteredEnum
)

func (k EncounteredKind) String() string {
	switch k {
	case EncounteredStruct:
		return "struct"
	case EncounteredEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// EncounteredType tells the downstream bridge compiler to suppress its own
// default generation for a name, because the rewriter already produced a
// bespoke definition or alias for it. Emitted at most once per name per run.
type EncounteredType struct {
	Kind EncounteredKind
	Name QualifiedName
}

// AdditionalNeed is a request for native helper code the final compiler
// must also emit. The set is closed; MakeUnique is currently the only kind.
type AdditionalNeed interface {
	isAdditionalNeed()
}

// MakeUnique asks the native-helper generator for a factory function that
// constructs Type behind a unique-ownership pointer. CtorArgs records the
// original constructor's argument types; plumbing them through the
// synthesized factory is not wired up yet, so the generator receives the
// list but the bridge-side call takes no arguments.
type MakeUnique struct {
	Type     QualifiedName
	CtorArgs []QualifiedName
}

func (*MakeUnique) isAdditionalNeed() {}
