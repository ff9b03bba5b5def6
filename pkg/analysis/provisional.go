package analysis

import (
	"github.com/cmmoran/bridgegen/internal/known"
	"github.com/cmmoran/bridgegen/pkg/ir"
)

// Provisional derives early-phase Api items from a rewritten item list, so
// a dependency sketch is available before the real analysis stages have
// annotated anything. Structs carry their non-primitive field type names,
// functions the non-primitive leaf names of their signatures; bridge
// builtins (the well-known replacement types) are filtered out since they
// are provided, not emitted. Later stages replace these items wholesale.
func Provisional(items []ir.Item) []Api {
	defined := collectDefinedNames(items)

	var out []Api
	var walk func(items []ir.Item)
	walk = func(items []ir.Item) {
		for _, item := range items {
			switch it := item.(type) {
			case *ir.Module:
				if it.Body != nil {
					walk(it.Body.Items)
				}
			case *ir.StructDef:
				out = append(out, &Struct{
					Ident:    ir.Unqualified(it.Name),
					Analysis: PodAnalysis{Kind: Pod, FieldTypes: structFieldDeps(it)},
				})
			case *ir.ExternTypeDecl:
				// A declaration with no accompanying definition is an
				// opaque type; one preceding a definition is just that
				// definition's forward declaration.
				if !defined[it.Name] {
					out = append(out, &Struct{
						Ident:    ir.Unqualified(it.Name),
						Analysis: PodAnalysis{Kind: Opaque},
					})
				}
			case *ir.EnumDef:
				out = append(out, &Enum{Ident: ir.Unqualified(it.Name)})
			case *ir.ForeignBlock:
				for _, fi := range it.Items {
					fn, ok := fi.(*ir.ForeignFunc)
					if !ok {
						continue
					}
					out = append(out, &Function{
						Ident: ir.Unqualified(fn.Sig.Name),
						Deps:  signatureDeps(&fn.Sig),
					})
				}
			}
		}
	}
	walk(items)
	return out
}

func collectDefinedNames(items []ir.Item) map[string]bool {
	names := make(map[string]bool)
	var walk func(items []ir.Item)
	walk = func(items []ir.Item) {
		for _, item := range items {
			switch it := item.(type) {
			case *ir.Module:
				if it.Body != nil {
					walk(it.Body.Items)
				}
			case *ir.StructDef:
				names[it.Name] = true
			case *ir.EnumDef:
				names[it.Name] = true
			}
		}
	}
	walk(items)
	return names
}

func structFieldDeps(def *ir.StructDef) []ir.QualifiedName {
	var out []ir.QualifiedName
	for _, f := range def.Fields {
		out = appendTypeDeps(out, f.Ty)
	}
	return out
}

func signatureDeps(sig *ir.Signature) []ir.QualifiedName {
	var out []ir.QualifiedName
	for _, p := range sig.Params {
		out = appendTypeDeps(out, p.Ty)
	}
	return appendTypeDeps(out, sig.Ret)
}

// appendTypeDeps collects emittable leaf names from a type: named leaves
// that are neither primitive nor bridge-provided, recursing through
// indirection and generic arguments.
func appendTypeDeps(out []ir.QualifiedName, t ir.Type) []ir.QualifiedName {
	switch t := t.(type) {
	case *ir.NamedType:
		leaf := t.Leaf()
		if !known.IsPrimitive(leaf.Name) && !known.IsKnown(leaf.Name) {
			out = append(out, t.QualifiedName())
		}
		for _, arg := range leaf.Args {
			out = appendTypeDeps(out, arg)
		}
	case *ir.PointerType:
		out = appendTypeDeps(out, t.Elem)
	case *ir.ReferenceType:
		out = appendTypeDeps(out, t.Elem)
	}
	return out
}
