// Package render turns a conversion result into a generated Go source
// preview of the bridge module: the artifact humans inspect and the glue
// generator consumes. The preview is written next to the build, never
// compiled into it.
package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/mod/module"

	"github.com/cmmoran/bridgegen/internal/convert"
	"github.com/cmmoran/bridgegen/pkg/ir"
)

// externIface names the rendered interface listing the native functions
// the glue generator must bind.
const externIface = "externFns"

// File renders the rewritten items as a generated Go file under the given
// bridge package import path. The path is validated up front; the package
// name is its final element.
func File(conv *convert.Conversion, pkgPath string) (*jen.File, error) {
	if err := module.CheckImportPath(pkgPath); err != nil {
		return nil, fmt.Errorf("bridge package path: %w", err)
	}

	f := jen.NewFilePathName(pkgPath, path.Base(pkgPath))
	f.HeaderComment("Code generated by bridgegen. DO NOT EDIT.")

	mod := conv.BridgeModule()
	if mod == nil || mod.Body == nil {
		return f, nil
	}

	defined := definedTypes(mod.Body.Items)
	for _, item := range mod.Body.Items {
		switch it := item.(type) {
		case *ir.ExternTypeDecl:
			renderExternType(f, it, defined[it.Name])
		case *ir.StructDef:
			renderStruct(f, it)
		case *ir.EnumDef:
			renderEnum(f, it)
		case *ir.ForeignBlock:
			renderForeignBlock(f, it)
		}
	}
	renderFactories(f, conv.Items)
	return f, nil
}

func definedTypes(items []ir.Item) map[string]bool {
	names := make(map[string]bool)
	for _, item := range items {
		switch it := item.(type) {
		case *ir.StructDef:
			names[it.Name] = true
		case *ir.EnumDef:
			names[it.Name] = true
		}
	}
	return names
}

// renderExternType emits the glue-generator directive for a native-side
// type. A declaration with no in-module definition is an opaque type and
// additionally gets an incomplete type, so the rest of the file can
// reference it.
func renderExternType(f *jen.File, d *ir.ExternTypeDecl, hasDef bool) {
	f.Comment("bridge:extern " + d.Name)
	if !hasDef {
		f.Type().Id(d.Name).Struct(jen.Id("_").Index(jen.Lit(0)).Byte())
	}
}

func renderStruct(f *jen.File, def *ir.StructDef) {
	fields := make([]jen.Code, 0, len(def.Fields))
	for _, fd := range def.Fields {
		fields = append(fields, jen.Id(fd.Name).Add(goType(fd.Ty)))
	}
	f.Type().Id(def.Name).Struct(fields...)
}

// renderEnum emits the enum as a sized integer type plus one typed
// constant per variant, honoring explicit discriminants and numbering the
// rest sequentially.
func renderEnum(f *jen.File, def *ir.EnumDef) {
	f.Type().Id(def.Name).Int32()
	if len(def.Variants) == 0 {
		return
	}
	defs := make([]jen.Code, 0, len(def.Variants))
	next := int64(0)
	for _, v := range def.Variants {
		val := next
		if v.Value != nil {
			val = *v.Value
		}
		next = val + 1
		defs = append(defs, jen.Id(def.Name+v.Name).Id(def.Name).Op("=").Lit(int(val)))
	}
	f.Const().Defs(defs...)
}

// renderForeignBlock emits the include directives as one cgo-style
// preamble and the merged block's functions as the extern interface.
func renderForeignBlock(f *jen.File, b *ir.ForeignBlock) {
	var includes []string
	var methods []jen.Code
	for _, fi := range b.Items {
		switch it := fi.(type) {
		case *ir.Include:
			includes = append(includes, fmt.Sprintf("#include %q", it.Header))
		case *ir.ForeignFunc:
			methods = append(methods, fnDecl(it))
		}
	}
	if len(includes) > 0 {
		f.CgoPreamble(strings.Join(includes, "\n"))
	}
	if len(methods) == 0 {
		return
	}
	f.Comment(externIface + " lists the native functions the glue generator binds.")
	f.Type().Id(externIface).Interface(methods...)
}

func fnDecl(fn *ir.ForeignFunc) jen.Code {
	params := make([]jen.Code, 0, len(fn.Sig.Params))
	for _, p := range fn.Sig.Params {
		params = append(params, jen.Id(p.Name).Add(goType(p.Ty)))
	}
	decl := jen.Id(fn.Sig.Name).Params(params...)
	if fn.Sig.Ret != nil {
		decl.Add(goType(fn.Sig.Ret))
	}
	return decl
}

// renderFactories emits one glue-generator directive per synthesized
// factory method found outside the bridge module.
func renderFactories(f *jen.File, items []ir.Item) {
	for _, item := range items {
		impl, ok := item.(*ir.ImplBlock)
		if !ok {
			continue
		}
		self, ok := impl.SelfType.(*ir.NamedType)
		if !ok {
			continue
		}
		for _, m := range impl.Methods {
			if m.Body == nil {
				continue
			}
			f.Comment(fmt.Sprintf("bridge:factory %s %s via %s", self.Leaf().Name, m.Sig.Name, m.Body.Func))
		}
	}
}

var goPrimitives = map[string]string{
	"i8": "int8", "i16": "int16", "i32": "int32", "i64": "int64", "isize": "int",
	"u8": "uint8", "u16": "uint16", "u32": "uint32", "u64": "uint64", "usize": "uintptr",
	"f32": "float32", "f64": "float64", "bool": "bool", "char": "rune",
}

// goType maps a bridge type onto its Go rendering. References render as
// plain pointers; mutability is a bridge-level property the preview does
// not distinguish.
func goType(t ir.Type) jen.Code {
	switch t := t.(type) {
	case *ir.NamedType:
		leaf := t.Leaf()
		if prim, ok := goPrimitives[leaf.Name]; ok {
			return jen.Id(prim)
		}
		if len(leaf.Args) == 0 {
			return jen.Id(leaf.Name)
		}
		args := make([]jen.Code, 0, len(leaf.Args))
		for _, a := range leaf.Args {
			args = append(args, goType(a))
		}
		return jen.Id(leaf.Name).Index(args...)
	case *ir.ReferenceType:
		return jen.Op("*").Add(goType(t.Elem))
	case *ir.PointerType:
		return jen.Op("*").Add(goType(t.Elem))
	case *ir.VerbatimType:
		return jen.Id(t.Text)
	default:
		return jen.Id("any")
	}
}
