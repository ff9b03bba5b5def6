package render

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/bridgegen/internal/convert"
	"github.com/cmmoran/bridgegen/pkg/ir"
)

func TestGoType(ttt *testing.T) {
	tests := []struct {
		name string
		in   ir.Type
		want string
	}{
		{name: "i32", in: ir.Named("i32"), want: "int32"},
		{name: "usize", in: ir.Named("usize"), want: "uintptr"},
		{name: "char", in: ir.Named("char"), want: "rune"},
		{name: "plain named", in: ir.Named("Widget"), want: "Widget"},
		{name: "generic", in: ir.NamedWithArgs("UniquePtr", ir.Named("Widget")), want: "UniquePtr[Widget]"},
		{name: "mutable reference", in: &ir.ReferenceType{Mutable: true, Elem: ir.Named("Widget")}, want: "*Widget"},
		{name: "pointer", in: &ir.PointerType{Elem: ir.Named("Widget")}, want: "*Widget"},
		{name: "verbatim", in: &ir.VerbatimType{Text: "uint8"}, want: "uint8"},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, fmt.Sprintf("%#v", goType(tt.in)))
		})
	}
}

func TestFileRendersBridgePreview(t *testing.T) {
	seven := int64(7)
	mod := &ir.Module{Name: "ffi", Body: &ir.Block{Items: []ir.Item{
		&ir.StructDef{
			Attrs: []ir.Attr{{Name: "repr", Arg: "C"}},
			Name:  "Point",
			Fields: []ir.Field{
				{Name: "x", Ty: ir.Named("i32")},
				{Name: "y", Ty: ir.Named("i32")},
			},
		},
		&ir.StructDef{Name: "Widget", Fields: []ir.Field{
			{Name: "parent", Ty: &ir.PointerType{Mutable: true, Elem: ir.Named("Widget")}},
		}},
		&ir.EnumDef{Name: "Color", Variants: []ir.EnumVariant{{Name: "Red"}, {Name: "Blue", Value: &seven}}},
		&ir.ForeignBlock{ABI: "C", Items: []ir.ForeignItem{
			&ir.ForeignFunc{Sig: ir.Signature{
				Name: "Widget_resize",
				Params: []ir.Param{
					{Name: "this", Ty: &ir.PointerType{Mutable: true, Elem: ir.Named("Widget")}},
					{Name: "w", Ty: ir.Named("i32")},
				},
			}},
		}},
		&ir.ImplBlock{SelfType: ir.Named("Point"), Methods: []ir.Method{
			{Sig: ir.Signature{Name: "new", Params: []ir.Param{{Name: "this", Ty: &ir.PointerType{Mutable: true, Elem: ir.Named("Point")}}}}},
		}},
	}}}

	conv, err := convert.New([]string{"widget.h"}, []ir.QualifiedName{ir.Unqualified("Point")}, false).Convert(mod, "extra.h")
	require.NoError(t, err)

	f, err := File(conv, "example.com/demo/bridge")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))
	src := buf.String()

	require.Contains(t, src, "Code generated by bridgegen. DO NOT EDIT.")
	require.Contains(t, src, "package bridge")

	require.Contains(t, src, `#include "widget.h"`)
	require.Contains(t, src, `#include "extra.h"`)

	require.Contains(t, src, "// bridge:extern Point")
	require.Contains(t, src, "type Point struct")
	require.Contains(t, src, "x int32")

	// Widget is opaque: an incomplete type plus the owning wrapper, never
	// its raw fields.
	require.Contains(t, src, "// bridge:extern Widget")
	require.Contains(t, src, "[0]byte")
	require.Contains(t, src, "type WidgetContainingStruct struct")
	require.Contains(t, src, "_0 UniquePtr[Widget]")
	require.NotContains(t, src, "parent")

	require.Contains(t, src, "type Color int32")
	require.Contains(t, src, "ColorRed Color = 0")
	require.Contains(t, src, "ColorBlue Color = 7")

	require.Contains(t, src, "type externFns interface")
	require.Contains(t, src, "resize(self *Widget, w int32)")

	require.Contains(t, src, "// bridge:factory Point make_unique via Point_make_unique")
}

func TestFileEmptyConversion(t *testing.T) {
	f, err := File(&convert.Conversion{}, "bridge")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))
	require.Contains(t, buf.String(), "package bridge")
}

func TestFileRejectsBadImportPath(t *testing.T) {
	_, err := File(&convert.Conversion{}, "bad path!")
	require.Error(t, err)
	require.Contains(t, err.Error(), "bridge package path")
}
