package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/bridgegen/pkg/ir"
)

func deps(names ...string) []ir.QualifiedName {
	out := make([]ir.QualifiedName, 0, len(names))
	for _, n := range names {
		out = append(out, ir.ParseQualifiedName(n))
	}
	return out
}

func TestDependencies(ttt *testing.T) {
	old := ir.Unqualified("OldWidget")
	tests := []struct {
		name string
		api  Api
		want []string
	}{
		{
			name: "typedef chains the aliased name with its deps",
			api:  &Typedef{Ident: ir.Unqualified("WidgetAlias"), OldName: &old, Deps: deps("gui::Base")},
			want: []string{"OldWidget", "gui::Base"},
		},
		{
			name: "typedef without a resolved alias lists deps only",
			api:  &Typedef{Ident: ir.Unqualified("WidgetAlias"), Deps: deps("gui::Base")},
			want: []string{"gui::Base"},
		},
		{
			name: "pod struct in the early phase lists field types",
			api: &Struct{
				Ident:    ir.Unqualified("Point"),
				Analysis: PodAnalysis{Kind: Pod, FieldTypes: deps("Inner", "Extent")},
			},
			want: []string{"Inner", "Extent"},
		},
		{
			name: "opaque struct in the early phase has none",
			api: &Struct{
				Ident:    ir.Unqualified("Widget"),
				Analysis: PodAnalysis{Kind: Opaque, FieldTypes: deps("Hidden")},
			},
		},
		{
			name: "pod struct with allocator info appends constructor deps",
			api: (&Struct{
				Ident:    ir.Unqualified("Point"),
				Analysis: PodAnalysis{Kind: Pod, FieldTypes: deps("Inner")},
			}).WithConstructorDeps(deps("Alloc")...),
			want: []string{"Inner", "Alloc"},
		},
		{
			name: "opaque struct with allocator info lists constructor deps only",
			api: (&Struct{
				Ident:    ir.Unqualified("Widget"),
				Analysis: PodAnalysis{Kind: Opaque, FieldTypes: deps("Hidden")},
			}).WithConstructorDeps(deps("Alloc")...),
			want: []string{"Alloc"},
		},
		{
			name: "function lists its recorded deps",
			api:  &Function{Ident: ir.Unqualified("resize"), Deps: deps("Widget", "Extent")},
			want: []string{"Widget", "Extent"},
		},
		{
			name: "subclass depends on its superclass",
			api:  &Subclass{Ident: ir.Unqualified("MyWidget"), Superclass: ir.ParseQualifiedName("gui::Widget")},
			want: []string{"gui::Widget"},
		},
		{
			name: "generated subclass fn lists its recorded deps",
			api:  &SubclassFn{Ident: ir.Unqualified("MyWidget_resize"), Deps: deps("MyWidget")},
			want: []string{"MyWidget"},
		},
		{name: "enum has none", api: &Enum{Ident: ir.Unqualified("Color")}},
		{name: "const has none", api: &Const{Ident: ir.Unqualified("MAX_WIDGETS")}},
		{name: "forward declaration has none", api: &ForwardDeclaration{Ident: ir.Unqualified("Window")}},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.api.Dependencies()
			if tt.want == nil {
				require.Empty(t, got)
				return
			}
			names := make([]string, 0, len(got))
			for _, d := range got {
				names = append(names, d.String())
			}
			require.Equal(t, tt.want, names)
		})
	}
}

func TestDependenciesPreserveOrderAndDuplicates(t *testing.T) {
	f := &Function{Ident: ir.Unqualified("blend"), Deps: deps("Color", "Widget", "Color")}
	require.Equal(t, deps("Color", "Widget", "Color"), f.Dependencies())
}

func TestDependenciesReturnCopies(t *testing.T) {
	f := &Function{Ident: ir.Unqualified("resize"), Deps: deps("Widget")}
	got := f.Dependencies()
	got[0] = ir.Unqualified("Mutated")
	require.Equal(t, deps("Widget"), f.Dependencies())
}

func TestWithConstructorDepsKeepsPodPayload(t *testing.T) {
	s := &Struct{Ident: ir.Unqualified("Point"), Analysis: PodAnalysis{Kind: Pod, FieldTypes: deps("Inner")}}

	up := s.WithConstructorDeps(deps("Alloc")...)
	require.Equal(t, ir.Unqualified("Point"), up.Name())
	require.Equal(t, PodAndDepAnalysis{
		Pod:             PodAnalysis{Kind: Pod, FieldTypes: deps("Inner")},
		ConstructorDeps: deps("Alloc"),
	}, up.Analysis)

	// Upgrading again replaces the allocator findings, never the pod data.
	again := up.WithConstructorDeps(deps("Other")...)
	require.Equal(t, PodAndDepAnalysis{
		Pod:             PodAnalysis{Kind: Pod, FieldTypes: deps("Inner")},
		ConstructorDeps: deps("Other"),
	}, again.Analysis)

	// The early-phase item is left untouched.
	require.Equal(t, PodAnalysis{Kind: Pod, FieldTypes: deps("Inner")}, s.Analysis)
}

func TestFormatDeps(t *testing.T) {
	f := &Function{Ident: ir.Unqualified("blend"), Deps: deps("gui::Color", "Widget")}
	require.Equal(t, "gui::Color,Widget", FormatDeps(f))
	require.Equal(t, "", FormatDeps(&Enum{Ident: ir.Unqualified("Color")}))
}

func TestProvisional(t *testing.T) {
	items := []ir.Item{
		&ir.Module{
			Name:  "bridge",
			Attrs: []ir.Attr{{Name: "bridge"}},
			Body: &ir.Block{Items: []ir.Item{
				&ir.ExternTypeDecl{Name: "Widget"},
				&ir.StructDef{Name: "WidgetContainingStruct", Fields: []ir.Field{
					{Name: "_0", Ty: ir.NamedWithArgs("UniquePtr", ir.Named("Widget"))},
				}},
				&ir.ExternTypeDecl{Name: "Point"},
				&ir.StructDef{Name: "Point", Fields: []ir.Field{
					{Name: "x", Ty: ir.Named("i32")},
					{Name: "inner", Ty: ir.Named("Inner")},
				}},
				&ir.ExternTypeDecl{Name: "Color"},
				&ir.EnumDef{Name: "Color"},
				&ir.ForeignBlock{ABI: "C", Items: []ir.ForeignItem{
					&ir.Include{Header: "widget.h"},
					&ir.ForeignFunc{Sig: ir.Signature{
						Name: "resize",
						Params: []ir.Param{
							{Name: "self", Ty: &ir.ReferenceType{Mutable: true, Elem: ir.Named("Widget")}},
							{Name: "w", Ty: ir.Named("i32")},
						},
					}},
					&ir.ForeignFunc{Sig: ir.Signature{
						Name:   "name",
						Params: []ir.Param{{Name: "self", Ty: &ir.ReferenceType{Elem: ir.Named("Widget")}}},
						Ret:    &ir.ReferenceType{Elem: ir.Named("CxxString")},
					}},
				}},
			}},
		},
	}

	want := []Api{
		&Struct{Ident: ir.Unqualified("Widget"), Analysis: PodAnalysis{Kind: Opaque}},
		&Struct{Ident: ir.Unqualified("WidgetContainingStruct"), Analysis: PodAnalysis{Kind: Pod, FieldTypes: deps("Widget")}},
		&Struct{Ident: ir.Unqualified("Point"), Analysis: PodAnalysis{Kind: Pod, FieldTypes: deps("Inner")}},
		&Enum{Ident: ir.Unqualified("Color")},
		&Function{Ident: ir.Unqualified("resize"), Deps: deps("Widget")},
		&Function{Ident: ir.Unqualified("name"), Deps: deps("Widget")},
	}
	require.Equal(t, want, Provisional(items))
}
