package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/bridgegen/pkg/ir"
)

func TestBridgeModule(t *testing.T) {
	bridge := &ir.Module{Name: "bridge", Attrs: []ir.Attr{{Name: "bridge"}}, Body: &ir.Block{}}
	conv := &Conversion{Items: []ir.Item{
		&ir.Module{Name: "plain"},
		bridge,
	}}
	require.Same(t, bridge, conv.BridgeModule())

	empty := &Conversion{Items: []ir.Item{&ir.Module{Name: "plain"}}}
	require.Nil(t, empty.BridgeModule())
}

func TestSummary(t *testing.T) {
	conv := &Conversion{
		Items: []ir.Item{
			&ir.Module{
				Name:  "bridge",
				Attrs: []ir.Attr{{Name: "bridge"}},
				Body: &ir.Block{Items: []ir.Item{
					&ir.ForeignBlock{ABI: "C", Items: []ir.ForeignItem{
						&ir.Include{Header: "widget.h"},
						&ir.ForeignFunc{Sig: ir.Signature{Name: "resize"}},
						&ir.ForeignFunc{Sig: ir.Signature{Name: "redraw"}},
						&ir.ForeignFunc{Sig: ir.Signature{Name: "hide"}},
					}},
				}},
			},
		},
		Encountered: []ir.EncounteredType{
			{Kind: ir.EncounteredStruct, Name: ir.Unqualified("Point")},
			{Kind: ir.EncounteredStruct, Name: ir.Unqualified("Widget")},
			{Kind: ir.EncounteredEnum, Name: ir.Unqualified("Color")},
		},
		Needs: []ir.AdditionalNeed{&ir.MakeUnique{Type: ir.Unqualified("Widget")}},
	}
	require.Equal(t, "2 structs, 1 enum and 3 functions converted; 1 factory requested", conv.Summary())

	require.Equal(t, "0 structs, 0 enums and 0 functions converted; 0 factories requested", (&Conversion{}).Summary())
}
