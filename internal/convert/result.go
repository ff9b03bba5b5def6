package convert

import (
	"fmt"

	"github.com/jinzhu/inflection"

	"github.com/cmmoran/bridgegen/pkg/ir"
)

// Conversion bundles everything one convert run produced.
type Conversion struct {
	// Items is the full rewritten item list: passthrough declarations
	// first, then the synthesized bridge module.
	Items []ir.Item
	// Encountered lists the types this run already handled, so the
	// downstream compiler suppresses its own generation for them.
	Encountered []ir.EncounteredType
	// Needs lists the native helpers the downstream generator must emit.
	Needs []ir.AdditionalNeed
}

// BridgeModule returns the synthesized bridge module from Items, or nil if
// the conversion never produced one.
func (c *Conversion) BridgeModule() *ir.Module {
	for _, item := range c.Items {
		if m, ok := item.(*ir.Module); ok && ir.HasAttr(m.Attrs, bridgeAttr) {
			return m
		}
	}
	return nil
}

// Summary describes the run in one line, for log output.
func (c *Conversion) Summary() string {
	var structs, enums int
	for _, e := range c.Encountered {
		switch e.Kind {
		case ir.EncounteredStruct:
			structs++
		case ir.EncounteredEnum:
			enums++
		}
	}

	fns := 0
	if m := c.BridgeModule(); m != nil && m.Body != nil {
		for _, item := range m.Body.Items {
			b, ok := item.(*ir.ForeignBlock)
			if !ok {
				continue
			}
			for _, fi := range b.Items {
				if _, ok := fi.(*ir.ForeignFunc); ok {
					fns++
				}
			}
		}
	}

	return fmt.Sprintf("%s, %s and %s converted; %s requested",
		countNoun(structs, "struct"),
		countNoun(enums, "enum"),
		countNoun(fns, "function"),
		countNoun(len(c.Needs), "factory"))
}

// countNoun renders "<n> <noun>", pluralizing the noun when n is not one.
func countNoun(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %s", n, inflection.Plural(noun))
}
