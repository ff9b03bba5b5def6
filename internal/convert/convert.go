// Package convert rewrites a raw foreign-interface module, as produced by
// the scanning stage, into the shape the downstream bridge compiler
// expects: classified aggregates, a single merged foreign block, synthetic
// factories for elided constructors, and one synthesized bridge module
// wrapping it all.
package convert

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/cmmoran/bridgegen/internal/byvalue"
	"github.com/cmmoran/bridgegen/pkg/ir"
)

const (
	// bridgeModName names the synthesized module wrapping all bridge items.
	bridgeModName = "bridge"
	// bridgeAttr marks the synthesized module for the bridge compiler.
	bridgeAttr = "bridge"
	// rawReceiver is the scanner's name for receiver parameters.
	rawReceiver = "this"
	// receiver is the conventional receiver name after rewriting.
	receiver = "self"
	// ctorName is the method name the scanner gives constructors.
	ctorName = "new"
	// factoryMethod names the synthesized replacement for a constructor.
	factoryMethod = "make_unique"
	// uniquePtrName is the bridge's unique-ownership pointer type.
	uniquePtrName = "UniquePtr"
	// wrapperSuffix and wrapperField shape the synthetic aggregate that
	// lets the bridge compiler reference an opaque type by name.
	wrapperSuffix = "ContainingStruct"
	wrapperField  = "_0"
	// linkNameAttr is dropped from converted functions; it is meaningless
	// once the function is re-targeted at the synthesized module.
	linkNameAttr = "link_name"
)

// Converter rewrites raw modules. It holds configuration only; every
// Convert call gets fresh accumulators, so one Converter may be reused
// across modules.
type Converter struct {
	includes []string
	requests []ir.QualifiedName
	legacy   bool // suppress forward declarations ahead of definitions
}

// New builds a Converter from the native headers to include, the explicit
// pass-by-value requests, and the legacy-target flag.
func New(includes []string, valueRequests []ir.QualifiedName, legacy bool) *Converter {
	return &Converter{includes: includes, requests: valueRequests, legacy: legacy}
}

// passState accumulates one run's discoveries. It is threaded explicitly
// through the pass so a run shares nothing with any other run.
type passState struct {
	discovered  []ir.QualifiedName // aggregate names in discovery order
	verdicts    map[ir.QualifiedName]byvalue.Verdict
	bridge      []ir.Item // items destined for the synthesized bridge module
	out         []ir.Item // passthrough items, emitted outside it
	foreign     *ir.ForeignBlock
	encountered []ir.EncounteredType
	seen        map[ir.QualifiedName]bool // encountered-name uniqueness guard
	needs       []ir.AdditionalNeed
}

func (st *passState) noteAggregate(name ir.QualifiedName) {
	st.discovered = append(st.discovered, name)
}

func (st *passState) isAggregate(name ir.QualifiedName) bool {
	for _, d := range st.discovered {
		if d == name {
			return true
		}
	}
	return false
}

// recordEncountered notes a handled type, at most once per run.
func (st *passState) recordEncountered(kind ir.EncounteredKind, name ir.QualifiedName) {
	if st.seen[name] {
		return
	}
	st.seen[name] = true
	st.encountered = append(st.encountered, ir.EncounteredType{Kind: kind, Name: name})
}

// stripClassPrefix removes the leading aggregate name (plus underscore)
// from a flattened method name. The longest discovered name wins, so
// Widget_Group_add resolves against Widget_Group rather than Widget.
func (st *passState) stripClassPrefix(fnName string) string {
	best := ""
	for _, cn := range st.discovered {
		n := cn.Name()
		if len(n) > len(best) && strings.HasPrefix(fnName, n+"_") {
			best = n
		}
	}
	if best == "" {
		return fnName
	}
	return fnName[len(best)+1:]
}

// Convert rewrites mod and returns the result bundle. extraInclude, when
// non-empty, is appended to the configured include directives. A run
// either completes or fails whole; no partial result escapes.
func (c *Converter) Convert(mod *ir.Module, extraInclude string) (*Conversion, error) {
	if mod == nil || mod.Body == nil {
		return nil, ErrNoContent
	}

	st := &passState{seen: make(map[ir.QualifiedName]bool)}
	var err error
	if st.verdicts, err = c.classify(mod.Body.Items); err != nil {
		return nil, err
	}

	for _, item := range mod.Body.Items {
		switch it := item.(type) {
		case *ir.ForeignBlock:
			if err := c.convertForeignBlock(st, it, extraInclude); err != nil {
				return nil, err
			}
		case *ir.StructDef:
			c.convertStruct(st, it)
		case *ir.EnumDef:
			c.convertEnum(st, it)
		case *ir.ImplBlock:
			c.convertImpl(st, it)
		default:
			st.out = append(st.out, item)
		}
	}

	if st.foreign != nil {
		st.bridge = append(st.bridge, st.foreign)
	}
	items := append(st.out, &ir.Module{
		Name:  bridgeModName,
		Attrs: []ir.Attr{{Name: bridgeAttr}},
		Body:  &ir.Block{Items: st.bridge},
	})

	conv := &Conversion{Items: items, Encountered: st.encountered, Needs: st.needs}
	Logger().Debug("converted module",
		zap.String("module", mod.Name),
		zap.String("summary", conv.Summary()))
	return conv, nil
}

// classify ingests every aggregate definition and proves the requested
// value types, before any structural rewriting happens. Pointer and
// reference rewriting depends on these verdicts, so they must be fixed
// first.
func (c *Converter) classify(items []ir.Item) (map[ir.QualifiedName]byvalue.Verdict, error) {
	checker := byvalue.NewChecker()
	for _, item := range items {
		if def, ok := item.(*ir.StructDef); ok {
			checker.IngestStruct(def)
		}
	}

	verdicts, err := checker.Classify(c.requests)
	if err != nil {
		var unprovable *byvalue.UnprovableTypeError
		if errors.As(err, &unprovable) {
			return nil, &Error{Kind: KindUnsafePodType, Name: unprovable.Offender, Cause: err}
		}
		return nil, err
	}
	return verdicts, nil
}

// convertForeignBlock merges a foreign block into the single synthesized
// block, converting each contained function. The first block seen donates
// its ABI marker and attributes and receives the include directives.
func (c *Converter) convertForeignBlock(st *passState, b *ir.ForeignBlock, extraInclude string) error {
	if st.foreign == nil {
		merged := &ir.ForeignBlock{ABI: b.ABI, Attrs: b.Attrs}
		for _, inc := range c.includes {
			merged.Items = append(merged.Items, &ir.Include{Header: inc})
		}
		if extraInclude != "" {
			merged.Items = append(merged.Items, &ir.Include{Header: extraInclude})
		}
		st.foreign = merged
	}

	for _, fi := range b.Items {
		fn, ok := fi.(*ir.ForeignFunc)
		if !ok {
			return &Error{Kind: KindUnknownForeignItem}
		}
		converted, keep := c.convertForeignFunc(st, fn)
		if keep {
			st.foreign.Items = append(st.foreign.Items, converted)
		}
	}
	return nil
}

// convertForeignFunc rewrites one native function declaration. keep is
// false when the function matches the synthesized constructor naming
// convention for a discovered aggregate and is superseded by a factory.
func (c *Converter) convertForeignFunc(st *passState, fn *ir.ForeignFunc) (converted *ir.ForeignFunc, keep bool) {
	name := fn.Sig.Name
	for _, t := range st.discovered {
		if name == t.Name()+"_"+t.Name() {
			Logger().Debug("dropping constructor superseded by factory", zap.String("fn", name))
			return nil, false
		}
	}

	method := false
	params := make([]ir.Param, 0, len(fn.Sig.Params))
	for _, p := range fn.Sig.Params {
		cp := ir.Param{Name: p.Name, Ty: convertType(p.Ty)}
		if p.Name == rawReceiver {
			cp.Name = receiver
			method = true
		}
		params = append(params, cp)
	}

	if method {
		name = st.stripClassPrefix(name)
	}

	return &ir.ForeignFunc{
		Attrs: ir.StripAttrs(fn.Attrs, linkNameAttr),
		Sig: ir.Signature{
			Name:   name,
			Params: params,
			Ret:    convertType(fn.Sig.Ret),
			Unsafe: fn.Sig.Unsafe,
		},
		Method: method,
	}, true
}

// convertStruct rewrites one aggregate according to its classification.
func (c *Converter) convertStruct(st *passState, def *ir.StructDef) {
	name := ir.Unqualified(def.Name)
	st.noteAggregate(name)
	st.recordEncountered(ir.EncounteredStruct, name)

	if st.verdicts[name] == byvalue.ValueSafe {
		if !c.legacy {
			st.bridge = append(st.bridge, &ir.ExternTypeDecl{Name: def.Name})
		}
		st.bridge = append(st.bridge, &ir.StructDef{
			Attrs:  ir.StripAttrs(def.Attrs, "repr"),
			Name:   def.Name,
			Fields: def.Fields,
		})
		return
	}

	// Opaque: the layout is never exposed. The alias plus a single-field
	// owning wrapper lets the bridge compiler reference a type it only
	// knows by name.
	st.bridge = append(st.bridge,
		&ir.ExternTypeDecl{Name: def.Name},
		&ir.StructDef{
			Name: def.Name + wrapperSuffix,
			Fields: []ir.Field{{
				Name: wrapperField,
				Ty:   ir.NamedWithArgs(uniquePtrName, ir.Named(def.Name)),
			}},
		},
	)
}

// convertEnum strips low-level attributes and records the enum as handled.
func (c *Converter) convertEnum(st *passState, def *ir.EnumDef) {
	st.recordEncountered(ir.EncounteredEnum, ir.Unqualified(def.Name))
	if !c.legacy {
		st.bridge = append(st.bridge, &ir.ExternTypeDecl{Name: def.Name})
	}
	st.bridge = append(st.bridge, &ir.EnumDef{
		Attrs:    ir.StripAttrs(def.Attrs, "repr", "derive"),
		Name:     def.Name,
		Variants: def.Variants,
	})
}

// convertImpl handles constructor exposure. A method literally named "new"
// becomes a recorded factory need plus a synthesized make_unique method
// whose body calls the conventional free factory; other methods arrive
// through foreign blocks and are dropped here. Blocks whose self type
// never appeared as an aggregate are dropped whole, which keeps every
// recorded need tied to an observed aggregate.
func (c *Converter) convertImpl(st *passState, impl *ir.ImplBlock) {
	self, ok := impl.SelfType.(*ir.NamedType)
	if !ok {
		return
	}
	name := self.QualifiedName()
	if !st.isAggregate(name) {
		Logger().Debug("dropping impl block for undiscovered type", zap.String("type", name.String()))
		return
	}

	var methods []ir.Method
	for _, m := range impl.Methods {
		if m.Sig.Name != ctorName {
			continue
		}
		st.needs = append(st.needs, &ir.MakeUnique{Type: name, CtorArgs: ctorArgTypes(&m.Sig)})
		methods = append(methods, ir.Method{
			Sig: ir.Signature{
				Name: factoryMethod,
				Ret:  ir.NamedWithArgs(uniquePtrName, ir.Named(name.Name())),
			},
			Body: &ir.Call{Func: name.Name() + "_" + factoryMethod},
		})
	}
	if len(methods) > 0 {
		st.out = append(st.out, &ir.ImplBlock{SelfType: ir.Named(name.Name()), Methods: methods})
	}
}

// ctorArgTypes collects the named argument types of a constructor for the
// native-helper generator. The synthesized factory call does not take
// these arguments yet; the generator receives the list regardless.
func ctorArgTypes(sig *ir.Signature) []ir.QualifiedName {
	var out []ir.QualifiedName
	for _, p := range sig.Params {
		if p.Name == rawReceiver {
			continue
		}
		if nt, ok := p.Ty.(*ir.NamedType); ok {
			out = append(out, nt.QualifiedName())
		}
	}
	return out
}
