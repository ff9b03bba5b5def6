// Package byvalue decides which foreign aggregates may cross the bridge by
// value. Requests are opt-in: anything not explicitly requested and proven
// stays opaque, the safe fallback.
package byvalue

import (
	"fmt"

	"github.com/cmmoran/bridgegen/internal/known"
	"github.com/cmmoran/bridgegen/pkg/ir"
)

// Verdict is the per-aggregate classification result.
type Verdict int

const (
	// Opaque types stay behind indirection; their layout is never exposed.
	Opaque Verdict = iota
	// ValueSafe types may be copied across the bridge boundary whole.
	ValueSafe
)

func (v Verdict) String() string {
	if v == ValueSafe {
		return "value-safe"
	}
	return "opaque"
}

// UnprovableTypeError reports the first type that blocked a value-safety
// proof.
type UnprovableTypeError struct {
	Requested ir.QualifiedName // the requested type whose proof failed
	Offender  ir.QualifiedName // the type that could not be proven safe
}

func (e *UnprovableTypeError) Error() string {
	if e.Offender == e.Requested {
		return fmt.Sprintf("type %s cannot be passed by value", e.Requested)
	}
	return fmt.Sprintf("type %s cannot be passed by value: dependency %s cannot be proven safe", e.Requested, e.Offender)
}

// Checker accumulates aggregate definitions during ingestion and answers
// value-safety requests afterwards. Classification itself mutates nothing;
// all checker state is written during ingestion only.
type Checker struct {
	structs map[ir.QualifiedName][]ir.QualifiedName // aggregate → field dependency names
}

// NewChecker returns an empty checker. Primitive and well-known type safety
// comes from the static registry, so nothing is seeded per instance.
func NewChecker() *Checker {
	return &Checker{structs: make(map[ir.QualifiedName][]ir.QualifiedName)}
}

// IngestStruct records an aggregate and its field dependency list. The list
// is not validated here; Classify resolves it. Re-ingesting the same name
// replaces the previous record.
func (c *Checker) IngestStruct(def *ir.StructDef) {
	c.structs[ir.Unqualified(def.Name)] = fieldDeps(def)
}

// Classify proves every requested type transitively value-safe, or fails
// with the first type that blocks a proof. The returned map covers every
// ingested aggregate: requested types and the dependencies their proofs
// pulled in are ValueSafe, everything else Opaque.
func (c *Checker) Classify(requests []ir.QualifiedName) (map[ir.QualifiedName]Verdict, error) {
	proven := make(map[ir.QualifiedName]bool)
	for _, req := range requests {
		if err := c.prove(req, req, proven, make(map[ir.QualifiedName]bool)); err != nil {
			return nil, err
		}
	}

	verdicts := make(map[ir.QualifiedName]Verdict, len(c.structs))
	for name := range c.structs {
		if proven[name] {
			verdicts[name] = ValueSafe
		} else {
			verdicts[name] = Opaque
		}
	}
	return verdicts, nil
}

// prove walks name's dependency tree depth-first. visiting guards against
// dependency cycles: a type reached again while still being proven cannot
// be shown safe and fails the request.
func (c *Checker) prove(name, requested ir.QualifiedName, proven, visiting map[ir.QualifiedName]bool) error {
	if proven[name] {
		return nil
	}
	if known.IsPrimitive(name.Name()) {
		return nil
	}
	if known.IsKnown(name.Name()) {
		if known.ByValueSafe(name.Name()) {
			return nil
		}
		return &UnprovableTypeError{Requested: requested, Offender: name}
	}

	deps, ingested := c.structs[name]
	if !ingested {
		return &UnprovableTypeError{Requested: requested, Offender: name}
	}
	if visiting[name] {
		return &UnprovableTypeError{Requested: requested, Offender: name}
	}
	visiting[name] = true
	for _, d := range deps {
		if err := c.prove(d, requested, proven, visiting); err != nil {
			return err
		}
	}
	delete(visiting, name)
	proven[name] = true
	return nil
}

// fieldDeps extracts the type names an aggregate's layout depends on.
// Named types contribute their leaf name; pointers and references
// contribute their pointee, since field-access glue needs the pointee
// resolvable even when the field itself is an address.
func fieldDeps(def *ir.StructDef) []ir.QualifiedName {
	var out []ir.QualifiedName
	var walk func(t ir.Type)
	walk = func(t ir.Type) {
		switch t := t.(type) {
		case *ir.NamedType:
			out = append(out, t.QualifiedName())
		case *ir.PointerType:
			walk(t.Elem)
		case *ir.ReferenceType:
			walk(t.Elem)
		}
	}
	for _, f := range def.Fields {
		walk(f.Ty)
	}
	return out
}
