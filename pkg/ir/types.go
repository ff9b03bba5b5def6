package ir

import "strings"

// Type is the closed set of type shapes appearing in foreign signatures and
// fields. Concrete shapes are NamedType, PointerType, ReferenceType and
// VerbatimType; nothing outside this package can add a shape.
type Type interface {
	isType()
}

// TypeSegment is one path element of a NamedType, optionally carrying
// generic arguments, e.g. "UniquePtr" with one argument.
type TypeSegment struct {
	Name string
	Args []Type
}

// NamedType is a path-shaped type: one or more segments, the last of which
// names the type itself. Primitives ("i32") arrive as single-segment paths.
type NamedType struct {
	Segments []TypeSegment
}

// Named builds a single-segment NamedType, the common case.
func Named(name string) *NamedType {
	return &NamedType{Segments: []TypeSegment{{Name: name}}}
}

// NamedWithArgs builds a single-segment NamedType carrying generic arguments.
func NamedWithArgs(name string, args ...Type) *NamedType {
	return &NamedType{Segments: []TypeSegment{{Name: name, Args: args}}}
}

// Leaf returns the final segment, the one naming the type. A NamedType with
// no segments never leaves the decoder, so Leaf assumes at least one.
func (t *NamedType) Leaf() *TypeSegment {
	return &t.Segments[len(t.Segments)-1]
}

// QualifiedName flattens the path into a QualifiedName: leading segments
// become the namespace, the final segment the identifier.
func (t *NamedType) QualifiedName() QualifiedName {
	if len(t.Segments) == 1 {
		return Unqualified(t.Segments[0].Name)
	}
	parts := make([]string, 0, len(t.Segments)-1)
	for _, s := range t.Segments[:len(t.Segments)-1] {
		parts = append(parts, s.Name)
	}
	return NewQualifiedName(strings.Join(parts, nsSep), t.Leaf().Name)
}

// PointerType is a raw pointer as produced by the scanner. The rewriter
// never emits one; converted output carries ReferenceType instead.
type PointerType struct {
	Mutable bool
	Elem    Type
}

// ReferenceType is a borrowed reference of the given mutability. No
// lifetime is modeled; the bridge compiler leaves it unbound.
type ReferenceType struct {
	Mutable bool
	Elem    Type
}

// VerbatimType carries any type shape the model does not break down
// further (arrays, function pointers, ...). It passes through conversion
// untouched.
type VerbatimType struct {
	Text string
}

func (*NamedType) isType()     {}
func (*PointerType) isType()   {}
func (*ReferenceType) isType() {}
func (*VerbatimType) isType()  {}
