package ir

import "strings"

// nsSep separates namespace segments in rendered qualified names.
const nsSep = "::"

// QualifiedName identifies a type or function in the foreign interface.
// It is immutable and comparable, so it can be used directly as a map or
// set key; equality is structural.
type QualifiedName struct {
	ns   string // enclosing namespace, "" for the root namespace
	name string // final identifier, "Widget", "Widget_resize"
}

// NewQualifiedName builds a name inside the given namespace.
func NewQualifiedName(ns, name string) QualifiedName {
	return QualifiedName{ns: ns, name: name}
}

// Unqualified builds a root-namespace name, the common case for identifiers
// produced by the flattening scanner.
func Unqualified(name string) QualifiedName {
	return QualifiedName{name: name}
}

// ParseQualifiedName splits "ns::Name" (or a bare "Name") into a
// QualifiedName. The last separator wins, so nested namespaces stay intact
// in the namespace part.
func ParseQualifiedName(s string) QualifiedName {
	if i := strings.LastIndex(s, nsSep); i >= 0 {
		return QualifiedName{ns: s[:i], name: s[i+len(nsSep):]}
	}
	return QualifiedName{name: s}
}

// Namespace returns the enclosing namespace, "" at the root.
func (q QualifiedName) Namespace() string { return q.ns }

// Name returns the final identifier.
func (q QualifiedName) Name() string { return q.name }

// IsEmpty reports whether q is the zero name.
func (q QualifiedName) IsEmpty() bool { return q.ns == "" && q.name == "" }

func (q QualifiedName) String() string {
	if q.ns == "" {
		return q.name
	}
	return q.ns + nsSep + q.name
}
