// Package known is the static table of well-known foreign types: names the
// bridge layer understands natively and swaps in for their raw counterparts
// during type conversion.
package known

// TypeDetails describes one well-known foreign type.
type TypeDetails struct {
	// Replacement is the bridge-safe leaf name substituted for the raw name.
	Replacement string
	// ByValueSafe reports whether a value-safe aggregate may embed this
	// type directly. Unique-ownership pointers qualify; string and vector
	// types hold internal pointers and do not.
	ByValueSafe bool
}

var wellKnown = map[string]TypeDetails{
	"std_string":     {Replacement: "CxxString", ByValueSafe: false},
	"std_unique_ptr": {Replacement: "UniquePtr", ByValueSafe: true},
	"std_vector":     {Replacement: "CxxVector", ByValueSafe: false},
}

var primitives = map[string]struct{}{
	"bool": {}, "char": {},
	"i8": {}, "i16": {}, "i32": {}, "i64": {}, "isize": {},
	"u8": {}, "u16": {}, "u32": {}, "u64": {}, "usize": {},
	"f32": {}, "f64": {},
}

// Lookup returns the details for a well-known raw type name.
func Lookup(name string) (TypeDetails, bool) {
	d, ok := wellKnown[name]
	return d, ok
}

// Replacement returns the bridge-safe leaf name for a well-known raw type
// name, or ok=false when the name is not in the table.
func Replacement(name string) (string, bool) {
	d, ok := wellKnown[name]
	if !ok {
		return "", false
	}
	return d.Replacement, true
}

// ByValueSafe reports whether name may appear as a field of a value-safe
// aggregate. Both the raw name and its replacement answer identically, so
// callers can ask about either side of the substitution.
func ByValueSafe(name string) bool {
	if d, ok := wellKnown[name]; ok {
		return d.ByValueSafe
	}
	for _, d := range wellKnown {
		if d.Replacement == name {
			return d.ByValueSafe
		}
	}
	return false
}

// IsKnown reports whether name is in the table, on either side of the
// substitution.
func IsKnown(name string) bool {
	if _, ok := wellKnown[name]; ok {
		return true
	}
	for _, d := range wellKnown {
		if d.Replacement == name {
			return true
		}
	}
	return false
}

// IsPrimitive reports whether name is a builtin scalar that is always safe
// to pass and embed by value.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}
