package ir

// Attr is one C-style annotation carried on a declaration, e.g.
// {Name: "repr", Arg: "C"} or {Name: "link_name", Arg: "_ZN6Widget6resizeEi"}.
type Attr struct {
	Name string `json:"name"`
	Arg  string `json:"arg,omitempty"`
}

// HasAttr reports whether attrs contains an attribute with the given name.
func HasAttr(attrs []Attr, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// FindAttr returns the first attribute with the given name.
func FindAttr(attrs []Attr, name string) (Attr, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// StripAttrs returns attrs without any attribute named in names. The input
// slice is left untouched; callers keep raw declarations intact while the
// rewritten copy drops low-level annotations.
func StripAttrs(attrs []Attr, names ...string) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		if drop[a.Name] {
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
