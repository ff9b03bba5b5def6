package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The scanning stage serializes raw modules as one JSON object tree. Every
// polymorphic node carries a "kind" discriminator; the decoders below map
// each kind onto its concrete model type and reject anything outside the
// closed sets.

// DecodeModule parses the JSON form of a raw module.
func DecodeModule(data []byte) (*Module, error) {
	var m Module
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode raw module: %w", err)
	}
	return &m, nil
}

func (m *Module) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  string          `json:"name"`
		Attrs []Attr          `json:"attrs"`
		Body  json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Name = raw.Name
	m.Attrs = raw.Attrs
	m.Body = nil
	if isNull(raw.Body) {
		return nil
	}
	var b Block
	if err := json.Unmarshal(raw.Body, &b); err != nil {
		return err
	}
	m.Body = &b
	return nil
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Items = make([]Item, 0, len(raw.Items))
	for _, msg := range raw.Items {
		it, err := decodeItem(msg)
		if err != nil {
			return err
		}
		b.Items = append(b.Items, it)
	}
	return nil
}

func decodeItem(msg json.RawMessage) (Item, error) {
	kind, err := peekKind(msg)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "module":
		var v Module
		return &v, json.Unmarshal(msg, &v)
	case "foreign_block":
		var v ForeignBlock
		return &v, json.Unmarshal(msg, &v)
	case "struct":
		var v StructDef
		return &v, json.Unmarshal(msg, &v)
	case "enum":
		var v EnumDef
		return &v, json.Unmarshal(msg, &v)
	case "impl":
		var v ImplBlock
		return &v, json.Unmarshal(msg, &v)
	case "extern_type":
		var v ExternTypeDecl
		return &v, json.Unmarshal(msg, &v)
	case "verbatim":
		var v Verbatim
		return &v, json.Unmarshal(msg, &v)
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
}

func (b *ForeignBlock) UnmarshalJSON(data []byte) error {
	var raw struct {
		ABI   string            `json:"abi"`
		Attrs []Attr            `json:"attrs"`
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ABI = raw.ABI
	b.Attrs = raw.Attrs
	b.Items = make([]ForeignItem, 0, len(raw.Items))
	for _, msg := range raw.Items {
		it, err := decodeForeignItem(msg)
		if err != nil {
			return err
		}
		b.Items = append(b.Items, it)
	}
	return nil
}

func decodeForeignItem(msg json.RawMessage) (ForeignItem, error) {
	kind, err := peekKind(msg)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "fn":
		var v ForeignFunc
		return &v, json.Unmarshal(msg, &v)
	case "include":
		var v Include
		return &v, json.Unmarshal(msg, &v)
	case "static":
		var v ForeignStatic
		return &v, json.Unmarshal(msg, &v)
	default:
		return nil, fmt.Errorf("unknown foreign item kind %q", kind)
	}
}

func (d *StructDef) UnmarshalJSON(data []byte) error {
	var raw struct {
		Attrs  []Attr  `json:"attrs"`
		Name   string  `json:"name"`
		Fields []Field `json:"fields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Attrs = raw.Attrs
	d.Name = raw.Name
	d.Fields = raw.Fields
	return nil
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name string          `json:"name"`
		Ty   json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ty, err := decodeType(raw.Ty)
	if err != nil {
		return err
	}
	f.Name = raw.Name
	f.Ty = ty
	return nil
}

func (d *EnumDef) UnmarshalJSON(data []byte) error {
	var raw struct {
		Attrs    []Attr        `json:"attrs"`
		Name     string        `json:"name"`
		Variants []EnumVariant `json:"variants"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Attrs = raw.Attrs
	d.Name = raw.Name
	d.Variants = raw.Variants
	return nil
}

func (v *EnumVariant) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  string `json:"name"`
		Value *int64 `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Name = raw.Name
	v.Value = raw.Value
	return nil
}

func (i *ImplBlock) UnmarshalJSON(data []byte) error {
	var raw struct {
		SelfType json.RawMessage `json:"self_type"`
		Methods  []Method        `json:"methods"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	self, err := decodeType(raw.SelfType)
	if err != nil {
		return err
	}
	i.SelfType = self
	i.Methods = raw.Methods
	return nil
}

func (m *Method) UnmarshalJSON(data []byte) error {
	var raw struct {
		Attrs []Attr    `json:"attrs"`
		Sig   Signature `json:"sig"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Attrs = raw.Attrs
	m.Sig = raw.Sig
	m.Body = nil // bodies only exist on synthesized output
	return nil
}

func (f *ForeignFunc) UnmarshalJSON(data []byte) error {
	var raw struct {
		Attrs []Attr    `json:"attrs"`
		Sig   Signature `json:"sig"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Attrs = raw.Attrs
	f.Sig = raw.Sig
	f.Method = false
	return nil
}

func (s *ForeignStatic) UnmarshalJSON(data []byte) error {
	var raw struct {
		Attrs []Attr          `json:"attrs"`
		Name  string          `json:"name"`
		Ty    json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ty, err := decodeType(raw.Ty)
	if err != nil {
		return err
	}
	s.Attrs = raw.Attrs
	s.Name = raw.Name
	s.Ty = ty
	return nil
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string          `json:"name"`
		Params []Param         `json:"params"`
		Ret    json.RawMessage `json:"ret"`
		Unsafe bool            `json:"unsafe"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ret, err := decodeType(raw.Ret)
	if err != nil {
		return err
	}
	s.Name = raw.Name
	s.Params = raw.Params
	s.Ret = ret
	s.Unsafe = raw.Unsafe
	return nil
}

func (p *Param) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name string          `json:"name"`
		Ty   json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ty, err := decodeType(raw.Ty)
	if err != nil {
		return err
	}
	p.Name = raw.Name
	p.Ty = ty
	return nil
}

func decodeType(msg json.RawMessage) (Type, error) {
	if isNull(msg) {
		return nil, nil
	}
	kind, err := peekKind(msg)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "named":
		var v NamedType
		return &v, json.Unmarshal(msg, &v)
	case "pointer":
		var v PointerType
		return &v, json.Unmarshal(msg, &v)
	case "reference":
		var v ReferenceType
		return &v, json.Unmarshal(msg, &v)
	case "verbatim":
		var v VerbatimType
		return &v, json.Unmarshal(msg, &v)
	default:
		return nil, fmt.Errorf("unknown type kind %q", kind)
	}
}

func (t *NamedType) UnmarshalJSON(data []byte) error {
	var raw struct {
		Segments []TypeSegment `json:"segments"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Segments) == 0 {
		return fmt.Errorf("named type with no segments")
	}
	t.Segments = raw.Segments
	return nil
}

func (s *TypeSegment) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name string            `json:"name"`
		Args []json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Name = raw.Name
	s.Args = nil
	for _, msg := range raw.Args {
		arg, err := decodeType(msg)
		if err != nil {
			return err
		}
		s.Args = append(s.Args, arg)
	}
	return nil
}

func (t *PointerType) UnmarshalJSON(data []byte) error {
	mutable, elem, err := decodeIndirect(data)
	if err != nil {
		return err
	}
	t.Mutable = mutable
	t.Elem = elem
	return nil
}

func (t *ReferenceType) UnmarshalJSON(data []byte) error {
	mutable, elem, err := decodeIndirect(data)
	if err != nil {
		return err
	}
	t.Mutable = mutable
	t.Elem = elem
	return nil
}

// decodeIndirect handles the shared shape of pointer and reference nodes.
func decodeIndirect(data []byte) (bool, Type, error) {
	var raw struct {
		Mutable bool            `json:"mutable"`
		Elem    json.RawMessage `json:"elem"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return false, nil, err
	}
	if isNull(raw.Elem) {
		return false, nil, fmt.Errorf("pointer or reference with no element type")
	}
	elem, err := decodeType(raw.Elem)
	if err != nil {
		return false, nil, err
	}
	return raw.Mutable, elem, nil
}

func peekKind(msg json.RawMessage) (string, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(msg, &probe); err != nil {
		return "", err
	}
	if probe.Kind == "" {
		return "", fmt.Errorf("missing kind discriminator")
	}
	return probe.Kind, nil
}

func isNull(msg json.RawMessage) bool {
	return len(msg) == 0 || bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}
