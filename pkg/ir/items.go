package ir

// Item is the closed set of declarations a module body can hold. Concrete
// kinds: ForeignBlock, StructDef, EnumDef, ImplBlock, Module,
// ExternTypeDecl and Verbatim.
type Item interface {
	isItem()
}

// ForeignItem is the closed set of declarations a foreign block can hold.
// Only ForeignFunc is accepted on input; Include is synthesized by the
// rewriter and ForeignStatic exists so unsupported scanner output can be
// represented and rejected with a precise error.
type ForeignItem interface {
	isForeignItem()
}

// Module is a named container of items. A Module with a nil Body is a
// declaration without content; the rewriter refuses to convert one.
type Module struct {
	Name  string
	Attrs []Attr
	Body  *Block
}

// Block is a brace-delimited item list. Distinct from a nil *Block so an
// empty body and a missing body stay distinguishable.
type Block struct {
	Items []Item
}

// ForeignBlock groups native declarations under one ABI marker,
// e.g. `extern "C"`.
type ForeignBlock struct {
	ABI   string
	Attrs []Attr
	Items []ForeignItem
}

// StructDef is an aggregate definition with an ordered field list.
type StructDef struct {
	Attrs  []Attr
	Name   string
	Fields []Field
}

// Field is one struct member.
type Field struct {
	Name string
	Ty   Type
}

// EnumDef is an enumeration with optional explicit discriminants.
type EnumDef struct {
	Attrs    []Attr
	Name     string
	Variants []EnumVariant
}

// EnumVariant is one enum case; Value is nil when the scanner saw no
// explicit discriminant.
type EnumVariant struct {
	Name  string
	Value *int64
}

// ImplBlock attaches methods to a self type. The scanner uses it to expose
// constructors; the rewriter replaces recognized constructors with a
// synthesized factory method.
type ImplBlock struct {
	SelfType Type
	Methods  []Method
}

// Method is a function attached to an impl block. Body is nil on input;
// the rewriter fills it in for synthesized methods.
type Method struct {
	Attrs []Attr
	Sig   Signature
	Body  *Call
}

// Call is the one expression shape a synthesized method body ever needs:
// a plain invocation of a free function.
type Call struct {
	Func string
	Args []string
}

// ExternTypeDecl declares that a type is defined on the native side. The
// rewriter emits one ahead of each converted definition (as a forward
// declaration) and standalone for opaque types.
type ExternTypeDecl struct {
	Name string
}

// Verbatim is any plain declaration the model does not break down. It
// passes through conversion untouched, outside the bridge module.
type Verbatim struct {
	Text string
}

// ForeignFunc is a native function declaration inside a foreign block.
// Method is set by the rewriter when it recognizes and renames a receiver
// parameter.
type ForeignFunc struct {
	Attrs  []Attr
	Sig    Signature
	Method bool
}

// Include directs the bridge compiler to pull in a native header. Output
// only; the rewriter synthesizes these from its configuration.
type Include struct {
	Header string
}

// ForeignStatic is a native global declaration. The rewriter does not
// support it and fails the run when one appears.
type ForeignStatic struct {
	Attrs []Attr
	Name  string
	Ty    Type
}

// Signature is a function's callable shape.
type Signature struct {
	Name   string
	Params []Param
	Ret    Type // nil when the function returns nothing
	Unsafe bool
}

// Param is one formal parameter.
type Param struct {
	Name string
	Ty   Type
}

func (*Module) isItem()         {}
func (*ForeignBlock) isItem()   {}
func (*StructDef) isItem()      {}
func (*EnumDef) isItem()        {}
func (*ImplBlock) isItem()      {}
func (*ExternTypeDecl) isItem() {}
func (*Verbatim) isItem()       {}

func (*ForeignFunc) isForeignItem()   {}
func (*Include) isForeignItem()       {}
func (*ForeignStatic) isForeignItem() {}
