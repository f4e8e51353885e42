package ast

import "github.com/asterlang/aster/internal/diag"

// Modifiers packs the member-level keyword set (spec.md §3: accessibility,
// static/virtual/override/abstract/sealed/readonly/const) into one bitset so
// every declaration node carries it uniformly instead of a grab-bag of bools.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModProtected
	ModInternal
	ModStatic
	ModVirtual
	ModOverride
	ModAbstract
	ModSealed
	ModReadonly
	ModConst
	ModNew
)

func (m Modifiers) Has(f Modifiers) bool { return m&f != 0 }

// Namespace groups using-directives, nested namespaces and type
// declarations under a dotted name (spec.md §3). The global/file-level
// namespace uses an empty Name.
type Namespace struct {
	DeclBase
	Name       string
	Usings     []*UsingDirective
	Namespaces []*Namespace
	Types      []TypeDecl
}

func (n *Namespace) Range() diag.FileRange { return n.DeclBase.Range() }

// UsingDirective is either an alias ("using X = Some.Namespace;") or a
// search-path import ("using Some.Namespace;"); Alias is empty for the
// latter.
type UsingDirective struct {
	DeclBase
	Alias  string
	Target string
}

// TypeDecl is any declaration that introduces a named type into a
// namespace's scope: class, struct, interface, enum or delegate.
type TypeDecl interface {
	Declaration
	typeDeclNode()
	TypeName() string
}

type TypeDeclBase struct {
	DeclBase
	Name string
}

func (b *TypeDeclBase) typeDeclNode()     {}
func (b *TypeDeclBase) TypeName() string  { return b.Name }

// ClassGenre distinguishes the three brace-bodied type declaration forms
// spec.md §3 folds into one family: class, struct and interface share a
// member list shape and differ only in semantic rules pass 2-4 enforce.
type ClassGenre int

const (
	GenreClass ClassGenre = iota
	GenreStruct
	GenreInterface
)

// ClassDecl is a class/struct/interface declaration: a name, its modifiers,
// zero or one base class plus zero or more implemented interfaces (spec.md
// §3's single-inheritance rule — enforced in the resolver, not the parser),
// and its member lists.
type ClassDecl struct {
	TypeDeclBase
	Genre       ClassGenre
	Modifiers   Modifiers
	Supertypes  []*SimpleTypeSig // base class (if any) may appear at any position; pass 2 classifies entries by kind
	NestedTypes []TypeDecl
	Fields      []*FieldDecl
	Methods     []*MethodDecl
	Properties  []*PropertyDecl
	Events      []*EventDecl
}

// EnumMember is one "Name" or "Name = value" entry of an EnumDecl.
type EnumMember struct {
	Name        string
	Initializer Expression // nil when the value is implicit (previous + 1)
	Rng         diag.FileRange
}

// EnumDecl declares an enum type and its ordered member list (spec.md §3:
// enums resolve to a sealed value type backed by int, each member a literal
// FieldEntry that pass 1 builds when it registers the enum type).
type EnumDecl struct {
	TypeDeclBase
	Modifiers Modifiers
	Members   []EnumMember
}

// DelegateDecl declares a delegate type signature. The resolver builds the
// sealed class spec.md §3 describes: pass 1 registers it, pass 2 adds its
// Invoke method and pass 3 its static Combine/Remove methods;
// BeginInvoke/EndInvoke are not synthesized. DelegateDecl itself only
// records the shape.
type DelegateDecl struct {
	TypeDeclBase
	Modifiers  Modifiers
	ReturnType TypeSig // nil means void
	Params     []*ParamDecl
}

// ParamFlow is a parameter's passing convention.
type ParamFlow int

const (
	FlowIn ParamFlow = iota
	FlowOut
	FlowRef
	FlowParams
)

// ParamDecl is one formal parameter of a method, constructor or delegate.
type ParamDecl struct {
	Name string
	Type TypeSig
	Flow ParamFlow
	Rng  diag.FileRange
}

func (p *ParamDecl) Range() diag.FileRange { return p.Rng }

// FieldDecl declares an instance or static field, optionally with an
// initializer expression evaluated per spec.md §4.5's field-initializer
// lowering (folded into the constructor prologue during pass 4).
type FieldDecl struct {
	DeclBase
	Name        string
	Type        TypeSig
	Modifiers   Modifiers
	Initializer Expression
}

// MethodDecl is a method or constructor. IsCtor is true when the parser
// recognized an identifier matching the enclosing type name immediately
// followed by "(" (spec.md §3's constructor-vs-method disambiguation rule);
// ReturnType is nil for both constructors and void-returning methods —
// IsCtor disambiguates the two.
type MethodDecl struct {
	DeclBase
	Name        string
	IsCtor      bool
	ReturnType  TypeSig
	Params      []*ParamDecl
	Modifiers   Modifiers
	CtorChain   *CtorChainStmt // non-nil only when IsCtor and an explicit base()/this() call was written
	Body        *Block         // nil for abstract/interface methods
	OperatorTok string         // non-empty for "operator <tok>" overloads
}

// PropertyDecl declares a property with up to one get and one set accessor
// (spec.md §3 invariant: at most one of each). An accessor with a nil Body
// is abstract/interface-only.
type PropertyDecl struct {
	DeclBase
	Name      string
	Type      TypeSig
	Modifiers Modifiers
	Getter    *MethodDecl
	Setter    *MethodDecl
	Indexer   bool // true for "this[...]" indexers; Name is synthesized ("Item")
	IndexParams []*ParamDecl
}

// EventDecl declares an event of a delegate type. AddAccessor/RemoveAccessor
// are nil when the event uses the compiler-synthesized backing-field form
// spec.md §4.5 describes instead of explicit add/remove blocks.
type EventDecl struct {
	DeclBase
	Name          string
	Type          TypeSig
	Modifiers     Modifiers
	AddAccessor   *MethodDecl
	RemoveAccessor *MethodDecl
}

// LocalVarDecl declares a local variable inside a Block; it is itself a
// Statement so it can appear interleaved with ordinary statements exactly
// where the programmer wrote it, which is how the teacher's parser threads
// local declarations into a block's statement list too.
type LocalVarDecl struct {
	StmtBase
	Name        string
	Type        TypeSig // nil requests type inference from Initializer
	Initializer Expression
}
