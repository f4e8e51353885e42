package symbols

import "github.com/asterlang/aster/internal/diag"

// TypeKind discriminates Type's subtypes. Type is deliberately one struct
// with a Kind tag rather than an interface-per-kind hierarchy (unlike
// Entry): spec.md §3 asks only for Array/Ref/Enum "subtypes" of a single
// Type entry, and every consumer (the importer, the resolver's
// assignability checks) needs to interrogate a type's element/base without
// a type switch, so a tagged struct with kind-specific fields left zero for
// other kinds is the idiomatic fit — the same shape the teacher's
// types.Type implementations converge on through composition.
type TypeKind int

const (
	KindClass TypeKind = iota
	KindStruct
	KindInterface
	KindEnum
	KindArray
	KindRef
	KindPrimitive
	KindVoid
)

// Type is a resolved type symbol. It satisfies ast.TypeRef via TypeName.
type Type struct {
	Name string
	Kind TypeKind
	Rng  diag.FileRange

	// Class/struct/interface/enum fields.
	Base       *Type   // single base class, or nil (spec.md's single-inheritance rule)
	Interfaces []*Type // implemented interfaces
	Scope      *Scope  // member scope; locked after pass 3
	Sealed     bool
	Abstract   bool

	// Enum fields.
	Members []*FieldEntry // literal fields, in declaration order

	// Array fields.
	Elem *Type
	Rank int

	// Ref fields.
	RefElem *Type
	RefOut  bool

	// Set when this Type wraps a runtime/CLR type discovered by the
	// importer (spec.md §4.4); nil for types declared directly in source.
	Imported bool
}

func (t *Type) SymbolKind() string        { return "type" }
func (t *Type) SymbolName() string        { return t.Name }
func (t *Type) DeclRange() diag.FileRange { return t.Rng }
func (t *Type) TypeName() string          { return t.Name }

// IsClassLike reports whether t is a class, struct or interface — the three
// kinds that carry a member Scope and participate in inheritance checks.
func (t *Type) IsClassLike() bool {
	return t.Kind == KindClass || t.Kind == KindStruct || t.Kind == KindInterface
}

// Predeclared built-in types every compilation sees regardless of which
// runtime types the importer ends up binding (spec.md §4.4's default alias
// set: int, void, char, bool, string, object).
var (
	Int    = &Type{Name: "int", Kind: KindPrimitive}
	Char   = &Type{Name: "char", Kind: KindPrimitive}
	Bool   = &Type{Name: "bool", Kind: KindPrimitive}
	Float  = &Type{Name: "float", Kind: KindPrimitive}
	String = &Type{Name: "string", Kind: KindPrimitive}
	Void   = &Type{Name: "void", Kind: KindVoid}
	Object = &Type{Name: "object", Kind: KindClass}
)

// ArrayOf interns (per call site — callers that need sharing should memoize
// themselves; spec.md does not require array types to be canonicalized) an
// array type of elem with the given rank.
func ArrayOf(elem *Type, rank int) *Type {
	return &Type{Name: elem.Name, Kind: KindArray, Elem: elem, Rank: rank}
}

// RefTo builds a by-reference wrapper type ("ref T" / "out T").
func RefTo(elem *Type, out bool) *Type {
	return &Type{Name: elem.Name, Kind: KindRef, RefElem: elem, RefOut: out}
}
