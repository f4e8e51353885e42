package ast

// Placeholder expression nodes. The parser cannot tell, from grammar alone,
// whether a bare identifier names a local, a field, a type or a namespace
// segment, nor whether "a.b" is a member access, a namespace path or a
// qualified type name — spec.md §3 leaves that ambiguity to semantic
// resolution. These nodes carry exactly enough syntax to defer the decision;
// the resolver's resolveExpr (internal/resolver) returns a ResolvedRefExpr
// or a more specific expression to stand in their place once the ambiguity
// is settled. Every caller that holds an Expression field
// pointing at one of these must re-read the field after resolution runs,
// since resolution returns a (possibly different) node rather than mutating
// this one in place.

// SimpleObjExp is a single bare identifier before resolution decides whether
// it denotes a local variable, a parameter, a field, a type or a namespace.
type SimpleObjExp struct {
	ExprBase
	Name string
}

// DotObjExp is "Left.Name" before resolution decides whether it is a member
// access on Left's value, a nested-namespace path segment, or a qualified
// type name continuation.
type DotObjExp struct {
	ExprBase
	Left Expression
	Name string
}

// TempTypeExp wraps a TypeSig in expression position so it can travel
// through the same Expression-typed fields as ordinary placeholders; the
// resolver turns one into a RefType ResolvedRefExpr. The parser does not
// produce it: "as"/"is", "typeof" and "new T[]" carry their type as a
// TypeSig field directly.
type TempTypeExp struct {
	ExprBase
	Sig TypeSig
}

// RefKind classifies what a ResolvedRefExpr's Symbol denotes.
type RefKind int

const (
	RefNamespace RefKind = iota
	RefType
	RefLocal
	RefParam
	RefField
	RefProperty
	RefEvent
	RefMethodGroup
)

// ResolvedRefExpr is what a SimpleObjExp or DotObjExp becomes once the
// resolver has bound it to a concrete symbol (spec.md §4.2). Symbol is
// opaque from ast's point of view — internal/symbols's entries satisfy the
// SymbolRef interface without ast importing that package.
type ResolvedRefExpr struct {
	ExprBase
	Kind   RefKind
	Symbol SymbolRef
	// Target is the instance the member is accessed through, non-nil only
	// for RefField/RefProperty/RefEvent/RefMethodGroup refs reached via an
	// instance (as opposed to a static member reached through a type name).
	Target Expression
}
