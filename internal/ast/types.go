package ast

import "github.com/asterlang/aster/internal/diag"

// TypeSig is an unresolved, syntax-level type reference as written by the
// programmer (spec.md §3's "type signature" family). Resolution pass 2
// binds each TypeSig to a concrete symbols.Type without mutating the
// signature itself — callers hold onto whatever the resolver returns.
type TypeSig interface {
	Node
	typeSigNode()
}

type TypeSigBase struct {
	Rng diag.FileRange
}

func (b *TypeSigBase) Range() diag.FileRange { return b.Rng }
func (b *TypeSigBase) typeSigNode()          {}

// SimpleTypeSig is a dotted name, optionally qualified (e.g. "Foo",
// "System.Collections.List"), as it appears in source before resolution
// decides whether it denotes a namespace-qualified type or a using-import.
type SimpleTypeSig struct {
	TypeSigBase
	Name string
}

// ArrayTypeSig is an element type followed by one or more bracket groups,
// each holding its rank (the number of commas + 1). Per spec.md §3's worked
// example ("X[][,,][,] is one-of-three-of-two-of-X"), the left-most bracket
// group is outermost and the right-most wraps the element type directly, so
// "T[][,,][,]" nests as ArrayTypeSig{rank 1, Elem: ArrayTypeSig{rank 3, Elem:
// ArrayTypeSig{rank 2, Elem: T}}}.
type ArrayTypeSig struct {
	TypeSigBase
	Elem TypeSig
	Rank int
}

// RefTypeSig marks a by-reference parameter type ("ref T" / "out T").
type RefTypeSig struct {
	TypeSigBase
	Elem TypeSig
	Out  bool // true for "out", false for "ref"
}
