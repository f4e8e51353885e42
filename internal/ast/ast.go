// Package ast defines Aster's abstract syntax tree: the four node families
// spec.md §3 describes (declarations, statements, expressions, type
// signatures), each node carrying a FileRange. This is spec.md's C4.
//
// Resolution (spec.md §4.2: "resolve as left-side" / "resolve as right-side"
// hooks that may substitute a node) lives in internal/resolver as ordinary
// functions operating on these types via type switches, not as methods on
// the nodes themselves — the same shape the teacher's internal/semantic
// analyze_*.go free functions use. ast therefore has no dependency on
// internal/symbols; a resolved node's symbol is stored behind the SymbolRef
// and TypeRef interfaces declared below, which internal/symbols's concrete
// types satisfy without ast importing it.
package ast

import "github.com/asterlang/aster/internal/diag"

// Node is the root interface every AST node satisfies.
type Node interface {
	Range() diag.FileRange
}

// TypeRef is the resolved-type handle spec.md §3 attaches to every resolved
// expression ("null-typed" is legal only for the cases spec.md enumerates).
// internal/symbols's Type values satisfy this.
type TypeRef interface {
	TypeName() string
}

// SymbolRef is the resolved-symbol handle an identifier/member-access
// expression carries after lowering. internal/symbols's symbol entries
// satisfy this.
type SymbolRef interface {
	SymbolKind() string
	SymbolName() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	exprNode()
	// ResolvedType returns the expression's resolved type, or nil before
	// pass 4 resolves it (or for the legal null-typed cases spec.md §3
	// invariant 7 names).
	ResolvedType() TypeRef
	SetResolvedType(TypeRef)
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	stmtNode()
}

// Declaration is any top-level or member declaration.
type Declaration interface {
	Node
	declNode()
}

// ExprBase is embedded by every Expression implementation to supply the
// FileRange and resolved-type bookkeeping without repeating it per type.
type ExprBase struct {
	Rng  diag.FileRange
	Type TypeRef
}

func (b *ExprBase) Range() diag.FileRange      { return b.Rng }
func (b *ExprBase) exprNode()                  {}
func (b *ExprBase) ResolvedType() TypeRef       { return b.Type }
func (b *ExprBase) SetResolvedType(t TypeRef)   { b.Type = t }

// StmtBase is embedded by every Statement implementation.
type StmtBase struct {
	Rng diag.FileRange
}

func (b *StmtBase) Range() diag.FileRange { return b.Rng }
func (b *StmtBase) stmtNode()             {}

// DeclBase is embedded by every Declaration implementation.
type DeclBase struct {
	Rng diag.FileRange
}

func (b *DeclBase) Range() diag.FileRange { return b.Rng }
func (b *DeclBase) declNode()             {}

// Identifier is a user-written name plus its origin location (spec.md §3).
type Identifier struct {
	Text  string
	Rng   diag.FileRange
}

func (id *Identifier) Range() diag.FileRange { return id.Rng }

// Program is the root of a compilation: the list of global namespaces
// produced by merging every parsed source file, per spec.md §6 ("Multiple
// source files merge by placing all their global Namespace roots under a
// single Program node").
type Program struct {
	Namespaces []*Namespace
}

func (p *Program) Range() diag.FileRange {
	if len(p.Namespaces) == 0 {
		return diag.NoRange
	}
	r := p.Namespaces[0].Range()
	for _, n := range p.Namespaces[1:] {
		r = diag.Join(r, n.Range())
	}
	return r
}
