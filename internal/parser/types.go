package parser

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/diag"
	"github.com/asterlang/aster/internal/token"
)

// parseTypeSig parses a type signature: a dotted name followed by zero or
// more bracket-group suffixes. spec.md §3's worked example ("X[][,,][,] is
// one-of-three-of-two-of-X") makes the left-most bracket group the
// outermost ArrayTypeSig and the right-most group the one that wraps the
// element type directly, so the bracket groups are collected left-to-right
// first and then folded right-to-left: the last-encountered rank wraps X,
// and each earlier rank wraps that result, leaving the first-encountered
// rank as the root.
// parseBareTypeSig parses just a dotted name, with no bracket suffix —
// used both as parseTypeSig's base case and directly by "new T[...]"
// parsing, which needs the element type without consuming the array's
// size-expression brackets as if they were bare rank brackets.
func (p *Parser) parseBareTypeSig() ast.TypeSig {
	start := p.cur.Range
	name := p.expectIdent()
	for p.at(token.DOT) {
		p.advance()
		name = name + "." + p.expectIdent()
	}
	return &ast.SimpleTypeSig{TypeSigBase: ast.TypeSigBase{Rng: diag.Join(start, p.lastRange)}, Name: name}
}

func (p *Parser) parseTypeSig() ast.TypeSig {
	start := p.cur.Range
	elem := p.parseBareTypeSig()

	var ranks []int
	var rngs []diag.FileRange
	for p.at(token.LBRACK) {
		p.advance()
		rank := 1
		for p.at(token.COMMA) {
			rank++
			p.advance()
		}
		p.expect(token.RBRACK)
		ranks = append(ranks, rank)
		rngs = append(rngs, diag.Join(start, p.lastRange))
	}

	sig := elem
	for i := len(ranks) - 1; i >= 0; i-- {
		sig = wrapArray(sig, ranks[i], rngs[i])
	}
	return sig
}

func wrapArray(elem ast.TypeSig, rank int, rng diag.FileRange) ast.TypeSig {
	return &ast.ArrayTypeSig{TypeSigBase: ast.TypeSigBase{Rng: rng}, Elem: elem, Rank: rank}
}

// parseParamTypeSig parses a parameter's type, which may be prefixed with
// "ref"/"out" to denote a by-reference parameter.
func (p *Parser) parseParamFlowAndType() (ast.ParamFlow, ast.TypeSig) {
	switch p.cur.Kind {
	case token.REF:
		p.advance()
		return ast.FlowRef, p.parseTypeSig()
	case token.OUT:
		p.advance()
		return ast.FlowOut, p.parseTypeSig()
	case token.PARAMS:
		p.advance()
		return ast.FlowParams, p.parseTypeSig()
	default:
		return ast.FlowIn, p.parseTypeSig()
	}
}
