package resolver

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/symbols"
)

// findOverload picks the best-matching header among candidates for argTypes
// by applicability (same arity, every resolved argument assignable to the
// matching parameter) and then by an exact-type tie-break, mirroring the
// teacher's overload-resolution note in symbol_table.go without attempting
// the CLR's full betterness-function algorithm (spec.md leaves the exact
// tie-break rule an implementation detail). Returns (nil, false) when no
// candidate applies, and (nil, true) signals ambiguity — more than one
// candidate applies and none is an exact match on every parameter.
func findOverload(candidates []*symbols.MethodHeader, argTypes []*symbols.Type) (best *symbols.MethodHeader, ambiguous bool) {
	var applicable []*symbols.MethodHeader
	for _, h := range candidates {
		if headerApplies(h, argTypes) {
			applicable = append(applicable, h)
		}
	}
	if len(applicable) == 0 {
		return nil, false
	}
	if len(applicable) == 1 {
		return applicable[0], false
	}
	var exact []*symbols.MethodHeader
	for _, h := range applicable {
		if headerExactMatch(h, argTypes) {
			exact = append(exact, h)
		}
	}
	if len(exact) == 1 {
		return exact[0], false
	}
	return nil, true
}

func headerApplies(h *symbols.MethodHeader, argTypes []*symbols.Type) bool {
	if len(h.Params) != len(argTypes) {
		return false
	}
	for i, p := range h.Params {
		if argTypes[i] == nil {
			continue // an unresolved argument (earlier error) doesn't disqualify by itself
		}
		if !symbols.AssignableTo(argTypes[i], p.Type) {
			return false
		}
	}
	return true
}

func headerExactMatch(h *symbols.MethodHeader, argTypes []*symbols.Type) bool {
	for i, p := range h.Params {
		if argTypes[i] != p.Type {
			return false
		}
	}
	return true
}

// predefinedBinaryResultType computes the result type of a binary operator
// over two primitive/string/enum/bool operands per spec.md §4.5's
// predefined-operator table, without requiring a user-defined op_* overload.
// It returns (nil, false) when no predefined operator applies — the caller
// then looks for a user-defined operator overload, and spec.md §9 Open
// Question 1's decision governs what happens if that also fails for ==/!=.
func predefinedBinaryResultType(op ast.BinaryOp, left, right *symbols.Type) (*symbols.Type, bool) {
	if left == nil || right == nil {
		return nil, false
	}
	switch op {
	case ast.OpEq, ast.OpNeq:
		if left == right || bothNumeric(left, right) {
			return symbols.Bool, true
		}
		return nil, false
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		if bothNumeric(left, right) {
			return symbols.Bool, true
		}
		return nil, false
	case ast.OpLogAnd, ast.OpLogOr:
		if left == symbols.Bool && right == symbols.Bool {
			return symbols.Bool, true
		}
		return nil, false
	case ast.OpAdd:
		if left == symbols.String || right == symbols.String {
			return symbols.String, true
		}
		if bothNumeric(left, right) {
			return widerNumeric(left, right), true
		}
		return nil, false
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		if bothNumeric(left, right) {
			return widerNumeric(left, right), true
		}
		return nil, false
	}
	return nil, false
}

func bothNumeric(a, b *symbols.Type) bool {
	return isNumeric(a) && isNumeric(b)
}

func isNumeric(t *symbols.Type) bool {
	return t == symbols.Int || t == symbols.Float || t == symbols.Char
}

// widerNumeric applies the one promotion rule spec.md's predefined
// arithmetic operators need: int+int stays int, anything involving a float
// operand promotes to float.
func widerNumeric(a, b *symbols.Type) *symbols.Type {
	if a == symbols.Float || b == symbols.Float {
		return symbols.Float
	}
	return symbols.Int
}

// binaryOpToken maps a resolved BinaryExpr's Op back to the operator token
// opNames keys on, so a user-defined "operator +" overload can be looked up
// by the same name a class's member-registration pass filed it under.
var binaryOpToken = map[ast.BinaryOp]string{
	ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "/", ast.OpMod: "%",
	ast.OpBitAnd: "&", ast.OpBitOr: "|", ast.OpBitXor: "^", ast.OpShl: "<<", ast.OpShr: ">>",
	ast.OpEq: "==", ast.OpNeq: "!=", ast.OpLt: "<", ast.OpGt: ">", ast.OpLe: "<=", ast.OpGe: ">=",
}

// lookupOperatorOverload finds a user-defined "operator <op>" applicable to
// (left, right) by checking the left operand's type first, then the right's
// (spec.md §4.5 does not require the two candidate sets to be merged and
// disambiguated against each other — at most one operand type would
// plausibly declare a matching overload in the programs spec.md targets).
// It returns both the owning MethodEntry (the call's symbol identity) and
// the applicable header, since the lowered call needs the former and the
// header alone can't say which type declared it.
func lookupOperatorOverload(op ast.BinaryOp, left, right *symbols.Type) (*symbols.MethodEntry, *symbols.MethodHeader) {
	tok, ok := binaryOpToken[op]
	if !ok {
		return nil, nil
	}
	name, ok := opNames[tok]
	if !ok {
		return nil, nil
	}
	argTypes := []*symbols.Type{left, right}
	for _, t := range []*symbols.Type{left, right} {
		if t == nil || t.Scope == nil {
			continue
		}
		if e, ok := t.Scope.LookupLocal(name); ok {
			if m, ok := e.(*symbols.MethodEntry); ok {
				if h, ambiguous := findOverload(m.Overloads(), argTypes); h != nil && !ambiguous {
					return m, h
				}
			}
		}
	}
	return nil, nil
}
