package parser

import "github.com/asterlang/aster/internal/token"

// Precedence levels, lowest to highest — grounded on the teacher's
// precedences table shape (one map from token kind to precedence level),
// adapted to the C-family operator set and binding order spec.md §3 asks
// for: assignment/ternary bind weakest, then logical-or, logical-and,
// bitwise or/xor/and, equality, relational (including is/as), shift,
// additive, multiplicative, unary, then postfix call/index/member access.
const (
	_ int = iota
	precLowest
	precAssign
	precTernary
	precLogOr
	precLogAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

var precedences = map[token.Kind]int{
	token.ASSIGN:        precAssign,
	token.PLUS_ASSIGN:   precAssign,
	token.MINUS_ASSIGN:  precAssign,
	token.STAR_ASSIGN:   precAssign,
	token.SLASH_ASSIGN:  precAssign,
	token.PERCENT_ASSIGN: precAssign,
	token.AMP_ASSIGN:    precAssign,
	token.PIPE_ASSIGN:   precAssign,
	token.CARET_ASSIGN:  precAssign,
	token.SHL_ASSIGN:    precAssign,
	token.SHR_ASSIGN:    precAssign,
	token.QUESTION: precTernary,
	token.OROR:     precLogOr,
	token.ANDAND:   precLogAnd,
	token.PIPE:     precBitOr,
	token.CARET:    precBitXor,
	token.AMP:      precBitAnd,
	token.EQ:       precEquality,
	token.NEQ:      precEquality,
	token.LT:       precRelational,
	token.GT:       precRelational,
	token.LE:       precRelational,
	token.GE:       precRelational,
	token.IS:       precRelational,
	token.AS:       precRelational,
	token.SHL:      precShift,
	token.SHR:      precShift,
	token.PLUS:     precAdditive,
	token.MINUS:    precAdditive,
	token.STAR:     precMultiplicative,
	token.SLASH:    precMultiplicative,
	token.PERCENT:  precMultiplicative,
	token.LPAREN:   precPostfix,
	token.LBRACK:   precPostfix,
	token.DOT:      precPostfix,
	token.INC:      precPostfix,
	token.DEC:      precPostfix,
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.cur.Kind]; ok {
		return pr
	}
	return precLowest
}
