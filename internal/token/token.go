// Package token defines the token vocabulary Aster source text is lexed
// into: the Kind enum, the Token value itself, and the keyword table.
// This is half of spec.md's C2 (Tokens & Lexer contract) — the vocabulary
// both the lexer (internal/lexer) and the parser (internal/parser) share.
package token

import "github.com/asterlang/aster/internal/diag"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	literalBeg
	IDENT  // identifiers: x, MyClass, _private
	INT    // 123, 0xFF, 0b1010
	FLOAT  // 1.5, 1.5e10
	STRING // "hello", "multi\nline"
	CHAR   // 'a'
	literalEnd

	keywordBeg
	TRUE
	FALSE
	NULL
	VOID

	NAMESPACE
	USING
	CLASS
	STRUCT
	INTERFACE
	ENUM
	DELEGATE
	EVENT

	PUBLIC
	PRIVATE
	PROTECTED
	INTERNAL

	STATIC
	VIRTUAL
	OVERRIDE
	ABSTRACT
	SEALED
	READONLY
	CONST
	NEW
	OPERATOR

	BASE
	THIS

	GET
	SET
	ADD
	REMOVE

	IF
	ELSE
	WHILE
	DO
	FOR
	FOREACH
	IN
	SWITCH
	CASE
	DEFAULT
	BREAK
	CONTINUE
	RETURN
	THROW
	TRY
	CATCH
	FINALLY
	GOTO

	IS
	AS
	TYPEOF
	OUT
	REF
	PARAMS

	NOT
	AND
	OR
	keywordEnd

	delimBeg
	LPAREN
	RPAREN
	LBRACK
	RBRACK
	LBRACE
	RBRACE
	SEMICOLON
	COMMA
	DOT
	COLON
	QUESTION
	delimEnd

	opBeg
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT

	AMP
	PIPE
	CARET
	TILDE
	SHL
	SHR

	ANDAND
	OROR
	BANG

	EQ
	NEQ
	LT
	GT
	LE
	GE

	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	AMP_ASSIGN
	PIPE_ASSIGN
	CARET_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN

	INC
	DEC
	opEnd
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING", CHAR: "CHAR",
	TRUE: "true", FALSE: "false", NULL: "null", VOID: "void",
	NAMESPACE: "namespace", USING: "using", CLASS: "class", STRUCT: "struct",
	INTERFACE: "interface", ENUM: "enum", DELEGATE: "delegate", EVENT: "event",
	PUBLIC: "public", PRIVATE: "private", PROTECTED: "protected", INTERNAL: "internal",
	STATIC: "static", VIRTUAL: "virtual", OVERRIDE: "override", ABSTRACT: "abstract",
	SEALED: "sealed", READONLY: "readonly", CONST: "const", NEW: "new", OPERATOR: "operator",
	BASE: "base", THIS: "this",
	GET: "get", SET: "set", ADD: "add", REMOVE: "remove",
	IF: "if", ELSE: "else", WHILE: "while", DO: "do", FOR: "for", FOREACH: "foreach",
	IN: "in", SWITCH: "switch", CASE: "case", DEFAULT: "default", BREAK: "break",
	CONTINUE: "continue", RETURN: "return", THROW: "throw", TRY: "try", CATCH: "catch",
	FINALLY: "finally", GOTO: "goto",
	IS: "is", AS: "as", TYPEOF: "typeof", OUT: "out", REF: "ref", PARAMS: "params",
	NOT: "not", AND: "and", OR: "or",
	LPAREN: "(", RPAREN: ")", LBRACK: "[", RBRACK: "]", LBRACE: "{", RBRACE: "}",
	SEMICOLON: ";", COMMA: ",", DOT: ".", COLON: ":", QUESTION: "?",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	AMP: "&", PIPE: "|", CARET: "^", TILDE: "~", SHL: "<<", SHR: ">>",
	ANDAND: "&&", OROR: "||", BANG: "!",
	EQ: "==", NEQ: "!=", LT: "<", GT: ">", LE: "<=", GE: ">=",
	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=",
	SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=", AMP_ASSIGN: "&=", PIPE_ASSIGN: "|=",
	CARET_ASSIGN: "^=", SHL_ASSIGN: "<<=", SHR_ASSIGN: ">>=",
	INC: "++", DEC: "--",
}

// String returns the canonical spelling (for keywords/operators) or the
// category name (for IDENT/INT/... and ILLEGAL/EOF).
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsLiteral reports whether k is one of the literal token kinds.
func (k Kind) IsLiteral() bool { return k > literalBeg && k < literalEnd }

// IsKeyword reports whether k is one of the reserved-word kinds.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// IsOperator reports whether k is one of the operator kinds.
func (k Kind) IsOperator() bool { return k > opBeg && k < opEnd }

// keywords maps a keyword's literal spelling to its Kind, used by Lookup.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, int(keywordEnd-keywordBeg))
	for k := keywordBeg + 1; k < keywordEnd; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// Lookup returns the keyword Kind for ident, or IDENT if ident is not a
// reserved word. Aster is case-sensitive, unlike the Pascal-family teacher
// whose lexer folds identifiers to lowercase before lookup.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENT
}

// Token is one lexical unit: its Kind, literal text, optional typed
// payload (for INT/FLOAT/CHAR/STRING literals), and source range.
type Token struct {
	Kind    Kind
	Literal string
	IntVal  int64
	FltVal  float64
	Range   diag.FileRange
}

// Pos returns the token's source range, satisfying code that wants a
// uniform "has a Pos()" accessor across tokens and AST nodes.
func (t Token) Pos() diag.FileRange { return t.Range }
