// Package lexer implements the reference token producer that satisfies
// spec.md's C2 "Tokens & Lexer contract". spec.md treats the lexer as an
// external collaborator (peek-next / get-next, one-token lookahead); this
// package is the concrete implementation shipped so the module is
// self-contained, the way the teacher ships its own lexer in the same
// module even though the two concerns are separable.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/asterlang/aster/internal/diag"
	"github.com/asterlang/aster/internal/token"
	"golang.org/x/text/unicode/norm"
)

// Lexer scans Aster source text into a Token stream with one-token
// lookahead, per spec.md §6 ("peek-next (non-consuming, idempotent) and
// get-next (consuming)").
type Lexer struct {
	file   string
	src    string
	pos    int // byte offset of ch
	readPos int // byte offset after ch
	line   int
	col    int
	ch     rune

	peeked    *token.Token
	erroredAt bool // true once an ERROR token has been produced (EOF forever after)
}

// New returns a Lexer over src, attributing all positions to file.
func New(file, src string) *Lexer {
	l := &Lexer{file: file, src: src, line: 1, col: 0}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	if l.readPos >= len(l.src) {
		l.ch = 0
		l.pos = l.readPos
		return
	}
	r, w := utf8.DecodeRuneInString(l.src[l.readPos:])
	l.pos = l.readPos
	l.readPos += w
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.col++
	l.ch = r
}

func (l *Lexer) peekRune() rune {
	if l.readPos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.readPos:])
	return r
}

func (l *Lexer) here() diag.FileRange {
	return diag.FileRange{File: l.file, StartRow: l.line, StartCol: l.col, EndRow: l.line, EndCol: l.col}
}

// Peek returns the next token without consuming it. Calling Peek
// repeatedly returns the same token (idempotent), matching spec.md §6.
func (l *Lexer) Peek() token.Token {
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}
	return *l.peeked
}

// Next consumes and returns the next token.
func (l *Lexer) Next() token.Token {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t
	}
	return l.scan()
}

func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peekRune() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		case l.ch == '/' && l.peekRune() == '*':
			l.advance()
			l.advance()
			for !(l.ch == '*' && l.peekRune() == '/') && l.ch != 0 {
				l.advance()
			}
			if l.ch != 0 {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scan() token.Token {
	if l.erroredAt {
		return l.tok(token.EOF, "", l.here())
	}

	l.skipTrivia()
	start := l.here()

	if l.ch == 0 {
		return l.tok(token.EOF, "", start)
	}

	switch {
	case isIdentStart(l.ch):
		return l.scanIdent(start)
	case unicode.IsDigit(l.ch):
		return l.scanNumber(start)
	case l.ch == '"':
		return l.scanString(start)
	case l.ch == '\'':
		return l.scanChar(start)
	}

	return l.scanOperator(start)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanIdent(start diag.FileRange) token.Token {
	begin := l.pos
	for isIdentPart(l.ch) {
		l.advance()
	}
	raw := l.src[begin:l.pos]
	// Normalize to NFC so two source files spelling the same identifier with
	// different combining-sequence forms bind to the same symbol.
	text := norm.NFC.String(raw)
	rng := l.spanFrom(start)
	return token.Token{Kind: token.Lookup(text), Literal: text, Range: rng}
}

func (l *Lexer) spanFrom(start diag.FileRange) diag.FileRange {
	return diag.FileRange{File: l.file, StartRow: start.StartRow, StartCol: start.StartCol, EndRow: l.line, EndCol: l.col - 1}
}

func (l *Lexer) scanNumber(start diag.FileRange) token.Token {
	begin := l.pos
	isFloat := false
	if l.ch == '0' && (l.peekRune() == 'x' || l.peekRune() == 'X') {
		l.advance()
		l.advance()
		for isHexDigit(l.ch) {
			l.advance()
		}
		text := l.src[begin:l.pos]
		return token.Token{Kind: token.INT, Literal: text, Range: l.spanFrom(start)}
	}
	for unicode.IsDigit(l.ch) {
		l.advance()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekRune()) {
		isFloat = true
		l.advance()
		for unicode.IsDigit(l.ch) {
			l.advance()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.advance()
		if l.ch == '+' || l.ch == '-' {
			l.advance()
		}
		for unicode.IsDigit(l.ch) {
			l.advance()
		}
	}
	text := l.src[begin:l.pos]
	if isFloat {
		return token.Token{Kind: token.FLOAT, Literal: text, Range: l.spanFrom(start)}
	}
	return token.Token{Kind: token.INT, Literal: text, Range: l.spanFrom(start)}
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) scanString(start diag.FileRange) token.Token {
	l.advance() // opening quote
	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 {
			return l.errorToken(start, "unterminated string literal")
		}
		if l.ch == '\\' {
			l.advance()
			sb.WriteRune(unescape(l.ch))
			l.advance()
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	l.advance() // closing quote
	return token.Token{Kind: token.STRING, Literal: sb.String(), Range: l.spanFrom(start)}
}

func (l *Lexer) scanChar(start diag.FileRange) token.Token {
	l.advance() // opening quote
	var r rune
	if l.ch == '\\' {
		l.advance()
		r = unescape(l.ch)
		l.advance()
	} else {
		r = l.ch
		l.advance()
	}
	if l.ch != '\'' {
		return l.errorToken(start, "unterminated char literal")
	}
	l.advance()
	return token.Token{Kind: token.CHAR, Literal: string(r), IntVal: int64(r), Range: l.spanFrom(start)}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return r
	}
}

func (l *Lexer) errorToken(start diag.FileRange, msg string) token.Token {
	l.erroredAt = true
	return token.Token{Kind: token.ILLEGAL, Literal: msg, Range: l.spanFrom(start)}
}

func (l *Lexer) scanOperator(start diag.FileRange) token.Token {
	ch := l.ch
	next := l.peekRune()

	two := func(k token.Kind) token.Token {
		l.advance()
		l.advance()
		return token.Token{Kind: k, Literal: string(ch) + string(next), Range: l.spanFrom(start)}
	}
	three := func(k token.Kind, lit string) token.Token {
		l.advance()
		l.advance()
		l.advance()
		return token.Token{Kind: k, Literal: lit, Range: l.spanFrom(start)}
	}
	one := func(k token.Kind) token.Token {
		l.advance()
		return token.Token{Kind: k, Literal: string(ch), Range: l.spanFrom(start)}
	}

	switch ch {
	case '(':
		return one(token.LPAREN)
	case ')':
		return one(token.RPAREN)
	case '[':
		return one(token.LBRACK)
	case ']':
		return one(token.RBRACK)
	case '{':
		return one(token.LBRACE)
	case '}':
		return one(token.RBRACE)
	case ';':
		return one(token.SEMICOLON)
	case ',':
		return one(token.COMMA)
	case '.':
		return one(token.DOT)
	case ':':
		return one(token.COLON)
	case '?':
		return one(token.QUESTION)
	case '~':
		return one(token.TILDE)
	case '+':
		if next == '+' {
			return two(token.INC)
		}
		if next == '=' {
			return two(token.PLUS_ASSIGN)
		}
		return one(token.PLUS)
	case '-':
		if next == '-' {
			return two(token.DEC)
		}
		if next == '=' {
			return two(token.MINUS_ASSIGN)
		}
		return one(token.MINUS)
	case '*':
		if next == '=' {
			return two(token.STAR_ASSIGN)
		}
		return one(token.STAR)
	case '/':
		if next == '=' {
			return two(token.SLASH_ASSIGN)
		}
		return one(token.SLASH)
	case '%':
		if next == '=' {
			return two(token.PERCENT_ASSIGN)
		}
		return one(token.PERCENT)
	case '&':
		if next == '&' {
			return two(token.ANDAND)
		}
		if next == '=' {
			return two(token.AMP_ASSIGN)
		}
		return one(token.AMP)
	case '|':
		if next == '|' {
			return two(token.OROR)
		}
		if next == '=' {
			return two(token.PIPE_ASSIGN)
		}
		return one(token.PIPE)
	case '^':
		if next == '=' {
			return two(token.CARET_ASSIGN)
		}
		return one(token.CARET)
	case '!':
		if next == '=' {
			return two(token.NEQ)
		}
		return one(token.BANG)
	case '=':
		if next == '=' {
			return two(token.EQ)
		}
		return one(token.ASSIGN)
	case '<':
		if next == '<' {
			if l.peekAt(2) == '=' {
				return three(token.SHL_ASSIGN, "<<=")
			}
			return two(token.SHL)
		}
		if next == '=' {
			return two(token.LE)
		}
		return one(token.LT)
	case '>':
		if next == '>' {
			if l.peekAt(2) == '=' {
				return three(token.SHR_ASSIGN, ">>=")
			}
			return two(token.SHR)
		}
		if next == '=' {
			return two(token.GE)
		}
		return one(token.GT)
	}

	l.erroredAt = true
	lit := string(ch)
	l.advance()
	return token.Token{Kind: token.ILLEGAL, Literal: lit, Range: l.spanFrom(start)}
}

func (l *Lexer) peekAt(n int) rune {
	idx := l.readPos
	for i := 0; i < n-1 && idx < len(l.src); i++ {
		_, w := utf8.DecodeRuneInString(l.src[idx:])
		idx += w
	}
	if idx >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[idx:])
	return r
}

func (l *Lexer) tok(k token.Kind, lit string, r diag.FileRange) token.Token {
	return token.Token{Kind: k, Literal: lit, Range: r}
}
