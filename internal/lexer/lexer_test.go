package lexer

import (
	"testing"

	"github.com/asterlang/aster/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	l := New("t.as", src)
	var ks []token.Kind
	for {
		tok := l.Next()
		ks = append(ks, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	return ks
}

func TestLexKeywordsAndIdents(t *testing.T) {
	got := kinds(t, "class Foo : Bar { }")
	want := []token.Kind{token.CLASS, token.IDENT, token.COLON, token.IDENT, token.LBRACE, token.RBRACE, token.EOF}
	assertKinds(t, got, want)
}

func TestLexNumbers(t *testing.T) {
	l := New("t.as", "123 1.5 0xFF 1.5e10")
	tok := l.Next()
	if tok.Kind != token.INT || tok.Literal != "123" {
		t.Fatalf("got %v %q", tok.Kind, tok.Literal)
	}
	tok = l.Next()
	if tok.Kind != token.FLOAT || tok.Literal != "1.5" {
		t.Fatalf("got %v %q", tok.Kind, tok.Literal)
	}
	tok = l.Next()
	if tok.Kind != token.INT || tok.Literal != "0xFF" {
		t.Fatalf("got %v %q", tok.Kind, tok.Literal)
	}
	tok = l.Next()
	if tok.Kind != token.FLOAT || tok.Literal != "1.5e10" {
		t.Fatalf("got %v %q", tok.Kind, tok.Literal)
	}
}

func TestLexStringAndChar(t *testing.T) {
	l := New("t.as", `"hello\n" 'a'`)
	s := l.Next()
	if s.Kind != token.STRING || s.Literal != "hello\n" {
		t.Fatalf("got %v %q", s.Kind, s.Literal)
	}
	c := l.Next()
	if c.Kind != token.CHAR || c.Literal != "a" {
		t.Fatalf("got %v %q", c.Kind, c.Literal)
	}
}

func TestLexOperators(t *testing.T) {
	got := kinds(t, "+= << <<= == != <= >= && || ++ --")
	want := []token.Kind{
		token.PLUS_ASSIGN, token.SHL, token.SHL_ASSIGN, token.EQ, token.NEQ,
		token.LE, token.GE, token.ANDAND, token.OROR, token.INC, token.DEC, token.EOF,
	}
	assertKinds(t, got, want)
}

func TestPeekIsIdempotent(t *testing.T) {
	l := New("t.as", "class Foo")
	p1 := l.Peek()
	p2 := l.Peek()
	if p1 != p2 {
		t.Fatalf("Peek() not idempotent: %v vs %v", p1, p2)
	}
	n := l.Next()
	if n != p1 {
		t.Fatalf("Next() after Peek() = %v, want %v", n, p1)
	}
	if l.Next().Kind != token.IDENT {
		t.Fatal("expected IDENT after consuming peeked token")
	}
}

func TestLexErrorThenEOFForever(t *testing.T) {
	l := New("t.as", "@@@")
	first := l.Next()
	if first.Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", first.Kind)
	}
	for i := 0; i < 3; i++ {
		if got := l.Next(); got.Kind != token.EOF {
			t.Fatalf("expected EOF after error, got %v", got.Kind)
		}
	}
}

func TestLexSkipsComments(t *testing.T) {
	got := kinds(t, "// line comment\nclass /* block */ Foo")
	want := []token.Kind{token.CLASS, token.IDENT, token.EOF}
	assertKinds(t, got, want)
}

func TestLexPositions(t *testing.T) {
	l := New("t.as", "class\n  Foo")
	c := l.Next()
	if c.Range.StartRow != 1 || c.Range.StartCol != 1 {
		t.Errorf("class range = %+v", c.Range)
	}
	id := l.Next()
	if id.Range.StartRow != 2 {
		t.Errorf("Foo range = %+v, want row 2", id.Range)
	}
}

func TestCaseSensitiveKeyword(t *testing.T) {
	got := kinds(t, "Class class")
	want := []token.Kind{token.IDENT, token.CLASS, token.EOF}
	assertKinds(t, got, want)
}

func assertKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(got)=%d len(want)=%d got=%v want=%v", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}
