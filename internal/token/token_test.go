package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := map[string]Kind{
		"class": CLASS, "namespace": NAMESPACE, "override": OVERRIDE,
		"base": BASE, "this": THIS, "foreach": FOREACH, "readonly": READONLY,
	}
	for lit, want := range tests {
		if got := Lookup(lit); got != want {
			t.Errorf("Lookup(%q) = %v, want %v", lit, got, want)
		}
	}
}

func TestLookupIdentifier(t *testing.T) {
	if got := Lookup("myVariable"); got != IDENT {
		t.Errorf("Lookup(myVariable) = %v, want IDENT", got)
	}
}

func TestCaseSensitivity(t *testing.T) {
	// Aster is case-sensitive: "Class" is not the "class" keyword.
	if got := Lookup("Class"); got != IDENT {
		t.Errorf("Lookup(Class) = %v, want IDENT (case-sensitive)", got)
	}
}

func TestKindPredicates(t *testing.T) {
	if !INT.IsLiteral() || CLASS.IsLiteral() {
		t.Error("IsLiteral predicate wrong")
	}
	if !CLASS.IsKeyword() || INT.IsKeyword() {
		t.Error("IsKeyword predicate wrong")
	}
	if !PLUS.IsOperator() || CLASS.IsOperator() {
		t.Error("IsOperator predicate wrong")
	}
}

func TestKindString(t *testing.T) {
	if CLASS.String() != "class" {
		t.Errorf("CLASS.String() = %q", CLASS.String())
	}
	if IDENT.String() != "IDENT" {
		t.Errorf("IDENT.String() = %q", IDENT.String())
	}
}
