package ast

import (
	"testing"

	"github.com/asterlang/aster/internal/diag"
)

func r(row int) diag.FileRange {
	return diag.FileRange{File: "t.as", StartRow: row, StartCol: 1, EndRow: row, EndCol: 1}
}

func TestExpressionInterfaceSatisfied(t *testing.T) {
	var exprs = []Expression{
		&NullLit{ExprBase{Rng: r(1)}},
		&IntLit{ExprBase{Rng: r(1)}, 42},
		&BinaryExpr{ExprBase{Rng: r(1)}, OpAdd, &IntLit{ExprBase{}, 1}, &IntLit{ExprBase{}, 2}},
		&SimpleObjExp{ExprBase{Rng: r(1)}, "x"},
		&DotObjExp{ExprBase{Rng: r(1)}, &SimpleObjExp{ExprBase{}, "a"}, "b"},
		&ResolvedRefExpr{ExprBase: ExprBase{Rng: r(1)}, Kind: RefLocal},
	}
	for i, e := range exprs {
		if e.Range().StartRow != 1 {
			t.Errorf("expr %d: wrong range", i)
		}
	}
}

func TestResolvedTypeRoundTrip(t *testing.T) {
	lit := &IntLit{ExprBase{Rng: r(1)}, 7}
	if lit.ResolvedType() != nil {
		t.Fatal("expected nil type before resolution")
	}
	lit.SetResolvedType(stubType{"int"})
	if lit.ResolvedType().TypeName() != "int" {
		t.Fatal("resolved type did not round-trip")
	}
}

type stubType struct{ name string }

func (s stubType) TypeName() string { return s.name }

func TestStatementInterfaceSatisfied(t *testing.T) {
	var stmts = []Statement{
		&Block{StmtBase: StmtBase{Rng: r(1)}},
		&IfStmt{StmtBase: StmtBase{Rng: r(1)}},
		&WhileStmt{StmtBase: StmtBase{Rng: r(1)}},
		&ForStmt{StmtBase: StmtBase{Rng: r(1)}},
		&ForeachStmt{StmtBase: StmtBase{Rng: r(1)}},
		&SwitchStmt{StmtBase: StmtBase{Rng: r(1)}},
		&ReturnStmt{StmtBase: StmtBase{Rng: r(1)}},
		&ThrowStmt{StmtBase: StmtBase{Rng: r(1)}},
		&TryStmt{StmtBase: StmtBase{Rng: r(1)}},
		&GotoStmt{StmtBase: StmtBase{Rng: r(1)}},
		&LabelStmt{StmtBase: StmtBase{Rng: r(1)}},
		&BreakStmt{StmtBase{Rng: r(1)}},
		&ContinueStmt{StmtBase{Rng: r(1)}},
		&EmptyStmt{StmtBase{Rng: r(1)}},
		&LocalVarDecl{StmtBase: StmtBase{Rng: r(1)}, Name: "x"},
		&CtorChainStmt{StmtBase: StmtBase{Rng: r(1)}},
	}
	for i, s := range stmts {
		if s.Range().StartRow != 1 {
			t.Errorf("stmt %d: wrong range", i)
		}
	}
}

func TestTypeDeclInterfaceSatisfied(t *testing.T) {
	var decls = []TypeDecl{
		&ClassDecl{TypeDeclBase: TypeDeclBase{DeclBase: DeclBase{Rng: r(1)}, Name: "Foo"}},
		&EnumDecl{TypeDeclBase: TypeDeclBase{DeclBase: DeclBase{Rng: r(1)}, Name: "Color"}},
		&DelegateDecl{TypeDeclBase: TypeDeclBase{DeclBase: DeclBase{Rng: r(1)}, Name: "Handler"}},
	}
	for _, d := range decls {
		if d.TypeName() == "" {
			t.Errorf("type decl missing name")
		}
	}
}

func TestArrayTypeSigNesting(t *testing.T) {
	// spec.md §3: "T[][,,][,] is one-of-three-of-two-of-T" — the left-most
	// bracket group ("[]", rank 1) is outermost, the right-most ("[,]", rank
	// 2) wraps the element type directly, and the middle group ("[,,]",
	// rank 3) sits in between.
	inner := &SimpleTypeSig{Name: "int"}
	rank2 := &ArrayTypeSig{Elem: inner, Rank: 2}
	rank3 := &ArrayTypeSig{Elem: rank2, Rank: 3}
	outer := &ArrayTypeSig{Elem: rank3, Rank: 1}
	if outer.Rank != 1 {
		t.Fatal("outermost rank wrong")
	}
	if outer.Elem.(*ArrayTypeSig).Rank != 3 {
		t.Fatal("middle rank wrong")
	}
	if outer.Elem.(*ArrayTypeSig).Elem.(*ArrayTypeSig).Rank != 2 {
		t.Fatal("innermost rank wrong")
	}
}

func TestProgramRangeJoinsNamespaces(t *testing.T) {
	p := &Program{Namespaces: []*Namespace{
		{DeclBase: DeclBase{Rng: r(1)}},
		{DeclBase: DeclBase{Rng: r(5)}},
	}}
	got := p.Range()
	if got.StartRow != 1 || got.EndRow != 5 {
		t.Fatalf("joined range = %+v", got)
	}
}
