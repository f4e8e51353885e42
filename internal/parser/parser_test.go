package parser

import (
	"testing"

	"github.com/asterlang/aster/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Namespace {
	t.Helper()
	ns, failure := Parse("t.as", src)
	if failure != nil {
		t.Fatalf("unexpected parse failure: %v", failure)
	}
	return ns
}

func TestParseEmptyFile(t *testing.T) {
	ns := mustParse(t, "")
	if len(ns.Types) != 0 || len(ns.Namespaces) != 0 || len(ns.Usings) != 0 {
		t.Fatalf("expected an empty global namespace, got %+v", ns)
	}
}

func TestParseUsingDirectives(t *testing.T) {
	ns := mustParse(t, "using System; using X = System.Collections;")
	if len(ns.Usings) != 2 {
		t.Fatalf("expected 2 usings, got %d", len(ns.Usings))
	}
	if ns.Usings[0].Target != "System" || ns.Usings[0].Alias != "" {
		t.Fatalf("unexpected first using: %+v", ns.Usings[0])
	}
	if ns.Usings[1].Alias != "X" || ns.Usings[1].Target != "System.Collections" {
		t.Fatalf("unexpected aliased using: %+v", ns.Usings[1])
	}
}

func TestParseNestedNamespace(t *testing.T) {
	ns := mustParse(t, "namespace Outer.Inner { class C {} }")
	if len(ns.Namespaces) != 1 {
		t.Fatalf("expected 1 nested namespace, got %d", len(ns.Namespaces))
	}
	nested := ns.Namespaces[0]
	if nested.Name != "Outer.Inner" {
		t.Fatalf("unexpected namespace name %q", nested.Name)
	}
	if len(nested.Types) != 1 || nested.Types[0].TypeName() != "C" {
		t.Fatalf("expected class C inside nested namespace, got %+v", nested.Types)
	}
}

func TestParseClassWithFieldAndCtor(t *testing.T) {
	ns := mustParse(t, `class C { int f; public C() { f = 3; } }`)
	class := ns.Types[0].(*ast.ClassDecl)
	if len(class.Fields) != 1 || class.Fields[0].Name != "f" {
		t.Fatalf("expected field f, got %+v", class.Fields)
	}
	if len(class.Methods) != 1 || !class.Methods[0].IsCtor {
		t.Fatalf("expected one constructor, got %+v", class.Methods)
	}
	body := class.Methods[0].Body
	if len(body.Stmts) != 1 {
		t.Fatalf("expected one statement in ctor body, got %d", len(body.Stmts))
	}
}

func TestParseClassWithBaseAndInterfaces(t *testing.T) {
	ns := mustParse(t, `class C : Base, IFoo, IBar {}`)
	class := ns.Types[0].(*ast.ClassDecl)
	if len(class.Supertypes) != 3 {
		t.Fatalf("expected 3 supertype signatures, got %d", len(class.Supertypes))
	}
	if class.Supertypes[0].Name != "Base" {
		t.Fatalf("expected first supertype Base, got %q", class.Supertypes[0].Name)
	}
}

func TestParsePropertyWithGetSet(t *testing.T) {
	ns := mustParse(t, `class C { int P { get { return 1; } set { } } }`)
	class := ns.Types[0].(*ast.ClassDecl)
	if len(class.Properties) != 1 {
		t.Fatalf("expected one property, got %+v", class.Properties)
	}
	prop := class.Properties[0]
	if prop.Getter == nil || prop.Setter == nil {
		t.Fatalf("expected both get and set accessors, got %+v", prop)
	}
}

func TestParseIndexer(t *testing.T) {
	ns := mustParse(t, `class C { int this[int i] { get { return 0; } } }`)
	class := ns.Types[0].(*ast.ClassDecl)
	if len(class.Properties) != 1 || !class.Properties[0].Indexer {
		t.Fatalf("expected one indexer property, got %+v", class.Properties)
	}
	if len(class.Properties[0].IndexParams) != 1 {
		t.Fatalf("expected one index parameter, got %+v", class.Properties[0].IndexParams)
	}
}

func TestParseEventBackingField(t *testing.T) {
	ns := mustParse(t, `class C { public event D E; }`)
	class := ns.Types[0].(*ast.ClassDecl)
	if len(class.Events) != 1 || class.Events[0].Name != "E" {
		t.Fatalf("expected event E, got %+v", class.Events)
	}
	if class.Events[0].AddAccessor != nil || class.Events[0].RemoveAccessor != nil {
		t.Fatalf("expected backing-field event form with no explicit accessors")
	}
}

func TestParseEventExplicitAccessors(t *testing.T) {
	ns := mustParse(t, `class C { public event D E { add { } remove { } } }`)
	class := ns.Types[0].(*ast.ClassDecl)
	ev := class.Events[0]
	if ev.AddAccessor == nil || ev.RemoveAccessor == nil {
		t.Fatalf("expected explicit add/remove accessors, got %+v", ev)
	}
}

func TestParseOperatorOverload(t *testing.T) {
	ns := mustParse(t, `struct V { public static V operator+(V a, V b) { return a; } }`)
	class := ns.Types[0].(*ast.ClassDecl)
	if len(class.Methods) != 1 || class.Methods[0].Name != "op_Addition" {
		t.Fatalf("expected method named op_Addition, got %+v", class.Methods)
	}
}

func TestParseEnum(t *testing.T) {
	ns := mustParse(t, `enum Color { Red, Green = 5, Blue }`)
	enum := ns.Types[0].(*ast.EnumDecl)
	if len(enum.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(enum.Members))
	}
	if enum.Members[1].Name != "Green" || enum.Members[1].Initializer == nil {
		t.Fatalf("expected Green = 5, got %+v", enum.Members[1])
	}
}

func TestParseDelegate(t *testing.T) {
	ns := mustParse(t, `delegate void Handler(int x);`)
	del := ns.Types[0].(*ast.DelegateDecl)
	if del.Name != "Handler" || len(del.Params) != 1 {
		t.Fatalf("unexpected delegate shape: %+v", del)
	}
	if del.ReturnType != nil {
		t.Fatalf("expected void (nil) return type, got %+v", del.ReturnType)
	}
}

func TestParseIfWhileForForeach(t *testing.T) {
	src := `class C { void M() {
		if (x) y = 1; else y = 2;
		while (x) y = y + 1;
		for (int i = 0; i < 10; i++) y = i;
		foreach (int v in xs) y = v;
	} }`
	ns := mustParse(t, src)
	class := ns.Types[0].(*ast.ClassDecl)
	body := class.Methods[0].Body
	if len(body.Stmts) != 4 {
		t.Fatalf("expected 4 top-level statements, got %d", len(body.Stmts))
	}
	if _, ok := body.Stmts[0].(*ast.IfStmt); !ok {
		t.Fatalf("expected IfStmt, got %T", body.Stmts[0])
	}
	if _, ok := body.Stmts[1].(*ast.WhileStmt); !ok {
		t.Fatalf("expected WhileStmt, got %T", body.Stmts[1])
	}
	forStmt, ok := body.Stmts[2].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", body.Stmts[2])
	}
	if _, ok := forStmt.Init.(*ast.LocalVarDecl); !ok {
		t.Fatalf("expected for-init to be a LocalVarDecl, got %T", forStmt.Init)
	}
	if _, ok := body.Stmts[3].(*ast.ForeachStmt); !ok {
		t.Fatalf("expected ForeachStmt, got %T", body.Stmts[3])
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	src := `class C { void M() {
		try { x = 1; } catch (Exception e) { x = 2; } finally { x = 3; }
	} }`
	ns := mustParse(t, src)
	class := ns.Types[0].(*ast.ClassDecl)
	tryStmt := class.Methods[0].Body.Stmts[0].(*ast.TryStmt)
	if len(tryStmt.Catches) != 1 || tryStmt.Catches[0].VarName != "e" {
		t.Fatalf("unexpected catch clause: %+v", tryStmt.Catches)
	}
	if tryStmt.Finally == nil {
		t.Fatalf("expected a finally block")
	}
}

func TestParseSwitch(t *testing.T) {
	src := `class C { void M() {
		switch (x) {
		case 1:
		case 2:
			y = 1;
			break;
		default:
			y = 2;
			break;
		}
	} }`
	ns := mustParse(t, src)
	class := ns.Types[0].(*ast.ClassDecl)
	sw := class.Methods[0].Body.Stmts[0].(*ast.SwitchStmt)
	if len(sw.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sw.Sections))
	}
	if len(sw.Sections[0].Labels) != 2 {
		t.Fatalf("expected the first section to share 2 case labels, got %d", len(sw.Sections[0].Labels))
	}
	if !sw.Sections[1].IsDefault {
		t.Fatalf("expected the second section to be default")
	}
}

func TestParseCompoundAssignDesugars(t *testing.T) {
	ns := mustParse(t, `class C { void M() { x += 1; } }`)
	class := ns.Types[0].(*ast.ClassDecl)
	stmt := class.Methods[0].Body.Stmts[0].(*ast.ExprStmt)
	assign, ok := stmt.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr, got %T", stmt.Expr)
	}
	bin, ok := assign.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected desugared BinaryExpr(+), got %+v", assign.Value)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	ns := mustParse(t, `class C { void M() { y = 1 + 2 * 3; } }`)
	class := ns.Types[0].(*ast.ClassDecl)
	stmt := class.Methods[0].Body.Stmts[0].(*ast.ExprStmt)
	assign := stmt.Expr.(*ast.AssignExpr)
	add, ok := assign.Value.(*ast.BinaryExpr)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("expected top-level '+', got %+v", assign.Value)
	}
	if _, ok := add.Left.(*ast.IntLit); !ok {
		t.Fatalf("expected left operand to be the literal 1, got %T", add.Left)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("expected right operand to be '2 * 3', got %+v", add.Right)
	}
}

func TestParseRightAssociativeAssignment(t *testing.T) {
	ns := mustParse(t, `class C { void M() { a = b = c; } }`)
	class := ns.Types[0].(*ast.ClassDecl)
	stmt := class.Methods[0].Body.Stmts[0].(*ast.ExprStmt)
	outer := stmt.Expr.(*ast.AssignExpr)
	if _, ok := outer.Target.(*ast.SimpleObjExp); !ok {
		t.Fatalf("expected outer target to be 'a', got %T", outer.Target)
	}
	if _, ok := outer.Value.(*ast.AssignExpr); !ok {
		t.Fatalf("expected right-associative nesting, got %T", outer.Value)
	}
}

func TestParseTernaryAndCast(t *testing.T) {
	ns := mustParse(t, `class C { void M() { y = cond ? 1 : 2; } }`)
	class := ns.Types[0].(*ast.ClassDecl)
	stmt := class.Methods[0].Body.Stmts[0].(*ast.ExprStmt)
	assign := stmt.Expr.(*ast.AssignExpr)
	if _, ok := assign.Value.(*ast.CondExpr); !ok {
		t.Fatalf("expected CondExpr, got %T", assign.Value)
	}
}

func TestParseNewObjectAndArray(t *testing.T) {
	ns := mustParse(t, `class C { void M() {
		C c = new C();
		int[] xs = new int[3];
	} }`)
	class := ns.Types[0].(*ast.ClassDecl)
	body := class.Methods[0].Body
	local1 := body.Stmts[0].(*ast.LocalVarDecl)
	if _, ok := local1.Initializer.(*ast.NewObjExpr); !ok {
		t.Fatalf("expected NewObjExpr, got %T", local1.Initializer)
	}
	local2 := body.Stmts[1].(*ast.LocalVarDecl)
	newArr, ok := local2.Initializer.(*ast.NewArrayExpr)
	if !ok {
		t.Fatalf("expected NewArrayExpr, got %T", local2.Initializer)
	}
	if len(newArr.Sizes) != 1 {
		t.Fatalf("expected one size expression, got %d", len(newArr.Sizes))
	}
}

func TestParseIsAsTypeof(t *testing.T) {
	ns := mustParse(t, `class C { void M() {
		bool b = x is Foo;
		object o = x as Foo;
		object t = typeof(Foo);
	} }`)
	class := ns.Types[0].(*ast.ClassDecl)
	body := class.Methods[0].Body
	if _, ok := body.Stmts[0].(*ast.LocalVarDecl).Initializer.(*ast.IsExpr); !ok {
		t.Fatalf("expected IsExpr")
	}
	if _, ok := body.Stmts[1].(*ast.LocalVarDecl).Initializer.(*ast.AsCastExpr); !ok {
		t.Fatalf("expected AsCastExpr")
	}
	if _, ok := body.Stmts[2].(*ast.LocalVarDecl).Initializer.(*ast.TypeOfExpr); !ok {
		t.Fatalf("expected TypeOfExpr")
	}
}

func TestParseErrorReportsExactlyOnce(t *testing.T) {
	ns, failure := Parse("t.as", `class C { int f }`) // missing ';'
	if ns != nil {
		t.Fatalf("expected no AST on parse failure, got %+v", ns)
	}
	if failure == nil {
		t.Fatalf("expected a parse failure diagnostic")
	}
}
