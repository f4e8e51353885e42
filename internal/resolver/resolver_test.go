package resolver

import (
	"sort"
	"testing"

	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/importer"
	"github.com/asterlang/aster/internal/parser"
	"github.com/asterlang/aster/internal/symbols"
	"github.com/kr/pretty"
)

type testFile struct{ name, src string }

// resolveSrc parses every file in order and runs all four passes over the
// merged Program, failing the test immediately on a parse error (tests
// exercising resolver behavior never want a syntax error to masquerade as
// a resolver failure).
func resolveSrc(t *testing.T, files ...testFile) (*PassContext, *ast.Program) {
	t.Helper()
	prog := &ast.Program{}
	for _, f := range files {
		ns, failure := parser.Parse(f.name, f.src)
		if failure != nil {
			t.Fatalf("parse %s: %s", f.name, failure.Format())
		}
		prog.Namespaces = append(prog.Namespaces, ns)
	}
	ctx := NewPassContext(importer.New())
	runNamespacePass(ctx, prog)
	runTypePass(ctx, prog)
	runMemberPass(ctx, prog)
	runBodyPass(ctx, prog)
	return ctx, prog
}

func codes(ctx *PassContext) []int {
	var cs []int
	for _, d := range ctx.Bag.All() {
		cs = append(cs, d.Code)
	}
	sort.Ints(cs)
	return cs
}

func requireNoErrors(t *testing.T, ctx *PassContext) {
	t.Helper()
	if ctx.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", ctx.Bag.FormatAll())
	}
}

func requireErrorCode(t *testing.T, ctx *PassContext, want int) {
	t.Helper()
	for _, d := range ctx.Bag.All() {
		if d.Code == want {
			return
		}
	}
	t.Fatalf("expected diagnostic code %d, got codes %v\n%s", want, codes(ctx), ctx.Bag.FormatAll())
}

func TestNamespaceMergesAcrossReopenings(t *testing.T) {
	ctx, _ := resolveSrc(t,
		testFile{"a.as", `namespace N { class A {} }`},
		testFile{"b.as", `namespace N { class B : A {} }`},
	)
	requireNoErrors(t, ctx)
	if _, ok := ctx.qualified["N.A"]; !ok {
		t.Fatal("N.A was not registered in the qualified type table")
	}
	if _, ok := ctx.qualified["N.B"]; !ok {
		t.Fatal("N.B was not registered in the qualified type table")
	}
}

func TestTypeShellForwardReference(t *testing.T) {
	// B is declared before A in source order; pass 1's type-shell
	// pre-registration must let B's "A" field reference resolve anyway.
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		class B { A value; }
		class A {}
	`})
	requireNoErrors(t, ctx)
}

func TestSingleInheritanceCyclicBaseDiagnosed(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		class A : B {}
		class B : A {}
	`})
	requireErrorCode(t, ctx, 3011) // errCyclicBase in SubsystemResolver's 3000 range
}

func TestSealedBaseDiagnosed(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		sealed class Base {}
		class Derived : Base {}
	`})
	requireErrorCode(t, ctx, 3013) // errSealedBase
}

func TestMissingInterfaceMemberDiagnosed(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		interface IGreet { string Greet(); }
		class Impl : IGreet {}
	`})
	requireErrorCode(t, ctx, 3026) // errMissingInterfaceMember
}

func TestOverrideWithoutVirtualDiagnosed(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		class Base { public void M() {} }
		class Derived : Base { public override void M() {} }
	`})
	requireErrorCode(t, ctx, 3021) // errOverrideWithoutVirtual
}

func TestOperatorOverloadResolvesToRightOperandType(t *testing.T) {
	// Vector declares "operator +" only on itself; the left operand here
	// is plain int, so the overload must be found via the right operand's
	// type, and the lowered callee must carry that Vector method's symbol
	// identity (the bug this test guards: the callee used to hardcode the
	// left operand's type as owner, losing the match).
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		class Vector {
			public int X;
			public static Vector operator +(int a, Vector b) { return b; }
			public void Use() { Vector v = 1 + this; }
		}
	`})
	requireNoErrors(t, ctx)

	t.Helper()
	use := findMethod(t, prog, "Vector", "Use")
	decl := use.Body.Stmts[0].(*ast.LocalVarDecl)
	call, ok := decl.Initializer.(*ast.CallExpr)
	if !ok {
		t.Fatalf("lowered initializer is %T, want *ast.CallExpr (loweredOperatorCall's direct replacement)", decl.Initializer)
	}
	ref, ok := call.Callee.(*ast.ResolvedRefExpr)
	if !ok || ref.Kind != ast.RefMethodGroup {
		t.Fatalf("lowered operator call's callee is not a method-group ref: %# v", pretty.Formatter(call.Callee))
	}
	if ref.Symbol == nil {
		t.Fatal("lowered operator call's callee carries no symbol identity")
	}
	if ref.Symbol.SymbolName() != "op_Addition" {
		t.Errorf("lowered operator call resolved to %q, want the Vector's op_Addition overload", ref.Symbol.SymbolName())
	}
}

func TestEventBackingFieldRegisteredBeforeScopeLocks(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		public delegate void Handler();
		class Button {
			public event Handler Clicked;
		}
	`})
	requireNoErrors(t, ctx)

	button, ok := ctx.qualified["Button"]
	if !ok {
		t.Fatal("Button was not registered in the qualified type table")
	}
	if !button.Scope.Locked() {
		t.Fatal("Button's member scope was never locked")
	}
	if _, ok := button.Scope.LookupLocal("<Clicked>k__BackingField"); !ok {
		t.Fatal("event backing field was not registered into the locked scope")
	}
}

func TestArrayInitializerDesugarsToIndexedAssignments(t *testing.T) {
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		class C {
			public void Use() {
				int[] xs = new int[]{ 1, 2, 3 };
			}
		}
	`})
	requireNoErrors(t, ctx)

	use := findMethod(t, prog, "C", "Use")
	decl := use.Body.Stmts[0].(*ast.LocalVarDecl)
	compound, ok := decl.Initializer.(*ast.CompoundExpr)
	if !ok {
		t.Fatalf("array-initializer local was not lowered to a CompoundExpr: %T", decl.Initializer)
	}
	// one bare-sized allocation assignment + one indexed assignment per element
	if len(compound.Stmts) != 4 {
		t.Fatalf("CompoundExpr has %d statements, want 4 (alloc + 3 element assigns)", len(compound.Stmts))
	}
	if _, ok := compound.Value.(*ast.DeclareLocalExpr); !ok {
		t.Fatalf("CompoundExpr's value is %T, want *ast.DeclareLocalExpr", compound.Value)
	}
}

func TestConstructorChainValidatesArguments(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		class Base {
			public Base(int x) {}
		}
		class Derived : Base {
			public Derived() : base("wrong type") {}
		}
	`})
	requireErrorCode(t, ctx, 3044) // errNoApplicableOverload
}

func TestIndexerAssignmentVsReadOrdering(t *testing.T) {
	// Regression guard: with an int[] target, "xs[0] = xs[1]" is a plain
	// array store and read — neither side may be lowered to an indexer
	// get_Item/set_Item call, since arrays are not class-like.
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		class C {
			public void Use(int[] xs) {
				xs[0] = xs[1];
			}
		}
	`})
	requireNoErrors(t, ctx)

	use := findMethod(t, prog, "C", "Use")
	stmt := use.Body.Stmts[0].(*ast.ExprStmt)
	assign, ok := stmt.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("statement is %T, want *ast.AssignExpr", stmt.Expr)
	}
	if _, ok := assign.Target.(*ast.IndexExpr); !ok {
		t.Fatalf("assignment target is %T, want *ast.IndexExpr", assign.Target)
	}
	if _, ok := assign.Value.(*ast.IndexExpr); !ok {
		t.Fatalf("assignment value is %T, want *ast.IndexExpr", assign.Value)
	}
}

func TestS1HasNoInitializerToInject(t *testing.T) {
	// spec.md §8 scenario S1: "int f; public C() { f = 3; }" has no field
	// initializer at all — f=3 is an ordinary assignment written directly
	// in the constructor's own body — so there is nothing to bucket and
	// the (conceptually empty) instance-init prologue injects no extra
	// statements; the ctor body is exactly the one statement the source
	// wrote.
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		namespace N {
			class C {
				int f;
				public C() { f = 3; }
			}
		}
	`})
	requireNoErrors(t, ctx)

	ctor := findMethod(t, prog, "C", "C")
	if len(ctor.Body.Stmts) != 1 {
		t.Fatalf("ctor has %d statements, want 1 (only the written f=3)", len(ctor.Body.Stmts))
	}
}

func TestFieldInitializerInjectedAtCtorHead(t *testing.T) {
	// A field *initializer* ("int f = 3;", as opposed to S1's bare
	// declaration plus a hand-written assignment) must be bucketed and its
	// synthesized instance-init prologue prepended to a declared
	// constructor that chains to base.
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		namespace N {
			class C {
				int f = 3;
				public C() { f = f + 1; }
			}
		}
	`})
	requireNoErrors(t, ctx)

	ctor := findMethod(t, prog, "C", "C")
	if len(ctor.Body.Stmts) != 2 {
		t.Fatalf("ctor has %d statements, want 2 (injected init + written body)", len(ctor.Body.Stmts))
	}
	first, ok := ctor.Body.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("first ctor statement is %T, want *ast.ExprStmt", ctor.Body.Stmts[0])
	}
	if _, ok := first.Expr.(*ast.AssignExpr); !ok {
		t.Fatalf("injected statement is %T, want *ast.AssignExpr", first.Expr)
	}
}

func TestDefaultConstructorSynthesizedForFieldInitializerOnly(t *testing.T) {
	// A class that declares no constructor at all still needs one
	// synthesized so its field initializer actually runs.
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		class C { int f = 3; }
	`})
	requireNoErrors(t, ctx)

	c, ok := ctx.qualified["C"]
	if !ok {
		t.Fatal("C was not registered in the qualified type table")
	}
	entry, ok := c.Scope.LookupLocal(".ctor")
	if !ok {
		t.Fatal("no default constructor was synthesized for C")
	}
	m, ok := entry.(*symbols.MethodEntry)
	if !ok || m.First == nil {
		t.Fatal("synthesized .ctor entry has no usable overload")
	}

	ctor := findMethod(t, prog, "C", "C")
	if len(ctor.Body.Stmts) != 1 {
		t.Fatalf("synthesized ctor has %d statements, want 1 (the injected init)", len(ctor.Body.Stmts))
	}
}

func TestStructInstanceInitializerDiagnosed(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		struct S { int f = 3; }
	`})
	requireErrorCode(t, ctx, 3027) // errStructInstanceInitializer
}

func TestStructGetsNoDefaultConstructor(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		struct S { int f; }
	`})
	requireNoErrors(t, ctx)

	s, ok := ctx.qualified["S"]
	if !ok {
		t.Fatal("S was not registered in the qualified type table")
	}
	if _, ok := s.Scope.LookupLocal(".ctor"); ok {
		t.Fatal("struct S should not have a synthesized constructor")
	}
}

func TestStaticConstructorRenamedAndInitInjected(t *testing.T) {
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		class C {
			static int f = 3;
			static C() {}
		}
	`})
	requireNoErrors(t, ctx)

	c, ok := ctx.qualified["C"]
	if !ok {
		t.Fatal("C was not registered in the qualified type table")
	}
	if _, ok := c.Scope.LookupLocal(".cctor"); !ok {
		t.Fatal("static constructor was not registered under the reserved name .cctor")
	}
	// The class declared no instance constructor of its own, so one is
	// still synthesized (spec.md step 7 applies independent of whether a
	// static constructor was written).
	if _, ok := c.Scope.LookupLocal(".ctor"); !ok {
		t.Fatal("no default instance constructor was synthesized for C")
	}

	cctor := findCtorOverloadStatic(t, prog, "C")
	if len(cctor.Body.Stmts) != 1 {
		t.Fatalf("static ctor has %d statements, want 1 (the injected static init)", len(cctor.Body.Stmts))
	}
}

func TestThisChainedConstructorSkipsInitInjection(t *testing.T) {
	// A constructor chaining "this(...)" must not get the instance-init
	// prologue prepended a second time — the sibling ctor it chains to
	// already runs it.
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		class C {
			int f = 3;
			public C() {}
			public C(int x) : this() {}
		}
	`})
	requireNoErrors(t, ctx)

	chained := findCtorOverload(t, prog, "C", 1)
	if len(chained.Body.Stmts) != 0 {
		t.Fatalf("this(...)-chained ctor has %d injected statements, want 0", len(chained.Body.Stmts))
	}
}

// findCtorOverload returns the constructor of typeName with exactly
// paramCount declared parameters.
func findCtorOverload(t *testing.T, prog *ast.Program, typeName string, paramCount int) *ast.MethodDecl {
	t.Helper()
	var walk func(ns *ast.Namespace) *ast.MethodDecl
	walk = func(ns *ast.Namespace) *ast.MethodDecl {
		for _, td := range ns.Types {
			class, ok := td.(*ast.ClassDecl)
			if !ok || class.Name != typeName {
				continue
			}
			for _, m := range class.Methods {
				if m.IsCtor && len(m.Params) == paramCount {
					return m
				}
			}
		}
		for _, nested := range ns.Namespaces {
			if m := walk(nested); m != nil {
				return m
			}
		}
		return nil
	}
	for _, ns := range prog.Namespaces {
		if m := walk(ns); m != nil {
			return m
		}
	}
	t.Fatalf("constructor of %s with %d params not found", typeName, paramCount)
	return nil
}

func TestParamSlotsReserveThisInInstanceMethod(t *testing.T) {
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		class C {
			public void Use(int a, int b) {}
		}
	`})
	requireNoErrors(t, ctx)

	header := ctx.headerOf[findMethod(t, prog, "C", "Use")]
	if header.Params[0].Slot != 1 || header.Params[1].Slot != 2 {
		t.Fatalf("instance method params have slots %d,%d, want 1,2 (slot 0 reserved for this)",
			header.Params[0].Slot, header.Params[1].Slot)
	}
}

func TestParamSlotsStartAtZeroInStaticMethod(t *testing.T) {
	ctx, prog := resolveSrc(t, testFile{"a.as", `
		class C {
			public static void Use(int a, int b) {}
		}
	`})
	requireNoErrors(t, ctx)

	header := ctx.headerOf[findMethod(t, prog, "C", "Use")]
	if header.Params[0].Slot != 0 || header.Params[1].Slot != 1 {
		t.Fatalf("static method params have slots %d,%d, want 0,1", header.Params[0].Slot, header.Params[1].Slot)
	}
}

func TestLocalSlotsContinueAfterParams(t *testing.T) {
	// White-box: bodyCtx.nextLocalSlot continues numbering from wherever
	// resolveMethodBody seeded it, which is itself one past the owning
	// method's highest assigned parameter slot.
	bc := &bodyCtx{localSlot: 2}
	if got := bc.nextLocalSlot(); got != 2 {
		t.Fatalf("first local slot = %d, want 2", got)
	}
	if got := bc.nextLocalSlot(); got != 3 {
		t.Fatalf("second local slot = %d, want 3", got)
	}
}

// findCtorOverloadStatic returns typeName's static constructor.
func findCtorOverloadStatic(t *testing.T, prog *ast.Program, typeName string) *ast.MethodDecl {
	t.Helper()
	var walk func(ns *ast.Namespace) *ast.MethodDecl
	walk = func(ns *ast.Namespace) *ast.MethodDecl {
		for _, td := range ns.Types {
			class, ok := td.(*ast.ClassDecl)
			if !ok || class.Name != typeName {
				continue
			}
			for _, m := range class.Methods {
				if m.IsCtor && m.Modifiers.Has(ast.ModStatic) {
					return m
				}
			}
		}
		for _, nested := range ns.Namespaces {
			if m := walk(nested); m != nil {
				return m
			}
		}
		return nil
	}
	for _, ns := range prog.Namespaces {
		if m := walk(ns); m != nil {
			return m
		}
	}
	t.Fatalf("static constructor of %s not found", typeName)
	return nil
}

// findMethod walks every namespace/type in prog looking for a class named
// typeName and a method named methodName on it, failing the test if either
// is not found. Nested types and non-class type declarations are not
// searched; none of this file's fixtures need that.
func findMethod(t *testing.T, prog *ast.Program, typeName, methodName string) *ast.MethodDecl {
	t.Helper()
	var walk func(ns *ast.Namespace) *ast.MethodDecl
	walk = func(ns *ast.Namespace) *ast.MethodDecl {
		for _, td := range ns.Types {
			class, ok := td.(*ast.ClassDecl)
			if !ok || class.Name != typeName {
				continue
			}
			for _, m := range class.Methods {
				if m.Name == methodName {
					return m
				}
			}
		}
		for _, nested := range ns.Namespaces {
			if m := walk(nested); m != nil {
				return m
			}
		}
		return nil
	}
	for _, ns := range prog.Namespaces {
		if m := walk(ns); m != nil {
			return m
		}
	}
	t.Fatalf("method %s.%s not found in program", typeName, methodName)
	return nil
}
