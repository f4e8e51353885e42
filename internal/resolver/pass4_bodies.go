package resolver

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/diag"
	"github.com/asterlang/aster/internal/symbols"
)

// bodyCtx is pass 4's per-method walk state: the scope chain a body resolves
// names against, which class and signature it is walking (for "this"/"base"
// and return-type checking), and the loop/label bookkeeping break/continue/
// goto need. A nested construct (block, loop, catch clause) threads a copy
// with its own scope/loopDepth rather than mutating the caller's bodyCtx, the
// same "child inherits, doesn't corrupt parent" shape the teacher's
// contract_pass.go gives its per-function walk state.
type bodyCtx struct {
	ctx       *PassContext
	typ       *symbols.Type
	method    *symbols.MethodHeader
	scope     *symbols.Scope
	static    bool
	loopDepth int
	labels    map[string]*symbols.LabelEntry
	namespace string
	tempCount int
	localSlot int // next free frame-slot index, continuing on from the method's own parameter slots
}

// nextLocalSlot hands out the next free frame-slot index for a local
// variable, continuing the numbering left off by the owning method's
// parameters (spec.md §3's Data Model). Sibling blocks copy bodyCtx by
// value (resolveBlock et al.), so a slot handed out in one block is not
// visible to a later sibling block's count — each restarts from the
// parent's count at the point the child scope was entered, the same way a
// stack-slot allocator reuses storage no longer live once a block ends.
func (bc *bodyCtx) nextLocalSlot() int {
	slot := bc.localSlot
	bc.localSlot++
	return slot
}

func (bc *bodyCtx) ns() string { return bc.namespace }

// runBodyPass is pass 4: it walks every class-like type's methods,
// property accessors and event accessors and resolves their bodies,
// applying the expression-lowering catalog (spec.md §4.5) as it goes. It
// runs last because every member scope is locked coming out of pass 3 (see
// runMemberPass) and every other type's shape is therefore final — a
// method body may reference any type or member declared anywhere in the
// program regardless of declaration order (spec.md §4's "whole-program"
// resolution order note).
func runBodyPass(ctx *PassContext, prog *ast.Program) {
	var walk func(ns *ast.Namespace)
	walk = func(ns *ast.Namespace) {
		for _, td := range ns.Types {
			walkTypeBodies(ctx, td)
		}
		for _, child := range ns.Namespaces {
			walk(child)
		}
	}
	for _, ns := range prog.Namespaces {
		walk(ns)
	}
}

func walkTypeBodies(ctx *PassContext, td ast.TypeDecl) {
	decl, ok := td.(*ast.ClassDecl)
	if !ok {
		return // enums carry no bodies; delegates' synthesized members have none either
	}
	t := ctx.typeOf[td]
	for _, m := range decl.Methods {
		resolveMethodBody(ctx, t, m)
	}
	injectInitializerPrologues(ctx, t, decl)
	for _, p := range decl.Properties {
		resolvePropertyBody(ctx, t, p)
	}
	for _, e := range decl.Events {
		resolveEventBody(ctx, t, e)
	}
	for _, nested := range decl.NestedTypes {
		walkTypeBodies(ctx, nested)
	}
}

// resolveMethodBody resolves m's body (and, for a constructor, its
// base()/this() chain) against a fresh scope seated on the method's already-
// built MethodHeader parameters. It is shared by plain methods, property
// accessors and event accessors alike, since all three are ast.MethodDecl
// nodes with one already-registered header in ctx.headerOf.
func resolveMethodBody(ctx *PassContext, t *symbols.Type, m *ast.MethodDecl) {
	header, ok := ctx.headerOf[m]
	if !ok {
		return // a member that failed to resolve its own signature in pass 3
	}
	if m.Body == nil && m.CtorChain == nil {
		return // abstract/interface member: nothing to walk
	}

	scope := symbols.NewScope(t.Scope)
	nextSlot := 0
	if !header.Static {
		nextSlot = 1 // slot 0 reserved for "this"
	}
	for _, p := range header.Params {
		_ = scope.Define(p)
		if p.Slot >= nextSlot {
			nextSlot = p.Slot + 1
		}
	}

	bc := &bodyCtx{
		ctx:       ctx,
		typ:       t,
		method:    header,
		scope:     scope,
		static:    header.Static,
		namespace: ctx.namespaceOf[t],
		labels:    make(map[string]*symbols.LabelEntry),
		localSlot: nextSlot,
	}
	ctx.CurrentType = t
	ctx.CurrentMethod = header

	if m.IsCtor {
		resolveCtorChain(bc, t, m)
	}
	if m.Body != nil {
		resolveBlock(bc, m.Body)
	}

	for _, lbl := range bc.labels {
		if !lbl.Resolved {
			ctx.errorf(errUndefinedLabel, m.Range(), "goto target %q is never labeled in %q", lbl.SymbolName(), m.Name)
		}
	}
}

// injectInitializerPrologues implements spec.md §4.5 pass-3 step 4's
// constructor-prologue requirement: every non-static constructor that chains
// to base (implicitly or via an explicit "base(...)" call) gets the type's
// resolved ".InstanceInit" body prepended, and the static constructor gets
// ".StaticInit" prepended. A constructor chaining "this(...)" to a sibling
// overload is skipped — that sibling already runs the initializer, and
// running it twice would re-assign every field a second time. The
// prologue's statements are resolved only once (as part of the synthesized
// method's own body, above) and shared by reference across every ctor that
// prepends them, since nothing downstream mutates a statement in place.
func injectInitializerPrologues(ctx *PassContext, t *symbols.Type, decl *ast.ClassDecl) {
	instanceInit := ctx.instanceInitOf[t]
	staticInit := ctx.staticInitOf[t]
	if instanceInit == nil && staticInit == nil {
		return
	}
	for _, m := range decl.Methods {
		if !m.IsCtor || m.Body == nil {
			continue
		}
		header, ok := ctx.headerOf[m]
		if !ok {
			continue
		}
		switch {
		case header.Static:
			if staticInit != nil && m != staticInit {
				prepend(m.Body, staticInit.Body.Stmts)
			}
		case m.CtorChain == nil || m.CtorChain.Kind == ast.ChainBase:
			if instanceInit != nil && m != instanceInit {
				prepend(m.Body, instanceInit.Body.Stmts)
			}
		}
	}
}

func prepend(b *ast.Block, prologue []ast.Statement) {
	stmts := make([]ast.Statement, 0, len(prologue)+len(b.Stmts))
	stmts = append(stmts, prologue...)
	stmts = append(stmts, b.Stmts...)
	b.Stmts = stmts
}

func resolvePropertyBody(ctx *PassContext, t *symbols.Type, p *ast.PropertyDecl) {
	if p.Getter != nil {
		resolveMethodBody(ctx, t, p.Getter)
	}
	if p.Setter != nil {
		resolveMethodBody(ctx, t, p.Setter)
	}
}

// resolveEventBody resolves explicit add/remove accessor bodies the same
// way any other method body resolves. An event using the backing-field
// shorthand has no accessor bodies to walk at all — registerEvent already
// registered its hidden backing field in pass 3, before t.Scope locked, and
// the fixed Combine/backing-field pattern those accessors expand to is an
// emitter concern (spec.md's bytecode/metadata emitter is explicitly out of
// this repository's scope), not something pass 4 needs an AST block for.
func resolveEventBody(ctx *PassContext, t *symbols.Type, e *ast.EventDecl) {
	if e.AddAccessor != nil {
		resolveMethodBody(ctx, t, e.AddAccessor)
	}
	if e.RemoveAccessor != nil {
		resolveMethodBody(ctx, t, e.RemoveAccessor)
	}
}

// resolveCtorChain resolves an explicit "base(...)"/"this(...)" opening call
// against the target type's constructor overloads, or — when the source
// wrote neither — validates the implicit zero-argument base() chain spec.md
// §4.5 says every constructor opens with by default.
func resolveCtorChain(bc *bodyCtx, t *symbols.Type, m *ast.MethodDecl) {
	if m.CtorChain == nil {
		if t.Base == nil {
			return // object's own constructor chains to nothing
		}
		validateCtorChainCall(bc, t.Base, nil, m.Range())
		return
	}

	argTypes := make([]*symbols.Type, len(m.CtorChain.Args))
	for i, a := range m.CtorChain.Args {
		m.CtorChain.Args[i] = resolveExpr(bc, a)
		if rt, ok := m.CtorChain.Args[i].ResolvedType().(*symbols.Type); ok {
			argTypes[i] = rt
		}
	}

	target := t
	if m.CtorChain.Kind == ast.ChainBase {
		target = t.Base
	}
	if target == nil {
		bc.ctx.errorf(errNotAClass, m.CtorChain.Range(), "%q has no base class to chain to", t.Name)
		return
	}
	validateCtorChainCall(bc, target, argTypes, m.CtorChain.Range())
}

func validateCtorChainCall(bc *bodyCtx, target *symbols.Type, argTypes []*symbols.Type, rng diag.FileRange) {
	if target.Scope == nil {
		return
	}
	e, ok := target.Scope.LookupLocal(".ctor")
	if !ok {
		if len(argTypes) > 0 {
			bc.ctx.errorf(errArgumentCount, rng, "%q has no explicit constructor but arguments were given", target.Name)
		}
		return
	}
	m, ok := e.(*symbols.MethodEntry)
	if !ok {
		return
	}
	h, ambiguous := findOverload(m.Overloads(), argTypes)
	switch {
	case ambiguous:
		bc.ctx.errorf(errAmbiguousOverload, rng, "ambiguous constructor chain call to %q", target.Name)
	case h == nil:
		bc.ctx.errorf(errNoApplicableOverload, rng, "no constructor of %q applies to these arguments", target.Name)
	}
}

// resolveBlock resolves every statement of b in a fresh child scope, so
// locals declared inside b shadow (and vanish after) the enclosing scope's
// names, then writes each (possibly substituted) statement back in place.
func resolveBlock(bc *bodyCtx, b *ast.Block) {
	child := *bc
	child.scope = symbols.NewScope(bc.scope)
	for i, s := range b.Stmts {
		b.Stmts[i] = resolveStmt(&child, s)
	}
}

// resolveLoopBody resolves a loop's body statement with loopDepth bumped so
// break/continue validate against it, in a scope nested one level deeper so
// a loop-local declared inside a braceless body doesn't leak to the loop's
// own header.
func resolveLoopBody(bc *bodyCtx, s ast.Statement) ast.Statement {
	child := *bc
	child.scope = symbols.NewScope(bc.scope)
	child.loopDepth++
	return resolveStmt(&child, s)
}

// resolveStmt resolves every expression and nested statement s contains and
// returns the (possibly substituted) statement, mirroring resolveExpr's
// substitution contract for the statement family.
func resolveStmt(bc *bodyCtx, s ast.Statement) ast.Statement {
	if s == nil {
		return nil
	}
	switch n := s.(type) {
	case *ast.Block:
		resolveBlock(bc, n)
		return n

	case *ast.LocalVarDecl:
		return resolveLocalVarDecl(bc, n)

	case *ast.ExprStmt:
		n.Expr = resolveExpr(bc, n.Expr)
		return n

	case *ast.IfStmt:
		n.Cond = resolveExpr(bc, n.Cond)
		n.Then = resolveStmt(bc, n.Then)
		if n.Else != nil {
			n.Else = resolveStmt(bc, n.Else)
		}
		return n

	case *ast.WhileStmt:
		n.Cond = resolveExpr(bc, n.Cond)
		n.Body = resolveLoopBody(bc, n.Body)
		return n

	case *ast.DoStmt:
		n.Body = resolveLoopBody(bc, n.Body)
		n.Cond = resolveExpr(bc, n.Cond)
		return n

	case *ast.ForStmt:
		return resolveFor(bc, n)

	case *ast.ForeachStmt:
		return resolveForeach(bc, n)

	case *ast.SwitchStmt:
		return resolveSwitch(bc, n)

	case *ast.ReturnStmt:
		return resolveReturn(bc, n)

	case *ast.ThrowStmt:
		if n.Value != nil {
			n.Value = resolveExpr(bc, n.Value)
		}
		return n

	case *ast.TryStmt:
		return resolveTry(bc, n)

	case *ast.GotoStmt:
		if _, ok := bc.labels[n.Label]; !ok {
			bc.labels[n.Label] = symbols.NewLabel(n.Label)
		}
		return n

	case *ast.LabelStmt:
		lbl, ok := bc.labels[n.Label]
		if !ok {
			lbl = symbols.NewLabel(n.Label)
			bc.labels[n.Label] = lbl
		}
		lbl.Resolved = true
		n.Stmt = resolveStmt(bc, n.Stmt)
		return n

	case *ast.BreakStmt:
		if bc.loopDepth == 0 {
			bc.ctx.errorf(errBreakOutsideLoop, n.Range(), "'break' outside a loop or switch")
		}
		return n

	case *ast.ContinueStmt:
		if bc.loopDepth == 0 {
			bc.ctx.errorf(errContinueOutsideLoop, n.Range(), "'continue' outside a loop")
		}
		return n

	case *ast.EmptyStmt:
		return n
	}
	return s
}

func resolveLocalVarDecl(bc *bodyCtx, n *ast.LocalVarDecl) ast.Statement {
	var declared *symbols.Type
	if n.Type != nil {
		if t, ok := resolveTypeSig(bc.ctx, bc.scope, bc.ns(), n.Type); ok {
			declared = t
		} else {
			bc.ctx.errorf(errUndefinedType, n.Type.Range(), "undefined type for local %q", n.Name)
		}
	}
	if n.Initializer != nil {
		n.Initializer = resolveExpr(bc, n.Initializer)
	}
	if declared == nil {
		if n.Initializer != nil {
			if t, ok := n.Initializer.ResolvedType().(*symbols.Type); ok {
				declared = t
			}
		}
		if declared == nil {
			declared = symbols.Object
		}
	}
	local := symbols.NewLocal(n.Name, declared)
	local.Slot = bc.nextLocalSlot()
	_ = bc.scope.Define(local)
	return n
}

func resolveFor(bc *bodyCtx, n *ast.ForStmt) ast.Statement {
	child := *bc
	child.scope = symbols.NewScope(bc.scope)
	if n.Init != nil {
		n.Init = resolveStmt(&child, n.Init)
	}
	if n.Cond != nil {
		n.Cond = resolveExpr(&child, n.Cond)
	}
	if n.Post != nil {
		n.Post = resolveStmt(&child, n.Post)
	}
	n.Body = resolveLoopBody(&child, n.Body)
	return n
}

// resolveForeach binds VarName to the declared VarType when one is given,
// otherwise to the collection's element type — inferred from an array's
// Elem, or from a class-typed collection's "Current" property — then
// resolves Body in a scope carrying that binding. The ForeachStmt is kept
// as is; it is not lowered to a MoveNext/Current loop.
func resolveForeach(bc *bodyCtx, n *ast.ForeachStmt) ast.Statement {
	n.Collection = resolveExpr(bc, n.Collection)

	var elemType *symbols.Type
	if n.VarType != nil {
		if t, ok := resolveTypeSig(bc.ctx, bc.scope, bc.ns(), n.VarType); ok {
			elemType = t
		} else {
			bc.ctx.errorf(errUndefinedType, n.VarType.Range(), "undefined type for foreach variable %q", n.VarName)
		}
	} else if ct, ok := n.Collection.ResolvedType().(*symbols.Type); ok {
		switch {
		case ct.Kind == symbols.KindArray:
			elemType = ct.Elem
		case ct.Scope != nil:
			if e, ok := ct.Scope.Lookup("Current"); ok {
				if p, ok := e.(*symbols.PropertyEntry); ok {
					elemType = p.Type
				}
			}
		}
	}
	if elemType == nil {
		bc.ctx.errorf(errTypeMismatch, n.Collection.Range(), "cannot iterate this expression with foreach")
		elemType = symbols.Object
	}

	child := *bc
	child.scope = symbols.NewScope(bc.scope)
	child.loopDepth++
	loopVar := symbols.NewLocal(n.VarName, elemType)
	loopVar.Slot = child.nextLocalSlot()
	_ = child.scope.Define(loopVar)
	n.Body = resolveStmt(&child, n.Body)
	return n
}

// resolveSwitch resolves the tag and every section's case labels and
// statements in one shared child scope — spec.md's switch sections don't
// introduce their own nested scope, only the switch as a whole does — with
// loopDepth bumped so a "break" inside a section validates the same way a
// loop's would.
func resolveSwitch(bc *bodyCtx, n *ast.SwitchStmt) ast.Statement {
	n.Tag = resolveExpr(bc, n.Tag)

	child := *bc
	child.scope = symbols.NewScope(bc.scope)
	child.loopDepth++

	for _, sec := range n.Sections {
		for i, lbl := range sec.Labels {
			sec.Labels[i] = resolveExpr(&child, lbl)
		}
		for i, st := range sec.Stmts {
			sec.Stmts[i] = resolveStmt(&child, st)
		}
	}
	return n
}

func resolveReturn(bc *bodyCtx, n *ast.ReturnStmt) ast.Statement {
	if n.Value != nil {
		n.Value = resolveExpr(bc, n.Value)
	}
	if bc.method == nil {
		return n
	}
	switch {
	case bc.method.ReturnType == nil && n.Value != nil:
		bc.ctx.errorf(errReturnTypeMismatch, n.Range(), "cannot return a value from a void method")
	case bc.method.ReturnType != nil && n.Value == nil:
		bc.ctx.errorf(errReturnTypeMismatch, n.Range(), "must return a value of type %q", bc.method.ReturnType.Name)
	case bc.method.ReturnType != nil && n.Value != nil:
		if rt, ok := n.Value.ResolvedType().(*symbols.Type); ok && !symbols.AssignableTo(rt, bc.method.ReturnType) {
			bc.ctx.errorf(errReturnTypeMismatch, n.Range(), "cannot return this type from a method returning %q", bc.method.ReturnType.Name)
		}
	}
	return n
}

func resolveTry(bc *bodyCtx, n *ast.TryStmt) ast.Statement {
	resolveBlock(bc, n.Body)
	for _, c := range n.Catches {
		child := *bc
		child.scope = symbols.NewScope(bc.scope)
		exType := symbols.Object
		if c.ExType != nil {
			if t, ok := resolveTypeSig(bc.ctx, bc.scope, bc.ns(), c.ExType); ok {
				exType = t
			} else {
				bc.ctx.errorf(errUndefinedType, c.ExType.Range(), "undefined exception type in catch clause")
			}
		}
		if c.VarName != "" {
			exVar := symbols.NewLocal(c.VarName, exType)
			exVar.Slot = child.nextLocalSlot()
			_ = child.scope.Define(exVar)
		}
		resolveBlock(&child, c.Body)
	}
	if n.Finally != nil {
		resolveBlock(bc, n.Finally)
	}
	return n
}
