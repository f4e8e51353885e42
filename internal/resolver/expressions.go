package resolver

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/symbols"
)

// resolveExpr is pass 4's expression walker: it resolves every placeholder
// node it finds to a concrete ResolvedRefExpr and applies the lowering
// catalog spec.md §4.5 describes, returning the (possibly different) node
// that should replace e in its caller's field — every call site must store
// the return value back, per ast/placeholders.go's doc note, since
// resolution is substitution, not in-place mutation.
func resolveExpr(bc *bodyCtx, e ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.NullLit:
		return n
	case *ast.BoolLit:
		n.SetResolvedType(symbols.Bool)
		return n
	case *ast.IntLit:
		n.SetResolvedType(symbols.Int)
		return n
	case *ast.FloatLit:
		n.SetResolvedType(symbols.Float)
		return n
	case *ast.StringLit:
		n.SetResolvedType(symbols.String)
		return n
	case *ast.CharLit:
		n.SetResolvedType(symbols.Char)
		return n
	case *ast.ThisExpr:
		if bc.static {
			bc.ctx.errorf(errThisInStaticContext, n.Range(), "'this' is not valid in a static context")
		}
		n.SetResolvedType(bc.typ)
		return n
	case *ast.BaseExpr:
		n.SetResolvedType(bc.typ.Base)
		return n
	case *ast.SimpleObjExp:
		return resolveSimpleRef(bc, n)
	case *ast.DotObjExp:
		return resolveDotRef(bc, n)
	case *ast.TempTypeExp:
		return resolveTempType(bc, n)
	case *ast.BinaryExpr:
		return resolveBinary(bc, n)
	case *ast.UnaryExpr:
		return resolveUnary(bc, n)
	case *ast.IncDecExpr:
		return resolveIncDec(bc, n)
	case *ast.AssignExpr:
		return resolveAssign(bc, n)
	case *ast.IsExpr:
		n.Operand = resolveExpr(bc, n.Operand)
		resolveTypeSigInPlace(bc, &n.Type)
		n.SetResolvedType(symbols.Bool)
		return n
	case *ast.AsCastExpr:
		n.Operand = resolveExpr(bc, n.Operand)
		resolveTypeSigInPlace(bc, &n.Type)
		if t, ok := resolveTypeSig(bc.ctx, bc.scope, bc.ns(), n.Type); ok {
			n.SetResolvedType(t)
		}
		return n
	case *ast.CondExpr:
		n.Cond = resolveExpr(bc, n.Cond)
		n.Then = resolveExpr(bc, n.Then)
		n.Else = resolveExpr(bc, n.Else)
		n.SetResolvedType(n.Then.ResolvedType())
		return n
	case *ast.TypeOfExpr:
		resolveTypeSigInPlace(bc, &n.Type)
		n.SetResolvedType(symbols.Object)
		return n
	case *ast.NewObjExpr:
		return resolveNewObj(bc, n)
	case *ast.NewArrayExpr:
		return resolveNewArray(bc, n)
	case *ast.IndexExpr:
		return resolveIndex(bc, n)
	case *ast.CallExpr:
		return resolveCall(bc, n)
	case *ast.CompoundExpr:
		for i, s := range n.Stmts {
			n.Stmts[i] = resolveStmt(bc, s)
		}
		n.Value = resolveExpr(bc, n.Value)
		n.SetResolvedType(n.Value.ResolvedType())
		return n
	case *ast.DeclareLocalExpr:
		return n
	case *ast.ResolvedRefExpr:
		return n
	}
	return e
}

// resolveTypeSigInPlace resolves *sig only to validate it, reporting an
// undefined type and discarding the result, since TypeSig
// fields are not replaced in place (ast/types.go leaves signatures
// immutable; only expression placeholders are substituted).
func resolveTypeSigInPlace(bc *bodyCtx, sig *ast.TypeSig) {
	if *sig == nil {
		return
	}
	if _, ok := resolveTypeSig(bc.ctx, bc.scope, bc.ns(), *sig); !ok {
		bc.ctx.errorf(errUndefinedType, (*sig).Range(), "undefined type in expression")
	}
}

func resolveArgs(bc *bodyCtx, args []ast.Arg) []*symbols.Type {
	types := make([]*symbols.Type, len(args))
	for i := range args {
		args[i].Value = resolveExpr(bc, args[i].Value)
		if rt, ok := args[i].Value.ResolvedType().(*symbols.Type); ok {
			types[i] = rt
		}
	}
	return types
}

// resolveSimpleRef binds a bare identifier by walking, in order: the local
// lexical scope chain (locals, parameters, instance/static members via the
// type's base chain, then the enclosing namespace's using-fallback) — the
// same precedence symbols.Scope.Lookup already implements, so this function
// only needs to classify the entry it gets back.
func resolveSimpleRef(bc *bodyCtx, n *ast.SimpleObjExp) ast.Expression {
	if e, ok := bc.scope.Lookup(n.Name); ok {
		return refFromEntry(bc, n.ExprBase, e, nil)
	}
	if ns, ok := bc.ctx.namespaces[n.Name]; ok {
		return &ast.ResolvedRefExpr{ExprBase: n.ExprBase, Kind: ast.RefNamespace, Symbol: ns}
	}
	bc.ctx.errorf(errUndefinedIdent, n.Range(), "undefined name %q", n.Name)
	return n
}

// resolveDotRef resolves "Left.Name" once Left's own meaning (namespace,
// type, or instance value) is known, which is exactly the ambiguity
// ast/placeholders.go's DotObjExp doc describes the parser deferring.
func resolveDotRef(bc *bodyCtx, n *ast.DotObjExp) ast.Expression {
	left := resolveExpr(bc, n.Left)

	if ref, ok := left.(*ast.ResolvedRefExpr); ok {
		switch ref.Kind {
		case ast.RefNamespace:
			nsName := ref.Symbol.SymbolName()
			full := n.Name
			if nsName != "" {
				full = nsName + "." + n.Name
			}
			if child, ok := bc.ctx.namespaces[full]; ok {
				return &ast.ResolvedRefExpr{ExprBase: n.ExprBase, Kind: ast.RefNamespace, Symbol: child}
			}
			if t, ok := bc.ctx.qualified[full]; ok {
				return &ast.ResolvedRefExpr{ExprBase: n.ExprBase, Kind: ast.RefType, Symbol: t}
			}
			bc.ctx.errorf(errUndefinedIdent, n.Range(), "undefined name %q in namespace %q", n.Name, nsName)
			return n

		case ast.RefType:
			t := ref.Symbol.(*symbols.Type)
			if t.Scope == nil {
				bc.ctx.errorf(errUndefinedIdent, n.Range(), "%q has no member %q", t.Name, n.Name)
				return n
			}
			if e, ok := t.Scope.LookupLocal(n.Name); ok {
				return refFromEntry(bc, n.ExprBase, e, nil)
			}
			bc.ctx.errorf(errUndefinedIdent, n.Range(), "%q has no static member %q", t.Name, n.Name)
			return n
		}
	}

	// Left is an ordinary value expression: look up an instance member on
	// its resolved type.
	lt, _ := left.ResolvedType().(*symbols.Type)
	if lt == nil || lt.Scope == nil {
		bc.ctx.errorf(errUndefinedIdent, n.Range(), "cannot access member %q", n.Name)
		return n
	}
	if e, ok := lt.Scope.Lookup(n.Name); ok {
		return refFromEntry(bc, n.ExprBase, e, left)
	}
	bc.ctx.errorf(errUndefinedIdent, n.Range(), "%q has no member %q", lt.Name, n.Name)
	return n
}

// refFromEntry builds the ResolvedRefExpr matching entry's kind. target is
// non-nil only when the member was reached through an instance value.
func refFromEntry(bc *bodyCtx, base ast.ExprBase, e symbols.Entry, target ast.Expression) ast.Expression {
	ref := &ast.ResolvedRefExpr{ExprBase: base, Symbol: e, Target: target}
	switch v := e.(type) {
	case *symbols.LocalEntry:
		ref.Kind = ast.RefLocal
		ref.SetResolvedType(v.Type)
	case *symbols.ParamEntry:
		ref.Kind = ast.RefParam
		ref.SetResolvedType(v.Type)
	case *symbols.FieldEntry:
		ref.Kind = ast.RefField
		ref.SetResolvedType(v.Type)
	case *symbols.PropertyEntry:
		ref.Kind = ast.RefProperty
		ref.SetResolvedType(v.Type)
	case *symbols.EventEntry:
		ref.Kind = ast.RefEvent
		ref.SetResolvedType(v.Type)
	case *symbols.MethodEntry:
		ref.Kind = ast.RefMethodGroup
	case *symbols.Type:
		ref.Kind = ast.RefType
	case *symbols.NamespaceEntry:
		ref.Kind = ast.RefNamespace
	}
	return ref
}

func resolveTempType(bc *bodyCtx, n *ast.TempTypeExp) ast.Expression {
	t, ok := resolveTypeSig(bc.ctx, bc.scope, bc.ns(), n.Sig)
	if !ok {
		bc.ctx.errorf(errUndefinedType, n.Range(), "undefined type in expression")
		return n
	}
	return &ast.ResolvedRefExpr{ExprBase: n.ExprBase, Kind: ast.RefType, Symbol: t}
}
