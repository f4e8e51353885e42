package resolver

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/diag"
	"github.com/asterlang/aster/internal/symbols"
)

// resolveBinary resolves both operands, then matches spec.md §4.5's
// predefined-operator table before falling back to a user-defined
// "operator <op>" overload. A matched overload lowers the node into a call
// against that operator method; spec.md §9 Open Question 1 governs what
// happens when neither a predefined operator nor an overload applies to
// ==/!=: silent reference-equality, left exactly as BinaryExpr for codegen
// to emit directly, rather than an error.
func resolveBinary(bc *bodyCtx, n *ast.BinaryExpr) ast.Expression {
	n.Left = resolveExpr(bc, n.Left)
	n.Right = resolveExpr(bc, n.Right)
	lt, _ := n.Left.ResolvedType().(*symbols.Type)
	rt, _ := n.Right.ResolvedType().(*symbols.Type)

	if result, ok := predefinedBinaryResultType(n.Op, lt, rt); ok {
		n.SetResolvedType(result)
		return n
	}

	if m, h := lookupOperatorOverload(n.Op, lt, rt); h != nil {
		return loweredOperatorCall(bc, n.Rng, m, h, n.Left, n.Right)
	}

	if n.Op == ast.OpEq || n.Op == ast.OpNeq {
		// Open Question 1: non-primitive, non-enum, non-string, non-delegate
		// operands with no matching user operator compare by reference.
		n.SetResolvedType(symbols.Bool)
		return n
	}

	bc.ctx.errorf(errInvalidOperator, n.Range(), "operator not applicable to these operand types")
	return n
}

// loweredOperatorCall turns a BinaryExpr matched to a user "operator X"
// method into an explicit static call against that method, the same
// "operator overloads are just specially-named static methods" model
// spec.md §3's op_Addition-style naming implies.
func loweredOperatorCall(bc *bodyCtx, rng diag.FileRange, m *symbols.MethodEntry, h *symbols.MethodHeader, left, right ast.Expression) ast.Expression {
	callee := &ast.ResolvedRefExpr{ExprBase: ast.ExprBase{Rng: rng}, Kind: ast.RefMethodGroup, Symbol: m}
	call := &ast.CallExpr{
		ExprBase: ast.ExprBase{Rng: rng},
		Callee:   callee,
		Args:     []ast.Arg{{Value: left}, {Value: right}},
	}
	call.SetResolvedType(h.ReturnType)
	return call
}

func resolveUnary(bc *bodyCtx, n *ast.UnaryExpr) ast.Expression {
	n.Operand = resolveExpr(bc, n.Operand)
	ot, _ := n.Operand.ResolvedType().(*symbols.Type)
	switch n.Op {
	case ast.OpNeg:
		if isNumeric(ot) {
			n.SetResolvedType(ot)
			return n
		}
	case ast.OpNot, ast.OpLogNot:
		if ot == symbols.Bool {
			n.SetResolvedType(symbols.Bool)
			return n
		}
	case ast.OpBitNot:
		if ot == symbols.Int {
			n.SetResolvedType(symbols.Int)
			return n
		}
	}
	bc.ctx.errorf(errInvalidOperator, n.Range(), "unary operator not applicable to this operand type")
	return n
}

// resolveIncDec rewrites "++x"/"x--" when x resolves to a property: the
// property has no storage location to increment in place, so spec.md §4.5
// lowers it into a stash-get-add-set sequence over a compiler-synthesized
// temporary, returning either the pre- or post-increment value depending on
// Prefix. A plain storage target (local, field, array element) keeps the
// original node — codegen can increment it directly.
func resolveIncDec(bc *bodyCtx, n *ast.IncDecExpr) ast.Expression {
	n.Target = resolveExpr(bc, n.Target)
	ref, isProperty := n.Target.(*ast.ResolvedRefExpr)
	if !isProperty || ref.Kind != ast.RefProperty {
		n.SetResolvedType(n.Target.ResolvedType())
		return n
	}

	prop := ref.Symbol.(*symbols.PropertyEntry)
	temp := syntheticLocal(bc, prop.Type)
	tempRef := &ast.DeclareLocalExpr{ExprBase: ast.ExprBase{Rng: n.Rng, Type: prop.Type}, Local: temp}

	one := &ast.IntLit{ExprBase: ast.ExprBase{Rng: n.Rng, Type: symbols.Int}, Value: 1}
	op := ast.OpAdd
	if !n.Inc {
		op = ast.OpSub
	}
	newValue := &ast.BinaryExpr{ExprBase: ast.ExprBase{Rng: n.Rng, Type: prop.Type}, Op: op, Left: tempRef, Right: one}

	getStmt := &ast.ExprStmt{StmtBase: ast.StmtBase{Rng: n.Rng}, Expr: &ast.AssignExpr{
		ExprBase: ast.ExprBase{Rng: n.Rng}, Target: tempRef, Value: ref,
	}}
	setStmt := &ast.ExprStmt{StmtBase: ast.StmtBase{Rng: n.Rng}, Expr: lowerPropertySet(bc, n.Rng, ref, newValue)}

	if !n.Prefix {
		// Post-increment yields the pre-update value; stash it in a second
		// temporary before the set so the outer expression's value is right.
		resultTemp := syntheticLocal(bc, prop.Type)
		resultRef := &ast.DeclareLocalExpr{ExprBase: ast.ExprBase{Rng: n.Rng, Type: prop.Type}, Local: resultTemp}
		stashStmt := &ast.ExprStmt{StmtBase: ast.StmtBase{Rng: n.Rng}, Expr: &ast.AssignExpr{
			ExprBase: ast.ExprBase{Rng: n.Rng}, Target: resultRef, Value: tempRef,
		}}
		compound := &ast.CompoundExpr{
			ExprBase: ast.ExprBase{Rng: n.Rng, Type: prop.Type},
			Stmts:    []ast.Statement{getStmt, stashStmt, setStmt},
			Value:    resultRef,
		}
		return compound
	}

	compound := &ast.CompoundExpr{
		ExprBase: ast.ExprBase{Rng: n.Rng, Type: prop.Type},
		Stmts:    []ast.Statement{getStmt, setStmt},
		Value:    newValue,
	}
	return compound
}

func syntheticLocal(bc *bodyCtx, t *symbols.Type) *ast.LocalVarDecl {
	bc.tempCount++
	name := syntheticLocalName(bc.tempCount)
	local := &ast.LocalVarDecl{Name: name}
	_ = bc.scope.Define(symbols.NewLocal(name, t))
	return local
}

func syntheticLocalName(n int) string {
	return "$t" + itoa(n)
}

// itoa avoids importing strconv for a single-digit-friendly counter used
// only in synthesized, never-user-visible local names.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

// resolveAssign dispatches to lvalue-specific lowering before falling back
// to a plain assignment. An indexer target is special-cased ahead of
// generic resolution: resolveExpr on a bare IndexExpr already lowers a
// class-typed target's read into a get_Item call (see resolveIndex), so by
// the time a generically-resolved Target could be inspected here, the
// set_Item case it needs to detect would already be gone — resolveAssign
// instead resolves the IndexExpr's own Target sub-expression itself and
// decides up front whether this is an indexer write or a plain array store.
func resolveAssign(bc *bodyCtx, n *ast.AssignExpr) ast.Expression {
	if idx, ok := n.Target.(*ast.IndexExpr); ok {
		return resolveIndexerOrArrayAssign(bc, n, idx)
	}

	n.Target = resolveExpr(bc, n.Target)

	if ref, ok := n.Target.(*ast.ResolvedRefExpr); ok && ref.Kind == ast.RefEvent {
		if combined, ok := tryLowerEventAssign(bc, n, ref); ok {
			return combined
		}
		bc.ctx.errorf(errNotAnLvalue, n.Range(), "event %q can only appear on the left of += or -=", ref.Symbol.SymbolName())
	}

	n.Value = resolveExpr(bc, n.Value)

	if ref, ok := n.Target.(*ast.ResolvedRefExpr); ok && ref.Kind == ast.RefProperty {
		call := lowerPropertySet(bc, n.Rng, ref, n.Value)
		return &ast.CompoundExpr{
			ExprBase: ast.ExprBase{Rng: n.Rng, Type: n.Value.ResolvedType()},
			Stmts:    []ast.Statement{&ast.ExprStmt{StmtBase: ast.StmtBase{Rng: n.Rng}, Expr: call}},
			Value:    n.Value,
		}
	}

	n.SetResolvedType(n.Value.ResolvedType())
	return n
}

func resolveIndexerOrArrayAssign(bc *bodyCtx, n *ast.AssignExpr, idx *ast.IndexExpr) ast.Expression {
	idx.Target = resolveExpr(bc, idx.Target)
	ownerType, _ := idx.Target.ResolvedType().(*symbols.Type)

	if ownerType != nil && ownerType.IsClassLike() {
		n.Value = resolveExpr(bc, n.Value)
		if call, ok := lowerIndexerSet(bc, idx, n.Value); ok {
			return call
		}
	}

	for i, ix := range idx.Indices {
		idx.Indices[i] = resolveExpr(bc, ix)
	}
	if ownerType != nil && ownerType.Kind == symbols.KindArray {
		idx.SetResolvedType(ownerType.Elem)
	}
	n.Target = idx
	n.Value = resolveExpr(bc, n.Value)
	n.SetResolvedType(n.Value.ResolvedType())
	return n
}

// tryLowerEventAssign recognizes the parser's compound-assignment
// desugaring of "ev += handler" / "ev -= handler" (AssignExpr{Target: ev,
// Value: BinaryExpr{OpAdd/OpSub, ev, handler}}) and lowers it to a call
// against the event's Add/Remove accessor, per spec.md §4.5's
// "event add/remove" lowering item. A plain "ev = handler" (no such
// BinaryExpr wrapper) is not touched here; spec.md only defines += / -= for
// events, so resolveAssign reports any other assignment to an event.
func tryLowerEventAssign(bc *bodyCtx, n *ast.AssignExpr, target *ast.ResolvedRefExpr) (ast.Expression, bool) {
	bin, ok := n.Value.(*ast.BinaryExpr)
	if !ok || (bin.Op != ast.OpAdd && bin.Op != ast.OpSub) {
		return nil, false
	}
	handler := resolveExpr(bc, bin.Right)
	ev := target.Symbol.(*symbols.EventEntry)
	accessor := ev.Add
	if bin.Op == ast.OpSub {
		accessor = ev.Remove
	}
	callee := &ast.ResolvedRefExpr{ExprBase: ast.ExprBase{Rng: n.Rng}, Kind: ast.RefMethodGroup, Symbol: accessor, Target: target.Target}
	call := &ast.CallExpr{ExprBase: ast.ExprBase{Rng: n.Rng}, Callee: callee, Args: []ast.Arg{{Value: handler}}}
	return call, true
}

// lowerPropertySet builds the setter call a property-target assignment
// lowers into.
func lowerPropertySet(bc *bodyCtx, rng diag.FileRange, target *ast.ResolvedRefExpr, value ast.Expression) ast.Expression {
	prop := target.Symbol.(*symbols.PropertyEntry)
	callee := &ast.ResolvedRefExpr{ExprBase: ast.ExprBase{Rng: rng}, Kind: ast.RefMethodGroup, Symbol: prop.Setter, Target: target.Target}
	return &ast.CallExpr{ExprBase: ast.ExprBase{Rng: rng}, Callee: callee, Args: []ast.Arg{{Value: value}}}
}

// lowerIndexerSet builds the set_Item call an indexer-target assignment
// lowers into, or (false) when the target's type has no "Item" indexer
// property at all (a plain array index keeps its IndexExpr form instead).
func lowerIndexerSet(bc *bodyCtx, idx *ast.IndexExpr, value ast.Expression) (ast.Expression, bool) {
	ownerType := idx.Target.ResolvedType().(*symbols.Type)
	e, ok := ownerType.Scope.Lookup("Item")
	if !ok {
		return nil, false
	}
	prop, ok := e.(*symbols.PropertyEntry)
	if !ok || prop.Setter == nil {
		return nil, false
	}
	callee := &ast.ResolvedRefExpr{ExprBase: ast.ExprBase{Rng: idx.Rng}, Kind: ast.RefMethodGroup, Symbol: prop.Setter, Target: idx.Target}
	args := make([]ast.Arg, 0, len(idx.Indices)+1)
	for _, ix := range idx.Indices {
		args = append(args, ast.Arg{Value: resolveExpr(bc, ix)})
	}
	args = append(args, ast.Arg{Value: value})
	call := &ast.CallExpr{ExprBase: ast.ExprBase{Rng: idx.Rng, Type: prop.Type}, Callee: callee, Args: args}
	return call, true
}

// resolveCall resolves Callee and every argument, then picks the applicable
// overload. A Callee that resolved to a method group is dispatched directly;
// a Callee that resolved to an ordinary value of a delegate type is first
// rewritten into that delegate's "Invoke" method group, so "handler(args)"
// and "handler.Invoke(args)" share one lowering path (spec.md §4.5's
// delegate-invocation note).
func resolveCall(bc *bodyCtx, n *ast.CallExpr) ast.Expression {
	n.Callee = resolveExpr(bc, n.Callee)
	argTypes := resolveArgs(bc, n.Args)

	ref, ok := n.Callee.(*ast.ResolvedRefExpr)
	if !ok || ref.Kind != ast.RefMethodGroup {
		if vt, isType := n.Callee.ResolvedType().(*symbols.Type); isType && vt != nil && vt.Scope != nil {
			if e, found := vt.Scope.Lookup("Invoke"); found {
				n.Callee = &ast.ResolvedRefExpr{ExprBase: ast.ExprBase{Rng: n.Callee.Range()}, Kind: ast.RefMethodGroup, Symbol: e, Target: n.Callee}
				ref = n.Callee.(*ast.ResolvedRefExpr)
				ok = true
			}
		}
	}
	if !ok {
		bc.ctx.errorf(errNotCallable, n.Range(), "expression is not callable")
		return n
	}

	m, isMethod := ref.Symbol.(*symbols.MethodEntry)
	if !isMethod {
		bc.ctx.errorf(errNotCallable, n.Range(), "expression is not callable")
		return n
	}

	h, ambiguous := findOverload(m.Overloads(), argTypes)
	switch {
	case ambiguous:
		bc.ctx.errorf(errAmbiguousOverload, n.Range(), "ambiguous call to %q", m.SymbolName())
	case h == nil:
		bc.ctx.errorf(errNoApplicableOverload, n.Range(), "no overload of %q applies to these arguments", m.SymbolName())
	default:
		n.SetResolvedType(h.ReturnType)
	}
	return n
}

// resolveNewObj resolves "new T(args)" by picking the applicable
// constructor overload from T's ".ctor" method group the same way an
// ordinary call does.
func resolveNewObj(bc *bodyCtx, n *ast.NewObjExpr) ast.Expression {
	t, ok := resolveTypeSig(bc.ctx, bc.scope, bc.ns(), n.Type)
	if !ok {
		bc.ctx.errorf(errUndefinedType, n.Type.Range(), "undefined type in 'new' expression")
		return n
	}
	argTypes := resolveArgs(bc, n.Args)
	if t.Scope != nil {
		if e, found := t.Scope.LookupLocal(".ctor"); found {
			if m, ok := e.(*symbols.MethodEntry); ok {
				if h, ambiguous := findOverload(m.Overloads(), argTypes); ambiguous {
					bc.ctx.errorf(errAmbiguousOverload, n.Range(), "ambiguous constructor call for %q", t.Name)
				} else if h == nil && len(m.Overloads()) > 0 {
					bc.ctx.errorf(errNoApplicableOverload, n.Range(), "no constructor of %q applies to these arguments", t.Name)
				}
			}
		} else if len(n.Args) > 0 {
			bc.ctx.errorf(errArgumentCount, n.Range(), "%q has no explicit constructor but arguments were given", t.Name)
		}
	}
	n.SetResolvedType(t)
	return n
}

// resolveNewArray resolves "new T[sizes]" directly, and desugars "new
// T[]{ initializer }" into a CompoundExpr that declares a temporary array
// local, assigns each initializer element by index, and yields the temp —
// spec.md §4.5's array-initializer lowering item.
func resolveNewArray(bc *bodyCtx, n *ast.NewArrayExpr) ast.Expression {
	elem, ok := resolveTypeSig(bc.ctx, bc.scope, bc.ns(), n.ElemType)
	if !ok {
		bc.ctx.errorf(errUndefinedType, n.ElemType.Range(), "undefined element type in array creation")
		return n
	}
	for i, s := range n.Sizes {
		n.Sizes[i] = resolveExpr(bc, s)
	}
	arrType := symbols.ArrayOf(elem, 1)
	n.SetResolvedType(arrType)

	if len(n.Initializer) == 0 {
		return n
	}

	for i, e := range n.Initializer {
		n.Initializer[i] = resolveExpr(bc, e)
	}

	temp := syntheticLocal(bc, arrType)
	tempRef := &ast.DeclareLocalExpr{ExprBase: ast.ExprBase{Rng: n.Rng, Type: arrType}, Local: temp}
	bare := &ast.NewArrayExpr{
		ExprBase: ast.ExprBase{Rng: n.Rng, Type: arrType},
		ElemType: n.ElemType,
		Sizes:    []ast.Expression{&ast.IntLit{ExprBase: ast.ExprBase{Rng: n.Rng, Type: symbols.Int}, Value: int64(len(n.Initializer))}},
	}
	stmts := []ast.Statement{&ast.ExprStmt{StmtBase: ast.StmtBase{Rng: n.Rng}, Expr: &ast.AssignExpr{
		ExprBase: ast.ExprBase{Rng: n.Rng}, Target: tempRef, Value: bare,
	}}}
	for i, e := range n.Initializer {
		idxExpr := &ast.IndexExpr{
			ExprBase: ast.ExprBase{Rng: n.Rng, Type: elem},
			Target:   tempRef,
			Indices:  []ast.Expression{&ast.IntLit{ExprBase: ast.ExprBase{Rng: n.Rng, Type: symbols.Int}, Value: int64(i)}},
		}
		stmts = append(stmts, &ast.ExprStmt{StmtBase: ast.StmtBase{Rng: n.Rng}, Expr: &ast.AssignExpr{
			ExprBase: ast.ExprBase{Rng: n.Rng}, Target: idxExpr, Value: e,
		}})
	}
	return &ast.CompoundExpr{ExprBase: ast.ExprBase{Rng: n.Rng, Type: arrType}, Stmts: stmts, Value: tempRef}
}

// resolveIndex resolves a read-context "Target[Indices]": a class/struct
// target with an "Item" indexer lowers to a get_Item call (spec.md §4.5);
// anything else (built-in array indexing, or a class with no indexer —
// reported as an error) keeps the plain IndexExpr shape.
func resolveIndex(bc *bodyCtx, n *ast.IndexExpr) ast.Expression {
	n.Target = resolveExpr(bc, n.Target)
	ownerType, _ := n.Target.ResolvedType().(*symbols.Type)

	if ownerType != nil && ownerType.IsClassLike() {
		if call, ok := lowerIndexerGet(bc, n); ok {
			return call
		}
		bc.ctx.errorf(errNotCallable, n.Range(), "%q has no indexer", ownerType.Name)
		return n
	}

	for i, ix := range n.Indices {
		n.Indices[i] = resolveExpr(bc, ix)
	}
	if ownerType != nil && ownerType.Kind == symbols.KindArray {
		n.SetResolvedType(ownerType.Elem)
	}
	return n
}

// lowerIndexerGet builds the get_Item call a read of a class-typed indexer
// target lowers into, or (false) when the target's type has no "Item"
// indexer property. idx.Target must already be resolved; idx.Indices are
// resolved here.
func lowerIndexerGet(bc *bodyCtx, idx *ast.IndexExpr) (ast.Expression, bool) {
	ownerType := idx.Target.ResolvedType().(*symbols.Type)
	e, ok := ownerType.Scope.Lookup("Item")
	if !ok {
		return nil, false
	}
	prop, ok := e.(*symbols.PropertyEntry)
	if !ok || prop.Getter == nil {
		return nil, false
	}
	callee := &ast.ResolvedRefExpr{ExprBase: ast.ExprBase{Rng: idx.Rng}, Kind: ast.RefMethodGroup, Symbol: prop.Getter, Target: idx.Target}
	args := make([]ast.Arg, 0, len(idx.Indices))
	for i, ix := range idx.Indices {
		idx.Indices[i] = resolveExpr(bc, ix)
		args = append(args, ast.Arg{Value: idx.Indices[i]})
	}
	call := &ast.CallExpr{ExprBase: ast.ExprBase{Rng: idx.Rng, Type: prop.Type}, Callee: callee, Args: args}
	return call, true
}
