package resolver

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/symbols"
)

// opNames maps the operator token parser/declarations.go already recognizes
// in "operator <tok>" productions to the CLR-style special-method name
// spec.md §3 asks overload resolution to key on (op_Addition, op_Equality,
// ...), so a user-defined "operator +" and a predefined-operator fallback
// share one lookup key during pass 4's expression lowering.
var opNames = map[string]string{
	"+": "op_Addition", "-": "op_Subtraction", "*": "op_Multiply", "/": "op_Division",
	"%": "op_Modulus", "==": "op_Equality", "!=": "op_Inequality",
	"<": "op_LessThan", ">": "op_GreaterThan", "<=": "op_LessThanOrEqual", ">=": "op_GreaterThanOrEqual",
	"&": "op_BitwiseAnd", "|": "op_BitwiseOr", "^": "op_ExclusiveOr",
	"<<": "op_LeftShift", ">>": "op_RightShift",
	"!": "op_LogicalNot", "~": "op_OnesComplement",
}

// runMemberPass is pass 3: for every class-like type, populate its member
// Scope (fields, properties, events, methods, constructors, operator
// overloads), then — once every type in the program has its own members
// registered — check override/abstract/interface-coverage rules that need
// to see a base or interface type's finished member list, and finally lock
// every member scope so pass 4 cannot accidentally introduce new symbols
// while walking bodies. Split into two walks for that reason: the first
// can't assume a type mentioned as another type's base has already finished.
func runMemberPass(ctx *PassContext, prog *ast.Program) {
	var classLike []*symbols.Type
	var delegates []*symbols.Type

	var collect func(ns *ast.Namespace)
	collect = func(ns *ast.Namespace) {
		for _, td := range ns.Types {
			collectType(ctx, td, &classLike, &delegates)
		}
		for _, child := range ns.Namespaces {
			collect(child)
		}
	}
	for _, ns := range prog.Namespaces {
		collect(ns)
	}

	for _, t := range classLike {
		registerClassMembers(ctx, t)
	}
	for _, t := range delegates {
		registerDelegateAsyncMembers(ctx, t)
	}

	for _, t := range classLike {
		checkOverridesAndInterfaces(ctx, t)
		t.Scope.Lock()
	}
}

func collectType(ctx *PassContext, td ast.TypeDecl, classLike, delegates *[]*symbols.Type) {
	t := ctx.typeOf[td]
	switch decl := td.(type) {
	case *ast.ClassDecl:
		*classLike = append(*classLike, t)
		for _, nested := range decl.NestedTypes {
			collectType(ctx, nested, classLike, delegates)
		}
	case *ast.DelegateDecl:
		*delegates = append(*delegates, t)
	}
}

func registerClassMembers(ctx *PassContext, t *symbols.Type) {
	decl := ctx.declOf[t].(*ast.ClassDecl)
	nsOfScope := ctx.namespaceOf[t]
	lexScope := ctx.declScopeOf[t]

	var instanceInits, staticInits []*ast.FieldDecl

	for _, f := range decl.Fields {
		ft, ok := resolveTypeSig(ctx, lexScope, nsOfScope, f.Type)
		if !ok {
			ctx.errorf(errUndefinedType, f.Type.Range(), "undefined type for field %q", f.Name)
			continue
		}
		entry := symbols.NewField(f.Name, ft)
		entry.Static = f.Modifiers.Has(ast.ModStatic)
		entry.ReadOnly = f.Modifiers.Has(ast.ModReadonly) || f.Modifiers.Has(ast.ModConst)
		if err := t.Scope.Define(entry); err != nil {
			ctx.errorf(errDuplicateMember, f.Range(), "%q is already declared in %q", f.Name, t.Name)
		}

		// spec.md §4.5 pass-3 step 2: bucket field initializers by static vs
		// instance; structs reject instance-field initializers outright.
		if f.Initializer == nil {
			continue
		}
		if entry.Static {
			staticInits = append(staticInits, f)
		} else if t.Kind == symbols.KindStruct {
			ctx.errorf(errStructInstanceInitializer, f.Initializer.Range(),
				"struct field %q may not have an instance initializer", f.Name)
		} else {
			instanceInits = append(instanceInits, f)
		}
	}

	for _, m := range decl.Methods {
		registerMethod(ctx, t, m, nsOfScope, lexScope)
	}

	for _, p := range decl.Properties {
		registerProperty(ctx, t, p, nsOfScope, lexScope)
	}

	for _, e := range decl.Events {
		registerEvent(ctx, t, e, nsOfScope, lexScope)
	}

	synthesizeFieldInitMethods(ctx, t, decl, instanceInits, staticInits)
	synthesizeDefaultCtors(ctx, t, decl)
}

// synthesizeFieldInitMethods builds the hidden ".InstanceInit"/".StaticInit"
// methods spec.md §4.5 pass-3 step 2 describes: one synthesized method per
// bucket, its body one "field = initializer" assignment statement per
// bucketed field, in declaration order. The assignment's left side is left
// as a bare SimpleObjExp — pass 4 resolves it exactly like any other
// implicit-this field reference written in a real method body, so no
// special-cased lowering is needed here. A bucket with no fields gets no
// synthesized method at all; pass 4's ctor-prologue injection treats a
// missing entry as "nothing to prepend".
func synthesizeFieldInitMethods(ctx *PassContext, t *symbols.Type, decl *ast.ClassDecl, instanceInits, staticInits []*ast.FieldDecl) {
	if len(instanceInits) > 0 {
		m := buildFieldInitMethod(t, ".InstanceInit", instanceInits, false)
		decl.Methods = append(decl.Methods, m)
		header := &symbols.MethodHeader{Rng: m.Range()}
		if err := t.Scope.DefineOverload(".InstanceInit", header); err != nil {
			ctx.errorf(errDuplicateMember, m.Range(), "instance-init method: %v", err)
		}
		ctx.headerOf[m] = header
		ctx.instanceInitOf[t] = m
	}
	if len(staticInits) > 0 {
		m := buildFieldInitMethod(t, ".StaticInit", staticInits, true)
		decl.Methods = append(decl.Methods, m)
		header := &symbols.MethodHeader{Static: true, Rng: m.Range()}
		if err := t.Scope.DefineOverload(".StaticInit", header); err != nil {
			ctx.errorf(errDuplicateMember, m.Range(), "static-init method: %v", err)
		}
		ctx.headerOf[m] = header
		ctx.staticInitOf[t] = m
	}
}

func buildFieldInitMethod(t *symbols.Type, name string, fields []*ast.FieldDecl, static bool) *ast.MethodDecl {
	stmts := make([]ast.Statement, len(fields))
	for i, f := range fields {
		stmts[i] = &ast.ExprStmt{
			StmtBase: ast.StmtBase{Rng: f.Initializer.Range()},
			Expr: &ast.AssignExpr{
				ExprBase: ast.ExprBase{Rng: f.Initializer.Range()},
				Target:   &ast.SimpleObjExp{ExprBase: ast.ExprBase{Rng: f.Range()}, Name: f.Name},
				Value:    f.Initializer,
			},
		}
	}
	mods := ast.Modifiers(0)
	if static {
		mods = ast.ModStatic
	}
	return &ast.MethodDecl{
		DeclBase:  ast.DeclBase{Rng: t.DeclRange()},
		Name:      name,
		Modifiers: mods,
		Body:      &ast.Block{StmtBase: ast.StmtBase{Rng: t.DeclRange()}, Stmts: stmts},
	}
}

// synthesizeDefaultCtors implements spec.md §4.5 pass-3 step 7: a class
// with no declared constructor at all gets a synthesized parameterless
// public one chaining to base; a class with field initializers bucketed
// into .StaticInit but no declared static constructor gets one synthesized
// too. Structs never get a default constructor.
func synthesizeDefaultCtors(ctx *PassContext, t *symbols.Type, decl *ast.ClassDecl) {
	if t.Kind == symbols.KindStruct {
		return
	}
	hasInstanceCtor, hasStaticCtor := false, false
	for _, m := range decl.Methods {
		if !m.IsCtor {
			continue
		}
		if m.Modifiers.Has(ast.ModStatic) {
			hasStaticCtor = true
		} else {
			hasInstanceCtor = true
		}
	}

	if !hasInstanceCtor {
		m := &ast.MethodDecl{
			DeclBase:  ast.DeclBase{Rng: t.DeclRange()},
			Name:      t.Name,
			IsCtor:    true,
			Modifiers: ast.ModPublic,
			Body:      &ast.Block{StmtBase: ast.StmtBase{Rng: t.DeclRange()}},
		}
		decl.Methods = append(decl.Methods, m)
		header := &symbols.MethodHeader{IsCtor: true, Rng: m.Range()}
		if err := t.Scope.DefineOverload(".ctor", header); err != nil {
			ctx.errorf(errDuplicateMember, m.Range(), "default constructor: %v", err)
		}
		ctx.headerOf[m] = header
	}

	if !hasStaticCtor && ctx.staticInitOf[t] != nil {
		m := &ast.MethodDecl{
			DeclBase:  ast.DeclBase{Rng: t.DeclRange()},
			Name:      t.Name,
			IsCtor:    true,
			Modifiers: ast.ModStatic,
			Body:      &ast.Block{StmtBase: ast.StmtBase{Rng: t.DeclRange()}},
		}
		decl.Methods = append(decl.Methods, m)
		header := &symbols.MethodHeader{IsCtor: true, Static: true, Rng: m.Range()}
		if err := t.Scope.DefineOverload(".cctor", header); err != nil {
			ctx.errorf(errDuplicateMember, m.Range(), "default static constructor: %v", err)
		}
		ctx.headerOf[m] = header
	}
}

func registerMethod(ctx *PassContext, t *symbols.Type, m *ast.MethodDecl, nsOfScope string, lexScope *symbols.Scope) {
	header := buildMethodHeader(ctx, m, nsOfScope, lexScope)
	if m.Modifiers.Has(ast.ModAbstract) && m.Body != nil {
		ctx.errorf(errAbstractBodyPresent, m.Range(), "abstract method %q cannot have a body", m.Name)
	}

	name := m.Name
	if m.OperatorTok != "" {
		opName, ok := opNames[m.OperatorTok]
		if !ok {
			ctx.errorf(errInvalidOperator, m.Range(), "unsupported operator overload %q", m.OperatorTok)
			return
		}
		if !m.Modifiers.Has(ast.ModPublic) || !m.Modifiers.Has(ast.ModStatic) || len(m.Params) != 2 {
			ctx.errorf(errInvalidOperator, m.Range(), "operator overload %q must be public static with exactly two parameters", m.OperatorTok)
		}
		name = opName
		header.Static = true
	}
	if m.IsCtor {
		// spec.md §4.5 pass-3 step 4: "Rename static constructors to a
		// reserved name to avoid colliding with the default instance
		// constructor" — a class can have any number of ".ctor" overloads
		// but at most one static constructor, so ".cctor" needs no overload
		// disambiguation of its own.
		if header.Static {
			name = ".cctor"
		} else {
			name = ".ctor"
		}
	}

	if err := t.Scope.DefineOverload(name, header); err != nil {
		ctx.errorf(errDuplicateMember, m.Range(), "method %q: %v", name, err)
	}
	ctx.headerOf[m] = header
}

func buildMethodHeader(ctx *PassContext, m *ast.MethodDecl, nsOfScope string, lexScope *symbols.Scope) *symbols.MethodHeader {
	var retType *symbols.Type
	if m.ReturnType != nil {
		rt, ok := resolveTypeSig(ctx, lexScope, nsOfScope, m.ReturnType)
		if !ok {
			ctx.errorf(errUndefinedType, m.ReturnType.Range(), "undefined return type for method %q", m.Name)
		} else {
			retType = rt
		}
	}
	var params []*symbols.ParamEntry
	for _, p := range m.Params {
		pt, ok := resolveTypeSig(ctx, lexScope, nsOfScope, p.Type)
		if !ok {
			ctx.errorf(errUndefinedType, p.Type.Range(), "undefined type for parameter %q", p.Name)
			continue
		}
		params = append(params, symbols.NewParam(p.Name, pt, symbols.ParamFlow(p.Flow)))
	}
	assignParamSlots(params, m.Modifiers.Has(ast.ModStatic))
	return &symbols.MethodHeader{
		Params:     params,
		ReturnType: retType,
		Static:     m.Modifiers.Has(ast.ModStatic),
		Virtual:    m.Modifiers.Has(ast.ModVirtual),
		Override:   m.Modifiers.Has(ast.ModOverride),
		Abstract:   m.Modifiers.Has(ast.ModAbstract),
		Sealed:     m.Modifiers.Has(ast.ModSealed),
		IsCtor:     m.IsCtor,
		Rng:        m.Range(),
	}
}

// assignParamSlots assigns each param its frame-slot index in declaration
// order: slot 0 is reserved for "this" in a non-static method (spec.md §3's
// Data Model), so params start at slot 1 there, or slot 0 in a static
// method/accessor with no "this" to reserve a slot for. Returns the next
// free slot, which a caller that also owns locals (none currently do
// outside resolveMethodBody) could continue numbering from.
func assignParamSlots(params []*symbols.ParamEntry, static bool) int {
	slot := 0
	if !static {
		slot = 1
	}
	for _, p := range params {
		p.Slot = slot
		slot++
	}
	return slot
}

// registerProperty builds the Getter/Setter MethodEntry pair an ordinary
// property or a "this[...]" indexer needs. An indexer's synthesized name is
// hard-coded to "Item" (spec.md §9 Open Question 2's decision), and its
// accessors additionally carry IndexParams ahead of the implicit value
// parameter get_Item/set_Item methods need.
func registerProperty(ctx *PassContext, t *symbols.Type, p *ast.PropertyDecl, nsOfScope string, lexScope *symbols.Scope) {
	propType, ok := resolveTypeSig(ctx, lexScope, nsOfScope, p.Type)
	if !ok {
		ctx.errorf(errUndefinedType, p.Type.Range(), "undefined type for property %q", p.Name)
		return
	}
	name := p.Name
	if p.Indexer {
		name = "Item"
	}

	entry := symbols.NewProperty(name, propType)
	entry.Indexer = p.Indexer
	entry.Static = p.Modifiers.Has(ast.ModStatic)

	var indexParams []*symbols.ParamEntry
	for _, ip := range p.IndexParams {
		ipt, ok := resolveTypeSig(ctx, lexScope, nsOfScope, ip.Type)
		if !ok {
			ctx.errorf(errUndefinedType, ip.Type.Range(), "undefined type for indexer parameter %q", ip.Name)
			continue
		}
		indexParams = append(indexParams, symbols.NewParam(ip.Name, ipt, symbols.ParamFlow(ip.Flow)))
	}
	entry.IndexParams = indexParams

	if p.Getter == nil && p.Setter == nil {
		ctx.errorf(errAccessorMismatch, p.Range(), "property %q has neither a getter nor a setter", p.Name)
	}
	if p.Indexer && len(indexParams) == 0 {
		ctx.errorf(errIndexerNeedsParams, p.Range(), "indexer must declare at least one index parameter")
	}

	if p.Getter != nil {
		getterParams := append([]*symbols.ParamEntry{}, indexParams...)
		assignParamSlots(getterParams, entry.Static)
		h := &symbols.MethodHeader{
			Params:     getterParams,
			ReturnType: propType,
			Static:     entry.Static,
			Virtual:    p.Getter.Modifiers.Has(ast.ModVirtual),
			Override:   p.Getter.Modifiers.Has(ast.ModOverride),
			Abstract:   p.Getter.Modifiers.Has(ast.ModAbstract),
			Rng:        p.Getter.Range(),
		}
		entry.Getter = &symbols.MethodEntry{First: h}
	}
	if p.Setter != nil {
		valueParam := symbols.NewParam("value", propType, symbols.FlowIn)
		setterParams := append(append([]*symbols.ParamEntry{}, indexParams...), valueParam)
		assignParamSlots(setterParams, entry.Static)
		h := &symbols.MethodHeader{
			Params:     setterParams,
			Static:     entry.Static,
			Virtual:    p.Setter.Modifiers.Has(ast.ModVirtual),
			Override:   p.Setter.Modifiers.Has(ast.ModOverride),
			Abstract:   p.Setter.Modifiers.Has(ast.ModAbstract),
			Rng:        p.Setter.Range(),
		}
		entry.Setter = &symbols.MethodEntry{First: h}
	}

	if err := t.Scope.Define(entry); err != nil {
		ctx.errorf(errDuplicateMember, p.Range(), "%q is already declared in %q", name, t.Name)
	}
	ctx.propOf[p] = entry
	if p.Getter != nil {
		ctx.headerOf[p.Getter] = entry.Getter.First
	}
	if p.Setter != nil {
		ctx.headerOf[p.Setter] = entry.Setter.First
	}
}

// registerEvent builds an event's Add/Remove accessor pair. When the source
// used the backing-field shorthand (AddAccessor/RemoveAccessor both nil),
// pass 4's lowering catalog synthesizes their bodies against a hidden
// backing field of the event's delegate type; here, pass 3 only needs to
// register the accessor signatures themselves so member lookup sees them.
func registerEvent(ctx *PassContext, t *symbols.Type, e *ast.EventDecl, nsOfScope string, lexScope *symbols.Scope) {
	evType, ok := resolveTypeSig(ctx, lexScope, nsOfScope, e.Type)
	if !ok {
		ctx.errorf(errUndefinedType, e.Type.Range(), "undefined delegate type for event %q", e.Name)
		return
	}
	entry := symbols.NewEvent(e.Name, evType)
	entry.Static = e.Modifiers.Has(ast.ModStatic)

	addParam := symbols.NewParam("value", evType, symbols.FlowIn)
	removeParam := symbols.NewParam("value", evType, symbols.FlowIn)
	assignParamSlots([]*symbols.ParamEntry{addParam}, entry.Static)
	assignParamSlots([]*symbols.ParamEntry{removeParam}, entry.Static)
	addHeader := &symbols.MethodHeader{Params: []*symbols.ParamEntry{addParam}, Static: entry.Static}
	removeHeader := &symbols.MethodHeader{Params: []*symbols.ParamEntry{removeParam}, Static: entry.Static}
	entry.Add = &symbols.MethodEntry{First: addHeader}
	entry.Remove = &symbols.MethodEntry{First: removeHeader}

	if err := t.Scope.Define(entry); err != nil {
		ctx.errorf(errDuplicateMember, e.Range(), "%q is already declared in %q", e.Name, t.Name)
	}
	ctx.eventOf[e] = entry
	if e.AddAccessor != nil {
		ctx.headerOf[e.AddAccessor] = entry.Add.First
	}
	if e.RemoveAccessor != nil {
		ctx.headerOf[e.RemoveAccessor] = entry.Remove.First
	}

	// Backing-field shorthand: when the source wrote no explicit add/remove
	// blocks, the compiler owns a hidden field of the event's own delegate
	// type that Combine/Remove read and write. It must be registered here,
	// before pass 3 locks t.Scope at the end of runMemberPass — pass 4 only
	// looks this field up, it never defines into an already-locked scope.
	if e.AddAccessor == nil && e.RemoveAccessor == nil {
		backing := symbols.NewField(eventBackingFieldName(e.Name), evType)
		backing.Static = entry.Static
		_ = t.Scope.Define(backing)
	}
}

// eventBackingFieldName mangles name the way the teacher's synthesized-member
// names avoid colliding with anything a user could spell (spec.md's
// identifier grammar never produces "<" or ">").
func eventBackingFieldName(name string) string {
	return "<" + name + ">k__BackingField"
}

// registerDelegateAsyncMembers rounds out a delegate type's member scope
// with Combine/Remove (the multicast-delegate composition operators
// spec.md §4.5's "delegate combine/remove" lowering item targets).
// BeginInvoke/EndInvoke are not synthesized: Aster has no asynchronous
// runtime model for a pending IAsyncResult to represent, and no part of
// SPEC_FULL.md's expression-lowering catalog needs them — surfacing them
// with no way to ever complete them would be worse than omitting them.
func registerDelegateAsyncMembers(ctx *PassContext, t *symbols.Type) {
	combineParam := symbols.NewParam("other", t, symbols.FlowIn)
	removeParam := symbols.NewParam("other", t, symbols.FlowIn)
	assignParamSlots([]*symbols.ParamEntry{combineParam}, true)
	assignParamSlots([]*symbols.ParamEntry{removeParam}, true)
	combine := &symbols.MethodHeader{Params: []*symbols.ParamEntry{combineParam}, ReturnType: t, Static: true}
	remove := &symbols.MethodHeader{Params: []*symbols.ParamEntry{removeParam}, ReturnType: t, Static: true}
	_ = t.Scope.DefineOverload("Combine", combine)
	_ = t.Scope.DefineOverload("Remove", remove)
}

// checkOverridesAndInterfaces enforces the two rules that need every type's
// member list finished: an "override" method must actually override a
// virtual/abstract member somewhere in the base chain, and a class must
// supply a member of the same name and parameter types (visibility is not
// checked) for each method its declared interfaces list — spec.md §9 Open
// Question 3's approximate interface-
// mapping rule, not the CLR's full algorithm.
func checkOverridesAndInterfaces(ctx *PassContext, t *symbols.Type) {
	if t.Kind == symbols.KindInterface {
		return
	}
	for _, name := range t.Scope.Names() {
		e, _ := t.Scope.LookupLocal(name)
		m, ok := e.(*symbols.MethodEntry)
		if !ok {
			continue
		}
		for _, h := range m.Overloads() {
			if h.Override && !hasOverridableBase(t.Base, name, h) {
				ctx.errorf(errOverrideWithoutVirtual, h.Rng,
					"%q.%s marked override but no matching virtual or abstract member was found in a base type", t.Name, name)
			}
		}
	}

	for _, iface := range t.Interfaces {
		for _, name := range iface.Scope.Names() {
			want, ok := iface.Scope.LookupLocal(name)
			if !ok {
				continue
			}
			wm, isMethod := want.(*symbols.MethodEntry)
			if !isMethod {
				continue
			}
			for _, wh := range wm.Overloads() {
				if !hasMatchingMember(t, name, wh) {
					ctx.errorf(errMissingInterfaceMember, t.DeclRange(),
						"%q does not implement %q.%s required by interface %q", t.Name, iface.Name, name, iface.Name)
				}
			}
		}
	}
}

func hasOverridableBase(base *symbols.Type, name string, candidate *symbols.MethodHeader) bool {
	for b := base; b != nil; b = b.Base {
		e, ok := b.Scope.LookupLocal(name)
		if !ok {
			continue
		}
		m, ok := e.(*symbols.MethodEntry)
		if !ok {
			continue
		}
		for _, h := range m.Overloads() {
			if (h.Virtual || h.Abstract || h.Override) && headersSignatureMatch(h, candidate) {
				return true
			}
		}
	}
	return false
}

func hasMatchingMember(t *symbols.Type, name string, want *symbols.MethodHeader) bool {
	for cur := t; cur != nil; cur = cur.Base {
		e, ok := cur.Scope.LookupLocal(name)
		if !ok {
			continue
		}
		m, ok := e.(*symbols.MethodEntry)
		if !ok {
			continue
		}
		for _, h := range m.Overloads() {
			if headersSignatureMatch(h, want) {
				return true
			}
		}
	}
	return false
}

func headersSignatureMatch(a, b *symbols.MethodHeader) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if a.Params[i].Type != b.Params[i].Type {
			return false
		}
	}
	return true
}
