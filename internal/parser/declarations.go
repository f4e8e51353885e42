package parser

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/diag"
	"github.com/asterlang/aster/internal/token"
)

// parseFileNamespace parses an entire source file as the global (unnamed)
// namespace: using-directives followed by a mix of nested namespaces and
// type declarations, per spec.md §3's compilation-unit production.
func (p *Parser) parseFileNamespace() *ast.Namespace {
	start := p.cur.Range
	usings, namespaces, types := p.parseNamespaceBody(token.EOF)
	p.expect(token.EOF)
	return &ast.Namespace{
		DeclBase:   ast.DeclBase{Rng: p.rangeFrom(start)},
		Name:       "",
		Usings:     usings,
		Namespaces: namespaces,
		Types:      types,
	}
}

// parseNamespaceBody parses using-directives, nested namespaces and type
// declarations until end hits, shared by the file-level namespace and
// "namespace N { ... }" bodies.
func (p *Parser) parseNamespaceBody(end token.Kind) (usings []*ast.UsingDirective, namespaces []*ast.Namespace, types []ast.TypeDecl) {
	for p.at(token.USING) {
		usings = append(usings, p.parseUsingDirective())
	}
	for !p.at(end) && !p.at(token.EOF) {
		if p.at(token.NAMESPACE) {
			namespaces = append(namespaces, p.parseNamespace())
			continue
		}
		types = append(types, p.parseTypeDecl())
	}
	return usings, namespaces, types
}

func (p *Parser) parseUsingDirective() *ast.UsingDirective {
	start := p.cur.Range
	p.advance() // "using"
	first := p.expectIdent()
	if p.accept(token.ASSIGN) {
		target := p.parseDottedName()
		p.expect(token.SEMICOLON)
		return &ast.UsingDirective{DeclBase: ast.DeclBase{Rng: p.rangeFrom(start)}, Alias: first, Target: target}
	}
	target := first
	for p.at(token.DOT) {
		p.advance()
		target = target + "." + p.expectIdent()
	}
	p.expect(token.SEMICOLON)
	return &ast.UsingDirective{DeclBase: ast.DeclBase{Rng: p.rangeFrom(start)}, Target: target}
}

func (p *Parser) parseDottedName() string {
	name := p.expectIdent()
	for p.at(token.DOT) {
		p.advance()
		name = name + "." + p.expectIdent()
	}
	return name
}

func (p *Parser) parseNamespace() *ast.Namespace {
	start := p.cur.Range
	p.advance() // "namespace"
	name := p.parseDottedName()
	p.expect(token.LBRACE)
	usings, namespaces, types := p.parseNamespaceBody(token.RBRACE)
	p.expect(token.RBRACE)
	return &ast.Namespace{
		DeclBase:   ast.DeclBase{Rng: p.rangeFrom(start)},
		Name:       name,
		Usings:     usings,
		Namespaces: namespaces,
		Types:      types,
	}
}

// modifierTokens maps each modifier keyword to its Modifiers bit.
var modifierTokens = map[token.Kind]ast.Modifiers{
	token.PUBLIC:    ast.ModPublic,
	token.PRIVATE:   ast.ModPrivate,
	token.PROTECTED: ast.ModProtected,
	token.INTERNAL:  ast.ModInternal,
	token.STATIC:    ast.ModStatic,
	token.VIRTUAL:   ast.ModVirtual,
	token.OVERRIDE:  ast.ModOverride,
	token.ABSTRACT:  ast.ModAbstract,
	token.SEALED:    ast.ModSealed,
	token.READONLY:  ast.ModReadonly,
	token.CONST:     ast.ModConst,
	token.NEW:       ast.ModNew,
}

func (p *Parser) parseModifiers() ast.Modifiers {
	var m ast.Modifiers
	for {
		bit, ok := modifierTokens[p.cur.Kind]
		if !ok {
			return m
		}
		m |= bit
		p.advance()
	}
}

func (p *Parser) parseTypeDecl() ast.TypeDecl {
	mods := p.parseModifiers()
	switch p.cur.Kind {
	case token.CLASS:
		return p.parseClassLike(mods, ast.GenreClass)
	case token.STRUCT:
		return p.parseClassLike(mods, ast.GenreStruct)
	case token.INTERFACE:
		return p.parseClassLike(mods, ast.GenreInterface)
	case token.ENUM:
		return p.parseEnum(mods)
	case token.DELEGATE:
		return p.parseDelegate(mods)
	}
	p.fail(20, "expected a type declaration, got %s", p.cur.Kind)
	return nil
}

func (p *Parser) parseSupertypes() []*ast.SimpleTypeSig {
	if !p.accept(token.COLON) {
		return nil
	}
	var sigs []*ast.SimpleTypeSig
	for {
		sig := p.parseTypeSig().(*ast.SimpleTypeSig)
		sigs = append(sigs, sig)
		if !p.accept(token.COMMA) {
			break
		}
	}
	return sigs
}

func (p *Parser) parseClassLike(mods ast.Modifiers, genre ast.ClassGenre) *ast.ClassDecl {
	start := p.cur.Range
	p.advance() // class/struct/interface
	name := p.expectIdent()
	supertypes := p.parseSupertypes()
	p.expect(token.LBRACE)

	decl := &ast.ClassDecl{
		TypeDeclBase: ast.TypeDeclBase{DeclBase: ast.DeclBase{}, Name: name},
		Genre:        genre,
		Modifiers:    mods,
		Supertypes:   supertypes,
	}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		p.parseMember(decl)
	}
	p.expect(token.RBRACE)
	decl.Rng = p.rangeFrom(start)
	return decl
}

func (p *Parser) parseEnum(mods ast.Modifiers) *ast.EnumDecl {
	start := p.cur.Range
	p.advance() // "enum"
	name := p.expectIdent()
	p.expect(token.LBRACE)
	var members []ast.EnumMember
	for !p.at(token.RBRACE) {
		mStart := p.cur.Range
		mName := p.expectIdent()
		var init ast.Expression
		if p.accept(token.ASSIGN) {
			init = p.parseExpression(precTernary)
		}
		members = append(members, ast.EnumMember{Name: mName, Initializer: init, Rng: p.rangeFrom(mStart)})
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return &ast.EnumDecl{
		TypeDeclBase: ast.TypeDeclBase{DeclBase: ast.DeclBase{Rng: p.rangeFrom(start)}, Name: name},
		Modifiers:    mods,
		Members:      members,
	}
}

func (p *Parser) parseDelegate(mods ast.Modifiers) *ast.DelegateDecl {
	start := p.cur.Range
	p.advance() // "delegate"
	var ret ast.TypeSig
	if !p.accept(token.VOID) {
		ret = p.parseTypeSig()
	}
	name := p.expectIdent()
	params := p.parseParamList()
	p.expect(token.SEMICOLON)
	return &ast.DelegateDecl{
		TypeDeclBase: ast.TypeDeclBase{DeclBase: ast.DeclBase{Rng: p.rangeFrom(start)}, Name: name},
		Modifiers:    mods,
		ReturnType:   ret,
		Params:       params,
	}
}

func (p *Parser) parseParamList() []*ast.ParamDecl {
	p.expect(token.LPAREN)
	var params []*ast.ParamDecl
	for !p.at(token.RPAREN) {
		start := p.cur.Range
		flow, sig := p.parseParamFlowAndType()
		name := p.expectIdent()
		params = append(params, &ast.ParamDecl{Name: name, Type: sig, Flow: flow, Rng: p.rangeFrom(start)})
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

// opNames is the fixed operator-token → CLR-style overload name table
// spec.md §3 asks for (e.g. "+" → "op_Addition").
var opNames = map[token.Kind]string{
	token.PLUS:  "op_Addition",
	token.MINUS: "op_Subtraction",
	token.STAR:  "op_Multiply",
	token.SLASH: "op_Division",
	token.PERCENT: "op_Modulus",
	token.AMP:   "op_BitwiseAnd",
	token.PIPE:  "op_BitwiseOr",
	token.CARET: "op_ExclusiveOr",
	token.SHL:   "op_LeftShift",
	token.SHR:   "op_RightShift",
	token.EQ:    "op_Equality",
	token.NEQ:   "op_Inequality",
	token.LT:    "op_LessThan",
	token.GT:    "op_GreaterThan",
	token.LE:    "op_LessThanOrEqual",
	token.GE:    "op_GreaterThanOrEqual",
	token.BANG:  "op_LogicalNot",
	token.TILDE: "op_OnesComplement",
}

// parseMember reads one class/struct/interface member: a modifier set
// followed by an event, nested type, constructor, method, field, property,
// indexer, or operator overload, per spec.md §3's member-dispatch loop.
// Constructor vs. method is settled by the "identifier immediately followed
// by '('" rule — the identifier must equal the enclosing type's name.
func (p *Parser) parseMember(owner *ast.ClassDecl) {
	mods := p.parseModifiers()

	switch p.cur.Kind {
	case token.EVENT:
		owner.Events = append(owner.Events, p.parseEvent(mods))
		return
	case token.CLASS, token.STRUCT, token.INTERFACE:
		genre := ast.GenreClass
		if p.cur.Kind == token.STRUCT {
			genre = ast.GenreStruct
		} else if p.cur.Kind == token.INTERFACE {
			genre = ast.GenreInterface
		}
		owner.NestedTypes = append(owner.NestedTypes, p.parseClassLike(mods, genre))
		return
	case token.ENUM:
		owner.NestedTypes = append(owner.NestedTypes, p.parseEnum(mods))
		return
	case token.DELEGATE:
		owner.NestedTypes = append(owner.NestedTypes, p.parseDelegate(mods))
		return
	}

	if p.at(token.IDENT) && p.cur.Literal == owner.Name && p.peekIs(token.LPAREN) {
		owner.Methods = append(owner.Methods, p.parseConstructor(mods))
		return
	}

	// Remaining forms all open with a return-type signature (possibly
	// "void"), and only afterwards disambiguate into operator/indexer/
	// method/property/field — "operator" and "this" both follow the return
	// type in source order ("V operator+(...)", "T this[...]").
	start := p.cur.Range
	var typ ast.TypeSig
	if !p.accept(token.VOID) {
		typ = p.parseTypeSig()
	}

	if p.at(token.OPERATOR) {
		owner.Methods = append(owner.Methods, p.parseOperatorOverload(mods, start, typ))
		return
	}
	if p.at(token.THIS) {
		owner.Properties = append(owner.Properties, p.parseIndexer(mods, typ, start))
		return
	}
	name := p.expectIdent()
	switch {
	case p.at(token.LPAREN):
		owner.Methods = append(owner.Methods, p.finishMethod(mods, start, name, typ))
	case p.at(token.LBRACE):
		owner.Properties = append(owner.Properties, p.finishProperty(mods, start, name, typ))
	default:
		owner.Fields = append(owner.Fields, p.finishField(mods, start, name, typ))
	}
}

func (p *Parser) parseConstructor(mods ast.Modifiers) *ast.MethodDecl {
	start := p.cur.Range
	name := p.expectIdent()
	params := p.parseParamList()
	chain := p.parseCtorChain()
	body := p.parseBlock()
	return &ast.MethodDecl{
		DeclBase:  ast.DeclBase{Rng: p.rangeFrom(start)},
		Name:      name,
		IsCtor:    true,
		Params:    params,
		Modifiers: mods,
		CtorChain: chain,
		Body:      body,
	}
}

func (p *Parser) finishMethod(mods ast.Modifiers, start diag.FileRange, name string, ret ast.TypeSig) *ast.MethodDecl {
	params := p.parseParamList()
	var body *ast.Block
	if p.at(token.LBRACE) {
		body = p.parseBlock()
	} else {
		p.expect(token.SEMICOLON)
	}
	return &ast.MethodDecl{
		DeclBase:   ast.DeclBase{Rng: p.rangeFrom(start)},
		Name:       name,
		ReturnType: ret,
		Params:     params,
		Modifiers:  mods,
		Body:       body,
	}
}

// parseOperatorOverload parses "operator <tok>(A a, B b) { ... }", given
// the return type already consumed by parseMember ("V operator+(...)"
// reads V as an ordinary return-type signature before the "operator"
// keyword disambiguates the member kind). spec.md §3 requires public
// static, exactly two value parameters; those constraints are enforced in
// the resolver (pass 3), not here, the same way the parser leaves
// genre/inheritance rules to semantic passes elsewhere.
func (p *Parser) parseOperatorOverload(mods ast.Modifiers, start diag.FileRange, ret ast.TypeSig) *ast.MethodDecl {
	p.advance() // "operator"
	opTok := p.cur.Kind
	clrName, ok := opNames[opTok]
	if !ok {
		p.fail(21, "unsupported operator overload token %s", opTok)
	}
	p.advance()
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.MethodDecl{
		DeclBase:    ast.DeclBase{Rng: p.rangeFrom(start)},
		Name:        clrName,
		ReturnType:  ret,
		Params:      params,
		Modifiers:   mods,
		Body:        body,
		OperatorTok: opTok.String(),
	}
}

func (p *Parser) finishField(mods ast.Modifiers, start diag.FileRange, name string, typ ast.TypeSig) *ast.FieldDecl {
	var init ast.Expression
	if p.accept(token.ASSIGN) {
		init = p.parseExpression(precLowest)
	}
	p.expect(token.SEMICOLON)
	return &ast.FieldDecl{
		DeclBase:    ast.DeclBase{Rng: p.rangeFrom(start)},
		Name:        name,
		Type:        typ,
		Modifiers:   mods,
		Initializer: init,
	}
}

// parsePropertyAccessors reads up to one get and one set accessor block,
// each either abstract ("get;") or block-bodied. spec.md §3 requires at
// least one accessor; that invariant is checked by the resolver (pass 3),
// where the synthesized get_X/set_X method decls are built.
func (p *Parser) parsePropertyAccessors(mods ast.Modifiers, propType ast.TypeSig, indexParams []*ast.ParamDecl) (getter, setter *ast.MethodDecl) {
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) {
		switch p.cur.Kind {
		case token.GET:
			if getter != nil {
				p.fail(24, "duplicate get accessor")
			}
			accStart := p.cur.Range
			p.advance()
			var body *ast.Block
			if p.at(token.LBRACE) {
				body = p.parseBlock()
			} else {
				p.expect(token.SEMICOLON)
			}
			getter = &ast.MethodDecl{DeclBase: ast.DeclBase{Rng: p.rangeFrom(accStart)}, ReturnType: propType, Modifiers: mods, Body: body, Params: indexParams}
		case token.SET:
			if setter != nil {
				p.fail(25, "duplicate set accessor")
			}
			accStart := p.cur.Range
			p.advance()
			var body *ast.Block
			if p.at(token.LBRACE) {
				body = p.parseBlock()
			} else {
				p.expect(token.SEMICOLON)
			}
			setter = &ast.MethodDecl{DeclBase: ast.DeclBase{Rng: p.rangeFrom(accStart)}, Modifiers: mods, Body: body, Params: indexParams}
		default:
			p.fail(22, "expected get or set accessor, got %s", p.cur.Kind)
		}
	}
	p.expect(token.RBRACE)
	return getter, setter
}

func (p *Parser) finishProperty(mods ast.Modifiers, start diag.FileRange, name string, typ ast.TypeSig) *ast.PropertyDecl {
	getter, setter := p.parsePropertyAccessors(mods, typ, nil)
	return &ast.PropertyDecl{
		DeclBase:  ast.DeclBase{Rng: p.rangeFrom(start)},
		Name:      name,
		Type:      typ,
		Modifiers: mods,
		Getter:    getter,
		Setter:    setter,
	}
}

// parseIndexer parses "T this[params] { get; set; }"; the synthesized
// member name "Item" (spec.md's Open Question 2 resolution, recorded in
// DESIGN.md) is assigned by the resolver, not here.
func (p *Parser) parseIndexer(mods ast.Modifiers, typ ast.TypeSig, start diag.FileRange) *ast.PropertyDecl {
	p.advance() // "this"
	p.expect(token.LBRACK)
	var params []*ast.ParamDecl
	for !p.at(token.RBRACK) {
		pStart := p.cur.Range
		flow, sig := p.parseParamFlowAndType()
		name := p.expectIdent()
		params = append(params, &ast.ParamDecl{Name: name, Type: sig, Flow: flow, Rng: p.rangeFrom(pStart)})
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACK)
	getter, setter := p.parsePropertyAccessors(mods, typ, params)
	return &ast.PropertyDecl{
		DeclBase:    ast.DeclBase{Rng: p.rangeFrom(start)},
		Type:        typ,
		Modifiers:   mods,
		Getter:      getter,
		Setter:      setter,
		Indexer:     true,
		IndexParams: params,
	}
}

// parseEvent parses "event D Name;" (backing-field form, synthesized by the
// resolver in pass 3) or "event D Name { add { ... } remove { ... } }".
func (p *Parser) parseEvent(mods ast.Modifiers) *ast.EventDecl {
	start := p.cur.Range
	p.advance() // "event"
	typ := p.parseTypeSig()
	name := p.expectIdent()

	if p.accept(token.SEMICOLON) {
		return &ast.EventDecl{DeclBase: ast.DeclBase{Rng: p.rangeFrom(start)}, Name: name, Type: typ, Modifiers: mods}
	}

	p.expect(token.LBRACE)
	var add, remove *ast.MethodDecl
	for !p.at(token.RBRACE) {
		switch p.cur.Kind {
		case token.ADD:
			accStart := p.cur.Range
			p.advance()
			body := p.parseBlock()
			add = &ast.MethodDecl{DeclBase: ast.DeclBase{Rng: p.rangeFrom(accStart)}, Modifiers: mods, Body: body}
		case token.REMOVE:
			accStart := p.cur.Range
			p.advance()
			body := p.parseBlock()
			remove = &ast.MethodDecl{DeclBase: ast.DeclBase{Rng: p.rangeFrom(accStart)}, Modifiers: mods, Body: body}
		default:
			p.fail(23, "expected add or remove accessor, got %s", p.cur.Kind)
		}
	}
	p.expect(token.RBRACE)
	return &ast.EventDecl{
		DeclBase:       ast.DeclBase{Rng: p.rangeFrom(start)},
		Name:           name,
		Type:           typ,
		Modifiers:      mods,
		AddAccessor:    add,
		RemoveAccessor: remove,
	}
}
