package resolver

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/symbols"
)

// Offsets within diag.SubsystemResolver. Grouped by pass, in the order each
// pass can first raise them, mirroring how the teacher's errors.go lists its
// SemanticErrorType constants in one place rather than scattering them
// across the pass files that raise them.
const (
	errDuplicateNamespaceMember = 1 // a type name collides with another in the same namespace
	errDuplicateType            = 2 // (reserved; collision is folded into errDuplicateNamespaceMember)
	errUndefinedType             = 10
	errCyclicBase                = 11
	errNotAClass                 = 12
	errSealedBase                = 13
	errInterfaceOnNonInterface   = 14
	errDuplicateMember           = 20
	errOverrideWithoutVirtual    = 21
	errAbstractBodyPresent       = 22
	errMissingOverride           = 23
	errAccessorMismatch          = 24
	errIndexerNeedsParams        = 25
	errMissingInterfaceMember    = 26
	errStructInstanceInitializer = 27 // a struct field declares an instance initializer (spec.md §4.5 invariant 6)
	errUndefinedIdent            = 40
	errNotCallable                = 41
	errArgumentCount             = 42
	errArgumentType              = 43
	errNoApplicableOverload      = 44
	errAmbiguousOverload         = 45
	errTypeMismatch              = 46
	errInvalidOperator           = 47
	errNotAnLvalue               = 48
	errBreakOutsideLoop          = 49
	errContinueOutsideLoop       = 50
	errReturnTypeMismatch        = 51
	errUndefinedLabel            = 52
	errThisInStaticContext       = 53
	errEmitterFailure            = 60 // warning only: ctx.Emitter rejected a handle request
)

// runNamespacePass is pass 1: it walks every file's namespace tree, merges
// reopened namespaces into one NamespaceEntry/Scope pair, records every
// using-directive, and pre-registers a skeleton symbols.Type (name and kind
// only) for each type declaration so passes 2-4 can forward-reference a type
// declared later in the same or another file. It is the Aster analogue of
// the teacher's declaration_pass.go, narrowed to namespaces and type shells
// — member shells are pass 2/3's job here, since spec.md's grammar has no
// forward-declaration syntax forcing an earlier split.
func runNamespacePass(ctx *PassContext, prog *ast.Program) {
	for _, ns := range prog.Namespaces {
		collectNamespace(ctx, ns, "", ctx.namespaces[""].Scope)
	}
}

func collectNamespace(ctx *PassContext, ns *ast.Namespace, parentPrefix string, parentScope *symbols.Scope) {
	dotted := ns.Name
	if parentPrefix != "" && ns.Name != "" {
		dotted = parentPrefix + "." + ns.Name
	} else if parentPrefix != "" {
		dotted = parentPrefix
	}

	entry, ok := ctx.namespaces[dotted]
	if !ok {
		entry = symbols.NewNamespace(dotted, symbols.NewScope(parentScope))
		ctx.namespaces[dotted] = entry
		if dotted != "" {
			// Defining the namespace under its short name in the enclosing
			// scope lets sibling code reference "Inner" unqualified while
			// lexically inside "Outer", not just via the full dotted path.
			_ = parentScope.Define(entry)
		}
	}
	ctx.usings[dotted] = append(ctx.usings[dotted], ns.Usings...)

	for _, td := range ns.Types {
		registerTypeShell(ctx, td, dotted, entry.Scope)
	}
	for _, child := range ns.Namespaces {
		collectNamespace(ctx, child, dotted, entry.Scope)
	}
}

func registerTypeShell(ctx *PassContext, td ast.TypeDecl, namespace string, nsScope *symbols.Scope) *symbols.Type {
	t := &symbols.Type{Name: td.TypeName(), Rng: td.Range()}

	switch decl := td.(type) {
	case *ast.ClassDecl:
		switch decl.Genre {
		case ast.GenreStruct:
			t.Kind = symbols.KindStruct
		case ast.GenreInterface:
			t.Kind = symbols.KindInterface
		default:
			t.Kind = symbols.KindClass
		}
		t.Sealed = decl.Modifiers.Has(ast.ModSealed)
		t.Abstract = decl.Modifiers.Has(ast.ModAbstract)
		t.Scope = symbols.NewScope(nsScope)
		for _, nested := range decl.NestedTypes {
			nt := registerTypeShell(ctx, nested, namespace, t.Scope)
			_ = t.Scope.Define(nt)
		}

	case *ast.EnumDecl:
		t.Kind = symbols.KindEnum
		t.Sealed = true
		registerEnumMembers(ctx, t, decl)

	case *ast.DelegateDecl:
		t.Kind = symbols.KindClass
		t.Sealed = true
		t.Scope = symbols.NewScope(nsScope)
	}

	if err := nsScope.Define(t); err != nil {
		ctx.errorf(errDuplicateNamespaceMember, td.Range(),
			"%q is already declared in namespace %q", td.TypeName(), displayNamespace(namespace))
	}

	qualifiedName := td.TypeName()
	if namespace != "" {
		qualifiedName = namespace + "." + td.TypeName()
	}
	ctx.qualified[qualifiedName] = t
	ctx.declOf[t] = td
	ctx.namespaceOf[t] = namespace
	ctx.declScopeOf[t] = nsScope
	ctx.typeOf[td] = t
	return t
}

// registerEnumMembers computes each member's backing int value immediately:
// unlike class members, an enum literal's value depends only on the
// previous literal's value (or 0 for the first member) and its own optional
// initializer constant, never on another type's shape, so pass 1 can finish
// this type completely instead of deferring it to pass 3 the way class
// members are deferred.
func registerEnumMembers(ctx *PassContext, t *symbols.Type, decl *ast.EnumDecl) {
	next := int64(0)
	for _, m := range decl.Members {
		value := next
		if m.Initializer != nil {
			if lit, ok := m.Initializer.(*ast.IntLit); ok {
				value = lit.Value
			} else {
				ctx.errorf(errTypeMismatch, m.Rng,
					"enum member %q must be initialized with a constant integer literal", m.Name)
			}
		}
		t.Members = append(t.Members, symbols.NewLiteralField(m.Name, t, value))
		next = value + 1
	}
}

func displayNamespace(dotted string) string {
	if dotted == "" {
		return "<global>"
	}
	return dotted
}
