package resolver

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/symbols"
)

// runTypePass is pass 2: it installs every namespace's using-directive
// LookupController (now that pass 1 has finished merging every reopened
// namespace's directive list), then walks every type shell pass 1 created to
// resolve its base class, implemented interfaces, and — for a delegate — its
// synthesized Invoke method header, which only needs resolved parameter/
// return types, not the base-chain pass 3 depends on. Grounded on the
// teacher's type_resolution_pass.go's "resolve supertypes before members"
// ordering.
func runTypePass(ctx *PassContext, prog *ast.Program) {
	buildUsingControllers(ctx)

	for _, ns := range prog.Namespaces {
		walkNamespaceTypes(ctx, ns)
	}
}

func walkNamespaceTypes(ctx *PassContext, ns *ast.Namespace) {
	for _, td := range ns.Types {
		resolveTypeShell(ctx, td)
	}
	for _, child := range ns.Namespaces {
		walkNamespaceTypes(ctx, child)
	}
}

func resolveTypeShell(ctx *PassContext, td ast.TypeDecl) {
	t := ctx.typeOf[td]
	nsOfScope := ctx.namespaceOf[t]
	lexScope := ctx.declScopeOf[t]

	switch decl := td.(type) {
	case *ast.ClassDecl:
		resolveSupertypes(ctx, t, decl, nsOfScope, lexScope)
		for _, nested := range decl.NestedTypes {
			resolveTypeShell(ctx, nested)
		}

	case *ast.DelegateDecl:
		synthesizeDelegateInvoke(ctx, t, decl, nsOfScope, lexScope)
	}
}

// resolveSupertypes binds a class/struct/interface's Supertypes list (parsed
// as a flat []*SimpleTypeSig) into a single Base class (at most one,
// spec.md's single-inheritance rule) plus zero or more Interfaces, by
// classifying each resolved type by its own Kind rather than by source
// position — spec.md §3 allows the base class to appear anywhere in the
// list, not only first.
func resolveSupertypes(ctx *PassContext, t *symbols.Type, decl *ast.ClassDecl, nsOfScope string, lexScope *symbols.Scope) {
	for _, sig := range decl.Supertypes {
		super, ok := resolveTypeSig(ctx, lexScope, nsOfScope, sig)
		if !ok {
			ctx.errorf(errUndefinedType, sig.Range(), "undefined type %q", sig.Name)
			continue
		}
		if super.Kind == symbols.KindInterface {
			t.Interfaces = append(t.Interfaces, super)
			continue
		}
		if t.Kind == symbols.KindInterface {
			ctx.errorf(errInterfaceOnNonInterface, sig.Range(),
				"interface %q cannot derive from non-interface type %q", t.Name, super.Name)
			continue
		}
		if t.Base != nil {
			ctx.errorf(errNotAClass, sig.Range(),
				"%q already has a base class; %q cannot be a second one (single inheritance)", t.Name, super.Name)
			continue
		}
		if super.Sealed {
			ctx.errorf(errSealedBase, sig.Range(), "cannot derive %q from sealed type %q", t.Name, super.Name)
			continue
		}
		if wouldCycle(t, super) {
			ctx.errorf(errCyclicBase, sig.Range(), "cyclic base-class chain involving %q", t.Name)
			continue
		}
		t.Base = super
	}
	if t.Kind != symbols.KindInterface && t.Base == nil && t.Name != "object" {
		t.Base = symbols.Object
	}
	if t.Scope != nil && t.Base != nil {
		t.Scope.SetBase(t.Base.Scope)
	}
}

func wouldCycle(t, proposedBase *symbols.Type) bool {
	for b := proposedBase; b != nil; b = b.Base {
		if b == t {
			return true
		}
	}
	return false
}

// synthesizeDelegateInvoke builds the Invoke method header spec.md §3
// describes for every delegate declaration. Combine/Remove are synthesized
// in pass 3 alongside ordinary member registration, since (unlike Invoke)
// their presence only matters for member-scope lookup, not for any other
// type's supertype resolution in this pass. BeginInvoke/EndInvoke are not
// synthesized.
func synthesizeDelegateInvoke(ctx *PassContext, t *symbols.Type, decl *ast.DelegateDecl, nsOfScope string, lexScope *symbols.Scope) {
	var retType *symbols.Type
	if decl.ReturnType != nil {
		rt, ok := resolveTypeSig(ctx, lexScope, nsOfScope, decl.ReturnType)
		if !ok {
			ctx.errorf(errUndefinedType, decl.ReturnType.Range(), "undefined return type for delegate %q", t.Name)
		} else {
			retType = rt
		}
	}

	var params []*symbols.ParamEntry
	for _, p := range decl.Params {
		pt, ok := resolveTypeSig(ctx, lexScope, nsOfScope, p.Type)
		if !ok {
			ctx.errorf(errUndefinedType, p.Type.Range(), "undefined parameter type for delegate %q", t.Name)
			continue
		}
		params = append(params, symbols.NewParam(p.Name, pt, symbols.ParamFlow(p.Flow)))
	}

	header := &symbols.MethodHeader{Params: params, ReturnType: retType, Rng: decl.Range()}
	_ = t.Scope.DefineOverload("Invoke", header)
}
