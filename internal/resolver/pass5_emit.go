package resolver

import (
	"sort"

	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/emitter"
	"github.com/asterlang/aster/internal/symbols"
)

// runEmitterPass is the optional fifth step spec.md §4.6 describes: once a
// type and its members have resolved, request a handle for each of them
// from ctx.Emitter so that by the time code generation runs, every symbol
// already carries the runtime identity generation needs. It is a no-op
// when ctx.Emitter is nil — checking and dumping a program never needs a
// provider, and the concrete bytecode/metadata emitter itself is out of
// this module's scope (spec.md's Non-goals).
//
// The core never inspects a returned handle's contents; it only threads it
// from here into ctx's handle tables, keyed by the same
// *symbols.Type/*symbols.MethodHeader/etc. pointer the resolver already
// hands out everywhere else, where PassContext's TypeHandle/MethodHandle/
// etc. accessors can look one up.
func runEmitterPass(ctx *PassContext, prog *ast.Program) {
	if ctx.Emitter == nil {
		return
	}
	// typeOf's iteration order is random; sorting by name keeps the
	// handle ids (and therefore dump-symbols output, and snapshot tests
	// built on it) stable across runs.
	var types []*symbols.Type
	for _, t := range ctx.typeOf {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })

	for _, t := range types {
		th, err := ctx.ensureTypeHandle(t)
		if err != nil {
			ctx.warnf(errEmitterFailure, t.Rng, "emitter: %v", err)
			continue
		}
		if t.Scope == nil {
			continue
		}
		emitMembers(ctx, t, th)
	}
}

// ensureTypeHandle returns t's handle, creating and caching it on first
// request. A type can be reached twice in one pass (once as a member's
// declared type, once as another member's return type), so every path
// through here is memoized in ctx.typeHandles.
func (ctx *PassContext) ensureTypeHandle(t *symbols.Type) (emitter.TypeHandle, error) {
	if t == nil {
		return nil, nil
	}
	if h, ok := ctx.typeHandles[t]; ok {
		return h, nil
	}
	if rt, ok := ctx.Importer.ReflectTypeOf(t); ok {
		h, err := ctx.Emitter.CreateRefTypeHandle(rt)
		if err != nil {
			return nil, err
		}
		ctx.typeHandles[t] = h
		return h, nil
	}

	switch t.Kind {
	case symbols.KindArray:
		elem, err := ctx.ensureTypeHandle(t.Elem)
		if err != nil {
			return nil, err
		}
		h, err := ctx.Emitter.CreateArrayTypeHandle(t, elem)
		if err != nil {
			return nil, err
		}
		ctx.typeHandles[t] = h
		return h, nil

	case symbols.KindEnum:
		var members []emitter.FieldHandle
		for _, f := range t.Members {
			fh, err := ctx.Emitter.CreateLiteralFieldHandle(nil, f)
			if err != nil {
				return nil, err
			}
			ctx.fieldHandles[f] = fh
			members = append(members, fh)
		}
		h, err := ctx.Emitter.CreateEnumTypeHandle(t, members)
		if err != nil {
			return nil, err
		}
		ctx.typeHandles[t] = h
		return h, nil

	default:
		h, err := ctx.Emitter.CreateTypeHandle(t)
		if err != nil {
			return nil, err
		}
		ctx.typeHandles[t] = h
		return h, nil
	}
}

// emitMembers requests a handle for every field, method overload,
// property and event t's own scope declares (not inherited ones — each
// type in the base chain emits its own members independently, same as the
// teacher's per-class member emission in the CLR metadata it writes).
func emitMembers(ctx *PassContext, t *symbols.Type, owner emitter.TypeHandle) {
	for _, name := range symbols.SortedNames(t.Scope) {
		e, ok := t.Scope.LookupLocal(name)
		if !ok {
			continue
		}
		switch entry := e.(type) {
		case *symbols.FieldEntry:
			emitField(ctx, owner, entry)
		case *symbols.MethodEntry:
			emitMethod(ctx, owner, entry)
		case *symbols.PropertyEntry:
			emitProperty(ctx, owner, entry)
		case *symbols.EventEntry:
			emitEvent(ctx, owner, entry)
		}
	}
}

func emitField(ctx *PassContext, owner emitter.TypeHandle, f *symbols.FieldEntry) {
	var (
		h   emitter.FieldHandle
		err error
	)
	if f.Literal {
		h, err = ctx.Emitter.CreateLiteralFieldHandle(owner, f)
	} else {
		h, err = ctx.Emitter.CreateFieldHandle(owner, f)
	}
	if err != nil {
		ctx.warnf(errEmitterFailure, f.Rng, "emitter: %v", err)
		return
	}
	ctx.fieldHandles[f] = h
}

func emitMethod(ctx *PassContext, owner emitter.TypeHandle, m *symbols.MethodEntry) {
	for _, h := range m.Overloads() {
		mh, err := ctx.Emitter.CreateMethodHandle(owner, m, h)
		if err != nil {
			ctx.warnf(errEmitterFailure, h.Rng, "emitter: %v", err)
			continue
		}
		ctx.methodHandles[h] = mh
	}
}

// emitAccessor creates a handle for a getter/setter/add/remove accessor,
// which (unlike an ordinary method) is synthesized straight onto its
// PropertyEntry/EventEntry by pass 3 rather than defined into the owning
// type's scope under its own name — so, unlike emitMethod, it is never
// reached by emitMembers' scope walk and must be handled here directly.
func emitAccessor(ctx *PassContext, owner emitter.TypeHandle, m *symbols.MethodEntry) emitter.MethodHandle {
	if m == nil {
		return nil
	}
	h, err := ctx.Emitter.CreateMethodHandle(owner, m, m.First)
	if err != nil {
		ctx.warnf(errEmitterFailure, m.First.Rng, "emitter: %v", err)
		return nil
	}
	ctx.methodHandles[m.First] = h
	return h
}

func emitProperty(ctx *PassContext, owner emitter.TypeHandle, p *symbols.PropertyEntry) {
	getter := emitAccessor(ctx, owner, p.Getter)
	setter := emitAccessor(ctx, owner, p.Setter)
	h, err := ctx.Emitter.CreatePropertyHandle(owner, p, getter, setter)
	if err != nil {
		ctx.warnf(errEmitterFailure, p.Rng, "emitter: %v", err)
		return
	}
	ctx.propertyHandles[p] = h
}

func emitEvent(ctx *PassContext, owner emitter.TypeHandle, e *symbols.EventEntry) {
	add := emitAccessor(ctx, owner, e.Add)
	remove := emitAccessor(ctx, owner, e.Remove)
	h, err := ctx.Emitter.CreateEventHandle(owner, e, add, remove)
	if err != nil {
		ctx.warnf(errEmitterFailure, e.Rng, "emitter: %v", err)
		return
	}
	ctx.eventHandles[e] = h
}
