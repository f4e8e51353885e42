// Package importer implements spec.md's C7: on-demand, cycle-proof import
// of runtime/"managed platform" types into symbols.Type entries. Go's
// reflect.Type stands in for the CLR type handle spec.md describes — the
// idiomatic Go analogue of reflection-based metadata import, since Go
// ships no CLR and importing one is out of scope.
//
// Structure follows the general memoized-importer note in spec.md §9
// ("model the type importer as a memoized function keyed by the runtime
// type handle"), with the cycle/"resolving" flag idiom grounded on the
// teacher's internal/semantic/passes/type_resolution_pass.go
// resolveClassParent, which marks a type visited before recursing into its
// parent and clears the mark on return, raising an error instead of
// recursing forever if the mark is already set.
package importer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/asterlang/aster/internal/symbols"
)

// key is how Importer memoizes reflect.Type lookups. spec.md §4.4 notes
// that a runtime type's own Hash/Equal may be unreliable across assemblies,
// so Importer never uses reflect.Type as a map key directly — it derives a
// stable string key from the type's full name instead.
type key string

func keyOf(t reflect.Type) key {
	if pkg := t.PkgPath(); pkg != "" {
		return key(pkg + "." + t.Name())
	}
	return key(t.String())
}

// state tracks one entry's import progress, so a type whose own fields
// reference itself (directly or through a cycle of other imported types)
// is detected rather than recursed into forever.
type state int

const (
	stateUnseen state = iota
	stateResolving
	stateDone
)

// Importer binds reflect.Type values to symbols.Type entries on demand,
// memoizing every type it has seen so importing the same runtime type
// twice returns the identical *symbols.Type.
type Importer struct {
	entries   map[key]*symbols.Type
	states    map[key]state
	aliases   map[string]*symbols.Type // default alias set: int, void, char, bool, string, object
	reflectOf map[*symbols.Type]reflect.Type
}

// New returns an Importer with spec.md §4.4's default alias set installed:
// int, void, char, bool, string and object are pre-bound to Aster's
// built-in symbols.Type values rather than imported from reflection, so
// user code referencing them never triggers a real import.
func New() *Importer {
	im := &Importer{
		entries:   make(map[key]*symbols.Type),
		states:    make(map[key]state),
		aliases:   make(map[string]*symbols.Type),
		reflectOf: make(map[*symbols.Type]reflect.Type),
	}
	im.aliases["int"] = symbols.Int
	im.aliases["void"] = symbols.Void
	im.aliases["char"] = symbols.Char
	im.aliases["bool"] = symbols.Bool
	im.aliases["string"] = symbols.String
	im.aliases["object"] = symbols.Object
	return im
}

// ResolveAlias returns one of the pre-bound default aliases, or (nil,
// false) if name does not name one.
func (im *Importer) ResolveAlias(name string) (*symbols.Type, bool) {
	t, ok := im.aliases[name]
	return t, ok
}

// isGeneric reports whether rt looks like an instantiated generic type.
// Generics are out of scope (spec.md's non-goals); the importer filters
// them out the way the teacher's lexer/parser filter backtick-suffixed
// identifiers it doesn't support — here, Go's own generic-type name suffix
// ("Name[T]") is the tell.
func isGeneric(rt reflect.Type) bool {
	return strings.ContainsRune(rt.Name(), '[')
}

// Import binds rt to a symbols.Type, importing it (and, eagerly, the
// element, field, parameter and result types it refers to) on first
// request and returning the
// memoized entry on every later request for the same runtime type.
func (im *Importer) Import(rt reflect.Type) (*symbols.Type, error) {
	if rt == nil {
		return nil, fmt.Errorf("importer: cannot import a nil runtime type")
	}
	if isGeneric(rt) {
		return nil, fmt.Errorf("importer: generic type %q is not supported", rt.String())
	}

	k := keyOf(rt)
	if t, ok := im.entries[k]; ok {
		return t, nil
	}
	if im.states[k] == stateResolving {
		return nil, fmt.Errorf("importer: cyclic import detected while resolving %q", rt.String())
	}

	im.states[k] = stateResolving
	defer func() { im.states[k] = stateDone }()

	t, err := im.importFresh(rt)
	if err != nil {
		return nil, err
	}
	im.entries[k] = t
	im.reflectOf[t] = rt
	return t, nil
}

// ReflectTypeOf returns the reflect.Type t was imported from, if t came
// from this Importer. The emitter pass (C8/C9's wiring point) uses this to
// tell an imported type apart from a user-declared one, since only the
// former has a runtime-type handle to request.
func (im *Importer) ReflectTypeOf(t *symbols.Type) (reflect.Type, bool) {
	rt, ok := im.reflectOf[t]
	return rt, ok
}

func (im *Importer) importFresh(rt reflect.Type) (*symbols.Type, error) {
	switch rt.Kind() {
	case reflect.Slice, reflect.Array:
		elem, err := im.Import(rt.Elem())
		if err != nil {
			return nil, fmt.Errorf("importer: importing element type of %q: %w", rt.String(), err)
		}
		return symbols.ArrayOf(elem, 1), nil

	case reflect.Ptr:
		elem, err := im.Import(rt.Elem())
		if err != nil {
			return nil, err
		}
		return symbols.RefTo(elem, false), nil

	case reflect.Struct:
		return im.importStruct(rt)

	case reflect.Interface:
		return &symbols.Type{Name: rt.Name(), Kind: symbols.KindInterface, Imported: true}, nil

	case reflect.Func:
		return im.importDelegate(rt)

	default:
		return &symbols.Type{Name: rt.Name(), Kind: symbols.KindPrimitive, Imported: true}, nil
	}
}

// importStruct imports a struct as a class-kind type whose exported fields
// become FieldEntry members, each field type imported eagerly. Structs are
// never recognized as enum wrappers.
func (im *Importer) importStruct(rt reflect.Type) (*symbols.Type, error) {
	t := &symbols.Type{Name: rt.Name(), Kind: symbols.KindClass, Imported: true}
	scope := symbols.NewScope(nil)
	t.Scope = scope

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		fieldType, err := im.Import(f.Type)
		if err != nil {
			return nil, fmt.Errorf("importer: importing field %q of %q: %w", f.Name, rt.Name(), err)
		}
		_ = scope.Define(symbols.NewField(f.Name, fieldType))
	}
	return t, nil
}

// importDelegate imports a Go func type as the synthesized sealed
// delegate class spec.md §3 describes: a single-method class whose one
// method is named "Invoke" and carries the func type's parameter/return
// shape.
func (im *Importer) importDelegate(rt reflect.Type) (*symbols.Type, error) {
	t := &symbols.Type{Name: "delegate", Kind: symbols.KindClass, Sealed: true, Imported: true}
	scope := symbols.NewScope(nil)
	t.Scope = scope

	var retType *symbols.Type
	if rt.NumOut() > 0 {
		rtype, err := im.Import(rt.Out(0))
		if err != nil {
			return nil, fmt.Errorf("importer: importing delegate return type: %w", err)
		}
		retType = rtype
	}

	var params []*symbols.ParamEntry
	for i := 0; i < rt.NumIn(); i++ {
		pt, err := im.Import(rt.In(i))
		if err != nil {
			return nil, fmt.Errorf("importer: importing delegate parameter %d: %w", i, err)
		}
		params = append(params, symbols.NewParam(fmt.Sprintf("arg%d", i), pt, symbols.FlowIn))
	}

	header := &symbols.MethodHeader{Params: params, ReturnType: retType}
	_ = scope.DefineOverload("Invoke", header)
	return t, nil
}
