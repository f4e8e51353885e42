// Package emitter defines spec.md's C9 narrow emitter-provider interface: a
// set of create-*-handle methods that C8 (internal/resolver) calls from its
// optional pass 5 once declarations finish resolving, so that by
// the time code generation runs every symbol that needs runtime identity
// already has an opaque Handle standing in for it. The core never emits an
// instruction and never inspects a handle's contents — it only requests one
// and threads it along.
//
// There is no teacher analogue for this package: the teacher's
// internal/bytecode is a full instruction-level VM, and producing bytecode
// or CLR metadata is explicitly out of spec.md's scope. What the teacher
// does supply, and what this package follows, is internal/importer's choice
// of reflect.Type as the stand-in for a CLR runtime-type handle — Provider's
// CreateRefTypeHandle accepts the same reflect.Type an Importer already
// knows how to bind to a symbols.Type.
package emitter

import (
	"reflect"

	"github.com/asterlang/aster/internal/symbols"
)

// TypeHandle, MethodHandle, FieldHandle, PropertyHandle, and EventHandle are
// opaque tokens a Provider hands back for a declaration. The resolver never
// looks inside one; it only holds it until code generation asks for it.
type TypeHandle interface{ typeHandle() }

// MethodHandle is the runtime identity of one resolved method header.
type MethodHandle interface{ methodHandle() }

// FieldHandle is the runtime identity of one resolved field, instance or
// static, literal or not.
type FieldHandle interface{ fieldHandle() }

// PropertyHandle is the runtime identity of one resolved property or
// indexer.
type PropertyHandle interface{ propertyHandle() }

// EventHandle is the runtime identity of one resolved event.
type EventHandle interface{ eventHandle() }

// Provider is the only surface C8 emits through. Each method takes the
// resolved symbol (CreateRefTypeHandle: the reflect.Type of an imported
// type) and returns a handle for it, or
// an error if the provider cannot represent that declaration (an unbacked
// CLR type, for instance). Implementations decide what a handle actually
// is; the core only ever stores and forwards the interface value.
type Provider interface {
	// CreateTypeHandle returns a handle for a resolved class, struct,
	// interface, delegate, or enum type.
	CreateTypeHandle(t *symbols.Type) (TypeHandle, error)

	// CreateArrayTypeHandle returns a handle for a resolved array type
	// (symbols.ArrayOf's result), given the element handle already
	// created for t.Elem.
	CreateArrayTypeHandle(t *symbols.Type, elem TypeHandle) (TypeHandle, error)

	// CreateEnumTypeHandle returns a handle for an enum type, given the
	// handles already created for each of its literal-field members.
	CreateEnumTypeHandle(t *symbols.Type, members []FieldHandle) (TypeHandle, error)

	// CreateRefTypeHandle returns a handle for a type imported from the
	// host runtime, addressed by the reflect.Type internal/importer
	// already resolved it from.
	CreateRefTypeHandle(rt reflect.Type) (TypeHandle, error)

	// CreateMethodHandle returns a handle for one overload header of a
	// resolved method, owned by the given type handle.
	CreateMethodHandle(owner TypeHandle, m *symbols.MethodEntry, h *symbols.MethodHeader) (MethodHandle, error)

	// CreateFieldHandle returns a handle for an ordinary (non-literal)
	// field of the given owning type.
	CreateFieldHandle(owner TypeHandle, f *symbols.FieldEntry) (FieldHandle, error)

	// CreateLiteralFieldHandle returns a handle for an enum member or
	// other compile-time-constant field, carrying f.LiteralValue.
	CreateLiteralFieldHandle(owner TypeHandle, f *symbols.FieldEntry) (FieldHandle, error)

	// CreatePropertyHandle returns a handle for a resolved property or
	// indexer, given the handles already created for its getter/setter
	// methods (either may be nil).
	CreatePropertyHandle(owner TypeHandle, p *symbols.PropertyEntry, getter, setter MethodHandle) (PropertyHandle, error)

	// CreateEventHandle returns a handle for a resolved event, given the
	// handles already created for its add/remove accessor methods.
	CreateEventHandle(owner TypeHandle, e *symbols.EventEntry, add, remove MethodHandle) (EventHandle, error)
}
