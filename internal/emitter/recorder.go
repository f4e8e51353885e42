package emitter

import (
	"fmt"
	"reflect"

	"github.com/asterlang/aster/internal/symbols"
)

// handle is the concrete type behind every Handle interface a
// RecordingProvider returns. It carries just enough to print itself for a
// test or a debugging session; it is never inspected by anything
// but String.
type handle struct {
	kind  string
	label string
	id    int
}

func (h *handle) typeHandle()     {}
func (h *handle) methodHandle()   {}
func (h *handle) fieldHandle()    {}
func (h *handle) propertyHandle() {}
func (h *handle) eventHandle()    {}

// String renders a handle as "<kind> <label>#<id>". cmd/asterc's
// dump-symbols subcommand prints the recorded Calls instead, as
// "<kind>: <label>" lines.
func (h *handle) String() string {
	return fmt.Sprintf("%s %s#%d", h.kind, h.label, h.id)
}

// Call records one Create* invocation, in the order Provider received it.
type Call struct {
	Kind  string
	Label string
}

// RecordingProvider is the default Provider: it never talks to a real
// runtime or emits bytecode (this module has no bytecode emitter). It
// exists so C8's pass 5 has something to call and so tests and
// cmd/asterc's dump-symbols subcommand can observe which handles a
// compilation requested, in what order. Handle identity is a monotonically
// increasing id, unique per RecordingProvider instance, not per kind.
type RecordingProvider struct {
	Calls []Call
	next  int
}

// NewRecordingProvider returns an empty RecordingProvider.
func NewRecordingProvider() *RecordingProvider {
	return &RecordingProvider{}
}

func (p *RecordingProvider) record(kind, label string) *handle {
	p.next++
	p.Calls = append(p.Calls, Call{Kind: kind, Label: label})
	return &handle{kind: kind, label: label, id: p.next}
}

func (p *RecordingProvider) CreateTypeHandle(t *symbols.Type) (TypeHandle, error) {
	if t == nil {
		return nil, fmt.Errorf("emitter: CreateTypeHandle called with nil type")
	}
	return p.record("type", t.Name), nil
}

func (p *RecordingProvider) CreateArrayTypeHandle(t *symbols.Type, elem TypeHandle) (TypeHandle, error) {
	if t == nil {
		return nil, fmt.Errorf("emitter: CreateArrayTypeHandle called with nil type")
	}
	return p.record("array-type", t.Name), nil
}

func (p *RecordingProvider) CreateEnumTypeHandle(t *symbols.Type, members []FieldHandle) (TypeHandle, error) {
	if t == nil {
		return nil, fmt.Errorf("emitter: CreateEnumTypeHandle called with nil type")
	}
	return p.record("enum-type", t.Name), nil
}

func (p *RecordingProvider) CreateRefTypeHandle(rt reflect.Type) (TypeHandle, error) {
	if rt == nil {
		return nil, fmt.Errorf("emitter: CreateRefTypeHandle called with nil reflect.Type")
	}
	return p.record("ref-type", rt.String()), nil
}

func (p *RecordingProvider) CreateMethodHandle(owner TypeHandle, m *symbols.MethodEntry, h *symbols.MethodHeader) (MethodHandle, error) {
	if m == nil {
		return nil, fmt.Errorf("emitter: CreateMethodHandle called with nil method")
	}
	return p.record("method", ownerLabel(owner)+"."+m.SymbolName()), nil
}

func (p *RecordingProvider) CreateFieldHandle(owner TypeHandle, f *symbols.FieldEntry) (FieldHandle, error) {
	if f == nil {
		return nil, fmt.Errorf("emitter: CreateFieldHandle called with nil field")
	}
	return p.record("field", ownerLabel(owner)+"."+f.SymbolName()), nil
}

func (p *RecordingProvider) CreateLiteralFieldHandle(owner TypeHandle, f *symbols.FieldEntry) (FieldHandle, error) {
	if f == nil {
		return nil, fmt.Errorf("emitter: CreateLiteralFieldHandle called with nil field")
	}
	return p.record("literal-field", ownerLabel(owner)+"."+f.SymbolName()), nil
}

func (p *RecordingProvider) CreatePropertyHandle(owner TypeHandle, prop *symbols.PropertyEntry, getter, setter MethodHandle) (PropertyHandle, error) {
	if prop == nil {
		return nil, fmt.Errorf("emitter: CreatePropertyHandle called with nil property")
	}
	return p.record("property", ownerLabel(owner)+"."+prop.SymbolName()), nil
}

func (p *RecordingProvider) CreateEventHandle(owner TypeHandle, e *symbols.EventEntry, add, remove MethodHandle) (EventHandle, error) {
	if e == nil {
		return nil, fmt.Errorf("emitter: CreateEventHandle called with nil event")
	}
	return p.record("event", ownerLabel(owner)+"."+e.SymbolName()), nil
}

func ownerLabel(owner TypeHandle) string {
	if h, ok := owner.(*handle); ok {
		return h.label
	}
	return "?"
}
