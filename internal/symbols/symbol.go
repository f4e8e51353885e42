// Package symbols implements spec.md's C5 (polymorphic symbol entries) and
// C6 (scope graph with lookup controllers). It is grounded on the teacher's
// internal/semantic/symbol_table.go Symbol/SymbolTable shape, generalized
// from a single flat-fields-with-bools Symbol into one interface with a
// concrete type per kind — the closer fit for spec.md §3's explicitly
// polymorphic entry list (Namespace, Type, Field, Method, Property, Event,
// LocalVar, ParamVar, Label).
package symbols

import "github.com/asterlang/aster/internal/diag"

// Entry is the common interface every symbol-table entry satisfies. It
// supplies ast.SymbolRef so resolved AST reference nodes can point straight
// at an Entry without internal/ast importing this package.
type Entry interface {
	SymbolKind() string
	SymbolName() string
	DeclRange() diag.FileRange
}

type base struct {
	Name string
	Rng  diag.FileRange
}

func (b *base) SymbolName() string        { return b.Name }
func (b *base) DeclRange() diag.FileRange { return b.Rng }

// NamespaceEntry represents a declared namespace. Namespaces merge across
// files: two NamespaceEntry values with the same dotted Name share one
// Scope (spec.md §3's "shared-namespace proxy scope").
type NamespaceEntry struct {
	base
	Scope *Scope
}

func (n *NamespaceEntry) SymbolKind() string { return "namespace" }

// NewNamespace builds a namespace entry backed by scope, which callers
// should share across every file declaring the same dotted name.
func NewNamespace(name string, scope *Scope) *NamespaceEntry {
	return &NamespaceEntry{base: base{Name: name}, Scope: scope}
}

// FieldEntry is an instance or static field, or (when Literal is true) one
// member of an enum's backing constant set — spec.md §3 models enum members
// as literal fields of the synthesized enum type rather than a separate
// symbol kind.
type FieldEntry struct {
	base
	Type      *Type
	Static    bool
	ReadOnly  bool
	Literal   bool
	LiteralValue int64
}

func (f *FieldEntry) SymbolKind() string { return "field" }

// NewField builds a plain instance field entry.
func NewField(name string, t *Type) *FieldEntry {
	return &FieldEntry{base: base{Name: name}, Type: t}
}

// NewLiteralField builds an enum member's backing literal field.
func NewLiteralField(name string, t *Type, value int64) *FieldEntry {
	return &FieldEntry{base: base{Name: name}, Type: t, Literal: true, LiteralValue: value}
}

// ParamFlow mirrors ast.ParamFlow without importing ast (symbols is a leaf
// package the resolver and importer both sit above).
type ParamFlow int

const (
	FlowIn ParamFlow = iota
	FlowOut
	FlowRef
	FlowParams
)

// ParamEntry is one formal parameter of a MethodHeader. Slot is its
// assigned frame-slot index (spec.md §3's Data Model): param slot 0 is
// reserved for "this" in a non-static method, so a non-static method's
// first declared parameter starts at slot 1; a static method's first
// parameter starts at slot 0. For a struct method, the reserved "this"
// slot holds a reference to the struct rather than the struct's value.
type ParamEntry struct {
	base
	Type *Type
	Flow ParamFlow
	Slot int
}

func (p *ParamEntry) SymbolKind() string { return "parameter" }

// NewParam builds a formal-parameter entry.
func NewParam(name string, t *Type, flow ParamFlow) *ParamEntry {
	return &ParamEntry{base: base{Name: name}, Type: t, Flow: flow}
}

// MethodHeader is one signature in a (possibly overloaded) MethodEntry.
// Next chains to the following overload the way the teacher's
// SymbolTable.DefineOverload builds an overload list, except here each
// overload is its own header node rather than a parallel slice, so
// resolution can walk "this overload, then the next" without indexing.
type MethodHeader struct {
	Params     []*ParamEntry
	ReturnType *Type // nil denotes void, or a constructor's (ownerless) signature
	Static     bool
	Virtual    bool
	Override   bool
	Abstract   bool
	Sealed     bool
	IsCtor     bool
	Rng        diag.FileRange
	Next       *MethodHeader // next overload, nil at the end of the chain
}

// MethodEntry is a named method (or constructor) and its overload chain.
// First is never nil once the entry exists; additional overloads hang off
// First.Next.
type MethodEntry struct {
	base
	First *MethodHeader
}

func (m *MethodEntry) SymbolKind() string { return "method" }

// Overloads returns every header in the chain, First included.
func (m *MethodEntry) Overloads() []*MethodHeader {
	var out []*MethodHeader
	for h := m.First; h != nil; h = h.Next {
		out = append(out, h)
	}
	return out
}

// AddOverload appends header to the end of the chain.
func (m *MethodEntry) AddOverload(h *MethodHeader) {
	if m.First == nil {
		m.First = h
		return
	}
	cur := m.First
	for cur.Next != nil {
		cur = cur.Next
	}
	cur.Next = h
}

// PropertyEntry is a property (or indexer, when Indexer is true and Name is
// the synthesized "Item") with up to one getter and one setter method.
type PropertyEntry struct {
	base
	Type        *Type
	Getter      *MethodEntry
	Setter      *MethodEntry
	Indexer     bool
	IndexParams []*ParamEntry
	Static      bool
}

func (p *PropertyEntry) SymbolKind() string { return "property" }

// NewProperty builds a property entry with no accessors yet attached.
func NewProperty(name string, t *Type) *PropertyEntry {
	return &PropertyEntry{base: base{Name: name}, Type: t}
}

// EventEntry is an event of a delegate Type, with its add/remove accessor
// methods — always present once pass 3 runs, synthesized when the source
// used the backing-field shorthand (spec.md §4.5).
type EventEntry struct {
	base
	Type   *Type
	Add    *MethodEntry
	Remove *MethodEntry
	Static bool
}

func (e *EventEntry) SymbolKind() string { return "event" }

// NewEvent builds an event entry with no accessors yet attached.
func NewEvent(name string, t *Type) *EventEntry {
	return &EventEntry{base: base{Name: name}, Type: t}
}

// LocalFlow tags a local or parameter variable with the flow-analysis bits
// spec.md §4's body pass needs (definite-assignment-adjacent bookkeeping),
// generalizing the teacher's plain ReadOnly/IsConst bools on Symbol.
type LocalFlow struct {
	Assigned bool
	Captured bool
}

// LocalEntry is a local variable declared inside a method body. Slot is its
// assigned frame-slot index, continuing the numbering left off by the
// owning method's parameters (spec.md §3's Data Model); sibling blocks that
// can never be live at the same time are free to reuse the same slot, the
// same way a register allocator reuses a dead value's storage.
type LocalEntry struct {
	base
	Type  *Type
	Const bool
	Flow  LocalFlow
	Slot  int
}

func (l *LocalEntry) SymbolKind() string { return "local" }

// NewLocal builds a local-variable entry.
func NewLocal(name string, t *Type) *LocalEntry {
	return &LocalEntry{base: base{Name: name}, Type: t}
}

// LabelEntry is a goto target declared inside a method body.
type LabelEntry struct {
	base
	Resolved bool // true once a matching goto has been bound to it
}

func (l *LabelEntry) SymbolKind() string { return "label" }

// NewLabel builds a goto-target label entry.
func NewLabel(name string) *LabelEntry {
	return &LabelEntry{base: base{Name: name}}
}
