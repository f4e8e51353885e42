package symbols

import "fmt"

// LookupController customizes how a Scope falls back to outside state once
// its own table and base-type chain miss, before lookup moves on to the
// scope's lexical parent — spec.md §3's using-directive
// search-path semantics. internal/resolver supplies the concrete
// implementation (one that walks a namespace's using-directive list); Scope
// itself stays ignorant of namespace/using concepts, the same separation
// the teacher keeps between SymbolTable (generic chain) and the semantic
// passes (DWScript-specific unit/uses handling) that drive it.
type LookupController interface {
	// ResolveFallback is tried after a Scope's own table and base-type
	// chain have missed name, and before its lexical parent is searched.
	// It returns (nil, false) to report a genuine miss.
	ResolveFallback(name string) (Entry, bool)
}

// Scope is one lexical or member scope in the graph spec.md §3 describes:
// a hash map of names to entries, a lexical parent link, an optional
// base-type chain (for member scopes, so "inherited but not shadowed" names
// resolve), and a pluggable LookupController for namespace-level
// using-directive fallback.
type Scope struct {
	entries map[string]Entry
	parent  *Scope // lexical enclosing scope (block, method, type, namespace)
	base    *Scope // base type's member scope, set only on class/struct member scopes

	controller LookupController
	locked     bool // true once pass 3 finishes defining this scope's members
}

// NewScope creates a scope lexically enclosed by parent (nil for the root).
func NewScope(parent *Scope) *Scope {
	return &Scope{entries: make(map[string]Entry), parent: parent}
}

// SetBase links scope to its base type's member scope, enabling inherited
// lookups once the base type itself has been resolved (pass 2 dependency).
func (s *Scope) SetBase(base *Scope) { s.base = base }

// SetController installs a LookupController consulted when this scope's own
// entries and base chain miss, before its lexical parent is searched.
func (s *Scope) SetController(c LookupController) { s.controller = c }

// Lock prevents further Define calls, per spec.md §3's "a member scope locks
// once pass 3 finishes defining its members" invariant — later passes must
// fail loudly rather than silently mutate a scope whose shape other passes
// have already relied on.
func (s *Scope) Lock() { s.locked = true }

// Locked reports whether Define would panic.
func (s *Scope) Locked() bool { return s.locked }

// Define installs entry under its own name (case-sensitive, per Aster's
// case-sensitivity rule — unlike the teacher's lowercase-folding
// SymbolTable.Define). Define panics if called after Lock, since a locked
// scope being mutated indicates a pass-ordering bug rather than a condition
// callers should need to check for at every call site.
func (s *Scope) Define(entry Entry) error {
	if s.locked {
		panic(fmt.Sprintf("symbols: Define(%q) on locked scope", entry.SymbolName()))
	}
	if _, exists := s.entries[entry.SymbolName()]; exists {
		return fmt.Errorf("%q is already declared in this scope", entry.SymbolName())
	}
	s.entries[entry.SymbolName()] = entry
	return nil
}

// DefineOverload adds header as an additional overload of name, creating
// the MethodEntry if this is the first declaration, mirroring the teacher's
// DefineOverload but without the forward-declaration bookkeeping this
// language's grammar has no syntax for (no separate forward/implementation
// split — a method is declared once, with a body or without one).
func (s *Scope) DefineOverload(name string, header *MethodHeader) error {
	if s.locked {
		panic(fmt.Sprintf("symbols: DefineOverload(%q) on locked scope", name))
	}
	existing, ok := s.entries[name]
	if !ok {
		s.entries[name] = &MethodEntry{base: base{Name: name, Rng: header.Rng}, First: header}
		return nil
	}
	m, ok := existing.(*MethodEntry)
	if !ok {
		return fmt.Errorf("%q is already declared as a non-method symbol", name)
	}
	if sig := findAmbiguousOverload(m, header); sig != nil {
		return fmt.Errorf("method %q has an ambiguous overload with an identical parameter signature", name)
	}
	m.AddOverload(header)
	return nil
}

func findAmbiguousOverload(m *MethodEntry, candidate *MethodHeader) *MethodHeader {
	for _, h := range m.Overloads() {
		if headersSignatureEqual(h, candidate) {
			return h
		}
	}
	return nil
}

func headersSignatureEqual(a, b *MethodHeader) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if a.Params[i].Type != b.Params[i].Type || a.Params[i].Flow != b.Params[i].Flow {
			return false
		}
	}
	return true
}

// LookupLocal returns the entry defined directly in s, ignoring parents,
// base types and the controller. A nil s (a type without a member scope)
// finds nothing.
func (s *Scope) LookupLocal(name string) (Entry, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.entries[name]
	return e, ok
}

// Lookup resolves name by visiting s and then each lexical parent in turn.
// At each level it tries that scope's own table, then its base-type chain
// (innermost base first), then that scope's LookupController, before moving
// on to the parent.
func (s *Scope) Lookup(name string) (Entry, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, ok := cur.entries[name]; ok {
			return e, true
		}
		for b := cur.base; b != nil; b = b.base {
			if e, ok := b.entries[name]; ok {
				return e, true
			}
		}
		if cur.controller != nil {
			if e, ok := cur.controller.ResolveFallback(name); ok {
				return e, true
			}
		}
	}
	return nil, false
}

// Names returns every name defined directly in s (not parents/base), for
// debug dumps (internal/symbols/dump.go sorts these naturally).
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.entries))
	for n := range s.entries {
		out = append(out, n)
	}
	return out
}
