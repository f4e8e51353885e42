package symbols

import "testing"

func TestDefineAndLookupLocal(t *testing.T) {
	s := NewScope(nil)
	f := &FieldEntry{base: base{Name: "count"}, Type: Int}
	if err := s.Define(f); err != nil {
		t.Fatal(err)
	}
	got, ok := s.LookupLocal("count")
	if !ok || got != f {
		t.Fatal("lookup local failed")
	}
	if _, ok := s.LookupLocal("Count"); ok {
		t.Fatal("lookup must be case-sensitive")
	}
}

func TestDefineDuplicateFails(t *testing.T) {
	s := NewScope(nil)
	s.Define(&FieldEntry{base: base{Name: "x"}, Type: Int})
	if err := s.Define(&FieldEntry{base: base{Name: "x"}, Type: Int}); err == nil {
		t.Fatal("expected duplicate-definition error")
	}
}

func TestLexicalParentLookup(t *testing.T) {
	outer := NewScope(nil)
	outer.Define(&FieldEntry{base: base{Name: "g"}, Type: Int})
	inner := NewScope(outer)
	got, ok := inner.Lookup("g")
	if !ok || got.SymbolName() != "g" {
		t.Fatal("expected inner scope to see outer's entry")
	}
}

func TestBaseChainLookup(t *testing.T) {
	baseScope := NewScope(nil)
	baseScope.Define(&FieldEntry{base: base{Name: "Inherited"}, Type: Int})
	derived := NewScope(nil)
	derived.SetBase(baseScope)
	got, ok := derived.Lookup("Inherited")
	if !ok || got.SymbolName() != "Inherited" {
		t.Fatal("expected base chain lookup to find inherited field")
	}
}

type stubController struct{ entries map[string]Entry }

func (c stubController) ResolveFallback(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

func TestControllerFallback(t *testing.T) {
	s := NewScope(nil)
	s.SetController(stubController{entries: map[string]Entry{
		"Imported": &FieldEntry{base: base{Name: "Imported"}, Type: Int},
	}})
	if _, ok := s.Lookup("Imported"); !ok {
		t.Fatal("expected controller fallback to resolve name")
	}
	if _, ok := s.Lookup("NotThere"); ok {
		t.Fatal("expected genuine miss to stay a miss")
	}
}

func TestLockPreventsDefine(t *testing.T) {
	s := NewScope(nil)
	s.Lock()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Define after Lock")
		}
	}()
	s.Define(&FieldEntry{base: base{Name: "late"}, Type: Int})
}

func TestOverloadChain(t *testing.T) {
	s := NewScope(nil)
	h1 := &MethodHeader{Params: []*ParamEntry{{base: base{Name: "a"}, Type: Int}}}
	h2 := &MethodHeader{Params: []*ParamEntry{{base: base{Name: "a"}, Type: String}}}
	if err := s.DefineOverload("Frob", h1); err != nil {
		t.Fatal(err)
	}
	if err := s.DefineOverload("Frob", h2); err != nil {
		t.Fatal(err)
	}
	m, ok := s.LookupLocal("Frob")
	if !ok {
		t.Fatal("expected Frob to be defined")
	}
	if len(m.(*MethodEntry).Overloads()) != 2 {
		t.Fatal("expected two overloads")
	}
}

func TestOverloadAmbiguityRejected(t *testing.T) {
	s := NewScope(nil)
	h1 := &MethodHeader{Params: []*ParamEntry{{base: base{Name: "a"}, Type: Int}}}
	h2 := &MethodHeader{Params: []*ParamEntry{{base: base{Name: "b"}, Type: Int}}}
	s.DefineOverload("Frob", h1)
	if err := s.DefineOverload("Frob", h2); err == nil {
		t.Fatal("expected ambiguous-overload error for identical parameter signature")
	}
}

func TestAssignableToIdentity(t *testing.T) {
	if !AssignableTo(Int, Int) {
		t.Fatal("identity should be assignable")
	}
}

func TestAssignableToBaseChain(t *testing.T) {
	base := &Type{Name: "Animal", Kind: KindClass}
	derived := &Type{Name: "Dog", Kind: KindClass, Base: base}
	if !AssignableTo(derived, base) {
		t.Fatal("expected derived assignable to base")
	}
	if AssignableTo(base, derived) {
		t.Fatal("base should not be assignable to derived")
	}
}

func TestAssignableToArrayCovariance(t *testing.T) {
	base := &Type{Name: "Animal", Kind: KindClass}
	derived := &Type{Name: "Dog", Kind: KindClass, Base: base}
	if !AssignableTo(ArrayOf(derived, 1), ArrayOf(base, 1)) {
		t.Fatal("expected covariant array assignability")
	}
	if AssignableTo(ArrayOf(derived, 1), ArrayOf(base, 2)) {
		t.Fatal("mismatched rank must not be assignable")
	}
}

func TestAssignableToInterface(t *testing.T) {
	iface := &Type{Name: "IFoo", Kind: KindInterface}
	impl := &Type{Name: "Foo", Kind: KindClass, Interfaces: []*Type{iface}}
	if !AssignableTo(impl, iface) {
		t.Fatal("expected direct interface implementation to be assignable")
	}
	derivedImpl := &Type{Name: "SubFoo", Kind: KindClass, Base: impl}
	if !AssignableTo(derivedImpl, iface) {
		t.Fatal("expected inherited interface implementation to be assignable")
	}
}

func TestIsDerivedFromExcludesIdentity(t *testing.T) {
	if IsDerivedFrom(Int, Int) {
		t.Fatal("IsDerivedFrom must exclude identity")
	}
	base := &Type{Name: "Animal", Kind: KindClass}
	derived := &Type{Name: "Dog", Kind: KindClass, Base: base}
	if !IsDerivedFrom(derived, base) {
		t.Fatal("expected strict-descendant check to pass")
	}
}
