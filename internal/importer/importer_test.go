package importer

import (
	"reflect"
	"testing"

	"github.com/asterlang/aster/internal/symbols"
)

type widget struct {
	Count int
	Label string
}

type cyclic struct {
	Self *cyclic
}

type pair[T any] struct{ V T }

func TestResolveAlias(t *testing.T) {
	im := New()
	tp, ok := im.ResolveAlias("int")
	if !ok || tp.Name != "int" {
		t.Fatal("expected int alias to resolve")
	}
	if _, ok := im.ResolveAlias("nope"); ok {
		t.Fatal("expected miss for unknown alias")
	}
}

func TestImportStructMemoizes(t *testing.T) {
	im := New()
	rt := reflect.TypeOf(widget{})
	t1, err := im.Import(rt)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := im.Import(rt)
	if err != nil {
		t.Fatal(err)
	}
	if t1 != t2 {
		t.Fatal("expected memoized import to return the identical *symbols.Type")
	}
	if _, ok := t1.Scope.LookupLocal("Count"); !ok {
		t.Fatal("expected Count field to be imported")
	}
}

func TestImportSliceIsArrayType(t *testing.T) {
	im := New()
	rt := reflect.TypeOf([]int(nil))
	tp, err := im.Import(rt)
	if err != nil {
		t.Fatal(err)
	}
	if tp.Rank != 1 || tp.Elem.Name != "int" {
		t.Fatalf("expected rank-1 int array, got %+v", tp)
	}
}

func TestImportFuncAsDelegate(t *testing.T) {
	im := New()
	var fn func(int) bool
	rt := reflect.TypeOf(fn)
	tp, err := im.Import(rt)
	if err != nil {
		t.Fatal(err)
	}
	if !tp.Sealed {
		t.Fatal("expected synthesized delegate class to be sealed")
	}
	invoke, ok := tp.Scope.LookupLocal("Invoke")
	if !ok {
		t.Fatal("expected an Invoke method on the synthesized delegate")
	}
	method, ok := invoke.(*symbols.MethodEntry)
	if !ok || len(method.Overloads()) != 1 {
		t.Fatal("expected Invoke to be a single-overload method entry")
	}
	if method.First.ReturnType == nil || method.First.ReturnType.Name != "bool" {
		t.Fatalf("expected Invoke to return bool, got %+v", method.First.ReturnType)
	}
}

func TestImportGenericRejected(t *testing.T) {
	im := New()
	rt := reflect.TypeOf(pair[int]{})
	if _, err := im.Import(rt); err == nil {
		t.Fatal("expected generic type to be rejected")
	}
}

func TestImportCycleDetected(t *testing.T) {
	im := New()
	rt := reflect.TypeOf(cyclic{})
	// A self-referential pointer field must not recurse forever; the ref
	// wrapper around *cyclic imports cyclic itself, which is still
	// "resolving" at that point.
	if _, err := im.Import(rt); err == nil {
		t.Fatal("expected cyclic import to surface an error")
	}
}
