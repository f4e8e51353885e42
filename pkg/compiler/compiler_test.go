package compiler

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCompileSingleValidFile(t *testing.T) {
	c := New(nil)
	result, err := c.Compile([]Source{{Name: "a.as", Text: `
		class Greeter {
			public string Greet(string name) {
				return name;
			}
		}
	`}})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", result.Bag.FormatAll())
	}
	if len(result.Program.Namespaces) != 1 {
		t.Fatalf("Program.Namespaces has %d entries, want 1", len(result.Program.Namespaces))
	}
}

func TestCompileMergesMultipleFiles(t *testing.T) {
	c := New(nil)
	result, err := c.Compile([]Source{
		{Name: "a.as", Text: `namespace N { class A {} }`},
		{Name: "b.as", Text: `namespace N { class B : A {} }`},
	})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics resolving across files: %s", result.Bag.FormatAll())
	}
}

func TestCompileUndefinedBaseRecordsDiagnosticButKeepsGoing(t *testing.T) {
	c := New(nil)
	result, err := c.Compile([]Source{
		{Name: "a.as", Text: `class A : Nonexistent {}`},
		{Name: "b.as", Text: `class B {}`},
	})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if !result.Bag.HasErrors() {
		t.Fatal("expected a diagnostic for the undefined base class")
	}
}

func TestCompileNoSources(t *testing.T) {
	c := New(nil)
	if _, err := c.Compile(nil); err == nil {
		t.Fatal("Compile(nil) error = nil, want an error")
	}
}

func TestCompileFilesScansDirectoryInSortedOrder(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("z.as", `class Z {}`)
	write("a.as", `class A {}`)
	write("ignore.txt", `not aster source`)

	c := New(nil)
	result, err := c.CompileFiles([]string{dir})
	if err != nil {
		t.Fatalf("CompileFiles() error: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", result.Bag.FormatAll())
	}
	if len(result.Program.Namespaces) != 2 {
		t.Fatalf("Program.Namespaces has %d entries, want 2 (ignore.txt must be skipped)", len(result.Program.Namespaces))
	}
}
