package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	opts := Default()
	if len(opts.SourcePaths) != 1 || opts.SourcePaths[0] != "." {
		t.Errorf("Default().SourcePaths = %v, want [\".\"]", opts.SourcePaths)
	}
	if opts.WarningsAsErrors {
		t.Error("Default().WarningsAsErrors = true, want false")
	}
	if opts.MaxDiagnostics != 0 {
		t.Errorf("Default().MaxDiagnostics = %d, want 0", opts.MaxDiagnostics)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aster.yaml")
	doc := "sourcePaths:\n  - src\n  - vendor\nwarningsAsErrors: true\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if want := []string{"src", "vendor"}; !equalStrings(opts.SourcePaths, want) {
		t.Errorf("SourcePaths = %v, want %v", opts.SourcePaths, want)
	}
	if !opts.WarningsAsErrors {
		t.Error("WarningsAsErrors = false, want true")
	}
	if opts.MaxDiagnostics != 0 {
		t.Errorf("MaxDiagnostics = %d, want 0 (not set in the document)", opts.MaxDiagnostics)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() with a missing file: want error, got nil")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
