// Package compiler is the public façade over internal/parser,
// internal/resolver, internal/importer and internal/emitter: the one
// entry point an embedder or cmd/asterc calls to turn a set of source
// files into a resolved internal/ast.Program and a internal/diag.Bag of
// diagnostics. Its New/Compile shape follows the teacher's pkg/dwscript
// engine façade (its own New() constructor plus engine.Compile(source)
// returning a structured *CompileError on failure), generalized from a
// single-source-string interpreter entry point to this module's
// multi-file, check-only front end.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/config"
	"github.com/asterlang/aster/internal/diag"
	"github.com/asterlang/aster/internal/emitter"
	"github.com/asterlang/aster/internal/importer"
	"github.com/asterlang/aster/internal/parser"
	"github.com/asterlang/aster/internal/resolver"
)

// Compiler holds the configuration and the type importer a compilation
// reuses across files — an Importer memoizes runtime-type imports, so one
// Compiler should parse every file of a single compilation rather than
// each file getting its own.
type Compiler struct {
	opts     *config.Options
	importer *importer.Importer
	emitter  emitter.Provider
}

// New returns a Compiler configured by opts. A nil opts uses
// config.Default().
func New(opts *config.Options) *Compiler {
	if opts == nil {
		opts = config.Default()
	}
	return &Compiler{opts: opts, importer: importer.New()}
}

// WithEmitter attaches a C9 provider so Compile's resolve step also runs
// pass 5, which sends p one handle request per resolved type and member.
// The handles p returns are not exposed on Result. Returns c for chaining.
func (c *Compiler) WithEmitter(p emitter.Provider) *Compiler {
	c.emitter = p
	return c
}

// Source is one file to compile: a name for diagnostics (typically a
// relative path) and its text.
type Source struct {
	Name string
	Text string
}

// Result is everything Compile produces: the merged, resolved program and
// every diagnostic raised while building it.
type Result struct {
	Program *ast.Program
	Bag     *diag.Bag
}

// HasErrors reports whether compilation failed, honoring
// opts.WarningsAsErrors.
func (r *Result) HasErrors(opts *config.Options) bool {
	if r.Bag.HasErrors() {
		return true
	}
	return opts != nil && opts.WarningsAsErrors && r.Bag.WarningCount() > 0
}

// Compile parses every source, merges the resulting namespace trees into
// one Program (spec.md §6: "multiple source files merge by placing all
// their global Namespace roots under a single Program node"), and runs the
// four-pass resolver over it. A parse failure in one file is recorded as a
// diagnostic and that file's namespace tree is omitted from the merged
// Program, but every other file is still parsed and the whole batch still
// resolves — the same "one bad file doesn't silence the rest" policy
// spec.md §7 asks of the resolver, extended here to the file-parsing step.
func (c *Compiler) Compile(sources []Source) (*Result, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("compiler: no source files given")
	}
	bag := diag.NewBag()
	bag.SetLimit(c.opts.MaxDiagnostics)
	prog := &ast.Program{}

	for _, src := range sources {
		ns, failure := parser.Parse(src.Name, src.Text)
		if failure != nil {
			bag.Add(failure)
			continue
		}
		prog.Namespaces = append(prog.Namespaces, ns)
	}

	resolveBag := resolver.ResolveWithEmitter(prog, c.importer, c.emitter)
	for _, d := range resolveBag.All() {
		bag.Add(d)
	}

	return &Result{Program: prog, Bag: bag}, nil
}

// CompileFiles reads every ".as" source file named in sourcePaths — each
// entry may be a file or a directory, in which case it is scanned
// non-recursively for ".as" files — and Compiles the result. Directory
// entries are visited in sorted order so repeated runs merge files in a
// stable, reproducible order regardless of the underlying filesystem's
// directory-listing order.
func (c *Compiler) CompileFiles(sourcePaths []string) (*Result, error) {
	var sources []Source
	for _, p := range sourcePaths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("compiler: %w", err)
		}
		if !info.IsDir() {
			text, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("compiler: reading %q: %w", p, err)
			}
			sources = append(sources, Source{Name: p, Text: string(text)})
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("compiler: reading directory %q: %w", p, err)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".as") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			full := filepath.Join(p, name)
			text, err := os.ReadFile(full)
			if err != nil {
				return nil, fmt.Errorf("compiler: reading %q: %w", full, err)
			}
			sources = append(sources, Source{Name: full, Text: string(text)})
		}
	}
	return c.Compile(sources)
}
