// Package resolver implements spec.md's C8: the four ordered semantic passes
// (namespaces, types, members, bodies) that turn the parser's untyped
// internal/ast tree into a fully-resolved one, plus the expression-lowering
// catalog pass 4 applies while walking method bodies.
//
// Structure is grounded on the teacher's internal/semantic/passes package: a
// PassContext threaded across passes (pass_context.go's shared-registries
// idiom), one pass per ordering dependency (declaration_pass.go →
// type_resolution_pass.go → validation_pass.go → contract_pass.go), each
// pass's doc comment stating its purpose, responsibilities, and explicit
// non-responsibilities so later readers don't have to infer pass ordering
// from behavior. Aster's pass boundaries differ from the teacher's because
// spec.md's grammar differs (properties/events/indexers/operator overloads,
// single inheritance plus interfaces, no forward-declared types), but the
// shared-context/four-pass shape is the same idiom.
package resolver

import (
	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/diag"
	"github.com/asterlang/aster/internal/emitter"
	"github.com/asterlang/aster/internal/importer"
	"github.com/asterlang/aster/internal/symbols"
)

// PassContext is the communication medium between passes: later passes read
// what earlier passes wrote, and nothing here is cleared between passes, the
// same "shared registries" shape as the teacher's PassContext.
type PassContext struct {
	Bag      *diag.Bag
	Importer *importer.Importer

	// namespaces maps a namespace's fully dotted name ("" for the global
	// namespace) to its merged entry — spec.md §3's "two namespace blocks
	// with the same dotted name share one scope" rule, exercised whenever
	// the same namespace is reopened in another file or another part of the
	// same file.
	namespaces map[string]*symbols.NamespaceEntry

	// usings accumulates every using-directive written in any reopening of
	// a namespace, keyed by that namespace's dotted name, so pass 2 can
	// build one LookupController per namespace from the union.
	usings map[string][]*ast.UsingDirective

	// nsAliases holds each namespace's "using X = Some.Namespace;" alias map
	// (alias -> target dotted namespace), built alongside the plain-using
	// LookupControllers in buildUsingControllers.
	nsAliases map[string]map[string]string

	// qualified maps a type's fully dotted name (namespace + "." + type
	// name, or just the type name at global scope) to its resolved Type, so
	// a qualified reference can jump straight to its target without walking
	// the declaring namespace's own lexical chain.
	qualified map[string]*symbols.Type

	// declOf and namespaceOf let pass 2/3 walk back from a Type to the AST
	// node that declared it and the namespace it was declared in, without
	// threading that information through every function signature.
	declOf      map[*symbols.Type]ast.TypeDecl
	namespaceOf map[*symbols.Type]string
	declScopeOf map[*symbols.Type]*symbols.Scope // lexical scope a member typesig resolves names against
	typeOf      map[ast.TypeDecl]*symbols.Type    // inverse of declOf, for AST-driven pass walks

	// headerOf/propOf/eventOf let pass 4 jump straight from a method/property/
	// event's AST node to the exact symbol entry pass 3 built for it (with
	// types already resolved), instead of re-resolving it by name through a
	// scope lookup that would have to disambiguate overloads all over again.
	headerOf map[*ast.MethodDecl]*symbols.MethodHeader
	propOf   map[*ast.PropertyDecl]*symbols.PropertyEntry
	eventOf  map[*ast.EventDecl]*symbols.EventEntry

	// instanceInitOf/staticInitOf hold the synthesized ".InstanceInit"/
	// ".StaticInit" method pass 3 built for a type from its bucketed field
	// initializers (spec.md §4.5 pass-3 step 2/4), keyed by type so pass 4
	// can find the already-resolved prologue body to prepend into every
	// ctor that chains to base (or, for .StaticInit, the static ctor)
	// without re-resolving the initializer expressions a second time. A
	// type with no field initializers of that flavor has no entry.
	instanceInitOf map[*symbols.Type]*ast.MethodDecl
	staticInitOf   map[*symbols.Type]*ast.MethodDecl

	// CurrentType/CurrentMethod/LoopDepth track pass 4's walk position, the
	// same role the teacher's CurrentClass/CurrentFunction/LoopDepth play.
	CurrentType   *symbols.Type
	CurrentMethod *symbols.MethodHeader
	LoopDepth     int

	// Emitter is spec.md §4.6's C9 provider. It is nil unless a caller sets
	// it (ResolveWithEmitter does, or direct assignment before Resolve
	// runs); pass 5 skips entirely when it is nil.
	Emitter emitter.Provider

	// typeHandles/methodHandles/fieldHandles/propertyHandles/eventHandles
	// are pass 5's output: every handle Emitter returned, keyed by the
	// symbol it was created for, and read through the TypeHandle/
	// MethodHandle/... accessors below. cmd/asterc's dump-symbols does not
	// use them; it prints the RecordingProvider's call log instead.
	typeHandles     map[*symbols.Type]emitter.TypeHandle
	methodHandles   map[*symbols.MethodHeader]emitter.MethodHandle
	fieldHandles    map[*symbols.FieldEntry]emitter.FieldHandle
	propertyHandles map[*symbols.PropertyEntry]emitter.PropertyHandle
	eventHandles    map[*symbols.EventEntry]emitter.EventHandle
}

// TypeHandle returns the handle pass 5 created for t, if any.
func (ctx *PassContext) TypeHandle(t *symbols.Type) (emitter.TypeHandle, bool) {
	h, ok := ctx.typeHandles[t]
	return h, ok
}

// MethodHandle returns the handle pass 5 created for h, if any.
func (ctx *PassContext) MethodHandle(h *symbols.MethodHeader) (emitter.MethodHandle, bool) {
	mh, ok := ctx.methodHandles[h]
	return mh, ok
}

// FieldHandle returns the handle pass 5 created for f, if any.
func (ctx *PassContext) FieldHandle(f *symbols.FieldEntry) (emitter.FieldHandle, bool) {
	fh, ok := ctx.fieldHandles[f]
	return fh, ok
}

// PropertyHandle returns the handle pass 5 created for p, if any.
func (ctx *PassContext) PropertyHandle(p *symbols.PropertyEntry) (emitter.PropertyHandle, bool) {
	ph, ok := ctx.propertyHandles[p]
	return ph, ok
}

// EventHandle returns the handle pass 5 created for e, if any.
func (ctx *PassContext) EventHandle(e *symbols.EventEntry) (emitter.EventHandle, bool) {
	eh, ok := ctx.eventHandles[e]
	return eh, ok
}

// NewPassContext returns a context with every registry initialized and the
// global (unnamed) namespace pre-registered.
func NewPassContext(imp *importer.Importer) *PassContext {
	ctx := &PassContext{
		Bag:         diag.NewBag(),
		Importer:    imp,
		namespaces:  make(map[string]*symbols.NamespaceEntry),
		usings:      make(map[string][]*ast.UsingDirective),
		nsAliases:   make(map[string]map[string]string),
		qualified:   make(map[string]*symbols.Type),
		declOf:      make(map[*symbols.Type]ast.TypeDecl),
		namespaceOf: make(map[*symbols.Type]string),
		declScopeOf: make(map[*symbols.Type]*symbols.Scope),
		typeOf:      make(map[ast.TypeDecl]*symbols.Type),
		headerOf:    make(map[*ast.MethodDecl]*symbols.MethodHeader),
		propOf:      make(map[*ast.PropertyDecl]*symbols.PropertyEntry),
		eventOf:     make(map[*ast.EventDecl]*symbols.EventEntry),

		instanceInitOf: make(map[*symbols.Type]*ast.MethodDecl),
		staticInitOf:   make(map[*symbols.Type]*ast.MethodDecl),

		typeHandles:     make(map[*symbols.Type]emitter.TypeHandle),
		methodHandles:   make(map[*symbols.MethodHeader]emitter.MethodHandle),
		fieldHandles:    make(map[*symbols.FieldEntry]emitter.FieldHandle),
		propertyHandles: make(map[*symbols.PropertyEntry]emitter.PropertyHandle),
		eventHandles:    make(map[*symbols.EventEntry]emitter.EventHandle),
	}
	ctx.namespaces[""] = symbols.NewNamespace("", symbols.NewScope(nil))
	return ctx
}

// Resolve runs all four passes over prog in order and returns the
// accumulated diagnostics. A pass that fails to make forward progress on a
// type (e.g. an undefined base class) still lets later passes run over
// everything else, so one bad declaration doesn't silence diagnostics about
// the rest of the program — the same "collect, don't abort" policy spec.md
// §7 asks of the resolver, in contrast to the parser's single-failure
// unwind.
func Resolve(prog *ast.Program, imp *importer.Importer) *diag.Bag {
	return ResolveWithEmitter(prog, imp, nil)
}

// ResolveWithEmitter runs Resolve's same four passes and then, if emit is
// non-nil, a fifth pass requesting a handle for every resolved declaration
// (spec.md §4.6). Passing a nil emit is equivalent to calling Resolve.
func ResolveWithEmitter(prog *ast.Program, imp *importer.Importer, emit emitter.Provider) *diag.Bag {
	ctx := NewPassContext(imp)
	ctx.Emitter = emit
	runNamespacePass(ctx, prog)
	runTypePass(ctx, prog)
	runMemberPass(ctx, prog)
	runBodyPass(ctx, prog)
	runEmitterPass(ctx, prog)
	return ctx.Bag
}

func (ctx *PassContext) errorf(offset int, r diag.FileRange, format string, args ...any) {
	ctx.Bag.Add(diag.New(diag.SubsystemResolver, offset, diag.KindSemantic, r, format, args...))
}

func (ctx *PassContext) warnf(offset int, r diag.FileRange, format string, args ...any) {
	ctx.Bag.Add(diag.Warning(diag.SubsystemResolver, offset, diag.KindSemantic, r, format, args...))
}
