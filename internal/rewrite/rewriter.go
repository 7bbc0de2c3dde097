package rewrite

import (
	"context"
	"fmt"

	"adjconst-generator/internal/analyze"
	"adjconst-generator/internal/diagnostic"
	"adjconst-generator/internal/gen"
	"adjconst-generator/internal/plan"
	"adjconst-generator/internal/syntax"
)

// Options configures a Rewriter.
type Options struct {
	// Generator controls naming, guards, indentation and line endings.
	Generator gen.GeneratorConfig
	// CollectionTypes are qualified names of types emitted as collections.
	CollectionTypes []string
	// KnownTypes extend the built-in type table of every model.
	KnownTypes []analyze.KnownType
}

// DefaultOptions returns the default rewriter options.
func DefaultOptions() Options {
	return Options{
		Generator:       gen.DefaultGeneratorConfig(),
		CollectionTypes: plan.DefaultCollectionTypes,
	}
}

// Result is the outcome of one rewrite.
type Result struct {
	// Text is the assembled output, empty when the input has no declaration unit.
	Text string
	// Plan is the extracted plan, nil when the input has no declaration unit.
	Plan *plan.Plan
	// Diagnostics are the non-fatal findings.
	Diagnostics diagnostic.Diagnostics
}

// Empty reports whether the rewrite produced no text.
func (r *Result) Empty() bool {
	return r.Text == ""
}

// Records returns the member records of the plan.
func (r *Result) Records() []plan.MemberRecord {
	if r.Plan == nil {
		return nil
	}

	return r.Plan.Records
}

// Rewriter runs the rewrite pipeline. It holds only immutable configuration
// and is safe for concurrent use.
type Rewriter struct {
	loader    *analyze.Loader
	generator *gen.Generator
	registry  *plan.Registry
	known     []analyze.KnownType
}

// New creates a Rewriter.
func New(opts Options) *Rewriter {
	registry := plan.NewRegistry(opts.CollectionTypes...)

	// Registered collections must resolve even when nothing declares them.
	known := make([]analyze.KnownType, 0, len(opts.CollectionTypes)+len(opts.KnownTypes))
	for _, name := range registry.Names() {
		known = append(known, analyze.KnownType{Name: name, Kind: analyze.TypeKindClass})
	}

	known = append(known, opts.KnownTypes...)

	return &Rewriter{
		loader:    analyze.NewLoader(),
		generator: gen.NewGenerator(opts.Generator),
		registry:  registry,
		known:     known,
	}
}

// Loader returns the parser used by RewriteSource.
func (r *Rewriter) Loader() *analyze.Loader {
	return r.loader
}

// Model builds the type model of file with the configured known types.
func (r *Rewriter) Model(file *syntax.File) *analyze.Model {
	return analyze.NewModel(file, r.known...)
}

// Extract runs member extraction on the declaration unit of file.
// It returns a nil plan and a MissingDeclarationUnit warning when the file
// has no unit.
func (r *Rewriter) Extract(file *syntax.File, types plan.TypeResolver) (*plan.Plan, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	if file == nil || file.Unit == nil {
		diags.AddWarning(diagnostic.CodeMissingDeclarationUnit,
			"no class, struct or record declaration found", "", "")

		return nil, diags, nil
	}

	registry := r.registry
	if lookup, ok := types.(plan.TypeLookup); ok {
		registry = registry.Bind(lookup)
	}

	p, err := plan.NewExtractor(plan.NewClassifier(registry)).Extract(file.Unit, types)
	if err != nil {
		return nil, diags, err
	}

	diags.Merge(p.Diagnostics)

	return p, diags, nil
}

// Rewrite transforms the declaration unit of file. It fails only for
// structural problems (plan.ErrUnsupportedMemberShape,
// plan.ErrUnresolvedSymbol, gen.ErrNameCollision), in which case no text is
// produced.
func (r *Rewriter) Rewrite(file *syntax.File, types plan.TypeResolver) (*Result, error) {
	p, diags, err := r.Extract(file, types)
	if err != nil {
		return nil, err
	}

	result := &Result{Plan: p, Diagnostics: diags}
	if p == nil {
		return result, nil
	}

	rebind, err := r.generator.EmitRebind(p)
	if err != nil {
		return nil, fmt.Errorf("emitting rebind of %s: %w", p.ContainerName, err)
	}

	adjustment, err := r.generator.EmitAdjustmentType(p)
	if err != nil {
		return nil, fmt.Errorf("emitting adjustment type of %s: %w", p.ContainerName, err)
	}

	result.Text = r.generator.Assemble(gen.Parts{
		Usings:     file.Usings,
		Namespace:  file.Namespace,
		FileScoped: file.FileScopedNamespace,
		Original:   file.Unit.Text,
		Rebind:     rebind,
		Adjustment: adjustment,
	})

	return result, nil
}

// RewriteSource parses src, builds its type model and rewrites it.
func (r *Rewriter) RewriteSource(ctx context.Context, src []byte) (*Result, error) {
	file, err := r.loader.Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	return r.Rewrite(file, r.Model(file))
}
