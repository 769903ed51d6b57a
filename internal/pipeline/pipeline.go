package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Circuit2TikZ/SymbolConvert/internal/catalog"
	"github.com/Circuit2TikZ/SymbolConvert/internal/library"
	"github.com/Circuit2TikZ/SymbolConvert/internal/optimizer"
	"github.com/Circuit2TikZ/SymbolConvert/internal/render"
	"github.com/Circuit2TikZ/SymbolConvert/internal/symbol"
)

// Pipeline wires the stages together over one build directory. Every stage
// is idempotent: files whose outputs already exist are skipped, so an
// interrupted run resumes where it stopped.
type Pipeline struct {
	Catalog     *catalog.Catalog
	BuildDir    string
	LibraryPath string

	Stencils    render.Stencils
	Compiler    *render.LatexCompiler
	Rasterizer  *render.Rasterizer
	Optimizer   *optimizer.Optimizer
	Synthesizer *symbol.Synthesizer

	Workers  int
	Reporter ProgressReporter
	Cache    *RenderCache
}

// Run executes all stages in order. Per-file failures are logged and
// tallied; a stage only aborts the run when nothing can proceed.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.Generate(); err != nil {
		return err
	}
	if err := p.Compile(ctx); err != nil {
		return err
	}
	if err := p.Convert(ctx); err != nil {
		return err
	}
	return p.Merge(ctx)
}

// Generate expands the catalog into one .tex file per variant.
func (p *Pipeline) Generate() error {
	files := render.GenerateTexFiles(p.Catalog, p.Stencils)
	if err := render.WriteTexFiles(files, p.BuildDir); err != nil {
		return fmt.Errorf("generate stage: %w", err)
	}
	log.Printf("Generated %d variant files", len(files))
	return nil
}

// Compile turns every stale .tex file into a .dvi.
func (p *Pipeline) Compile(ctx context.Context) error {
	files, err := p.discoverStale("*.tex", ".dvi")
	if err != nil {
		return fmt.Errorf("compile stage: %w", err)
	}

	errs := RunParallel(ctx, files, p.Workers, p.Reporter, "Compiling variants", func(ctx context.Context, file string) error {
		_, err := p.Compiler.Compile(ctx, file)
		return err
	})
	return tally("compile", len(files), errs)
}

// Convert rasterizes every stale .dvi, optimizes the drawing and
// synthesizes the symbol next to it.
func (p *Pipeline) Convert(ctx context.Context) error {
	files, err := p.discoverStale("*.dvi", ".svg")
	if err != nil {
		return fmt.Errorf("convert stage: %w", err)
	}

	errs := RunParallel(ctx, files, p.Workers, p.Reporter, "Converting variants", func(ctx context.Context, file string) error {
		return p.convertOne(ctx, file)
	})
	return tally("convert", len(files), errs)
}

// Merge clusters all synthesized symbols into the library document.
func (p *Pipeline) Merge(ctx context.Context) error {
	disc, err := NewDiscovery(p.BuildDir, []string{"*.svg"}, nil)
	if err != nil {
		return fmt.Errorf("merge stage: %w", err)
	}
	files, err := disc.Discover()
	if err != nil {
		return fmt.Errorf("merge stage: %w", err)
	}

	symbols := make([]string, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("merge stage: %w", err)
		}
		symbols = append(symbols, string(data))
	}

	document, err := library.Merge(symbols)
	if err != nil {
		return fmt.Errorf("merge stage: %w", err)
	}

	document, err = p.Optimizer.Run(ctx, document, optimizer.LibraryConfig())
	if err != nil {
		return fmt.Errorf("merge stage: %w", err)
	}

	if err := os.WriteFile(p.LibraryPath, []byte(document), 0o644); err != nil {
		return fmt.Errorf("merge stage: %w", err)
	}
	log.Printf("Merged %d symbols into %s", len(symbols), p.LibraryPath)
	return nil
}

func (p *Pipeline) convertOne(ctx context.Context, dviPath string) error {
	stem := strings.TrimSuffix(filepath.Base(dviPath), filepath.Ext(dviPath))

	fd, err := catalog.ParseFilename(stem)
	if err != nil {
		return err
	}
	desc, err := p.Catalog.Lookup(fd)
	if err != nil {
		return err
	}
	active, err := variantForStem(desc, fd, stem)
	if err != nil {
		return err
	}

	drawing, err := p.rasterize(ctx, dviPath)
	if err != nil {
		return err
	}

	id := catalog.ComponentName(nil, desc.TikzName(), fd.IsNode, activeLabels(active))
	drawing, err = p.Optimizer.Run(ctx, drawing, optimizer.SymbolConfig(id))
	if err != nil {
		return err
	}

	document, diags, err := p.Synthesizer.Synthesize(symbol.Request{
		Drawing:       drawing,
		Description:   catalog.EffectiveDescription(desc, active),
		ActiveOptions: active,
		ID:            id,
	})
	if err != nil {
		return err
	}
	for _, d := range diags {
		log.Printf("Warning: %s", d)
	}

	target := strings.TrimSuffix(dviPath, filepath.Ext(dviPath)) + ".svg"
	return os.WriteFile(target, []byte(document), 0o644)
}

// rasterize converts a DVI to SVG, consulting the cache in watch mode.
func (p *Pipeline) rasterize(ctx context.Context, dviPath string) (string, error) {
	if p.Cache != nil {
		if document, ok := p.Cache.Get(dviPath); ok {
			return document, nil
		}
	}
	document, err := p.Rasterizer.Rasterize(ctx, dviPath)
	if err != nil {
		return "", err
	}
	if p.Cache != nil {
		p.Cache.Put(dviPath, document)
	}
	return document, nil
}

func (p *Pipeline) discoverStale(pattern, targetExt string) ([]string, error) {
	disc, err := NewDiscovery(p.BuildDir, []string{pattern}, nil)
	if err != nil {
		return nil, err
	}
	files, err := disc.Discover()
	if err != nil {
		return nil, err
	}
	return FilterStale(files, targetExt), nil
}

// variantForStem finds the option combination a file was rendered with by
// reproducing its name from the catalog.
func variantForStem(desc catalog.Description, fd catalog.FileDescriptor, stem string) ([]catalog.SimpleOption, error) {
	for _, active := range catalog.OptionPossibilities(desc.BaseOptions()) {
		name := catalog.ComponentName(&fd.Index, desc.TikzName(), fd.IsNode, activeLabels(active))
		if name == stem {
			return active, nil
		}
	}
	return nil, fmt.Errorf("no option combination of %q matches %q", desc.TikzName(), stem)
}

func activeLabels(active []catalog.SimpleOption) []string {
	var labels []string
	for _, o := range active {
		labels = append(labels, o.Label())
	}
	return labels
}

func tally(stage string, total int, errs []error) error {
	for _, err := range errs {
		log.Printf("Error in %s stage: %v", stage, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s stage: %d of %d files failed", stage, len(errs), total)
	}
	return nil
}
