package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Circuit2TikZ/SymbolConvert/internal/catalog"
	"github.com/Circuit2TikZ/SymbolConvert/internal/color"
	"github.com/Circuit2TikZ/SymbolConvert/internal/config"
	"github.com/Circuit2TikZ/SymbolConvert/internal/optimizer"
	"github.com/Circuit2TikZ/SymbolConvert/internal/pipeline"
	"github.com/Circuit2TikZ/SymbolConvert/internal/render"
	"github.com/Circuit2TikZ/SymbolConvert/internal/symbol"
)

// newPipeline loads the configuration and catalog from rootDir and
// assembles a ready-to-run pipeline.
func newPipeline(rootDir string, quiet bool) (*pipeline.Pipeline, *config.Config, error) {
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	catalogPath := resolvePath(rootDir, cfg.Catalog.Path)
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog %s: %w", catalogPath, err)
	}

	stencils, err := loadStencils(rootDir, cfg)
	if err != nil {
		return nil, nil, err
	}

	buildDir := resolvePath(rootDir, cfg.Build.Dir)

	p := &pipeline.Pipeline{
		Catalog:     cat,
		BuildDir:    buildDir,
		LibraryPath: resolvePath(rootDir, cfg.Build.Library),
		Stencils:    stencils,
		Compiler:    &render.LatexCompiler{Binary: cfg.Tools.Lualatex},
		Rasterizer:  &render.Rasterizer{Binary: cfg.Tools.Dvisvgm},
		Optimizer:   optimizer.New(cfg.Tools.Svgo, buildDir),
		Synthesizer: symbol.NewSynthesizer(color.NewParser(color.DefaultNames())),
		Workers:     cfg.Build.Workers,
		Reporter:    NewStageProgressReporter(quiet),
	}
	return p, cfg, nil
}

// loadStencils returns the embedded stencils, with per-file overrides from
// the configuration applied.
func loadStencils(rootDir string, cfg *config.Config) (render.Stencils, error) {
	stencils := render.DefaultStencils()

	if cfg.Render.NodeStencil != "" {
		data, err := os.ReadFile(resolvePath(rootDir, cfg.Render.NodeStencil))
		if err != nil {
			return stencils, fmt.Errorf("failed to read node stencil: %w", err)
		}
		stencils.Node = string(data)
	}
	if cfg.Render.PathStencil != "" {
		data, err := os.ReadFile(resolvePath(rootDir, cfg.Render.PathStencil))
		if err != nil {
			return stencils, fmt.Errorf("failed to read path stencil: %w", err)
		}
		stencils.Path = string(data)
	}
	return stencils, nil
}

func resolvePath(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}
