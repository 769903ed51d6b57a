package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Circuit2TikZ/SymbolConvert/internal/pipeline"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert, then rebuild whenever catalog or stencils change",
	Long: `Watch runs a full conversion, then keeps watching the catalog and stencil
files. Each change triggers an incremental rebuild; unchanged variants are
served from the render cache.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	p, cfg, err := newPipeline(rootDir, quietFlag)
	if err != nil {
		return err
	}

	cache, err := pipeline.NewRenderCache(cfg.Build.CacheSize)
	if err != nil {
		return err
	}
	defer cache.Close()
	p.Cache = cache

	if err := p.Run(ctx); err != nil {
		log.Printf("Initial conversion failed: %v", err)
	}

	catalogPath := resolvePath(rootDir, cfg.Catalog.Path)
	watchDirs := []string{filepath.Dir(catalogPath)}
	extensions := []string{filepath.Ext(catalogPath), ".tex"}

	watcher, err := pipeline.NewWatcher(watchDirs, extensions)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	err = watcher.Start(ctx, func(files []string) {
		log.Printf("Detected %d changed files, rebuilding", len(files))

		// Reload so catalog and stencil edits take effect.
		fresh, _, err := newPipeline(rootDir, quietFlag)
		if err != nil {
			log.Printf("Rebuild skipped: %v", err)
			return
		}
		fresh.Cache = cache
		if err := fresh.Run(ctx); err != nil {
			log.Printf("Rebuild failed: %v", err)
			return
		}
		log.Println("Rebuild complete")
	})
	if err != nil {
		return err
	}

	if !quietFlag {
		log.Println("Watching for changes. Press Ctrl+C to stop.")
	}
	<-ctx.Done()
	return nil
}
