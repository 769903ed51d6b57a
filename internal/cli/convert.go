package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var quietFlag bool

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run the full conversion pipeline",
	Long: `Convert runs every pipeline stage in order:

  1. Expand the catalog into one LaTeX file per component variant
  2. Compile each variant to DVI with lualatex
  3. Rasterize each DVI to SVG with dvisvgm and synthesize the symbol
  4. Merge all symbols into the library document

Stages skip files whose outputs already exist, so rerunning after a partial
failure only processes the remaining files.

Examples:
  # Convert the catalog in the current directory
  symbolconvert convert

  # Convert without progress bars
  symbolconvert convert --quiet
`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	p, _, err := newPipeline(rootDir, quietFlag)
	if err != nil {
		return err
	}

	return p.Run(ctx)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling...")
		cancel()
	}()

	return ctx, cancel
}
