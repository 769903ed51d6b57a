package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge already-synthesized symbols into the library",
	Long: `Merge collects every symbol in the build directory, clusters the variants
of each component and writes the optimized library document. The earlier
pipeline stages must have run before.`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	p, _, err := newPipeline(rootDir, true)
	if err != nil {
		return err
	}

	return p.Merge(ctx)
}
