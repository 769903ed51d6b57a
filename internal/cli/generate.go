package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the per-variant LaTeX files only",
	Long: `Generate expands the catalog into one LaTeX file per component variant
and stops. Useful to inspect or hand-compile the generated sources.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	p, _, err := newPipeline(rootDir, true)
	if err != nil {
		return err
	}

	return p.Generate()
}
