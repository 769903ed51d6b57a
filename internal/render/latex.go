package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// CompileTimeout is the maximum time allowed for a single lualatex run.
const CompileTimeout = 120 * time.Second

// auxExtensions are the compiler byproducts removed after every run,
// successful or not.
var auxExtensions = map[string]bool{
	".aux": true,
	".log": true,
	".tmp": true,
	".toc": true,
}

// LatexCompiler turns a generated .tex file into a DVI in the same
// directory.
type LatexCompiler struct {
	// Binary is the lualatex executable, resolved through PATH when relative.
	Binary string
}

// NewLatexCompiler returns a compiler using the default binary name.
func NewLatexCompiler() *LatexCompiler {
	return &LatexCompiler{Binary: "lualatex"}
}

// Compile runs lualatex on texPath and returns the path of the produced
// .dvi file. Auxiliary files are always cleaned up.
func (c *LatexCompiler) Compile(ctx context.Context, texPath string) (string, error) {
	dir := filepath.Dir(texPath)
	stem := strippedStem(texPath)

	execCtx, cancel := context.WithTimeout(ctx, CompileTimeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, c.Binary,
		"-halt-on-error",
		"-output-format=dvi",
		"-interaction=nonstopmode",
		"-jobname="+stem,
		texPath,
	)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	cleanupAuxFiles(dir, stem)

	if runErr != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("lualatex timed out compiling %s", stem)
		}
		return "", fmt.Errorf("lualatex failed for %s: %w\n%s", stem, runErr, stdout.String())
	}
	return filepath.Join(dir, stem+".dvi"), nil
}

func cleanupAuxFiles(dir, stem string) {
	matches, err := filepath.Glob(filepath.Join(dir, stem+".*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if auxExtensions[filepath.Ext(m)] {
			os.Remove(m)
		}
	}
}

func strippedStem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
