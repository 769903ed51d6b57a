// Package pipeline orchestrates the conversion stages: catalog expansion to
// LaTeX, DVI compilation, SVG rasterization, symbol synthesis and the final
// library merge. Stages are file driven; each one discovers its inputs in
// the build directory and skips files whose output already exists.
package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery finds stage inputs with glob patterns and ignore rules.
type Discovery struct {
	rootDir        string
	patterns       []compiledPattern
	ignorePatterns []compiledPattern
}

// NewDiscovery creates a new discovery instance rooted at rootDir.
func NewDiscovery(rootDir string, patterns, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.patterns = append(d.patterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Discover walks the root directory and returns every file matching the
// patterns, minus the ignored ones. Results are absolute-ish paths rooted
// the way rootDir is.
func (d *Discovery) Discover() ([]string, error) {
	files := []string{}

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.matchesAnyPattern(relPath, d.ignorePatterns) {
			return nil
		}
		if d.matchesAnyPattern(relPath, d.patterns) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// matchesAnyPattern checks if a path matches any of the given patterns.
// A root-level file also matches "**/"-prefixed patterns with the prefix
// dropped, so "**/*.dvi" picks up "foo.dvi" directly under the root.
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}

// FilterStale keeps only the files whose sibling output with targetExt does
// not exist yet. A file with an up-to-date output is skipped entirely; a
// forced rebuild deletes outputs first.
func FilterStale(files []string, targetExt string) []string {
	if !strings.HasPrefix(targetExt, ".") {
		targetExt = "." + targetExt
	}

	var stale []string
	for _, f := range files {
		stem := strings.TrimSuffix(f, filepath.Ext(f))
		if _, err := os.Stat(stem + targetExt); err != nil {
			stale = append(stale, f)
		}
	}
	return stale
}
