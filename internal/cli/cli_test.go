package cli

// Test Plan for cli package:
// - all subcommands are registered on the root command
// - newPipeline assembles a pipeline from a project directory
// - stencil overrides from the config replace the embedded templates
// - resolvePath keeps absolute paths and roots relative ones

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"convert", "generate", "merge", "watch", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	catalog := `{
	// minimal catalog
	"nodes": [{"name": "ground", "pins": ["T"]}],
	"path": []
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components.jsonc"), []byte(catalog), 0o644))
	return dir
}

func TestNewPipeline(t *testing.T) {
	dir := setupProject(t)

	p, cfg, err := newPipeline(dir, true)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "build"), p.BuildDir)
	assert.Equal(t, filepath.Join(dir, "symbols.svg"), p.LibraryPath)
	assert.Equal(t, cfg.Build.Workers, p.Workers)
	require.NotNil(t, p.Catalog)
	require.Len(t, p.Catalog.Nodes, 1)
	assert.Equal(t, "ground", p.Catalog.Nodes[0].Name)
}

func TestNewPipeline_MissingCatalog(t *testing.T) {
	_, _, err := newPipeline(t.TempDir(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog")
}

func TestNewPipeline_StencilOverride(t *testing.T) {
	dir := setupProject(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.tex"), []byte("custom <nodename> <anchorLines>"), 0o644))
	configDir := filepath.Join(dir, ".symbolconvert")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"),
		[]byte("render:\n  node_stencil: custom.tex\n"), 0o644))

	p, _, err := newPipeline(dir, true)
	require.NoError(t, err)
	assert.Equal(t, "custom <nodename> <anchorLines>", p.Stencils.Node)
	assert.Contains(t, p.Stencils.Path, "<pathname>")
}

func TestNewPipeline_MissingStencilOverride(t *testing.T) {
	dir := setupProject(t)

	configDir := filepath.Join(dir, ".symbolconvert")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"),
		[]byte("render:\n  path_stencil: nope.tex\n"), 0o644))

	_, _, err := newPipeline(dir, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stencil")
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/abs/file", resolvePath("/root", "/abs/file"))
	assert.Equal(t, filepath.Join("/root", "rel"), resolvePath("/root", "rel"))
}
