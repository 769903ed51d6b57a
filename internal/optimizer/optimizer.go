// Package optimizer drives the external svgo minifier. The pipeline treats
// it as a black box: it receives a document and a fixed configuration and
// either returns an equivalent smaller document or fails.
package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ExecutionTimeout bounds one svgo invocation. Symbol documents are small;
// anything slower than this is svgo hanging, not working.
const ExecutionTimeout = 60 * time.Second

// Optimizer runs svgo with a given configuration.
type Optimizer struct {
	// Binary is the svgo executable, "svgo" by default.
	Binary string
	// WorkDir is where temp config files are written; svgo resolves its
	// plugins relative to it. Defaults to the process working directory.
	WorkDir string
}

func New(binary, workDir string) *Optimizer {
	if binary == "" {
		binary = "svgo"
	}
	return &Optimizer{Binary: binary, WorkDir: workDir}
}

// Run pipes the document through svgo with the given config. The config is
// written to a uniquely named temp file so parallel conversions in the same
// directory never clobber each other, and removed afterwards.
func (o *Optimizer) Run(ctx context.Context, document string, config *Config) (string, error) {
	configName := fmt.Sprintf("svgo-%s.config.js", uuid.NewString())
	configPath := filepath.Join(o.WorkDir, configName)

	content, err := config.Render()
	if err != nil {
		return "", fmt.Errorf("failed to render svgo config: %w", err)
	}
	if err := os.WriteFile(configPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write svgo config: %w", err)
	}
	defer os.Remove(configPath)

	execCtx, cancel := context.WithTimeout(ctx, ExecutionTimeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, o.Binary, "--config", configName, "-i", "-", "-o", "-")
	cmd.Dir = o.WorkDir
	cmd.Stdin = bytes.NewBufferString(document)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("svgo failed: %w: %s", err, stderr.String())
	}
	return stdout.String(), nil
}

// Config mirrors svgo's config file shape. It is serialized as
// "module.exports=<json>", which svgo accepts as a CommonJS config.
type Config struct {
	Multipass      bool     `json:"multipass"`
	FloatPrecision int      `json:"floatPrecision"`
	JS2SVG         JS2SVG   `json:"js2svg"`
	Plugins        []Plugin `json:"plugins"`
}

// JS2SVG controls svgo's output formatting.
type JS2SVG struct {
	Indent       string `json:"indent"`
	Pretty       bool   `json:"pretty"`
	EOL          string `json:"eol"`
	FinalNewline bool   `json:"finalNewline"`
}

// Plugin is either a bare plugin name or a name with parameters.
type Plugin struct {
	Name   string
	Params map[string]any
}

// MarshalJSON emits bare names as strings, matching svgo's plugin list
// syntax.
func (p Plugin) MarshalJSON() ([]byte, error) {
	if p.Params == nil {
		return json.Marshal(p.Name)
	}
	return json.Marshal(map[string]any{
		"name":   p.Name,
		"params": p.Params,
	})
}

// Render serializes the config for svgo.
func (c *Config) Render() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return nil, err
	}
	return append([]byte("module.exports="), data...), nil
}
