// Package config loads and validates the tool configuration from
// .symbolconvert/config.yml with environment variable overrides.
package config

import "runtime"

// Config represents the complete tool configuration.
type Config struct {
	Build   BuildConfig   `yaml:"build" mapstructure:"build"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Tools   ToolsConfig   `yaml:"tools" mapstructure:"tools"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
}

// BuildConfig defines where intermediates and the final library go.
type BuildConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`               // directory for .tex/.dvi/.svg intermediates
	Library   string `yaml:"library" mapstructure:"library"`       // merged library output path
	Workers   int    `yaml:"workers" mapstructure:"workers"`       // parallel workers per stage
	CacheSize int    `yaml:"cache_size" mapstructure:"cache_size"` // watch-mode render cache capacity
}

// CatalogConfig locates the component catalog.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // catalog file (JSON with comments)
}

// ToolsConfig names the external binaries, resolved through PATH when
// relative.
type ToolsConfig struct {
	Lualatex string `yaml:"lualatex" mapstructure:"lualatex"`
	Dvisvgm  string `yaml:"dvisvgm" mapstructure:"dvisvgm"`
	Svgo     string `yaml:"svgo" mapstructure:"svgo"`
}

// RenderConfig overrides the embedded LaTeX stencils.
type RenderConfig struct {
	NodeStencil string `yaml:"node_stencil" mapstructure:"node_stencil"` // path to a node stencil file
	PathStencil string `yaml:"path_stencil" mapstructure:"path_stencil"` // path to a path stencil file
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			Dir:       "build",
			Library:   "symbols.svg",
			Workers:   runtime.NumCPU(),
			CacheSize: 1024,
		},
		Catalog: CatalogConfig{
			Path: "components.jsonc",
		},
		Tools: ToolsConfig{
			Lualatex: "lualatex",
			Dvisvgm:  "dvisvgm",
			Svgo:     "svgo",
		},
	}
}
