package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SYMBOLCONVERT_*)
// 2. Config file (.symbolconvert/config.yml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".symbolconvert")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("SYMBOLCONVERT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("build.dir")
	v.BindEnv("build.library")
	v.BindEnv("build.workers")
	v.BindEnv("build.cache_size")
	v.BindEnv("catalog.path")
	v.BindEnv("tools.lualatex")
	v.BindEnv("tools.dvisvgm")
	v.BindEnv("tools.svgo")
	v.BindEnv("render.node_stencil")
	v.BindEnv("render.path_stencil")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable; defaults plus env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("build.dir", defaults.Build.Dir)
	v.SetDefault("build.library", defaults.Build.Library)
	v.SetDefault("build.workers", defaults.Build.Workers)
	v.SetDefault("build.cache_size", defaults.Build.CacheSize)

	v.SetDefault("catalog.path", defaults.Catalog.Path)

	v.SetDefault("tools.lualatex", defaults.Tools.Lualatex)
	v.SetDefault("tools.dvisvgm", defaults.Tools.Dvisvgm)
	v.SetDefault("tools.svgo", defaults.Tools.Svgo)

	v.SetDefault("render.node_stencil", defaults.Render.NodeStencil)
	v.SetDefault("render.path_stencil", defaults.Render.PathStencil)
}

// LoadConfig is a convenience function that creates a loader and loads
// config from the current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
