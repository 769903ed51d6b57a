package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyBuildDir indicates a missing build directory
	ErrEmptyBuildDir = errors.New("empty build dir")

	// ErrEmptyLibraryPath indicates a missing library output path
	ErrEmptyLibraryPath = errors.New("empty library path")

	// ErrInvalidWorkers indicates a non-positive worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidCacheSize indicates a non-positive cache capacity
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrEmptyCatalogPath indicates a missing catalog path
	ErrEmptyCatalogPath = errors.New("empty catalog path")

	// ErrEmptyToolBinary indicates a missing tool binary name
	ErrEmptyToolBinary = errors.New("empty tool binary")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Build.Dir == "" {
		errs = append(errs, ErrEmptyBuildDir)
	}
	if cfg.Build.Library == "" {
		errs = append(errs, ErrEmptyLibraryPath)
	}
	if cfg.Build.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidWorkers, cfg.Build.Workers))
	}
	if cfg.Build.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidCacheSize, cfg.Build.CacheSize))
	}

	if cfg.Catalog.Path == "" {
		errs = append(errs, ErrEmptyCatalogPath)
	}

	for name, binary := range map[string]string{
		"lualatex": cfg.Tools.Lualatex,
		"dvisvgm":  cfg.Tools.Dvisvgm,
		"svgo":     cfg.Tools.Svgo,
	} {
		if binary == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrEmptyToolBinary, name))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple validation errors into one.
func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}

	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Error()
	}
	return fmt.Errorf("multiple validation errors: %s", strings.Join(messages, "; "))
}
