package pipeline

import (
	"fmt"
	"os"

	"github.com/maypok86/otter"
)

// RenderCache memoizes rasterized SVG documents across watch-mode rebuilds.
// Entries are keyed by path and modification time, so an edited DVI misses
// the cache and drops its stale sibling entry naturally under pressure.
type RenderCache struct {
	cache otter.Cache[string, string]
}

// NewRenderCache creates a cache holding up to capacity documents.
func NewRenderCache(capacity int) (*RenderCache, error) {
	cache, err := otter.MustBuilder[string, string](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build render cache: %w", err)
	}
	return &RenderCache{cache: cache}, nil
}

// Get returns the cached document for path at its current mtime.
func (c *RenderCache) Get(path string) (string, bool) {
	key, err := cacheKey(path)
	if err != nil {
		return "", false
	}
	return c.cache.Get(key)
}

// Put stores the document for path at its current mtime.
func (c *RenderCache) Put(path, document string) {
	key, err := cacheKey(path)
	if err != nil {
		return
	}
	c.cache.Set(key, document)
}

// Close releases the cache's background resources.
func (c *RenderCache) Close() {
	c.cache.Close()
}

func cacheKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d", path, info.ModTime().UnixNano()), nil
}
