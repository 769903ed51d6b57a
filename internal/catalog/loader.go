package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Load reads and validates a catalog file. The file is JSON with comments
// and trailing commas, so it is normalized to plain JSON before decoding.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog content.
func Parse(data []byte) (*Catalog, error) {
	cat := &Catalog{}
	if err := json.Unmarshal(jsonc.ToJSON(data), cat); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := Validate(cat); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}

// Lookup returns the description a rendered file belongs to.
func (c *Catalog) Lookup(desc FileDescriptor) (Description, error) {
	if desc.IsNode {
		if desc.Index < 0 || desc.Index >= len(c.Nodes) {
			return nil, fmt.Errorf("node index %d out of range (%d nodes)", desc.Index, len(c.Nodes))
		}
		return c.Nodes[desc.Index], nil
	}
	if desc.Index < 0 || desc.Index >= len(c.Paths) {
		return nil, fmt.Errorf("path index %d out of range (%d paths)", desc.Index, len(c.Paths))
	}
	return c.Paths[desc.Index], nil
}
