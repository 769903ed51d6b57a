package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the catalog against its schema constraints. All violations
// are collected and returned together so a broken catalog can be fixed in
// one pass.
func Validate(c *Catalog) error {
	var errs []string

	for i, node := range c.Nodes {
		if node == nil {
			errs = append(errs, fmt.Sprintf("nodes[%d]: null entry", i))
			continue
		}
		if node.Name == "" {
			errs = append(errs, fmt.Sprintf("nodes[%d]: name is required", i))
		}
		errs = append(errs, validateOptions(fmt.Sprintf("nodes[%d]", i), node.Options)...)
		errs = append(errs, validatePins(fmt.Sprintf("nodes[%d]", i), node.Pins)...)
	}

	for i, path := range c.Paths {
		if path == nil {
			errs = append(errs, fmt.Sprintf("path[%d]: null entry", i))
			continue
		}
		if path.DrawName == "" {
			errs = append(errs, fmt.Sprintf("path[%d]: drawName is required", i))
		}
		errs = append(errs, validateOptions(fmt.Sprintf("path[%d]", i), path.Options)...)
		errs = append(errs, validatePins(fmt.Sprintf("path[%d]", i), path.Pins)...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateOptions(where string, options []Option) []string {
	var errs []string
	for i, opt := range options {
		prefix := fmt.Sprintf("%s.options[%d]", where, i)
		if opt.IsEnum() {
			if opt.DisplayName == "" {
				errs = append(errs, prefix+": enum group requires displayName")
			}
			if opt.Name != "" {
				errs = append(errs, prefix+": enum group must not carry a name")
			}
			for j, member := range opt.EnumOptions {
				if member.Name == "" {
					errs = append(errs, fmt.Sprintf("%s.enumOptions[%d]: name is required", prefix, j))
				}
			}
		} else if opt.Name == "" {
			errs = append(errs, prefix+": name is required")
		}
	}
	return errs
}

func validatePins(where string, pins []string) []string {
	seen := make(map[string]bool, len(pins))
	var errs []string
	for _, pin := range pins {
		if seen[pin] {
			errs = append(errs, fmt.Sprintf("%s: duplicate pin %q", where, pin))
		}
		seen[pin] = true
	}
	return errs
}
