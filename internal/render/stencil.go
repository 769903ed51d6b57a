// Package render produces the raw vector drawings the synthesis core
// consumes: it generates one LaTeX file per component variant from a
// stencil, compiles it to DVI, and rasterizes the DVI to SVG. The helper
// lines that encode pin positions are drawn here, one per anchor, colored
// by the pin-index codec.
package render

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Circuit2TikZ/SymbolConvert/internal/catalog"
	"github.com/Circuit2TikZ/SymbolConvert/internal/color"
)

//go:embed stencil_pgf_node.tex
var nodeStencil string

//go:embed stencil_pgf_path.tex
var pathStencil string

// Stencils holds the LaTeX templates variants are generated from. The
// placeholders <nodename>/<pathname> and <anchorLines> are substituted per
// variant.
type Stencils struct {
	Node string
	Path string
}

// DefaultStencils returns the embedded templates.
func DefaultStencils() Stencils {
	return Stencils{Node: nodeStencil, Path: pathStencil}
}

// GeneratedFile is one variant's LaTeX source, ready to be written.
type GeneratedFile struct {
	Basename string // file stem, also the variant's identity
	Content  string
}

// GenerateTexFiles expands every catalog entry into one LaTeX file per
// option combination.
func GenerateTexFiles(cat *catalog.Catalog, stencils Stencils) []GeneratedFile {
	var files []GeneratedFile
	for index, node := range cat.Nodes {
		files = append(files, generateNodeVariants(index, node, stencils.Node)...)
	}
	for index, path := range cat.Paths {
		files = append(files, generatePathVariants(index, path, stencils.Path)...)
	}
	return files
}

// WriteTexFiles materializes generated files under outputDir.
func WriteTexFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(outputDir, f.Basename+".tex")
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

func generateNodeVariants(index int, node *catalog.Node, stencil string) []GeneratedFile {
	var files []GeneratedFile
	for _, active := range catalog.OptionPossibilities(node.Options) {
		basename := catalog.ComponentName(&index, node.Name, true, optionLabels(active))

		nameOptions := node.Name
		if names := optionNames(active); len(names) > 0 {
			nameOptions += ", " + strings.Join(names, ", ")
		}
		if node.Fillable {
			nameOptions += ", fill=green"
		}

		anchors := anchorsForVariant(node.Pins, active)
		content := strings.ReplaceAll(stencil, "<nodename>", nameOptions)
		content = strings.ReplaceAll(content, "<anchorLines>", anchorLines(anchors, "N", false))

		files = append(files, GeneratedFile{Basename: basename, Content: content})
	}
	return files
}

func generatePathVariants(index int, path *catalog.Path, stencil string) []GeneratedFile {
	var files []GeneratedFile
	for _, active := range catalog.OptionPossibilities(path.Options) {
		basename := catalog.ComponentName(&index, path.DrawName, false, optionLabels(active))

		nameOptions := path.EffectiveShapeName()
		for _, name := range optionNames(active) {
			nameOptions += ", circuitikz/" + name
		}
		if path.Fillable {
			nameOptions += ", fill=green"
		}

		endpoints := []string{path.StartAnchor(), path.EndAnchor()}
		anchors := anchorsForVariant(append(endpoints, path.Pins...), active)
		content := strings.ReplaceAll(stencil, "<pathname>", nameOptions)
		content = strings.ReplaceAll(content, "<anchorLines>", anchorLines(anchors, "P", path.Stroke))

		files = append(files, GeneratedFile{Basename: basename, Content: content})
	}
	return files
}

// anchorsForVariant applies the active options' pin adjustments and drops
// "center"; its helper line would coincide with the origin and carry no
// information.
func anchorsForVariant(declared []string, active []catalog.SimpleOption) []string {
	effective := catalog.EffectivePins(declared, active)
	var anchors []string
	for _, a := range effective {
		if a != "center" {
			anchors = append(anchors, a)
		}
	}
	return anchors
}

// anchorLines renders one invisible probe stroke per anchor, colored with
// that anchor's pin-index color, from the component origin to the anchor.
func anchorLines(anchors []string, nodeRef string, stroke bool) string {
	var b strings.Builder
	for i, anchor := range anchors {
		c := color.IndexToColor(i)
		fmt.Fprintf(&b, "\t\t\\draw[draw={rgb,255:red,%d;green,%d;blue,%d}] (0,0) -- (%s.%s);\n",
			c.R, c.G, c.B, nodeRef, anchor)
	}
	if stroke {
		fmt.Fprintf(&b, "\t\t\\draw (%s.b) -- (%s.a);\n", nodeRef, nodeRef)
	}
	return b.String()
}

func optionNames(active []catalog.SimpleOption) []string {
	var names []string
	for _, o := range active {
		names = append(names, o.Name)
	}
	return names
}

func optionLabels(active []catalog.SimpleOption) []string {
	var labels []string
	for _, o := range active {
		labels = append(labels, o.Label())
	}
	return labels
}
