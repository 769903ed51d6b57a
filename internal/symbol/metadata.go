package symbol

import (
	"math"
	"strconv"
	"strings"

	"github.com/Circuit2TikZ/SymbolConvert/internal/catalog"
	"github.com/Circuit2TikZ/SymbolConvert/internal/svg"
)

// The metadata vocabulary emitted here is the contract with the placement
// frontend: componentInformation carries the shared identity, tikzOptions
// the declared option surface, pins the anchor geometry. Coordinates are
// rounded to five decimals and trimmed so re-synthesizing the same drawing
// is byte-identical.

const coordPrecision = 1e5

func formatCoord(f float64) string {
	r := math.Round(f*coordPrecision) / coordPrecision
	if r == 0 {
		// normalize -0
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func coordIsZero(f float64) bool {
	return math.Round(f*coordPrecision) == 0
}

func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// attrWriter builds one element's attribute list, skipping empty values.
type attrWriter struct {
	b *strings.Builder
}

func (w attrWriter) attr(key, value string) {
	if value == "" {
		return
	}
	w.b.WriteByte(' ')
	w.b.WriteString(key)
	w.b.WriteString(`="`)
	w.b.WriteString(xmlEscape(value))
	w.b.WriteByte('"')
}

func renderMetadata(
	b *strings.Builder,
	desc catalog.Description,
	active []catalog.SimpleOption,
	ref svg.Point,
	viewBox string,
	anchors []Anchor,
	textPos svg.Point,
	hasText bool,
) {
	w := attrWriter{b: b}

	b.WriteString("\t<metadata>\n")
	b.WriteString("\t\t<componentInformation")

	switch d := desc.(type) {
	case *catalog.Node:
		w.attr("type", "node")
		w.attr("displayName", d.DisplayName)
		w.attr("tikzName", d.Name)
		w.attr("groupName", d.GroupName)
		w.attr("class", d.Class)
		if d.Fillable {
			w.attr("fillable", "true")
		}
		w.attr("source", d.Source)
	case *catalog.Path:
		w.attr("type", "path")
		w.attr("displayName", d.DisplayName)
		w.attr("tikzName", d.DrawName)
		w.attr("shapeName", d.EffectiveShapeName())
		w.attr("groupName", d.GroupName)
		w.attr("class", d.Class)
		if d.Fillable {
			w.attr("fillable", "true")
		}
		w.attr("source", d.Source)
	}

	w.attr("refX", formatCoord(ref.X))
	w.attr("refY", formatCoord(ref.Y))
	w.attr("viewBox", viewBox)
	b.WriteString(">\n")

	renderOptions(b, desc.BaseOptions(), active)
	renderPins(b, anchors)

	if hasText {
		b.WriteString("\t\t\t<textPosition")
		w.attr("x", formatCoord(textPos.X))
		w.attr("y", formatCoord(textPos.Y))
		b.WriteString("/>\n")
	}

	b.WriteString("\t\t</componentInformation>\n")
	b.WriteString("\t</metadata>\n")
}

func renderOptions(b *strings.Builder, options []catalog.Option, active []catalog.SimpleOption) {
	if len(options) == 0 {
		return
	}
	w := attrWriter{b: b}

	b.WriteString("\t\t\t<tikzOptions>\n")
	for _, opt := range options {
		if opt.IsEnum() {
			b.WriteString("\t\t\t\t<enumOption")
			w.attr("displayName", opt.DisplayName)
			if !opt.AllowsNone() {
				w.attr("selectNone", "false")
			}
			b.WriteString(">\n")
			for _, member := range opt.EnumOptions {
				renderOption(b, "\t\t\t\t\t", member, catalog.IsOptionActive(member.Name, active))
			}
			b.WriteString("\t\t\t\t</enumOption>\n")
			continue
		}
		renderOption(b, "\t\t\t\t", opt.SimpleOption, catalog.IsOptionActive(opt.Name, active))
	}
	b.WriteString("\t\t\t</tikzOptions>\n")
}

func renderOption(b *strings.Builder, indent string, opt catalog.SimpleOption, active bool) {
	w := attrWriter{b: b}

	b.WriteString(indent)
	b.WriteString("<option")

	// Options of the form "key=value" are split so the frontend can edit
	// the value; plain flags only carry their key.
	key, value, _ := strings.Cut(opt.Name, "=")
	w.attr("key", key)
	w.attr("value", value)
	w.attr("displayName", opt.DisplayName)
	if active {
		w.attr("active", "true")
	}
	b.WriteString("/>\n")
}

func renderPins(b *strings.Builder, anchors []Anchor) {
	if len(anchors) == 0 {
		return
	}
	w := attrWriter{b: b}

	b.WriteString("\t\t\t<pins>\n")
	for _, a := range anchors {
		b.WriteString("\t\t\t\t<pin")
		w.attr("anchorName", a.Name)
		if !coordIsZero(a.Point.X) {
			w.attr("x", formatCoord(a.Point.X))
		}
		if !coordIsZero(a.Point.Y) {
			w.attr("y", formatCoord(a.Point.Y))
		}
		if a.IsDefault {
			w.attr("isDefault", "true")
		}
		b.WriteString("/>\n")
	}
	b.WriteString("\t\t\t</pins>\n")
}
