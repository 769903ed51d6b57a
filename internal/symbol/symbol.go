// Package symbol turns one rendered drawing plus its catalog description
// into a self-describing symbol: helper lines are decoded into pin
// positions, stripped from the visible geometry, and replaced by a
// structured metadata block.
package symbol

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Circuit2TikZ/SymbolConvert/internal/catalog"
	"github.com/Circuit2TikZ/SymbolConvert/internal/color"
	"github.com/Circuit2TikZ/SymbolConvert/internal/svg"
)

var (
	// ErrMissingViewBox is returned when the drawing's container has no
	// viewBox attribute; pin coordinates would be meaningless without it.
	ErrMissingViewBox = errors.New("drawing has no viewBox")

	// ErrUnmatchedPinColor is returned when a helper line's color decodes to
	// no declared pin anchor. The catalog and the rendered helper lines have
	// diverged; emitting a symbol would bake the mismatch into the library.
	ErrUnmatchedPinColor = errors.New("no pin anchor matches helper line color")
)

// Anchor is one named attachment point, positioned relative to the
// component's reference point once a matching helper line is found.
type Anchor struct {
	Name      string
	Point     svg.Point
	Set       bool
	IsDefault bool
}

// Diagnostic is one recoverable anomaly observed during synthesis. The
// pipeline logs these; tests assert on them directly instead of parsing log
// output.
type Diagnostic struct {
	Component string
	Message   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Component, d.Message)
}

// Request carries everything one synthesis call needs. Each call reads its
// request and allocates fresh state, so calls may run concurrently.
type Request struct {
	// Drawing is the full rendered SVG document.
	Drawing string
	// Description is the per-variant effective description (pins already
	// adjusted for the active options).
	Description catalog.Description
	// ActiveOptions is the option combination this variant was rendered with.
	ActiveOptions []catalog.SimpleOption
	// ID overrides the symbol id. When empty the id is derived from the
	// component name and its base option labels.
	ID string
}

// Synthesizer converts drawings into symbols. It is stateless apart from
// the shared read-only color parser.
type Synthesizer struct {
	colors *color.Parser
}

func NewSynthesizer(colors *color.Parser) *Synthesizer {
	return &Synthesizer{colors: colors}
}

var (
	pathLineRe = regexp.MustCompile(`(?i)^<path\s+(.{10,}?)\s*/>$`)
	fillableRe = regexp.MustCompile(`fill=["']#0f0["']`)
)

// Synthesize produces one symbol document. Fatal conditions (missing
// viewBox, unmatched pin color) return an error and no symbol; everything
// else degrades to a diagnostic plus a best-effort default.
func (s *Synthesizer) Synthesize(req Request) (string, []Diagnostic, error) {
	desc := req.Description
	name := desc.TikzName()
	var diags []Diagnostic

	outer, err := svg.ExtractOuterAttributes(req.Drawing)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", name, err)
	}
	viewBox, ok := outer.Get("viewbox")
	if !ok || viewBox == "" {
		return "", nil, fmt.Errorf("%s: %w", name, ErrMissingViewBox)
	}

	body, err := svg.ExtractInnerBody(req.Drawing)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", name, err)
	}

	// Fillable components are rendered with a green probe fill; rewrite it
	// into a class the frontend can restyle.
	body = fillableRe.ReplaceAllString(body, `class="fillable" fill="none"`)

	body, lines := s.collectHelperLines(body)

	refPoint := svg.Point{}
	if len(lines) == 0 {
		diags = append(diags, Diagnostic{Component: name, Message: "no helper lines found, reference point defaults to origin"})
	} else {
		refPoint, err = svg.ResolveReferencePoint(lines)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	anchors := declaredAnchors(desc)

	for _, line := range lines {
		if color.IsReserved(line.Color) {
			continue
		}
		line, ok := normalizeDirection(line, refPoint)
		if !ok {
			diags = append(diags, Diagnostic{
				Component: name,
				Message:   fmt.Sprintf("helper line %s -- %s (%s) touches the reference point at neither end, dropped", line.Start, line.End, line.Color),
			})
			continue
		}

		index, err := color.ColorToIndex(line.Color)
		if err != nil || index >= len(anchors) {
			return "", nil, fmt.Errorf("%s: %w: %s", name, ErrUnmatchedPinColor, line.Color)
		}
		anchors[index].Point = line.End.Sub(refPoint)
		anchors[index].Set = true
	}

	// "center" is excluded from helper-line assignment but components may
	// request it back as an explicit origin pin.
	if containsPin(desc.BasePins(), "center") {
		anchors = append(anchors, Anchor{Name: "center", Set: true})
	}

	for i := range anchors {
		if !anchors[i].Set {
			anchors[i].Point = svg.Point{}
			anchors[i].Set = true
			diags = append(diags, Diagnostic{
				Component: name,
				Message:   fmt.Sprintf("pin %q has no helper line, defaulting to the reference point", anchors[i].Name),
			})
		}
	}

	// Exactly the first anchor sitting at the origin becomes the default.
	for i := range anchors {
		if anchors[i].Point.Close(svg.Point{}, svg.DefaultEpsilon) {
			anchors[i].IsDefault = true
			break
		}
	}

	textPos, hasText := textPosition(lines, refPoint)

	id := req.ID
	if id == "" {
		id = deriveID(desc)
	}

	var b strings.Builder
	b.WriteString(`<symbol id="` + xmlEscape(id) + "\">\n")
	renderMetadata(&b, desc, req.ActiveOptions, refPoint, viewBox, anchors, textPos, hasText)
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("</symbol>\n")

	return b.String(), diags, nil
}

// collectHelperLines scans the body line by line. A line is a helper
// candidate only when it is an entire self-closed path element with a
// non-trivial attribute list and no effective fill; candidates that fail to
// parse as a line segment, or whose stroke is pure black, stay visible.
func (s *Synthesizer) collectHelperLines(body string) (string, []svg.LineSegment) {
	var (
		kept     []string
		segments []svg.LineSegment
	)
	for _, raw := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(raw)
		m := pathLineRe.FindStringSubmatch(trimmed)
		if m == nil {
			kept = append(kept, raw)
			continue
		}

		attrs := svg.ExtractTagAttributes(m[1])
		if fill, ok := attrs.Get("fill"); ok && fill != "" && fill != "none" {
			kept = append(kept, raw)
			continue
		}

		seg, err := svg.ParseLineSegment(trimmed, s.colors)
		if err != nil || seg.Color == color.Black {
			kept = append(kept, raw)
			continue
		}
		segments = append(segments, seg)
	}
	return strings.Join(kept, "\n"), segments
}

// declaredAnchors builds the pin anchor list for one variant: the declared
// pins minus "center", with synthetic START/END endpoints prepended for
// path-style components.
func declaredAnchors(desc catalog.Description) []Anchor {
	var names []string
	if _, isPath := desc.(*catalog.Path); isPath {
		names = append(names, "START", "END")
	}
	for _, pin := range desc.BasePins() {
		if pin != "center" {
			names = append(names, pin)
		}
	}

	anchors := make([]Anchor, len(names))
	for i, n := range names {
		anchors[i] = Anchor{Name: n}
	}
	return anchors
}

// normalizeDirection orients a helper line so its start is the endpoint at
// the reference point. Lines touching the reference point at neither end
// cannot encode a pin offset and are reported to the caller.
func normalizeDirection(line svg.LineSegment, ref svg.Point) (svg.LineSegment, bool) {
	if line.Start.Close(ref, svg.DefaultEpsilon) {
		return line, true
	}
	if line.End.Close(ref, svg.DefaultEpsilon) {
		line.End = line.Start
		line.Start = ref
		return line, true
	}
	return line, false
}

func textPosition(lines []svg.LineSegment, ref svg.Point) (svg.Point, bool) {
	for _, line := range lines {
		if line.Color == color.TextAnchor {
			return line.End.Sub(ref), true
		}
	}
	return svg.Point{}, false
}

func containsPin(pins []string, name string) bool {
	for _, p := range pins {
		if p == name {
			return true
		}
	}
	return false
}

// deriveID builds a fallback symbol id from the component name and its base
// (unfiltered) option labels.
func deriveID(desc catalog.Description) string {
	var labels []string
	for _, opt := range desc.BaseOptions() {
		labels = append(labels, opt.Label())
	}
	_, isNode := desc.(*catalog.Node)
	return catalog.ComponentName(nil, desc.TikzName(), isNode, labels)
}
