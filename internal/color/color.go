// Package color implements the RGB color handling used by the symbol
// pipeline: parsing of stroke colors as they appear in rendered SVG output,
// and the bit-packed pin-index encoding that tags helper lines.
package color

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// RGB is an exact 8-bit-per-channel color. Equality is plain struct
// equality; no color-space math happens anywhere in the pipeline.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Reserved protocol colors. Helper lines carrying these colors communicate
// something other than a pin position and must never be treated as pin lines.
var (
	// ZeroMarkers mark the local origin of a drawing.
	ZeroMarkers = [2]RGB{{R: 255, G: 255, B: 0}, {R: 0, G: 255, B: 255}}

	// TextAnchor marks the text placement point of a component.
	TextAnchor = RGB{R: 255, G: 0, B: 0}

	// LegacyTextAnchor is an older text marker still excluded from pin
	// lines, but it never yields a text position.
	LegacyTextAnchor = RGB{R: 255, G: 0, B: 155}

	// Black strokes are ordinary visible geometry, never helper lines.
	Black = RGB{}
)

// IsReserved reports whether c is one of the non-pin marker colors.
func IsReserved(c RGB) bool {
	return c == ZeroMarkers[0] || c == ZeroMarkers[1] || c == TextAnchor || c == LegacyTextAnchor
}

// ErrMalformedColor is returned when a color string matches none of the
// recognized forms (named, rgb(...), #rgb, #rrggbb).
var ErrMalformedColor = errors.New("malformed color")

var (
	rgbFuncRe = regexp.MustCompile(`^rgb\(\s*(\d+)\s*[, ]\s*(\d+)\s*[, ]\s*(\d+)\s*\)$`)
	hexRe     = regexp.MustCompile(`^#[0-9a-fA-F]+$`)
)

// Parser resolves color strings against an explicit name table. The table is
// read-only after construction, so one Parser may be shared across
// concurrent synthesis calls.
type Parser struct {
	names map[string]RGB
}

// NewParser returns a parser backed by the given name table. Lookup is exact
// and case-sensitive. Pass DefaultNames() for the standard SVG vocabulary.
func NewParser(names map[string]RGB) *Parser {
	return &Parser{names: names}
}

// Parse resolves a color string. Recognized forms, tried in order: a name
// from the table, "rgb(n,n,n)" or "rgb(n n n)", "#rgb" (each digit
// duplicated) and "#rrggbb". Anything else fails with ErrMalformedColor.
func (p *Parser) Parse(s string) (RGB, error) {
	if c, ok := p.names[s]; ok {
		return c, nil
	}

	if m := rgbFuncRe.FindStringSubmatch(s); m != nil {
		return channelsToRGB(m[1], m[2], m[3], 10, s)
	}

	if hexRe.MatchString(s) {
		switch len(s) {
		case 4:
			return channelsToRGB(
				string(s[1])+string(s[1]),
				string(s[2])+string(s[2]),
				string(s[3])+string(s[3]),
				16, s)
		case 7:
			return channelsToRGB(s[1:3], s[3:5], s[5:7], 16, s)
		}
	}

	return RGB{}, fmt.Errorf("%w: %q", ErrMalformedColor, s)
}

func channelsToRGB(r, g, b string, base int, orig string) (RGB, error) {
	var out [3]uint8
	for i, s := range [3]string{r, g, b} {
		v, err := strconv.ParseInt(s, base, 0)
		if err != nil || v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("%w: %q", ErrMalformedColor, orig)
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}
