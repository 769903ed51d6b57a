package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Circuit2TikZ/SymbolConvert/internal/color"
)

// Test Plan for svg package:
// - ExtractTagAttributes handles bare, double- and single-quoted values,
//   lowercases keys, preserves order, skips malformed fragments
// - ExtractOuterAttributes finds the first <svg> tag, errors when absent
// - ExtractInnerBody returns the text between container tags, trims one
//   leading blank line, errors when the pair cannot be matched
// - ParseLineSegment covers all six endpoint commands, abs and rel
// - ParseLineSegment rejects wrong command counts, bad start commands,
//   unsupported letters, missing stroke and non-finite results
// - ResolveReferencePoint picks the most-shared endpoint, merges nearby
//   points, breaks ties toward the first bucket

func TestExtractTagAttributes(t *testing.T) {
	attrs := ExtractTagAttributes(`Fill="none" stroke='rgb(0,153,153)' d=M0,0 stray`)

	require.Len(t, attrs, 3)
	assert.Equal(t, Attribute{Key: "fill", Value: "none"}, attrs[0])
	assert.Equal(t, Attribute{Key: "stroke", Value: "rgb(0,153,153)"}, attrs[1])
	assert.Equal(t, Attribute{Key: "d", Value: "M0,0"}, attrs[2])

	v, ok := attrs.Get("stroke")
	assert.True(t, ok)
	assert.Equal(t, "rgb(0,153,153)", v)

	_, ok = attrs.Get("stray")
	assert.False(t, ok)
}

func TestExtractOuterAttributes(t *testing.T) {
	doc := `<?xml version="1.0"?>
<svg viewBox="0 0 10 10" width="10">
<path d="M 0,0 L 1,1"/>
</svg>`

	attrs, err := ExtractOuterAttributes(doc)
	require.NoError(t, err)

	vb, ok := attrs.Get("viewbox")
	assert.True(t, ok)
	assert.Equal(t, "0 0 10 10", vb)

	_, err = ExtractOuterAttributes(`<html><body/></html>`)
	assert.ErrorIs(t, err, ErrContainerTagNotFound)
}

func TestExtractInnerBody(t *testing.T) {
	doc := "<svg viewBox=\"0 0 4 4\">\n<path d=\"M 0,0 H 1\"/>\n<g/>\n</svg>"

	body, err := ExtractInnerBody(doc)
	require.NoError(t, err)
	assert.Equal(t, "<path d=\"M 0,0 H 1\"/>\n<g/>\n", body)

	_, err = ExtractInnerBody(`<svg viewBox="0 0 4 4">`)
	assert.ErrorIs(t, err, ErrContainerBodyNotFound)
}

func TestExtractInnerBody_CaseInsensitive(t *testing.T) {
	body, err := ExtractInnerBody(`<SVG><rect/></SVG>`)
	require.NoError(t, err)
	assert.Equal(t, "<rect/>", body)
}

func lineParser() *color.Parser {
	return color.NewParser(color.DefaultNames())
}

func TestParseLineSegment_Commands(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want LineSegment
	}{
		{"absolute line", "M 0,0 L 3,4", LineSegment{End: Point{3, 4}}},
		{"relative line", "M 1,1 l 2,3", LineSegment{Start: Point{1, 1}, End: Point{3, 4}}},
		{"absolute horizontal", "M 0,0 H 5", LineSegment{End: Point{5, 0}}},
		{"relative horizontal", "M 1,2 h 5", LineSegment{Start: Point{1, 2}, End: Point{6, 2}}},
		{"absolute vertical", "M 0,0 V 5", LineSegment{End: Point{0, 5}}},
		{"relative vertical", "M 1,2 v -5", LineSegment{Start: Point{1, 2}, End: Point{1, -3}}},
		{"packed operands", "M0,0l-3-4", LineSegment{End: Point{-3, -4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			element := `<path stroke="rgb(0,153,153)" d="` + tt.d + `" fill="none"/>`
			seg, err := ParseLineSegment(element, lineParser())
			require.NoError(t, err)

			tt.want.Color = color.RGB{R: 0, G: 153, B: 153}
			assert.Equal(t, tt.want, seg)
		})
	}
}

func TestParseLineSegment_Errors(t *testing.T) {
	tests := []struct {
		name    string
		element string
		wantErr error
	}{
		{
			"three commands",
			`<path stroke="red" d="M 0,0 L 1,1 L 2,2"/>`,
			ErrUnexpectedCommandCount,
		},
		{
			"single command",
			`<path stroke="red" d="M 0,0"/>`,
			ErrUnexpectedCommandCount,
		},
		{
			"implicit extra command",
			`<path stroke="red" d="M 0,0 1,1"/>`,
			ErrUnexpectedCommandCount,
		},
		{
			"starts with line",
			`<path stroke="red" d="L 0,0 L 1,1"/>`,
			ErrMalformedStartCommand,
		},
		{
			"move with one operand",
			`<path stroke="red" d="M 0 L 1,1"/>`,
			ErrMalformedStartCommand,
		},
		{
			"curve endpoint",
			`<path stroke="red" d="M 0,0 C 1,1 2,2 3,3"/>`,
			ErrUnsupportedCommand,
		},
		{
			"overflowing coordinate",
			`<path stroke="red" d="M 0,0 L 1e999,0"/>`,
			ErrNonFiniteCoordinate,
		},
		{
			"no stroke",
			`<path d="M 0,0 L 1,1"/>`,
			ErrMissingStroke,
		},
		{
			"unparsable stroke",
			`<path stroke="chartreuse-ish" d="M 0,0 L 1,1"/>`,
			color.ErrMalformedColor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLineSegment(tt.element, lineParser())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func seg(x1, y1, x2, y2 float64) LineSegment {
	return LineSegment{Start: Point{x1, y1}, End: Point{x2, y2}}
}

func TestResolveReferencePoint(t *testing.T) {
	// {0,0} appears three times, {1,1} once.
	segments := []LineSegment{
		seg(0, 0, 2, 0),
		seg(0, 0, 0, 2),
		seg(1, 1, 0, 0),
	}

	p, err := ResolveReferencePoint(segments)
	require.NoError(t, err)
	assert.Equal(t, Point{0, 0}, p)
}

func TestResolveReferencePoint_MergesNearbyPoints(t *testing.T) {
	// Endpoints within epsilon count into the same bucket.
	segments := []LineSegment{
		seg(0, 0, 2, 0),
		seg(1e-9, -1e-9, 0, 2),
	}

	p, err := ResolveReferencePoint(segments)
	require.NoError(t, err)
	assert.Equal(t, Point{0, 0}, p)
}

func TestResolveReferencePoint_TieBreaksToFirstBucket(t *testing.T) {
	// Both {0,0} and {5,5} appear twice; the first encountered wins.
	segments := []LineSegment{
		seg(0, 0, 5, 5),
		seg(0, 0, 5, 5),
	}

	p, err := ResolveReferencePoint(segments)
	require.NoError(t, err)
	assert.Equal(t, Point{0, 0}, p)
}

func TestResolveReferencePoint_Empty(t *testing.T) {
	_, err := ResolveReferencePoint(nil)
	assert.ErrorIs(t, err, ErrNoSegments)
}

func TestPointClose(t *testing.T) {
	assert.True(t, Point{1, 1}.Close(Point{1 + 1e-7, 1 - 1e-7}, DefaultEpsilon))
	assert.False(t, Point{1, 1}.Close(Point{1.001, 1}, DefaultEpsilon))
}
