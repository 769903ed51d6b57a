package library

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Circuit2TikZ/SymbolConvert/internal/catalog"
	"github.com/Circuit2TikZ/SymbolConvert/internal/color"
	"github.com/Circuit2TikZ/SymbolConvert/internal/symbol"
)

// Test Plan for library package:
// - two symbols sharing a tikzName merge into one component with two
//   variants, each keeping its own geometry and active options
// - shared attributes (displayName, groupName) appear once, on the shell
// - per-symbol metadata blocks are gone from the merged document
// - symbols with different tikzNames become separate components, in
//   first-appearance order
// - empty input is an error

func renderSymbol(t *testing.T, name, id string, active []catalog.SimpleOption, pinLine string) string {
	t.Helper()

	desc := &catalog.Node{
		Name:        name,
		DisplayName: "Resistor",
		GroupName:   "Passives",
		Pins:        []string{"A"},
		Options: []catalog.Option{
			{SimpleOption: catalog.SimpleOption{Name: "variant2"}},
		},
	}

	s := symbol.NewSynthesizer(color.NewParser(color.DefaultNames()))
	out, _, err := s.Synthesize(symbol.Request{
		Drawing:       "<svg viewBox=\"0 0 10 10\">\n" + pinLine + "\n</svg>",
		Description:   desc,
		ActiveOptions: active,
		ID:            id,
	})
	require.NoError(t, err)
	return out
}

func TestMerge_GroupsVariantsByName(t *testing.T) {
	c := color.IndexToColor(0).String()
	plain := renderSymbol(t, "res", "node_000_res", nil,
		`<path fill="none" stroke="`+c+`" d="M 0,0 L 2,0"/>`)
	styled := renderSymbol(t, "res", "node_000_res_variant2",
		[]catalog.SimpleOption{{Name: "variant2"}},
		`<path fill="none" stroke="`+c+`" d="M 0,0 L 4,0"/>`)

	merged, err := Merge([]string{plain, styled})
	require.NoError(t, err)

	// one component, two variants
	assert.Equal(t, 1, strings.Count(merged, "<component"), merged)
	assert.Equal(t, 2, strings.Count(merged, "<variant"))
	assert.Contains(t, merged, `<variant for="node_000_res"`)
	assert.Contains(t, merged, `<variant for="node_000_res_variant2"`)

	// variants keep their own pin geometry
	assert.Contains(t, merged, `<pin anchorName="A" x="2"/>`)
	assert.Contains(t, merged, `<pin anchorName="A" x="4"/>`)

	// the active option moved onto its variant, cleared of flags
	assert.Contains(t, merged, "\t\t\t\t\t"+`<option key="variant2"/>`)

	// shared attributes appear exactly once
	assert.Equal(t, 1, strings.Count(merged, `displayName="Resistor"`))
	assert.Equal(t, 1, strings.Count(merged, `groupName="Passives"`))

	// per-symbol metadata is gone; only the library block remains
	assert.Equal(t, 1, strings.Count(merged, "<metadata>"))

	// visible symbol bodies survive
	assert.Equal(t, 2, strings.Count(merged, "<symbol"))
}

func TestMerge_SeparateComponentsKeepOrder(t *testing.T) {
	c := color.IndexToColor(0).String()
	res := renderSymbol(t, "res", "node_000_res", nil,
		`<path fill="none" stroke="`+c+`" d="M 0,0 L 2,0"/>`)
	cap := renderSymbol(t, "cap", "node_001_cap", nil,
		`<path fill="none" stroke="`+c+`" d="M 0,0 L 3,0"/>`)

	merged, err := Merge([]string{res, cap})
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(merged, "<component"))
	assert.Less(t,
		strings.Index(merged, `tikzName="res"`),
		strings.Index(merged, `tikzName="cap"`),
		"components must keep first-appearance order")
}

func TestMerge_VariantCarriesNonzeroReference(t *testing.T) {
	c0 := color.IndexToColor(0).String()
	c1 := color.IndexToColor(1).String()
	// two pin lines anchored at (1,1) put the reference point off origin
	doc := renderSymbolWithPins(t, "res", "node_000_res",
		`<path fill="none" stroke="`+c0+`" d="M 1,1 L 3,1"/>`+"\n"+
			`<path fill="none" stroke="`+c1+`" d="M 1,1 L 1,4"/>`)

	merged, err := Merge([]string{doc})
	require.NoError(t, err)
	assert.Contains(t, merged, `refX="1" refY="1"`)
}

func renderSymbolWithPins(t *testing.T, name, id, body string) string {
	t.Helper()

	s := symbol.NewSynthesizer(color.NewParser(color.DefaultNames()))
	out, _, err := s.Synthesize(symbol.Request{
		Drawing:     "<svg viewBox=\"0 0 10 10\">\n" + body + "\n</svg>",
		Description: &catalog.Node{Name: name, Pins: []string{"A", "B"}},
		ID:          id,
	})
	require.NoError(t, err)
	return out
}

func TestMerge_Empty(t *testing.T) {
	_, err := Merge(nil)
	assert.ErrorIs(t, err, ErrNoSymbols)
}
