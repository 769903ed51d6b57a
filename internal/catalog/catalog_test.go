package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for catalog package:
// - Parse accepts jsonc (comments, trailing commas) and validates
// - Validate rejects missing names, nameless options, malformed enum
//   groups and duplicate pins
// - OptionPossibilities expands plain options, enum groups and selectNone
// - EffectivePins applies addPins/subPins without touching the base slice
// - ComponentName and ParseFilename agree with each other

const sampleCatalog = `{
	// ground symbols
	"nodes": [
		{
			"name": "ground",
			"displayName": "Ground",
			"groupName": "Monopoles",
			"pins": ["center"],
		},
		{
			"name": "nmos",
			"pins": ["G", "D", "S"],
			"options": [
				{"name": "bodydiode", "addPins": ["diode"]},
			],
		},
	],
	"path": [
		{
			"drawName": "R",
			"displayName": "Resistor",
			"options": [
				{
					"displayName": "style",
					"enumOptions": [
						{"name": "european"},
						{"name": "american"},
					],
				},
			],
		},
	],
}`

func TestParse_Jsonc(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	require.Len(t, cat.Nodes, 2)
	require.Len(t, cat.Paths, 1)

	assert.Equal(t, "ground", cat.Nodes[0].TikzName())
	assert.Equal(t, []string{"G", "D", "S"}, cat.Nodes[1].BasePins())
	assert.Equal(t, "R", cat.Paths[0].TikzName())
	assert.True(t, cat.Paths[0].Options[0].IsEnum())
}

func TestLookup(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	desc, err := cat.Lookup(FileDescriptor{Index: 1, IsNode: true})
	require.NoError(t, err)
	assert.Equal(t, "nmos", desc.TikzName())

	desc, err = cat.Lookup(FileDescriptor{Index: 0, IsNode: false})
	require.NoError(t, err)
	assert.Equal(t, "R", desc.TikzName())

	_, err = cat.Lookup(FileDescriptor{Index: 7, IsNode: true})
	assert.Error(t, err)
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name string
		cat  *Catalog
		want string
	}{
		{
			"node without name",
			&Catalog{Nodes: []*Node{{}}},
			"name is required",
		},
		{
			"path without drawName",
			&Catalog{Paths: []*Path{{}}},
			"drawName is required",
		},
		{
			"enum without displayName",
			&Catalog{Nodes: []*Node{{
				Name:    "x",
				Options: []Option{{EnumOptions: []SimpleOption{{Name: "a"}}}},
			}}},
			"requires displayName",
		},
		{
			"duplicate pins",
			&Catalog{Nodes: []*Node{{Name: "x", Pins: []string{"A", "A"}}}},
			`duplicate pin "A"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cat)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOptionPossibilities_Plain(t *testing.T) {
	opts := []Option{{SimpleOption: SimpleOption{Name: "a"}}}

	got := OptionPossibilities(opts)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0][0].Name)
	assert.Empty(t, got[1])
}

func TestOptionPossibilities_TwoPlain(t *testing.T) {
	opts := []Option{
		{SimpleOption: SimpleOption{Name: "a"}},
		{SimpleOption: SimpleOption{Name: "b"}},
	}

	got := OptionPossibilities(opts)
	require.Len(t, got, 4)

	names := func(row []SimpleOption) []string {
		var out []string
		for _, o := range row {
			out = append(out, o.Name)
		}
		return out
	}
	assert.Equal(t, []string{"a", "b"}, names(got[0]))
	assert.Equal(t, []string{"b"}, names(got[1]))
	assert.Equal(t, []string{"a"}, names(got[2]))
	assert.Empty(t, got[3])
}

func TestOptionPossibilities_Enum(t *testing.T) {
	opts := []Option{{
		SimpleOption: SimpleOption{DisplayName: "style"},
		EnumOptions:  []SimpleOption{{Name: "eu"}, {Name: "us"}},
	}}

	got := OptionPossibilities(opts)
	// one per member plus the unselected row
	require.Len(t, got, 3)
	assert.Equal(t, "eu", got[0][0].Name)
	assert.Equal(t, "us", got[1][0].Name)
	assert.Empty(t, got[2])
}

func TestOptionPossibilities_EnumNoSelectNone(t *testing.T) {
	no := false
	opts := []Option{{
		SimpleOption: SimpleOption{DisplayName: "style"},
		EnumOptions:  []SimpleOption{{Name: "eu"}, {Name: "us"}},
		SelectNone:   &no,
	}}

	got := OptionPossibilities(opts)
	require.Len(t, got, 2)
}

func TestEffectivePins(t *testing.T) {
	declared := []string{"G", "D", "S"}
	active := []SimpleOption{{Name: "bodydiode", AddPins: []string{"diode"}, SubPins: []string{"S"}}}

	pins := EffectivePins(declared, active)
	assert.Equal(t, []string{"G", "D", "diode"}, pins)
	// base slice untouched
	assert.Equal(t, []string{"G", "D", "S"}, declared)
}

func TestEffectiveDescription_FreshCopy(t *testing.T) {
	node := &Node{Name: "nmos", Pins: []string{"G", "D", "S"}}
	active := []SimpleOption{{Name: "x", AddPins: []string{"extra"}}}

	derived := EffectiveDescription(node, active)
	assert.Equal(t, []string{"G", "D", "S", "extra"}, derived.BasePins())
	assert.Equal(t, []string{"G", "D", "S"}, node.Pins)
}

func TestComponentName(t *testing.T) {
	one := 1
	two := 2

	assert.Equal(t, "node_001_id_option1-option2", ComponentName(&one, "id", true, []string{"option1", "option2"}))
	assert.Equal(t, "path_002_id_option1", ComponentName(&two, "id", false, []string{"option1"}))
	assert.Equal(t, "node_id", ComponentName(nil, "id", true, nil))
	// non-word characters become dashes per part
	assert.Equal(t, "node_full-ground", ComponentName(nil, "full ground", true, nil))
}

func TestParseFilename(t *testing.T) {
	fd, err := ParseFilename("node_001_id_option1-option2")
	require.NoError(t, err)
	assert.Equal(t, FileDescriptor{Index: 1, IsNode: true}, fd)

	fd, err = ParseFilename("PATH_042_R")
	require.NoError(t, err)
	assert.Equal(t, FileDescriptor{Index: 42, IsNode: false}, fd)

	_, err = ParseFilename("symbols")
	assert.Error(t, err)

	_, err = ParseFilename("node_1_id")
	assert.Error(t, err)
}

func TestIsOptionActive(t *testing.T) {
	active := []SimpleOption{{Name: "a"}}
	assert.True(t, IsOptionActive("a", active))
	assert.False(t, IsOptionActive("b", active))
}
