package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Circuit2TikZ/SymbolConvert/internal/catalog"
)

// Test Plan for render package:
// - stencil expansion produces one file per option combination with the
//   expected names
// - helper lines carry the pin-index colors in declaration order, skipping
//   "center"
// - path variants use the shape name, circuitikz/ option prefixes and the
//   stroke line
// - fillable components get fill=green appended
// - WriteTexFiles materializes files on disk
// - viewBoxOrigin parses and rejects viewBox attributes

func TestGenerateTexFiles_NodeVariants(t *testing.T) {
	cat := &catalog.Catalog{
		Nodes: []*catalog.Node{{
			Name: "ground",
			Pins: []string{"center", "T"},
			Options: []catalog.Option{
				{SimpleOption: catalog.SimpleOption{Name: "tlground", DisplayName: "tailless"}},
			},
		}},
	}

	files := GenerateTexFiles(cat, DefaultStencils())
	require.Len(t, files, 2)

	assert.Equal(t, "node_000_ground_tailless", files[0].Basename)
	assert.Equal(t, "node_000_ground", files[1].Basename)

	withOption := files[0].Content
	assert.Contains(t, withOption, `\node[ground, tlground] (N) at (0,0) {};`)
	assert.Contains(t, withOption, `\draw[draw={rgb,255:red,0;green,153;blue,153}] (0,0) -- (N.T);`)
	assert.NotContains(t, withOption, "(N.center)")
	assert.NotContains(t, withOption, "<nodename>")
	assert.NotContains(t, withOption, "<anchorLines>")

	plain := files[1].Content
	assert.Contains(t, plain, `\node[ground] (N) at (0,0) {};`)
}

func TestGenerateTexFiles_PinColorsFollowDeclarationOrder(t *testing.T) {
	cat := &catalog.Catalog{
		Nodes: []*catalog.Node{{
			Name: "nmos",
			Pins: []string{"D", "G", "S"},
		}},
	}

	files := GenerateTexFiles(cat, DefaultStencils())
	require.Len(t, files, 1)

	content := files[0].Content
	assert.Contains(t, content, `\draw[draw={rgb,255:red,0;green,153;blue,153}] (0,0) -- (N.D);`)
	assert.Contains(t, content, `\draw[draw={rgb,255:red,4;green,153;blue,153}] (0,0) -- (N.G);`)
	assert.Contains(t, content, `\draw[draw={rgb,255:red,8;green,153;blue,153}] (0,0) -- (N.S);`)
}

func TestGenerateTexFiles_PathVariant(t *testing.T) {
	cat := &catalog.Catalog{
		Paths: []*catalog.Path{{
			DrawName: "R",
			Stroke:   true,
		}},
	}

	files := GenerateTexFiles(cat, DefaultStencils())
	require.Len(t, files, 1)

	content := files[0].Content
	assert.Equal(t, "path_000_R", files[0].Basename)
	assert.Contains(t, content, `\node[shape=Rshape] (P) at (0,0) {};`)
	// endpoints get the first two pin colors
	assert.Contains(t, content, `\draw[draw={rgb,255:red,0;green,153;blue,153}] (0,0) -- (P.b);`)
	assert.Contains(t, content, `\draw[draw={rgb,255:red,4;green,153;blue,153}] (0,0) -- (P.a);`)
	assert.Contains(t, content, `\draw (P.b) -- (P.a);`)
}

func TestGenerateTexFiles_PathOptionsUseCircuitikzPrefix(t *testing.T) {
	cat := &catalog.Catalog{
		Paths: []*catalog.Path{{
			DrawName: "full diode",
			Options: []catalog.Option{
				{SimpleOption: catalog.SimpleOption{Name: "diodes/scale=0.4", DisplayName: "small"}},
			},
		}},
	}

	files := GenerateTexFiles(cat, DefaultStencils())
	require.Len(t, files, 2)

	assert.Equal(t, "path_000_full-diode_small", files[0].Basename)
	assert.Contains(t, files[0].Content, `\node[shape=fulldiodeshape, circuitikz/diodes/scale=0.4] (P) at (0,0) {};`)
	assert.Contains(t, files[1].Content, `\node[shape=fulldiodeshape] (P) at (0,0) {};`)
}

func TestGenerateTexFiles_FillableAppendsGreenFill(t *testing.T) {
	cat := &catalog.Catalog{
		Nodes: []*catalog.Node{{Name: "led", Fillable: true}},
	}

	files := GenerateTexFiles(cat, DefaultStencils())
	require.Len(t, files, 1)
	assert.Contains(t, files[0].Content, `\node[led, fill=green] (N) at (0,0) {};`)
}

func TestGenerateTexFiles_OptionPinAdjustments(t *testing.T) {
	cat := &catalog.Catalog{
		Nodes: []*catalog.Node{{
			Name: "op amp",
			Pins: []string{"out", "up"},
			Options: []catalog.Option{
				{SimpleOption: catalog.SimpleOption{Name: "noinv input up", AddPins: []string{"down"}, SubPins: []string{"up"}}},
			},
		}},
	}

	files := GenerateTexFiles(cat, DefaultStencils())
	require.Len(t, files, 2)

	withOption := files[0].Content
	assert.Contains(t, withOption, "(N.out);")
	assert.Contains(t, withOption, "(N.down);")
	assert.NotContains(t, withOption, "(N.up);")

	plain := files[1].Content
	assert.Contains(t, plain, "(N.up);")
	assert.NotContains(t, plain, "(N.down);")
}

func TestWriteTexFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "build")

	files := []GeneratedFile{
		{Basename: "node_000_ground", Content: "content a"},
		{Basename: "path_001_R", Content: "content b"},
	}
	require.NoError(t, WriteTexFiles(files, out))

	data, err := os.ReadFile(filepath.Join(out, "node_000_ground.tex"))
	require.NoError(t, err)
	assert.Equal(t, "content a", string(data))

	data, err = os.ReadFile(filepath.Join(out, "path_001_R.tex"))
	require.NoError(t, err)
	assert.Equal(t, "content b", string(data))
}

func TestViewBoxOrigin(t *testing.T) {
	minX, minY, err := viewBoxOrigin(`<svg viewBox="-2.5 -1.25 10 20">`)
	require.NoError(t, err)
	assert.Equal(t, -2.5, minX)
	assert.Equal(t, -1.25, minY)

	_, _, err = viewBoxOrigin(`<svg width="10">`)
	require.Error(t, err)

	_, _, err = viewBoxOrigin(`<svg viewBox="1 2 3">`)
	require.Error(t, err)
}

func TestStencilsContainPlaceholders(t *testing.T) {
	s := DefaultStencils()
	assert.Contains(t, s.Node, "<nodename>")
	assert.Contains(t, s.Node, "<anchorLines>")
	assert.Contains(t, s.Path, "<pathname>")
	assert.Contains(t, s.Path, "<anchorLines>")
}

func TestStrippedStem(t *testing.T) {
	assert.Equal(t, "node_000_ground", strippedStem("/build/node_000_ground.tex"))
	assert.Equal(t, "plain", strippedStem("plain"))
}
