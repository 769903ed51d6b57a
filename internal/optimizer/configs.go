package optimizer

// SymbolConfig is the per-symbol optimization pass run right after
// rendering: it normalizes path data to absolute commands, keeps defs, and
// prefixes every id and class with the symbol id so many symbols can share
// one document without collisions.
func SymbolConfig(symbolID string) *Config {
	return &Config{
		Multipass:      true,
		FloatPrecision: 5,
		JS2SVG:         prettyOutput(),
		Plugins: []Plugin{
			{
				Name: "preset-default",
				Params: map[string]any{
					"overrides": map[string]any{
						"convertPathData": map[string]any{
							"forceAbsolutePath": true,
							"applyTransforms":   true,
							"utilizeAbsolute":   true,
						},
						"convertColors": map[string]any{
							"shortname": false,
						},
						"removeUselessDefs": false,
					},
				},
			},
			{
				Name: "removeUselessStrokeAndFill",
				Params: map[string]any{
					"stroke":     true,
					"fill":       true,
					"removeNone": true,
				},
			},
			{Name: "removeDimensions"},
			{Name: "removeHiddenElems"},
			{Name: "moveGroupAttrsToElems"},
			{Name: "cleanupAttrs"},
			{Name: "collapseGroups"},
			{Name: "convertStyleToAttrs"},
			{
				Name: "prefixIds",
				Params: map[string]any{
					"delim":            "_",
					"prefix":           symbolID,
					"prefixIds":        true,
					"prefixClassNames": true,
				},
			},
		},
	}
}

// LibraryConfig is the final pass over the merged library: dimensions and
// the outer viewBox go away (each variant records its own), ids are kept
// stable unless they collide, and path data is recompacted.
func LibraryConfig() *Config {
	return &Config{
		Multipass:      true,
		FloatPrecision: 5,
		JS2SVG:         prettyOutput(),
		Plugins: []Plugin{
			{Name: "removeDimensions"},
			{Name: "removeViewBox"},
			{
				Name: "cleanupIds",
				Params: map[string]any{
					"force":  false,
					"minify": false,
					"remove": false,
				},
			},
			{
				Name: "convertPathData",
				Params: map[string]any{
					"applyTransforms":   true,
					"forceAbsolutePath": false,
					"utilizeAbsolute":   false,
					"floatPrecision":    4,
					"removeUseless":     true,
					"collapseRepeated":  true,
				},
			},
			{
				Name: "mergePaths",
				Params: map[string]any{
					"noSpaceAfterFlags": true,
				},
			},
		},
	}
}

func prettyOutput() JS2SVG {
	return JS2SVG{
		Indent:       "\t",
		Pretty:       true,
		EOL:          "lf",
		FinalNewline: true,
	}
}
