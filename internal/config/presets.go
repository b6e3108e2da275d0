package config

import "sort"

// presets are known-good starting configurations per engine.
var presets = map[string]map[string]*Config{
	"nearest": {
		// the canonical all-15-bit-colors image
		"highcolor": {
			Engine:     "nearest",
			Width:      HighcolorPresetWidth,
			Height:     HighcolorPresetHeight,
			StartRow:   -1,
			StartCol:   -1,
			StartColor: -1,
			Scale:      2,
			Palette:    PaletteConfig{Source: "highcolor"},
		},
		// small grid for quick experiments; needs --image, the 4096
		// extracted colors fill 64x64 exactly
		"thumb": {
			Engine:     "nearest",
			Width:      64,
			Height:     64,
			StartRow:   -1,
			StartCol:   -1,
			StartColor: -1,
			Scale:      4,
			Palette:    PaletteConfig{Source: "extract", Colors: 4096, Method: "kmeans"},
		},
	},
	"walk": {
		"highcolor": {
			Engine:     "walk",
			Width:      HighcolorPresetWidth,
			Height:     HighcolorPresetHeight,
			StartRow:   -1,
			StartCol:   -1,
			StartColor: -1,
			Scale:      2,
			Palette:    PaletteConfig{Source: "highcolor"},
		},
	},
	"bug": {
		// a short animated demo on an extracted palette
		"demo": {
			Engine:     "bug",
			Width:      128,
			Height:     128,
			StartRow:   -1,
			StartCol:   -1,
			StartColor: -1,
			MaxIters:   4096,
			Snapshot:   true,
			SortColors: true,
			Scale:      2,
			Palette:    PaletteConfig{Source: "extract", Colors: 4096, Method: "kmeans"},
		},
		// walk an image's own pixels in the order they appear
		"trace": {
			Engine:     "bug",
			Width:      128,
			Height:     128,
			StartRow:   -1,
			StartCol:   -1,
			StartColor: -1,
			MaxIters:   8192,
			Snapshot:   false,
			Scale:      2,
			Palette:    PaletteConfig{Source: "image"},
		},
	},
}

const (
	HighcolorPresetWidth  = 256
	HighcolorPresetHeight = 128
)

// GetPreset returns a copy of the named preset, or nil if the engine or
// preset is unknown.
func GetPreset(engine, name string) *Config {
	group, ok := presets[engine]
	if !ok {
		return nil
	}
	cfg, ok := group[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names for an engine, sorted, or nil
// for an unknown engine.
func ListPresets(engine string) []string {
	group, ok := presets[engine]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
