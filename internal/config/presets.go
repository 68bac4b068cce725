package config

import (
	"fmt"
	"sort"
)

// Presets are named plant sections. A preset replaces the whole plant section
// of the defaults; values from a config file still override it.
var Presets = map[string]PlantConfig{
	"strawberry": {
		Lengths: []float32{1.1, 1.2, 1.3}, Size: 0.2, Compliance: 0.1, Mode: "additive",
	},
	"seedling": {
		Lengths: []float32{0.4, 0.5}, Size: 0.08, Compliance: 0.2, Mode: "additive",
	},
	"tall": {
		Lengths: []float32{0.8, 0.9, 1, 1, 1.1, 1.2, 1.3}, Size: 0.15, Compliance: 0.05, Mode: "additive",
	},
	"bent": {
		Lengths: []float32{0.9, 1, 1.1, 1.2}, Size: 0.18, Compliance: 0.1, Mode: "compositional", BendDegrees: 12,
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (PlantConfig, error) {
	p, ok := Presets[name]
	if !ok {
		return PlantConfig{}, fmt.Errorf("unknown preset %q (available: %v)", name, ListPresets())
	}
	p.Lengths = append([]float32(nil), p.Lengths...)
	p.Preset = name
	return p, nil
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
