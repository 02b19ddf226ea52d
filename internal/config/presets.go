package config

import (
	"sort"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/engine"
)

// Preset overrides the array and pacing settings of the defaults.
type Preset struct {
	Size  int
	Shape arrays.Shape
	Speed int
	Seed  int64
}

var Presets = map[engine.Algorithm]map[string]Preset{
	engine.Bubble: {
		"classroom": {Size: 16, Shape: arrays.Random, Speed: 30, Seed: 1},
		"best":      {Size: 40, Shape: arrays.Sorted, Speed: 80},
		"worst":     {Size: 40, Shape: arrays.Reversed, Speed: 90},
	},
	engine.Selection: {
		"classroom":  {Size: 16, Shape: arrays.Random, Speed: 30, Seed: 1},
		"duplicates": {Size: 40, Shape: arrays.FewUnique, Speed: 70, Seed: 3},
	},
	engine.Insertion: {
		"best":   {Size: 60, Shape: arrays.Sorted, Speed: 70},
		"nearly": {Size: 60, Shape: arrays.NearlySorted, Speed: 70, Seed: 5},
		"worst":  {Size: 40, Shape: arrays.Reversed, Speed: 90},
	},
	engine.Merge: {
		"classroom": {Size: 16, Shape: arrays.Random, Speed: 30, Seed: 1},
		"large":     {Size: 100, Shape: arrays.Random, Speed: 95, Seed: 7},
	},
	engine.Quick: {
		"typical":    {Size: 60, Shape: arrays.Random, Speed: 80, Seed: 11},
		"worst":      {Size: 40, Shape: arrays.Sorted, Speed: 90},
		"duplicates": {Size: 60, Shape: arrays.FewUnique, Speed: 80, Seed: 13},
	},
	engine.Heap: {
		"classroom": {Size: 16, Shape: arrays.Random, Speed: 30, Seed: 1},
		"large":     {Size: 100, Shape: arrays.Random, Speed: 95, Seed: 17},
	},
}

// GetPreset returns the defaults with the named preset applied, or nil if
// there is no such preset.
func GetPreset(algo engine.Algorithm, preset string) *Config {
	algoPresets, ok := Presets[algo]
	if !ok {
		return nil
	}
	p, ok := algoPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Algorithm = algo
	cfg.Size = p.Size
	cfg.Shape = p.Shape
	cfg.Speed = p.Speed
	cfg.Seed = p.Seed
	return cfg
}

func ListPresets(algo engine.Algorithm) []string {
	algoPresets, ok := Presets[algo]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algoPresets))
	for name := range algoPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
