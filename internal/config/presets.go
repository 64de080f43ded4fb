package config

import (
	"math"
	"sort"
)

// Presets are named scenarios with behavioral character. All inherit the
// default physics constants unless they say otherwise.
var Presets = map[string]*Config{
	"solar": {
		G: DefaultG, HalfExtent: DefaultHalfExtent, EscapeBudget: DefaultEscapeBudget,
		ReparentThreshold: DefaultThreshold, Seed: DefaultSeed, Ticks: 5000, SampleEvery: 10,
		Primary: PrimaryConfig{Mass: 8000, Size: 18, Color: "#ffcc00"},
		Satellites: []SatelliteConfig{
			{Mass: 2, Distance: 90, Eccentricity: 1, Size: 3, Color: "#bbbbbb"},
			{Mass: 6, Distance: 170, Angle: math.Pi / 3, Eccentricity: 1, Size: 5, Color: "#66aaff"},
			{Mass: 40, Distance: 340, Angle: math.Pi, Eccentricity: 0.95, Size: 8, Color: "#ffaa66"},
			{Mass: 0.5, Distance: 18, Angle: math.Pi / 2, Eccentricity: 1, Size: 2, Color: "#dddddd", Parent: 3},
		},
	},
	"binary": {
		G: DefaultG, HalfExtent: DefaultHalfExtent, EscapeBudget: DefaultEscapeBudget,
		ReparentThreshold: DefaultThreshold, Seed: DefaultSeed, Ticks: 4000, SampleEvery: 10,
		Primary: PrimaryConfig{Mass: 4000, Pos: [2]float64{-150, 0}, Vel: [2]float64{0, -0.8}, Size: 14, Color: "#ffcc00"},
		Satellites: []SatelliteConfig{
			{Mass: 4000, Distance: 300, Eccentricity: 1, Size: 14, Color: "#ff6644"},
			{Mass: 3, Distance: 60, Angle: math.Pi / 4, Eccentricity: 1, Size: 3, Color: "#88ccff"},
		},
	},
	"hierarchy": {
		G: DefaultG, HalfExtent: DefaultHalfExtent, EscapeBudget: DefaultEscapeBudget,
		ReparentThreshold: DefaultThreshold, Seed: DefaultSeed, Ticks: 6000, SampleEvery: 10,
		Primary: PrimaryConfig{Mass: 10000, Size: 20, Color: "#ffcc00"},
		Satellites: []SatelliteConfig{
			{Mass: 120, Distance: 280, Eccentricity: 1, Size: 8, Color: "#66aaff"},
			{Mass: 1, Distance: 25, Eccentricity: 1, Size: 2, Color: "#cccccc", Parent: 1},
			{Mass: 120, Distance: 520, Angle: math.Pi, Eccentricity: 1, Size: 8, Color: "#aa88ff"},
			{Mass: 1, Distance: 25, Angle: math.Pi / 2, Eccentricity: 1, Size: 2, Color: "#ffffff", Parent: 3},
		},
	},
	// A satellite launched well past escape velocity: exercises the
	// re-parenting search and the escape-removal countdown.
	"slingshot": {
		G: DefaultG, HalfExtent: 400, EscapeBudget: DefaultEscapeBudget,
		ReparentThreshold: DefaultThreshold, Seed: DefaultSeed, Ticks: 2000, SampleEvery: 5,
		Primary: PrimaryConfig{Mass: 6000, Size: 16, Color: "#ffcc00"},
		Satellites: []SatelliteConfig{
			{Mass: 3, Distance: 100, Eccentricity: 1, Size: 3, Color: "#88ccff"},
			{Mass: 3, Distance: 140, Angle: math.Pi / 2, Eccentricity: 1.6, Size: 3, Color: "#ff4444"},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
