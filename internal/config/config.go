package config

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wlldxn/orbitlab/internal/orbit"
	"github.com/wlldxn/orbitlab/internal/vecmath"
)

const (
	DefaultG            = 0.1
	DefaultHalfExtent   = 800.0
	DefaultEscapeBudget = 100
	DefaultThreshold    = 0.1
	DefaultTicks        = 2000
	DefaultSampleEvery  = 10
	DefaultSeed         = 1
)

// Config describes a complete scenario: physics constants, run length, and
// the initial body set.
type Config struct {
	G                 float64 `yaml:"g"`
	HalfExtent        float64 `yaml:"half_extent"`
	EscapeBudget      int     `yaml:"escape_budget"`
	ReparentThreshold float64 `yaml:"reparent_threshold"`
	Seed              int64   `yaml:"seed"`
	Ticks             int     `yaml:"ticks"`
	SampleEvery       int     `yaml:"sample_every"`

	Primary    PrimaryConfig     `yaml:"primary"`
	Satellites []SatelliteConfig `yaml:"satellites"`
}

type PrimaryConfig struct {
	Mass  float64    `yaml:"mass"`
	Pos   [2]float64 `yaml:"pos"`
	Vel   [2]float64 `yaml:"vel"`
	Size  float64    `yaml:"size"`
	Color string     `yaml:"color"`
}

// SatelliteConfig places a body at a distance and angle from its parent.
// Parent is an index into the insertion sequence: 0 is the primary, n is
// the nth satellite in this list. Eccentricity scales the circular-orbit
// launch speed (1 = circular).
type SatelliteConfig struct {
	Mass         float64 `yaml:"mass"`
	Distance     float64 `yaml:"distance"`
	Angle        float64 `yaml:"angle"`
	Eccentricity float64 `yaml:"eccentricity"`
	Size         float64 `yaml:"size"`
	Color        string  `yaml:"color"`
	Parent       int     `yaml:"parent"`
}

func DefaultConfig() *Config {
	return &Config{
		G:                 DefaultG,
		HalfExtent:        DefaultHalfExtent,
		EscapeBudget:      DefaultEscapeBudget,
		ReparentThreshold: DefaultThreshold,
		Seed:              DefaultSeed,
		Ticks:             DefaultTicks,
		SampleEvery:       DefaultSampleEvery,
		Primary: PrimaryConfig{
			Mass:  5000,
			Size:  16,
			Color: "#ffcc00",
		},
		Satellites: []SatelliteConfig{
			{Mass: 5, Distance: 120, Eccentricity: 1, Size: 4, Color: "#88ccff"},
			{Mass: 8, Distance: 260, Angle: math.Pi / 2, Eccentricity: 0.9, Size: 5, Color: "#ff8866"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs a System with the configured constants and initial
// bodies. Satellites are inserted in list order so parent indices always
// refer to bodies that already exist.
func (c *Config) Build() (*orbit.System, error) {
	sys := orbit.New(orbit.Options{
		G:                  c.G,
		ViewportHalfExtent: c.HalfExtent,
		EscapeBudget:       c.EscapeBudget,
		ReparentThreshold:  c.ReparentThreshold,
		Rand:               rand.New(rand.NewSource(c.Seed)),
	})

	primary, err := sys.AddPrimary(
		c.Primary.Mass,
		vecmath.Vec2{X: c.Primary.Pos[0], Y: c.Primary.Pos[1]},
		vecmath.Vec2{X: c.Primary.Vel[0], Y: c.Primary.Vel[1]},
		c.Primary.Size,
		c.Primary.Color,
	)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}

	ids := []orbit.BodyID{primary}
	for i, sat := range c.Satellites {
		if sat.Parent < 0 || sat.Parent >= len(ids) {
			return nil, fmt.Errorf("satellite %d: parent index %d out of range", i, sat.Parent)
		}
		parent := ids[sat.Parent]

		pv, _ := sys.Body(parent)
		offset := vecmath.Vec2{X: sat.Distance}.Rotate(sat.Angle)
		pos := pv.Pos.Add(offset)

		id, err := sys.AddSatellite(parent, sat.Mass, sat.Size, sat.Color, pos, sat.Eccentricity)
		if err != nil {
			return nil, fmt.Errorf("satellite %d: %w", i, err)
		}
		ids = append(ids, id)
	}

	return sys, nil
}
