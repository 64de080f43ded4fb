package config

import (
	"path/filepath"
	"testing"

	"github.com/wlldxn/orbitlab/internal/orbit"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.G != DefaultG {
		t.Errorf("G = %v, want %v", cfg.G, DefaultG)
	}
	if cfg.EscapeBudget != DefaultEscapeBudget {
		t.Errorf("escape budget = %d, want %d", cfg.EscapeBudget, DefaultEscapeBudget)
	}
	if cfg.Primary.Mass <= 0 {
		t.Error("default primary must have positive mass")
	}
	if len(cfg.Satellites) == 0 {
		t.Error("default config should seed at least one satellite")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Satellites[0].Eccentricity = 1.3

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Seed != 42 {
		t.Errorf("seed = %d, want 42", loaded.Seed)
	}
	if loaded.Satellites[0].Eccentricity != 1.3 {
		t.Errorf("eccentricity = %v, want 1.3", loaded.Satellites[0].Eccentricity)
	}
	if loaded.G != cfg.G {
		t.Errorf("G = %v, want %v", loaded.G, cfg.G)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuild(t *testing.T) {
	sys, err := DefaultConfig().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := 1 + len(DefaultConfig().Satellites)
	if sys.Len() != want {
		t.Errorf("body count = %d, want %d", sys.Len(), want)
	}

	bodies := sys.Bodies()
	if bodies[0].Ref != orbit.None {
		t.Error("first body must be the primary")
	}
	for _, b := range bodies[1:] {
		if b.Ref == orbit.None {
			t.Errorf("satellite %d has no reference", b.ID)
		}
	}
}

func TestBuildRejectsBadParentIndex(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Satellites[0].Parent = 5

	if _, err := cfg.Build(); err == nil {
		t.Error("expected error for forward parent reference")
	}
}

func TestBuildRejectsInvalidMass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Primary.Mass = -1

	if _, err := cfg.Build(); err == nil {
		t.Error("expected error for non-positive primary mass")
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}

	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("GetPreset(%q) = nil", name)
		}
		if _, err := cfg.Build(); err != nil {
			t.Errorf("preset %q does not build: %v", name, err)
		}
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestPresetHierarchyNestedParents(t *testing.T) {
	sys, err := GetPreset("hierarchy").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	bodies := sys.Bodies()
	// Moons (insertion indices 2 and 4) orbit planets, not the primary.
	primary := bodies[0].ID
	if bodies[2].Ref == primary || bodies[4].Ref == primary {
		t.Error("moons should reference their planets")
	}
}
