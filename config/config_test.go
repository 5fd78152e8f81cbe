package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Arena.Radius <= 0 {
		t.Error("arena radius not set by defaults")
	}
	if cfg.Session.Duration <= 0 {
		t.Error("session duration not set by defaults")
	}
	if cfg.Gems.EpicChance >= cfg.Gems.RareChance {
		t.Error("epic chance should be rarer than rare chance")
	}

	// Countdown offsets must be ordered for the timeline driver.
	cd := cfg.Session.Countdown
	offsets := []float64{cd.Fade, cd.Three, cd.Two, cd.One, cd.Go, cd.Clear}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			t.Fatalf("countdown offsets out of order at %d: %v", i, offsets)
		}
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Derived.Radius32 != float32(cfg.Arena.Radius) {
		t.Error("derived radius not computed")
	}
	if cfg.Derived.CollectRadius32 != float32(cfg.Gems.CollectRadius) {
		t.Error("derived collect radius not computed")
	}
}

func TestUserConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := []byte("arena:\n  radius: 45\nsession:\n  duration: 30\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}

	if cfg.Arena.Radius != 45 {
		t.Errorf("radius = %v, want 45", cfg.Arena.Radius)
	}
	if cfg.Session.Duration != 30 {
		t.Errorf("duration = %v, want 30", cfg.Session.Duration)
	}
	// Untouched sections keep their defaults.
	if cfg.Population.BaseTarget <= 0 {
		t.Error("override wiped defaults for other sections")
	}
	// Derived values follow the override.
	if cfg.Derived.Radius32 != 45 {
		t.Errorf("derived radius = %v, want 45", cfg.Derived.Radius32)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if back.Arena.Radius != cfg.Arena.Radius || back.Session.Duration != cfg.Session.Duration {
		t.Error("roundtrip changed values")
	}
}
