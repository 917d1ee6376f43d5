package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"github.com/KhemPoudel/tictactoe/internal/domain"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if c.DifficultyValue() != domain.Hard || c.SideValue() != domain.X {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"difficulty", func(c *Config) { c.Difficulty = "impossible" }},
		{"side", func(c *Config) { c.Side = "Z" }},
		{"listen_addr", func(c *Config) { c.ListenAddr = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mut(&c)
			err := c.Validate()
			var invalid *InvalidConfigError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidConfigError, got %v", err)
			}
			if invalid.Field != tc.name {
				t.Fatalf("expected field %q, got %q", tc.name, invalid.Field)
			}
		})
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"difficulty":"easy","side":"O","engine_first":true,"listen_addr":":9999"}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	c, err := load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.DifficultyValue() != domain.Easy || c.SideValue() != domain.O {
		t.Fatalf("unexpected config: %+v", c)
	}
	if !c.EngineFirst || c.ListenAddr != ":9999" {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"side":"O"}`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	c, err := load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.SideValue() != domain.O || c.DifficultyValue() != domain.Hard || c.ListenAddr != ":8080" {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	// Reload restores the real XDG paths after t.Setenv unwinds the env.
	t.Cleanup(func() { xdg.Reload() })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	c := Default()
	c.Difficulty = "medium"
	c.Side = "O"
	c.EngineFirst = true
	if err := c.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Init()
	if err != nil {
		t.Fatalf("Init after Save failed: %v", err)
	}
	if got.DifficultyValue() != domain.Medium || got.SideValue() != domain.O {
		t.Fatalf("unexpected config after round trip: %+v", got)
	}
	if !got.EngineFirst || got.ListenAddr != ":8080" {
		t.Fatalf("unexpected config after round trip: %+v", got)
	}
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	c := Default()
	c.Side = "Z"
	var invalid *InvalidConfigError
	if err := c.Save(); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"difficulty":"impossible"}`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := load(path); err == nil {
		t.Fatalf("expected a validation error")
	}
}
