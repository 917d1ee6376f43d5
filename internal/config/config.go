// Package config loads and saves player preferences from the XDG config
// directories. Hosts treat the file as defaults and let flags override it.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adrg/xdg"

	"github.com/KhemPoudel/tictactoe/internal/domain"
)

const cfgFile = "tictactoe/config.json"

// Config holds the player-tunable defaults.
type Config struct {
	Difficulty  string `json:"difficulty"`
	Side        string `json:"side"`
	EngineFirst bool   `json:"engine_first"`
	ListenAddr  string `json:"listen_addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Difficulty: "hard",
		Side:       "X",
		ListenAddr: ":8080",
	}
}

// InvalidConfigError reports a config file that parsed but failed validation.
type InvalidConfigError struct {
	Field string
	Err   error
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("config: invalid %s: %v", e.Field, e.Err)
}

func (e *InvalidConfigError) Unwrap() error { return e.Err }

// Validate checks that every field parses.
func (c *Config) Validate() error {
	if _, err := domain.ParseDifficulty(c.Difficulty); err != nil {
		return &InvalidConfigError{Field: "difficulty", Err: err}
	}
	if _, err := domain.ParsePlayer(c.Side); err != nil {
		return &InvalidConfigError{Field: "side", Err: err}
	}
	if c.ListenAddr == "" {
		return &InvalidConfigError{Field: "listen_addr", Err: fmt.Errorf("empty address")}
	}
	return nil
}

// DifficultyValue returns the parsed difficulty. Call Validate first.
func (c *Config) DifficultyValue() domain.Difficulty {
	d, _ := domain.ParseDifficulty(c.Difficulty)
	return d
}

// SideValue returns the parsed human mark. Call Validate first.
func (c *Config) SideValue() domain.Player {
	p, _ := domain.ParsePlayer(c.Side)
	return p
}

// Init loads the config file from the XDG config directories, falling back
// to defaults when none exists.
func Init() (Config, error) {
	path, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		return Default(), nil
	}
	return load(path)
}

func load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: reading %s: %w", path, err)
	}
	// Missing fields keep their defaults.
	c := Default()
	if err := json.Unmarshal(raw, &c); err != nil {
		return Default(), fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), err
	}
	return c, nil
}

// Save writes the config to the primary XDG config path, creating parent
// directories as needed.
func (c Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("config: resolving path: %w", err)
	}
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
