// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/modalstack/internal/stack"
)

// Default configuration values.
const (
	DefaultStartingOffset = stack.DefaultStartingOffset
	LegacyStartingOffset  = stack.LegacyStartingOffset
	DefaultModalWidth     = 48
	DefaultReplayFormat   = "plain"
	MinModalWidth         = 20
)

// Config represents the modalstack configuration.
type Config struct {
	Stack  StackConfig  `toml:"stack"`
	Modal  ModalConfig  `toml:"modal"`
	TUI    TUIConfig    `toml:"tui"`
	Theme  ThemeConfig  `toml:"theme"`
	Replay ReplayConfig `toml:"replay"`
}

// StackConfig holds stack manager settings.
type StackConfig struct {
	StartingOffset int  `toml:"starting_offset"` // Base z-index for position 0
	LegacyOffset   bool `toml:"legacy_offset"`   // Use 1000 when starting_offset is unset
}

// ModalConfig holds defaults applied to new windows.
type ModalConfig struct {
	CloseOnOverlayClick bool   `toml:"close_on_overlay_click"`
	ShowCloseButton     bool   `toml:"show_close_button"`
	ModalClass          string `toml:"modal_class"`
	OverlayClass        string `toml:"overlay_class"`
	Width               int    `toml:"width"`
}

// TUIConfig holds playground settings.
type TUIConfig struct {
	ShowHelp bool `toml:"show_help"`
	Mouse    bool `toml:"mouse"`
	Cascade  bool `toml:"cascade"` // Offset stacked windows so lower ones peek out

	// Clipboard command for copying the stack (auto-detected if empty).
	// Examples: "wl-copy", "xclip -selection clipboard"
	Clipboard string `toml:"clipboard"`
}

// ThemeConfig selects the style theme.
type ThemeConfig struct {
	Name string `toml:"name"` // Embedded theme name or path to a TOML theme
}

// ReplayConfig holds defaults for the replay command.
type ReplayConfig struct {
	Format string `toml:"format"` // plain, json, yaml, ids
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Stack: StackConfig{
			StartingOffset: DefaultStartingOffset,
		},
		Modal: ModalConfig{
			CloseOnOverlayClick: true,
			ShowCloseButton:     false,
			Width:               DefaultModalWidth,
		},
		TUI: TUIConfig{
			ShowHelp: true,
			Mouse:    true,
			Cascade:  true,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Replay: ReplayConfig{
			Format: DefaultReplayFormat,
		},
	}
}

// EffectiveStartingOffset resolves the starting offset, honouring the
// legacy default when no explicit offset was configured.
func (c *Config) EffectiveStartingOffset() int {
	if c.Stack.LegacyOffset && c.Stack.StartingOffset == DefaultStartingOffset {
		return LegacyStartingOffset
	}
	return c.Stack.StartingOffset
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Modal.Width != 0 && c.Modal.Width < MinModalWidth {
		return fmt.Errorf("modal.width must be at least %d, got %d", MinModalWidth, c.Modal.Width)
	}
	switch c.Replay.Format {
	case "", "plain", "json", "yaml", "ids":
	default:
		return fmt.Errorf("replay.format %q is not one of plain, json, yaml, ids", c.Replay.Format)
	}
	return nil
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "modalstack", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
