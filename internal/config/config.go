// Package config loads dragster's TOML configuration, falling back to the
// embedded defaults when no file is given, and watches the file for live
// reloads.
package config

import (
	"embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/zigzagg16/dragster/pkg/drag"
)

//go:embed default_config.toml
var defaultConfigFS embed.FS

// Config is the full on-disk configuration.
type Config struct {
	Drawer    DrawerConfig    `toml:"drawer"`
	Animation AnimationConfig `toml:"animation"`
	Haptics   HapticsConfig   `toml:"haptics"`
	Bridge    BridgeConfig    `toml:"bridge"`
}

// DrawerConfig mirrors drag.Config in TOML form. Positions are in terminal
// rows.
type DrawerConfig struct {
	OpenPosition   float64 `toml:"open_position"`
	ClosedPosition float64 `toml:"closed_position"`
	Tolerance      float64 `toml:"tolerance"`
	SnapLowPct     float64 `toml:"snap_low_pct"`
	SnapHighPct    float64 `toml:"snap_high_pct"`
	ClampObserved  bool    `toml:"clamp_observed"`
}

type AnimationConfig struct {
	DurationMs int     `toml:"duration_ms"`
	Damping    float64 `toml:"damping"`
	Frequency  float64 `toml:"frequency"`
	FPS        int     `toml:"fps"`
}

type HapticsConfig struct {
	Enabled bool   `toml:"enabled"`
	Backend string `toml:"backend"` // none | bell | audio
}

type BridgeConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// Load reads the configuration from configPath, or the embedded defaults
// when configPath is empty. Values absent from the file keep their defaults.
func Load(configPath string) (*Config, error) {
	config, err := loadDefault()
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		configData, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := toml.Unmarshal(configData, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadDefault() (*Config, error) {
	configData, err := defaultConfigFS.ReadFile("default_config.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded default config: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(configData, &config); err != nil {
		return nil, fmt.Errorf("failed to parse embedded default config: %w", err)
	}
	return &config, nil
}

// Validate checks the parts of the configuration the drag controller does
// not validate itself.
func (c *Config) Validate() error {
	if err := c.Drag().Validate(); err != nil {
		return err
	}
	if c.Animation.FPS <= 0 {
		return fmt.Errorf("animation fps must be > 0, got %d", c.Animation.FPS)
	}
	if c.Animation.DurationMs <= 0 {
		return fmt.Errorf("animation duration_ms must be > 0, got %d", c.Animation.DurationMs)
	}
	if c.Animation.Frequency <= 0 {
		return fmt.Errorf("animation frequency must be > 0, got %v", c.Animation.Frequency)
	}
	switch c.Haptics.Backend {
	case "none", "bell", "audio":
	default:
		return fmt.Errorf("unknown haptics backend %q", c.Haptics.Backend)
	}
	if c.Bridge.Enabled && (c.Bridge.Port < 1 || c.Bridge.Port > 65535) {
		return fmt.Errorf("bridge port out of range: %d", c.Bridge.Port)
	}
	return nil
}

// Drag converts the drawer section into the controller's configuration.
func (c *Config) Drag() drag.Config {
	return drag.Config{
		OpenPosition:   c.Drawer.OpenPosition,
		ClosedPosition: c.Drawer.ClosedPosition,
		Tolerance:      c.Drawer.Tolerance,
		SnapLowPct:     c.Drawer.SnapLowPct,
		SnapHighPct:    c.Drawer.SnapHighPct,
		ClampObserved:  c.Drawer.ClampObserved,
	}
}

// Spring converts the animation section into an easing curve.
func (c *Config) Spring() drag.SpringCurve {
	return drag.SpringCurve{Damping: c.Animation.Damping, Frequency: c.Animation.Frequency}
}

// Duration returns the animated transition duration.
func (c *Config) Duration() time.Duration {
	return time.Duration(c.Animation.DurationMs) * time.Millisecond
}

// FrameInterval returns the animation frame interval derived from fps.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Animation.FPS)
}
