package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/racelog/internal/reward"
	"github.com/san-kum/racelog/internal/trace"
)

const (
	DefaultLogLevel    = "info"
	DefaultFPS         = 10
	DefaultWindowStart = 4
	DefaultWindowEnd   = 16
	DefaultWidth       = 80
	DefaultHeight      = 24
	DefaultBorder      = 8
)

type Config struct {
	LogLevel    string            `yaml:"log_level"`
	Prefix      string            `yaml:"prefix"`
	ActionSpace ActionSpaceConfig `yaml:"action_space"`
	Replay      ReplayConfig      `yaml:"replay"`
	Viewport    ViewportConfig    `yaml:"viewport"`
}

type ActionSpaceConfig struct {
	MaxSpeed float64 `yaml:"max_speed"`
	MaxSteer float64 `yaml:"max_steer"`
}

type ReplayConfig struct {
	FPS    int          `yaml:"fps"`
	Loop   bool         `yaml:"loop"`
	Window WindowConfig `yaml:"window"`
}

// WindowConfig selects statuses[Start:End] for GIF export. End 0 means all.
type WindowConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// ViewportConfig sizes the braille canvas in character cells; Border is in
// sub-pixels (2 per column, 4 per row).
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Border int `yaml:"border"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Prefix:   trace.DefaultPrefix,
		ActionSpace: ActionSpaceConfig{
			MaxSpeed: reward.DefaultMaxSpeed,
			MaxSteer: reward.DefaultMaxSteer,
		},
		Replay: ReplayConfig{
			FPS:    DefaultFPS,
			Loop:   true,
			Window: WindowConfig{Start: DefaultWindowStart, End: DefaultWindowEnd},
		},
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Border: DefaultBorder,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// base's values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.ActionSpace.MaxSpeed <= 0 {
		return fmt.Errorf("max_speed must be positive, got %f", c.ActionSpace.MaxSpeed)
	}
	if c.ActionSpace.MaxSteer <= 0 {
		return fmt.Errorf("max_steer must be positive, got %f", c.ActionSpace.MaxSteer)
	}
	if c.Replay.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Replay.FPS)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if 2*c.Viewport.Border >= 2*c.Viewport.Width || 2*c.Viewport.Border >= 4*c.Viewport.Height {
		return fmt.Errorf("border %d leaves no room in a %dx%d viewport", c.Viewport.Border, c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

func (c *Config) Limits() reward.Limits {
	return reward.Limits{MaxSpeed: c.ActionSpace.MaxSpeed, MaxSteer: c.ActionSpace.MaxSteer}
}
