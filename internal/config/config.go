package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/collide/internal/arena"
	"github.com/san-kum/collide/internal/scenario"
)

const (
	DefaultPreset   = "bounce"
	DefaultWidth    = arena.DefaultWidth
	DefaultHeight   = arena.DefaultHeight
	DefaultDt       = arena.DefaultDt
	DefaultMaxSpeed = arena.DefaultMaxSpeed
	DefaultG        = arena.DefaultG
	DefaultFrames   = 600
)

// ErrParameterBounds indicates a configuration value outside its valid range.
var ErrParameterBounds = errors.New("config: parameter out of valid bounds")

type Config struct {
	Preset     string  `yaml:"preset"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Dt         float64 `yaml:"dt"`
	MaxSpeed   float64 `yaml:"max_speed"`
	G          float64 `yaml:"g"`
	Gravity    *bool   `yaml:"gravity,omitempty"`
	Strategy   string  `yaml:"strategy,omitempty"`
	Edge       string  `yaml:"edge"`
	SingleWall bool    `yaml:"single_wall"`
	Redetect   bool    `yaml:"redetect"`
	Theta      float64 `yaml:"theta"`
	Seed       int64   `yaml:"seed"`
	Frames     int     `yaml:"frames"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:   DefaultPreset,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Dt:       DefaultDt,
		MaxSpeed: DefaultMaxSpeed,
		G:        DefaultG,
		Edge:     arena.EdgeClamp.String(),
		Frames:   DefaultFrames,
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
	if err := cfg.Validate(); err != nil {
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

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: arena %vx%v", ErrParameterBounds, c.Width, c.Height)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrParameterBounds, c.Dt)
	}
	if c.MaxSpeed <= 0 {
		return fmt.Errorf("%w: max_speed must be positive, got %v", ErrParameterBounds, c.MaxSpeed)
	}
	if c.G < 0 {
		return fmt.Errorf("%w: g must be non-negative, got %v", ErrParameterBounds, c.G)
	}
	if c.Theta < 0 {
		return fmt.Errorf("%w: theta must be non-negative, got %v", ErrParameterBounds, c.Theta)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames must be non-negative, got %d", ErrParameterBounds, c.Frames)
	}
	if _, err := arena.ParseEdgeMode(c.Edge); err != nil {
		return err
	}
	if _, err := arena.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	return nil
}

// Arena converts the file-level settings into a step configuration. The
// gravity flag and strategy are only set when the file names them; a preset
// normally supplies both.
func (c *Config) Arena() (arena.Config, error) {
	if err := c.Validate(); err != nil {
		return arena.Config{}, err
	}
	edge, _ := arena.ParseEdgeMode(c.Edge)
	strategy, _ := arena.ParseStrategy(c.Strategy)

	cfg := arena.Config{
		Width:      c.Width,
		Height:     c.Height,
		Dt:         c.Dt,
		MaxSpeed:   c.MaxSpeed,
		G:          c.G,
		Strategy:   strategy,
		Edge:       edge,
		SingleWall: c.SingleWall,
		Redetect:   c.Redetect,
		Theta:      c.Theta,
	}
	if c.Gravity != nil {
		cfg.Gravity = *c.Gravity
	}
	return cfg, nil
}

// Overrides applies the file's explicit mode flags on top of cfg, typically
// after a preset has set its own.
func (c *Config) Overrides(cfg arena.Config) arena.Config {
	if c.Gravity != nil {
		cfg.Gravity = *c.Gravity
	}
	if c.Strategy != "" {
		if s, err := arena.ParseStrategy(c.Strategy); err == nil {
			cfg.Strategy = s
		}
	}
	return cfg
}

// Build loads the configured scenario preset into a fresh world seeded with
// seed and returns the step configuration with the file's overrides applied.
func (c *Config) Build(seed int64) (*arena.World, arena.Config, error) {
	base, err := c.Arena()
	if err != nil {
		return nil, arena.Config{}, err
	}
	w := arena.NewWorld()
	cfg, err := scenario.Load(w, c.Preset, base, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, arena.Config{}, err
	}
	return w, c.Overrides(cfg), nil
}
