// Package config provides YAML-based engine settings and maps them onto the
// engine builder.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridloop/internal/core"
	"github.com/vovakirdan/gridloop/internal/engine"
	"github.com/vovakirdan/gridloop/internal/registry"
)

// Dimension modes.
const (
	ModeAuto     = "auto"
	ModeDefault  = "default"
	ModeExplicit = "explicit"
	ModeFit      = "fit"
	ModeStretch  = "stretch"
)

// ErrInvalidMode is returned for an unknown dimensions mode.
var ErrInvalidMode = errors.New("config: invalid dimensions mode")

// Settings contains everything the CLI and the SSH server configure.
type Settings struct {
	Title      string               `yaml:"title"`
	Background string               `yaml:"background"`
	Dimensions DimensionsConfig     `yaml:"dimensions"`
	Loop       LoopConfig           `yaml:"loop"`
	Debug      bool                 `yaml:"debug"`
	LogLevel   string               `yaml:"log_level"`
	Sims       map[string]SimConfig `yaml:"sims"`
}

// DimensionsConfig selects how the point grid is sized.
type DimensionsConfig struct {
	Mode      string `yaml:"mode"`
	PointSize int    `yaml:"point_size"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
}

// LoopConfig defines frame pacing.
type LoopConfig struct {
	PaceMS   int `yaml:"pace_ms"`
	TickRate int `yaml:"tick_rate"`
	HoldMS   int `yaml:"hold_ms"`
}

// SimConfig holds per-simulation options.
type SimConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
}

// Validate checks the values Apply and the hosts rely on.
func (s Settings) Validate() error {
	switch s.Dimensions.Mode {
	case "", ModeAuto, ModeDefault, ModeFit:
	case ModeExplicit, ModeStretch:
		if s.Dimensions.PointSize < 1 {
			return fmt.Errorf("config: dimensions: point_size %d: %w", s.Dimensions.PointSize, core.ErrInvalidPointSize)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, s.Dimensions.Mode)
	}

	if _, err := core.ParseHex(s.Background); s.Background != "" && err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	if _, err := log.ParseLevel(s.LogLevel); s.LogLevel != "" && err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	if s.Loop.PaceMS < 0 || s.Loop.TickRate < 0 || s.Loop.HoldMS < 0 {
		return errors.New("config: loop: values must not be negative")
	}
	return nil
}

// Pace returns the native driver's sleep between ticks.
func (s Settings) Pace() time.Duration {
	return time.Duration(s.Loop.PaceMS) * time.Millisecond
}

// TickRate returns the cooperative hosts' frame rate.
func (s Settings) TickRate() int {
	return s.Loop.TickRate
}

// HoldWindow returns how long terminal keys stay held.
func (s Settings) HoldWindow() time.Duration {
	return time.Duration(s.Loop.HoldMS) * time.Millisecond
}

// Level returns the log level, defaulting to info.
func (s Settings) Level() log.Level {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// SimOptions returns the registry options for a simulation. A non-zero seed
// overrides the configured one.
func (s Settings) SimOptions(simID string, seed int64) registry.Options {
	sc := s.Sims[simID]
	opts := registry.Options{Seed: sc.Seed, Width: sc.Width, Height: sc.Height}
	if seed != 0 {
		opts.Seed = seed
	}
	return opts
}

// Apply maps the settings onto a builder. Call it after the simulation's
// own Configure so configured dimensions take precedence.
func (s Settings) Apply(b *engine.Builder) error {
	if s.Background != "" {
		c, err := core.ParseHex(s.Background)
		if err != nil {
			return fmt.Errorf("config: background: %w", err)
		}
		b.WithBackground(c)
	}

	d := s.Dimensions
	switch d.Mode {
	case "", ModeAuto:
	case ModeDefault:
		def := core.DefaultDimensions()
		b.WithDimensions(def.PointSize(), def.Width(), def.Height())
	case ModeExplicit:
		b.WithDimensions(d.PointSize, d.Width, d.Height)
	case ModeFit:
		b.WithPointDimensions(d.Width, d.Height)
	case ModeStretch:
		b.WithStretchedDimensions(d.PointSize)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, d.Mode)
	}

	if s.Title != "" {
		b.WithTitle(s.Title)
	}
	b.WithDebug(s.Debug)
	return nil
}
