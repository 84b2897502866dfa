// Package config provides YAML-based configuration loading and speed
// presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Arena    ArenaConfig    `yaml:"arena"`
	Head     HeadConfig     `yaml:"head"`
	Movement MovementConfig `yaml:"movement"`
}

// WindowConfig describes the primary window used by headless runs.
// Interactive runs derive the extent from the terminal instead.
type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ArenaConfig defines the playable grid.
type ArenaConfig struct {
	GridSize int `yaml:"grid_size"` // Cells per side
}

// HeadConfig defines the head entity at spawn.
type HeadConfig struct {
	Spawn      SpawnConfig `yaml:"spawn"`
	Direction  string      `yaml:"direction"`    // up, down, left, right
	SizeInGrid float64     `yaml:"size_in_grid"` // Fraction of a cell the sprite covers
	Color      string      `yaml:"color"`
}

// SpawnConfig is a grid coordinate.
type SpawnConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// MovementConfig defines the fixed movement cadence.
type MovementConfig struct {
	StepSeconds float64 `yaml:"step_seconds"`
	MaxCatchUp  int     `yaml:"max_catch_up"` // Max fixed steps per frame
}

// StepInterval returns the movement cadence as a duration.
func (m MovementConfig) StepInterval() time.Duration {
	return time.Duration(m.StepSeconds * float64(time.Second))
}

var validDirections = map[string]bool{"up": true, "down": true, "left": true, "right": true}

// Validate reports every invalid field of the config.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Arena.GridSize < 1 {
		errs = append(errs, fmt.Errorf("arena.grid_size must be >= 1, got %d", c.Arena.GridSize))
	}
	if c.Head.SizeInGrid <= 0 || c.Head.SizeInGrid > 1 {
		errs = append(errs, fmt.Errorf("head.size_in_grid must be in (0, 1], got %g", c.Head.SizeInGrid))
	}
	if !validDirections[strings.ToLower(c.Head.Direction)] {
		errs = append(errs, fmt.Errorf("head.direction must be one of up, down, left, right, got %q", c.Head.Direction))
	}
	if c.Movement.StepInterval() <= 0 {
		errs = append(errs, fmt.Errorf("movement.step_seconds must be > 0, got %g", c.Movement.StepSeconds))
	}
	if c.Movement.MaxCatchUp < 0 {
		errs = append(errs, fmt.Errorf("movement.max_catch_up must be >= 0, got %d", c.Movement.MaxCatchUp))
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window size must not be negative, got %gx%g", c.Window.Width, c.Window.Height))
	}

	return errors.Join(errs...)
}

// SpeedPreset represents a named movement cadence.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// StepSecondsForPreset returns the step interval for a preset.
// ok is false for unknown presets.
func StepSecondsForPreset(preset SpeedPreset) (seconds float64, ok bool) {
	switch preset {
	case SpeedSlow:
		return 0.4, true
	case SpeedNormal:
		return 0.25, true
	case SpeedFast:
		return 0.15, true
	default:
		return 0, false
	}
}

// ApplySpeedPreset overrides the movement cadence. The empty preset is a no-op.
func ApplySpeedPreset(cfg *SnakeConfig, preset SpeedPreset) error {
	if preset == "" {
		return nil
	}
	seconds, ok := StepSecondsForPreset(preset)
	if !ok {
		return fmt.Errorf("unknown speed preset %q (want slow, normal or fast)", preset)
	}
	cfg.Movement.StepSeconds = seconds
	return nil
}
