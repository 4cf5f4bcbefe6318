// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a configuration cannot produce a
// playable game.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// BreakoutConfig contains all configuration for the game.
type BreakoutConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Ball      BallConfig      `yaml:"ball"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Loop      LoopConfig      `yaml:"loop"`
}

// PlayfieldConfig defines the simulated screen, in pixels.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Unit   int     `yaml:"unit"` // Base size: ball side, paddle = 4x2 units, brick = 2 units

	// Pixels covered by one terminal cell. Used by the terminal front-end to
	// derive the playfield from the window size.
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// BallConfig defines ball parameters.
type BallConfig struct {
	Speed float64 `yaml:"speed"` // Pixels per second on each axis
}

// PaddleConfig defines paddle parameters.
type PaddleConfig struct {
	Speed    float64 `yaml:"speed"`     // Pixels per second
	DeadZone float64 `yaml:"dead_zone"` // Fraction of screen width around the target with no movement
}

// GameplayConfig defines scoring and lives.
type GameplayConfig struct {
	Lives       int `yaml:"lives"`
	BrickPoints int `yaml:"brick_points"`
}

// LoopConfig defines simulation and display timing.
type LoopConfig struct {
	TickRate int `yaml:"tick_rate"` // Fixed simulation steps per second
	FPS      int `yaml:"fps"`       // Frame pacing for the render goroutine, 0 = unpaced
}

// Step returns the fixed simulation step.
func (c BreakoutConfig) Step() time.Duration {
	if c.Loop.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.Loop.TickRate)
}

// BrickSize returns the side of one brick cell in pixels.
func (c BreakoutConfig) BrickSize() int {
	return c.Playfield.Unit * 2
}

// Validate checks that the configuration can produce a playable game.
func (c BreakoutConfig) Validate() error {
	p := c.Playfield
	switch {
	case p.Unit <= 0:
		return fmt.Errorf("%w: unit must be positive, got %d", ErrInvalidConfig, p.Unit)
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: playfield must be positive, got %vx%v", ErrInvalidConfig, p.Width, p.Height)
	case c.Ball.Speed <= 0:
		return fmt.Errorf("%w: ball speed must be positive, got %v", ErrInvalidConfig, c.Ball.Speed)
	case c.Paddle.Speed <= 0:
		return fmt.Errorf("%w: paddle speed must be positive, got %v", ErrInvalidConfig, c.Paddle.Speed)
	case c.Paddle.DeadZone < 0 || c.Paddle.DeadZone >= 0.5:
		return fmt.Errorf("%w: dead zone must be in [0, 0.5), got %v", ErrInvalidConfig, c.Paddle.DeadZone)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive, got %d", ErrInvalidConfig, c.Gameplay.Lives)
	case c.Gameplay.BrickPoints < 0:
		return fmt.Errorf("%w: brick points must not be negative, got %d", ErrInvalidConfig, c.Gameplay.BrickPoints)
	case c.Loop.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.Loop.TickRate)
	case c.Loop.FPS < 0:
		return fmt.Errorf("%w: fps must not be negative, got %d", ErrInvalidConfig, c.Loop.FPS)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset. Empty input means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}
