package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Playfield: PlayfieldConfig{
			Width:      800,
			Height:     1280,
			Unit:       16,
			CellWidth:  8,
			CellHeight: 16,
		},
		Ball: BallConfig{
			Speed: 200,
		},
		Paddle: PaddleConfig{
			Speed:    450,
			DeadZone: 0.025,
		},
		Gameplay: GameplayConfig{
			Lives:       3,
			BrickPoints: 10,
		},
		Loop: LoopConfig{
			TickRate: 30, // ~33.3ms per step
			FPS:      60,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
