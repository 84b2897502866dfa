package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Window: WindowConfig{
			Title:  "Snake",
			Width:  500,
			Height: 500,
		},
		Arena: ArenaConfig{
			GridSize: 10,
		},
		Head: HeadConfig{
			Spawn:      SpawnConfig{X: 3, Y: 3},
			Direction:  "up",
			SizeInGrid: 0.8,
			Color:      "bright_cyan",
		},
		Movement: MovementConfig{
			StepSeconds: 0.25,
			MaxCatchUp:  4,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
