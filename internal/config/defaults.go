package config

import (
	_ "embed"
)

//go:embed defaults/gridloop.yaml
var defaultYAML []byte

// DefaultSettings returns the built-in settings, matching the embedded
// defaults/gridloop.yaml.
func DefaultSettings() Settings {
	return Settings{
		Background: "#000000",
		Dimensions: DimensionsConfig{
			Mode:      ModeAuto,
			PointSize: 1,
		},
		Loop: LoopConfig{
			PaceMS:   16,
			TickRate: 60,
			HoldMS:   400,
		},
		LogLevel: "info",
		Sims: map[string]SimConfig{
			"movement": {Width: 20},
			"maze":     {Width: 40, Height: 20},
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultYAML
}
