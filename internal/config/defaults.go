package config

import (
	_ "embed"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/reflex.yaml
var defaultReflexYAML []byte

// DefaultReflexConfig returns the built-in configuration. It mirrors the
// embedded YAML and is used when that cannot be parsed.
func DefaultReflexConfig() ReflexConfig {
	return ReflexConfig{
		Timing: TimingConfig{
			CueInterval:  3 * time.Second,
			MaxTickDelta: 250 * time.Millisecond,
		},
		Keys: KeysConfig{
			Left:  []string{"left", "a", "h"},
			Right: []string{"right", "d", "l"},
			Jump:  []string{"up", "w", "k", " "},
			Start: []string{"enter"},
			Pause: []string{"p", "esc"},
			Quit:  []string{"q", "ctrl+c"},
		},
		Audio: AudioConfig{
			Enabled:      true,
			AssetDir:     "~/.reflex/audio",
			Volume:       0,
			SampleRate:   44100,
			ToneDuration: 250 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultReflexYAML
}

// Marshal renders a configuration as YAML.
func Marshal(cfg ReflexConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
