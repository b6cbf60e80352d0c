// Package config provides YAML-based configuration loading for the reflex
// trainer, with file and environment overrides layered over embedded defaults.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ReflexConfig contains all configuration for the reflex trainer.
type ReflexConfig struct {
	Timing  TimingConfig  `yaml:"timing" koanf:"timing"`
	Keys    KeysConfig    `yaml:"keys" koanf:"keys"`
	Audio   AudioConfig   `yaml:"audio" koanf:"audio"`
	Display DisplayConfig `yaml:"display" koanf:"display"`
}

// TimingConfig defines the cue cadence.
type TimingConfig struct {
	CueInterval  time.Duration `yaml:"cue_interval" koanf:"cue_interval"`
	MaxTickDelta time.Duration `yaml:"max_tick_delta" koanf:"max_tick_delta"`
}

// KeysConfig lists the terminal key names bound to each action.
type KeysConfig struct {
	Left  []string `yaml:"left" koanf:"left"`
	Right []string `yaml:"right" koanf:"right"`
	Jump  []string `yaml:"jump" koanf:"jump"`
	Start []string `yaml:"start" koanf:"start"`
	Pause []string `yaml:"pause" koanf:"pause"`
	Quit  []string `yaml:"quit" koanf:"quit"`
}

// AudioConfig defines cue playback.
type AudioConfig struct {
	Enabled      bool          `yaml:"enabled" koanf:"enabled"`
	AssetDir     string        `yaml:"asset_dir" koanf:"asset_dir"`
	Volume       float64       `yaml:"volume" koanf:"volume"`
	SampleRate   int           `yaml:"sample_rate" koanf:"sample_rate"`
	ToneDuration time.Duration `yaml:"tone_duration" koanf:"tone_duration"`
}

// DisplayConfig defines optional on-screen aids.
type DisplayConfig struct {
	ShowCue bool `yaml:"show_cue" koanf:"show_cue"`
}

// Validate checks that every setting is usable.
func (c ReflexConfig) Validate() error {
	if c.Timing.CueInterval <= 0 {
		return fmt.Errorf("%w: timing.cue_interval must be positive, got %s", ErrInvalidConfig, c.Timing.CueInterval)
	}
	if c.Timing.MaxTickDelta <= 0 {
		return fmt.Errorf("%w: timing.max_tick_delta must be positive, got %s", ErrInvalidConfig, c.Timing.MaxTickDelta)
	}

	bindings := map[string][]string{
		"left":  c.Keys.Left,
		"right": c.Keys.Right,
		"jump":  c.Keys.Jump,
		"start": c.Keys.Start,
		"pause": c.Keys.Pause,
		"quit":  c.Keys.Quit,
	}
	seen := make(map[string]string)
	for _, action := range []string{"left", "right", "jump", "start", "pause", "quit"} {
		keys := bindings[action]
		if len(keys) == 0 {
			return fmt.Errorf("%w: keys.%s must list at least one key", ErrInvalidConfig, action)
		}
		for _, k := range keys {
			if other, dup := seen[k]; dup {
				return fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalidConfig, k, other, action)
			}
			seen[k] = action
		}
	}

	if c.Audio.Volume < -5 || c.Audio.Volume > 2 {
		return fmt.Errorf("%w: audio.volume must be within [-5, 2], got %g", ErrInvalidConfig, c.Audio.Volume)
	}
	if c.Audio.SampleRate < 8000 {
		return fmt.Errorf("%w: audio.sample_rate too low: %d", ErrInvalidConfig, c.Audio.SampleRate)
	}
	if c.Audio.ToneDuration <= 0 {
		return fmt.Errorf("%w: audio.tone_duration must be positive", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named cue cadence.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI value into a preset. The empty string keeps
// the configured interval.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalidConfig, s)
	}
}

// IntervalForPreset returns the cue interval of a preset.
func IntervalForPreset(preset DifficultyPreset) time.Duration {
	switch preset {
	case DifficultyEasy:
		return 4 * time.Second
	case DifficultyHard:
		return 2 * time.Second
	default:
		return 3 * time.Second
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ReflexConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Timing.CueInterval = IntervalForPreset(preset)
}
