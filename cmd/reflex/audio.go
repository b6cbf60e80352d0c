package main

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/audio"
	"github.com/vovakirdan/tui-reflex/internal/config"
)

// newAudioPlayer loads cue clips and opens the speaker.
func newAudioPlayer(cfg config.AudioConfig, logger *log.Logger) (*audio.Player, error) {
	player, err := audio.NewPlayer(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := player.Initialize(); err != nil {
		return nil, err
	}
	return player, nil
}
