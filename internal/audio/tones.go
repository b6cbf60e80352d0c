package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-reflex/internal/reflex"
)

// Fallback tone frequencies in Hz.
const (
	toneLeft      = 330.0
	toneRight     = 880.0
	toneJumpLow   = 523.25
	toneJumpHigh  = 783.99
	fallbackLevel = -1.0 // effects.Volume exponent applied to synthesized tones
)

// toneFor builds the synthesized pattern used when a cue has no audio file.
// Left is a single low tone, right a single high tone and jump a rising pair.
func toneFor(cue reflex.Cue, rate beep.SampleRate, d time.Duration) (beep.Streamer, error) {
	switch cue {
	case reflex.CueLeft:
		return sine(rate, toneLeft, d)
	case reflex.CueRight:
		return sine(rate, toneRight, d)
	case reflex.CueJump:
		low, err := sine(rate, toneJumpLow, d/2)
		if err != nil {
			return nil, err
		}
		high, err := sine(rate, toneJumpHigh, d/2)
		if err != nil {
			return nil, err
		}
		return beep.Seq(low, high), nil
	default:
		return nil, fmt.Errorf("audio: no tone for cue %s", cue)
	}
}

func sine(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	s, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("audio: sine %.0fHz: %w", freq, err)
	}
	return beep.Take(rate.N(d), s), nil
}
