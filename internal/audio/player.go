// Package audio plays reflex cues through the system speaker using beep.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/reflex"
)

// resampleQuality is passed to beep.Resample for clips recorded at another rate.
const resampleQuality = 4

// Player presents cues as sound. Clips are decoded once and replayed from
// memory through a single mixer.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	clips       map[reflex.Cue]*beep.Buffer
	mixer       *beep.Mixer
	logger      *log.Logger
	initialized bool
}

// NewPlayer loads one clip per cue. A cue without a readable <name>.ogg in
// the asset directory gets a synthesized tone instead.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		clips:  make(map[reflex.Cue]*beep.Buffer, len(reflex.Cues)),
		mixer:  &beep.Mixer{},
		logger: logger,
	}

	dir := config.ExpandHome(cfg.AssetDir)
	for _, cue := range reflex.Cues {
		buf, err := p.loadClip(dir, cue)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Warn("cannot decode cue clip, using tone", "cue", cue.Name(), "error", err)
			}
			buf, err = p.toneClip(cue, cfg.ToneDuration)
			if err != nil {
				return nil, err
			}
		}
		p.clips[cue] = buf
	}
	return p, nil
}

func (p *Player) format() beep.Format {
	return beep.Format{SampleRate: p.rate, NumChannels: 2, Precision: 2}
}

func (p *Player) loadClip(dir string, cue reflex.Cue) (*beep.Buffer, error) {
	if dir == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(filepath.Join(dir, cue.Name()+".ogg"))
	if err != nil {
		return nil, err
	}
	streamer, format, err := vorbis.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", cue.Name(), err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != p.rate {
		src = beep.Resample(resampleQuality, format.SampleRate, p.rate, streamer)
	}
	buf := beep.NewBuffer(p.format())
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: read %s: %w", cue.Name(), err)
	}
	return buf, nil
}

func (p *Player) toneClip(cue reflex.Cue, d time.Duration) (*beep.Buffer, error) {
	tone, err := toneFor(cue, p.rate, d)
	if err != nil {
		return nil, err
	}
	buf := beep.NewBuffer(p.format())
	buf.Append(&effects.Volume{Streamer: tone, Base: 2, Volume: fallbackLevel})
	return buf, nil
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PresentCue plays the clip for cue. It is a no-op before Initialize.
func (p *Player) PresentCue(cue reflex.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := p.streamer(cue)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// streamer returns a fresh volume-adjusted stream over the cue's clip.
func (p *Player) streamer(cue reflex.Cue) beep.Streamer {
	buf, ok := p.clips[cue]
	if !ok {
		return nil
	}
	return &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   p.volume,
		Silent:   p.volume <= -5,
	}
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Nop presents nothing. SSH sessions use it since audio cannot reach the
// remote terminal.
type Nop struct{}

// PresentCue does nothing.
func (Nop) PresentCue(reflex.Cue) {}
