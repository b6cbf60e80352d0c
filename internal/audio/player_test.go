package audio

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/reflex"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func testAudioConfig(dir string) config.AudioConfig {
	return config.AudioConfig{
		Enabled:      true,
		AssetDir:     dir,
		SampleRate:   44100,
		ToneDuration: 250 * time.Millisecond,
	}
}

func TestToneLengths(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 250 * time.Millisecond

	tests := []struct {
		cue  reflex.Cue
		want int
	}{
		{reflex.CueLeft, rate.N(d)},
		{reflex.CueRight, rate.N(d)},
		{reflex.CueJump, 2 * rate.N(d/2)},
	}

	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s, err := toneFor(tt.cue, rate, d)
			if err != nil {
				t.Fatalf("toneFor: %v", err)
			}
			if got := drain(s); got != tt.want {
				t.Errorf("samples = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToneForNone(t *testing.T) {
	if _, err := toneFor(reflex.CueNone, 44100, time.Second); err == nil {
		t.Error("expected error for CueNone")
	}
}

func TestToneTooHighForRate(t *testing.T) {
	// 880Hz is above the Nyquist limit of a 1kHz stream.
	if _, err := toneFor(reflex.CueRight, 1000, time.Second); err == nil {
		t.Error("expected error when the tone exceeds half the sample rate")
	}
}

func TestNewPlayerFallsBackToTones(t *testing.T) {
	p, err := NewPlayer(testAudioConfig(t.TempDir()), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	for _, cue := range reflex.Cues {
		buf, ok := p.clips[cue]
		if !ok {
			t.Fatalf("no clip for %s", cue)
		}
		if buf.Len() == 0 {
			t.Errorf("clip for %s is empty", cue)
		}
	}
}

func TestNewPlayerIgnoresCorruptClip(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "left.ogg"), []byte("not vorbis"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := NewPlayer(testAudioConfig(dir), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	rate := beep.SampleRate(44100)
	if got, want := p.clips[reflex.CueLeft].Len(), rate.N(250*time.Millisecond); got != want {
		t.Errorf("left clip len = %d, want fallback tone len %d", got, want)
	}
}

func TestPresentCueBeforeInitialize(t *testing.T) {
	p, err := NewPlayer(testAudioConfig(""), nil)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	// Must not touch the speaker.
	p.PresentCue(reflex.CueJump)
	p.Close()
}

func TestStreamerHonoursMute(t *testing.T) {
	cfg := testAudioConfig("")
	cfg.Volume = -5
	p, err := NewPlayer(cfg, nil)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	s := p.streamer(reflex.CueLeft)
	buf := make([][2]float64, 256)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 || buf[i][1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, buf[i])
		}
	}
	if p.streamer(reflex.CueNone) != nil {
		t.Error("CueNone should have no streamer")
	}
}

var _ reflex.Presenter = (*Player)(nil)
var _ reflex.Presenter = Nop{}
