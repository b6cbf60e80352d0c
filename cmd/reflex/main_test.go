package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/reflex"
)

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23234", "23234"},
		{"0.0.0.0:2222", "2222"},
		{"[::1]:22", "22"},
		{"nonsense", "nonsense"},
	}
	for _, tt := range tests {
		if got := portOf(tt.addr); got != tt.want {
			t.Errorf("portOf(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	prev := flagLogLevel
	t.Cleanup(func() { flagLogLevel = prev })

	flagLogLevel = "warn"
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "test")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected log output: %q", out)
	}

	flagLogLevel = "loud"
	if _, err := newLogger(&buf, "test"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoadConfigAppliesDifficulty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	prev := flagConfig
	flagConfig = ""
	t.Cleanup(func() { flagConfig = prev })

	cfg, err := loadConfig("hard")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Timing.CueInterval != 2*time.Second {
		t.Errorf("interval = %v, want 2s", cfg.Timing.CueInterval)
	}

	if _, err := loadConfig("impossible"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestResolveSeed(t *testing.T) {
	prev := flagSeed
	t.Cleanup(func() { flagSeed = prev })

	cmd := &cobra.Command{}
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "")

	if _, fixed := resolveSeed(cmd); fixed {
		t.Error("unset --seed should not be fixed")
	}

	if err := cmd.Flags().Set("seed", "0"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	seed, fixed := resolveSeed(cmd)
	if !fixed || seed != 0 {
		t.Errorf("resolveSeed = %d, %v; want 0, true", seed, fixed)
	}
}

func TestCueLabel(t *testing.T) {
	tests := map[string]string{
		"left":  "Left",
		"jump":  "Jump",
		"none":  "?none",
		"duck":  "?duck",
		"RIGHT": "Right",
	}
	for name, want := range tests {
		if got := cueLabel(name); got != want {
			t.Errorf("cueLabel(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	game := reflex.New(
		reflex.WithInterval(time.Second),
		reflex.WithSource(reflex.NewSequenceSource(reflex.CueLeft, reflex.CueRight)),
	)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	step := func(d time.Duration, actions ...core.Action) core.StepResult {
		in := core.NewInputFrame()
		in.Delta = d
		for _, a := range actions {
			in.Set(a)
		}
		return game.Step(in)
	}
	step(0, core.ActionConfirm)
	step(time.Second)
	step(300*time.Millisecond, core.ActionLeft)
	step(time.Second)
	state := step(0, core.ActionJump).State

	var buf bytes.Buffer
	printSummary(&buf, game, state, -1)
	out := buf.String()
	for _, want := range []string{
		"Score: 0 over 2 rounds",
		"Hits: 1 (50%)",
		"Cues: 2",
		"Average reaction: 300ms",
		"New high score!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
