package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-reflex/internal/audio"
	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/platform/tui"
	"github.com/vovakirdan/tui-reflex/internal/reflex"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

var (
	flagDifficulty string
	flagNoAudio    bool
	flagShowCue    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Train locally",
	Long: `Start a training session in this terminal.

Controls:
  Enter              - Start
  Left/A/H           - Answer "left"
  Right/D/L          - Answer "right"
  Up/W/K/Space       - Answer "jump"
  P/Esc              - Pause
  Q/Ctrl+C           - Quit (the score is saved)

Difficulty options:
  easy   - A cue every 4 seconds
  normal - A cue every 3 seconds
  hard   - A cue every 2 seconds

Cue sounds are read from <asset_dir>/{left,right,jump}.ogg; missing
files are replaced by synthesized tones. Logs go to ~/.reflex/reflex.log.

Examples:
  reflex play
  reflex play --difficulty hard
  reflex play --no-audio --show-cue
  reflex play --config ./my-reflex.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable cue sounds")
	playCmd.Flags().BoolVar(&flagShowCue, "show-cue", false, "Also show the cue on screen")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(flagDifficulty)
	if err != nil {
		return err
	}
	if flagNoAudio {
		cfg.Audio.Enabled = false
	}
	if flagShowCue {
		cfg.Display.ShowCue = true
	}

	// The alternate screen owns the terminal, so logs go to a file.
	var logOut io.Writer = io.Discard
	if f, fileErr := openLogFile(); fileErr == nil {
		defer f.Close()
		logOut = f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", fileErr)
	}
	logger, err := newLogger(logOut, "reflex")
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed, _ := resolveSeed(cmd)
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	best := 0
	if store != nil {
		defer store.Close()
		if best, err = store.HighScore(reflex.GameID); err != nil {
			logger.Warn("could not read high score", "error", err)
		}
	}

	var presenter reflex.Presenter = audio.Nop{}
	showCue := cfg.Display.ShowCue
	if cfg.Audio.Enabled {
		player, playerErr := newAudioPlayer(cfg.Audio, logger)
		if playerErr != nil {
			logger.Warn("audio disabled", "error", playerErr)
			showCue = true
		} else {
			defer player.Close()
			presenter = player
		}
	}

	recorder := tui.NewRecorder(uuid.NewString(), logger, nil, store)
	game := reflex.New(
		reflex.WithInterval(cfg.Timing.CueInterval),
		reflex.WithPresenter(presenter),
		reflex.WithObserver(recorder),
		reflex.WithCueHint(showCue),
		reflex.WithBest(best),
	)

	logger.Info("session starting", "interval", cfg.Timing.CueInterval, "audio", cfg.Audio.Enabled, "seed", seed)
	state, err := tui.Run(game, runtime, tui.Options{
		Keys:         tui.NewKeyMap(cfg.Keys),
		MaxTickDelta: cfg.Timing.MaxTickDelta,
		Recorder:     recorder,
	})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	printSummary(os.Stdout, game, state, best)
	if store != nil && state.Rounds > 0 {
		fmt.Printf("Round log: reflex scores --session %s\n", recorder.SessionID())
	}
	return nil
}

// printSummary writes the end-of-session statistics.
func printSummary(w io.Writer, game *reflex.Game, state core.GameState, best int) {
	session := game.Session()
	fmt.Fprintf(w, "Score: %d over %d rounds\n", state.Score, state.Rounds)
	if session == nil || state.Rounds == 0 {
		return
	}

	hitRate := float64(session.Hits()) / float64(state.Rounds) * 100
	fmt.Fprintf(w, "Hits: %d (%.0f%%)   Cues: %d   Pauses: %d\n",
		session.Hits(), hitRate, session.Emitted(), game.Pauses())
	if session.Hits() > 0 {
		fmt.Fprintf(w, "Average reaction: %s\n", session.AverageReaction().Round(time.Millisecond))
	}
	if state.Score > best {
		fmt.Fprintln(w, "New high score!")
	}
}
