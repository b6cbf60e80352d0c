// reflex is a terminal reflex trainer: a cue is announced every few seconds
// and the player answers with the matching key.
//
// Usage:
//
//	reflex play              - Train locally with audio cues
//	reflex serve             - Start SSH server for remote training
//	reflex scores            - Print high scores and statistics
//	reflex board             - Interactive scoreboard
//	reflex config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for a reproducible cue sequence (0 included)
//	--db <path>          - Set database path (default: ~/.reflex/scores.db)
//	--config <path>      - Use a custom configuration file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reflex",
	Short: "Reflex Trainer - react to left/right/jump cues in your terminal",
	Long: `Reflex Trainer announces a cue (left, right or jump) every few seconds.
Press the matching key before the next one: correct answers score +1,
wrong answers score -1.

Available commands:
  play     - Train locally with audio cues
  serve    - Start SSH server for remote training
  scores   - Print high scores and statistics
  board    - Interactive scoreboard
  config   - Print the effective configuration

Examples:
  reflex play
  reflex play --difficulty hard --show-cue
  reflex serve --ssh :2222 --metrics :9090
  reflex scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for a reproducible cue sequence (random when unset; with serve, every session uses it)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.reflex/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger writing to w at the level given by --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.reflex/reflex.log for appending.
func openLogFile() (*os.File, error) {
	path := config.ExpandHome(filepath.Join("~", ".reflex", "reflex.log"))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// loadConfig loads the configuration and applies a difficulty preset.
func loadConfig(difficulty string) (config.ReflexConfig, error) {
	cfg, err := config.LoadReflex(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParseDifficulty(difficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// resolveSeed returns the --seed value and true when the flag was given,
// otherwise a clock-based seed and false.
func resolveSeed(cmd *cobra.Command) (int64, bool) {
	if cmd.Flags().Changed("seed") {
		return flagSeed, true
	}
	return time.Now().UnixNano(), false
}
