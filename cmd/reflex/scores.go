package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/reflex"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

var (
	flagScoresLimit int
	flagSession     string
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and statistics",
	Long: `Display the top high scores and aggregate training statistics.

Examples:
  reflex scores
  reflex scores --limit 25
  reflex scores --session <id>   # Round-by-round log of one session
  reflex scores --clear          # Delete all scores and rounds`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagSession, "session", "", "Show the rounds of one session")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores and rounds")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(reflex.GameID); err != nil {
			return err
		}
		fmt.Println("All scores cleared.")
		return nil
	case flagSession != "":
		return printSession(store, flagSession)
	}

	scores, err := store.TopScores(reflex.GameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Reflex Trainer")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'reflex play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-16s  %s\n", "Rank", "Score", "Rounds", "Date", "Session")
	fmt.Printf("  %-4s  %-6s  %-6s  %-16s  %s\n", "----", "-----", "------", "----", "-------")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-6d  %-16s  %s\n", i+1, entry.Score, entry.Rounds, dateStr, entry.SessionID)
	}

	stats, err := store.GetGameStats(reflex.GameID)
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Best: %d   Average: %.1f   Sessions: %d\n", stats.HighScore, stats.AvgScore, stats.Sessions)
	fmt.Printf("Hit rate: %.0f%% of %d rounds   Average reaction: %s\n",
		stats.HitRate()*100, stats.Rounds, stats.AvgReaction.Round(time.Millisecond))
	return nil
}

func printSession(store *storage.Store, sessionID string) error {
	rounds, err := store.SessionRounds(sessionID)
	if err != nil {
		return fmt.Errorf("error retrieving rounds: %w", err)
	}
	if len(rounds) == 0 {
		fmt.Printf("No rounds recorded for session %s.\n", sessionID)
		return nil
	}

	fmt.Printf("Session %s\n\n", sessionID)
	fmt.Printf("  %-3s  %-6s  %-8s  %-7s  %-9s  %s\n", "#", "Cue", "Response", "Result", "Reaction", "Score")
	fmt.Printf("  %-3s  %-6s  %-8s  %-7s  %-9s  %s\n", "-", "---", "--------", "------", "--------", "-----")
	for i, r := range rounds {
		result := "wrong"
		if r.Correct {
			result = "correct"
		}
		reaction := (time.Duration(r.ReactionMS) * time.Millisecond).String()
		fmt.Printf("  %-3d  %-6s  %-8s  %-7s  %-9s  %d\n", i+1, cueLabel(r.Cue), cueLabel(r.Response), result, reaction, r.ScoreAfter)
	}
	return nil
}

// cueLabel formats a stored cue name, flagging names no cue produces.
func cueLabel(name string) string {
	if c, ok := reflex.ParseCue(name); ok && c.Valid() {
		return c.String()
	}
	return "?" + name
}
