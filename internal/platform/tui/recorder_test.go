package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/flow"
	"github.com/vovakirdan/tui-reflex/internal/metrics"
	"github.com/vovakirdan/tui-reflex/internal/reflex"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecorderPersistsRoundsAndScore(t *testing.T) {
	store := openStore(t)
	rec := NewRecorder("session-1", log.New(io.Discard), metrics.NewManager(), store)

	rec.StateChanged(flow.StateIdle, flow.StateActive)
	rec.CueEmitted(reflex.CueLeft)
	rec.Responded(reflex.Outcome{Cue: reflex.CueLeft, Response: reflex.CueLeft, Correct: true, Delta: 1, Score: 1, Reaction: 400 * time.Millisecond})
	rec.CueEmitted(reflex.CueJump)
	rec.Responded(reflex.Outcome{Cue: reflex.CueJump, Response: reflex.CueRight, Correct: false, Delta: -1, Score: 0, Reaction: 700 * time.Millisecond})

	if score, rounds := rec.Totals(); score != 0 || rounds != 2 {
		t.Errorf("Totals = %d, %d; want 0, 2", score, rounds)
	}

	rounds, err := store.SessionRounds(rec.SessionID())
	if err != nil {
		t.Fatalf("SessionRounds: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("stored %d rounds, want 2", len(rounds))
	}
	if rounds[0].ReactionMS != 400 || rounds[1].Response != "right" {
		t.Errorf("rounds = %+v", rounds)
	}

	rec.Finish()
	rec.Finish()

	scores, err := store.TopScores(reflex.GameID, 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("stored %d scores, want exactly 1", len(scores))
	}
	if scores[0].SessionID != "session-1" || scores[0].Rounds != 2 {
		t.Errorf("score = %+v", scores[0])
	}
}

func TestRecorderSkipsEmptySession(t *testing.T) {
	store := openStore(t)
	rec := NewRecorder("idle", log.New(io.Discard), nil, store)

	rec.CueEmitted(reflex.CueRight)
	rec.Finish()

	if scores, _ := store.TopScores(reflex.GameID, 10); len(scores) != 0 {
		t.Errorf("stored %d scores for a session without rounds", len(scores))
	}
}

func TestRecorderLogsOutcomes(t *testing.T) {
	var buf strings.Builder
	rec := NewRecorder("abc", log.New(&buf), nil, nil)

	rec.Responded(reflex.Outcome{Cue: reflex.CueLeft, Response: reflex.CueLeft, Correct: true, Score: 1})
	rec.Responded(reflex.Outcome{Cue: reflex.CueLeft, Response: reflex.CueJump, Score: 0})
	rec.Finish()

	out := buf.String()
	for _, want := range []string{"correct", "miss", "session=abc", "session finished"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

var _ reflex.Observer = (*Recorder)(nil)
