package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/flow"
	"github.com/vovakirdan/tui-reflex/internal/metrics"
	"github.com/vovakirdan/tui-reflex/internal/reflex"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

// Recorder observes one training session. It logs every event, feeds the
// metrics manager and persists rounds and the final score. Store and metrics
// are optional.
type Recorder struct {
	sessionID string
	logger    *log.Logger
	metrics   *metrics.Manager
	store     *storage.Store

	mu     sync.Mutex
	score  int
	rounds int
	once   sync.Once
}

// NewRecorder creates a recorder for the given session.
func NewRecorder(sessionID string, logger *log.Logger, m *metrics.Manager, store *storage.Store) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		sessionID: sessionID,
		logger:    logger.With("session", sessionID),
		metrics:   m,
		store:     store,
	}
}

// SessionID returns the identifier rounds and scores are stored under.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// CueEmitted implements reflex.Observer.
func (r *Recorder) CueEmitted(cue reflex.Cue) {
	r.logger.Debug("cue", "cue", cue.Name())
	r.metrics.RecordCue(cue.Name())
}

// Responded implements reflex.Observer.
func (r *Recorder) Responded(out reflex.Outcome) {
	r.mu.Lock()
	r.score = out.Score
	r.rounds++
	r.mu.Unlock()

	msg := "miss"
	if out.Correct {
		msg = "correct"
	}
	r.logger.Info(msg,
		"cue", out.Cue.Name(),
		"response", out.Response.Name(),
		"score", out.Score,
		"reaction", out.Reaction.Round(time.Millisecond),
	)
	r.metrics.RecordResponse(out.Correct, out.Reaction)

	if r.store == nil {
		return
	}
	_, err := r.store.SaveRound(storage.RoundEntry{
		GameID:     reflex.GameID,
		SessionID:  r.sessionID,
		Cue:        out.Cue.Name(),
		Response:   out.Response.Name(),
		Correct:    out.Correct,
		ReactionMS: out.Reaction.Milliseconds(),
		ScoreAfter: out.Score,
	})
	if err != nil {
		r.logger.Warn("could not save round", "error", err)
	}
}

// StateChanged implements reflex.Observer.
func (r *Recorder) StateChanged(from, to flow.State) {
	r.logger.Info("state", "from", from, "to", to)
}

// Totals returns the latest score and the number of scored rounds.
func (r *Recorder) Totals() (score, rounds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score, r.rounds
}

// Finish saves the final score if at least one round was scored. Only the
// first call has any effect.
func (r *Recorder) Finish() {
	r.once.Do(func() {
		score, rounds := r.Totals()
		r.logger.Info("session finished", "score", score, "rounds", rounds)
		if r.store == nil || rounds == 0 {
			return
		}
		if _, err := r.store.SaveScore(reflex.GameID, r.sessionID, score, rounds); err != nil {
			r.logger.Warn("could not save score", "error", err)
		}
	})
}
