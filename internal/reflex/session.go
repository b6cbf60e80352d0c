package reflex

import "time"

// Gate tells the session whether the training loop runs this tick.
type Gate interface {
	Active() bool
}

// GateFunc adapts a function to the Gate interface.
type GateFunc func() bool

// Active calls f.
func (f GateFunc) Active() bool {
	return f()
}

// TickResult describes what happened during one Session.Tick.
type TickResult struct {
	Active  bool     // Whether the gate was open
	Emitted Cue      // The cue announced this tick, or CueNone
	Outcome *Outcome // The scoring event this tick, if any
}

// Session owns the state of one training run: the pending cue, the score,
// the cue timer and the random stream. It is driven by a single goroutine.
type Session struct {
	source   CueSource
	timer    *CueTimer
	score    Score
	pending  Cue
	waiting  time.Duration // Active time since the pending cue was emitted
	rounds   int
	hits     int
	emitted  int
	lastOut  *Outcome
	reaction time.Duration // Sum of reaction times over correct responses
}

// NewSession creates a session that draws cues from source and emits them
// after interval of active time without a pending cue.
func NewSession(source CueSource, interval time.Duration) *Session {
	return &Session{
		source: source,
		timer:  NewCueTimer(interval),
	}
}

// Tick advances the session by dt and applies the key edges sampled this tick.
// Nothing changes while the gate is closed.
func (s *Session) Tick(gate Gate, dt time.Duration, edges KeyEdges) TickResult {
	if gate == nil || !gate.Active() {
		return TickResult{}
	}

	result := TickResult{Active: true}

	if s.pending == CueNone {
		if s.timer.Advance(dt) {
			s.emit()
			result.Emitted = s.pending
		}
	} else if dt > 0 {
		s.waiting += dt
	}

	if out, ok := s.respond(edges); ok {
		result.Outcome = &out
	}

	return result
}

func (s *Session) emit() {
	s.pending = s.source.Next()
	s.timer.Restart()
	s.waiting = 0
	s.emitted++
}

func (s *Session) respond(edges KeyEdges) (Outcome, bool) {
	if s.pending == CueNone {
		return Outcome{}, false
	}
	response := edges.Response()
	if response == CueNone {
		return Outcome{}, false
	}

	delta := judge(s.pending, response)
	s.score.add(delta)

	out := Outcome{
		Cue:      s.pending,
		Response: response,
		Correct:  delta > 0,
		Delta:    delta,
		Score:    s.score.Value(),
		Reaction: s.waiting,
	}

	s.rounds++
	if out.Correct {
		s.hits++
		s.reaction += out.Reaction
	}
	s.pending = CueNone
	s.waiting = 0
	s.lastOut = &out
	return out, true
}

// Pending returns the cue awaiting a response, or CueNone.
func (s *Session) Pending() Cue {
	return s.pending
}

// Score returns the current score value.
func (s *Session) Score() int {
	return s.score.Value()
}

// OnScoreChange registers a listener for score changes.
func (s *Session) OnScoreChange(fn ScoreListener) {
	s.score.OnChange(fn)
}

// Timer returns the session's cue timer.
func (s *Session) Timer() *CueTimer {
	return s.timer
}

// Rounds returns the number of scoring events so far.
func (s *Session) Rounds() int {
	return s.rounds
}

// Hits returns the number of correct responses so far.
func (s *Session) Hits() int {
	return s.hits
}

// Emitted returns the number of cues announced so far.
func (s *Session) Emitted() int {
	return s.emitted
}

// LastOutcome returns the most recent scoring event, or nil.
func (s *Session) LastOutcome() *Outcome {
	return s.lastOut
}

// AverageReaction returns the mean reaction time over correct responses.
func (s *Session) AverageReaction() time.Duration {
	if s.hits == 0 {
		return 0
	}
	return s.reaction / time.Duration(s.hits)
}
