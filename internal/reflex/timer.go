package reflex

import "time"

// DefaultCueInterval is the time between the player's response and the next cue.
const DefaultCueInterval = 3 * time.Second

// CueTimer accumulates active play time until the cue interval has elapsed.
type CueTimer struct {
	interval time.Duration
	elapsed  time.Duration
}

// NewCueTimer creates a timer with the given interval.
// Non-positive intervals fall back to DefaultCueInterval.
func NewCueTimer(interval time.Duration) *CueTimer {
	if interval <= 0 {
		interval = DefaultCueInterval
	}
	return &CueTimer{interval: interval}
}

// Advance adds dt to the elapsed time and reports whether the interval is reached.
// Negative deltas are ignored.
func (t *CueTimer) Advance(dt time.Duration) bool {
	if dt > 0 {
		t.elapsed += dt
	}
	return t.Ready()
}

// Ready reports whether the accumulated time has reached the interval.
func (t *CueTimer) Ready() bool {
	return t.elapsed >= t.interval
}

// Restart sets the elapsed time back to zero.
func (t *CueTimer) Restart() {
	t.elapsed = 0
}

// Elapsed returns the accumulated time.
func (t *CueTimer) Elapsed() time.Duration {
	return t.elapsed
}

// Interval returns the configured interval.
func (t *CueTimer) Interval() time.Duration {
	return t.interval
}

// Progress returns elapsed/interval clamped to [0, 1].
func (t *CueTimer) Progress() float64 {
	p := float64(t.elapsed) / float64(t.interval)
	if p > 1 {
		return 1
	}
	return p
}
