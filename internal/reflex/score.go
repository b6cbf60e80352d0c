package reflex

// ScoreListener is called with the previous and new value after the score changes.
type ScoreListener func(old, current int)

// Score is the signed running score of a session. It has no floor or ceiling
// and can only be changed by the session's response handling.
type Score struct {
	value     int
	listeners []ScoreListener
}

// Value returns the current score.
func (s *Score) Value() int {
	return s.value
}

// OnChange registers fn to be called whenever the value actually changes.
func (s *Score) OnChange(fn ScoreListener) {
	if fn == nil {
		return
	}
	s.listeners = append(s.listeners, fn)
}

func (s *Score) add(delta int) {
	if delta == 0 {
		return
	}
	old := s.value
	s.value += delta
	for _, fn := range s.listeners {
		fn(old, s.value)
	}
}
