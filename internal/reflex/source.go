package reflex

import "math/rand"

// CueSource picks the next cue to announce.
type CueSource interface {
	Next() Cue
}

// RandomSource draws cues uniformly from Cues using a single seeded stream.
// The same seed always yields the same sequence.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a source seeded with seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next returns one of Left, Right or Jump with equal probability.
func (s *RandomSource) Next() Cue {
	return Cues[s.rng.Intn(len(Cues))]
}

// SequenceSource replays a fixed list of cues, wrapping around at the end.
type SequenceSource struct {
	cues []Cue
	pos  int
}

// NewSequenceSource creates a source that returns cues in order.
// An empty list always yields CueLeft.
func NewSequenceSource(cues ...Cue) *SequenceSource {
	return &SequenceSource{cues: cues}
}

// Next returns the next cue in the sequence.
func (s *SequenceSource) Next() Cue {
	if len(s.cues) == 0 {
		return CueLeft
	}
	c := s.cues[s.pos%len(s.cues)]
	s.pos++
	return c
}
