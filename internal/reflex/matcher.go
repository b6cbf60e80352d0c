package reflex

import (
	"fmt"
	"time"
)

// KeyEdges holds the key-down edges seen during one tick for the three response keys.
type KeyEdges struct {
	Left  bool
	Right bool
	Jump  bool
}

// Any reports whether any response key was pressed.
func (k KeyEdges) Any() bool {
	return k.Left || k.Right || k.Jump
}

// Response returns the single cue the player answered with this tick.
// When several keys fire together, Left wins over Right, and Right over Jump.
func (k KeyEdges) Response() Cue {
	switch {
	case k.Left:
		return CueLeft
	case k.Right:
		return CueRight
	case k.Jump:
		return CueJump
	default:
		return CueNone
	}
}

// Outcome records one scoring event.
type Outcome struct {
	Cue      Cue           // The cue that was pending
	Response Cue           // The key the player pressed
	Correct  bool          // Whether Response matched Cue
	Delta    int           // +1 or -1
	Score    int           // Score after the event
	Reaction time.Duration // Active time between the cue and the response
}

// String returns a short human-readable description of the outcome.
func (o Outcome) String() string {
	if o.Correct {
		return fmt.Sprintf("correct! %s in %s, score %d", o.Cue, o.Reaction.Round(time.Millisecond), o.Score)
	}
	return fmt.Sprintf("wrong: expected %s, got %s, score %d", o.Cue, o.Response, o.Score)
}

// judge compares a response against the pending cue and returns the score delta.
func judge(pending, response Cue) int {
	if response == pending {
		return 1
	}
	return -1
}
