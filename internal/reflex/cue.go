// Package reflex implements the reflex trainer: a cue is announced every few
// seconds and the player scores by pressing the matching key before the next one.
package reflex

import "strings"

// Cue is the prompt the player is expected to answer, or CueNone when
// nothing is outstanding.
type Cue int

const (
	CueNone Cue = iota
	CueLeft
	CueRight
	CueJump
)

// Cues lists the concrete cues in tie-break priority order.
var Cues = [...]Cue{CueLeft, CueRight, CueJump}

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueNone:
		return "None"
	case CueLeft:
		return "Left"
	case CueRight:
		return "Right"
	case CueJump:
		return "Jump"
	default:
		return "Unknown"
	}
}

// Name returns the lower-case identifier used for asset files and storage.
func (c Cue) Name() string {
	return strings.ToLower(c.String())
}

// Valid reports whether c is one of the concrete cues.
func (c Cue) Valid() bool {
	return c >= CueLeft && c <= CueJump
}

// ParseCue converts a name produced by Name back into a Cue.
func ParseCue(name string) (Cue, bool) {
	for _, c := range Cues {
		if strings.EqualFold(name, c.Name()) {
			return c, true
		}
	}
	if strings.EqualFold(name, CueNone.Name()) {
		return CueNone, true
	}
	return CueNone, false
}
