package reflex

import (
	"fmt"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/flow"
)

// Character sprites, three rows each.
var (
	spriteStand = [3]string{" o ", "/|\\", "/ \\"}
	spriteLeft  = [3]string{"o  ", "\\|\\", " /|"}
	spriteRight = [3]string{"  o", "/|/", "|\\ "}
	spriteJump  = [3]string{"\\o/", " | ", "/ \\"}
)

const (
	groundChar     = '═'
	countdownFull  = '█'
	countdownEmpty = '░'
	countdownWidth = 30
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	switch g.machine.Current() {
	case flow.StateIdle:
		g.drawTitle(dst)
		return
	case flow.StatePaused:
		g.drawPlayfield(dst)
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	default:
		g.drawPlayfield(dst)
	}
}

func (g *Game) drawTitle(dst *core.Screen) {
	lines := []string{
		"REFLEX TRAINER",
		"",
		"Listen for the cue and press the matching key",
		"LEFT: ←   RIGHT: →   JUMP: ↑",
		"",
		"Press Enter to start",
	}
	top := (dst.Height() - len(lines)) / 2
	for i, line := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorGold
		}
		dst.DrawTextCentered(top+i, line, color)
	}
}

func (g *Game) drawPlayfield(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	groundY := h - 3

	dst.DrawHLine(0, groundY, w, groundChar, core.ColorGray)

	// HUD
	dst.DrawTextColored(2, 0, "Score: ", core.ColorWhite)
	dst.DrawTextColored(9, 0, g.scoreLabel, core.ColorGold)
	rounds := fmt.Sprintf("Rounds: %d ", g.session.Rounds())
	dst.DrawTextColored(w-len(rounds)-2, 0, rounds, core.ColorGray)
	dst.DrawTextColored(2, 1, "Best:  "+g.bestLabel, core.ColorGray)

	g.drawCharacter(dst, w/2, groundY)

	if g.session.Pending() == CueNone {
		g.drawCountdown(dst, groundY+2)
	} else if g.showCue {
		dst.DrawTextCentered(2, cueHint(g.session.Pending()), core.ColorCyan)
	}

	if last := g.session.LastOutcome(); last != nil && g.showFor > 0 {
		text, color := "+1 correct", core.ColorGreen
		if !last.Correct {
			text, color = "-1 wrong", core.ColorRed
		}
		dst.DrawTextCentered(groundY+1, text, color)
	}
}

// drawCountdown draws a bar that fills up until the next cue.
func (g *Game) drawCountdown(dst *core.Screen, y int) {
	width := core.Min(dst.Width()-4, countdownWidth)
	if width <= 0 {
		return
	}
	filled := core.Clamp(int(g.session.Timer().Progress()*float64(width)), 0, width)

	x := (dst.Width() - width) / 2
	dst.DrawHLine(x, y, width, countdownEmpty, core.ColorGray)
	dst.DrawHLine(x, y, filled, countdownFull, core.ColorCyan)
}

func (g *Game) drawCharacter(dst *core.Screen, centerX, groundY int) {
	sprite := spriteStand
	offsetX, offsetY := 0, 0

	if g.showFor > 0 {
		switch g.pose {
		case CueLeft:
			sprite, offsetX = spriteLeft, -2
		case CueRight:
			sprite, offsetX = spriteRight, 2
		case CueJump:
			sprite, offsetY = spriteJump, -2
		}
	}

	x := centerX - 1 + offsetX
	y := groundY - 3 + offsetY
	for row, line := range sprite {
		dst.DrawTextColored(x, y+row, line, core.ColorWhite)
	}
}

func cueHint(c Cue) string {
	switch c {
	case CueLeft:
		return "<< LEFT"
	case CueRight:
		return "RIGHT >>"
	case CueJump:
		return "^ JUMP ^"
	default:
		return ""
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorGold)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}
