package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapDefaults(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"h", runeKey('h'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runeKey('d'), core.ActionRight},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", runeKey('w'), core.ActionJump},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionPause},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMapFromConfig(t *testing.T) {
	keys := config.DefaultReflexConfig().Keys
	keys.Left = []string{"j"}
	keys.Right = []string{"l"}
	km := NewKeyMap(keys)

	if got := km.Action(runeKey('j')); got != core.ActionLeft {
		t.Errorf("j = %v, want Left", got)
	}
	if got := km.Action(runeKey('a')); got != core.ActionNone {
		t.Errorf("a = %v, want None after rebinding", got)
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()

	if got := km.Jump.Help().Key; got != "up/w/k/space" {
		t.Errorf("jump help = %q", got)
	}
	if n := len(km.ShortHelp()); n != 5 {
		t.Errorf("ShortHelp has %d bindings, want 5", n)
	}
	if n := len(km.FullHelp()); n != 2 {
		t.Errorf("FullHelp has %d groups, want 2", n)
	}
}
