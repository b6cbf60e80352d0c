package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/reflex"
)

// DefaultMaxTickDelta bounds the time credited to a single tick.
const DefaultMaxTickDelta = 250 * time.Millisecond

// Options configures a Model beyond the game itself.
type Options struct {
	Keys         KeyMap
	MaxTickDelta time.Duration
	// Recorder, when set, is finished as the player quits.
	Recorder *Recorder
}

// Model is the Bubble Tea model for a reflex training session.
type Model struct {
	game       *reflex.Game
	screen     *core.Screen
	keys       KeyMap
	recorder   *Recorder
	config     core.RuntimeConfig
	maxDelta   time.Duration
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg.Seed is used as given, zero included.
func NewModel(game *reflex.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.MaxTickDelta <= 0 {
		opts.MaxTickDelta = DefaultMaxTickDelta
	}
	if opts.Keys.Quit.Keys() == nil {
		opts.Keys = DefaultKeyMap()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:       opts.Keys,
		recorder:   opts.Recorder,
		config:     cfg,
		maxDelta:   opts.MaxTickDelta,
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records the key's action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		if m.recorder != nil {
			m.recorder.Finish()
		}
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize only changes the drawing surface; the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick steps the game with the wall time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.Delta = m.delta(now)
	m.lastTick = now

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickInterval())
}

// delta is the clamped time since the last tick. The first tick counts as zero.
func (m Model) delta(now time.Time) time.Duration {
	if m.lastTick.IsZero() {
		return 0
	}
	d := now.Sub(m.lastTick)
	if d < 0 {
		return 0
	}
	if d > m.maxDelta {
		return m.maxDelta
	}
	return d
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".reflex", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting reports whether the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model and blocks until
// the player quits. It returns the game state as of the last tick. The
// recorder, if any, is finished on return.
func Run(game *reflex.Game, cfg core.RuntimeConfig, opts Options) (core.GameState, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if opts.Recorder != nil {
		opts.Recorder.Finish()
	}

	var state core.GameState
	if m, ok := final.(Model); ok {
		state = m.State()
	}
	return state, err
}
