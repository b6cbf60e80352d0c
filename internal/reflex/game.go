package reflex

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/flow"
)

// GameID is the identifier used for score storage.
const GameID = "reflex"

// feedbackDuration is how long the last outcome and pose stay on screen.
const feedbackDuration = 600 * time.Millisecond

// Presenter plays a cue to the player, typically as audio.
type Presenter interface {
	PresentCue(cue Cue)
}

// Observer receives game events for logging, metrics and persistence.
type Observer interface {
	CueEmitted(cue Cue)
	Responded(out Outcome)
	StateChanged(from, to flow.State)
}

type nopPresenter struct{}

func (nopPresenter) PresentCue(Cue) {}

type nopObserver struct{}

func (nopObserver) CueEmitted(Cue) {}
func (nopObserver) Responded(Outcome) {}
func (nopObserver) StateChanged(_, _ flow.State) {}

// Option configures a Game.
type Option func(*Game)

// WithInterval sets the cue interval.
func WithInterval(d time.Duration) Option {
	return func(g *Game) { g.interval = d }
}

// WithPresenter sets the cue presenter.
func WithPresenter(p Presenter) Option {
	return func(g *Game) {
		if p != nil {
			g.presenter = p
		}
	}
}

// WithObserver sets the event observer.
func WithObserver(o Observer) Option {
	return func(g *Game) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithCueHint shows the pending cue on screen in addition to presenting it.
func WithCueHint(show bool) Option {
	return func(g *Game) { g.showCue = show }
}

// WithBest seeds the best score shown on the HUD, usually the stored high score.
func WithBest(best int) Option {
	return func(g *Game) { g.best = best }
}

// WithSource overrides the seeded random source created on Reset.
func WithSource(src CueSource) Option {
	return func(g *Game) { g.source = src }
}

// Game wires a Session to the activation state machine and the platform's
// Reset/Step/Render contract.
type Game struct {
	interval  time.Duration
	presenter Presenter
	observer  Observer
	showCue   bool
	source    CueSource
	best      int

	runtime    core.RuntimeConfig
	machine    *flow.Machine
	session    *Session
	scoreLabel string
	bestLabel  string
	pose       Cue           // Pose the character holds after a response
	showFor    time.Duration // Remaining display time for pose and feedback
	pauses     int
}

// New creates a game with the given options. Reset must be called before Step.
func New(opts ...Option) *Game {
	g := &Game{
		interval:  DefaultCueInterval,
		presenter: nopPresenter{},
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Reflex Trainer"
}

// Reset initializes the game for a new run. It is called once at start;
// the score has no other reset path.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	src := g.source
	if src == nil {
		src = NewRandomSource(runtime.Seed)
	}
	g.session = NewSession(src, g.interval)
	g.scoreLabel = "0"
	g.bestLabel = fmt.Sprintf("%d", g.best)
	top := g.best
	g.session.OnScoreChange(func(_, current int) {
		g.scoreLabel = fmt.Sprintf("%d", current)
		if current > top {
			top = current
			g.bestLabel = g.scoreLabel
		}
	})

	g.pose = CueNone
	g.showFor = 0
	g.pauses = 0

	g.machine = flow.NewMachine()
	g.machine.Handle(flow.StateIdle, flow.Handlers{Update: g.updateIdle})
	g.machine.Handle(flow.StateActive, flow.Handlers{Update: g.updateActive})
	g.machine.Handle(flow.StatePaused, flow.Handlers{
		Enter:  g.enterPaused,
		Update: g.updatePaused,
		Exit:   g.exitPaused,
	})
	g.machine.OnTransition(g.observer.StateChanged)
	g.machine.Start()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.machine.Update(in)
	return core.StepResult{State: g.State()}
}

func (g *Game) updateIdle(in core.InputFrame) {
	if in.Has(core.ActionConfirm) {
		//nolint:errcheck // Idle -> Active is always allowed
		g.machine.Transition(flow.StateActive)
	}
}

func (g *Game) updateActive(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		//nolint:errcheck // Active -> Paused is always allowed
		g.machine.Transition(flow.StatePaused)
		return
	}

	if g.showFor > 0 {
		g.showFor -= in.Delta
	}

	res := g.session.Tick(g.machine, in.Delta, edgesFromFrame(in))
	if res.Emitted != CueNone {
		g.presenter.PresentCue(res.Emitted)
		g.observer.CueEmitted(res.Emitted)
	}
	if res.Outcome != nil {
		g.pose = res.Outcome.Response
		g.showFor = feedbackDuration
		g.observer.Responded(*res.Outcome)
	}
}

func (g *Game) updatePaused(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		//nolint:errcheck // Paused -> Active is always allowed
		g.machine.Transition(flow.StateActive)
	}
}

func (g *Game) enterPaused(flow.State) {
	g.pauses++
}

// exitPaused drops the pose and feedback of the last response so the
// resumed playfield starts clean.
func (g *Game) exitPaused(flow.State) {
	g.pose = CueNone
	g.showFor = 0
}

// edgesFromFrame extracts the response key edges from an input frame.
func edgesFromFrame(in core.InputFrame) KeyEdges {
	return KeyEdges{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Jump:  in.Has(core.ActionJump),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:  g.session.Score(),
		Rounds: g.session.Rounds(),
		Active: g.machine.Active(),
		Paused: g.machine.Current() == flow.StatePaused,
	}
}

// Session exposes the underlying session, mainly for statistics.
func (g *Game) Session() *Session {
	return g.session
}

// Pauses returns how many times the player paused this run.
func (g *Game) Pauses() int {
	return g.pauses
}

// Phase returns the current state of the activation machine.
func (g *Game) Phase() flow.State {
	if g.machine == nil {
		return flow.StateIdle
	}
	return g.machine.Current()
}
