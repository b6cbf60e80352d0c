package reflex

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/flow"
)

type recordingPresenter struct {
	cues []Cue
}

func (p *recordingPresenter) PresentCue(c Cue) {
	p.cues = append(p.cues, c)
}

type recordingObserver struct {
	emitted     []Cue
	outcomes    []Outcome
	transitions []string
}

func (o *recordingObserver) CueEmitted(c Cue)      { o.emitted = append(o.emitted, c) }
func (o *recordingObserver) Responded(out Outcome) { o.outcomes = append(o.outcomes, out) }
func (o *recordingObserver) StateChanged(from, to flow.State) {
	o.transitions = append(o.transitions, from.String()+"->"+to.String())
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

func frame(delta time.Duration, actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Delta = delta
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func startedGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g := New(opts...)
	g.Reset(testConfig())
	g.Step(frame(0, core.ActionConfirm))
	if g.Phase() != flow.StateActive {
		t.Fatalf("Phase() = %s after confirm, expected Active", g.Phase())
	}
	return g
}

func TestGameIdleUntilConfirm(t *testing.T) {
	p := &recordingPresenter{}
	g := New(WithInterval(time.Second), WithPresenter(p))
	g.Reset(testConfig())

	for i := 0; i < 10; i++ {
		result := g.Step(frame(time.Second, core.ActionLeft, core.ActionPause))
		if result.State.Active {
			t.Fatal("game should stay idle without confirm")
		}
	}
	if len(p.cues) != 0 {
		t.Errorf("presented %d cues while idle", len(p.cues))
	}
	if g.Phase() != flow.StateIdle {
		t.Errorf("Phase() = %s, pause must not leave the title screen", g.Phase())
	}
}

func TestGamePresentsEachCueOnce(t *testing.T) {
	p := &recordingPresenter{}
	o := &recordingObserver{}
	g := startedGame(t,
		WithInterval(time.Second),
		WithPresenter(p),
		WithObserver(o),
		WithSource(NewSequenceSource(CueLeft, CueRight, CueJump)),
	)

	// Unanswered cue: many ticks, one presentation.
	for i := 0; i < 20; i++ {
		g.Step(frame(250*time.Millisecond))
	}
	if len(p.cues) != 1 || p.cues[0] != CueLeft {
		t.Fatalf("presented %v, expected [Left]", p.cues)
	}

	g.Step(frame(0, core.ActionLeft))
	for i := 0; i < 4; i++ {
		g.Step(frame(250 * time.Millisecond))
	}

	if len(p.cues) != 2 || p.cues[1] != CueRight {
		t.Errorf("presented %v, expected [Left Right]", p.cues)
	}
	if len(o.emitted) != len(p.cues) {
		t.Errorf("observer saw %d emissions, presenter %d", len(o.emitted), len(p.cues))
	}
	if len(o.outcomes) != 1 || !o.outcomes[0].Correct {
		t.Errorf("outcomes = %+v, expected one correct response", o.outcomes)
	}
	if g.State().Score != 1 {
		t.Errorf("Score = %d, expected 1", g.State().Score)
	}
}

func TestGamePauseSuspendsLoop(t *testing.T) {
	o := &recordingObserver{}
	g := startedGame(t,
		WithInterval(time.Second),
		WithObserver(o),
		WithSource(NewSequenceSource(CueRight)),
	)

	g.Step(frame(time.Second)) // emits Right
	if g.Session().Pending() != CueRight {
		t.Fatalf("Pending() = %s, expected Right", g.Session().Pending())
	}

	result := g.Step(frame(0, core.ActionPause))
	if !result.State.Paused || result.State.Active {
		t.Fatalf("State = %+v, expected paused", result.State)
	}

	for i := 0; i < 10; i++ {
		g.Step(frame(time.Second, core.ActionRight))
	}
	if g.State().Score != 0 || g.Session().Pending() != CueRight {
		t.Errorf("paused game changed: score=%d pending=%s", g.State().Score, g.Session().Pending())
	}

	g.Step(frame(0, core.ActionPause))
	g.Step(frame(0, core.ActionRight))
	if g.State().Score != 1 {
		t.Errorf("Score after resume = %d, expected 1", g.State().Score)
	}

	expected := []string{"Idle->Active", "Active->Paused", "Paused->Active"}
	if strings.Join(o.transitions, ",") != strings.Join(expected, ",") {
		t.Errorf("transitions = %v, expected %v", o.transitions, expected)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = frame(time.Second / 60)
		switch i % 90 {
		case 10:
			inputs[i].Set(core.ActionLeft)
		case 40:
			inputs[i].Set(core.ActionJump)
		case 70:
			inputs[i].Set(core.ActionRight)
		}
	}

	run := func() (core.GameState, []Cue) {
		p := &recordingPresenter{}
		g := startedGame(t, WithPresenter(p))
		var state core.GameState
		for _, in := range inputs {
			state = g.Step(in).State
		}
		return state, p.cues
	}

	s1, c1 := run()
	s2, c2 := run()

	if s1 != s2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", s1, s2)
	}
	if len(c1) != len(c2) {
		t.Fatalf("Determinism failed: %d vs %d cues", len(c1), len(c2))
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Errorf("cue %d differs: %s vs %s", i, c1[i], c2[i])
		}
	}
	if len(c1) == 0 {
		t.Error("expected at least one cue in 10 seconds of play")
	}
}

func TestGameRender(t *testing.T) {
	screen := core.NewScreen(80, 24)
	g := New(WithInterval(time.Second), WithCueHint(true), WithSource(NewSequenceSource(CueJump)))
	g.Reset(testConfig())

	g.Render(screen)
	if !strings.Contains(screen.String(), "REFLEX TRAINER") {
		t.Error("title screen should show the game name")
	}

	g.Step(frame(0, core.ActionConfirm))
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected score", screen.Row(0))
	}

	g.Step(frame(time.Second))
	g.Render(screen)
	if !strings.Contains(screen.String(), "JUMP") {
		t.Error("cue hint should be visible when enabled")
	}

	g.Step(frame(0, core.ActionJump))
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Score: 1") {
		t.Errorf("HUD row = %q, expected updated score", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "+1 correct") {
		t.Error("feedback should be shown after a response")
	}

	g.Step(frame(0, core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay should be visible")
	}
}

func TestGameStateBeforeReset(t *testing.T) {
	g := New()
	if g.State() != (core.GameState{}) {
		t.Error("State() before Reset should be zero")
	}
	if g.ID() != GameID || g.Title() == "" {
		t.Error("ID/Title should be set")
	}
	g.Render(core.NewScreen(10, 5)) // must not panic
}

func TestGameHUDShowsBest(t *testing.T) {
	screen := core.NewScreen(80, 24)
	g := startedGame(t,
		WithInterval(time.Second),
		WithBest(1),
		WithSource(NewSequenceSource(CueLeft)),
	)

	g.Render(screen)
	if !strings.Contains(screen.Row(1), "Best:  1") {
		t.Errorf("HUD row = %q, expected stored best", screen.Row(1))
	}

	for i := 0; i < 2; i++ {
		g.Step(frame(time.Second))
		g.Step(frame(0, core.ActionLeft))
	}
	g.Render(screen)
	if !strings.Contains(screen.Row(1), "Best:  2") {
		t.Errorf("HUD row = %q, expected best to follow a new high score", screen.Row(1))
	}

	g.Step(frame(time.Second))
	g.Step(frame(0, core.ActionRight))
	g.Render(screen)
	if !strings.Contains(screen.Row(1), "Best:  2") {
		t.Errorf("HUD row = %q, best must not drop with the score", screen.Row(1))
	}
}

func TestGameCountdownBar(t *testing.T) {
	screen := core.NewScreen(80, 24)
	g := startedGame(t, WithInterval(time.Second), WithSource(NewSequenceSource(CueJump)))

	g.Step(frame(500 * time.Millisecond))
	g.Render(screen)
	if n := strings.Count(screen.Row(23), "█"); n != 15 {
		t.Errorf("countdown filled %d cells, expected 15 at half the interval", n)
	}

	g.Step(frame(500 * time.Millisecond))
	g.Render(screen)
	if strings.Contains(screen.Row(23), "█") || strings.Contains(screen.Row(23), "░") {
		t.Errorf("countdown row = %q, expected no bar while a cue is pending", screen.Row(23))
	}
}

func TestGamePauseClearsFeedback(t *testing.T) {
	screen := core.NewScreen(80, 24)
	g := startedGame(t, WithInterval(time.Second), WithSource(NewSequenceSource(CueLeft)))

	g.Step(frame(time.Second))
	g.Step(frame(0, core.ActionLeft))
	g.Step(frame(0, core.ActionPause))
	if g.Pauses() != 1 {
		t.Errorf("Pauses() = %d, expected 1", g.Pauses())
	}

	g.Step(frame(0, core.ActionPause))
	g.Render(screen)
	if strings.Contains(screen.String(), "+1 correct") {
		t.Error("feedback from before the pause should be gone after resuming")
	}
	if g.Session().LastOutcome() == nil || g.State().Score != 1 {
		t.Error("resuming must keep the session state")
	}
}
