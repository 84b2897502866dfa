package snake

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// newTestGame resets a steered game on an 80x24 screen. With the default
// 0.25s cadence, tickRate 4 moves every frame and tickRate 8 every other frame.
func newTestGame(t *testing.T, tickRate int) *Game {
	t.Helper()
	g := New(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate})
	return g
}

func mustStep(t *testing.T, g *Game, in core.InputFrame) core.StepResult {
	t.Helper()
	res := g.Step(in)
	if res.Err != nil {
		t.Fatalf("Step() failed: %v", res.Err)
	}
	return res
}

func TestSpawnState(t *testing.T) {
	g := newTestGame(t, 60)

	h := g.Head()
	if h.Position != (GridPosition{X: 3, Y: 3}) {
		t.Errorf("spawn position = %+v, expected (3, 3)", h.Position)
	}
	if h.Direction != DirUp {
		t.Errorf("spawn direction = %s, expected up", h.Direction)
	}
	if h.SizeInGrid != 0.8 {
		t.Errorf("SizeInGrid = %g, expected 0.8", h.SizeInGrid)
	}
}

func TestFixedTimestepCadence(t *testing.T) {
	g := newTestGame(t, 8)
	none := core.NewInputFrame()

	mustStep(t, g, none)
	if g.Head().Position != (GridPosition{X: 3, Y: 3}) {
		t.Fatalf("head moved before a full interval: %+v", g.Head().Position)
	}

	mustStep(t, g, none)
	if g.Head().Position != (GridPosition{X: 3, Y: 4}) {
		t.Fatalf("head should move up after 0.25s, got %+v", g.Head().Position)
	}

	for range 6 {
		mustStep(t, g, none)
	}
	if g.Head().Position != (GridPosition{X: 3, Y: 7}) {
		t.Errorf("after 1s expected (3, 7), got %+v", g.Head().Position)
	}
	if g.State().Steps != 4 {
		t.Errorf("Steps = %d, expected 4", g.State().Steps)
	}
}

func TestDirectionUpdateRunsBeforeMovement(t *testing.T) {
	g := newTestGame(t, 4)

	// The turn is visible to the movement step of the same frame
	res := mustStep(t, g, frameOf(core.ActionRight))
	if g.Head().Position != (GridPosition{X: 4, Y: 3}) {
		t.Errorf("expected head to move right to (4, 3), got %+v", g.Head().Position)
	}
	if res.State.Turns != 1 {
		t.Errorf("Turns = %d, expected 1", res.State.Turns)
	}
}

func TestReversalIsIgnored(t *testing.T) {
	g := newTestGame(t, 4)

	mustStep(t, g, frameOf(core.ActionDown))
	if g.Head().Direction != DirUp {
		t.Errorf("direction = %s, reversal from up to down should be rejected", g.Head().Direction)
	}
	if g.Head().Position != (GridPosition{X: 3, Y: 4}) {
		t.Errorf("head should keep moving up, got %+v", g.Head().Position)
	}

	// Turn, then the old heading is no longer the opposite
	mustStep(t, g, frameOf(core.ActionLeft))
	mustStep(t, g, frameOf(core.ActionDown))
	if g.Head().Position != (GridPosition{X: 2, Y: 3}) {
		t.Errorf("expected (2, 3) after left then down, got %+v", g.Head().Position)
	}
}

func TestMovementPerDirection(t *testing.T) {
	tests := []struct {
		name     string
		setup    []core.Action // turns to reach the heading
		expected GridPosition
	}{
		{"up", nil, GridPosition{3, 4}},
		{"left", []core.Action{core.ActionLeft}, GridPosition{2, 3}},
		{"right", []core.Action{core.ActionRight}, GridPosition{4, 3}},
		{"down via left", []core.Action{core.ActionLeft, core.ActionDown}, GridPosition{2, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 4)
			if len(tc.setup) == 0 {
				mustStep(t, g, core.NewInputFrame())
			}
			for _, a := range tc.setup {
				mustStep(t, g, frameOf(a))
			}
			if g.Head().Position != tc.expected {
				t.Errorf("position = %+v, expected %+v", g.Head().Position, tc.expected)
			}
		})
	}
}

func TestPinnedWindowTransforms(t *testing.T) {
	g := newTestGame(t, 60)
	g.SetWindow(&core.Window{Title: "Snake", Width: 500, Height: 500})

	mustStep(t, g, core.NewInputFrame())

	h := g.Head()
	if !approx(h.Translation.X, -75) || !approx(h.Translation.Y, -75) {
		t.Errorf("translation = %+v, expected (-75, -75)", h.Translation)
	}
	if !approx(h.Sprite, 40) {
		t.Errorf("sprite = %g, expected 40", h.Sprite)
	}

	// Terminal resizes do not affect a pinned window
	g.Resize(200, 60)
	mustStep(t, g, core.NewInputFrame())
	if !approx(g.Head().Translation.X, -75) {
		t.Errorf("pinned window should ignore resize, translation = %+v", g.Head().Translation)
	}
}

func TestResizeRecomputesTransforms(t *testing.T) {
	g := newTestGame(t, 60)

	// 80x24: arena is min(78, 2*20) = 40px wide
	mustStep(t, g, core.NewInputFrame())
	if w := g.Window().Width; w != 40 {
		t.Fatalf("window width = %g, expected 40", w)
	}
	if !approx(g.Head().Translation.X, -6) {
		t.Errorf("translation.x = %g, expected -6", g.Head().Translation.X)
	}

	// 120x40: min(118, 2*36) = 72, rounded down to whole even cells = 60
	g.Resize(120, 40)
	mustStep(t, g, core.NewInputFrame())
	if w := g.Window().Width; w != 60 {
		t.Fatalf("window width = %g, expected 60", w)
	}
	if !approx(g.Head().Translation.X, -9) || !approx(g.Head().Sprite, 4.8) {
		t.Errorf("after resize head = %+v, expected x=-9 sprite=4.8", g.Head())
	}
	if g.Head().Position != (GridPosition{X: 3, Y: 3}) {
		t.Errorf("resize should not move the head, got %+v", g.Head().Position)
	}
}

func TestNoWindowIsFatal(t *testing.T) {
	g := New(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{TickRate: 60})

	res := g.Step(core.NewInputFrame())
	if !errors.Is(res.Err, core.ErrNoPrimaryWindow) {
		t.Fatalf("Step() error = %v, expected ErrNoPrimaryWindow", res.Err)
	}
	if g.Snapshot().State != StateNoWindow {
		t.Errorf("state = %s, expected %s", g.Snapshot().State, StateNoWindow)
	}
}

func TestTooSmallScreenPauses(t *testing.T) {
	g := New(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 4})

	res := g.Step(core.NewInputFrame())
	if res.Err != nil {
		t.Fatalf("small screen should not be fatal: %v", res.Err)
	}
	if g.Head().Position != (GridPosition{X: 3, Y: 3}) {
		t.Errorf("head should not move on a too small screen, got %+v", g.Head().Position)
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s, expected %s", g.Snapshot().State, StatePausedSmall)
	}

	g.Resize(80, 24)
	mustStep(t, g, core.NewInputFrame())
	if g.Head().Position != (GridPosition{X: 3, Y: 4}) {
		t.Errorf("head should move after growing the screen, got %+v", g.Head().Position)
	}
}

func TestPauseAndRestart(t *testing.T) {
	g := newTestGame(t, 4)

	res := mustStep(t, g, frameOf(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}
	mustStep(t, g, core.NewInputFrame())
	if g.Head().Position != (GridPosition{X: 3, Y: 3}) {
		t.Errorf("paused head moved to %+v", g.Head().Position)
	}

	// Unpausing simulates the same frame
	mustStep(t, g, frameOf(core.ActionPause))
	mustStep(t, g, frameOf(core.ActionRight))
	if g.Head().Position != (GridPosition{X: 4, Y: 4}) {
		t.Errorf("expected (4, 4) after unpause and turn, got %+v", g.Head().Position)
	}

	// Restart respawns, then the same frame simulates from the spawn
	mustStep(t, g, frameOf(core.ActionRestart))
	if g.Head().Position != (GridPosition{X: 3, Y: 4}) || g.Head().Direction != DirUp {
		t.Errorf("after restart head = %+v", g.Head())
	}
	if g.State().Steps != 1 || g.State().Turns != 0 {
		t.Errorf("restart should reset counters, got %+v", g.State())
	}
}

func TestFreeVariant(t *testing.T) {
	g := NewFree(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})

	// No key, no movement
	mustStep(t, g, core.NewInputFrame())
	if g.Head().Position != (GridPosition{X: 3, Y: 3}) {
		t.Fatalf("free head moved without input: %+v", g.Head().Position)
	}

	// One cell per frame, reversal allowed, Left has priority
	mustStep(t, g, frameOf(core.ActionLeft, core.ActionUp))
	mustStep(t, g, frameOf(core.ActionRight))
	mustStep(t, g, frameOf(core.ActionDown))
	if g.Head().Position != (GridPosition{X: 3, Y: 2}) {
		t.Errorf("free head = %+v, expected (3, 2)", g.Head().Position)
	}
	if g.State().Steps != 3 {
		t.Errorf("Steps = %d, expected 3", g.State().Steps)
	}
	if g.Snapshot().StepInterval != 0 {
		t.Errorf("free variant should have no step interval")
	}
}

func TestDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 120)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch i {
		case 20:
			inputs[i].Set(core.ActionLeft)
		case 45:
			inputs[i].Set(core.ActionDown)
		case 80:
			inputs[i].Set(core.ActionRight)
		}
	}

	run := func() Snapshot {
		g := newTestGame(t, 60)
		for _, in := range inputs {
			mustStep(t, g, in)
		}
		return g.Snapshot()
	}

	if s1, s2 := run(), run(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestInvalidConfigSurfacesError(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Arena.GridSize = 0
	cfg.Head.Color = "alice_blue"

	g := New(cfg)
	g.Reset(core.DefaultConfig())
	res := g.Step(core.NewInputFrame())
	if res.Err == nil {
		t.Fatal("Step() should report the config error")
	}
	if !strings.Contains(res.Err.Error(), "grid_size") || !strings.Contains(res.Err.Error(), "alice_blue") {
		t.Errorf("error should name both problems: %v", res.Err)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 60)
	mustStep(t, g, core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Pos: (3, 3)") {
		t.Errorf("HUD missing position: %q", screen.Row(0))
	}

	heads := 0
	for y := range screen.Height() {
		for x := range screen.Width() {
			if c := screen.GetCell(x, y); c.Rune == headRune {
				heads++
				if c.Color != core.ColorBrightCyan {
					t.Errorf("head cell color = %v, expected bright cyan", c.Color)
				}
			}
		}
	}
	if heads == 0 {
		t.Error("head was not drawn")
	}

	// Paused overlay
	mustStep(t, g, frameOf(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("paused overlay missing")
	}
}

func TestRegistryVariants(t *testing.T) {
	for _, id := range []string{"snake", "snake_free"} {
		game, err := registry.Create(id)
		if err != nil {
			t.Fatalf("registry.Create(%q) failed: %v", id, err)
		}
		if game.ID() != id {
			t.Errorf("ID() = %q, expected %q", game.ID(), id)
		}
	}

	if _, err := NewVariant("snake_ghost", config.DefaultSnakeConfig()); err == nil {
		t.Error("NewVariant should reject unknown IDs")
	}
}
