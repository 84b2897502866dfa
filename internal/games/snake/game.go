// Package snake implements a grid snake head steered from the keyboard.
//
// Two variants are registered: "snake" buffers the heading each frame and
// moves on a fixed timestep, "snake_free" moves one cell per frame while a
// movement key is pressed.
package snake

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/schedule"
)

// Variant selects the movement model.
type Variant string

const (
	VariantSteered Variant = "snake"
	VariantFree    Variant = "snake_free"
)

// System labels.
const (
	LabelInput       schedule.Label = "input"
	LabelMovement    schedule.Label = "movement"
	LabelSpriteSize  schedule.Label = "sprite_size"
	LabelTranslation schedule.Label = "translation"
)

const (
	hudHeight = 2
	headRune  = '█'
	cellRune  = '·'
)

// Package-level config shared by registry factories.
var (
	configMu     sync.RWMutex
	activeConfig = config.DefaultSnakeConfig()
)

// SetConfig sets the configuration used by registry-created games.
func SetConfig(cfg config.SnakeConfig) {
	configMu.Lock()
	defer configMu.Unlock()
	activeConfig = cfg
}

// Config returns the configuration used by registry-created games.
func Config() config.SnakeConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return activeConfig
}

func init() {
	registry.Register(string(VariantSteered), func() registry.Game {
		return New(Config())
	})
	registry.Register(string(VariantFree), func() registry.Game {
		return NewFree(Config())
	})
}

// Game is one head on one arena.
type Game struct {
	variant Variant
	cfg     config.SnakeConfig
	runtime core.RuntimeConfig

	spawn     GridPosition
	spawnDir  Direction
	headColor core.Color
	head      Head

	pinned *core.Window // headless window, overrides the terminal extent
	window *core.Window

	sched    *schedule.Schedule
	movement *schedule.Timestep
	input    core.InputFrame
	setupErr error

	frame    uint64
	steps    int
	turns    int
	paused   bool
	tooSmall bool
}

// New creates the fixed-timestep game.
func New(cfg config.SnakeConfig) *Game {
	return newGame(VariantSteered, cfg)
}

// NewFree creates the per-frame free movement game.
func NewFree(cfg config.SnakeConfig) *Game {
	return newGame(VariantFree, cfg)
}

// NewVariant creates a game by registry ID.
func NewVariant(id string, cfg config.SnakeConfig) (*Game, error) {
	switch Variant(id) {
	case VariantSteered:
		return New(cfg), nil
	case VariantFree:
		return NewFree(cfg), nil
	}
	return nil, fmt.Errorf("snake: unknown variant %q", id)
}

func newGame(v Variant, cfg config.SnakeConfig) *Game {
	g := &Game{
		variant: v,
		cfg:     cfg,
		input:   core.NewInputFrame(),
	}

	color, colorErr := core.ParseColor(cfg.Head.Color)
	if err := errors.Join(cfg.Validate(), colorErr); err != nil {
		g.setupErr = fmt.Errorf("snake: %w", err)
	}
	dir, _ := ParseDirection(cfg.Head.Direction) // checked by Validate

	g.spawn = GridPosition{X: cfg.Head.Spawn.X, Y: cfg.Head.Spawn.Y}
	g.spawnDir = dir
	g.headColor = color
	g.head = NewHead(g.spawn, g.spawnDir, cfg.Head.SizeInGrid)
	g.buildSchedule()
	return g
}

// buildSchedule wires the systems of the selected variant.
func (g *Game) buildSchedule() {
	g.sched = schedule.New()

	switch g.variant {
	case VariantFree:
		g.sched.Add(schedule.StageUpdate, schedule.System{
			Label: LabelMovement,
			Run: func() error {
				if FreeMove(&g.head, g.input) {
					g.steps++
				}
				return nil
			},
		})
	default:
		g.movement = schedule.NewTimestep(g.cfg.Movement.StepInterval(), g.cfg.Movement.MaxCatchUp)
		g.sched.Add(schedule.StageUpdate, schedule.System{
			Label:  LabelInput,
			Before: []schedule.Label{LabelMovement},
			Run: func() error {
				if UpdateDirection(&g.head, g.input) {
					g.turns++
				}
				return nil
			},
		})
		g.sched.Add(schedule.StageUpdate, schedule.System{
			Label: LabelMovement,
			Fixed: g.movement,
			Run: func() error {
				StepMovement(&g.head)
				g.steps++
				return nil
			},
		})
	}

	g.sched.Add(schedule.StagePostUpdate, schedule.System{
		Label: LabelSpriteSize,
		Run: func() error {
			return SyncSpriteSize(&g.head, g.window, g.cfg.Arena.GridSize)
		},
	})
	g.sched.Add(schedule.StagePostUpdate, schedule.System{
		Label: LabelTranslation,
		Run: func() error {
			return SyncTranslation(&g.head, g.window, g.cfg.Arena.GridSize)
		},
	})

	if err := g.sched.Build(); err != nil && g.setupErr == nil {
		g.setupErr = err
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantFree {
		return "Snake (Free Roam)"
	}
	return "Snake"
}

// SetWindow pins the primary window. A pinned window ignores terminal
// resizes; nil returns to deriving the window from the screen.
func (g *Game) SetWindow(w *core.Window) {
	g.pinned = w
	g.updateWindow()
}

// Window returns the current primary window, or nil when there is none.
func (g *Game) Window() *core.Window {
	return g.window
}

// Head returns a copy of the head entity.
func (g *Game) Head() Head {
	return g.head
}

// Reset respawns the head and adopts the runtime config.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.head = NewHead(g.spawn, g.spawnDir, g.cfg.Head.SizeInGrid)
	g.frame = 0
	g.steps = 0
	g.turns = 0
	g.paused = false
	g.input = core.NewInputFrame()
	if g.movement != nil {
		g.movement.Reset()
	}
	g.updateWindow()
}

// Resize adopts a new screen size without touching the simulation.
// Pixel transforms pick the new window up on the next frame.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.updateWindow()
}

// updateWindow derives the window from the screen: a square arena as wide
// as fits, with terminal rows counting as two pixels.
func (g *Game) updateWindow() {
	g.tooSmall = false
	if g.pinned != nil {
		g.window = g.pinned
		return
	}
	if g.runtime.ScreenW <= 0 || g.runtime.ScreenH <= 0 {
		g.window = nil
		return
	}

	grid := max(g.cfg.Arena.GridSize, 1)
	avail := min(g.runtime.ScreenW-2, 2*(g.runtime.ScreenH-hudHeight-2))
	width := (avail / (2 * grid)) * 2 * grid // whole cells, even so rows split evenly
	if width < 2*grid {
		g.tooSmall = true
		width = 2 * grid
	}

	g.window = &core.Window{
		Title:  g.cfg.Window.Title,
		Width:  float64(width),
		Height: float64(width),
	}
}

// frameDelta is the simulated time covered by one Step.
func (g *Game) frameDelta() time.Duration {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.setupErr != nil {
		return core.StepResult{State: g.State(), Err: g.setupErr}
	}

	g.frame++

	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.input = in
	err := g.sched.Run(g.frameDelta())
	return core.StepResult{State: g.State(), Err: err}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Steps:  g.steps,
		Turns:  g.turns,
		PosX:   g.head.Position.X,
		PosY:   g.head.Position.Y,
		Paused: g.paused,
	}
}

// Render draws the arena and the head.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.window == nil:
		g.renderOverlay(dst, "No window", "Waiting for a terminal size")
		return
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	arena := g.arenaRect(dst)
	dst.DrawBox(core.NewRect(arena.X-1, arena.Y-1, arena.W+2, arena.H+2), core.ColorGray)
	g.renderCells(dst, arena)
	g.renderHead(dst, arena)

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// arenaRect is the interior of the arena on screen.
func (g *Game) arenaRect(dst *core.Screen) core.Rect {
	w := int(g.window.Width)
	h := w / 2
	return core.NewRect((dst.Width()-w)/2, hudHeight+1, w, h)
}

// toCell maps a pixel point to a screen cell inside arena.
func (g *Game) toCell(arena core.Rect, x, y float64) (int, int) {
	half := g.window.Width / 2
	col := arena.X + int(math.Floor(x+half))
	row := arena.Y + int(math.Floor((half-y)/2))
	return col, row
}

func (g *Game) renderHUD(dst *core.Screen) {
	p := g.head.Position
	hud := fmt.Sprintf(" %s | Pos: (%d, %d)  Heading: %s  Steps: %d", g.Title(), p.X, p.Y, g.head.Direction, g.steps)
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderCells(dst *core.Screen, arena core.Rect) {
	grid := g.cfg.Arena.GridSize
	for gy := range grid {
		for gx := range grid {
			c := Translation(GridPosition{X: gx, Y: gy}, g.window.Width, grid)
			col, row := g.toCell(arena, c.X, c.Y)
			if arena.Contains(col, row) {
				dst.SetColored(col, row, cellRune, core.ColorGray)
			}
		}
	}
}

func (g *Game) renderHead(dst *core.Screen, arena core.Rect) {
	t := g.head.Translation
	half := g.head.Sprite / 2

	left, top := g.toCell(arena, t.X-half, t.Y+half)
	right, bottom := g.toCell(arena, t.X+half, t.Y-half)
	right = max(right, left+1)
	bottom = max(bottom, top+1)

	for row := top; row < bottom; row++ {
		for col := left; col < right; col++ {
			if arena.Contains(col, row) {
				dst.SetColored(col, row, headRune, g.headColor)
			}
		}
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorDefault)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
