package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
	StateNoWindow    GameStateType = "no_window"
)

// Snapshot captures the game state for determinism testing and traces.
type Snapshot struct {
	Frame        uint64
	Variant      string
	HeadX        int
	HeadY        int
	Dir          Direction
	PixelX       float64
	PixelY       float64
	SpriteSize   float64
	WindowWidth  float64
	Steps        int
	Turns        int
	StepInterval float64 // Seconds; 0 for per-frame variants
	State        GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.window == nil:
		state = StateNoWindow
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	var width float64
	if g.window != nil {
		width = g.window.Width
	}

	var interval float64
	if g.movement != nil {
		interval = g.movement.Interval().Seconds()
	}

	return Snapshot{
		Frame:        g.frame,
		Variant:      string(g.variant),
		HeadX:        g.head.Position.X,
		HeadY:        g.head.Position.Y,
		Dir:          g.head.Direction,
		PixelX:       g.head.Translation.X,
		PixelY:       g.head.Translation.Y,
		SpriteSize:   g.head.Sprite,
		WindowWidth:  width,
		Steps:        g.steps,
		Turns:        g.turns,
		StepInterval: interval,
		State:        state,
	}
}
