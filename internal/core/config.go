package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to derive the frame delta.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Steps  int  // Grid steps taken by the head
	Turns  int  // Accepted heading changes
	PosX   int  // Head grid column
	PosY   int  // Head grid row
	Paused bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each frame.
// Err is set when the frame could not complete; the platform treats it as fatal.
type StepResult struct {
	State GameState
	Err   error
}
