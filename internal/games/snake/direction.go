package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Direction is the heading of the snake head.
// The zero value is Up, the heading a head spawns with.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Opposite returns the 180° reversed heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Vector returns the unit grid offset for one step. y grows upward.
func (d Direction) Vector() GridPosition {
	switch d {
	case DirUp:
		return GridPosition{X: 0, Y: 1}
	case DirDown:
		return GridPosition{X: 0, Y: -1}
	case DirLeft:
		return GridPosition{X: -1, Y: 0}
	default:
		return GridPosition{X: 1, Y: 0}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses a heading name (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return DirUp, fmt.Errorf("unknown direction %q", s)
}

// DirectionFromInput picks the heading requested by the pressed movement
// keys. Checks run Left, Right, Up, Down and the first pressed key wins.
func DirectionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	}
	return DirUp, false
}

// NextDirection applies one input sample to the current heading.
// Without a movement key, or when the request would reverse the head, the
// current heading is kept.
func NextDirection(current Direction, in core.InputFrame) Direction {
	candidate, ok := DirectionFromInput(in)
	if !ok || candidate == current.Opposite() {
		return current
	}
	return candidate
}
