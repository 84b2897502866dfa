package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Head is the single controllable entity.
// Position and Direction are authoritative; Translation and Sprite are
// derived every frame from the window and never cached across resizes.
type Head struct {
	Position   GridPosition
	Direction  Direction
	SizeInGrid float64

	Translation core.Vec2 // Pixel center
	Sprite      float64   // Pixel edge length
}

// NewHead spawns a head at pos facing dir.
func NewHead(pos GridPosition, dir Direction, sizeInGrid float64) Head {
	return Head{
		Position:   pos,
		Direction:  dir,
		SizeInGrid: sizeInGrid,
	}
}
