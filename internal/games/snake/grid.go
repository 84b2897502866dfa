package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// GridPosition is an integer cell coordinate on the arena grid.
type GridPosition struct {
	X, Y int
}

// Add returns the position offset by o.
func (p GridPosition) Add(o GridPosition) GridPosition {
	return GridPosition{X: p.X + o.X, Y: p.Y + o.Y}
}

// ToWindowPos maps a grid coordinate on one axis to window pixels.
//
// The grid is centered on the window and the result is the center of the
// cell: with a 10-cell grid and a 200px window, cell 5 maps to
// 5/10*200 - 100 + 10 = 10.
func ToWindowPos(gridPos, windowBound, gridBound float64) float64 {
	tileSize := windowBound / gridBound
	return gridPos/gridBound*windowBound - windowBound/2 + tileSize/2
}

// SpriteSize returns the pixel edge of a sprite covering sizeInGrid of a cell.
func SpriteSize(sizeInGrid, windowBound, gridBound float64) float64 {
	return sizeInGrid / gridBound * windowBound
}

// Translation returns the pixel center of a grid cell. Both axes use the
// window width.
func Translation(p GridPosition, windowWidth float64, gridSize int) core.Vec2 {
	g := float64(gridSize)
	return core.Vec2{
		X: ToWindowPos(float64(p.X), windowWidth, g),
		Y: ToWindowPos(float64(p.Y), windowWidth, g),
	}
}
