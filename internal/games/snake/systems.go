package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// UpdateDirection samples input into the head's heading.
// It reports whether the heading changed.
func UpdateDirection(h *Head, in core.InputFrame) bool {
	next := NextDirection(h.Direction, in)
	changed := next != h.Direction
	h.Direction = next
	return changed
}

// StepMovement advances the head one cell along its heading.
func StepMovement(h *Head) {
	h.Position = h.Position.Add(h.Direction.Vector())
}

// FreeMove moves the head one cell toward the pressed key, if any.
// It keeps no heading memory and allows reversal.
func FreeMove(h *Head, in core.InputFrame) bool {
	dir, ok := DirectionFromInput(in)
	if !ok {
		return false
	}
	h.Direction = dir
	h.Position = h.Position.Add(dir.Vector())
	return true
}

// SyncSpriteSize recomputes the sprite edge from the primary window.
func SyncSpriteSize(h *Head, w *core.Window, gridSize int) error {
	width, err := core.PrimaryWidth(w)
	if err != nil {
		return err
	}
	h.Sprite = SpriteSize(h.SizeInGrid, width, float64(gridSize))
	return nil
}

// SyncTranslation recomputes the pixel center from the primary window.
func SyncTranslation(h *Head, w *core.Window, gridSize int) error {
	width, err := core.PrimaryWidth(w)
	if err != nil {
		return err
	}
	h.Translation = Translation(h.Position, width, gridSize)
	return nil
}
