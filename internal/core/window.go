package core

import "errors"

// ErrNoPrimaryWindow is returned when a transform runs without a usable window.
var ErrNoPrimaryWindow = errors.New("expected a primary window")

// Window describes the primary window in pixels.
type Window struct {
	Title  string
	Width  float64
	Height float64
}

// PrimaryWidth returns the window width, or ErrNoPrimaryWindow when the
// window is missing or has no extent.
func PrimaryWidth(w *Window) (float64, error) {
	if w == nil || w.Width <= 0 {
		return 0, ErrNoPrimaryWindow
	}
	return w.Width, nil
}
