package resources

import "github.com/Carmen-Shannon/scion-go/common"

// Window mirrors the OS window state and carries the changes requested by game code.
// The runner applies pending requests at most once per variable tick.
type Window struct {
	width, height int
	dpi           float64

	cursor     *common.CursorIcon
	dimensions *[2]int
}

// NewWindow creates the window state.
func NewWindow(width, height int, dpi float64) *Window {
	return &Window{width: width, height: height, dpi: dpi}
}

// Width returns the logical width.
func (w *Window) Width() int { return w.width }

// Height returns the logical height.
func (w *Window) Height() int { return w.height }

// DPI returns the scale factor.
func (w *Window) DPI() float64 { return w.dpi }

// SetCurrentDimensions records the size reported by the OS.
func (w *Window) SetCurrentDimensions(width, height int) {
	w.width, w.height = width, height
}

// SetDPI records the scale factor reported by the OS.
func (w *Window) SetDPI(dpi float64) {
	w.dpi = dpi
}

// SetCursor requests a cursor icon.
func (w *Window) SetCursor(icon common.CursorIcon) {
	w.cursor = &icon
}

// SetDimensions requests a logical window size.
func (w *Window) SetDimensions(width, height int) {
	w.dimensions = &[2]int{width, height}
}

// FutureSettings returns the pending requests, nil when none.
func (w *Window) FutureSettings() (*common.CursorIcon, *[2]int) {
	return w.cursor, w.dimensions
}

// ResetFutureSettings drops the pending requests once applied.
func (w *Window) ResetFutureSettings() {
	w.cursor = nil
	w.dimensions = nil
}
