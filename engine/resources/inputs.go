package resources

import (
	"slices"

	"github.com/Carmen-Shannon/scion-go/common"
)

// ButtonState is the transition carried by an input event.
type ButtonState uint8

const (
	Pressed ButtonState = iota
	Released
)

// KeyboardEvent is one key transition of the current frame.
type KeyboardEvent struct {
	Key   common.KeyCode
	State ButtonState
}

// MouseButtonEvent is one mouse button transition of the current frame.
type MouseButtonEvent struct {
	Button common.MouseButton
	State  ButtonState
	X, Y   float64
}

// Inputs holds the keyboard and mouse state. Held keys persist across frames; the event lists
// only describe the current frame and are cleared by ResetInputs.
type Inputs struct {
	pressedKeys    map[common.KeyCode]bool
	keyEvents      []KeyboardEvent
	pressedButtons map[common.MouseButton]bool
	buttonEvents   []MouseButtonEvent
	mouseX, mouseY float64
	scrollX        float64
	scrollY        float64
}

// NewInputs creates an empty input state.
func NewInputs() *Inputs {
	return &Inputs{
		pressedKeys:    make(map[common.KeyCode]bool),
		pressedButtons: make(map[common.MouseButton]bool),
	}
}

// ApplyKey records a key transition.
func (i *Inputs) ApplyKey(key common.KeyCode, state ButtonState) {
	switch state {
	case Pressed:
		if i.pressedKeys[key] {
			return
		}
		i.pressedKeys[key] = true
	case Released:
		delete(i.pressedKeys, key)
	}
	i.keyEvents = append(i.keyEvents, KeyboardEvent{Key: key, State: state})
}

// ApplyMouseButton records a mouse button transition at the current cursor position.
func (i *Inputs) ApplyMouseButton(button common.MouseButton, state ButtonState) {
	switch state {
	case Pressed:
		i.pressedButtons[button] = true
	case Released:
		delete(i.pressedButtons, button)
	}
	i.buttonEvents = append(i.buttonEvents, MouseButtonEvent{Button: button, State: state, X: i.mouseX, Y: i.mouseY})
}

// ApplyCursor records the cursor position in window coordinates.
func (i *Inputs) ApplyCursor(x, y float64) {
	i.mouseX, i.mouseY = x, y
}

// ApplyScroll accumulates a wheel delta for the current frame.
func (i *Inputs) ApplyScroll(dx, dy float64) {
	i.scrollX += dx
	i.scrollY += dy
}

// KeyPressed reports whether key is held.
func (i *Inputs) KeyPressed(key common.KeyCode) bool {
	return i.pressedKeys[key]
}

// KeyJustPressed reports whether key went down this frame.
func (i *Inputs) KeyJustPressed(key common.KeyCode) bool {
	return slices.Contains(i.keyEvents, KeyboardEvent{Key: key, State: Pressed})
}

// KeyJustReleased reports whether key went up this frame.
func (i *Inputs) KeyJustReleased(key common.KeyCode) bool {
	return slices.Contains(i.keyEvents, KeyboardEvent{Key: key, State: Released})
}

// ShortcutPressed reports whether every key of the shortcut is held and at least one went down this frame.
func (i *Inputs) ShortcutPressed(keys ...common.KeyCode) bool {
	if len(keys) == 0 {
		return false
	}
	fresh := false
	for _, k := range keys {
		if !i.pressedKeys[k] {
			return false
		}
		fresh = fresh || i.KeyJustPressed(k)
	}
	return fresh
}

// KeyEvents returns the key transitions of the frame in arrival order.
func (i *Inputs) KeyEvents() []KeyboardEvent {
	return slices.Clone(i.keyEvents)
}

// MousePosition returns the cursor position in window coordinates.
func (i *Inputs) MousePosition() (float64, float64) {
	return i.mouseX, i.mouseY
}

// MouseButtonPressed reports whether button is held.
func (i *Inputs) MouseButtonPressed(button common.MouseButton) bool {
	return i.pressedButtons[button]
}

// MouseClicked reports whether button went down this frame, and where.
func (i *Inputs) MouseClicked(button common.MouseButton) (bool, float64, float64) {
	for _, ev := range i.buttonEvents {
		if ev.Button == button && ev.State == Pressed {
			return true, ev.X, ev.Y
		}
	}
	return false, 0, 0
}

// Scroll returns the wheel delta accumulated this frame.
func (i *Inputs) Scroll() (float64, float64) {
	return i.scrollX, i.scrollY
}

// ResetInputs clears the per-frame transitions and wheel delta. Held state is kept.
func (i *Inputs) ResetInputs() {
	i.keyEvents = i.keyEvents[:0]
	i.buttonEvents = i.buttonEvents[:0]
	i.scrollX, i.scrollY = 0, 0
}
