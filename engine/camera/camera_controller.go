package camera

import (
	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
)

// ControllerConfig is the resource tuning the keyboard camera controller. Game code may
// change the velocities at runtime.
type ControllerConfig struct {
	horizontalVelocity float32
	verticalVelocity   float32
}

// ControllerOption configures a ControllerConfig at construction.
type ControllerOption func(*ControllerConfig)

// NewControllerConfig creates the controller resource, 5 pixels per tick on both axes by default.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - *ControllerConfig: the controller resource
func NewControllerConfig(options ...ControllerOption) *ControllerConfig {
	c := &ControllerConfig{horizontalVelocity: 5, verticalVelocity: 5}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// WithVelocity sets the pan speed on both axes.
//
// Parameters:
//   - horizontal: pixels per tick along X
//   - vertical: pixels per tick along Y
//
// Returns:
//   - ControllerOption: option function to apply
func WithVelocity(horizontal, vertical float32) ControllerOption {
	return func(c *ControllerConfig) {
		c.horizontalVelocity = horizontal
		c.verticalVelocity = vertical
	}
}

// SetHorizontalVelocity changes the X pan speed.
func (c *ControllerConfig) SetHorizontalVelocity(v float32) { c.horizontalVelocity = v }

// SetVerticalVelocity changes the Y pan speed.
func (c *ControllerConfig) SetVerticalVelocity(v float32) { c.verticalVelocity = v }

// Velocities returns the horizontal and vertical pan speeds.
func (c *ControllerConfig) Velocities() (float32, float32) {
	return c.horizontalVelocity, c.verticalVelocity
}

// ControllerSystem pans every camera with the arrow keys. It requires a ControllerConfig resource.
//
// Parameters:
//   - data: the simulation state
func ControllerSystem(data *gamedata.GameData) {
	in := data.Inputs()
	cfg := ecs.MustGetResource[ControllerConfig](data.Resources)
	vh, vv := cfg.Velocities()

	var dx, dy float32
	if in.KeyPressed(common.KeyLeft) {
		dx -= vh
	}
	if in.KeyPressed(common.KeyRight) {
		dx += vh
	}
	if in.KeyPressed(common.KeyUp) {
		dy -= vv
	}
	if in.KeyPressed(common.KeyDown) {
		dy += vv
	}
	if dx == 0 && dy == 0 {
		return
	}

	ecs.Each2(data.World, func(_ ecs.Entity, t *component.Transform, _ *Camera) {
		t.AppendTranslation(dx, dy)
	})
}

// FitWindowSystem keeps every camera the size of the window and at its scale factor.
//
// Parameters:
//   - data: the simulation state
func FitWindowSystem(data *gamedata.GameData) {
	win := data.Window()
	w, h := float32(win.Width()), float32(win.Height())
	ecs.Each1(data.World, func(_ ecs.Entity, c *Camera) {
		if c.width != w || c.height != h {
			c.SetDimensions(w, h)
		}
		if c.dpi != win.DPI() {
			c.SetDPI(win.DPI())
		}
	})
}
