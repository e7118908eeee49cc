package camera

import (
	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
)

// Camera is the 2D orthographic camera component. The entity carrying it must also carry a
// component.Transform: its global translation is the top-left corner of the visible area.
// Only the first camera found in the world is used.
type Camera struct {
	width  float32
	height float32
	near   float32
	far    float32
	dpi    float64
}

// NewCamera creates a camera covering width x height logical pixels.
//
// Parameters:
//   - width: visible width in logical pixels
//   - height: visible height in logical pixels
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the camera component
func NewCamera(width, height float32, options ...CameraBuilderOption) Camera {
	c := &Camera{
		width:  width,
		height: height,
		near:   -1,
		far:    1,
		dpi:    1,
	}
	for _, opt := range options {
		opt(c)
	}
	return *c
}

// Width returns the visible width.
func (c *Camera) Width() float32 { return c.width }

// Height returns the visible height.
func (c *Camera) Height() float32 { return c.height }

// DPI returns the scale factor applied to the viewport.
func (c *Camera) DPI() float64 { return c.dpi }

// SetDimensions resizes the visible area, typically after a window resize.
//
// Parameters:
//   - width: visible width in logical pixels
//   - height: visible height in logical pixels
func (c *Camera) SetDimensions(width, height float32) {
	c.width = width
	c.height = height
}

// SetDPI updates the scale factor.
func (c *Camera) SetDPI(dpi float64) {
	c.dpi = dpi
}

// Projection returns the y-down orthographic projection of the camera. The view offset is not
// included; it is folded into each model matrix so UI entities can ignore it.
//
// Returns:
//   - [16]float32: the projection matrix (column-major)
func (c *Camera) Projection() [16]float32 {
	var out [16]float32
	common.Orthographic(out[:], 0, c.width, c.height, 0, c.near, c.far)
	return out
}

// ModelMatrix computes the model matrix of a renderable. World-space entities are shifted by
// the camera translation; UI entities and transforms using the screen as origin are not.
//
// Parameters:
//   - t: the renderable's transform, globals already resolved
//   - cam: the camera entity's transform
//   - pivot: the renderable's pivot offset
//   - ui: whether the renderable is a UI component
//
// Returns:
//   - [16]float32: the model matrix (column-major)
func ModelMatrix(t *component.Transform, cam *component.Transform, pivot component.Vector, ui bool) [16]float32 {
	var out [16]float32
	pos := t.GlobalTranslation()
	if !ui && !t.ScreenOrigin() && cam != nil {
		camPos := cam.GlobalTranslation()
		pos.X -= camPos.X
		pos.Y -= camPos.Y
	}
	scale := t.GlobalScale()
	common.BuildModelMatrix2D(out[:], pos.X, pos.Y, pivot.X, pivot.Y, t.GlobalAngle(), scale)

	z := float32(t.GlobalZ())
	if ui {
		z /= 1000
	}
	out[14] = z
	return out
}
