package camera

// CameraBuilderOption configures a Camera at construction.
type CameraBuilderOption func(*Camera)

// WithDPI sets the camera's initial scale factor.
//
// Parameters:
//   - dpi: the scale factor
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's scale factor
func WithDPI(dpi float64) CameraBuilderOption {
	return func(c *Camera) {
		c.dpi = dpi
	}
}

// WithDepthRange sets the near and far planes of the orthographic volume.
//
// Parameters:
//   - near: near plane
//   - far: far plane
//
// Returns:
//   - CameraBuilderOption: a function that sets the depth range
func WithDepthRange(near, far float32) CameraBuilderOption {
	return func(c *Camera) {
		c.near = near
		c.far = far
	}
}
