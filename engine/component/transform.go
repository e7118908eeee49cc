package component

// Transform is the position, rotation, scale and layer of an entity. The global values are
// resolved once per tick from the Parent chain by the hierarchy system; for entities without a
// parent they equal the local values.
type Transform struct {
	translation Vector
	z           int
	angle       float32
	scale       float32

	globalTranslation Vector
	globalZ           int
	globalAngle       float32
	globalScale       float32

	dirty             bool
	useScreenAsOrigin bool
}

// NewTransform builds a transform at translation with the given scale and angle in radians.
func NewTransform(translation Vector, scale, angle float32) Transform {
	return Transform{
		translation:       translation,
		angle:             angle,
		scale:             scale,
		globalTranslation: translation,
		globalAngle:       angle,
		globalScale:       scale,
		dirty:             true,
	}
}

// FromXY builds an unscaled, unrotated transform on layer 0.
func FromXY(x, y float32) Transform {
	return NewTransform(Vector{X: x, Y: y}, 1, 0)
}

// FromXYZ builds an unscaled, unrotated transform on layer z.
func FromXYZ(x, y float32, z int) Transform {
	t := FromXY(x, y)
	t.z = z
	t.globalZ = z
	return t
}

// Translation returns the local translation.
func (t *Transform) Translation() Vector { return t.translation }

// GlobalTranslation returns the translation resolved through the parent chain.
func (t *Transform) GlobalTranslation() Vector { return t.globalTranslation }

// Z returns the local layer.
func (t *Transform) Z() int { return t.z }

// GlobalZ returns the resolved layer used to sort draw calls.
func (t *Transform) GlobalZ() int { return t.globalZ }

// Angle returns the local rotation in radians.
func (t *Transform) Angle() float32 { return t.angle }

// GlobalAngle returns the resolved rotation in radians.
func (t *Transform) GlobalAngle() float32 { return t.globalAngle }

// Scale returns the local scale.
func (t *Transform) Scale() float32 { return t.scale }

// GlobalScale returns the resolved scale.
func (t *Transform) GlobalScale() float32 { return t.globalScale }

// AppendTranslation moves the transform by (x, y).
func (t *Transform) AppendTranslation(x, y float32) {
	t.translation.X += x
	t.translation.Y += y
	t.dirty = true
}

// AppendVector moves the transform by v.
func (t *Transform) AppendVector(v Vector) {
	t.AppendTranslation(v.X, v.Y)
}

// AppendX moves the transform horizontally.
func (t *Transform) AppendX(x float32) {
	t.AppendTranslation(x, 0)
}

// AppendY moves the transform vertically.
func (t *Transform) AppendY(y float32) {
	t.AppendTranslation(0, y)
}

// SetTranslation places the transform at (x, y).
func (t *Transform) SetTranslation(x, y float32) {
	t.translation = Vector{X: x, Y: y}
	t.dirty = true
}

// SetX sets the horizontal translation.
func (t *Transform) SetX(x float32) {
	t.translation.X = x
	t.dirty = true
}

// SetY sets the vertical translation.
func (t *Transform) SetY(y float32) {
	t.translation.Y = y
	t.dirty = true
}

// SetZ sets the layer.
func (t *Transform) SetZ(z int) {
	t.z = z
	t.dirty = true
}

// AppendAngle rotates the transform by angle radians.
func (t *Transform) AppendAngle(angle float32) {
	t.angle += angle
	t.dirty = true
}

// SetAngle sets the rotation in radians.
func (t *Transform) SetAngle(angle float32) {
	t.angle = angle
	t.dirty = true
}

// SetScale sets the scale.
func (t *Transform) SetScale(scale float32) {
	t.scale = scale
	t.dirty = true
}

// UseScreenAsOrigin pins the transform to screen space so the camera does not move it.
func (t *Transform) UseScreenAsOrigin(v bool) {
	t.useScreenAsOrigin = v
	t.dirty = true
}

// ScreenOrigin reports whether the transform ignores the camera.
func (t *Transform) ScreenOrigin() bool { return t.useScreenAsOrigin }

// IsDirty reports whether the local values changed since the last resolution.
func (t *Transform) IsDirty() bool { return t.dirty }

// MarkDirty forces the next hierarchy pass to resolve the transform again, used when the
// parent of the entity changed.
func (t *Transform) MarkDirty() { t.dirty = true }

// ResolveRoot copies the local values into the global ones and clears the dirty flag.
func (t *Transform) ResolveRoot() {
	t.globalTranslation = t.translation
	t.globalZ = t.z
	t.globalAngle = t.angle
	t.globalScale = t.scale
	t.dirty = false
}

// ResolveFromParent composes the parent's global values with the local ones and clears the dirty flag.
func (t *Transform) ResolveFromParent(parent *Transform) {
	t.globalTranslation = parent.globalTranslation.Add(t.translation)
	t.globalZ = parent.globalZ + t.z
	t.globalAngle = parent.globalAngle + t.angle
	t.globalScale = parent.globalScale * t.scale
	t.dirty = false
}
