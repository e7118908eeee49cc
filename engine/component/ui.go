package component

import (
	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
)

// UiComponent marks an entity drawn in screen space, unaffected by the camera.
type UiComponent struct{}

// Hide removes an entity from the draw list without despawning it.
type Hide struct{}

// Dirty tags an entity whose transform uniform must be recomputed this frame.
// The hierarchy system adds it and the pre-renderer removes it once consumed.
type Dirty struct{}

var _ Renderable = &UiImage{}

// UiImage draws a whole texture file in screen space.
type UiImage struct {
	width, height float32
	imagePath     string
	dirty         bool
}

// NewUiImage builds a width x height image showing imagePath.
func NewUiImage(width, height float32, imagePath string) UiImage {
	return UiImage{width: width, height: height, imagePath: imagePath}
}

// ImagePath returns the texture shown by the image.
func (u *UiImage) ImagePath() string { return u.imagePath }

// SetSize resizes the image.
func (u *UiImage) SetSize(width, height float32) {
	u.width, u.height = width, height
	u.dirty = true
}

func (u *UiImage) Vertices(_ *Material) []TexturedVertex {
	return quad(u.width, u.height, 0, 0, 1, 1)
}

func (u *UiImage) Indices() []uint16 { return QuadIndices() }
func (u *UiImage) Topology() Topology { return TopologyTriangleList }
func (u *UiImage) IsDirty() bool { return u.dirty }
func (u *UiImage) SetDirty(dirty bool) { u.dirty = dirty }
func (u *UiImage) PivotOffset(_ *Material) Vector { return Vector{} }
func (u *UiImage) RenderPriority() int { return 0 }

// UiText is a line of text rendered through a bitmap font atlas.
type UiText struct {
	text      string
	font      string
	fontSize  int
	fontColor *common.Color
	dirty     bool
	syncFn    func(w *ecs.World) string
}

// NewUiText builds a text drawn with the registered font named font.
func NewUiText(text, font string) UiText {
	return UiText{text: text, font: font, dirty: true}
}

// WithFontSize sets the rendering size of the glyphs.
func (u UiText) WithFontSize(size int) UiText {
	u.fontSize = size
	return u
}

// WithFontColor sets the glyph tint.
func (u UiText) WithFontColor(c common.Color) UiText {
	u.fontColor = &c
	return u
}

// WithSyncFn binds the text to a function evaluated every tick by the text sync system.
func (u UiText) WithSyncFn(fn func(w *ecs.World) string) UiText {
	u.syncFn = fn
	return u
}

// Text returns the displayed text.
func (u *UiText) Text() string { return u.text }

// SetText replaces the text and marks it dirty when it changed.
func (u *UiText) SetText(text string) {
	if u.text == text {
		return
	}
	u.text = text
	u.dirty = true
}

// Font returns the font asset name.
func (u *UiText) Font() string { return u.font }

// FontSize returns the glyph size, 0 meaning the atlas cell size.
func (u *UiText) FontSize() int { return u.fontSize }

// FontColor returns the glyph tint, if any.
func (u *UiText) FontColor() *common.Color { return u.fontColor }

// SyncFn returns the bound sync function, if any.
func (u *UiText) SyncFn() func(w *ecs.World) string { return u.syncFn }

// IsDirty reports whether the glyph buffers must be rebuilt.
func (u *UiText) IsDirty() bool { return u.dirty }

// SetDirty sets the dirty flag.
func (u *UiText) SetDirty(dirty bool) { u.dirty = dirty }

// RenderPriority draws glyphs after the background images of the same layer.
func (u *UiText) RenderPriority() int { return 1 }
