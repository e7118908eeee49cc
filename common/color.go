package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Color is an sRGB color with 8 bit channels and a floating point alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float32
}

// NewColor builds an opaque color.
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// NewColorWithAlpha builds a color with an explicit alpha.
func NewColorWithAlpha(r, g, b uint8, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
//
// Parameters:
//   - s: the hex string, with or without the leading '#'
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is malformed
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, eris.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, eris.Wrapf(err, "invalid hex color %q", s)
	}
	if len(h) == 6 {
		return NewColor(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return NewColorWithAlpha(uint8(v>>24), uint8(v>>16), uint8(v>>8), float32(uint8(v))/255), nil
}

// Hex renders the color as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, uint8(c.A*255))
}

// Float4 returns the color as normalized RGBA floats.
func (c Color) Float4() [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, c.A}
}

// ColorFromPickingID encodes a 24 bit picking id into an opaque color.
func ColorFromPickingID(id uint32) Color {
	return NewColor(uint8(id>>16), uint8(id>>8), uint8(id))
}

// PickingID decodes the picking id carried by an opaque color. Alpha is ignored.
func (c Color) PickingID() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
