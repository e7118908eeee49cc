// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
// The pre-renderer produces it and the renderer turns it into a GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SolidTexture builds a 1x1 texture filled with the given color.
//
// Parameters:
//   - c: the fill color
//
// Returns:
//   - TextureStagingData: the single pixel texture
func SolidTexture(c Color) TextureStagingData {
	return TextureStagingData{
		Pixels: []byte{c.R, c.G, c.B, uint8(c.A * 255)},
		Width:  1,
		Height: 1,
	}
}

// DecodeTextureFile opens an image file (PNG or JPEG) and decodes it into RGBA pixels.
//
// Parameters:
//   - path: the file path of the image
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if the file could not be opened or decoded
func DecodeTextureFile(path string) (TextureStagingData, error) {
	file, err := os.Open(path)
	if err != nil {
		return TextureStagingData{}, eris.Wrapf(err, "failed to open texture file %s", path)
	}
	defer file.Close()

	data, err := DecodeTexture(file)
	if err != nil {
		return TextureStagingData{}, eris.Wrapf(err, "failed to decode texture file %s", path)
	}
	return data, nil
}

// DecodeTextureBytes decodes raw encoded image bytes into RGBA pixels.
//
// Parameters:
//   - raw: the encoded image bytes
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if the bytes are not a supported image
func DecodeTextureBytes(raw []byte) (TextureStagingData, error) {
	return DecodeTexture(bytes.NewReader(raw))
}

// DecodeTexture decodes an image stream into RGBA pixels.
//
// Parameters:
//   - r: the encoded image stream
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if the stream is not a supported image
func DecodeTexture(r io.Reader) (TextureStagingData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, eris.Wrap(err, "failed to decode image")
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
