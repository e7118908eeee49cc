package component

import (
	"fmt"

	"github.com/Carmen-Shannon/scion-go/common"
)

// MaterialKind discriminates the three material variants.
type MaterialKind uint8

const (
	MaterialColor MaterialKind = iota
	MaterialTexture
	MaterialTileset
)

// Tileset is a texture cut into a grid of square tiles.
type Tileset struct {
	Name        string
	TexturePath string
	// Width and Height are the grid size in tiles.
	Width    int
	Height   int
	TileSize int
	// Pathing maps a pathing type to the tile numbers carrying it.
	Pathing map[string][]int
}

// PathingOf returns the pathing type declared for tileNumber, if any.
func (t *Tileset) PathingOf(tileNumber int) (string, bool) {
	for kind, tiles := range t.Pathing {
		for _, n := range tiles {
			if n == tileNumber {
				return kind, true
			}
		}
	}
	return "", false
}

// Material describes how a renderable is textured.
type Material struct {
	kind        MaterialKind
	color       common.Color
	texturePath string
	tileset     *Tileset
}

// NewColorMaterial builds a flat color material.
func NewColorMaterial(c common.Color) Material {
	return Material{kind: MaterialColor, color: c}
}

// NewTextureMaterial builds a material sampling a whole texture file.
func NewTextureMaterial(path string) Material {
	return Material{kind: MaterialTexture, texturePath: path}
}

// NewTilesetMaterial builds a material sampling tiles out of a tileset.
func NewTilesetMaterial(tileset *Tileset) Material {
	return Material{kind: MaterialTileset, tileset: tileset, texturePath: tileset.TexturePath}
}

// Kind returns the material variant.
func (m *Material) Kind() MaterialKind { return m.kind }

// Color returns the flat color of a color material.
func (m *Material) Color() common.Color { return m.color }

// SetColor replaces the flat color. The material key changes with it.
func (m *Material) SetColor(c common.Color) { m.color = c }

// TexturePath returns the texture file of texture and tileset materials.
func (m *Material) TexturePath() string { return m.texturePath }

// Tileset returns the tileset of a tileset material, nil otherwise.
func (m *Material) Tileset() *Tileset { return m.tileset }

// TileSize returns the tile size of a tileset material.
func (m *Material) TileSize() (int, bool) {
	if m == nil || m.kind != MaterialTileset || m.tileset == nil {
		return 0, false
	}
	return m.tileset.TileSize, true
}

// MustTileSize returns the tile size and panics when the material is not a tileset.
func (m *Material) MustTileSize() int {
	size, ok := m.TileSize()
	if !ok {
		panic(fmt.Sprintf("material of kind %d has no tile size", m.kind))
	}
	return size
}

// Key identifies the GPU texture backing the material. Color materials share one 1x1 texture per color.
func (m *Material) Key() string {
	if m.kind == MaterialColor {
		return "color:" + m.color.Hex()
	}
	return m.texturePath
}
