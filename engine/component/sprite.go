package component

var _ Renderable = &Sprite{}

// Sprite draws one tile of a tileset material.
type Sprite struct {
	tileNumber int
	dirty      bool
	// content caches the last computed vertices, used to detect what the GPU currently holds.
	content []TexturedVertex
}

// NewSprite builds a sprite showing tileNumber.
func NewSprite(tileNumber int) Sprite {
	return Sprite{tileNumber: tileNumber}
}

// TileNumber returns the displayed tile.
func (s *Sprite) TileNumber() int { return s.tileNumber }

// SetTileNumber changes the displayed tile.
func (s *Sprite) SetTileNumber(n int) {
	if s.tileNumber == n {
		return
	}
	s.tileNumber = n
	s.dirty = true
}

// Vertices computes the quad of the tile. It panics when the material is not a tileset.
func (s *Sprite) Vertices(material *Material) []TexturedVertex {
	if material == nil || material.Tileset() == nil {
		panic("sprite requires a tileset material")
	}
	ts := material.Tileset()
	size := float32(ts.TileSize)
	cols, rows := max(ts.Width, 1), max(ts.Height, 1)
	col := s.tileNumber % cols
	row := s.tileNumber / cols

	u0 := float32(col) / float32(cols)
	u1 := float32(col+1) / float32(cols)
	v0 := float32(row) / float32(rows)
	v1 := float32(row+1) / float32(rows)
	return quad(size, size, u0, v0, u1, v1)
}

// SetContent records the vertices last uploaded for this sprite.
func (s *Sprite) SetContent(content []TexturedVertex) { s.content = content }

// Content returns the vertices last uploaded for this sprite.
func (s *Sprite) Content() []TexturedVertex { return s.content }

func (s *Sprite) Indices() []uint16 { return QuadIndices() }
func (s *Sprite) Topology() Topology { return TopologyTriangleList }
func (s *Sprite) IsDirty() bool { return s.dirty }
func (s *Sprite) SetDirty(dirty bool) { s.dirty = dirty }
func (s *Sprite) RenderPriority() int { return 0 }
func (s *Sprite) PivotOffset(material *Material) Vector {
	if size, ok := material.TileSize(); ok {
		return Vector{X: float32(size) / 2, Y: float32(size) / 2}
	}
	return Vector{}
}
