package prerender

import (
	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
)

// depthUnit converts the integer ordering scalar of a tile into a vertex depth bias.
const depthUnit = 0.00001

// TileOffset is the placement of one tile inside its tilemap's vertex buffer.
type TileOffset struct {
	X, Y float32
	// Z is added to the vertex z, separating the layers of a tilemap.
	Z float32
	// Depth is the draw-order bias, smaller values are drawn in front.
	Depth float32
}

// ComputeTileOffset places the tile at position. Standard tilemaps stack layers by depth only.
// Isometric tilemaps shift each axis by the weighted grid coordinates and order tiles so that
// tiles nearer to the viewer occlude farther ones.
//
// Parameters:
//   - tm: the tilemap
//   - position: the grid position of the tile
//   - tileSize: the tile size of the tileset in pixels
//
// Returns:
//   - TileOffset: the tile placement
func ComputeTileOffset(tm *component.Tilemap, position component.Position, tileSize int) TileOffset {
	x, y, z := float32(position.X), float32(position.Y), float32(position.Z)
	var offsetX, offsetY float32
	var order int

	if tm.IsIsometric() {
		mx, my := tm.Type().OffsetX(), tm.Type().OffsetY()
		offsetX = -x*mx.X + y*mx.Y - z*mx.Z
		offsetY = -(y*my.Y + x*my.X) - z*my.Z
		maxX := tm.Width()
		order = (maxX-position.Z)*(maxX+1) + position.X*(maxX+1) + (maxX - position.Y)
	} else {
		order = tm.Depth()*100 - position.Z*10
	}

	size := float32(tileSize)
	return TileOffset{
		X:     size*x + offsetX,
		Y:     size*y + offsetY,
		Z:     z / 100,
		Depth: float32(order) * depthUnit,
	}
}

type tileUpload struct {
	entity   ecs.Entity
	sprite   *component.Sprite
	offset   TileOffset
	picking  common.Color
	content  []component.TexturedVertex
	vertices []component.TexturedVertex
}

// prepareTilemaps batches every tile of a tilemap into one buffer pair. A tilemap is uploaded
// when it has no buffer yet or when any of its tile sprites is dirty.
func (p *PreRenderer) prepareTilemaps(w *ecs.World) []rendering.Update {
	var updates []rendering.Update
	ecs.Each2(w, func(e ecs.Entity, tm *component.Tilemap, m *component.Material) {
		tileSize := m.MustTileSize()

		var tiles []*tileUpload
		anyDirty := false
		ecs.Each2(w, func(te ecs.Entity, tile *component.Tile, sprite *component.Sprite) {
			if tile.Tilemap != e {
				return
			}
			anyDirty = anyDirty || sprite.IsDirty()
			tiles = append(tiles, &tileUpload{
				entity: te,
				sprite: sprite,
				offset: ComputeTileOffset(tm, tile.Position, tileSize),
			})
		})
		if !p.missingVertexBuffer(e) && !anyDirty {
			return
		}

		for _, t := range tiles {
			t.picking = p.picking.CreatePicking(t.entity)
		}
		p.parallel(len(tiles), func(i int) {
			t := tiles[i]
			t.content = t.sprite.Vertices(m)
			t.vertices = placeTile(t.content, t.offset, t.picking)
		})

		vertices := make([]component.TexturedVertex, 0, 4*len(tiles))
		indices := make([]uint16, 0, 6*len(tiles))
		for i, t := range tiles {
			vertices = append(vertices, t.vertices...)
			for _, idx := range component.QuadIndices() {
				indices = append(indices, idx+uint16(i*4))
			}
		}

		s := p.state(e)
		updates = append(updates,
			rendering.VertexBufferUpdate{Entity: e, Contents: component.VertexBytes(vertices)},
			rendering.IndexBufferUpdate{Entity: e, Contents: component.IndexBytes(indices)},
		)
		s.vertex, s.index = true, true
		s.indexCount = uint32(len(indices))

		for _, t := range tiles {
			t.sprite.SetDirty(false)
			t.sprite.SetContent(t.content)
		}
	}, ecs.With[component.Transform]())
	return updates
}

// placeTile offsets the quad of a tile and embeds its picking color.
func placeTile(content []component.TexturedVertex, offset TileOffset, picking common.Color) []component.TexturedVertex {
	out := make([]component.TexturedVertex, len(content))
	copy(out, content)
	for i := range out {
		out[i].Position[0] += offset.X
		out[i].Position[1] += offset.Y
		out[i].Position[2] += offset.Z
		out[i].Depth += offset.Depth
		out[i].EnablePicking = 1
		out[i].PickingColor = picking.Float4()
	}
	return out
}
