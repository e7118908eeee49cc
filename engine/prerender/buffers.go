package prerender

import (
	"fmt"
	"unicode"

	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
	"go.uber.org/zap"
)

// renderable constrains T to component types whose pointer implements component.Renderable.
type renderable[T any] interface {
	*T
	component.Renderable
}

// pendingUpload is one entity whose buffers must be recomputed.
type pendingUpload struct {
	entity   ecs.Entity
	r        component.Renderable
	material *component.Material
	vertex   bool
	index    bool

	vertices []component.TexturedVertex
	indices  []uint16
}

// prepareComponentBuffers emits vertex and index buffers for every renderable type, in a fixed
// type order.
func (p *PreRenderer) prepareComponentBuffers(data *gamedata.GameData) []rendering.Update {
	w := data.World
	var updates []rendering.Update
	updates = append(updates, prepareComponent[component.Triangle](p, w)...)
	updates = append(updates, prepareComponent[component.Square](p, w)...)
	updates = append(updates, prepareComponent[component.Rectangle](p, w)...)
	updates = append(updates, prepareComponent[component.Sprite](p, w)...)
	updates = append(updates, prepareComponent[component.Line](p, w)...)
	updates = append(updates, prepareComponent[component.Polygon](p, w)...)
	updates = append(updates, prepareUiComponent[component.UiImage](p, w)...)
	updates = append(updates, p.prepareUiText(data)...)
	updates = append(updates, p.prepareTilemaps(w)...)
	return updates
}

// prepareComponent handles world-space renderables: they need a Material and a Transform.
// Sprites belonging to a tilemap are batched with it instead.
func prepareComponent[T any, PT renderable[T]](p *PreRenderer, w *ecs.World) []rendering.Update {
	var pending []*pendingUpload
	ecs.Each2(w, func(e ecs.Entity, c *T, m *component.Material) {
		r := PT(c)
		if u := p.needsUpload(e, r); u != nil {
			u.material = m
			pending = append(pending, u)
		}
	}, ecs.With[component.Transform](), ecs.Without[component.Tile]())
	return p.flushUploads(pending)
}

// prepareUiComponent handles screen-space renderables, whose Material is optional.
func prepareUiComponent[T any, PT renderable[T]](p *PreRenderer, w *ecs.World) []rendering.Update {
	var pending []*pendingUpload
	ecs.Each1(w, func(e ecs.Entity, c *T) {
		r := PT(c)
		if u := p.needsUpload(e, r); u != nil {
			u.material, _ = ecs.Get[component.Material](w, e)
			pending = append(pending, u)
		}
	}, ecs.With[component.Transform]())
	return p.flushUploads(pending)
}

// needsUpload applies the upload rule: a missing buffer or a dirty component.
func (p *PreRenderer) needsUpload(e ecs.Entity, r component.Renderable) *pendingUpload {
	vertex := p.missingVertexBuffer(e) || r.IsDirty()
	index := p.missingIndexBuffer(e) || r.IsDirty()
	if !vertex && !index {
		return nil
	}
	return &pendingUpload{entity: e, r: r, vertex: vertex, index: index}
}

// flushUploads computes the payloads, in parallel for large batches, then emits them in query order.
func (p *PreRenderer) flushUploads(pending []*pendingUpload) []rendering.Update {
	if len(pending) == 0 {
		return nil
	}
	p.parallel(len(pending), func(i int) {
		u := pending[i]
		if u.vertex {
			u.vertices = u.r.Vertices(u.material)
		}
		u.indices = u.r.Indices()
	})

	updates := make([]rendering.Update, 0, 2*len(pending))
	for _, u := range pending {
		s := p.state(u.entity)
		if u.vertex {
			updates = append(updates, rendering.VertexBufferUpdate{Entity: u.entity, Contents: component.VertexBytes(u.vertices)})
			s.vertex = true
			if sprite, ok := u.r.(*component.Sprite); ok {
				sprite.SetContent(u.vertices)
			}
		}
		if u.index {
			updates = append(updates, rendering.IndexBufferUpdate{Entity: u.entity, Contents: component.IndexBytes(u.indices)})
			s.index = true
		}
		s.indexCount = uint32(len(u.indices))
		u.r.SetDirty(false)
	}
	return updates
}

// prepareUiText lays out the glyphs of every UiText whose font material is resolved.
func (p *PreRenderer) prepareUiText(data *gamedata.GameData) []rendering.Update {
	atlas := data.FontAtlas()
	var updates []rendering.Update
	ecs.Each2(data.World, func(e ecs.Entity, text *component.UiText, m *component.Material) {
		if m.Kind() != component.MaterialTexture || m.TexturePath() == "" {
			return
		}
		if !p.missingVertexBuffer(e) && !text.IsDirty() {
			return
		}
		entry, ok := atlas.Get(text.Font())
		if !ok {
			panic(fmt.Sprintf("missing font atlas for font %q of entity %v", text.Font(), e))
		}

		vertices, indices := p.textGeometry(text, entry)
		s := p.state(e)
		updates = append(updates,
			rendering.VertexBufferUpdate{Entity: e, Contents: component.VertexBytes(vertices)},
			rendering.IndexBufferUpdate{Entity: e, Contents: component.IndexBytes(indices)},
		)
		s.vertex, s.index = true, true
		s.indexCount = uint32(len(indices))
		text.SetDirty(false)
	}, ecs.With[component.Transform]())
	return updates
}

// glyphSpacing is the gap between two glyphs and whitespaceAdvance the width of a blank, in
// unscaled pixels.
const (
	glyphSpacing      = 1
	whitespaceAdvance = 5
)

func (p *PreRenderer) textGeometry(text *component.UiText, entry *resources.FontAtlasEntry) ([]component.TexturedVertex, []uint16) {
	var (
		vertices []component.TexturedVertex
		indices  []uint16
		x        float32
		glyphs   int
		scale    float32 = 1
	)
	for _, ch := range text.Text() {
		if unicode.IsSpace(ch) {
			x += whitespaceAdvance * scale
			continue
		}
		pos, ok := entry.Character(ch)
		if !ok {
			p.logger.Debug("glyph missing from font atlas", zap.String("font", text.Font()), zap.String("char", string(ch)))
			continue
		}
		scale = glyphScale(text, pos)
		quad := component.QuadVertices(pos.Width()*scale, pos.Height()*scale,
			pos.StartX/entry.TextureWidth, pos.StartY/entry.TextureHeight,
			pos.EndX/entry.TextureWidth, pos.EndY/entry.TextureHeight)
		for i := range quad {
			quad[i].Position[0] += x
		}
		for _, idx := range component.QuadIndices() {
			indices = append(indices, idx+uint16(glyphs*4))
		}
		vertices = append(vertices, quad...)
		glyphs++
		x += (pos.Width() + glyphSpacing) * scale
	}

	if len(vertices) == 0 {
		vertices = component.QuadVertices(0, 0, 0, 0, 0, 0)
		indices = component.QuadIndices()
	}
	return vertices, indices
}

// glyphScale maps atlas pixels to the requested font size. A zero font size keeps the atlas size.
func glyphScale(text *component.UiText, pos resources.CharacterPosition) float32 {
	if text.FontSize() <= 0 || pos.Height() <= 0 {
		return 1
	}
	return float32(text.FontSize()) / pos.Height()
}
