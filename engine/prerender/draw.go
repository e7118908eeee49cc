package prerender

import (
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
)

// drawInfos lists one draw per uploaded, visible renderable, sorted by layer then priority.
func (p *PreRenderer) drawInfos(w *ecs.World) []rendering.DrawInfo {
	var draws []rendering.DrawInfo
	add := func(e ecs.Entity, typeName string, priority int, topology component.Topology) {
		s, ok := p.buffers[e]
		if !ok || !s.vertex || !s.index || !s.transform {
			return
		}
		t := ecs.MustGet[component.Transform](w, e)
		info := rendering.DrawInfo{
			Layer:      t.GlobalZ(),
			Priority:   priority,
			Entity:     e,
			IndexCount: s.indexCount,
			Topology:   topology,
			TypeName:   typeName,
			UI:         ecs.Has[component.UiComponent](w, e),
		}
		if m, ok := ecs.Get[component.Material](w, e); ok {
			info.TextureKey = m.Key()
		} else if img, ok := ecs.Get[component.UiImage](w, e); ok {
			info.TextureKey = img.ImagePath()
		}
		draws = append(draws, info)
	}

	opts := []ecs.QueryOption{ecs.With[component.Transform](), ecs.Without[component.Hide]()}
	collectDraws[component.Triangle](w, "Triangle", add, opts...)
	collectDraws[component.Square](w, "Square", add, opts...)
	collectDraws[component.Rectangle](w, "Rectangle", add, opts...)
	collectDraws[component.Sprite](w, "Sprite", add, append(opts, ecs.Without[component.Tile]())...)
	collectDraws[component.Line](w, "Line", add, opts...)
	collectDraws[component.Polygon](w, "Polygon", add, opts...)
	collectDraws[component.UiImage](w, "UiImage", add, opts...)
	ecs.Each1(w, func(e ecs.Entity, text *component.UiText) {
		add(e, "UiText", text.RenderPriority(), component.TopologyTriangleList)
	}, opts...)
	for _, e := range ecs.Query(w, append(opts, ecs.With[component.Tilemap]())...) {
		add(e, "Tilemap", 0, component.TopologyTriangleList)
	}

	rendering.SortDrawInfos(draws)
	return draws
}

func collectDraws[T any, PT renderable[T]](w *ecs.World, typeName string, add func(ecs.Entity, string, int, component.Topology), opts ...ecs.QueryOption) {
	ecs.Each1(w, func(e ecs.Entity, c *T) {
		r := PT(c)
		add(e, typeName, r.RenderPriority(), r.Topology())
	}, opts...)
}
