package prerender

import (
	"github.com/Carmen-Shannon/scion-go/engine/camera"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
)

type transformTarget struct {
	entity ecs.Entity
	pivot  component.Vector
}

// prepareTransforms emits transform uniforms. When the camera moved or was resized every
// renderable is recomputed; otherwise only entities tagged Dirty, or without any uniform yet.
// Dirty tags are consumed.
func (p *PreRenderer) prepareTransforms(data *gamedata.GameData) []rendering.Update {
	w := data.World
	cam, camTransform := p.retrieveCamera(data)
	size := [2]float32{cam.Width(), cam.Height()}
	origin := camTransform.GlobalTranslation()
	cameraDirty := p.cameraSeen && (origin != p.cameraOrigin || size != p.cameraSize)
	p.cameraSeen, p.cameraOrigin, p.cameraSize = true, origin, size

	projection := cam.Projection()
	var updates []rendering.Update
	for _, t := range p.transformTargets(w) {
		s := p.state(t.entity)
		if !cameraDirty && s.transform && !ecs.Has[component.Dirty](w, t.entity) {
			continue
		}
		transform := ecs.MustGet[component.Transform](w, t.entity)
		ui := ecs.Has[component.UiComponent](w, t.entity)
		uniform := component.TransformUniform{
			Model:          camera.ModelMatrix(transform, camTransform, t.pivot, ui),
			ViewProjection: projection,
		}
		if ui {
			uniform.IsUI = 1
		}
		updates = append(updates, rendering.TransformUniformUpdate{Entity: t.entity, Uniform: uniform})
		s.transform = true
	}

	for _, e := range ecs.Query(w, ecs.With[component.Dirty]()) {
		ecs.Remove[component.Dirty](w, e)
	}
	return updates
}

// transformTargets lists every renderable entity with its pivot, in buffer type order.
func (p *PreRenderer) transformTargets(w *ecs.World) []transformTarget {
	var out []transformTarget
	out = appendTargets[component.Triangle](w, out)
	out = appendTargets[component.Square](w, out)
	out = appendTargets[component.Rectangle](w, out)
	out = appendTargets[component.Sprite](w, out, ecs.Without[component.Tile]())
	out = appendTargets[component.Line](w, out)
	out = appendTargets[component.Polygon](w, out)
	out = appendTargets[component.UiImage](w, out)
	for _, e := range ecs.Query(w, ecs.With[component.UiText](), ecs.With[component.Transform]()) {
		out = append(out, transformTarget{entity: e})
	}
	for _, e := range ecs.Query(w, ecs.With[component.Tilemap](), ecs.With[component.Transform]()) {
		out = append(out, transformTarget{entity: e})
	}
	return out
}

func appendTargets[T any, PT renderable[T]](w *ecs.World, out []transformTarget, opts ...ecs.QueryOption) []transformTarget {
	ecs.Each1(w, func(e ecs.Entity, c *T) {
		m, _ := ecs.Get[component.Material](w, e)
		out = append(out, transformTarget{entity: e, pivot: PT(c).PivotOffset(m)})
	}, append(opts, ecs.With[component.Transform]())...)
	return out
}

// retrieveCamera returns the last camera in the world, or a window-sized camera at the origin.
func (p *PreRenderer) retrieveCamera(data *gamedata.GameData) (camera.Camera, *component.Transform) {
	var (
		cam   *camera.Camera
		camTr *component.Transform
	)
	ecs.Each2(data.World, func(_ ecs.Entity, c *camera.Camera, t *component.Transform) {
		cam, camTr = c, t
	})
	if cam == nil {
		win := data.Window()
		fallback := camera.NewCamera(float32(win.Width()), float32(win.Height()), camera.WithDPI(win.DPI()))
		origin := component.FromXY(0, 0)
		return fallback, &origin
	}
	return *cam, camTr
}
