package prerender

import (
	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
	"go.uber.org/zap"
)

// prepareDiffuseBindGroups uploads each texture the first time a material or UI image uses it.
// A texture that cannot be loaded is logged once and retried on the next frame.
func (p *PreRenderer) prepareDiffuseBindGroups(data *gamedata.GameData) []rendering.Update {
	var updates []rendering.Update
	emit := func(key string, kind rendering.DiffuseKind, load func() (common.TextureStagingData, error)) {
		if _, ok := p.textures[key]; ok || key == "" {
			return
		}
		tex, err := load()
		if err != nil {
			if _, logged := p.missing[key]; !logged {
				p.missing[key] = struct{}{}
				p.logger.Warn("texture unavailable, retrying next frame", zap.String("key", key), zap.Error(err))
			}
			return
		}
		delete(p.missing, key)
		p.textures[key] = struct{}{}
		updates = append(updates, rendering.DiffuseBindGroupUpdate{Key: key, Kind: kind, Texture: tex})
	}

	assets := data.Assets()
	ecs.Each1(data.World, func(_ ecs.Entity, m *component.Material) {
		switch m.Kind() {
		case component.MaterialColor:
			c := m.Color()
			emit(m.Key(), rendering.DiffuseColor, func() (common.TextureStagingData, error) {
				return common.SolidTexture(c), nil
			})
		case component.MaterialTexture:
			emit(m.Key(), rendering.DiffuseTexture, func() (common.TextureStagingData, error) {
				return assets.LoadTexture(m.TexturePath())
			})
		case component.MaterialTileset:
			emit(m.Key(), rendering.DiffuseTileset, func() (common.TextureStagingData, error) {
				return assets.LoadTexture(m.TexturePath())
			})
		}
	}, ecs.With[component.Transform]())

	ecs.Each1(data.World, func(_ ecs.Entity, img *component.UiImage) {
		emit(img.ImagePath(), rendering.DiffuseTexture, func() (common.TextureStagingData, error) {
			return assets.LoadTexture(img.ImagePath())
		})
	}, ecs.With[component.Transform](), ecs.Without[component.Material]())
	return updates
}

// preparePickingUniforms sends the picking color of every Pickable renderable once, after its
// buffers were uploaded.
func (p *PreRenderer) preparePickingUniforms(data *gamedata.GameData) []rendering.Update {
	var updates []rendering.Update
	for _, e := range ecs.Query(data.World, ecs.With[component.Pickable](), ecs.Without[component.Tile]()) {
		s, ok := p.buffers[e]
		if !ok || !s.vertex || s.picking {
			continue
		}
		c := p.picking.CreatePicking(e)
		updates = append(updates, rendering.ColorPickingUniformUpdate{
			Entity:  e,
			Uniform: component.NewColorPickingUniform(c),
		})
		s.picking = true
	}
	return updates
}
