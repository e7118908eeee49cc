package system

import (
	"fmt"

	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
	"go.uber.org/zap"
)

// UiTextSyncSystem refreshes every UiText bound to a sync function.
func UiTextSyncSystem(data *gamedata.GameData) {
	ecs.Each1(data.World, func(_ ecs.Entity, text *component.UiText) {
		if fn := text.SyncFn(); fn != nil {
			text.SetText(fn(data.World))
		}
	})
}

// UiTextMaterialResolver gives every UiText without a material the texture of its bitmap font,
// and registers the glyph layout of the font in the font atlas the first time it is used.
// A UiText naming an unregistered font is a fatal error.
func UiTextMaterialResolver(data *gamedata.GameData) {
	assets := data.Assets()
	atlas := data.FontAtlas()

	ecs.Each1(data.World, func(e ecs.Entity, text *component.UiText) {
		font, ok := assets.Font(text.Font())
		if !ok {
			panic(fmt.Sprintf("ui text on %v uses unregistered font %q", e, text.Font()))
		}
		if _, ok := atlas.Get(font.Name); !ok {
			zap.L().Named("system").Debug("adding bitmap font to atlas", zap.String("font", font.Name), zap.String("path", font.TexturePath))
			atlas.Add(font.Name, resources.BuildBitmapAtlas(font))
		}
		if !ecs.Has[component.Material](data.World, e) {
			_ = ecs.Add(data.World, e, component.NewTextureMaterial(font.TexturePath))
		}
	})
}

// MissingUiComponentSystem tags UI images and texts with component.UiComponent so they are
// drawn in screen space.
func MissingUiComponentSystem(data *gamedata.GameData) {
	w := data.World
	for _, e := range ecs.Query(w, ecs.With[component.UiImage](), ecs.Without[component.UiComponent]()) {
		_ = ecs.Add(w, e, component.UiComponent{})
	}
	for _, e := range ecs.Query(w, ecs.With[component.UiText](), ecs.Without[component.UiComponent]()) {
		_ = ecs.Add(w, e, component.UiComponent{})
	}
}
