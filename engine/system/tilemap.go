package system

import (
	"fmt"

	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
)

// TileResolver describes the cell at a position when a tilemap is created.
type TileResolver func(position component.Position) component.TileInfos

// CreateTilemap spawns a tilemap entity and one tile entity per cell, each parented to the
// tilemap. Cells get a Sprite, an Animations and a Pathing component when the resolver provides them.
//
// Parameters:
//   - w: the world
//   - info: dimensions, transform, tileset and projection of the tilemap
//   - resolver: called once per cell, x-major then y then z
//
// Returns:
//   - ecs.Entity: the tilemap entity
func CreateTilemap(w *ecs.World, info component.TilemapInfo, resolver TileResolver) ecs.Entity {
	tm := w.Spawn(
		component.NewTilemap(info.Tileset, info.Type, info.Dimensions),
		component.NewTilesetMaterial(info.Tileset),
		info.Transform,
	)
	tilemap := ecs.MustGet[component.Tilemap](w, tm)

	for x := range info.Dimensions.Width {
		for y := range info.Dimensions.Height {
			for z := range info.Dimensions.Depth {
				position := component.Position{X: x, Y: y, Z: z}
				infos := resolver(position)

				bundle := []any{component.Tile{Position: position, Tilemap: tm}, ecs.Parent{Entity: tm}}
				if infos.TileNumber != nil {
					bundle = append(bundle, component.NewSprite(*infos.TileNumber))
				}
				if infos.Animation != nil {
					bundle = append(bundle, component.SingleAnimation("TileAnimation", infos.Animation))
				}
				if infos.Pathing != nil {
					bundle = append(bundle, component.Pathing{PathingType: *infos.Pathing})
				}
				tile := w.Spawn(bundle...)

				if infos.Event != nil {
					tilemap.SetEvent(position, *infos.Event)
				}
				tilemap.SetTileEntity(position, tile)
			}
		}
	}
	return tm
}

func mustTilemap(w *ecs.World, tilemap ecs.Entity) *component.Tilemap {
	tm, ok := ecs.Get[component.Tilemap](w, tilemap)
	if !ok {
		panic(fmt.Sprintf("entity %v is not a tilemap", tilemap))
	}
	return tm
}

// tileAt returns the living tile at position, forgetting it when it was despawned.
func tileAt(w *ecs.World, tm *component.Tilemap, position component.Position) (ecs.Entity, bool) {
	tile, ok := tm.TileEntity(position)
	if !ok {
		return ecs.Entity{}, false
	}
	if !w.Contains(tile) {
		tm.RemoveTileEntity(position)
		return ecs.Entity{}, false
	}
	return tile, true
}

// TilemapIntegritySystem keeps tilemaps and tiles consistent after despawns: tilemaps forget
// despawned tiles and tiles whose tilemap is gone are despawned.
func TilemapIntegritySystem(data *gamedata.GameData) {
	w := data.World
	var orphans []ecs.Entity
	ecs.Each1(w, func(e ecs.Entity, t *component.Tile) {
		if !w.Contains(t.Tilemap) || !ecs.Has[component.Tilemap](w, t.Tilemap) {
			orphans = append(orphans, e)
		}
	})
	for _, e := range orphans {
		_ = w.Despawn(e)
	}
	ecs.Each1(w, func(_ ecs.Entity, tm *component.Tilemap) {
		tm.PruneTiles(w.Contains)
	})
}

// ModifySpriteTile changes the tile shown at position, adding a Sprite to the cell when it had none.
//
// Returns:
//   - bool: false when no living tile sits at position
func ModifySpriteTile(w *ecs.World, tilemap ecs.Entity, position component.Position, tileNumber int) bool {
	tile, ok := tileAt(w, mustTilemap(w, tilemap), position)
	if !ok {
		return false
	}
	if s, ok := ecs.Get[component.Sprite](w, tile); ok {
		s.SetTileNumber(tileNumber)
		return true
	}
	s := component.NewSprite(tileNumber)
	s.SetDirty(true)
	return ecs.Add(w, tile, s) == nil
}

// RetrieveSpriteTile returns the tile shown at position.
func RetrieveSpriteTile(w *ecs.World, tilemap ecs.Entity, position component.Position) (int, bool) {
	tile, ok := tileAt(w, mustTilemap(w, tilemap), position)
	if !ok {
		return 0, false
	}
	s, ok := ecs.Get[component.Sprite](w, tile)
	if !ok {
		return 0, false
	}
	return s.TileNumber(), true
}

// RetrievePathing returns the pathing of the cell at position: its own Pathing component when
// present, otherwise the tileset pathing group containing its sprite tile.
func RetrievePathing(w *ecs.World, tilemap ecs.Entity, position component.Position) (string, bool) {
	tm := mustTilemap(w, tilemap)
	if tile, ok := tileAt(w, tm, position); ok {
		if p, ok := ecs.Get[component.Pathing](w, tile); ok {
			return p.PathingType, true
		}
	}
	if tm.Tileset() == nil {
		return "", false
	}
	n, ok := RetrieveSpriteTile(w, tilemap, position)
	if !ok {
		return "", false
	}
	return tm.Tileset().PathingOf(n)
}

// RetrieveEvent returns the mutable event at position.
func RetrieveEvent(w *ecs.World, tilemap ecs.Entity, position component.Position) (*component.TileEvent, bool) {
	return mustTilemap(w, tilemap).Event(position)
}

// AddEvent attaches an event at position, replacing any previous one.
func AddEvent(w *ecs.World, tilemap ecs.Entity, position component.Position, event component.TileEvent) {
	mustTilemap(w, tilemap).SetEvent(position, event)
}
