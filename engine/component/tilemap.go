package component

import (
	"fmt"

	"github.com/Carmen-Shannon/scion-go/engine/ecs"
)

// OffsetMultiplier weighs the x, y and z grid coordinates of a tile when computing one axis
// of its isometric screen offset.
type OffsetMultiplier struct {
	X, Y, Z float32
}

// TilemapType is the projection of a tilemap.
type TilemapType struct {
	isometric bool
	offsetX   OffsetMultiplier
	offsetY   OffsetMultiplier
	offsetZ   OffsetMultiplier
}

// StandardTilemap lays tiles on a flat grid, layers stacked by depth only.
func StandardTilemap() TilemapType {
	return TilemapType{}
}

// IsometricTilemap shifts tiles along each screen axis by the weighted grid coordinates.
func IsometricTilemap(offsetX, offsetY, offsetZ OffsetMultiplier) TilemapType {
	return TilemapType{isometric: true, offsetX: offsetX, offsetY: offsetY, offsetZ: offsetZ}
}

// IsIsometric reports whether the projection is isometric.
func (t TilemapType) IsIsometric() bool { return t.isometric }

// OffsetX returns the multipliers of the horizontal offset.
func (t TilemapType) OffsetX() OffsetMultiplier { return t.offsetX }

// OffsetY returns the multipliers of the vertical offset.
func (t TilemapType) OffsetY() OffsetMultiplier { return t.offsetY }

// OffsetZ returns the multipliers of the depth offset.
func (t TilemapType) OffsetZ() OffsetMultiplier { return t.offsetZ }

// TileEvent is a typed event attached to a tilemap cell.
type TileEvent struct {
	eventType  string
	properties map[string]string
}

// NewTileEvent builds an event. It panics on an empty event type.
func NewTileEvent(eventType string, properties map[string]string) TileEvent {
	if eventType == "" {
		panic("a tile event must have a type")
	}
	if properties == nil {
		properties = make(map[string]string)
	}
	return TileEvent{eventType: eventType, properties: properties}
}

// EventType returns the event type.
func (e *TileEvent) EventType() string { return e.eventType }

// Properties returns the mutable event properties.
func (e *TileEvent) Properties() map[string]string { return e.properties }

// Pathing is the pathing type of a tile, such as "walkable" or "water".
type Pathing struct {
	PathingType string
}

// Tile is a cell entity of a tilemap.
type Tile struct {
	Position Position
	Tilemap  ecs.Entity
}

// TileInfos describes one cell when a tilemap is created.
type TileInfos struct {
	TileNumber *int
	Animation  *Animation
	Event      *TileEvent
	Pathing    *string
}

// NewTileInfos builds the description of a cell; both arguments are optional.
func NewTileInfos(tileNumber *int, animation *Animation) TileInfos {
	return TileInfos{TileNumber: tileNumber, Animation: animation}
}

// WithEvent attaches an event to the cell.
func (t TileInfos) WithEvent(event *TileEvent) TileInfos {
	t.Event = event
	return t
}

// WithPathing forces the pathing of the cell instead of reading it from the tileset.
func (t TileInfos) WithPathing(pathing string) TileInfos {
	t.Pathing = &pathing
	return t
}

// TilemapInfo is everything needed to create a tilemap.
type TilemapInfo struct {
	Dimensions Dimensions
	Transform  Transform
	Tileset    *Tileset
	Type       TilemapType
}

// Tilemap indexes the tile entities and events of a multi-layer tile grid.
type Tilemap struct {
	tileEntities map[Position]ecs.Entity
	events       map[Position]*TileEvent
	tileset      *Tileset
	tilemapType  TilemapType
	width        int
	height       int
	depth        int
}

// NewTilemap builds an empty tilemap index.
func NewTilemap(tileset *Tileset, tilemapType TilemapType, dimensions Dimensions) Tilemap {
	return Tilemap{
		tileEntities: make(map[Position]ecs.Entity),
		events:       make(map[Position]*TileEvent),
		tileset:      tileset,
		tilemapType:  tilemapType,
		width:        dimensions.Width,
		height:       dimensions.Height,
		depth:        dimensions.Depth,
	}
}

// Width returns the number of columns.
func (t *Tilemap) Width() int { return t.width }

// Height returns the number of rows.
func (t *Tilemap) Height() int { return t.height }

// Depth returns the number of layers.
func (t *Tilemap) Depth() int { return t.depth }

// Type returns the projection.
func (t *Tilemap) Type() TilemapType { return t.tilemapType }

// Tileset returns the tileset of the tilemap.
func (t *Tilemap) Tileset() *Tileset { return t.tileset }

// IsIsometric reports whether the tilemap uses the isometric projection.
func (t *Tilemap) IsIsometric() bool { return t.tilemapType.isometric }

// TileEntity returns the tile entity at position.
func (t *Tilemap) TileEntity(position Position) (ecs.Entity, bool) {
	e, ok := t.tileEntities[position]
	return e, ok
}

// TileCount returns the number of tracked tiles.
func (t *Tilemap) TileCount() int { return len(t.tileEntities) }

// SetTileEntity tracks e at position. Positions outside the dimensions panic.
func (t *Tilemap) SetTileEntity(position Position, e ecs.Entity) {
	if !t.InBounds(position) {
		panic(fmt.Sprintf("tile position %v is outside tilemap bounds %dx%dx%d", position, t.width, t.height, t.depth))
	}
	t.tileEntities[position] = e
}

// RemoveTileEntity stops tracking the tile at position.
func (t *Tilemap) RemoveTileEntity(position Position) {
	delete(t.tileEntities, position)
}

// PruneTiles stops tracking every tile for which alive returns false.
//
// Returns:
//   - int: the number of tiles dropped
func (t *Tilemap) PruneTiles(alive func(ecs.Entity) bool) int {
	n := 0
	for position, e := range t.tileEntities {
		if !alive(e) {
			delete(t.tileEntities, position)
			n++
		}
	}
	return n
}

// InBounds reports whether position lies inside the tilemap.
func (t *Tilemap) InBounds(position Position) bool {
	return position.X >= 0 && position.X < t.width &&
		position.Y >= 0 && position.Y < t.height &&
		position.Z >= 0 && position.Z < t.depth
}

// Event returns the event at position.
func (t *Tilemap) Event(position Position) (*TileEvent, bool) {
	e, ok := t.events[position]
	return e, ok
}

// SetEvent attaches an event at position.
func (t *Tilemap) SetEvent(position Position, event TileEvent) {
	t.events[position] = &event
}

// RemoveEvent removes the event at position.
func (t *Tilemap) RemoveEvent(position Position) {
	delete(t.events, position)
}
