package system

import (
	"strconv"
	"testing"
	"time"

	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestData(start time.Time) (*gamedata.GameData, *resources.Time) {
	data := gamedata.New(800, 600, 1)
	tm := resources.NewTime(start)
	ecs.InsertResource(data.Resources, tm)
	return data, tm
}

func TestMoveAnimationEndToEnd(t *testing.T) {
	start := time.Unix(1000, 0)
	data, tm := newTestData(start)

	move := component.NewAnimation(32*time.Millisecond,
		component.NewTransformModifier(2, component.Vector{X: 10}, 0, 0))
	e := data.World.Spawn(component.FromXY(0, 0), component.SingleAnimation("move", move))

	anims := ecs.MustGet[component.Animations](data.World, e)
	require.True(t, anims.RunAnimation("move"))
	assert.False(t, anims.RunAnimation("move"))

	tm.Frame(start.Add(16 * time.Millisecond))
	AnimationExecutorSystem(data)
	tr := ecs.MustGet[component.Transform](data.World, e)
	assert.InDelta(t, 5, tr.Translation().X, 1e-5)
	assert.Equal(t, component.AnimationRunning, move.Status())

	tm.Frame(start.Add(32 * time.Millisecond))
	AnimationExecutorSystem(data)
	assert.InDelta(t, 10, tr.Translation().X, 1e-5)
	assert.Equal(t, component.AnimationStopped, move.Status())
	assert.Equal(t, 0, move.Modifiers()[0].CurrentKeyframe())
}

func TestDelayedAnimationUsesSimulationClock(t *testing.T) {
	start := time.Unix(1000, 0)
	data, tm := newTestData(start)

	move := component.NewAnimation(32*time.Millisecond,
		component.NewTransformModifier(2, component.Vector{X: 10}, 0, 0))
	e := data.World.Spawn(component.FromXY(0, 0), component.SingleAnimation("move", move))
	anims := ecs.MustGet[component.Animations](data.World, e)
	require.True(t, anims.RunAnimationDelayed("move", 50*time.Millisecond))

	tm.Frame(start.Add(16 * time.Millisecond))
	AnimationExecutorSystem(data)
	tm.Frame(start.Add(48 * time.Millisecond))
	AnimationExecutorSystem(data)
	assert.Equal(t, component.AnimationWaitingStartTime, move.Status())
	tr := ecs.MustGet[component.Transform](data.World, e)
	assert.Zero(t, tr.Translation().X)

	tm.Frame(start.Add(80 * time.Millisecond))
	AnimationExecutorSystem(data)
	assert.NotEqual(t, component.AnimationWaitingStartTime, move.Status())
	assert.Greater(t, tr.Translation().X, float32(0))
}

func TestAnimationRequiresTargetComponent(t *testing.T) {
	start := time.Unix(1000, 0)
	data, tm := newTestData(start)
	data.World.Spawn(component.SingleAnimation("move",
		component.RunningAnimation(0, component.NewTransformModifier(1, component.Vector{X: 1}, 0, 0))))

	tm.Frame(start.Add(time.Millisecond))
	assert.Panics(t, func() { AnimationExecutorSystem(data) })
}

func TestSpriteAnimationShowsEndTile(t *testing.T) {
	start := time.Unix(1000, 0)
	data, tm := newTestData(start)

	anim := component.RunningAnimation(20*time.Millisecond, component.NewSpriteModifier([]int{1, 2, 3}, 9))
	e := data.World.Spawn(component.NewSprite(0), component.SingleAnimation("walk", anim))
	sprite := ecs.MustGet[component.Sprite](data.World, e)

	tm.Frame(start.Add(10 * time.Millisecond))
	AnimationExecutorSystem(data)
	assert.Equal(t, 2, sprite.TileNumber())
	assert.True(t, sprite.IsDirty())

	tm.Frame(start.Add(20 * time.Millisecond))
	AnimationExecutorSystem(data)
	assert.Equal(t, 9, sprite.TileNumber())
	assert.Equal(t, component.AnimationStopped, anim.Status())
}

func TestBlinkAnimationTogglesHide(t *testing.T) {
	start := time.Unix(1000, 0)
	data, tm := newTestData(start)
	anim := component.RunningAnimation(40*time.Millisecond, component.NewBlinkModifier(2))
	e := data.World.Spawn(component.SingleAnimation("blink", anim))

	tm.Frame(start.Add(10 * time.Millisecond))
	AnimationExecutorSystem(data)
	assert.True(t, ecs.Has[component.Hide](data.World, e))

	tm.Frame(start.Add(20 * time.Millisecond))
	AnimationExecutorSystem(data)
	assert.False(t, ecs.Has[component.Hide](data.World, e))
}

func TestForceStoppedAnimationRewinds(t *testing.T) {
	start := time.Unix(1000, 0)
	data, tm := newTestData(start)
	anim := component.LoopingAnimation(40*time.Millisecond,
		component.NewTransformModifier(4, component.Vector{X: 4}, 0, 0))
	e := data.World.Spawn(component.FromXY(0, 0), component.SingleAnimation("slide", anim))

	tm.Frame(start.Add(10 * time.Millisecond))
	AnimationExecutorSystem(data)
	anims := ecs.MustGet[component.Animations](data.World, e)
	require.True(t, anims.StopAnimation("slide", true))

	tm.Frame(start.Add(20 * time.Millisecond))
	AnimationExecutorSystem(data)
	assert.Equal(t, component.AnimationStopped, anim.Status())
	assert.Equal(t, 0, anim.Modifiers()[0].CurrentKeyframe())
	assert.InDelta(t, 1, ecs.MustGet[component.Transform](data.World, e).Translation().X, 1e-5)
}

func TestCommandBufferSystemAppliesAndDrops(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	e := data.World.Spawn(component.FromXY(1, 1))
	gone := data.World.Spawn(component.FromXY(0, 0))

	data.Commands().Transform(e).AppendX(2).SetZ(4)
	data.Commands().Transform(gone).AppendX(2)
	require.NoError(t, data.World.Despawn(gone))

	CommandBufferSystem(data)
	tr := ecs.MustGet[component.Transform](data.World, e)
	assert.Equal(t, component.Vector{X: 3, Y: 1}, tr.Translation())
	assert.Equal(t, 4, tr.Z())
	assert.Empty(t, data.Commands().Drain())
}

func TestHierarchySystemResolvesAndTagsDirty(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	w := data.World
	parent := w.Spawn(component.FromXYZ(10, 10, 1))
	child := w.Spawn(component.FromXYZ(1, 2, 1), ecs.Parent{Entity: parent})

	HierarchySystem(data)
	ct := ecs.MustGet[component.Transform](w, child)
	assert.Equal(t, component.Vector{X: 11, Y: 12}, ct.GlobalTranslation())
	assert.Equal(t, 2, ct.GlobalZ())
	assert.True(t, ecs.Has[component.Dirty](w, parent))
	assert.True(t, ecs.Has[component.Dirty](w, child))

	ecs.Remove[component.Dirty](w, parent)
	ecs.Remove[component.Dirty](w, child)
	HierarchySystem(data)
	assert.False(t, ecs.Has[component.Dirty](w, child))

	ecs.MustGet[component.Transform](w, parent).AppendX(5)
	HierarchySystem(data)
	assert.Equal(t, component.Vector{X: 16, Y: 12}, ct.GlobalTranslation())
	assert.True(t, ecs.Has[component.Dirty](w, child))
}

func TestHierarchySystemFollowsParentChanges(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	w := data.World
	parent := w.Spawn(component.FromXY(10, 0))
	child := w.Spawn(component.FromXY(5, 0))

	HierarchySystem(data)
	ct := ecs.MustGet[component.Transform](w, child)
	assert.Equal(t, component.Vector{X: 5}, ct.GlobalTranslation())

	ecs.Remove[component.Dirty](w, child)
	require.NoError(t, ecs.Add(w, child, ecs.Parent{Entity: parent}))
	HierarchySystem(data)
	assert.Equal(t, component.Vector{X: 15}, ct.GlobalTranslation())
	assert.True(t, ecs.Has[component.Dirty](w, child))

	HierarchySystem(data)
	assert.Equal(t, component.Vector{X: 15}, ct.GlobalTranslation())

	ecs.Remove[component.Dirty](w, child)
	assert.True(t, ecs.Remove[ecs.Parent](w, child))
	HierarchySystem(data)
	assert.Equal(t, component.Vector{X: 5}, ct.GlobalTranslation())
	assert.True(t, ecs.Has[component.Dirty](w, child))

	require.NoError(t, ecs.Add(w, child, ecs.Parent{Entity: parent}))
	HierarchySystem(data)
	require.NoError(t, w.Despawn(parent))
	HierarchySystem(data)
	assert.Equal(t, component.Vector{X: 5}, ct.GlobalTranslation())
}

func TestUiSystems(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	data.Assets().RegisterFont(&resources.Font{Name: "mono", TexturePath: "mono.png", Chars: "0123456789", CharWidth: 8, CharHeight: 8, Columns: 10, Lines: 1})

	score := 0
	text := component.NewUiText("", "mono").WithSyncFn(func(_ *ecs.World) string { return strconv.Itoa(score) })
	e := data.World.Spawn(text, component.FromXY(0, 0))
	img := data.World.Spawn(component.NewUiImage(10, 10, "panel.png"), component.FromXY(0, 0))

	score = 42
	UiTextSyncSystem(data)
	UiTextMaterialResolver(data)
	MissingUiComponentSystem(data)

	assert.Equal(t, "42", ecs.MustGet[component.UiText](data.World, e).Text())
	mat, ok := ecs.Get[component.Material](data.World, e)
	require.True(t, ok)
	assert.Equal(t, "mono.png", mat.TexturePath())
	_, ok = data.FontAtlas().Get("mono")
	assert.True(t, ok)
	assert.True(t, ecs.Has[component.UiComponent](data.World, e))
	assert.True(t, ecs.Has[component.UiComponent](data.World, img))
}

func TestUiTextWithUnknownFontPanics(t *testing.T) {
	data := gamedata.New(800, 600, 1)
	data.World.Spawn(component.NewUiText("hi", "missing"))
	assert.Panics(t, func() { UiTextMaterialResolver(data) })
}

func TestTilemapOperations(t *testing.T) {
	w := ecs.NewWorld()
	ts := &component.Tileset{Name: "ground", TexturePath: "ground.png", Width: 4, Height: 4, TileSize: 16,
		Pathing: map[string][]int{"water": {3}}}

	tm := CreateTilemap(w, component.TilemapInfo{
		Dimensions: component.Dimensions{Width: 2, Height: 1, Depth: 1},
		Transform:  component.FromXY(0, 0),
		Tileset:    ts,
		Type:       component.StandardTilemap(),
	}, func(p component.Position) component.TileInfos {
		n := p.X + 2
		infos := component.NewTileInfos(&n, nil)
		if p.X == 0 {
			ev := component.NewTileEvent("door", map[string]string{"to": "cave"})
			infos = infos.WithEvent(&ev).WithPathing("walkable")
		}
		return infos
	})

	tilemap := ecs.MustGet[component.Tilemap](w, tm)
	assert.Equal(t, 2, tilemap.TileCount())
	children := ecs.MustGet[ecs.Children](w, tm)
	assert.Equal(t, 2, children.Len())

	n, ok := RetrieveSpriteTile(w, tm, component.Position{X: 1})
	require.True(t, ok)
	assert.Equal(t, 3, n)

	p, ok := RetrievePathing(w, tm, component.Position{X: 0})
	require.True(t, ok)
	assert.Equal(t, "walkable", p)
	p, ok = RetrievePathing(w, tm, component.Position{X: 1})
	require.True(t, ok)
	assert.Equal(t, "water", p)

	assert.True(t, ModifySpriteTile(w, tm, component.Position{X: 1}, 5))
	n, _ = RetrieveSpriteTile(w, tm, component.Position{X: 1})
	assert.Equal(t, 5, n)
	_, ok = RetrievePathing(w, tm, component.Position{X: 1})
	assert.False(t, ok)

	ev, ok := RetrieveEvent(w, tm, component.Position{X: 0})
	require.True(t, ok)
	assert.Equal(t, "door", ev.EventType())
	ev.Properties()["locked"] = "true"
	ev, _ = RetrieveEvent(w, tm, component.Position{X: 0})
	assert.Equal(t, "true", ev.Properties()["locked"])

	AddEvent(w, tm, component.Position{X: 1}, component.NewTileEvent("chest", nil))
	_, ok = RetrieveEvent(w, tm, component.Position{X: 1})
	assert.True(t, ok)

	assert.Panics(t, func() { RetrieveEvent(w, w.Spawn(), component.Position{}) })
}

func newTwoTileMap(w *ecs.World) ecs.Entity {
	return CreateTilemap(w, component.TilemapInfo{
		Dimensions: component.Dimensions{Width: 2, Height: 1, Depth: 1},
		Transform:  component.FromXY(0, 0),
		Tileset:    &component.Tileset{Name: "ground", TexturePath: "ground.png", Width: 4, Height: 4, TileSize: 16},
		Type:       component.StandardTilemap(),
	}, func(p component.Position) component.TileInfos {
		n := 1
		return component.NewTileInfos(&n, nil)
	})
}

func TestDespawnedTileIsForgotten(t *testing.T) {
	data, _ := newTestData(time.Unix(1000, 0))
	w := data.World
	tm := newTwoTileMap(w)
	tilemap := ecs.MustGet[component.Tilemap](w, tm)
	tile, ok := tilemap.TileEntity(component.Position{X: 1})
	require.True(t, ok)

	require.NoError(t, w.Despawn(tile))
	_, ok = RetrieveSpriteTile(w, tm, component.Position{X: 1})
	assert.False(t, ok)
	assert.False(t, ModifySpriteTile(w, tm, component.Position{X: 1}, 2))
	_, ok = tilemap.TileEntity(component.Position{X: 1})
	assert.False(t, ok)
	assert.Equal(t, 1, tilemap.TileCount())

	other, _ := tilemap.TileEntity(component.Position{X: 0})
	require.NoError(t, w.Despawn(other))
	TilemapIntegritySystem(data)
	assert.Equal(t, 0, tilemap.TileCount())
}

func TestTilemapDespawnRemovesOrphanTiles(t *testing.T) {
	data, _ := newTestData(time.Unix(1000, 0))
	w := data.World
	tm := newTwoTileMap(w)
	tilemap := ecs.MustGet[component.Tilemap](w, tm)
	tile, _ := tilemap.TileEntity(component.Position{X: 0})
	require.Equal(t, 3, w.EntityCount())

	require.NoError(t, w.Despawn(tm))
	TilemapIntegritySystem(data)
	assert.False(t, w.Contains(tile))
	assert.Equal(t, 0, w.EntityCount())
}
