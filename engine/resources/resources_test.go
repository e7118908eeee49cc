package resources

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeFrameReportsDelta(t *testing.T) {
	start := time.Unix(100, 0)
	tm := NewTime(start)

	d := tm.Frame(start.Add(16 * time.Millisecond))
	assert.Equal(t, 16*time.Millisecond, d)
	assert.InDelta(t, 0.016, tm.Delta(), 1e-6)

	tm.Frame(start.Add(50 * time.Millisecond))
	assert.Equal(t, 34*time.Millisecond, tm.DeltaDuration())
	assert.Equal(t, 50*time.Millisecond, tm.Elapsed())
	assert.Equal(t, uint64(2), tm.FrameCount())
}

func TestManualTimerStaysEnded(t *testing.T) {
	timers := NewTimers()
	_, err := timers.Add("spawn", 100*time.Millisecond, TimerManual)
	require.NoError(t, err)

	_, err = timers.Add("spawn", time.Second, TimerManual)
	assert.Error(t, err)

	timers.AddDelta(60 * time.Millisecond)
	assert.False(t, timers.Ended("spawn"))
	timers.AddDelta(60 * time.Millisecond)
	assert.True(t, timers.Ended("spawn"))
	timers.AddDelta(60 * time.Millisecond)
	assert.True(t, timers.Ended("spawn"))

	timer, ok := timers.Get("spawn")
	require.True(t, ok)
	timer.Reset()
	assert.False(t, timers.Ended("spawn"))
	assert.Equal(t, 1, timer.Cycles())
}

func TestCyclicTimerRestarts(t *testing.T) {
	timers := NewTimers()
	timer, err := timers.Add("blink", 100*time.Millisecond, TimerCyclic)
	require.NoError(t, err)

	timers.AddDelta(120 * time.Millisecond)
	assert.True(t, timer.Ended())
	timers.AddDelta(10 * time.Millisecond)
	assert.False(t, timer.Ended())
	assert.InDelta(t, 0.3, timer.Progress(), 1e-5)

	timers.Delete("blink")
	assert.False(t, timers.Exists("blink"))
	assert.False(t, timers.Ended("blink"))
}

func TestInputsJustPressedClearsOnReset(t *testing.T) {
	in := NewInputs()
	in.ApplyKey(common.KeyA, Pressed)
	in.ApplyKey(common.KeyA, Pressed)

	assert.True(t, in.KeyPressed(common.KeyA))
	assert.True(t, in.KeyJustPressed(common.KeyA))
	assert.Len(t, in.KeyEvents(), 1)

	in.ResetInputs()
	assert.True(t, in.KeyPressed(common.KeyA))
	assert.False(t, in.KeyJustPressed(common.KeyA))

	in.ApplyKey(common.KeyA, Released)
	assert.False(t, in.KeyPressed(common.KeyA))
	assert.True(t, in.KeyJustReleased(common.KeyA))
}

func TestInputsShortcutNeedsFreshKey(t *testing.T) {
	in := NewInputs()
	in.ApplyKey(common.KeyLeftControl, Pressed)
	in.ResetInputs()
	assert.False(t, in.ShortcutPressed(common.KeyLeftControl, common.KeyS))

	in.ApplyKey(common.KeyS, Pressed)
	assert.True(t, in.ShortcutPressed(common.KeyLeftControl, common.KeyS))
	in.ResetInputs()
	assert.False(t, in.ShortcutPressed(common.KeyLeftControl, common.KeyS))
}

func TestInputsMouseClickUsesCursorPosition(t *testing.T) {
	in := NewInputs()
	in.ApplyCursor(12, 34)
	in.ApplyMouseButton(common.MouseButtonLeft, Pressed)
	in.ApplyScroll(0, 1)
	in.ApplyScroll(0, 2)

	clicked, x, y := in.MouseClicked(common.MouseButtonLeft)
	assert.True(t, clicked)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 34.0, y)
	_, sy := in.Scroll()
	assert.Equal(t, 3.0, sy)

	in.ResetInputs()
	clicked, _, _ = in.MouseClicked(common.MouseButtonLeft)
	assert.False(t, clicked)
	assert.True(t, in.MouseButtonPressed(common.MouseButtonLeft))
}

func TestGameStatePickingUpdates(t *testing.T) {
	gs := NewGameState()
	_, queued := gs.TakePickingUpdate()
	assert.False(t, queued)

	gs.SetColorPicking(true)
	gs.SetColorPicking(true)
	v, queued := gs.TakePickingUpdate()
	assert.True(t, queued)
	assert.True(t, v)
	_, queued = gs.TakePickingUpdate()
	assert.False(t, queued)

	w := ecs.NewWorld()
	e := w.Spawn()
	gs.SetPickedEntity(&e)
	picked, ok := gs.PickedEntity()
	assert.True(t, ok)
	assert.Equal(t, e, picked)

	gs.SetColorPicking(false)
	_, ok = gs.PickedEntity()
	assert.False(t, ok)
}

func TestCommandBufferMergesPerEntity(t *testing.T) {
	w := ecs.NewWorld()
	a := w.Spawn()
	b := w.Spawn()

	buf := NewCommandBuffer()
	buf.Transform(b).AppendX(1)
	buf.Transform(a).SetX(10).AppendX(2)
	buf.Transform(b).AppendTranslation(1, 3)

	cmds := buf.Drain()
	require.Len(t, cmds, 2)
	assert.Equal(t, b, cmds[0].Entity)
	assert.Equal(t, a, cmds[1].Entity)

	tr := component.FromXY(5, 5)
	cmds[1].Command.Apply(&tr)
	assert.Equal(t, component.Vector{X: 12, Y: 5}, tr.Translation())

	tr = component.FromXY(0, 0)
	cmds[0].Command.Apply(&tr)
	assert.Equal(t, component.Vector{X: 2, Y: 3}, tr.Translation())

	assert.Empty(t, buf.Drain())
}

func TestWindowFutureSettings(t *testing.T) {
	win := NewWindow(800, 600, 1)
	cursor, size := win.FutureSettings()
	assert.Nil(t, cursor)
	assert.Nil(t, size)

	win.SetCursor(common.CursorPointer)
	win.SetDimensions(1024, 768)
	cursor, size = win.FutureSettings()
	require.NotNil(t, cursor)
	require.NotNil(t, size)
	assert.Equal(t, common.CursorPointer, *cursor)
	assert.Equal(t, [2]int{1024, 768}, *size)

	win.ResetFutureSettings()
	cursor, size = win.FutureSettings()
	assert.Nil(t, cursor)
	assert.Nil(t, size)
}

func TestEventsCleanup(t *testing.T) {
	ev := NewEvents()
	ev.Publish("hit", 1)
	ev.Publish("hit", 2)
	assert.Equal(t, []any{1, 2}, ev.Messages("hit"))
	ev.Cleanup()
	assert.Empty(t, ev.Messages("hit"))
}

func TestAssetManagerCachesTextures(t *testing.T) {
	var loads atomic.Int32
	am := NewAssetManager()
	am.SetTextureLoader(func(path string) (common.TextureStagingData, error) {
		loads.Add(1)
		if path == "missing.png" {
			return common.TextureStagingData{}, errors.New("no such file")
		}
		return common.SolidTexture(common.NewColor(1, 2, 3)), nil
	})

	require.NoError(t, am.PreloadTextures(context.Background(), "a.png", "b.png"))
	_, err := am.LoadTexture("a.png")
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())

	_, err = am.LoadTexture("missing.png")
	assert.True(t, eris.Is(err, ErrAssetNotFound))
	assert.Error(t, am.PreloadTextures(context.Background(), "missing.png"))
}

func TestAssetManagerRegistries(t *testing.T) {
	am := NewAssetManager()
	ts := &component.Tileset{Name: "ground", TexturePath: "ground.png", Width: 4, Height: 4, TileSize: 16}
	am.RegisterTileset(ts)
	got, ok := am.Tileset("ground")
	require.True(t, ok)
	assert.Same(t, ts, got)

	ref := am.RegisterMaterial("red", component.NewColorMaterial(common.NewColor(255, 0, 0)))
	m, ok := am.Material(ref)
	require.True(t, ok)
	assert.Equal(t, component.MaterialColor, m.Kind())

	_, ok = am.Font("ground")
	assert.False(t, ok)
}

func TestBitmapAtlasGrid(t *testing.T) {
	entry := BuildBitmapAtlas(&Font{Name: "mono", TexturePath: "mono.png", Chars: "abcde", CharWidth: 8, CharHeight: 10, Columns: 2, Lines: 3})
	assert.Equal(t, float32(16), entry.TextureWidth)
	assert.Equal(t, float32(30), entry.TextureHeight)

	c, ok := entry.Character('d')
	require.True(t, ok)
	assert.Equal(t, CharacterPosition{StartX: 8, StartY: 10, EndX: 16, EndY: 20}, c)

	atlas := NewFontAtlas()
	atlas.Add("mono", entry)
	_, ok = atlas.Get("mono")
	assert.True(t, ok)
}

func TestAudioQueuesEvents(t *testing.T) {
	ch := make(chan AudioEvent, 1)
	a := NewAudio(ch)
	id := a.PlaySound("boom.wav", SoundConfig{Volume: 1})
	a.StopSound(id)

	ev := <-ch
	assert.Equal(t, PlaySound, ev.Kind)
	assert.Equal(t, id, ev.ID)

	NewAudio(nil).PlaySound("boom.wav", SoundConfig{})
}
