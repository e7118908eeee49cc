package engine

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/config"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/limiter"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
	"github.com/Carmen-Shannon/scion-go/engine/scene"
	"github.com/Carmen-Shannon/scion-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRenderer struct {
	mu        sync.Mutex
	events    []rendering.Event
	updates   []rendering.Update
	frames    [][]rendering.DrawInfo
	forgotten []ecs.Entity
	picks     int
	pick      common.Color
	released  bool
}

func (f *fakeRenderer) HandleEvent(ev rendering.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeRenderer) Update(updates []rendering.Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updates...)
	return nil
}

func (f *fakeRenderer) Render(draws []rendering.DrawInfo, _ *common.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, draws)
	return nil
}

func (f *fakeRenderer) PickColor(_ []rendering.DrawInfo, _, _ uint32) (common.Color, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.picks++
	return f.pick, nil
}

func (f *fakeRenderer) Forget(entities []ecs.Entity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forgotten = append(f.forgotten, entities...)
}

func (f *fakeRenderer) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = true
}

type fakeWindow struct {
	width, height int
	scale         float64
	pending       []window.Event
	cursor        *common.CursorIcon
	size          *[2]int
	closed        bool
}

func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) DrainEvents() []window.Event {
	out := w.pending
	w.pending = nil
	return out
}
func (w *fakeWindow) RequestCursor(icon common.CursorIcon) { w.cursor = &icon }
func (w *fakeWindow) RequestSize(width, height int)        { w.size = &[2]int{width, height} }
func (w *fakeWindow) RequestClose()                        {}
func (w *fakeWindow) IsRunning() bool                      { return !w.closed }
func (w *fakeWindow) Close() error                         { w.closed = true; return nil }
func (w *fakeWindow) ProcessMessages()                     {}
func (w *fakeWindow) Width() int                           { return w.width }
func (w *fakeWindow) Height() int                          { return w.height }
func (w *fakeWindow) ScaleFactor() float64                 { return w.scale }

type recordingScene struct {
	scene.BaseScene
	calls *[]string
}

func (s recordingScene) OnStart(*gamedata.GameData)       { *s.calls = append(*s.calls, "start") }
func (s recordingScene) OnUpdate(*gamedata.GameData)      { *s.calls = append(*s.calls, "update") }
func (s recordingScene) OnLateUpdate(*gamedata.GameData)  { *s.calls = append(*s.calls, "late") }
func (s recordingScene) OnFixedUpdate(*gamedata.GameData) { *s.calls = append(*s.calls, "fixed") }
func (s recordingScene) OnEndFrame(*gamedata.GameData)    { *s.calls = append(*s.calls, "end") }

type testPackage struct {
	prepared bool
	ran      *int
}

type packageResource struct{ name string }

func (p *testPackage) Prepare(data *gamedata.GameData) {
	p.prepared = true
	ecs.InsertResource(data.Resources, &packageResource{name: "pkg"})
}

func (p *testPackage) Load() []EngineBuilderOption {
	return []EngineBuilderOption{WithSystem(func(*gamedata.GameData) { *p.ran++ })}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Window = nil
	cfg.FrameLimiter = config.FrameLimiterConfig{TickRate: 100, FixedUpdateRate: 50, RenderRate: 100}
	cfg.Audio.Enabled = false
	return cfg
}

const tick = 10 * time.Millisecond

func newTestEngine(t *testing.T, cfg config.Config, options ...EngineBuilderOption) (*engine, *limiter.MockClock) {
	t.Helper()
	clock := limiter.NewMockClock(time.Unix(1000, 0))
	base := []EngineBuilderOption{WithConfig(cfg), WithClock(clock), WithLogger(zap.NewNop()), WithAudio(nil)}
	e, ok := NewEngine(append(base, options...)...).(*engine)
	require.True(t, ok)
	return e, clock
}

// deliver runs the rendering thread over every queued message.
func deliver(t *testing.T, e *engine) {
	t.Helper()
	for {
		msg, ok := e.mailbox.TryPop()
		if !ok {
			return
		}
		require.NoError(t, e.thread.Process(msg))
	}
}

func spawnPickableSquare(data *gamedata.GameData) ecs.Entity {
	return data.World.Spawn(
		component.NewSquare(10, component.PivotTopLeft()),
		component.NewColorMaterial(common.NewColor(0, 255, 0)),
		component.FromXY(0, 0),
		component.Pickable{},
	)
}

func TestStepRunsLifecycleInOrder(t *testing.T) {
	var calls []string
	e, clock := newTestEngine(t, testConfig(),
		WithScene(recordingScene{calls: &calls}),
		WithSystem(func(*gamedata.GameData) { calls = append(calls, "system") }),
	)

	e.machine.Apply(scene.ActionStart, e.data)
	clock.Advance(tick)
	e.step()
	assert.Equal(t, []string{"start", "update", "system", "late", "end"}, calls)

	calls = nil
	clock.Advance(tick)
	e.step()
	assert.Equal(t, []string{"update", "system", "late", "fixed", "end"}, calls)

	calls = nil
	e.step()
	assert.Empty(t, calls)
	assert.Equal(t, uint64(2), e.data.Time().FrameCount())
}

func TestBuiltinSystemsRunFirst(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), WithSystems(
		func(*gamedata.GameData) {},
		func(*gamedata.GameData) {},
	))

	names := e.scheduler.Names()
	require.Len(t, names, len(builtinSystems())+2)
	assert.True(t, strings.HasSuffix(names[0], "CommandBufferSystem"), names[0])
	assert.True(t, strings.HasSuffix(names[len(builtinSystems())-1], "MissingUiComponentSystem"))
}

func TestRenderFrameAndDespawnReachRenderer(t *testing.T) {
	fr := &fakeRenderer{}
	e, clock := newTestEngine(t, testConfig(), WithRenderer(fr))
	entity := spawnPickableSquare(e.data)

	clock.Advance(tick)
	e.step()
	deliver(t, e)

	require.Len(t, fr.frames, 1)
	require.Len(t, fr.frames[0], 1)
	assert.Equal(t, entity, fr.frames[0][0].Entity)

	var vertex, picking bool
	for _, u := range fr.updates {
		switch v := u.(type) {
		case rendering.VertexBufferUpdate:
			vertex = vertex || v.Entity == entity
		case rendering.ColorPickingUniformUpdate:
			picking = picking || v.Entity == entity
		}
	}
	assert.True(t, vertex)
	assert.True(t, picking)

	require.NoError(t, e.data.World.Despawn(entity))
	clock.Advance(tick)
	e.step()
	deliver(t, e)

	assert.Equal(t, []ecs.Entity{entity}, fr.forgotten)
	assert.False(t, e.prerender.Tracked(entity))
	_, ok := e.prerender.Picking().Color(entity)
	assert.False(t, ok)
}

func TestWindowEventsFeedInputsAndRenderer(t *testing.T) {
	fw := &fakeWindow{width: 1600, height: 1200, scale: 2}
	fr := &fakeRenderer{}
	e, clock := newTestEngine(t, testConfig(), WithWindow(fw), WithRenderer(fr))

	assert.Equal(t, 800, e.data.Window().Width())
	assert.Equal(t, 2.0, e.data.Window().DPI())

	fw.pending = []window.Event{
		{Kind: window.EventResized, Width: 2000, Height: 1000, ScaleFactor: 2},
		{Kind: window.EventCursorMoved, X: 100, Y: 50},
		{Kind: window.EventKey, Key: common.KeySpace, Pressed: true},
		{Kind: window.EventMouseButton, Button: common.MouseButtonLeft, Pressed: true},
	}
	var justPressed, clicked bool
	e.scheduler.Add(func(data *gamedata.GameData) {
		justPressed = data.Inputs().KeyJustPressed(common.KeySpace)
		clicked, _, _ = data.Inputs().MouseClicked(common.MouseButtonLeft)
		data.Window().SetCursor(common.CursorPointer)
		data.Window().SetDimensions(640, 480)
	})

	clock.Advance(tick)
	e.step()
	deliver(t, e)

	assert.True(t, justPressed)
	assert.True(t, clicked)
	assert.True(t, e.data.Inputs().KeyPressed(common.KeySpace))
	assert.False(t, e.data.Inputs().KeyJustPressed(common.KeySpace))
	x, y := e.data.Inputs().MousePosition()
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 25.0, y)
	assert.Equal(t, 1000, e.data.Window().Width())
	assert.Equal(t, 500, e.data.Window().Height())

	require.NotNil(t, fw.cursor)
	assert.Equal(t, common.CursorPointer, *fw.cursor)
	assert.Equal(t, &[2]int{640, 480}, fw.size)
	c, s := e.data.Window().FutureSettings()
	assert.Nil(t, c)
	assert.Nil(t, s)

	require.Len(t, fr.events, 2)
	assert.Equal(t, rendering.ResizeEvent(2000, 1000, 2), fr.events[0])
	assert.Equal(t, rendering.EventCursorMoved, fr.events[1].Kind)
	assert.Equal(t, &[2]uint32{100, 50}, fr.events[1].Cursor)

	fw.pending = []window.Event{{Kind: window.EventCloseRequested}}
	clock.Advance(tick)
	e.step()
	assert.True(t, e.quitting())
}

func TestColorPickingRoundTrip(t *testing.T) {
	cfg := testConfig()
	cfg.Render.ColorPicking = true
	fw := &fakeWindow{width: 800, height: 600, scale: 1}
	fr := &fakeRenderer{}
	e, clock := newTestEngine(t, cfg, WithWindow(fw), WithRenderer(fr))
	entity := spawnPickableSquare(e.data)

	fw.pending = []window.Event{{Kind: window.EventCursorMoved, X: 5, Y: 5}}
	clock.Advance(tick)
	e.step()
	deliver(t, e)
	assert.Zero(t, fr.picks)

	color, ok := e.prerender.Picking().Color(entity)
	require.True(t, ok)
	fr.pick = color

	clock.Advance(tick)
	e.step()
	deliver(t, e)
	assert.Equal(t, 1, fr.picks)

	clock.Advance(tick)
	e.step()
	picked, ok := e.data.GameState().PickedEntity()
	require.True(t, ok)
	assert.Equal(t, entity, picked)

	fr.pick = common.Color{}
	deliver(t, e)
	clock.Advance(tick)
	e.step()
	_, ok = e.data.GameState().PickedEntity()
	assert.False(t, ok)
}

func TestPackagesLoadAndPrepare(t *testing.T) {
	ran := 0
	pkg := &testPackage{ran: &ran}
	e, clock := newTestEngine(t, testConfig(), WithPackage(pkg))

	assert.True(t, pkg.prepared)
	res, ok := ecs.GetResource[packageResource](e.data.Resources)
	require.True(t, ok)
	assert.Equal(t, "pkg", res.name)

	clock.Advance(tick)
	e.step()
	assert.Equal(t, 1, ran)
}

func TestRunWindowlessUntilQuit(t *testing.T) {
	fr := &fakeRenderer{}
	ticks := 0
	var eng Engine
	e, _ := newTestEngine(t, testConfig(), WithRenderer(fr), WithSystem(func(*gamedata.GameData) {
		ticks++
		if ticks == 5 {
			eng.Quit()
		}
	}))
	eng = e

	eng.Run()
	eng.Quit()

	assert.Equal(t, 5, ticks)
	assert.True(t, fr.released)
}

func TestRunRepanicsOnInvariantViolation(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), WithSystem(func(*gamedata.GameData) {
		panic("required resource not found")
	}))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Contains(t, fmt.Sprint(r), "required resource not found")
	}()
	e.Run()
}

func TestInvalidConfigPanics(t *testing.T) {
	cfg := testConfig()
	cfg.FrameLimiter.TickRate = 0
	assert.Panics(t, func() {
		NewEngine(WithConfig(cfg), WithLogger(zap.NewNop()))
	})
}
