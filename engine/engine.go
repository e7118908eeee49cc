package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/audio"
	"github.com/Carmen-Shannon/scion-go/engine/config"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/limiter"
	"github.com/Carmen-Shannon/scion-go/engine/logger"
	"github.com/Carmen-Shannon/scion-go/engine/prerender"
	"github.com/Carmen-Shannon/scion-go/engine/profiler"
	"github.com/Carmen-Shannon/scion-go/engine/renderer"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
	"github.com/Carmen-Shannon/scion-go/engine/scene"
	"github.com/Carmen-Shannon/scion-go/engine/scheduler"
	"github.com/Carmen-Shannon/scion-go/engine/system"
	"github.com/Carmen-Shannon/scion-go/engine/window"
	"go.uber.org/zap"
)

// Package bundles resources and systems contributed by an external module.
type Package interface {
	// Prepare injects the package's resources once the simulation state exists.
	Prepare(data *gamedata.GameData)

	// Load returns the options the package applies to the engine, typically WithSystem.
	Load() []EngineBuilderOption
}

// engine implements the Engine interface.
// The simulation loop owns the world and its resources; the rendering thread owns the GPU.
// They only communicate through the mailbox and the picking channel.
type engine struct {
	cfg    config.Config
	clock  limiter.Clock
	logger *zap.Logger

	data      *gamedata.GameData
	limiter   *limiter.FrameLimiter
	scheduler *scheduler.Scheduler
	machine   *scene.Machine
	prerender *prerender.PreRenderer
	profiler  *profiler.Profiler

	window   window.Window
	renderer rendering.Renderer
	mailbox  *rendering.Mailbox
	thread   *rendering.Thread
	audio    *audio.Controller

	initialScene scene.Scene
	systems      []scheduler.System
	packages     []Package

	loggerSet bool
	noAudio   bool

	quit     chan struct{}
	quitOnce sync.Once
	wg       sync.WaitGroup
}

// Engine is the main entry point for the engine.
// It orchestrates the simulation loop, the rendering thread and window management.
type Engine interface {
	// Data returns the simulation state. It must only be touched from systems and scenes once
	// Run has been called.
	//
	// Returns:
	//   - *gamedata.GameData: the world and its resources
	Data() *gamedata.GameData

	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, nil when running windowless
	Window() window.Window

	// Config returns the configuration the engine was built with.
	Config() config.Config

	// Run starts the main engine loop and blocks until the window closes or Quit is called.
	// In windowed mode it must be called from the goroutine that created the engine.
	Run()

	// Quit signals the loop to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Package options are applied after the direct options, the window, renderer and audio
// controller are created from the configuration unless injected, and the built-in systems are
// registered ahead of the user systems. Setup failures panic.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		cfg:    config.Default(),
		clock:  limiter.RealClock{},
		logger: zap.L().Named("engine"),
		quit:   make(chan struct{}),
	}

	for _, opt := range options {
		opt(e)
	}
	for i := 0; i < len(e.packages); i++ {
		for _, opt := range e.packages[i].Load() {
			opt(e)
		}
	}

	if err := e.cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid engine configuration: %v", err))
	}
	if !e.loggerSet {
		l, err := logger.Install(e.cfg.Logger)
		if err != nil {
			panic(fmt.Sprintf("failed to build logger: %v", err))
		}
		e.logger = l.Named("engine")
	}

	if e.window == nil && e.cfg.Window != nil {
		e.window = window.NewWindow(
			window.WithTitle(common.Coalesce(e.cfg.Window.Title, e.cfg.AppName)),
			window.WithWidth(e.cfg.Window.Width),
			window.WithHeight(e.cfg.Window.Height),
			window.WithResizable(e.cfg.Window.Resizable),
		)
	}

	e.data = e.newGameData()
	e.setupRendering()
	e.setupAudio()

	e.scheduler = scheduler.New()
	e.scheduler.Add(builtinSystems()...)
	e.scheduler.Add(e.systems...)

	e.machine = scene.NewMachine(scene.WithScene(e.initialScene), scene.WithLogger(e.logger.Named("scene")))
	e.prerender = prerender.New(prerender.WithLogger(e.logger.Named("prerender")))
	e.limiter = limiter.NewFrameLimiter(e.clock, e.cfg.FrameLimiter)
	if e.cfg.Profiling.Enabled {
		e.profiler = profiler.NewProfiler(e.cfg.Profiling.IntervalTicks, profiler.WithClock(e.clock), profiler.WithLogger(e.logger.Named("profiler")))
	}

	for _, p := range e.packages {
		p.Prepare(e.data)
	}

	e.logger.Info("engine created",
		zap.String("app", e.cfg.AppName),
		zap.Bool("windowed", e.window != nil),
		zap.Bool("rendering", e.renderer != nil),
		zap.Int("systems", e.scheduler.Len()),
	)
	return e
}

// builtinSystems are registered before any user system.
func builtinSystems() []scheduler.System {
	return []scheduler.System{
		system.CommandBufferSystem,
		system.TilemapIntegritySystem,
		system.AnimationExecutorSystem,
		system.UiTextSyncSystem,
		system.UiTextMaterialResolver,
		system.HierarchySystem,
		system.MissingUiComponentSystem,
	}
}

// newGameData registers the default resources sized after the window, or after the default
// window configuration when running windowless.
func (e *engine) newGameData() *gamedata.GameData {
	width, height, scale := config.Default().Window.Width, config.Default().Window.Height, 1.0
	if e.window != nil {
		scale = e.window.ScaleFactor()
		width, height = logical(e.window.Width(), scale), logical(e.window.Height(), scale)
	} else if e.cfg.Window != nil {
		width, height = e.cfg.Window.Width, e.cfg.Window.Height
	}

	data := gamedata.New(width, height, scale)
	ecs.InsertResource(data.Resources, resources.NewTime(e.clock.Now()))
	ecs.InsertResource(data.Resources, &scene.Controller{})
	data.GameState().SetColorPicking(e.cfg.Render.ColorPicking)
	if e.cfg.Window != nil && e.cfg.Window.DefaultCursor != "" {
		data.Window().SetCursor(parseCursor(e.cfg.Window.DefaultCursor))
	}
	return data
}

// setupRendering creates the renderer for the window unless one was injected, then the
// rendering thread shim feeding it.
func (e *engine) setupRendering() {
	if e.renderer == nil && e.window != nil {
		opts := []renderer.RendererBuilderOption{
			renderer.WithPresentMode(parsePresentMode(e.cfg.Render.PresentMode)),
			renderer.WithLogger(e.logger.Named("renderer")),
		}
		if bg := e.cfg.BackgroundColor(); bg != nil {
			opts = append(opts, renderer.WithClearColor(*bg))
		}
		e.renderer = renderer.NewRenderer(renderer.BackendTypeWGPU, e.window, opts...)
	}
	if e.renderer == nil {
		return
	}
	e.mailbox = rendering.NewMailbox()
	e.thread = rendering.NewThread(e.renderer, e.mailbox, rendering.WithLogger(e.logger.Named("rendering")))
}

// setupAudio binds the Audio resource to a controller when audio is enabled.
func (e *engine) setupAudio() {
	if e.audio == nil && e.cfg.Audio.Enabled && !e.noAudio {
		e.audio = audio.NewController(e.cfg.Audio, audio.WithLogger(e.logger.Named("audio")))
	}
	if e.audio != nil {
		ecs.InsertResource(e.data.Resources, resources.NewAudio(e.audio.Events()))
	}
}

func (e *engine) Data() *gamedata.GameData { return e.data }

func (e *engine) Window() window.Window { return e.window }

func (e *engine) Config() config.Config { return e.cfg }

func (e *engine) Run() {
	defer e.recoverPanic()

	ctx, cancel := context.WithCancel(context.Background())
	defer e.shutdown(cancel)

	e.startRenderThread(ctx)
	e.startAudio(ctx)

	if e.window == nil {
		e.loop()
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer e.window.RequestClose()
		defer e.recoverPanic()
		e.loop()
	}()
	e.window.ProcessMessages()
	e.Quit()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quit)
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quit:
		return true
	default:
		return false
	}
}

// startRenderThread runs the rendering shim until the mailbox is closed and drained.
func (e *engine) startRenderThread(ctx context.Context) {
	if e.thread == nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.thread.Run(ctx); err != nil {
			e.logger.Error("rendering thread stopped", zap.Error(err))
			e.Quit()
			if e.window != nil {
				e.window.RequestClose()
			}
		}
	}()
}

func (e *engine) startAudio(ctx context.Context) {
	if e.audio == nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.audio.Run(ctx); err != nil {
			e.logger.Warn("audio disabled", zap.Error(err))
		}
	}()
}

// shutdown stops the background goroutines and frees the GPU and window.
func (e *engine) shutdown(cancel context.CancelFunc) {
	e.Quit()
	if e.mailbox != nil {
		e.mailbox.Close()
	}
	cancel()
	e.wg.Wait()
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			e.logger.Debug("failed to close window", zap.Error(err))
		}
	}
	e.logger.Info("engine stopped")
	_ = e.logger.Sync()
}

// recoverPanic logs a crash, then lets it terminate the process.
func (e *engine) recoverPanic() {
	if r := recover(); r != nil {
		e.logger.Error("engine crashed", zap.Any("panic", r))
		_ = e.logger.Sync()
		panic(r)
	}
}

// loop runs passes until Quit, sleeping until the next one is due.
func (e *engine) loop() {
	e.logger.Info("engine started",
		zap.Duration("tick", e.limiter.TickInterval()),
		zap.Duration("fixed", e.limiter.FixedInterval()),
		zap.Duration("render", e.limiter.RenderInterval()),
	)
	e.machine.Apply(scene.ActionStart, e.data)
	for !e.quitting() {
		e.step()
		if d := e.limiter.UntilNext(); d > 0 {
			e.clock.Sleep(d)
		}
	}
}

// step runs one pass: picking feedback, then the due variable tick, fixed tick and render,
// then the end of frame housekeeping when a variable tick ran.
func (e *engine) step() {
	e.resolvePicking()

	pass := e.limiter.Poll()
	if pass.Tick {
		e.variableTick(pass)
		e.limiter.Ticked(pass.Now)
	}
	if pass.Fixed {
		e.machine.Apply(scene.ActionFixedUpdate, e.data)
		e.limiter.FixedTicked()
	}
	if pass.Render {
		e.prepareRender()
		e.limiter.Rendered(pass.Now)
	}
	if pass.Tick {
		e.endFrame()
	}
}

// resolvePicking stores the entity under the cursor from the latest readback, if any.
func (e *engine) resolvePicking() {
	if e.thread == nil {
		return
	}
	select {
	case c := <-e.thread.Picked():
		if entity, ok := e.prerender.Picking().EntityFromColor(c); ok {
			e.data.GameState().SetPickedEntity(&entity)
		} else {
			e.data.GameState().SetPickedEntity(nil)
		}
	default:
	}
}

func (e *engine) variableTick(pass limiter.Pass) {
	delta := e.data.Time().Frame(pass.Now)
	e.data.Timers().AddDelta(delta)

	if events := e.drainWindowEvents(); len(events) > 0 {
		e.send(rendering.EventsMessage{Events: events})
	}

	e.machine.Apply(scene.ActionUpdate, e.data)
	e.scheduler.Execute(e.data)
	e.machine.Apply(scene.ActionLateUpdate, e.data)

	e.applyWindowRequests()

	if e.profiler != nil {
		e.profiler.Tick()
	}
}

// drainWindowEvents applies the queued window events to the input and window resources and
// returns the ones the renderer needs.
func (e *engine) drainWindowEvents() []rendering.Event {
	if e.window == nil {
		return nil
	}
	var out []rendering.Event
	in := e.data.Inputs()
	win := e.data.Window()
	for _, ev := range e.window.DrainEvents() {
		switch ev.Kind {
		case window.EventResized:
			scale := ev.ScaleFactor
			if scale <= 0 {
				scale = win.DPI()
			}
			win.SetDPI(scale)
			win.SetCurrentDimensions(logical(ev.Width, scale), logical(ev.Height, scale))
			out = append(out, rendering.ResizeEvent(uint32(max(ev.Width, 0)), uint32(max(ev.Height, 0)), scale))
		case window.EventCursorMoved:
			in.ApplyCursor(ev.X/win.DPI(), ev.Y/win.DPI())
			out = append(out, rendering.CursorEvent(&[2]uint32{pixel(ev.X), pixel(ev.Y)}))
		case window.EventCursorLeft:
			out = append(out, rendering.CursorEvent(nil))
		case window.EventKey:
			in.ApplyKey(ev.Key, buttonState(ev.Pressed))
		case window.EventMouseButton:
			in.ApplyMouseButton(ev.Button, buttonState(ev.Pressed))
		case window.EventScroll:
			in.ApplyScroll(ev.X, ev.Y)
		case window.EventCloseRequested:
			e.Quit()
		}
	}
	return out
}

// applyWindowRequests forwards the cursor and size requested by game code this tick.
func (e *engine) applyWindowRequests() {
	win := e.data.Window()
	cursor, size := win.FutureSettings()
	if cursor == nil && size == nil {
		return
	}
	if e.window != nil {
		if cursor != nil {
			e.window.RequestCursor(*cursor)
		}
		if size != nil {
			e.window.RequestSize(size[0], size[1])
		}
	} else if size != nil {
		win.SetCurrentDimensions(size[0], size[1])
	}
	win.ResetFutureSettings()
}

func (e *engine) prepareRender() {
	updates, draws := e.prerender.Prepare(e.data)
	e.send(rendering.FrameMessage{Updates: updates, Draws: draws, Background: e.cfg.BackgroundColor()})
}

func (e *engine) endFrame() {
	e.data.Inputs().ResetInputs()
	e.data.Events().Cleanup()
	e.machine.Apply(scene.ActionEndFrame, e.data)

	if despawned := e.data.World.TakeDespawned(); len(despawned) > 0 {
		e.prerender.Forget(despawned)
		e.send(rendering.DespawnMessage{Entities: despawned})
	}
	if enabled, changed := e.data.GameState().TakePickingUpdate(); changed {
		e.send(rendering.PickingStatusMessage{Enabled: enabled})
	}
}

// send queues msg for the rendering thread without blocking. Messages are dropped when
// running without a renderer.
func (e *engine) send(msg rendering.Message) {
	if e.mailbox == nil {
		return
	}
	e.mailbox.Push(msg)
}

func logical(px int, scale float64) int {
	if scale <= 0 {
		return px
	}
	return int(math.Round(float64(px) / scale))
}

func pixel(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	return uint32(v)
}

func buttonState(pressed bool) resources.ButtonState {
	if pressed {
		return resources.Pressed
	}
	return resources.Released
}

func parsePresentMode(name string) renderer.PresentMode {
	switch strings.ToLower(name) {
	case "immediate", "mailbox", "uncapped":
		return renderer.PresentModeUncapped
	default:
		return renderer.PresentModeVSync
	}
}

func parseCursor(name string) common.CursorIcon {
	switch strings.ToLower(name) {
	case "pointer", "hand":
		return common.CursorPointer
	case "text":
		return common.CursorText
	case "crosshair":
		return common.CursorCrosshair
	case "ew-resize", "h-resize":
		return common.CursorHResize
	case "ns-resize", "v-resize":
		return common.CursorVResize
	default:
		return common.CursorDefault
	}
}
