package engine

import (
	"github.com/Carmen-Shannon/scion-go/engine/audio"
	"github.com/Carmen-Shannon/scion-go/engine/config"
	"github.com/Carmen-Shannon/scion-go/engine/limiter"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
	"github.com/Carmen-Shannon/scion-go/engine/scene"
	"github.com/Carmen-Shannon/scion-go/engine/scheduler"
	"github.com/Carmen-Shannon/scion-go/engine/window"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig replaces the default configuration. A nil Window section runs the engine
// without a window.
//
// Parameters:
//   - cfg: the engine configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.cfg = cfg
	}
}

// WithScene sets the scene started by the first pass of the loop.
//
// Parameters:
//   - s: the initial Scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.initialScene = s
	}
}

// WithSystem registers a system run once per variable tick, after the built-in systems and
// the systems registered before it.
//
// Parameters:
//   - sys: the system to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSystem(sys scheduler.System) EngineBuilderOption {
	return func(e *engine) {
		e.systems = append(e.systems, sys)
	}
}

// WithSystems registers several systems in order.
//
// Parameters:
//   - systems: the systems to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSystems(systems ...scheduler.System) EngineBuilderOption {
	return func(e *engine) {
		e.systems = append(e.systems, systems...)
	}
}

// WithPackage composes a package into the engine. Its Load options are applied after the
// direct options and its Prepare runs once the resources exist.
//
// Parameters:
//   - p: the package
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPackage(p Package) EngineBuilderOption {
	return func(e *engine) {
		e.packages = append(e.packages, p)
	}
}

// WithClock replaces the time source driving the loop.
//
// Parameters:
//   - clock: the clock, a limiter.MockClock in tests
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(clock limiter.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = clock
	}
}

// WithRenderer sets the renderer driven by the rendering thread rather than creating a GPU
// renderer for the window. It also enables rendering when running windowless.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r rendering.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithAudio sets the audio controller, or disables audio when c is nil.
//
// Parameters:
//   - c: the controller consuming the Audio resource's events
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAudio(c *audio.Controller) EngineBuilderOption {
	return func(e *engine) {
		e.audio = c
		e.noAudio = c == nil
	}
}

// WithLogger sets the engine logger instead of installing one built from the configuration.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(l *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = l
		e.loggerSet = true
	}
}
