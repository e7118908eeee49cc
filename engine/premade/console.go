package premade

import (
	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"go.uber.org/zap"
)

const consoleBarHeight = 60

// ConsoleMarker tags the root entity of the developer console overlay.
type ConsoleMarker struct{}

// ConsoleState is the resource tracking the developer console overlay.
type ConsoleState struct {
	displayed bool
	root      ecs.Entity
	parts     []ecs.Entity
}

// Displayed reports whether the overlay is shown.
func (s *ConsoleState) Displayed() bool { return s.displayed }

// Root returns the root entity of the shown overlay.
func (s *ConsoleState) Root() (ecs.Entity, bool) { return s.root, s.displayed }

// ConsoleOption configures a ConsolePackage.
type ConsoleOption func(*ConsolePackage)

// WithConsoleFont shows a prompt line rendered with the registered font.
func WithConsoleFont(font string, size int) ConsoleOption {
	return func(p *ConsolePackage) {
		p.font = font
		p.fontSize = size
	}
}

// WithConsoleKeys changes the keys opening and closing the console.
func WithConsoleKeys(open, closing common.KeyCode) ConsoleOption {
	return func(p *ConsolePackage) {
		p.openKey = open
		p.closeKey = closing
	}
}

// WithConsoleLogger sets the logger reporting overlay changes.
func WithConsoleLogger(logger *zap.Logger) ConsoleOption {
	return func(p *ConsolePackage) {
		p.logger = logger
	}
}

// ConsolePackage shows a developer console overlay over the whole window. F12 opens it and
// Escape closes it by default.
type ConsolePackage struct {
	font     string
	fontSize int
	openKey  common.KeyCode
	closeKey common.KeyCode
	logger   *zap.Logger
}

// NewConsolePackage creates the package.
func NewConsolePackage(options ...ConsoleOption) *ConsolePackage {
	p := &ConsolePackage{
		fontSize: 14,
		openKey:  common.KeyF12,
		closeKey: common.KeyEsc,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Prepare inserts the ConsoleState resource.
func (p *ConsolePackage) Prepare(data *gamedata.GameData) {
	ecs.InsertResource(data.Resources, &ConsoleState{})
}

// Load registers the toggle system.
func (p *ConsolePackage) Load() []engine.EngineBuilderOption {
	return []engine.EngineBuilderOption{engine.WithSystem(p.ToggleSystem)}
}

// ToggleSystem opens or closes the overlay from this frame's key presses.
func (p *ConsolePackage) ToggleSystem(data *gamedata.GameData) {
	state := ecs.MustGetResource[ConsoleState](data.Resources)
	inputs := data.Inputs()
	open := inputs.KeyJustPressed(p.openKey)
	closing := inputs.KeyPressed(p.closeKey)

	switch {
	case !state.displayed && open && !closing:
		p.show(data, state)
	case state.displayed && !open && closing:
		p.hide(data, state)
	}
}

func (p *ConsolePackage) show(data *gamedata.GameData, state *ConsoleState) {
	w := data.World
	width, height := float32(data.Window().Width()), float32(data.Window().Height())
	root := w.Spawn(ConsoleMarker{})

	parts := []ecs.Entity{
		w.Spawn(
			component.NewUiImage(width, height, ""),
			component.FromXYZ(0, 0, 3),
			component.NewColorMaterial(common.NewColorWithAlpha(50, 50, 50, 0.8)),
			ecs.Parent{Entity: root},
		),
		w.Spawn(
			component.NewUiImage(width, consoleBarHeight, ""),
			component.FromXYZ(0, height-consoleBarHeight, 2),
			component.NewColorMaterial(common.NewColorWithAlpha(10, 10, 10, 0.9)),
			ecs.Parent{Entity: root},
		),
	}
	if p.font != "" {
		parts = append(parts, w.Spawn(
			component.NewUiText("> ", p.font).WithFontSize(p.fontSize).WithFontColor(common.NewColor(255, 255, 255)),
			component.FromXYZ(15, height-35, 0),
			ecs.Parent{Entity: root},
		))
	}

	state.displayed = true
	state.root = root
	state.parts = parts
	p.logger.Info("developer console opened")
}

func (p *ConsolePackage) hide(data *gamedata.GameData, state *ConsoleState) {
	for _, e := range state.parts {
		_ = data.World.Despawn(e)
	}
	_ = data.World.Despawn(state.root)
	state.displayed = false
	state.parts = nil
	p.logger.Info("developer console closed")
}
