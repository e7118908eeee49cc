package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"go.uber.org/zap"
)

// Action is a lifecycle step dispatched to the active scene.
type Action uint8

const (
	ActionStart Action = iota
	ActionUpdate
	ActionLateUpdate
	ActionFixedUpdate
	ActionEndFrame
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "Start"
	case ActionUpdate:
		return "Update"
	case ActionLateUpdate:
		return "LateUpdate"
	case ActionFixedUpdate:
		return "FixedUpdate"
	case ActionEndFrame:
		return "EndFrame"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Machine owns the active scene and dispatches lifecycle actions to it.
type Machine struct {
	current Scene
	started bool
	logger  *zap.Logger
}

// NewMachine creates a machine with no active scene.
//
// Parameters:
//   - options: functional options to configure the machine
//
// Returns:
//   - *Machine: the scene machine
func NewMachine(options ...MachineBuilderOption) *Machine {
	m := &Machine{logger: zap.L().Named("scene")}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Current returns the active scene, nil when none.
func (m *Machine) Current() Scene { return m.current }

// Started reports whether the active scene received OnStart.
func (m *Machine) Started() bool { return m.started }

// Apply dispatches action to the active scene. A switch queued on the Controller resource is
// applied first, and a scene that was not started yet receives OnStart before the action.
// ActionStart only performs these two steps.
//
// Parameters:
//   - action: the lifecycle step
//   - data: the simulation state
func (m *Machine) Apply(action Action, data *gamedata.GameData) {
	if ctrl, ok := ecs.GetResource[Controller](data.Resources); ok && ctrl.Pending() {
		next := ctrl.take()
		m.logger.Info("switching scene", zap.String("from", sceneName(m.current)), zap.String("to", sceneName(next)))
		m.current = next
		m.started = false
	}
	if m.current == nil {
		return
	}
	if !m.started {
		m.started = true
		m.current.OnStart(data)
	}

	switch action {
	case ActionUpdate:
		m.current.OnUpdate(data)
	case ActionLateUpdate:
		m.current.OnLateUpdate(data)
	case ActionFixedUpdate:
		m.current.OnFixedUpdate(data)
	case ActionEndFrame:
		m.current.OnEndFrame(data)
	}
}

func sceneName(s Scene) string {
	if s == nil {
		return "<none>"
	}
	return fmt.Sprintf("%T", s)
}
