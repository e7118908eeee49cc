package scene

import "go.uber.org/zap"

// MachineBuilderOption is a functional option for configuring a Machine.
type MachineBuilderOption func(m *Machine)

// WithScene sets the initial scene. It receives OnStart on the first action.
//
// Parameters:
//   - s: the initial scene
//
// Returns:
//   - MachineBuilderOption: option function to apply
func WithScene(s Scene) MachineBuilderOption {
	return func(m *Machine) {
		m.current = s
		m.started = false
	}
}

// WithLogger replaces the machine's logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - MachineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) MachineBuilderOption {
	return func(m *Machine) {
		m.logger = logger
	}
}
