package rendering

import "go.uber.org/zap"

// ThreadBuilderOption is a functional option for configuring a Thread.
type ThreadBuilderOption func(t *Thread)

// WithColorPicking sets whether the picking readback starts enabled.
//
// Parameters:
//   - enabled: the initial picking status
//
// Returns:
//   - ThreadBuilderOption: option function to apply
func WithColorPicking(enabled bool) ThreadBuilderOption {
	return func(t *Thread) {
		t.picking = enabled
	}
}

// WithLogger replaces the thread's logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ThreadBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) ThreadBuilderOption {
	return func(t *Thread) {
		t.logger = logger
	}
}
