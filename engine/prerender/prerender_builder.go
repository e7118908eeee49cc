package prerender

import "go.uber.org/zap"

// PreRendererBuilderOption is a functional option for configuring a PreRenderer.
type PreRendererBuilderOption func(p *PreRenderer)

// WithWorkers sets the number of workers computing large vertex batches. Values below 2 compute
// every batch on the calling goroutine.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - PreRendererBuilderOption: option function to apply
func WithWorkers(n int) PreRendererBuilderOption {
	return func(p *PreRenderer) {
		p.workers = n
	}
}

// WithBatchThreshold sets the batch size from which vertex computation moves to the worker pool.
//
// Parameters:
//   - n: the minimum batch size
//
// Returns:
//   - PreRendererBuilderOption: option function to apply
func WithBatchThreshold(n int) PreRendererBuilderOption {
	return func(p *PreRenderer) {
		p.batchThreshold = max(n, 1)
	}
}

// WithLogger replaces the pre-renderer's logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - PreRendererBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) PreRendererBuilderOption {
	return func(p *PreRenderer) {
		p.logger = logger
	}
}
