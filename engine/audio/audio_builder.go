package audio

import (
	"time"

	"go.uber.org/zap"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(c *Controller)

// WithOutput replaces the speaker.
//
// Parameters:
//   - output: the device to stream to
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithOutput(output Output) ControllerBuilderOption {
	return func(c *Controller) {
		c.output = output
	}
}

// WithDecoder replaces the file decoder.
//
// Parameters:
//   - decode: the function opening sound paths
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithDecoder(decode Decoder) ControllerBuilderOption {
	return func(c *Controller) {
		c.decode = decode
	}
}

// WithSweepInterval sets how often finished sounds are forgotten while no event arrives.
func WithSweepInterval(d time.Duration) ControllerBuilderOption {
	return func(c *Controller) {
		if d > 0 {
			c.sweep = d
		}
	}
}

// WithLogger replaces the controller logger.
func WithLogger(logger *zap.Logger) ControllerBuilderOption {
	return func(c *Controller) {
		c.logger = logger
	}
}
