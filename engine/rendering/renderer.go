package rendering

import (
	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/rotisserie/eris"
)

// ErrSurfaceUnavailable is returned by Render when the surface is lost or outdated. The frame is
// skipped and the next one is attempted normally.
var ErrSurfaceUnavailable = eris.New("surface unavailable")

// Renderer is the opaque GPU side driven by the rendering thread.
type Renderer interface {
	// HandleEvent applies a resize or redraw request.
	HandleEvent(ev Event)

	// Update applies buffer, uniform and texture writes in order.
	//
	// Parameters:
	//   - updates: the writes of one frame
	//
	// Returns:
	//   - error: error if a write could not be applied
	Update(updates []Update) error

	// Render draws one frame.
	//
	// Parameters:
	//   - draws: the draw list, already sorted
	//   - background: the clear color, nil for the renderer default
	//
	// Returns:
	//   - error: ErrSurfaceUnavailable when the frame must be skipped
	Render(draws []DrawInfo, background *common.Color) error

	// Forget releases the GPU resources of despawned entities.
	Forget(entities []ecs.Entity)

	// Release frees every GPU resource.
	Release()
}

// Picker is implemented by renderers able to read back the color under a pixel from an
// offscreen pass of the draw list.
type Picker interface {
	// PickColor renders draws offscreen and returns the color at (x, y). The call blocks until
	// the readback completes.
	PickColor(draws []DrawInfo, x, y uint32) (common.Color, error)
}
