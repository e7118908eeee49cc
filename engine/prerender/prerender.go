// Package prerender diffs the world into the minimal set of GPU updates for one frame and builds
// the sorted draw list. It never touches GPU objects; everything it produces travels to the
// rendering thread as rendering.Update values.
package prerender

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
	"go.uber.org/zap"
)

// bufferState is what the rendering thread is known to hold for one entity.
type bufferState struct {
	vertex     bool
	index      bool
	indexCount uint32
	transform  bool
	picking    bool
}

// PreRenderer keeps the bookkeeping needed to emit only what changed since the previous frame.
type PreRenderer struct {
	buffers  map[ecs.Entity]*bufferState
	picking  *ColorPicking
	textures map[string]struct{}
	missing  map[string]struct{}

	cameraSeen   bool
	cameraOrigin component.Vector
	cameraSize   [2]float32

	// pool computes vertex payloads of large batches. Workers persist across frames.
	pool           worker.DynamicWorkerPool
	workers        int
	batchThreshold int

	logger *zap.Logger
}

// New creates a pre-renderer with empty bookkeeping.
//
// Parameters:
//   - options: functional options to configure the pre-renderer
//
// Returns:
//   - *PreRenderer: the pre-renderer
func New(options ...PreRendererBuilderOption) *PreRenderer {
	p := &PreRenderer{
		buffers:        make(map[ecs.Entity]*bufferState),
		picking:        NewColorPicking(),
		textures:       make(map[string]struct{}),
		missing:        make(map[string]struct{}),
		workers:        runtime.NumCPU(),
		batchThreshold: 64,
		logger:         zap.L().Named("prerender"),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.workers > 1 {
		p.pool = worker.NewDynamicWorkerPool(p.workers, 256, 1*time.Second)
	}
	return p
}

// Picking returns the color picking registry.
func (p *PreRenderer) Picking() *ColorPicking { return p.picking }

// Prepare computes the updates and the sorted draw list of one frame.
//
// Parameters:
//   - data: the simulation state
//
// Returns:
//   - []rendering.Update: diffuse textures, then buffers, then picking and transform uniforms
//   - []rendering.DrawInfo: the draw list sorted by layer and priority
func (p *PreRenderer) Prepare(data *gamedata.GameData) ([]rendering.Update, []rendering.DrawInfo) {
	var updates []rendering.Update
	updates = append(updates, p.prepareDiffuseBindGroups(data)...)
	updates = append(updates, p.prepareComponentBuffers(data)...)
	updates = append(updates, p.preparePickingUniforms(data)...)
	updates = append(updates, p.prepareTransforms(data)...)
	return updates, p.drawInfos(data.World)
}

// Forget drops everything known about despawned entities and reclaims their picking ids.
func (p *PreRenderer) Forget(entities []ecs.Entity) {
	for _, e := range entities {
		delete(p.buffers, e)
		p.picking.Remove(e)
	}
}

// Tracked reports whether the pre-renderer believes e has buffers on the GPU.
func (p *PreRenderer) Tracked(e ecs.Entity) bool {
	s, ok := p.buffers[e]
	return ok && s.vertex && s.index
}

func (p *PreRenderer) state(e ecs.Entity) *bufferState {
	s, ok := p.buffers[e]
	if !ok {
		s = &bufferState{}
		p.buffers[e] = s
	}
	return s
}

func (p *PreRenderer) missingVertexBuffer(e ecs.Entity) bool {
	s, ok := p.buffers[e]
	return !ok || !s.vertex
}

func (p *PreRenderer) missingIndexBuffer(e ecs.Entity) bool {
	s, ok := p.buffers[e]
	return !ok || !s.index
}

// parallel calls fn for every index in [0, n). Batches at or above the threshold run on the
// worker pool; a panic in any task is raised again on the calling goroutine once all tasks ended.
func (p *PreRenderer) parallel(n int, fn func(i int)) {
	if p.pool == nil || n < p.batchThreshold {
		for i := range n {
			fn(i)
		}
		return
	}

	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicked  any
	)
	for i := range n {
		wg.Add(1)
		idx := i
		p.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						panicOnce.Do(func() { panicked = r })
					}
				}()
				fn(idx)
				return nil, nil
			},
		})
	}
	wg.Wait()
	if panicked != nil {
		panic(fmt.Sprintf("vertex batch: %v", panicked))
	}
}
