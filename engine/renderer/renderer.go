package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/scion-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/scion-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/scion-go/engine/rendering"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// entityResources are the GPU objects backing one renderable entity.
type entityResources struct {
	mesh      bind_group_provider.BindGroupProvider
	transform bind_group_provider.BindGroupProvider
	picking   bind_group_provider.BindGroupProvider

	transformReady bool
	pickingReady   bool
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	entities map[ecs.Entity]*entityResources
	// diffuse holds one texture bind group per material key. The empty key is the white
	// fallback used by draws without a texture.
	diffuse map[string]bind_group_provider.BindGroupProvider
	// noPicking is bound to group 2 for entities without a picking uniform.
	noPicking bind_group_provider.BindGroupProvider

	clearColor common.Color
	logger     *zap.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Surface is the window side a renderer draws into.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// Renderer is the WebGPU implementation of the rendering thread's Renderer contract. It keeps
// the GPU buffers and bind groups of every entity it has been told about, draws the sorted draw
// list each frame, and answers color picking queries from an offscreen pass.
type Renderer interface {
	rendering.Renderer
	rendering.Picker

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode, applied with the next resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Pipeline retrieves the cached Pipeline associated with the given key, or nil.
	//
	// Parameters:
	//   - key: the pipeline key, see pipeline.Key
	//
	// Returns:
	//   - pipeline.Pipeline: the cached pipeline or nil
	Pipeline(key string) pipeline.Pipeline
}

var _ Renderer = &renderer{}

// NewRenderer creates the GPU device for surface, configures it at the surface size and registers
// the sprite pipelines. Device creation failures panic.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - surface: the window surface to draw into
//   - options: builder options
//
// Returns:
//   - Renderer: the ready renderer
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := newRenderer(options...)
	r.backendType = backendType

	msaa := MSAAOff
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if err := r.init(surface.Width(), surface.Height()); err != nil {
		panic(err)
	}
	return r
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		entities:      make(map[ecs.Entity]*entityResources),
		diffuse:       make(map[string]bind_group_provider.BindGroupProvider),
		clearColor:    common.NewColor(0, 0, 0),
		logger:        zap.L().Named("renderer"),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init configures the surface and creates the pipelines and shared bind groups.
func (r *renderer) init(width, height int) error {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(width, height)

	for _, p := range pipeline.Defaults() {
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[p.PipelineKey()] = p
	}

	fallback := bind_group_provider.NewBindGroupProvider("Fallback Diffuse")
	if err := r.backend.InitDiffuse(fallback, common.SolidTexture(common.NewColor(255, 255, 255)), wgpu.FilterModeNearest); err != nil {
		return err
	}
	r.diffuse[""] = fallback

	r.noPicking = bind_group_provider.NewBindGroupProvider("Disabled Picking")
	if err := r.backend.InitUniform(r.noPicking, shader.GroupPicking, shader.PickingUniformLen); err != nil {
		return err
	}
	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: r.noPicking,
		Data:     make([]byte, shader.PickingUniformLen),
	}})
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) HandleEvent(ev rendering.Event) {
	switch ev.Kind {
	case rendering.EventResize:
		r.logger.Debug("resizing surface", zap.Uint32("width", ev.Width), zap.Uint32("height", ev.Height), zap.Float64("scale", ev.ScaleFactor))
		r.Resize(int(ev.Width), int(ev.Height))
	case rendering.EventForceRedraw, rendering.EventCursorMoved:
		// the next Render call redraws; the cursor is tracked by the rendering thread
	}
}

func (r *renderer) Update(updates []rendering.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var writes []bind_group_provider.BufferWrite
	for _, u := range updates {
		switch u := u.(type) {
		case rendering.DiffuseBindGroupUpdate:
			provider := bind_group_provider.NewBindGroupProvider("Diffuse " + u.Key)
			filter := wgpu.FilterModeNearest
			if u.Kind == rendering.DiffuseTexture {
				filter = wgpu.FilterModeLinear
			}
			if err := r.backend.InitDiffuse(provider, u.Texture, filter); err != nil {
				provider.Release()
				return eris.Wrapf(err, "failed to create diffuse bind group %q", u.Key)
			}
			if old, ok := r.diffuse[u.Key]; ok {
				old.Release()
			}
			r.diffuse[u.Key] = provider

		case rendering.TransformUniformUpdate:
			res := r.resources(u.Entity)
			if !res.transformReady {
				if err := r.backend.InitUniform(res.transform, shader.GroupTransform, shader.TransformUniformLen); err != nil {
					return eris.Wrapf(err, "failed to create transform uniform for entity %d", u.Entity.Index())
				}
				res.transformReady = true
			}
			writes = append(writes, bind_group_provider.BufferWrite{Provider: res.transform, Data: u.Uniform.Bytes()})

		case rendering.ColorPickingUniformUpdate:
			res := r.resources(u.Entity)
			if !res.pickingReady {
				if err := r.backend.InitUniform(res.picking, shader.GroupPicking, shader.PickingUniformLen); err != nil {
					return eris.Wrapf(err, "failed to create picking uniform for entity %d", u.Entity.Index())
				}
				res.pickingReady = true
			}
			writes = append(writes, bind_group_provider.BufferWrite{Provider: res.picking, Data: u.Uniform.Bytes()})

		case rendering.VertexBufferUpdate:
			if err := r.backend.WriteMesh(r.resources(u.Entity).mesh, u.Contents, nil); err != nil {
				return err
			}

		case rendering.IndexBufferUpdate:
			if err := r.backend.WriteMesh(r.resources(u.Entity).mesh, nil, u.Contents); err != nil {
				return err
			}

		default:
			return eris.Errorf("unsupported update %T", u)
		}
	}

	if len(writes) > 0 {
		r.backend.WriteBuffers(writes)
	}
	return nil
}

func (r *renderer) Render(draws []rendering.DrawInfo, background *common.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear := r.clearColor
	if background != nil {
		clear = *background
	}

	if err := r.backend.BeginFrame(toWGPUColor(clear)); err != nil {
		// An outdated or lost surface is recovered by reconfiguring it at its last size.
		width, height := r.backend.Size()
		r.backend.ConfigureSurface(int(width), int(height))
		return eris.Wrap(rendering.ErrSurfaceUnavailable, err.Error())
	}

	for _, d := range draws {
		r.draw(pipeline.TargetSurface, d)
	}

	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) PickColor(draws []rendering.DrawInfo, x, y uint32) (common.Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.backend.Size()
	if x >= width || y >= height {
		return common.Color{}, nil
	}

	if err := r.backend.BeginPickingFrame(); err != nil {
		return common.Color{}, eris.Wrap(err, "failed to begin picking pass")
	}
	for _, d := range draws {
		r.draw(pipeline.TargetPicking, d)
	}

	rgba, err := r.backend.EndPickingFrame(x, y)
	if err != nil {
		return common.Color{}, err
	}
	return common.NewColorWithAlpha(rgba[0], rgba[1], rgba[2], float32(rgba[3])/255), nil
}

// draw issues one draw call, skipping entities whose buffers or uniforms have not arrived yet.
func (r *renderer) draw(target pipeline.Target, d rendering.DrawInfo) {
	res, ok := r.entities[d.Entity]
	if !ok || !res.transformReady {
		return
	}
	res.mesh.SetIndexCount(d.IndexCount)
	if !bind_group_provider.Mesh(res.mesh) {
		return
	}

	p, ok := r.pipelineCache[pipeline.Key(target, d.Topology)]
	if !ok {
		r.logger.Warn("no pipeline for draw", zap.String("type", d.TypeName), zap.Uint8("topology", uint8(d.Topology)))
		return
	}

	diffuse, ok := r.diffuse[d.TextureKey]
	if !ok {
		diffuse = r.diffuse[""]
	}
	picking := r.noPicking
	if res.pickingReady {
		picking = res.picking
	}

	r.backend.DrawCall(p, res.mesh, []bind_group_provider.BindGroupProvider{res.transform, diffuse, picking})
}

func (r *renderer) resources(e ecs.Entity) *entityResources {
	res, ok := r.entities[e]
	if !ok {
		label := fmt.Sprintf("Entity %d", e.Index())
		res = &entityResources{
			mesh:      bind_group_provider.NewBindGroupProvider(label + " Mesh"),
			transform: bind_group_provider.NewBindGroupProvider(label + " Transform"),
			picking:   bind_group_provider.NewBindGroupProvider(label + " Picking"),
		}
		r.entities[e] = res
	}
	return res
}

func (r *renderer) Forget(entities []ecs.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entities {
		res, ok := r.entities[e]
		if !ok {
			continue
		}
		res.mesh.Release()
		res.transform.Release()
		res.picking.Release()
		delete(r.entities, e)
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for e, res := range r.entities {
		res.mesh.Release()
		res.transform.Release()
		res.picking.Release()
		delete(r.entities, e)
	}
	for key, d := range r.diffuse {
		d.Release()
		delete(r.diffuse, key)
	}
	if r.noPicking != nil {
		r.noPicking.Release()
	}
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}

func toWGPUColor(c common.Color) wgpu.Color {
	f := c.Float4()
	return wgpu.Color{R: float64(f[0]), G: float64(f[1]), B: float64(f[2]), A: float64(f[3])}
}
