package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Target selects which pass a pipeline draws into.
type Target int

const (
	// TargetSurface draws the visible frame into the swapchain, multisampled when MSAA is on.
	TargetSurface Target = iota

	// TargetPicking draws picking colors into the single-sampled offscreen texture.
	TargetPicking
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string
	target      Target

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	topology          wgpu.PrimitiveTopology
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline describes one 2D render pipeline: the pass it targets and its fixed function state.
// The GPU object is created by the renderer and attached with SetRenderPipeline.
type Pipeline interface {
	// PipelineKey retrieves the unique identifier for this pipeline.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Target reports whether the pipeline draws the visible frame or the picking pass.
	//
	// Returns:
	//   - Target: the pass this pipeline draws into
	Target() Target

	// FragmentEntryPoint returns the fragment entry point matching Target.
	//
	// Returns:
	//   - string: the WGSL fragment function name
	FragmentEntryPoint() string

	// RenderPipeline returns the GPU pipeline, or nil until registered with the renderer.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the created pipeline or nil
	RenderPipeline() *wgpu.RenderPipeline

	DepthTestEnabled() bool
	DepthWriteEnabled() bool

	// BlendEnabled reports whether BlendState is applied to the color target.
	//
	// Returns:
	//   - bool: true when alpha blending is on
	BlendEnabled() bool
	Topology() wgpu.PrimitiveTopology
	WriteMask() wgpu.ColorWriteMask
	BlendState() *wgpu.BlendState

	// SetRenderPipeline attaches the created GPU pipeline.
	//
	// Parameters:
	//   - p: the created render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline if one was attached.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline description with depth testing, alpha blending and triangle lists
// enabled by default.
//
// Parameters:
//   - pipelineKey: the unique identifier of the pipeline
//   - opts: builder options overriding the defaults
//
// Returns:
//   - Pipeline: the configured pipeline description
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		target:            TargetSurface,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      true,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key names the pipeline drawing topology into target. Keys are stable so the renderer can look
// pipelines up per draw.
//
// Parameters:
//   - target: the pass
//   - topology: the primitive assembly of the draw
//
// Returns:
//   - string: the cache key
func Key(target Target, topology component.Topology) string {
	pass := "surface"
	if target == TargetPicking {
		pass = "picking"
	}
	return fmt.Sprintf("%s/%s", pass, topologyName(topology))
}

// Defaults returns one pipeline per topology and target. Picking pipelines never blend, so picking
// colors are written exactly.
//
// Returns:
//   - []Pipeline: the pipelines the renderer registers at startup
func Defaults() []Pipeline {
	var out []Pipeline
	for _, topology := range []component.Topology{component.TopologyTriangleList, component.TopologyLineList} {
		out = append(out,
			NewPipeline(Key(TargetSurface, topology), WithTopology(PrimitiveTopology(topology))),
			NewPipeline(Key(TargetPicking, topology),
				WithTarget(TargetPicking),
				WithTopology(PrimitiveTopology(topology)),
				WithBlendEnabled(false),
			),
		)
	}
	return out
}

// PrimitiveTopology maps a component topology to the GPU primitive topology.
//
// Parameters:
//   - t: the component topology
//
// Returns:
//   - wgpu.PrimitiveTopology: the matching GPU topology
func PrimitiveTopology(t component.Topology) wgpu.PrimitiveTopology {
	if t == component.TopologyLineList {
		return wgpu.PrimitiveTopologyLineList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

func topologyName(t component.Topology) string {
	if t == component.TopologyLineList {
		return "lines"
	}
	return "triangles"
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Target() Target {
	return p.target
}

func (p *pipeline) FragmentEntryPoint() string {
	if p.target == TargetPicking {
		return shader.PickingEntryPoint
	}
	return shader.FragmentEntryPoint
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
