// Package shader owns the WGSL program shared by every 2D pipeline, and the vertex and bind group
// layouts the renderer builds its pipelines and bind groups from.
package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed sprite.wgsl
var spriteSource string

const (
	// VertexEntryPoint is shared by the visible and the picking pipelines.
	VertexEntryPoint = "vs_main"
	// FragmentEntryPoint samples the diffuse texture.
	FragmentEntryPoint = "fs_main"
	// PickingEntryPoint writes the picking color of the fragment instead of its texel.
	PickingEntryPoint = "fs_picking"
)

// Bind group indices used by the sprite program.
const (
	GroupTransform = 0
	GroupDiffuse   = 1
	GroupPicking   = 2
)

// Byte sizes of the vertex and the uniforms, matching the WGSL structs.
const (
	VertexStride        = 44
	TransformUniformLen = 144
	PickingUniformLen   = 32
)

// Source returns the WGSL source of the sprite program.
//
// Returns:
//   - string: the WGSL source
func Source() string {
	return spriteSource
}

// VertexLayout describes the TexturedVertex layout: position, uv, depth, picking color, picking flag.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout of vertex buffer 0
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32, Offset: 20, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 3},
			{Format: wgpu.VertexFormatUint32, Offset: 40, ShaderLocation: 4},
		},
	}
}

// BindGroupLayoutDescriptors returns the descriptors of groups 0 to 2, indexed by group.
//
// Returns:
//   - []wgpu.BindGroupLayoutDescriptor: transform, diffuse and picking layouts
func BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor {
	transform := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex,
	}
	transform.Buffer.Type = wgpu.BufferBindingTypeUniform
	transform.Buffer.MinBindingSize = TransformUniformLen

	texture := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageFragment,
	}
	texture.Texture.SampleType = wgpu.TextureSampleTypeFloat
	texture.Texture.ViewDimension = wgpu.TextureViewDimension2D

	sampler := wgpu.BindGroupLayoutEntry{
		Binding:    1,
		Visibility: wgpu.ShaderStageFragment,
	}
	sampler.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	picking := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageFragment,
	}
	picking.Buffer.Type = wgpu.BufferBindingTypeUniform
	picking.Buffer.MinBindingSize = PickingUniformLen

	return []wgpu.BindGroupLayoutDescriptor{
		GroupTransform: {Label: "Transform Layout", Entries: []wgpu.BindGroupLayoutEntry{transform}},
		GroupDiffuse:   {Label: "Diffuse Layout", Entries: []wgpu.BindGroupLayoutEntry{texture, sampler}},
		GroupPicking:   {Label: "Picking Layout", Entries: []wgpu.BindGroupLayoutEntry{picking}},
	}
}
