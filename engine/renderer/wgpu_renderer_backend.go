package renderer

import (
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/scion-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/scion-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rotisserie/eris"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	width, height uint32

	shaderModule     *wgpu.ShaderModule
	bindGroupLayouts []*wgpu.BindGroupLayout
	pipelineLayout   *wgpu.PipelineLayout

	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	// The picking pass draws into its own single-sampled RGBA texture so the color under the
	// cursor can be copied out without touching the swapchain.
	pickingTexture        *wgpu.Texture
	pickingView           *wgpu.TextureView
	pickingDepthView      *wgpu.TextureView
	pickingReadback       *wgpu.Buffer
	pickingPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// It also recreates the depth, MSAA and picking targets at the new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// Size returns the configured surface size.
	//
	// Returns:
	//   - uint32: width in pixels
	//   - uint32: height in pixels
	Size() (uint32, uint32)

	// SetPresentMode sets the surface present mode. It takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the GPU pipeline for p from the sprite program and attaches it.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if the pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// WriteMesh uploads vertex and index data to the provider's buffers, growing them when the
	// data no longer fits.
	//
	// Parameters:
	//   - provider: the mesh provider
	//   - vertexData: the raw vertex bytes, nil to keep the current vertex buffer
	//   - indexData: the raw index bytes, nil to keep the current index buffer
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	WriteMesh(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte) error

	// InitUniform creates a uniform buffer of size bytes at binding 0 and its bind group for group.
	//
	// Parameters:
	//   - provider: the provider receiving the buffer and bind group
	//   - group: the bind group index in the sprite program
	//   - size: the uniform size in bytes
	//
	// Returns:
	//   - error: an error if the buffer or bind group could not be created
	InitUniform(provider bind_group_provider.BindGroupProvider, group int, size uint64) error

	// InitDiffuse uploads a texture and creates the diffuse bind group sampling it.
	//
	// Parameters:
	//   - provider: the provider receiving the texture, sampler and bind group
	//   - stagingData: the RGBA pixels
	//   - filter: the min and mag filter of the sampler
	//
	// Returns:
	//   - error: an error if a GPU object could not be created
	InitDiffuse(provider bind_group_provider.BindGroupProvider, stagingData common.TextureStagingData, filter wgpu.FilterMode) error

	// WriteBuffers writes uniform data. Writes targeting a missing buffer are skipped.
	//
	// Parameters:
	//   - writes: the staged writes
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and opens the visible render pass.
	//
	// Parameters:
	//   - clear: the clear color
	//
	// Returns:
	//   - error: the surface error when no texture could be acquired
	BeginFrame(clear wgpu.Color) error

	// BeginPickingFrame opens the offscreen picking pass, cleared to transparent black.
	//
	// Returns:
	//   - error: an error if the command encoder could not be created
	BeginPickingFrame() error

	// DrawCall records an indexed draw of the mesh in the open pass.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - mesh: the mesh provider
	//   - bindGroups: the providers bound to groups 0..n in order
	DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame closes the visible pass and submits it.
	EndFrame()

	// EndPickingFrame closes the picking pass, copies the pixel at (x, y) and waits for it.
	//
	// Parameters:
	//   - x: the pixel column
	//   - y: the pixel row
	//
	// Returns:
	//   - [4]byte: the RGBA bytes of the pixel
	//   - error: an error if the copy or the readback failed
	EndPickingFrame(x, y uint32) ([4]byte, error)

	// Present presents the acquired surface texture.
	Present()

	// Release frees every GPU object owned by the backend.
	Release()
}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	if err := w.initProgram(); err != nil {
		panic(err)
	}
	return w
}

// initProgram compiles the sprite program and creates the layouts every pipeline shares.
func (b *wgpuRendererBackendImpl) initProgram() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Sprite Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: shader.Source(),
		},
	})
	if err != nil {
		return eris.Wrap(err, "failed to compile sprite shader")
	}
	b.shaderModule = module

	descriptors := shader.BindGroupLayoutDescriptors()
	b.bindGroupLayouts = make([]*wgpu.BindGroupLayout, len(descriptors))
	for g := range descriptors {
		layout, err := b.device.CreateBindGroupLayout(&descriptors[g])
		if err != nil {
			return eris.Wrapf(err, "failed to create bind group layout for group %d", g)
		}
		b.bindGroupLayouts[g] = layout
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Sprite Pipeline Layout",
		BindGroupLayouts: b.bindGroupLayouts,
	})
	if err != nil {
		return eris.Wrap(err, "failed to create pipeline layout")
	}
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	b.width, b.height = uint32(width), uint32(height)

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       b.width,
		Height:      b.height,
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		b.msaaTextureView = b.mustCreateTarget("MSAA Texture", *b.surfaceFormat, count, wgpu.TextureUsageRenderAttachment)
	}
	b.depthTextureView = b.mustCreateTarget("Depth Texture", wgpu.TextureFormatDepth24Plus, count, wgpu.TextureUsageRenderAttachment)

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	pickingTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Picking Texture",
		Size:          wgpu.Extent3D{Width: b.width, Height: b.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		panic(err)
	}
	b.pickingTexture = pickingTexture
	b.pickingView, err = pickingTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	b.pickingDepthView = b.mustCreateTarget("Picking Depth Texture", wgpu.TextureFormatDepth24Plus, 1, wgpu.TextureUsageRenderAttachment)
	b.pickingPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.pickingView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.pickingDepthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if b.pickingReadback == nil {
		b.pickingReadback, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Picking Readback",
			Size:  pickingBytesPerRow,
			Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
		})
		if err != nil {
			panic(err)
		}
	}
}

func (b *wgpuRendererBackendImpl) mustCreateTarget(label string, format wgpu.TextureFormat, samples uint32, usage wgpu.TextureUsage) *wgpu.TextureView {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: b.width, Height: b.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		panic(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		panic(err)
	}
	return view
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	for _, v := range []*wgpu.TextureView{b.msaaTextureView, b.depthTextureView, b.pickingView, b.pickingDepthView} {
		if v != nil {
			v.Release()
		}
	}
	if b.pickingTexture != nil {
		b.pickingTexture.Release()
	}
	b.msaaTextureView, b.depthTextureView, b.pickingView, b.pickingDepthView, b.pickingTexture = nil, nil, nil, nil, nil
}

func (b *wgpuRendererBackendImpl) Size() (uint32, uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	format := wgpu.TextureFormatRGBA8Unorm
	samples := uint32(1)
	if p.Target() == pipeline.TargetSurface {
		format = *b.surfaceFormat
		samples = uint32(b.sampleCount)
	}

	target := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	depthCompare := wgpu.CompareFunctionLessEqual
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     b.shaderModule,
			EntryPoint: shader.VertexEntryPoint,
			Buffers:    []wgpu.VertexBufferLayout{shader.VertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     b.shaderModule,
			EntryPoint: p.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return eris.Wrapf(err, "failed to create pipeline %s", p.PipelineKey())
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteMesh(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		if provider.VertexBuffer() == nil || provider.VertexCapacity() < uint64(len(vertexData)) {
			buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: provider.Label() + " Vertex Buffer",
				Size:  uint64(len(vertexData)),
				Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return eris.Wrapf(err, "failed to create vertex buffer for %s", provider.Label())
			}
			provider.SetVertexBuffer(buf, uint64(len(vertexData)))
		}
		b.queue.WriteBuffer(provider.VertexBuffer(), 0, vertexData)
	}

	if len(indexData) > 0 {
		if provider.IndexBuffer() == nil || provider.IndexCapacity() < uint64(len(indexData)) {
			buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: provider.Label() + " Index Buffer",
				Size:  uint64(len(indexData)),
				Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return eris.Wrapf(err, "failed to create index buffer for %s", provider.Label())
			}
			provider.SetIndexBuffer(buf, uint64(len(indexData)))
		}
		b.queue.WriteBuffer(provider.IndexBuffer(), 0, indexData)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) InitUniform(provider bind_group_provider.BindGroupProvider, group int, size uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Uniform Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return eris.Wrapf(err, "failed to create uniform buffer for %s", provider.Label())
	}
	provider.SetBuffer(0, buf)

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: b.bindGroupLayouts[group],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return eris.Wrapf(err, "failed to create bind group for %s", provider.Label())
	}
	provider.SetBindGroup(bg)
	return nil
}

func (b *wgpuRendererBackendImpl) InitDiffuse(provider bind_group_provider.BindGroupProvider, stagingData common.TextureStagingData, filter wgpu.FilterMode) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if stagingData.Width == 0 || stagingData.Height == 0 {
		return eris.Errorf("texture %s has no pixels", provider.Label())
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     provider.Label() + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return eris.Wrapf(err, "failed to create texture %s", provider.Label())
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return eris.Wrapf(err, "failed to create texture view %s", provider.Label())
	}
	provider.SetTexture(0, tex, view)

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filter,
		MinFilter:     filter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return eris.Wrapf(err, "failed to create sampler %s", provider.Label())
	}
	provider.SetSampler(1, samp)

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: b.bindGroupLayouts[shader.GroupDiffuse],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: samp},
		},
	})
	if err != nil {
		return eris.Wrapf(err, "failed to create bind group %s", provider.Label())
	}
	provider.SetBindGroup(bg)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame(clear wgpu.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return eris.New("previous frame surface not yet presented")
	}
	if b.renderPassDescriptor == nil {
		return eris.New("surface not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.renderPassDescriptor.ColorAttachments[0].ClearValue = clear
	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) BeginPickingFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pickingPassDescriptor == nil {
		return eris.New("surface not configured")
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.pickingPassDescriptor)
	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.SetPipeline(p.RenderPipeline())
	for i, bg := range bindGroups {
		b.framePass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}

	b.framePass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(mesh.IndexCount(), 1, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) EndPickingFrame(x, y uint32) ([4]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out [4]byte
	b.framePass.End()
	encoder := b.frameEncoder
	b.frameEncoder, b.framePass = nil, nil
	defer encoder.Release()

	err := encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  b.pickingTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: x, Y: y},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  pickingBytesPerRow,
				RowsPerImage: 1,
			},
			Buffer: b.pickingReadback,
		},
		&wgpu.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return out, eris.Wrap(err, "failed to copy picking pixel")
	}

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return out, eris.Wrap(err, "failed to finish picking pass")
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	mapped := false
	if err := b.pickingReadback.MapAsync(wgpu.MapModeRead, 0, pickingBytesPerRow, func(s wgpu.BufferMapAsyncStatus) {
		mapped = s == wgpu.BufferMapAsyncStatusSuccess
	}); err != nil {
		return out, eris.Wrap(err, "failed to map picking readback")
	}
	b.device.Poll(true, nil)
	if !mapped {
		return out, eris.New("picking readback could not be mapped")
	}

	copy(out[:], b.pickingReadback.GetMappedRange(0, 4))
	b.pickingReadback.Unmap()
	return out, nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseTargets()
	if b.pickingReadback != nil {
		b.pickingReadback.Release()
		b.pickingReadback = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
	}
	for _, l := range b.bindGroupLayouts {
		l.Release()
	}
	if b.shaderModule != nil {
		b.shaderModule.Release()
	}
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
