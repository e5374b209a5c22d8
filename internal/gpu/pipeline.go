package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tilemap/mesh"
)

// Config selects how a tilemap render pipeline is built.
type Config struct {
	// Mode picks the shader and vertex layout. ModeStatic bakes UVs and
	// colors into vertices; ModeDynamic reads them from storage buffers.
	Mode mesh.Mode

	// TargetFormat is the color attachment format. Zero means BGRA8Unorm.
	TargetFormat gputypes.TextureFormat

	// SampleCount is the MSAA sample count. Zero means 1.
	SampleCount uint32

	// UseSPIRV pre-translates WGSL through naga for backends that consume
	// SPIR-V directly.
	UseSPIRV bool
}

// Pipeline is one compiled tilemap render pipeline with its bind group
// layouts and the shared atlas sampler.
//
// Bind group slots:
//
//	group 0: view uniform (view_proj mat4)
//	group 1: map uniform + atlas texture + sampler, and for ModeDynamic
//	         the sprite rect table at binding 3
//	group 2: per-chunk TileData storage (ModeDynamic only)
type Pipeline struct {
	device hal.Device
	mode   mesh.Mode

	shader      hal.ShaderModule
	viewLayout  hal.BindGroupLayout
	mapLayout   hal.BindGroupLayout
	chunkLayout hal.BindGroupLayout
	pipeLayout  hal.PipelineLayout
	sampler     hal.Sampler
	pipeline    hal.RenderPipeline
}

// NewPipeline compiles the shader for cfg.Mode and creates the render
// pipeline with premultiplied alpha blending, triangle list topology and
// no culling.
func NewPipeline(device hal.Device, cfg Config) (*Pipeline, error) {
	p := &Pipeline{device: device, mode: cfg.Mode}
	if err := p.create(cfg); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// Mode returns the mode the pipeline was built for.
func (p *Pipeline) Mode() mesh.Mode { return p.mode }

func (p *Pipeline) create(cfg Config) error {
	format := cfg.TargetFormat
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	sampleCount := cfg.SampleCount
	if sampleCount == 0 {
		sampleCount = 1
	}

	name := "tilemap_" + p.mode.String()
	source := StaticShaderSource()
	if p.mode == mesh.ModeDynamic {
		source = DynamicShaderSource()
	}

	shader, err := createShaderModule(p.device, name+"_shader", source, cfg.UseSPIRV)
	if err != nil {
		return fmt.Errorf("compile %s shader: %w", name, err)
	}
	p.shader = shader

	viewLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: name + "_view_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create %s view layout: %w", name, err)
	}
	p.viewLayout = viewLayout

	mapEntries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    2,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
	if p.mode == mesh.ModeDynamic {
		mapEntries = append(mapEntries, gputypes.BindGroupLayoutEntry{
			Binding:    3,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		})
	}
	mapLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   name + "_map_layout",
		Entries: mapEntries,
	})
	if err != nil {
		return fmt.Errorf("create %s map layout: %w", name, err)
	}
	p.mapLayout = mapLayout

	groupLayouts := []hal.BindGroupLayout{p.viewLayout, p.mapLayout}
	if p.mode == mesh.ModeDynamic {
		chunkLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: name + "_chunk_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: gputypes.ShaderStageVertex,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("create %s chunk layout: %w", name, err)
		}
		p.chunkLayout = chunkLayout
		groupLayouts = append(groupLayouts, p.chunkLayout)
	}

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            name + "_pipe_layout",
		BindGroupLayouts: groupLayouts,
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline layout: %w", name, err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        name + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create %s sampler: %w", name, err)
	}
	p.sampler = sampler

	buffers := staticVertexLayout()
	if p.mode == mesh.ModeDynamic {
		buffers = dynamicVertexLayout()
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  name + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline: %w", name, err)
	}
	p.pipeline = pipeline

	return nil
}

// Destroy releases pipeline resources in reverse creation order. Safe to
// call more than once or on a partially constructed pipeline.
func (p *Pipeline) Destroy() {
	if p == nil || p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.chunkLayout != nil {
		p.device.DestroyBindGroupLayout(p.chunkLayout)
		p.chunkLayout = nil
	}
	if p.mapLayout != nil {
		p.device.DestroyBindGroupLayout(p.mapLayout)
		p.mapLayout = nil
	}
	if p.viewLayout != nil {
		p.device.DestroyBindGroupLayout(p.viewLayout)
		p.viewLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// Bind sets the pipeline and the shared view bind group. Called once per
// pass per mode before any map or chunk state.
func (p *Pipeline) Bind(rp hal.RenderPassEncoder, view *ViewResources) {
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, view.bindGroup, nil)
}

// BindMap sets the per-map bind group: uniform, atlas texture, sampler
// and for ModeDynamic the sprite rect table.
func (p *Pipeline) BindMap(rp hal.RenderPassEncoder, m *MapResources) {
	rp.SetBindGroup(1, m.bindGroup, nil)
}

// DrawChunk issues the indexed draw for one chunk mesh. Empty chunks must
// be filtered out by the caller.
func (p *Pipeline) DrawChunk(rp hal.RenderPassEncoder, c *ChunkResources) {
	if p.mode == mesh.ModeDynamic {
		rp.SetBindGroup(2, c.bindGroup, nil)
	}
	rp.SetVertexBuffer(0, c.vertBuf, 0)
	rp.SetIndexBuffer(c.idxBuf, gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(c.indexCount, 1, 0, 0, 0)
}

func staticVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: mesh.StaticVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

func dynamicVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: mesh.DynamicVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}
