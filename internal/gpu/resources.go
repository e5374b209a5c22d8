package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tilemap"
	"github.com/gogpu/tilemap/mesh"
)

// createAndUploadBuffer creates a GPU buffer and uploads data.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// ViewResources is the per-pipeline view uniform and its bind group
// (group 0). Each pipeline gets its own so the bind group always matches
// the layout it was created against.
type ViewResources struct {
	buf       hal.Buffer
	bindGroup hal.BindGroup
}

// NewViewResources creates the view uniform buffer and bind group.
func NewViewResources(device hal.Device, queue hal.Queue, p *Pipeline, viewProj [16]float32) (*ViewResources, error) {
	buf, err := createAndUploadBuffer(device, queue, "tilemap_view_uniform",
		makeViewUniform(viewProj), gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "tilemap_view_bind",
		Layout: p.viewLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: ViewUniformSize,
			}},
		},
	})
	if err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("create view bind group: %w", err)
	}
	return &ViewResources{buf: buf, bindGroup: bindGroup}, nil
}

// Update rewrites the view-projection matrix in place.
func (v *ViewResources) Update(queue hal.Queue, viewProj [16]float32) {
	queue.WriteBuffer(v.buf, 0, makeViewUniform(viewProj))
}

// Destroy releases the bind group and buffer.
func (v *ViewResources) Destroy(device hal.Device) {
	if v == nil {
		return
	}
	if v.bindGroup != nil {
		device.DestroyBindGroup(v.bindGroup)
		v.bindGroup = nil
	}
	if v.buf != nil {
		device.DestroyBuffer(v.buf)
		v.buf = nil
	}
}

// MapResources is the per-map GPU state: the tilemap uniform, the sprite
// rect table for ModeDynamic, and the group 1 bind group tying them to
// the atlas texture and sampler.
type MapResources struct {
	uniformBuf hal.Buffer
	rectBuf    hal.Buffer
	bindGroup  hal.BindGroup
}

// NewMapResources uploads the map uniform and, for ModeDynamic, the rect
// table, then builds the bind group against tex.
func NewMapResources(device hal.Device, queue hal.Queue, p *Pipeline, label string, tex *AtlasTexture,
	transform [16]float32, tileSize, textureSize tilemap.Vec2, rectData []byte) (*MapResources, error) {

	m := &MapResources{}
	uniformBuf, err := createAndUploadBuffer(device, queue, label+"_uniform",
		makeTilemapUniform(transform, tileSize, textureSize),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	m.uniformBuf = uniformBuf

	entries := []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.BufferBinding{
			Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: TilemapUniformSize,
		}},
		{Binding: 1, Resource: gputypes.TextureViewBinding{
			TextureView: tex.view.NativeHandle(),
		}},
		{Binding: 2, Resource: gputypes.SamplerBinding{
			Sampler: p.sampler.NativeHandle(),
		}},
	}

	if p.mode == mesh.ModeDynamic {
		if len(rectData) == 0 {
			// arrayLength in the shader must never be zero.
			rectData = make([]byte, mesh.RectStride)
		}
		rectBuf, err := createAndUploadBuffer(device, queue, label+"_rects",
			rectData, gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
		if err != nil {
			m.Destroy(device)
			return nil, err
		}
		m.rectBuf = rectBuf
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: 3, Resource: gputypes.BufferBinding{
				Buffer: rectBuf.NativeHandle(), Offset: 0, Size: uint64(len(rectData)),
			},
		})
	}

	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   label + "_bind",
		Layout:  p.mapLayout,
		Entries: entries,
	})
	if err != nil {
		m.Destroy(device)
		return nil, fmt.Errorf("create map bind group: %w", err)
	}
	m.bindGroup = bindGroup
	return m, nil
}

// UpdateUniform rewrites the map uniform in place. Called when the map
// transform changes between frames.
func (m *MapResources) UpdateUniform(queue hal.Queue, transform [16]float32, tileSize, textureSize tilemap.Vec2) {
	queue.WriteBuffer(m.uniformBuf, 0, makeTilemapUniform(transform, tileSize, textureSize))
}

// Destroy releases all map resources. Safe on partially built resources.
func (m *MapResources) Destroy(device hal.Device) {
	if m == nil {
		return
	}
	if m.bindGroup != nil {
		device.DestroyBindGroup(m.bindGroup)
		m.bindGroup = nil
	}
	if m.rectBuf != nil {
		device.DestroyBuffer(m.rectBuf)
		m.rectBuf = nil
	}
	if m.uniformBuf != nil {
		device.DestroyBuffer(m.uniformBuf)
		m.uniformBuf = nil
	}
}

// ChunkResources is the uploaded form of one chunk mesh: vertex and index
// buffers, and for ModeDynamic the TileData storage buffer with its
// group 2 bind group.
type ChunkResources struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	tileBuf    hal.Buffer
	bindGroup  hal.BindGroup
	indexCount uint32
}

// IndexCount returns the number of indices the chunk draws.
func (c *ChunkResources) IndexCount() uint32 { return c.indexCount }

// NewChunkResources uploads a non-empty chunk mesh. Empty meshes must be
// handled by the caller by releasing the chunk's resources instead.
func NewChunkResources(device hal.Device, queue hal.Queue, p *Pipeline, m *mesh.ChunkMesh) (*ChunkResources, error) {
	if m.IsEmpty() {
		return nil, fmt.Errorf("chunk mesh %v is empty", m.Coord)
	}
	label := fmt.Sprintf("tilemap_chunk_%d_%d_%d", m.Coord.X, m.Coord.Y, m.Coord.Layer)

	c := &ChunkResources{indexCount: m.IndexCount}
	vertBuf, err := createAndUploadBuffer(device, queue, label+"_verts",
		m.Vertices, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	c.vertBuf = vertBuf

	idxBuf, err := createAndUploadBuffer(device, queue, label+"_indices",
		m.Indices, gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		c.Destroy(device)
		return nil, err
	}
	c.idxBuf = idxBuf

	if p.mode == mesh.ModeDynamic {
		tileBuf, err := createAndUploadBuffer(device, queue, label+"_tiles",
			m.Tiles, gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
		if err != nil {
			c.Destroy(device)
			return nil, err
		}
		c.tileBuf = tileBuf

		bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  label + "_bind",
			Layout: p.chunkLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: tileBuf.NativeHandle(), Offset: 0, Size: uint64(len(m.Tiles)),
				}},
			},
		})
		if err != nil {
			c.Destroy(device)
			return nil, fmt.Errorf("create chunk bind group: %w", err)
		}
		c.bindGroup = bindGroup
	}

	return c, nil
}

// Destroy releases all chunk resources. Safe on partially built resources.
func (c *ChunkResources) Destroy(device hal.Device) {
	if c == nil {
		return
	}
	if c.bindGroup != nil {
		device.DestroyBindGroup(c.bindGroup)
		c.bindGroup = nil
	}
	if c.tileBuf != nil {
		device.DestroyBuffer(c.tileBuf)
		c.tileBuf = nil
	}
	if c.idxBuf != nil {
		device.DestroyBuffer(c.idxBuf)
		c.idxBuf = nil
	}
	if c.vertBuf != nil {
		device.DestroyBuffer(c.vertBuf)
		c.vertBuf = nil
	}
	c.indexCount = 0
}
