// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tilemap"
	"github.com/gogpu/tilemap/atlas"
	"github.com/gogpu/tilemap/internal/gpu"
	"github.com/gogpu/tilemap/internal/parallel"
	"github.com/gogpu/tilemap/mesh"
)

// MapConfig describes how one map is rendered.
type MapConfig struct {
	// Atlas resolves tile sprite indices to texel rectangles. May be
	// nil; every tile then samples the zero rect.
	Atlas *atlas.Layout

	// Texture is the sprite sheet. Any image kind is accepted and
	// normalized to tightly packed RGBA before upload. A map added
	// without one is synced but its draws are skipped.
	Texture image.Image

	// TileSize is the world-unit extent of one tile quad. Both axes
	// must be positive.
	TileSize tilemap.Vec2

	// Mode selects baked-UV or GPU-resolved meshes.
	Mode mesh.Mode

	// Transform places the map in world space. The zero value is
	// treated as the identity transform.
	Transform Transform

	// Z orders whole maps against each other; higher draws later.
	Z float32
}

// chunkState tracks one chunk's mesh and its GPU mirror. res is nil
// while the mesh is empty or the engine has no device.
type chunkState struct {
	mesh mesh.ChunkMesh
	res  *gpu.ChunkResources
}

func (st *chunkState) destroy(e *Engine) {
	if st.res != nil && e.dev != nil {
		st.res.Destroy(e.dev.HAL())
	}
	st.res = nil
}

// MapObject is one map registered with an Engine. It owns the map's
// synthesized meshes, its atlas texture, and its uniform state. All
// methods must run on the engine's goroutine.
type MapObject struct {
	eng   *Engine
	m     *tilemap.Map
	cfg   MapConfig
	synth mesh.Synthesizer

	epoch  uint64
	primed bool
	chunks map[tilemap.ChunkCoord]*chunkState

	tex      *gpu.AtlasTexture
	res      *gpu.MapResources
	rectData []byte
}

// pipelineSet pairs a pipeline with view resources built against its
// own group 0 layout, so bind groups always match the pipeline they
// are drawn with.
type pipelineSet struct {
	pipeline *gpu.Pipeline
	view     *gpu.ViewResources
}

// Engine renders tile maps. It synthesizes chunk meshes from dirty
// tile edits, mirrors them to GPU buffers, and records batched draws.
//
// An Engine and its objects are confined to a single goroutine; only
// mesh synthesis inside Sync fans out to workers. The zero Engine is
// not usable; construct with NewEngine.
type Engine struct {
	dev      *gpu.Device
	format   gputypes.TextureFormat
	samples  uint32
	useSPIRV bool

	pool *parallel.Pool
	maps []*MapObject

	pipelines map[mesh.Mode]*pipelineSet

	viewProj [16]float32
	haveCull bool
	cullC    tilemap.Vec2
	cullR    float32

	closed bool
}

// NewEngine builds a tile renderer against the host's device handle.
//
// Device resolution order: an explicit WithDevice pair wins; otherwise
// the handle is unwrapped when its concrete type exposes HalDevice and
// HalQueue; otherwise, with WithOwnedDevice, the engine opens its own
// device. A handle that resolves nowhere (NullDeviceHandle included)
// yields a deviceless engine that synthesizes and tracks meshes but
// never uploads or draws.
func NewEngine(handle DeviceHandle, opts ...Option) (*Engine, error) {
	var cfg engineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var dev *gpu.Device
	if cfg.halDevice != nil && cfg.halQueue != nil {
		dev = gpu.WrapDevice(cfg.halDevice, cfg.halQueue)
	} else {
		dev = unwrapHandle(handle)
		if dev == nil && cfg.ownDevice {
			var err error
			dev, err = gpu.NewDevice()
			if err != nil {
				return nil, fmt.Errorf("render: open device: %w", err)
			}
		}
	}

	format := cfg.format
	if format == gputypes.TextureFormatUndefined {
		format = surfaceFormat(handle)
	}

	return &Engine{
		dev:       dev,
		format:    format,
		samples:   cfg.sampleCount,
		useSPIRV:  cfg.useSPIRV,
		pool:      parallel.New(cfg.workers),
		pipelines: make(map[mesh.Mode]*pipelineSet),
		viewProj:  Identity().Mat4(),
	}, nil
}

// Device returns the engine's hal device and queue for hosts that want
// to share them, or ErrNoDevice for a deviceless engine.
func (e *Engine) Device() (hal.Device, hal.Queue, error) {
	if e.dev == nil {
		return nil, nil, ErrNoDevice
	}
	return e.dev.HAL(), e.dev.Queue(), nil
}

// ensurePipeline returns the pipeline set for mode, creating it on
// first use. Requires a device.
func (e *Engine) ensurePipeline(mode mesh.Mode) (*pipelineSet, error) {
	if ps, ok := e.pipelines[mode]; ok {
		return ps, nil
	}
	p, err := gpu.NewPipeline(e.dev.HAL(), gpu.Config{
		Mode:         mode,
		TargetFormat: e.format,
		SampleCount:  e.samples,
		UseSPIRV:     e.useSPIRV,
	})
	if err != nil {
		return nil, err
	}
	view, err := gpu.NewViewResources(e.dev.HAL(), e.dev.Queue(), p, e.viewProj)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	ps := &pipelineSet{pipeline: p, view: view}
	e.pipelines[mode] = ps
	return ps, nil
}

// Add registers a map for rendering and returns its object. When the
// engine has a device and cfg carries a texture, the atlas is uploaded
// and the map's GPU state is created; otherwise the map is tracked
// CPU-side only. Existing chunks are picked up by the next Sync.
func (e *Engine) Add(m *tilemap.Map, cfg MapConfig) (*MapObject, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}
	if m == nil {
		return nil, ErrNilMap
	}
	if cfg.TileSize.X <= 0 || cfg.TileSize.Y <= 0 {
		return nil, fmt.Errorf("render: tile size %gx%g must be positive",
			cfg.TileSize.X, cfg.TileSize.Y)
	}
	if cfg.Transform == (Transform{}) {
		cfg.Transform = Identity()
	}

	obj := &MapObject{
		eng:    e,
		m:      m,
		cfg:    cfg,
		epoch:  m.Epoch(),
		chunks: make(map[tilemap.ChunkCoord]*chunkState),
	}
	obj.synth = mesh.Synthesizer{
		Mode:     cfg.Mode,
		TileSize: cfg.TileSize,
		Layout:   cfg.Atlas,
	}
	if cfg.Atlas != nil {
		obj.synth.TextureSize = cfg.Atlas.TextureSize
	}

	if e.dev != nil && cfg.Texture != nil {
		if err := obj.createGPU(); err != nil {
			obj.release()
			return nil, err
		}
	}

	e.maps = append(e.maps, obj)
	return obj, nil
}

// createGPU uploads the atlas texture and builds the map's uniform and
// bind group. Requires a device and a texture in the config.
func (o *MapObject) createGPU() error {
	e := o.eng
	ps, err := e.ensurePipeline(o.cfg.Mode)
	if err != nil {
		return fmt.Errorf("render: create %s pipeline: %w", o.cfg.Mode, err)
	}
	tex, err := gpu.UploadAtlas(e.dev.HAL(), e.dev.Queue(), "tilemap_atlas",
		atlas.ToRGBA(o.cfg.Texture))
	if err != nil {
		return fmt.Errorf("render: upload atlas: %w", err)
	}
	o.tex = tex
	// The texture actually bound wins over the size the layout was
	// built against.
	o.synth.TextureSize = tilemap.V2(float32(tex.Width()), float32(tex.Height()))

	if o.cfg.Mode == mesh.ModeDynamic && o.cfg.Atlas != nil {
		o.rectData = mesh.PackRects(o.cfg.Atlas.Rects)
	}
	res, err := gpu.NewMapResources(e.dev.HAL(), e.dev.Queue(), ps.pipeline,
		"tilemap_map", o.tex, o.cfg.Transform.Mat4(), o.cfg.TileSize,
		o.synth.TextureSize, o.rectData)
	if err != nil {
		return fmt.Errorf("render: create map resources: %w", err)
	}
	o.res = res
	return nil
}

// Remove unregisters obj and releases its GPU resources. Removing an
// object twice is a no-op.
func (e *Engine) Remove(obj *MapObject) {
	if obj == nil {
		return
	}
	for i, o := range e.maps {
		if o == obj {
			e.maps = append(e.maps[:i], e.maps[i+1:]...)
			obj.release()
			return
		}
	}
}

// SetView sets the column-major view-projection matrix applied to all
// draws. Callers typically build it with Ortho composed with a camera
// transform.
func (e *Engine) SetView(viewProj [16]float32) {
	e.viewProj = viewProj
	if e.dev == nil {
		return
	}
	for _, ps := range e.pipelines {
		ps.view.Update(e.dev.Queue(), viewProj)
	}
}

// SetViewBounds enables chunk culling against a view circle centered
// at center and covering a size extent in world units, typically the
// camera position and the window size scaled by zoom.
func (e *Engine) SetViewBounds(center, size tilemap.Vec2) {
	e.haveCull = true
	e.cullC = center
	e.cullR = float32(math.Hypot(float64(size.X), float64(size.Y))) / 2
}

// DisableCulling turns chunk culling off; every synced chunk draws.
func (e *Engine) DisableCulling() {
	e.haveCull = false
}

// Sync drains dirty chunks from every registered map, rebuilds their
// meshes on the worker pool, and mirrors the results to GPU buffers.
// Call once per frame before Draw. Upload failures are logged and the
// affected chunk keeps its CPU mesh.
func (e *Engine) Sync() {
	if e.closed {
		return
	}
	for _, obj := range e.maps {
		e.syncMap(obj)
	}
}

func (e *Engine) syncMap(obj *MapObject) {
	if ep := obj.m.Epoch(); ep != obj.epoch {
		// The store was cleared; every held mesh is stale.
		obj.epoch = ep
		obj.releaseChunks()
		obj.primed = false
	}

	dirty := obj.m.DrainDirty()
	if !obj.primed {
		obj.primed = true
		dirty = obj.withExisting(dirty)
	}

	if len(dirty) > 0 {
		chunks := make([]*tilemap.Chunk, len(dirty))
		for i, cc := range dirty {
			chunks[i], _ = obj.m.Chunk(cc)
		}
		meshes := make([]mesh.ChunkMesh, len(dirty))
		synth := obj.synth
		e.pool.Run(len(dirty), func(i int) {
			meshes[i] = synth.Build(dirty[i], chunks[i])
		})
		for i, cc := range dirty {
			obj.applyMesh(cc, chunks[i] != nil, meshes[i])
		}
	}

	if obj.res != nil {
		obj.res.UpdateUniform(e.dev.Queue(), obj.cfg.Transform.Mat4(),
			obj.cfg.TileSize, obj.synth.TextureSize)
	}
}

// withExisting unions the drained coords with every chunk already in
// the store. Used on the first sync after Add so maps populated before
// registration are picked up even though their edits were never seen.
func (o *MapObject) withExisting(dirty []tilemap.ChunkCoord) []tilemap.ChunkCoord {
	seen := make(map[tilemap.ChunkCoord]struct{}, len(dirty))
	for _, cc := range dirty {
		seen[cc] = struct{}{}
	}
	o.m.ForEachChunk(func(cc tilemap.ChunkCoord, _ *tilemap.Chunk) {
		if _, ok := seen[cc]; !ok {
			dirty = append(dirty, cc)
		}
	})
	return dirty
}

// applyMesh installs one synthesis result. A chunk gone from the store
// drops its state; an empty mesh keeps the state but releases the GPU
// buffers; a non-empty mesh replaces them.
func (o *MapObject) applyMesh(coord tilemap.ChunkCoord, present bool, m mesh.ChunkMesh) {
	st, ok := o.chunks[coord]
	if !present {
		if ok {
			st.destroy(o.eng)
			delete(o.chunks, coord)
		}
		return
	}
	if !ok {
		st = &chunkState{}
		o.chunks[coord] = st
	}
	st.mesh = m
	st.destroy(o.eng)
	if m.IsEmpty() || o.res == nil {
		return
	}
	e := o.eng
	res, err := gpu.NewChunkResources(e.dev.HAL(), e.dev.Queue(),
		e.pipelines[o.cfg.Mode].pipeline, &st.mesh)
	if err != nil {
		tilemap.Logger().Warn("render: chunk upload failed",
			"chunk", coord, "err", err)
		return
	}
	st.res = res
}

// Draw records one draw per visible chunk into rp. Maps draw in
// ascending Z, chunks within a map in (Layer, Y, X) order. The
// pipeline rebinds only when the mode changes between consecutive
// maps; the map bind group rebinds per map.
func (e *Engine) Draw(rp RenderPass) {
	if e.closed || e.dev == nil || rp == nil {
		return
	}

	order := make([]*MapObject, len(e.maps))
	copy(order, e.maps)
	slices.SortStableFunc(order, func(a, b *MapObject) int {
		return cmp.Compare(a.cfg.Z, b.cfg.Z)
	})

	var bound *pipelineSet
	for _, obj := range order {
		if obj.res == nil || obj.tex == nil {
			continue
		}
		ps := e.pipelines[obj.cfg.Mode]
		mapped := false
		for _, cc := range obj.drawOrder() {
			st := obj.chunks[cc]
			if st.res == nil {
				continue
			}
			if e.haveCull && !e.chunkVisible(obj, st) {
				continue
			}
			if bound != ps {
				ps.pipeline.Bind(rp, ps.view)
				bound = ps
			}
			if !mapped {
				ps.pipeline.BindMap(rp, obj.res)
				mapped = true
			}
			ps.pipeline.DrawChunk(rp, st.res)
		}
	}
}

// drawOrder returns the object's chunk coords sorted by layer, then
// row, then column, so overlapping layers resolve back to front.
func (o *MapObject) drawOrder() []tilemap.ChunkCoord {
	coords := make([]tilemap.ChunkCoord, 0, len(o.chunks))
	for cc := range o.chunks {
		coords = append(coords, cc)
	}
	slices.SortFunc(coords, func(a, b tilemap.ChunkCoord) int {
		if a.Layer != b.Layer {
			return cmp.Compare(a.Layer, b.Layer)
		}
		if a.Y != b.Y {
			return cmp.Compare(a.Y, b.Y)
		}
		return cmp.Compare(a.X, b.X)
	})
	return coords
}

// chunkVisible tests the chunk's bounding circle, taken through the
// map transform, against the view circle.
func (e *Engine) chunkVisible(obj *MapObject, st *chunkState) bool {
	center := obj.cfg.Transform.Apply(st.mesh.Center)
	radius := st.mesh.Radius * obj.cfg.Transform.MaxScale()
	dx := center.X - e.cullC.X
	dy := center.Y - e.cullC.Y
	rr := radius + e.cullR
	return dx*dx+dy*dy < rr*rr
}

// Close releases every map, the pipelines, and the worker pool. An
// owned device is destroyed; a shared one is left alive. Close is
// idempotent; Add and Sync after it are no-ops or return
// ErrEngineClosed.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	for _, obj := range e.maps {
		obj.release()
	}
	e.maps = nil
	if e.dev != nil {
		for mode, ps := range e.pipelines {
			ps.view.Destroy(e.dev.HAL())
			ps.pipeline.Destroy()
			delete(e.pipelines, mode)
		}
	}
	e.pool.Close()
	if e.dev != nil {
		e.dev.Close()
		e.dev = nil
	}
}

// Map returns the underlying tile store.
func (o *MapObject) Map() *tilemap.Map { return o.m }

// Transform returns the map's current world transform.
func (o *MapObject) Transform() Transform { return o.cfg.Transform }

// SetTransform replaces the map's world transform. It takes effect at
// the next Sync, which rewrites the map uniform and re-evaluates
// culling. The zero value is treated as the identity transform.
func (o *MapObject) SetTransform(t Transform) {
	if t == (Transform{}) {
		t = Identity()
	}
	o.cfg.Transform = t
}

// Z returns the map's draw-order key.
func (o *MapObject) Z() float32 { return o.cfg.Z }

// SetZ changes the map's draw-order key; higher Z draws later.
func (o *MapObject) SetZ(z float32) { o.cfg.Z = z }

// Mode returns the map's mesh mode.
func (o *MapObject) Mode() mesh.Mode { return o.cfg.Mode }

// HasTexture reports whether the map has an uploaded sprite sheet.
// Maps without one are synced but never drawn.
func (o *MapObject) HasTexture() bool { return o.tex != nil }

// MeshCount returns the number of chunks the object tracks, including
// chunks whose current mesh is empty.
func (o *MapObject) MeshCount() int { return len(o.chunks) }

// Mesh returns the synthesized mesh for one chunk, if tracked.
func (o *MapObject) Mesh(coord tilemap.ChunkCoord) (mesh.ChunkMesh, bool) {
	st, ok := o.chunks[coord]
	if !ok {
		return mesh.ChunkMesh{}, false
	}
	return st.mesh, true
}

// ForEachMesh visits every tracked chunk mesh in draw order. The
// callback must not mutate the mesh or call back into the object.
func (o *MapObject) ForEachMesh(fn func(tilemap.ChunkCoord, *mesh.ChunkMesh)) {
	for _, cc := range o.drawOrder() {
		fn(cc, &o.chunks[cc].mesh)
	}
}

// releaseChunks drops every chunk state and its GPU buffers.
func (o *MapObject) releaseChunks() {
	for coord, st := range o.chunks {
		st.destroy(o.eng)
		delete(o.chunks, coord)
	}
}

// release frees everything the object holds. The object must already
// be off the engine's map list.
func (o *MapObject) release() {
	o.releaseChunks()
	if o.eng.dev != nil {
		if o.res != nil {
			o.res.Destroy(o.eng.dev.HAL())
		}
		if o.tex != nil {
			o.tex.Destroy(o.eng.dev.HAL())
		}
	}
	o.res = nil
	o.tex = nil
}
