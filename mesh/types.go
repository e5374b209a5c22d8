package mesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/tilemap/atlas"
)

// StaticVertexStride is the byte stride per vertex in static mode.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2)
//
// Total = 32 bytes per vertex. Must match VertexInput in tilemap.wgsl.
const StaticVertexStride = 32

// DynamicVertexStride is the byte stride per vertex in dynamic mode.
// Positions only; sprite rect, flip and color are resolved in the
// shader from the per-chunk tile table indexed by vertex_index / 4.
// Must match VertexInput in tilemap_dynamic.wgsl.
const DynamicVertexStride = 8

// TileDataStride is the byte stride of one tile table entry.
const TileDataStride = 32

// RectStride is the byte stride of one atlas rect table entry:
// begin (vec2<f32>) + end (vec2<f32>) in texel space.
const RectStride = 16

// IndexStride is the byte size of one index buffer entry (uint32).
const IndexStride = 4

// Quad expansion: 4 unique corners per tile, two triangles
// (0,1,2) and (0,2,3).
const (
	VerticesPerTile = 4
	IndicesPerTile  = 6
)

// TileData mirrors one element of the per-chunk tile table consumed by
// the dynamic shader. All fields use explicit padding for WGSL struct
// alignment. Must match TileData in tilemap_dynamic.wgsl.
type TileData struct {
	Sprite uint32 // Atlas rect table index
	Flags  uint32 // Flip bits (bit 0 horizontal, bit 1 vertical)
	Pad1   uint32 // Padding for vec4 alignment
	Pad2   uint32
	ColorR float32 // Tile tint, straight alpha
	ColorG float32
	ColorB float32
	ColorA float32
}

// writeStaticVertex packs one static-mode vertex into buf.
func writeStaticVertex(buf []byte, x, y, u, v, r, g, b, a float32) {
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], math.Float32bits(x))
	le.PutUint32(buf[4:8], math.Float32bits(y))
	le.PutUint32(buf[8:12], math.Float32bits(u))
	le.PutUint32(buf[12:16], math.Float32bits(v))
	le.PutUint32(buf[16:20], math.Float32bits(r))
	le.PutUint32(buf[20:24], math.Float32bits(g))
	le.PutUint32(buf[24:28], math.Float32bits(b))
	le.PutUint32(buf[28:32], math.Float32bits(a))
}

// writeDynamicVertex packs one dynamic-mode vertex (position only).
func writeDynamicVertex(buf []byte, x, y float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
}

// writeTileData packs one tile table entry into buf.
func writeTileData(buf []byte, d TileData) {
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], d.Sprite)
	le.PutUint32(buf[4:8], d.Flags)
	le.PutUint32(buf[8:12], d.Pad1)
	le.PutUint32(buf[12:16], d.Pad2)
	le.PutUint32(buf[16:20], math.Float32bits(d.ColorR))
	le.PutUint32(buf[20:24], math.Float32bits(d.ColorG))
	le.PutUint32(buf[24:28], math.Float32bits(d.ColorB))
	le.PutUint32(buf[28:32], math.Float32bits(d.ColorA))
}

// writeQuadIndices packs the two-triangle index pattern for one quad
// whose first corner sits at vertex base.
func writeQuadIndices(buf []byte, base uint32) {
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], base)
	le.PutUint32(buf[4:8], base+1)
	le.PutUint32(buf[8:12], base+2)
	le.PutUint32(buf[12:16], base)
	le.PutUint32(buf[16:20], base+2)
	le.PutUint32(buf[20:24], base+3)
}

// PackRects packs an atlas rect table for the dynamic shader's storage
// buffer. Each entry is {begin: vec2<f32>, end: vec2<f32>} in texel
// space, RectStride bytes. Must match SpriteRect in tilemap_dynamic.wgsl.
func PackRects(rects []atlas.Rect) []byte {
	le := binary.LittleEndian
	buf := make([]byte, len(rects)*RectStride)
	for i, r := range rects {
		off := i * RectStride
		le.PutUint32(buf[off:off+4], math.Float32bits(r.Begin.X))
		le.PutUint32(buf[off+4:off+8], math.Float32bits(r.Begin.Y))
		le.PutUint32(buf[off+8:off+12], math.Float32bits(r.End.X))
		le.PutUint32(buf[off+12:off+16], math.Float32bits(r.End.Y))
	}
	return buf
}
