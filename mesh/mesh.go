// Package mesh converts chunk tile data into GPU-ready quad geometry.
//
// A Synthesizer walks a chunk's occupied slots in row-major order and
// emits one textured quad per tile: 4 vertices and 6 indices, wound
// bottom-left, top-left, top-right, bottom-right so triangle facing is
// stable under sprite flips. Empty slots emit nothing; an empty chunk
// yields an empty mesh, which renders as a skipped draw rather than an
// error.
//
// Two modes trade CPU rebuild cost against GPU indirection. ModeStatic
// bakes atlas UVs and tint into the vertex buffer; ModeDynamic emits
// position-only vertices plus a per-chunk tile table the shader indexes
// by vertex_index / 4. Buffers are packed little-endian byte slices in
// the exact layouts the shaders declare.
package mesh

import "github.com/gogpu/tilemap"

// Mode selects how tile appearance reaches the GPU.
type Mode int

const (
	// ModeStatic bakes atlas UVs and color into the vertex buffer.
	// Rebuilds are pure CPU work; the shader only samples.
	ModeStatic Mode = iota

	// ModeDynamic emits position-only vertices and a per-chunk tile
	// table; the shader resolves sprite rect, flip and color. Cheaper
	// rebuilds when tiles restyle without moving.
	ModeDynamic
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ChunkMesh is the synthesized geometry for one chunk, packed in the
// byte layouts the GPU consumes directly.
type ChunkMesh struct {
	// Coord identifies the chunk this mesh was built from.
	Coord tilemap.ChunkCoord

	// Vertices is the packed vertex buffer: StaticVertexStride or
	// DynamicVertexStride per vertex according to the build mode.
	Vertices []byte

	// Indices is the packed uint32 index buffer, IndicesPerTile
	// entries per quad.
	Indices []byte

	// Tiles is the packed tile table (dynamic mode only, nil in
	// static mode), one TileData entry per quad in emission order.
	Tiles []byte

	// VertexCount and IndexCount describe the geometry extent.
	VertexCount uint32
	IndexCount  uint32

	// Center and Radius bound the full chunk extent in map-local
	// units, for visibility culling.
	Center tilemap.Vec2
	Radius float32
}

// IsEmpty reports whether the mesh carries no geometry.
func (m *ChunkMesh) IsEmpty() bool {
	return m.IndexCount == 0
}

// QuadCount returns the number of tile quads in the mesh.
func (m *ChunkMesh) QuadCount() int {
	return int(m.VertexCount) / VerticesPerTile
}
