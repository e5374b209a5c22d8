// Package tilemap provides a sparse, chunked 2D tile grid for Go.
//
// # Overview
//
// tilemap stores tiles in a sparse 3-D-indexed grid (x, y, layer) that is
// partitioned into fixed-size square chunks. Chunks double as GPU upload
// units: every mutation marks the owning chunk dirty, and once per frame
// the render integration (package render) drains the dirty set, rebuilds
// the geometry of changed chunks, and issues one draw per non-empty chunk.
//
// # Quick Start
//
//	import "github.com/gogpu/tilemap"
//
//	// Create a map (chunk size defaults to 64x64 tiles)
//	m := tilemap.New()
//
//	// Place tiles; negative coordinates are fine
//	m.SetTile(tilemap.IV3(0, 0, 0), tilemap.NewTile(3))
//	m.SetTile(tilemap.IV3(-1, -1, 0), tilemap.NewTile(7))
//
//	// Per frame: which chunks changed?
//	for _, coord := range m.DrainDirty() {
//	    // rebuild geometry for coord (see package mesh)
//	    _ = coord
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Map, Tile, Chunk, coordinates (this package)
//   - mesh: chunk geometry synthesis (CPU-baked or GPU-resident UVs)
//   - atlas: texture atlas layouts (rect tables, grid slicing, packing)
//   - render: per-frame GPU driver built on gogpu/wgpu
//
// # Coordinate System
//
// Tile coordinates are integers with Y increasing upward. A tile at
// (x, y, layer) lives in chunk (floor(x/size), floor(y/size), layer);
// the layer passes through unchanged and controls draw order, not depth.
// Division is Euclidean, so negative coordinates map into well-defined
// chunks without branching on sign.
package tilemap

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
