package mesh

import (
	"math"

	"github.com/gogpu/tilemap"
	"github.com/gogpu/tilemap/atlas"
)

// Synthesizer builds chunk meshes. The same instance can build any
// number of chunks; Build does not retain state between calls, so one
// synthesizer may serve several workers concurrently as long as its
// fields are not mutated mid-build.
type Synthesizer struct {
	// Mode selects the vertex layout and UV strategy.
	Mode Mode

	// TileSize is the world-unit extent of one tile quad.
	TileSize tilemap.Vec2

	// Layout resolves sprite indices to texel rectangles.
	Layout *atlas.Layout

	// TextureSize overrides Layout.TextureSize for UV normalization
	// when non-zero. The renderer sets it from the texture actually
	// bound, which wins over whatever the layout was built against.
	TextureSize tilemap.Vec2
}

// Build synthesizes the mesh for one chunk.
//
// Occupied slots are visited in row-major order, each emitting one
// quad at (chunk_origin + local) * TileSize with the winding described
// in the package comment. A nil or empty chunk yields a mesh with zero
// geometry. Out-of-range sprite indices clamp to the last layout entry
// with a logged warning; a malformed tile must not take down the frame.
func (s *Synthesizer) Build(coord tilemap.ChunkCoord, chunk *tilemap.Chunk) ChunkMesh {
	m := ChunkMesh{Coord: coord}

	if chunk == nil {
		return m
	}

	size := chunk.Size()
	origin := coord.Origin(size)

	halfW := float32(size) * s.TileSize.X / 2
	halfH := float32(size) * s.TileSize.Y / 2
	m.Center = tilemap.V2(
		float32(origin.X)*s.TileSize.X+halfW,
		float32(origin.Y)*s.TileSize.Y+halfH,
	)
	m.Radius = float32(math.Hypot(float64(halfW), float64(halfH)))

	n := chunk.Len()
	if n == 0 {
		return m
	}

	stride := StaticVertexStride
	if s.Mode == ModeDynamic {
		stride = DynamicVertexStride
		m.Tiles = make([]byte, n*TileDataStride)
	}
	m.Vertices = make([]byte, n*VerticesPerTile*stride)
	m.Indices = make([]byte, n*IndicesPerTile*IndexStride)

	quad := 0
	chunk.ForEach(func(local tilemap.IVec2, t tilemap.Tile) {
		x0 := float32(origin.X+local.X) * s.TileSize.X
		y0 := float32(origin.Y+local.Y) * s.TileSize.Y
		x1 := x0 + s.TileSize.X
		y1 := y0 + s.TileSize.Y

		base := uint32(quad * VerticesPerTile)
		vOff := quad * VerticesPerTile * stride

		// Corner order: bottom-left, top-left, top-right, bottom-right.
		if s.Mode == ModeDynamic {
			writeDynamicVertex(m.Vertices[vOff:], x0, y0)
			writeDynamicVertex(m.Vertices[vOff+stride:], x0, y1)
			writeDynamicVertex(m.Vertices[vOff+2*stride:], x1, y1)
			writeDynamicVertex(m.Vertices[vOff+3*stride:], x1, y0)

			r, g, b, a := t.Color.Floats()
			writeTileData(m.Tiles[quad*TileDataStride:], TileData{
				Sprite: s.clampSprite(t.Sprite),
				Flags:  uint32(t.Flags),
				ColorR: r,
				ColorG: g,
				ColorB: b,
				ColorA: a,
			})
		} else {
			uv := s.cornerUVs(t)
			r, g, b, a := t.Color.Floats()
			writeStaticVertex(m.Vertices[vOff:], x0, y0, uv[0].X, uv[0].Y, r, g, b, a)
			writeStaticVertex(m.Vertices[vOff+stride:], x0, y1, uv[1].X, uv[1].Y, r, g, b, a)
			writeStaticVertex(m.Vertices[vOff+2*stride:], x1, y1, uv[2].X, uv[2].Y, r, g, b, a)
			writeStaticVertex(m.Vertices[vOff+3*stride:], x1, y0, uv[3].X, uv[3].Y, r, g, b, a)
		}

		writeQuadIndices(m.Indices[quad*IndicesPerTile*IndexStride:], base)
		quad++
	})

	m.VertexCount = uint32(quad * VerticesPerTile)
	m.IndexCount = uint32(quad * IndicesPerTile)
	return m
}

// cornerUVs computes normalized corner UVs for a tile in winding order
// (bottom-left, top-left, top-right, bottom-right). Flips swap the
// sampled edge pairs before corners are assigned, so vertex positions
// and triangle facing never change.
func (s *Synthesizer) cornerUVs(t tilemap.Tile) [4]tilemap.Vec2 {
	rect := s.spriteRect(t.Sprite)
	tex := s.textureSize()

	// Half-texel inset keeps the sampler from bleeding neighboring
	// atlas entries.
	u0 := (rect.Begin.X + 0.5) / tex.X
	v0 := (rect.Begin.Y + 0.5) / tex.Y
	u1 := (rect.End.X - 0.5) / tex.X
	v1 := (rect.End.Y - 0.5) / tex.Y

	if t.Flags&tilemap.FlipX != 0 {
		u0, u1 = u1, u0
	}
	if t.Flags&tilemap.FlipY != 0 {
		v0, v1 = v1, v0
	}

	// Texel V grows downward while map Y grows upward: the quad's
	// bottom edge samples the rect's bottom row (v1).
	return [4]tilemap.Vec2{
		{X: u0, Y: v1}, // bottom-left
		{X: u0, Y: v0}, // top-left
		{X: u1, Y: v0}, // top-right
		{X: u1, Y: v1}, // bottom-right
	}
}

// spriteRect resolves a sprite index against the layout, clamping
// out-of-range indices to the last entry.
func (s *Synthesizer) spriteRect(sprite uint32) atlas.Rect {
	if s.Layout == nil || s.Layout.Len() == 0 {
		return atlas.Rect{}
	}
	idx := int(sprite)
	if idx >= s.Layout.Len() {
		tilemap.Logger().Warn("tilemap: sprite index out of range, clamping",
			"sprite", sprite, "sprites", s.Layout.Len())
		idx = s.Layout.Len() - 1
	}
	r, _ := s.Layout.At(idx)
	return r
}

// clampSprite bounds a sprite index for the dynamic tile table. The
// shader guards again, but clamping here keeps the two modes in parity
// and surfaces the diagnostic on the CPU side.
func (s *Synthesizer) clampSprite(sprite uint32) uint32 {
	if s.Layout == nil || s.Layout.Len() == 0 {
		return 0
	}
	if int(sprite) >= s.Layout.Len() {
		tilemap.Logger().Warn("tilemap: sprite index out of range, clamping",
			"sprite", sprite, "sprites", s.Layout.Len())
		return uint32(s.Layout.Len() - 1)
	}
	return sprite
}

// textureSize returns the dimensions UVs normalize against.
func (s *Synthesizer) textureSize() tilemap.Vec2 {
	if s.TextureSize.X > 0 && s.TextureSize.Y > 0 {
		return s.TextureSize
	}
	if s.Layout != nil && s.Layout.TextureSize.X > 0 && s.Layout.TextureSize.Y > 0 {
		return s.Layout.TextureSize
	}
	return tilemap.V2(1, 1)
}
