package tilemap

// ChunkCoord identifies one chunk of a Map. X and Y are in chunk units;
// Layer is carried through unchanged from the tile coordinate's Z.
type ChunkCoord struct {
	X, Y, Layer int32
}

// Origin returns the tile coordinate of the chunk's bottom-left slot
// (local (0, 0)) for the given chunk size.
func (c ChunkCoord) Origin(size int32) IVec2 {
	return IVec2{X: c.X * size, Y: c.Y * size}
}

// ChunkCoordAt returns the coordinate of the chunk containing the tile at
// pos for the given chunk size. The division rounds toward negative
// infinity, so for size 16 the tile (-1, -1, 0) lands in chunk
// (-1, -1, 0) and (16, 0, 0) in chunk (1, 0, 0).
func ChunkCoordAt(pos IVec3, size int32) ChunkCoord {
	return ChunkCoord{
		X:     floorDiv(pos.X, size),
		Y:     floorDiv(pos.Y, size),
		Layer: pos.Z,
	}
}

// LocalAt returns the position of the tile at pos within its chunk, in
// [0, size) on both axes regardless of sign: for size 16 the tile
// (-1, -1, 0) is at local (15, 15).
func LocalAt(pos IVec3, size int32) IVec2 {
	return IVec2{
		X: floorMod(pos.X, size),
		Y: floorMod(pos.Y, size),
	}
}

// floorDiv returns a/b rounded toward negative infinity. For positive b
// this is Euclidean division, which keeps the chunk grid seamless across
// zero. Go's native / truncates toward zero and would map tiles -15..15
// all into chunk 0.
func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns the remainder matching floorDiv: always in [0, b) for
// positive b.
func floorMod(a, b int32) int32 {
	m := a % b
	if m != 0 && (a < 0) != (b < 0) {
		m += b
	}
	return m
}

// rowMajorIndex returns the dense slot index of a local position.
func rowMajorIndex(local IVec2, size int32) int {
	return int(local.Y)*int(size) + int(local.X)
}

// rowMajorPos is the inverse of rowMajorIndex.
func rowMajorPos(index int, size int32) IVec2 {
	y := index / int(size)
	return IVec2{X: int32(index - y*int(size)), Y: int32(y)}
}

// less orders chunk coordinates by (Layer, Y, X). DrainDirty and the draw
// pass both rely on this for deterministic ordering.
func (c ChunkCoord) less(o ChunkCoord) bool {
	if c.Layer != o.Layer {
		return c.Layer < o.Layer
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}
