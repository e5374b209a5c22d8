package tilemap

import "math/bits"

// Chunk is a fixed-size square grid of tiles, stored dense with an
// occupancy bitmap so empty and zero-valued tiles stay distinguishable.
// All mutation goes through the owning Map, which marks the chunk dirty
// on every write; Chunk itself only exposes reads.
//
// The bitmap doubles as the sparse iterator: ForEach walks set bits with
// bits.TrailingZeros64 instead of scanning all size*size slots, so mesh
// synthesis cost tracks occupancy, not chunk area.
type Chunk struct {
	size  int32
	tiles []Tile
	occ   []uint64 // one bit per slot, row-major, bit i = slot i
	count int      // occupied slots
}

// newChunk returns an empty chunk. The caller (the Map's arena) owns it.
func newChunk(size int32) Chunk {
	slots := int(size) * int(size)
	return Chunk{
		size:  size,
		tiles: make([]Tile, slots),
		occ:   make([]uint64, (slots+63)/64),
	}
}

// Size returns the chunk's edge length in tiles.
func (c *Chunk) Size() int32 { return c.size }

// Len returns the number of occupied slots.
func (c *Chunk) Len() int { return c.count }

// IsEmpty reports whether no slot is occupied.
func (c *Chunk) IsEmpty() bool { return c.count == 0 }

// TileAt returns the tile at the local position, if the slot is occupied.
// Positions outside [0, Size) return false.
func (c *Chunk) TileAt(local IVec2) (Tile, bool) {
	if local.X < 0 || local.Y < 0 || local.X >= c.size || local.Y >= c.size {
		return Tile{}, false
	}
	i := rowMajorIndex(local, c.size)
	if c.occ[i>>6]&(1<<(i&63)) == 0 {
		return Tile{}, false
	}
	return c.tiles[i], true
}

// ForEach calls fn for every occupied slot in row-major order (ascending
// Y, then ascending X within a row).
func (c *Chunk) ForEach(fn func(local IVec2, t Tile)) {
	for w, word := range c.occ {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			word &= word - 1 // clear lowest set bit
			i := w<<6 + b
			fn(rowMajorPos(i, c.size), c.tiles[i])
		}
	}
}

// set writes a tile and reports whether the slot was already occupied.
func (c *Chunk) set(local IVec2, t Tile) (wasOccupied bool) {
	i := rowMajorIndex(local, c.size)
	mask := uint64(1) << (i & 63)
	wasOccupied = c.occ[i>>6]&mask != 0
	c.occ[i>>6] |= mask
	c.tiles[i] = t
	if !wasOccupied {
		c.count++
	}
	return wasOccupied
}

// remove clears a slot and reports whether it was occupied.
func (c *Chunk) remove(local IVec2) (wasOccupied bool) {
	i := rowMajorIndex(local, c.size)
	mask := uint64(1) << (i & 63)
	wasOccupied = c.occ[i>>6]&mask != 0
	if wasOccupied {
		c.occ[i>>6] &^= mask
		c.tiles[i] = Tile{}
		c.count--
	}
	return wasOccupied
}

// clear empties every slot and returns how many were occupied.
func (c *Chunk) clear() int {
	removed := c.count
	if removed == 0 {
		return 0
	}
	for i := range c.occ {
		c.occ[i] = 0
	}
	for i := range c.tiles {
		c.tiles[i] = Tile{}
	}
	c.count = 0
	return removed
}
