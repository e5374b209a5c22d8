package tilemap

import "slices"

// DefaultChunkSize is the edge length, in tiles, of a chunk when no
// WithChunkSize option is given. 64x64 keeps chunk rebuilds cheap while
// holding the chunk count down on large maps.
const DefaultChunkSize = 64

// Map is a sparse, chunked tile grid. Tiles live in fixed-size square
// chunks that are created lazily on first write and addressed by
// ChunkCoord; every mutation marks the owning chunk dirty so the render
// integration can rebuild only what changed.
//
// Chunks are stored in an arena slice with a coordinate index on top,
// so synthesis can iterate chunks by index without pointer chasing.
// Once created, a chunk persists as an empty placeholder even when its
// last tile is removed; only Clear discards chunks.
//
// Map is not safe for concurrent use. Mutation is single-threaded:
// one writer mutates, one consumer drains the dirty set per frame
// (see package render).
type Map struct {
	size  int32
	arena []Chunk
	index map[ChunkCoord]int32
	dirty map[ChunkCoord]struct{}
	epoch uint64
	tiles int
}

// New creates an empty map. With no options, chunks are
// DefaultChunkSize x DefaultChunkSize tiles.
func New(opts ...Option) *Map {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Map{
		size:  cfg.chunkSize,
		index: make(map[ChunkCoord]int32, cfg.capacity),
		dirty: make(map[ChunkCoord]struct{}),
	}
}

// ChunkSize returns the edge length of this map's chunks in tiles.
func (m *Map) ChunkSize() int32 { return m.size }

// SetTile writes a tile, creating the owning chunk if needed, and marks
// that chunk dirty. The dirty mark is unconditional: writing a value
// equal to the current one still dirties the chunk (no tile comparison
// on the write path).
func (m *Map) SetTile(pos IVec3, t Tile) {
	cc := ChunkCoordAt(pos, m.size)
	idx := m.ensureChunk(cc)
	if !m.arena[idx].set(LocalAt(pos, m.size), t) {
		m.tiles++
	}
	m.markDirty(cc)
}

// RemoveTile clears the slot at pos and marks the owning chunk dirty.
// Like SetTile, the chunk is created if absent and the dirty mark is
// unconditional, so remove-after-set dirties the chunk exactly twice.
func (m *Map) RemoveTile(pos IVec3) {
	cc := ChunkCoordAt(pos, m.size)
	idx := m.ensureChunk(cc)
	if m.arena[idx].remove(LocalAt(pos, m.size)) {
		m.tiles--
	}
	m.markDirty(cc)
}

// Update is one entry of a SetTiles batch.
type Update struct {
	Pos    IVec3
	Tile   Tile
	Remove bool
}

// Set returns an Update that writes t at pos.
func Set(pos IVec3, t Tile) Update {
	return Update{Pos: pos, Tile: t}
}

// Remove returns an Update that clears the slot at pos.
func Remove(pos IVec3) Update {
	return Update{Pos: pos, Remove: true}
}

// SetTiles applies updates in order. The end state is identical to
// calling SetTile/RemoveTile once per entry: later entries win on
// duplicate positions. Batching only amortizes chunk lookups and
// dirty-set insertions, it does not defer anything.
func (m *Map) SetTiles(updates []Update) {
	lastIdx := int32(-1)
	var lastCC ChunkCoord
	for _, u := range updates {
		cc := ChunkCoordAt(u.Pos, m.size)
		idx := lastIdx
		if lastIdx < 0 || cc != lastCC {
			idx = m.ensureChunk(cc)
			m.markDirty(cc)
			lastIdx, lastCC = idx, cc
		}
		local := LocalAt(u.Pos, m.size)
		if u.Remove {
			if m.arena[idx].remove(local) {
				m.tiles--
			}
		} else {
			if !m.arena[idx].set(local, u.Tile) {
				m.tiles++
			}
		}
	}
}

// GetTile returns the tile at pos, if one is set.
func (m *Map) GetTile(pos IVec3) (Tile, bool) {
	idx, ok := m.index[ChunkCoordAt(pos, m.size)]
	if !ok {
		return Tile{}, false
	}
	return m.arena[idx].TileAt(LocalAt(pos, m.size))
}

// Clear removes every chunk and advances the map's epoch. It does not
// touch the dirty set: the render integration watches the epoch and
// despawns all derived meshes itself when it changes. A full clear
// invalidates everything, so enumerating chunks into the dirty set
// would only add work.
func (m *Map) Clear() {
	m.arena = nil
	clear(m.index)
	m.tiles = 0
	m.epoch++
}

// ClearLayer empties every chunk on the given layer and marks each one
// dirty. The chunks stay in the store as placeholders; their meshes
// rebuild empty on the next drain.
func (m *Map) ClearLayer(layer int32) {
	for cc, idx := range m.index {
		if cc.Layer != layer {
			continue
		}
		m.tiles -= m.arena[idx].clear()
		m.markDirty(cc)
	}
}

// DrainDirty returns the coordinates of chunks mutated since the last
// drain, sorted by (Layer, Y, X), and empties the dirty set. A second
// call with no mutation in between returns nil.
//
// One consumer per frame: concurrent drains would race over the set.
func (m *Map) DrainDirty() []ChunkCoord {
	if len(m.dirty) == 0 {
		return nil
	}
	out := make([]ChunkCoord, 0, len(m.dirty))
	for cc := range m.dirty {
		out = append(out, cc)
	}
	clear(m.dirty)
	slices.SortFunc(out, func(a, b ChunkCoord) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		default:
			return 0
		}
	})
	return out
}

// Chunk returns the chunk at coord for reading. The pointer is valid
// until the next mutating call on the Map: the arena backing array may
// move when a new chunk is created.
func (m *Map) Chunk(coord ChunkCoord) (*Chunk, bool) {
	idx, ok := m.index[coord]
	if !ok {
		return nil, false
	}
	return &m.arena[idx], true
}

// ForEachChunk calls fn for every chunk in the store, including empty
// placeholders, in unspecified order. The chunk pointer is valid until
// the next mutating call on the Map. fn must not mutate the Map.
func (m *Map) ForEachChunk(fn func(ChunkCoord, *Chunk)) {
	for cc, idx := range m.index {
		fn(cc, &m.arena[idx])
	}
}

// ChunkCount returns the number of chunks in the store, including empty
// placeholders.
func (m *Map) ChunkCount() int { return len(m.index) }

// TileCount returns the total number of occupied slots across all chunks.
func (m *Map) TileCount() int { return m.tiles }

// Epoch returns a counter that Clear advances. Consumers holding derived
// per-chunk state compare it against the value they last saw to detect a
// full clear.
func (m *Map) Epoch() uint64 { return m.epoch }

// Bounds returns the chunk-coordinate extent of the store, or ok=false
// when no chunk exists. Diagnostic helper; empty placeholder chunks
// count.
func (m *Map) Bounds() (minc, maxc ChunkCoord, ok bool) {
	for cc := range m.index {
		if !ok {
			minc, maxc, ok = cc, cc, true
			continue
		}
		minc.X = min(minc.X, cc.X)
		minc.Y = min(minc.Y, cc.Y)
		minc.Layer = min(minc.Layer, cc.Layer)
		maxc.X = max(maxc.X, cc.X)
		maxc.Y = max(maxc.Y, cc.Y)
		maxc.Layer = max(maxc.Layer, cc.Layer)
	}
	return minc, maxc, ok
}

// ensureChunk returns the arena index for coord, creating the chunk on
// first write.
func (m *Map) ensureChunk(cc ChunkCoord) int32 {
	if idx, ok := m.index[cc]; ok {
		return idx
	}
	idx := int32(len(m.arena))
	m.arena = append(m.arena, newChunk(m.size))
	m.index[cc] = idx
	return idx
}

// markDirty is the only write path into the dirty set. Every mutating
// method calls it alongside the tile write, so the store and the dirty
// set cannot desynchronize.
func (m *Map) markDirty(cc ChunkCoord) {
	m.dirty[cc] = struct{}{}
}
