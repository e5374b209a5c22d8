package tilemap

import (
	"strconv"
	"strings"
)

// Flags is a bitset of per-tile render flags.
type Flags uint32

const (
	// FlipX mirrors the tile horizontally: the left-edge texture
	// coordinates become the right-edge ones.
	FlipX Flags = 1 << iota

	// FlipY mirrors the tile vertically.
	FlipY
)

// String returns a "|"-separated list of set flags, or "0" if none.
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	if f&FlipX != 0 {
		parts = append(parts, "FlipX")
	}
	if f&FlipY != 0 {
		parts = append(parts, "FlipY")
	}
	if rest := f &^ (FlipX | FlipY); rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

// Tile is one cell of a Map: a sprite index into the atlas rect table,
// a color multiplier, and flip flags. Tiles are plain values, replaced
// wholesale on update; the mesh synthesizer never sees partial edits.
//
// The zero Tile has a transparent color. Use NewTile for the common
// "sprite N, white, unflipped" case.
type Tile struct {
	Sprite uint32
	Color  Color
	Flags  Flags
}

// NewTile returns a white, unflipped tile showing the given sprite.
func NewTile(sprite uint32) Tile {
	return Tile{Sprite: sprite, Color: White}
}
