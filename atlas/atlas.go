// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"errors"
	"fmt"

	"github.com/gogpu/tilemap"
)

// Atlas-related errors.
var (
	// ErrFull is returned when a packer cannot fit the requested region.
	ErrFull = errors.New("atlas: texture atlas is full")

	// ErrBadGrid is returned when grid parameters do not describe a valid sheet.
	ErrBadGrid = errors.New("atlas: invalid grid dimensions")

	// ErrBadSize is returned when a requested region has no area.
	ErrBadSize = errors.New("atlas: region size must be positive")
)

// Rect is an axis-aligned rectangle in texel coordinates.
//
// Begin is the top-left corner and End the bottom-right, following the
// image convention of Y growing downward. End is exclusive: a 16x16
// sprite in the top-left corner of a sheet has Begin (0,0), End (16,16).
type Rect struct {
	Begin tilemap.Vec2
	End   tilemap.Vec2
}

// Size returns the rectangle dimensions in texels.
func (r Rect) Size() tilemap.Vec2 {
	return r.End.Sub(r.Begin)
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g,%g %gx%g)", r.Begin.X, r.Begin.Y, r.End.X-r.Begin.X, r.End.Y-r.Begin.Y)
}

// Layout maps sprite indices to regions of a texture atlas.
//
// TextureSize records the sheet dimensions the rectangles were laid out
// against. Rendering code prefers the dimensions of the texture actually
// bound, so a layout built before the texture is known stays usable.
type Layout struct {
	// TextureSize is the full sheet dimension in texels.
	TextureSize tilemap.Vec2

	// Rects holds one region per sprite index.
	Rects []Rect
}

// New creates a layout from explicit sprite regions.
func New(textureSize tilemap.Vec2, rects []Rect) *Layout {
	return &Layout{TextureSize: textureSize, Rects: rects}
}

// Len returns the number of sprites in the layout.
func (l *Layout) Len() int {
	return len(l.Rects)
}

// At returns the region for sprite index i.
// ok is false when i is out of range.
func (l *Layout) At(i int) (Rect, bool) {
	if i < 0 || i >= len(l.Rects) {
		return Rect{}, false
	}
	return l.Rects[i], true
}

// Grid builds a layout for a sheet of uniformly sized sprites arranged
// in a regular grid with no padding. Sprites are indexed row-major from
// the top-left corner, matching the usual sprite sheet convention.
func Grid(tileSize tilemap.Vec2, columns, rows int) (*Layout, error) {
	return GridPadded(tileSize, columns, rows, tilemap.Vec2{}, tilemap.Vec2{})
}

// GridPadded builds a grid layout with padding texels between adjacent
// cells and an offset from the sheet's top-left corner to the first cell.
func GridPadded(tileSize tilemap.Vec2, columns, rows int, padding, offset tilemap.Vec2) (*Layout, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %d columns x %d rows", ErrBadGrid, columns, rows)
	}
	if tileSize.X <= 0 || tileSize.Y <= 0 {
		return nil, fmt.Errorf("%w: tile size %gx%g", ErrBadGrid, tileSize.X, tileSize.Y)
	}
	if padding.X < 0 || padding.Y < 0 {
		return nil, fmt.Errorf("%w: padding %gx%g", ErrBadGrid, padding.X, padding.Y)
	}

	rects := make([]Rect, 0, columns*rows)
	for row := 0; row < rows; row++ {
		y := offset.Y + float32(row)*(tileSize.Y+padding.Y)
		for col := 0; col < columns; col++ {
			x := offset.X + float32(col)*(tileSize.X+padding.X)
			begin := tilemap.V2(x, y)
			rects = append(rects, Rect{Begin: begin, End: begin.Add(tileSize)})
		}
	}

	size := tilemap.V2(
		offset.X+float32(columns)*tileSize.X+float32(columns-1)*padding.X,
		offset.Y+float32(rows)*tileSize.Y+float32(rows-1)*padding.Y,
	)
	return &Layout{TextureSize: size, Rects: rects}, nil
}
