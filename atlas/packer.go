// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"fmt"
	"image"
	"slices"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/tilemap"
)

// Default packer settings.
const (
	// DefaultSize is the default sheet dimension (1024x1024).
	DefaultSize = 1024

	// DefaultPadding is the default spacing between packed sprites.
	DefaultPadding = 1
)

// shelf is a horizontal row in the shelf-packing algorithm.
type shelf struct {
	y     int // top Y coordinate of this shelf
	h     int // shelf height (tallest entry so far)
	nextX int // next free X position on this shelf
}

// Packer incrementally assigns sprite regions inside a fixed-size
// texture using shelf packing.
//
// Shelf packing divides the texture into horizontal rows. Each request
// is placed on the first shelf with room, or on a new shelf below the
// last one. It suits sprite sheets, where most entries share a small
// number of heights.
//
// Packer is safe for concurrent use.
type Packer struct {
	mu sync.Mutex

	width   int
	height  int
	padding int

	shelves []shelf
	rects   []Rect
	used    int
}

// NewPacker creates a packer for a sheet of the given dimensions.
// Non-positive dimensions fall back to DefaultSize, negative padding
// to zero.
func NewPacker(width, height, padding int) *Packer {
	if width <= 0 {
		width = DefaultSize
	}
	if height <= 0 {
		height = DefaultSize
	}
	if padding < 0 {
		padding = 0
	}
	return &Packer{width: width, height: height, padding: padding}
}

// Add reserves a width x height region and returns its sprite index
// and texel rectangle. It fails with ErrFull when no shelf can hold
// the region.
func (p *Packer) Add(width, height int) (int, Rect, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if width <= 0 || height <= 0 {
		return 0, Rect{}, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}

	pw := width + p.padding
	ph := height + p.padding
	if pw > p.width || ph > p.height {
		return 0, Rect{}, fmt.Errorf("%w: %dx%d exceeds %dx%d sheet", ErrFull, width, height, p.width, p.height)
	}

	for i := 0; i < len(p.shelves); i++ {
		if p.fits(i, pw, ph) {
			idx, r := p.place(i, width, height, pw)
			return idx, r, nil
		}
	}
	return p.newShelf(width, height, pw, ph)
}

// fits reports whether a padded region fits on shelf i.
func (p *Packer) fits(i, pw, ph int) bool {
	s := &p.shelves[i]
	if s.nextX+pw > p.width {
		return false
	}
	// A taller entry cannot grow a shelf that already has entries.
	if ph > s.h && s.nextX > 0 {
		return false
	}
	return true
}

// place allocates on an existing shelf.
func (p *Packer) place(i, width, height, pw int) (int, Rect) {
	s := &p.shelves[i]
	r := texelRect(s.nextX, s.y, width, height)
	s.nextX += pw
	if height+p.padding > s.h {
		s.h = height + p.padding
	}
	p.used += width * height
	p.rects = append(p.rects, r)
	return len(p.rects) - 1, r
}

// newShelf opens a shelf below the last one and allocates on it.
func (p *Packer) newShelf(width, height, pw, ph int) (int, Rect, error) {
	y := 0
	if n := len(p.shelves); n > 0 {
		y = p.shelves[n-1].y + p.shelves[n-1].h
	}
	if y+ph > p.height {
		return 0, Rect{}, fmt.Errorf("%w: %dx%d does not fit below y=%d", ErrFull, width, height, y)
	}
	p.shelves = append(p.shelves, shelf{y: y, h: ph, nextX: pw})
	r := texelRect(0, y, width, height)
	p.used += width * height
	p.rects = append(p.rects, r)
	return len(p.rects) - 1, r, nil
}

func texelRect(x, y, w, h int) Rect {
	begin := tilemap.V2(float32(x), float32(y))
	return Rect{Begin: begin, End: begin.Add(tilemap.V2(float32(w), float32(h)))}
}

// Layout returns a snapshot of the regions added so far.
func (p *Packer) Layout() *Layout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &Layout{
		TextureSize: tilemap.V2(float32(p.width), float32(p.height)),
		Rects:       slices.Clone(p.rects),
	}
}

// Len returns the number of regions added.
func (p *Packer) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rects)
}

// Utilization returns the fraction of sheet area covered (0.0 to 1.0).
func (p *Packer) Utilization() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := p.width * p.height
	if total == 0 {
		return 0
	}
	return float64(p.used) / float64(total)
}

// Reset discards all regions, making the whole sheet available again.
func (p *Packer) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.shelves = p.shelves[:0]
	p.rects = p.rects[:0]
	p.used = 0
}

// Builder composes individual sprite images into a single sheet image
// and the matching layout. It combines a Packer with pixel blitting so
// callers can go from loose images to an uploadable sheet in one pass.
type Builder struct {
	packer *Packer
	sheet  *image.RGBA
}

// NewBuilder creates a builder for a sheet of the given dimensions.
func NewBuilder(width, height, padding int) *Builder {
	p := NewPacker(width, height, padding)
	return &Builder{
		packer: p,
		sheet:  image.NewRGBA(image.Rect(0, 0, p.width, p.height)),
	}
}

// Add blits an image into the sheet and returns its sprite index.
func (b *Builder) Add(img image.Image) (int, error) {
	bounds := img.Bounds()
	idx, r, err := b.packer.Add(bounds.Dx(), bounds.Dy())
	if err != nil {
		return 0, err
	}
	dst := image.Rect(int(r.Begin.X), int(r.Begin.Y), int(r.End.X), int(r.End.Y))
	xdraw.Draw(b.sheet, dst, img, bounds.Min, xdraw.Src)
	return idx, nil
}

// Sheet returns the composed sheet image.
func (b *Builder) Sheet() *image.RGBA {
	return b.sheet
}

// Layout returns the layout for the sprites added so far.
func (b *Builder) Layout() *Layout {
	return b.packer.Layout()
}
