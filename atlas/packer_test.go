// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/tilemap"
)

func TestPackerAdd(t *testing.T) {
	p := NewPacker(64, 64, 0)

	idx, r, err := p.Add(16, 16)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if idx != 0 {
		t.Errorf("first index = %d, want 0", idx)
	}
	if want := (Rect{Begin: tilemap.V2(0, 0), End: tilemap.V2(16, 16)}); r != want {
		t.Errorf("first rect = %v, want %v", r, want)
	}

	// Second entry goes to the right on the same shelf.
	idx, r, err = p.Add(16, 16)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if idx != 1 {
		t.Errorf("second index = %d, want 1", idx)
	}
	if want := (Rect{Begin: tilemap.V2(16, 0), End: tilemap.V2(32, 16)}); r != want {
		t.Errorf("second rect = %v, want %v", r, want)
	}

	// Too wide for the remaining shelf space: opens a new shelf below.
	_, r, err = p.Add(48, 16)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if want := (Rect{Begin: tilemap.V2(0, 16), End: tilemap.V2(48, 32)}); r != want {
		t.Errorf("new shelf rect = %v, want %v", r, want)
	}
}

func TestPackerPadding(t *testing.T) {
	p := NewPacker(64, 64, 2)

	_, r1, err := p.Add(10, 10)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	_, r2, err := p.Add(10, 10)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if want := tilemap.V2(0, 0); r1.Begin != want {
		t.Errorf("first begin = %v, want %v", r1.Begin, want)
	}
	if want := tilemap.V2(12, 0); r2.Begin != want {
		t.Errorf("second begin = %v, want %v (10 wide + 2 padding)", r2.Begin, want)
	}
}

func TestPackerFull(t *testing.T) {
	p := NewPacker(32, 32, 0)

	if _, _, err := p.Add(20, 20); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	// No horizontal room on the shelf, no vertical room for a new one.
	if _, _, err := p.Add(20, 20); !errors.Is(err, ErrFull) {
		t.Errorf("Add() error = %v, want ErrFull", err)
	}
	// Wider than the sheet itself.
	if _, _, err := p.Add(100, 4); !errors.Is(err, ErrFull) {
		t.Errorf("Add() error = %v, want ErrFull", err)
	}
}

func TestPackerBadSize(t *testing.T) {
	p := NewPacker(64, 64, 0)

	if _, _, err := p.Add(0, 16); !errors.Is(err, ErrBadSize) {
		t.Errorf("Add(0, 16) error = %v, want ErrBadSize", err)
	}
	if _, _, err := p.Add(16, -1); !errors.Is(err, ErrBadSize) {
		t.Errorf("Add(16, -1) error = %v, want ErrBadSize", err)
	}
}

func TestPackerReset(t *testing.T) {
	p := NewPacker(64, 64, 0)

	if _, _, err := p.Add(16, 16); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	p.Reset()

	if got := p.Len(); got != 0 {
		t.Errorf("Len() after Reset = %d, want 0", got)
	}
	if got := p.Utilization(); got != 0 {
		t.Errorf("Utilization() after Reset = %g, want 0", got)
	}

	_, r, err := p.Add(16, 16)
	if err != nil {
		t.Fatalf("Add() after Reset error = %v", err)
	}
	if want := tilemap.V2(0, 0); r.Begin != want {
		t.Errorf("rect after Reset begins at %v, want %v", r.Begin, want)
	}
}

func TestPackerUtilization(t *testing.T) {
	p := NewPacker(64, 64, 0)

	if _, _, err := p.Add(32, 32); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got, want := p.Utilization(), 0.25; got != want {
		t.Errorf("Utilization() = %g, want %g", got, want)
	}
}

func TestPackerLayoutSnapshot(t *testing.T) {
	p := NewPacker(64, 64, 0)

	if _, _, err := p.Add(16, 16); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	snapshot := p.Layout()

	if _, _, err := p.Add(16, 16); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if got := snapshot.Len(); got != 1 {
		t.Errorf("snapshot Len() = %d, want 1 (must not track later adds)", got)
	}
	if got := p.Layout().Len(); got != 2 {
		t.Errorf("Layout().Len() = %d, want 2", got)
	}
	if got, want := snapshot.TextureSize, tilemap.V2(64, 64); got != want {
		t.Errorf("TextureSize = %v, want %v", got, want)
	}
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(32, 32, 0)

	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	idx, err := b.Add(solid(4, 4, red))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if idx != 0 {
		t.Errorf("first index = %d, want 0", idx)
	}

	idx, err = b.Add(solid(4, 4, blue))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if idx != 1 {
		t.Errorf("second index = %d, want 1", idx)
	}

	sheet := b.Sheet()
	if got := sheet.RGBAAt(1, 1); got.R != 255 || got.A != 255 {
		t.Errorf("sheet pixel (1,1) = %v, want red", got)
	}
	if got := sheet.RGBAAt(5, 1); got.B != 255 || got.A != 255 {
		t.Errorf("sheet pixel (5,1) = %v, want blue", got)
	}

	layout := b.Layout()
	if got := layout.Len(); got != 2 {
		t.Errorf("Layout().Len() = %d, want 2", got)
	}
	r1, _ := layout.At(1)
	if want := (Rect{Begin: tilemap.V2(4, 0), End: tilemap.V2(8, 4)}); r1 != want {
		t.Errorf("At(1) = %v, want %v", r1, want)
	}
}
