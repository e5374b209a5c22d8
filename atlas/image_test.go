// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"image"
	"image/color"
	"testing"
)

func TestToRGBAPassthrough(t *testing.T) {
	tight := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if got := ToRGBA(tight); got != tight {
		t.Error("ToRGBA() copied an already tight image")
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 3, 6, 7))
	src.SetNRGBA(2, 3, color.NRGBA{R: 255, A: 255})

	got := ToRGBA(src)
	if want := image.Rect(0, 0, 4, 4); got.Bounds() != want {
		t.Fatalf("Bounds() = %v, want %v", got.Bounds(), want)
	}
	if px := got.RGBAAt(0, 0); px.R != 255 || px.A != 255 {
		t.Errorf("pixel (0,0) = %v, want red", px)
	}
	if got.Stride != 4*4 {
		t.Errorf("Stride = %d, want %d", got.Stride, 4*4)
	}
}

func TestToRGBASubImage(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 16, 16))
	base.SetRGBA(4, 4, color.RGBA{G: 255, A: 255})

	sub := base.SubImage(image.Rect(4, 4, 8, 8)).(*image.RGBA)
	got := ToRGBA(sub)
	if got == sub {
		t.Fatal("ToRGBA() returned a sub-image with padded rows unchanged")
	}
	if want := image.Rect(0, 0, 4, 4); got.Bounds() != want {
		t.Fatalf("Bounds() = %v, want %v", got.Bounds(), want)
	}
	if px := got.RGBAAt(0, 0); px.G != 255 {
		t.Errorf("pixel (0,0) = %v, want green", px)
	}
}

func TestScaleNearest(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	src.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	src.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	got := Scale(src, 4, 4)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{R: 255, A: 255}},
		{3, 0, color.RGBA{G: 255, A: 255}},
		{0, 3, color.RGBA{B: 255, A: 255}},
		{3, 3, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		if px := got.RGBAAt(tt.x, tt.y); px != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v (hard quadrant edges)", tt.x, tt.y, px, tt.want)
		}
	}
}
