// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ToRGBA converts an image to a tightly packed RGBA image suitable for
// GPU upload: bounds start at the origin and the Pix slice has no row
// padding. Images already in that form are returned unchanged.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		b := rgba.Bounds()
		if b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
			return rgba
		}
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// Scale resizes an image to the given dimensions using nearest-neighbor
// sampling, which preserves the hard edges of pixel art.
func Scale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
