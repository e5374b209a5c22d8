// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlas describes texture atlas layouts for tile rendering.
//
// A Layout maps sprite indices to texel rectangles inside a single
// texture. A tile's Sprite field is an index into the layout: sprite i
// samples from Rects[i]. Most sprite sheets are regular grids:
//
//	layout, err := atlas.Grid(tilemap.V2(16, 16), 8, 8)
//
// For irregular sprites, Packer assigns regions with shelf packing,
// and Builder additionally composes the source images into a single
// sheet image ready for GPU upload:
//
//	b := atlas.NewBuilder(512, 512, 1)
//	grass, err := b.Add(grassImage)
//	water, err := b.Add(waterImage)
//	layout := b.Layout()
//	sheet := b.Sheet()
//
// Layouts store raw texel coordinates. Rendering code normalizes them
// against the texture dimensions and applies the half-texel sampling
// inset, so the same layout serves both mesh modes.
package atlas
