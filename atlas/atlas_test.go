// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"errors"
	"testing"

	"github.com/gogpu/tilemap"
)

func TestGrid(t *testing.T) {
	layout, err := Grid(tilemap.V2(16, 16), 4, 2)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}

	if got, want := layout.Len(), 8; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := layout.TextureSize, tilemap.V2(64, 32); got != want {
		t.Errorf("TextureSize = %v, want %v", got, want)
	}

	tests := []struct {
		index int
		want  Rect
	}{
		{0, Rect{Begin: tilemap.V2(0, 0), End: tilemap.V2(16, 16)}},
		{3, Rect{Begin: tilemap.V2(48, 0), End: tilemap.V2(64, 16)}},
		{5, Rect{Begin: tilemap.V2(16, 16), End: tilemap.V2(32, 32)}},
		{7, Rect{Begin: tilemap.V2(48, 16), End: tilemap.V2(64, 32)}},
	}
	for _, tt := range tests {
		got, ok := layout.At(tt.index)
		if !ok {
			t.Errorf("At(%d) not ok", tt.index)
			continue
		}
		if got != tt.want {
			t.Errorf("At(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestGridPadded(t *testing.T) {
	layout, err := GridPadded(tilemap.V2(16, 16), 3, 2, tilemap.V2(2, 2), tilemap.V2(1, 1))
	if err != nil {
		t.Fatalf("GridPadded() error = %v", err)
	}

	if got, want := layout.Len(), 6; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	// First cell starts at the offset.
	r0, _ := layout.At(0)
	if want := (Rect{Begin: tilemap.V2(1, 1), End: tilemap.V2(17, 17)}); r0 != want {
		t.Errorf("At(0) = %v, want %v", r0, want)
	}

	// Row 1, column 1: offset + cell * (tile + padding).
	r4, _ := layout.At(4)
	if want := (Rect{Begin: tilemap.V2(19, 19), End: tilemap.V2(35, 35)}); r4 != want {
		t.Errorf("At(4) = %v, want %v", r4, want)
	}

	// Trailing padding is not part of the sheet.
	if got, want := layout.TextureSize, tilemap.V2(53, 35); got != want {
		t.Errorf("TextureSize = %v, want %v", got, want)
	}
}

func TestGridErrors(t *testing.T) {
	tests := []struct {
		name     string
		tileSize tilemap.Vec2
		columns  int
		rows     int
		padding  tilemap.Vec2
	}{
		{"zero columns", tilemap.V2(16, 16), 0, 2, tilemap.Vec2{}},
		{"negative rows", tilemap.V2(16, 16), 2, -1, tilemap.Vec2{}},
		{"zero tile size", tilemap.Vec2{}, 2, 2, tilemap.Vec2{}},
		{"negative padding", tilemap.V2(16, 16), 2, 2, tilemap.V2(-1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GridPadded(tt.tileSize, tt.columns, tt.rows, tt.padding, tilemap.Vec2{})
			if !errors.Is(err, ErrBadGrid) {
				t.Errorf("GridPadded() error = %v, want ErrBadGrid", err)
			}
		})
	}
}

func TestLayoutAt(t *testing.T) {
	layout := New(tilemap.V2(32, 16), []Rect{
		{Begin: tilemap.V2(0, 0), End: tilemap.V2(16, 16)},
		{Begin: tilemap.V2(16, 0), End: tilemap.V2(32, 16)},
	})

	if _, ok := layout.At(0); !ok {
		t.Error("At(0) not ok")
	}
	if _, ok := layout.At(1); !ok {
		t.Error("At(1) not ok")
	}
	if _, ok := layout.At(2); ok {
		t.Error("At(2) ok, want out of range")
	}
	if _, ok := layout.At(-1); ok {
		t.Error("At(-1) ok, want out of range")
	}
}

func TestRectSize(t *testing.T) {
	r := Rect{Begin: tilemap.V2(8, 16), End: tilemap.V2(24, 48)}
	if got, want := r.Size(), tilemap.V2(16, 32); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
}
