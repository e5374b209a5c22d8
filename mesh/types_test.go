package mesh

import (
	"testing"

	"github.com/gogpu/tilemap"
	"github.com/gogpu/tilemap/atlas"
)

func TestPackRects(t *testing.T) {
	rects := []atlas.Rect{
		{Begin: tilemap.V2(0, 0), End: tilemap.V2(16, 16)},
		{Begin: tilemap.V2(16, 32), End: tilemap.V2(48, 64)},
	}

	buf := PackRects(rects)
	if got, want := len(buf), 2*RectStride; got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}

	tests := []struct {
		off  int
		want float32
	}{
		{0, 0}, {4, 0}, {8, 16}, {12, 16},
		{16, 16}, {20, 32}, {24, 48}, {28, 64},
	}
	for _, tt := range tests {
		if got := f32At(buf, tt.off); got != tt.want {
			t.Errorf("float at %d = %g, want %g", tt.off, got, tt.want)
		}
	}
}

func TestPackRectsEmpty(t *testing.T) {
	if got := PackRects(nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestModeString(t *testing.T) {
	if got, want := ModeStatic.String(), "static"; got != want {
		t.Errorf("ModeStatic = %q, want %q", got, want)
	}
	if got, want := ModeDynamic.String(), "dynamic"; got != want {
		t.Errorf("ModeDynamic = %q, want %q", got, want)
	}
	if got, want := Mode(42).String(), "unknown"; got != want {
		t.Errorf("Mode(42) = %q, want %q", got, want)
	}
}
