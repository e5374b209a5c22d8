package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/tilemap"
)

func f32At(t *testing.T, data []byte, offset int) float32 {
	t.Helper()
	if offset+4 > len(data) {
		t.Fatalf("offset %d out of range (len %d)", offset, len(data))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(data[offset : offset+4]))
}

func identityMat4() [16]float32 {
	var m [16]float32
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

func TestMakeViewUniform(t *testing.T) {
	data := makeViewUniform(identityMat4())
	if len(data) != ViewUniformSize {
		t.Fatalf("len = %d, want %d", len(data), ViewUniformSize)
	}
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i == 0 || i == 5 || i == 10 || i == 15 {
			want = 1
		}
		if got := f32At(t, data, i*4); got != want {
			t.Errorf("m[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestMakeTilemapUniform(t *testing.T) {
	var transform [16]float32
	for i := range transform {
		transform[i] = float32(i)
	}
	data := makeTilemapUniform(transform,
		tilemap.Vec2{X: 16, Y: 32}, tilemap.Vec2{X: 256, Y: 128})

	if len(data) != TilemapUniformSize {
		t.Fatalf("len = %d, want %d", len(data), TilemapUniformSize)
	}
	for i := 0; i < 16; i++ {
		if got := f32At(t, data, i*4); got != float32(i) {
			t.Errorf("transform[%d] = %v, want %v", i, got, float32(i))
		}
	}
	if got := f32At(t, data, 64); got != 16 {
		t.Errorf("tile_size.x = %v, want 16", got)
	}
	if got := f32At(t, data, 68); got != 32 {
		t.Errorf("tile_size.y = %v, want 32", got)
	}
	if got := f32At(t, data, 72); got != 256 {
		t.Errorf("texture_size.x = %v, want 256", got)
	}
	if got := f32At(t, data, 76); got != 128 {
		t.Errorf("texture_size.y = %v, want 128", got)
	}
}
