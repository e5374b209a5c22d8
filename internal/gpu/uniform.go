package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/tilemap"
)

// Uniform buffer sizes. WGSL struct layouts in shaders/ must match.
const (
	// ViewUniformSize is a single mat4x4<f32> view-projection matrix.
	ViewUniformSize = 64

	// TilemapUniformSize is transform mat4x4 (64) + tile_size vec2 (8) +
	// texture_size vec2 (8).
	TilemapUniformSize = 80
)

// makeViewUniform packs a column-major view-projection matrix.
func makeViewUniform(viewProj [16]float32) []byte {
	buf := make([]byte, ViewUniformSize)
	putMat4(buf, viewProj)
	return buf
}

// makeTilemapUniform packs the per-map uniform: model transform, tile
// size in world units, atlas texture size in texels.
func makeTilemapUniform(transform [16]float32, tileSize, textureSize tilemap.Vec2) []byte {
	buf := make([]byte, TilemapUniformSize)
	putMat4(buf[0:64], transform)
	le := binary.LittleEndian
	le.PutUint32(buf[64:68], math.Float32bits(tileSize.X))
	le.PutUint32(buf[68:72], math.Float32bits(tileSize.Y))
	le.PutUint32(buf[72:76], math.Float32bits(textureSize.X))
	le.PutUint32(buf[76:80], math.Float32bits(textureSize.Y))
	return buf
}

func putMat4(buf []byte, m [16]float32) {
	le := binary.LittleEndian
	for i, v := range m {
		le.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
}
