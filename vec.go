package tilemap

// IVec2 is a 2D integer vector, used for local tile coordinates within a
// chunk and for chunk origins in tile units.
type IVec2 struct {
	X, Y int32
}

// IV2 is a convenience function to create an IVec2.
func IV2(x, y int32) IVec2 {
	return IVec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v IVec2) Add(w IVec2) IVec2 {
	return IVec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// IVec3 is a 3D integer vector addressing one tile: X/Y are grid
// coordinates, Z is the layer. Layers stack draw order; they are not
// spatial depth.
type IVec3 struct {
	X, Y, Z int32
}

// IV3 is a convenience function to create an IVec3.
func IV3(x, y, z int32) IVec3 {
	return IVec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v IVec3) Add(w IVec3) IVec3 {
	return IVec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// XY returns the planar part of the vector.
func (v IVec3) XY() IVec2 {
	return IVec2{X: v.X, Y: v.Y}
}

// Vec2 is a 2D float32 vector. float32 because every consumer is a GPU
// byte layout (tile sizes, texture sizes, vertex positions).
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulV returns the component-wise product of two vectors.
func (v Vec2) MulV(w Vec2) Vec2 {
	return Vec2{X: v.X * w.X, Y: v.Y * w.Y}
}
