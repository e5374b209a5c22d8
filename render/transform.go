// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/gogpu/tilemap"
)

// Transform is a 2D affine transformation in row-major 2x3 form:
//
//	| A  B  C |
//	| D  E  F |
//
// applied as
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// It positions a map in world space; Mat4 expands it to the mat4x4 the
// shaders consume. The zero value is NOT the identity; use Identity.
type Transform struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Translate creates a translation.
func Translate(x, y float32) Transform {
	return Transform{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling about the origin.
func Scale(x, y float32) Transform {
	return Transform{A: x, E: y}
}

// Rotate creates a counter-clockwise rotation (angle in radians).
func Rotate(angle float32) Transform {
	sin, cos := math.Sincos(float64(angle))
	return Transform{
		A: float32(cos), B: float32(-sin),
		D: float32(sin), E: float32(cos),
	}
}

// Multiply composes two transforms (t then applied after other):
// (t.Multiply(other)).Apply(v) == t.Apply(other.Apply(v)).
func (t Transform) Multiply(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply transforms a point.
func (t Transform) Apply(v tilemap.Vec2) tilemap.Vec2 {
	return tilemap.Vec2{
		X: t.A*v.X + t.B*v.Y + t.C,
		Y: t.D*v.X + t.E*v.Y + t.F,
	}
}

// ApplyVector transforms a direction (no translation).
func (t Transform) ApplyVector(v tilemap.Vec2) tilemap.Vec2 {
	return tilemap.Vec2{
		X: t.A*v.X + t.B*v.Y,
		Y: t.D*v.X + t.E*v.Y,
	}
}

// MaxScale returns the largest factor by which the transform stretches
// any direction. Culling scales chunk bounding radii by it.
func (t Transform) MaxScale() float32 {
	sx := math.Hypot(float64(t.A), float64(t.D))
	sy := math.Hypot(float64(t.B), float64(t.E))
	return float32(math.Max(sx, sy))
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Mat4 expands the affine transform to a column-major mat4x4 with the Z
// axis passed through unchanged.
func (t Transform) Mat4() [16]float32 {
	return [16]float32{
		t.A, t.D, 0, 0,
		t.B, t.E, 0, 0,
		0, 0, 1, 0,
		t.C, t.F, 0, 1,
	}
}

// Ortho builds a column-major orthographic view-projection matrix that
// maps the world rectangle [left,right]x[bottom,top] onto clip space,
// with Y up and Z passed through at zero.
func Ortho(left, right, bottom, top float32) [16]float32 {
	sx := 2 / (right - left)
	sy := 2 / (top - bottom)
	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), 0, 1,
	}
}
