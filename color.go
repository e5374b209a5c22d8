package tilemap

import "image/color"

// Color is an 8-bit-per-channel RGBA tile color. It multiplies the atlas
// texel in the shader, so White leaves sprites unchanged. Values are not
// premultiplied.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	White       = Color{255, 255, 255, 255}
	Black       = Color{0, 0, 0, 255}
	Transparent = Color{}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColor converts any color.Color, discarding premultiplication.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	// RGBA() returns premultiplied 16-bit channels; undo both.
	return Color{
		R: uint8((r * 0xffff / a) >> 8),
		G: uint8((g * 0xffff / a) >> 8),
		B: uint8((b * 0xffff / a) >> 8),
		A: uint8(a >> 8),
	}
}

// Floats returns the channels normalized to [0, 1], the form the GPU
// buffers carry.
func (c Color) Floats() (r, g, b, a float32) {
	const s = 1.0 / 255.0
	return float32(c.R) * s, float32(c.G) * s, float32(c.B) * s, float32(c.A) * s
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A) * 0x101
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return
}
