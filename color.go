package pngcore

// Color is an 8-bit-per-channel RGBA color, the unit every decoded pixel
// and every palette/transparency entry is expressed in regardless of the
// source image's color type or bit depth.
type Color struct {
	R, G, B, A uint8
}

// Lerp linearly interpolates c toward other by amount (0 is c, 1 is other),
// per channel. The fractional part of each channel's step is truncated, so
// inexact results round toward c.
func (c Color) Lerp(other Color, amount float64) Color {
	return Color{
		R: lerpU8(c.R, other.R, amount),
		G: lerpU8(c.G, other.G, amount),
		B: lerpU8(c.B, other.B, amount),
		A: lerpU8(c.A, other.A, amount),
	}
}

func lerpU8(a, b uint8, f float64) uint8 {
	if a == b {
		return a
	}
	if a < b {
		diff := float64(b - a)
		return a + uint8(diff*f)
	}
	diff := float64(a - b)
	return a - uint8(diff*f)
}

// Flatten composites c onto a background color, discarding c's alpha
// channel. A fully opaque c is returned unchanged; anything else is
// linearly blended toward background.
func (c Color) Flatten(background Color) Color {
	if c.A == 255 {
		return c
	}
	f := 1.0 - float64(c.A)/255.0
	flat := c.Lerp(background, f)
	flat.A = 255
	return flat
}
