// Package adam7 implements the PNG Adam7 interlacing geometry: the
// per-pass starting offset and step used to partition a full image into
// seven independently-decodable sub-images, and the mapping of a decoded
// sub-image pixel's position back into the full grid. The scatter itself is
// done by the caller, which places each pixel at FullPosition.
//
// The interlacing table below ({xFactor, yFactor, xOffset, yOffset} per
// pass) is the published PNG specification's Adam7 table. Unlike a scatter
// that copies whole image.Image byte planes, this package maps
// individual pixel positions, since this core's pixels carry a palette
// index alongside their color — something image.Image cannot represent.
package adam7

// Pass describes one Adam7 sub-image: starting offset and step along each
// axis, per https://www.w3.org/TR/PNG/#8Interlace.
type Pass struct {
	XFactor, YFactor, XOffset, YOffset int
}

// Passes is the canonical seven-pass Adam7 table.
var Passes = [7]Pass{
	{8, 8, 0, 0},
	{8, 8, 4, 0},
	{4, 8, 0, 4},
	{4, 4, 2, 0},
	{2, 4, 0, 2},
	{2, 2, 1, 0},
	{1, 2, 0, 1},
}

// Dimensions returns the width and height of a given pass's sub-image for a
// full image of size (width, height). A pass that covers no pixel of the
// image (its sub-image would be zero wide or zero tall) is reported as 0x0
// and contributes no scanlines at all.
func Dimensions(pass int, width, height int) (w, h int) {
	p := Passes[pass]
	w = ceilDiv(width-p.XOffset, p.XFactor)
	h = ceilDiv(height-p.YOffset, p.YFactor)
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return w, h
}

func ceilDiv(numerator, denominator int) int {
	if numerator <= 0 {
		return 0
	}
	return (numerator + denominator - 1) / denominator
}

// FullPosition maps a (subX, subY) coordinate inside pass's sub-image to its
// (x, y) position in the full image.
func FullPosition(pass int, subX, subY int) (x, y int) {
	p := Passes[pass]
	return p.XOffset + subX*p.XFactor, p.YOffset + subY*p.YFactor
}
