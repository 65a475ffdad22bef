// Package pngcore decodes the PNG core container and pixel format into an
// in-memory Image: chunk framing, IHDR/PLTE/tRNS/gAMA/sRGB/pHYs metadata,
// zlib inflation, per-scanline unfiltering, and materialization of all five
// PNG color types (with Adam7 deinterlacing) into a uniform Pixel array.
//
// Encoding, gamma correction, and any rendering beyond producing RGBA pixel
// values are out of scope.
package pngcore

import (
	"github.com/pkg/errors"

	"github.com/brackenforge/pngcore/internal/chunk"
	"github.com/brackenforge/pngcore/internal/meta"
)

// Image is the fully decoded result of a PNG core decode.
type Image struct {
	Width, Height uint32
	BitDepth      uint8
	ColorType     uint8
	Interlace     uint8

	Palette []Color

	GammaSet bool
	Gamma    uint32

	RenderingIntentSet bool
	RenderingIntent    uint8

	PhysSet  bool
	PPUX     uint32
	PPUY     uint32
	PhysUnit uint8

	TransparencyGraySet bool
	TransparencyGray    uint16
	TransparencyRGBSet  bool
	TransparencyRGB     Color

	// Pixels is row-major, length Width*Height. Row 0 is the top row,
	// column 0 the left column.
	Pixels []Pixel

	// Filters is the per-row filter byte, in the order rows were decoded:
	// for a non-interlaced image this is one entry per row top-to-bottom;
	// for an interlaced image this is every sub-image's rows concatenated
	// in Adam7 pass order (0 through 6).
	Filters []byte
}

// Decode parses a complete PNG byte slice into an Image using the default
// zlib-backed Inflater.
func Decode(data []byte) (*Image, error) {
	return DecodeWith(data, defaultInflater)
}

// DecodeWith is Decode with an injectable Inflater, so callers can swap in
// an instrumented or alternative zlib implementation without forking this
// package.
func DecodeWith(data []byte, inflater Inflater) (*Image, error) {
	chunks, err := chunk.Split(data)
	if err != nil {
		return nil, err
	}
	md, err := meta.Interpret(chunks)
	if err != nil {
		return nil, err
	}
	compressed := chunk.ConcatIDAT(chunks)
	raw, err := inflater.Inflate(compressed)
	if err != nil {
		return nil, err
	}

	img := newImage(md)
	if err := assemble(img, md, raw); err != nil {
		return nil, errors.WithStack(err)
	}
	return img, nil
}

func newImage(md *meta.Metadata) *Image {
	img := &Image{
		Width:               md.Width,
		Height:              md.Height,
		BitDepth:            md.BitDepth,
		ColorType:           md.ColorType,
		Interlace:           md.Interlace,
		GammaSet:            md.GammaSet,
		Gamma:               md.Gamma,
		RenderingIntentSet:  md.RenderingIntentSet,
		RenderingIntent:     md.RenderingIntent,
		PhysSet:             md.PhysSet,
		PPUX:                md.PPUX,
		PPUY:                md.PPUY,
		PhysUnit:            md.PhysUnit,
		TransparencyGraySet: md.TransparencyGraySet,
		TransparencyGray:    md.TransparencyGray,
		TransparencyRGBSet:  md.TransparencyRGBSet,
		TransparencyRGB:     Color(md.TransparencyRGB),
	}
	img.Palette = make([]Color, len(md.Palette))
	for i, c := range md.Palette {
		img.Palette[i] = Color(c)
	}
	return img
}
