package pngcore

import (
	"github.com/pkg/errors"

	"github.com/brackenforge/pngcore/internal/adam7"
	"github.com/brackenforge/pngcore/internal/bitpack"
	"github.com/brackenforge/pngcore/internal/meta"
	"github.com/brackenforge/pngcore/internal/scanline"
)

func byteDepth(bitDepth int) int { return (bitDepth + 7) / 8 }

// pixelStrideFor is the Scanline pixel stride: the byte distance to the
// left-neighbor same-channel sample on the still-packed row, which only
// matches a true "bytes per pixel" count once bitDepth is at least 8.
func pixelStrideFor(bitDepth, samplesPerPixel int) int {
	stride := byteDepth(bitDepth) * samplesPerPixel
	if stride < 1 {
		stride = 1
	}
	return stride
}

func packedRowLength(width, samplesPerPixel, bitDepth int) int {
	return (width*samplesPerPixel*bitDepth + 7) / 8
}

// placer maps a sub-image-local (x, y) to the full image's pixel
// coordinates. The identity mapping for a non-interlaced image; Adam7's
// FullPosition for each interlace pass.
type placer func(subX, subY int) (x, y int)

// assemble decodes raw (the already-inflated IDAT stream) into img.Pixels
// and img.Filters, per md's header and metadata chunks.
func assemble(img *Image, md *meta.Metadata, raw []byte) error {
	samplesPerPixel := meta.SamplesPerPixel(md.ColorType)
	bitDepth := int(md.BitDepth)
	pixelStride := pixelStrideFor(bitDepth, samplesPerPixel)
	fullWidth, fullHeight := int(md.Width), int(md.Height)
	img.Pixels = make([]Pixel, fullWidth*fullHeight)

	offset := 0
	if md.Interlace == meta.InterlaceAdam7 {
		for pass := 0; pass < 7; pass++ {
			subW, subH := adam7.Dimensions(pass, fullWidth, fullHeight)
			if subW == 0 || subH == 0 {
				continue
			}
			pass := pass
			place := func(subX, subY int) (int, int) { return adam7.FullPosition(pass, subX, subY) }
			consumed, err := decodeSubImage(img, md, raw[offset:], subW, subH, fullWidth, pixelStride, samplesPerPixel, bitDepth, place)
			if err != nil {
				return errors.Wrapf(err, "pngcore: adam7 pass %d", pass)
			}
			offset += consumed
		}
	} else {
		identity := func(subX, subY int) (int, int) { return subX, subY }
		consumed, err := decodeSubImage(img, md, raw, fullWidth, fullHeight, fullWidth, pixelStride, samplesPerPixel, bitDepth, identity)
		if err != nil {
			return err
		}
		offset += consumed
	}

	if offset < len(raw) {
		return errors.Wrapf(ErrUnexpectedTrailingByte, "pngcore: %d unread bytes after the last scanline", len(raw)-offset)
	}
	return nil
}

// decodeSubImage decodes height rows of 1+packedRowLength(width) bytes from
// the front of raw, materializing pixels via place into img.Pixels (sized
// for the full image, fullWidth wide), and returns the number of bytes
// consumed.
func decodeSubImage(img *Image, md *meta.Metadata, raw []byte, width, height, fullWidth, pixelStride, samplesPerPixel, bitDepth int, place placer) (int, error) {
	rowBytes := packedRowLength(width, samplesPerPixel, bitDepth)
	rowSize := 1 + rowBytes

	var prev []byte
	offset := 0
	for y := 0; y < height; y++ {
		end := offset + rowSize
		if end > len(raw) {
			return 0, errors.Wrapf(ErrTruncated, "pngcore: row %d needs %d bytes, only %d remain", y, rowSize, len(raw)-offset)
		}
		row := raw[offset:end]
		offset = end

		sl, err := scanline.New(row, pixelStride)
		if err != nil {
			return 0, err
		}
		if err := sl.Unfilter(prev); err != nil {
			return 0, errors.Wrapf(err, "pngcore: row %d", y)
		}
		prev = sl.Bytes
		img.Filters = append(img.Filters, sl.Filter)

		if err := materializeRow(img, md, sl.Bytes, width, fullWidth, bitDepth, y, place); err != nil {
			return 0, errors.Wrapf(err, "pngcore: row %d", y)
		}
	}
	return offset, nil
}

func materializeRow(img *Image, md *meta.Metadata, packed []byte, width, fullWidth, bitDepth, subY int, place placer) error {
	switch md.ColorType {
	case meta.ColorGray:
		samples, err := rawSamples(packed, bitDepth, width)
		if err != nil {
			return err
		}
		for x := 0; x < width; x++ {
			v := samples[x]
			alpha := uint8(255)
			if md.TransparencyGraySet && v == md.TransparencyGray {
				alpha = 0
			}
			gray := narrowSample(v, bitDepth)
			setPixel(img, place, x, subY, fullWidth, Pixel{Color: Color{R: gray, G: gray, B: gray, A: alpha}})
		}

	case meta.ColorTrueColor:
		channels, err := rawChannels(packed, bitDepth, width, 3)
		if err != nil {
			return err
		}
		for x := 0; x < width; x++ {
			r, g, b := channels[x][0], channels[x][1], channels[x][2]
			alpha := uint8(255)
			if md.TransparencyRGBSet && r == md.TransparencyRGB16[0] && g == md.TransparencyRGB16[1] && b == md.TransparencyRGB16[2] {
				alpha = 0
			}
			c := Color{R: narrowSample(r, bitDepth), G: narrowSample(g, bitDepth), B: narrowSample(b, bitDepth), A: alpha}
			setPixel(img, place, x, subY, fullWidth, Pixel{Color: c})
		}

	case meta.ColorIndexed:
		indices := bitpack.UnpackRaw(packed, bitDepth)
		if len(indices) < width {
			return errors.Wrapf(ErrMalformedSample, "pngcore: row has %d palette indices, want %d", len(indices), width)
		}
		for x := 0; x < width; x++ {
			idx := int(indices[x])
			if idx >= len(img.Palette) {
				return errors.Wrapf(ErrIndexOutOfRange, "pngcore: palette index %d, palette length %d", idx, len(img.Palette))
			}
			setPixel(img, place, x, subY, fullWidth, Pixel{Color: img.Palette[idx], PaletteIndex: idx, HasPalette: true})
		}

	case meta.ColorGrayAlpha:
		channels, err := rawChannels(packed, bitDepth, width, 2)
		if err != nil {
			return err
		}
		for x := 0; x < width; x++ {
			gray := narrowSample(channels[x][0], bitDepth)
			alpha := narrowSample(channels[x][1], bitDepth)
			setPixel(img, place, x, subY, fullWidth, Pixel{Color: Color{R: gray, G: gray, B: gray, A: alpha}})
		}

	case meta.ColorTrueColorA:
		channels, err := rawChannels(packed, bitDepth, width, 4)
		if err != nil {
			return err
		}
		for x := 0; x < width; x++ {
			c := Color{
				R: narrowSample(channels[x][0], bitDepth),
				G: narrowSample(channels[x][1], bitDepth),
				B: narrowSample(channels[x][2], bitDepth),
				A: narrowSample(channels[x][3], bitDepth),
			}
			setPixel(img, place, x, subY, fullWidth, Pixel{Color: c})
		}
	}
	return nil
}

func setPixel(img *Image, place placer, subX, subY, fullWidth int, p Pixel) {
	x, y := place(subX, subY)
	p.X, p.Y = x, y
	img.Pixels[y*fullWidth+x] = p
}

// narrowSample turns a raw sample (in its native bit-depth domain, widened
// to uint16) into its 8-bit display value: scaled up for sub-byte depths,
// the high byte for 16-bit, unchanged for 8-bit.
func narrowSample(v uint16, bitDepth int) uint8 {
	switch {
	case bitDepth < 8:
		return bitpack.ScaleSample(byte(v), bitDepth)
	case bitDepth == 16:
		return byte(v >> 8)
	default:
		return byte(v)
	}
}

// rawSamples extracts one raw (unscaled) sample per pixel from packed —
// used for single-channel color types where the raw value also needs
// comparing against a tRNS entry before any display scaling happens.
func rawSamples(packed []byte, bitDepth, width int) ([]uint16, error) {
	if bitDepth == 16 {
		words, err := bitpack.Group16(packed)
		if err != nil {
			return nil, errors.Wrap(ErrMalformedSample, err.Error())
		}
		if len(words) < width {
			return nil, errors.Wrapf(ErrMalformedSample, "pngcore: row has %d samples, want %d", len(words), width)
		}
		return words, nil
	}
	raw := bitpack.UnpackRaw(packed, bitDepth)
	if len(raw) < width {
		return nil, errors.Wrapf(ErrMalformedSample, "pngcore: row has %d samples, want %d", len(raw), width)
	}
	out := make([]uint16, width)
	for i := range out {
		out[i] = uint16(raw[i])
	}
	return out, nil
}

// rawChannels extracts `channels` raw samples per pixel from packed, for
// the multi-sample color types (always bit depth 8 or 16 per the PNG
// color-type/depth matrix).
func rawChannels(packed []byte, bitDepth, width, channels int) ([][]uint16, error) {
	var flat []uint16
	if bitDepth == 16 {
		words, err := bitpack.Group16(packed)
		if err != nil {
			return nil, errors.Wrap(ErrMalformedSample, err.Error())
		}
		flat = words
	} else {
		flat = make([]uint16, len(packed))
		for i, b := range packed {
			flat[i] = uint16(b)
		}
	}
	need := width * channels
	if len(flat) < need {
		return nil, errors.Wrapf(ErrMalformedSample, "pngcore: row has %d samples, want %d", len(flat), need)
	}
	out := make([][]uint16, width)
	for x := 0; x < width; x++ {
		out[x] = flat[x*channels : x*channels+channels]
	}
	return out, nil
}
