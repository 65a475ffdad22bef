// Package meta parses the PNG header chunk and the closed set of metadata
// chunks this core understands (IHDR, PLTE, tRNS, gAMA, sRGB, pHYs) into a
// typed Metadata value.
package meta

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/brackenforge/pngcore/internal/chunk"
)

// Color type codes, as per the PNG spec.
const (
	ColorGray       = 0
	ColorTrueColor  = 2
	ColorIndexed    = 3
	ColorGrayAlpha  = 4
	ColorTrueColorA = 6
)

// Interlace methods.
const (
	InterlaceNone  = 0
	InterlaceAdam7 = 1
)

// SamplesPerPixel returns how many samples (channels or palette index) make
// up one pixel for colorType, or 0 for an unrecognized color type.
func SamplesPerPixel(colorType uint8) int {
	switch colorType {
	case ColorGray, ColorIndexed:
		return 1
	case ColorTrueColor:
		return 3
	case ColorGrayAlpha:
		return 2
	case ColorTrueColorA:
		return 4
	default:
		return 0
	}
}

// legalDepths is the PNG color-type/bit-depth matrix: which bit depths are
// legal for each color type, per the PNG specification.
var legalDepths = map[uint8]map[uint8]bool{
	ColorGray:       {1: true, 2: true, 4: true, 8: true, 16: true},
	ColorTrueColor:  {8: true, 16: true},
	ColorIndexed:    {1: true, 2: true, 4: true, 8: true},
	ColorGrayAlpha:  {8: true, 16: true},
	ColorTrueColorA: {8: true, 16: true},
}

// Color is an RGBA palette/transparency entry; 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

// Metadata is every field this core recognizes out of IHDR and the
// metadata chunks that may precede the IDAT stream.
type Metadata struct {
	Width, Height     uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	Interlace         uint8

	Palette []Color

	// GammaSet/Gamma hold gAMA's value (units of 1/100000); stored, never
	// applied: gamma correction is out of scope for this decoder.
	GammaSet bool
	Gamma    uint32

	// RenderingIntentSet/RenderingIntent hold sRGB's single byte; stored,
	// never applied.
	RenderingIntentSet bool
	RenderingIntent    uint8

	// PhysSet/PPUX/PPUY/PhysUnit hold pHYs; stored, never applied.
	PhysSet  bool
	PPUX     uint32
	PPUY     uint32
	PhysUnit uint8

	// TransparencyGray is tRNS's single 16-bit gray level for color type 0.
	TransparencyGray    uint16
	TransparencyGraySet bool

	// TransparencyRGB is tRNS's RGB triple for color type 2 as 8-bit values:
	// each component unchanged for 8-bit images, its high byte for 16-bit
	// images. Assembly does not read it; samples are compared against
	// TransparencyRGB16.
	TransparencyRGB    Color
	TransparencyRGBSet bool
	// TransparencyRGB16 holds the exact 16-bit components so 16-bit images
	// can compare against the full-precision value before narrowing.
	TransparencyRGB16 [3]uint16
}

// Sentinel errors, per the core's error-handling policy.
var (
	ErrMissingIHDR          = errors.New("meta: missing IHDR chunk")
	ErrInvalidColorDepth    = errors.New("meta: invalid color type / bit depth combination")
	ErrInvalidPaletteLength = errors.New("meta: PLTE length is not a multiple of 3")
	ErrPaletteNotAllowed    = errors.New("meta: PLTE chunk present for a color type that forbids it")
	ErrMissingPalette       = errors.New("meta: color type 3 requires a PLTE chunk")
	ErrChunkAfterIEND       = errors.New("meta: chunk found after IEND")
)

// Interpret walks chunks (as produced by chunk.Split) and resolves IHDR plus
// the recognized metadata chunks into a Metadata value. Unknown chunk types
// are ignored.
func Interpret(chunks []chunk.Chunk) (*Metadata, error) {
	if len(chunks) == 0 || chunks[0].Type != chunk.IHDR {
		return nil, ErrMissingIHDR
	}
	md := &Metadata{}
	if err := parseIHDR(md, chunks[0]); err != nil {
		return nil, err
	}

	seenIEND := false
	for _, c := range chunks[1:] {
		if seenIEND {
			return nil, errors.Wrapf(ErrChunkAfterIEND, "meta: chunk type %s", c.Type)
		}
		switch c.Type {
		case chunk.PLTE:
			if err := parsePLTE(md, c); err != nil {
				return nil, err
			}
		case chunk.TRNS:
			if err := parseTRNS(md, c); err != nil {
				return nil, err
			}
		case chunk.GAMA:
			if err := parseGAMA(md, c); err != nil {
				return nil, err
			}
		case chunk.SRGB:
			if err := parseSRGB(md, c); err != nil {
				return nil, err
			}
		case chunk.PHYS:
			if err := parsePHYS(md, c); err != nil {
				return nil, err
			}
		case chunk.IEND:
			seenIEND = true
		default:
			// Unknown and unhandled chunk types (IDAT included — the
			// assembler reads those directly) are ignored here.
		}
	}

	if md.ColorType == ColorIndexed && len(md.Palette) == 0 {
		return nil, ErrMissingPalette
	}
	return md, nil
}

func parseIHDR(md *Metadata, c chunk.Chunk) error {
	if len(c.Data) != 13 {
		return errors.Errorf("meta: IHDR length must be 13, got %d", len(c.Data))
	}
	md.Width = binary.BigEndian.Uint32(c.Data[0:4])
	md.Height = binary.BigEndian.Uint32(c.Data[4:8])
	md.BitDepth = c.Data[8]
	md.ColorType = c.Data[9]
	md.CompressionMethod = c.Data[10]
	md.FilterMethod = c.Data[11]
	md.Interlace = c.Data[12]

	depths, ok := legalDepths[md.ColorType]
	if !ok || !depths[md.BitDepth] {
		return errors.Wrapf(ErrInvalidColorDepth, "meta: color type %d, bit depth %d", md.ColorType, md.BitDepth)
	}
	return nil
}

func parsePLTE(md *Metadata, c chunk.Chunk) error {
	if md.ColorType != ColorTrueColor && md.ColorType != ColorIndexed && md.ColorType != ColorTrueColorA {
		return errors.Wrapf(ErrPaletteNotAllowed, "meta: color type %d", md.ColorType)
	}
	if len(c.Data)%3 != 0 {
		return ErrInvalidPaletteLength
	}
	// No deduplication: every index into this slice must remain valid, and
	// adjacent identical colors are a legitimate encoding choice, not noise
	// to collapse.
	md.Palette = make([]Color, 0, len(c.Data)/3)
	for i := 0; i+3 <= len(c.Data); i += 3 {
		md.Palette = append(md.Palette, Color{R: c.Data[i], G: c.Data[i+1], B: c.Data[i+2], A: 255})
	}
	return nil
}

func parseTRNS(md *Metadata, c chunk.Chunk) error {
	switch md.ColorType {
	case ColorGray:
		if len(c.Data) < 2 {
			return errors.New("meta: tRNS too short for color type 0")
		}
		md.TransparencyGray = binary.BigEndian.Uint16(c.Data[0:2])
		md.TransparencyGraySet = true
	case ColorTrueColor:
		if len(c.Data) < 6 {
			return errors.New("meta: tRNS too short for color type 2")
		}
		r := binary.BigEndian.Uint16(c.Data[0:2])
		g := binary.BigEndian.Uint16(c.Data[2:4])
		b := binary.BigEndian.Uint16(c.Data[4:6])
		md.TransparencyRGB16 = [3]uint16{r, g, b}
		narrow := func(v uint16) uint8 { return uint8(v) }
		if md.BitDepth == 16 {
			narrow = narrow16
		}
		md.TransparencyRGB = Color{R: narrow(r), G: narrow(g), B: narrow(b), A: 255}
		md.TransparencyRGBSet = true
	case ColorIndexed:
		for i, a := range c.Data {
			if i >= len(md.Palette) {
				break
			}
			md.Palette[i].A = a
		}
		// Missing tail entries default to 255, which is already the value
		// PLTE parsing set them to.
	default:
		// tRNS is prohibited for color types 4 and 6 (they already carry a
		// full alpha channel); silently ignored rather than erroring, since
		// a malformed-but-harmless chunk here shouldn't fail the whole
		// decode.
	}
	return nil
}

func narrow16(v uint16) uint8 {
	return uint8(v >> 8)
}

func parseGAMA(md *Metadata, c chunk.Chunk) error {
	if len(c.Data) < 4 {
		return errors.New("meta: gAMA too short")
	}
	md.Gamma = binary.BigEndian.Uint32(c.Data[0:4])
	md.GammaSet = true
	return nil
}

func parseSRGB(md *Metadata, c chunk.Chunk) error {
	if len(c.Data) < 1 {
		return errors.New("meta: sRGB too short")
	}
	md.RenderingIntent = c.Data[0]
	md.RenderingIntentSet = true
	return nil
}

func parsePHYS(md *Metadata, c chunk.Chunk) error {
	if len(c.Data) < 9 {
		return errors.New("meta: pHYs too short")
	}
	md.PPUX = binary.BigEndian.Uint32(c.Data[0:4])
	md.PPUY = binary.BigEndian.Uint32(c.Data[4:8])
	md.PhysUnit = c.Data[8]
	md.PhysSet = true
	return nil
}
