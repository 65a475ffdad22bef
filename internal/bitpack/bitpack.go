// Package bitpack implements the sample-width transforms a PNG decoder needs
// between packed sub-byte storage and one-byte-per-sample working memory.
package bitpack

import "github.com/pkg/errors"

// ErrOddLength is returned by Group16 when given an odd number of bytes.
var ErrOddLength = errors.New("bitpack: odd-length byte slice cannot be grouped into 16-bit words")

// Unpack1 expands each input byte into 8 output bytes, one per bit, MSB
// first. A set bit becomes 0xFF, a clear bit becomes 0x00.
func Unpack1(src []byte) []byte {
	dst := make([]byte, 0, len(src)*8)
	for _, b := range src {
		mask := byte(0x80)
		for i := 0; i < 8; i++ {
			if b&mask != 0 {
				dst = append(dst, 0xFF)
			} else {
				dst = append(dst, 0x00)
			}
			mask >>= 1
		}
	}
	return dst
}

// Unpack2 expands each input byte into 4 output bytes, one per 2-bit group,
// scaled by 0x55 so {0,1,2,3} map to {0x00,0x55,0xAA,0xFF}.
func Unpack2(src []byte) []byte {
	dst := make([]byte, 0, len(src)*4)
	for _, b := range src {
		shift := uint(6)
		for i := 0; i < 4; i++ {
			v := (b >> shift) & 0x03
			dst = append(dst, v*0x55)
			shift -= 2
		}
	}
	return dst
}

// Unpack4 expands each input byte into 2 output bytes, one per nibble,
// scaled by 0x11.
func Unpack4(src []byte) []byte {
	dst := make([]byte, 0, len(src)*2)
	for _, b := range src {
		dst = append(dst, (b>>4)*0x11)
		dst = append(dst, (b&0x0F)*0x11)
	}
	return dst
}

// Narrow16To8 emits the high byte of each big-endian 16-bit word.
func Narrow16To8(words []uint16) []byte {
	dst := make([]byte, len(words))
	for i, w := range words {
		dst[i] = byte(w >> 8)
	}
	return dst
}

// Group16 pairs consecutive bytes big-endian into 16-bit words.
func Group16(src []byte) ([]uint16, error) {
	if len(src)%2 != 0 {
		return nil, ErrOddLength
	}
	dst := make([]uint16, len(src)/2)
	for i := range dst {
		dst[i] = uint16(src[2*i])<<8 | uint16(src[2*i+1])
	}
	return dst, nil
}

// UnpackRaw expands src from bitDepth bits per sample into one byte per
// sample, without the display scaling Unpack1/Unpack2/Unpack4 apply: each
// output byte holds the raw 0..2^bitDepth-1 value.
//
// Indexed-color palette lookups and tRNS gray/RGB equality checks need this
// raw value rather than a display-scaled one — a palette can hold fewer
// than 2^bitDepth entries, and scaling a raw index would turn it into
// either an out-of-range index or a collision with the wrong entry.
func UnpackRaw(src []byte, bitDepth int) []byte {
	switch bitDepth {
	case 1, 2, 4:
		return unpackRawN(src, bitDepth)
	default:
		return src
	}
}

func unpackRawN(src []byte, bitDepth int) []byte {
	perByte := 8 / bitDepth
	mask := byte(1<<uint(bitDepth) - 1)
	dst := make([]byte, 0, len(src)*perByte)
	for _, b := range src {
		for i := 0; i < perByte; i++ {
			shift := uint(8 - bitDepth*(i+1))
			dst = append(dst, (b>>shift)&mask)
		}
	}
	return dst
}

// ScaleSample scales a raw bitDepth-domain sample (as produced by
// UnpackRaw) up to the full 8-bit display range, matching the scaling
// Unpack1/Unpack2/Unpack4 apply internally. Used to turn a grayscale
// sample's raw value into a display gray level after a tRNS comparison has
// already been made against the raw value.
func ScaleSample(raw byte, bitDepth int) byte {
	switch bitDepth {
	case 1:
		return raw * 0xFF
	case 2:
		return raw * 0x55
	case 4:
		return raw * 0x11
	default:
		return raw
	}
}

