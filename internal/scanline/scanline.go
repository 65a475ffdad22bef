// Package scanline owns a single reconstructed row of a PNG image: its
// filter byte and the packed byte stream belonging to that row, plus the
// five inverse filters used to reconstruct it against the previous row.
//
// Per the Design Notes this operates on the row as the PNG filter algorithms
// define it: whole bytes of the packed stream, before any bit-depth
// unpacking. Unpacking to one-sample-per-byte happens later, during pixel
// materialization, not here.
package scanline

import "github.com/pkg/errors"

// Filter type codes, as defined by the PNG spec.
const (
	FilterNone    = 0
	FilterSub     = 1
	FilterUp      = 2
	FilterAverage = 3
	FilterPaeth   = 4
)

// ErrUnknownFilter is returned when a row's filter byte is outside 0..4.
var ErrUnknownFilter = errors.New("scanline: unknown filter type")

// Scanline is one row of raw (still packed) PNG sample bytes, plus its
// filter byte and the pixel stride used for the filter's left/up-left
// lookups.
type Scanline struct {
	Filter      byte
	Bytes       []byte // the row's filtered/unfiltered packed bytes (mutated in place by Unfilter)
	PixelStride int    // byte distance to the left-neighbor same-channel sample
	RawBytes    []byte // the original filter byte + packed row, retained for diagnostics
}

// New splits row (1 + packed row length bytes) into its filter byte and
// packed sample bytes. pixelStride must be >= 1 (callers pass
// max(1, ceil(bitDepth/8)*samplesPerPixel)).
func New(row []byte, pixelStride int) (*Scanline, error) {
	if len(row) < 1 {
		return nil, errors.New("scanline: row shorter than the filter byte")
	}
	if pixelStride < 1 {
		pixelStride = 1
	}
	packed := make([]byte, len(row)-1)
	copy(packed, row[1:])
	return &Scanline{
		Filter:      row[0],
		Bytes:       packed,
		PixelStride: pixelStride,
		RawBytes:    row,
	}, nil
}

// Unfilter reconstructs s.Bytes in place against prev, the previous row's
// already-reconstructed packed bytes (nil or a zero-filled slice of the same
// length when there is no previous row, e.g. the first row of an image or
// sub-image pass).
func (s *Scanline) Unfilter(prev []byte) error {
	if prev == nil {
		prev = make([]byte, len(s.Bytes))
	}
	switch s.Filter {
	case FilterNone:
		// No-op: the reconstructed sample equals the stored byte.
	case FilterSub:
		s.unsub()
	case FilterUp:
		s.unup(prev)
	case FilterAverage:
		s.unaverage(prev)
	case FilterPaeth:
		s.unpaeth(prev)
	default:
		return errors.Wrapf(ErrUnknownFilter, "scanline: filter byte %d", s.Filter)
	}
	return nil
}

func (s *Scanline) unsub() {
	stride := s.PixelStride
	for i := stride; i < len(s.Bytes); i++ {
		s.Bytes[i] = byte(int(s.Bytes[i]) + int(s.Bytes[i-stride]))
	}
}

func (s *Scanline) unup(prev []byte) {
	for i := range s.Bytes {
		s.Bytes[i] = byte(int(s.Bytes[i]) + int(prev[i]))
	}
}

func (s *Scanline) unaverage(prev []byte) {
	stride := s.PixelStride
	for i := range s.Bytes {
		var left int
		if i-stride >= 0 {
			left = int(s.Bytes[i-stride])
		}
		avg := (left + int(prev[i])) / 2
		s.Bytes[i] = byte(int(s.Bytes[i]) + avg)
	}
}

func (s *Scanline) unpaeth(prev []byte) {
	stride := s.PixelStride
	for i := range s.Bytes {
		var left, upLeft int
		if i-stride >= 0 {
			left = int(s.Bytes[i-stride])
			upLeft = int(prev[i-stride])
		}
		up := int(prev[i])
		s.Bytes[i] = byte(int(s.Bytes[i]) + Paeth(left, up, upLeft))
	}
}

// Paeth is the PNG Paeth predictor: given the left, up, and up-left
// neighbor samples (as unsigned byte values widened to int), it picks
// whichever of the three is closest to a+b-c, preferring a, then b, then c
// on ties.
func Paeth(a, b, c int) int {
	p := a + b - c
	pa := abs(p - a)
	pb := abs(p - b)
	pc := abs(p - c)
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
