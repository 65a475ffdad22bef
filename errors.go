package pngcore

import (
	"github.com/pkg/errors"

	"github.com/brackenforge/pngcore/internal/bitpack"
	"github.com/brackenforge/pngcore/internal/chunk"
	"github.com/brackenforge/pngcore/internal/meta"
	"github.com/brackenforge/pngcore/internal/scanline"
)

// Error kinds, as enumerated in the core's error-handling design. Each is a
// stable sentinel a caller can test with errors.Is; functions return it
// either bare or wrapped with positional context. A few malformed-chunk
// conditions (an IHDR whose length is not 13, a tRNS, gAMA, sRGB or pHYs
// payload that is too short, an empty scanline row) are reported as plain
// errors with no sentinel, and some subpackage sentinels (such as
// meta.ErrPaletteNotAllowed and chunk.ErrChunkAfterIEND) have no alias
// here. Several are the same value as a
// subpackage's sentinel (chunk, meta, scanline, bitpack): aliasing instead
// of redeclaring keeps errors.Is working across the package boundary
// without another layer of wrapping.
var (
	ErrInvalidSignature       = chunk.ErrInvalidSignature
	ErrInvalidTerminator      = chunk.ErrInvalidTerminator
	ErrTruncated              = chunk.ErrTruncated
	ErrUnexpectedTrailingByte = errors.New("pngcore: inflated stream longer than the expected scanline data")

	ErrMissingIHDR           = meta.ErrMissingIHDR
	ErrInvalidColorTypeDepth = meta.ErrInvalidColorDepth
	ErrInvalidPaletteLength  = meta.ErrInvalidPaletteLength
	ErrMissingPalette        = meta.ErrMissingPalette

	ErrUnknownFilter   = scanline.ErrUnknownFilter
	ErrMalformedSample = bitpack.ErrOddLength

	ErrIndexOutOfRange = errors.New("pngcore: palette index out of range")
	ErrInflateFailed   = errors.New("pngcore: inflate failed")
)
