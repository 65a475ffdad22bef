// Package chunk splits the post-signature region of a PNG byte stream into
// its framing chunks by forward, length-driven parsing. It never searches
// for chunk-type ASCII tags in the payload bytes — that approach is fragile
// (false positives inside compressed or indexed payload data) and is the bug
// this package is written to avoid.
package chunk

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Signature is the 8-byte PNG file signature.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Terminator is the fixed final 8 bytes (type tag and CRC) of a zero-length
// IEND chunk.
var Terminator = [8]byte{0x49, 0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82}

// Type is a 4-byte ASCII chunk type tag, e.g. "IHDR".
type Type string

const (
	IHDR Type = "IHDR"
	PLTE Type = "PLTE"
	IDAT Type = "IDAT"
	IEND Type = "IEND"
	TRNS Type = "tRNS"
	GAMA Type = "gAMA"
	SRGB Type = "sRGB"
	PHYS Type = "pHYs"
)

// Chunk is one length-prefixed, type-tagged, CRC-terminated framing unit.
type Chunk struct {
	Length uint32
	Type   Type
	Data   []byte
	CRC    uint32
}

// Sentinel errors per the core's error-handling policy: every error kind is
// a stable value a caller can test with errors.Is, wrapped with positional
// context at the point of failure.
var (
	ErrInvalidSignature  = errors.New("chunk: invalid png signature")
	ErrInvalidTerminator = errors.New("chunk: invalid iend terminator")
	ErrTruncated         = errors.New("chunk: truncated chunk")
	ErrUnterminated      = errors.New("chunk: missing IEND chunk")
	ErrChunkAfterIEND    = errors.New("chunk: data found after IEND")
)

// Split validates the signature and terminator of data, then walks the
// region between them as a sequence of (length, type, payload, crc) records,
// stopping once IEND has been consumed. CRC fields are parsed but never
// verified here (see VerifyCRC32 for the opt-in diagnostic check) — that
// matches the core's documented non-goal of CRC verification on the decode
// path.
func Split(data []byte) ([]Chunk, error) {
	if len(data) < len(Signature) {
		return nil, errors.Wrap(ErrTruncated, "chunk: shorter than the png signature")
	}
	for i, b := range Signature {
		if data[i] != b {
			return nil, errors.Wrap(ErrInvalidSignature, "chunk: signature mismatch at byte offset 0")
		}
	}
	if len(data) < len(Signature)+len(Terminator) {
		return nil, errors.Wrap(ErrInvalidTerminator, "chunk: file too short to hold an IEND chunk")
	}
	var tail [8]byte
	copy(tail[:], data[len(data)-8:])
	if tail != Terminator {
		return nil, errors.Wrap(ErrInvalidTerminator, "chunk: final 8 bytes are not the IEND terminator")
	}

	var chunks []Chunk
	offset := len(Signature)
	seenIEND := false
	for offset < len(data) {
		if seenIEND {
			return nil, errors.Wrapf(ErrChunkAfterIEND, "chunk: byte offset %d", offset)
		}
		if offset+8 > len(data) {
			return nil, errors.Wrapf(ErrTruncated, "chunk: header truncated at byte offset %d", offset)
		}
		length := binary.BigEndian.Uint32(data[offset : offset+4])
		typ := Type(data[offset+4 : offset+8])
		offset += 8

		payloadEnd := offset + int(length)
		if length > uint32(len(data)) || payloadEnd < offset || payloadEnd+4 > len(data) {
			return nil, errors.Wrapf(ErrTruncated, "chunk: %s payload truncated at byte offset %d", typ, offset)
		}
		payload := data[offset:payloadEnd]
		offset = payloadEnd

		crc := binary.BigEndian.Uint32(data[offset : offset+4])
		offset += 4

		chunks = append(chunks, Chunk{Length: length, Type: typ, Data: payload, CRC: crc})
		if typ == IEND {
			seenIEND = true
		}
	}
	if !seenIEND {
		return nil, errors.Wrap(ErrUnterminated, "chunk: no IEND chunk consumed")
	}
	return chunks, nil
}

// ConcatIDAT concatenates the payloads of every IDAT chunk in file order, as
// required before inflation: IDAT boundaries carry no semantic meaning and
// must never be reordered.
func ConcatIDAT(chunks []Chunk) []byte {
	var buf []byte
	for _, c := range chunks {
		if c.Type == IDAT {
			buf = append(buf, c.Data...)
		}
	}
	return buf
}
