package pngcore

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// Inflater decompresses a concatenated IDAT payload into the raw scanline
// bytes the Pixel Assembler walks. It is a seam: DecodeWith accepts any
// Inflater, and Decode uses the zlib-backed default.
type Inflater interface {
	Inflate(data []byte) ([]byte, error)
}

// InflaterFunc adapts a plain function to the Inflater interface.
type InflaterFunc func(data []byte) ([]byte, error)

// Inflate calls f.
func (f InflaterFunc) Inflate(data []byte) ([]byte, error) { return f(data) }

// zlibInflater is the default Inflater, backed by klauspost/compress's zlib
// implementation rather than the standard library's — a drop-in reader with
// the same interface, chosen for its faster inflate path.
type zlibInflater struct{}

func (zlibInflater) Inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrInflateFailed, err.Error())
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(ErrInflateFailed, err.Error())
	}
	return out, nil
}

var defaultInflater Inflater = zlibInflater{}
