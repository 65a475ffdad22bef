package meta

import (
	"encoding/binary"
	"testing"

	"github.com/brackenforge/pngcore/internal/chunk"
)

func ihdrChunk(width, height uint32, depth, colorType uint8) chunk.Chunk {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], width)
	binary.BigEndian.PutUint32(data[4:8], height)
	data[8] = depth
	data[9] = colorType
	return chunk.Chunk{Type: chunk.IHDR, Data: data, Length: 13}
}

func TestInterpretMissingIHDR(t *testing.T) {
	_, err := Interpret([]chunk.Chunk{{Type: chunk.IDAT, Data: []byte{1}}})
	if err != ErrMissingIHDR {
		t.Fatalf("got %v", err)
	}
}

func TestInterpretInvalidColorDepth(t *testing.T) {
	chunks := []chunk.Chunk{ihdrChunk(1, 1, 3, ColorTrueColor)}
	_, err := Interpret(chunks)
	if err == nil {
		t.Fatal("expected an error for color type 2 depth 3")
	}
}

func TestInterpretIndexedRequiresPalette(t *testing.T) {
	chunks := []chunk.Chunk{ihdrChunk(1, 1, 8, ColorIndexed), {Type: chunk.IEND}}
	_, err := Interpret(chunks)
	if err != ErrMissingPalette {
		t.Fatalf("got %v", err)
	}
}

func TestInterpretPaletteNoDedup(t *testing.T) {
	plte := chunk.Chunk{Type: chunk.PLTE, Data: []byte{10, 10, 10, 10, 10, 10, 20, 20, 20}}
	chunks := []chunk.Chunk{ihdrChunk(1, 1, 8, ColorIndexed), plte, {Type: chunk.IEND}}
	md, err := Interpret(chunks)
	if err != nil {
		t.Fatal(err)
	}
	if len(md.Palette) != 3 {
		t.Fatalf("expected duplicate-but-distinct palette entries preserved, got %d entries", len(md.Palette))
	}
}

func TestInterpretTRNSGray(t *testing.T) {
	trns := chunk.Chunk{Type: chunk.TRNS, Data: []byte{0x00, 0x80}}
	chunks := []chunk.Chunk{ihdrChunk(1, 1, 8, ColorGray), trns, {Type: chunk.IEND}}
	md, err := Interpret(chunks)
	if err != nil {
		t.Fatal(err)
	}
	if !md.TransparencyGraySet || md.TransparencyGray != 0x80 {
		t.Fatalf("got %+v", md)
	}
}

func TestInterpretTRNSIndexedDefaultsTail(t *testing.T) {
	plte := chunk.Chunk{Type: chunk.PLTE, Data: []byte{255, 0, 0, 0, 0, 255}}
	trns := chunk.Chunk{Type: chunk.TRNS, Data: []byte{0}}
	chunks := []chunk.Chunk{ihdrChunk(1, 1, 8, ColorIndexed), plte, trns, {Type: chunk.IEND}}
	md, err := Interpret(chunks)
	if err != nil {
		t.Fatal(err)
	}
	if md.Palette[0].A != 0 {
		t.Fatalf("expected palette[0].A == 0, got %d", md.Palette[0].A)
	}
	if md.Palette[1].A != 255 {
		t.Fatalf("expected palette[1].A to default to 255, got %d", md.Palette[1].A)
	}
}

func TestInterpretGammaSRGBPhysStoredNotApplied(t *testing.T) {
	gama := chunk.Chunk{Type: chunk.GAMA, Data: []byte{0, 0, 0xAF, 0xC8}}
	srgb := chunk.Chunk{Type: chunk.SRGB, Data: []byte{1}}
	phys := chunk.Chunk{Type: chunk.PHYS, Data: []byte{0, 0, 0x0B, 0x13, 0, 0, 0x0B, 0x13, 1}}
	chunks := []chunk.Chunk{ihdrChunk(1, 1, 8, ColorGray), gama, srgb, phys, {Type: chunk.IEND}}
	md, err := Interpret(chunks)
	if err != nil {
		t.Fatal(err)
	}
	if !md.GammaSet || !md.RenderingIntentSet || !md.PhysSet {
		t.Fatalf("expected all three ancillary chunks recorded, got %+v", md)
	}
}
