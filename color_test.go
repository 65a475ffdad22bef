package pngcore

import "testing"

func TestColorLerp(t *testing.T) {
	black := Color{R: 0, G: 0, B: 0, A: 255}
	white := Color{R: 255, G: 255, B: 255, A: 255}

	if got := black.Lerp(white, 0); got != black {
		t.Errorf("Lerp(amount=0) = %+v, want %+v", got, black)
	}
	if got := black.Lerp(white, 1); got != white {
		t.Errorf("Lerp(amount=1) = %+v, want %+v", got, white)
	}

	mid := black.Lerp(white, 0.5)
	if mid.R != 127 || mid.G != 127 || mid.B != 127 {
		t.Errorf("Lerp(amount=0.5) = %+v, want each channel near 127", mid)
	}
}

func TestColorFlattenOpaqueUnchanged(t *testing.T) {
	c := Color{R: 10, G: 20, B: 30, A: 255}
	background := Color{R: 255, G: 255, B: 255, A: 255}

	if got := c.Flatten(background); got != c {
		t.Errorf("Flatten of an opaque color = %+v, want unchanged %+v", got, c)
	}
}

func TestColorFlattenHalfAlphaBlendsTowardBackground(t *testing.T) {
	c := Color{R: 255, G: 0, B: 0, A: 128}
	background := Color{R: 255, G: 255, B: 255, A: 255}

	flat := c.Flatten(background)
	if flat.A != 255 {
		t.Errorf("Flatten().A = %d, want 255", flat.A)
	}
	if flat.R != 255 {
		t.Errorf("Flatten().R = %d, want 255 (red channel already matches background)", flat.R)
	}
	if flat.G == 0 || flat.G == 255 {
		t.Errorf("Flatten().G = %d, want a value between 0 and 255", flat.G)
	}
}

func TestColorFlattenFullyTransparentMatchesBackground(t *testing.T) {
	c := Color{R: 10, G: 20, B: 30, A: 0}
	background := Color{R: 200, G: 100, B: 50, A: 255}

	flat := c.Flatten(background)
	if flat.R != background.R || flat.G != background.G || flat.B != background.B {
		t.Errorf("Flatten() of a fully transparent color = %+v, want %+v", flat, background)
	}
	if flat.A != 255 {
		t.Errorf("Flatten().A = %d, want 255", flat.A)
	}
}
