package adam7

import "testing"

func TestDimensionsSumToFullImage(t *testing.T) {
	width, height := 8, 8
	total := 0
	for pass := 0; pass < 7; pass++ {
		w, h := Dimensions(pass, width, height)
		total += w * h
	}
	if total != width*height {
		t.Fatalf("adam7 passes cover %d pixels, want %d", total, width*height)
	}
}

func TestDimensionsSmallImage(t *testing.T) {
	// A 1x1 image only has pixel (0,0), which belongs to pass 0 only.
	w, h := Dimensions(0, 1, 1)
	if w != 1 || h != 1 {
		t.Fatalf("pass 0 of a 1x1 image should be 1x1, got %dx%d", w, h)
	}
	for pass := 1; pass < 7; pass++ {
		w, h := Dimensions(pass, 1, 1)
		if w != 0 && h != 0 {
			continue
		}
		if w != 0 || h != 0 {
			t.Fatalf("pass %d of a 1x1 image should contribute nothing, got %dx%d", pass, w, h)
		}
	}
}

func TestFullPositionWithinBounds(t *testing.T) {
	width, height := 16, 16
	seen := make(map[[2]int]bool)
	for pass := 0; pass < 7; pass++ {
		w, h := Dimensions(pass, width, height)
		for sy := 0; sy < h; sy++ {
			for sx := 0; sx < w; sx++ {
				x, y := FullPosition(pass, sx, sy)
				if x < 0 || x >= width || y < 0 || y >= height {
					t.Fatalf("pass %d (%d,%d) maps out of bounds to (%d,%d)", pass, sx, sy, x, y)
				}
				key := [2]int{x, y}
				if seen[key] {
					t.Fatalf("pixel (%d,%d) scattered to twice", x, y)
				}
				seen[key] = true
			}
		}
	}
	if len(seen) != width*height {
		t.Fatalf("adam7 passes covered %d distinct pixels, want %d", len(seen), width*height)
	}
}
