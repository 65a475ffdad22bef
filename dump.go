package pngcore

import "fmt"

// Dump is the diagnostic, human-readable rendering of a decoded Image: IHDR
// fields, palette entries in hex, metadata fields, and a truncated preview
// of the pixel grid. The exact text format is not a stable contract —
// callers needing a stable machine format should marshal an Image (or a
// subset of its fields) to JSON instead (see cmd/pngdump's -json flag).
func (img *Image) Dump() string {
	var out string
	out += fmt.Sprintf("width: %d\n", img.Width)
	out += fmt.Sprintf("height: %d\n", img.Height)
	out += fmt.Sprintf("bit depth: %d\n", img.BitDepth)
	out += fmt.Sprintf("color type: %d\n", img.ColorType)
	out += fmt.Sprintf("interlace: %d\n", img.Interlace)

	if len(img.Palette) > 0 {
		out += fmt.Sprintf("palette (%d entries):\n", len(img.Palette))
		for i, c := range img.Palette {
			out += fmt.Sprintf("  [%3d] #%02x%02x%02x%02x\n", i, c.R, c.G, c.B, c.A)
		}
	}
	if img.GammaSet {
		out += fmt.Sprintf("gamma: %d\n", img.Gamma)
	}
	if img.RenderingIntentSet {
		out += fmt.Sprintf("rendering intent: %d\n", img.RenderingIntent)
	}
	if img.PhysSet {
		out += fmt.Sprintf("pixels per unit: %dx%d (unit %d)\n", img.PPUX, img.PPUY, img.PhysUnit)
	}
	if img.TransparencyGraySet {
		out += fmt.Sprintf("trns gray: %d\n", img.TransparencyGray)
	}
	if img.TransparencyRGBSet {
		out += fmt.Sprintf("trns rgb: #%02x%02x%02x\n", img.TransparencyRGB.R, img.TransparencyRGB.G, img.TransparencyRGB.B)
	}

	const previewRows, previewCols = 16, 8
	rows := previewRows
	if int(img.Height) < rows {
		rows = int(img.Height)
	}
	cols := previewCols
	if int(img.Width) < cols {
		cols = int(img.Width)
	}
	out += fmt.Sprintf("pixels (preview %dx%d of %dx%d):\n", cols, rows, img.Width, img.Height)
	for y := 0; y < rows; y++ {
		out += "  "
		for x := 0; x < cols; x++ {
			p := img.Pixels[y*int(img.Width)+x]
			out += fmt.Sprintf("#%02x%02x%02x%02x ", p.Color.R, p.Color.G, p.Color.B, p.Color.A)
		}
		out += "\n"
	}
	return out
}
