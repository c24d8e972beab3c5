package surface

import "image"

// IsBlank reports whether every pixel of img is the white background.
// Alpha is ignored. The scan stops at the first foreground pixel.
func IsBlank(img *image.RGBA) bool {
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			if row[i] != 0xff || row[i+1] != 0xff || row[i+2] != 0xff {
				return false
			}
		}
	}
	return true
}
