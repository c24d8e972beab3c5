package surface

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/draw"
	"io"

	"github.com/gogpu/gg"
)

const (
	DefaultWidth     = 280
	DefaultHeight    = 280
	DefaultLineWidth = 20.0

	inkColor        = "#000"
	backgroundColor = "#fff"

	dataURLPrefix = "data:image/png;base64,"
)

var ErrInvalidSize = errors.New("surface: width and height must be positive")

// Mode selects what a stroke segment does to the surface.
type Mode int

const (
	Draw Mode = iota
	Erase
)

func (m Mode) String() string {
	if m == Erase {
		return "erase"
	}
	return "draw"
}

// Point is a position in surface pixel coordinates.
type Point struct {
	X, Y float64
}

type Surface struct {
	dc        *gg.Context
	lineWidth float64
}

func New(width, height int, lineWidth float64) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	s := &Surface{dc: gg.NewContext(width, height), lineWidth: lineWidth}
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	s.Clear()
	return s, nil
}

// FromImage builds a surface from img flattened onto the background, so
// transparent pixels count as blank.
func FromImage(img image.Image, lineWidth float64) *Surface {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, image.White, image.Point{}, draw.Src)
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Over)

	s := &Surface{dc: gg.NewContextForImage(rgba), lineWidth: lineWidth}
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	return s
}

func (s *Surface) Width() int  { return s.dc.Width() }
func (s *Surface) Height() int { return s.dc.Height() }

// Segment strokes a line from a to b in the given mode.
func (s *Surface) Segment(a, b Point, mode Mode) error {
	if mode == Erase {
		s.dc.SetHexColor(backgroundColor)
	} else {
		s.dc.SetHexColor(inkColor)
	}
	s.dc.SetLineWidth(s.lineWidth)
	s.dc.MoveTo(a.X, a.Y)
	s.dc.LineTo(b.X, b.Y)
	return s.dc.Stroke()
}

// Clear resets every pixel to the background.
func (s *Surface) Clear() {
	s.dc.ClearPath()
	s.dc.ClearWithColor(gg.White)
}

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	_ = s.dc.FlushGPU()
	img := s.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Rect, img, img.Bounds().Min, draw.Src)
	return rgba
}

// IsEmpty reports whether the surface holds only background pixels.
func (s *Surface) IsEmpty() bool {
	return IsBlank(s.Snapshot())
}

// EncodePNG writes the surface as a PNG image.
func (s *Surface) EncodePNG(w io.Writer) error {
	_ = s.dc.FlushGPU()
	return s.dc.EncodePNG(w)
}

// DataURL serializes the surface as a base64 PNG data URL, the form the
// classifier accepts over the wire.
func (s *Surface) DataURL() (string, error) {
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return "", err
	}
	return DataURLFromPNG(buf.Bytes()), nil
}

func DataURLFromPNG(png []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// Ink reports whether the pixel at (x, y) differs from the background.
func Ink(img *image.RGBA, x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(img.Rect)) {
		return false
	}
	i := img.PixOffset(x, y)
	return img.Pix[i] != 0xff || img.Pix[i+1] != 0xff || img.Pix[i+2] != 0xff
}
