package surface

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func TestIsBlank(t *testing.T) {
	img := whiteImage(28, 28)
	if !IsBlank(img) {
		t.Fatal("expected all-white image to be blank")
	}

	img.Set(27, 27, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	if IsBlank(img) {
		t.Error("expected one black pixel to make the image non-blank")
	}
}

func TestIsBlankIgnoresAlpha(t *testing.T) {
	img := whiteImage(4, 4)
	img.Pix[3] = 0
	if !IsBlank(img) {
		t.Error("alpha channel should not affect blankness")
	}

	img.Pix[img.PixOffset(2, 1)+1] = 0xfe
	if IsBlank(img) {
		t.Error("a single off-white channel should count as ink")
	}
}

func TestIsBlankSubImage(t *testing.T) {
	img := whiteImage(10, 10)
	img.Set(0, 0, color.Black)
	sub := img.SubImage(image.Rect(5, 5, 10, 10)).(*image.RGBA)
	if !IsBlank(sub) {
		t.Error("ink outside the sub-image bounds should be ignored")
	}
}

func TestNewSurfaceIsEmpty(t *testing.T) {
	s, err := New(DefaultWidth, DefaultHeight, DefaultLineWidth)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	if !s.IsEmpty() {
		t.Error("fresh surface should be empty")
	}
	if s.Width() != DefaultWidth || s.Height() != DefaultHeight {
		t.Errorf("expected %dx%d, got %dx%d", DefaultWidth, DefaultHeight, s.Width(), s.Height())
	}
}

func TestNewSurfaceInvalidSize(t *testing.T) {
	if _, err := New(0, 10, 1); err != ErrInvalidSize {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestSegmentAndClear(t *testing.T) {
	s, err := New(100, 100, 10)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Segment(Point{20, 50}, Point{80, 50}, Draw); err != nil {
		t.Fatalf("segment: %v", err)
	}
	if s.IsEmpty() {
		t.Fatal("expected ink after drawing a segment")
	}
	if !Ink(s.Snapshot(), 50, 50) {
		t.Error("expected ink in the middle of the segment")
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("expected empty surface after clear")
	}
}

func TestEraseRemovesInk(t *testing.T) {
	s, err := New(60, 60, 10)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Segment(Point{30, 10}, Point{30, 50}, Draw)
	_ = s.Segment(Point{30, 0}, Point{30, 60}, Erase)

	if Ink(s.Snapshot(), 30, 30) {
		t.Error("expected the stroke centre to be erased")
	}
}

func TestDataURLRoundTrip(t *testing.T) {
	s, err := New(40, 30, 4)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Segment(Point{5, 5}, Point{35, 25}, Draw)

	url, err := s.DataURL()
	if err != nil {
		t.Fatalf("data url: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %.30s", url)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("expected 40x30, got %v", img.Bounds())
	}
}

func TestFromImageFlattensTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 30, 30))
	s := FromImage(img, 0)
	if s.Width() != 20 || s.Height() != 20 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if !s.IsEmpty() {
		t.Error("fully transparent image should be blank")
	}

	img.Set(15, 15, color.NRGBA{A: 0xff})
	if FromImage(img, 0).IsEmpty() {
		t.Error("opaque black pixel should count as ink")
	}
}
