package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"shapeme/internal/raster"
	"shapeme/internal/shape"
)

func encode(t *testing.T, img image.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestDecodeDiscardsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 10, B: 30, A: 40})
	img.SetNRGBA(2, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	f, format, err := Decode(encode(t, img), 0)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" {
		t.Fatalf("format = %q", format)
	}
	if f.W != 3 || f.H != 2 {
		t.Fatalf("size = %dx%d", f.W, f.H)
	}
	if got := f.At(0, 0); got != (shape.Color{R: 200, G: 10, B: 30}) {
		t.Fatalf("pixel (0,0) = %+v", got)
	}
	if got := f.At(2, 1); got != (shape.Color{R: 1, G: 2, B: 3}) {
		t.Fatalf("pixel (2,1) = %+v", got)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, _, err := Decode(bytes.NewReader([]byte("not an image")), 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, edge   int
		wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{100, 50, 40, 40, 20},
		{30, 90, 45, 15, 45},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
		b := Fit(img, tt.edge).Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("Fit(%dx%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.edge, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestDecodeResizes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, _, err := Decode(encode(t, img), 16)
	if err != nil {
		t.Fatal(err)
	}
	if f.W != 16 || f.H != 8 {
		t.Fatalf("size = %dx%d", f.W, f.H)
	}
	if c := f.At(8, 4); c.R < 250 || c.G < 250 || c.B < 250 {
		t.Fatalf("resized white pixel = %+v", c)
	}
}

func TestSaveAndLoadPNG(t *testing.T) {
	f := raster.NewFrame(4, 3)
	f.Set(1, 2, shape.Color{R: 9, G: 99, B: 199})
	path := filepath.Join(t.TempDir(), "snap.png")
	if err := SavePNG(path, f); err != nil {
		t.Fatal(err)
	}
	got, _, err := Load(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Pix, f.Pix) {
		t.Fatal("PNG round trip changed pixels")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Fatal("expected error")
	}
}
