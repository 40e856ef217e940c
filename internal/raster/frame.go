// Package raster paints shape sets onto RGB framebuffers and scores them
// against a target image.
package raster

import (
	"image"
	"image/color"

	"shapeme/internal/shape"
)

// Frame is a row-major RGB buffer, 3 bytes per pixel, no padding.
type Frame struct {
	W, H int
	Pix  []uint8
}

func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

func (f *Frame) Bounds() shape.Bounds { return shape.Bounds{W: f.W, H: f.H} }

// Clear paints the frame black.
func (f *Frame) Clear() { clear(f.Pix) }

func (f *Frame) At(x, y int) shape.Color {
	i := (y*f.W + x) * 3
	return shape.Color{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2]}
}

func (f *Frame) Set(x, y int, c shape.Color) {
	i := (y*f.W + x) * 3
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = c.R, c.G, c.B
}

// CopyFrom copies src into f, reallocating when the sizes differ.
func (f *Frame) CopyFrom(src *Frame) {
	if len(f.Pix) != len(src.Pix) {
		f.Pix = make([]uint8, len(src.Pix))
	}
	f.W, f.H = src.W, src.H
	copy(f.Pix, src.Pix)
}

func (f *Frame) Clone() *Frame {
	c := &Frame{}
	c.CopyFrom(f)
	return c
}

// Image converts the frame into an opaque RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
	for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FromImage copies img into a new frame. The alpha channel is dropped:
// straight (non-premultiplied) colour values are kept as they are.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < f.H; y++ {
			row := src.Pix[(y+b.Min.Y-src.Rect.Min.Y)*src.Stride+(b.Min.X-src.Rect.Min.X)*4:]
			for x := 0; x < f.W; x++ {
				i := (y*f.W + x) * 3
				f.Pix[i], f.Pix[i+1], f.Pix[i+2] = row[x*4], row[x*4+1], row[x*4+2]
			}
		}
		return f
	}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			f.Set(x, y, shape.Color{R: c.R, G: c.G, B: c.B})
		}
	}
	return f
}
