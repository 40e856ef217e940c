// Package imageio loads target images into frames and writes frames back
// out as PNG.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"shapeme/internal/raster"
)

// MaxEdge is the largest supported width or height; coordinates are
// persisted as 16-bit values.
const MaxEdge = math.MaxInt16

var ErrEmptyImage = errors.New("imageio: image has no pixels")

// Decode reads an image in any registered format. When maxEdge > 0 and
// the image is larger, it is downscaled so its longest side is maxEdge.
// The format name is returned alongside the frame.
func Decode(r io.Reader, maxEdge int) (*raster.Frame, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	img = Fit(img, maxEdge)
	b := img.Bounds()
	if b.Empty() {
		return nil, format, ErrEmptyImage
	}
	if b.Dx() > MaxEdge || b.Dy() > MaxEdge {
		return nil, format, fmt.Errorf("imageio: %dx%d exceeds %d pixels per side", b.Dx(), b.Dy(), MaxEdge)
	}
	return raster.FromImage(img), format, nil
}

// Load decodes the image file at path.
func Load(path string, maxEdge int) (*raster.Frame, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: %w", err)
	}
	defer f.Close()
	fr, format, err := Decode(bufio.NewReader(f), maxEdge)
	if err != nil {
		return nil, format, fmt.Errorf("%s: %w", path, err)
	}
	return fr, format, nil
}

// Fit scales img down with a Lanczos filter so that neither side exceeds
// maxEdge, keeping the aspect ratio. Smaller images are returned as is.
func Fit(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return img
	}
	if w >= h {
		h = max(1, h*maxEdge/w)
		w = maxEdge
	} else {
		w = max(1, w*maxEdge/h)
		h = maxEdge
	}
	return transform.Resize(img, w, h, transform.Lanczos)
}

// EncodePNG writes f as an opaque PNG.
func EncodePNG(w io.Writer, f *raster.Frame) error {
	return png.Encode(w, f.Image())
}

// SavePNG writes f to path as PNG.
func SavePNG(path string, f *raster.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	bw := bufio.NewWriter(out)
	if err := EncodePNG(bw, f); err != nil {
		out.Close()
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("imageio: %w", err)
	}
	return out.Close()
}
