package raster

import (
	"fmt"
	"math"

	"shapeme/internal/shape"
)

// Render clears f and paints the active shapes of s in storage order, so
// later shapes cover earlier ones.
func Render(f *Frame, s *shape.Set) {
	f.Clear()
	for _, sh := range s.Shapes() {
		Draw(f, sh)
	}
}

// Draw blends a single shape over the current contents of f.
func Draw(f *Frame, sh shape.Shape) {
	alpha := float32(sh.Opacity) / 100
	switch g := sh.Geom.(type) {
	case shape.Triangle:
		fillTriangle(f, g, sh.Color, alpha)
	case shape.Circle:
		fillCircle(f, g, sh.Color, alpha)
	default:
		panic(fmt.Sprintf("raster: unknown geometry %T", g))
	}
}

// fillTriangle walks the long edge A->C against the two short edges A->B
// and B->C. Vertices must be sorted by y.
func fillTriangle(f *Frame, t shape.Triangle, c shape.Color, alpha float32) {
	ax, ay := float32(t.A.X), float32(t.A.Y)
	bx, by := float32(t.B.X), float32(t.B.Y)
	cx, cy := float32(t.C.X), float32(t.C.Y)

	// zero-height edges step by the horizontal delta instead of a slope
	var dx1, dx2, dx3 float32
	if by-ay > 0 {
		dx1 = (bx - ax) / (by - ay)
	} else {
		dx1 = bx - ax
	}
	if cy-ay > 0 {
		dx2 = (cx - ax) / (cy - ay)
	}
	if cy-by > 0 {
		dx3 = (cx - bx) / (cy - by)
	}

	sx, sy := ax, ay
	ex := ax
	if dx1 > dx2 {
		for ; sy <= by; sy, sx, ex = sy+1, sx+dx2, ex+dx1 {
			hline(f, int(sx), int(ex), int(sy), c, alpha)
		}
		ex = bx
		for ; sy <= cy; sy, sx, ex = sy+1, sx+dx2, ex+dx3 {
			hline(f, int(sx), int(ex), int(sy), c, alpha)
		}
		return
	}
	for ; sy <= by; sy, sx, ex = sy+1, sx+dx1, ex+dx2 {
		hline(f, int(sx), int(ex), int(sy), c, alpha)
	}
	sx, sy = bx, by+1
	for ; sy <= cy; sy, sx, ex = sy+1, sx+dx3, ex+dx2 {
		hline(f, int(sx), int(ex), int(sy), c, alpha)
	}
}

func fillCircle(f *Frame, g shape.Circle, c shape.Color, alpha float32) {
	xc, yc, r := g.Center.X, g.Center.Y, g.Radius
	for y := yc - r; y <= yc+r; y++ {
		dy := y - yc
		d := math.Sqrt(float64(r*r - dy*dy))
		x1 := int(math.Round(float64(xc) + d))
		x2 := int(math.Round(float64(xc) - d))
		hline(f, x1, x2, y, c, alpha)
	}
}

// hline blends c over the pixels of row y between x1 and x2 inclusive, in
// either order. Rows and pixels off the frame are skipped.
func hline(f *Frame, x1, x2, y int, c shape.Color, alpha float32) {
	if y < 0 || y >= f.H {
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	x1 = max(x1, 0)
	x2 = min(x2, f.W-1)
	if x1 > x2 {
		return
	}
	ar := float32(int(alpha * float32(c.R)))
	ag := float32(int(alpha * float32(c.G)))
	ab := float32(int(alpha * float32(c.B)))
	inv := 1 - alpha
	p := f.Pix[(y*f.W+x1)*3 : (y*f.W+x2+1)*3]
	for i := 0; i < len(p); i += 3 {
		p[i] = uint8(ar + inv*float32(p[i]))
		p[i+1] = uint8(ag + inv*float32(p[i+1]))
		p[i+2] = uint8(ab + inv*float32(p[i+2]))
	}
}
