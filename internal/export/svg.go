// Package export renders shape sets as SVG documents.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jbeda/geom"

	"shapeme/internal/shape"
)

// SVG is a minimal streaming SVG writer. The first write error sticks and
// is returned by End.
type SVG struct {
	w   io.Writer
	err error
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{w: w}
}

func (svg *SVG) printf(format string, a ...any) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.w, format, a...)
}

func (svg *SVG) Start(viewBox geom.Rect) {
	svg.printf(`<?xml version="1.0" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg width="%g" height="%g" viewBox="%g %g %g %g" style="background-color:#000000;" version="1.1" xmlns="http://www.w3.org/2000/svg">
`, viewBox.Width(), viewBox.Height(), viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height())
}

func (svg *SVG) Polygon(pts []geom.Coord, style string) {
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
	}
	svg.printf("<polygon points=\"%s\" style=\"%s\"/>\n", strings.Join(coords, " "), style)
}

func (svg *SVG) Circle(c geom.Coord, r float64, style string) {
	svg.printf("<circle cx=\"%g\" cy=\"%g\" r=\"%g\" style=\"%s\"/>\n", c.X, c.Y, r, style)
}

func (svg *SVG) End() error {
	svg.printf("</svg>\n")
	return svg.err
}

func fill(c shape.Color, opacity float64) string {
	return fmt.Sprintf("fill:%s;stroke:#000000;stroke-width:0;fill-opacity:%.2f;", c.Hex(), opacity)
}

func coord(p shape.Point) geom.Coord {
	return geom.Coord{X: float64(p.X), Y: float64(p.Y)}
}

// Write emits the active shapes of set in painter's order over a black
// background covering the canvas.
func Write(w io.Writer, set *shape.Set, b shape.Bounds) error {
	canvas := geom.Rect{Min: geom.Coord{X: 0, Y: 0}, Max: geom.Coord{X: float64(b.W), Y: float64(b.H)}}
	svg := NewSVG(w)
	svg.Start(canvas)
	right, bottom := float64(b.W-1), float64(b.H-1)
	svg.Polygon([]geom.Coord{{X: 0, Y: 0}, {X: right, Y: 0}, {X: right, Y: bottom}, {X: 0, Y: bottom}},
		fill(shape.Color{}, 1))
	for _, sh := range set.Shapes() {
		style := fill(sh.Color, sh.Alpha())
		switch g := sh.Geom.(type) {
		case shape.Triangle:
			svg.Polygon([]geom.Coord{coord(g.A), coord(g.B), coord(g.C)}, style)
		case shape.Circle:
			svg.Circle(coord(g.Center), float64(g.Radius), style)
		default:
			panic(fmt.Sprintf("export: unknown geometry %T", g))
		}
	}
	return svg.End()
}

// Save writes the SVG for set to path.
func Save(path string, set *shape.Set, b shape.Bounds) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := Write(bw, set, b); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	return f.Close()
}
