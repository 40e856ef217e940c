// Package history records the best-ever difference over generations and
// plots it.
package history

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultLimit bounds the number of retained points.
const DefaultLimit = 4096

var ErrEmpty = errors.New("history: no points recorded")

type Point struct {
	Generation int64
	Diff       float64
}

// History is safe for concurrent use. When it grows past its limit every
// other point is dropped, keeping the first and the latest.
type History struct {
	mu     sync.Mutex
	points []Point
	limit  int
}

func New(limit int) *History {
	if limit < 2 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

func (h *History) Add(gen int64, diff float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.points = append(h.points, Point{Generation: gen, Diff: diff})
	if len(h.points) <= h.limit {
		return
	}
	last := h.points[len(h.points)-1]
	kept := h.points[:0]
	for i := 0; i < len(h.points)-1; i += 2 {
		kept = append(kept, h.points[i])
	}
	h.points = append(kept, last)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.points)
}

// Points returns a copy of the recorded points in generation order.
func (h *History) Points() []Point {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Point(nil), h.points...)
}

// Plot renders the curve to path. The format follows the file extension
// (png, svg, pdf, ...).
func (h *History) Plot(path string) error {
	pts := h.Points()
	if len(pts) == 0 {
		return ErrEmpty
	}
	p := plot.New()
	p.Title.Text = "Best difference"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Difference (%)"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X = float64(pt.Generation)
		xys[i].Y = pt.Diff
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	p.Add(line)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("history: save %s: %w", path, err)
	}
	return nil
}
