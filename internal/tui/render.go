package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shapeme/internal/raster"
	"shapeme/internal/shape"
)

const upperHalf = "▀"

// fitScale returns the factor that fits a srcW x srcH image into a
// dstW x dstH grid without distorting it.
func fitScale(srcW, srcH, dstW, dstH int) float64 {
	if srcW <= 0 || srcH <= 0 {
		return 0
	}
	return math.Min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
}

func hexColor(c shape.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// renderFrame draws f into a w x h cell area using upper half blocks, so
// every cell carries two vertically stacked pixels. Sampling is nearest
// neighbour.
func renderFrame(f *raster.Frame, w, h int) string {
	s := fitScale(f.W, f.H, w, h*2)
	if s == 0 {
		return ""
	}
	dw := min(w, max(1, int(float64(f.W)*s)))
	dh := min(h*2, max(1, int(float64(f.H)*s)))
	sample := func(px, py int) shape.Color {
		x := min(f.W-1, int(float64(px)/s))
		y := min(f.H-1, int(float64(py)/s))
		return f.At(x, y)
	}

	lines := make([]string, 0, (dh+1)/2)
	var sb strings.Builder
	for py := 0; py < dh; py += 2 {
		sb.Reset()
		for px := 0; px < dw; px++ {
			st := lipgloss.NewStyle().Foreground(hexColor(sample(px, py)))
			if py+1 < dh {
				st = st.Background(hexColor(sample(px, py+1)))
			}
			sb.WriteString(st.Render(upperHalf))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// renderWireframe outlines every shape on a braille grid sized to w x h
// cells.
func renderWireframe(shapes []shape.Shape, b shape.Bounds, w, h int) string {
	br := newBrailleBuf(w, h)
	s := fitScale(b.W, b.H, w*2, h*4)
	if s == 0 {
		return ""
	}
	at := func(p shape.Point) (int, int) {
		return int(float64(p.X) * s), int(float64(p.Y) * s)
	}
	for _, sh := range shapes {
		switch g := sh.Geom.(type) {
		case shape.Triangle:
			ax, ay := at(g.A)
			bx, by := at(g.B)
			cx, cy := at(g.C)
			br.drawLine(ax, ay, bx, by)
			br.drawLine(bx, by, cx, cy)
			br.drawLine(cx, cy, ax, ay)
		case shape.Circle:
			cx, cy := at(g.Center)
			br.drawCircle(cx, cy, int(math.Round(float64(g.Radius)*s)))
		}
	}
	return strings.Join(br.toLines(), "\n")
}

// renderPreview picks what the main pane shows.
func (m Model) renderPreview(w, h int) string {
	switch {
	case m.showTarget && m.target != nil:
		return renderFrame(m.target, w, h)
	case m.frame == nil:
		return dimStyle.Render("no frame yet")
	case m.wireframe:
		return accentStyle.Render(renderWireframe(m.shapes, m.frame.Bounds(), w, h))
	default:
		return renderFrame(m.frame, w, h)
	}
}

func (m Model) targetInfo() string {
	if m.target == nil {
		return ""
	}
	return fmt.Sprintf("%dx%d", m.target.W, m.target.H)
}
