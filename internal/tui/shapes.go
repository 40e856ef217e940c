package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"shapeme/internal/shape"
)

type shapeItem struct {
	index int
	sh    shape.Shape
}

func (s shapeItem) Title() string {
	return fmt.Sprintf("#%-3d %-8s %s", s.index, s.sh.Kind(), s.sh.Color.Hex())
}

func (s shapeItem) Description() string {
	switch g := s.sh.Geom.(type) {
	case shape.Triangle:
		return fmt.Sprintf("(%d,%d) (%d,%d) (%d,%d) op=%d", g.A.X, g.A.Y, g.B.X, g.B.Y, g.C.X, g.C.Y, s.sh.Opacity)
	case shape.Circle:
		return fmt.Sprintf("c=(%d,%d) r=%d op=%d", g.Center.X, g.Center.Y, g.Radius, s.sh.Opacity)
	}
	return ""
}

func (s shapeItem) FilterValue() string { return s.sh.Kind().String() + " " + s.sh.Color.Hex() }

// refreshShapes mirrors m.shapes into the sidebar list, keeping the cursor.
func (m *Model) refreshShapes() {
	items := make([]list.Item, len(m.shapes))
	for i, sh := range m.shapes {
		items[i] = shapeItem{index: i, sh: sh}
	}
	idx := m.l.Index()
	m.l.SetItems(items)
	if idx < len(items) {
		m.l.Select(idx)
	}
}
