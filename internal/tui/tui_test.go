package tui

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"shapeme/internal/evolve"
	"shapeme/internal/raster"
	"shapeme/internal/shape"
)

func snapshot(t *testing.T) FrameMsg {
	t.Helper()
	r := rand.New(rand.NewSource(3))
	b := shape.Bounds{W: 40, H: 30}
	set := shape.NewRandomSet(r, b, shape.Kinds{Triangles: true, Circles: true}, 8, 6)
	f := raster.NewFrame(b.W, b.H)
	raster.Render(f, set)
	return FrameMsg{
		Frame:  f,
		Shapes: append([]shape.Shape(nil), set.Shapes()...),
		State:  evolve.State{Cap: 8, Budget: 6, Temperature: 0.05, BestDiff: 30, Generation: 4200},
		Diff:   31.5,
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func hasBraille(s string) bool {
	for _, r := range s {
		if r > 0x2800 && r <= 0x28ff {
			return true
		}
	}
	return false
}

func TestViewBeforeSize(t *testing.T) {
	m := New(raster.NewFrame(4, 4))
	if v := m.View(); v != "" {
		t.Fatalf("view before size = %q", v)
	}
}

func TestFrameMsg(t *testing.T) {
	msg := snapshot(t)
	m := New(msg.Frame.Clone())
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if v := m.View(); !strings.Contains(v, "no frame yet") {
		t.Fatal("placeholder missing before first frame")
	}
	m = update(t, m, msg)
	if m.frames != 1 || m.state.Generation != 4200 || m.diff != 31.5 {
		t.Fatalf("model not updated: frames=%d gen=%d diff=%v", m.frames, m.state.Generation, m.diff)
	}
	v := m.View()
	if !strings.Contains(v, "4200") {
		t.Fatal("generation missing from view")
	}
	if !strings.Contains(v, upperHalf) {
		t.Fatal("preview not drawn")
	}
}

func TestKeys(t *testing.T) {
	msg := snapshot(t)
	m := New(msg.Frame.Clone())
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, msg)

	m = update(t, m, key("tab"))
	if !m.showSidebar || len(m.l.Items()) != len(msg.Shapes) {
		t.Fatalf("sidebar=%v items=%d", m.showSidebar, len(m.l.Items()))
	}
	m = update(t, m, key("w"))
	if !m.wireframe {
		t.Fatal("wireframe not toggled")
	}
	if !hasBraille(m.View()) {
		t.Fatal("wireframe has no braille dots")
	}
	m = update(t, m, key("t"))
	if !m.showTarget {
		t.Fatal("target not toggled")
	}
	m = update(t, m, key("s"))
	m = update(t, m, key("h"))
	if m.showStats || m.helpVisible {
		t.Fatal("stats/help not toggled")
	}
	_ = m.View()

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Fatal("q did not quit")
	}
}

func TestDoneMsg(t *testing.T) {
	m := New(raster.NewFrame(2, 2))
	m = update(t, m, DoneMsg{Err: errors.New("disk full")})
	if !m.done || !strings.Contains(m.status, "disk full") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestBraille(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0)
	b.setPixel(3, 3)
	b.setPixel(-1, 0)
	b.setPixel(4, 0)
	lines := b.toLines()
	if got := []rune(lines[0]); got[0] != 0x2801 || got[1] != 0x2880 {
		t.Fatalf("cells = %U %U", got[0], got[1])
	}

	c := newBrailleBuf(10, 5)
	c.drawCircle(10, 10, 6)
	dots := 0
	for _, row := range c.m {
		for _, mask := range row {
			for ; mask != 0; mask &= mask - 1 {
				dots++
			}
		}
	}
	if dots < 20 {
		t.Fatalf("circle drew %d dots", dots)
	}
}

func TestRenderFrameFits(t *testing.T) {
	f := raster.NewFrame(100, 20)
	out := renderFrame(f, 25, 10)
	rows := strings.Split(out, "\n")
	// 100x20 scaled by 0.25 is 25x5 pixels, three half-block rows
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if n := strings.Count(rows[0], upperHalf); n != 25 {
		t.Fatalf("cells in first row = %d", n)
	}
}

func TestWindowSizeSizesList(t *testing.T) {
	m := update(t, New(raster.NewFrame(2, 2)), tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.l.Width() != sidebarWidth-2 || m.l.Height() != 40-3-2 {
		t.Fatalf("list size = %dx%d", m.l.Width(), m.l.Height())
	}
}
