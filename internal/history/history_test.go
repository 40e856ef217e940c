package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAddKeepsOrder(t *testing.T) {
	h := New(100)
	for i := 0; i < 10; i++ {
		h.Add(int64(i*10), float64(100-i))
	}
	pts := h.Points()
	if len(pts) != 10 {
		t.Fatalf("len = %d", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Generation <= pts[i-1].Generation {
			t.Fatalf("points out of order at %d", i)
		}
	}
}

func TestDecimation(t *testing.T) {
	h := New(8)
	for i := 0; i < 1000; i++ {
		h.Add(int64(i), float64(1000-i))
	}
	pts := h.Points()
	if len(pts) > 8 {
		t.Fatalf("len = %d, limit 8", len(pts))
	}
	if pts[0].Generation != 0 {
		t.Fatalf("first point dropped: %+v", pts[0])
	}
	if pts[len(pts)-1].Generation != 999 {
		t.Fatalf("latest point dropped: %+v", pts[len(pts)-1])
	}
}

func TestPointsIsCopy(t *testing.T) {
	h := New(0)
	h.Add(1, 2)
	pts := h.Points()
	pts[0].Diff = 99
	if h.Points()[0].Diff != 2 {
		t.Fatal("Points aliases internal storage")
	}
}

func TestPlotEmpty(t *testing.T) {
	if err := New(0).Plot(filepath.Join(t.TempDir(), "p.png")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v", err)
	}
}

func TestPlot(t *testing.T) {
	h := New(0)
	for i := 0; i < 50; i++ {
		h.Add(int64(i*100), 80/float64(i+1))
	}
	for _, name := range []string{"curve.png", "curve.svg"} {
		path := filepath.Join(t.TempDir(), name)
		if err := h.Plot(path); err != nil {
			t.Fatal(err)
		}
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}
