package raster

import (
	"math/rand"
	"testing"

	"shapeme/internal/shape"
)

func randomFrame(r *rand.Rand, w, h int) *Frame {
	f := NewFrame(w, h)
	r.Read(f.Pix)
	return f
}

func TestScoreIdentical(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for range_i := 0; range_i < 20; range_i++ {
		f := randomFrame(r, 1+r.Intn(20), 1+r.Intn(20))
		if got := Score(f, f.Clone()); got != 0 {
			t.Fatalf("Score(x, x) = %v", got)
		}
	}
}

func TestScoreSymmetricAndBounded(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for range_i := 0; range_i < 50; range_i++ {
		w, h := 1+r.Intn(16), 1+r.Intn(16)
		a, b := randomFrame(r, w, h), randomFrame(r, w, h)
		ab, ba := Score(a, b), Score(b, a)
		if ab != ba {
			t.Fatalf("Score not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 || ab > 100 {
			t.Fatalf("Score %v out of [0,100]", ab)
		}
	}
}

func TestScoreExtremes(t *testing.T) {
	black := NewFrame(5, 4)
	white := solid(5, 4, shape.Color{R: 255, G: 255, B: 255})
	got := Score(black, white)
	if got < 99.9 || got > 100 {
		t.Fatalf("black vs white = %v, want just under 100", got)
	}
}

func TestScoreSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Score(NewFrame(2, 2), NewFrame(2, 3))
}
