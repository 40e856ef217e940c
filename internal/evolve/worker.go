package evolve

import (
	"math/rand"

	"github.com/sourcegraph/conc/pool"

	"shapeme/internal/raster"
	"shapeme/internal/shape"
)

// worker owns the scratch storage for one candidate per generation: its
// own RNG, shape set and framebuffer. Storage is reused across generations.
type worker struct {
	rng    *rand.Rand
	bounds shape.Bounds
	set    *shape.Set
	frame  *raster.Frame
	diff   float64
}

func newWorker(r *rand.Rand, capacity int, b shape.Bounds) *worker {
	return &worker{
		rng:    r,
		bounds: b,
		set:    shape.NewSet(capacity),
		frame:  raster.NewFrame(b.W, b.H),
	}
}

// run clones best, applies the edit policy and a mutation batch, then
// renders and scores the result. best is only read.
func (w *worker) run(best *shape.Set, p Params, budget int, target *raster.Frame) {
	w.set.CopyFrom(best)
	w.set.ApplyEdit(w.rng, w.bounds, p.Kinds, budget)
	w.set.MutateBatch(w.rng, w.bounds, TrialsPerStep, p.MutationRate)
	raster.Render(w.frame, w.set)
	w.diff = raster.Score(w.frame, target)
}

// fanout evaluates one candidate per worker concurrently. The acceptance
// decision stays with the caller, which sees only the lowest scoring one.
type fanout struct {
	limit int
}

func newFanout(n int) *fanout {
	return &fanout{limit: n}
}

func (f *fanout) run(workers []*worker, best *shape.Set, p Params, budget int, target *raster.Frame) *worker {
	pl := pool.New().WithMaxGoroutines(f.limit)
	for _, w := range workers {
		w := w
		pl.Go(func() {
			w.run(best, p, budget, target)
		})
	}
	pl.Wait()

	winner := workers[0]
	for _, w := range workers[1:] {
		if w.diff < winner.diff {
			winner = w
		}
	}
	return winner
}
