// Package evolve runs the simulated-annealing search that evolves a shape
// set towards a target image.
package evolve

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"go.uber.org/zap"

	"shapeme/internal/logger"
	"shapeme/internal/raster"
	"shapeme/internal/shape"
)

// ErrTooManyShapes is returned by Restore when a saved set holds more
// shapes than the configured cap.
var ErrTooManyShapes = errors.New("evolve: saved set exceeds the shape cap")

// Params configures a run. It is read once at construction.
type Params struct {
	Kinds         shape.Kinds
	MaxShapes     int
	InitialShapes int
	MutationRate  int // per-mille chance that a drawn shape mutates
	// Workers is the number of candidates evaluated per generation. Only the
	// lowest scoring one faces the acceptance roll, so Workers > 1 does not
	// reproduce the sequential acceptance statistics.
	Workers int
}

type Outcome uint8

const (
	Rejected Outcome = iota
	Accepted
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "rejected"
}

// Snapshot is handed to sinks. Frame and Best belong to the optimizer and
// are only valid for the duration of the call.
type Snapshot struct {
	State   State
	Diff    float64 // score of the current best
	NewBest bool
	Frame   *raster.Frame // rendering of the current best; nil for periodic calls
	Best    *shape.Set    // absolute best
}

type Option func(*Optimizer)

// WithRand seeds the optimizer from r instead of the clock.
func WithRand(r *rand.Rand) Option {
	return func(o *Optimizer) { o.rng = r }
}

// OnAccept registers fn to be called on every accepted generation.
func OnAccept(fn func(Snapshot)) Option {
	return func(o *Optimizer) { o.onAccept = append(o.onAccept, fn) }
}

// OnPeriodic registers fn to be called every PeriodicInterval generations
// and once more when Run returns. An error stops Run.
func OnPeriodic(fn func(Snapshot) error) Option {
	return func(o *Optimizer) { o.onPeriodic = append(o.onPeriodic, fn) }
}

// Optimizer owns the engine state, the current best set and the absolute
// best set. It is not safe for concurrent use; Step must be called from a
// single goroutine.
type Optimizer struct {
	params Params
	target *raster.Frame
	bounds shape.Bounds
	rng    *rand.Rand
	log    *zap.Logger

	state   State
	best    *shape.Set
	absBest *shape.Set
	diff    float64 // score of best

	workers []*worker
	fanout  *fanout

	onAccept   []func(Snapshot)
	onPeriodic []func(Snapshot) error
}

// New builds an optimizer with a fresh random set of p.InitialShapes active
// shapes out of p.MaxShapes slots.
func New(p Params, target *raster.Frame, opts ...Option) *Optimizer {
	p.MaxShapes = max(p.MaxShapes, 1)
	p.InitialShapes = min(max(p.InitialShapes, 1), p.MaxShapes)
	p.Workers = max(p.Workers, 1)
	o := &Optimizer{
		params: p,
		target: target,
		bounds: target.Bounds(),
		log:    zap.NewNop(),
		state:  NewState(p.MaxShapes, p.InitialShapes),
		diff:   WorstDiff,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	o.best = shape.NewRandomSet(o.rng, o.bounds, p.Kinds, p.MaxShapes, p.InitialShapes)
	o.absBest = o.best.Clone()
	for range_i, range_n := 0, p.Workers; range_i < range_n; range_i++ {
		o.workers = append(o.workers, newWorker(rand.New(rand.NewSource(o.rng.Int63())), p.MaxShapes, o.bounds))
	}
	if p.Workers > 1 {
		o.fanout = newFanout(p.Workers)
	}
	return o
}

// Restore resumes from a checkpoint. The configured cap replaces the saved
// one and the active budget restarts at the saved active count. Shapes are
// normalized to the current canvas, which may differ from the saved one.
func (o *Optimizer) Restore(st State, shapes []shape.Shape) error {
	if len(shapes) > o.params.MaxShapes {
		return fmt.Errorf("%w: %d > %d", ErrTooManyShapes, len(shapes), o.params.MaxShapes)
	}
	shapes = slices.Clone(shapes)
	for i := range shapes {
		shapes[i].Normalize(o.bounds)
	}
	if err := o.best.Load(shapes); err != nil {
		return err
	}
	o.absBest.CopyFrom(o.best)
	st.Cap = o.params.MaxShapes
	st.Budget = max(len(shapes), 1)
	st.Temperature = max(st.Temperature, 0)
	o.state = st
	o.diff = WorstDiff
	return nil
}

func (o *Optimizer) State() State { return o.state }

// Diff is the score of the current best set.
func (o *Optimizer) Diff() float64 { return o.diff }

// Best returns the absolute best set. Callers must not modify it.
func (o *Optimizer) Best() *shape.Set { return o.absBest }

// Current returns the current best set. Callers must not modify it.
func (o *Optimizer) Current() *shape.Set { return o.best }

func (o *Optimizer) Bounds() shape.Bounds { return o.bounds }

// Accept is the annealing acceptance rule. A strictly better candidate is
// always taken. A worse one is taken when roll < temperature and it lies
// within 2*temperature of the best score ever seen.
func Accept(candidate, current, best, temperature, roll float64) bool {
	if candidate < current {
		return true
	}
	return temperature > 0 && roll < temperature && candidate-best < 2*temperature
}

// Step runs one generation.
func (o *Optimizer) Step() Outcome {
	o.state.advance()
	if o.state.maybeRaiseBudget(o.best.Active()) {
		o.log.Debug("raised shape budget",
			zap.Int("budget", o.state.Budget),
			zap.Int64("gen", o.state.Generation))
	}

	w := o.trial()
	if !Accept(w.diff, o.diff, o.state.BestDiff, o.state.Temperature, o.rng.Float64()) {
		return Rejected
	}
	o.best.CopyFrom(w.set)
	o.diff = w.diff
	newBest := w.diff < o.state.BestDiff
	if newBest {
		o.absBest.CopyFrom(w.set)
		o.state.BestDiff = w.diff
	}
	o.log.Debug("accepted",
		zap.Float64("diff", w.diff),
		zap.Int("inuse", w.set.Active()),
		zap.Int("max", o.state.Budget),
		zap.Int64("gen", o.state.Generation),
		zap.Float64("temp", o.state.Temperature),
		zap.Bool("best", newBest))
	if len(o.onAccept) > 0 {
		snap := Snapshot{State: o.state, Diff: o.diff, NewBest: newBest, Frame: w.frame, Best: o.absBest}
		for _, fn := range o.onAccept {
			fn(snap)
		}
	}
	return Accepted
}

// trial mutates copies of the current best and returns the lowest scoring
// candidate of this generation.
func (o *Optimizer) trial() *worker {
	if o.fanout == nil {
		w := o.workers[0]
		w.run(o.best, o.params, o.state.Budget, o.target)
		return w
	}
	return o.fanout.run(o.workers, o.best, o.params, o.state.Budget, o.target)
}

// Run steps until ctx is cancelled or a periodic sink fails. Sinks get a
// last call before Run returns so the final state is persisted.
func (o *Optimizer) Run(ctx context.Context) error {
	o.log = logger.L(ctx)
	o.log.Info("evolving",
		zap.Int("width", o.bounds.W),
		zap.Int("height", o.bounds.H),
		zap.Int("max_shapes", o.params.MaxShapes),
		zap.Int("active", o.best.Active()),
		zap.Int("workers", len(o.workers)),
		zap.Int64("gen", o.state.Generation))
	for ctx.Err() == nil {
		o.Step()
		if o.state.Generation%PeriodicInterval == 0 {
			if err := o.periodic(); err != nil {
				return err
			}
		}
	}
	o.log.Info("stopping",
		zap.Int64("gen", o.state.Generation),
		zap.Float64("best_diff", o.state.BestDiff))
	return o.periodic()
}

func (o *Optimizer) periodic() error {
	snap := Snapshot{State: o.state, Diff: o.diff, Best: o.absBest}
	for _, fn := range o.onPeriodic {
		if err := fn(snap); err != nil {
			return fmt.Errorf("generation %d: %w", o.state.Generation, err)
		}
	}
	if o.state.Generation%(PeriodicInterval*100) == 0 {
		o.log.Info("progress",
			zap.Int64("gen", o.state.Generation),
			zap.Float64("best_diff", o.state.BestDiff),
			zap.Float64("diff", o.diff),
			zap.Int("active", o.best.Active()),
			zap.Int("budget", o.state.Budget),
			zap.Float64("temp", o.state.Temperature))
	}
	return nil
}
