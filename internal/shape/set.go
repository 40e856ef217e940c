package shape

import (
	"fmt"
	"math/rand"
)

// Set is an ordered, fixed-capacity collection of shapes. Only the first
// Active() slots are drawn; later slots are storage for future growth.
// Draw order is storage order.
type Set struct {
	shapes []Shape
	active int
}

// NewSet returns an empty set with room for capacity shapes.
func NewSet(capacity int) *Set {
	return &Set{shapes: make([]Shape, capacity)}
}

// NewRandomSet fills every slot with a random shape and activates the
// first active of them.
func NewRandomSet(r *rand.Rand, b Bounds, kinds Kinds, capacity, active int) *Set {
	s := NewSet(capacity)
	for i := range s.shapes {
		s.shapes[i] = Random(r, b, kinds)
	}
	s.active = clamp(active, 0, capacity)
	return s
}

func (s *Set) Capacity() int { return len(s.shapes) }
func (s *Set) Active() int   { return s.active }

// Shapes returns the active prefix. The slice aliases the set's storage.
func (s *Set) Shapes() []Shape { return s.shapes[:s.active] }

func (s *Set) At(i int) Shape { return s.shapes[i] }

// Load replaces the active shapes with shapes.
func (s *Set) Load(shapes []Shape) error {
	if len(shapes) > len(s.shapes) {
		return fmt.Errorf("shape: %d shapes exceed capacity %d", len(shapes), len(s.shapes))
	}
	s.active = copy(s.shapes, shapes)
	return nil
}

// CopyFrom makes s a deep copy of src's active shapes. It does not allocate
// when s is at least as large as src.
func (s *Set) CopyFrom(src *Set) {
	if len(s.shapes) < src.active {
		s.shapes = make([]Shape, len(src.shapes))
	}
	s.active = copy(s.shapes, src.shapes[:src.active])
}

// Clone returns an independent copy with the same capacity.
func (s *Set) Clone() *Set {
	c := NewSet(len(s.shapes))
	c.CopyFrom(s)
	return c
}

var localSpreads = [...]int{2, 5, 10, 25}

// Grow appends one shape when fewer than min(capacity, limit) are active.
// The new shape is fully random or local with one of the spreads in
// localSpreads, all five choices equally likely.
func (s *Set) Grow(r *rand.Rand, b Bounds, kinds Kinds, limit int) bool {
	if s.active >= len(s.shapes) || s.active >= limit {
		return false
	}
	choice := r.Intn(len(localSpreads) + 1)
	if choice == 0 {
		s.shapes[s.active] = Random(r, b, kinds)
	} else {
		s.shapes[s.active] = RandomLocal(r, b, kinds, localSpreads[choice-1])
	}
	s.active++
	return true
}

// Shrink removes one random shape keeping the order of the rest. A set
// never drops below one active shape.
func (s *Set) Shrink(r *rand.Rand) bool {
	if s.active <= 1 {
		return false
	}
	i := r.Intn(s.active)
	copy(s.shapes[i:], s.shapes[i+1:s.active])
	s.active--
	return true
}

// SwapTwo exchanges two distinct random active shapes.
func (s *Set) SwapTwo(r *rand.Rand) bool {
	if s.active < 2 {
		return false
	}
	i := r.Intn(s.active)
	j := r.Intn(s.active - 1)
	if j >= i {
		j++
	}
	s.shapes[i], s.shapes[j] = s.shapes[j], s.shapes[i]
	return true
}

// MutateBatch draws trials random active indexes and mutates each drawn
// shape with probability rate/1000. The same shape may be drawn again.
func (s *Set) MutateBatch(r *rand.Rand, b Bounds, trials, rate int) {
	if s.active == 0 {
		return
	}
	for range_i := 0; range_i < trials; range_i++ {
		sh := &s.shapes[r.Intn(s.active)]
		if r.Intn(1000) < rate {
			sh.Mutate(r, b)
		}
	}
}

// Edit is the structural change made by ApplyEdit.
type Edit uint8

const (
	EditNone Edit = iota
	EditGrow
	EditShrink
	EditSwap
)

func (e Edit) String() string {
	switch e {
	case EditGrow:
		return "grow"
	case EditShrink:
		return "shrink"
	case EditSwap:
		return "swap"
	}
	return "none"
}

// ApplyEdit makes at most one structural edit, tried in the order grow
// (p=1/10), shrink (p=1/20), swap (p=1/20). A roll that hits but cannot be
// applied falls through to the next check.
func (s *Set) ApplyEdit(r *rand.Rand, b Bounds, kinds Kinds, limit int) Edit {
	if r.Intn(10) == 0 && s.Grow(r, b, kinds, limit) {
		return EditGrow
	}
	if r.Intn(20) == 0 && s.Shrink(r) {
		return EditShrink
	}
	if r.Intn(20) == 0 && s.SwapTwo(r) {
		return EditSwap
	}
	return EditNone
}
