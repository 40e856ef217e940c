// Package shape holds the drawable primitives evolved by the optimizer and
// the operators that create, normalize and mutate them.
package shape

import (
	"fmt"
	"math/rand"
)

// Kind tags the geometry variant of a Shape.
type Kind uint8

const (
	KindTriangle Kind = iota
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindTriangle:
		return "triangle"
	case KindCircle:
		return "circle"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Opacity is a percentage; shapes are never fully opaque nor invisible.
const (
	MinOpacity = 10
	MaxOpacity = 90
)

type Point struct {
	X, Y int
}

type Color struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Bounds is the canvas size. Valid coordinates are [0,W) x [0,H).
type Bounds struct {
	W, H int
}

func (b Bounds) clampX(x int) int { return clamp(x, 0, b.W-1) }
func (b Bounds) clampY(y int) int { return clamp(y, 0, b.H-1) }

// Contains reports whether p lies on the canvas.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.W && p.Y >= 0 && p.Y < b.H
}

// Geometry is implemented by Triangle and Circle only. Methods take and
// return values so that copying a Shape never aliases its geometry.
type Geometry interface {
	Kind() Kind
	normalize(b Bounds) Geometry
	jitter(r *rand.Rand, delta int) Geometry
}

// Triangle vertices are kept sorted by Y after normalization; the scanline
// fill depends on it.
type Triangle struct {
	A, B, C Point
}

func (Triangle) Kind() Kind { return KindTriangle }

// Vertices returns the three corners in storage order.
func (t Triangle) Vertices() [3]Point { return [3]Point{t.A, t.B, t.C} }

func (t Triangle) normalize(b Bounds) Geometry {
	for {
		swapped := false
		if t.A.Y > t.B.Y {
			t.A, t.B = t.B, t.A
			swapped = true
		}
		if t.B.Y > t.C.Y {
			t.B, t.C = t.C, t.B
			swapped = true
		}
		if !swapped {
			break
		}
	}
	t.A = Point{b.clampX(t.A.X), b.clampY(t.A.Y)}
	t.B = Point{b.clampX(t.B.X), b.clampY(t.B.Y)}
	t.C = Point{b.clampX(t.C.X), b.clampY(t.C.Y)}
	return t
}

func (t Triangle) jitter(r *rand.Rand, delta int) Geometry {
	t.A.X += between(r, -delta, delta)
	t.A.Y += between(r, -delta, delta)
	t.B.X += between(r, -delta, delta)
	t.B.Y += between(r, -delta, delta)
	t.C.X += between(r, -delta, delta)
	t.C.Y += between(r, -delta, delta)
	return t
}

type Circle struct {
	Center Point
	Radius int
}

func (Circle) Kind() Kind { return KindCircle }

// normalize clamps the centre and then shrinks the radius until the whole
// disc is on the canvas. The radius never grows.
func (c Circle) normalize(b Bounds) Geometry {
	c.Center = Point{b.clampX(c.Center.X), b.clampY(c.Center.Y)}
	if c.Radius < 0 {
		c.Radius = 0
	}
	x, y := c.Center.X, c.Center.Y
	c.Radius = min(c.Radius, x, b.W-1-x, y, b.H-1-y)
	return c
}

func (c Circle) jitter(r *rand.Rand, delta int) Geometry {
	c.Center.X += between(r, -delta, delta)
	c.Center.Y += between(r, -delta, delta)
	c.Radius += between(r, -delta, delta)
	return c
}

// Shape is one semi-transparent primitive.
type Shape struct {
	Geom    Geometry
	Color   Color
	Opacity int
}

func (s Shape) Kind() Kind { return s.Geom.Kind() }

// Alpha is the opacity as a blend factor in (0,1).
func (s Shape) Alpha() float64 { return float64(s.Opacity) / 100 }

// Normalize brings the geometry back onto the canvas and the opacity into
// [MinOpacity, MaxOpacity].
func (s *Shape) Normalize(b Bounds) {
	s.Geom = s.Geom.normalize(b)
	s.Opacity = clamp(s.Opacity, MinOpacity, MaxOpacity)
}

// Kinds selects which geometry variants random shapes may take.
type Kinds struct {
	Triangles bool
	Circles   bool
}

func (k Kinds) pick(r *rand.Rand) Kind {
	switch {
	case k.Triangles && k.Circles:
		if r.Intn(2) == 0 {
			return KindTriangle
		}
		return KindCircle
	case k.Circles:
		return KindCircle
	}
	return KindTriangle
}

// Random returns a shape with geometry spread uniformly over the canvas.
func Random(r *rand.Rand, b Bounds, kinds Kinds) Shape {
	s := Shape{Geom: randomGeometry(r, kinds.pick(r), b)}
	s.randomColor(r)
	s.Normalize(b)
	return s
}

// RandomLocal returns a shape whose geometry is clustered within spread
// pixels of a random anchor. Circles get a radius in [1,spread].
func RandomLocal(r *rand.Rand, b Bounds, kinds Kinds, spread int) Shape {
	x, y := r.Intn(b.W), r.Intn(b.H)
	var s Shape
	switch kinds.pick(r) {
	case KindTriangle:
		s.Geom = Triangle{
			A: Point{x + between(r, -spread, spread), y + between(r, -spread, spread)},
			B: Point{x + between(r, -spread, spread), y + between(r, -spread, spread)},
			C: Point{x + between(r, -spread, spread), y + between(r, -spread, spread)},
		}
	case KindCircle:
		s.Geom = Circle{Center: Point{x, y}, Radius: between(r, 1, spread)}
	}
	s.randomColor(r)
	s.Normalize(b)
	return s
}

// Mutate applies one of six equiprobable operators: geometry re-roll,
// coarse jitter, fine jitter, colour re-roll, colour jitter, opacity re-roll.
func (s *Shape) Mutate(r *rand.Rand, b Bounds) {
	switch r.Intn(6) {
	case 0:
		s.Geom = randomGeometry(r, s.Kind(), b)
		s.Normalize(b)
	case 1:
		s.Geom = s.Geom.jitter(r, 20)
		s.Normalize(b)
	case 2:
		s.Geom = s.Geom.jitter(r, 5)
		s.Normalize(b)
	case 3:
		s.Color = Color{uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256))}
	case 4:
		s.Color = Color{
			R: uint8(clamp(int(s.Color.R)+between(r, -5, 5), 0, 255)),
			G: uint8(clamp(int(s.Color.G)+between(r, -5, 5), 0, 255)),
			B: uint8(clamp(int(s.Color.B)+between(r, -5, 5), 0, 255)),
		}
	case 5:
		s.Opacity = between(r, MinOpacity, MaxOpacity)
	}
}

func (s *Shape) randomColor(r *rand.Rand) {
	s.Color = Color{uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256))}
	s.Opacity = between(r, MinOpacity, MaxOpacity)
}

// randomGeometry is not normalized; circles may start with a radius up to
// the canvas width and get shrunk afterwards.
func randomGeometry(r *rand.Rand, k Kind, b Bounds) Geometry {
	switch k {
	case KindTriangle:
		return Triangle{
			A: Point{r.Intn(b.W), r.Intn(b.H)},
			B: Point{r.Intn(b.W), r.Intn(b.H)},
			C: Point{r.Intn(b.W), r.Intn(b.H)},
		}
	case KindCircle:
		return Circle{Center: Point{r.Intn(b.W), r.Intn(b.H)}, Radius: r.Intn(b.W)}
	}
	panic(fmt.Sprintf("shape: unknown kind %v", k))
}

// between returns a uniform integer in [lo,hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
