// Package checkpoint saves and restores the engine state together with the
// absolute best shape set in a fixed little-endian layout:
//
//	magic "SHPM", version
//	state: cap int32, budget int32, temperature float64, best diff float64, generation int64
//	set:   capacity int32, active int32
//	active x shape: kind, r, g, b, opacity uint8; six int16 geometry slots
//
// Triangles fill the geometry slots with x1,y1,x2,y2,x3,y3; circles with
// cx,cy,radius followed by zeros.
package checkpoint

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"shapeme/internal/evolve"
	"shapeme/internal/shape"
)

const version = 1

var magic = [4]byte{'S', 'H', 'P', 'M'}

var (
	// ErrNoCheckpoint means there is nothing to resume from.
	ErrNoCheckpoint = errors.New("checkpoint: no checkpoint file")
	ErrCorrupt      = errors.New("checkpoint: corrupt or truncated file")
	// ErrTooManyShapes means the file holds more shapes than allowed.
	ErrTooManyShapes = errors.New("checkpoint: more shapes than the configured cap")
)

// Checkpoint is the content of a checkpoint file.
type Checkpoint struct {
	State    evolve.State
	Capacity int
	Shapes   []shape.Shape
}

type header struct {
	Magic   [4]byte
	Version uint8
}

type stateRecord struct {
	Cap         int32
	Budget      int32
	Temperature float64
	BestDiff    float64
	Generation  int64
}

type setRecord struct {
	Capacity int32
	Active   int32
}

type shapeRecord struct {
	Kind    uint8
	R, G, B uint8
	Opacity uint8
	Geom    [6]int16
}

// Write encodes st and the active shapes of set.
func Write(w io.Writer, st evolve.State, set *shape.Set) error {
	recs := make([]shapeRecord, 0, set.Active())
	for i, sh := range set.Shapes() {
		rec, err := encodeShape(sh)
		if err != nil {
			return fmt.Errorf("checkpoint: shape %d: %w", i, err)
		}
		recs = append(recs, rec)
	}
	parts := []any{
		header{Magic: magic, Version: version},
		stateRecord{
			Cap:         int32(st.Cap),
			Budget:      int32(st.Budget),
			Temperature: st.Temperature,
			BestDiff:    st.BestDiff,
			Generation:  st.Generation,
		},
		setRecord{Capacity: int32(set.Capacity()), Active: int32(set.Active())},
		recs,
	}
	for _, p := range parts {
		if err := binary.Write(w, binary.LittleEndian, p); err != nil {
			return fmt.Errorf("checkpoint: write: %w", err)
		}
	}
	return nil
}

// Read decodes a checkpoint. Files holding more than maxShapes active
// shapes are rejected with ErrTooManyShapes.
func Read(r io.Reader, maxShapes int) (Checkpoint, error) {
	var (
		h  header
		st stateRecord
		sr setRecord
	)
	for _, p := range []any{&h, &st, &sr} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return Checkpoint{}, readErr(err)
		}
	}
	if h.Magic != magic {
		return Checkpoint{}, fmt.Errorf("%w: bad magic %q", ErrCorrupt, h.Magic[:])
	}
	if h.Version != version {
		return Checkpoint{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, h.Version)
	}
	if sr.Active < 0 || sr.Capacity < sr.Active {
		return Checkpoint{}, fmt.Errorf("%w: %d active of %d", ErrCorrupt, sr.Active, sr.Capacity)
	}
	if int(sr.Active) > maxShapes {
		return Checkpoint{}, fmt.Errorf("%w: %d > %d", ErrTooManyShapes, sr.Active, maxShapes)
	}
	if math.IsNaN(st.Temperature) || math.IsNaN(st.BestDiff) {
		return Checkpoint{}, fmt.Errorf("%w: NaN in state", ErrCorrupt)
	}

	recs := make([]shapeRecord, sr.Active)
	if err := binary.Read(r, binary.LittleEndian, recs); err != nil {
		return Checkpoint{}, readErr(err)
	}
	cp := Checkpoint{
		State: evolve.State{
			Cap:         int(st.Cap),
			Budget:      int(st.Budget),
			Temperature: st.Temperature,
			BestDiff:    st.BestDiff,
			Generation:  st.Generation,
		},
		Capacity: int(sr.Capacity),
		Shapes:   make([]shape.Shape, len(recs)),
	}
	for i, rec := range recs {
		sh, err := decodeShape(rec)
		if err != nil {
			return Checkpoint{}, fmt.Errorf("shape %d: %w", i, err)
		}
		cp.Shapes[i] = sh
	}
	return cp, nil
}

func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return fmt.Errorf("checkpoint: read: %w", err)
}

// Save writes the checkpoint to a temporary file next to path and renames
// it into place, so a crash mid-write leaves the previous checkpoint intact.
func Save(path string, st evolve.State, set *shape.Set) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	bw := bufio.NewWriter(tmp)
	if err := Write(bw, st, set); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// Load reads the checkpoint at path. A missing file yields ErrNoCheckpoint.
func Load(path string, maxShapes int) (Checkpoint, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Checkpoint{}, fmt.Errorf("%w: %s", ErrNoCheckpoint, path)
	}
	if err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: %w", err)
	}
	defer f.Close()
	cp, err := Read(bufio.NewReader(f), maxShapes)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("%s: %w", path, err)
	}
	return cp, nil
}

func encodeShape(sh shape.Shape) (shapeRecord, error) {
	rec := shapeRecord{
		Kind:    uint8(sh.Kind()),
		R:       sh.Color.R,
		G:       sh.Color.G,
		B:       sh.Color.B,
		Opacity: uint8(sh.Opacity),
	}
	var vals []int
	switch g := sh.Geom.(type) {
	case shape.Triangle:
		vals = []int{g.A.X, g.A.Y, g.B.X, g.B.Y, g.C.X, g.C.Y}
	case shape.Circle:
		vals = []int{g.Center.X, g.Center.Y, g.Radius}
	default:
		panic(fmt.Sprintf("checkpoint: unknown geometry %T", g))
	}
	for i, v := range vals {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return shapeRecord{}, fmt.Errorf("coordinate %d does not fit in 16 bits", v)
		}
		rec.Geom[i] = int16(v)
	}
	return rec, nil
}

func decodeShape(rec shapeRecord) (shape.Shape, error) {
	if int(rec.Opacity) < shape.MinOpacity || int(rec.Opacity) > shape.MaxOpacity {
		return shape.Shape{}, fmt.Errorf("%w: opacity %d out of range", ErrCorrupt, rec.Opacity)
	}
	sh := shape.Shape{
		Color:   shape.Color{R: rec.R, G: rec.G, B: rec.B},
		Opacity: int(rec.Opacity),
	}
	g := rec.Geom
	switch shape.Kind(rec.Kind) {
	case shape.KindTriangle:
		sh.Geom = shape.Triangle{
			A: shape.Point{X: int(g[0]), Y: int(g[1])},
			B: shape.Point{X: int(g[2]), Y: int(g[3])},
			C: shape.Point{X: int(g[4]), Y: int(g[5])},
		}
	case shape.KindCircle:
		sh.Geom = shape.Circle{Center: shape.Point{X: int(g[0]), Y: int(g[1])}, Radius: int(g[2])}
	default:
		return shape.Shape{}, fmt.Errorf("%w: unknown shape kind %d", ErrCorrupt, rec.Kind)
	}
	return sh, nil
}
