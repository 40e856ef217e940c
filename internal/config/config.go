// Package config holds the command-line configuration.
package config

import (
	"errors"
	"flag"

	"shapeme/internal/shape"
)

var ErrNoShapeKinds = errors.New("config: at least one of -use-triangles and -use-circles must be set")

const MaxMutationRate = 1000

type Config struct {
	Triangles     bool
	Circles       bool
	MaxShapes     int
	InitialShapes int
	MutationRate  int
	Restart       bool

	Workers int
	Seed    int64
	Resize  int
	TUI     bool
	PNG     string
	Plot    string
	LogFile string
	Verbose bool
}

func Default() Config {
	return Config{
		Triangles:     true,
		MaxShapes:     64,
		InitialShapes: 1,
		MutationRate:  200,
		Workers:       1,
	}
}

// Bind registers a flag for every field, using the current values as
// defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.BoolVar(&c.Triangles, "use-triangles", c.Triangles, "evolve triangles")
	fs.BoolVar(&c.Circles, "use-circles", c.Circles, "evolve circles")
	fs.IntVar(&c.MaxShapes, "max-shapes", c.MaxShapes, "maximum number of shapes")
	fs.IntVar(&c.InitialShapes, "initial-shapes", c.InitialShapes, "shapes active at start")
	fs.IntVar(&c.MutationRate, "mutation-rate", c.MutationRate, "per-shape mutation chance in 1/1000, 0..1000")
	fs.BoolVar(&c.Restart, "restart", c.Restart, "ignore any existing checkpoint")

	fs.IntVar(&c.Workers, "workers", c.Workers, "candidates evaluated in parallel per trial")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 uses the clock")
	fs.IntVar(&c.Resize, "resize", c.Resize, "downscale the target so its longest side is at most this, 0 keeps it")
	fs.BoolVar(&c.TUI, "tui", c.TUI, "show a live terminal preview")
	fs.StringVar(&c.PNG, "png", c.PNG, "also write a PNG snapshot to this path")
	fs.StringVar(&c.Plot, "plot", c.Plot, "also plot the difference curve to this path")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "write logs to this file")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
}

// Normalize clamps out-of-range values. It fails only when no shape kind
// is enabled.
func (c *Config) Normalize() error {
	if !c.Triangles && !c.Circles {
		return ErrNoShapeKinds
	}
	c.MaxShapes = max(c.MaxShapes, 1)
	c.InitialShapes = max(c.InitialShapes, 0)
	if c.InitialShapes > c.MaxShapes {
		c.MaxShapes = c.InitialShapes
	}
	c.MutationRate = min(max(c.MutationRate, 0), MaxMutationRate)
	c.Workers = max(c.Workers, 1)
	c.Resize = max(c.Resize, 0)
	return nil
}

func (c Config) Kinds() shape.Kinds {
	return shape.Kinds{Triangles: c.Triangles, Circles: c.Circles}
}
