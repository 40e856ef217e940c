package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shapeme/internal/checkpoint"
	"shapeme/internal/config"
	"shapeme/internal/evolve"
	"shapeme/internal/export"
	"shapeme/internal/history"
	"shapeme/internal/imageio"
	"shapeme/internal/raster"
	"shapeme/internal/shape"
	"shapeme/internal/tui"
)

const (
	previewInterval = 50 * time.Millisecond
	extrasInterval  = 5 * time.Second
)

// outputs receives optimizer snapshots and writes every artifact of a run:
// checkpoint, SVG, and optionally PNG, plot and the live preview.
type outputs struct {
	cfg       config.Config
	statePath string
	svgPath   string
	bounds    shape.Bounds
	hist      *history.History
	log       *zap.Logger

	preview func(tea.Msg)
	current func() *shape.Set

	lastPreview time.Time
	lastExtras  time.Time
}

func (o *outputs) accepted(s evolve.Snapshot) {
	if s.NewBest {
		o.hist.Add(s.State.Generation, s.State.BestDiff)
	}
	if o.preview == nil || time.Since(o.lastPreview) < previewInterval {
		return
	}
	o.lastPreview = time.Now()
	msg := tui.FrameMsg{Frame: s.Frame.Clone(), State: s.State, Diff: s.Diff}
	if o.current != nil {
		msg.Shapes = append([]shape.Shape(nil), o.current().Shapes()...)
	}
	o.preview(msg)
}

// periodic persists the checkpoint and the SVG. Only a failed checkpoint
// stops the run.
func (o *outputs) periodic(s evolve.Snapshot) error {
	if err := checkpoint.Save(o.statePath, s.State, s.Best); err != nil {
		return err
	}
	if err := export.Save(o.svgPath, s.Best, o.bounds); err != nil {
		o.log.Error("write svg", zap.String("path", o.svgPath), zap.Error(err))
	}
	if time.Since(o.lastExtras) >= extrasInterval {
		o.lastExtras = time.Now()
		o.extras(s.Best)
	}
	return nil
}

// flush writes the slower artifacts one last time.
func (o *outputs) flush(best *shape.Set) {
	o.extras(best)
}

func (o *outputs) extras(best *shape.Set) {
	if o.cfg.PNG != "" {
		f := raster.NewFrame(o.bounds.W, o.bounds.H)
		raster.Render(f, best)
		if err := imageio.SavePNG(o.cfg.PNG, f); err != nil {
			o.log.Error("write png", zap.String("path", o.cfg.PNG), zap.Error(err))
		}
	}
	if o.cfg.Plot != "" && o.hist.Len() > 0 {
		if err := o.hist.Plot(o.cfg.Plot); err != nil {
			o.log.Error("write plot", zap.String("path", o.cfg.Plot), zap.Error(err))
		}
	}
}
