// Package tui is a bubbletea live preview of a running evolution.
package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"shapeme/internal/evolve"
	"shapeme/internal/raster"
	"shapeme/internal/shape"
)

// FrameMsg carries a copy of the optimizer's current best. The receiver
// owns Frame and Shapes.
type FrameMsg struct {
	Frame  *raster.Frame
	Shapes []shape.Shape
	State  evolve.State
	Diff   float64
}

// DoneMsg reports that the optimizer stopped.
type DoneMsg struct{ Err error }

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	showStats   bool

	wireframe  bool
	showTarget bool

	status string
	done   bool

	target *raster.Frame
	frame  *raster.Frame
	shapes []shape.Shape
	state  evolve.State
	diff   float64
	frames int

	// shape list sidebar
	l list.Model

	// stats table
	tbl table.Model
}

// New returns a model previewing evolution towards target.
func New(target *raster.Frame) Model {
	m := Model{
		helpVisible: true,
		showStats:   true,
		status:      "waiting for first frame",
		target:      target,
		diff:        evolve.WorstDiff,
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	d.SetSpacing(0)
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Shapes"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(true)
	m.l.SetFilteringEnabled(true)

	m.tbl = table.New(
		table.WithColumns([]table.Column{{Title: "stat", Width: 12}, {Title: "value", Width: 14}}),
		table.WithFocused(false),
	)
	m.tbl.SetHeight(len(statNames) + 1)
	m.refreshStats()
	return m
}

func (m Model) Init() tea.Cmd { return nil }
