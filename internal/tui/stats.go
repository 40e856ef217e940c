package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

var statNames = []string{"generation", "difference", "temperature", "shapes", "budget", "frames"}

func (m *Model) refreshStats() {
	vals := []string{
		fmt.Sprintf("%d", m.state.Generation),
		fmt.Sprintf("%.4f%%", m.diff),
		fmt.Sprintf("%.5f", m.state.Temperature),
		fmt.Sprintf("%d/%d", len(m.shapes), m.state.Cap),
		fmt.Sprintf("%d", m.state.Budget),
		fmt.Sprintf("%d", m.frames),
	}
	rows := make([]table.Row, len(statNames))
	for i, name := range statNames {
		rows[i] = table.Row{name, vals[i]}
	}
	m.tbl.SetRows(rows)
}
