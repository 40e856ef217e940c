package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const sidebarWidth = 36

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// header and two footer rows, then the list's own frame
		m.l.SetSize(sidebarWidth-2, max(4, m.height-3)-2)
	case FrameMsg:
		m.frame = msg.Frame
		m.shapes = msg.Shapes
		m.state = msg.State
		m.diff = msg.Diff
		m.frames++
		m.status = fmt.Sprintf("gen %d  diff %.4f%%", msg.State.Generation, msg.Diff)
		m.refreshStats()
		if m.showSidebar {
			m.refreshShapes()
		}
	case DoneMsg:
		m.done = true
		if msg.Err != nil {
			m.status = "stopped: " + msg.Err.Error()
		} else {
			m.status = "stopped"
		}
	case tea.KeyMsg:
		// keys go to the list while it is filtering
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshShapes()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "s":
			m.showStats = !m.showStats
		case "w":
			m.wireframe = !m.wireframe
			m.status = fmt.Sprintf("wireframe: %v", m.wireframe)
		case "t":
			m.showTarget = !m.showTarget
			if m.showTarget {
				m.status = "showing target"
			} else {
				m.status = "showing best"
			}
		}
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}
