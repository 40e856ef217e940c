package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	headerHeight := 1
	footerHeight := 2
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)

	title := titleStyle.Render(" shapeme ")
	info := dimStyle.Render(" target " + m.targetInfo())
	score := diffStyle.Render(fmt.Sprintf(" %.4f%% ", m.diff))
	header := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Top, title, score, info))

	var sidebar string
	sideW := 0
	if m.showSidebar {
		sideW = sidebarWidth
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var stats string
	statsW := 0
	if m.showStats {
		stats = boxStyle.Render(m.tbl.View())
		statsW = lipgloss.Width(stats)
	}

	previewW := max(8, contentWidth-sideW-statsW-2)
	preview := lipgloss.NewStyle().Width(previewW).Height(contentHeight).
		Render(m.renderPreview(previewW, contentHeight))

	cols := []string{}
	if m.showSidebar {
		cols = append(cols, sidebar, " ")
	}
	cols = append(cols, preview)
	if m.showStats {
		cols = append(cols, " ", stats)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	status := dimStyle.Render(" " + m.status + " ")
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinVertical(lipgloss.Left, status, m.renderHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"Tab shapes",
		"s stats",
		"w wireframe",
		"t target",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
