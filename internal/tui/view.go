package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"threatlens/internal/viz"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ecf0f1")).
			Background(lipgloss.Color("#34495e")).
			Padding(0, 1)

	statusAlertStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e74c3c")).
				Bold(true)

	searchLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1c40f")).
				Bold(true)
)

// View renders the canvas frame plus status and help rows
func (m Model) View() string {
	if m.width == 0 {
		return "Starting up..."
	}

	viz.Render(m.canvas, m.snap, m.ctrl.Camera(), m.ctrl.SelectedID(), m.ctrl.HoveredID())

	var b strings.Builder
	b.WriteString(renderCanvas(m.canvas))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

// styleCache avoids rebuilding a lipgloss style per cell per frame
var styleCache = map[string]lipgloss.Style{}

func styleFor(color string) lipgloss.Style {
	if s, ok := styleCache[color]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	styleCache[color] = s
	return s
}

// renderCanvas turns the drawn cell grid into colored terminal rows.
// Runs of the same color collapse into one styled segment.
func renderCanvas(c *viz.Canvas) string {
	width, height := c.Size()
	var b strings.Builder

	for y := 0; y < height; y++ {
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(styleFor(runColor).Render(run.String()))
			}
			run.Reset()
		}

		for x := 0; x < width; x++ {
			cell := c.At(x, y)
			if cell.Color != runColor {
				flush()
				runColor = cell.Color
			}
			run.WriteRune(cell.Ch)
		}
		flush()
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	if m.searching {
		return statusBarStyle.Render(searchLabelStyle.Render("search: ") + m.search.View())
	}

	cam := m.ctrl.Camera()
	left := fmt.Sprintf("%d nodes  %d edges  zoom %.1fx", len(m.snap.Nodes), len(m.snap.Edges), cam.Zoom)

	if m.query != "" {
		left += fmt.Sprintf("  filter: %q", m.query)
	}
	if t := typeCycle[m.typeIdx]; t != "" {
		left += "  type: " + t
	}
	if hovered := m.snap.NodeByID(m.ctrl.HoveredID()); hovered != nil {
		left += fmt.Sprintf("  %s", hovered.Label)
	}

	bar := left
	if m.status != "" {
		bar += "  " + statusAlertStyle.Render(m.status)
	}
	return statusBarStyle.Width(m.width).Render(bar)
}
