package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	handleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Bold(true).
			Align(lipgloss.Center)

	drawerBodyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Align(lipgloss.Center)
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	visible := m.visibleRows()
	bodyRows := m.height - 1 - visible
	if bodyRows < 0 {
		bodyRows = 0
	}

	hint := hintStyle.Render("drag the handle with the mouse, or press ? for keys")
	if m.showHelp {
		hint = m.help.View(m.keys)
	}
	for i := 0; i < bodyRows; i++ {
		if i == bodyRows/2 {
			b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hint))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderDrawer(visible))
	return b.String()
}

func (m *Model) renderStatus() string {
	status := fmt.Sprintf("dragster │ pos %7.2f │ %6.1f%% │ %s",
		m.offset.Offset(), m.controller.Percentage(), m.controller.State())
	return statusBarStyle.Width(m.width).Render(status)
}

func (m *Model) renderDrawer(visible int) string {
	lines := make([]string, 0, visible)
	lines = append(lines, handleStyle.Width(m.width).Render("━━━━━ ⋅⋅⋅ ━━━━━"))

	for i := 1; i < visible; i++ {
		content := ""
		if i == visible/2 {
			content = fmt.Sprintf("drawer %.0f%% open", m.controller.Percentage())
		}
		lines = append(lines, drawerBodyStyle.Width(m.width).Render(content))
	}

	return strings.Join(lines, "\n")
}
