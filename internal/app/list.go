package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/ui/theme"
)

func (m AppModel) renderContent(width, height int) string {
	if m.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", m.errMsg))
	}
	if !m.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading catalog...")
	}

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		msg := "  The catalog is empty."
		if m.filter.Query() != "" {
			msg = "  Nothing matches the filter."
		}
		b.WriteString(theme.Hint.Render(msg))
		return b.String()
	}

	// Keep the selection on screen; two lines go to the filter.
	rows := max(height-2, 1)
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}

	used := 0
	for i := start; i < len(m.visible) && used < rows; i++ {
		p := m.problems[m.visible[i]]
		b.WriteString(m.renderRow(p, i == m.selected, width))
		b.WriteString("\n")
		used++

		if m.expanded[p.ID] {
			detail := renderDetail(p, width)
			b.WriteString(detail)
			b.WriteString("\n")
			used += lipgloss.Height(detail)
		}
	}
	return b.String()
}

func (m AppModel) renderRow(p catalog.Problem, selected bool, width int) string {
	prefix := "  "
	style := theme.Unselected
	if selected {
		prefix = "> "
		style = theme.Selected
	}

	badge := lipgloss.NewStyle().
		Foreground(theme.DifficultyColor(p.Difficulty)).
		Render(fmt.Sprintf("D%d", p.Difficulty))

	head := fmt.Sprintf("%s%-12s %-16s ", prefix,
		ansi.Truncate(p.ID, 12, "…"), ansi.Truncate(p.Topic, 16, "…"))
	tail := fmt.Sprintf(" %3dm  ", p.EstimatedMinutes)
	textWidth := max(width-ansi.StringWidth(head)-ansi.StringWidth(tail)-3, 5)
	text := ansi.Truncate(strings.Join(strings.Fields(p.Text), " "), textWidth, "…")

	return style.Render(head) + badge + theme.Subtitle.Render(tail) + style.Render(text)
}

func renderDetail(p catalog.Problem, width int) string {
	body := fmt.Sprintf("%s\n\n%s",
		theme.Body.Render(p.Text),
		theme.Hint.Render(fmt.Sprintf("%s · difficulty %d · about %d min",
			p.Topic, p.Difficulty, p.EstimatedMinutes)))
	return lipgloss.NewStyle().MarginLeft(4).Render(
		theme.Card.Width(max(width-8, 20)).Render(body))
}
