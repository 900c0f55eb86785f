// Package report renders a generated assessment for the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/assessgen/internal/assessment"
	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/executor"
	"github.com/abhisek/assessgen/internal/ui/theme"
)

const defaultWidth = 80

// Render formats res as a card: plan summary, reasoning log, the selected
// problems and the time used against the budget. A width of 0 uses 80
// columns.
func Render(res *assessment.Result, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	inner := max(width-4, 20)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Assessment " + res.AssessmentID))
	b.WriteString("\n")

	if plan := res.Planner.Plan; plan != nil {
		strategy := ""
		if plan.Strategy != nil {
			strategy = plan.Strategy.Name()
		}
		b.WriteString(field("Strategy", strategy))
		b.WriteString(field("Topics", strings.Join(plan.TargetTopics, ", ")))
		b.WriteString(field("Difficulty", plan.Difficulty.String()))
		b.WriteString(field("Planned", strconv.Itoa(plan.NumProblems)+" problems"))
	}

	if len(res.Planner.ReasoningLog) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Label.Render("Reasoning"))
		b.WriteString("\n")
		for _, line := range res.Planner.ReasoningLog {
			b.WriteString(theme.Hint.Render(ansi.Truncate("  • "+line, inner, "…")))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.Label.Render("Selected problems"))
	b.WriteString("\n")
	problems := res.Executor.SelectedProblems
	if len(problems) == 0 {
		b.WriteString(theme.Hint.Render("  No problems fit the plan."))
		b.WriteString("\n")
	} else {
		b.WriteString(problemTable(problems, inner))
	}

	b.WriteString("\n")
	b.WriteString(totalLine(res.Executor))

	return theme.Card.Width(width).Render(b.String())
}

func field(label, value string) string {
	return theme.Subtitle.Render(fmt.Sprintf("%-11s", label)) + theme.Body.Render(value) + "\n"
}

func problemTable(problems []catalog.Problem, width int) string {
	idWidth, topicWidth := len("ID"), len("Topic")
	for _, p := range problems {
		idWidth = max(idWidth, ansi.StringWidth(p.ID))
		topicWidth = max(topicWidth, ansi.StringWidth(p.Topic))
	}
	idWidth = min(idWidth, 12)
	topicWidth = min(topicWidth, 18)

	// "  #  " + id + "  " + topic + "  " + diff(5) + "  " + min(4) + "  "
	textWidth := max(width-idWidth-topicWidth-24, 10)

	row := func(n, id, topic, diff, mins, text string) string {
		return fmt.Sprintf("  %2s  %-*s  %-*s  %-5s  %4s  %s",
			n, idWidth, id, topicWidth, topic, diff, mins, text)
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(row("#", "ID", "Topic", "Diff", "Min", "Text")))
	b.WriteString("\n")
	for i, p := range problems {
		line := row(
			strconv.Itoa(i+1),
			ansi.Truncate(p.ID, idWidth, "…"),
			ansi.Truncate(p.Topic, topicWidth, "…"),
			stars(p.Difficulty),
			strconv.Itoa(p.EstimatedMinutes),
			ansi.Truncate(oneLine(p.Text), textWidth, "…"),
		)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.DifficultyColor(p.Difficulty)).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func totalLine(out assessment.ExecutorOutput) string {
	budget, ok := out.Constraints[executor.BudgetConstraint]
	if !ok {
		return theme.Label.Render(fmt.Sprintf("Total %d min", out.TotalMinutes))
	}
	style := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	if budget > 0 && out.TotalMinutes == budget {
		style = style.Foreground(theme.Accent)
	}
	return style.Render(fmt.Sprintf("Total %d / %d min", out.TotalMinutes, budget))
}

func stars(d int) string {
	d = min(max(d, 0), catalog.MaxDifficulty)
	return strings.Repeat("★", d) + strings.Repeat("☆", catalog.MaxDifficulty-d)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
