// Package app is the interactive catalog browser.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/ui/components"
	"github.com/abhisek/assessgen/internal/ui/layout"
)

// problemsLoadedMsg carries the result of the initial catalog query.
type problemsLoadedMsg struct {
	problems []catalog.Problem
	err      error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	load func() tea.Msg

	problems []catalog.Problem
	visible  []int // indexes into problems that pass the filter
	selected int
	expanded map[string]bool
	loaded   bool
	errMsg   string

	filter components.FilterInput

	width  int
	height int
}

// NewAppModel creates a browser over the problems in repo matching f.
func NewAppModel(ctx context.Context, repo catalog.Repository, f catalog.Filter) AppModel {
	return AppModel{
		load: func() tea.Msg {
			problems, err := repo.List(ctx, f)
			return problemsLoadedMsg{problems: problems, err: err}
		},
		expanded: make(map[string]bool),
		filter:   components.NewFilterInput("filter by topic or text", 64),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.load
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case problemsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.problems = msg.problems
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.filter.Focused() {
			return m.updateFilter(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m AppModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filter.Reset()
		m.filter.Blur()
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m AppModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		if m.filter.Query() != "" {
			m.filter.Reset()
			m.applyFilter()
		}
		return m, nil
	case "/":
		return m, m.filter.Focus()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	case "home", "g":
		m.selected = 0
	case "end", "G":
		m.selected = max(len(m.visible)-1, 0)
	case "enter":
		if p, ok := m.Selected(); ok {
			m.expanded[p.ID] = !m.expanded[p.ID]
		}
	}
	return m, nil
}

// applyFilter recomputes the visible rows and clamps the selection.
func (m *AppModel) applyFilter() {
	q := m.filter.Query()
	visible := make([]int, 0, len(m.problems))
	for i, p := range m.problems {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Topic), q) ||
			strings.Contains(strings.ToLower(p.Text), q) {
			visible = append(visible, i)
		}
	}
	m.visible = visible
	m.selected = min(m.selected, max(len(m.visible)-1, 0))
}

// Selected returns the highlighted problem, if any.
func (m AppModel) Selected() (catalog.Problem, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return catalog.Problem{}, false
	}
	return m.problems[m.visible[m.selected]], true
}

// Visible returns the IDs of the problems passing the filter, in catalog
// order.
func (m AppModel) Visible() []string {
	ids := make([]string, len(m.visible))
	for i, idx := range m.visible {
		ids[i] = m.problems[idx].ID
	}
	return ids
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	status := fmt.Sprintf("%d/%d problems ", len(m.visible), len(m.problems))
	header := layout.RenderHeader("Problem catalog", status, m.width)

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "/", Description: "Filter"},
		{Key: "q", Description: "Quit"},
	}
	if m.filter.Focused() {
		hints = []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.renderContent(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the browser.
func Run(ctx context.Context, repo catalog.Repository, f catalog.Filter) error {
	p := tea.NewProgram(NewAppModel(ctx, repo, f))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
