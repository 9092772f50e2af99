// Package tui hosts a component in an interactive terminal session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/internal/presentation/text"
	"github.com/aretw0/clicktree/pkg/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	title    lipgloss.Style
	cursor   lipgloss.Style
	help     lipgloss.Style
	errorMsg lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa")),
		cursor:   lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("231")).Bold(true),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Model is a bubbletea model acting as the host of a rendered component.
// Enter on a group toggles it; enter on a leaf reports the selection and quits.
type Model struct {
	ctx    context.Context
	comp   *clicktree.Component
	title  string
	rows   []domain.VisibleNode
	cursor int

	selected *domain.Selection
	err      error
	styles   styles
}

// NewModel wraps a component that has already rendered.
func NewModel(ctx context.Context, comp *clicktree.Component, title string) Model {
	m := Model{
		ctx:    ctx,
		comp:   comp,
		title:  title,
		styles: defaultStyles(),
	}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	m.rows = m.comp.Tree().Visible()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.err = nil

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "right", "l":
		if n := m.current(); n != nil && n.IsGroup() && n.Collapsed {
			m.toggle(n)
		}
	case "left", "h":
		if n := m.current(); n != nil && n.IsGroup() && !n.Collapsed {
			m.toggle(n)
		}
	case "enter", " ":
		n := m.current()
		if n == nil {
			break
		}
		if n.IsGroup() {
			m.toggle(n)
			break
		}
		sel, err := m.comp.Select(m.ctx, n.Index)
		if err != nil {
			m.err = err
			break
		}
		m.selected = &sel
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) current() *domain.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Node
}

func (m *Model) toggle(n *domain.Node) {
	if _, err := m.comp.Toggle(m.ctx, n.Key); err != nil {
		m.err = err
		return
	}
	m.refresh()
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.styles.title.Render(m.title))
		b.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(m.styles.help.Render("(no options)"))
		b.WriteString("\n")
	}
	for i, row := range m.rows {
		line := text.Line(row, text.Options{Profile: termenv.Ascii})
		if i == m.cursor {
			b.WriteString(m.styles.cursor.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.errorMsg.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("↑/↓ move  ←/→ collapse/expand  enter toggle/select  q quit"))
	b.WriteString("\n")
	return b.String()
}

// Selection returns the reported selection, or nil when the user quit without one.
func (m Model) Selection() *domain.Selection {
	return m.selected
}

// ErrNoSelection is returned by Browse when the user quits without selecting.
var ErrNoSelection = errors.New("no item selected")

// Browse runs the interactive host until the user selects a leaf or quits.
func Browse(ctx context.Context, comp *clicktree.Component, title string, opts ...tea.ProgramOption) (domain.Selection, error) {
	if comp.Tree() == nil {
		return domain.Selection{}, domain.ErrNoTree
	}
	opts = append(opts, tea.WithContext(ctx))
	final, err := tea.NewProgram(NewModel(ctx, comp, title), opts...).Run()
	if err != nil {
		return domain.Selection{}, fmt.Errorf("browse failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.Selection() == nil {
		return domain.Selection{}, ErrNoSelection
	}
	return *m.Selection(), nil
}
