package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/internal/testutils"
	"github.com/aretw0/clicktree/pkg/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) Model {
	t.Helper()
	ctx := context.Background()
	comp := clicktree.New()
	_, err := comp.Render(ctx, &domain.RenderConfig{Options: testutils.Methods(), Indent: 10})
	require.NoError(t, err)
	return NewModel(ctx, comp, "Methods")
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	quit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	jKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
)

func TestModel_Navigation(t *testing.T) {
	m := newModel(t)
	assert.Len(t, m.rows, 5)

	m, _ = press(t, m, up)
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, down, jKey, down, down, down, down)
	assert.Equal(t, 4, m.cursor)
}

func TestModel_ToggleGroup(t *testing.T) {
	m := newModel(t)

	m, cmd := press(t, m, enter)
	assert.Nil(t, cmd)
	assert.Len(t, m.rows, 2)
	assert.Equal(t, []string{"a-Method A-0"}, m.comp.Collapsed())

	m, _ = press(t, m, right)
	assert.Len(t, m.rows, 5)

	m, _ = press(t, m, left)
	assert.Len(t, m.rows, 2)

	// Collapsing above the cursor pulls it back into range.
	m, _ = press(t, m, right, down, down, down, down)
	assert.Equal(t, 4, m.cursor)
	_, err := m.comp.Toggle(context.Background(), "a-Method A-0")
	require.NoError(t, err)
	m.refresh()
	assert.Equal(t, 1, m.cursor)
}

func TestModel_SelectLeaf(t *testing.T) {
	m := newModel(t)

	m, _ = press(t, m, down, enter) // collapse Method B
	m, cmd := press(t, m, down, enter)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	require.NotNil(t, m.Selection())
	assert.Equal(t, "d", m.Selection().ID)
	assert.Equal(t, []string{"b-Method B-1"}, m.Selection().CollapsedState)
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t)
	m, cmd := press(t, m, quit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, m.Selection())
}

func TestModel_View(t *testing.T) {
	m := newModel(t)
	view := m.View()
	assert.Contains(t, view, "Methods")
	assert.Contains(t, view, "▾ Method A")
	assert.Contains(t, view, "└─ Method C")
	assert.Contains(t, view, "q quit")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii)
	assert.Contains(t, buf.String(), "___| (_) ___|")
}
