package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/modal"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func newTestModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	m := New(cfg, nil, nil)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func stackIDs(m Model) []string {
	var ids []string
	for _, l := range m.mgr.Layers() {
		ids = append(ids, l.LayerID())
	}
	return ids
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestModel_NewWindows(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 0; i < 3; i++ {
		m = update(t, m, keyPress("n"))
	}

	require.Len(t, m.windows, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, stackIDs(m))
	assert.Equal(t, 2, m.selected)

	for i, w := range m.windows {
		pos, ok := w.Position()
		require.True(t, ok)
		assert.Equal(t, i, pos)
		z, _ := w.ZIndex()
		assert.Equal(t, config.DefaultStartingOffset+i, z)
	}
}

func TestModel_WindowLimit(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 0; i < maxWindows+2; i++ {
		m = update(t, m, keyPress("n"))
	}

	assert.Len(t, m.windows, maxWindows)
	assert.Equal(t, maxWindows, m.mgr.Len())
}

func TestModel_RaiseByNumber(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 0; i < 3; i++ {
		m = update(t, m, keyPress("n"))
	}

	m = update(t, m, keyPress("1"))
	assert.Equal(t, []string{"m2", "m3", "m1"}, stackIDs(m))
	assert.Equal(t, 0, m.selected)

	pos, _ := m.windows[1].Position()
	assert.Equal(t, 0, pos)

	// Raising the top window again changes nothing.
	m = update(t, m, keyPress("1"))
	assert.Equal(t, []string{"m2", "m3", "m1"}, stackIDs(m))
}

func TestModel_RaiseMissingWindow(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(keyPress("4"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, msg.isErr)
	assert.Equal(t, 0, next.(Model).mgr.Len())
}

func TestModel_HideTopAndSelected(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 0; i < 4; i++ {
		m = update(t, m, keyPress("n"))
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"m1", "m2", "m3"}, stackIDs(m))
	assert.False(t, m.windows[3].Visible())

	// Select m1 and hide it from the middle of the stack.
	m.selected = 0
	m = update(t, m, keyPress("x"))
	assert.Equal(t, []string{"m2", "m3"}, stackIDs(m))

	pos, _ := m.windows[2].Position()
	assert.Equal(t, 1, pos)

	m = update(t, m, keyPress("c"))
	assert.Equal(t, 0, m.mgr.Len())
	for _, w := range m.windows {
		assert.False(t, w.Visible())
	}
}

func TestModel_SelectionCycles(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("n"))
	m = update(t, m, keyPress("n"))
	require.Equal(t, 1, m.selected)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.selected)
	m = update(t, m, keyPress("k"))
	assert.Equal(t, 1, m.selected)

	m = update(t, m, keyPress("x"))
	assert.False(t, m.windows[1].Visible())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.windows[1].Visible())
}

func TestModel_OffsetPrompt(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("n"))
	m = update(t, m, keyPress("n"))

	m = update(t, m, keyPress("z"))
	require.Equal(t, ModeOffset, m.mode)
	assert.Equal(t, "100", m.offsetInput.Value())

	m.offsetInput.SetValue("500")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeStack, m.mode)
	assert.Equal(t, 500, m.mgr.StartingOffset())

	// Positions are untouched; only derived z-indices move.
	pos, _ := m.windows[1].Position()
	assert.Equal(t, 1, pos)
	z, _ := m.windows[1].ZIndex()
	assert.Equal(t, 501, z)
}

func TestModel_OffsetPromptInvalid(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("z"))
	m.offsetInput.SetValue("lots")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, msg.isErr)
	assert.Equal(t, config.DefaultStartingOffset, next.(Model).mgr.StartingOffset())
}

func TestModel_OffsetPromptCancel(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("z"))
	m.offsetInput.SetValue("7")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeStack, m.mode)
	assert.Equal(t, config.DefaultStartingOffset, m.mgr.StartingOffset())
}

func TestModel_LegacyOffsetFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Stack.LegacyOffset = true

	m := newTestModel(t, cfg)
	m = update(t, m, keyPress("n"))

	z, _ := m.windows[0].ZIndex()
	assert.Equal(t, config.LegacyStartingOffset, z)
}

func TestModel_ConfigReload(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("n"))

	cfg := config.DefaultConfig()
	cfg.Stack.StartingOffset = 300
	cfg.Modal.CloseOnOverlayClick = false
	m = update(t, m, configChangedMsg{cfg: cfg})

	assert.Equal(t, 300, m.mgr.StartingOffset())
	assert.True(t, m.windows[0].CloseOnOverlayClick(), "existing windows keep their settings")

	m = update(t, m, keyPress("n"))
	assert.False(t, m.windows[1].CloseOnOverlayClick())
}

func TestModel_OverlayClick(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("n"))
	m = update(t, m, keyPress("n"))

	m = update(t, m, click(0, 0))
	assert.Equal(t, []string{"m1"}, stackIDs(m))
	assert.False(t, m.windows[1].Visible())
}

func TestModel_OverlayClickIgnoredWhenDisabled(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("n"))
	m = update(t, m, keyPress("o"))
	require.False(t, m.windows[0].CloseOnOverlayClick())

	m = update(t, m, click(0, 0))
	assert.True(t, m.windows[0].Visible())
	assert.Equal(t, 1, m.mgr.Len())
}

func TestModel_ClickInsideTopWindow(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("n"))

	// The window is centered on screen.
	m = update(t, m, click(60, 19))
	assert.True(t, m.windows[0].Visible())
}

func TestModel_CloseButtonClick(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("n"))
	m = update(t, m, keyPress("b"))
	require.True(t, m.windows[0].ShowCloseButton())

	screen, _ := m.compose()
	x, y := -1, -1
	for i, line := range strings.Split(screen, "\n") {
		plain := xansi.Strip(line)
		if idx := strings.Index(plain, modal.CloseGlyph); idx >= 0 {
			x, y = xansi.StringWidth(plain[:idx]), i
			break
		}
	}
	require.GreaterOrEqual(t, y, 0, "close button not drawn")

	m = update(t, m, click(x+1, y))
	assert.False(t, m.windows[0].Visible())
	assert.Equal(t, 0, m.mgr.Len())
}

func TestModel_MouseDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TUI.Mouse = false

	m := newTestModel(t, cfg)
	m = update(t, m, keyPress("n"))
	m = update(t, m, click(0, 0))
	assert.True(t, m.windows[0].Visible())
}

func TestModel_View(t *testing.T) {
	m := New(nil, nil, nil)
	assert.Equal(t, "Initializing...", m.View())

	m = newTestModel(t, nil)
	m = update(t, m, keyPress("n"))
	m = update(t, m, keyPress("n"))

	view := xansi.Strip(m.View())
	assert.Contains(t, view, "Window 2")
	assert.Contains(t, view, "z-index 101")
	assert.Contains(t, view, "stack: m1(100) < m2(101)")
	assert.Equal(t, 40, len(strings.Split(view, "\n")))
}

func TestModel_StackEntries(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyPress("n"))
	m = update(t, m, keyPress("n"))
	m = update(t, m, keyPress("1"))

	entries := m.stackEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, stackEntry{ID: "m2", Title: "Window 2", Position: 0, ZIndex: 100}, entries[0])
	assert.Equal(t, stackEntry{ID: "m1", Title: "Window 1", Position: 1, ZIndex: 101}, entries[1])
}

func TestDetectClipboardCommand_Configured(t *testing.T) {
	assert.Equal(t, "cat", detectClipboardCommand("cat"))
}
