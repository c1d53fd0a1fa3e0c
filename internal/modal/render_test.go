package modal

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/modalstack/internal/stack"
)

func TestRender_Hidden(t *testing.T) {
	w := New(stack.New(), WithTitle("Hello"))
	assert.Empty(t, w.Render(40, DefaultStyles()))
}

func TestRender_Visible(t *testing.T) {
	w := New(stack.New(), WithTitle("Hello"), WithBody("World"))
	w.Show()

	out := w.Render(40, DefaultStyles())
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "World")
	assert.Contains(t, out, "z-index 100")
	assert.NotContains(t, out, CloseGlyph)
	assert.Equal(t, 40, lipgloss.Width(out))
}

func TestRender_CloseButton(t *testing.T) {
	w := New(stack.New(), WithTitle("Hello"), WithShowCloseButton(true))
	w.Show()

	out := w.Render(40, DefaultStyles())
	assert.Contains(t, out, CloseGlyph)
}
