package modal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CloseGlyph is the close affordance drawn in the window header.
const CloseGlyph = "[x]"

// Styles controls how a window is drawn.
type Styles struct {
	Box   lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Close lipgloss.Style
	Badge lipgloss.Style
}

// DefaultStyles returns the built-in window styles.
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Body:  lipgloss.NewStyle(),
		Close: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Badge: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render draws the window as a bordered box of the given outer width.
// Hidden windows render as an empty string.
func (w *Window) Render(width int, st Styles) string {
	if !w.Visible() {
		return ""
	}

	inner := width - st.Box.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	header := st.Title.Render(w.title)
	if w.ShowCloseButton() {
		closeBtn := st.Close.Render(CloseGlyph)
		gap := inner - lipgloss.Width(header) - lipgloss.Width(closeBtn)
		if gap < 1 {
			gap = 1
		}
		header += strings.Repeat(" ", gap) + closeBtn
	}

	var sb strings.Builder
	sb.WriteString(header)
	if w.body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(st.Body.Width(inner).Render(w.body))
	}
	if z, ok := w.ZIndex(); ok {
		sb.WriteString("\n\n")
		sb.WriteString(st.Badge.Render(fmt.Sprintf("z-index %d", z)))
	}

	return st.Box.Width(inner + st.Box.GetHorizontalPadding()).Render(sb.String())
}
