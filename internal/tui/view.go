package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/layer"
	"github.com/jmylchreest/modalstack/internal/modal"
)

// compose renders the page with every stacked window drawn at its z-index,
// and returns a hit map for routing clicks.
func (m Model) compose() (string, *layer.HitMap) {
	hits := layer.NewHitMap()

	height := m.height - lipgloss.Height(m.footer())
	if height < 1 {
		height = 1
	}

	width := m.cfg.Modal.Width
	if width == 0 {
		width = config.DefaultModalWidth
	}

	layers := m.mgr.Layers()
	items := make([]layer.Item, 0, len(layers))
	windows := make(map[string]*modal.Window, len(layers))
	contents := make(map[string]string, len(layers))
	base := len(layers) / 2

	for pos, l := range layers {
		w, ok := l.(*modal.Window)
		if !ok {
			continue
		}
		z, _ := w.ZIndex()
		content := w.Render(width, m.theme.WindowStyles(w.ModalClass()))
		scrim := m.theme.OverlayStyle(w.OverlayClass())

		it := layer.Item{
			ID:       w.ID(),
			Content:  content,
			Z:        z,
			Centered: true,
			Overlay:  &scrim,
		}
		if m.cfg.TUI.Cascade {
			it.X = (pos - base) * 3
			it.Y = pos - base
		}
		items = append(items, it)
		windows[w.ID()] = w
		contents[w.ID()] = content
	}

	screen, placements := layer.Compose(m.page(), m.width, height, items...)

	for _, p := range placements {
		w := windows[p.ID]
		hits.AddRect(p.ID, p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H, w)
		if w.ShowCloseButton() {
			if x, y, ok := closeGlyphOffset(contents[p.ID]); ok {
				hits.AddRect(closeRegionID(w), p.Rect.X+x, p.Rect.Y+y, xansi.StringWidth(modal.CloseGlyph), 1, w)
			}
		}
	}

	return screen, hits
}

func closeRegionID(w *modal.Window) string {
	return w.ID() + "/close"
}

// closeGlyphOffset locates the close button inside rendered window content.
func closeGlyphOffset(content string) (x, y int, ok bool) {
	for i, line := range strings.Split(content, "\n") {
		plain := xansi.Strip(line)
		if idx := strings.LastIndex(plain, modal.CloseGlyph); idx >= 0 {
			return xansi.StringWidth(plain[:idx]), i, true
		}
	}
	return 0, 0, false
}

// page renders the background listing every window the playground owns.
func (m Model) page() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	selStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")).
		Bold(true)

	s := titleStyle.Render("modalstack playground") + "\n\n"

	if len(m.windows) == 0 {
		s += labelStyle.Render("No windows yet. Press n to open one.") + "\n"
		return s
	}

	for i, w := range m.windows {
		marker := "  "
		if i == m.selected {
			marker = selStyle.Render("> ")
		}

		state := labelStyle.Render("hidden")
		if pos, ok := w.Position(); ok && w.Visible() {
			z, _ := w.ZIndex()
			state = fmt.Sprintf("position %d, z-index %d", pos, z)
		}

		s += fmt.Sprintf("%s%d %-10s %-28s %s\n",
			marker, i+1, w.Title(), state,
			labelStyle.Render(fmt.Sprintf("overlay-close:%s close-button:%s",
				onOff(w.CloseOnOverlayClick()), onOff(w.ShowCloseButton()))))
	}

	return s
}
