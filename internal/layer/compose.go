package layer

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Item is a block of rendered text placed at a z-index.
type Item struct {
	ID      string
	Content string
	Z       int

	// Centered places the block in the middle of the screen, shifted by
	// X and Y. Otherwise X and Y are absolute.
	Centered bool
	X, Y     int

	// Overlay, when set, restyles everything beneath this item before it
	// is drawn (a scrim). Existing styling underneath is stripped.
	Overlay *lipgloss.Style
}

// Placement records where an item ended up.
type Placement struct {
	ID   string
	Z    int
	Rect Rect
}

// Compose draws items over background in ascending Z order. Items with the
// same Z keep their argument order. The result is exactly height lines of
// width cells. Placements are returned bottom-up.
func Compose(background string, width, height int, items ...Item) (string, []Placement) {
	if width <= 0 || height <= 0 {
		return "", nil
	}

	lines := fitLines(background, width, height)

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Z < sorted[j].Z
	})

	placements := make([]Placement, 0, len(sorted))
	for _, it := range sorted {
		if it.Overlay != nil {
			for i := range lines {
				lines[i] = it.Overlay.Render(xansi.Strip(lines[i]))
			}
		}

		fg := strings.Split(it.Content, "\n")
		fgW := 0
		for _, ln := range fg {
			if n := xansi.StringWidth(ln); n > fgW {
				fgW = n
			}
		}
		fgH := len(fg)
		if fgW == 0 || it.Content == "" {
			continue
		}
		fgW = min(fgW, width)
		fgH = min(fgH, height)

		x, y := it.X, it.Y
		if it.Centered {
			x += (width - fgW) / 2
			y += (height - fgH) / 2
		}
		x = clamp(x, 0, width-fgW)
		y = clamp(y, 0, height-fgH)

		overlayAt(lines, fg[:fgH], width, x, y, fgW)
		placements = append(placements, Placement{
			ID:   it.ID,
			Z:    it.Z,
			Rect: Rect{X: x, Y: y, W: fgW, H: fgH},
		})
	}

	return strings.Join(lines, "\n"), placements
}

// fitLines splits s into exactly height lines padded or cut to width.
func fitLines(s string, width, height int) []string {
	src := strings.Split(s, "\n")
	lines := make([]string, height)
	for i := range lines {
		ln := ""
		if i < len(src) {
			ln = src[i]
		}
		lines[i] = padOrCut(ln, width)
	}
	return lines
}

func padOrCut(s string, width int) string {
	n := xansi.StringWidth(s)
	switch {
	case n < width:
		return s + strings.Repeat(" ", width-n)
	case n > width:
		return xansi.Cut(s, 0, width)
	default:
		return s
	}
}

func overlayAt(bgLines []string, fgLines []string, w, x, y, fgW int) {
	for i := 0; i < len(fgLines) && y+i < len(bgLines); i++ {
		bgLine := bgLines[y+i]
		left := xansi.Cut(bgLine, 0, x)
		right := xansi.Cut(bgLine, x+fgW, w)
		bgLines[y+i] = left + padOrCut(fgLines[i], fgW) + right
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
