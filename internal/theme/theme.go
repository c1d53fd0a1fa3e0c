package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/modalstack/internal/modal"
)

// Base classes applied before any user supplied class.
const (
	WindowClass  = "ms-modal-window"
	TitleClass   = "ms-modal-title"
	CloseClass   = "ms-modal-close"
	OverlayClass = "ms-modal-overlay"
)

// Class is a named set of style attributes.
type Class struct {
	Foreground       string `toml:"foreground"`
	Background       string `toml:"background"`
	BorderForeground string `toml:"border_foreground"`
	Border           string `toml:"border"` // normal, rounded, thick, double, hidden
	Bold             *bool  `toml:"bold"`
	Faint            *bool  `toml:"faint"`
	Padding          []int  `toml:"padding"` // lipgloss shorthand, 1 to 4 values
}

// Apply layers the class on top of s.
func (c Class) Apply(s lipgloss.Style) lipgloss.Style {
	if c.Foreground != "" {
		s = s.Foreground(lipgloss.Color(c.Foreground))
	}
	if c.Background != "" {
		s = s.Background(lipgloss.Color(c.Background))
	}
	if b, ok := borderByName(c.Border); ok {
		s = s.Border(b)
	}
	if c.BorderForeground != "" {
		s = s.BorderForeground(lipgloss.Color(c.BorderForeground))
	}
	if c.Bold != nil {
		s = s.Bold(*c.Bold)
	}
	if c.Faint != nil {
		s = s.Faint(*c.Faint)
	}
	if n := len(c.Padding); n > 0 && n <= 4 {
		s = s.Padding(c.Padding...)
	}
	return s
}

func borderByName(name string) (lipgloss.Border, bool) {
	switch strings.ToLower(name) {
	case "normal":
		return lipgloss.NormalBorder(), true
	case "rounded":
		return lipgloss.RoundedBorder(), true
	case "thick":
		return lipgloss.ThickBorder(), true
	case "double":
		return lipgloss.DoubleBorder(), true
	case "hidden":
		return lipgloss.HiddenBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}

// Theme is a set of style classes with metadata.
type Theme struct {
	Name      string    // Theme name (without .toml extension)
	Path      string    // Full path to the file (empty for embedded)
	ModTime   time.Time // Last modification time
	IsDefault bool      // True for the embedded default theme

	mu      sync.RWMutex
	classes map[string]Class
}

type themeFile struct {
	Classes map[string]Class `toml:"classes"`
}

// Parse builds a theme from TOML content.
func Parse(name string, data []byte) (*Theme, error) {
	classes, err := parseClasses(data)
	if err != nil {
		return nil, &ThemeError{Theme: name, Message: "invalid theme", Err: err}
	}
	return &Theme{Name: name, classes: classes}, nil
}

func parseClasses(data []byte) (map[string]Class, error) {
	var f themeFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Classes == nil {
		f.Classes = make(map[string]Class)
	}
	return f.Classes, nil
}

// NewTheme loads a theme from a TOML file.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	t.Path = path
	t.ModTime = info.ModTime()
	return t, nil
}

// NewDefaultTheme creates the embedded default theme.
func NewDefaultTheme() *Theme {
	data, _ := GetEmbeddedTheme(DefaultThemeName)
	t, err := Parse(DefaultThemeName, []byte(data))
	if err != nil {
		// The embedded theme is part of the binary; fall back to no classes.
		t = &Theme{Name: DefaultThemeName, classes: make(map[string]Class)}
	}
	t.IsDefault = true
	return t
}

// Load resolves a theme by file path, user theme name or embedded name.
// An empty value selects the default theme.
func Load(nameOrPath string) (*Theme, error) {
	if nameOrPath == "" || nameOrPath == DefaultThemeName {
		return NewDefaultTheme(), nil
	}

	if _, err := os.Stat(nameOrPath); err == nil {
		name := strings.TrimSuffix(filepath.Base(nameOrPath), filepath.Ext(nameOrPath))
		return NewTheme(name, nameOrPath)
	}

	if path := filepath.Join(ThemesDir(), nameOrPath+".toml"); fileExists(path) {
		return NewTheme(nameOrPath, path)
	}

	if data, ok := GetEmbeddedTheme(nameOrPath); ok {
		return Parse(nameOrPath, []byte(data))
	}

	return nil, &ThemeError{Theme: nameOrPath, Message: "theme not found"}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Reload re-reads the theme file if its modification time moved forward.
// Returns true if the classes changed.
func (t *Theme) Reload() (bool, error) {
	if t.IsDefault || t.Path == "" {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}

	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	classes, err := parseClasses(data)
	if err != nil {
		return false, &ThemeError{Theme: t.Name, Message: "invalid theme", Err: err}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.ModTime = info.ModTime()
	changed := fmt.Sprint(sortedClasses(t.classes)) != fmt.Sprint(sortedClasses(classes))
	t.classes = classes
	return changed, nil
}

func sortedClasses(m map[string]Class) []string {
	out := make([]string, 0, len(m))
	for name, c := range m {
		out = append(out, fmt.Sprintf("%s=%s|%s|%s|%s|%s|%s|%v",
			name, c.Foreground, c.Background, c.BorderForeground, c.Border,
			deref(c.Bold), deref(c.Faint), c.Padding))
	}
	sort.Strings(out)
	return out
}

func deref(b *bool) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprint(*b)
}

// Class returns a named class.
func (t *Theme) Class(name string) (Class, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.classes[name]
	return c, ok
}

// ClassNames returns the defined class names, sorted.
func (t *Theme) ClassNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.classes))
	for name := range t.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply layers the whitespace separated classes onto base, in order.
// Unknown classes are ignored.
func (t *Theme) Apply(base lipgloss.Style, classes string) lipgloss.Style {
	for _, name := range strings.Fields(classes) {
		if c, ok := t.Class(name); ok {
			base = c.Apply(base)
		}
	}
	return base
}

// WindowStyles returns window styles with the base classes and then
// modalClass applied to the box.
func (t *Theme) WindowStyles(modalClass string) modal.Styles {
	st := modal.DefaultStyles()
	st.Box = t.Apply(st.Box, WindowClass+" "+modalClass)
	st.Title = t.Apply(st.Title, TitleClass)
	st.Close = t.Apply(st.Close, CloseClass)
	return st
}

// OverlayStyle returns the scrim style drawn beneath a window.
func (t *Theme) OverlayStyle(overlayClass string) lipgloss.Style {
	return t.Apply(lipgloss.NewStyle(), OverlayClass+" "+overlayClass)
}
