// Package tui provides the BubbleTea-based modal playground.
package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/modal"
	"github.com/jmylchreest/modalstack/internal/stack"
	"github.com/jmylchreest/modalstack/internal/theme"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeStack Mode = iota
	ModeOffset
)

// maxWindows matches the number keys available for raising windows.
const maxWindows = 9

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg    *config.Config
	theme  *theme.Theme
	logger *slog.Logger

	mgr     *stack.Manager
	windows []*modal.Window

	// Current mode
	mode Mode

	// Components
	offsetInput textinput.Model
	help        help.Model

	// State
	selected int
	width    int
	height   int
	ready    bool

	// Key bindings
	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool
}

// New creates a new TUI model. A nil theme falls back to the embedded
// default.
func New(cfg *config.Config, th *theme.Theme, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if th == nil {
		th = theme.NewDefaultTheme()
	}
	if logger == nil {
		logger = slog.Default()
	}

	offsetInput := textinput.New()
	offsetInput.Placeholder = strconv.Itoa(config.DefaultStartingOffset)
	offsetInput.CharLimit = 9
	offsetInput.Prompt = "Starting offset: "

	h := help.New()
	h.ShowAll = false

	return Model{
		cfg:         cfg,
		theme:       th,
		logger:      logger,
		mgr:         stack.New(stack.WithStartingOffset(cfg.EffectiveStartingOffset()), stack.WithLogger(logger)),
		mode:        ModeStack,
		offsetInput: offsetInput,
		help:        h,
		keys:        DefaultKeyMap(),
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		return m, nil

	case configChangedMsg:
		return m.applyConfig(msg.cfg)

	case themeChangedMsg:
		return m, setStatus(fmt.Sprintf("Theme %q reloaded", msg.name), false)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, setStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Stack copied to clipboard", false)
	}

	if m.mode == ModeOffset {
		var cmd tea.Cmd
		m.offsetInput, cmd = m.offsetInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// configChangedMsg is sent when the config file is rewritten.
type configChangedMsg struct {
	cfg *config.Config
}

// themeChangedMsg is sent when the theme file is reloaded.
type themeChangedMsg struct {
	name string
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// applyConfig takes over a reloaded configuration. New windows pick up the
// modal defaults; existing windows keep their own settings.
func (m Model) applyConfig(cfg *config.Config) (tea.Model, tea.Cmd) {
	if cfg == nil {
		return m, nil
	}
	m.cfg = cfg

	offset := cfg.EffectiveStartingOffset()
	if offset == m.mgr.StartingOffset() {
		return m, setStatus("Config reloaded", false)
	}
	m.mgr.SetStartingOffset(offset)
	return m, setStatus(fmt.Sprintf("Config reloaded, starting offset %d", offset), false)
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeOffset {
		return m.handleOffsetKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m.handleStackKey(msg)
}

// handleStackKey handles keys in stack mode.
func (m Model) handleStackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		if len(m.windows) >= maxWindows {
			return m, setStatus(fmt.Sprintf("At most %d windows", maxWindows), true)
		}
		w := m.newWindow()
		m.windows = append(m.windows, w)
		m.selected = len(m.windows) - 1
		return m, m.show(w)

	case key.Matches(msg, m.keys.Raise):
		idx := int(msg.String()[0] - '1')
		if idx < 0 || idx >= len(m.windows) {
			return m, setStatus(fmt.Sprintf("No window %d, press n to create one", idx+1), true)
		}
		m.selected = idx
		return m, m.show(m.windows[idx])

	case key.Matches(msg, m.keys.Next):
		if len(m.windows) > 0 {
			m.selected = (m.selected + 1) % len(m.windows)
		}
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if len(m.windows) > 0 {
			m.selected = (m.selected - 1 + len(m.windows)) % len(m.windows)
		}
		return m, nil

	case key.Matches(msg, m.keys.ShowSel):
		if w := m.selectedWindow(); w != nil {
			return m, m.show(w)
		}
		return m, nil

	case key.Matches(msg, m.keys.HideSel):
		if w := m.selectedWindow(); w != nil && w.Visible() {
			return m, m.hide(w)
		}
		return m, nil

	case key.Matches(msg, m.keys.HideTop):
		if w := m.topWindow(); w != nil {
			return m, m.hide(w)
		}
		return m, nil

	case key.Matches(msg, m.keys.HideAll):
		layers := m.mgr.Layers()
		for i := len(layers) - 1; i >= 0; i-- {
			if w, ok := layers[i].(*modal.Window); ok {
				w.Hide()
			}
		}
		return m, setStatus("All windows hidden", false)

	case key.Matches(msg, m.keys.OverlayOn):
		if w := m.selectedWindow(); w != nil {
			w.SetCloseOnOverlayClick(!w.CloseOnOverlayClick())
			return m, setStatus(fmt.Sprintf("%s: close on overlay click %s", w.ID(), onOff(w.CloseOnOverlayClick())), false)
		}
		return m, nil

	case key.Matches(msg, m.keys.CloseBtn):
		if w := m.selectedWindow(); w != nil {
			w.SetShowCloseButton(!w.ShowCloseButton())
			return m, setStatus(fmt.Sprintf("%s: close button %s", w.ID(), onOff(w.ShowCloseButton())), false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Offset):
		m.mode = ModeOffset
		m.offsetInput.SetValue(strconv.Itoa(m.mgr.StartingOffset()))
		m.offsetInput.CursorEnd()
		m.offsetInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.CopyYAML):
		data, err := yaml.Marshal(m.stackEntries())
		if err != nil {
			return m, setStatus("Failed to marshal YAML: "+err.Error(), true)
		}
		return m, m.copyToClipboard(string(data))
	}

	return m, nil
}

// handleOffsetKey handles keys while the offset prompt is open.
func (m Model) handleOffsetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeStack
		m.offsetInput.Blur()
		return m, nil

	case tea.KeyEnter:
		m.mode = ModeStack
		m.offsetInput.Blur()
		v, err := strconv.Atoi(strings.TrimSpace(m.offsetInput.Value()))
		if err != nil {
			return m, setStatus(fmt.Sprintf("Invalid offset %q", m.offsetInput.Value()), true)
		}
		m.mgr.SetStartingOffset(v)
		return m, setStatus(fmt.Sprintf("Starting offset set to %d", v), false)
	}

	var cmd tea.Cmd
	m.offsetInput, cmd = m.offsetInput.Update(msg)
	return m, cmd
}

// handleMouse routes left clicks. A click on the top window's close button
// activates it; a click anywhere outside the top window is an overlay click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.cfg.TUI.Mouse || m.mode != ModeStack {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	top := m.topWindow()
	if top == nil {
		return m, nil
	}

	_, hits := m.compose()
	region := hits.Test(msg.X, msg.Y)

	switch {
	case region == nil || region.Data != top:
		if top.OverlayClicked() {
			return m, setStatus(top.ID()+" closed by overlay click", false)
		}
		return m, setStatus(top.ID()+" ignores overlay clicks", false)

	case region.ID == closeRegionID(top):
		if top.CloseButtonClicked() {
			return m, setStatus(top.ID()+" closed", false)
		}
	}

	return m, nil
}

func (m Model) show(w *modal.Window) tea.Cmd {
	w.Show()
	pos, _ := w.Position()
	z, _ := w.ZIndex()
	return setStatus(fmt.Sprintf("%s is %s in the stack (z-index %d)", w.ID(), humanize.Ordinal(pos+1), z), false)
}

func (m Model) hide(w *modal.Window) tea.Cmd {
	w.Hide()
	return setStatus(w.ID()+" hidden", false)
}

func (m Model) newWindow() *modal.Window {
	n := len(m.windows) + 1
	return modal.New(m.mgr,
		modal.WithID(fmt.Sprintf("m%d", n)),
		modal.WithTitle(fmt.Sprintf("Window %d", n)),
		modal.WithBody("Press esc to hide the top window, or click outside it."),
		modal.WithCloseOnOverlayClick(m.cfg.Modal.CloseOnOverlayClick),
		modal.WithShowCloseButton(m.cfg.Modal.ShowCloseButton),
		modal.WithModalClass(m.cfg.Modal.ModalClass),
		modal.WithOverlayClass(m.cfg.Modal.OverlayClass),
	)
}

func (m Model) selectedWindow() *modal.Window {
	if m.selected < 0 || m.selected >= len(m.windows) {
		return nil
	}
	return m.windows[m.selected]
}

func (m Model) topWindow() *modal.Window {
	top, ok := m.mgr.Top()
	if !ok {
		return nil
	}
	w, _ := top.(*modal.Window)
	return w
}

// stackEntry is the YAML shape of one stacked window.
type stackEntry struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Position int    `yaml:"position"`
	ZIndex   int    `yaml:"z_index"`
}

func (m Model) stackEntries() []stackEntry {
	layers := m.mgr.Layers()
	entries := make([]stackEntry, 0, len(layers))
	for i, l := range layers {
		e := stackEntry{ID: l.LayerID(), Position: i, ZIndex: m.mgr.ZIndex(i)}
		if w, ok := l.(*modal.Window); ok {
			e.Title = w.Title()
		}
		entries = append(entries, e)
	}
	return entries
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	command := m.cfg.TUI.Clipboard
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, command)}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	screen, _ := m.compose()
	return screen + "\n" + m.footer()
}

// footer renders the stack line and either the status, the offset prompt
// or the help bar.
func (m Model) footer() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var s string
	s += dim.Render(fmt.Sprintf("offset %d  ", m.mgr.StartingOffset())) + stackLine(m.stackEntries())

	switch {
	case m.mode == ModeOffset:
		s += "\n" + m.offsetInput.View()
	case m.statusMsg != "":
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += "\n" + statusStyle.Render(m.statusMsg)
	case m.cfg.TUI.ShowHelp || m.help.ShowAll:
		s += "\n" + m.help.View(m.keys)
	}

	return s
}

func stackLine(entries []stackEntry) string {
	if len(entries) == 0 {
		return "stack: (empty)"
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s(%d)", e.ID, e.ZIndex)
	}
	return "stack: " + strings.Join(parts, " < ")
}
