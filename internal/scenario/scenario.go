// Package scenario replays scripted show/hide sequences against a modal
// stack and records every position change they cause.
package scenario

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Op is a scenario step operation.
type Op string

const (
	OpShow         Op = "show"          // Window.Show
	OpHide         Op = "hide"          // Window.Hide
	OpPush         Op = "push"          // Manager.Push; the window's own state is not updated
	OpRemove       Op = "remove"        // Manager.RemoveModal; the window's own state is not updated
	OpOffset       Op = "offset"        // Manager.SetStartingOffset(value)
	OpOverlayClick Op = "overlay_click" // Window.OverlayClicked
	OpCloseClick   Op = "close_click"   // Window.CloseButtonClicked
	OpReset        Op = "reset"         // Hide every window, then Manager.Reset
)

// Ops lists every supported operation.
var Ops = []Op{OpShow, OpHide, OpPush, OpRemove, OpOffset, OpOverlayClick, OpCloseClick, OpReset}

// needsWindow reports whether the op targets a window.
func (o Op) needsWindow() bool {
	switch o {
	case OpOffset, OpReset:
		return false
	default:
		return true
	}
}

func (o Op) valid() bool {
	for _, op := range Ops {
		if o == op {
			return true
		}
	}
	return false
}

// Scenario is a replayable script.
type Scenario struct {
	Name           string   `yaml:"name" json:"name"`
	StartingOffset *int     `yaml:"starting_offset,omitempty" json:"starting_offset,omitempty"`
	Windows        []Window `yaml:"windows" json:"windows"`
	Steps          []Step   `yaml:"steps" json:"steps"`
}

// Window declares a modal window used by the steps.
type Window struct {
	Name                string `yaml:"name" json:"name"`
	Title               string `yaml:"title,omitempty" json:"title,omitempty"`
	CloseOnOverlayClick *bool  `yaml:"close_on_overlay_click,omitempty" json:"close_on_overlay_click,omitempty"`
	ShowCloseButton     bool   `yaml:"show_close_button,omitempty" json:"show_close_button,omitempty"`
	ModalClass          string `yaml:"modal_class,omitempty" json:"modal_class,omitempty"`
	OverlayClass        string `yaml:"overlay_class,omitempty" json:"overlay_class,omitempty"`
}

// Step is one operation.
type Step struct {
	Op     Op     `yaml:"op" json:"op"`
	Window string `yaml:"window,omitempty" json:"window,omitempty"`
	Value  int    `yaml:"value,omitempty" json:"value,omitempty"`
}

// Load parses a scenario from YAML or JSON.
func Load(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Step: -1, Message: "failed to read scenario", Err: err}
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &Error{Step: -1, Message: "failed to parse scenario", Err: err}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile parses a scenario file. A path of "-" reads standard input.
func LoadFile(path string) (*Scenario, error) {
	if path == "-" {
		return Load(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks window names and step references.
func (s *Scenario) Validate() error {
	names := make(map[string]bool, len(s.Windows))
	for i, w := range s.Windows {
		if strings.TrimSpace(w.Name) == "" {
			return &Error{Step: -1, Message: fmt.Sprintf("window %d has no name", i)}
		}
		if names[w.Name] {
			return &Error{Step: -1, Message: fmt.Sprintf("duplicate window %q", w.Name)}
		}
		names[w.Name] = true
	}

	for i, step := range s.Steps {
		if !step.Op.valid() {
			return &Error{Step: i, Op: step.Op, Message: "unknown operation"}
		}
		if step.Op.needsWindow() && !names[step.Window] {
			return &Error{Step: i, Op: step.Op, Message: fmt.Sprintf("unknown window %q", step.Window)}
		}
	}
	return nil
}
