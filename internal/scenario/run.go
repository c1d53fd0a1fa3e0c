package scenario

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/modalstack/internal/modal"
	"github.com/jmylchreest/modalstack/internal/stack"
)

// Event is a recorded position change.
type Event struct {
	Window   string `json:"window" yaml:"window"`
	Position int    `json:"position" yaml:"position"`
	ZIndex   int    `json:"z_index" yaml:"z_index"`
}

// Entry describes one layer of the stack after a step.
type Entry struct {
	Window   string `json:"window" yaml:"window"`
	Position int    `json:"position" yaml:"position"`
	ZIndex   int    `json:"z_index" yaml:"z_index"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index    int     `json:"index" yaml:"index"`
	Op       Op      `json:"op" yaml:"op"`
	Window   string  `json:"window,omitempty" yaml:"window,omitempty"`
	Returned *int    `json:"returned,omitempty" yaml:"returned,omitempty"` // Position returned by show/push
	Hid      *bool   `json:"hid,omitempty" yaml:"hid,omitempty"`           // Whether a click hid the window
	Events   []Event `json:"events" yaml:"events"`
	Stack    []Entry `json:"stack" yaml:"stack"`
}

// Result is the full replay outcome.
type Result struct {
	Name           string       `json:"name,omitempty" yaml:"name,omitempty"`
	StartingOffset int          `json:"starting_offset" yaml:"starting_offset"`
	Steps          []StepResult `json:"steps" yaml:"steps"`
	Final          []Entry      `json:"final" yaml:"final"`
}

// EventCount returns the total number of recorded position changes.
func (r *Result) EventCount() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Events)
	}
	return n
}

// RunOptions configures a replay.
type RunOptions struct {
	// StartingOffset is used when the scenario does not set one.
	StartingOffset int
	Logger         *slog.Logger
}

// Run replays s against a fresh manager.
func Run(ctx context.Context, s *Scenario, opts RunOptions) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	offset := opts.StartingOffset
	if s.StartingOffset != nil {
		offset = *s.StartingOffset
	}

	mgr := stack.New(stack.WithStartingOffset(offset), stack.WithLogger(logger))

	windows := make(map[string]*modal.Window, len(s.Windows))
	for _, w := range s.Windows {
		closeOnOverlay := true
		if w.CloseOnOverlayClick != nil {
			closeOnOverlay = *w.CloseOnOverlayClick
		}
		windows[w.Name] = modal.New(mgr,
			modal.WithID(w.Name),
			modal.WithTitle(w.Title),
			modal.WithCloseOnOverlayClick(closeOnOverlay),
			modal.WithShowCloseButton(w.ShowCloseButton),
			modal.WithModalClass(w.ModalClass),
			modal.WithOverlayClass(w.OverlayClass),
		)
	}
	defer func() {
		for _, w := range windows {
			w.Close()
		}
	}()

	var current *StepResult
	sub := mgr.Subscribe(func(c stack.PositionChange) {
		if current == nil {
			return
		}
		current.Events = append(current.Events, Event{
			Window:   c.Layer.LayerID(),
			Position: c.Position,
			ZIndex:   mgr.ZIndex(c.Position),
		})
	})
	defer sub.Close()

	result := &Result{Name: s.Name, Steps: make([]StepResult, 0, len(s.Steps))}

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Step: i, Op: step.Op, Message: "replay cancelled", Err: err}
		}

		sr := StepResult{Index: i, Op: step.Op, Window: step.Window, Events: []Event{}}
		current = &sr
		w := windows[step.Window]

		switch step.Op {
		case OpShow:
			w.Show()
			pos, _ := w.Position()
			sr.Returned = &pos
		case OpHide:
			w.Hide()
		case OpPush:
			pos := mgr.Push(w)
			sr.Returned = &pos
		case OpRemove:
			mgr.RemoveModal(w)
		case OpOffset:
			mgr.SetStartingOffset(step.Value)
		case OpOverlayClick:
			hid := w.OverlayClicked()
			sr.Hid = &hid
		case OpCloseClick:
			hid := w.CloseButtonClicked()
			sr.Hid = &hid
		case OpReset:
			resetWindows(mgr, windows)
		}

		current = nil
		sr.Stack = snapshot(mgr)
		logger.Debug("scenario step", "index", i, "op", step.Op, "window", step.Window, "events", len(sr.Events))
		result.Steps = append(result.Steps, sr)
	}

	result.StartingOffset = mgr.StartingOffset()
	result.Final = snapshot(mgr)
	return result, nil
}

// resetWindows hides every stacked window from the top down, then any
// window still marked visible, so no window keeps a stale position. Nothing
// is emitted since no layer is ever left above a removed one.
func resetWindows(mgr *stack.Manager, windows map[string]*modal.Window) {
	layers := mgr.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		if w, ok := layers[i].(*modal.Window); ok {
			w.Hide()
		}
	}
	for _, w := range windows {
		if w.Visible() {
			w.Hide()
		}
	}
	mgr.Reset()
}

func snapshot(mgr *stack.Manager) []Entry {
	layers := mgr.Layers()
	entries := make([]Entry, len(layers))
	for i, l := range layers {
		entries[i] = Entry{Window: l.LayerID(), Position: i, ZIndex: mgr.ZIndex(i)}
	}
	return entries
}
