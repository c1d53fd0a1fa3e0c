// Package modal provides modal windows that layer themselves through a
// shared stack.Manager.
package modal

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/modalstack/internal/stack"
)

// Window is a modal dialog handle. It registers with the stack manager when
// shown, deregisters when hidden, and keeps its position current by
// listening for position changes addressed to it.
type Window struct {
	mgr *stack.Manager
	sub *stack.Subscription

	id    string
	title string
	body  string

	// Behaviour
	closeOnOverlayClick bool
	showCloseButton     bool

	// Style class passthrough (opaque, never validated)
	modalClass   string
	overlayClass string

	onHide func(*Window)

	mu       sync.RWMutex
	visible  bool
	position int
	placed   bool
}

// Option configures a Window.
type Option func(*Window)

// WithID overrides the generated ULID.
func WithID(id string) Option {
	return func(w *Window) {
		if id != "" {
			w.id = id
		}
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(w *Window) { w.title = title }
}

// WithBody sets the window body text.
func WithBody(body string) Option {
	return func(w *Window) { w.body = body }
}

// WithCloseOnOverlayClick controls whether a click outside the window hides it.
func WithCloseOnOverlayClick(close bool) Option {
	return func(w *Window) { w.closeOnOverlayClick = close }
}

// WithShowCloseButton controls whether the window renders a close affordance.
func WithShowCloseButton(show bool) Option {
	return func(w *Window) { w.showCloseButton = show }
}

// WithModalClass sets the style classes applied to the window box.
func WithModalClass(class string) Option {
	return func(w *Window) { w.modalClass = class }
}

// WithOverlayClass sets the style classes applied to the overlay behind the window.
func WithOverlayClass(class string) Option {
	return func(w *Window) { w.overlayClass = class }
}

// WithOnHide registers a callback run after the window hides.
func WithOnHide(fn func(*Window)) Option {
	return func(w *Window) { w.onHide = fn }
}

// New creates a hidden window bound to mgr and subscribes it to position
// changes. Call Close when the window is no longer needed.
func New(mgr *stack.Manager, opts ...Option) *Window {
	w := &Window{
		mgr:                 mgr,
		closeOnOverlayClick: true,
		showCloseButton:     false,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.id == "" {
		w.id = newID()
	}

	w.sub = mgr.Subscribe(w.onPositionChanged)
	return w
}

func newID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}

// LayerID implements stack.Layer.
func (w *Window) LayerID() string {
	return w.id
}

// ID returns the window identifier.
func (w *Window) ID() string {
	return w.id
}

// Title returns the window title.
func (w *Window) Title() string {
	return w.title
}

// Body returns the window body.
func (w *Window) Body() string {
	return w.body
}

// ModalClass returns the window style classes.
func (w *Window) ModalClass() string {
	return w.modalClass
}

// OverlayClass returns the overlay style classes.
func (w *Window) OverlayClass() string {
	return w.overlayClass
}

// CloseOnOverlayClick reports whether outside clicks hide the window.
func (w *Window) CloseOnOverlayClick() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.closeOnOverlayClick
}

// SetCloseOnOverlayClick changes the outside click policy.
func (w *Window) SetCloseOnOverlayClick(close bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeOnOverlayClick = close
}

// ShowCloseButton reports whether the close affordance is rendered.
func (w *Window) ShowCloseButton() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.showCloseButton
}

// SetShowCloseButton toggles the close affordance.
func (w *Window) SetShowCloseButton(show bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.showCloseButton = show
}

// Show pushes the window onto the stack and makes it visible. Showing a
// visible window that is not on top raises it.
func (w *Window) Show() {
	pos := w.mgr.Push(w)

	w.mu.Lock()
	w.position = pos
	w.placed = true
	w.visible = true
	w.mu.Unlock()
}

// Hide removes the window from the stack and clears its position. The
// hide callback only runs when the window was visible.
func (w *Window) Hide() {
	w.mgr.RemoveModal(w)

	w.mu.Lock()
	wasVisible := w.visible
	w.visible = false
	w.placed = false
	w.position = 0
	w.mu.Unlock()

	if wasVisible && w.onHide != nil {
		w.onHide(w)
	}
}

// Toggle shows a hidden window or hides a visible one.
func (w *Window) Toggle() {
	if w.Visible() {
		w.Hide()
		return
	}
	w.Show()
}

// OverlayClicked handles a click outside the window. It hides the window
// when outside clicks are allowed to close it, and reports whether it did.
func (w *Window) OverlayClicked() bool {
	if !w.CloseOnOverlayClick() {
		return false
	}
	w.Hide()
	return true
}

// CloseButtonClicked handles activation of the close affordance.
func (w *Window) CloseButtonClicked() bool {
	if !w.ShowCloseButton() {
		return false
	}
	w.Hide()
	return true
}

// Visible reports whether the window is shown.
func (w *Window) Visible() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.visible
}

// Position returns the window's position on the stack, if any.
func (w *Window) Position() (int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.position, w.placed
}

// ZIndex returns the starting offset plus the window's position. The
// offset is read at call time.
func (w *Window) ZIndex() (int, bool) {
	pos, ok := w.Position()
	if !ok {
		return 0, false
	}
	return w.mgr.StartingOffset() + pos, true
}

// Close releases the position-change subscription. The stack is untouched.
func (w *Window) Close() {
	w.mu.Lock()
	sub := w.sub
	w.sub = nil
	w.mu.Unlock()

	sub.Close()
}

func (w *Window) onPositionChanged(change stack.PositionChange) {
	// Only react to changes addressed to this window.
	if change.Layer != stack.Layer(w) {
		return
	}

	w.mu.Lock()
	w.position = change.Position
	w.placed = true
	w.mu.Unlock()
}
