package stack

import (
	"log/slog"
	"sync"
)

// Starting offsets added to a layer's position to produce its z-index.
const (
	DefaultStartingOffset = 100
	LegacyStartingOffset  = 1000
)

// Layer is anything that can be placed on the stack.
// Identity is interface equality, so implementations should be pointer types.
// LayerID is only used for logging and output.
type Layer interface {
	LayerID() string
}

// PositionChange reports the recomputed position of a layer that was
// already on the stack.
type PositionChange struct {
	Layer    Layer
	Position int
}

// Listener receives position changes synchronously.
type Listener func(PositionChange)

// Manager maintains the ordered set of active layers.
type Manager struct {
	mu             sync.Mutex
	logger         *slog.Logger
	active         []Layer
	startingOffset int

	listeners []subscriber
	nextSubID uint64
}

type subscriber struct {
	id uint64
	fn Listener
}

// Option configures a Manager.
type Option func(*Manager)

// WithStartingOffset sets the initial starting offset.
func WithStartingOffset(offset int) Option {
	return func(m *Manager) {
		m.startingOffset = offset
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		logger:         slog.Default(),
		active:         make([]Layer, 0),
		startingOffset: DefaultStartingOffset,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Push places l on top of the stack and returns its position.
// A layer already on top keeps its position and nothing is emitted.
// A layer further down is removed (notifying everything above it)
// and appended again.
func (m *Manager) Push(l Layer) int {
	m.mu.Lock()
	idx := m.indexOf(l)

	if idx == -1 {
		m.active = append(m.active, l)
		pos := len(m.active) - 1
		m.mu.Unlock()
		m.logger.Debug("layer pushed", "layer", l.LayerID(), "position", pos)
		return pos
	}

	if idx == len(m.active)-1 {
		m.mu.Unlock()
		return idx
	}

	changes := m.remove(idx)
	m.active = append(m.active, l)
	pos := len(m.active) - 1
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	m.logger.Debug("layer promoted", "layer", l.LayerID(), "from", idx, "position", pos)
	deliver(listeners, changes)
	return pos
}

// RemoveModal removes l from the stack. Removing a layer that is not on
// the stack does nothing. Every layer that was above l is notified of its
// new position in ascending order.
func (m *Manager) RemoveModal(l Layer) {
	m.mu.Lock()
	idx := m.indexOf(l)
	if idx == -1 {
		m.mu.Unlock()
		return
	}

	changes := m.remove(idx)
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	m.logger.Debug("layer removed", "layer", l.LayerID(), "position", idx, "shifted", len(changes))
	deliver(listeners, changes)
}

// Reset removes every layer from the top down. Nothing is emitted since no
// layer is ever left above a removed one.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.active)
	m.active = m.active[:0]
}

// StartingOffset returns the base added to positions.
func (m *Manager) StartingOffset() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startingOffset
}

// SetStartingOffset changes the base added to positions. Layers are not
// renumbered or notified.
func (m *Manager) SetStartingOffset(offset int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startingOffset = offset
}

// ZIndex returns the z-index for a position under the current offset.
func (m *Manager) ZIndex(position int) int {
	return m.StartingOffset() + position
}

// Len returns the number of active layers.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Layers returns a copy of the active layers, bottom first.
func (m *Manager) Layers() []Layer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Layer, len(m.active))
	copy(out, m.active)
	return out
}

// Position returns the position of l, if it is on the stack.
func (m *Manager) Position(l Layer) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(l)
	return idx, idx != -1
}

// Contains reports whether l is on the stack.
func (m *Manager) Contains(l Layer) bool {
	_, ok := m.Position(l)
	return ok
}

// Top returns the top-most layer.
func (m *Manager) Top() (Layer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.active) == 0 {
		return nil, false
	}
	return m.active[len(m.active)-1], true
}

// indexOf must be called with mu held.
func (m *Manager) indexOf(l Layer) int {
	for i, a := range m.active {
		if a == l {
			return i
		}
	}
	return -1
}

// remove deletes the layer at idx and returns the position changes for
// everything that shifted down. Must be called with mu held.
func (m *Manager) remove(idx int) []PositionChange {
	copy(m.active[idx:], m.active[idx+1:])
	m.active[len(m.active)-1] = nil
	m.active = m.active[:len(m.active)-1]

	changes := make([]PositionChange, 0, len(m.active)-idx)
	for i := idx; i < len(m.active); i++ {
		changes = append(changes, PositionChange{Layer: m.active[i], Position: i})
	}
	return changes
}

func deliver(listeners []Listener, changes []PositionChange) {
	for _, change := range changes {
		for _, fn := range listeners {
			fn(change)
		}
	}
}
