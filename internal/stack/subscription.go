package stack

// Subscription is a handle to a registered listener.
type Subscription struct {
	id  uint64
	mgr *Manager
}

// Close unregisters the listener. Closing twice is harmless.
func (s *Subscription) Close() {
	if s == nil || s.mgr == nil {
		return
	}
	s.mgr.Unsubscribe(s)
}

// Subscribe registers fn to receive every position change. Listeners are
// called in subscription order, before Push or RemoveModal returns.
func (m *Manager) Subscribe(fn Listener) *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSubID++
	m.listeners = append(m.listeners, subscriber{id: m.nextSubID, fn: fn})
	return &Subscription{id: m.nextSubID, mgr: m}
}

// Unsubscribe removes a subscription. Unknown subscriptions are ignored.
func (m *Manager) Unsubscribe(sub *Subscription) {
	if sub == nil || sub.mgr != m {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.listeners {
		if l.id == sub.id {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (m *Manager) ListenerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// snapshotListeners must be called with mu held.
func (m *Manager) snapshotListeners() []Listener {
	out := make([]Listener, len(m.listeners))
	for i, l := range m.listeners {
		out[i] = l.fn
	}
	return out
}
