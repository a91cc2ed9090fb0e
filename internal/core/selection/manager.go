// Package selection owns the shared set of selected events. One manager
// exists per open document; every tool reads and writes the same instance.
// Selection changes are deliberately not captured by the history engine:
// selection is ephemeral UI state and undo restores document data only.
package selection

import (
	"sync"

	"github.com/Meowchestra/MidiEditor-sub001/internal/event"
	"github.com/Meowchestra/MidiEditor-sub001/internal/logger"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// Dispatcher is the slice of the event bus the manager needs.
type Dispatcher interface {
	Dispatch(t event.Type, data interface{})
}

// Manager handles the selected-event set. Membership is unique; insertion
// order is preserved so the navigator has a stable "first selected" origin.
type Manager struct {
	mu      sync.RWMutex
	ordered []*song.Event
	members map[*song.Event]struct{}
	events  Dispatcher
}

// NewManager creates a selection manager. events may be nil in tests.
func NewManager(events Dispatcher) *Manager {
	return &Manager{
		members: make(map[*song.Event]struct{}),
		events:  events,
	}
}

// Events returns the selected events in insertion order.
func (m *Manager) Events() []*song.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*song.Event, len(m.ordered))
	copy(out, m.ordered)
	return out
}

// First returns the earliest-selected event, nil when empty.
func (m *Manager) First() *song.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.ordered) == 0 {
		return nil
	}
	return m.ordered[0]
}

// Len returns the selection size.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ordered)
}

// Contains reports whether ev is selected.
func (m *Manager) Contains(ev *song.Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.members[ev]
	return ok
}

// Add selects ev. With exclusive set, the previous selection is cleared first.
func (m *Manager) Add(ev *song.Event, exclusive bool) {
	if ev == nil {
		return
	}
	m.mu.Lock()
	if exclusive {
		m.ordered = m.ordered[:0]
		m.members = make(map[*song.Event]struct{})
	}
	if _, ok := m.members[ev]; !ok {
		m.members[ev] = struct{}{}
		m.ordered = append(m.ordered, ev)
	}
	count := len(m.ordered)
	m.mu.Unlock()
	m.changed(count)
}

// Set replaces the selection with the given events (duplicates dropped).
func (m *Manager) Set(events []*song.Event) {
	m.mu.Lock()
	m.ordered = m.ordered[:0]
	m.members = make(map[*song.Event]struct{})
	for _, ev := range events {
		if ev == nil {
			continue
		}
		if _, ok := m.members[ev]; ok {
			continue
		}
		m.members[ev] = struct{}{}
		m.ordered = append(m.ordered, ev)
	}
	count := len(m.ordered)
	m.mu.Unlock()
	m.changed(count)
}

// Remove deselects ev if present.
func (m *Manager) Remove(ev *song.Event) {
	m.mu.Lock()
	if _, ok := m.members[ev]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.members, ev)
	for i, e := range m.ordered {
		if e == ev {
			m.ordered = append(m.ordered[:i], m.ordered[i+1:]...)
			break
		}
	}
	count := len(m.ordered)
	m.mu.Unlock()
	m.changed(count)
}

// Clear empties the selection. Called on every document replacement.
func (m *Manager) Clear() {
	m.mu.Lock()
	wasEmpty := len(m.ordered) == 0
	m.ordered = m.ordered[:0]
	m.members = make(map[*song.Event]struct{})
	m.mu.Unlock()
	if !wasEmpty {
		logger.Debugf("Selection Manager: Cleared")
		m.changed(0)
	}
}

func (m *Manager) changed(count int) {
	if m.events != nil {
		m.events.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Count: count})
	}
}
