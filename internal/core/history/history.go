// Package history provides grouped undo/redo via object snapshots.
//
// Callers bracket every user gesture that mutates document data in
// StartAction/EndAction. Inside the bracket, Capture must be called on a
// Snapshotable before its first mutation; the manager keeps at most one
// pre-mutation snapshot per object per action. EndAction takes a closing
// snapshot of every touched object so redo restores the post-action state
// instead of replaying the gesture.
package history

import (
	"sync"

	"github.com/Meowchestra/MidiEditor-sub001/internal/event"
	"github.com/Meowchestra/MidiEditor-sub001/internal/logger"
)

const DefaultMaxHistory = 256

// Snapshot is a captured copy of one object's state. Restore puts the state
// back onto the object the snapshot was taken from, so a snapshot can never
// be applied to the wrong target.
type Snapshot interface {
	Restore()
}

// Snapshotable is implemented by every domain object that participates in undo.
type Snapshotable interface {
	Snapshot() Snapshot
}

// Dispatcher is the slice of the event bus the manager needs.
type Dispatcher interface {
	Dispatch(t event.Type, data interface{})
}

// entry pairs one touched object with its pre- and post-action snapshots.
type entry struct {
	obj  Snapshotable
	pre  Snapshot
	post Snapshot
}

// action is an ordered group of mutations treated as one undo step.
type action struct {
	label   string
	entries []entry
	touched map[Snapshotable]struct{}
}

// Manager handles the undo/redo stack.
type Manager struct {
	mu           sync.Mutex
	actions      []*action
	currentIndex int // Index of the *next* action to potentially Redo
	open         *action
	maxHistory   int
	events       Dispatcher
}

// NewManager creates a history manager. events may be nil in tests.
func NewManager(events Dispatcher, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		actions:      make([]*action, 0, maxHistory),
		currentIndex: 0,
		maxHistory:   maxHistory,
		events:       events,
	}
}

// StartAction opens a new action group. If one is already open the call is a
// no-op and the nested open collapses into the outer action; callers are
// expected to pair calls correctly.
func (m *Manager) StartAction(label string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open != nil {
		logger.Warnf("History: StartAction(%q) while %q is open, collapsing", label, m.open.label)
		return
	}
	m.open = &action{
		label:   label,
		touched: make(map[Snapshotable]struct{}),
	}
}

// Capture records obj's state if this is its first mutation inside the open
// action. Calling it with no open action is a defensive no-op.
func (m *Manager) Capture(obj Snapshotable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open == nil {
		logger.Warnf("History: Capture outside an open action, ignoring")
		return
	}
	if _, seen := m.open.touched[obj]; seen {
		return
	}
	m.open.touched[obj] = struct{}{}
	m.open.entries = append(m.open.entries, entry{obj: obj, pre: obj.Snapshot()})
}

// EndAction closes the open action, appending it at the current index and
// discarding any redo history. Actions that touched nothing are dropped.
func (m *Manager) EndAction() {
	m.mu.Lock()

	if m.open == nil {
		m.mu.Unlock()
		logger.Warnf("History: EndAction without a matching StartAction")
		return
	}
	act := m.open
	m.open = nil

	if len(act.entries) == 0 {
		m.mu.Unlock()
		return
	}

	// Closing snapshots make redo symmetric with undo.
	for i := range act.entries {
		act.entries[i].post = act.entries[i].obj.Snapshot()
	}

	// If current index isn't at the end, truncate the redo history
	if m.currentIndex < len(m.actions) {
		m.actions = m.actions[:m.currentIndex]
	}

	m.actions = append(m.actions, act)

	// Limit history size (FIFO eviction of the oldest action)
	if len(m.actions) > m.maxHistory {
		m.actions = m.actions[len(m.actions)-m.maxHistory:]
	}

	m.currentIndex = len(m.actions)
	label := act.label
	m.mu.Unlock()

	logger.Debugf("History: Recorded action %q (%d objects). Index: %d", label, len(act.entries), m.currentIndex)
	m.notify(label, false)
}

// InAction reports whether an action is currently open.
func (m *Manager) InAction() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open != nil
}

// Undo reverts the most recent action. No-op at the beginning of history.
func (m *Manager) Undo() bool {
	m.mu.Lock()

	if m.currentIndex <= 0 {
		m.mu.Unlock()
		return false
	}
	m.currentIndex--
	act := m.actions[m.currentIndex]

	// Restore pre-action snapshots in reverse capture order.
	for i := len(act.entries) - 1; i >= 0; i-- {
		act.entries[i].pre.Restore()
	}
	label := act.label
	m.mu.Unlock()

	logger.Debugf("History: Undid %q", label)
	m.notify(label, true)
	return true
}

// Redo reapplies the most recently undone action by restoring its post-action
// snapshots. No-op at the end of history.
func (m *Manager) Redo() bool {
	m.mu.Lock()

	if m.currentIndex >= len(m.actions) {
		m.mu.Unlock()
		return false
	}
	act := m.actions[m.currentIndex]
	m.currentIndex++

	for i := range act.entries {
		act.entries[i].post.Restore()
	}
	label := act.label
	m.mu.Unlock()

	logger.Debugf("History: Redid %q", label)
	m.notify(label, true)
	return true
}

// StepsBack returns the number of available undo steps.
func (m *Manager) StepsBack() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentIndex
}

// StepsForward returns the number of available redo steps.
func (m *Manager) StepsForward() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.actions) - m.currentIndex
}

// Clear resets the history stack. Call this on song load.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = m.actions[:0]
	m.currentIndex = 0
	m.open = nil
	logger.Debugf("History: Cleared.")
}

// notify fires exactly one action-finished event. Handlers must not open a
// new action synchronously from within the notification.
func (m *Manager) notify(label string, undo bool) {
	if m.events != nil {
		m.events.Dispatch(event.TypeActionFinished, event.ActionFinishedData{Label: label, Undo: undo})
	}
}
