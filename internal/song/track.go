package song

import (
	"sort"

	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
)

// Track holds an ordered event list. Structural changes (insert/remove) are
// what a track snapshot protects; field changes on individual events are the
// events' own snapshots.
type Track struct {
	Name    string
	Channel uint8 // default channel for new events on this track
	events  []*Event
}

// NewTrack creates an empty named track.
func NewTrack(name string, channel uint8) *Track {
	return &Track{Name: name, Channel: channel}
}

// Events returns the track's events. The returned slice is the live backing
// array; callers that mutate structure must go through Insert/Remove.
func (t *Track) Events() []*Event {
	return t.events
}

// Len returns the number of events on the track.
func (t *Track) Len() int {
	return len(t.events)
}

// Insert adds ev keeping tick order. Equal ticks keep insertion order.
func (t *Track) Insert(ev *Event) {
	i := sort.Search(len(t.events), func(i int) bool {
		return t.events[i].Tick > ev.Tick
	})
	t.events = append(t.events, nil)
	copy(t.events[i+1:], t.events[i:])
	t.events[i] = ev
}

// Remove deletes ev from the track. Returns false if ev is not on it.
func (t *Track) Remove(ev *Event) bool {
	for i, e := range t.events {
		if e == ev {
			t.events = append(t.events[:i], t.events[i+1:]...)
			return true
		}
	}
	return false
}

// Resort restores tick order after events were moved in place.
func (t *Track) Resort() {
	sort.SliceStable(t.events, func(i, j int) bool {
		return t.events[i].Tick < t.events[j].Tick
	})
}

// Snapshot captures the track header and event membership.
func (t *Track) Snapshot() history.Snapshot {
	state := make([]*Event, len(t.events))
	copy(state, t.events)
	return &trackSnapshot{target: t, name: t.Name, channel: t.Channel, events: state}
}

type trackSnapshot struct {
	target  *Track
	name    string
	channel uint8
	events  []*Event
}

func (s *trackSnapshot) Restore() {
	s.target.Name = s.name
	s.target.Channel = s.channel
	s.target.events = make([]*Event, len(s.events))
	copy(s.target.events, s.events)
}
