package song

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
)

// Kind tags the payload carried by an Event.
type Kind int

const (
	KindNoteOn Kind = iota
	KindNoteOff
	KindController
	KindTempo
	KindTimeSignature
	KindKeySignature
	KindProgramChange
	KindPitchBend
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNoteOn:
		return "note on"
	case KindNoteOff:
		return "note off"
	case KindController:
		return "controller"
	case KindTempo:
		return "tempo"
	case KindTimeSignature:
		return "time signature"
	case KindKeySignature:
		return "key signature"
	case KindProgramChange:
		return "program change"
	case KindPitchBend:
		return "pitch bend"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Event is a single document entity. One struct carries every kind; which
// payload fields are meaningful depends on Kind. Notes are linked pairs: a
// KindNoteOn event and its KindNoteOff partner point at each other, and the
// tools keep the invariant Partner.Tick > Tick for the on side.
type Event struct {
	Tick    int
	Kind    Kind
	Channel uint8
	Track   int

	// Note payload
	Note     uint8
	Velocity uint8
	Partner  *Event

	// Controller / program change / pitch bend payload
	Controller uint8
	Value      int

	// Tempo payload
	BPM float64

	// Time signature payload
	Numerator   uint8
	Denominator uint8

	// Key signature payload
	Key      uint8 // root note
	KeyNum   uint8 // number of accidentals
	KeyMajor bool
	KeyFlat  bool

	// Text / marker payload
	Text string
}

// IsNote reports whether e is the on side of a note pair.
func (e *Event) IsNote() bool {
	return e.Kind == KindNoteOn && e.Partner != nil
}

// Off returns the off side of a note pair, nil for non-notes.
func (e *Event) Off() *Event {
	if e.Kind == KindNoteOn {
		return e.Partner
	}
	if e.Kind == KindNoteOff {
		return e
	}
	return nil
}

// On returns the on side of a note pair, nil for non-notes.
func (e *Event) On() *Event {
	if e.Kind == KindNoteOff {
		return e.Partner
	}
	if e.Kind == KindNoteOn {
		return e
	}
	return nil
}

// Duration returns the note length in ticks, 0 for non-notes.
func (e *Event) Duration() int {
	if on := e.On(); on != nil && on.Partner != nil {
		return on.Partner.Tick - on.Tick
	}
	return 0
}

// Snapshot captures the event's full state for undo. The partner link is part
// of the copied state; restoring never re-targets the snapshot.
func (e *Event) Snapshot() history.Snapshot {
	return &eventSnapshot{target: e, state: *e}
}

type eventSnapshot struct {
	target *Event
	state  Event
}

func (s *eventSnapshot) Restore() {
	*s.target = s.state
}

// NewNotePair creates a linked on/off pair. Lengths below one tick are
// clamped so the pair invariant holds from birth.
func NewNotePair(tick, length int, note, velocity, channel uint8, track int) (*Event, *Event) {
	if length < 1 {
		length = 1
	}
	on := &Event{
		Tick:     tick,
		Kind:     KindNoteOn,
		Channel:  channel,
		Track:    track,
		Note:     note,
		Velocity: velocity,
	}
	off := &Event{
		Tick:    tick + length,
		Kind:    KindNoteOff,
		Channel: channel,
		Track:   track,
		Note:    note,
	}
	on.Partner = off
	off.Partner = on
	return on, off
}
