// Package song models the musical document: tracks of tick-ordered events
// with linked note pairs, a tempo map, and snapshot support for undo.
package song

import (
	"math"
	"sort"

	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
)

const DefaultBPM = 120.0

// Song is one open document.
type Song struct {
	TicksPerQuarter int
	FilePath        string
	tracks          []*Track
	modified        bool
	onModified      func(modified bool)
}

// New creates an empty song with one meta track (track 0, carrying tempo and
// time-signature events, per SMF format 1 convention) and one note track.
func New(ticksPerQuarter int) *Song {
	s := &Song{TicksPerQuarter: ticksPerQuarter}
	s.AddTrack("meta", 0)
	s.AddTrack("track 1", 0)
	return s
}

// Tracks returns the song's track list.
func (s *Song) Tracks() []*Track {
	return s.tracks
}

// Track returns the i-th track, nil when out of range.
func (s *Song) Track(i int) *Track {
	if i < 0 || i >= len(s.tracks) {
		return nil
	}
	return s.tracks[i]
}

// MetaTrack returns track 0, where tempo and time-signature events live.
func (s *Song) MetaTrack() *Track {
	return s.Track(0)
}

// AddTrack appends a new empty track and returns it.
func (s *Song) AddTrack(name string, channel uint8) *Track {
	t := NewTrack(name, channel)
	s.tracks = append(s.tracks, t)
	return t
}

// Modified reports whether the song changed since the last save.
func (s *Song) Modified() bool { return s.modified }

// SetModified marks or clears the unsaved-changes flag, notifying the
// observer when the value flips.
func (s *Song) SetModified(v bool) {
	if s.modified == v {
		return
	}
	s.modified = v
	if s.onModified != nil {
		s.onModified(v)
	}
}

// SetOnModified registers the session callback fired when the modified flag
// changes.
func (s *Song) SetOnModified(fn func(modified bool)) {
	s.onModified = fn
}

// AllEvents returns every event of every track sorted by tick.
func (s *Song) AllEvents() []*Event {
	var out []*Event
	for _, t := range s.tracks {
		out = append(out, t.events...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out
}

// EventsBetween returns events with from <= tick < to, sorted by tick.
func (s *Song) EventsBetween(from, to int) []*Event {
	var out []*Event
	for _, t := range s.tracks {
		for _, e := range t.events {
			if e.Tick >= from && e.Tick < to {
				out = append(out, e)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out
}

// Notes returns the on side of every note pair, sorted by tick.
func (s *Song) Notes() []*Event {
	var out []*Event
	for _, t := range s.tracks {
		for _, e := range t.events {
			if e.IsNote() {
				out = append(out, e)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out
}

// TrackOf returns the track currently containing ev, nil if detached.
func (s *Song) TrackOf(ev *Event) *Track {
	if t := s.Track(ev.Track); t != nil {
		for _, e := range t.events {
			if e == ev {
				return t
			}
		}
	}
	for _, t := range s.tracks {
		for _, e := range t.events {
			if e == ev {
				return t
			}
		}
	}
	return nil
}

// BPMAt returns the tempo in effect at the given tick, walking the tempo
// events on the meta track. Defaults to 120 when none precede the tick.
func (s *Song) BPMAt(tick int) float64 {
	bpm := DefaultBPM
	meta := s.MetaTrack()
	if meta == nil {
		return bpm
	}
	for _, e := range meta.events {
		if e.Kind != KindTempo {
			continue
		}
		if e.Tick > tick {
			break
		}
		bpm = e.BPM
	}
	return bpm
}

// MsToTicks converts a millisecond span at the given position into ticks.
func (s *Song) MsToTicks(ms float64, atTick int) int {
	bpm := s.BPMAt(atTick)
	ticks := ms * float64(s.TicksPerQuarter) * bpm / 60000.0
	return int(math.Round(ticks))
}

// TicksToMs converts a tick span at the given position into milliseconds.
func (s *Song) TicksToMs(ticks int, atTick int) float64 {
	bpm := s.BPMAt(atTick)
	if bpm == 0 {
		bpm = DefaultBPM
	}
	return float64(ticks) * 60000.0 / (float64(s.TicksPerQuarter) * bpm)
}

// MeasureLength returns the measure length in ticks for the time signature
// in effect at the given tick (4/4 when none is set).
func (s *Song) MeasureLength(tick int) int {
	num, den := uint8(4), uint8(4)
	if meta := s.MetaTrack(); meta != nil {
		for _, e := range meta.events {
			if e.Kind != KindTimeSignature {
				continue
			}
			if e.Tick > tick {
				break
			}
			num, den = e.Numerator, e.Denominator
		}
	}
	if den == 0 {
		den = 4
	}
	return s.TicksPerQuarter * 4 * int(num) / int(den)
}

// MeasureBounds returns the [start, end) tick range of the measure containing
// the given tick.
func (s *Song) MeasureBounds(tick int) (int, int) {
	length := s.MeasureLength(tick)
	if length <= 0 {
		length = s.TicksPerQuarter * 4
	}
	start := tick / length * length
	return start, start + length
}

// LastTick returns the tick of the latest event, 0 for an empty song.
func (s *Song) LastTick() int {
	last := 0
	for _, t := range s.tracks {
		for _, e := range t.events {
			if e.Tick > last {
				last = e.Tick
			}
		}
	}
	return last
}

var _ history.Snapshotable = (*Track)(nil)
var _ history.Snapshotable = (*Event)(nil)
