package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// ScissorsTool splits notes at a tick. A press converts its column to a
// (snapped) tick and applies the split as one action.
type ScissorsTool struct {
	eventTool
}

// NewScissorsTool creates a scissors tool.
func NewScissorsTool(env *Env) *ScissorsTool {
	return &ScissorsTool{eventTool: newEventTool(env, "scissors")}
}

func (t *ScissorsTool) Press(primary bool, x, y int) bool {
	_, tick := t.RasteredX(x)
	return t.SplitAt(tick) > 0
}

// SplitAt replaces every note whose [start, end) interval strictly contains
// the split tick with two notes [start, split) and [split, end), preserving
// pitch, velocity, channel and track. Returns the number of notes split; a
// split point outside every note does nothing.
func (t *ScissorsTool) SplitAt(tick int) int {
	t.env.History.StartAction("split notes")
	count := 0

	for _, on := range t.env.Song.Notes() {
		off := on.Partner
		if !(on.Tick < tick && tick < off.Tick) {
			continue
		}
		trk := t.env.Song.TrackOf(on)
		if trk == nil {
			continue
		}
		t.env.History.Capture(trk)
		t.env.History.Capture(off)

		end := off.Tick
		off.Tick = tick

		tail, tailOff := song.NewNotePair(tick, end-tick, on.Note, on.Velocity, on.Channel, on.Track)
		trk.Insert(tail)
		trk.Insert(tailOff)
		count++
	}

	if count > 0 {
		t.resortTracks()
		t.env.Song.SetModified(true)
	}
	t.env.History.EndAction()
	return count
}
