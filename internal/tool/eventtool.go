package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/matrix"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// eventTool extends base with the helpers shared by every event-manipulating
// tool: grid snapping, selection shortcuts and clipboard access.
type eventTool struct {
	base
}

func newEventTool(env *Env, name string) eventTool {
	return eventTool{base: newBase(env, name)}
}

// gridStep returns the magnet raster width in ticks.
func (t *eventTool) gridStep() int {
	div := t.env.Config.GridDivision
	if div <= 0 {
		div = 1
	}
	step := t.env.Song.TicksPerQuarter / div
	if step < 1 {
		step = 1
	}
	return step
}

// rasterTick rounds a tick to the nearest grid line when the magnet is
// enabled, else passes it through unchanged.
func (t *eventTool) rasterTick(tick int) int {
	if !t.env.Config.MagnetEnabled {
		return tick
	}
	step := t.gridStep()
	snapped := (tick + step/2) / step * step
	if snapped < 0 {
		snapped = 0
	}
	return snapped
}

// RasteredX maps a screen column to the nearest enabled grid line, returning
// both the snapped column and the tick it represents.
func (t *eventTool) RasteredX(x int) (int, int) {
	tick := t.rasterTick(t.env.Matrix.XToTick(x))
	return t.env.Matrix.TickToX(tick), tick
}

// hit runs the renderer's hit test at a screen point.
func (t *eventTool) hit(x, y int) matrix.Hit {
	return t.env.Matrix.HitTest(x, y)
}

// selectAt selects the event under a point. Returns the hit event, nil for
// empty space.
func (t *eventTool) selectAt(x, y int, exclusive bool) *song.Event {
	h := t.hit(x, y)
	if h.Event == nil {
		return nil
	}
	t.env.Selection.Add(h.Event, exclusive)
	return h.Event
}

// selectedNotes returns the on side of every selected note, deduplicated:
// when both halves of a pair are selected only the on side is reported.
func (t *eventTool) selectedNotes() []*song.Event {
	var out []*song.Event
	seen := make(map[*song.Event]struct{})
	for _, ev := range t.env.Selection.Events() {
		on := ev.On()
		if on == nil || on.Partner == nil {
			continue
		}
		if _, ok := seen[on]; ok {
			continue
		}
		seen[on] = struct{}{}
		out = append(out, on)
	}
	return out
}

// captureWithTrack records pre-mutation snapshots for an event and the track
// containing it, so both field changes and later resorting round-trip.
func (t *eventTool) captureWithTrack(ev *song.Event) {
	t.env.History.Capture(ev)
	if trk := t.env.Song.TrackOf(ev); trk != nil {
		t.env.History.Capture(trk)
	}
}

// resortTracks restores tick order after in-place tick mutations.
func (t *eventTool) resortTracks() {
	for _, trk := range t.env.Song.Tracks() {
		trk.Resort()
	}
}

// CopySelection serializes the selected events to the clipboard.
func (t *eventTool) CopySelection() error {
	if t.env.Clipboard == nil {
		return nil
	}
	return t.env.Clipboard.Copy()
}

// PasteClipboard clones the clipboard events back into the song, wrapped in
// its own action by the clipboard manager.
func (t *eventTool) PasteClipboard() error {
	if t.env.Clipboard == nil {
		return nil
	}
	return t.env.Clipboard.Paste(0, -1, -1)
}
