package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/matrix"
)

// SizeEdge names which side of the selected notes a resize drag grabs.
type SizeEdge int

const (
	EdgeStart SizeEdge = iota // dragging the on-event side
	EdgeEnd                   // dragging the off-event side
)

// SizeChangeTool drags one edge of the selected notes. Only the dragged-side
// endpoint mutates, and the new boundary is clamped so a note never shrinks
// below one tick.
type SizeChangeTool struct {
	eventTool
	edge SizeEdge

	lastTick int
	opened   bool
}

// NewSizeChangeTool creates a resize tool.
func NewSizeChangeTool(env *Env) *SizeChangeTool {
	return &SizeChangeTool{eventTool: newEventTool(env, "size change")}
}

// SetEdge chooses which side the coming gesture resizes. StandardTool calls
// this from its hit test before forwarding the press.
func (t *SizeChangeTool) SetEdge(e SizeEdge) {
	t.edge = e
}

func (t *SizeChangeTool) Press(primary bool, x, y int) bool {
	// A direct press (tool bound standalone) derives the edge from the hit.
	if h := t.hit(x, y); h.Event != nil {
		if !t.env.Selection.Contains(h.Event) {
			t.env.Selection.Add(h.Event, true)
		}
		switch h.Zone {
		case matrix.ZoneLeftEdge:
			t.edge = EdgeStart
		case matrix.ZoneRightEdge:
			t.edge = EdgeEnd
		}
	}
	if len(t.selectedNotes()) == 0 {
		return false
	}
	t.begin(x, y)
	_, t.lastTick = t.RasteredX(x)
	t.env.History.StartAction("change event size")
	t.opened = true
	return true
}

func (t *SizeChangeTool) Move(x, y int) bool {
	if !t.pressed {
		return false
	}
	t.lastX, t.lastY = x, y

	_, tick := t.RasteredX(x)
	d := tick - t.lastTick
	t.lastTick = tick
	if d == 0 {
		return false
	}

	changed := false
	for _, on := range t.selectedNotes() {
		off := on.Partner
		switch t.edge {
		case EdgeStart:
			newTick := on.Tick + d
			if newTick < 0 {
				newTick = 0
			}
			// minimum duration of one tick
			if newTick > off.Tick-1 {
				newTick = off.Tick - 1
			}
			if newTick != on.Tick {
				t.captureWithTrack(on)
				on.Tick = newTick
				changed = true
			}
		case EdgeEnd:
			newTick := off.Tick + d
			if newTick < on.Tick+1 {
				newTick = on.Tick + 1
			}
			if newTick != off.Tick {
				t.captureWithTrack(off)
				off.Tick = newTick
				changed = true
			}
		}
	}
	if changed {
		t.env.Song.SetModified(true)
	}
	return changed
}

func (t *SizeChangeTool) Release() bool {
	if !t.pressed {
		return false
	}
	t.reset()
	t.resortTracks()
	if t.opened {
		t.opened = false
		t.env.History.EndAction()
	}
	return true
}

func (t *SizeChangeTool) ReleaseOnly() bool {
	return t.Release()
}
