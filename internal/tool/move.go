package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// EventMoveTool drags the selected events through time and/or pitch. Every
// Move call is a micro-mutation inside the same open action: the preview the
// user sees is the live document state, and the history engine's
// first-touch rule keeps undo anchored at the pre-gesture state.
type EventMoveTool struct {
	eventTool
	moveTime bool
	moveLine bool

	lastTick int
	lastLine int
	opened   bool
}

// NewEventMoveTool creates a move tool for the given axes.
func NewEventMoveTool(env *Env, moveTime, moveLine bool) *EventMoveTool {
	name := "move"
	switch {
	case moveTime && !moveLine:
		name = "move (time)"
	case !moveTime && moveLine:
		name = "move (pitch)"
	}
	return &EventMoveTool{eventTool: newEventTool(env, name), moveTime: moveTime, moveLine: moveLine}
}

func (t *EventMoveTool) Press(primary bool, x, y int) bool {
	if t.env.Selection.Len() == 0 {
		// nothing to drag; let the press fall through
		return false
	}
	t.begin(x, y)
	_, t.lastTick = t.RasteredX(x)
	t.lastLine = t.env.Matrix.YToLine(y)
	t.env.History.StartAction("move events")
	t.opened = true
	return true
}

func (t *EventMoveTool) Move(x, y int) bool {
	if !t.pressed {
		return false
	}
	t.lastX, t.lastY = x, y

	_, tick := t.RasteredX(x)
	line := t.env.Matrix.YToLine(y)

	dTick := 0
	if t.moveTime {
		dTick = tick - t.lastTick
	}
	dLine := 0
	if t.moveLine {
		dLine = line - t.lastLine
	}
	t.lastTick, t.lastLine = tick, line
	if dTick == 0 && dLine == 0 {
		return false
	}

	moved := false
	for _, ev := range t.env.Selection.Events() {
		if ev.Kind == song.KindNoteOff && ev.Partner != nil && t.env.Selection.Contains(ev.Partner) {
			continue // the on side drags the pair
		}
		if t.moveEvent(ev, dTick, dLine) {
			moved = true
		}
	}
	if moved {
		t.env.Song.SetModified(true)
	}
	return moved
}

// moveEvent applies the delta to one event, keeping note pairs together so
// duration is preserved exactly.
func (t *EventMoveTool) moveEvent(ev *song.Event, dTick, dLine int) bool {
	on := ev.On()
	if on != nil && on.Partner != nil {
		off := on.Partner
		// clamp so the note start cannot go negative
		if on.Tick+dTick < 0 {
			dTick = -on.Tick
		}
		newNote := int(on.Note) + dLine
		if newNote < 0 {
			dLine -= newNote
			newNote = 0
		}
		if newNote > 127 {
			dLine -= newNote - 127
			newNote = 127
		}
		if dTick == 0 && dLine == 0 {
			return false
		}
		t.captureWithTrack(on)
		t.captureWithTrack(off)
		on.Tick += dTick
		off.Tick += dTick
		on.Note = uint8(int(on.Note) + dLine)
		off.Note = on.Note
		return true
	}

	// non-note events only move in time
	if dTick == 0 {
		return false
	}
	newTick := ev.Tick + dTick
	if newTick < 0 {
		newTick = 0
	}
	if newTick == ev.Tick {
		return false
	}
	t.captureWithTrack(ev)
	ev.Tick = newTick
	return true
}

func (t *EventMoveTool) Release() bool {
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

func (t *EventMoveTool) ReleaseOnly() bool {
	return t.Release()
}
