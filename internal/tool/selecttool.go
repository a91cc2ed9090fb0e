package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// SelectMode is the sub-mode a SelectTool operates in. It is chosen at
// tool-activation time, not per gesture.
type SelectMode int

const (
	SelectSingle SelectMode = iota // single-click exclusive select
	SelectBox                      // drag a rectangle, commit on release
	SelectLeft                     // everything at or before the clicked time on the line
	SelectRight                    // everything at or after
)

func (m SelectMode) String() string {
	switch m {
	case SelectSingle:
		return "single"
	case SelectBox:
		return "box"
	case SelectLeft:
		return "left sweep"
	case SelectRight:
		return "right sweep"
	}
	return "unknown"
}

// SelectTool mutates only the selection, never document data, so its gestures
// open no history action. Its sub-mode is undoable tool configuration.
type SelectTool struct {
	eventTool
	mode SelectMode

	// box drag transients
	curX, curY int
}

// NewSelectTool creates a select tool in single mode.
func NewSelectTool(env *Env) *SelectTool {
	return &SelectTool{eventTool: newEventTool(env, "select")}
}

// Mode returns the active sub-mode.
func (t *SelectTool) Mode() SelectMode { return t.mode }

// SetMode switches the sub-mode. Callers that want the switch undoable wrap
// it in an action and Capture the tool first.
func (t *SelectTool) SetMode(m SelectMode) {
	t.mode = m
}

func (t *SelectTool) Press(primary bool, x, y int) bool {
	t.begin(x, y)
	switch t.mode {
	case SelectSingle:
		t.pressed = false
		return t.clickSelect(x, y)
	case SelectBox:
		t.curX, t.curY = x, y
		return true
	case SelectLeft, SelectRight:
		t.pressed = false
		return t.sweepSelect(x, y)
	}
	return false
}

func (t *SelectTool) Move(x, y int) bool {
	if !t.pressed || t.mode != SelectBox {
		return false
	}
	t.curX, t.curY = x, y
	t.lastX, t.lastY = x, y
	return true
}

func (t *SelectTool) Release() bool {
	if !t.pressed {
		return false
	}
	t.reset()
	if t.mode != SelectBox {
		return false
	}
	// A zero-area box degenerates to a single click.
	if t.curX == t.anchorX && t.curY == t.anchorY {
		return t.clickSelect(t.anchorX, t.anchorY)
	}
	t.commitBox()
	return true
}

func (t *SelectTool) ReleaseOnly() bool {
	// An aborted box select never commits membership.
	if !t.pressed {
		return false
	}
	t.reset()
	return true
}

func (t *SelectTool) Draw(p Painter) {
	if !t.pressed || t.mode != SelectBox {
		return
	}
	x1, y1, x2, y2 := normalizeRect(t.anchorX, t.anchorY, t.curX, t.curY)
	p.Frame(x1, y1, x2, y2)
}

// clickSelect selects the event under the point exclusively, or clears the
// selection on empty space.
func (t *SelectTool) clickSelect(x, y int) bool {
	if ev := t.selectAt(x, y, true); ev != nil {
		return true
	}
	t.env.Selection.Clear()
	return true
}

// sweepSelect selects everything on the clicked line at or before (left
// mode) or at or after (right mode) the clicked time.
func (t *SelectTool) sweepSelect(x, y int) bool {
	line := t.env.Matrix.YToLine(y)
	tick := t.env.Matrix.XToTick(x)

	var picked []*song.Event
	for _, on := range t.env.Song.Notes() {
		if int(on.Note) != line {
			continue
		}
		if t.mode == SelectLeft && on.Tick <= tick {
			picked = append(picked, on)
		}
		if t.mode == SelectRight && on.Tick >= tick {
			picked = append(picked, on)
		}
	}
	t.env.Selection.Set(picked)
	return true
}

// commitBox selects every note whose screen rectangle intersects the drag
// rectangle.
func (t *SelectTool) commitBox() {
	x1, y1, x2, y2 := normalizeRect(t.anchorX, t.anchorY, t.curX, t.curY)

	var picked []*song.Event
	for _, on := range t.env.Song.Notes() {
		nx1, ny, nx2, ok := t.env.Matrix.NoteRect(on)
		if !ok {
			continue
		}
		if ny < y1 || ny > y2 {
			continue
		}
		if nx1 <= x2 && nx2-1 >= x1 {
			picked = append(picked, on)
		}
	}
	t.env.Selection.Set(picked)
}

func normalizeRect(x1, y1, x2, y2 int) (int, int, int, int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2, y2
}

// Snapshot captures the sub-mode; restoring also resets any drag in progress.
func (t *SelectTool) Snapshot() history.Snapshot {
	return &selectToolSnapshot{target: t, mode: t.mode}
}

type selectToolSnapshot struct {
	target *SelectTool
	mode   SelectMode
}

func (s *selectToolSnapshot) Restore() {
	s.target.mode = s.mode
	s.target.reset()
}
