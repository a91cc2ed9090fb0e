package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/matrix"
)

// Delegate names which concrete tool StandardTool hands a gesture to.
type Delegate int

const (
	DelegateSelect Delegate = iota
	DelegateMove
	DelegateSize
)

// DelegateFor is the dispatch priority as an explicit function from the hit
// test result and selection state: resize edge zones of selected notes win
// over moving, moving over selecting. New-note creation is never reached
// from here; that is the dedicated NewNoteTool binding.
func DelegateFor(hit matrix.Hit, selected bool) Delegate {
	switch {
	case hit.Event != nil && selected && (hit.Zone == matrix.ZoneLeftEdge || hit.Zone == matrix.ZoneRightEdge):
		return DelegateSize
	case hit.Event != nil:
		return DelegateMove
	default:
		return DelegateSelect
	}
}

// StandardTool owns a select, move and size tool and, on every press, picks
// which one handles the rest of the gesture. All subsequent move/release
// calls are forwarded unchanged; the delegate reference is cleared on
// release.
type StandardTool struct {
	eventTool
	selectTool *SelectTool
	moveTool   *EventMoveTool
	sizeTool   *SizeChangeTool

	delegate Tool
}

// NewStandardTool creates the dispatcher over its three delegates.
func NewStandardTool(env *Env, sel *SelectTool, move *EventMoveTool, size *SizeChangeTool) *StandardTool {
	return &StandardTool{
		eventTool:  newEventTool(env, "standard"),
		selectTool: sel,
		moveTool:   move,
		sizeTool:   size,
	}
}

// SelectTool exposes the owned select delegate so the UI can switch its
// sub-mode.
func (t *StandardTool) SelectTool() *SelectTool { return t.selectTool }

func (t *StandardTool) Press(primary bool, x, y int) bool {
	h := t.hit(x, y)
	selected := h.Event != nil && t.env.Selection.Contains(h.Event)

	switch DelegateFor(h, selected) {
	case DelegateSize:
		switch h.Zone {
		case matrix.ZoneLeftEdge:
			t.sizeTool.SetEdge(EdgeStart)
		case matrix.ZoneRightEdge:
			t.sizeTool.SetEdge(EdgeEnd)
		}
		t.delegate = t.sizeTool
	case DelegateMove:
		if !selected {
			// the press itself selects the event, then the move takes over
			t.env.Selection.Add(h.Event, true)
		}
		t.delegate = t.moveTool
	case DelegateSelect:
		t.delegate = t.selectTool
	}
	return t.delegate.Press(primary, x, y)
}

func (t *StandardTool) Move(x, y int) bool {
	if t.delegate == nil {
		return false
	}
	return t.delegate.Move(x, y)
}

func (t *StandardTool) Release() bool {
	if t.delegate == nil {
		return false
	}
	repaint := t.delegate.Release()
	t.delegate = nil
	return repaint
}

func (t *StandardTool) ReleaseOnly() bool {
	if t.delegate == nil {
		return false
	}
	repaint := t.delegate.ReleaseOnly()
	t.delegate = nil
	return repaint
}

func (t *StandardTool) Draw(p Painter) {
	if t.delegate != nil {
		t.delegate.Draw(p)
	}
}
