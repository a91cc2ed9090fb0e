package tool

// EraserTool removes the event under a press, together with its note
// partner, in one action. Click-only: the work completes on press.
type EraserTool struct {
	eventTool
}

// NewEraserTool creates an eraser.
func NewEraserTool(env *Env) *EraserTool {
	return &EraserTool{eventTool: newEventTool(env, "eraser")}
}

func (t *EraserTool) Press(primary bool, x, y int) bool {
	h := t.hit(x, y)
	if h.Event == nil {
		return false
	}
	trk := t.env.Song.TrackOf(h.Event)
	if trk == nil {
		return false
	}

	t.env.History.StartAction("remove event")
	t.env.History.Capture(trk)
	trk.Remove(h.Event)
	t.env.Selection.Remove(h.Event)
	if p := h.Event.Partner; p != nil {
		trk.Remove(p)
		t.env.Selection.Remove(p)
	}
	t.env.Song.SetModified(true)
	t.env.History.EndAction()
	return true
}
