package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// NewNoteTool creates notes: a click places a default-length note, dragging
// sets the length. Which track and channel new notes go to is undoable tool
// configuration.
type NewNoteTool struct {
	eventTool
	track   int
	channel uint8

	on, off *song.Event // pair under construction
	opened  bool
}

// NewNewNoteTool creates a note-creation tool targeting the given track.
func NewNewNoteTool(env *Env, track int, channel uint8) *NewNoteTool {
	return &NewNoteTool{eventTool: newEventTool(env, "new note"), track: track, channel: channel}
}

// SetTarget changes where new notes go. Callers that want this undoable wrap
// it in an action and Capture the tool first.
func (t *NewNoteTool) SetTarget(track int, channel uint8) {
	t.track = track
	t.channel = channel
}

// Target returns the configured track and channel.
func (t *NewNoteTool) Target() (int, uint8) { return t.track, t.channel }

func (t *NewNoteTool) Press(primary bool, x, y int) bool {
	line := t.env.Matrix.YToLine(y)
	if line < 0 || line > 127 {
		return false
	}
	trackIdx := t.track
	trk := t.env.Song.Track(trackIdx)
	if trk == nil {
		tracks := t.env.Song.Tracks()
		if len(tracks) == 0 {
			return false
		}
		trackIdx = len(tracks) - 1
		trk = tracks[trackIdx]
	}

	t.begin(x, y)
	_, tick := t.RasteredX(x)
	length := t.env.Config.DefaultNote
	if length < 1 {
		length = t.gridStep()
	}

	t.env.History.StartAction("insert note")
	t.opened = true
	t.env.History.Capture(trk)

	t.on, t.off = song.NewNotePair(tick, length, uint8(line), uint8(t.env.Config.DefaultVelocity), t.channel, trackIdx)
	trk.Insert(t.on)
	trk.Insert(t.off)
	t.env.Selection.Add(t.on, true)
	t.env.Song.SetModified(true)
	return true
}

func (t *NewNoteTool) Move(x, y int) bool {
	if !t.pressed || t.off == nil {
		return false
	}
	t.lastX, t.lastY = x, y

	_, tick := t.RasteredX(x)
	if tick < t.on.Tick+1 {
		tick = t.on.Tick + 1
	}
	if tick == t.off.Tick {
		return false
	}
	t.env.History.Capture(t.off)
	t.off.Tick = tick
	return true
}

func (t *NewNoteTool) Release() bool {
	if !t.pressed {
		return false
	}
	t.reset()
	t.on, t.off = nil, nil
	t.resortTracks()
	if t.opened {
		t.opened = false
		t.env.History.EndAction()
	}
	return true
}

func (t *NewNoteTool) ReleaseOnly() bool {
	return t.Release()
}

func (t *NewNoteTool) Draw(p Painter) {
	if !t.pressed || t.on == nil {
		return
	}
	x1 := t.env.Matrix.TickToX(t.on.Tick)
	x2 := t.env.Matrix.TickToX(t.off.Tick)
	y := t.env.Matrix.LineToY(int(t.on.Note))
	for x := x1; x < x2; x++ {
		p.Mark(x, y, '▒')
	}
}

// Snapshot captures the target track/channel configuration.
func (t *NewNoteTool) Snapshot() history.Snapshot {
	return &newNoteSnapshot{target: t, track: t.track, channel: t.channel}
}

type newNoteSnapshot struct {
	target  *NewNoteTool
	track   int
	channel uint8
}

func (s *newNoteSnapshot) Restore() {
	s.target.track = s.track
	s.target.channel = s.channel
	s.target.reset()
	s.target.on, s.target.off = nil, nil
}
