// Package core wires the per-document session: the song, the history
// engine, the shared selection, the coordinate matrix and the tool set. The
// managers are explicit objects owned here and injected into the tools;
// there are no process-wide singletons, so multiple documents and tests can
// each have their own session.
package core

import (
	"fmt"

	"github.com/Meowchestra/MidiEditor-sub001/internal/config"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/clipboard"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/matrix"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/selection"
	"github.com/Meowchestra/MidiEditor-sub001/internal/event"
	"github.com/Meowchestra/MidiEditor-sub001/internal/logger"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
	"github.com/Meowchestra/MidiEditor-sub001/internal/tool"
)

// Editor is one editing session over one open document.
type Editor struct {
	cfg    *config.EditorConfig
	events *event.Manager

	song    *song.Song
	history *history.Manager
	sel     *selection.Manager
	nav     *selection.Navigator
	mat     *matrix.Matrix
	clip    *clipboard.Manager

	env    *tool.Env
	tools  map[string]tool.Tool
	active tool.Tool

	standard *tool.StandardTool
	selecter *tool.SelectTool
	newNote  *tool.NewNoteTool
	overlaps *tool.DeleteOverlapsTool
	strummer *tool.StrummerTool
	scissors *tool.ScissorsTool
}

// NewEditor builds a session over the given song.
func NewEditor(s *song.Song, events *event.Manager, cfg *config.EditorConfig) *Editor {
	ed := &Editor{
		cfg:    cfg,
		events: events,
		song:   s,
	}
	ed.history = history.NewManager(events, cfg.MaxUndo)
	ed.sel = selection.NewManager(events)
	ed.mat = matrix.New(s, cfg.EdgeMargin)
	ed.nav = selection.NewNavigator(ed.sel, ed.mat)
	ed.clip = clipboard.NewManager(ed.Song, ed.history, ed.sel, cfg.SystemClipboard)

	ed.env = &tool.Env{
		Song:      s,
		History:   ed.history,
		Selection: ed.sel,
		Matrix:    ed.mat,
		Events:    events,
		Config:    cfg,
		Clipboard: ed.clip,
	}

	ed.selecter = tool.NewSelectTool(ed.env)
	moveTool := tool.NewEventMoveTool(ed.env, true, true)
	sizeTool := tool.NewSizeChangeTool(ed.env)
	ed.standard = tool.NewStandardTool(ed.env, ed.selecter, moveTool, sizeTool)
	ed.newNote = tool.NewNewNoteTool(ed.env, 1, 0)
	ed.overlaps = tool.NewDeleteOverlapsTool(ed.env)
	ed.strummer = tool.NewStrummerTool(ed.env)
	ed.scissors = tool.NewScissorsTool(ed.env)

	ed.tools = map[string]tool.Tool{
		"standard":      ed.standard,
		"select":        ed.selecter,
		"move":          moveTool,
		"size":          sizeTool,
		"newnote":       ed.newNote,
		"eraser":        tool.NewEraserTool(ed.env),
		"scissors":      ed.scissors,
		"overlaps":      ed.overlaps,
		"strummer":      ed.strummer,
		"tempo":         tool.NewTempoTool(ed.env),
		"timesignature": tool.NewTimeSignatureTool(ed.env),
		"measure":       tool.NewMeasureTool(ed.env),
	}
	ed.active = ed.standard
	ed.watchModified(s)

	// After every finished action, drop selected events that the restore
	// removed from the document. Selection-only work, so the no-new-action
	// rule for observers holds.
	events.Subscribe(event.TypeActionFinished, func(e event.Event) bool {
		ed.pruneSelection()
		return false
	})

	return ed
}

// Song returns the open document.
func (ed *Editor) Song() *song.Song { return ed.song }

// History returns the session's history engine.
func (ed *Editor) History() *history.Manager { return ed.history }

// Selection returns the shared selection manager.
func (ed *Editor) Selection() *selection.Manager { return ed.sel }

// Events returns the session's event bus.
func (ed *Editor) Events() *event.Manager { return ed.events }

// Matrix returns the coordinate mapper.
func (ed *Editor) Matrix() *matrix.Matrix { return ed.mat }

// ActiveTool returns the tool receiving pointer events.
func (ed *Editor) ActiveTool() tool.Tool { return ed.active }

// StandardTool returns the dispatcher tool.
func (ed *Editor) StandardTool() *tool.StandardTool { return ed.standard }

// SelectTool returns the shared selection tool, also used by the dispatcher.
func (ed *Editor) SelectTool() *tool.SelectTool { return ed.selecter }

// Strummer returns the batch strum tool.
func (ed *Editor) Strummer() *tool.StrummerTool { return ed.strummer }

// Overlaps returns the overlap-removal tool.
func (ed *Editor) Overlaps() *tool.DeleteOverlapsTool { return ed.overlaps }

// SetActiveTool switches the pointer bindings to the named tool.
func (ed *Editor) SetActiveTool(name string) error {
	t, ok := ed.tools[name]
	if !ok {
		return fmt.Errorf("unknown tool '%s'", name)
	}
	ed.active = t
	ed.events.Dispatch(event.TypeToolChanged, event.ToolChangedData{Name: t.Name()})
	return nil
}

// Undo reverts the latest action. Ignored mid-gesture so a drag can never be
// torn apart.
func (ed *Editor) Undo() bool {
	if ed.history.InAction() {
		logger.Warnf("Editor: undo ignored during an open gesture")
		return false
	}
	return ed.history.Undo()
}

// Redo reapplies the latest undone action.
func (ed *Editor) Redo() bool {
	if ed.history.InAction() {
		return false
	}
	return ed.history.Redo()
}

// Navigation in screen directions, via the angular-distance navigator.
func (ed *Editor) NavigateUp() bool    { return ed.nav.Up(ed.song) }
func (ed *Editor) NavigateDown() bool  { return ed.nav.Down(ed.song) }
func (ed *Editor) NavigateLeft() bool  { return ed.nav.Left(ed.song) }
func (ed *Editor) NavigateRight() bool { return ed.nav.Right(ed.song) }

// SelectAll selects every event in the song.
func (ed *Editor) SelectAll() {
	ed.sel.Set(ed.song.AllEvents())
}

// SelectNone clears the selection.
func (ed *Editor) SelectNone() {
	ed.sel.Clear()
}

// DeleteSelection removes every selected event (and note partners) in one
// action.
func (ed *Editor) DeleteSelection() bool {
	events := ed.sel.Events()
	if len(events) == 0 {
		return false
	}
	ed.history.StartAction("remove events")
	captured := make(map[*song.Track]struct{})
	for _, ev := range events {
		trk := ed.song.TrackOf(ev)
		if trk == nil {
			continue
		}
		if _, ok := captured[trk]; !ok {
			captured[trk] = struct{}{}
			ed.history.Capture(trk)
		}
		trk.Remove(ev)
		if ev.Partner != nil {
			trk.Remove(ev.Partner)
		}
	}
	ed.song.SetModified(true)
	ed.history.EndAction()
	ed.sel.Clear()
	return true
}

// Transpose shifts every selected note by the given number of semitones in
// one action.
func (ed *Editor) Transpose(semitones int) bool {
	notes := ed.selectedNotes()
	if len(notes) == 0 || semitones == 0 {
		return false
	}
	ed.history.StartAction("transpose notes")
	for _, on := range notes {
		nn := int(on.Note) + semitones
		if nn < 0 {
			nn = 0
		}
		if nn > 127 {
			nn = 127
		}
		if nn == int(on.Note) {
			continue
		}
		ed.history.Capture(on)
		ed.history.Capture(on.Partner)
		on.Note = uint8(nn)
		on.Partner.Note = on.Note
	}
	ed.song.SetModified(true)
	ed.history.EndAction()
	return true
}

// NudgeVelocity adds delta to every selected note's velocity in one action.
func (ed *Editor) NudgeVelocity(delta int) bool {
	notes := ed.selectedNotes()
	if len(notes) == 0 || delta == 0 {
		return false
	}
	ed.history.StartAction("change velocity")
	for _, on := range notes {
		v := int(on.Velocity) + delta
		if v < 1 {
			v = 1
		}
		if v > 127 {
			v = 127
		}
		if v == int(on.Velocity) {
			continue
		}
		ed.history.Capture(on)
		on.Velocity = uint8(v)
	}
	ed.song.SetModified(true)
	ed.history.EndAction()
	return true
}

// QuantizeSelection snaps every selected note onto the current grid in one
// action, keeping the minimum one-tick duration.
func (ed *Editor) QuantizeSelection() bool {
	notes := ed.selectedNotes()
	if len(notes) == 0 {
		return false
	}
	div := ed.cfg.GridDivision
	if div <= 0 {
		div = 1
	}
	step := ed.song.TicksPerQuarter / div
	if step < 1 {
		step = 1
	}
	raster := func(tick int) int {
		snapped := (tick + step/2) / step * step
		if snapped < 0 {
			snapped = 0
		}
		return snapped
	}

	ed.history.StartAction("quantify events")
	changed := false
	captured := make(map[*song.Track]struct{})
	for _, on := range notes {
		off := on.Partner
		newOn := raster(on.Tick)
		newOff := raster(off.Tick)
		if newOff <= newOn {
			newOff = newOn + 1
		}
		if newOn == on.Tick && newOff == off.Tick {
			continue
		}
		trk := ed.song.TrackOf(on)
		if trk != nil {
			if _, ok := captured[trk]; !ok {
				captured[trk] = struct{}{}
				ed.history.Capture(trk)
			}
		}
		ed.history.Capture(on)
		ed.history.Capture(off)
		on.Tick = newOn
		off.Tick = newOff
		changed = true
	}
	if changed {
		for _, trk := range ed.song.Tracks() {
			trk.Resort()
		}
		ed.song.SetModified(true)
	}
	ed.history.EndAction()
	return changed
}

// Copy serializes the selection to the clipboard.
func (ed *Editor) Copy() error { return ed.clip.Copy() }

// Cut copies the selection, then removes it in one action.
func (ed *Editor) Cut() error {
	if err := ed.clip.Copy(); err != nil {
		return err
	}
	ed.DeleteSelection()
	return nil
}

// Paste clones the clipboard contents back in place.
func (ed *Editor) Paste() error { return ed.clip.Paste(0, -1, -1) }

// ToggleMagnet flips grid snapping.
func (ed *Editor) ToggleMagnet() bool {
	ed.cfg.MagnetEnabled = !ed.cfg.MagnetEnabled
	return ed.cfg.MagnetEnabled
}

// LoadFile replaces the open document. The selection is scoped to one
// document, so it clears, and the history starts over.
func (ed *Editor) LoadFile(path string) error {
	s, err := song.Load(path)
	if err != nil {
		return err
	}
	ed.replaceSong(s)
	ed.events.Dispatch(event.TypeSongLoaded, event.SongLoadedData{FilePath: path})
	return nil
}

// SaveFile writes the document. An empty path reuses the song's file path.
func (ed *Editor) SaveFile(path string) error {
	if path == "" {
		path = ed.song.FilePath
	}
	if path == "" {
		return fmt.Errorf("no file path to save to")
	}
	if err := ed.song.Save(path); err != nil {
		return err
	}
	ed.song.SetModified(false)
	ed.events.Dispatch(event.TypeSongSaved, event.SongSavedData{FilePath: path})
	return nil
}

func (ed *Editor) replaceSong(s *song.Song) {
	ed.song = s
	ed.env.Song = s
	ed.mat.SetSong(s)
	ed.sel.Clear()
	ed.history.Clear()
	ed.watchModified(s)
}

// watchModified forwards the song's unsaved-changes flag onto the event bus.
func (ed *Editor) watchModified(s *song.Song) {
	s.SetOnModified(func(modified bool) {
		ed.events.Dispatch(event.TypeSongModified, event.SongModifiedData{Modified: modified})
	})
}

func (ed *Editor) selectedNotes() []*song.Event {
	var out []*song.Event
	seen := make(map[*song.Event]struct{})
	for _, ev := range ed.sel.Events() {
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

// pruneSelection drops selected events no longer present in the document,
// e.g. after undoing an insert.
func (ed *Editor) pruneSelection() {
	events := ed.sel.Events()
	if len(events) == 0 {
		return
	}
	present := make(map[*song.Event]struct{})
	for _, trk := range ed.song.Tracks() {
		for _, e := range trk.Events() {
			present[e] = struct{}{}
		}
	}
	for _, ev := range events {
		if _, ok := present[ev]; !ok {
			ed.sel.Remove(ev)
		}
	}
}
