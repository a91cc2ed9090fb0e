package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meowchestra/MidiEditor-sub001/internal/config"
	"github.com/Meowchestra/MidiEditor-sub001/internal/event"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

func testEditor() *Editor {
	cfg := &config.EditorConfig{
		MagnetEnabled:   false,
		GridDivision:    4,
		DefaultVelocity: 100,
		DefaultNote:     240,
		EdgeMargin:      1,
		MaxUndo:         64,
	}
	return NewEditor(song.New(960), event.NewManager(), cfg)
}

func addNote(ed *Editor, tick, length int, note uint8) *song.Event {
	on, off := song.NewNotePair(tick, length, note, 100, 0, 1)
	ed.Song().Track(1).Insert(on)
	ed.Song().Track(1).Insert(off)
	return on
}

func TestSetActiveTool(t *testing.T) {
	ed := testEditor()

	require.NoError(t, ed.SetActiveTool("eraser"))
	assert.Equal(t, "eraser", ed.ActiveTool().Name())

	err := ed.SetActiveTool("chainsaw")
	require.Error(t, err)
	assert.Equal(t, "eraser", ed.ActiveTool().Name(), "failed switch keeps the old tool")
}

func TestTransposeClampsAndSyncsPartner(t *testing.T) {
	ed := testEditor()
	a := addNote(ed, 0, 480, 60)
	b := addNote(ed, 960, 480, 126)
	ed.SelectAll()

	require.True(t, ed.Transpose(12))
	assert.Equal(t, uint8(72), a.Note)
	assert.Equal(t, uint8(72), a.Partner.Note)
	assert.Equal(t, uint8(127), b.Note, "clamped at the top")

	require.True(t, ed.Undo())
	assert.Equal(t, uint8(60), a.Note)
	assert.Equal(t, uint8(126), b.Note)
}

func TestNudgeVelocityClampsAtOne(t *testing.T) {
	ed := testEditor()
	a := addNote(ed, 0, 480, 60)
	ed.SelectAll()

	require.True(t, ed.NudgeVelocity(-200))
	assert.Equal(t, uint8(1), a.Velocity, "velocity floor is 1, not 0")

	require.True(t, ed.Undo())
	assert.Equal(t, uint8(100), a.Velocity)
}

func TestQuantizeSelection(t *testing.T) {
	ed := testEditor()
	a := addNote(ed, 130, 450, 60) // grid step is 240
	ed.SelectAll()

	require.True(t, ed.QuantizeSelection())
	assert.Equal(t, 240, a.Tick, "130 rounds up")
	assert.Equal(t, 480, a.Partner.Tick, "580 rounds down")

	require.True(t, ed.Undo())
	assert.Equal(t, 130, a.Tick)
	assert.Equal(t, 580, a.Partner.Tick)
}

func TestQuantizeKeepsMinimumDuration(t *testing.T) {
	ed := testEditor()
	a := addNote(ed, 100, 10, 60) // both ends round onto the same grid line
	ed.SelectAll()

	require.True(t, ed.QuantizeSelection())
	assert.Equal(t, 0, a.Tick)
	assert.Equal(t, 1, a.Partner.Tick)
}

func TestDeleteSelectionRemovesPartners(t *testing.T) {
	ed := testEditor()
	a := addNote(ed, 0, 480, 60)
	addNote(ed, 960, 480, 64)
	ed.Selection().Add(a, true) // only the on side selected

	require.True(t, ed.DeleteSelection())
	assert.Equal(t, 2, ed.Song().Track(1).Len(), "partner went with it")
	assert.Zero(t, ed.Selection().Len())

	require.True(t, ed.Undo())
	assert.Equal(t, 4, ed.Song().Track(1).Len())
}

func TestDeleteSelectionEmptyIsNoOp(t *testing.T) {
	ed := testEditor()
	addNote(ed, 0, 480, 60)

	assert.False(t, ed.DeleteSelection())
	assert.Zero(t, ed.History().StepsBack())
}

func TestUndoPrunesStaleSelection(t *testing.T) {
	ed := testEditor()
	require.NoError(t, ed.SetActiveTool("newnote"))

	// create a note through the tool, leaving it selected
	ed.Matrix().SetViewport(0, 0, 100, 60)
	ed.ActiveTool().Press(true, 2, ed.Matrix().LineToY(60))
	ed.ActiveTool().Release()
	require.Equal(t, 1, ed.Selection().Len())

	// undoing the insert removes the event; the selection must follow
	require.True(t, ed.Undo())
	assert.Zero(t, ed.Selection().Len())
}

func TestUndoRefusedMidGesture(t *testing.T) {
	ed := testEditor()
	ed.History().StartAction("drag")

	assert.False(t, ed.Undo())
	assert.False(t, ed.Redo())
	ed.History().EndAction()
}

func TestCopyCutPaste(t *testing.T) {
	ed := testEditor()
	addNote(ed, 480, 240, 60)
	ed.SelectAll()

	require.NoError(t, ed.Cut())
	assert.Zero(t, ed.Song().Track(1).Len())

	require.NoError(t, ed.Paste())
	require.Equal(t, 2, ed.Song().Track(1).Len())
	on := ed.Song().Track(1).Events()[0]
	assert.Equal(t, 480, on.Tick)
	assert.Equal(t, uint8(60), on.Note)
	assert.True(t, ed.Selection().Contains(on), "paste selects the clones")
}

func TestToggleMagnet(t *testing.T) {
	ed := testEditor()

	assert.True(t, ed.ToggleMagnet())
	assert.False(t, ed.ToggleMagnet())
}

func TestSaveAndLoadFile(t *testing.T) {
	ed := testEditor()
	addNote(ed, 960, 480, 64)
	ed.SelectAll()
	path := filepath.Join(t.TempDir(), "take.mid")

	require.NoError(t, ed.SaveFile(path))
	assert.False(t, ed.Song().Modified())

	require.NoError(t, ed.LoadFile(path))
	assert.Zero(t, ed.Selection().Len(), "selection is per document")
	assert.Zero(t, ed.History().StepsBack(), "history is per document")
	require.Len(t, ed.Song().Notes(), 1)
	assert.Equal(t, 960, ed.Song().Notes()[0].Tick)
}

func TestModifiedFlagNotifiesOnFlip(t *testing.T) {
	ed := testEditor()
	var states []bool
	ed.Events().Subscribe(event.TypeSongModified, func(e event.Event) bool {
		if data, ok := e.Data.(event.SongModifiedData); ok {
			states = append(states, data.Modified)
		}
		return false
	})
	a := addNote(ed, 0, 480, 60)
	ed.Selection().Add(a, true)

	require.True(t, ed.DeleteSelection())
	require.NoError(t, ed.SaveFile(filepath.Join(t.TempDir(), "take.mid")))

	// save clears the flag twice internally; only the flips go out
	assert.Equal(t, []bool{true, false}, states)
}

func TestSaveFileWithoutPath(t *testing.T) {
	ed := testEditor()

	require.Error(t, ed.SaveFile(""))
}

func TestNavigateRight(t *testing.T) {
	ed := testEditor()
	ed.Matrix().SetViewport(0, 0, 100, 60)
	a := addNote(ed, 0, 480, 60)
	b := addNote(ed, 960, 480, 60)
	ed.Selection().Add(a, true)

	require.True(t, ed.NavigateRight())
	assert.True(t, ed.Selection().Contains(b))

	require.True(t, ed.NavigateLeft())
	assert.True(t, ed.Selection().Contains(a))
}
