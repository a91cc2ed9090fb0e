package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

func TestNewNoteToolClickPlacesDefaultNote(t *testing.T) {
	env := newTestEnv()
	nn := NewNewNoteTool(env, 1, 0)

	require.True(t, nn.Press(true, 2, rowOf(env, 60)))
	nn.Release()

	trk := env.Song.Track(1)
	require.Equal(t, 2, trk.Len())
	on := trk.Events()[0]
	assert.Equal(t, song.KindNoteOn, on.Kind)
	assert.Equal(t, 480, on.Tick)
	assert.Equal(t, uint8(60), on.Note)
	assert.Equal(t, uint8(100), on.Velocity)
	assert.Equal(t, 240, on.Duration())
	assert.Equal(t, 1, env.Selection.Len())
	assert.True(t, env.Selection.Contains(on), "new note is selected exclusively")
}

func TestNewNoteToolDragSetsLength(t *testing.T) {
	env := newTestEnv()
	nn := NewNewNoteTool(env, 1, 0)

	require.True(t, nn.Press(true, 2, rowOf(env, 60)))
	nn.Move(5, rowOf(env, 60))
	nn.Release()

	on := env.Song.Track(1).Events()[0]
	assert.Equal(t, 480, on.Tick)
	assert.Equal(t, 1200, on.Partner.Tick)
}

func TestNewNoteToolUndoRemovesPair(t *testing.T) {
	env := newTestEnv()
	nn := NewNewNoteTool(env, 1, 0)

	require.True(t, nn.Press(true, 2, rowOf(env, 60)))
	nn.Move(5, rowOf(env, 60))
	nn.Release()

	require.True(t, env.History.Undo())
	assert.Zero(t, env.Song.Track(1).Len())

	require.True(t, env.History.Redo())
	require.Equal(t, 2, env.Song.Track(1).Len())
	assert.Equal(t, 1200, env.Song.Track(1).Events()[0].Partner.Tick, "redo replays the dragged length")
}

func TestNewNoteToolSnapsToGrid(t *testing.T) {
	env := newTestEnv()
	env.Config.MagnetEnabled = true
	env.Config.GridDivision = 1 // whole-quarter raster
	nn := NewNewNoteTool(env, 1, 0)

	require.True(t, nn.Press(true, 3, rowOf(env, 60))) // raw tick 720
	nn.Release()

	assert.Equal(t, 960, env.Song.Track(1).Events()[0].Tick)
}

func TestNewNoteToolFallsBackToLastTrack(t *testing.T) {
	env := newTestEnv()
	nn := NewNewNoteTool(env, 9, 0) // configured track is gone

	require.True(t, nn.Press(true, 0, rowOf(env, 60)))
	nn.Release()

	require.Equal(t, 2, env.Song.Track(1).Len())
	on := env.Song.Track(1).Events()[0]
	assert.Equal(t, 1, on.Track, "events are stamped with the track that took them")
}
