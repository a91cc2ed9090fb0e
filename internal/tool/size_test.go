package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeToolDerivesEdgeFromHit(t *testing.T) {
	env := newTestEnv()
	sz := NewSizeChangeTool(env)
	on := addNote(env, 0, 960, 60) // columns 0..4

	// a standalone press on the right edge selects the note and grabs the end
	require.True(t, sz.Press(true, 3, rowOf(env, 60)))
	assert.True(t, env.Selection.Contains(on))

	sz.Move(6, rowOf(env, 60))
	sz.Release()

	assert.Equal(t, 0, on.Tick)
	assert.Equal(t, 1680, on.Partner.Tick)

	require.True(t, env.History.Undo())
	assert.Equal(t, 960, on.Partner.Tick)
}

func TestSizeToolStartEdgeMovesOnlyStart(t *testing.T) {
	env := newTestEnv()
	sz := NewSizeChangeTool(env)
	on := addNote(env, 480, 960, 60) // columns 2..6

	require.True(t, sz.Press(true, 2, rowOf(env, 60)))
	sz.Move(0, rowOf(env, 60))
	sz.Release()

	assert.Equal(t, 0, on.Tick)
	assert.Equal(t, 1440, on.Partner.Tick, "end edge untouched")
}

func TestSizeToolMinimumOneTick(t *testing.T) {
	env := newTestEnv()
	sz := NewSizeChangeTool(env)
	on := addNote(env, 0, 960, 60)

	// dragging the start past the end clamps to a one-tick note
	require.True(t, sz.Press(true, 0, rowOf(env, 60)))
	sz.Move(8, rowOf(env, 60))
	sz.Release()

	assert.Equal(t, 959, on.Tick)
	assert.Equal(t, 1, on.Duration())
}

func TestSizeToolEndEdgeMinimum(t *testing.T) {
	env := newTestEnv()
	sz := NewSizeChangeTool(env)
	on := addNote(env, 960, 960, 60) // columns 4..8

	require.True(t, sz.Press(true, 7, rowOf(env, 60)))
	sz.Move(0, rowOf(env, 60))
	sz.Release()

	assert.Equal(t, 961, on.Partner.Tick)
	assert.Equal(t, 1, on.Duration())
}

func TestSizeToolNoNoteNoGesture(t *testing.T) {
	env := newTestEnv()
	sz := NewSizeChangeTool(env)

	assert.False(t, sz.Press(true, 10, 10))
	assert.False(t, env.History.InAction())
}
