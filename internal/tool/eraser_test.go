package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEraserRemovesPair(t *testing.T) {
	env := newTestEnv()
	er := NewEraserTool(env)
	on := addNote(env, 0, 960, 60)
	selectNote(env, on)

	require.True(t, er.Press(true, 1, rowOf(env, 60)))

	assert.Zero(t, env.Song.Track(1).Len(), "both halves removed")
	assert.Zero(t, env.Selection.Len(), "erased events leave the selection")
	assert.True(t, env.Song.Modified())

	require.True(t, env.History.Undo())
	assert.Equal(t, 2, env.Song.Track(1).Len())
}

func TestEraserMissesEmptySpace(t *testing.T) {
	env := newTestEnv()
	er := NewEraserTool(env)
	addNote(env, 0, 960, 60)

	assert.False(t, er.Press(true, 40, rowOf(env, 60)))
	assert.Equal(t, 2, env.Song.Track(1).Len())
	assert.Zero(t, env.History.StepsBack())
}
