package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapsMonoDeletesContained(t *testing.T) {
	env := newTestEnv()
	ov := NewDeleteOverlapsTool(env)
	long := addNote(env, 0, 1000, 60)
	addNote(env, 200, 600, 60) // fully inside the long note

	assert.Equal(t, 1, ov.Apply())

	notes := env.Song.Notes()
	require.Len(t, notes, 1)
	assert.Same(t, long, notes[0])

	require.True(t, env.History.Undo())
	assert.Len(t, env.Song.Notes(), 2)
}

func TestOverlapsMonoClipsPartialOverlap(t *testing.T) {
	env := newTestEnv()
	ov := NewDeleteOverlapsTool(env)
	a := addNote(env, 0, 500, 60)
	b := addNote(env, 300, 600, 60)

	assert.Equal(t, 1, ov.Apply())

	// the shorter note yields: its tail is clipped to the longer one's start
	assert.Equal(t, 300, a.Partner.Tick)
	assert.Equal(t, 300, b.Tick)
	assert.Equal(t, 900, b.Partner.Tick)
}

func TestOverlapsMonoIgnoresOtherPitches(t *testing.T) {
	env := newTestEnv()
	ov := NewDeleteOverlapsTool(env)
	addNote(env, 0, 1000, 60)
	addNote(env, 200, 600, 64)

	assert.Zero(t, ov.Apply())
	assert.Len(t, env.Song.Notes(), 2)
}

func TestOverlapsPolyClipsAcrossPitches(t *testing.T) {
	env := newTestEnv()
	ov := NewDeleteOverlapsTool(env)
	ov.Configure(OverlapPoly, false, false)
	a := addNote(env, 0, 1000, 60)
	b := addNote(env, 500, 1000, 64)

	assert.Equal(t, 1, ov.Apply())

	assert.Equal(t, 500, a.Partner.Tick, "first note ends where the next starts")
	assert.Equal(t, 1500, b.Partner.Tick)
}

func TestOverlapsDoublesRemovesDuplicates(t *testing.T) {
	env := newTestEnv()
	ov := NewDeleteOverlapsTool(env)
	ov.Configure(OverlapDoubles, false, false)
	addNote(env, 0, 480, 60)
	addNote(env, 0, 480, 60)
	addNote(env, 0, 480, 64) // different pitch, kept

	assert.Equal(t, 1, ov.Apply())
	assert.Len(t, env.Song.Notes(), 2)
}

func TestOverlapsScopedToSelection(t *testing.T) {
	env := newTestEnv()
	ov := NewDeleteOverlapsTool(env)
	a := addNote(env, 0, 1000, 60)
	b := addNote(env, 200, 600, 60)
	addNote(env, 2000, 1000, 72)
	addNote(env, 2200, 600, 72) // overlaps too, but stays unselected

	selectNote(env, a)
	selectNote(env, b)

	assert.Equal(t, 1, ov.Apply())
	assert.Len(t, env.Song.Notes(), 3, "unselected overlap untouched")
}

func TestOverlapsConfigurationIsUndoable(t *testing.T) {
	env := newTestEnv()
	ov := NewDeleteOverlapsTool(env)

	env.History.StartAction("change overlap mode")
	env.History.Capture(ov)
	ov.Configure(OverlapPoly, true, false)
	env.History.EndAction()

	require.True(t, env.History.Undo())
	assert.Equal(t, OverlapMono, ov.Mode())
}
