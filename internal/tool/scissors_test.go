package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScissorsSplitsContainingNote(t *testing.T) {
	env := newTestEnv()
	sc := NewScissorsTool(env)
	on := addNote(env, 0, 1920, 60)

	assert.Equal(t, 1, sc.SplitAt(960))

	notes := env.Song.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, 0, notes[0].Tick)
	assert.Equal(t, 960, notes[0].Partner.Tick)
	assert.Equal(t, 960, notes[1].Tick)
	assert.Equal(t, 1920, notes[1].Partner.Tick)
	assert.Equal(t, notes[0].Note, notes[1].Note)
	assert.Equal(t, notes[0].Velocity, notes[1].Velocity)

	require.True(t, env.History.Undo())
	require.Len(t, env.Song.Notes(), 1)
	assert.Equal(t, 1920, on.Partner.Tick)
}

func TestScissorsBoundaryIsNotInside(t *testing.T) {
	env := newTestEnv()
	sc := NewScissorsTool(env)
	addNote(env, 0, 960, 60)

	assert.Zero(t, sc.SplitAt(0), "start boundary")
	assert.Zero(t, sc.SplitAt(960), "end boundary")
	assert.Len(t, env.Song.Notes(), 1)
	assert.Zero(t, env.History.StepsBack(), "no-op splits record no action")
}

func TestScissorsPressUsesColumnTick(t *testing.T) {
	env := newTestEnv()
	sc := NewScissorsTool(env)
	addNote(env, 0, 1920, 60)

	require.True(t, sc.Press(true, 4, rowOf(env, 60))) // tick 960
	assert.Len(t, env.Song.Notes(), 2)
}

func TestScissorsKeepsTrackOrder(t *testing.T) {
	env := newTestEnv()
	sc := NewScissorsTool(env)
	addNote(env, 0, 200, 60)
	addNote(env, 100, 50, 64)

	// the split rewrites an off tick downward; the track must stay tick-sorted
	require.Equal(t, 1, sc.SplitAt(80))

	events := env.Song.Track(1).Events()
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].Tick, events[i].Tick)
	}
}

func TestScissorsSplitsEveryNoteUnderTheCut(t *testing.T) {
	env := newTestEnv()
	sc := NewScissorsTool(env)
	addNote(env, 0, 1920, 60)
	addNote(env, 480, 960, 64)
	addNote(env, 1200, 480, 67) // starts after the cut, untouched

	assert.Equal(t, 2, sc.SplitAt(960))
	assert.Len(t, env.Song.Notes(), 5)
}
