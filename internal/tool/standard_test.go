package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meowchestra/MidiEditor-sub001/internal/core/matrix"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

func newStandardFixture(env *Env) *StandardTool {
	return NewStandardTool(env,
		NewSelectTool(env),
		NewEventMoveTool(env, true, true),
		NewSizeChangeTool(env))
}

func TestDelegateForPriority(t *testing.T) {
	ev := &song.Event{Kind: song.KindNoteOn}

	cases := []struct {
		name     string
		hit      matrix.Hit
		selected bool
		want     Delegate
	}{
		{"empty space", matrix.Hit{}, false, DelegateSelect},
		{"body unselected", matrix.Hit{Event: ev, Zone: matrix.ZoneBody}, false, DelegateMove},
		{"body selected", matrix.Hit{Event: ev, Zone: matrix.ZoneBody}, true, DelegateMove},
		{"edge unselected moves", matrix.Hit{Event: ev, Zone: matrix.ZoneRightEdge}, false, DelegateMove},
		{"left edge selected", matrix.Hit{Event: ev, Zone: matrix.ZoneLeftEdge}, true, DelegateSize},
		{"right edge selected", matrix.Hit{Event: ev, Zone: matrix.ZoneRightEdge}, true, DelegateSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DelegateFor(tc.hit, tc.selected))
		})
	}
}

func TestStandardToolPressSelectsThenMoves(t *testing.T) {
	env := newTestEnv()
	std := newStandardFixture(env)
	on := addNote(env, 0, 960, 60)

	// body press on an unselected note selects it and starts a drag
	require.True(t, std.Press(true, 1, rowOf(env, 60)))
	assert.True(t, env.Selection.Contains(on))

	std.Move(3, rowOf(env, 60))
	std.Release()

	assert.Equal(t, 480, on.Tick)
	assert.Equal(t, 1440, on.Partner.Tick)
	assert.Equal(t, 1, env.History.StepsBack())
}

func TestStandardToolEdgeOfSelectedResizes(t *testing.T) {
	env := newTestEnv()
	std := newStandardFixture(env)
	on := addNote(env, 0, 960, 60) // columns 0..4, right edge at x=3
	selectNote(env, on)

	require.True(t, std.Press(true, 3, rowOf(env, 60)))
	std.Move(6, rowOf(env, 60))
	std.Release()

	assert.Equal(t, 0, on.Tick, "start edge untouched")
	assert.Equal(t, 1680, on.Partner.Tick)
}

func TestStandardToolEmptySpaceClearsSelection(t *testing.T) {
	env := newTestEnv()
	std := newStandardFixture(env)
	on := addNote(env, 0, 960, 60)
	selectNote(env, on)

	std.Press(true, 40, rowOf(env, 60))
	std.Release()

	assert.Zero(t, env.Selection.Len())
	assert.Zero(t, env.History.StepsBack(), "selection changes are not undoable")
}
