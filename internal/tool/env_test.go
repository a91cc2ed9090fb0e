package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/config"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/matrix"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/selection"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// newTestEnv builds an Env over a fresh two-track song. The viewport starts
// at the origin with 240 ticks per cell and note 84 on the top row, so
// column x is tick 240*x and note 60 sits on row 24. The magnet starts
// disabled; tests that want snapping flip it on.
func newTestEnv() *Env {
	s := song.New(960)
	m := matrix.New(s, 1)
	m.SetViewport(0, 0, 100, 60)
	return &Env{
		Song:      s,
		History:   history.NewManager(nil, 64),
		Selection: selection.NewManager(nil),
		Matrix:    m,
		Config: &config.EditorConfig{
			MagnetEnabled:   false,
			GridDivision:    4,
			DefaultVelocity: 100,
			DefaultNote:     240,
			EdgeMargin:      1,
			MaxUndo:         64,
		},
	}
}

// addNote inserts a note pair on track 1 and returns the on side.
func addNote(env *Env, tick, length int, note uint8) *song.Event {
	on, off := song.NewNotePair(tick, length, note, 100, 0, 1)
	env.Song.Track(1).Insert(on)
	env.Song.Track(1).Insert(off)
	return on
}

// selectNote puts both halves of a pair into the selection.
func selectNote(env *Env, on *song.Event) {
	env.Selection.Add(on, false)
	env.Selection.Add(on.Partner, false)
}

// rowOf returns the screen row of a note line under the test viewport.
func rowOf(env *Env, note uint8) int {
	return env.Matrix.LineToY(int(note))
}
