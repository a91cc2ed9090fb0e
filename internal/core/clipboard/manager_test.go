package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/selection"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

func testClipboard() (*Manager, *song.Song, *selection.Manager, *history.Manager) {
	s := song.New(960)
	hist := history.NewManager(nil, 32)
	sel := selection.NewManager(nil)
	m := NewManager(func() *song.Song { return s }, hist, sel, false)
	return m, s, sel, hist
}

func addNote(s *song.Song, tick, length int, note uint8) *song.Event {
	on, off := song.NewNotePair(tick, length, note, 100, 0, 1)
	s.Track(1).Insert(on)
	s.Track(1).Insert(off)
	return on
}

func TestCopyPasteRoundTrip(t *testing.T) {
	m, s, sel, _ := testClipboard()
	on := addNote(s, 480, 240, 64)
	sel.Add(on, false)

	require.NoError(t, m.Copy())
	require.NoError(t, m.Paste(0, -1, -1))

	notes := s.Notes()
	require.Len(t, notes, 2)
	clone := notes[1]
	assert.NotSame(t, on, clone)
	assert.Equal(t, 480, clone.Tick)
	assert.Equal(t, 240, clone.Duration())
	assert.Equal(t, uint8(64), clone.Note)
	assert.Equal(t, uint8(100), clone.Velocity)
	assert.True(t, sel.Contains(clone), "pasted events become the selection")
	assert.False(t, sel.Contains(on))
}

func TestPasteWithOffsetAndRemap(t *testing.T) {
	m, s, sel, _ := testClipboard()
	on := addNote(s, 0, 240, 60)
	sel.Add(on, false)
	s.AddTrack("track 2", 3)

	require.NoError(t, m.Copy())
	require.NoError(t, m.Paste(960, 2, 3))

	require.Equal(t, 2, s.Track(2).Len())
	clone := s.Track(2).Events()[0]
	assert.Equal(t, 960, clone.Tick)
	assert.Equal(t, uint8(3), clone.Channel)
	assert.Equal(t, 2, clone.Track)
}

func TestPasteIsUndoable(t *testing.T) {
	m, s, sel, hist := testClipboard()
	on := addNote(s, 0, 240, 60)
	sel.Add(on, false)

	require.NoError(t, m.Copy())
	require.NoError(t, m.Paste(0, -1, -1))
	require.Len(t, s.Notes(), 2)

	require.True(t, hist.Undo())
	assert.Len(t, s.Notes(), 1)
}

func TestCopyTempoEvent(t *testing.T) {
	m, s, sel, _ := testClipboard()
	tempo := &song.Event{Kind: song.KindTempo, Tick: 960, BPM: 97.5}
	s.MetaTrack().Insert(tempo)
	sel.Add(tempo, false)

	require.NoError(t, m.Copy())
	require.NoError(t, m.Paste(0, -1, -1))

	require.Equal(t, 2, s.MetaTrack().Len())
	clone := s.MetaTrack().Events()[1]
	assert.Equal(t, song.KindTempo, clone.Kind)
	assert.Equal(t, 97.5, clone.BPM)
}

func TestEmptySelectionCopyIsNoOp(t *testing.T) {
	m, s, _, hist := testClipboard()

	require.NoError(t, m.Copy())
	require.NoError(t, m.Paste(0, -1, -1))
	assert.Empty(t, s.Notes())
	assert.Zero(t, hist.StepsBack())
}

func TestForeignClipboardContentIgnored(t *testing.T) {
	m, s, _, _ := testClipboard()
	m.local = "just some text"

	require.NoError(t, m.Paste(0, -1, -1))
	assert.Empty(t, s.Notes())
}

func TestSelectingBothHalvesCopiesOnce(t *testing.T) {
	m, s, sel, _ := testClipboard()
	on := addNote(s, 0, 240, 60)
	sel.Add(on, false)
	sel.Add(on.Partner, false)

	require.NoError(t, m.Copy())
	require.NoError(t, m.Paste(0, -1, -1))
	assert.Len(t, s.Notes(), 2, "the pair pastes as one note")
}
