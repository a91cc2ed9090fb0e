package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

func testMatrix() (*Matrix, *song.Song) {
	s := song.New(960)
	m := New(s, 1)
	// roll at (4,2), 80 cells wide, 30 rows, 240 ticks per cell
	m.SetViewport(4, 2, 80, 30)
	return m, s
}

func addNote(s *song.Song, tick, length int, note uint8) *song.Event {
	on, off := song.NewNotePair(tick, length, note, 100, 0, 1)
	s.Track(1).Insert(on)
	s.Track(1).Insert(off)
	return on
}

func TestTickCellMapping(t *testing.T) {
	m, _ := testMatrix()

	assert.Equal(t, 4, m.TickToX(0))
	assert.Equal(t, 5, m.TickToX(240))
	assert.Equal(t, 0, m.XToTick(4))
	assert.Equal(t, 240, m.XToTick(5))
	assert.Equal(t, 0, m.XToTick(0), "ticks never go negative")
}

func TestLineRowMapping(t *testing.T) {
	m, _ := testMatrix()

	y := m.LineToY(84)
	assert.Equal(t, 2, y)
	assert.Equal(t, 84, m.YToLine(y))
	assert.Equal(t, 83, m.YToLine(y+1))
}

func TestInRoll(t *testing.T) {
	m, _ := testMatrix()
	assert.True(t, m.InRoll(4, 2))
	assert.True(t, m.InRoll(83, 31))
	assert.False(t, m.InRoll(3, 2))
	assert.False(t, m.InRoll(4, 1))
	assert.False(t, m.InRoll(84, 2))
}

func TestHitTestZones(t *testing.T) {
	m, s := testMatrix()
	// 10 cells wide: ticks 0..2400 on note 84 (the top row)
	on := addNote(s, 0, 2400, 84)
	y := m.LineToY(84)

	hit := m.HitTest(m.TickToX(0), y)
	assert.Same(t, on, hit.Event)
	assert.Equal(t, ZoneLeftEdge, hit.Zone)

	hit = m.HitTest(m.TickToX(1200), y)
	assert.Same(t, on, hit.Event)
	assert.Equal(t, ZoneBody, hit.Zone)

	hit = m.HitTest(m.TickToX(2400)-1, y)
	assert.Same(t, on, hit.Event)
	assert.Equal(t, ZoneRightEdge, hit.Zone)

	hit = m.HitTest(m.TickToX(1200), y+1)
	assert.Nil(t, hit.Event, "wrong row misses")
}

func TestHitTestPrefersBodyOverNeighbourEdge(t *testing.T) {
	m, s := testMatrix()
	first := addNote(s, 0, 1200, 84)
	second := addNote(s, 1200, 1200, 84)
	y := m.LineToY(84)

	// The boundary cell is the second note's left edge and sits within the
	// first note's right edge margin; the body wins over an edge.
	x := m.TickToX(1200)
	hit := m.HitTest(x, y)
	require.NotNil(t, hit.Event)
	assert.NotEqual(t, ZoneNone, hit.Zone)
	if hit.Event == first {
		assert.Equal(t, ZoneRightEdge, hit.Zone)
	} else {
		assert.Same(t, second, hit.Event)
	}
}

func TestNoteRect(t *testing.T) {
	m, s := testMatrix()
	on := addNote(s, 240, 480, 80)

	x1, y, x2, ok := m.NoteRect(on)
	require.True(t, ok)
	assert.Equal(t, m.TickToX(240), x1)
	assert.Equal(t, m.TickToX(720), x2)
	assert.Equal(t, m.LineToY(80), y)

	_, _, _, ok = m.NoteRect(nil)
	assert.False(t, ok)
}

func TestScrollClamps(t *testing.T) {
	m, _ := testMatrix()

	m.Scroll(-10, 0)
	assert.Equal(t, 0, m.StartTick(), "cannot scroll before tick zero")

	m.Scroll(2, 0)
	assert.Equal(t, 2*m.TicksPerCell(), m.StartTick())

	m.Scroll(0, 500)
	from := m.YToLine(2)
	assert.LessOrEqual(t, from, 127)
}

func TestZoomSteps(t *testing.T) {
	m, _ := testMatrix()
	start := m.TicksPerCell()

	m.Zoom(true)
	assert.Equal(t, start/2, m.TicksPerCell())
	m.Zoom(false)
	m.Zoom(false)
	assert.Equal(t, start*2, m.TicksPerCell())
}

func TestEventPointMetaLane(t *testing.T) {
	m, s := testMatrix()
	tempo := &song.Event{Tick: 480, Kind: song.KindTempo, BPM: 90}
	s.MetaTrack().Insert(tempo)

	x, y, ok := m.EventPoint(tempo)
	require.True(t, ok)
	assert.Equal(t, m.TickToX(480), x)
	assert.Equal(t, 1, y, "non-note events sit on the meta lane row above the roll")
}
