// Package matrix maps between document coordinates (ticks, note lines) and
// screen cells, and answers the hit-testing queries the tools dispatch on.
// The tools never compute geometry themselves; they ask this mapper.
package matrix

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// Zone classifies where inside a note a point landed.
type Zone int

const (
	ZoneNone      Zone = iota
	ZoneBody           // inside the note rectangle
	ZoneLeftEdge       // within the edge margin of the note start
	ZoneRightEdge      // within the edge margin of the note end
)

// Hit is the result of a hit test: the event under the point, if any, and
// which zone of it was hit.
type Hit struct {
	Event *song.Event
	Zone  Zone
}

// Matrix owns the viewport of the piano roll: which tick range and which
// note lines are visible, and how they map onto a cell grid.
type Matrix struct {
	song *song.Song

	offsetX, offsetY int // top-left cell of the roll area
	width, height    int // roll area size in cells

	startTick    int // leftmost visible tick
	ticksPerCell int // horizontal zoom
	topLine      int // MIDI note number shown on the top row

	edgeMargin int // cells around a note edge that count as a resize zone
}

// New creates a matrix over the given song.
func New(s *song.Song, edgeMargin int) *Matrix {
	return &Matrix{
		song:         s,
		ticksPerCell: s.TicksPerQuarter / 4,
		topLine:      84, // C6 at the top shows the middle octaves by default
		edgeMargin:   edgeMargin,
	}
}

// SetSong swaps the document, e.g. after a file load.
func (m *Matrix) SetSong(s *song.Song) {
	m.song = s
	m.startTick = 0
}

// SetViewport places the roll area on screen.
func (m *Matrix) SetViewport(offsetX, offsetY, width, height int) {
	m.offsetX, m.offsetY = offsetX, offsetY
	m.width, m.height = width, height
}

// TickToX maps a tick to a cell column. Columns left of the viewport are
// negative; callers clip.
func (m *Matrix) TickToX(tick int) int {
	if m.ticksPerCell <= 0 {
		return m.offsetX
	}
	return m.offsetX + (tick-m.startTick)/m.ticksPerCell
}

// XToTick maps a cell column to the tick at its left boundary.
func (m *Matrix) XToTick(x int) int {
	tick := m.startTick + (x-m.offsetX)*m.ticksPerCell
	if tick < 0 {
		tick = 0
	}
	return tick
}

// LineToY maps a MIDI note line to a cell row.
func (m *Matrix) LineToY(line int) int {
	return m.offsetY + (m.topLine - line)
}

// YToLine maps a cell row to a MIDI note line.
func (m *Matrix) YToLine(y int) int {
	return m.topLine - (y - m.offsetY)
}

// InRoll reports whether a screen point lies inside the roll area.
func (m *Matrix) InRoll(x, y int) bool {
	return x >= m.offsetX && x < m.offsetX+m.width &&
		y >= m.offsetY && y < m.offsetY+m.height
}

// VisibleWindow returns the [fromTick, toTick) range on screen.
func (m *Matrix) VisibleWindow() (int, int) {
	return m.startTick, m.startTick + m.width*m.ticksPerCell
}

// VisibleLines returns the [bottom, top] note line range on screen.
func (m *Matrix) VisibleLines() (int, int) {
	bottom := m.topLine - m.height + 1
	if bottom < 0 {
		bottom = 0
	}
	top := m.topLine
	if top > 127 {
		top = 127
	}
	return bottom, top
}

// EventPoint returns the display cell of an event. Notes anchor at their
// start; ok is false off screen.
func (m *Matrix) EventPoint(ev *song.Event) (int, int, bool) {
	e := ev
	if on := ev.On(); on != nil {
		e = on
	}
	x := m.TickToX(e.Tick)
	var y int
	if e.On() != nil {
		y = m.LineToY(int(e.Note))
	} else {
		// non-note events sit on the row above the roll (the meta lane)
		y = m.offsetY - 1
	}
	if x < m.offsetX-1 || x > m.offsetX+m.width {
		return 0, 0, false
	}
	return x, y, true
}

// HitTest returns the note under a screen point and which zone of it was
// hit. The edge zones extend edgeMargin cells around the note boundaries.
func (m *Matrix) HitTest(x, y int) Hit {
	if m.song == nil || !m.InRoll(x, y) {
		return Hit{}
	}
	line := m.YToLine(y)
	if line < 0 || line > 127 {
		return Hit{}
	}

	var best Hit
	for _, on := range m.song.Notes() {
		if int(on.Note) != line || on.Partner == nil {
			continue
		}
		x1 := m.TickToX(on.Tick)
		x2 := m.TickToX(on.Partner.Tick)
		if x2 <= x1 {
			x2 = x1 + 1
		}
		if x < x1-m.edgeMargin || x >= x2+m.edgeMargin {
			continue
		}
		zone := ZoneBody
		switch {
		case x <= x1+m.edgeMargin-1 || x < x1:
			zone = ZoneLeftEdge
		case x >= x2-m.edgeMargin:
			zone = ZoneRightEdge
		}
		// Prefer body hits over edge hits of a neighbouring note.
		if best.Event == nil || (best.Zone != ZoneBody && zone == ZoneBody) {
			best = Hit{Event: on, Zone: zone}
		}
	}
	return best
}

// NoteRect returns the screen rectangle of a note pair (x1..x2 exclusive on
// the note's row). Used for box-select intersection.
func (m *Matrix) NoteRect(on *song.Event) (x1, y, x2 int, ok bool) {
	if on == nil || on.Partner == nil {
		return 0, 0, 0, false
	}
	x1 = m.TickToX(on.Tick)
	x2 = m.TickToX(on.Partner.Tick)
	if x2 <= x1 {
		x2 = x1 + 1
	}
	return x1, m.LineToY(int(on.Note)), x2, true
}

// Scroll shifts the viewport by cells (horizontal) and lines (vertical).
func (m *Matrix) Scroll(dxCells, dLines int) {
	m.startTick += dxCells * m.ticksPerCell
	if m.startTick < 0 {
		m.startTick = 0
	}
	m.topLine += dLines
	if m.topLine > 127 {
		m.topLine = 127
	}
	if m.topLine < m.height {
		m.topLine = m.height
	}
}

// Zoom changes the horizontal scale by whole divisor steps of a quarter note.
func (m *Matrix) Zoom(in bool) {
	if in {
		if m.ticksPerCell > 1 {
			m.ticksPerCell /= 2
		}
	} else if m.ticksPerCell < m.song.TicksPerQuarter*4 {
		m.ticksPerCell *= 2
	}
}

// TicksPerCell exposes the current horizontal zoom.
func (m *Matrix) TicksPerCell() int { return m.ticksPerCell }

// StartTick exposes the leftmost visible tick.
func (m *Matrix) StartTick() int { return m.startTick }
