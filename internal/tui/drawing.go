// internal/tui/drawing.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Meowchestra/MidiEditor-sub001/internal/config"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// Style palette for the roll. Kept as package variables so the app could
// swap them for a user palette later.
var (
	StyleDefault      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	StyleRuler        = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGray)
	StyleMetaLane     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	StyleKeyWhite     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StyleKeyBlack     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	StyleRowWhite     = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	StyleRowBlack     = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.Color16)
	StyleNote         = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	StyleNoteSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed)
	StylePreview      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var blackKey = [12]bool{false, true, false, true, false, false, true, false, true, false, true, false}

// RollViewport computes the roll area placement for a screen size. The app
// and the drawing code must agree on this layout, so it lives in one place.
func RollViewport(width, height int) (x, y, w, h int) {
	x = config.KeyColumnWidth
	y = config.RulerHeight + 1 // ruler row, then the meta lane row
	w = width - x
	h = height - y - config.StatusBarHeight
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return x, y, w, h
}

// NoteName formats a MIDI note number as e.g. "C4" (middle C = 60).
func NoteName(note int) string {
	return fmt.Sprintf("%s%d", noteNames[note%12], note/12-1)
}

// ScreenPainter lets the active tool draw previews on top of the roll.
type ScreenPainter struct {
	screen tcell.Screen
}

// NewScreenPainter wraps a screen for tool previews.
func NewScreenPainter(screen tcell.Screen) *ScreenPainter {
	return &ScreenPainter{screen: screen}
}

// Frame draws the outline of a rectangle.
func (p *ScreenPainter) Frame(x1, y1, x2, y2 int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for x := x1; x <= x2; x++ {
		p.screen.SetContent(x, y1, tcell.RuneHLine, nil, StylePreview)
		p.screen.SetContent(x, y2, tcell.RuneHLine, nil, StylePreview)
	}
	for y := y1; y <= y2; y++ {
		p.screen.SetContent(x1, y, tcell.RuneVLine, nil, StylePreview)
		p.screen.SetContent(x2, y, tcell.RuneVLine, nil, StylePreview)
	}
	p.screen.SetContent(x1, y1, tcell.RuneULCorner, nil, StylePreview)
	p.screen.SetContent(x2, y1, tcell.RuneURCorner, nil, StylePreview)
	p.screen.SetContent(x1, y2, tcell.RuneLLCorner, nil, StylePreview)
	p.screen.SetContent(x2, y2, tcell.RuneLRCorner, nil, StylePreview)
}

// Mark puts a single preview rune on a cell.
func (p *ScreenPainter) Mark(x, y int, r rune) {
	p.screen.SetContent(x, y, r, nil, StylePreview)
}

// DrawRoll renders the ruler, the meta lane, the key column and the note
// grid for the current viewport.
func DrawRoll(t *TUI, ed *core.Editor) {
	width, height := t.Size()
	rollX, rollY, rollW, rollH := RollViewport(width, height)
	if rollW <= 0 || rollH <= 0 {
		return
	}

	screen := t.screen
	mat := ed.Matrix()
	s := ed.Song()
	sel := ed.Selection()

	drawRuler(screen, ed, width, rollX)
	drawMetaLane(screen, ed, width, rollX, rollY-1)

	// --- Key column and row background ---
	for row := 0; row < rollH; row++ {
		y := rollY + row
		line := mat.YToLine(y)
		if line < 0 || line > 127 {
			for x := 0; x < width; x++ {
				screen.SetContent(x, y, ' ', nil, StyleDefault)
			}
			continue
		}

		keyStyle := StyleKeyWhite
		rowStyle := StyleRowWhite
		if blackKey[line%12] {
			keyStyle = StyleKeyBlack
			rowStyle = StyleRowBlack
		}
		label := ""
		if line%12 == 0 {
			label = NoteName(line)
		}
		for x := 0; x < rollX; x++ {
			r := ' '
			if x < len(label) {
				r = rune(label[x])
			}
			screen.SetContent(x, y, r, nil, keyStyle)
		}

		// Row fill with beat and measure guides.
		for x := rollX; x < rollX+rollW; x++ {
			tick := mat.XToTick(x)
			r := ' '
			if start, _ := s.MeasureBounds(tick); start == tick {
				r = '|'
			} else if tick%s.TicksPerQuarter == 0 {
				r = '·'
			}
			screen.SetContent(x, y, r, nil, rowStyle)
		}
	}

	// --- Notes ---
	for _, on := range s.Notes() {
		x1, y, x2, ok := mat.NoteRect(on)
		if !ok || y < rollY || y >= rollY+rollH {
			continue
		}
		if x2 <= rollX || x1 >= rollX+rollW {
			continue
		}
		style := StyleNote
		if sel.Contains(on) || sel.Contains(on.Partner) {
			style = StyleNoteSelected
		}
		for x := max(x1, rollX); x < min(x2, rollX+rollW); x++ {
			r := '█'
			if x == x1 {
				r = '▐'
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}

	// --- Tool preview on top ---
	ed.ActiveTool().Draw(NewScreenPainter(screen))
}

// drawRuler renders measure numbers across the top row.
func drawRuler(screen tcell.Screen, ed *core.Editor, width, rollX int) {
	mat := ed.Matrix()
	s := ed.Song()
	for x := 0; x < width; x++ {
		screen.SetContent(x, 0, ' ', nil, StyleRuler)
	}

	from, to := mat.VisibleWindow()
	// Walk measure starts from zero so numbering stays absolute.
	measure := 1
	tick := 0
	for tick < to {
		start, end := s.MeasureBounds(tick)
		if start >= from {
			label := fmt.Sprintf("%d", measure)
			x := mat.TickToX(start)
			for i, r := range label {
				if x+i >= rollX && x+i < width {
					screen.SetContent(x+i, 0, r, nil, StyleRuler)
				}
			}
		}
		measure++
		tick = end
	}
}

// drawMetaLane renders the tempo and time-signature markers above the roll.
func drawMetaLane(screen tcell.Screen, ed *core.Editor, width, rollX, y int) {
	mat := ed.Matrix()
	sel := ed.Selection()
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, StyleMetaLane)
	}

	for _, ev := range ed.Song().MetaTrack().Events() {
		x := mat.TickToX(ev.Tick)
		if x < rollX || x >= width {
			continue
		}
		style := StyleMetaLane
		if sel.Contains(ev) {
			style = StyleNoteSelected
		}
		var label string
		switch ev.Kind {
		case song.KindTempo:
			label = fmt.Sprintf("♩%d", int(ev.BPM))
		case song.KindTimeSignature:
			label = fmt.Sprintf("%d/%d", ev.Numerator, ev.Denominator)
		case song.KindKeySignature:
			mode := "maj"
			if !ev.KeyMajor {
				mode = "min"
			}
			label = noteNames[ev.Key%12] + mode
		case song.KindText:
			label = ev.Text
		default:
			label = "◆"
		}
		for i, r := range label {
			if x+i < width {
				screen.SetContent(x+i, y, r, nil, style)
			}
		}
	}
}
