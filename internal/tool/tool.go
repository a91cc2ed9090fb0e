// Package tool implements the pointer-interaction state machines of the
// editor. Every tool turns press/move/release sequences into document
// mutations bracketed by history actions, and reads/writes the shared
// selection. Tools never compute pixel geometry: they ask the injected
// Matrix.
package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/config"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/matrix"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/selection"
	"github.com/Meowchestra/MidiEditor-sub001/internal/event"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// Matrix is the slice of the coordinate mapper the tools dispatch on.
type Matrix interface {
	XToTick(x int) int
	TickToX(tick int) int
	YToLine(y int) int
	LineToY(line int) int
	VisibleWindow() (int, int)
	HitTest(x, y int) matrix.Hit
	NoteRect(on *song.Event) (x1, y, x2 int, ok bool)
	InRoll(x, y int) bool
}

// Painter draws tool previews on top of the rendered roll.
type Painter interface {
	Frame(x1, y1, x2, y2 int)
	Mark(x, y int, r rune)
}

// Clipboard is the slice of the clipboard manager the tools need.
type Clipboard interface {
	Copy() error
	Paste(offsetTicks int, trackRemap int, channelRemap int) error
}

// Env bundles the per-document collaborators every tool is constructed over.
// One Env is shared by all tools of a session; the editor updates Song when
// the open document is replaced.
type Env struct {
	Song      *song.Song
	History   *history.Manager
	Selection *selection.Manager
	Matrix    Matrix
	Events    *event.Manager
	Config    *config.EditorConfig
	Clipboard Clipboard
}

// Tool is the pointer-interaction contract. The boolean results report
// whether a repaint is needed. A tool's configuration fields are undoable
// through Snapshot; gesture transients reset to idle on restore.
type Tool interface {
	history.Snapshotable
	Name() string
	Press(primary bool, x, y int) bool
	Move(x, y int) bool
	Release() bool
	ReleaseOnly() bool
	PressKey(r rune) bool
	Draw(p Painter)
}

// base carries the gesture bookkeeping every tool shares: the Idle→Dragging
// state flag and the anchor/last coordinates.
type base struct {
	env  *Env
	name string

	pressed          bool
	anchorX, anchorY int
	lastX, lastY     int
}

func newBase(env *Env, name string) base {
	return base{env: env, name: name}
}

func (b *base) Name() string { return b.name }

// begin records the gesture anchor and enters the Dragging state.
func (b *base) begin(x, y int) {
	b.pressed = true
	b.anchorX, b.anchorY = x, y
	b.lastX, b.lastY = x, y
}

// reset returns the tool to Idle. Called on release and on snapshot restore.
func (b *base) reset() {
	b.pressed = false
}

// Default state machine: click-only tools complete work on Press and keep
// these no-ops.
func (b *base) Press(primary bool, x, y int) bool { return false }

func (b *base) Move(x, y int) bool {
	if !b.pressed {
		return false
	}
	b.lastX, b.lastY = x, y
	return false
}

func (b *base) Release() bool {
	b.reset()
	return false
}

// ReleaseOnly handles a release without a matching press, e.g. when the
// pointer left the roll mid-drag.
func (b *base) ReleaseOnly() bool {
	if !b.pressed {
		return false
	}
	return b.Release()
}

func (b *base) PressKey(r rune) bool { return false }

func (b *base) Draw(p Painter) {}

// Snapshot for tools without configuration: restoring only resets transients.
func (b *base) Snapshot() history.Snapshot {
	return &baseSnapshot{b}
}

type baseSnapshot struct{ b *base }

func (s *baseSnapshot) Restore() { s.b.reset() }
