package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func process(p *InputProcessor, key tcell.Key, r rune, mod tcell.ModMask) ActionEvent {
	return p.ProcessEvent(tcell.NewEventKey(key, r, mod))
}

func TestPlainKeyBindings(t *testing.T) {
	p := NewInputProcessor()

	assert.Equal(t, ActionNavigateUp, process(p, tcell.KeyUp, 0, tcell.ModNone).Action)
	assert.Equal(t, ActionDelete, process(p, tcell.KeyDelete, 0, tcell.ModNone).Action)
	assert.Equal(t, ActionDelete, process(p, tcell.KeyBackspace2, 0, tcell.ModNone).Action)
	assert.Equal(t, ActionQuit, process(p, tcell.KeyEscape, 0, tcell.ModNone).Action)
	assert.Equal(t, ActionScrollRight, process(p, tcell.KeyEnd, 0, tcell.ModNone).Action)
}

func TestCtrlBindings(t *testing.T) {
	p := NewInputProcessor()

	assert.Equal(t, ActionSave, process(p, tcell.KeyCtrlS, 0, tcell.ModCtrl).Action)
	assert.Equal(t, ActionUndo, process(p, tcell.KeyCtrlZ, 0, tcell.ModCtrl).Action)
	assert.Equal(t, ActionForceQuit, process(p, tcell.KeyCtrlQ, 0, tcell.ModCtrl).Action)
	assert.Equal(t, ActionPaste, process(p, tcell.KeyCtrlV, 0, tcell.ModCtrl).Action)
}

func TestUnboundCtrlKeyDoesNotLeakToRunes(t *testing.T) {
	p := NewInputProcessor()

	// Ctrl+T has no binding and must not fall through to the 't' rune
	got := process(p, tcell.KeyCtrlT, 0, tcell.ModCtrl)
	assert.Equal(t, ActionUnknown, got.Action)
}

func TestModifiedArrows(t *testing.T) {
	p := NewInputProcessor()

	assert.Equal(t, ActionTransposeUp, process(p, tcell.KeyUp, 0, tcell.ModShift).Action)
	assert.Equal(t, ActionVelocityUp, process(p, tcell.KeyRight, 0, tcell.ModShift).Action)
	assert.Equal(t, ActionTransposeOctaveDown, process(p, tcell.KeyDown, 0, tcell.ModAlt).Action)
}

func TestRuneBindings(t *testing.T) {
	p := NewInputProcessor()

	assert.Equal(t, ActionToolStandard, process(p, tcell.KeyRune, '1', tcell.ModNone).Action)
	assert.Equal(t, ActionToolMeasure, process(p, tcell.KeyRune, '0', tcell.ModNone).Action)
	assert.Equal(t, ActionUndo, process(p, tcell.KeyRune, 'u', tcell.ModNone).Action)
	assert.Equal(t, ActionZoomIn, process(p, tcell.KeyRune, 'z', tcell.ModNone).Action)
	assert.Equal(t, ActionZoomOut, process(p, tcell.KeyRune, 'Z', tcell.ModNone).Action)
	assert.Equal(t, ActionApplyTool, process(p, tcell.KeyRune, ' ', tcell.ModNone).Action)
}

func TestUnboundRuneGoesToTheTool(t *testing.T) {
	p := NewInputProcessor()

	got := process(p, tcell.KeyRune, '+', tcell.ModNone)
	assert.Equal(t, ActionToolRune, got.Action)
	assert.Equal(t, '+', got.Rune)
}
