// internal/app/actions.go
package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Meowchestra/MidiEditor-sub001/internal/input"
	"github.com/Meowchestra/MidiEditor-sub001/internal/logger"
	"github.com/Meowchestra/MidiEditor-sub001/internal/tool"
)

// handleKeyEvent decodes a key event and executes the resulting action.
// Returns true when a redraw is needed.
func (a *App) handleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := a.inputProcessor.ProcessEvent(ev)

	switch actionEvent.Action {
	case input.ActionQuit:
		if a.editor.Song().Modified() {
			a.statusBar.SetTemporaryMessage("Unsaved changes. Ctrl+S to save, Ctrl+Q to quit anyway.")
			return true
		}
		close(a.quit)
		return false

	case input.ActionForceQuit:
		close(a.quit)
		return false

	case input.ActionSave:
		if err := a.editor.SaveFile(""); err != nil {
			a.statusBar.SetTemporaryMessage("Save failed: %v", err)
		}
		return true

	case input.ActionUndo:
		if !a.editor.Undo() {
			a.statusBar.SetTemporaryMessage("Nothing to undo")
		}
		return true

	case input.ActionRedo:
		if !a.editor.Redo() {
			a.statusBar.SetTemporaryMessage("Nothing to redo")
		}
		return true

	case input.ActionNavigateUp:
		return a.editor.NavigateUp()
	case input.ActionNavigateDown:
		return a.editor.NavigateDown()
	case input.ActionNavigateLeft:
		return a.editor.NavigateLeft()
	case input.ActionNavigateRight:
		return a.editor.NavigateRight()

	case input.ActionSelectAll:
		a.editor.SelectAll()
		return true
	case input.ActionSelectNone:
		a.editor.SelectNone()
		return true
	case input.ActionCycleSelectMode:
		st := a.editor.SelectTool()
		next := (st.Mode() + 1) % 4
		st.SetMode(next)
		a.statusBar.SetTemporaryMessage("Select mode: %s", next)
		return true

	case input.ActionDelete:
		return a.editor.DeleteSelection()

	case input.ActionCopy:
		if err := a.editor.Copy(); err != nil {
			a.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		}
		return true
	case input.ActionCut:
		if err := a.editor.Cut(); err != nil {
			a.statusBar.SetTemporaryMessage("Cut failed: %v", err)
		}
		return true
	case input.ActionPaste:
		if err := a.editor.Paste(); err != nil {
			a.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		}
		return true

	case input.ActionTransposeUp:
		return a.editor.Transpose(1)
	case input.ActionTransposeDown:
		return a.editor.Transpose(-1)
	case input.ActionTransposeOctaveUp:
		return a.editor.Transpose(12)
	case input.ActionTransposeOctaveDown:
		return a.editor.Transpose(-12)
	case input.ActionVelocityUp:
		return a.editor.NudgeVelocity(5)
	case input.ActionVelocityDown:
		return a.editor.NudgeVelocity(-5)

	case input.ActionQuantize:
		return a.editor.QuantizeSelection()

	case input.ActionToggleMagnet:
		if a.editor.ToggleMagnet() {
			a.statusBar.SetTemporaryMessage("Grid snap on")
		} else {
			a.statusBar.SetTemporaryMessage("Grid snap off")
		}
		return true

	case input.ActionApplyTool:
		return a.applyBatchTool()

	case input.ActionScrollLeft:
		a.editor.Matrix().Scroll(-4, 0)
		return true
	case input.ActionScrollRight:
		a.editor.Matrix().Scroll(4, 0)
		return true
	case input.ActionScrollUp:
		a.editor.Matrix().Scroll(0, 4)
		return true
	case input.ActionScrollDown:
		a.editor.Matrix().Scroll(0, -4)
		return true
	case input.ActionZoomIn:
		a.editor.Matrix().Zoom(true)
		return true
	case input.ActionZoomOut:
		a.editor.Matrix().Zoom(false)
		return true

	case input.ActionToolRune:
		return a.editor.ActiveTool().PressKey(actionEvent.Rune)

	case input.ActionUnknown:
		return false
	}

	if name, ok := toolActionNames[actionEvent.Action]; ok {
		if err := a.editor.SetActiveTool(name); err != nil {
			logger.Warnf("App: %v", err)
			return false
		}
		return true
	}

	return false
}

// toolActionNames maps tool-switch actions onto registry names.
var toolActionNames = map[input.Action]string{
	input.ActionToolStandard:      "standard",
	input.ActionToolSelect:        "select",
	input.ActionToolNewNote:       "newnote",
	input.ActionToolEraser:        "eraser",
	input.ActionToolScissors:      "scissors",
	input.ActionToolOverlaps:      "overlaps",
	input.ActionToolStrummer:      "strummer",
	input.ActionToolTempo:         "tempo",
	input.ActionToolTimeSignature: "timesignature",
	input.ActionToolMeasure:       "measure",
}

// applyBatchTool runs the active tool's whole-selection operation, if it has
// one.
func (a *App) applyBatchTool() bool {
	switch t := a.editor.ActiveTool().(type) {
	case *tool.StrummerTool:
		n := t.Apply()
		a.statusBar.SetTemporaryMessage("Strummed %d notes", n)
		return true
	case *tool.DeleteOverlapsTool:
		n := t.Apply()
		a.statusBar.SetTemporaryMessage("Removed %d overlaps", n)
		return true
	}
	a.statusBar.SetTemporaryMessage("Active tool has no batch operation")
	return true
}
