// internal/app/mouse.go
package app

import (
	"github.com/gdamore/tcell/v2"
)

// handleMouseEvent translates tcell mouse state transitions into the
// press/move/release protocol of the active tool. tcell reports button
// state, not transitions, so the previous mask is diffed here.
func (a *App) handleMouseEvent(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()
	prev := a.prevButtons
	a.prevButtons = buttons &^ tcell.WheelUp &^ tcell.WheelDown &^ tcell.WheelLeft &^ tcell.WheelRight

	// Wheel scrolls the viewport regardless of tool state.
	if buttons&tcell.WheelUp != 0 {
		a.editor.Matrix().Scroll(0, 2)
		return true
	}
	if buttons&tcell.WheelDown != 0 {
		a.editor.Matrix().Scroll(0, -2)
		return true
	}
	if buttons&tcell.WheelLeft != 0 {
		a.editor.Matrix().Scroll(-2, 0)
		return true
	}
	if buttons&tcell.WheelRight != 0 {
		a.editor.Matrix().Scroll(2, 0)
		return true
	}

	tool := a.editor.ActiveTool()

	primaryDown := buttons&tcell.Button1 != 0 && prev&tcell.Button1 == 0
	secondaryDown := buttons&tcell.Button2 != 0 && prev&tcell.Button2 == 0
	anyHeld := buttons&(tcell.Button1|tcell.Button2) != 0
	released := !anyHeld && prev&(tcell.Button1|tcell.Button2) != 0

	switch {
	case primaryDown:
		a.toolPressed = true
		return tool.Press(true, x, y)
	case secondaryDown:
		a.toolPressed = true
		return tool.Press(false, x, y)
	case anyHeld:
		return tool.Move(x, y)
	case released:
		if a.toolPressed {
			a.toolPressed = false
			return tool.Release()
		}
		return tool.ReleaseOnly()
	}
	return false
}
