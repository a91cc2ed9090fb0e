// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- Selection Navigation ---
	ActionNavigateUp
	ActionNavigateDown
	ActionNavigateLeft
	ActionNavigateRight
	ActionSelectAll
	ActionSelectNone
	ActionCycleSelectMode

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Editing ---
	ActionDelete
	ActionCopy
	ActionCut
	ActionPaste
	ActionTransposeUp
	ActionTransposeDown
	ActionTransposeOctaveUp
	ActionTransposeOctaveDown
	ActionVelocityUp
	ActionVelocityDown
	ActionQuantize
	ActionToggleMagnet

	// --- Tool Switching ---
	ActionToolStandard
	ActionToolSelect
	ActionToolNewNote
	ActionToolEraser
	ActionToolScissors
	ActionToolOverlaps
	ActionToolStrummer
	ActionToolTempo
	ActionToolTimeSignature
	ActionToolMeasure
	ActionApplyTool // Run the active batch tool (strummer, overlaps)

	// --- Viewport ---
	ActionScrollLeft
	ActionScrollRight
	ActionScrollUp
	ActionScrollDown
	ActionZoomIn
	ActionZoomOut

	// --- Tool Key Input ---
	ActionToolRune // Forward the rune to the active tool
)

// ActionEvent represents a decoded input event resulting in an action.
// It might carry payload data needed for the action (like the rune to
// forward to the active tool).
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionToolRune
}
