// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action        // For special keys (Enter, Arrows, etc.)
type RuneKeymap map[rune]Action         // For plain rune bindings (tool switching)
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with modifiers (Ctrl, Alt, Shift)

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

// loadDefaultBindings sets up the initial key mappings.
// TODO: Load from config later.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionNavigateUp
	p.keymap[tcell.KeyDown] = ActionNavigateDown
	p.keymap[tcell.KeyLeft] = ActionNavigateLeft
	p.keymap[tcell.KeyRight] = ActionNavigateRight
	p.keymap[tcell.KeyDelete] = ActionDelete
	p.keymap[tcell.KeyBackspace] = ActionDelete
	p.keymap[tcell.KeyBackspace2] = ActionDelete
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyPgUp] = ActionScrollUp
	p.keymap[tcell.KeyPgDn] = ActionScrollDown
	p.keymap[tcell.KeyHome] = ActionScrollLeft
	p.keymap[tcell.KeyEnd] = ActionScrollRight

	// --- Ctrl Keys ---
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlC] = ActionCopy
	ctrlMap[tcell.KeyCtrlX] = ActionCut
	ctrlMap[tcell.KeyCtrlV] = ActionPaste
	ctrlMap[tcell.KeyCtrlA] = ActionSelectAll
	ctrlMap[tcell.KeyCtrlD] = ActionSelectNone
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// --- Shift + Arrows: transpose / velocity ---
	shiftMap := make(Keymap)
	shiftMap[tcell.KeyUp] = ActionTransposeUp
	shiftMap[tcell.KeyDown] = ActionTransposeDown
	shiftMap[tcell.KeyLeft] = ActionVelocityDown
	shiftMap[tcell.KeyRight] = ActionVelocityUp
	p.modKeymap[tcell.ModShift] = shiftMap

	// --- Alt + Arrows: octave transpose ---
	altMap := make(Keymap)
	altMap[tcell.KeyUp] = ActionTransposeOctaveUp
	altMap[tcell.KeyDown] = ActionTransposeOctaveDown
	p.modKeymap[tcell.ModAlt] = altMap

	// --- Rune Mappings: tool switching and batch commands ---
	p.runeKeymap['1'] = ActionToolStandard
	p.runeKeymap['2'] = ActionToolSelect
	p.runeKeymap['3'] = ActionToolNewNote
	p.runeKeymap['4'] = ActionToolEraser
	p.runeKeymap['5'] = ActionToolScissors
	p.runeKeymap['6'] = ActionToolOverlaps
	p.runeKeymap['7'] = ActionToolStrummer
	p.runeKeymap['8'] = ActionToolTempo
	p.runeKeymap['9'] = ActionToolTimeSignature
	p.runeKeymap['0'] = ActionToolMeasure
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['r'] = ActionRedo
	p.runeKeymap['q'] = ActionQuantize
	p.runeKeymap['m'] = ActionToggleMagnet
	p.runeKeymap['s'] = ActionCycleSelectMode
	p.runeKeymap[' '] = ActionApplyTool
	p.runeKeymap['h'] = ActionScrollLeft
	p.runeKeymap['l'] = ActionScrollRight
	p.runeKeymap['k'] = ActionScrollUp
	p.runeKeymap['j'] = ActionScrollDown
	p.runeKeymap['z'] = ActionZoomIn
	p.runeKeymap['Z'] = ActionZoomOut
}

// ProcessEvent takes a tcell key event and returns the corresponding
// ActionEvent. Runes with no binding are forwarded to the active tool.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// 1. Check Modifier + Key combinations
	if modKeyMap, modOk := p.modKeymap[mod]; modOk {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action}
		}
	}
	// Remove Ctrl modifier if the Key already implies it, so KeyCtrlS does
	// not also match the plain keymap as 's'
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	// 2. Check simple Key mappings
	if mod == tcell.ModNone {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 3. Check Rune mappings
	if key == tcell.KeyRune && mod == tcell.ModNone {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		// Unbound rune: offer it to the active tool (tempo +/-, etc.)
		return ActionEvent{Action: ActionToolRune, Rune: runeVal}
	}

	// 4. No mapping found
	return ActionEvent{Action: ActionUnknown}
}
