package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // A, Left arrow - shift piece left
	ActionRight             // D, Right arrow - shift piece right
	ActionDown              // S, Down arrow - soft drop one row
	ActionRotate            // W, Up arrow - rotate clockwise
	ActionDrop              // Space - hard drop
	ActionCycle             // C - cycle rainbow shape
	ActionBuyRainbow        // 1 - purchase a rainbow block
	ActionBuyAI             // 2 - purchase an AI custom block
	ActionUseRainbow        // 3 - turn the current piece into a rainbow piece
	ActionUseAI             // 4 - replace the current piece with an AI custom piece
	ActionFormat            // G - toggle grid format while game over
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R key - restart game after game over
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionRotate:
		return "Rotate"
	case ActionDrop:
		return "Drop"
	case ActionCycle:
		return "Cycle"
	case ActionBuyRainbow:
		return "BuyRainbow"
	case ActionBuyAI:
		return "BuyAI"
	case ActionUseRainbow:
		return "UseRainbow"
	case ActionUseAI:
		return "UseAI"
	case ActionFormat:
		return "Format"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
