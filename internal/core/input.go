package core

// Action represents a semantic game action, abstracted from physical key
// presses. Games work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionAnswer1        // 1 - pick the first answer choice
	ActionAnswer2        // 2 - pick the second answer choice
	ActionAnswer3        // 3 - pick the third answer choice
	ActionAnswer4        // 4 - pick the fourth answer choice
	ActionStart          // Enter - start a session from the menu
	ActionRestart        // R - restart after a finished session
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAnswer1:
		return "Answer1"
	case ActionAnswer2:
		return "Answer2"
	case ActionAnswer3:
		return "Answer3"
	case ActionAnswer4:
		return "Answer4"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// AnswerIndex returns the zero-based answer choice index for answer
// actions, or -1 for any other action.
func (a Action) AnswerIndex() int {
	if a >= ActionAnswer1 && a <= ActionAnswer4 {
		return int(a - ActionAnswer1)
	}
	return -1
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
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

// AnswerIndex returns the zero-based choice index of the first answer
// action in this frame, or -1 if none was triggered.
func (f InputFrame) AnswerIndex() int {
	for a := ActionAnswer1; a <= ActionAnswer4; a++ {
		if f.Has(a) {
			return a.AnswerIndex()
		}
	}
	return -1
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
