package control

// Action is a host-independent player command. Hosts map their keys onto these.
type Action uint8

const (
	ActionNone Action = iota

	ActionSelectPrevious // A
	ActionSelectNext     // D
	ActionUp             // W, discrete press
	ActionDown           // S, discrete press
	ActionActivate       // Space
	ActionReset          // R
	ActionToggleContinuous
	ActionInteract // E
	ActionLeave    // Backspace, back to walking
)

var actionNames = map[Action]string{
	ActionNone:             "none",
	ActionSelectPrevious:   "select_previous",
	ActionSelectNext:       "select_next",
	ActionUp:               "up",
	ActionDown:             "down",
	ActionActivate:         "activate",
	ActionReset:            "reset",
	ActionToggleContinuous: "toggle_continuous",
	ActionInteract:         "interact",
	ActionLeave:            "leave",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// KeyAction maps the shared key letters to actions. Hosts resolve special keys
// (space, backspace) to the matching rune first.
func KeyAction(r rune) Action {
	switch r {
	case 'a', 'A':
		return ActionSelectPrevious
	case 'd', 'D':
		return ActionSelectNext
	case 'w', 'W':
		return ActionUp
	case 's', 'S':
		return ActionDown
	case ' ':
		return ActionActivate
	case 'r', 'R':
		return ActionReset
	case 'c', 'C':
		return ActionToggleContinuous
	case 'e', 'E':
		return ActionInteract
	case '\b':
		return ActionLeave
	}
	return ActionNone
}
