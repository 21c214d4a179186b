package app

// Event is a discrete player input polled once per frame.
type Event int

const (
	NoEvent Event = iota
	// Confirm accepts a proposed mode in the menu and starts a round in game.
	Confirm
	Rematch
	ToMenu
	Quit
)

func (e Event) String() string {
	switch e {
	case Confirm:
		return "confirm"
	case Rematch:
		return "rematch"
	case ToMenu:
		return "menu"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// Key codes as returned by the display's key poll.
const (
	KeySpace   = 32
	KeyRematch = 'r'
	KeyMenu    = 'm'
	KeyQuit    = 'q'
)

// EventForKey maps a polled key code to an event. Negative codes mean no
// key was pressed; only the low byte is significant.
func EventForKey(key int) Event {
	if key < 0 {
		return NoEvent
	}

	switch key & 0xFF {
	case KeySpace:
		return Confirm
	case KeyRematch:
		return Rematch
	case KeyMenu:
		return ToMenu
	case KeyQuit:
		return Quit
	default:
		return NoEvent
	}
}
