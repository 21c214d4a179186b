// Package game runs a round of rock-paper-scissors: waiting for the players,
// counting down, capturing both hands and announcing the result.
package game

import "fmt"

// Mode is the top-level game mode.
type Mode int

const (
	Menu Mode = iota
	PvP
	PvE
)

func (m Mode) String() string {
	switch m {
	case Menu:
		return "menu"
	case PvP:
		return "pvp"
	case PvE:
		return "pve"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Playing reports whether m is one of the game modes.
func (m Mode) Playing() bool {
	return m == PvP || m == PvE
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "menu":
		return Menu, nil
	case "pvp":
		return PvP, nil
	case "pve":
		return PvE, nil
	default:
		return Menu, fmt.Errorf("unknown mode %q", s)
	}
}

// State is the phase of a round.
type State int

const (
	Waiting State = iota
	Countdown
	Result
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Countdown:
		return "countdown"
	case Result:
		return "result"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
