// Package gesture defines the rock-paper-scissors hand shapes, the mapping from
// convexity-defect counts to shapes, and the rules that decide a round.
package gesture

import "math/rand"

// Gesture is a classified hand shape.
type Gesture int

const (
	// Unknown means no usable hand was found.
	Unknown Gesture = iota
	Rock
	Paper
	Scissors
)

// Playable lists the gestures a player or the CPU can throw.
var Playable = []Gesture{Rock, Paper, Scissors}

// String returns the display name of the gesture.
func (g Gesture) String() string {
	switch g {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	default:
		return "Unknown"
	}
}

// Valid reports whether g is one of the three playable gestures.
func (g Gesture) Valid() bool {
	return g == Rock || g == Paper || g == Scissors
}

// FromDefects maps a significant convexity-defect count to a gesture.
//
//	0    -> Rock
//	1, 2 -> Scissors
//	>= 3 -> Paper
//
// Negative counts are not produced by the detector and map to Unknown.
func FromDefects(count int) Gesture {
	switch {
	case count < 0:
		return Unknown
	case count == 0:
		return Rock
	case count <= 2:
		return Scissors
	default:
		return Paper
	}
}

// Parse returns the gesture with the given display name, or Unknown.
func Parse(name string) Gesture {
	for _, g := range Playable {
		if g.String() == name {
			return g
		}
	}
	return Unknown
}

// Random draws a playable gesture uniformly.
func Random() Gesture {
	return Playable[rand.Intn(len(Playable))]
}
