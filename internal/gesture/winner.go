package gesture

// Outcome is the result category of a round.
type Outcome int

const (
	// Invalid means at least one side showed no usable gesture.
	Invalid Outcome = iota
	Tie
	PlayerOneWins
	PlayerTwoWins
)

// String returns a stable identifier for the outcome, used in storage and JSON.
func (o Outcome) String() string {
	switch o {
	case Tie:
		return "tie"
	case PlayerOneWins:
		return "player_one"
	case PlayerTwoWins:
		return "player_two"
	default:
		return "invalid"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) Outcome {
	for _, o := range []Outcome{Tie, PlayerOneWins, PlayerTwoWins} {
		if o.String() == s {
			return o
		}
	}
	return Invalid
}

// beats maps each gesture to the one it defeats.
var beats = map[Gesture]Gesture{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// Beats reports whether a defeats b. Unknown never beats or loses.
func Beats(a, b Gesture) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return beats[a] == b
}

// Resolve decides a round between player one and player two.
func Resolve(p1, p2 Gesture) Outcome {
	if !p1.Valid() || !p2.Valid() {
		return Invalid
	}
	if p1 == p2 {
		return Tie
	}
	if Beats(p1, p2) {
		return PlayerOneWins
	}
	return PlayerTwoWins
}
