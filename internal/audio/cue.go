// Package audio plays the game's sound cues without ever blocking the
// caller.
package audio

import (
	"fmt"
	"time"
)

// Cue is a sound event raised by the game.
type Cue int

const (
	Beep Cue = iota
	Go
	PlayerOneWins
	PlayerTwoWins
	Neutral
)

// Tone is a single sine tone.
type Tone struct {
	Frequency int           `json:"frequency"`
	Duration  time.Duration `json:"-"`
}

var tones = map[Cue]Tone{
	Beep:          {Frequency: 1000, Duration: 200 * time.Millisecond},
	Go:            {Frequency: 2000, Duration: 400 * time.Millisecond},
	PlayerOneWins: {Frequency: 500, Duration: 600 * time.Millisecond},
	PlayerTwoWins: {Frequency: 1500, Duration: 600 * time.Millisecond},
	Neutral:       {Frequency: 300, Duration: 300 * time.Millisecond},
}

// Tone returns the tone played for c.
func (c Cue) Tone() Tone {
	return tones[c]
}

func (c Cue) String() string {
	switch c {
	case Beep:
		return "beep"
	case Go:
		return "go"
	case PlayerOneWins:
		return "player_one"
	case PlayerTwoWins:
		return "player_two"
	case Neutral:
		return "neutral"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}
