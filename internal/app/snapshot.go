package app

import (
	"github.com/ayusman/roshambo/internal/game"
	"github.com/ayusman/roshambo/internal/hud"
)

// Snapshot is the game state pushed to /api/state subscribers. It holds
// only what changes on state transitions, so consecutive frames usually
// produce identical snapshots.
type Snapshot struct {
	Mode      string          `json:"mode"`
	State     string          `json:"state,omitempty"`
	Sequence  []string        `json:"sequence,omitempty"`
	Proposed  string          `json:"proposed,omitempty"`
	Live      []string        `json:"live,omitempty"`
	Countdown int             `json:"countdown,omitempty"`
	Result    *ResultSnapshot `json:"result,omitempty"`
}

// ResultSnapshot describes a settled round.
type ResultSnapshot struct {
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
	Outcome   string `json:"outcome"`
	Text      string `json:"text"`
}

// NewSnapshot builds a Snapshot from an overlay view.
func NewSnapshot(v hud.View) Snapshot {
	s := Snapshot{Mode: v.Mode.String()}

	if !v.Mode.Playing() {
		for _, c := range v.Sequence {
			s.Sequence = append(s.Sequence, c.String())
		}
		if v.Proposed.Playing() {
			s.Proposed = v.Proposed.String()
		}
		return s
	}

	s.State = v.State.String()
	s.Live = []string{v.Live[0].String(), v.Live[1].String()}

	switch v.State {
	case game.Countdown:
		s.Countdown = v.Countdown.Display
	case game.Result:
		s.Result = &ResultSnapshot{
			PlayerOne: v.Verdict.P1.String(),
			PlayerTwo: v.Verdict.P2.String(),
			Outcome:   v.Verdict.Outcome.String(),
			Text:      v.Verdict.Text,
		}
	}
	return s
}
