package menu

import (
	"slices"

	"github.com/ayusman/roshambo/internal/detector"
	"github.com/ayusman/roshambo/internal/game"
)

// Target sequences that propose each mode.
var (
	TargetPvP = []detector.Color{detector.Red, detector.Yellow, detector.Blue}
	TargetPvE = []detector.Color{detector.Blue, detector.Yellow, detector.Red}
)

// Selector proposes a mode when the tracked sequence matches a target and
// switches only on an explicit confirm.
type Selector struct {
	proposed game.Mode
}

// NewSelector creates an idle Selector.
func NewSelector() *Selector {
	return &Selector{proposed: game.Menu}
}

// Evaluate matches seq against the targets and updates the proposal.
// It returns the proposed mode, or game.Menu when nothing matches.
func (s *Selector) Evaluate(seq []detector.Color) game.Mode {
	switch {
	case slices.Equal(seq, TargetPvP):
		s.proposed = game.PvP
	case slices.Equal(seq, TargetPvE):
		s.proposed = game.PvE
	default:
		s.proposed = game.Menu
	}
	return s.proposed
}

// Proposed returns the pending mode, if any.
func (s *Selector) Proposed() (game.Mode, bool) {
	return s.proposed, s.proposed != game.Menu
}

// Confirm handles the confirm action. With a proposal pending it returns the
// mode to switch to; without one it acts as a cancel. The tracker is reset
// either way.
func (s *Selector) Confirm(t *Tracker) (game.Mode, bool) {
	mode, ok := s.Proposed()
	t.Reset()
	s.proposed = game.Menu
	return mode, ok
}
