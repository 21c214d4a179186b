// Package menu turns ball detections into a mode selection.
package menu

import (
	"github.com/ayusman/roshambo/internal/detector"
)

const (
	// DefaultStableFrames is how many consecutive repeats a colour needs
	// beyond its first sighting before it is committed.
	DefaultStableFrames = 15
	// SequenceLength is the capacity of the token buffer.
	SequenceLength = 3
)

// Tracker debounces per-frame ball colours into a short ordered sequence.
type Tracker struct {
	stableFrames int
	last         detector.Color
	counter      int
	sequence     []detector.Color
}

// NewTracker creates a Tracker. A colour is committed once its stability
// counter exceeds stableFrames.
func NewTracker(stableFrames int) *Tracker {
	return &Tracker{
		stableFrames: stableFrames,
		sequence:     make([]detector.Color, 0, SequenceLength),
	}
}

// Observe feeds one frame's detection and reports whether it committed a
// token. NoColor breaks the streak and forgets the previous colour.
func (t *Tracker) Observe(c detector.Color) bool {
	if c == detector.NoColor {
		t.last = detector.NoColor
		t.counter = 0
		return false
	}

	if c == t.last {
		t.counter++
	} else {
		t.last = c
		t.counter = 0
	}

	if t.counter <= t.stableFrames {
		return false
	}
	if n := len(t.sequence); n > 0 && t.sequence[n-1] == c {
		return false
	}

	t.sequence = append(t.sequence, c)
	if len(t.sequence) > SequenceLength {
		t.sequence = append(t.sequence[:0], t.sequence[len(t.sequence)-SequenceLength:]...)
	}
	t.counter = 0
	return true
}

// Sequence returns a copy of the committed tokens, oldest first.
func (t *Tracker) Sequence() []detector.Color {
	out := make([]detector.Color, len(t.sequence))
	copy(out, t.sequence)
	return out
}

// Progress returns the current streak as a fraction of the commit threshold,
// for on-screen feedback.
func (t *Tracker) Progress() float64 {
	if t.last == detector.NoColor {
		return 0
	}
	p := float64(t.counter) / float64(t.stableFrames+1)
	if p > 1 {
		p = 1
	}
	return p
}

// Reset clears the sequence and the streak.
func (t *Tracker) Reset() {
	t.sequence = t.sequence[:0]
	t.last = detector.NoColor
	t.counter = 0
}
