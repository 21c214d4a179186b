package menu

import (
	"slices"
	"testing"

	"github.com/ayusman/roshambo/internal/detector"
)

// hold observes c for n consecutive frames and returns how many tokens were
// committed.
func hold(t *Tracker, c detector.Color, n int) int {
	committed := 0
	for i := 0; i < n; i++ {
		if t.Observe(c) {
			committed++
		}
	}
	return committed
}

func TestTracker_StabilityThreshold(t *testing.T) {
	tr := NewTracker(DefaultStableFrames)

	if got := hold(tr, detector.Red, 16); got != 0 {
		t.Fatalf("committed %d tokens after 16 frames, want 0", got)
	}
	if len(tr.Sequence()) != 0 {
		t.Fatalf("sequence = %v, want empty", tr.Sequence())
	}

	if !tr.Observe(detector.Red) {
		t.Fatal("17th consecutive frame should commit the colour")
	}
	if got := tr.Sequence(); !slices.Equal(got, []detector.Color{detector.Red}) {
		t.Errorf("sequence = %v, want [Red]", got)
	}
}

func TestTracker_InterruptionResetsCounter(t *testing.T) {
	tests := []struct {
		name      string
		interrupt detector.Color
	}{
		{name: "different colour", interrupt: detector.Blue},
		{name: "no detection", interrupt: detector.NoColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(DefaultStableFrames)

			hold(tr, detector.Red, 16)
			tr.Observe(tt.interrupt)
			if got := hold(tr, detector.Red, 16); got != 0 {
				t.Fatalf("committed after an interrupted streak")
			}
			if !tr.Observe(detector.Red) {
				t.Error("expected commit after a full fresh streak")
			}
		})
	}
}

func TestTracker_NoRepeatOfLastToken(t *testing.T) {
	tr := NewTracker(DefaultStableFrames)

	if got := hold(tr, detector.Yellow, 200); got != 1 {
		t.Errorf("committed %d tokens for one long hold, want 1", got)
	}

	hold(tr, detector.NoColor, 5)
	if got := hold(tr, detector.Yellow, 50); got != 0 {
		t.Errorf("same colour as last token was committed again")
	}
}

func TestTracker_FIFOTruncation(t *testing.T) {
	tr := NewTracker(DefaultStableFrames)

	for _, c := range []detector.Color{detector.Red, detector.Blue, detector.Yellow, detector.Red} {
		if got := hold(tr, c, 17); got != 1 {
			t.Fatalf("colour %v committed %d times, want 1", c, got)
		}
		if n := len(tr.Sequence()); n > SequenceLength {
			t.Fatalf("sequence length %d exceeds %d", n, SequenceLength)
		}
	}

	want := []detector.Color{detector.Blue, detector.Yellow, detector.Red}
	if got := tr.Sequence(); !slices.Equal(got, want) {
		t.Errorf("sequence = %v, want %v", got, want)
	}
}

func TestTracker_SequenceIsCopy(t *testing.T) {
	tr := NewTracker(DefaultStableFrames)
	hold(tr, detector.Red, 17)

	seq := tr.Sequence()
	seq[0] = detector.Blue

	if tr.Sequence()[0] != detector.Red {
		t.Error("Sequence() exposed internal state")
	}
}

func TestTracker_ResetAndProgress(t *testing.T) {
	tr := NewTracker(DefaultStableFrames)

	if tr.Progress() != 0 {
		t.Errorf("Progress() = %f on a fresh tracker, want 0", tr.Progress())
	}

	hold(tr, detector.Blue, 17)
	hold(tr, detector.Red, 9)
	if p := tr.Progress(); p != 0.5 {
		t.Errorf("Progress() = %f, want 0.5", p)
	}

	tr.Reset()
	if len(tr.Sequence()) != 0 || tr.Progress() != 0 {
		t.Errorf("Reset() left state: seq=%v progress=%f", tr.Sequence(), tr.Progress())
	}
}
