package game

import (
	"math"
	"time"
)

// CountdownDuration is how long the countdown runs before the capture.
const CountdownDuration = 3 * time.Second

const countdownSeconds = int(CountdownDuration / time.Second)

// CountdownView is what the display needs to draw one countdown frame. All
// fields are pure functions of the elapsed time.
type CountdownView struct {
	Elapsed   time.Duration
	Remaining time.Duration
	// Display is the whole-second number shown, 3 down to 1.
	Display int
	// Pulse scales the number, 1.3 at each second boundary easing to 1.0.
	Pulse float64
	// Progress runs from 1 at the start to 0 at the end.
	Progress float64
}

// ViewAt computes the countdown view for elapsed.
func ViewAt(elapsed time.Duration) CountdownView {
	if elapsed < 0 {
		elapsed = 0
	}
	secs := elapsed.Seconds()

	v := CountdownView{
		Elapsed:   elapsed,
		Remaining: max(CountdownDuration-elapsed, 0),
		Display:   displaySecond(elapsed),
		Pulse:     1 + 0.3*(1-(secs-math.Floor(secs))),
		Progress:  max(1-secs/CountdownDuration.Seconds(), 0),
	}
	return v
}

// displaySecond returns 3 - floor(elapsed), the integer timer the players
// see. It reaches 0 once the countdown is over.
func displaySecond(elapsed time.Duration) int {
	return max(countdownSeconds-int(elapsed/time.Second), 0)
}
