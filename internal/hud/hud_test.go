package hud

import (
	"image"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/detector"
	"github.com/ayusman/roshambo/internal/game"
	"github.com/ayusman/roshambo/internal/gesture"
)

func TestLabels(t *testing.T) {
	tests := []struct {
		name   string
		view   View
		p1, p2 string
	}{
		{
			name: "pvp live",
			view: View{Mode: game.PvP, State: game.Waiting, Live: [2]gesture.Gesture{gesture.Rock, gesture.Unknown}},
			p1:   "Player 1: Rock",
			p2:   "Player 2: ?",
		},
		{
			name: "pve hides cpu until result",
			view: View{Mode: game.PvE, State: game.Countdown, Live: [2]gesture.Gesture{gesture.Paper, gesture.Unknown}},
			p1:   "Player: Paper",
			p2:   "CPU: thinking...",
		},
		{
			name: "pve result shows final gestures",
			view: View{
				Mode:    game.PvE,
				State:   game.Result,
				Live:    [2]gesture.Gesture{gesture.Paper, gesture.Unknown},
				Verdict: game.Verdict{P1: gesture.Rock, P2: gesture.Scissors},
			},
			p1: "Player: Rock",
			p2: "CPU: Scissors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, p2 := Labels(tt.view)
			if p1 != tt.p1 || p2 != tt.p2 {
				t.Errorf("Labels() = (%q, %q), want (%q, %q)", p1, p2, tt.p1, tt.p2)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	got := bounds([]image.Point{{5, 9}, {1, 12}, {7, 3}})
	want := image.Rect(1, 3, 7, 12)
	if got != want {
		t.Errorf("bounds() = %v, want %v", got, want)
	}
	if !bounds(nil).Empty() {
		t.Error("bounds(nil) should be empty")
	}
}

func TestDraw(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV drawing in short mode")
	}

	views := map[string]View{
		"menu": {
			Mode:     game.Menu,
			Sequence: []detector.Color{detector.Red, detector.Yellow, detector.Blue},
			Progress: 0.5,
			Ball:     detector.Ball{Color: detector.Red, Contour: []image.Point{{300, 200}, {340, 240}}},
			Proposed: game.PvP,
		},
		"waiting": {Mode: game.PvP, State: game.Waiting},
		"countdown": {
			Mode:      game.PvE,
			State:     game.Countdown,
			Countdown: game.ViewAt(1500 * time.Millisecond),
		},
		"result": {
			Mode:    game.PvP,
			State:   game.Result,
			Verdict: game.Verdict{Text: "Tie", Color: game.AccentColor},
		},
	}

	for name, v := range views {
		t.Run(name, func(t *testing.T) {
			frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
			defer frame.Close()

			Draw(&frame, v)

			gray := gocv.NewMat()
			defer gray.Close()
			gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
			if gocv.CountNonZero(gray) == 0 {
				t.Error("Draw() left the frame blank")
			}
		})
	}

	t.Run("hand outline and gaps", func(t *testing.T) {
		frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
		defer frame.Close()

		gap := image.Pt(100, 300)
		Draw(&frame, View{
			Mode:  game.PvP,
			State: game.Waiting,
			Hands: [2]detector.HandResult{{
				Gesture: gesture.Paper,
				Contour: []image.Point{{60, 260}, {140, 260}, {140, 340}, {60, 340}},
				Gaps:    []image.Point{gap},
			}},
		})

		if px := frame.GetVecbAt(gap.Y, gap.X); px[0] != 0 || px[1] != 0 || px[2] != 255 {
			t.Errorf("gap pixel = %v, want red", px)
		}
		if px := frame.GetVecbAt(300, 60); px[0] != 0 || px[1] != 255 || px[2] != 0 {
			t.Errorf("contour pixel = %v, want green", px)
		}
	})

	t.Run("empty frame is ignored", func(t *testing.T) {
		empty := gocv.NewMat()
		defer empty.Close()
		Draw(&empty, View{Mode: game.PvP})
	})
}
