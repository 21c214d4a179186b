package game

import (
	"image"
	"math"
	"testing"
	"time"
)

func TestRegions(t *testing.T) {
	tests := []struct {
		name        string
		w, h        int
		left, right image.Rectangle
	}{
		{
			name:  "vga",
			w:     640,
			h:     480,
			left:  image.Rect(20, 72, 308, 360),
			right: image.Rect(332, 72, 620, 360),
		},
		{
			name:  "cropped calibration output",
			w:     600,
			h:     440,
			left:  image.Rect(20, 66, 290, 330),
			right: image.Rect(310, 66, 580, 330),
		},
		{
			name:  "tiny frame is clamped",
			w:     30,
			h:     30,
			left:  image.Rect(20, 4, 30, 22),
			right: image.Rect(0, 4, 10, 22),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := Regions(tt.w, tt.h)
			if left != tt.left {
				t.Errorf("left = %v, want %v", left, tt.left)
			}
			if right != tt.right {
				t.Errorf("right = %v, want %v", right, tt.right)
			}
		})
	}
}

func TestViewAt(t *testing.T) {
	tests := []struct {
		elapsed  time.Duration
		display  int
		pulse    float64
		progress float64
	}{
		{0, 3, 1.3, 1},
		{500 * time.Millisecond, 3, 1.15, 1 - 0.5/3},
		{1 * time.Second, 2, 1.3, 2.0 / 3},
		{2750 * time.Millisecond, 1, 1.075, 1 - 2.75/3},
		{3 * time.Second, 0, 1.3, 0},
		{5 * time.Second, 0, 1.3, 0},
		{-time.Second, 3, 1.3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			v := ViewAt(tt.elapsed)
			if v.Display != tt.display {
				t.Errorf("Display = %d, want %d", v.Display, tt.display)
			}
			if math.Abs(v.Pulse-tt.pulse) > 1e-9 {
				t.Errorf("Pulse = %f, want %f", v.Pulse, tt.pulse)
			}
			if math.Abs(v.Progress-tt.progress) > 1e-9 {
				t.Errorf("Progress = %f, want %f", v.Progress, tt.progress)
			}
			if v.Remaining < 0 {
				t.Errorf("Remaining = %v, want >= 0", v.Remaining)
			}
		})
	}
}

func TestModeAndStateStrings(t *testing.T) {
	for _, m := range []Mode{Menu, PvP, PvE} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("tournament"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if Menu.Playing() || !PvP.Playing() || !PvE.Playing() {
		t.Error("Playing() mismatch")
	}
	if Countdown.String() != "countdown" {
		t.Errorf("Countdown.String() = %q", Countdown.String())
	}
}
