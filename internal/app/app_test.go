package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/audio"
	"github.com/ayusman/roshambo/internal/capture"
	"github.com/ayusman/roshambo/internal/config"
	"github.com/ayusman/roshambo/internal/detector"
	"github.com/ayusman/roshambo/internal/game"
)

// fakeDisplay replays scripted key codes and counts what it is shown.
type fakeDisplay struct {
	keys   []int
	polls  int
	shown  int
	closed bool
}

func (d *fakeDisplay) Show(gocv.Mat) { d.shown++ }

func (d *fakeDisplay) Key() int {
	defer func() { d.polls++ }()
	if d.polls < len(d.keys) {
		return d.keys[d.polls]
	}
	return -1
}

func (d *fakeDisplay) Close() error {
	d.closed = true
	return nil
}

func testSettings(t *testing.T) *config.Config {
	t.Helper()
	s := config.Default()
	s.CalibrationPath = ""
	s.ThresholdsPath = filepath.Join(t.TempDir(), "thresholds.ini")
	s.DatabasePath = ""
	s.Audio.Enabled = false
	return s
}

func testFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 240, 320, gocv.MatTypeCV8UC3)
		frames[i] = &m
	}
	t.Cleanup(func() {
		for _, m := range frames {
			m.Close()
		}
	})
	return frames
}

func TestApp_RunUntilCameraEnds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	camera := capture.NewMockCamera(testFrames(t, 3), false)
	display := &fakeDisplay{}

	a := New(Config{
		Settings: testSettings(t),
		Camera:   camera,
		Display:  display,
		Player:   audio.Discard{},
		Balls:    detector.NewMockBallDetector(),
	})

	if err := a.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if display.shown != 3 {
		t.Errorf("frames shown = %d, want 3", display.shown)
	}
	if !display.closed {
		t.Error("display was not closed")
	}
	if camera.Closes() != 1 {
		t.Errorf("camera closes = %d, want 1", camera.Closes())
	}
	if camera.IsOpen() {
		t.Error("camera still open after Run")
	}
}

func TestNew_AppliesCameraFPS(t *testing.T) {
	settings := testSettings(t)
	settings.CameraFPS = 15
	camera := capture.NewMockCamera(nil, false)

	a := New(Config{
		Settings: settings,
		Camera:   camera,
		Display:  &fakeDisplay{},
		Player:   audio.Discard{},
		Balls:    detector.NewMockBallDetector(),
	})
	t.Cleanup(a.shutdown)

	if got := camera.FPS(); got != 15 {
		t.Errorf("camera FPS = %d, want 15", got)
	}
}

func TestApp_KeyDuringGoBannerIsKept(t *testing.T) {
	display := &fakeDisplay{keys: []int{KeyQuit}}
	a := New(Config{
		Settings: testSettings(t),
		Camera:   capture.NewMockCamera(nil, false),
		Display:  display,
		Player:   audio.Discard{},
		Balls:    detector.NewMockBallDetector(),
	})
	t.Cleanup(a.shutdown)

	frame := testFrames(t, 1)[0]
	a.current = frame
	a.showGo()
	a.current = nil

	if display.shown != 1 || display.polls != 1 {
		t.Fatalf("shown = %d, polls = %d; want 1, 1", display.shown, display.polls)
	}
	if a.step(frame) {
		t.Error("step() should stop on the quit key pressed during the go banner")
	}
	if display.polls != 1 {
		t.Errorf("polls = %d, want the held key used without polling", display.polls)
	}
}

func TestApp_RunQuits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	camera := capture.NewMockCamera(testFrames(t, 1), true)
	display := &fakeDisplay{keys: []int{-1, KeyQuit}}

	a := New(Config{
		Settings: testSettings(t),
		Camera:   camera,
		Display:  display,
		Player:   audio.Discard{},
		Balls:    detector.NewMockBallDetector(),
	})

	if err := a.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if display.shown != 1 {
		t.Errorf("frames shown = %d, want 1", display.shown)
	}
	if camera.Reads() != 2 {
		t.Errorf("camera reads = %d, want 2", camera.Reads())
	}
	if !display.closed || camera.Closes() != 1 {
		t.Error("resources not released on quit")
	}
}

func TestApp_TracksMenuSequence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	balls := detector.NewMockBallDetector()
	balls.SetColor(detector.Red)

	camera := capture.NewMockCamera(testFrames(t, 1), true)
	keys := make([]int, 20)
	for i := range keys {
		keys[i] = -1
	}
	keys = append(keys, KeyQuit)
	display := &fakeDisplay{keys: keys}

	a := New(Config{
		Settings: testSettings(t),
		Camera:   camera,
		Display:  display,
		Player:   audio.Discard{},
		Balls:    balls,
	})

	if err := a.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	seq := a.Controller().Tracker().Sequence()
	if len(seq) != 1 || seq[0] != detector.Red {
		t.Errorf("sequence = %v, want [Red]", seq)
	}
	if a.Controller().Mode() != game.Menu {
		t.Errorf("mode = %v, want menu", a.Controller().Mode())
	}
}

func TestApp_ReloadThresholds(t *testing.T) {
	settings := testSettings(t)
	a := New(Config{
		Settings: settings,
		Camera:   capture.NewMockCamera(nil, false),
		Display:  &fakeDisplay{},
		Player:   audio.Discard{},
		Balls:    detector.NewMockBallDetector(),
	})
	t.Cleanup(a.shutdown)

	if a.watcher == nil {
		t.Fatal("watcher not started")
	}

	want := detector.HSV{5, 40, 70}
	profile := "[thresholds]\nskin_lower = 5, 40, 70\n"
	if err := os.WriteFile(settings.ThresholdsPath, []byte(profile), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		a.reloadThresholds()
		if a.Hands().Thresholds().Skin.Lower == want {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	th := a.Hands().Thresholds()
	if th.Skin.Lower != want {
		t.Fatalf("skin lower = %v, want %v", th.Skin.Lower, want)
	}
	if th.Skin.Upper != detector.DefaultThresholds().Skin.Upper {
		t.Errorf("skin upper changed to %v", th.Skin.Upper)
	}
}
