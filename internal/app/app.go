// Package app runs the game: it owns the capture loop, the display window
// and every collaborator the menu and the rounds need.
package app

import (
	"fmt"
	"log"

	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/audio"
	"github.com/ayusman/roshambo/internal/capture"
	"github.com/ayusman/roshambo/internal/config"
	"github.com/ayusman/roshambo/internal/detector"
	"github.com/ayusman/roshambo/internal/game"
	"github.com/ayusman/roshambo/internal/hud"
	"github.com/ayusman/roshambo/internal/server"
	"github.com/ayusman/roshambo/internal/store"
)

// Display shows frames and polls the keyboard.
type Display interface {
	Show(frame gocv.Mat)
	// Key waits briefly for a key press and returns its code, or -1.
	Key() int
	Close() error
}

// Config holds the collaborators of an App. Only Settings is required;
// nil fields get their production implementation.
type Config struct {
	Settings *config.Config
	Camera   capture.Camera
	Display  Display
	Player   audio.Player
	Balls    detector.BallDetector
	Store    *store.Store
	Frames   *server.FrameBuffer
	Feed     *server.Hub
}

// App is the main application that drives the capture-classify-display loop.
type App struct {
	settings *config.Config
	camera   capture.Camera
	source   *capture.Source
	display  Display
	hands    *detector.HandClassifier
	notifier *audio.Notifier
	watcher  *config.Watcher
	frames   *server.FrameBuffer
	feed     *server.Hub
	ctrl     *Controller

	// current is the frame being processed, for the go banner.
	current *gocv.Mat
	// pending is a key read while the go banner was up, or -1.
	pending int
}

// New creates a new App instance with the given configuration.
func New(cfg Config) *App {
	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}

	a := &App{
		settings: settings,
		camera:   cfg.Camera,
		display:  cfg.Display,
		frames:   cfg.Frames,
		feed:     cfg.Feed,
		pending:  -1,
	}

	if a.camera == nil {
		a.camera = capture.NewCamera(settings.CameraID)
	}
	a.camera.SetFPS(settings.CameraFPS)
	a.source = capture.NewSource(a.camera, capture.NewPreprocessor(loadCalibration(settings.CalibrationPath)))

	a.hands = detector.NewHandClassifier(detector.DefaultConfig(), loadThresholds(settings.ThresholdsPath))
	if settings.ThresholdsPath != "" {
		w, err := config.NewWatcher(settings.ThresholdsPath)
		if err != nil {
			log.Printf("Threshold hot reload disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	player := cfg.Player
	if player == nil {
		player = audio.Discard{}
		if settings.Audio.Enabled && len(settings.Audio.Command) > 0 {
			player = audio.NewCommandPlayer(settings.Audio.Command, settings.AudioTimeout())
		}
	}
	a.notifier = audio.NewNotifier(player, settings.Audio.QueueSize)

	balls := cfg.Balls
	if balls == nil {
		balls = detector.NewBallFinder(detector.DefaultConfig())
	}

	var recorder Recorder
	if cfg.Store != nil {
		recorder = cfg.Store.Rounds()
	}

	a.ctrl = NewController(ControllerConfig{
		Balls: balls,
		Round: game.Config{
			Hands:   a.hands,
			Capture: a.source,
			Cues:    a.notifier,
			GoDelay: settings.GoDelay(),
			OnGo:    a.showGo,
		},
		Recorder: recorder,
	})

	return a
}

func loadCalibration(path string) *config.Calibration {
	if path == "" {
		return nil
	}
	cal, err := config.LoadCalibration(path)
	if err != nil {
		log.Printf("Calibration unavailable, frames will not be undistorted: %v", err)
		return nil
	}
	if cal == nil {
		log.Printf("No calibration profile at %s, frames will not be undistorted", path)
		return nil
	}
	log.Printf("Loaded calibration profile from %s", path)
	return cal
}

func loadThresholds(path string) detector.Thresholds {
	th := detector.DefaultThresholds()
	if path == "" {
		return th
	}
	th, err := config.LoadThresholds(path, th)
	if err != nil {
		log.Printf("Using default thresholds for unreadable keys: %v", err)
	}
	return th
}

// Controller returns the game controller.
func (a *App) Controller() *Controller {
	return a.ctrl
}

// Hands returns the hand detector.
func (a *App) Hands() *detector.HandClassifier {
	return a.hands
}

// Run opens the camera and runs the game loop until the player quits or the
// camera stops delivering frames. Every resource is released on return.
func (a *App) Run() error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer a.shutdown()

	if a.display == nil {
		a.display = NewWindow(a.settings.Window.Title, a.settings.Window.Fullscreen)
	}

	log.Println("Game loop started")
	for {
		frame, err := a.source.Capture()
		if err != nil {
			log.Printf("Capture failed, stopping: %v", err)
			return nil
		}

		running := a.step(frame)
		frame.Close()

		if !running {
			log.Println("Quit requested")
			return nil
		}
	}
}

// step runs one iteration of the loop on frame.
func (a *App) step(frame *gocv.Mat) bool {
	a.current = frame
	defer func() { a.current = nil }()

	key := a.key()
	a.reloadThresholds()

	if !a.ctrl.Step(*frame, EventForKey(key)) {
		return false
	}

	view := a.ctrl.View()
	hud.Draw(frame, view)
	a.display.Show(*frame)
	a.publish(*frame, view)
	return true
}

// reloadThresholds applies the threshold file if it changed since the last
// frame. Keys that fail to parse keep their current value.
func (a *App) reloadThresholds() {
	if a.watcher == nil {
		return
	}

	select {
	case <-a.watcher.Changes():
	default:
		return
	}

	th, err := config.LoadThresholds(a.settings.ThresholdsPath, a.hands.Thresholds())
	if err != nil {
		log.Printf("Threshold reload: %v", err)
	}
	a.hands.SetThresholds(th)
	log.Printf("Reloaded thresholds from %s", a.settings.ThresholdsPath)
}

// showGo displays the go banner before the round pauses for the capture.
func (a *App) showGo() {
	if a.current == nil || a.display == nil {
		return
	}

	frame := a.current.Clone()
	defer frame.Close()

	hud.DrawGo(&frame)
	a.display.Show(frame)
	if key := a.display.Key(); key >= 0 {
		a.pending = key
	}
}

// key returns the key held over from the go banner, or polls the display.
func (a *App) key() int {
	if a.pending >= 0 {
		key := a.pending
		a.pending = -1
		return key
	}
	return a.display.Key()
}

func (a *App) publish(frame gocv.Mat, view hud.View) {
	if a.frames != nil && a.frames.Wanted() {
		if err := a.frames.Publish(frame); err != nil {
			log.Printf("Preview frame dropped: %v", err)
		}
	}
	if a.feed != nil {
		if err := a.feed.Publish(NewSnapshot(view)); err != nil {
			log.Printf("State update dropped: %v", err)
		}
	}
}

func (a *App) shutdown() {
	if err := a.source.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if a.display != nil {
		if err := a.display.Close(); err != nil {
			log.Printf("Error closing window: %v", err)
		}
	}
	a.notifier.Close()
	if a.watcher != nil {
		a.watcher.Close()
	}
	log.Println("Game loop stopped")
}

// window is the highgui Display.
type window struct {
	w *gocv.Window
}

// NewWindow opens a highgui window. It must be called from the main thread.
func NewWindow(title string, fullscreen bool) Display {
	w := gocv.NewWindow(title)
	if fullscreen {
		w.SetWindowProperty(gocv.WindowPropertyFullscreen, gocv.WindowFullscreen)
	}
	return &window{w: w}
}

func (w *window) Show(frame gocv.Mat) { w.w.IMShow(frame) }
func (w *window) Key() int            { return w.w.WaitKey(1) }
func (w *window) Close() error        { return w.w.Close() }
