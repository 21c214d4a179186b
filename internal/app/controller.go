package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/detector"
	"github.com/ayusman/roshambo/internal/game"
	"github.com/ayusman/roshambo/internal/hud"
	"github.com/ayusman/roshambo/internal/menu"
	"github.com/ayusman/roshambo/internal/store"
)

// Recorder persists settled rounds.
type Recorder interface {
	Record(v game.Verdict) (*store.Round, error)
}

// ControllerConfig wires a Controller to its collaborators.
type ControllerConfig struct {
	Balls        detector.BallDetector
	Round        game.Config
	StableFrames int
	Recorder     Recorder
	Now          func() time.Time
}

// Controller owns the top-level game mode and routes each frame and event
// to the menu or to the running round.
type Controller struct {
	mode     game.Mode
	balls    detector.BallDetector
	tracker  *menu.Tracker
	selector *menu.Selector
	round    *game.Round
	recorder Recorder
	now      func() time.Time

	ball     detector.Ball
	proposed game.Mode
	lastTick time.Time
	fps      float64
}

// NewController creates a Controller in the menu.
func NewController(cfg ControllerConfig) *Controller {
	if cfg.StableFrames <= 0 {
		cfg.StableFrames = menu.DefaultStableFrames
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Round.Now == nil {
		cfg.Round.Now = cfg.Now
	}

	return &Controller{
		mode:     game.Menu,
		balls:    cfg.Balls,
		tracker:  menu.NewTracker(cfg.StableFrames),
		selector: menu.NewSelector(),
		round:    game.NewRound(cfg.Round),
		recorder: cfg.Recorder,
		now:      cfg.Now,
		proposed: game.Menu,
	}
}

// Mode returns the current top-level mode.
func (c *Controller) Mode() game.Mode {
	return c.mode
}

// Round returns the round state machine.
func (c *Controller) Round() *game.Round {
	return c.round
}

// Tracker returns the menu's sequence tracker.
func (c *Controller) Tracker() *menu.Tracker {
	return c.tracker
}

// Step processes one frame together with the event polled for it. It
// returns false once the player has asked to quit.
func (c *Controller) Step(frame gocv.Mat, ev Event) bool {
	c.tick()

	if ev == Quit {
		return false
	}

	if c.mode == game.Menu {
		c.stepMenu(frame, ev)
	} else {
		c.stepGame(frame, ev)
	}
	return true
}

func (c *Controller) tick() {
	now := c.now()
	if !c.lastTick.IsZero() {
		if dt := now.Sub(c.lastTick); dt > 0 {
			c.fps = float64(time.Second) / float64(dt)
		}
	}
	c.lastTick = now
}

func (c *Controller) stepMenu(frame gocv.Mat, ev Event) {
	c.ball = c.balls.Detect(frame)
	if c.tracker.Observe(c.ball.Color) {
		log.Printf("Menu sequence: %v", c.tracker.Sequence())
	}
	c.proposed = c.selector.Evaluate(c.tracker.Sequence())

	if ev != Confirm {
		return
	}

	mode, ok := c.selector.Confirm(c.tracker)
	c.proposed = game.Menu
	if ok {
		log.Printf("Entering %s", mode)
		c.mode = mode
		c.round.Reset()
	}
}

func (c *Controller) stepGame(frame gocv.Mat, ev Event) {
	if c.round.Update(frame, c.mode) {
		c.record()
	}

	switch ev {
	case Confirm:
		c.round.Start()
	case Rematch:
		c.round.Rematch()
	case ToMenu:
		log.Println("Returning to menu")
		c.mode = game.Menu
		c.round.Reset()
	}
}

func (c *Controller) record() {
	v, _ := c.round.Verdict()
	log.Printf("Round over: %s vs %s, %s", v.P1, v.P2, v.Text)

	if c.recorder == nil {
		return
	}
	if _, err := c.recorder.Record(v); err != nil {
		log.Printf("Failed to record round: %v", err)
	}
}

// View returns what the overlay should show for the current frame.
func (c *Controller) View() hud.View {
	v := hud.View{Mode: c.mode, FPS: c.fps}

	if c.mode == game.Menu {
		v.Sequence = c.tracker.Sequence()
		v.Progress = c.tracker.Progress()
		v.Ball = c.ball
		v.Proposed = c.proposed
		return v
	}

	v.State = c.round.State()
	v.Live[0], v.Live[1] = c.round.Live()
	v.Hands = c.round.Hands()
	v.Countdown, _ = c.round.Countdown()
	v.Verdict, _ = c.round.Verdict()
	return v
}
