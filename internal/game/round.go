package game

import (
	"errors"
	"image"
	"image/color"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/audio"
	"github.com/ayusman/roshambo/internal/detector"
	"github.com/ayusman/roshambo/internal/gesture"
)

// Capturer delivers a fresh, preprocessed frame. The caller closes it.
type Capturer interface {
	Capture() (*gocv.Mat, error)
}

// Notifier accepts sound cues without blocking.
type Notifier interface {
	Notify(cue audio.Cue) bool
}

type silent struct{}

func (silent) Notify(audio.Cue) bool { return false }

var errNoCapturer = errors.New("no capturer configured")

// Config wires a Round to its collaborators. Only Hands is required.
type Config struct {
	Hands   detector.HandDetector
	Capture Capturer
	Cues    Notifier
	Now     func() time.Time
	Sleep   func(time.Duration)
	// CPU picks the computer's gesture in PvE.
	CPU func() gesture.Gesture
	// GoDelay is the pause between the go cue and the final capture.
	GoDelay time.Duration
	// OnGo runs right after the go cue, before the pause.
	OnGo func()
}

// Verdict is the settled outcome of a round.
type Verdict struct {
	Mode    Mode
	P1      gesture.Gesture
	P2      gesture.Gesture
	Outcome gesture.Outcome
	Text    string
	Color   color.RGBA
}

// Round is the Waiting → Countdown → Result state machine for one pair of
// players. It is driven by Update once per frame and by the Start, Rematch
// and Reset events.
type Round struct {
	cfg   Config
	state State
	mode  Mode

	started       time.Time
	lastAnnounced int

	live    [2]gesture.Gesture
	hands   [2]detector.HandResult
	verdict Verdict
}

// NewRound creates a Round in the Waiting state.
func NewRound(cfg Config) *Round {
	if cfg.Cues == nil {
		cfg.Cues = silent{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	if cfg.CPU == nil {
		cfg.CPU = gesture.Random
	}
	return &Round{cfg: cfg, state: Waiting}
}

// State returns the current phase.
func (r *Round) State() State {
	return r.state
}

// Live returns the most recent per-frame gestures. In PvE the second value
// is always Unknown.
func (r *Round) Live() (gesture.Gesture, gesture.Gesture) {
	return r.live[0], r.live[1]
}

// Hands returns the most recent per-zone analyses in frame coordinates,
// for drawing. In PvE the second result is always empty.
func (r *Round) Hands() [2]detector.HandResult {
	return r.hands
}

// Verdict returns the result once the round is in the Result state.
func (r *Round) Verdict() (Verdict, bool) {
	return r.verdict, r.state == Result
}

// Countdown returns the countdown view while counting down.
func (r *Round) Countdown() (CountdownView, bool) {
	if r.state != Countdown {
		return CountdownView{}, false
	}
	return ViewAt(r.cfg.Now().Sub(r.started)), true
}

// Start begins the countdown. It only acts in the Waiting state.
func (r *Round) Start() bool {
	if r.state != Waiting {
		return false
	}
	r.state = Countdown
	r.started = r.cfg.Now()
	r.lastAnnounced = countdownSeconds + 1
	return true
}

// Rematch returns a finished round to Waiting.
func (r *Round) Rematch() bool {
	if r.state != Result {
		return false
	}
	r.Reset()
	return true
}

// Reset forces the round back to Waiting from any state.
func (r *Round) Reset() {
	r.state = Waiting
	r.verdict = Verdict{}
	r.live = [2]gesture.Gesture{}
	r.hands = [2]detector.HandResult{}
}

// Update advances the round by one frame and reports whether the round was
// settled during this call.
func (r *Round) Update(frame gocv.Mat, mode Mode) bool {
	r.mode = mode

	switch r.state {
	case Waiting:
		r.observe(frame)
	case Countdown:
		r.observe(frame)
		elapsed := r.cfg.Now().Sub(r.started)
		r.announce(elapsed)
		if elapsed >= CountdownDuration {
			r.finish()
			return true
		}
	}
	return false
}

// observe refreshes the live gestures from frame.
func (r *Round) observe(frame gocv.Mat) {
	if frame.Empty() {
		return
	}
	r.hands = r.analyze(frame)
	r.live = gestures(r.hands)
}

func (r *Round) analyze(frame gocv.Mat) [2]detector.HandResult {
	left, right := Regions(frame.Cols(), frame.Rows())

	out := [2]detector.HandResult{r.analyzeRegion(frame, left), {Gesture: gesture.Unknown}}
	if r.mode == PvP {
		out[1] = r.analyzeRegion(frame, right)
	}
	return out
}

// analyzeRegion analyses the hand inside rect and shifts the result's
// points from region to frame coordinates.
func (r *Round) analyzeRegion(frame gocv.Mat, rect image.Rectangle) detector.HandResult {
	if rect.Empty() {
		return detector.HandResult{Gesture: gesture.Unknown}
	}
	roi := frame.Region(rect)
	defer roi.Close()

	res := r.cfg.Hands.Analyze(roi)
	for i := range res.Contour {
		res.Contour[i] = res.Contour[i].Add(rect.Min)
	}
	for i := range res.Gaps {
		res.Gaps[i] = res.Gaps[i].Add(rect.Min)
	}
	return res
}

func gestures(hands [2]detector.HandResult) [2]gesture.Gesture {
	return [2]gesture.Gesture{hands[0].Gesture, hands[1].Gesture}
}

// announce beeps once for every displayed second reached since the last
// call, counting 3, 2, 1.
func (r *Round) announce(elapsed time.Duration) {
	floor := max(displaySecond(elapsed), 1)
	for r.lastAnnounced > floor {
		r.lastAnnounced--
		r.cfg.Cues.Notify(audio.Beep)
	}
}

// finish plays the go cue, classifies a fresh frame and settles the round.
func (r *Round) finish() {
	r.cfg.Cues.Notify(audio.Go)
	if r.cfg.OnGo != nil {
		r.cfg.OnGo()
	}
	r.cfg.Sleep(r.cfg.GoDelay)

	final, err := r.captureFinal()
	if err != nil {
		log.Printf("Final capture failed, using live gestures: %v", err)
		final = r.live
	}
	if r.mode == PvE {
		final[1] = r.cfg.CPU()
	}

	outcome := gesture.Resolve(final[0], final[1])
	text, banner := Describe(outcome, r.mode)
	r.verdict = Verdict{
		Mode:    r.mode,
		P1:      final[0],
		P2:      final[1],
		Outcome: outcome,
		Text:    text,
		Color:   banner,
	}
	r.state = Result
	r.cfg.Cues.Notify(resultCue(outcome))
}

func (r *Round) captureFinal() ([2]gesture.Gesture, error) {
	if r.cfg.Capture == nil {
		return [2]gesture.Gesture{}, errNoCapturer
	}

	frame, err := r.cfg.Capture.Capture()
	if err != nil {
		return [2]gesture.Gesture{}, err
	}
	defer frame.Close()

	if frame.Empty() {
		return [2]gesture.Gesture{}, errors.New("captured frame is empty")
	}
	return gestures(r.analyze(*frame)), nil
}

// Describe returns the banner text and colour for an outcome.
func Describe(o gesture.Outcome, mode Mode) (string, color.RGBA) {
	switch o {
	case gesture.PlayerOneWins:
		if mode == PvE {
			return "Player wins", PlayerOneColor
		}
		return "Player 1 wins", PlayerOneColor
	case gesture.PlayerTwoWins:
		if mode == PvE {
			return "CPU wins", PlayerTwoColor
		}
		return "Player 2 wins", PlayerTwoColor
	case gesture.Tie:
		return "Tie", AccentColor
	default:
		return "Invalid gesture", NeutralColor
	}
}

func resultCue(o gesture.Outcome) audio.Cue {
	switch o {
	case gesture.PlayerOneWins:
		return audio.PlayerOneWins
	case gesture.PlayerTwoWins:
		return audio.PlayerTwoWins
	default:
		return audio.Neutral
	}
}
