package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/gesture"
)

// MockHandDetector is a test implementation of HandDetector.
// It returns the configured gestures in order, cycling when exhausted.
type MockHandDetector struct {
	gestures []gesture.Gesture
	calls    int
}

// NewMockHandDetector creates a new MockHandDetector that reports Unknown.
func NewMockHandDetector() *MockHandDetector {
	return &MockHandDetector{}
}

// SetGestures sets the gestures returned by successive Classify calls and
// restarts the sequence.
func (m *MockHandDetector) SetGestures(gs ...gesture.Gesture) {
	m.gestures = gs
	m.calls = 0
}

// Calls returns how many times Classify has been called.
func (m *MockHandDetector) Calls() int {
	return m.calls
}

// Classify returns the next configured gesture.
func (m *MockHandDetector) Classify(roi gocv.Mat) gesture.Gesture {
	defer func() { m.calls++ }()
	if len(m.gestures) == 0 {
		return gesture.Unknown
	}
	return m.gestures[m.calls%len(m.gestures)]
}

// Analyze returns the next configured gesture with no geometry.
func (m *MockHandDetector) Analyze(roi gocv.Mat) HandResult {
	return HandResult{Gesture: m.Classify(roi)}
}

// MockBallDetector is a test implementation of BallDetector.
type MockBallDetector struct {
	ball Ball
}

// NewMockBallDetector creates a new MockBallDetector that finds nothing.
func NewMockBallDetector() *MockBallDetector {
	return &MockBallDetector{}
}

// SetColor makes Detect report a ball of the given colour.
func (m *MockBallDetector) SetColor(c Color) {
	m.ball = Ball{Color: c}
	if c != NoColor {
		m.ball.Area = 5000
		m.ball.Circularity = 0.9
	}
}

// Detect returns the configured ball.
func (m *MockBallDetector) Detect(frame gocv.Mat) Ball {
	return m.ball
}
