// Package detector turns camera frames into discrete labels: a hand gesture for a
// player's region of interest, or the colour of a selector ball for the menu.
package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/gesture"
)

// HandDetector classifies the hand shown inside a region-of-interest image.
type HandDetector interface {
	// Classify returns the gesture shown in roi, or gesture.Unknown when no
	// usable hand is present. It never fails; geometry problems map to Unknown.
	Classify(roi gocv.Mat) gesture.Gesture
	// Analyze is Classify plus the geometry behind the decision, in roi
	// coordinates.
	Analyze(roi gocv.Mat) HandResult
}

// BallDetector finds the dominant selector ball in a full camera frame.
type BallDetector interface {
	// Detect returns the winning ball, or a Ball with Color NoColor.
	Detect(frame gocv.Mat) Ball
}

// Config holds the numeric thresholds used by the detectors.
type Config struct {
	// MinHandArea is the contour area (px²) a hand must exceed to be classified.
	MinHandArea float64

	// DefectDepthRatio is the fraction of ROI height a defect must be deeper than.
	DefectDepthRatio float64

	// MaxDefectAngle is the largest interior angle (degrees) of a finger gap.
	MaxDefectAngle float64

	// WristCutoffRatio drops defects whose far point lies below this fraction
	// of the ROI height.
	WristCutoffRatio float64

	// MinBallArea is the contour area (px²) a ball must exceed.
	MinBallArea float64

	// MinCircularity is the circularity (4π·area/perimeter²) a ball must exceed.
	MinCircularity float64

	// KernelSize is the side of the square morphology kernel.
	KernelSize int

	// BallBlurSize is the Gaussian kernel applied before ball colour thresholding.
	BallBlurSize int
}

// DefaultConfig returns a Config with the tuned default values.
func DefaultConfig() Config {
	return Config{
		MinHandArea:      2000,
		DefectDepthRatio: 0.15,
		MaxDefectAngle:   90,
		WristCutoffRatio: 0.9,
		MinBallArea:      2000,
		MinCircularity:   0.60,
		KernelSize:       5,
		BallBlurSize:     11,
	}
}
