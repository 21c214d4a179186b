package detector

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/gesture"
)

// HandResult is the full outcome of analysing one region of interest.
type HandResult struct {
	Gesture gesture.Gesture
	Area    float64
	// Contour is the largest foreground contour, nil when none was found
	// or it is too small to be a hand.
	Contour []image.Point
	// Gaps are the far points of the significant defects, for overlays.
	Gaps []image.Point
}

// HandClassifier implements HandDetector with colour segmentation and
// convex-hull defect counting. Thresholds are injected and replaced with
// SetThresholds; the classifier never reads storage itself.
type HandClassifier struct {
	config     Config
	thresholds Thresholds
}

// NewHandClassifier creates a HandClassifier.
func NewHandClassifier(config Config, thresholds Thresholds) *HandClassifier {
	return &HandClassifier{
		config:     config,
		thresholds: thresholds,
	}
}

// SetThresholds replaces the segmentation thresholds used by later calls.
func (c *HandClassifier) SetThresholds(th Thresholds) {
	c.thresholds = th
}

// Thresholds returns the thresholds currently in use.
func (c *HandClassifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify implements HandDetector.
func (c *HandClassifier) Classify(roi gocv.Mat) gesture.Gesture {
	return c.Analyze(roi).Gesture
}

// Analyze segments roi, picks the largest contour and counts significant
// convexity defects.
func (c *HandClassifier) Analyze(roi gocv.Mat) HandResult {
	result := HandResult{Gesture: gesture.Unknown}
	if roi.Empty() {
		return result
	}

	mask := Segment(roi, c.thresholds, c.config.KernelSize)
	defer mask.Close()

	contours := gocv.FindContours(mask, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	best, bestArea := -1, 0.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if best < 0 || area > bestArea {
			best, bestArea = i, area
		}
	}
	if best < 0 {
		return result
	}

	contour := contours.At(best)
	result.Area = bestArea
	if bestArea <= c.config.MinHandArea {
		return result
	}
	result.Contour = contour.ToPoints()

	hull := gocv.NewMat()
	defer hull.Close()
	gocv.ConvexHull(contour, &hull, false, false)

	indices := make([]int, hull.Rows())
	for i := range indices {
		indices[i] = int(hull.GetIntAt(i, 0))
	}

	defects, err := ConvexityDefects(result.Contour, indices)
	if err != nil {
		return result
	}

	gaps, err := RuleFor(c.config, roi.Rows()).Significant(defects)
	if err != nil {
		return result
	}

	for _, d := range gaps {
		result.Gaps = append(result.Gaps, d.Far)
	}
	result.Gesture = gesture.FromDefects(len(gaps))
	return result
}
