package detector

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Color is the colour of a menu selector ball.
type Color int

const (
	// NoColor means no qualifying ball was found.
	NoColor Color = iota
	Red
	Blue
	Yellow
)

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Yellow:
		return "Yellow"
	default:
		return "None"
	}
}

// Ball is the winning blob of a ball detection.
type Ball struct {
	Color       Color
	Area        float64
	Circularity float64
	Contour     []image.Point
}

// Found reports whether a ball was detected.
func (b Ball) Found() bool {
	return b.Color != NoColor
}

// band is a named set of hue ranges whose masks are OR-ed together.
type band struct {
	color  Color
	ranges []HSVRange
}

// ballBands lists the selector colours in the order they are tested.
// Red wraps around the hue circle and is the union of two ranges.
var ballBands = []band{
	{
		color: Red,
		ranges: []HSVRange{
			{Lower: HSV{0, 120, 70}, Upper: HSV{10, 255, 255}},
			{Lower: HSV{170, 120, 70}, Upper: HSV{180, 255, 255}},
		},
	},
	{
		color:  Blue,
		ranges: []HSVRange{{Lower: HSV{94, 80, 2}, Upper: HSV{126, 255, 255}}},
	},
	{
		color:  Yellow,
		ranges: []HSVRange{{Lower: HSV{20, 100, 100}, Upper: HSV{35, 255, 255}}},
	},
}

// Circularity returns 4π·area/perimeter², 1.0 for a perfect circle.
// A zero perimeter yields 0.
func Circularity(area, perimeter float64) float64 {
	if perimeter == 0 {
		return 0
	}
	return 4 * math.Pi * area / (perimeter * perimeter)
}

// blob is a contour candidate reduced to the numbers the selection needs.
type blob struct {
	color     Color
	area      float64
	perimeter float64
}

// selectBall returns the index of the winning blob, or -1.
//
// Blobs are visited in band order. A blob replaces the current winner only
// when its area is strictly larger, so on an exact area tie the colour tested
// first keeps the win.
func selectBall(blobs []blob, minArea, minCircularity float64) int {
	winner := -1
	maxArea := 0.0

	for i, b := range blobs {
		if b.area <= maxArea || b.area <= minArea {
			continue
		}
		if b.perimeter == 0 {
			continue
		}
		if Circularity(b.area, b.perimeter) > minCircularity {
			maxArea = b.area
			winner = i
		}
	}

	return winner
}

// BallFinder implements BallDetector over the three fixed colour bands.
type BallFinder struct {
	config Config
}

// NewBallFinder creates a BallFinder.
func NewBallFinder(config Config) *BallFinder {
	return &BallFinder{config: config}
}

// Detect implements BallDetector. frame is the full BGR camera view.
func (f *BallFinder) Detect(frame gocv.Mat) Ball {
	if frame.Empty() {
		return Ball{}
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(frame, &blurred, image.Pt(f.config.BallBlurSize, f.config.BallBlurSize), 0, 0, gocv.BorderDefault)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(blurred, &hsv, gocv.ColorBGRToHSV)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(f.config.KernelSize, f.config.KernelSize))
	defer kernel.Close()

	var (
		blobs   []blob
		sources []gocv.PointVector
	)
	for _, b := range ballBands {
		mask := bandMask(hsv, b, kernel)
		contours := gocv.FindContours(mask, gocv.RetrievalTree, gocv.ChainApproxSimple)
		mask.Close()
		defer contours.Close()

		for i := 0; i < contours.Size(); i++ {
			c := contours.At(i)
			blobs = append(blobs, blob{
				color:     b.color,
				area:      gocv.ContourArea(c),
				perimeter: gocv.ArcLength(c, true),
			})
			sources = append(sources, c)
		}
	}

	winner := selectBall(blobs, f.config.MinBallArea, f.config.MinCircularity)
	if winner < 0 {
		return Ball{}
	}

	w := blobs[winner]
	return Ball{
		Color:       w.color,
		Area:        w.area,
		Circularity: Circularity(w.area, w.perimeter),
		Contour:     sources[winner].ToPoints(),
	}
}

// bandMask thresholds hsv for every range of the band, then removes speckle
// (opening) and fills holes (closing). The caller closes the returned Mat.
func bandMask(hsv gocv.Mat, b band, kernel gocv.Mat) gocv.Mat {
	combined := gocv.NewMat()
	defer combined.Close()
	inRange(hsv, b.ranges[0], &combined)
	for _, r := range b.ranges[1:] {
		part := gocv.NewMat()
		inRange(hsv, r, &part)
		gocv.BitwiseOr(combined, part, &combined)
		part.Close()
	}

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(combined, &opened, gocv.MorphOpen, kernel)

	closed := gocv.NewMat()
	gocv.MorphologyEx(opened, &closed, gocv.MorphClose, kernel)
	return closed
}
