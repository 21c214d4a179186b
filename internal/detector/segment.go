package detector

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// HSV is an OpenCV-scaled HSV triple: hue 0-180, saturation and value 0-255.
type HSV [3]int

// scalar converts the triple to a gocv.Scalar for range thresholding.
func (h HSV) scalar() gocv.Scalar {
	return gocv.NewScalar(float64(h[0]), float64(h[1]), float64(h[2]), 0)
}

// Valid reports whether every channel lies inside its OpenCV range.
func (h HSV) Valid() bool {
	return h[0] >= 0 && h[0] <= 180 &&
		h[1] >= 0 && h[1] <= 255 &&
		h[2] >= 0 && h[2] <= 255
}

// HSVRange is an inclusive lower/upper pair of HSV triples.
type HSVRange struct {
	Lower HSV
	Upper HSV
}

func (r HSVRange) String() string {
	return fmt.Sprintf("%v-%v", r.Lower, r.Upper)
}

// Thresholds are the two colour ranges used to segment a hand: skin tones
// to keep and the chroma background to exclude.
type Thresholds struct {
	Skin       HSVRange
	Background HSVRange
}

// DefaultThresholds returns the built-in skin and green-screen ranges.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Skin: HSVRange{
			Lower: HSV{0, 30, 60},
			Upper: HSV{20, 255, 255},
		},
		Background: HSVRange{
			Lower: HSV{35, 50, 50},
			Upper: HSV{85, 255, 255},
		},
	}
}

// inRange writes the mask of hsv pixels inside r to dst.
func inRange(hsv gocv.Mat, r HSVRange, dst *gocv.Mat) {
	gocv.InRangeWithScalar(hsv, r.Lower.scalar(), r.Upper.scalar(), dst)
}

// Segment builds the binary foreground (hand) mask of a BGR image.
// The caller is responsible for closing the returned Mat.
//
// Algorithm:
// 1. Convert to HSV
// 2. skin = inRange(skin), background = inRange(background)
// 3. foreground = skin AND NOT background
// 4. Erode once, dilate twice with a square kernel
// 5. Gaussian blur (same kernel size) and threshold at 127
func Segment(frame gocv.Mat, th Thresholds, kernelSize int) gocv.Mat {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	skin := gocv.NewMat()
	defer skin.Close()
	inRange(hsv, th.Skin, &skin)

	background := gocv.NewMat()
	defer background.Close()
	inRange(hsv, th.Background, &background)

	notBackground := gocv.NewMat()
	defer notBackground.Close()
	gocv.BitwiseNot(background, &notBackground)

	foreground := gocv.NewMat()
	defer foreground.Close()
	gocv.BitwiseAnd(skin, notBackground, &foreground)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(kernelSize, kernelSize))
	defer kernel.Close()

	eroded := gocv.NewMat()
	defer eroded.Close()
	gocv.Erode(foreground, &eroded, kernel)

	// Two dilation passes
	grown := gocv.NewMat()
	defer grown.Close()
	gocv.Dilate(eroded, &grown, kernel)
	dilated := gocv.NewMat()
	defer dilated.Close()
	gocv.Dilate(grown, &dilated, kernel)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(dilated, &blurred, image.Pt(kernelSize, kernelSize), 0, 0, gocv.BorderDefault)

	mask := gocv.NewMat()
	gocv.Threshold(blurred, &mask, 127, 255, gocv.ThresholdBinary)
	return mask
}
