package game

import "image"

// Hand-zone layout as fractions of the frame.
const (
	boxWidthRatio  = 0.45
	boxHeightRatio = 0.6
	topMarginRatio = 0.15
	sideMargin     = 20
)

// Regions returns the two players' hand zones for a frame of w×h pixels:
// player one on the left, player two on the right, both clamped to the
// frame.
func Regions(w, h int) (image.Rectangle, image.Rectangle) {
	bw := int(float64(w) * boxWidthRatio)
	bh := int(float64(h) * boxHeightRatio)
	mt := int(float64(h) * topMarginRatio)

	frame := image.Rect(0, 0, w, h)
	left := image.Rect(sideMargin, mt, sideMargin+bw, mt+bh).Intersect(frame)
	right := image.Rect(w-sideMargin-bw, mt, w-sideMargin, mt+bh).Intersect(frame)
	return left, right
}
