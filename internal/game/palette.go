package game

import "image/color"

// Colours shared by the result banner and the display.
var (
	PlayerOneColor = color.RGBA{R: 50, G: 140, B: 255, A: 255}
	PlayerTwoColor = color.RGBA{R: 255, G: 100, B: 100, A: 255}
	AccentColor    = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	NeutralColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	SuccessColor   = color.RGBA{R: 100, G: 200, B: 100, A: 255}
)
