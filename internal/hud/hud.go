// Package hud draws the game overlay onto the displayed frame.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/detector"
	"github.com/ayusman/roshambo/internal/game"
	"github.com/ayusman/roshambo/internal/gesture"
)

const font = gocv.FontHersheySimplex

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
	green = color.RGBA{G: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

// View is everything the overlay needs for one frame.
type View struct {
	Mode  game.Mode
	State game.State
	FPS   float64

	// Menu
	Sequence []detector.Color
	Progress float64
	Ball     detector.Ball
	Proposed game.Mode

	// Game
	Live      [2]gesture.Gesture
	Hands     [2]detector.HandResult
	Countdown game.CountdownView
	Verdict   game.Verdict
}

// Draw renders v onto frame in place.
func Draw(frame *gocv.Mat, v View) {
	if frame.Empty() {
		return
	}
	if v.FPS > 0 {
		gocv.PutText(frame, fmt.Sprintf("FPS: %d", int(v.FPS)), image.Pt(frame.Cols()-130, 40), font, 0.8, game.SuccessColor, 2)
	}
	if v.Mode.Playing() {
		drawGame(frame, v)
		return
	}
	drawMenu(frame, v)
}

func drawMenu(frame *gocv.Mat, v View) {
	w := frame.Cols()

	banner(frame, "Rock Paper Scissors", 40, game.AccentColor, 1.0)
	gocv.PutText(frame, "Red-Yellow-Blue: 2 players", image.Pt(20, 80), font, 0.6, game.PlayerOneColor, 2)
	gocv.PutText(frame, "Blue-Yellow-Red: vs CPU", image.Pt(20, 105), font, 0.6, game.PlayerTwoColor, 2)

	if v.Ball.Found() {
		r := bounds(v.Ball.Contour)
		gocv.Rectangle(frame, r, ballColor(v.Ball.Color), 2)
		gocv.PutText(frame, v.Ball.Color.String(), image.Pt(r.Min.X, r.Min.Y-8), font, 0.6, ballColor(v.Ball.Color), 2)

		bar := image.Rect(20, 125, 20+int(float64(w/3)*v.Progress), 135)
		gocv.Rectangle(frame, bar, game.SuccessColor, -1)
	}

	// Committed tokens as filled swatches.
	for i, c := range v.Sequence {
		x := 20 + i*50
		gocv.Rectangle(frame, image.Rect(x, 150, x+40, 190), ballColor(c), -1)
		gocv.Rectangle(frame, image.Rect(x, 150, x+40, 190), white, 1)
	}

	if v.Proposed.Playing() {
		banner(frame, fmt.Sprintf("%s selected - press SPACE", modeTitle(v.Proposed)), frame.Rows()-40, game.SuccessColor, 0.8)
	}
}

func drawGame(frame *gocv.Mat, v View) {
	left, right := game.Regions(frame.Cols(), frame.Rows())
	p1, p2 := Labels(v)

	gocv.Rectangle(frame, left, game.PlayerOneColor, 2)
	gocv.PutText(frame, p1, image.Pt(left.Min.X, left.Min.Y-10), font, 0.7, game.PlayerOneColor, 2)

	if v.Mode == game.PvP {
		gocv.Rectangle(frame, right, game.PlayerTwoColor, 2)
	}
	gocv.PutText(frame, p2, image.Pt(right.Min.X, right.Min.Y-10), font, 0.7, game.PlayerTwoColor, 2)

	if v.State != game.Result {
		drawHand(frame, v.Hands[0])
		if v.Mode == game.PvP {
			drawHand(frame, v.Hands[1])
		}
	}

	switch v.State {
	case game.Waiting:
		banner(frame, "Press SPACE to start", frame.Rows()-30, white, 0.7)
	case game.Countdown:
		drawCountdown(frame, v.Countdown)
	case game.Result:
		banner(frame, v.Verdict.Text, frame.Rows()/2, v.Verdict.Color, 1.5)
		banner(frame, "R: rematch   M: menu", frame.Rows()-30, white, 0.7)
	}
}

// drawHand outlines the detected hand and marks each finger gap.
func drawHand(frame *gocv.Mat, h detector.HandResult) {
	if len(h.Contour) == 0 {
		return
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{h.Contour})
	defer pv.Close()
	gocv.DrawContours(frame, pv, -1, green, 2)

	for _, p := range h.Gaps {
		gocv.Circle(frame, p, 6, red, -1)
	}
}

func drawCountdown(frame *gocv.Mat, cv game.CountdownView) {
	w, h := frame.Cols(), frame.Rows()

	if cv.Display == 0 {
		DrawGo(frame)
		return
	}
	banner(frame, fmt.Sprint(cv.Display), h/2, game.AccentColor, 3*cv.Pulse)

	bar := image.Rect(0, h-8, int(float64(w)*cv.Progress), h)
	gocv.Rectangle(frame, bar, game.AccentColor, -1)
}

// DrawGo renders the go banner shown between the countdown and the capture.
func DrawGo(frame *gocv.Mat) {
	if frame.Empty() {
		return
	}
	banner(frame, "GO!", frame.Rows()/2, game.SuccessColor, 2.5)
}

// banner writes text horizontally centred with its baseline at y, over a
// dark outline so it stays legible on any background.
func banner(frame *gocv.Mat, text string, y int, c color.RGBA, scale float64) {
	thick := max(int(scale*2), 1)
	size := gocv.GetTextSize(text, font, scale, thick)
	pt := image.Pt((frame.Cols()-size.X)/2, y)

	gocv.PutText(frame, text, pt, font, scale, black, thick+3)
	gocv.PutText(frame, text, pt, font, scale, c, thick)
}

// Labels returns the captions shown above each player's zone.
func Labels(v View) (string, string) {
	one, two := "Player 1", "Player 2"
	if v.Mode == game.PvE {
		one, two = "Player", "CPU"
	}

	if v.State == game.Result {
		return caption(one, v.Verdict.P1), caption(two, v.Verdict.P2)
	}

	p2 := caption(two, v.Live[1])
	if v.Mode == game.PvE {
		p2 = two + ": thinking..."
	}
	return caption(one, v.Live[0]), p2
}

func caption(who string, g gesture.Gesture) string {
	if g == gesture.Unknown {
		return who + ": ?"
	}
	return who + ": " + g.String()
}

func modeTitle(m game.Mode) string {
	return strings.ToUpper(m.String())
}

func ballColor(c detector.Color) color.RGBA {
	switch c {
	case detector.Red:
		return color.RGBA{R: 230, G: 40, B: 40, A: 255}
	case detector.Blue:
		return color.RGBA{R: 40, G: 80, B: 230, A: 255}
	case detector.Yellow:
		return color.RGBA{R: 240, G: 220, B: 40, A: 255}
	default:
		return game.NeutralColor
	}
}

func bounds(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}
