package detector

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/gesture"
)

var (
	// skin is BGR(80,120,200), HSV roughly (10,153,200).
	skin = color.RGBA{R: 200, G: 120, B: 80, A: 255}
	// chroma green sits inside the default background range.
	chroma = gocv.NewScalar(0, 255, 0, 0)
)

func greenROI(t *testing.T) gocv.Mat {
	t.Helper()
	return gocv.NewMatWithSizeFromScalar(chroma, 400, 400, gocv.MatTypeCV8UC3)
}

func drawRects(img *gocv.Mat, rects ...image.Rectangle) {
	for _, r := range rects {
		gocv.Rectangle(img, r, skin, -1)
	}
}

// drawPaper draws a palm with four raised fingers of different heights.
func drawPaper(img *gocv.Mat) {
	drawRects(img,
		image.Rect(80, 200, 320, 380),
		image.Rect(85, 70, 115, 200),
		image.Rect(145, 45, 175, 200),
		image.Rect(205, 40, 235, 200),
		image.Rect(265, 60, 295, 200),
	)
}

// drawScissors draws a palm with two raised fingers.
func drawScissors(img *gocv.Mat) {
	drawRects(img,
		image.Rect(130, 200, 270, 380),
		image.Rect(140, 60, 170, 200),
		image.Rect(210, 50, 240, 200),
	)
}

func TestSegment(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV test in short mode")
	}

	roi := greenROI(t)
	defer roi.Close()
	drawPaper(&roi)

	first := Segment(roi, DefaultThresholds(), 5)
	defer first.Close()
	second := Segment(roi, DefaultThresholds(), 5)
	defer second.Close()

	if first.Rows() != roi.Rows() || first.Cols() != roi.Cols() {
		t.Fatalf("mask size = %dx%d, want %dx%d", first.Cols(), first.Rows(), roi.Cols(), roi.Rows())
	}
	if first.Channels() != 1 {
		t.Errorf("mask channels = %d, want 1", first.Channels())
	}
	if !bytes.Equal(first.ToBytes(), second.ToBytes()) {
		t.Error("Segment() is not deterministic for the same input")
	}

	if v := first.GetUCharAt(300, 200); v != 255 {
		t.Errorf("palm pixel = %d, want 255", v)
	}
	if v := first.GetUCharAt(10, 10); v != 0 {
		t.Errorf("background pixel = %d, want 0", v)
	}
}

func TestHandClassifier_Classify(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV test in short mode")
	}

	classifier := NewHandClassifier(DefaultConfig(), DefaultThresholds())

	tests := []struct {
		name string
		draw func(*gocv.Mat)
		want gesture.Gesture
	}{
		{
			name: "fist",
			draw: func(img *gocv.Mat) { gocv.Circle(img, image.Pt(200, 200), 100, skin, -1) },
			want: gesture.Rock,
		},
		{name: "two fingers", draw: drawScissors, want: gesture.Scissors},
		{name: "open hand", draw: drawPaper, want: gesture.Paper},
		{
			name: "blob below minimum area",
			draw: func(img *gocv.Mat) { gocv.Circle(img, image.Pt(200, 200), 20, skin, -1) },
			want: gesture.Unknown,
		},
		{name: "nothing", draw: func(*gocv.Mat) {}, want: gesture.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roi := greenROI(t)
			defer roi.Close()
			tt.draw(&roi)

			if got := classifier.Classify(roi); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandClassifier_Analyze(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV test in short mode")
	}

	classifier := NewHandClassifier(DefaultConfig(), DefaultThresholds())

	roi := greenROI(t)
	defer roi.Close()
	drawPaper(&roi)

	result := classifier.Analyze(roi)
	if result.Gesture != gesture.Paper {
		t.Fatalf("Gesture = %v, want Paper", result.Gesture)
	}
	if len(result.Gaps) != 3 {
		t.Errorf("gaps = %d, want 3", len(result.Gaps))
	}
	for _, g := range result.Gaps {
		if g.Y < 180 || g.Y > 220 {
			t.Errorf("gap %v is not at the finger roots", g)
		}
	}
	if result.Area <= 2000 {
		t.Errorf("area = %f, want > 2000", result.Area)
	}
}

func TestHandClassifier_SetThresholds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV test in short mode")
	}

	classifier := NewHandClassifier(DefaultConfig(), DefaultThresholds())

	roi := greenROI(t)
	defer roi.Close()
	gocv.Circle(&roi, image.Pt(200, 200), 100, skin, -1)

	if got := classifier.Classify(roi); got != gesture.Rock {
		t.Fatalf("Classify() = %v, want Rock", got)
	}

	// A skin range that excludes the drawn hue leaves no foreground.
	th := DefaultThresholds()
	th.Skin = HSVRange{Lower: HSV{100, 30, 60}, Upper: HSV{120, 255, 255}}
	classifier.SetThresholds(th)

	if got := classifier.Thresholds(); got != th {
		t.Errorf("Thresholds() = %+v, want %+v", got, th)
	}
	if got := classifier.Classify(roi); got != gesture.Unknown {
		t.Errorf("Classify() after SetThresholds = %v, want Unknown", got)
	}
}

func TestHSVValid(t *testing.T) {
	tests := []struct {
		hsv  HSV
		want bool
	}{
		{HSV{0, 0, 0}, true},
		{HSV{180, 255, 255}, true},
		{HSV{181, 0, 0}, false},
		{HSV{0, 256, 0}, false},
		{HSV{0, 0, -1}, false},
	}
	for _, tt := range tests {
		if got := tt.hsv.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.hsv, got, tt.want)
		}
	}
}
