package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/roshambo/internal/config"
)

// rectification is the corrected camera matrix and valid-pixel crop for one
// input resolution.
type rectification struct {
	matrix gocv.Mat
	crop   image.Rectangle
}

// Preprocessor turns raw camera frames into the view the game works on:
// lens-corrected and cropped when a calibration profile is present, and
// always mirrored horizontally.
type Preprocessor struct {
	calibrated bool
	matrix     gocv.Mat
	dist       gocv.Mat

	mu    sync.Mutex
	cache map[image.Point]*rectification
}

// NewPreprocessor creates a Preprocessor. A nil profile disables correction.
func NewPreprocessor(profile *config.Calibration) *Preprocessor {
	p := &Preprocessor{cache: make(map[image.Point]*rectification)}
	if profile == nil {
		return p
	}

	p.matrix = gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	for r, row := range profile.Matrix {
		for c, v := range row {
			p.matrix.SetDoubleAt(r, c, v)
		}
	}

	p.dist = gocv.NewMatWithSize(1, len(profile.Dist), gocv.MatTypeCV64F)
	for i, v := range profile.Dist {
		p.dist.SetDoubleAt(0, i, v)
	}

	p.calibrated = true
	return p
}

// Calibrated reports whether lens correction is applied.
func (p *Preprocessor) Calibrated() bool {
	return p.calibrated
}

// Process returns the corrected, mirrored copy of src. The caller closes the
// result; src is left untouched.
func (p *Preprocessor) Process(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	if src.Empty() {
		return dst
	}

	if !p.calibrated {
		gocv.Flip(src, &dst, 1)
		return dst
	}

	rect := p.rectify(image.Pt(src.Cols(), src.Rows()))

	undistorted := gocv.NewMat()
	defer undistorted.Close()
	gocv.Undistort(src, &undistorted, p.matrix, p.dist, rect.matrix)

	if rect.crop.Empty() {
		gocv.Flip(undistorted, &dst, 1)
		return dst
	}

	region := undistorted.Region(rect.crop)
	defer region.Close()
	cropped := region.Clone()
	defer cropped.Close()

	gocv.Flip(cropped, &dst, 1)
	return dst
}

// rectify returns the memoized rectification for size, computing it on
// first use.
func (p *Preprocessor) rectify(size image.Point) *rectification {
	p.mu.Lock()
	defer p.mu.Unlock()

	if r, ok := p.cache[size]; ok {
		return r
	}

	matrix, roi := gocv.GetOptimalNewCameraMatrixWithParams(p.matrix, p.dist, size, 1, size, false)
	r := &rectification{
		matrix: matrix,
		crop:   roi.Intersect(image.Rect(0, 0, size.X, size.Y)),
	}
	p.cache[size] = r
	return r
}

// cached returns how many resolutions have a memoized rectification.
func (p *Preprocessor) cached() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache)
}

// Close releases the native matrices.
func (p *Preprocessor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for size, r := range p.cache {
		r.matrix.Close()
		delete(p.cache, size)
	}
	if p.calibrated {
		p.matrix.Close()
		p.dist.Close()
		p.calibrated = false
	}
	return nil
}
