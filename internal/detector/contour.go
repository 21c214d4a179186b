package detector

import (
	"errors"
	"image"
	"math"
)

var (
	// ErrDegenerateHull is returned when a hull has too few or out-of-range vertices.
	ErrDegenerateHull = errors.New("degenerate convex hull")
	// ErrNonMonotonicHull is returned when hull indices do not walk the contour in one direction.
	ErrNonMonotonicHull = errors.New("convex hull indices are not monotonic")
	// ErrDegenerateTriangle is returned when a defect triangle has a zero-length leg.
	ErrDegenerateTriangle = errors.New("defect triangle has a zero-length leg")
)

// Defect is a convexity defect: the deepest contour point between two
// consecutive hull vertices.
type Defect struct {
	Start image.Point
	End   image.Point
	Far   image.Point
	Depth float64 // distance from Far to the Start-End hull edge, in pixels
}

// InteriorAngle returns the angle in degrees at far in the triangle
// (start, end, far), using the law of cosines. The result lies in [0, 180].
func InteriorAngle(start, end, far image.Point) (float64, error) {
	a := dist(end, far)
	b := dist(start, far)
	c := dist(start, end)
	if a == 0 || b == 0 {
		return 0, ErrDegenerateTriangle
	}

	cos := (a*a + b*b - c*c) / (2 * a * b)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi, nil
}

func dist(p, q image.Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// ConvexityDefects enumerates the defects of contour for the given hull, where
// hull holds contour indices as produced by gocv.ConvexHull with returnPoints=false.
// Hull edges whose interior contour points all lie on the edge produce no defect.
//
// Depths follow OpenCV's convexityDefects: the perpendicular distance from
// the far point to the hull edge, in pixels. It is computed here rather than
// through gocv.ConvexityDefects so that a hull whose indices are not
// monotonic is reported as an error instead of aborting inside OpenCV.
func ConvexityDefects(contour []image.Point, hull []int) ([]Defect, error) {
	n := len(contour)
	order, err := orderHull(hull, n)
	if err != nil {
		return nil, err
	}

	var defects []Defect
	for k, a := range order {
		b := order[(k+1)%len(order)]
		p0, p1 := contour[a], contour[b]

		dx0, dy0 := float64(p1.X-p0.X), float64(p1.Y-p0.Y)
		length := math.Hypot(dx0, dy0)
		if length == 0 {
			continue
		}

		deepest, depth := -1, 0.0
		for j := (a + 1) % n; j != b; j = (j + 1) % n {
			dx, dy := float64(contour[j].X-p0.X), float64(contour[j].Y-p0.Y)
			d := math.Abs(dx0*dy-dy0*dx) / length
			if d > depth {
				deepest, depth = j, d
			}
		}

		if deepest >= 0 {
			defects = append(defects, Defect{
				Start: p0,
				End:   p1,
				Far:   contour[deepest],
				Depth: depth,
			})
		}
	}

	return defects, nil
}

// orderHull returns the hull indices rotated and, if needed, reversed so they
// increase cyclically from the smallest index.
func orderHull(hull []int, n int) ([]int, error) {
	if len(hull) < 3 || n < 3 {
		return nil, ErrDegenerateHull
	}

	seen := make(map[int]bool, len(hull))
	for _, i := range hull {
		if i < 0 || i >= n || seen[i] {
			return nil, ErrDegenerateHull
		}
		seen[i] = true
	}

	if order, ok := ascendingFromMin(hull); ok {
		return order, nil
	}

	reversed := make([]int, len(hull))
	for i, idx := range hull {
		reversed[len(hull)-1-i] = idx
	}
	if order, ok := ascendingFromMin(reversed); ok {
		return order, nil
	}

	return nil, ErrNonMonotonicHull
}

func ascendingFromMin(hull []int) ([]int, bool) {
	start := 0
	for i, idx := range hull {
		if idx < hull[start] {
			start = i
		}
	}

	order := make([]int, len(hull))
	for i := range hull {
		order[i] = hull[(start+i)%len(hull)]
		if i > 0 && order[i] <= order[i-1] {
			return nil, false
		}
	}
	return order, true
}

// DefectRule decides which defects count as gaps between extended fingers.
type DefectRule struct {
	MinDepth    float64 // defect must be strictly deeper than this
	MaxAngle    float64 // interior angle at the far point must not exceed this
	WristCutoff float64 // far points with Y beyond this are ignored
}

// RuleFor scales cfg to a region of interest of the given height.
func RuleFor(cfg Config, roiHeight int) DefectRule {
	h := float64(roiHeight)
	return DefectRule{
		MinDepth:    h * cfg.DefectDepthRatio,
		MaxAngle:    cfg.MaxDefectAngle,
		WristCutoff: h * cfg.WristCutoffRatio,
	}
}

// Significant filters defects by the rule. Any degenerate triangle aborts
// the whole evaluation so the caller can fall back to Unknown.
func (r DefectRule) Significant(defects []Defect) ([]Defect, error) {
	var out []Defect
	for _, d := range defects {
		angle, err := InteriorAngle(d.Start, d.End, d.Far)
		if err != nil {
			return nil, err
		}
		if float64(d.Far.Y) > r.WristCutoff {
			continue
		}
		if d.Depth > r.MinDepth && angle <= r.MaxAngle {
			out = append(out, d)
		}
	}
	return out, nil
}
