package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile is returned when a calibration file parses but does not
// describe a usable camera model.
var ErrInvalidProfile = errors.New("invalid calibration profile")

// Calibration is a camera's intrinsic matrix and distortion coefficients as
// written by the calibration tool.
type Calibration struct {
	Matrix [][]float64 `yaml:"mtx"`
	Dist   []float64   `yaml:"dist"`
}

// OpenCV accepts these distortion model sizes.
var distSizes = map[int]bool{4: true, 5: true, 8: true, 12: true, 14: true}

// Validate checks the matrix shape and coefficient count.
func (c *Calibration) Validate() error {
	if len(c.Matrix) != 3 {
		return fmt.Errorf("%w: mtx has %d rows, want 3", ErrInvalidProfile, len(c.Matrix))
	}
	for i, row := range c.Matrix {
		if len(row) != 3 {
			return fmt.Errorf("%w: mtx row %d has %d values, want 3", ErrInvalidProfile, i, len(row))
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: mtx contains a non-finite value", ErrInvalidProfile)
			}
		}
	}
	if c.Matrix[0][0] == 0 || c.Matrix[1][1] == 0 {
		return fmt.Errorf("%w: zero focal length", ErrInvalidProfile)
	}
	if !distSizes[len(c.Dist)] {
		return fmt.Errorf("%w: dist has %d coefficients", ErrInvalidProfile, len(c.Dist))
	}
	for _, v := range c.Dist {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: dist contains a non-finite value", ErrInvalidProfile)
		}
	}
	return nil
}

// LoadCalibration reads the profile at path. A missing file returns
// (nil, nil): running without calibration is valid.
func LoadCalibration(path string) (*Calibration, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration: %w", err)
	}

	var c Calibration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse calibration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// PinholeCalibration returns a distortion-free profile for a w×h camera
// with the focal length set to the frame width. It is a starting point to
// edit by hand when no calibration run is available.
func PinholeCalibration(w, h int) *Calibration {
	return &Calibration{
		Matrix: [][]float64{
			{float64(w), 0, float64(w) / 2},
			{0, float64(w), float64(h) / 2},
			{0, 0, 1},
		},
		Dist: make([]float64, 5),
	}
}

// SaveCalibration writes c to path.
func SaveCalibration(path string, c *Calibration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode calibration: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write calibration: %w", err)
	}
	return nil
}
