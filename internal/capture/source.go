package capture

import (
	"gocv.io/x/gocv"
)

// Source pairs a camera with the preprocessing every consumer expects, so
// the main loop and an in-round recapture see identical frames.
type Source struct {
	camera Camera
	pre    *Preprocessor
}

// NewSource creates a Source.
func NewSource(camera Camera, pre *Preprocessor) *Source {
	return &Source{camera: camera, pre: pre}
}

// Capture reads one frame and preprocesses it. The caller closes the result.
func (s *Source) Capture() (*gocv.Mat, error) {
	raw, err := s.camera.ReadFrame()
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	frame := s.pre.Process(*raw)
	return &frame, nil
}

// Close releases the camera and the preprocessor.
func (s *Source) Close() error {
	err := s.camera.Close()
	s.pre.Close()
	return err
}
