// Package detect locates facial landmark points on still images.
package detect

import (
	"errors"
	"image"

	"github.com/Ammar880121/facemorph-web/internal/landmarks"
)

// ErrNoFace is returned when no face passes the detection threshold.
var ErrNoFace = errors.New("no face detected")

// Point is a landmark position normalized to the unit square: both
// coordinates are in [0, 1] relative to the image width and height.
type Point struct {
	X float64
	Y float64
}

// Detector defines the interface for facial landmark detection backends.
type Detector interface {
	// Detect analyzes a still image and returns the detected landmark
	// points for the most confident face, in the backend's fixed point
	// ordering. Returns ErrNoFace if no face is found.
	Detect(img image.Image) ([]Point, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark detection.
type Config struct {
	// MaxFaces is the maximum number of faces to consider (default: 1).
	MaxFaces int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// Perturbs is the number of perturbations used when localizing
	// individual landmark points. Higher is more accurate but slower.
	Perturbs int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxFaces:      1,
		MinConfidence: 0.5,
		Perturbs:      63,
	}
}

// ToPixels rescales normalized points by the image dimensions, producing a
// landmark set in pixel coordinates with the detector's ordering preserved.
func ToPixels(pts []Point, width, height int) landmarks.Set {
	set := make(landmarks.Set, len(pts))
	for i, p := range pts {
		set[i] = []float64{p.X * float64(width), p.Y * float64(height)}
	}
	return set
}
