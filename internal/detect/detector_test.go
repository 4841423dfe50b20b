package detect

import (
	"image"
	"math"
	"testing"
)

// stubDetector returns a fixed point set, or ErrNoFace when empty.
type stubDetector struct {
	points []Point
}

func (s *stubDetector) Detect(img image.Image) ([]Point, error) {
	if len(s.points) == 0 {
		return nil, ErrNoFace
	}
	return s.points, nil
}

func (s *stubDetector) Close() error { return nil }

var _ Detector = (*stubDetector)(nil)

func TestToPixels(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		width  int
		height int
		want   [][]float64
	}{
		{
			name:   "Corners",
			points: []Point{{0, 0}, {1, 1}},
			width:  640,
			height: 480,
			want:   [][]float64{{0, 0}, {640, 480}},
		},
		{
			name:   "Center point preserves ordering",
			points: []Point{{0.5, 0.25}, {0.25, 0.5}},
			width:  200,
			height: 100,
			want:   [][]float64{{100, 25}, {50, 50}},
		},
		{
			name:   "Empty",
			points: nil,
			width:  10,
			height: 10,
			want:   [][]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPixels(tt.points, tt.width, tt.height)
			if len(got) != len(tt.want) {
				t.Fatalf("ToPixels() returned %d points, want %d", len(got), len(tt.want))
			}
			for i := range got {
				for j := range got[i] {
					if math.Abs(got[i][j]-tt.want[i][j]) > 1e-9 {
						t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
					}
				}
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxFaces != 1 {
		t.Errorf("MaxFaces = %d, want 1", cfg.MaxFaces)
	}
	if cfg.MinConfidence != 0.5 {
		t.Errorf("MinConfidence = %v, want 0.5", cfg.MinConfidence)
	}
	if cfg.Perturbs < 1 {
		t.Errorf("Perturbs = %d, want >= 1", cfg.Perturbs)
	}
}

func TestNewPigoDetectorMissingCascades(t *testing.T) {
	if _, err := NewPigoDetector(t.TempDir(), DefaultConfig()); err == nil {
		t.Error("expected error for missing cascade files, got nil")
	}
}
