package detect

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	pigo "github.com/esimov/pigo/core"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

// Cascade file layout expected under the cascade directory.
const (
	faceFinderFile = "facefinder"
	puplocFile     = "puploc"
	flpDir         = "lps"
)

// Pigo quality scores roughly span 0..10 for clustered detections; the
// normalized MinConfidence flag value is mapped onto that range.
const qualityScale = 10.0

// Landmark point cascades, in output order. Eye cascades are evaluated for
// both the left and the right side, mouth cascades once, plus the flipped
// mouth corner cascade.
var (
	eyeCascades   = []string{"lp46", "lp44", "lp42", "lp38", "lp312"}
	mouthCascades = []string{"lp93", "lp84", "lp82", "lp81"}
)

// PigoDetector detects faces and facial landmark points using the pure-Go
// pigo cascade classifiers. Safe for sequential use only.
type PigoDetector struct {
	cfg        Config
	classifier *pigo.Pigo
	plc        *pigo.PuplocCascade
	flpcs      map[string][]*pigo.FlpCascade
}

// NewPigoDetector loads the facefinder, puploc and landmark point cascades
// from dir and returns a ready-to-use detector.
func NewPigoDetector(dir string, cfg Config) (*PigoDetector, error) {
	if cfg.MaxFaces < 1 {
		cfg.MaxFaces = 1
	}

	faceCascade, err := os.ReadFile(filepath.Join(dir, faceFinderFile))
	if err != nil {
		return nil, fmt.Errorf("reading facefinder cascade: %w", err)
	}
	classifier, err := pigo.NewPigo().Unpack(faceCascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking facefinder cascade: %w", err)
	}

	puplocCascade, err := os.ReadFile(filepath.Join(dir, puplocFile))
	if err != nil {
		return nil, fmt.Errorf("reading puploc cascade: %w", err)
	}
	plc, err := pigo.NewPuplocCascade().UnpackCascade(puplocCascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking puploc cascade: %w", err)
	}

	flpcs, err := plc.ReadCascadeDir(filepath.Join(dir, flpDir))
	if err != nil {
		return nil, fmt.Errorf("reading landmark point cascades: %w", err)
	}

	log.Debugf("detect: loaded cascades from %s", dir)

	return &PigoDetector{
		cfg:        cfg,
		classifier: classifier,
		plc:        plc,
		flpcs:      flpcs,
	}, nil
}

// Detect runs the cascade classifiers over the image and returns the landmark
// points of the most confident face, normalized to the unit square.
func (d *PigoDetector) Detect(img image.Image) ([]Point, error) {
	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("empty image")
	}

	imgParams := pigo.ImageParams{
		Pixels: pigo.RgbToGrayscale(img),
		Rows:   rows,
		Cols:   cols,
		Dim:    cols,
	}
	cParams := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     max(rows, cols),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: imgParams,
	}

	// Still images only, so no cascade rotation.
	dets := d.classifier.RunCascade(cParams, 0.0)
	dets = d.classifier.ClusterDetections(dets, 0.2)

	minQ := float32(d.cfg.MinConfidence * qualityScale)
	faces := dets[:0]
	for _, det := range dets {
		if det.Q >= minQ {
			faces = append(faces, det)
		}
	}
	if len(faces) == 0 {
		return nil, ErrNoFace
	}

	sort.Slice(faces, func(i, j int) bool { return faces[i].Q > faces[j].Q })
	if len(faces) > d.cfg.MaxFaces {
		faces = faces[:d.cfg.MaxFaces]
	}
	face := faces[0]

	pts := d.facePoints(face, imgParams)
	if len(pts) == 0 {
		return nil, ErrNoFace
	}

	norm := make([]Point, len(pts))
	for i, p := range pts {
		norm[i] = Point{
			X: float64(p.Col) / float64(cols),
			Y: float64(p.Row) / float64(rows),
		}
	}
	return norm, nil
}

// facePoints localizes the pupils and the facial landmark points for one
// detected face, in pixel coordinates. The ordering is fixed: left pupil,
// right pupil, eye cascades (left then right side each), mouth cascades,
// flipped mouth corner.
func (d *PigoDetector) facePoints(face pigo.Detection, imgParams pigo.ImageParams) []*pigo.Puploc {
	perturb := d.cfg.Perturbs

	leftEye := d.plc.RunDetector(pigo.Puploc{
		Row:      face.Row - int(0.075*float32(face.Scale)),
		Col:      face.Col - int(0.175*float32(face.Scale)),
		Scale:    float32(face.Scale) * 0.25,
		Perturbs: perturb,
	}, imgParams, 0.0, false)

	rightEye := d.plc.RunDetector(pigo.Puploc{
		Row:      face.Row - int(0.075*float32(face.Scale)),
		Col:      face.Col + int(0.185*float32(face.Scale)),
		Scale:    float32(face.Scale) * 0.25,
		Perturbs: perturb,
	}, imgParams, 0.0, false)

	if leftEye.Row <= 0 || leftEye.Col <= 0 || rightEye.Row <= 0 || rightEye.Col <= 0 {
		return nil
	}

	pts := []*pigo.Puploc{leftEye, rightEye}

	for _, eye := range eyeCascades {
		for _, flpc := range d.flpcs[eye] {
			if flp := flpc.GetLandmarkPoint(leftEye, rightEye, imgParams, perturb, false); flp.Row > 0 && flp.Col > 0 {
				pts = append(pts, flp)
			}
			if flp := flpc.GetLandmarkPoint(leftEye, rightEye, imgParams, perturb, true); flp.Row > 0 && flp.Col > 0 {
				pts = append(pts, flp)
			}
		}
	}

	for _, mouth := range mouthCascades {
		for _, flpc := range d.flpcs[mouth] {
			if flp := flpc.GetLandmarkPoint(leftEye, rightEye, imgParams, perturb, false); flp.Row > 0 && flp.Col > 0 {
				pts = append(pts, flp)
			}
		}
	}
	for _, flpc := range d.flpcs["lp84"] {
		if flp := flpc.GetLandmarkPoint(leftEye, rightEye, imgParams, perturb, true); flp.Row > 0 && flp.Col > 0 {
			pts = append(pts, flp)
		}
	}

	return pts
}

// Close implements Detector. The cascade classifiers hold no OS resources.
func (d *PigoDetector) Close() error {
	return nil
}
