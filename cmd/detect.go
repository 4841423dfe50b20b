package cmd

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/Ammar880121/facemorph-web/internal/detect"
	"github.com/Ammar880121/facemorph-web/internal/landmarks"
	"github.com/Ammar880121/facemorph-web/internal/utils"
	"github.com/spf13/cobra"
)

// Built-in single-case defaults, kept for manual smoke-testing.
const (
	defaultDetectImage  = "assets/female/female_history/diana_new.jpg"
	defaultDetectOutput = "assets/landmarks/female/female_history/diana_new.json"
)

var detectOpts Options

// newDetector builds the detection backend. Overridable so the command logic
// can be exercised with a stub detector.
var newDetector = func(opts Options) (detect.Detector, error) {
	cfg := detect.DefaultConfig()
	cfg.MinConfidence = opts.MinConfidence
	if opts.Perturbs > 0 {
		cfg.Perturbs = opts.Perturbs
	}
	return detect.NewPigoDetector(opts.CascadeDir, cfg)
}

var detectCmd = &cobra.Command{
	Use:   "detect [image_path] [output_path]",
	Short: "Detect facial landmarks in an image and write them as JSON",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		imagePath, outputPath := defaultDetectImage, defaultDetectOutput
		if len(args) > 0 {
			imagePath = args[0]
		}
		if len(args) > 1 {
			outputPath = args[1]
		}
		return runDetect(imagePath, outputPath, detectOpts)
	},
}

func init() {
	cascades := os.Getenv("FACEMORPH_CASCADES")
	if cascades == "" {
		cascades = "cascades"
	}
	detectCmd.Flags().StringVarP(&detectOpts.CascadeDir, "cascades", "c", cascades, "Directory with the pigo cascade files")
	detectCmd.Flags().Float64VarP(&detectOpts.MinConfidence, "threshold", "t", 0.5, "Minimum face detection confidence (0.0-1.0)")
	detectCmd.Flags().IntVarP(&detectOpts.Perturbs, "perturbs", "p", 0, "Landmark localization perturbations (0 = backend default)")
	rootCmd.AddCommand(detectCmd)
}

// runDetect is a single linear pass: decode, detect, rescale, write.
// Any failure is reported and returned so Execute exits 1.
func runDetect(imagePath, outputPath string, opts Options) error {
	if !utils.FileExists(imagePath) {
		err := fmt.Errorf("no such file: %s", imagePath)
		utils.ShowError(fmt.Sprintf("Could not read image %s", imagePath), err)
		return err
	}

	img, err := readImage(imagePath)
	if err != nil {
		utils.ShowError(fmt.Sprintf("Could not read image %s", imagePath), err)
		return err
	}

	det, err := newDetector(opts)
	if err != nil {
		utils.ShowError("Failed to initialize detector", err)
		return err
	}
	defer det.Close()

	points, err := det.Detect(img)
	if err != nil {
		if errors.Is(err, detect.ErrNoFace) {
			utils.ShowError(fmt.Sprintf("No face detected in %s", imagePath), nil)
		} else {
			utils.ShowError("Detection failed", err)
		}
		return err
	}

	bounds := img.Bounds()
	set := detect.ToPixels(points, bounds.Dx(), bounds.Dy())

	if err := landmarks.WriteJSON(outputPath, set); err != nil {
		utils.ShowError(fmt.Sprintf("Failed to write %s", outputPath), err)
		return err
	}

	fmt.Fprintf(os.Stderr, "✅ Generated %d landmarks -> %s\n", len(set), outputPath)
	return nil
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
