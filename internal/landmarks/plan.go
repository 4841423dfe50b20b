package landmarks

import (
	"os"
	"path/filepath"
	"strings"
)

// NpyExt is the extension of the source array files.
const NpyExt = ".npy"

// JSONExt is the extension of the converted files.
const JSONExt = ".json"

// Mapping is a single planned conversion: one source .npy file and the
// destination .json path mirrored under the destination root.
type Mapping struct {
	Src      string
	Dst      string
	Category string
	Name     string
}

// Plan walks the immediate subdirectories (categories) of srcRoot and returns
// the full list of source/destination pairs before any file is touched.
// Entries that are not directories and files without the .npy extension are
// skipped. A missing srcRoot is reported via os.IsNotExist on the error.
func Plan(srcRoot, dstRoot string) ([]Mapping, error) {
	categories, err := os.ReadDir(srcRoot)
	if err != nil {
		return nil, err
	}

	var plan []Mapping
	for _, cat := range categories {
		if !cat.IsDir() {
			continue
		}

		files, err := os.ReadDir(filepath.Join(srcRoot, cat.Name()))
		if err != nil {
			log.Warnf("landmarks: skipping category %s: %v", cat.Name(), err)
			continue
		}

		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), NpyExt) {
				continue
			}
			name := strings.TrimSuffix(f.Name(), NpyExt)
			plan = append(plan, Mapping{
				Src:      filepath.Join(srcRoot, cat.Name(), f.Name()),
				Dst:      filepath.Join(dstRoot, cat.Name(), name+JSONExt),
				Category: cat.Name(),
				Name:     name,
			})
		}
	}
	return plan, nil
}

// PlanJSON mirrors Plan for the converted tree: it lists every .json landmark
// set under root, one category level deep. Used by the index command.
func PlanJSON(root string) ([]Mapping, error) {
	categories, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var plan []Mapping
	for _, cat := range categories {
		if !cat.IsDir() {
			continue
		}

		files, err := os.ReadDir(filepath.Join(root, cat.Name()))
		if err != nil {
			log.Warnf("landmarks: skipping category %s: %v", cat.Name(), err)
			continue
		}

		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), JSONExt) {
				continue
			}
			name := strings.TrimSuffix(f.Name(), JSONExt)
			plan = append(plan, Mapping{
				Src:      filepath.Join(root, cat.Name(), f.Name()),
				Category: cat.Name(),
				Name:     name,
			})
		}
	}
	return plan, nil
}
