// Package landmarks converts facial landmark arrays between the .npy files
// produced by the offline pipeline and the .json files the web front-end loads.
package landmarks

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/sbinet/npyio"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Set is one landmark set: an ordered list of rows, each row holding the
// coordinate values for a single landmark (typically [x, y]).
type Set [][]float64

// ReadNpy loads a 2D numeric array from a .npy file. Row order is preserved.
func ReadNpy(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("invalid npy header: %w", err)
	}

	shape := r.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, fmt.Errorf("expected a 2D array, got shape %v", shape)
	}
	if r.Header.Descr.Fortran {
		return nil, fmt.Errorf("fortran-ordered arrays are not supported")
	}
	rows, cols := shape[0], shape[1]

	var flat []float64
	switch dtype := r.Header.Descr.Type; dtype {
	case "<f8", ">f8", "f8":
		if err := r.Read(&flat); err != nil {
			return nil, fmt.Errorf("reading float64 data: %w", err)
		}
	case "<f4", ">f4", "f4":
		var f32 []float32
		if err := r.Read(&f32); err != nil {
			return nil, fmt.Errorf("reading float32 data: %w", err)
		}
		flat = make([]float64, len(f32))
		for i, v := range f32 {
			flat[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("unsupported npy dtype %q", dtype)
	}

	if len(flat) != rows*cols {
		return nil, fmt.Errorf("array shape %v does not match %d values", shape, len(flat))
	}

	set := make(Set, rows)
	for i := 0; i < rows; i++ {
		set[i] = flat[i*cols : (i+1)*cols]
	}
	return set, nil
}

// WriteJSON serializes the set as a top-level array of arrays, creating the
// parent directory if needed. Existing files are overwritten.
func WriteJSON(path string, set Set) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadJSON loads a previously written landmark set.
func ReadJSON(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("invalid landmark JSON: %w", err)
	}
	return set, nil
}

// Convert reads the mapping's source .npy file and writes the equivalent
// .json file at the destination. It returns the number of landmarks written.
func Convert(m Mapping) (int, error) {
	set, err := ReadNpy(m.Src)
	if err != nil {
		return 0, err
	}
	if err := WriteJSON(m.Dst, set); err != nil {
		return 0, err
	}
	log.Debugf("landmarks: %s/%s converted (%d points)", m.Category, m.Name, len(set))
	return len(set), nil
}
