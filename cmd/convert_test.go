package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Ammar880121/facemorph-web/internal/landmarks"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

func writeNpyFixture(t *testing.T, path string, rows, cols int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}

	flat := make([]float64, rows*cols)
	for i := range flat {
		flat[i] = float64(i) * 1.5
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := npyio.Write(f, mat.NewDense(rows, cols, flat)); err != nil {
		t.Fatal(err)
	}
}

func TestRunConvert(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "web")

	writeNpyFixture(t, filepath.Join(src, "female", "diana.npy"), 68, 2)
	writeNpyFixture(t, filepath.Join(src, "female", "cleo.npy"), 5, 2)
	writeNpyFixture(t, filepath.Join(src, "male", "caesar.npy"), 12, 2)

	// One corrupt file must not abort the batch.
	if err := os.WriteFile(filepath.Join(src, "male", "broken.npy"), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	// Non-npy files are never converted.
	if err := os.WriteFile(filepath.Join(src, "female", "readme.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	runConvert(Options{SrcDir: src, DstDir: dst})

	wantFiles := []string{
		filepath.Join(dst, "female", "diana.json"),
		filepath.Join(dst, "female", "cleo.json"),
		filepath.Join(dst, "male", "caesar.json"),
	}
	for _, f := range wantFiles {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("expected converted file %s: %v", f, err)
		}
	}

	for _, f := range []string{
		filepath.Join(dst, "male", "broken.json"),
		filepath.Join(dst, "female", "readme.json"),
		filepath.Join(dst, "female", "readme.txt"),
	} {
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Errorf("unexpected destination file %s", f)
		}
	}

	// Converted data must survive the round trip.
	set, err := landmarks.ReadJSON(filepath.Join(dst, "female", "diana.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 68 || len(set[0]) != 2 {
		t.Errorf("diana.json has shape (%d, %d), want (68, 2)", len(set), len(set[0]))
	}
}

func TestRunConvertMissingSource(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "web")

	// Must report and return without any destination I/O or panic.
	runConvert(Options{SrcDir: filepath.Join(t.TempDir(), "nope"), DstDir: dst})

	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("expected no destination tree for a missing source root")
	}
}

func TestRunConvertIsIdempotent(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "web")
	writeNpyFixture(t, filepath.Join(src, "female", "diana.npy"), 4, 2)

	runConvert(Options{SrcDir: src, DstDir: dst})
	first, err := landmarks.ReadJSON(filepath.Join(dst, "female", "diana.json"))
	if err != nil {
		t.Fatal(err)
	}

	// Re-running overwrites unconditionally and yields the same output.
	runConvert(Options{SrcDir: src, DstDir: dst})
	second, err := landmarks.ReadJSON(filepath.Join(dst, "female", "diana.json"))
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Errorf("re-run changed output: %d vs %d points", len(first), len(second))
	}
}
