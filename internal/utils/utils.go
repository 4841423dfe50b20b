package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// ShowError prints a formatted error box to stderr without exiting.
func ShowError(context string, err error) {
	fmt.Fprintf(os.Stderr, "\n---------------------------------------------------------\n")
	fmt.Fprintf(os.Stderr, "🚨 FACEMORPH ERROR: %s\n", context)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DETAILS: %v\n", err)
	}
	fmt.Fprintf(os.Stderr, "---------------------------------------------------------\n")
}

// Die is the unified exit strategy: it prints a formatted error box and
// terminates the process with status 1.
func Die(context string, err error) {
	ShowError(context, err)
	os.Exit(1)
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ProjectRoot walks up from the working directory looking for the nearest
// ancestor containing an assets directory. It falls back to the working
// directory itself, so relative defaults still behave sensibly when the tool
// runs outside a checkout.
func ProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}

	for probe := dir; ; {
		if info, err := os.Stat(filepath.Join(probe, "assets")); err == nil && info.IsDir() {
			return probe
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return dir
		}
		probe = parent
	}
}

// SourceHash creates a deterministic hash for a source file based on its
// path, size, and modification time. Used to detect stale catalog entries
// without reading file contents.
func SourceHash(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	input := fmt.Sprintf("%s-%d-%d", path, info.Size(), info.ModTime().UnixNano())
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:]), nil
}
