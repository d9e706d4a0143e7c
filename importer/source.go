package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// OSSource serves DICOM files from the local filesystem.
type OSSource struct{}

// List returns the DICOM file paths directly under dir: entries with a
// .dcm extension (any case) or no extension at all, which is how exported
// series commonly arrive.
func (OSSource) List(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".dcm" || ext == "" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// ReadFile returns the complete contents of one file.
func (OSSource) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}
