package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles output file placement and replacement
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager. Relative paths are resolved
// against baseOutputDir; an empty base means the working directory.
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// Resolve returns the full path for an output file
func (om *OutputManager) Resolve(path string) string {
	if filepath.IsAbs(path) || om.BaseOutputDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(om.BaseOutputDir, path)
}

// WriteFile replaces path with what write produces. The data goes to a
// temporary file in the same directory first and is renamed into place, so
// readers see either the old or the new file, never a partial one.
func (om *OutputManager) WriteFile(path string, write func(w io.Writer) error) (string, error) {
	full := om.Resolve(path)
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(full)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if err := write(tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, full); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", full, err)
	}
	return full, nil
}

// GetFileType determines the file type based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	default:
		return "unknown"
	}
}

// GetFileSize returns the size of a file in bytes. filePath is used as given.
func (om *OutputManager) GetFileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
