package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic writes through a .tmp sibling and renames it into place,
// so a failed render never leaves a truncated file at path
func WriteAtomic(path string, write func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tempFilePath := path + ".tmp"
	f, err := os.OpenFile(tempFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tempFilePath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempFilePath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFilePath, path); err != nil {
		os.Remove(tempFilePath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// EnsureNonEmpty returns the size of path, removing it when empty
func EnsureNonEmpty(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		os.Remove(path)
		return 0, fmt.Errorf("%s is empty after write", path)
	}
	return info.Size(), nil
}
