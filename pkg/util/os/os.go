package os

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// EnsureDir checks if the specified directory exists, and optionally verifies if it is empty.
// If the directory does not exist, it is created with 0755 permissions and true is returned.
func EnsureDir(dir string, empty bool) (bool, error) {
	finfo, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}

	if !finfo.IsDir() {
		return false, fmt.Errorf("%s is not a directory", dir)
	}

	if !empty {
		return false, nil
	}

	isEmpty, err := IsDirEmpty(dir)
	if err != nil {
		return false, fmt.Errorf("failed to check if directory %s is empty: %w", dir, err)
	}

	if !isEmpty {
		return false, fmt.Errorf("directory %s is not empty", dir)
	}
	return false, nil
}

// IsDirEmpty returns true if the directory at path is empty.
func IsDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}
