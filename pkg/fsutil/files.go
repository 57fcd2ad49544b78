package fsutil

import (
	"fmt"
	"os"
)

// CreateFilePerm creates a new file with the specified permissions.
func CreateFilePerm(name string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}

// WriteFile writes data verbatim to name, truncating any existing content.
func WriteFile(name string, data []byte) error {
	f, err := CreateFilePerm(name, FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", name, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", name, err)
	}
	return nil
}
