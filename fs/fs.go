// Package fs defines the filesystem abstraction releaseci reads templates and
// release directories through and writes generated artifacts to.
//
// Backends live in subpackages; fs/billy provides OS-backed and in-memory
// implementations on top of go-billy so generation can be tested without disk.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadFS is the read-only subset of Filesystem.
type ReadFS interface {
	Exists(path string) (bool, error)
	ReadDir(dirname string) ([]os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// Filesystem is a read-write filesystem.
type Filesystem interface {
	ReadFS

	// WriteFile creates parent directories as needed.
	WriteFile(filename string, data []byte, perm os.FileMode) error
}

// GetAbs returns an absolute representation of path on the host filesystem.
func GetAbs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return abs, nil
}

// Exists reports whether path exists on the host filesystem.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
