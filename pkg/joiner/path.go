// File: pkg/joiner/path.go
package joiner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath strips the enclosing braces that drag-and-drop sources wrap
// around paths containing spaces.
func NormalizePath(path string) string {
	return strings.Trim(path, "{}")
}

// checkInput reports whether path names an existing regular file.
func checkInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &os.PathError{Op: "stat", Path: path, Err: errIsDirectory}
	}
	return nil
}

var errIsDirectory = errors.New("is a directory")

// samePath reports whether a and b refer to the same file. Paths are compared
// after cleaning; when both exist, os.SameFile catches links and aliases.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}

	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}
