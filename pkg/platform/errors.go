package platform

import (
	"errors"
	"fmt"
	"io/fs"
)

// PlatformError represents a failed filesystem operation
type PlatformError struct {
	Operation string
	Path      string
	Err       error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform: %s %s failed: %v", e.Operation, e.Path, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewPlatformError creates a new platform error
func NewPlatformError(operation, path string, err error) error {
	return &PlatformError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// IsNotExist reports whether err, or anything it wraps, means the file does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
