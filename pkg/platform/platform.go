package platform

import (
	"io"
	"os"
)

// File is the writable handle returned by Platform.Create.
type File interface {
	io.Writer
	io.Closer
	Sync() error
	Name() string
}

// Platform abstracts the filesystem operations used by the client so that
// local sinks and configuration can be exercised without touching the disk.
type Platform interface {
	Create(name string) (File, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	MkdirAll(dir string, perm os.FileMode) error
	IsNotExist(err error) bool
}

// Ensure the OS implementation satisfies Platform
var _ Platform = (*OSPlatform)(nil)
