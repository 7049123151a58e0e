package platform

import (
	"os"

	"sdtp/pkg/logger"
)

// OSPlatform implements Platform on top of the os package.
type OSPlatform struct {
	logger *logger.Logger
}

// NewOSPlatform creates a platform backed by the real filesystem
func NewOSPlatform() *OSPlatform {
	return &OSPlatform{
		logger: logger.New().WithField("component", "platform"),
	}
}

func (p *OSPlatform) Create(name string) (File, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, NewPlatformError("create", name, err)
	}
	return f, nil
}

func (p *OSPlatform) Remove(name string) error {
	if err := os.Remove(name); err != nil {
		return NewPlatformError("remove", name, err)
	}
	p.logger.Debug("removed file", "path", name)
	return nil
}

func (p *OSPlatform) Rename(oldpath, newpath string) error {
	if err := os.Rename(oldpath, newpath); err != nil {
		return NewPlatformError("rename", newpath, err)
	}
	return nil
}

func (p *OSPlatform) MkdirAll(dir string, perm os.FileMode) error {
	if err := os.MkdirAll(dir, perm); err != nil {
		return NewPlatformError("mkdir", dir, err)
	}
	return nil
}

// IsNotExist also sees through PlatformError wrapping.
func (p *OSPlatform) IsNotExist(err error) bool {
	return IsNotExist(err)
}
