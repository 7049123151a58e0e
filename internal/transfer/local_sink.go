package transfer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"sdtp/internal/domain"
	_errors "sdtp/pkg/errors"
	"sdtp/pkg/logger"
	"sdtp/pkg/platform"
)

// LocalSink writes files below an optional base directory.
type LocalSink struct {
	basePath     string
	platform     platform.Platform
	refuseUnsafe bool
	logger       *logger.Logger
}

var _ Sink = (*LocalSink)(nil)

// NewLocalSink creates a sink rooted at basePath; an empty basePath writes
// relative to the working directory.
func NewLocalSink(basePath string, fs platform.Platform, refuseUnsafe bool, log *logger.Logger) *LocalSink {
	if fs == nil {
		fs = platform.NewPlatform()
	}
	return &LocalSink{
		basePath:     basePath,
		platform:     fs,
		refuseUnsafe: refuseUnsafe,
		logger:       log.WithField("component", "local-sink"),
	}
}

func (s *LocalSink) Kind() string { return SinkLocal }

func (s *LocalSink) SegmentSize() int { return 0 }

// Resolve returns the destination path for a catalog file name.
func (s *LocalSink) Resolve(name string) string {
	if s.basePath == "" {
		return name
	}
	return filepath.Join(s.basePath, name)
}

func (s *LocalSink) Open(ctx context.Context, file domain.FileDescriptor) (Handle, error) {
	path := s.Resolve(file.Name)

	if reason := domain.UnsafeNameReason(file.Name); reason != "" {
		if s.refuseUnsafe {
			return nil, _errors.NewStorageError(SinkLocal, "open", path,
				fmt.Errorf("refusing file name %q: %s", file.Name, reason))
		}
		s.logger.Warn("file name is used without sanitization", "name", file.Name, "reason", reason)
	}

	if s.basePath != "" {
		if err := s.platform.MkdirAll(s.basePath, 0755); err != nil {
			return nil, _errors.NewStorageError(SinkLocal, "open", path, err)
		}
	}

	tmp := partialPath(path)
	f, err := s.platform.Create(tmp)
	if err != nil {
		return nil, _errors.NewStorageError(SinkLocal, "open", path, err)
	}

	s.logger.Debug("destination opened", "path", path, "partial", tmp)
	return &localHandle{path: path, tmp: tmp, file: f, platform: s.platform}, nil
}

// partialPath names the sibling file bytes are written to until commit, so an
// existing file at path is only replaced by a verified one.
func partialPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+".part")
}

type localHandle struct {
	path      string
	tmp       string
	file      platform.File
	platform  platform.Platform
	closed    bool
	committed bool
}

func (h *localHandle) Destination() string { return h.path }

func (h *localHandle) Write(_ context.Context, p []byte) (domain.UploadPart, error) {
	if h.closed {
		return domain.UploadPart{}, _errors.ErrSessionClosed
	}
	if _, err := h.file.Write(p); err != nil {
		return domain.UploadPart{}, _errors.NewStorageError(SinkLocal, "write", h.path, err)
	}
	return domain.UploadPart{}, nil
}

func (h *localHandle) Commit(_ context.Context, _ []domain.UploadPart) error {
	if h.closed {
		return _errors.ErrSessionClosed
	}
	if err := h.file.Sync(); err != nil {
		return _errors.NewStorageError(SinkLocal, "commit", h.path, err)
	}
	h.closed = true
	if err := h.file.Close(); err != nil {
		return _errors.NewStorageError(SinkLocal, "commit", h.path, err)
	}
	if err := h.platform.Rename(h.tmp, h.path); err != nil {
		return _errors.NewStorageError(SinkLocal, "commit", h.path, err)
	}
	h.committed = true
	return nil
}

// Abort removes the partial file. A destination that existed before Open is
// left untouched.
func (h *localHandle) Abort(_ context.Context) error {
	if h.committed {
		return nil
	}
	if !h.closed {
		h.closed = true
		// the file is removed below; a close error has nothing left to protect
		_ = h.file.Close()
	}
	if err := h.platform.Remove(h.tmp); err != nil && !h.platform.IsNotExist(err) {
		return _errors.NewStorageError(SinkLocal, "abort", h.path, err)
	}
	return nil
}
