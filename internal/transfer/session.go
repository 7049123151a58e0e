package transfer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sdtp/internal/domain"
	_errors "sdtp/pkg/errors"
	"sdtp/pkg/logger"
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateInitiated
	stateUploading
	stateCompleted
	stateAborted
)

func (s sessionState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateInitiated:
		return "initiated"
	case stateUploading:
		return "uploading"
	case stateCompleted:
		return "completed"
	case stateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// session is the per-transfer state: one sink handle, the receipts returned
// by it, and the state machine guarding the handle. It is never shared.
type session struct {
	id      string
	file    domain.FileDescriptor
	sink    Sink
	handle  Handle
	state   sessionState
	parts   []domain.UploadPart
	written int64
	logger  *logger.Logger
}

func newSession(sink Sink, file domain.FileDescriptor, log *logger.Logger) *session {
	id := uuid.NewString()
	return &session{
		id:     id,
		file:   file,
		sink:   sink,
		state:  stateIdle,
		logger: log.WithFields("session", id, "file_id", file.ID),
	}
}

// open begins the destination. It must be the first call on a session.
func (s *session) open(ctx context.Context) error {
	if s.state != stateIdle {
		return fmt.Errorf("open session in state %s: %w", s.state, _errors.ErrSessionClosed)
	}
	handle, err := s.sink.Open(ctx, s.file)
	if err != nil {
		return err
	}
	s.handle = handle
	s.state = stateInitiated
	s.logger.Debug("session opened", "sink", s.sink.Kind(), "destination", handle.Destination())
	return nil
}

func (s *session) write(ctx context.Context, p []byte) error {
	if !s.active() {
		return fmt.Errorf("write in state %s: %w", s.state, _errors.ErrSessionClosed)
	}
	part, err := s.handle.Write(ctx, p)
	if err != nil {
		return err
	}
	s.state = stateUploading
	s.written += int64(len(p))
	if part.PartNumber > 0 {
		s.parts = append(s.parts, part)
	}
	return nil
}

func (s *session) commit(ctx context.Context) error {
	if !s.active() {
		return fmt.Errorf("commit in state %s: %w", s.state, _errors.ErrSessionClosed)
	}
	if err := s.handle.Commit(ctx, s.parts); err != nil {
		return err
	}
	s.state = stateCompleted
	return nil
}

// abort releases the destination. Aborting a session that never opened, or
// one that already finished, is a no-op.
func (s *session) abort(ctx context.Context) error {
	if !s.active() {
		return nil
	}
	err := s.handle.Abort(ctx)
	// the handle is unusable after an abort attempt even when the attempt failed
	s.state = stateAborted
	if err != nil {
		s.logger.Error("abort failed", "destination", s.handle.Destination(), "error", err)
		return err
	}
	s.logger.Debug("session aborted", "destination", s.handle.Destination())
	return nil
}

// active reports whether the handle still needs a commit or an abort.
func (s *session) active() bool {
	return s.state == stateInitiated || s.state == stateUploading
}
