package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"sdtp/internal/domain"
	_errors "sdtp/pkg/errors"
	"sdtp/pkg/logger"
)

// DefaultAbortTimeout bounds cleanup once the transfer context is gone.
const DefaultAbortTimeout = 30 * time.Second

// Result describes a verified and committed transfer.
type Result struct {
	SessionID   string
	FileID      int64
	Name        string
	Sink        string
	Destination string
	Digest      string
	Bytes       int64
	Parts       int
	Elapsed     time.Duration
}

// Transferer moves catalog files into a Sink, verifying each against its
// declared checksum. It holds no per-transfer state and may be shared.
type Transferer struct {
	sink         Sink
	readSize     int
	abortTimeout time.Duration
	logger       *logger.Logger
}

type Option func(*Transferer)

// WithReadSize sets the chunk size used when reading a network stream.
func WithReadSize(n int) Option {
	return func(t *Transferer) {
		if n > 0 {
			t.readSize = n
		}
	}
}

// WithAbortTimeout bounds how long cleanup may take after a failure.
func WithAbortTimeout(d time.Duration) Option {
	return func(t *Transferer) {
		if d > 0 {
			t.abortTimeout = d
		}
	}
}

func New(sink Sink, log *logger.Logger, opts ...Option) *Transferer {
	t := &Transferer{
		sink:         sink,
		readSize:     DefaultReadSize,
		abortTimeout: DefaultAbortTimeout,
		logger:       log.WithFields("component", "transfer", "sink", sink.Kind()),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Sink returns the destination this transferer writes to.
func (t *Transferer) Sink() Sink {
	return t.sink
}

// Get fetches file through opener and stores it. The checksum descriptor is
// validated before the stream is opened.
func (t *Transferer) Get(ctx context.Context, file domain.FileDescriptor, opener Opener) (*Result, error) {
	if _, err := ParseChecksum(file.Checksum); err != nil {
		return nil, fmt.Errorf("file %s: %w", file, err)
	}

	body, err := opener.OpenFile(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", file, err)
	}
	defer body.Close()

	return t.Transfer(ctx, file, NewReaderSource(body, t.readSize))
}

// Transfer consumes src into the sink. On success the destination holds
// exactly the bytes of src. On any failure the destination is aborted before
// the error is returned, and an abort failure is joined to the cause.
func (t *Transferer) Transfer(ctx context.Context, file domain.FileDescriptor, src Source) (res *Result, err error) {
	checksum, err := ParseChecksum(file.Checksum)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", file, err)
	}
	digest, err := NewDigest(checksum.Algorithm)
	if err != nil {
		return nil, err
	}

	var segments *SegmentBuffer
	if size := t.sink.SegmentSize(); size > 0 {
		if segments, err = NewSegmentBuffer(size); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	s := newSession(t.sink, file, t.logger)
	log := s.logger.WithField("name", file.Name)

	if err := s.open(ctx); err != nil {
		return nil, fmt.Errorf("file %s: %w", file, err)
	}

	defer func() {
		if !s.active() {
			return
		}
		// cleanup must run even when ctx is what failed the transfer
		abortCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.abortTimeout)
		defer cancel()
		if abortErr := s.abort(abortCtx); abortErr != nil {
			err = errors.Join(err, fmt.Errorf("cleanup of %s: %w", s.handle.Destination(), abortErr))
		}
		log.Warn("transfer aborted", "destination", s.handle.Destination(), "error", err)
		res = nil
	}()

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("file %s: %w", file, ctxErr)
		}

		chunk, readErr := src.Next()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, _errors.NewTransportError("read", file.String(), 0, readErr)
		}

		// digest first: every byte is hashed exactly once, in stream order
		if _, err := digest.Write(chunk); err != nil {
			return nil, fmt.Errorf("file %s: %w", file, err)
		}

		if segments == nil {
			if err := s.write(ctx, chunk); err != nil {
				return nil, err
			}
			continue
		}
		for _, segment := range segments.Feed(chunk) {
			if err := s.write(ctx, segment); err != nil {
				return nil, err
			}
		}
	}

	if segments != nil {
		if tail, ok := segments.Flush(); ok {
			if err := s.write(ctx, tail); err != nil {
				return nil, err
			}
		}
	}

	actual := digest.Finalize()
	if !digest.Matches(checksum.Digest) {
		return nil, &_errors.ChecksumMismatchError{
			FileID:   file.ID,
			Name:     file.Name,
			Expected: checksum.Digest,
			Actual:   actual,
		}
	}

	if err := s.commit(ctx); err != nil {
		return nil, err
	}

	res = &Result{
		SessionID:   s.id,
		FileID:      file.ID,
		Name:        file.Name,
		Sink:        t.sink.Kind(),
		Destination: s.handle.Destination(),
		Digest:      Checksum{Algorithm: checksum.Algorithm, Digest: actual}.String(),
		Bytes:       s.written,
		Parts:       len(s.parts),
		Elapsed:     time.Since(start),
	}

	log.Info("transfer completed",
		"destination", res.Destination,
		"size", humanize.IBytes(uint64(res.Bytes)),
		"parts", res.Parts,
		"elapsed", res.Elapsed)

	return res, nil
}
