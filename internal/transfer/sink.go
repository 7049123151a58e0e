package transfer

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

import (
	"context"

	"sdtp/internal/domain"
	"sdtp/pkg/logger"
	"sdtp/pkg/platform"
)

const (
	SinkLocal       = "local"
	SinkObjectStore = "object-store"

	DefaultSegmentSize = 8 * domain.MiB
)

// Sink is where verified bytes land. A Sink is shared by concurrent transfers;
// each transfer gets its own Handle from Open.
//
//counterfeiter:generate . Sink
type Sink interface {
	// Open starts a destination for file. Exactly one of Commit or Abort must
	// be called on the returned handle.
	Open(ctx context.Context, file domain.FileDescriptor) (Handle, error)
	// SegmentSize is the size of the segments Write expects, or 0 when the
	// handle accepts chunks of any size.
	SegmentSize() int
	Kind() string
}

// Handle is one open destination.
//
//counterfeiter:generate . Handle
type Handle interface {
	// Write stores p. Segmented sinks return the receipt of the stored part;
	// others return a zero UploadPart.
	Write(ctx context.Context, p []byte) (domain.UploadPart, error)
	// Commit makes the destination visible. parts are the receipts returned by
	// Write, in call order.
	Commit(ctx context.Context, parts []domain.UploadPart) error
	// Abort removes everything written so far.
	Abort(ctx context.Context) error
	Destination() string
}

// SinkConfig is the read-only storage configuration a sink is built from.
type SinkConfig struct {
	LocalPath         string
	RefuseUnsafeNames bool
	Bucket            string
	KeyPrefix         string
	SegmentSize       int
}

// NewSink returns an object store sink when both a store client and a bucket
// are present, and a local sink otherwise.
func NewSink(cfg SinkConfig, store MultipartAPI, fs platform.Platform, log *logger.Logger) (Sink, error) {
	if store != nil && cfg.Bucket != "" {
		return NewObjectStoreSink(store, cfg.Bucket, cfg.KeyPrefix, cfg.SegmentSize, log)
	}
	return NewLocalSink(cfg.LocalPath, fs, cfg.RefuseUnsafeNames, log), nil
}
