package transfer

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dustin/go-humanize"

	"sdtp/internal/domain"
	_errors "sdtp/pkg/errors"
	"sdtp/pkg/logger"
)

// MaxParts is the largest part number an S3 multipart upload accepts.
const MaxParts = 10000

// MultipartAPI is the subset of the S3 client used by ObjectStoreSink.
// *s3.Client satisfies it.
type MultipartAPI interface {
	CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error)
	UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error)
	CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error)
	AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ MultipartAPI = (*s3.Client)(nil)

// ObjectStoreSink stores files as objects through a multipart upload.
type ObjectStoreSink struct {
	api         MultipartAPI
	bucket      string
	keyPrefix   string
	segmentSize int
	logger      *logger.Logger
}

var _ Sink = (*ObjectStoreSink)(nil)

// NewObjectStoreSink creates a sink uploading to bucket in segments of segmentSize bytes.
func NewObjectStoreSink(api MultipartAPI, bucket, keyPrefix string, segmentSize int, log *logger.Logger) (*ObjectStoreSink, error) {
	if api == nil {
		return nil, fmt.Errorf("object store client is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("object store bucket is required")
	}
	if segmentSize < 1 {
		return nil, fmt.Errorf("segment size must be at least 1 byte, got %d", segmentSize)
	}

	log = log.WithFields("component", "object-store-sink", "bucket", bucket)
	if segmentSize < 5*domain.MiB {
		log.Warn("segment size is below the S3 minimum part size; multi-part objects may be rejected",
			"segmentSize", humanize.IBytes(uint64(segmentSize)))
	}

	return &ObjectStoreSink{
		api:         api,
		bucket:      bucket,
		keyPrefix:   keyPrefix,
		segmentSize: segmentSize,
		logger:      log,
	}, nil
}

func (s *ObjectStoreSink) Kind() string { return SinkObjectStore }

func (s *ObjectStoreSink) SegmentSize() int { return s.segmentSize }

// Key returns the object key for a catalog file name.
func (s *ObjectStoreSink) Key(name string) string {
	return s.keyPrefix + name
}

func (s *ObjectStoreSink) Open(ctx context.Context, file domain.FileDescriptor) (Handle, error) {
	key := s.Key(file.Name)
	destination := s.bucket + "/" + key

	out, err := s.api.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, _errors.NewStorageError(SinkObjectStore, "create multipart upload", destination, err)
	}

	uploadID := aws.ToString(out.UploadId)
	s.logger.Debug("multipart upload initiated", "key", key, "uploadId", uploadID)

	return &storeHandle{
		sink:        s,
		key:         key,
		destination: destination,
		uploadID:    uploadID,
	}, nil
}

type storeHandle struct {
	sink        *ObjectStoreSink
	key         string
	destination string
	uploadID    string
	lastPart    int32
	aborted     bool
}

func (h *storeHandle) Destination() string { return h.destination }

func (h *storeHandle) Write(ctx context.Context, segment []byte) (domain.UploadPart, error) {
	if h.lastPart >= MaxParts {
		return domain.UploadPart{}, _errors.NewStorageError(SinkObjectStore, "upload part", h.destination,
			fmt.Errorf("more than %d parts; increase the chunk size", MaxParts))
	}
	partNumber := h.lastPart + 1

	sum := md5.Sum(segment)
	out, err := h.sink.api.UploadPart(ctx, &s3.UploadPartInput{
		Bucket:        aws.String(h.sink.bucket),
		Key:           aws.String(h.key),
		UploadId:      aws.String(h.uploadID),
		PartNumber:    aws.Int32(partNumber),
		Body:          bytes.NewReader(segment),
		ContentLength: aws.Int64(int64(len(segment))),
		ContentMD5:    aws.String(base64.StdEncoding.EncodeToString(sum[:])),
	})
	if err != nil {
		return domain.UploadPart{}, _errors.NewStorageError(SinkObjectStore,
			fmt.Sprintf("upload part %d", partNumber), h.destination, err)
	}
	h.lastPart = partNumber

	h.sink.logger.Debug("uploaded part", "key", h.key, "part", partNumber,
		"size", humanize.IBytes(uint64(len(segment))))

	return domain.UploadPart{
		PartNumber: partNumber,
		ETag:       aws.ToString(out.ETag),
		Size:       int64(len(segment)),
	}, nil
}

func (h *storeHandle) Commit(ctx context.Context, parts []domain.UploadPart) error {
	if len(parts) == 0 {
		return h.commitEmpty(ctx)
	}

	completed := make([]types.CompletedPart, 0, len(parts))
	for _, part := range parts {
		completed = append(completed, types.CompletedPart{
			ETag:       aws.String(part.ETag),
			PartNumber: aws.Int32(part.PartNumber),
		})
	}

	_, err := h.sink.api.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(h.sink.bucket),
		Key:             aws.String(h.key),
		UploadId:        aws.String(h.uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		return _errors.NewStorageError(SinkObjectStore, "complete multipart upload", h.destination, err)
	}

	h.sink.logger.Debug("multipart upload completed", "key", h.key, "parts", len(parts))
	return nil
}

// commitEmpty stores a zero-length object. S3 refuses to complete a multipart
// upload without parts, so the upload is aborted and the object is put directly.
func (h *storeHandle) commitEmpty(ctx context.Context) error {
	if err := h.Abort(ctx); err != nil {
		return err
	}
	_, err := h.sink.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.sink.bucket),
		Key:           aws.String(h.key),
		Body:          bytes.NewReader(nil),
		ContentLength: aws.Int64(0),
	})
	if err != nil {
		return _errors.NewStorageError(SinkObjectStore, "put empty object", h.destination, err)
	}
	return nil
}

func (h *storeHandle) Abort(ctx context.Context) error {
	if h.aborted {
		return nil
	}
	_, err := h.sink.api.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(h.sink.bucket),
		Key:      aws.String(h.key),
		UploadId: aws.String(h.uploadID),
	})
	if err != nil {
		return _errors.NewStorageError(SinkObjectStore, "abort multipart upload", h.destination, err)
	}
	h.aborted = true
	h.sink.logger.Debug("multipart upload aborted", "key", h.key, "uploadId", h.uploadID)
	return nil
}
