package transfer

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// memStore is an in-memory multipart object store with the S3 behaviors the
// sink relies on: parts are addressed by number, completion concatenates the
// submitted parts in order, and abort discards everything uploaded.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads map[string]*memUpload

	// MinPartSize rejects completion when a non-final part is smaller. Zero disables it.
	MinPartSize int

	FailUploadPartAt int32
	FailComplete     bool
	FailAbort        bool

	aborted   int
	completed int
}

type memUpload struct {
	bucket string
	key    string
	parts  map[int32][]byte
	etags  map[int32]string
}

var errInjected = errors.New("injected store failure")

func newMemStore() *memStore {
	return &memStore{
		objects: make(map[string][]byte),
		uploads: make(map[string]*memUpload),
	}
}

func objectID(bucket, key string) string { return bucket + "/" + key }

func (m *memStore) Object(bucket, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[objectID(bucket, key)]
	return data, ok
}

func (m *memStore) PendingUploads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploads)
}

func (m *memStore) CreateMultipartUpload(_ context.Context, in *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.uploads[id] = &memUpload{
		bucket: aws.ToString(in.Bucket),
		key:    aws.ToString(in.Key),
		parts:  make(map[int32][]byte),
		etags:  make(map[int32]string),
	}
	return &s3.CreateMultipartUploadOutput{
		Bucket:   in.Bucket,
		Key:      in.Key,
		UploadId: aws.String(id),
	}, nil
}

func (m *memStore) UploadPart(_ context.Context, in *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	partNumber := aws.ToInt32(in.PartNumber)
	if m.FailUploadPartAt != 0 && partNumber == m.FailUploadPartAt {
		return nil, errInjected
	}

	upload, ok := m.uploads[aws.ToString(in.UploadId)]
	if !ok {
		return nil, &types.NoSuchUpload{}
	}
	if partNumber < 1 || partNumber > MaxParts {
		return nil, fmt.Errorf("invalid part number %d", partNumber)
	}
	if in.ContentLength != nil && aws.ToInt64(in.ContentLength) != int64(len(body)) {
		return nil, fmt.Errorf("content length %d does not match body of %d bytes", aws.ToInt64(in.ContentLength), len(body))
	}

	sum := md5.Sum(body)
	if in.ContentMD5 != nil && aws.ToString(in.ContentMD5) != base64.StdEncoding.EncodeToString(sum[:]) {
		return nil, errors.New("BadDigest: the Content-MD5 you specified did not match what was received")
	}

	etag := `"` + hex.EncodeToString(sum[:]) + `"`
	upload.parts[partNumber] = body
	upload.etags[partNumber] = etag
	return &s3.UploadPartOutput{ETag: aws.String(etag)}, nil
}

func (m *memStore) CompleteMultipartUpload(_ context.Context, in *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailComplete {
		return nil, errInjected
	}

	id := aws.ToString(in.UploadId)
	upload, ok := m.uploads[id]
	if !ok {
		return nil, &types.NoSuchUpload{}
	}
	if in.MultipartUpload == nil || len(in.MultipartUpload.Parts) == 0 {
		return nil, errors.New("MalformedXML: the multipart upload must contain at least one part")
	}

	parts := in.MultipartUpload.Parts
	if !sort.SliceIsSorted(parts, func(i, j int) bool {
		return aws.ToInt32(parts[i].PartNumber) < aws.ToInt32(parts[j].PartNumber)
	}) {
		return nil, errors.New("InvalidPartOrder: parts must be in ascending order")
	}

	var object bytes.Buffer
	for i, part := range parts {
		number := aws.ToInt32(part.PartNumber)
		data, ok := upload.parts[number]
		if !ok || upload.etags[number] != aws.ToString(part.ETag) {
			return nil, fmt.Errorf("InvalidPart: part %d not found", number)
		}
		if m.MinPartSize > 0 && i < len(parts)-1 && len(data) < m.MinPartSize {
			return nil, fmt.Errorf("EntityTooSmall: part %d is %d bytes", number, len(data))
		}
		object.Write(data)
	}

	m.objects[objectID(upload.bucket, upload.key)] = object.Bytes()
	delete(m.uploads, id)
	m.completed++
	return &s3.CompleteMultipartUploadOutput{Bucket: in.Bucket, Key: in.Key}, nil
}

func (m *memStore) AbortMultipartUpload(_ context.Context, in *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAbort {
		return nil, errInjected
	}

	id := aws.ToString(in.UploadId)
	if _, ok := m.uploads[id]; !ok {
		return nil, &types.NoSuchUpload{}
	}
	delete(m.uploads, id)
	m.aborted++
	return &s3.AbortMultipartUploadOutput{}, nil
}

func (m *memStore) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	var data []byte
	if in.Body != nil {
		var err error
		if data, err = io.ReadAll(in.Body); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectID(aws.ToString(in.Bucket), aws.ToString(in.Key))] = data
	return &s3.PutObjectOutput{}, nil
}

var _ MultipartAPI = (*memStore)(nil)
