package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	KiB = 1024
	MiB = KiB * KiB
)

// FileDescriptor identifies one file offered by the catalog. Name is used verbatim
// as the destination file name or object key.
type FileDescriptor struct {
	ID       int64             `json:"file_id" validate:"gte=0"`
	Name     string            `json:"name" validate:"required,max=1024"`
	Checksum string            `json:"checksum" validate:"required"`
	Size     int64             `json:"size,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// FileList is the body returned by the catalog listing endpoint.
type FileList struct {
	Files []FileDescriptor `json:"files"`
}

// ListOptions narrows a catalog listing. Nil pointers are omitted from the request.
type ListOptions struct {
	MaxFiles    *int
	StartFileID *int64
	Tags        map[string]string
}

// UploadPart is the receipt for one segment stored in a multipart upload.
type UploadPart struct {
	PartNumber int32
	ETag       string
	Size       int64
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural fields of a catalog entry. The checksum
// descriptor itself is parsed by the transfer pipeline.
func (f FileDescriptor) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid file descriptor %d: %w", f.ID, err)
	}
	return nil
}

// String renders the descriptor for log lines.
func (f FileDescriptor) String() string {
	return fmt.Sprintf("%d:%s", f.ID, f.Name)
}

// UnsafeNameReason returns a non-empty reason when name would resolve outside the
// destination directory it is joined to. Names are never rewritten; callers
// decide whether to warn or refuse.
func UnsafeNameReason(name string) string {
	if name == "" {
		return "empty name"
	}

	cleaned := filepath.Clean(name)

	if filepath.IsAbs(cleaned) {
		return "absolute path"
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "path traversal"
	}

	return ""
}
