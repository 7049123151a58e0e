package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidChecksum      = errors.New("invalid checksum descriptor")
	ErrUnsupportedAlgorithm = errors.New("unsupported checksum algorithm")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrTransport            = errors.New("transport failure")
	ErrStorage              = errors.New("storage failure")
	ErrSessionClosed        = errors.New("transfer session already closed")
	ErrDigestFinalized      = errors.New("digest already finalized")
	ErrInvalidRange         = errors.New("invalid file id range")
	ErrMissingServer        = errors.New("server host is not configured")
)

// FormatError reports a checksum descriptor that is not "<algorithm>:<hex-digest>".
type FormatError struct {
	Descriptor string
	Reason     string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid checksum descriptor %q: %s", e.Descriptor, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidChecksum
}

// UnsupportedAlgorithmError reports a well-formed descriptor whose algorithm is unknown.
type UnsupportedAlgorithmError struct {
	Algorithm string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported checksum algorithm: %s", e.Algorithm)
}

func (e *UnsupportedAlgorithmError) Unwrap() error {
	return ErrUnsupportedAlgorithm
}

// ChecksumMismatchError is returned once a stream has been fully consumed and its
// digest differs from the one the catalog declared. The destination has already
// been cleaned up when this error is seen.
type ChecksumMismatchError struct {
	FileID   int64
	Name     string
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for file %d (%s): computed %s != expected %s",
		e.FileID, e.Name, e.Actual, e.Expected)
}

func (e *ChecksumMismatchError) Unwrap() error {
	return ErrChecksumMismatch
}

// TransportError wraps a failed or non-2xx exchange with the catalog server.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// NewTransportError creates a transport error; err may be nil for a bare status failure.
func NewTransportError(op, url string, statusCode int, err error) error {
	if err == nil {
		err = errors.New("request failed")
	}
	return &TransportError{
		Op:         op,
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// StorageError wraps a failing sink operation.
type StorageError struct {
	Sink        string
	Op          string
	Destination string
	Err         error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s sink: %s %s failed: %v", e.Sink, e.Op, e.Destination, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// NewStorageError creates a storage error for the given sink kind and operation.
func NewStorageError(sink, op, destination string, err error) error {
	return &StorageError{
		Sink:        sink,
		Op:          op,
		Destination: destination,
		Err:         err,
	}
}
