package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"format", &FormatError{Descriptor: "md5", Reason: "missing separator"}, ErrInvalidChecksum},
		{"algorithm", &UnsupportedAlgorithmError{Algorithm: "sha1"}, ErrUnsupportedAlgorithm},
		{"mismatch", &ChecksumMismatchError{FileID: 1, Name: "a", Expected: "x", Actual: "y"}, ErrChecksumMismatch},
		{"transport", NewTransportError("GET", "https://h/files/1", 500, nil), ErrTransport},
		{"storage", NewStorageError("local", "write", "/tmp/a", io.ErrShortWrite), ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("transfer failed: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestStorageErrorKeepsCause(t *testing.T) {
	err := NewStorageError("object-store", "upload part", "bucket/key", io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "upload part", storageErr.Op)
	assert.Contains(t, err.Error(), "object-store sink")
}

func TestTransportErrorMessage(t *testing.T) {
	withStatus := NewTransportError("GET", "https://h/files/7", 404, nil)
	assert.Contains(t, withStatus.Error(), "unexpected status 404")

	noResponse := NewTransportError("GET", "https://h/files/7", 0, io.EOF)
	assert.NotContains(t, noResponse.Error(), "status")
	assert.ErrorIs(t, noResponse, io.EOF)
}

func TestChecksumMismatchMessageCarriesBothDigests(t *testing.T) {
	err := &ChecksumMismatchError{FileID: 3, Name: "f.bin", Expected: "aaa", Actual: "bbb"}

	assert.Contains(t, err.Error(), "aaa")
	assert.Contains(t, err.Error(), "bbb")
	assert.Contains(t, err.Error(), "f.bin")
}
