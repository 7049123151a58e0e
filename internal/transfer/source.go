package transfer

import (
	"context"
	"io"
)

// DefaultReadSize matches the chunk size the catalog server streams with.
const DefaultReadSize = 8 * 1024

// Source is a lazy, single-pass sequence of byte chunks. Next returns io.EOF
// once the stream is exhausted; a chunk is only valid until the following call.
type Source interface {
	Next() ([]byte, error)
}

// Opener opens the byte stream of a catalog file. Implementations must fail
// before returning a body when the server does not answer with a 2xx status.
type Opener interface {
	OpenFile(ctx context.Context, fileID int64) (io.ReadCloser, error)
}

// ReaderSource adapts an io.Reader, typically an HTTP response body, into a Source.
type ReaderSource struct {
	r   io.Reader
	buf []byte
	err error // deferred until the bytes read alongside it are consumed
}

// NewReaderSource reads r in chunks of at most readSize bytes.
func NewReaderSource(r io.Reader, readSize int) *ReaderSource {
	if readSize < 1 {
		readSize = DefaultReadSize
	}
	return &ReaderSource{r: r, buf: make([]byte, readSize)}
}

func (s *ReaderSource) Next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	for {
		n, err := s.r.Read(s.buf)
		if err != nil {
			s.err = err
		}
		if n > 0 {
			return s.buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
		// zero bytes and no error: read again, as io.Reader permits this
	}
}

// SliceSource replays pre-split chunks. It is mostly useful in tests and for
// feeding in-memory payloads through the pipeline.
type SliceSource struct {
	chunks [][]byte
	pos    int
}

func NewSliceSource(chunks ...[]byte) *SliceSource {
	return &SliceSource{chunks: chunks}
}

func (s *SliceSource) Next() ([]byte, error) {
	for s.pos < len(s.chunks) {
		chunk := s.chunks[s.pos]
		s.pos++
		if len(chunk) > 0 {
			return chunk, nil
		}
	}
	return nil, io.EOF
}
