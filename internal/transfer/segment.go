package transfer

import "fmt"

// SegmentBuffer accumulates arbitrarily sized chunks into fixed-size segments
// for multipart upload. Segments come out in the order their bytes went in.
type SegmentBuffer struct {
	size int
	buf  []byte
}

// NewSegmentBuffer creates a buffer emitting segments of exactly size bytes.
func NewSegmentBuffer(size int) (*SegmentBuffer, error) {
	if size < 1 {
		return nil, fmt.Errorf("segment size must be at least 1 byte, got %d", size)
	}
	return &SegmentBuffer{size: size}, nil
}

// Feed appends chunk and returns every segment completed by it. The returned
// segments are owned by the caller and do not alias chunk.
func (b *SegmentBuffer) Feed(chunk []byte) [][]byte {
	if len(chunk) == 0 {
		return nil
	}
	b.buf = append(b.buf, chunk...)

	var segments [][]byte
	consumed := 0
	for len(b.buf)-consumed >= b.size {
		segment := make([]byte, b.size)
		copy(segment, b.buf[consumed:consumed+b.size])
		segments = append(segments, segment)
		consumed += b.size
	}

	if consumed > 0 {
		// shift the remainder to the front so the backing array is reused
		n := copy(b.buf, b.buf[consumed:])
		b.buf = b.buf[:n]
	}
	return segments
}

// Flush returns the trailing partial segment. It reports false when nothing is
// buffered, so an empty final segment is never produced.
func (b *SegmentBuffer) Flush() ([]byte, bool) {
	if len(b.buf) == 0 {
		return nil, false
	}
	segment := make([]byte, len(b.buf))
	copy(segment, b.buf)
	b.buf = b.buf[:0]
	return segment, true
}

// Buffered reports how many bytes are waiting for a full segment.
func (b *SegmentBuffer) Buffered() int {
	return len(b.buf)
}

// Size is the configured segment size.
func (b *SegmentBuffer) Size() int {
	return b.size
}
