package transfer

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"strings"

	_errors "sdtp/pkg/errors"
)

// Digest accumulates a running hash over every byte of a stream, in stream
// order. It is single use: after Finalize further writes are rejected.
type Digest struct {
	algorithm Algorithm
	hash      hash.Hash
	sum       string
	finalized bool
}

// NewDigest creates an accumulator for the given algorithm.
func NewDigest(algorithm Algorithm) (*Digest, error) {
	var h hash.Hash
	switch algorithm {
	case MD5:
		h = md5.New()
	default:
		return nil, &_errors.UnsupportedAlgorithmError{Algorithm: string(algorithm)}
	}
	return &Digest{algorithm: algorithm, hash: h}, nil
}

// Write folds p into the digest. It never returns a short write.
func (d *Digest) Write(p []byte) (int, error) {
	if d.finalized {
		return 0, _errors.ErrDigestFinalized
	}
	return d.hash.Write(p)
}

// Finalize returns the lowercase hex digest and freezes the accumulator.
// Calling it again returns the same value.
func (d *Digest) Finalize() string {
	if !d.finalized {
		d.sum = hex.EncodeToString(d.hash.Sum(nil))
		d.finalized = true
	}
	return d.sum
}

// Matches finalizes the digest and compares it with expected, ignoring the
// case of expected.
func (d *Digest) Matches(expected string) bool {
	return d.Finalize() == strings.ToLower(expected)
}

func (d *Digest) Algorithm() Algorithm {
	return d.algorithm
}
