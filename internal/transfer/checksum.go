package transfer

import (
	"encoding/hex"
	"strings"

	_errors "sdtp/pkg/errors"
)

// Algorithm names a digest algorithm accepted in a checksum descriptor.
type Algorithm string

const (
	MD5 Algorithm = "md5"

	checksumSeparator = ":"
)

var supportedAlgorithms = map[Algorithm]bool{
	MD5: true,
}

// Checksum is the parsed form of a "<algorithm>:<hex-digest>" descriptor.
type Checksum struct {
	Algorithm Algorithm
	Digest    string
}

func (c Checksum) String() string {
	return string(c.Algorithm) + checksumSeparator + c.Digest
}

// ParseChecksum splits a descriptor on its single separator and checks that the
// algorithm is supported. The digest is returned lowercased.
func ParseChecksum(descriptor string) (Checksum, error) {
	if n := strings.Count(descriptor, checksumSeparator); n != 1 {
		reason := "missing separator"
		if n > 1 {
			reason = "more than one separator"
		}
		return Checksum{}, &_errors.FormatError{Descriptor: descriptor, Reason: reason}
	}

	algorithm, digest, _ := strings.Cut(descriptor, checksumSeparator)
	if algorithm == "" {
		return Checksum{}, &_errors.FormatError{Descriptor: descriptor, Reason: "empty algorithm"}
	}
	if digest == "" {
		return Checksum{}, &_errors.FormatError{Descriptor: descriptor, Reason: "empty digest"}
	}

	alg := Algorithm(strings.ToLower(algorithm))
	if !supportedAlgorithms[alg] {
		return Checksum{}, &_errors.UnsupportedAlgorithmError{Algorithm: algorithm}
	}

	digest = strings.ToLower(digest)
	if _, err := hex.DecodeString(digest); err != nil {
		return Checksum{}, &_errors.FormatError{Descriptor: descriptor, Reason: "digest is not valid hexadecimal"}
	}

	return Checksum{Algorithm: alg, Digest: digest}, nil
}
