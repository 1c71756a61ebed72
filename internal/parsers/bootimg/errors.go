package bootimg

import "errors"

// The closed error set reported by parsing, merging, extraction, and
// verification. Callers discriminate with errors.Is; wrapped messages carry
// the offending offsets and sizes.
var (
	// ErrInvalidSize covers every size violation: a buffer too small for
	// its declared header, a payload region exceeding the buffer, a nil or
	// undersized destination, or an invalid descriptor.
	ErrInvalidSize = errors.New("bootimg: invalid size")

	// ErrInvalidMagic reports a preamble mismatch.
	ErrInvalidMagic = errors.New("bootimg: invalid magic")

	// ErrUnsupportedVersion reports a header version outside 0-4.
	ErrUnsupportedVersion = errors.New("bootimg: unsupported header version")

	// ErrChecksum reports a content digest mismatch on v0-v2 images.
	ErrChecksum = errors.New("bootimg: checksum mismatch")
)
