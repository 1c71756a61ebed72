// Package interfaces defines the read-only views exposed over a parsed
// boot image.
package interfaces

// BootDescriptor is the version-agnostic surface of a parsed image.
type BootDescriptor interface {
	// Valid reports whether parsing completed; nothing else on the
	// descriptor may be trusted when it is false.
	Valid() bool
	// Cmdline returns the assembled kernel command line.
	Cmdline() string
	// Name returns the image name field.
	Name() string
	// Free releases the descriptor's owned allocations. Idempotent.
	Free()
}

// PayloadExtractor copies payload regions out of the source buffer. Each
// method returns the number of bytes copied; a missing payload copies
// nothing and returns zero.
type PayloadExtractor interface {
	ExtractKernel(dst []byte) (int, error)
	ExtractRamdisk(dst []byte) (int, error)
	ExtractDTB(dst []byte) (int, error)
}

// IntegrityVerifier checks whatever integrity data the image's header
// revision carries: the content digest for v0-v2, the signature region for
// v4.
type IntegrityVerifier interface {
	VerifyChecksum() error
	VerifySignature() error
}
