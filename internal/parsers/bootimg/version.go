package bootimg

import (
	"encoding/binary"
	"fmt"

	"github.com/kamer1337/go-bootimg/internal/types"
)

// DetectVersion validates the boot image preamble and returns the raw
// header_version field. Values above the highest supported version are
// passed through unchanged; Parse is where unknown versions are rejected,
// so callers probing an image can still see what it claims to be.
func DetectVersion(buf []byte) (uint32, error) {
	if len(buf) < types.BootHeaderMinSize {
		return 0, fmt.Errorf("%w: %d bytes is smaller than the smallest boot header (%d)",
			ErrInvalidSize, len(buf), types.BootHeaderMinSize)
	}
	if string(buf[:types.BootMagicSize]) != types.BootMagic {
		return 0, fmt.Errorf("%w: want %q", ErrInvalidMagic, types.BootMagic)
	}
	return binary.LittleEndian.Uint32(buf[types.BootHeaderVersionOffset:]), nil
}

// detectVendorVersion is the vendor_boot.img counterpart of DetectVersion.
func detectVendorVersion(buf []byte) (uint32, error) {
	if len(buf) < types.VendorBootHeaderMinSize {
		return 0, fmt.Errorf("%w: %d bytes is smaller than the smallest vendor boot header (%d)",
			ErrInvalidSize, len(buf), types.VendorBootHeaderMinSize)
	}
	if string(buf[:types.BootMagicSize]) != types.VendorBootMagic {
		return 0, fmt.Errorf("%w: want %q", ErrInvalidMagic, types.VendorBootMagic)
	}
	return binary.LittleEndian.Uint32(buf[types.VendorBootHeaderVersionOffset:]), nil
}
