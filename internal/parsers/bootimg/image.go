package bootimg

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/kamer1337/go-bootimg/internal/digest"
	"github.com/kamer1337/go-bootimg/internal/interfaces"
	"github.com/kamer1337/go-bootimg/internal/types"
)

// Region locates one payload inside a source image. Data is a view into the
// caller's buffer, never a copy; it stays valid only as long as the buffer
// the image was parsed (or merged) from. A Region with Size zero has nil
// Data.
type Region struct {
	Offset uint64
	Size   uint32
	Data   []byte
}

// Present reports whether the region carries any bytes.
func (r Region) Present() bool {
	return r.Size != 0 && r.Data != nil
}

// Image is the unified, version-agnostic result of parsing a boot image.
// It is populated by exactly one version-specific parser and optionally
// enriched by MergeVendor. All payload regions reference the source
// buffer(s); the only owned allocations are the vendor ramdisk table and
// the bootconfig text, both released by Free.
//
// An Image is safe for concurrent read-only use once parsing and merging
// are done. MergeVendor and Free mutate it and need external ordering.
type Image struct {
	valid bool

	HeaderVersion uint32
	PageSize      uint32

	Kernel       Region
	Ramdisk      Region
	Second       Region
	RecoveryDtbo Region
	Dtb          Region
	Signature    Region

	// Load addresses. Meaningful for v0-v2; zero for v3/v4 until a vendor
	// boot image supplies them.
	KernelAddr  uint32
	RamdiskAddr uint32
	SecondAddr  uint32
	TagsAddr    uint32
	DtbAddr     uint64

	cmdline string
	name    string

	// StoredDigest is the SHA-1 content digest from the v0-v2 id field.
	// Zero for v3/v4, where integrity moved to the boot signature.
	StoredDigest [digest.Size]byte

	OSVersion  types.OSVersion
	PatchLevel types.PatchLevel

	// Vendor boot state, populated by MergeVendor.
	HasVendorBoot bool

	// VendorRamdisk locates the vendor ramdisk section inside the vendor
	// boot buffer. It is deliberately not folded into Ramdisk: the loader
	// consuming this descriptor decides how to stage the two ramdisks.
	VendorRamdisk Region

	VendorRamdiskTableEntryNum  uint32
	VendorRamdiskTableEntrySize uint32
	BootconfigSize              uint32

	// Owned copies, released by Free.
	vendorRamdiskTable []byte
	bootconfig         []byte
}

var (
	_ interfaces.BootDescriptor    = (*Image)(nil)
	_ interfaces.PayloadExtractor  = (*Image)(nil)
	_ interfaces.IntegrityVerifier = (*Image)(nil)
)

// Valid reports whether the image was fully parsed. Every extraction and
// verification entry point gates on it.
func (img *Image) Valid() bool {
	return img != nil && img.valid
}

// Cmdline returns the kernel command line: the header's two command line
// fields concatenated, with the vendor command line appended after a merge.
func (img *Image) Cmdline() string {
	return img.cmdline
}

// Name returns the image name field (product name, or the vendor boot name
// after a merge).
func (img *Image) Name() string {
	return img.name
}

// Bootconfig returns the bootconfig text carried by a v4 vendor boot image,
// or the empty string when none was merged.
func (img *Image) Bootconfig() string {
	return string(img.bootconfig)
}

// VendorRamdiskTable returns the raw vendor ramdisk table bytes owned by
// the image, or nil. The returned slice is the owned copy itself; callers
// must not retain it past Free.
func (img *Image) VendorRamdiskTable() []byte {
	return img.vendorRamdiskTable
}

// RamdiskTableEntries decodes the owned vendor ramdisk table into typed
// entries. It returns nil when no table was merged. Entries whose declared
// record size differs from the v4 layout cannot be decoded and return
// ErrInvalidSize.
func (img *Image) RamdiskTableEntries() ([]types.VendorRamdiskTableEntryV4, error) {
	if len(img.vendorRamdiskTable) == 0 {
		return nil, nil
	}
	if img.VendorRamdiskTableEntrySize != types.VendorRamdiskTableEntrySize {
		return nil, fmt.Errorf("%w: vendor ramdisk table entry size %d, want %d",
			ErrInvalidSize, img.VendorRamdiskTableEntrySize, types.VendorRamdiskTableEntrySize)
	}
	entries := make([]types.VendorRamdiskTableEntryV4, img.VendorRamdiskTableEntryNum)
	r := bytes.NewReader(img.vendorRamdiskTable)
	for i := range entries {
		if err := binary.Read(r, binary.LittleEndian, &entries[i]); err != nil {
			return nil, fmt.Errorf("%w: vendor ramdisk table truncated at entry %d", ErrInvalidSize, i)
		}
	}
	return entries, nil
}

// Free releases the owned allocations and zeroes the descriptor. It is
// idempotent and safe on a nil or never-parsed image. Payload views into
// the source buffers are dropped; callers must not retain them.
func (img *Image) Free() {
	if img == nil {
		return
	}
	img.vendorRamdiskTable = nil
	img.bootconfig = nil
	*img = Image{}
}

// setRegion bounds-checks a declared (offset, size) pair against the source
// buffer and installs the view. Sizes come from the image itself and are
// untrusted; a region that does not fit fails the whole parse.
func setRegion(buf []byte, dst *Region, offset uint64, size uint32, what string) error {
	if size == 0 {
		*dst = Region{Offset: offset}
		return nil
	}
	end := offset + uint64(size)
	if end > uint64(len(buf)) {
		return fmt.Errorf("%w: %s region [%d, %d) exceeds image size %d",
			ErrInvalidSize, what, offset, end, len(buf))
	}
	*dst = Region{Offset: offset, Size: size, Data: buf[offset:end]}
	return nil
}

// cstring trims a fixed-capacity header field at its first NUL.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
