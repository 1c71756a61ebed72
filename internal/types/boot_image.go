// Package types implements the on-disk data structures for Android boot
// images. Layouts are bit-exact with the AOSP boot image header definitions
// (bootimg.h); all multi-byte fields are little-endian.
package types

// Fixed field capacities shared by every boot image header revision.
const (
	BootMagicSize     = 8
	BootNameSize      = 16
	BootIDSize        = 32
	BootArgsSize      = 512
	BootExtraArgsSize = 1024
)

// BootMagic is the 8-byte magic string opening every boot.img.
const BootMagic = "ANDROID!"

// BootHeaderVersionOffset is the byte offset of the header_version field.
// It is the same for the v0-v2 and the v3/v4 layouts, which is what makes
// version dispatch possible before the full header is decoded.
const BootHeaderVersionOffset = 40

// Header sizes per revision. The v3 header is the smallest of the five
// layouts, so it doubles as the minimum buffer length accepted by version
// detection.
const (
	BootHeaderV0Size = 1632
	BootHeaderV1Size = 1648
	BootHeaderV2Size = 1660
	BootHeaderV3Size = 1580
	BootHeaderV4Size = 1584

	BootHeaderMinSize = BootHeaderV3Size
)

// Page sizes. Headers v0-v2 carry their page size; a zero value falls back
// to the historical 2048-byte default. Headers v3 and v4 do not store a page
// size at all and always use 4096.
const (
	DefaultPageSizeLegacy = 2048
	FixedPageSizeV3       = 4096
)

// StoredDigestSize is the number of id-field bytes that carry the SHA-1
// content digest in v0-v2 images. The id field itself is 32 bytes; the
// remaining 12 are unused padding.
const StoredDigestSize = 20

// BootImgHdrV0 is the header used by boot images with header_version 0.
// The same layout opens v1 and v2 headers, which only append fields.
type BootImgHdrV0 struct {
	Magic         [BootMagicSize]byte
	KernelSize    uint32 // size in bytes
	KernelAddr    uint32 // physical load address
	RamdiskSize   uint32 // size in bytes
	RamdiskAddr   uint32 // physical load address
	SecondSize    uint32 // size in bytes
	SecondAddr    uint32 // physical load address
	TagsAddr      uint32 // physical address for kernel tags
	PageSize      uint32 // flash page size the image is aligned to
	HeaderVersion uint32
	OSVersion     uint32 // packed os_version + security patch level
	Name          [BootNameSize]byte
	Cmdline       [BootArgsSize]byte
	ID            [BootIDSize]byte // timestamp / checksum / sha1
	ExtraCmdline  [BootExtraArgsSize]byte
}

// BootImgHdrV1 appends the recovery DTBO fields introduced by header
// version 1.
type BootImgHdrV1 struct {
	BootImgHdrV0
	RecoveryDtboSize   uint32
	RecoveryDtboOffset uint64
	HeaderSize         uint32
}

// BootImgHdrV2 appends the device tree fields introduced by header
// version 2.
type BootImgHdrV2 struct {
	BootImgHdrV1
	DtbSize uint32
	DtbAddr uint64
}
