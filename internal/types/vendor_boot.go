package types

// Fixed field capacities specific to vendor_boot.img headers.
const (
	VendorBootArgsSize       = 2048
	VendorRamdiskNameSize    = 32
	VendorRamdiskBoardIDSize = 16
)

// VendorBootMagic is the 8-byte magic string opening every vendor_boot.img.
const VendorBootMagic = "VNDRBOOT"

// VendorBootHeaderVersionOffset is the byte offset of the header_version
// field inside a vendor boot header. Unlike boot.img it sits directly after
// the magic.
const VendorBootHeaderVersionOffset = 8

// Vendor header sizes per revision.
const (
	VendorBootHeaderV3Size = 2112
	VendorBootHeaderV4Size = 2128

	VendorBootHeaderMinSize = VendorBootHeaderV3Size
)

// DefaultPageSizeVendor is substituted when a vendor header declares a zero
// page size.
const DefaultPageSizeVendor = 4096

// VendorBootHdrV3 is the vendor boot header introduced alongside boot.img
// header version 3.
//
// The vendor boot image layout is:
//
//	+------------------------+
//	| vendor boot header     | o pages
//	+------------------------+
//	| vendor ramdisk section | p pages
//	+------------------------+
//	| dtb                    | q pages
//	+------------------------+
//	| vendor ramdisk table   | r pages (v4 only)
//	+------------------------+
//	| bootconfig             | s pages (v4 only)
//	+------------------------+
//
// with every region aligned to the header's own page size.
type VendorBootHdrV3 struct {
	Magic             [BootMagicSize]byte
	HeaderVersion     uint32
	PageSize          uint32 // flash page size the image is aligned to
	KernelAddr        uint32 // physical load address for the kernel
	RamdiskAddr       uint32 // physical load address for the ramdisk
	VendorRamdiskSize uint32 // size of the vendor ramdisk section in bytes
	Cmdline           [VendorBootArgsSize]byte
	TagsAddr          uint32
	Name              [BootNameSize]byte
	HeaderSize        uint32
	DtbSize           uint32 // size of the dtb blob in bytes
	DtbAddr           uint64 // physical load address for the dtb blob
}

// VendorBootHdrV4 appends the vendor ramdisk table and bootconfig fields
// introduced by vendor header version 4.
type VendorBootHdrV4 struct {
	VendorBootHdrV3
	VendorRamdiskTableSize      uint32 // size of the table section in bytes
	VendorRamdiskTableEntryNum  uint32
	VendorRamdiskTableEntrySize uint32 // size of one table entry in bytes
	BootconfigSize              uint32
}

// Vendor ramdisk types carried in the table entry's RamdiskType field.
const (
	VendorRamdiskTypeNone     = 0
	VendorRamdiskTypePlatform = 1
	VendorRamdiskTypeRecovery = 2
	VendorRamdiskTypeDLKM     = 3
)

// VendorRamdiskTableEntrySize is the on-disk size of one v4 table entry.
const VendorRamdiskTableEntrySize = 108

// VendorRamdiskTableEntryV4 describes one ramdisk within the vendor ramdisk
// section of a v4 vendor boot image. Offsets are relative to the start of
// the vendor ramdisk section.
type VendorRamdiskTableEntryV4 struct {
	RamdiskSize   uint32
	RamdiskOffset uint32
	RamdiskType   uint32
	RamdiskName   [VendorRamdiskNameSize]byte
	BoardID       [VendorRamdiskBoardIDSize]uint32
}
