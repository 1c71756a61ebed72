package types

// BootImgHdrV3 is the header used by boot images with header_version 3.
//
// The v3/v4 image layout is:
//
//	+---------------------+
//	| boot header         | 4096 bytes
//	+---------------------+
//	| kernel              | m pages
//	+---------------------+
//	| ramdisk             | n pages
//	+---------------------+
//	| boot signature      | g pages (v4 only)
//	+---------------------+
//
// with every region aligned to the fixed 4096-byte page size. Load addresses
// and the device tree moved to vendor_boot.img with this revision.
type BootImgHdrV3 struct {
	Magic         [BootMagicSize]byte
	KernelSize    uint32 // size in bytes
	RamdiskSize   uint32 // size in bytes
	OSVersion     uint32 // packed os_version + security patch level
	HeaderSize    uint32 // size of this header, locates the first payload page
	Reserved      [4]uint32
	HeaderVersion uint32
	Cmdline       [BootArgsSize + BootExtraArgsSize]byte
}

// BootImgHdrV4 appends the boot signature size introduced by header
// version 4. The signature region trails the ramdisk.
type BootImgHdrV4 struct {
	BootImgHdrV3
	SignatureSize uint32
}
