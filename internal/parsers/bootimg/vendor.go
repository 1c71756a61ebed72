package bootimg

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/kamer1337/go-bootimg/internal/types"
)

// MergeVendor folds a vendor_boot.img buffer into an already-parsed image:
// page size, kernel/ramdisk load addresses, the device tree, the vendor
// command line and name, and (vendor v4) the vendor ramdisk table and
// bootconfig. After a merge the Dtb region views the vendor buffer, so both
// buffers must outlive the image.
//
// The vendor ramdisk itself is located and recorded in VendorRamdisk but is
// not concatenated into the Ramdisk view; staging the generic and vendor
// ramdisks together is the loader's decision, not the parser's.
func (img *Image) MergeVendor(buf []byte) error {
	if !img.Valid() {
		return fmt.Errorf("%w: descriptor is not valid", ErrInvalidSize)
	}

	version, err := detectVendorVersion(buf)
	if err != nil {
		return err
	}
	if version != 3 && version != 4 {
		return fmt.Errorf("%w: vendor boot version %d", ErrUnsupportedVersion, version)
	}

	hdrSize := types.VendorBootHeaderV3Size
	if version == 4 {
		hdrSize = types.VendorBootHeaderV4Size
	}
	if len(buf) < hdrSize {
		return fmt.Errorf("%w: %d bytes is smaller than the vendor v%d header (%d)",
			ErrInvalidSize, len(buf), version, hdrSize)
	}

	var hdr types.VendorBootHdrV4
	r := bytes.NewReader(buf)
	if version == 4 {
		err = binary.Read(r, binary.LittleEndian, &hdr)
	} else {
		err = binary.Read(r, binary.LittleEndian, &hdr.VendorBootHdrV3)
	}
	if err != nil {
		return fmt.Errorf("%w: short vendor v%d header read", ErrInvalidSize, version)
	}

	pageSize := hdr.PageSize
	if pageSize == 0 {
		pageSize = types.DefaultPageSizeVendor
	}

	// Region chain inside the vendor image: header pages, vendor ramdisk
	// section, dtb, then (v4) ramdisk table and bootconfig. Validate the
	// regions that become part of the descriptor before mutating it.
	ramdiskOffset := PageAlign(uint64(hdrSize), pageSize)
	dtbOffset := ramdiskOffset + PageAlign(uint64(hdr.VendorRamdiskSize), pageSize)

	var vendorRamdisk, dtb Region
	if err := setRegion(buf, &vendorRamdisk, ramdiskOffset, hdr.VendorRamdiskSize, "vendor ramdisk"); err != nil {
		return err
	}
	if err := setRegion(buf, &dtb, dtbOffset, hdr.DtbSize, "vendor dtb"); err != nil {
		return err
	}

	img.PageSize = pageSize
	img.KernelAddr = hdr.KernelAddr
	img.RamdiskAddr = hdr.RamdiskAddr
	img.TagsAddr = hdr.TagsAddr
	img.Dtb = dtb
	img.DtbAddr = hdr.DtbAddr
	img.VendorRamdisk = vendorRamdisk

	if vendorCmdline := cstring(hdr.Cmdline[:]); vendorCmdline != "" {
		if img.cmdline != "" {
			img.cmdline += " "
		}
		img.cmdline += vendorCmdline
	}
	img.name = cstring(hdr.Name[:])

	if version >= 4 {
		img.mergeVendorV4(buf, &hdr, dtbOffset, pageSize)
	}

	img.HasVendorBoot = true
	return nil
}

// mergeVendorV4 copies the vendor ramdisk table and bootconfig text out of
// the vendor buffer. Both are owned by the image from here on and released
// by Free. A table or bootconfig whose declared region does not fit inside
// the buffer is skipped rather than failing the merge; the counts stay
// recorded so callers can tell the sections were declared.
func (img *Image) mergeVendorV4(buf []byte, hdr *types.VendorBootHdrV4, dtbOffset uint64, pageSize uint32) {
	img.VendorRamdiskTableEntryNum = hdr.VendorRamdiskTableEntryNum
	img.VendorRamdiskTableEntrySize = hdr.VendorRamdiskTableEntrySize
	img.BootconfigSize = hdr.BootconfigSize

	tableOffset := dtbOffset + PageAlign(uint64(hdr.DtbSize), pageSize)
	if hdr.VendorRamdiskTableEntryNum != 0 {
		tableBytes := uint64(hdr.VendorRamdiskTableEntryNum) * uint64(hdr.VendorRamdiskTableEntrySize)
		if tableBytes != 0 && tableOffset+tableBytes <= uint64(len(buf)) {
			img.vendorRamdiskTable = make([]byte, tableBytes)
			copy(img.vendorRamdiskTable, buf[tableOffset:tableOffset+tableBytes])
		}
	}

	bootconfigOffset := tableOffset + PageAlign(uint64(hdr.VendorRamdiskTableSize), pageSize)
	if hdr.BootconfigSize != 0 {
		end := bootconfigOffset + uint64(hdr.BootconfigSize)
		if end <= uint64(len(buf)) {
			img.bootconfig = make([]byte, hdr.BootconfigSize)
			copy(img.bootconfig, buf[bootconfigOffset:end])
		}
	}
}
