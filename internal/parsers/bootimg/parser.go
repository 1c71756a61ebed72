package bootimg

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/kamer1337/go-bootimg/internal/types"
)

// Parse decodes a boot image from an in-memory buffer and returns the
// unified descriptor. The buffer is the caller's; every payload region in
// the result is a view into it. Parsing fails atomically: on any error the
// returned image is nil, never partially populated.
func Parse(buf []byte) (*Image, error) {
	version, err := DetectVersion(buf)
	if err != nil {
		return nil, err
	}

	img := &Image{HeaderVersion: version}
	switch version {
	case 0, 1, 2:
		err = img.parseLegacy(buf, version)
	case 3, 4:
		err = img.parseV3(buf, version)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if err != nil {
		return nil, err
	}

	img.valid = true
	return img, nil
}

// legacyHeaderSize returns the full header length for a v0-v2 image.
func legacyHeaderSize(version uint32) int {
	switch version {
	case 0:
		return types.BootHeaderV0Size
	case 1:
		return types.BootHeaderV1Size
	default:
		return types.BootHeaderV2Size
	}
}

// parseLegacy handles header versions 0-2, which share one layout and
// differ only in the fields appended at the end.
func (img *Image) parseLegacy(buf []byte, version uint32) error {
	hdrSize := legacyHeaderSize(version)
	if len(buf) < hdrSize {
		return fmt.Errorf("%w: %d bytes is smaller than the v%d header (%d)",
			ErrInvalidSize, len(buf), version, hdrSize)
	}

	var hdr types.BootImgHdrV2
	r := bytes.NewReader(buf)
	var err error
	switch version {
	case 0:
		err = binary.Read(r, binary.LittleEndian, &hdr.BootImgHdrV0)
	case 1:
		err = binary.Read(r, binary.LittleEndian, &hdr.BootImgHdrV1)
	default:
		err = binary.Read(r, binary.LittleEndian, &hdr)
	}
	if err != nil {
		return fmt.Errorf("%w: short v%d header read", ErrInvalidSize, version)
	}

	pageSize := hdr.PageSize
	if pageSize == 0 {
		pageSize = types.DefaultPageSizeLegacy
	}
	img.PageSize = pageSize

	// The header occupies the first page; each payload then starts on the
	// page boundary after the previous one.
	offset := PageAlign(uint64(hdrSize), pageSize)

	kernelOffset := offset
	offset += PageAlign(uint64(hdr.KernelSize), pageSize)
	ramdiskOffset := offset
	offset += PageAlign(uint64(hdr.RamdiskSize), pageSize)
	secondOffset := offset
	offset += PageAlign(uint64(hdr.SecondSize), pageSize)

	if err := setRegion(buf, &img.Kernel, kernelOffset, hdr.KernelSize, "kernel"); err != nil {
		return err
	}
	if err := setRegion(buf, &img.Ramdisk, ramdiskOffset, hdr.RamdiskSize, "ramdisk"); err != nil {
		return err
	}
	if err := setRegion(buf, &img.Second, secondOffset, hdr.SecondSize, "second stage"); err != nil {
		return err
	}

	if version >= 1 {
		dtboOffset := offset
		offset += PageAlign(uint64(hdr.RecoveryDtboSize), pageSize)
		if err := setRegion(buf, &img.RecoveryDtbo, dtboOffset, hdr.RecoveryDtboSize, "recovery dtbo"); err != nil {
			return err
		}
	}
	if version >= 2 {
		if err := setRegion(buf, &img.Dtb, offset, hdr.DtbSize, "dtb"); err != nil {
			return err
		}
		img.DtbAddr = hdr.DtbAddr
	}

	img.KernelAddr = hdr.KernelAddr
	img.RamdiskAddr = hdr.RamdiskAddr
	img.SecondAddr = hdr.SecondAddr
	img.TagsAddr = hdr.TagsAddr

	img.cmdline = cstring(hdr.Cmdline[:]) + cstring(hdr.ExtraCmdline[:])
	img.name = cstring(hdr.Name[:])
	copy(img.StoredDigest[:], hdr.ID[:])

	img.OSVersion = types.DecodeOSVersion(hdr.OSVersion)
	img.PatchLevel = types.DecodePatchLevel(hdr.OSVersion)
	return nil
}

// parseV3 handles header versions 3 and 4, which use a fixed 4096-byte page
// size and carry at most three payloads: kernel, ramdisk, and (v4 only) the
// boot signature.
func (img *Image) parseV3(buf []byte, version uint32) error {
	hdrSize := types.BootHeaderV3Size
	if version == 4 {
		hdrSize = types.BootHeaderV4Size
	}
	if len(buf) < hdrSize {
		return fmt.Errorf("%w: %d bytes is smaller than the v%d header (%d)",
			ErrInvalidSize, len(buf), version, hdrSize)
	}

	var hdr types.BootImgHdrV4
	r := bytes.NewReader(buf)
	var err error
	if version == 4 {
		err = binary.Read(r, binary.LittleEndian, &hdr)
	} else {
		err = binary.Read(r, binary.LittleEndian, &hdr.BootImgHdrV3)
	}
	if err != nil {
		return fmt.Errorf("%w: short v%d header read", ErrInvalidSize, version)
	}

	img.PageSize = types.FixedPageSizeV3

	// The header_size field locates the first payload page. Load addresses
	// are not part of this layout; they arrive with the vendor boot image.
	offset := PageAlign(uint64(hdr.HeaderSize), types.FixedPageSizeV3)

	kernelOffset := offset
	offset += PageAlign(uint64(hdr.KernelSize), types.FixedPageSizeV3)
	ramdiskOffset := offset
	offset += PageAlign(uint64(hdr.RamdiskSize), types.FixedPageSizeV3)

	if err := setRegion(buf, &img.Kernel, kernelOffset, hdr.KernelSize, "kernel"); err != nil {
		return err
	}
	if err := setRegion(buf, &img.Ramdisk, ramdiskOffset, hdr.RamdiskSize, "ramdisk"); err != nil {
		return err
	}
	if version == 4 {
		if err := setRegion(buf, &img.Signature, offset, hdr.SignatureSize, "boot signature"); err != nil {
			return err
		}
	}

	img.cmdline = cstring(hdr.Cmdline[:])
	img.OSVersion = types.DecodeOSVersion(hdr.OSVersion)
	img.PatchLevel = types.DecodePatchLevel(hdr.OSVersion)
	return nil
}
