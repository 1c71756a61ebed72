// Package services orchestrates the device and parser layers into the
// operations the CLI exposes: load, inspect, extract, verify.
package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamer1337/go-bootimg/internal/device"
	"github.com/kamer1337/go-bootimg/internal/parsers/bootimg"
	"github.com/kamer1337/go-bootimg/internal/types"
)

// ImageService owns an opened boot image, its parsed descriptor, and an
// optional vendor boot image merged into it.
type ImageService struct {
	boot   *device.ImageFile
	vendor *device.ImageFile
	image  *bootimg.Image
}

// NewImageService loads and parses the boot image at path.
func NewImageService(path string, config *device.Config) (*ImageService, error) {
	file, err := device.Open(path, config)
	if err != nil {
		return nil, err
	}
	img, err := bootimg.Parse(file.Buffer())
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &ImageService{boot: file, image: img}, nil
}

// MergeVendor loads the vendor boot image at path and merges it into the
// descriptor. The vendor buffer is retained: after the merge the dtb and
// vendor ramdisk regions alias it.
func (s *ImageService) MergeVendor(path string, config *device.Config) error {
	file, err := device.Open(path, config)
	if err != nil {
		return err
	}
	if err := s.image.MergeVendor(file.Buffer()); err != nil {
		return fmt.Errorf("failed to merge %s: %w", path, err)
	}
	s.vendor = file
	return nil
}

// Image returns the parsed descriptor.
func (s *ImageService) Image() *bootimg.Image {
	return s.image
}

// Close releases the descriptor's owned allocations. The service must not
// be used afterwards.
func (s *ImageService) Close() {
	s.image.Free()
}

// PayloadInfo describes one located payload for display.
type PayloadInfo struct {
	Name   string `json:"name"`
	Offset uint64 `json:"offset"`
	Size   uint32 `json:"size"`
}

// RamdiskEntryInfo describes one vendor ramdisk table entry for display.
type RamdiskEntryInfo struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset uint32 `json:"offset"`
	Size   uint32 `json:"size"`
}

// ImageInfo is the display summary of a parsed image.
type ImageInfo struct {
	Path          string             `json:"path"`
	HeaderVersion uint32             `json:"header_version"`
	PageSize      uint32             `json:"page_size"`
	Name          string             `json:"name,omitempty"`
	Cmdline       string             `json:"cmdline,omitempty"`
	OSVersion     string             `json:"os_version"`
	PatchLevel    string             `json:"patch_level"`
	KernelAddr    uint32             `json:"kernel_addr"`
	RamdiskAddr   uint32             `json:"ramdisk_addr"`
	TagsAddr      uint32             `json:"tags_addr"`
	DtbAddr       uint64             `json:"dtb_addr"`
	HasVendorBoot bool               `json:"has_vendor_boot"`
	Payloads      []PayloadInfo      `json:"payloads"`
	RamdiskTable  []RamdiskEntryInfo `json:"vendor_ramdisk_table,omitempty"`
	Bootconfig    string             `json:"bootconfig,omitempty"`
}

func ramdiskTypeName(t uint32) string {
	switch t {
	case types.VendorRamdiskTypePlatform:
		return "platform"
	case types.VendorRamdiskTypeRecovery:
		return "recovery"
	case types.VendorRamdiskTypeDLKM:
		return "dlkm"
	case types.VendorRamdiskTypeNone:
		return "none"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// Info assembles the display summary for the parsed image.
func (s *ImageService) Info() (*ImageInfo, error) {
	img := s.image
	if !img.Valid() {
		return nil, fmt.Errorf("image descriptor is not valid")
	}

	info := &ImageInfo{
		Path:          s.boot.Path(),
		HeaderVersion: img.HeaderVersion,
		PageSize:      img.PageSize,
		Name:          img.Name(),
		Cmdline:       img.Cmdline(),
		OSVersion:     fmt.Sprintf("%d.%d.%d", img.OSVersion.Major, img.OSVersion.Minor, img.OSVersion.Patch),
		PatchLevel:    fmt.Sprintf("%04d-%02d", img.PatchLevel.Year, img.PatchLevel.Month),
		KernelAddr:    img.KernelAddr,
		RamdiskAddr:   img.RamdiskAddr,
		TagsAddr:      img.TagsAddr,
		DtbAddr:       img.DtbAddr,
		HasVendorBoot: img.HasVendorBoot,
		Bootconfig:    img.Bootconfig(),
	}

	for _, p := range []struct {
		name   string
		region bootimg.Region
	}{
		{"kernel", img.Kernel},
		{"ramdisk", img.Ramdisk},
		{"second", img.Second},
		{"recovery_dtbo", img.RecoveryDtbo},
		{"dtb", img.Dtb},
		{"signature", img.Signature},
		{"vendor_ramdisk", img.VendorRamdisk},
	} {
		if p.region.Present() {
			info.Payloads = append(info.Payloads, PayloadInfo{
				Name:   p.name,
				Offset: p.region.Offset,
				Size:   p.region.Size,
			})
		}
	}

	entries, err := img.RamdiskTableEntries()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		name := e.RamdiskName
		info.RamdiskTable = append(info.RamdiskTable, RamdiskEntryInfo{
			Name:   cstring(name[:]),
			Type:   ramdiskTypeName(e.RamdiskType),
			Offset: e.RamdiskOffset,
			Size:   e.RamdiskSize,
		})
	}
	return info, nil
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// ExtractAll writes every present payload into dir and returns the written
// paths. The kernel, ramdisk, and dtb go through the bounded extraction
// API; the bootconfig text is the descriptor's owned copy.
func (s *ImageService) ExtractAll(dir string) ([]string, error) {
	img := s.image
	if !img.Valid() {
		return nil, fmt.Errorf("image descriptor is not valid")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	extract := func(name string, size uint32, fn func([]byte) (int, error)) error {
		if size == 0 {
			return nil
		}
		dst := make([]byte, size)
		n, err := fn(dst)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return write(name, dst[:n])
	}

	if err := extract("kernel", img.Kernel.Size, img.ExtractKernel); err != nil {
		return written, err
	}
	if err := extract("ramdisk", img.Ramdisk.Size, img.ExtractRamdisk); err != nil {
		return written, err
	}
	if err := extract("dtb", img.Dtb.Size, img.ExtractDTB); err != nil {
		return written, err
	}
	if bc := img.Bootconfig(); bc != "" {
		if err := write("bootconfig.txt", []byte(bc)); err != nil {
			return written, err
		}
	}
	return written, nil
}
