package bootimg

// Synthetic image builders shared by the parser, vendor merge, and
// extraction tests. They lay regions out exactly the way the on-disk
// formats do: header first, then each payload padded to the page size.

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/kamer1337/go-bootimg/internal/types"
)

type legacyOpts struct {
	version   uint32
	pageSize  uint32 // header field value; zero exercises the 2048 default
	kernel    []byte
	ramdisk   []byte
	second    []byte
	dtbo      []byte
	dtb       []byte
	cmdline   string
	extra     string
	name      string
	osVersion uint32
	id        [types.BootIDSize]byte

	kernelAddr, ramdiskAddr, secondAddr, tagsAddr uint32
	dtbAddr                                       uint64
}

func buildLegacy(t *testing.T, o legacyOpts) []byte {
	t.Helper()

	var hdr types.BootImgHdrV2
	copy(hdr.Magic[:], types.BootMagic)
	hdr.KernelSize = uint32(len(o.kernel))
	hdr.KernelAddr = o.kernelAddr
	hdr.RamdiskSize = uint32(len(o.ramdisk))
	hdr.RamdiskAddr = o.ramdiskAddr
	hdr.SecondSize = uint32(len(o.second))
	hdr.SecondAddr = o.secondAddr
	hdr.TagsAddr = o.tagsAddr
	hdr.PageSize = o.pageSize
	hdr.HeaderVersion = o.version
	hdr.OSVersion = o.osVersion
	copy(hdr.Name[:], o.name)
	copy(hdr.Cmdline[:], o.cmdline)
	copy(hdr.ExtraCmdline[:], o.extra)
	hdr.ID = o.id
	hdr.RecoveryDtboSize = uint32(len(o.dtbo))
	hdr.DtbSize = uint32(len(o.dtb))
	hdr.DtbAddr = o.dtbAddr

	var buf bytes.Buffer
	var err error
	switch o.version {
	case 0:
		err = binary.Write(&buf, binary.LittleEndian, hdr.BootImgHdrV0)
	case 1:
		err = binary.Write(&buf, binary.LittleEndian, hdr.BootImgHdrV1)
	default:
		err = binary.Write(&buf, binary.LittleEndian, hdr)
	}
	if err != nil {
		t.Fatalf("writing legacy header: %v", err)
	}

	page := o.pageSize
	if page == 0 {
		page = types.DefaultPageSizeLegacy
	}
	pad := func() {
		for buf.Len()%int(page) != 0 {
			buf.WriteByte(0)
		}
	}

	pad()
	for _, payload := range [][]byte{o.kernel, o.ramdisk, o.second} {
		buf.Write(payload)
		pad()
	}
	if o.version >= 1 {
		buf.Write(o.dtbo)
		pad()
	}
	if o.version >= 2 {
		buf.Write(o.dtb)
		pad()
	}
	return buf.Bytes()
}

type v3Opts struct {
	version   uint32
	kernel    []byte
	ramdisk   []byte
	signature []byte // v4 only
	cmdline   string
	osVersion uint32
}

func buildV3(t *testing.T, o v3Opts) []byte {
	t.Helper()

	var hdr types.BootImgHdrV4
	copy(hdr.Magic[:], types.BootMagic)
	hdr.KernelSize = uint32(len(o.kernel))
	hdr.RamdiskSize = uint32(len(o.ramdisk))
	hdr.OSVersion = o.osVersion
	hdr.HeaderVersion = o.version
	copy(hdr.Cmdline[:], o.cmdline)
	if o.version == 4 {
		hdr.HeaderSize = types.BootHeaderV4Size
		hdr.SignatureSize = uint32(len(o.signature))
	} else {
		hdr.HeaderSize = types.BootHeaderV3Size
	}

	var buf bytes.Buffer
	var err error
	if o.version == 4 {
		err = binary.Write(&buf, binary.LittleEndian, hdr)
	} else {
		err = binary.Write(&buf, binary.LittleEndian, hdr.BootImgHdrV3)
	}
	if err != nil {
		t.Fatalf("writing v%d header: %v", o.version, err)
	}

	pad := func() {
		for buf.Len()%types.FixedPageSizeV3 != 0 {
			buf.WriteByte(0)
		}
	}

	pad()
	buf.Write(o.kernel)
	pad()
	buf.Write(o.ramdisk)
	pad()
	if o.version == 4 {
		buf.Write(o.signature)
		pad()
	}
	return buf.Bytes()
}

type vendorOpts struct {
	version  uint32
	pageSize uint32
	ramdisk  []byte
	dtb      []byte
	cmdline  string
	name     string

	kernelAddr, ramdiskAddr, tagsAddr uint32
	dtbAddr                           uint64

	tableEntries []types.VendorRamdiskTableEntryV4
	bootconfig   string

	// truncateTable drops the table and bootconfig sections from the
	// buffer while leaving their header fields declared.
	truncateTable bool
}

func buildVendor(t *testing.T, o vendorOpts) []byte {
	t.Helper()

	var hdr types.VendorBootHdrV4
	copy(hdr.Magic[:], types.VendorBootMagic)
	hdr.HeaderVersion = o.version
	hdr.PageSize = o.pageSize
	hdr.KernelAddr = o.kernelAddr
	hdr.RamdiskAddr = o.ramdiskAddr
	hdr.VendorRamdiskSize = uint32(len(o.ramdisk))
	copy(hdr.Cmdline[:], o.cmdline)
	hdr.TagsAddr = o.tagsAddr
	copy(hdr.Name[:], o.name)
	hdr.DtbSize = uint32(len(o.dtb))
	hdr.DtbAddr = o.dtbAddr
	if o.version == 4 {
		hdr.HeaderSize = types.VendorBootHeaderV4Size
		hdr.VendorRamdiskTableEntryNum = uint32(len(o.tableEntries))
		hdr.VendorRamdiskTableEntrySize = types.VendorRamdiskTableEntrySize
		hdr.VendorRamdiskTableSize = uint32(len(o.tableEntries)) * types.VendorRamdiskTableEntrySize
		hdr.BootconfigSize = uint32(len(o.bootconfig))
	} else {
		hdr.HeaderSize = types.VendorBootHeaderV3Size
	}

	var buf bytes.Buffer
	var err error
	if o.version == 4 {
		err = binary.Write(&buf, binary.LittleEndian, hdr)
	} else {
		err = binary.Write(&buf, binary.LittleEndian, hdr.VendorBootHdrV3)
	}
	if err != nil {
		t.Fatalf("writing vendor v%d header: %v", o.version, err)
	}

	page := o.pageSize
	if page == 0 {
		page = types.DefaultPageSizeVendor
	}
	pad := func() {
		for buf.Len()%int(page) != 0 {
			buf.WriteByte(0)
		}
	}

	pad()
	buf.Write(o.ramdisk)
	pad()
	buf.Write(o.dtb)
	pad()

	if o.version == 4 && !o.truncateTable {
		for _, e := range o.tableEntries {
			if err := binary.Write(&buf, binary.LittleEndian, e); err != nil {
				t.Fatalf("writing table entry: %v", err)
			}
		}
		pad()
		buf.WriteString(o.bootconfig)
		pad()
	}
	return buf.Bytes()
}
