package types

// The os_version header field packs two values into 32 bits:
//
//	bits 31-11: OS version, three 7-bit fields (major.minor.patch)
//	bits 10-0:  security patch level, 7-bit year offset from 2000 + 4-bit month
//
// The packed form never survives parsing; descriptors carry the decoded
// integers only.

// OSVersion is the decoded A.B.C release number of the OS the image was
// built for. Each component ranges 0-127.
type OSVersion struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// PatchLevel is the decoded security patch level.
type PatchLevel struct {
	Year  uint32 // full year, 2000-2127
	Month uint32 // 0-15 as stored; real images use 1-12
}

// DecodeOSVersion unpacks the release number from a packed os_version field.
func DecodeOSVersion(packed uint32) OSVersion {
	v := (packed >> 11) & 0x1FFFFF
	return OSVersion{
		Major: (v >> 14) & 0x7F,
		Minor: (v >> 7) & 0x7F,
		Patch: v & 0x7F,
	}
}

// DecodePatchLevel unpacks the security patch level from a packed os_version
// field.
func DecodePatchLevel(packed uint32) PatchLevel {
	p := packed & 0x7FF
	return PatchLevel{
		Year:  (p >> 4) + 2000,
		Month: p & 0xF,
	}
}

// EncodeOSVersion packs a release number and patch level back into the
// 32-bit header representation. Components out of range are masked to their
// field widths, matching what mkbootimg emits.
func EncodeOSVersion(v OSVersion, p PatchLevel) uint32 {
	ver := (v.Major&0x7F)<<14 | (v.Minor&0x7F)<<7 | v.Patch&0x7F
	year := uint32(0)
	if p.Year >= 2000 {
		year = p.Year - 2000
	}
	return ver<<11 | (year&0x7F)<<4 | p.Month&0xF
}
