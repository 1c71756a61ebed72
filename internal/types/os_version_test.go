package types

import "testing"

func TestDecodeOSVersionKnown(t *testing.T) {
	// 11.0.0, patch level 2020-07: mkbootimg --os_version 11 --os_patch_level 2020-07
	packed := EncodeOSVersion(OSVersion{Major: 11}, PatchLevel{Year: 2020, Month: 7})

	v := DecodeOSVersion(packed)
	if v.Major != 11 || v.Minor != 0 || v.Patch != 0 {
		t.Errorf("DecodeOSVersion(%#x) = %+v; want 11.0.0", packed, v)
	}
	p := DecodePatchLevel(packed)
	if p.Year != 2020 || p.Month != 7 {
		t.Errorf("DecodePatchLevel(%#x) = %+v; want 2020-07", packed, p)
	}
}

func TestOSVersionRoundTrip(t *testing.T) {
	for _, v := range []OSVersion{
		{0, 0, 0},
		{1, 2, 3},
		{13, 0, 0},
		{127, 127, 127},
	} {
		packed := EncodeOSVersion(v, PatchLevel{Year: 2000, Month: 0})
		if got := DecodeOSVersion(packed); got != v {
			t.Errorf("round trip %+v -> %#x -> %+v", v, packed, got)
		}
	}
}

func TestPatchLevelRoundTrip(t *testing.T) {
	for _, p := range []PatchLevel{
		{2000, 0},
		{2016, 1},
		{2025, 12},
		{2127, 15},
	} {
		packed := EncodeOSVersion(OSVersion{}, p)
		if got := DecodePatchLevel(packed); got != p {
			t.Errorf("round trip %+v -> %#x -> %+v", p, packed, got)
		}
	}
}

func TestDecodeZero(t *testing.T) {
	if v := DecodeOSVersion(0); v != (OSVersion{}) {
		t.Errorf("DecodeOSVersion(0) = %+v; want zero", v)
	}
	p := DecodePatchLevel(0)
	if p.Year != 2000 || p.Month != 0 {
		t.Errorf("DecodePatchLevel(0) = %+v; want 2000-00", p)
	}
}
