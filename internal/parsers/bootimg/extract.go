package bootimg

import (
	"bytes"
	"fmt"

	"github.com/kamer1337/go-bootimg/internal/digest"
)

// extract copies a payload region into dst. A missing or empty payload
// copies nothing and reports zero; a destination smaller than the payload
// is an error before any byte moves.
func (img *Image) extract(r Region, dst []byte, what string) (int, error) {
	if !img.Valid() {
		return 0, fmt.Errorf("%w: descriptor is not valid", ErrInvalidSize)
	}
	if dst == nil {
		return 0, fmt.Errorf("%w: nil destination buffer", ErrInvalidSize)
	}
	if !r.Present() {
		return 0, nil
	}
	if len(dst) < int(r.Size) {
		return 0, fmt.Errorf("%w: destination holds %d bytes, %s is %d",
			ErrInvalidSize, len(dst), what, r.Size)
	}
	return copy(dst[:r.Size], r.Data), nil
}

// ExtractKernel copies the kernel payload into dst and returns the byte
// count.
func (img *Image) ExtractKernel(dst []byte) (int, error) {
	return img.extract(img.Kernel, dst, "kernel")
}

// ExtractRamdisk copies the ramdisk payload into dst and returns the byte
// count.
func (img *Image) ExtractRamdisk(dst []byte) (int, error) {
	return img.extract(img.Ramdisk, dst, "ramdisk")
}

// ExtractDTB copies the device tree blob into dst and returns the byte
// count. After a vendor merge this is the vendor image's dtb.
func (img *Image) ExtractDTB(dst []byte) (int, error) {
	return img.extract(img.Dtb, dst, "dtb")
}

// VerifyChecksum recomputes the content digest of a v0-v2 image and
// compares it against the digest stored in the header id field. The hash
// covers, in order, the kernel, ramdisk, and second stage payloads, plus
// the dtb for v2. Header versions 3 and 4 carry no content digest and
// verify trivially.
func (img *Image) VerifyChecksum() error {
	if !img.Valid() {
		return fmt.Errorf("%w: descriptor is not valid", ErrInvalidSize)
	}
	if img.HeaderVersion > 2 {
		return nil
	}

	regions := [][]byte{img.Kernel.Data, img.Ramdisk.Data, img.Second.Data}
	if img.HeaderVersion >= 2 {
		regions = append(regions, img.Dtb.Data)
	}
	computed := digest.Sum160(regions...)

	if !bytes.Equal(computed[:], img.StoredDigest[:]) {
		return fmt.Errorf("%w: computed %x, header id %x", ErrChecksum, computed, img.StoredDigest)
	}
	return nil
}

// VerifySignature checks the v4 boot signature region. Only presence is
// checked: the signature is an AVB certificate chain and this parser does
// not carry the cryptography to validate it, so a v4 image with signature
// bytes verifies vacuously. Versions other than 4 have no signature and
// also verify.
func (img *Image) VerifySignature() error {
	if !img.Valid() {
		return fmt.Errorf("%w: descriptor is not valid", ErrInvalidSize)
	}
	if img.HeaderVersion != 4 || !img.Signature.Present() {
		return nil
	}
	// TODO: verify the VBMeta structure inside the signature region once
	// an AVB key store is plumbed through.
	return nil
}
