// Package digest implements the 160-bit iterated hash (SHA-1) used for
// boot image content checksums. Boot images v0-v2 store the digest of their
// concatenated payloads in the header id field; verification recomputes it
// with this engine and compares.
//
// The implementation is self-contained so the checksum path has no
// dependency on the platform crypto configuration.
package digest

import (
	"encoding/binary"
	"hash"
)

// Size is the digest length in bytes.
const Size = 20

// BlockSize is the compression function's block length in bytes.
const BlockSize = 64

// Round constants, one per 20-round phase.
const (
	k0 = 0x5A827999
	k1 = 0x6ED9EBA1
	k2 = 0x8F1BBCDC
	k3 = 0xCA62C1D6
)

// Digest holds the running hash state: five 32-bit words, a partial block
// buffer, and a 64-bit bit count kept as two 32-bit halves.
type Digest struct {
	state  [5]uint32
	buf    [BlockSize]byte
	bufLen int
	lo, hi uint32 // bit count; overflow of lo carries into hi
}

var _ hash.Hash = (*Digest)(nil)

// New returns a freshly initialized digest.
func New() *Digest {
	d := &Digest{}
	d.Reset()
	return d
}

// Reset restores the initial state.
func (d *Digest) Reset() {
	d.state = [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0}
	d.bufLen = 0
	d.lo = 0
	d.hi = 0
}

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return Size }

// BlockSize returns the compression block length in bytes.
func (d *Digest) BlockSize() int { return BlockSize }

// Write absorbs p into the running state. Partial blocks are buffered;
// every completed 64-byte block, including ones spanning multiple Write
// calls, goes through the compression function. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)

	bits := uint32(n) << 3
	if d.lo+bits < d.lo {
		d.hi++
	}
	d.lo += bits
	d.hi += uint32(n) >> 29

	for len(p) > 0 {
		if d.bufLen == 0 && len(p) >= BlockSize {
			d.block(p[:BlockSize])
			p = p[BlockSize:]
			continue
		}
		c := copy(d.buf[d.bufLen:], p)
		d.bufLen += c
		p = p[c:]
		if d.bufLen == BlockSize {
			d.block(d.buf[:])
			d.bufLen = 0
		}
	}
	return n, nil
}

// Sum appends the finalized digest to in. The receiver state is preserved,
// so Sum may be called while continuing to Write.
func (d *Digest) Sum(in []byte) []byte {
	c := *d
	out := c.checkSum()
	return append(in, out[:]...)
}

// checkSum applies the length padding and serializes the state. Padding is
// a single 0x80 byte, zeros until the buffered length is 56 mod 64, then
// the 64-bit bit count big-endian (high word first).
func (d *Digest) checkSum() [Size]byte {
	var length [8]byte
	binary.BigEndian.PutUint32(length[0:], d.hi)
	binary.BigEndian.PutUint32(length[4:], d.lo)

	// The bit count was captured above, so the padding writes below do not
	// contaminate the encoded length.
	d.Write([]byte{0x80})
	for d.bufLen != 56 {
		d.Write([]byte{0x00})
	}
	d.Write(length[:])

	var out [Size]byte
	for i, s := range d.state {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}

// Sum160 is a convenience for hashing a sequence of byte regions in one
// call, as checksum verification does for kernel/ramdisk/second/dtb.
func Sum160(regions ...[]byte) [Size]byte {
	d := New()
	for _, r := range regions {
		d.Write(r)
	}
	return d.checkSum()
}

func rotl32(x uint32, n uint) uint32 {
	return x<<n | x>>(32-n)
}

// block runs the 80-round compression function over one 64-byte block.
func (d *Digest) block(p []byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = rotl32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, e, f := d.state[0], d.state[1], d.state[2], d.state[3], d.state[4]

	for i := 0; i < 80; i++ {
		var fn, k uint32
		switch {
		case i < 20:
			fn = (b & c) | (^b & e) // choice
			k = k0
		case i < 40:
			fn = b ^ c ^ e // parity
			k = k1
		case i < 60:
			fn = (b & c) | (b & e) | (c & e) // majority
			k = k2
		default:
			fn = b ^ c ^ e // parity
			k = k3
		}
		t := rotl32(a, 5) + fn + f + k + w[i]
		f = e
		e = c
		c = rotl32(b, 30)
		b = a
		a = t
	}

	d.state[0] += a
	d.state[1] += b
	d.state[2] += c
	d.state[3] += e
	d.state[4] += f
}
