package bootimg

// Every payload inside a boot image starts on a page boundary, so region
// extents are the declared sizes rounded up to the page size, and a region's
// start offset is the running sum of all prior aligned regions. Offsets are
// carried as uint64 so that oversized values declared by a corrupt image
// cannot wrap during the sum; they are bounds-checked against the real
// buffer length before any region is materialized.

// fallbackPageSize is substituted when a page size of zero reaches the
// alignment arithmetic, so the division below can never trap.
const fallbackPageSize = 4096

// PageAlign rounds size up to the next multiple of pageSize. A zero
// pageSize is replaced with 4096 before rounding.
func PageAlign(size uint64, pageSize uint32) uint64 {
	if pageSize == 0 {
		pageSize = fallbackPageSize
	}
	p := uint64(pageSize)
	return (size + p - 1) / p * p
}
