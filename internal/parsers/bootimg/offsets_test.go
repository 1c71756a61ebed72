package bootimg

import "testing"

func TestPageAlign(t *testing.T) {
	tests := []struct {
		name     string
		size     uint64
		pageSize uint32
		want     uint64
	}{
		{"Zero", 0, 4096, 0},
		{"One", 1, 4096, 4096},
		{"Exact", 4096, 4096, 4096},
		{"ExactPlusOne", 4097, 4096, 8192},
		{"SmallPage", 1000, 2048, 2048},
		{"ZeroPageSizeDefaults", 1, 0, 4096},
		{"LargeSize", 0xFFFFFFFF, 4096, 0x100000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageAlign(tt.size, tt.pageSize)
			if got != tt.want {
				t.Errorf("PageAlign(%d, %d) = %d; want %d", tt.size, tt.pageSize, got, tt.want)
			}
		})
	}
}

// Alignment is idempotent and never shrinks.
func TestPageAlignProperties(t *testing.T) {
	for _, page := range []uint32{0, 2048, 4096, 16384} {
		for size := uint64(0); size < 10000; size += 137 {
			aligned := PageAlign(size, page)
			if aligned < size {
				t.Fatalf("PageAlign(%d, %d) = %d shrank the size", size, page, aligned)
			}
			if again := PageAlign(aligned, page); again != aligned {
				t.Fatalf("PageAlign not idempotent: PageAlign(%d, %d) = %d, re-aligned %d",
					size, page, aligned, again)
			}
		}
	}
}
