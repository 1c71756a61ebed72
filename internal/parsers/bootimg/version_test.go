package bootimg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamer1337/go-bootimg/internal/types"
)

func TestDetectVersion(t *testing.T) {
	t.Run("TooSmall", func(t *testing.T) {
		_, err := DetectVersion(make([]byte, types.BootHeaderMinSize-1))
		assert.ErrorIs(t, err, ErrInvalidSize)
	})
	t.Run("Empty", func(t *testing.T) {
		_, err := DetectVersion(nil)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})
	t.Run("BadMagic", func(t *testing.T) {
		buf := buildLegacy(t, legacyOpts{version: 0})
		buf[0] ^= 0xFF
		_, err := DetectVersion(buf)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})
	t.Run("ReturnsVersionField", func(t *testing.T) {
		for _, version := range []uint32{0, 1, 2, 3, 4} {
			var buf []byte
			if version < 3 {
				buf = buildLegacy(t, legacyOpts{version: version})
			} else {
				buf = buildV3(t, v3Opts{version: version})
			}
			got, err := DetectVersion(buf)
			require.NoError(t, err)
			assert.Equal(t, version, got)
		}
	})
	t.Run("UnknownVersionPassesThrough", func(t *testing.T) {
		// Detection reports what the image claims; only Parse rejects.
		buf := buildLegacy(t, legacyOpts{version: 9})
		got, err := DetectVersion(buf)
		require.NoError(t, err)
		assert.Equal(t, uint32(9), got)
	})
}
