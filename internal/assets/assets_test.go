package assets

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTableOrderedAndNamed(t *testing.T) {
	table := Table()
	assert.Equal(t, 35, len(table))
	assert.Equal(t, "graphic_848600", table[0].Name())
	assert.Equal(t, "palette_84a725", table[1].Name())

	for i := 1; i < len(table); i++ {
		assert.True(t, table[i-1].Address < table[i].Address)
	}
}

func TestTilesPerRow(t *testing.T) {
	assert.Equal(t, 16, TilesPerRow(0x848600))
	assert.Equal(t, 16, TilesPerRow(0x859A51))
	assert.Equal(t, 32, TilesPerRow(0x84A829))
}

func TestNearestPalette(t *testing.T) {
	pal, ok := NearestPalette(0x848600)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x84A725), pal.Address)

	pal, ok = NearestPalette(0x8BEB49)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x8BEB25), pal.Address)
}

func TestPrecedingPalette(t *testing.T) {
	pal, ok := PrecedingPalette(0x85AA58)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x8599ED), pal.Address)

	// The first graphic has no preceding palette.
	_, ok = PrecedingPalette(0x848600)
	assert.False(t, ok)
}
