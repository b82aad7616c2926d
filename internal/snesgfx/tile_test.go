package snesgfx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// solidTile4bpp builds one 4bpp tile with every pixel set to index.
func solidTile4bpp(index byte) []byte {
	tile := make([]byte, Tile4bppBytes)
	for y := 0; y < TileSize; y++ {
		for bit := 0; bit < 4; bit++ {
			if index>>bit&1 == 0 {
				continue
			}
			if bit < 2 {
				tile[y*2+bit] = 0xFF
			} else {
				tile[16+y*2+bit-2] = 0xFF
			}
		}
	}
	return tile
}

func TestDecodeTiles4bppSolid(t *testing.T) {
	pix, width, height := DecodeTiles4bpp(solidTile4bpp(5), 16)
	assert.Equal(t, 128, width)
	assert.Equal(t, 8, height)
	assert.Equal(t, width*height, len(pix))

	// The single tile occupies the top-left corner; the rest stays 0.
	for y := 0; y < TileSize; y++ {
		for x := 0; x < width; x++ {
			want := byte(0)
			if x < TileSize {
				want = 5
			}
			assert.Equal(t, want, pix[y*width+x])
		}
	}
}

func TestDecodeTiles4bppPixelOrder(t *testing.T) {
	// Plane bytes with only bit 7 set: leftmost pixel of the first row.
	tile := make([]byte, Tile4bppBytes)
	tile[0] = 0x80  // plane 0
	tile[17] = 0x80 // plane 3

	pix, width, _ := DecodeTiles4bpp(tile, 1)
	assert.Equal(t, 8, width)
	assert.Equal(t, byte(0x09), pix[0])
	assert.Equal(t, byte(0), pix[1])
}

func TestDecodeTilesIgnoresPartialTile(t *testing.T) {
	data := append(solidTile4bpp(1), 0xAA, 0xBB)
	pix, width, height := DecodeTiles4bpp(data, 1)
	assert.Equal(t, 8, width)
	assert.Equal(t, 8, height)
	assert.Equal(t, 64, len(pix))

	pix, width, height = DecodeTiles4bpp([]byte{0x01, 0x02}, 1)
	assert.Equal(t, 0, width)
	assert.Equal(t, 0, height)
	assert.Equal(t, 0, len(pix))
}

func TestEncodeTiles4bppRoundTrip(t *testing.T) {
	// Two tiles with a deterministic pixel pattern.
	width, height := 16, 8
	pix := make([]byte, width*height)
	for i := range pix {
		pix[i] = byte(i) % 16
	}

	data, err := EncodeTiles4bpp(pix, width, height)
	assert.NoError(t, err)
	assert.Equal(t, 2*Tile4bppBytes, len(data))

	decoded, w, h := DecodeTiles4bpp(data, 2)
	assert.Equal(t, width, w)
	assert.Equal(t, height, h)
	assert.True(t, bytes.Equal(pix, decoded))
}

func TestEncodeTiles2bppRoundTrip(t *testing.T) {
	width, height := 8, 16
	pix := make([]byte, width*height)
	for i := range pix {
		pix[i] = byte(i) % 4
	}

	data, err := EncodeTiles2bpp(pix, width, height)
	assert.NoError(t, err)
	assert.Equal(t, 2*Tile2bppBytes, len(data))

	decoded, w, h := DecodeTiles2bpp(data, 1)
	assert.Equal(t, width, w)
	assert.Equal(t, height, h)
	assert.True(t, bytes.Equal(pix, decoded))
}

func TestEncodeTilesBadInput(t *testing.T) {
	_, err := EncodeTiles4bpp(make([]byte, 10*10), 10, 10)
	assert.True(t, errors.Is(err, ErrBadDimensions))

	_, err = EncodeTiles4bpp(make([]byte, 10), 8, 8)
	assert.True(t, errors.Is(err, ErrPixelBounds))
}
