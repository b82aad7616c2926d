// Package snesgfx converts between SNES planar tile data, BGR555 palette
// entries and paletted images. The codec's decompressed buffers are opaque
// bytes; this package gives them their pixel and color meaning.
package snesgfx

import (
	"errors"
	"fmt"
)

// Tile geometry constants.
const (
	TileSize      = 8  // tile edge length in pixels
	Tile4bppBytes = 32 // bytes per 4bpp planar tile
	Tile2bppBytes = 16 // bytes per 2bpp planar tile
)

// Package errors.
var (
	ErrBadDimensions = errors.New("pixel dimensions must be multiples of 8")
	ErrPixelBounds   = errors.New("pixel buffer does not match the given dimensions")
)

// DecodeTiles4bpp deinterleaves 4bpp planar tile data into one palette index
// byte per pixel, laying tiles out left to right in rows of tilesPerRow.
// A trailing partial tile is ignored. Returns the pixel buffer and the image
// dimensions; both are zero when data contains no complete tile.
func DecodeTiles4bpp(data []byte, tilesPerRow int) (pix []byte, width, height int) {
	return decodeTiles(data, tilesPerRow, Tile4bppBytes, decodeRow4bpp)
}

// DecodeTiles2bpp is DecodeTiles4bpp for the 2-plane format used by
// backgrounds with 4-color palettes.
func DecodeTiles2bpp(data []byte, tilesPerRow int) (pix []byte, width, height int) {
	return decodeTiles(data, tilesPerRow, Tile2bppBytes, decodeRow2bpp)
}

func decodeTiles(data []byte, tilesPerRow, tileBytes int, decodeRow func(tile []byte, y int) [TileSize]byte) ([]byte, int, int) {
	numTiles := len(data) / tileBytes
	if numTiles == 0 || tilesPerRow <= 0 {
		return nil, 0, 0
	}

	width := tilesPerRow * TileSize
	tileRows := (numTiles + tilesPerRow - 1) / tilesPerRow
	height := tileRows * TileSize
	pix := make([]byte, width*height)

	for tile := 0; tile < numTiles; tile++ {
		tileData := data[tile*tileBytes : (tile+1)*tileBytes]
		baseX := tile % tilesPerRow * TileSize
		baseY := tile / tilesPerRow * TileSize

		for y := 0; y < TileSize; y++ {
			row := decodeRow(tileData, y)
			copy(pix[(baseY+y)*width+baseX:], row[:])
		}
	}
	return pix, width, height
}

// decodeRow4bpp extracts one pixel row: planes 0 and 1 are interleaved in
// the first 16 bytes, planes 2 and 3 in the second 16.
func decodeRow4bpp(tile []byte, y int) [TileSize]byte {
	bp0 := tile[y*2]
	bp1 := tile[y*2+1]
	bp2 := tile[16+y*2]
	bp3 := tile[16+y*2+1]

	var row [TileSize]byte
	for x := 0; x < TileSize; x++ {
		bit := 7 - x
		row[x] = bp3>>bit&1<<3 | bp2>>bit&1<<2 | bp1>>bit&1<<1 | bp0>>bit&1
	}
	return row
}

func decodeRow2bpp(tile []byte, y int) [TileSize]byte {
	bp0 := tile[y*2]
	bp1 := tile[y*2+1]

	var row [TileSize]byte
	for x := 0; x < TileSize; x++ {
		bit := 7 - x
		row[x] = bp1>>bit&1<<1 | bp0>>bit&1
	}
	return row
}

// EncodeTiles4bpp interleaves one-byte-per-pixel data back into 4bpp planar
// tiles. Only the low 4 bits of each pixel are representable; higher bits
// are dropped. Dimensions must be multiples of the tile size.
func EncodeTiles4bpp(pix []byte, width, height int) ([]byte, error) {
	return encodeTiles(pix, width, height, Tile4bppBytes, encodeRow4bpp)
}

// EncodeTiles2bpp is EncodeTiles4bpp for the 2-plane format; only the low
// 2 bits of each pixel are representable.
func EncodeTiles2bpp(pix []byte, width, height int) ([]byte, error) {
	return encodeTiles(pix, width, height, Tile2bppBytes, encodeRow2bpp)
}

func encodeTiles(pix []byte, width, height, tileBytes int, encodeRow func(dst []byte, row []byte, y int)) ([]byte, error) {
	if width <= 0 || height <= 0 || width%TileSize != 0 || height%TileSize != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrPixelBounds, len(pix), width, height)
	}

	data := make([]byte, width/TileSize*(height/TileSize)*tileBytes)
	tile := 0
	for baseY := 0; baseY < height; baseY += TileSize {
		for baseX := 0; baseX < width; baseX += TileSize {
			dst := data[tile*tileBytes : (tile+1)*tileBytes]
			for y := 0; y < TileSize; y++ {
				row := pix[(baseY+y)*width+baseX : (baseY+y)*width+baseX+TileSize]
				encodeRow(dst, row, y)
			}
			tile++
		}
	}
	return data, nil
}

func encodeRow4bpp(dst []byte, row []byte, y int) {
	var bp0, bp1, bp2, bp3 byte
	for x, p := range row {
		bit := 7 - x
		bp0 |= p & 1 << bit
		bp1 |= p >> 1 & 1 << bit
		bp2 |= p >> 2 & 1 << bit
		bp3 |= p >> 3 & 1 << bit
	}
	dst[y*2] = bp0
	dst[y*2+1] = bp1
	dst[16+y*2] = bp2
	dst[16+y*2+1] = bp3
}

func encodeRow2bpp(dst []byte, row []byte, y int) {
	var bp0, bp1 byte
	for x, p := range row {
		bit := 7 - x
		bp0 |= p & 1 << bit
		bp1 |= p >> 1 & 1 << bit
	}
	dst[y*2] = bp0
	dst[y*2+1] = bp1
}
