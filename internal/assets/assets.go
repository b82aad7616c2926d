// Package assets describes where the game's compressed graphics and palette
// blocks live. The table is configuration: the codec and the ROM layer know
// nothing about these addresses.
package assets

import "fmt"

// Kind classifies what a compressed block decodes into.
type Kind uint8

// Asset kinds.
const (
	Graphic Kind = iota
	Palette
)

func (k Kind) String() string {
	if k == Palette {
		return "palette"
	}
	return "graphic"
}

// Asset is one compressed block in the ROM.
type Asset struct {
	Address uint32 // LoROM address of the compressed stream
	Kind    Kind
}

// Name returns a stable identifier used for extracted file names.
func (a Asset) Name() string {
	return fmt.Sprintf("%s_%06x", a.Kind, a.Address)
}

// defaultTilesPerRow lays out most graphics 32 tiles (256 pixels) wide.
const defaultTilesPerRow = 32

// narrowGraphics are laid out 16 tiles wide instead.
var narrowGraphics = map[uint32]bool{
	0x848600: true,
	0x859A51: true,
	0x85ECED: true,
}

// TilesPerRow returns the tile row width used to lay out a graphic.
func TilesPerRow(addr uint32) int {
	if narrowGraphics[addr] {
		return defaultTilesPerRow / 2
	}
	return defaultTilesPerRow
}

// table lists every known compressed asset in ROM order.
var table = []Asset{
	{0x848600, Graphic},
	{0x84A725, Palette},
	{0x84A829, Graphic},
	{0x84D483, Palette},
	{0x84D4E7, Palette},
	{0x84D4F3, Palette},
	{0x84D516, Graphic},
	{0x8599ED, Palette},
	{0x859A51, Graphic},
	{0x85AA58, Graphic},
	{0x85AD0D, Graphic},
	{0x85ECA9, Palette},
	{0x85ECED, Graphic},
	{0x868289, Graphic},
	{0x8684B5, Graphic},
	{0x86CB5E, Palette},
	{0x86CB82, Graphic},
	{0x87AD76, Palette},
	{0x87AD9A, Graphic},
	{0x88827C, Palette},
	{0x8882A0, Graphic},
	{0x88DA4D, Palette},
	{0x88DA71, Graphic},
	{0x899B7D, Palette},
	{0x899BA1, Graphic},
	{0x89D181, Palette},
	{0x89D1A5, Graphic},
	{0x8A8C49, Palette},
	{0x8A8C6D, Graphic},
	{0x8AECDD, Palette},
	{0x8AED01, Graphic},
	{0x8BBC5A, Palette},
	{0x8BBC7E, Graphic},
	{0x8BEB25, Palette},
	{0x8BEB49, Graphic},
}

// Table returns every known asset in ROM order.
func Table() []Asset {
	out := make([]Asset, len(table))
	copy(out, table)
	return out
}

// NearestPalette returns the palette asset with the smallest address
// distance to addr, for graphics injected without an explicit palette.
func NearestPalette(addr uint32) (Asset, bool) {
	var best Asset
	found := false
	bestDistance := uint32(0)

	for _, a := range table {
		if a.Kind != Palette {
			continue
		}
		distance := a.Address - addr
		if a.Address < addr {
			distance = addr - a.Address
		}
		if !found || distance < bestDistance {
			best = a
			bestDistance = distance
			found = true
		}
	}
	return best, found
}

// PrecedingPalette returns the palette asset with the largest address below
// addr, the heuristic used to colorize extracted graphics.
func PrecedingPalette(addr uint32) (Asset, bool) {
	var best Asset
	found := false

	for _, a := range table {
		if a.Kind != Palette || a.Address >= addr {
			continue
		}
		if !found || a.Address > best.Address {
			best = a
			found = true
		}
	}
	return best, found
}
