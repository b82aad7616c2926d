package snesgfx

import (
	"encoding/binary"
	"image/color"
)

// PaletteLineColors is the number of colors one 4bpp palette line holds.
const PaletteLineColors = 16

// DecodePalette unpacks little-endian BGR555 entries into opaque colors.
// Each 5-bit channel expands to 8 bits by repeating its top bits, matching
// how the console's output is usually rendered. A trailing odd byte is
// ignored.
func DecodePalette(data []byte) color.Palette {
	pal := make(color.Palette, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		entry := binary.LittleEndian.Uint16(data[i:])
		r := uint8(entry & 0x1F)
		g := uint8(entry >> 5 & 0x1F)
		b := uint8(entry >> 10 & 0x1F)
		pal = append(pal, color.NRGBA{
			R: r<<3 | r>>2,
			G: g<<3 | g>>2,
			B: b<<3 | b>>2,
			A: 0xFF,
		})
	}
	return pal
}

// EncodePalette packs colors into little-endian BGR555 entries, truncating
// each channel to its top 5 bits.
func EncodePalette(pal color.Palette) []byte {
	data := make([]byte, len(pal)*2)
	for i, c := range pal {
		r, g, b, _ := c.RGBA()
		entry := uint16(b>>11)<<10 | uint16(g>>11)<<5 | uint16(r>>11)
		binary.LittleEndian.PutUint16(data[i*2:], entry)
	}
	return data
}

// PaletteLine slices one 16-color line out of a larger palette, padding
// with opaque black when the line runs past the end.
func PaletteLine(pal color.Palette, line int) color.Palette {
	out := make(color.Palette, PaletteLineColors)
	for i := range out {
		idx := line*PaletteLineColors + i
		if idx >= 0 && idx < len(pal) {
			out[i] = pal[idx]
		} else {
			out[i] = color.NRGBA{A: 0xFF}
		}
	}
	return out
}

// GrayscalePalette returns the 16-entry fallback palette used when no
// palette asset precedes a graphic.
func GrayscalePalette() color.Palette {
	pal := make(color.Palette, PaletteLineColors)
	for i := range pal {
		v := uint8(i * 17)
		pal[i] = color.NRGBA{R: v, G: v, B: v, A: 0xFF}
	}
	return pal
}
