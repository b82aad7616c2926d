package snesgfx

import (
	"fmt"
	"image"
	"image/color"
	"sort"
)

// TilesToImage renders 4bpp planar tile data as a paletted image laid out
// tilesPerRow tiles wide. Pixel indexes wrap around the palette length, and
// an empty palette falls back to grayscale.
func TilesToImage(data []byte, pal color.Palette, tilesPerRow int) *image.Paletted {
	if len(pal) == 0 {
		pal = GrayscalePalette()
	}
	if len(pal) > 256 {
		pal = pal[:256]
	}

	pix, width, height := DecodeTiles4bpp(data, tilesPerRow)
	img := image.NewPaletted(image.Rect(0, 0, width, height), pal)
	for i, p := range pix {
		img.Pix[i] = uint8(int(p) % len(pal))
	}
	return img
}

// TilesFromImage converts an image back into 4bpp planar tile data and the
// BGR555 palette it uses. Paletted images keep their color table and pixel
// indexes as-is. Other images may use at most 16 distinct colors; like the
// original conversion tool, extra colors are dropped and their pixels map
// to index 0. Image dimensions must be multiples of the tile size.
func TilesFromImage(img image.Image) (tiles, palette []byte, err error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 || width%TileSize != 0 || height%TileSize != 0 {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}

	var pix []byte
	var pal color.Palette

	if p, ok := img.(*image.Paletted); ok {
		pal = p.Palette
		pix = make([]byte, width*height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pix[y*width+x] = p.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)
			}
		}
	} else {
		pix, pal = quantize(img)
	}

	tiles, err = EncodeTiles4bpp(pix, width, height)
	if err != nil {
		return nil, nil, err
	}
	return tiles, EncodePalette(pal), nil
}

// quantize maps an RGBA-ish image onto a 16-color palette built from its
// distinct colors, sorted by channel value for reproducible output.
func quantize(img image.Image) ([]byte, color.Palette) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	seen := make(map[color.NRGBA]struct{})
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			seen[opaque(img.At(x, y))] = struct{}{}
		}
	}

	colors := make([]color.NRGBA, 0, len(seen))
	for c := range seen {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		return packRGB(colors[i]) < packRGB(colors[j])
	})
	if len(colors) > PaletteLineColors {
		colors = colors[:PaletteLineColors]
	}

	index := make(map[color.NRGBA]byte, len(colors))
	pal := make(color.Palette, PaletteLineColors)
	for i := range pal {
		if i < len(colors) {
			index[colors[i]] = byte(i)
			pal[i] = colors[i]
		} else {
			pal[i] = color.NRGBA{A: 0xFF}
		}
	}

	pix := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pix[y*width+x] = index[opaque(img.At(bounds.Min.X+x, bounds.Min.Y+y))]
		}
	}
	return pix, pal
}

// opaque drops the alpha channel; transparency is not part of the tile format.
func opaque(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xFF
	return n
}

func packRGB(c color.NRGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
