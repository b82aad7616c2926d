package fileprocessor

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/tilderain/hongkong97graphicstools/internal/codec"
	"github.com/tilderain/hongkong97graphicstools/internal/options"
	"github.com/tilderain/hongkong97graphicstools/internal/rom"
	"github.com/tilderain/hongkong97graphicstools/internal/snesgfx"
)

const testROMSize = 0x100000 // 1 MB, covers every asset bank

// literalStream builds a compressed stream that stores data verbatim as
// literal runs, so the space it occupies in the ROM is predictable.
func literalStream(data []byte) []byte {
	stream := []byte{byte(len(data)), byte(len(data) >> 8)}
	for len(data) > 0 {
		run := len(data)
		if run > 16 {
			run = 16
		}
		stream = append(stream, 0xE0|byte(run-1))
		stream = append(stream, data[:run]...)
		data = data[run:]
	}
	return stream
}

// writeTestROM creates a zero filled ROM file with the given streams planted
// at their LoROM addresses. Zero bytes decode as empty assets, so every table
// entry without a planted stream is simply skipped by the workflows.
func writeTestROM(t *testing.T, streams map[uint32][]byte) string {
	t.Helper()

	img := rom.New(make([]byte, testROMSize))
	for addr, stream := range streams {
		assert.NoError(t, img.WriteAt(addr, stream))
	}

	path := filepath.Join(t.TempDir(), "test.sfc")
	assert.NoError(t, img.Save(path))
	return path
}

func testTileData(t *testing.T) []byte {
	t.Helper()

	pix := make([]byte, snesgfx.TileSize*snesgfx.TileSize)
	for i := range pix {
		pix[i] = byte(i % 16)
	}
	tiles, err := snesgfx.EncodeTiles4bpp(pix, snesgfx.TileSize, snesgfx.TileSize)
	assert.NoError(t, err)
	return tiles
}

func testPaletteData() []byte {
	data := make([]byte, 32)
	for i := 0; i < 16; i++ {
		c := snesgfx.EncodePalette(color.Palette{
			color.NRGBA{R: byte(i << 4), G: byte(i << 3), B: byte(i << 2), A: 255},
		})
		copy(data[i*2:], c)
	}
	return data
}

func TestProcessExtract(t *testing.T) {
	tiles := testTileData(t)
	palette := testPaletteData()

	tileStream, err := codec.Compress(tiles)
	assert.NoError(t, err)
	paletteStream, err := codec.Compress(palette)
	assert.NoError(t, err)

	romFile := writeTestROM(t, map[uint32][]byte{
		0x84A829: tileStream,
		0x84A725: paletteStream,
	})
	outDir := filepath.Join(t.TempDir(), "out")

	opts := options.Program{
		Input:     romFile,
		OutputDir: outDir,
		Quiet:     true,
	}
	err = Process(context.Background(), log.NewTestLogger(t), opts)
	assert.NoError(t, err)

	gotTiles, err := os.ReadFile(filepath.Join(outDir, "graphic_84a829.bin"))
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(tiles, gotTiles))

	gotPalette, err := os.ReadFile(filepath.Join(outDir, "palette_84a725.bin"))
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(palette, gotPalette))

	pngFile, err := os.Open(filepath.Join(outDir, "graphic_84a829.png"))
	assert.NoError(t, err)
	defer func() { assert.NoError(t, pngFile.Close()) }()

	rendered, err := png.Decode(pngFile)
	assert.NoError(t, err)
	assert.Equal(t, snesgfx.TileSize, rendered.Bounds().Dy())
}

func TestProcessVerify(t *testing.T) {
	tiles := testTileData(t)
	tileStream, err := codec.Compress(tiles)
	assert.NoError(t, err)

	romFile := writeTestROM(t, map[uint32][]byte{
		0x84A829: tileStream,
	})

	opts := options.Program{
		Input:  romFile,
		Verify: true,
		Quiet:  true,
	}
	err = Process(context.Background(), log.NewTestLogger(t), opts)
	assert.NoError(t, err)
}

func writeTestImage(t *testing.T, dir string) (string, *image.Paletted) {
	t.Helper()

	pal := color.Palette{
		color.NRGBA{A: 255},
		color.NRGBA{R: 255, A: 255},
		color.NRGBA{G: 255, A: 255},
		color.NRGBA{B: 255, A: 255},
	}
	src := image.NewPaletted(image.Rect(0, 0, snesgfx.TileSize, snesgfx.TileSize), pal)
	for i := range src.Pix {
		src.Pix[i] = byte(i % len(pal))
	}

	path := filepath.Join(dir, "tile.png")
	file, err := os.Create(path)
	assert.NoError(t, err)
	assert.NoError(t, png.Encode(file, src))
	assert.NoError(t, file.Close())
	return path, src
}

func writeBatchFile(t *testing.T, dir, imagePath string) string {
	t.Helper()

	batch := injectBatch{Graphics: []injectJob{{
		Image:          imagePath,
		Address:        "0x84A829",
		PaletteAddress: "0x84A725",
	}}}
	raw, err := json.Marshal(batch)
	assert.NoError(t, err)

	path := filepath.Join(dir, "batch.json")
	assert.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestProcessInject(t *testing.T) {
	dir := t.TempDir()
	imagePath, src := writeTestImage(t, dir)
	batchPath := writeBatchFile(t, dir, imagePath)

	// Plant incompressible streams large enough for the replacements to fit.
	filler := make([]byte, 256)
	for i := range filler {
		filler[i] = byte(i*37 + 13)
	}
	romFile := writeTestROM(t, map[uint32][]byte{
		0x84A829: literalStream(filler),
		0x84A725: literalStream(filler[:64]),
	})
	outFile := filepath.Join(dir, "out.sfc")

	opts := options.Program{
		Input:        romFile,
		Output:       outFile,
		InjectConfig: batchPath,
		Quiet:        true,
	}
	err := Process(context.Background(), log.NewTestLogger(t), opts)
	assert.NoError(t, err)

	wantTiles, wantPalette, err := snesgfx.TilesFromImage(src)
	assert.NoError(t, err)

	modified, err := rom.Load(outFile)
	assert.NoError(t, err)

	chunk, err := modified.Chunk(0x84A829, maxStreamRead)
	assert.NoError(t, err)
	gotTiles, _, err := codec.Decompress(chunk)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(wantTiles, gotTiles))

	chunk, err = modified.Chunk(0x84A725, maxStreamRead)
	assert.NoError(t, err)
	gotPalette, _, err := codec.Decompress(chunk)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(wantPalette, gotPalette))
}

func TestProcessInjectRejectsOversizedStream(t *testing.T) {
	dir := t.TempDir()
	imagePath, _ := writeTestImage(t, dir)
	batchPath := writeBatchFile(t, dir, imagePath)

	// The target holds an empty asset, so any replacement is too large.
	romFile := writeTestROM(t, nil)
	outFile := filepath.Join(dir, "out.sfc")

	opts := options.Program{
		Input:        romFile,
		Output:       outFile,
		InjectConfig: batchPath,
		Quiet:        true,
	}
	err := Process(context.Background(), log.NewTestLogger(t), opts)
	assert.Error(t, err)
}
