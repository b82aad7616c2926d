// Package fileprocessor drives the extract, inject and verify workflows.
package fileprocessor

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/tilderain/hongkong97graphicstools/internal/assets"
	"github.com/tilderain/hongkong97graphicstools/internal/codec"
	"github.com/tilderain/hongkong97graphicstools/internal/options"
	"github.com/tilderain/hongkong97graphicstools/internal/rom"
	"github.com/tilderain/hongkong97graphicstools/internal/snesgfx"
	"github.com/tilderain/hongkong97graphicstools/internal/verification"
)

// maxStreamRead bounds how many bytes one compressed asset can occupy: the
// least dense encoding spends two input bytes per output byte.
const maxStreamRead = codec.HeaderSize + 2*codec.MaxInputSize

// PrintBanner logs the application name and build information unless quiet
// mode is enabled.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("hk97gfx", log.String("version", buildinfo.Version(version, commit, date)))
}

// Process runs the workflow selected by the options: verification, batch
// injection or asset extraction.
func Process(ctx context.Context, logger *log.Logger, opts options.Program) error {
	img, err := rom.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	if img.HeaderSize() > 0 {
		logger.Debug("Copier header detected", log.Int("bytes", img.HeaderSize()))
	}

	switch {
	case opts.Verify:
		return verifyAssets(ctx, logger, img)
	case opts.InjectConfig != "":
		return injectAssets(ctx, logger, img, opts)
	default:
		return extractAssets(ctx, logger, img, opts)
	}
}

// decodeAsset decompresses one asset and reports the size its compressed
// stream occupies in the ROM.
func decodeAsset(img *rom.Image, a assets.Asset) (data []byte, compressedSize int, err error) {
	chunk, err := img.Chunk(a.Address, maxStreamRead)
	if err != nil {
		return nil, 0, err
	}
	return codec.Decompress(chunk)
}

// verifyAssets recompresses every known asset and round-trips the result.
func verifyAssets(ctx context.Context, logger *log.Logger, img *rom.Image) error {
	failed := 0
	table := assets.Table()

	for _, a := range table {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, compressedSize, err := decodeAsset(img, a)
		if err != nil {
			logger.Error("Decoding failed", log.String("asset", a.Name()), log.Err(err))
			failed++
			continue
		}

		stream, err := verification.CompressVerified(logger, a.Name(), data)
		if err != nil {
			logger.Error("Verification failed", log.String("asset", a.Name()), log.Err(err))
			failed++
			continue
		}

		logger.Info("Asset verified",
			log.String("asset", a.Name()),
			log.Int("decompressed", len(data)),
			log.Int("original", compressedSize),
			log.Int("recompressed", len(stream)),
		)
		if len(stream) > compressedSize {
			logger.Warn("Recompressed stream is larger than the original, in-place injection would not fit",
				log.String("asset", a.Name()))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d assets failed verification", failed, len(table))
	}
	return nil
}

// extractAssets decompresses every known asset into the output directory:
// raw .bin files for everything, plus a .png rendering for each graphic
// using the nearest preceding palette.
func extractAssets(ctx context.Context, logger *log.Logger, img *rom.Image, opts options.Program) error {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	type graphic struct {
		asset assets.Asset
		data  []byte
	}
	palettes := make(map[uint32]color.Palette)
	var graphics []graphic

	for _, a := range assets.Table() {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, compressedSize, err := decodeAsset(img, a)
		if err != nil {
			logger.Error("Decoding failed", log.String("asset", a.Name()), log.Err(err))
			continue
		}
		logger.Info("Asset decompressed",
			log.String("asset", a.Name()),
			log.Int("compressed", compressedSize),
			log.Int("decompressed", len(data)),
		)
		if len(data) == 0 {
			continue
		}

		name := filepath.Join(opts.OutputDir, a.Name()+".bin")
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}

		if a.Kind == assets.Palette {
			palettes[a.Address] = snesgfx.DecodePalette(data)
		} else {
			graphics = append(graphics, graphic{asset: a, data: data})
		}
	}

	for _, g := range graphics {
		pal := snesgfx.GrayscalePalette()
		if p, ok := assets.PrecedingPalette(g.asset.Address); ok {
			if decoded, ok := palettes[p.Address]; ok {
				pal = snesgfx.PaletteLine(decoded, 0)
			}
		}

		rendered := snesgfx.TilesToImage(g.data, pal, assets.TilesPerRow(g.asset.Address))
		name := filepath.Join(opts.OutputDir, g.asset.Name()+".png")
		if err := writePNG(name, rendered); err != nil {
			return err
		}
		logger.Debug("Graphic rendered", log.String("file", name))
	}

	return nil
}

// injectJob is one entry of the JSON batch file.
type injectJob struct {
	Image          string `json:"image_path"`
	Address        string `json:"snes_address"`
	PaletteAddress string `json:"palette_address,omitempty"`
	TargetSize     int    `json:"target_size,omitempty"`
}

type injectBatch struct {
	Graphics []injectJob `json:"graphics"`
}

// injectAssets compresses the images of a JSON batch file and overwrites the
// corresponding assets in place, refusing streams that would not fit the
// space the original compressed data occupies.
func injectAssets(ctx context.Context, logger *log.Logger, img *rom.Image, opts options.Program) error {
	raw, err := os.ReadFile(opts.InjectConfig)
	if err != nil {
		return fmt.Errorf("reading batch file: %w", err)
	}
	var batch injectBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return fmt.Errorf("parsing batch file: %w", err)
	}

	for _, job := range batch.Graphics {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := injectGraphic(logger, img, job); err != nil {
			return fmt.Errorf("injecting %s: %w", job.Image, err)
		}
	}

	if err := img.Save(opts.Output); err != nil {
		return err
	}
	logger.Info("Modified ROM written", log.String("file", opts.Output))
	return nil
}

func injectGraphic(logger *log.Logger, img *rom.Image, job injectJob) error {
	addr, err := parseAddress(job.Address)
	if err != nil {
		return err
	}

	source, err := readImage(job.Image)
	if err != nil {
		return err
	}
	tiles, paletteData, err := snesgfx.TilesFromImage(source)
	if err != nil {
		return err
	}
	if job.TargetSize > 0 {
		tiles = padToSize(tiles, job.TargetSize)
	}

	if err := writeCompressed(logger, img, addr, job.Image, tiles); err != nil {
		return err
	}
	logger.Info("Graphic injected", log.String("file", job.Image), log.Hex("address", addr))

	palAddr, ok, err := paletteAddress(job, addr)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn("No palette address found, skipping palette injection", log.Hex("address", addr))
		return nil
	}
	if err := writeCompressed(logger, img, palAddr, job.Image+" palette", paletteData); err != nil {
		return err
	}
	logger.Info("Palette injected", log.String("file", job.Image), log.Hex("address", palAddr))
	return nil
}

// writeCompressed compresses data, proves it round-trips, checks it fits the
// space of the existing compressed asset and overwrites it in place.
func writeCompressed(logger *log.Logger, img *rom.Image, addr uint32, name string, data []byte) error {
	stream, err := verification.CompressVerified(logger, name, data)
	if err != nil {
		return err
	}

	chunk, err := img.Chunk(addr, maxStreamRead)
	if err != nil {
		return err
	}
	_, originalSize, err := codec.Decompress(chunk)
	if err != nil {
		return fmt.Errorf("sizing existing stream at $%06X: %w", addr, err)
	}
	if len(stream) > originalSize {
		return fmt.Errorf("compressed stream (%d bytes) exceeds the %d bytes available at $%06X",
			len(stream), originalSize, addr)
	}

	return img.WriteAt(addr, stream)
}

func paletteAddress(job injectJob, graphicAddr uint32) (uint32, bool, error) {
	if job.PaletteAddress != "" {
		addr, err := parseAddress(job.PaletteAddress)
		if err != nil {
			return 0, false, err
		}
		return addr, true, nil
	}
	if pal, ok := assets.NearestPalette(graphicAddr); ok {
		return pal.Address, true, nil
	}
	return 0, false, nil
}

func parseAddress(s string) (uint32, error) {
	addr, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing address %q: %w", s, err)
	}
	return uint32(addr), nil
}

// padToSize pads tile data with zero bytes or truncates it to match the
// size the game expects for the asset.
func padToSize(data []byte, size int) []byte {
	if len(data) >= size {
		return data[:size]
	}
	padded := make([]byte, size)
	copy(padded, data)
	return padded
}

func readImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	source, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	return source, nil
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}
