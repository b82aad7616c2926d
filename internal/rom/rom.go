// Package rom loads LoROM images and locates asset bytes inside them.
// It hands raw byte slices to the codec and writes compressed streams back
// in place; all address arithmetic lives here, not in the codec.
package rom

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

// CopierHeaderSize is the size of the copier header some .smc dumps carry
// before the actual ROM data.
const CopierHeaderSize = 512

// Package errors.
var (
	ErrAddressOutOfRange = errors.New("address outside the LoROM mapping area")
	ErrReadPastEnd       = errors.New("read past the end of the ROM image")
	ErrWritePastEnd      = errors.New("write past the end of the ROM image")
	ErrPatchMismatch     = errors.New("bytes at patch location do not match the expected original")
)

// Image is a ROM file held in memory. All addresses passed to its methods
// are LoROM addresses; the copier header offset is applied internally.
type Image struct {
	data       []byte
	headerSize int
}

// Load reads a ROM file into memory.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM file: %w", err)
	}
	return New(data), nil
}

// New wraps raw ROM bytes. A copier header is detected by the file size:
// plain dumps are a multiple of 1024 bytes, headered dumps carry 512 extra.
func New(data []byte) *Image {
	img := &Image{data: data}
	if len(data)%1024 == CopierHeaderSize {
		img.headerSize = CopierHeaderSize
	}
	return img
}

// HeaderSize returns the detected copier header size, 0 or 512.
func (img *Image) HeaderSize() int {
	return img.headerSize
}

// Size returns the total file size including any copier header.
func (img *Image) Size() int {
	return len(img.data)
}

// FileOffset maps a LoROM address to a file offset, copier header included.
// Valid addresses live in banks $80-$BF with in-bank offsets $8000-$FFFF.
func (img *Image) FileOffset(addr uint32) (int, error) {
	bank := int(addr >> 16)
	inBank := int(addr & 0xFFFF)
	if bank < 0x80 || bank > 0xBF || inBank < 0x8000 {
		return 0, fmt.Errorf("%w: $%06X", ErrAddressOutOfRange, addr)
	}
	return (bank-0x80)*0x8000 + (inBank - 0x8000) + img.headerSize, nil
}

// Chunk returns up to max bytes starting at addr. The slice aliases the
// image and may be shorter than max near the end of the file.
func (img *Image) Chunk(addr uint32, max int) ([]byte, error) {
	offset, err := img.FileOffset(addr)
	if err != nil {
		return nil, err
	}
	if offset >= len(img.data) {
		return nil, fmt.Errorf("%w: $%06X", ErrReadPastEnd, addr)
	}

	end := offset + max
	if end > len(img.data) {
		end = len(img.data)
	}
	return img.data[offset:end], nil
}

// WriteAt overwrites len(data) bytes at addr in place. The caller is
// responsible for checking that data fits the space the asset occupies.
func (img *Image) WriteAt(addr uint32, data []byte) error {
	offset, err := img.FileOffset(addr)
	if err != nil {
		return err
	}
	if offset+len(data) > len(img.data) {
		return fmt.Errorf("%w: $%06X+%d", ErrWritePastEnd, addr, len(data))
	}

	copy(img.data[offset:], data)
	return nil
}

// PatchBytes replaces expect with replace at addr, verifying the original
// bytes first so a different ROM revision aborts instead of being corrupted.
func (img *Image) PatchBytes(addr uint32, expect, replace []byte) error {
	offset, err := img.FileOffset(addr)
	if err != nil {
		return err
	}
	if offset+len(expect) > len(img.data) {
		return fmt.Errorf("%w: $%06X+%d", ErrWritePastEnd, addr, len(expect))
	}
	if !bytes.Equal(img.data[offset:offset+len(expect)], expect) {
		return fmt.Errorf("%w: $%06X", ErrPatchMismatch, addr)
	}

	return img.WriteAt(addr, replace)
}

// Save writes the image, copier header included, to path.
func (img *Image) Save(path string) error {
	if err := os.WriteFile(path, img.data, 0o644); err != nil {
		return fmt.Errorf("writing ROM file: %w", err)
	}
	return nil
}
