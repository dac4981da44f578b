// Package spufile stores a 2-bit indexed image with its palette in a small
// zstd-compressed container.
//
// Layout (big-endian):
//
//	magic   "SPUQ"
//	width   uint16
//	height  uint16
//	palette 4 x uint32 premultiplied ARGB
//	data    zstd frame holding height rows of (width+3)/4 bytes
package spufile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/Raimguzhinov/spuquant/argb"
	"github.com/Raimguzhinov/spuquant/quant"
)

const magic = "SPUQ"

var (
	ErrInvalidMagic = errors.New("spufile: invalid magic")
	ErrGeometry     = errors.New("spufile: image size does not match its data")
)

// Image is a packed indexed image.
type Image struct {
	Width, Height int
	Palette       argb.Palette
	Indexed       []byte
}

// New wraps a row-strided index stream of the given width.
func New(indexed []byte, width int, pal argb.Palette) (*Image, error) {
	if width <= 0 || len(indexed)%quant.RowBytes(width) != 0 {
		return nil, ErrGeometry
	}
	return &Image{
		Width:   width,
		Height:  len(indexed) / quant.RowBytes(width),
		Palette: pal,
		Indexed: indexed,
	}, nil
}

// Pixels expands the image to ARGB pixels.
func (m *Image) Pixels() ([]argb.Pixel, error) {
	return quant.Expand(m.Indexed, m.Palette, m.Width)
}

func (m *Image) check() error {
	if m.Width <= 0 || m.Height < 0 || m.Width > math.MaxUint16 || m.Height > math.MaxUint16 {
		return ErrGeometry
	}
	if len(m.Indexed) != quant.RowBytes(m.Width)*m.Height {
		return ErrGeometry
	}
	return nil
}

// Write encodes m to w.
func Write(w io.Writer, m *Image) error {
	if err := m.check(); err != nil {
		return err
	}
	var hdr bytes.Buffer
	hdr.WriteString(magic)
	binary.Write(&hdr, binary.BigEndian, uint16(m.Width))
	binary.Write(&hdr, binary.BigEndian, uint16(m.Height))
	for _, c := range m.Palette {
		binary.Write(&hdr, binary.BigEndian, uint32(c))
	}
	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}
	if _, err := w.Write(compressZstd(m.Indexed)); err != nil {
		return err
	}
	return nil
}

// Read decodes an image written by Write.
func Read(r io.Reader) (*Image, error) {
	var hdr struct {
		Magic   [4]byte
		W, H    uint16
		Palette [argb.PaletteSize]uint32
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("spufile: header: %w", err)
	}
	if string(hdr.Magic[:]) != magic {
		return nil, ErrInvalidMagic
	}
	comp, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data, err := decompressZstd(comp)
	if err != nil {
		return nil, fmt.Errorf("spufile: zstd decode: %w", err)
	}
	m := &Image{Width: int(hdr.W), Height: int(hdr.H), Indexed: data}
	for i, c := range hdr.Palette {
		m.Palette[i] = argb.Pixel(c)
	}
	if err := m.check(); err != nil {
		return nil, err
	}
	return m, nil
}

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

func compressZstd(data []byte) []byte {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, nil)
	zstdEncPool.Put(enc)
	return out
}

func decompressZstd(data []byte) ([]byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	zstdDecPool.Put(dec)
	return out, err
}
