// Package pngpal stores 2-bit indexed images as palette PNG files and reads
// palettes back out of them.
//
// Palette colours are premultiplied in memory and straight in the file:
// Write divides by alpha, ReadPalette multiplies back.
package pngpal

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/Raimguzhinov/spuquant/argb"
	"github.com/Raimguzhinov/spuquant/quant"
)

var (
	// ErrGeometry is returned when an indexed buffer is not a whole number
	// of rows of the given width.
	ErrGeometry = errors.New("pngpal: indexed buffer is not a whole number of rows")
	// ErrPrematureEOF is returned when the source ends before the palette
	// chunks do.
	// ReadPalette still returns whatever palette it recovered.
	ErrPrematureEOF = errors.New("pngpal: premature EOF encountered in input PNG file")
	// ErrNotIndexed is returned by ReadIndexed for images that are not
	// palette images of at most four colours.
	ErrNotIndexed = errors.New("pngpal: not a 4-colour palette image")
)

// Write encodes a row-strided 2-bit index stream as a palette PNG. Each row
// takes (width+3)/4 bytes; the height follows from len(indexed).
func Write(w io.Writer, indexed []byte, width int, pal argb.Palette) error {
	if width <= 0 {
		return ErrGeometry
	}
	stride := quant.RowBytes(width)
	if len(indexed)%stride != 0 {
		return ErrGeometry
	}
	height := len(indexed) / stride

	img := image.NewPaletted(image.Rect(0, 0, width, height), pal.NRGBA())
	for y := 0; y < height; y++ {
		src := indexed[y*stride : (y+1)*stride]
		dst := img.Pix[y*img.Stride : y*img.Stride+width]
		for x := range dst {
			dst[x] = src[x/4] >> (x % 4 * 2) & 3
		}
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("pngpal: encode: %w", err)
	}
	return nil
}

// ReadPalette returns the palette of a PNG, premultiplied, or nil if the
// image is not a palette image. Only the chunks ahead of the pixel data are
// read, so damaged or missing pixel data does not matter. A source that ends
// before the palette is complete yields the colours read so far together
// with an error wrapping ErrPrematureEOF.
func ReadPalette(r io.Reader) ([]argb.Pixel, error) {
	var got bytes.Buffer
	cfg, err := png.DecodeConfig(io.TeeReader(r, &got))
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return scanPalette(got.Bytes()), fmt.Errorf("%w: %w", ErrPrematureEOF, err)
		}
		return nil, fmt.Errorf("pngpal: decode: %w", err)
	}
	p, ok := cfg.ColorModel.(color.Palette)
	if !ok {
		return nil, nil
	}
	return fromColorPalette(p), nil
}

// ReadIndexed decodes a palette PNG of at most four colours back into a
// row-strided 2-bit index stream.
func ReadIndexed(r io.Reader) (indexed []byte, width int, pal argb.Palette, err error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, 0, pal, fmt.Errorf("pngpal: decode: %w", err)
	}
	p, ok := img.(*image.Paletted)
	if !ok || len(p.Palette) > argb.PaletteSize {
		return nil, 0, pal, ErrNotIndexed
	}
	pal = argb.PaletteOf(fromColorPalette(p.Palette))

	b := p.Bounds()
	width = b.Dx()
	stride := quant.RowBytes(width)
	indexed = make([]byte, stride*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		src := p.Pix[y*p.Stride : y*p.Stride+width]
		dst := indexed[y*stride:]
		for x, i := range src {
			dst[x/4] |= (i & 3) << (x % 4 * 2)
		}
	}
	return indexed, width, pal, nil
}

func fromColorPalette(cp color.Palette) []argb.Pixel {
	pixels := make([]argb.Pixel, len(cp))
	for i, c := range cp {
		pixels[i] = argb.FromColor(c)
	}
	return pixels
}
