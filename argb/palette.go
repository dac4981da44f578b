package argb

import (
	"errors"
	"image/color"
)

// PaletteSize is the number of slots in a Palette.
const PaletteSize = 4

// Palette holds the four colours a 2-bit index selects from. Unused slots
// are transparent black.
type Palette [PaletteSize]Pixel

// ErrChannelRange is returned when a palette tuple carries a channel value
// outside [0, 255].
var ErrChannelRange = errors.New("argb: colour components must be in [0 .. 255]")

// ParsePalette builds a Palette from (r, g, b, a) tuples. Tuples beyond the
// fourth are ignored and missing slots stay transparent.
func ParsePalette(colors []Tuple) (Palette, error) {
	var pal Palette
	if len(colors) > PaletteSize {
		colors = colors[:PaletteSize]
	}
	for i, c := range colors {
		for _, v := range c {
			if v < 0 || v > 0xff {
				return Palette{}, ErrChannelRange
			}
		}
		pal[i] = New(uint8(c[3]), uint8(c[0]), uint8(c[1]), uint8(c[2]))
	}
	return pal, nil
}

// PaletteOf copies up to four colours into a Palette.
func PaletteOf(colors []Pixel) Palette {
	var pal Palette
	copy(pal[:], colors)
	return pal
}

// Tuples returns the palette as (r, g, b, a) tuples.
func (p Palette) Tuples() []Tuple {
	t := make([]Tuple, len(p))
	for i, c := range p {
		t[i] = c.Tuple()
	}
	return t
}

// NRGBA returns the palette in straight alpha, the form image codecs expect.
func (p Palette) NRGBA() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c.Unpremultiply()
	}
	return cp
}
