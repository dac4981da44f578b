// Package argb defines the packed 32-bit pixel and the 4-slot palette shared
// by the quantizer, the pixel-format converters and the PNG adapter.
//
// A Pixel holds alpha in the top byte followed by red, green and blue, the
// layout Cairo uses for its ARGB32 surfaces. Colour channels are
// premultiplied by alpha.
package argb

import (
	"encoding/binary"
	"image/color"
)

// Pixel is a premultiplied ARGB colour packed into 32 bits.
type Pixel uint32

// New packs the four channels into a Pixel.
func New(a, r, g, b uint8) Pixel {
	return Pixel(a)<<24 | Pixel(r)<<16 | Pixel(g)<<8 | Pixel(b)
}

func (p Pixel) A() uint8 { return uint8(p >> 24) }
func (p Pixel) R() uint8 { return uint8(p >> 16) }
func (p Pixel) G() uint8 { return uint8(p >> 8) }
func (p Pixel) B() uint8 { return uint8(p) }

// RGBA implements color.Color. The channels are already premultiplied, so
// they are only widened to 16 bits.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return uint32(p.R()) * 0x101, uint32(p.G()) * 0x101, uint32(p.B()) * 0x101, uint32(p.A()) * 0x101
}

// Unpremultiply returns the straight-alpha form of p, rounding to nearest.
func (p Pixel) Unpremultiply() color.NRGBA {
	a := uint32(p.A())
	switch a {
	case 0:
		return color.NRGBA{}
	case 0xff:
		return color.NRGBA{R: p.R(), G: p.G(), B: p.B(), A: 0xff}
	}
	div := func(c uint8) uint8 {
		v := (uint32(c)*0xff + a/2) / a
		if v > 0xff {
			v = 0xff
		}
		return uint8(v)
	}
	return color.NRGBA{R: div(p.R()), G: div(p.G()), B: div(p.B()), A: uint8(a)}
}

// FromNRGBA premultiplies a straight-alpha colour, rounding to nearest.
func FromNRGBA(c color.NRGBA) Pixel {
	a := uint32(c.A)
	mul := func(v uint8) uint8 {
		return uint8((uint32(v)*a + 127) / 0xff)
	}
	return New(c.A, mul(c.R), mul(c.G), mul(c.B))
}

// FromColor converts any colour to a Pixel.
func FromColor(c color.Color) Pixel {
	switch c := c.(type) {
	case Pixel:
		return c
	case color.NRGBA:
		return FromNRGBA(c)
	case color.RGBA:
		return New(c.A, c.R, c.G, c.B)
	}
	r, g, b, a := c.RGBA()
	return New(uint8(a>>8), uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts colours to Pixel.
var Model = color.ModelFunc(func(c color.Color) color.Color { return FromColor(c) })

// Tuple is a colour as the (r, g, b, a) quadruple used by palette tuples.
type Tuple [4]int

// Tuple returns p as an (r, g, b, a) quadruple.
func (p Pixel) Tuple() Tuple {
	return Tuple{int(p.R()), int(p.G()), int(p.B()), int(p.A())}
}

// Pixels decodes a native-endian ARGB byte buffer. Trailing bytes that do
// not make up a whole pixel are ignored.
func Pixels(buf []byte) []Pixel {
	pixels := make([]Pixel, len(buf)/4)
	for i := range pixels {
		pixels[i] = Pixel(binary.NativeEndian.Uint32(buf[i*4:]))
	}
	return pixels
}

// Bytes encodes pixels as a native-endian ARGB byte buffer.
func Bytes(pixels []Pixel) []byte {
	return AppendBytes(make([]byte, 0, len(pixels)*4), pixels...)
}

// AppendBytes appends the native-endian encoding of pixels to dst.
func AppendBytes(dst []byte, pixels ...Pixel) []byte {
	for _, p := range pixels {
		dst = binary.NativeEndian.AppendUint32(dst, uint32(p))
	}
	return dst
}
