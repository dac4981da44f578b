// Package pixfmt converts between GTK pixbuf byte order (R, G, B and
// optionally A, one byte each, row-strided) and Cairo's packed native-endian
// ARGB32.
package pixfmt

import (
	"bytes"
	"image"

	"golang.org/x/image/draw"
)

// Pixbuf describes a row-strided RGB or RGBA image the way a GdkPixbuf does.
type Pixbuf interface {
	Width() int
	Height() int
	Rowstride() int
	NChannels() int
	HasAlpha() bool
	// Pixels returns a private copy of the sample bytes.
	Pixels() []byte
}

// RGBPixbuf is an in-memory Pixbuf.
type RGBPixbuf struct {
	W, H     int
	Stride   int
	Channels int
	Alpha    bool
	Pix      []byte
}

func (p *RGBPixbuf) Width() int     { return p.W }
func (p *RGBPixbuf) Height() int    { return p.H }
func (p *RGBPixbuf) Rowstride() int { return p.Stride }
func (p *RGBPixbuf) NChannels() int { return p.Channels }
func (p *RGBPixbuf) HasAlpha() bool { return p.Alpha }
func (p *RGBPixbuf) Pixels() []byte { return bytes.Clone(p.Pix) }

// NewPixbuf copies img into a Pixbuf. Rows are padded to a multiple of 4
// bytes, as GdkPixbuf does. With alpha the samples are premultiplied;
// without it the alpha channel is dropped.
func NewPixbuf(img image.Image, alpha bool) *RGBPixbuf {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	channels := 3
	if alpha {
		channels = 4
	}
	w, h := b.Dx(), b.Dy()
	pb := &RGBPixbuf{
		W:        w,
		H:        h,
		Stride:   (w*channels + 3) &^ 3,
		Channels: channels,
		Alpha:    alpha,
	}
	pb.Pix = make([]byte, pb.Stride*h)
	for y := 0; y < h; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		dst := pb.Pix[y*pb.Stride:]
		for x := 0; x < w; x++ {
			copy(dst[x*channels:x*channels+channels], src[x*4:x*4+channels])
		}
	}
	return pb
}
