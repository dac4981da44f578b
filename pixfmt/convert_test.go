package pixfmt

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/Raimguzhinov/spuquant/argb"
)

func TestGtkToCairoA(t *testing.T) {
	tests := []struct {
		name string
		pb   *RGBPixbuf
		want []argb.Pixel
	}{
		{
			"rgb rows with padding",
			&RGBPixbuf{W: 1, H: 2, Stride: 4, Channels: 3, Pix: []byte{
				1, 2, 3, 0xee,
				4, 5, 6, 0xee,
			}},
			[]argb.Pixel{argb.New(0xff, 1, 2, 3), argb.New(0xff, 4, 5, 6)},
		},
		{
			"rgba",
			&RGBPixbuf{W: 2, H: 1, Stride: 8, Channels: 4, Alpha: true, Pix: []byte{
				1, 2, 3, 4, 5, 6, 7, 8,
			}},
			[]argb.Pixel{argb.New(4, 1, 2, 3), argb.New(8, 5, 6, 7)},
		},
		{
			"short final row",
			&RGBPixbuf{W: 2, H: 2, Stride: 8, Channels: 3, Pix: []byte{
				1, 1, 1, 2, 2, 2, 0, 0,
				3, 3, 3, 4, 4, 4,
			}},
			[]argb.Pixel{0xff010101, 0xff020202, 0xff030303, 0xff040404},
		},
		{"empty", &RGBPixbuf{Channels: 3}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GtkToCairoA(tt.pb)
			if err != nil {
				t.Fatalf("GtkToCairoA() error = %v", err)
			}
			if want := argb.Bytes(tt.want); !bytes.Equal(got, want) {
				t.Errorf("GtkToCairoA() = %x, want %x", got, want)
			}
		})
	}
}

func TestGtkToCairoAErrors(t *testing.T) {
	tests := []struct {
		name string
		pb   *RGBPixbuf
		want error
	}{
		{"alpha with 3 channels", &RGBPixbuf{W: 1, H: 1, Stride: 3, Channels: 3, Alpha: true, Pix: make([]byte, 3)}, ErrChannels},
		{"no alpha with 4 channels", &RGBPixbuf{W: 1, H: 1, Stride: 4, Channels: 4, Pix: make([]byte, 4)}, ErrChannels},
		{"stride too small", &RGBPixbuf{W: 2, H: 1, Stride: 3, Channels: 3, Pix: make([]byte, 6)}, ErrGeometry},
		{"buffer too short", &RGBPixbuf{W: 2, H: 2, Stride: 6, Channels: 3, Pix: make([]byte, 11)}, ErrGeometry},
		{"negative size", &RGBPixbuf{W: -1, H: 1, Channels: 3}, ErrGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := GtkToCairoA(tt.pb)
			if !errors.Is(err, tt.want) {
				t.Errorf("GtkToCairoA() error = %v, want %v", err, tt.want)
			}
			if out != nil {
				t.Errorf("GtkToCairoA() = %x, want nil", out)
			}
		})
	}
}

func TestCairoToGtk(t *testing.T) {
	buf := argb.Bytes([]argb.Pixel{argb.New(0x80, 0x11, 0x22, 0x33), argb.New(0xff, 0xaa, 0xbb, 0xcc)})
	buf = append(buf, 0x99)
	CairoToGtk(buf)
	want := []byte{0x11, 0x22, 0x33, 0x80, 0xaa, 0xbb, 0xcc, 0xff, 0x99}
	if !bytes.Equal(buf, want) {
		t.Errorf("CairoToGtk() = %x, want %x", buf, want)
	}
}

func TestRoundTripWithoutAlpha(t *testing.T) {
	pixels := []argb.Pixel{0xff000000, 0xff102030, 0xffffffff, 0xff7f8081, 0xff010203, 0xfffe0000}
	orig := argb.Bytes(pixels)
	buf := bytes.Clone(orig)
	CairoToGtk(buf)

	rgb := make([]byte, 0, len(pixels)*3)
	for i := 0; i < len(buf); i += 4 {
		rgb = append(rgb, buf[i:i+3]...)
	}
	pb := &RGBPixbuf{W: 3, H: 2, Stride: 9, Channels: 3, Pix: rgb}
	got, err := GtkToCairoA(pb)
	if err != nil {
		t.Fatalf("GtkToCairoA() error = %v", err)
	}
	if !bytes.Equal(got, orig) {
		t.Errorf("round trip = %x, want %x", got, orig)
	}
}

func TestRoundTripWithAlpha(t *testing.T) {
	orig := argb.Bytes([]argb.Pixel{0x00000000, 0x80402010, 0xff123456, 0x01010101})
	buf := bytes.Clone(orig)
	CairoToGtk(buf)
	got, err := GtkToCairoA(&RGBPixbuf{W: 2, H: 2, Stride: 8, Channels: 4, Alpha: true, Pix: buf})
	if err != nil {
		t.Fatalf("GtkToCairoA() error = %v", err)
	}
	if !bytes.Equal(got, orig) {
		t.Errorf("round trip = %x, want %x", got, orig)
	}
}

func TestNewPixbuf(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.SetNRGBA(5, 5, color.NRGBA{0xff, 0, 0, 0xff})
	img.SetNRGBA(6, 5, color.NRGBA{0xff, 0xff, 0xff, 0x80})

	rgb := NewPixbuf(img, false)
	if rgb.Width() != 2 || rgb.Height() != 1 || rgb.NChannels() != 3 || rgb.HasAlpha() {
		t.Fatalf("NewPixbuf(rgb) = %dx%d ch=%d alpha=%v", rgb.Width(), rgb.Height(), rgb.NChannels(), rgb.HasAlpha())
	}
	if rgb.Rowstride() != 8 {
		t.Errorf("Rowstride() = %d, want 8", rgb.Rowstride())
	}
	if got, want := rgb.Pixels()[:6], []byte{0xff, 0, 0, 0x80, 0x80, 0x80}; !bytes.Equal(got, want) {
		t.Errorf("Pixels() = %x, want %x", got, want)
	}

	rgba := NewPixbuf(img, true)
	out, err := GtkToCairoA(rgba)
	if err != nil {
		t.Fatalf("GtkToCairoA() error = %v", err)
	}
	want := argb.Bytes([]argb.Pixel{argb.New(0xff, 0xff, 0, 0), argb.New(0x80, 0x80, 0x80, 0x80)})
	if !bytes.Equal(out, want) {
		t.Errorf("GtkToCairoA(NewPixbuf()) = %x, want %x", out, want)
	}
}

func TestPixelsIsCopy(t *testing.T) {
	pb := &RGBPixbuf{Pix: []byte{1, 2, 3}}
	p := pb.Pixels()
	p[0] = 9
	if pb.Pix[0] != 1 {
		t.Error("Pixels() shares memory with the pixbuf")
	}
}
