package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Raimguzhinov/spuquant/argb"
	"github.com/Raimguzhinov/spuquant/pixfmt"
	"github.com/Raimguzhinov/spuquant/quant"
	"github.com/Raimguzhinov/spuquant/spufile"
)

// ImageData хранит пиксели в premultiplied ARGB, построчно
type ImageData struct {
	Name   string
	Width  int
	Height int
	Pix    []argb.Pixel
}

func (m *ImageData) ColorModel() color.Model { return argb.Model }

func (m *ImageData) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

func (m *ImageData) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return argb.Pixel(0)
	}
	return m.Pix[y*m.Width+x]
}

type PCXHeader struct {
	Manufacturer byte
	Version      byte
	Encoding     byte
	BitsPerPixel byte
	XMin, YMin   uint16
	XMax, YMax   uint16
	HDpi, VDpi   uint16
	Colormap     [48]byte
	Reserved     byte
	NumPlanes    byte
	BytesPerLine uint16
	PaletteInfo  uint16
	HScreenSize  uint16
	VScreenSize  uint16
	Filler       [54]byte
}

const (
	PCXManufacturer  = 0x0A
	PCXPaletteMarker = 0x0C
	RLEThreshold     = 192
	PCXPaletteSize   = 768
	PCXHeaderSize    = 128
	PCXPaletteOffset = 769
	BMPHeaderSize    = 54
	BiRGB            = 0
)

var (
	errNotPCX = errors.New("pcx: bad manufacturer byte")
	errNotBMP = errors.New("bmp: bad signature")
)

// LoadImage выбирает декодер по расширению файла
func LoadImage(filename string) (*ImageData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var pb *pixfmt.RGBPixbuf
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pcx":
		pb, err = DecodePCX(data)
	case ".bmp":
		pb, err = DecodeBMP(data)
	case ".spu":
		return decodeSPU(filename, data)
	default:
		var img image.Image
		img, _, err = image.Decode(bytes.NewReader(data))
		if err == nil {
			pb = pixfmt.NewPixbuf(img, true)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return fromPixbuf(filename, pb)
}

func fromPixbuf(name string, pb pixfmt.Pixbuf) (*ImageData, error) {
	buf, err := pixfmt.GtkToCairoA(pb)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &ImageData{Name: name, Width: pb.Width(), Height: pb.Height(), Pix: argb.Pixels(buf)}, nil
}

func decodeSPU(name string, data []byte) (*ImageData, error) {
	m, err := spufile.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	pix, err := m.Pixels()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &ImageData{Name: name, Width: m.Width, Height: m.Height, Pix: pix}, nil
}

// DecodePCX читает 8-битный PCX в RGB-буфер
func DecodePCX(data []byte) (*pixfmt.RGBPixbuf, error) {
	var hdr PCXHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("pcx: header: %w", err)
	}
	if hdr.Manufacturer != PCXManufacturer {
		return nil, errNotPCX
	}
	if hdr.BitsPerPixel != 8 || hdr.NumPlanes != 1 {
		return nil, fmt.Errorf("pcx: unsupported %d-bit %d-plane image", hdr.BitsPerPixel, hdr.NumPlanes)
	}
	w := int(hdr.XMax) - int(hdr.XMin) + 1
	h := int(hdr.YMax) - int(hdr.YMin) + 1
	bytesPerLine := int(hdr.BytesPerLine)
	if w <= 0 || h <= 0 || bytesPerLine < w {
		return nil, fmt.Errorf("pcx: bad geometry %dx%d, %d bytes per line", w, h, bytesPerLine)
	}

	// Палитра VGA в конце файла, иначе 16 цветов из заголовка
	var palette [256][3]byte
	if n := len(data); n >= PCXHeaderSize+PCXPaletteOffset && data[n-PCXPaletteOffset] == PCXPaletteMarker {
		pal := data[n-PCXPaletteSize:]
		for i := range palette {
			copy(palette[i][:], pal[i*3:])
		}
	} else {
		for i := 0; i < 16; i++ {
			copy(palette[i][:], hdr.Colormap[i*3:])
		}
	}

	pb := &pixfmt.RGBPixbuf{W: w, H: h, Stride: (w*3 + 3) &^ 3, Channels: 3}
	pb.Pix = make([]byte, pb.Stride*h)
	var x, y int
	put := func(c byte) {
		if x < w {
			copy(pb.Pix[y*pb.Stride+x*3:], palette[c][:])
		}
		x++
		if x >= bytesPerLine {
			x = 0
			y++
		}
	}
	body := data[PCXHeaderSize:]
	for i := 0; y < h; i++ {
		if i >= len(body) {
			return nil, fmt.Errorf("pcx: %w", io.ErrUnexpectedEOF)
		}
		b := body[i]
		if b < RLEThreshold {
			put(b)
			continue
		}
		i++
		if i >= len(body) {
			return nil, fmt.Errorf("pcx: %w", io.ErrUnexpectedEOF)
		}
		for n := b & 0x3F; n > 0 && y < h; n-- {
			put(body[i])
		}
	}
	return pb, nil
}

// DecodeBMP для отображения (8/24-бит BMP без сжатия)
func DecodeBMP(data []byte) (*pixfmt.RGBPixbuf, error) {
	if len(data) < BMPHeaderSize {
		return nil, fmt.Errorf("bmp: header: %w", io.ErrUnexpectedEOF)
	}
	if data[0] != 'B' || data[1] != 'M' {
		return nil, errNotBMP
	}
	offset := int(binary.LittleEndian.Uint32(data[10:]))
	dibSize := int(binary.LittleEndian.Uint32(data[14:]))
	w := int(int32(binary.LittleEndian.Uint32(data[18:])))
	h := int(int32(binary.LittleEndian.Uint32(data[22:])))
	bitCount := int(binary.LittleEndian.Uint16(data[28:]))
	compression := binary.LittleEndian.Uint32(data[30:])
	colorsUsed := int(binary.LittleEndian.Uint32(data[46:]))

	if compression != BiRGB {
		return nil, fmt.Errorf("bmp: compression %d is not supported", compression)
	}
	topDown := h < 0
	if topDown {
		h = -h
	}
	if w <= 0 {
		return nil, fmt.Errorf("bmp: bad width %d", w)
	}

	var palette [256][3]byte
	switch bitCount {
	case 8:
		if colorsUsed == 0 || colorsUsed > 256 {
			colorsUsed = 256
		}
		start := 14 + dibSize
		if len(data) < start+colorsUsed*4 {
			return nil, fmt.Errorf("bmp: palette: %w", io.ErrUnexpectedEOF)
		}
		for i := 0; i < colorsUsed; i++ {
			q := data[start+i*4:]
			palette[i] = [3]byte{q[2], q[1], q[0]}
		}
	case 24:
	default:
		return nil, fmt.Errorf("bmp: only 8 or 24 bits are supported, got %d", bitCount)
	}

	rowSize := (w*bitCount/8 + 3) &^ 3
	if offset < 0 || len(data) < offset+rowSize*h {
		return nil, fmt.Errorf("bmp: pixel data: %w", io.ErrUnexpectedEOF)
	}
	pb := &pixfmt.RGBPixbuf{W: w, H: h, Stride: (w*3 + 3) &^ 3, Channels: 3}
	pb.Pix = make([]byte, pb.Stride*h)
	for y := 0; y < h; y++ {
		srcY := h - 1 - y
		if topDown {
			srcY = y
		}
		src := data[offset+srcY*rowSize:]
		dst := pb.Pix[y*pb.Stride:]
		for x := 0; x < w; x++ {
			if bitCount == 8 {
				copy(dst[x*3:], palette[src[x]][:])
			} else {
				dst[x*3+0] = src[x*3+2]
				dst[x*3+1] = src[x*3+1]
				dst[x*3+2] = src[x*3+0]
			}
		}
	}
	return pb, nil
}

// EncodeBMP сохраняет 8-бит BMP с палитрой из 4 цветов (без альфы)
func EncodeBMP(w io.Writer, m *spufile.Image) error {
	rowSize := (m.Width + 3) &^ 3
	offset := BMPHeaderSize + argb.PaletteSize*4
	dataSize := rowSize * m.Height
	buf := make([]byte, offset+dataSize)

	// Заголовок файла
	buf[0] = 'B'
	buf[1] = 'M'
	binary.LittleEndian.PutUint32(buf[2:], uint32(len(buf)))
	binary.LittleEndian.PutUint32(buf[10:], uint32(offset))

	// DIB-заголовок
	dib := buf[14:BMPHeaderSize]
	binary.LittleEndian.PutUint32(dib[0:], 40)
	binary.LittleEndian.PutUint32(dib[4:], uint32(m.Width))
	binary.LittleEndian.PutUint32(dib[8:], uint32(m.Height))
	binary.LittleEndian.PutUint16(dib[12:], 1)
	binary.LittleEndian.PutUint16(dib[14:], 8)
	binary.LittleEndian.PutUint32(dib[16:], BiRGB)
	binary.LittleEndian.PutUint32(dib[20:], uint32(dataSize))
	binary.LittleEndian.PutUint32(dib[32:], argb.PaletteSize)

	for i, c := range m.Palette {
		n := c.Unpremultiply()
		copy(buf[BMPHeaderSize+i*4:], []byte{n.B, n.G, n.R, 0})
	}
	stride := quant.RowBytes(m.Width)
	for y := 0; y < m.Height; y++ {
		src := m.Indexed[y*stride:]
		dst := buf[offset+(m.Height-1-y)*rowSize:]
		for x := 0; x < m.Width; x++ {
			dst[x] = src[x/4] >> (x % 4 * 2) & 3
		}
	}
	_, err := w.Write(buf)
	return err
}
