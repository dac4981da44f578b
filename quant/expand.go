package quant

import "github.com/Raimguzhinov/spuquant/argb"

// Expand substitutes palette colours for a 2-bit index stream. With width 0
// the stream is read as one continuous run of len(indexed)*4 pixels;
// otherwise it is read as rows of (width+3)/4 bytes and the row padding is
// dropped.
func Expand(indexed []byte, pal argb.Palette, width int) ([]argb.Pixel, error) {
	if width < 0 {
		return nil, ErrWidth
	}
	if width == 0 {
		pixels := make([]argb.Pixel, 0, len(indexed)*4)
		for _, b := range indexed {
			for k := 0; k < 4; k++ {
				pixels = append(pixels, pal[b>>(k*2)&3])
			}
		}
		return pixels, nil
	}
	stride := RowBytes(width)
	if len(indexed)%stride != 0 {
		return nil, ErrBufferLength
	}
	rows := len(indexed) / stride
	pixels := make([]argb.Pixel, 0, rows*width)
	for y := 0; y < rows; y++ {
		row := indexed[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			pixels = append(pixels, pal[row[x/4]>>(x%4*2)&3])
		}
	}
	return pixels, nil
}

// ExpandImage expands a continuous index stream into a native-endian ARGB
// byte buffer.
func ExpandImage(indexed []byte, pal argb.Palette) []byte {
	pixels, _ := Expand(indexed, pal, 0)
	return argb.Bytes(pixels)
}

// RowBytes returns the packed size of a row of width pixels.
func RowBytes(width int) int {
	return (width + 3) / 4
}
