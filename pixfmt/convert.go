package pixfmt

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrChannels is returned when the channel count does not match the
	// alpha flag.
	ErrChannels = errors.New("pixfmt: image must have 3 components, excluding alpha")
	// ErrGeometry is returned when the size, stride and buffer length of a
	// pixbuf disagree.
	ErrGeometry = errors.New("pixfmt: pixbuf geometry does not fit its buffer")
)

// GtkToCairoA converts a pixbuf to packed native-endian ARGB, one uint32 per
// pixel with no row padding. Pixels without an alpha channel become fully
// opaque.
func GtkToCairoA(pb Pixbuf) ([]byte, error) {
	w, h := pb.Width(), pb.Height()
	stride, channels, alpha := pb.Rowstride(), pb.NChannels(), pb.HasAlpha()
	if (alpha && channels != 4) || (!alpha && channels != 3) {
		return nil, ErrChannels
	}
	if w < 0 || h < 0 {
		return nil, ErrGeometry
	}
	pix := pb.Pixels()
	if w > 0 && h > 0 && (stride < w*channels || len(pix) < (h-1)*stride+w*channels) {
		return nil, ErrGeometry
	}

	out := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			s := row[x*channels:]
			a := uint32(0xff)
			if alpha {
				a = uint32(s[3])
			}
			out = binary.NativeEndian.AppendUint32(out, a<<24|uint32(s[0])<<16|uint32(s[1])<<8|uint32(s[2]))
		}
	}
	return out, nil
}

// CairoToGtk rewrites a buffer of native-endian ARGB pixels in place as R, G,
// B, A bytes. Trailing bytes short of a whole pixel are left alone.
func CairoToGtk(buf []byte) {
	for i := 0; i+4 <= len(buf); i += 4 {
		p := binary.NativeEndian.Uint32(buf[i:])
		buf[i] = byte(p >> 16)
		buf[i+1] = byte(p >> 8)
		buf[i+2] = byte(p)
		buf[i+3] = byte(p >> 24)
	}
}
