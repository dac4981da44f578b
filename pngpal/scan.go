package pngpal

import (
	"bytes"
	"encoding/binary"
	"image/color"

	"github.com/Raimguzhinov/spuquant/argb"
)

const (
	pngHeader        = "\x89PNG\r\n\x1a\n"
	colorTypeIndexed = 3
)

// scanPalette recovers PLTE and tRNS entries from the start of a PNG stream
// that ended early. Partial chunks contribute the entries they hold.
func scanPalette(data []byte) []argb.Pixel {
	if !bytes.HasPrefix(data, []byte(pngHeader)) {
		return nil
	}
	data = data[len(pngHeader):]
	var (
		paletted bool
		plte     []byte
		trns     []byte
	)
	for len(data) >= 8 {
		length := int(binary.BigEndian.Uint32(data))
		typ := string(data[4:8])
		data = data[8:]
		body := data[:min(max(length, 0), len(data))]
		switch typ {
		case "IHDR":
			if len(body) < 10 {
				return nil
			}
			paletted = body[9] == colorTypeIndexed
		case "PLTE":
			plte = body
		case "tRNS":
			trns = body
		case "IDAT", "IEND":
			data = nil
			continue
		}
		if len(body) < length {
			break
		}
		data = data[length:]
		if len(data) < 4 {
			break
		}
		data = data[4:] // CRC
	}
	if !paletted {
		return nil
	}
	pixels := make([]argb.Pixel, len(plte)/3)
	for i := range pixels {
		c := color.NRGBA{R: plte[i*3], G: plte[i*3+1], B: plte[i*3+2], A: 0xff}
		if i < len(trns) {
			c.A = trns[i]
		}
		pixels[i] = argb.FromNRGBA(c)
	}
	return pixels
}
