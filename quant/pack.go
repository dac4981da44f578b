package quant

import (
	"io"

	"github.com/Raimguzhinov/spuquant/argb"
)

// chunkSize bounds how many packed bytes are staged before each write.
const chunkSize = 128

// packer stages 2-bit indices and writes them out a chunk at a time.
type packer struct {
	w     io.Writer
	chunk [chunkSize]byte
	n     int // pixels staged
}

func (p *packer) put(index int) error {
	if p.n == chunkSize*4 {
		if err := p.flush(); err != nil {
			return err
		}
	}
	if p.n%4 == 0 {
		p.chunk[p.n/4] = 0
	}
	p.chunk[p.n/4] |= byte(index&3) << (p.n % 4 * 2)
	p.n++
	return nil
}

// endRow pads the current byte so the next row starts on a byte boundary.
func (p *packer) endRow() {
	p.n = (p.n + 3) &^ 3
}

func (p *packer) flush() error {
	if p.n == 0 {
		return nil
	}
	_, err := p.w.Write(p.chunk[:(p.n+3)/4])
	p.n = 0
	return err
}

// packNearest encodes each pixel with the index its histogram entry was
// assigned. Every colour in pixels must be in hist.
func packNearest(w io.Writer, pixels []argb.Pixel, hist Histogram, width int) error {
	index := hist.indices()
	pk := &packer{w: w}
	for i, px := range pixels {
		if err := pk.put(index[px]); err != nil {
			return err
		}
		if width > 0 && (i+1)%width == 0 {
			pk.endRow()
		}
	}
	return pk.flush()
}

// decided is an already encoded pixel: its index and the global count of
// its source colour.
type decided struct {
	index int
	count uint64
}

// packSpatial encodes exact matches of the top colours directly and gives
// any other pixel the index of its most trusted encoded neighbour.
func packSpatial(w io.Writer, pixels []argb.Pixel, hist Histogram, width int) error {
	top := hist.Top()
	counts := hist.counts()
	prev := make([]decided, width)
	cur := make([]decided, width)
	pk := &packer{w: w}
	for y := 0; y*width < len(pixels); y++ {
		row := pixels[y*width : (y+1)*width]
		for x, px := range row {
			index := NoIndex
			for i, e := range top {
				if e.Pixel == px {
					index = i
					break
				}
			}
			if index == NoIndex {
				index = neighbour(cur, prev, x, y)
			}
			cur[x] = decided{index: index, count: counts[px]}
			if err := pk.put(index); err != nil {
				return err
			}
		}
		pk.endRow()
		prev, cur = cur, prev
	}
	return pk.flush()
}

// neighbour picks among the left, upper and upper-left pixels the one whose
// source colour is most frequent, in that order on ties. The first pixel of
// an image has no neighbours and gets index 0.
func neighbour(cur, prev []decided, x, y int) int {
	best := decided{index: 0}
	found := false
	consider := func(d decided) {
		if !found || d.count > best.count {
			best, found = d, true
		}
	}
	if x > 0 {
		consider(cur[x-1])
	}
	if y > 0 {
		consider(prev[x])
		if x > 0 {
			consider(prev[x-1])
		}
	}
	return best.index
}
