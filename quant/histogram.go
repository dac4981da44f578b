package quant

import "github.com/Raimguzhinov/spuquant/argb"

// NoIndex marks a histogram entry that has no palette index assigned.
const NoIndex = -1

// Entry counts the occurrences of one colour. Index is the palette slot the
// colour is encoded as, or NoIndex until the reduction step assigns one.
type Entry struct {
	Pixel argb.Pixel
	Count uint64
	Index int
}

// Histogram lists each distinct colour of an image once.
type Histogram []Entry

// BuildHistogram counts the distinct colours of pixels. Entries appear in
// order of first occurrence.
func BuildHistogram(pixels []argb.Pixel) Histogram {
	hist := make(Histogram, 0, 8)
	slot := make(map[argb.Pixel]int)
	for _, p := range pixels {
		if i, ok := slot[p]; ok {
			hist[i].Count++
			continue
		}
		slot[p] = len(hist)
		hist = append(hist, Entry{Pixel: p, Count: 1, Index: NoIndex})
	}
	return hist
}

// Total returns the number of pixels the histogram was built from.
func (h Histogram) Total() uint64 {
	var n uint64
	for _, e := range h {
		n += e.Count
	}
	return n
}

// Top returns the leading entries that become palette colours.
func (h Histogram) Top() Histogram {
	return h[:min(len(h), argb.PaletteSize)]
}

// Palette returns the colours of the leading entries, padded with
// transparent black.
func (h Histogram) Palette() argb.Palette {
	var pal argb.Palette
	for i, e := range h.Top() {
		pal[i] = e.Pixel
	}
	return pal
}

// Tuple is a histogram entry in host form: an (r, g, b, a) colour and its
// pixel count.
type Tuple struct {
	Color argb.Tuple
	Count uint64
}

// Tuples returns every entry in histogram order.
func (h Histogram) Tuples() []Tuple {
	t := make([]Tuple, len(h))
	for i, e := range h {
		t[i] = Tuple{Color: e.Pixel.Tuple(), Count: e.Count}
	}
	return t
}

func (h Histogram) indices() map[argb.Pixel]int {
	m := make(map[argb.Pixel]int, len(h))
	for _, e := range h {
		m[e.Pixel] = e.Index
	}
	return m
}

func (h Histogram) counts() map[argb.Pixel]uint64 {
	m := make(map[argb.Pixel]uint64, len(h))
	for _, e := range h {
		m[e.Pixel] = e.Count
	}
	return m
}
