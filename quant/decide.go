package quant

import "github.com/Raimguzhinov/spuquant/argb"

// DefaultCountFactor tolerates stray colours on up to 2% of the pixels.
const DefaultCountFactor = 50

// Covered returns the number of pixels in the leading palette colours.
func (h Histogram) Covered() uint64 {
	return h.Top().Total()
}

// Quantizable reports whether a ranked histogram can be reduced to four
// colours: the pixels outside the top four must number no more than
// 1/countFactor of the total.
func (h Histogram) Quantizable(countFactor uint64) bool {
	if len(h) <= argb.PaletteSize {
		return true
	}
	total, covered := h.Total(), h.Covered()
	if total == covered {
		return true
	}
	return total/(total-covered) >= countFactor
}

// assignTop gives the leading entries palette slots 0 to 3.
func (h Histogram) assignTop() {
	for i := range h.Top() {
		h[i].Index = i
	}
}

// assignNearest maps every entry past the top four to the closest top
// colour. Ties go to the lower slot.
func (h Histogram) assignNearest(metric Metric) {
	top := h.Top()
	for i := len(top); i < len(h); i++ {
		best, bestWeight := 0, uint64(0)
		for j, t := range top {
			w := metric(h[i].Pixel, t.Pixel)
			if j == 0 || w < bestWeight {
				best, bestWeight = j, w
			}
		}
		h[i].Index = best
	}
}
