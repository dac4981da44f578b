// Package quant reduces an ARGB image to at most four colours and packs it
// as a 2-bit-per-pixel index stream.
//
// Indexing runs in two passes over the pixel buffer. The first builds a
// histogram of distinct colours, ranks it by descending count and decides
// whether the image is effectively a four colour image: either it has no
// more than four colours, or the colours beyond the four most frequent
// cover no more than 1/countFactor of the pixels. Those stray colours are
// usually anti-aliasing, and are folded onto the four representative
// colours by one of two strategies:
//
//   - Nearest maps every stray colour to the closest of the top four under
//     a distance Metric (HSVDistance by default).
//   - Spatial replaces a stray pixel by the index of an already encoded
//     neighbour (left, up, up-left), preferring the neighbour whose source
//     colour is most frequent.
//
// The second pass emits one index per pixel, four pixels per byte with the
// first pixel in the low bits:
//
//	Pixels: 0  1  2  3
//	Index:  1  2  3  0
//	Byte:   0b00_11_10_01 (0x39)
//
// When a row width is given each row starts on a byte boundary, which is
// the layout PNG and DVD subpictures use.
package quant
