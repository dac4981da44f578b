package quant

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Raimguzhinov/spuquant/argb"
)

var (
	// ErrBufferLength is returned for a buffer that is not a whole number
	// of pixels or rows.
	ErrBufferLength = errors.New("quant: buffer length is not a whole number of pixels or rows")
	// ErrWidth is returned for a negative row width, or a missing one where
	// the strategy needs rows.
	ErrWidth = errors.New("quant: invalid row width")
	// ErrStrategy is returned for an unknown Strategy.
	ErrStrategy = errors.New("quant: unknown strategy")
)

// Strategy selects how colours outside the top four are folded in.
type Strategy int

const (
	// Nearest maps each stray colour to the closest top colour.
	Nearest Strategy = iota
	// Spatial reuses the index of an encoded neighbouring pixel.
	Spatial
)

func (s Strategy) String() string {
	switch s {
	case Nearest:
		return "nearest"
	case Spatial:
		return "spatial"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the strategy called name.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "nearest":
		return Nearest, nil
	case "spatial":
		return Spatial, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrStrategy, name)
}

// Options tunes Index. The zero value indexes a continuous stream with the
// Nearest strategy, HSVDistance and DefaultCountFactor.
type Options struct {
	// CountFactor bounds the stray colours to 1/CountFactor of the pixels.
	// 0 is not a threshold: it selects DefaultCountFactor. Call
	// Histogram.Quantizable directly to test a factor of 0, which accepts
	// every image.
	CountFactor uint64
	Strategy    Strategy
	// Metric is used by Nearest. nil means HSVDistance.
	Metric Metric
	// Width is the number of pixels per row. 0 packs one continuous stream;
	// Spatial needs it to find neighbours.
	Width int
}

// Result is the outcome of Index.
type Result struct {
	// Indexed is the packed 2-bit stream, or nil if the image has too many
	// colours.
	Indexed []byte
	// Histogram is ranked by descending count.
	Histogram Histogram
	Width     int
}

// Quantized reports whether an index stream was produced.
func (r *Result) Quantized() bool {
	return r.Indexed != nil
}

// Palette returns the four colours Indexed refers to.
func (r *Result) Palette() argb.Palette {
	return r.Histogram.Palette()
}

// Tuples lists the histogram as ((r, g, b, a), count) pairs, most frequent
// first.
func (r *Result) Tuples() []Tuple {
	return r.Histogram.Tuples()
}

// Index computes the colour histogram of pixels and, when the image is a
// four colour image, packs it to 2 bits per pixel.
func Index(pixels []argb.Pixel, opts Options) (*Result, error) {
	if opts.Width < 0 {
		return nil, ErrWidth
	}
	if opts.Width > 0 && len(pixels)%opts.Width != 0 {
		return nil, ErrBufferLength
	}
	switch opts.Strategy {
	case Nearest:
	case Spatial:
		if opts.Width == 0 {
			return nil, ErrWidth
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrStrategy, opts.Strategy)
	}
	countFactor := opts.CountFactor
	if countFactor == 0 {
		countFactor = DefaultCountFactor
	}
	metric := opts.Metric
	if metric == nil {
		metric = HSVDistance
	}

	hist := BuildHistogram(pixels)
	hist.Rank()
	res := &Result{Histogram: hist, Width: opts.Width}
	if !hist.Quantizable(countFactor) {
		return res, nil
	}
	hist.assignTop()

	var buf bytes.Buffer
	var err error
	switch opts.Strategy {
	case Nearest:
		hist.assignNearest(metric)
		err = packNearest(&buf, pixels, hist, opts.Width)
	case Spatial:
		err = packSpatial(&buf, pixels, hist, opts.Width)
	}
	if err != nil {
		return nil, err
	}
	res.Indexed = buf.Bytes()
	if res.Indexed == nil {
		res.Indexed = []byte{}
	}
	return res, nil
}

// IndexImage indexes a native-endian ARGB byte buffer as one continuous
// stream with the Nearest strategy.
func IndexImage(buf []byte, countFactor uint64) (*Result, error) {
	if len(buf)%4 != 0 {
		return nil, ErrBufferLength
	}
	return Index(argb.Pixels(buf), Options{CountFactor: countFactor})
}
