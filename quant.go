package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"

	"github.com/Raimguzhinov/spuquant/argb"
	"github.com/Raimguzhinov/spuquant/quant"
	"github.com/Raimguzhinov/spuquant/spufile"
)

type Quantizer interface {
	Quantize(*ImageData) (*spufile.Image, error)
}

var errTooManyColours = errors.New("слишком много цветов для 4-цветного изображения")

type FreqQuantizer struct {
	Options quant.Options
	Reduce  bool
}

func newQuantizer(opts Options) (*FreqQuantizer, error) {
	strategy, err := quant.ParseStrategy(opts.Strategy)
	if err != nil {
		return nil, err
	}
	metric, err := quant.ParseMetric(opts.Metric)
	if err != nil {
		return nil, err
	}
	return &FreqQuantizer{
		Options: quant.Options{
			CountFactor: opts.CountFactor,
			Strategy:    strategy,
			Metric:      metric,
		},
		Reduce: opts.Reduce,
	}, nil
}

func (q *FreqQuantizer) Quantize(img *ImageData) (*spufile.Image, error) {
	opts := q.Options
	opts.Width = img.Width
	res, err := quant.Index(img.Pix, opts)
	if err != nil {
		return nil, err
	}
	if !res.Quantized() {
		if !q.Reduce {
			return nil, fmt.Errorf("%w (%d цветов)", errTooManyColours, len(res.Histogram))
		}
		log.Printf("%s: %d цветов, сокращаем методом median cut", img.Name, len(res.Histogram))
		res, err = quant.Index(reduce(img).Pix, opts)
		if err != nil {
			return nil, err
		}
		if !res.Quantized() {
			return nil, errTooManyColours
		}
	}
	return spufile.New(res.Indexed, img.Width, res.Palette())
}

func reduce(img *ImageData) *ImageData {
	q := quantize.MedianCutQuantizer{AddTransparent: false}
	pal := q.Quantize(make(color.Palette, 0, argb.PaletteSize), img)
	if len(pal) == 0 {
		pal = color.Palette{argb.Pixel(0)}
	}
	dst := image.NewPaletted(img.Bounds(), pal)
	draw.Draw(dst, dst.Bounds(), img, image.Point{}, draw.Src)

	out := &ImageData{Name: img.Name, Width: img.Width, Height: img.Height, Pix: make([]argb.Pixel, len(img.Pix))}
	colors := make([]argb.Pixel, len(pal))
	for i, c := range pal {
		colors[i] = argb.FromColor(c)
	}
	for i, ci := range dst.Pix {
		out.Pix[i] = colors[ci]
	}
	return out
}
