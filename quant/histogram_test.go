package quant

import (
	"math/rand"
	"testing"

	"github.com/Raimguzhinov/spuquant/argb"
)

func randomPixels(rng *rand.Rand, n, colors int) []argb.Pixel {
	palette := make([]argb.Pixel, colors)
	for i := range palette {
		palette[i] = argb.Pixel(rng.Uint32())
	}
	pixels := make([]argb.Pixel, n)
	for i := range pixels {
		pixels[i] = palette[rng.Intn(colors)]
	}
	return pixels
}

func TestBuildHistogram(t *testing.T) {
	a, b, c := argb.Pixel(0xff0000ff), argb.Pixel(0xffff0000), argb.Pixel(0)
	hist := BuildHistogram([]argb.Pixel{a, b, a, c, a, b})
	want := Histogram{
		{Pixel: a, Count: 3, Index: NoIndex},
		{Pixel: b, Count: 2, Index: NoIndex},
		{Pixel: c, Count: 1, Index: NoIndex},
	}
	if len(hist) != len(want) {
		t.Fatalf("len(hist) = %d, want %d", len(hist), len(want))
	}
	for i := range want {
		if hist[i] != want[i] {
			t.Errorf("hist[%d] = %+v, want %+v", i, hist[i], want[i])
		}
	}
}

func TestBuildHistogramEmpty(t *testing.T) {
	hist := BuildHistogram(nil)
	if len(hist) != 0 {
		t.Errorf("len(hist) = %d, want 0", len(hist))
	}
	if hist.Total() != 0 {
		t.Errorf("Total() = %d, want 0", hist.Total())
	}
	if hist.Palette() != (argb.Palette{}) {
		t.Errorf("Palette() = %x, want all transparent", hist.Palette())
	}
}

func TestHistogramInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tt := range []struct{ n, colors int }{{1, 1}, {64, 3}, {1000, 17}, {4096, 300}} {
		pixels := randomPixels(rng, tt.n, tt.colors)
		hist := BuildHistogram(pixels)
		if got := hist.Total(); got != uint64(len(pixels)) {
			t.Errorf("n=%d: Total() = %d, want %d", tt.n, got, len(pixels))
		}
		seen := make(map[argb.Pixel]bool)
		for _, e := range hist {
			if seen[e.Pixel] {
				t.Errorf("n=%d: duplicate entry %#08x", tt.n, uint32(e.Pixel))
			}
			seen[e.Pixel] = true
			if e.Count == 0 {
				t.Errorf("n=%d: entry %#08x has zero count", tt.n, uint32(e.Pixel))
			}
		}
	}
}

func TestHistogramTuples(t *testing.T) {
	hist := Histogram{{Pixel: argb.New(0x80, 1, 2, 3), Count: 7}}
	tuples := hist.Tuples()
	want := Tuple{Color: argb.Tuple{1, 2, 3, 0x80}, Count: 7}
	if len(tuples) != 1 || tuples[0] != want {
		t.Errorf("Tuples() = %v, want [%v]", tuples, want)
	}
}

func TestHistogramPalette(t *testing.T) {
	hist := Histogram{{Pixel: 5, Count: 9}, {Pixel: 6, Count: 3}}
	if got, want := hist.Palette(), (argb.Palette{5, 6, 0, 0}); got != want {
		t.Errorf("Palette() = %v, want %v", got, want)
	}
	hist = append(hist, Entry{Pixel: 7}, Entry{Pixel: 8}, Entry{Pixel: 9})
	if got, want := hist.Palette(), (argb.Palette{5, 6, 7, 8}); got != want {
		t.Errorf("Palette() = %v, want %v", got, want)
	}
}
