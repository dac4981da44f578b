package argb

import (
	"errors"
	"image/color"
	"testing"
)

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name    string
		colors  []Tuple
		want    Palette
		wantErr error
	}{
		{"empty pads transparent", nil, Palette{}, nil},
		{
			"two colours pad the rest",
			[]Tuple{{255, 0, 0, 255}, {0, 0, 255, 128}},
			Palette{New(255, 255, 0, 0), New(128, 0, 0, 255), 0, 0},
			nil,
		},
		{
			"extra colours ignored",
			[]Tuple{{1, 1, 1, 1}, {2, 2, 2, 2}, {3, 3, 3, 3}, {4, 4, 4, 4}, {5, 5, 5, 5}},
			Palette{0x01010101, 0x02020202, 0x03030303, 0x04040404},
			nil,
		},
		{"negative channel", []Tuple{{0, -1, 0, 0}}, Palette{}, ErrChannelRange},
		{"channel above 255", []Tuple{{0, 0, 0, 256}}, Palette{}, ErrChannelRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePalette(tt.colors)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParsePalette() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePalette() = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestPaletteTuplesAndNRGBA(t *testing.T) {
	pal := PaletteOf([]Pixel{New(0x80, 0x40, 0x20, 0x10)})
	tuples := pal.Tuples()
	if len(tuples) != PaletteSize {
		t.Fatalf("len(Tuples()) = %d, want %d", len(tuples), PaletteSize)
	}
	if tuples[0] != (Tuple{0x40, 0x20, 0x10, 0x80}) {
		t.Errorf("Tuples()[0] = %v", tuples[0])
	}
	if tuples[3] != (Tuple{}) {
		t.Errorf("Tuples()[3] = %v, want zero", tuples[3])
	}
	cp := pal.NRGBA()
	if got, want := cp[0], (color.NRGBA{0x80, 0x40, 0x20, 0x80}); got != want {
		t.Errorf("NRGBA()[0] = %v, want %v", got, want)
	}
}
