package quant

import (
	"fmt"

	"github.com/Raimguzhinov/spuquant/argb"
)

// Metric measures how far apart two colours look. Smaller is closer.
type Metric func(a, b argb.Pixel) uint64

// HSV converts the colour of p to hue, saturation and value, each scaled to
// 0..65535. Hue is anchored on the dominant channel: red at 0, green at a
// third of the circle and blue at two thirds.
func HSV(p argb.Pixel) (h, s, v uint32) {
	r, g, b := int64(p.R()), int64(p.G()), int64(p.B())
	var v0, v1, v2, offset int64
	switch {
	case r >= g && r >= b:
		v0, v1, v2, offset = r, g, b, 0
	case g >= r && g >= b:
		v0, v1, v2, offset = g, b, r, 65536/3
	default:
		v0, v1, v2, offset = b, r, g, 65536*2/3
	}
	if v0 == 0 {
		return 0, 0, 0
	}
	h = uint32((offset + 65536 + (v1-v2)*65536/6/v0) % 65536)
	s = uint32(min((v0-min(v1, v2))*65536/v0, 65535))
	v = uint32(v0 * 257)
	return h, s, v
}

// RGBADistance is the squared Euclidean distance over the four raw
// channels.
func RGBADistance(a, b argb.Pixel) uint64 {
	da := int64(a.A()) - int64(b.A())
	dr := int64(a.R()) - int64(b.R())
	dg := int64(a.G()) - int64(b.G())
	db := int64(a.B()) - int64(b.B())
	return uint64(da*da + dr*dr + dg*dg + db*db)
}

// HSVDistance is the squared distance over alpha, hue, saturation and
// value, with hue counted four times over. Matching hue strictly keeps
// anti-aliased edges from picking up a fringe of the wrong colour.
func HSVDistance(a, b argb.Pixel) uint64 {
	h1, s1, v1 := HSV(a)
	h2, s2, v2 := HSV(b)
	da := int64(a.A()) - int64(b.A())
	dh := int64(h1) - int64(h2)
	ds := int64(s1) - int64(s2)
	dv := int64(v1) - int64(v2)
	return uint64(da*da + 4*dh*dh + ds*ds + dv*dv)
}

// ParseMetric returns the metric named "hsv" or "rgba".
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "", "hsv":
		return HSVDistance, nil
	case "rgba":
		return RGBADistance, nil
	}
	return nil, fmt.Errorf("quant: unknown metric %q", name)
}
