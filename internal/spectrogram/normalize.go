package spectrogram

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DisplayScale maps raw intensities to the [0,1] range a color ramp
// expects. Percentile clipping keeps a handful of bright interference pixels
// from washing out the rest of the image.
type DisplayScale struct {
	Lo, Hi float64
}

// Default percentiles for display clipping.
const (
	clipLoQuantile = 0.02
	clipHiQuantile = 0.98
)

// NewDisplayScale computes a percentile-clipped scale over the clipped
// contents of a view.
func NewDisplayScale(v *View) DisplayScale {
	return NewDisplayScaleQuantiles(v, clipLoQuantile, clipHiQuantile)
}

// NewDisplayScaleQuantiles computes a scale clipped at the given quantiles.
func NewDisplayScaleQuantiles(v *View, qLo, qHi float64) DisplayScale {
	values := make([]float64, 0, v.Channels()*v.TimeSteps())
	for ch := v.Clipped.Channels.Lo; ch <= v.Clipped.Channels.Hi; ch++ {
		for t := v.Clipped.Times.Lo; t <= v.Clipped.Times.Hi; t++ {
			values = append(values, v.At(ch, t))
		}
	}
	if len(values) == 0 {
		return DisplayScale{Lo: 0, Hi: 1}
	}
	sort.Float64s(values)

	lo := stat.Quantile(qLo, stat.Empirical, values, nil)
	hi := stat.Quantile(qHi, stat.Empirical, values, nil)
	if hi <= lo {
		// Flat or near-flat data; fall back to the raw extremes.
		lo = floats.Min(values)
		hi = floats.Max(values)
		if hi <= lo {
			hi = lo + 1
		}
	}
	return DisplayScale{Lo: lo, Hi: hi}
}

// Normalize maps a raw intensity into [0,1], clamping outside the scale.
func (d DisplayScale) Normalize(v float64) float64 {
	if v <= d.Lo {
		return 0
	}
	if v >= d.Hi {
		return 1
	}
	return (v - d.Lo) / (d.Hi - d.Lo)
}
