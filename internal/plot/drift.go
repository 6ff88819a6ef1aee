package plot

import (
	"fmt"
	"math"

	"driftscope/internal/spectrogram"
	"driftscope/pkg/geometry"
)

// zeroSlopeEps is the tolerance below which a drift rate is treated as
// flat. The fallback window for flat lines is deliberately generous so a
// horizontal line is still visible with context around it.
const zeroSlopeEps = 1e-9

// DriftSpec describes a hypothesized linear drift starting at a channel:
// position(t) = StartChannel + (Rate/RateNormalizer)*t.
type DriftSpec struct {
	StartChannel   float64
	Rate           float64 // In the detector's native units
	RateNormalizer float64 // Converts Rate to channels per time step; 0 means 1
	RequestedWidth int     // Channel window override; 0 means auto-size
}

// Slope returns the effective drift in channels per time step.
func (s DriftSpec) Slope() float64 {
	n := s.RateNormalizer
	if n == 0 {
		n = 1
	}
	return s.Rate / n
}

// ResolveDriftWindow computes the channel window that keeps the drift line
// fully inside the displayed region across every time step, plus the
// full-resolution trajectory samples (one per time step).
func ResolveDriftWindow(sp *spectrogram.Spectrogram, spec DriftSpec) (geometry.Span, []geometry.Point2D, error) {
	if spec.RequestedWidth < 0 {
		return geometry.Span{}, nil, fmt.Errorf("resolve drift window: width %d: %w", spec.RequestedWidth, ErrInvalidWindow)
	}
	if !finite(spec.StartChannel) || !finite(spec.Rate) || !finite(spec.RateNormalizer) {
		return geometry.Span{}, nil, fmt.Errorf("resolve drift window: non-finite drift spec %+v", spec)
	}

	totalTime := sp.TimeSteps()
	slope := spec.Slope()
	start := int(math.Floor(spec.StartChannel))

	var window geometry.Span
	switch {
	case spec.RequestedWidth > 0:
		// An explicit width overrides drift-based sizing, centered on the
		// start channel by floor division.
		lo := start - spec.RequestedWidth/2
		window = geometry.Span{Lo: lo, Hi: lo + spec.RequestedWidth - 1}
	case math.Abs(slope) <= zeroSlopeEps:
		window = geometry.Span{Lo: start - totalTime, Hi: start + totalTime}
	default:
		// The extreme deviation the line reaches by the last time step,
		// padded symmetrically so either slope sign stays inside. The
		// bounds bracket a fractional start channel (floor below, ceil
		// above) so every trajectory sample stays within the window.
		maxOffset := int(math.Ceil(float64(totalTime-1) * math.Abs(slope)))
		window = geometry.NewSpan(start-maxOffset, int(math.Ceil(spec.StartChannel))+maxOffset)
	}

	traj := make([]geometry.Point2D, totalTime)
	for t := 0; t < totalTime; t++ {
		traj[t] = geometry.Point2D{
			X: spec.StartChannel + slope*float64(t),
			Y: float64(t),
		}
	}
	return window, traj, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
