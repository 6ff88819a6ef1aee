package render

import (
	"driftscope/internal/spectrogram"
	"driftscope/pkg/geometry"
)

// heatGrid adapts a spectrogram view to gonum/plot's GridXYZ. Columns are
// frequency channels, rows are time steps, and Z is the display-normalized
// intensity. The grid spans the view's requested region; cells outside the
// matrix paint at the ramp floor so padding stays visually dead even when
// the data's clip floor is negative.
type heatGrid struct {
	view  *spectrogram.View
	scale spectrogram.DisplayScale
}

func (g *heatGrid) Dims() (c, r int) {
	return g.view.Requested.Channels.Count(), g.view.Requested.Times.Count()
}

func (g *heatGrid) X(c int) float64 {
	return float64(g.view.Requested.Channels.Lo + c)
}

func (g *heatGrid) Y(r int) float64 {
	return float64(g.view.Requested.Times.Lo + r)
}

func (g *heatGrid) Z(c, r int) float64 {
	ch := g.view.Requested.Channels.Lo + c
	t := g.view.Requested.Times.Lo + r
	if !g.view.Clipped.Contains(geometry.NewPoint(ch, t)) {
		return 0
	}
	return g.scale.Normalize(g.view.At(ch, t))
}
