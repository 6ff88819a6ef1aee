// Package render draws spectrogram heatmaps with point and line overlays.
// Two implementations exist: PlotRenderer produces publication plots through
// gonum/plot, QuicklookRenderer produces raw raster images for the viewer.
// The geometry resolvers in internal/plot only decide what to draw; this
// package decides how.
package render

import (
	"image"
	"image/color"

	"driftscope/internal/spectrogram"
	"driftscope/pkg/colorutil"
	"driftscope/pkg/geometry"
)

// Handle is an in-progress drawing returned by a Renderer's heatmap
// primitive and threaded through the overlay primitives.
type Handle interface {
	// Image renders the current state to an image.
	Image() (image.Image, error)
	// SavePNG renders the current state to a PNG file.
	SavePNG(path string) error
}

// Renderer is the drawing collaborator consumed by the geometry resolvers.
type Renderer interface {
	// Heatmap draws the base heatmap for a spectrogram view. The displayed
	// extent is exactly the view's requested region; data never widens it.
	Heatmap(v *spectrogram.View, opts HeatmapOptions) (Handle, error)
	// MarkPoints draws point markers at the given (channel, time) pairs.
	MarkPoints(h Handle, pts []geometry.Point2D, style MarkerStyle) error
	// DrawLine draws a polyline through the given (channel, time) pairs.
	// A suppressed style draws nothing and is not an error.
	DrawLine(h Handle, pts []geometry.Point2D, style LineStyle) error
}

// HeatmapOptions controls base-heatmap appearance.
type HeatmapOptions struct {
	Title    string
	XLabel   string
	YLabel   string
	ColorBar bool // Show an intensity color bar
	FlipTime bool // Time increases downward
	Ramp     *colorutil.Ramp
}

// DefaultHeatmapOptions returns the options used by the drift-line view:
// flipped time axis, labeled axes, color bar on.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		XLabel:   "frequency channel",
		YLabel:   "time step",
		ColorBar: true,
		FlipTime: true,
	}
}

// MarkerStyle controls point-overlay appearance.
type MarkerStyle struct {
	Color  color.Color
	Radius float64 // Marker radius in display points/pixels
}

// DefaultMarkerStyle returns the hit-marker style.
func DefaultMarkerStyle() MarkerStyle {
	return MarkerStyle{Color: colorutil.Red, Radius: 3}
}

// LineStyle controls line-overlay appearance.
type LineStyle struct {
	Color  color.Color
	Alpha  float64 // 0..1; 0 means fully opaque default
	Width  float64 // Line width in display points/pixels
	Dashed bool

	none bool
}

// LineStyleNone is the distinguished style that suppresses the line
// entirely while leaving the underlying heatmap untouched.
var LineStyleNone = LineStyle{none: true}

// Suppressed reports whether the style requests no line at all.
func (s LineStyle) Suppressed() bool { return s.none }

// DefaultLineStyle returns the drift-line style.
func DefaultLineStyle() LineStyle {
	return LineStyle{Color: colorutil.White, Alpha: 0.8, Width: 2}
}

func (s LineStyle) rgba() color.NRGBA {
	c := s.Color
	if c == nil {
		c = colorutil.White
	}
	r, g, b, _ := c.RGBA()
	a := s.Alpha
	if a <= 0 || a > 1 {
		a = 1
	}
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a*255 + 0.5),
	}
}
