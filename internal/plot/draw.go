package plot

import (
	"fmt"

	"driftscope/internal/cluster"
	"driftscope/internal/render"
	"driftscope/internal/spectrogram"
	"driftscope/pkg/geometry"
)

// ClusterZoom renders a zoomed heatmap around a cluster of candidate
// points, marking the resolved overlay set. The renderer's handle is
// returned unchanged.
func ClusterZoom(r render.Renderer, sp *spectrogram.Spectrogram, points cluster.PointSet,
	border geometry.Border, overlay Overlay, opts render.HeatmapOptions, marker render.MarkerStyle) (render.Handle, error) {

	region, marks, err := ResolveClusterRegion(points, border, overlay)
	if err != nil {
		return nil, err
	}
	return drawRegion(r, sp, region, marks, opts, marker)
}

// RectZoom renders a zoomed heatmap of a caller-supplied rectangle. No
// markers are drawn unless the overlay requests them.
func RectZoom(r render.Renderer, sp *spectrogram.Spectrogram, region geometry.Region,
	border geometry.Border, overlay Overlay, opts render.HeatmapOptions, marker render.MarkerStyle) (render.Handle, error) {

	resolved, marks, err := ResolveRectRegion(region, border, overlay)
	if err != nil {
		return nil, err
	}
	return drawRegion(r, sp, resolved, marks, opts, marker)
}

func drawRegion(r render.Renderer, sp *spectrogram.Spectrogram, region geometry.Region,
	marks cluster.PointSet, opts render.HeatmapOptions, marker render.MarkerStyle) (render.Handle, error) {

	h, err := r.Heatmap(sp.View(region), opts)
	if err != nil {
		return nil, fmt.Errorf("region zoom: %w", err)
	}
	if len(marks) > 0 {
		coords := make([]geometry.Point2D, len(marks))
		for i, p := range marks {
			coords[i] = p.ToFloat()
		}
		if err := r.MarkPoints(h, coords, marker); err != nil {
			return nil, fmt.Errorf("region zoom: %w", err)
		}
	}
	return h, nil
}

// DriftLine renders a full-time-axis heatmap of the drift window with the
// hypothesized trajectory overlaid. The drift view always flips the time
// axis (time increases downward) and never widens to fit data. A suppressed
// line style draws the heatmap only.
func DriftLine(r render.Renderer, sp *spectrogram.Spectrogram, spec DriftSpec,
	style render.LineStyle, opts render.HeatmapOptions) (render.Handle, error) {

	window, traj, err := ResolveDriftWindow(sp, spec)
	if err != nil {
		return nil, err
	}
	region := geometry.Region{
		Channels: window,
		Times:    geometry.NewSpan(0, sp.TimeSteps()-1),
	}
	opts.FlipTime = true

	h, err := r.Heatmap(sp.View(region), opts)
	if err != nil {
		return nil, fmt.Errorf("drift line: %w", err)
	}
	if !style.Suppressed() {
		if err := r.DrawLine(h, traj, style); err != nil {
			return nil, fmt.Errorf("drift line: %w", err)
		}
	}
	return h, nil
}
