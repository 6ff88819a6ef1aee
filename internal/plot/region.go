// Package plot computes what the diagnostic views display: the sub-region
// of the spectrogram to extract, the set of candidate points to mark, and
// the window and trajectory of a hypothesized drift line. Drawing itself is
// delegated to internal/render; everything here is pure geometry.
package plot

import (
	"errors"
	"fmt"

	"driftscope/internal/cluster"
	"driftscope/pkg/geometry"
)

// ErrEmptyInput is returned when region resolution is asked to bound an
// empty point set.
var ErrEmptyInput = errors.New("empty input point set")

// ErrInvalidWindow is returned for a negative requested window width.
var ErrInvalidWindow = errors.New("invalid window width")

// ResolveClusterRegion computes the display region for a cluster of
// candidate points: the smallest region containing every point, expanded by
// the border, unclamped. The returned point set is what the overlay should
// mark; when the overlay request is unset this entry point defaults to
// marking all input points.
func ResolveClusterRegion(points cluster.PointSet, border geometry.Border, overlay Overlay) (geometry.Region, cluster.PointSet, error) {
	if len(points) == 0 {
		return geometry.Region{}, nil, fmt.Errorf("resolve cluster region: %w", ErrEmptyInput)
	}
	region, err := cluster.Bounds(points, border)
	if err != nil {
		return geometry.Region{}, nil, fmt.Errorf("resolve cluster region: %w", err)
	}
	out, marks := resolveRegion(region, points, overlay, MarkAll())
	return out, marks, nil
}

// ResolveRectRegion computes the display region for a caller-supplied
// rectangle. The border still expands it symmetrically. Rectangle callers
// already know their bounds, so an unset overlay request defaults to
// marking nothing here, unlike the point-set entry point.
func ResolveRectRegion(region geometry.Region, border geometry.Border, overlay Overlay) (geometry.Region, cluster.PointSet, error) {
	if !border.Valid() {
		return geometry.Region{}, nil, fmt.Errorf("resolve rect region: border margins must be >= 0, got %+v", border)
	}
	out, marks := resolveRegion(region.Expand(border), nil, overlay, MarkNone())
	return out, marks, nil
}

// resolveRegion is the single shared tail of both entry points. The
// per-entry overlay default arrives as an explicit fallback parameter; the
// entry points differ in nothing else.
func resolveRegion(region geometry.Region, input cluster.PointSet, overlay, fallback Overlay) (geometry.Region, cluster.PointSet) {
	return region, overlay.resolve(input, fallback)
}
