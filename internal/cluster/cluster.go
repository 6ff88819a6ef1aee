// Package cluster provides the detector-facing types of the drift-search
// pipeline: hits, point sets, and the bounding-region computation used when
// zooming the display onto a candidate cluster. Detection itself (deciding
// which points form a cluster) lives upstream in the search pipeline.
package cluster

import (
	"errors"
	"fmt"

	"driftscope/pkg/geometry"
)

// ErrEmptyPointSet is returned when a bounding region is requested for an
// empty point set.
var ErrEmptyPointSet = errors.New("empty point set")

// Hit is one candidate detection from the drift search.
type Hit struct {
	Channel   int     `json:"channel"`
	Time      int     `json:"time"`
	DriftRate float64 `json:"drift_rate"` // Channels per time step
	SNR       float64 `json:"snr"`
	FreqMHz   float64 `json:"freq_mhz,omitempty"`
}

// Point returns the hit's location in the spectrogram.
func (h Hit) Point() geometry.Point {
	return geometry.NewPoint(h.Channel, h.Time)
}

// PointSet is a collection of candidate locations.
type PointSet []geometry.Point

// Points extracts the locations of a hit list.
func Points(hits []Hit) PointSet {
	pts := make(PointSet, len(hits))
	for i, h := range hits {
		pts[i] = h.Point()
	}
	return pts
}

// Bounds computes the smallest region containing every point, expanded by
// the border on each axis in each direction. The result is not clamped to
// any matrix extent; clamping belongs to the matrix-indexing layer.
func Bounds(points PointSet, border geometry.Border) (geometry.Region, error) {
	if !border.Valid() {
		return geometry.Region{}, fmt.Errorf("cluster bounds: border margins must be >= 0, got %+v", border)
	}
	box, ok := geometry.BoundingBox(points)
	if !ok {
		return geometry.Region{}, fmt.Errorf("cluster bounds: %w", ErrEmptyPointSet)
	}
	return box.Expand(border), nil
}
