package plot

import "driftscope/internal/cluster"

type overlayMode int

const (
	overlayUnset overlayMode = iota
	overlayNone
	overlayAll
	overlayExplicit
)

// Overlay is the tri-state point-marking request: mark nothing, mark all
// input points, or mark an explicit list. The zero value is "unset" and
// takes the default of whichever entry point receives it.
type Overlay struct {
	mode   overlayMode
	points cluster.PointSet
}

// MarkNone requests no point markers.
func MarkNone() Overlay { return Overlay{mode: overlayNone} }

// MarkAll requests markers at every input point.
func MarkAll() Overlay { return Overlay{mode: overlayAll} }

// MarkPoints requests markers at exactly the given points, independent of
// the input set the region was computed from.
func MarkPoints(points cluster.PointSet) Overlay {
	return Overlay{mode: overlayExplicit, points: points}
}

// resolve produces the final set of points to mark. Resolution is
// independent of how the region was computed.
func (o Overlay) resolve(input cluster.PointSet, fallback Overlay) cluster.PointSet {
	if o.mode == overlayUnset {
		o = fallback
	}
	switch o.mode {
	case overlayAll:
		return input
	case overlayExplicit:
		return o.points
	default:
		return nil
	}
}
