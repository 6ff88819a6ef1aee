// Package geometry provides the basic channel/time geometric types used
// throughout the application.
package geometry

// Point identifies one cell of a spectrogram: a frequency channel and a
// time-step index.
type Point struct {
	Channel int `json:"channel"`
	Time    int `json:"time"`
}

// NewPoint creates a new Point.
func NewPoint(channel, time int) Point {
	return Point{Channel: channel, Time: time}
}

// Point2D represents a 2D point with floating-point coordinates, used for
// overlay geometry handed to a renderer (X = channel, Y = time step).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToFloat converts to Point2D.
func (p Point) ToFloat() Point2D {
	return Point2D{X: float64(p.Channel), Y: float64(p.Time)}
}

// Span is an inclusive integer range [Lo, Hi].
type Span struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// NewSpan creates a Span, swapping the endpoints if they arrive reversed.
func NewSpan(lo, hi int) Span {
	if hi < lo {
		lo, hi = hi, lo
	}
	return Span{Lo: lo, Hi: hi}
}

// Count returns the number of integers covered by the span.
func (s Span) Count() int {
	return s.Hi - s.Lo + 1
}

// Contains returns true if v lies within the span.
func (s Span) Contains(v int) bool {
	return v >= s.Lo && v <= s.Hi
}

// Expand returns the span grown by margin on both ends.
func (s Span) Expand(margin int) Span {
	return Span{Lo: s.Lo - margin, Hi: s.Hi + margin}
}

// Clip returns the span intersected with [lo, hi]. An empty intersection
// collapses to a single index at the nearer bound.
func (s Span) Clip(lo, hi int) Span {
	if s.Lo < lo {
		s.Lo = lo
	}
	if s.Hi > hi {
		s.Hi = hi
	}
	if s.Hi < s.Lo {
		if s.Lo > hi {
			s.Lo, s.Hi = hi, hi
		} else {
			s.Hi = s.Lo
		}
	}
	return s
}

// Region is an axis-aligned rectangle over a spectrogram: a channel span
// crossed with a time span.
type Region struct {
	Channels Span `json:"channels"`
	Times    Span `json:"times"`
}

// NewRegion creates a Region from channel and time bounds.
func NewRegion(chLo, chHi, tLo, tHi int) Region {
	return Region{Channels: NewSpan(chLo, chHi), Times: NewSpan(tLo, tHi)}
}

// Contains returns true if the point lies inside the region.
func (r Region) Contains(p Point) bool {
	return r.Channels.Contains(p.Channel) && r.Times.Contains(p.Time)
}

// Expand returns the region grown by the border on each axis in each
// direction. The result is not clamped to any matrix extent.
func (r Region) Expand(b Border) Region {
	return Region{
		Channels: r.Channels.Expand(b.Channel),
		Times:    r.Times.Expand(b.Time),
	}
}

// Border is a symmetric non-negative margin applied around a region,
// expressed per axis.
type Border struct {
	Channel int `json:"channel"`
	Time    int `json:"time"`
}

// UniformBorder returns a border applying the same margin to both axes.
func UniformBorder(margin int) Border {
	return Border{Channel: margin, Time: margin}
}

// AsymmetricBorder returns a border with independent per-axis margins.
func AsymmetricBorder(channel, time int) Border {
	return Border{Channel: channel, Time: time}
}

// Valid reports whether both margins are non-negative.
func (b Border) Valid() bool {
	return b.Channel >= 0 && b.Time >= 0
}

// BoundingBox computes the smallest region containing every point.
// The second return value is false for an empty point set.
func BoundingBox(points []Point) (Region, bool) {
	if len(points) == 0 {
		return Region{}, false
	}
	r := Region{
		Channels: Span{Lo: points[0].Channel, Hi: points[0].Channel},
		Times:    Span{Lo: points[0].Time, Hi: points[0].Time},
	}
	for _, p := range points[1:] {
		if p.Channel < r.Channels.Lo {
			r.Channels.Lo = p.Channel
		}
		if p.Channel > r.Channels.Hi {
			r.Channels.Hi = p.Channel
		}
		if p.Time < r.Times.Lo {
			r.Times.Lo = p.Time
		}
		if p.Time > r.Times.Hi {
			r.Times.Hi = p.Time
		}
	}
	return r, true
}
