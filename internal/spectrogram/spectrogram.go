// Package spectrogram provides the frequency/time intensity matrix at the
// center of the drift-search pipeline, along with sub-region views and the
// display normalization used by the renderers.
package spectrogram

import (
	"fmt"

	"driftscope/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// Metadata describes how matrix indices map to physical units. It travels
// with the scan bundle but is never consulted by the geometry resolvers,
// which work purely in channel/time-step indices.
type Metadata struct {
	Source     string  `json:"source,omitempty"`      // Telescope / capture identifier
	FCh0MHz    float64 `json:"fch0_mhz,omitempty"`    // Frequency of channel 0
	ChannelHz  float64 `json:"channel_hz,omitempty"`  // Bandwidth per channel
	CadenceSec float64 `json:"cadence_sec,omitempty"` // Seconds per time step
}

// Spectrogram is a read-only intensity matrix: rows are frequency channels,
// columns are time steps.
type Spectrogram struct {
	data *mat.Dense
	meta Metadata
}

// New creates a zero-filled spectrogram with the given extent.
func New(channels, timeSteps int, meta Metadata) (*Spectrogram, error) {
	if channels <= 0 || timeSteps <= 0 {
		return nil, fmt.Errorf("new spectrogram: extent must be positive, got %dx%d", channels, timeSteps)
	}
	return &Spectrogram{data: mat.NewDense(channels, timeSteps, nil), meta: meta}, nil
}

// FromDense wraps an existing matrix. The caller must not mutate it while
// the spectrogram is in use.
func FromDense(d *mat.Dense, meta Metadata) *Spectrogram {
	return &Spectrogram{data: d, meta: meta}
}

// Meta returns the physical-unit metadata.
func (s *Spectrogram) Meta() Metadata { return s.meta }

// Channels returns the number of frequency channels (rows).
func (s *Spectrogram) Channels() int {
	r, _ := s.data.Dims()
	return r
}

// TimeSteps returns the number of time steps (columns).
func (s *Spectrogram) TimeSteps() int {
	_, c := s.data.Dims()
	return c
}

// Extent returns the full matrix as a region.
func (s *Spectrogram) Extent() geometry.Region {
	return geometry.NewRegion(0, s.Channels()-1, 0, s.TimeSteps()-1)
}

// At returns the intensity at (channel, timeStep).
func (s *Spectrogram) At(channel, timeStep int) float64 {
	return s.data.At(channel, timeStep)
}

// Set stores an intensity value. Only scan builders (synthesis, bundle
// loading) use this; display code treats the matrix as read-only.
func (s *Spectrogram) Set(channel, timeStep int, v float64) {
	s.data.Set(channel, timeStep, v)
}

// RawMatrix exposes the backing matrix for persistence.
func (s *Spectrogram) RawMatrix() *mat.Dense { return s.data }

// View is a rectangular window into a spectrogram. Requested holds the
// region the caller asked for; Clipped is the part that actually intersects
// the matrix and backs the data. Display code uses Requested for axis
// extents so out-of-range requests keep their intended framing.
type View struct {
	Requested geometry.Region
	Clipped   geometry.Region
	data      mat.Matrix
}

// View extracts a sub-region. The region may extend outside the matrix;
// clamping out-of-bounds requests is this indexing layer's contract, not the
// region resolvers'.
func (s *Spectrogram) View(region geometry.Region) *View {
	clipped := geometry.Region{
		Channels: region.Channels.Clip(0, s.Channels()-1),
		Times:    region.Times.Clip(0, s.TimeSteps()-1),
	}
	sub := s.data.Slice(clipped.Channels.Lo, clipped.Channels.Hi+1,
		clipped.Times.Lo, clipped.Times.Hi+1)
	return &View{Requested: region, Clipped: clipped, data: sub}
}

// Channels returns the number of channels in the clipped view.
func (v *View) Channels() int { return v.Clipped.Channels.Count() }

// TimeSteps returns the number of time steps in the clipped view.
func (v *View) TimeSteps() int { return v.Clipped.Times.Count() }

// At returns the intensity at absolute matrix coordinates. Coordinates
// outside the clipped region return 0; renderers painting the full
// requested extent check Clipped themselves so padding lands at the ramp
// floor rather than at a display-normalized raw zero.
func (v *View) At(channel, timeStep int) float64 {
	if !v.Clipped.Contains(geometry.NewPoint(channel, timeStep)) {
		return 0
	}
	return v.data.At(channel-v.Clipped.Channels.Lo, timeStep-v.Clipped.Times.Lo)
}
