// Package colorutil provides shared color utilities: overlay colors and the
// intensity ramps used to render spectrogram heatmaps.
package colorutil

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// Ramp maps normalized intensity to color by interpolating between fixed
// stops in Lab space. It satisfies both palette.Palette (via Palette) and
// palette.ColorMap from gonum/plot, so renderers can use it directly.
type Ramp struct {
	name  string
	stops []colorful.Color

	min, max float64
	alpha    float64
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("colorutil: bad hex stop " + s)
	}
	return c
}

// Viridis returns the perceptually-uniform ramp conventional for
// spectrogram display.
func Viridis() *Ramp {
	return &Ramp{
		name: "viridis",
		stops: []colorful.Color{
			mustHex("#440154"), mustHex("#482878"), mustHex("#3e4989"),
			mustHex("#31688e"), mustHex("#26828e"), mustHex("#1f9e89"),
			mustHex("#35b779"), mustHex("#6ece58"), mustHex("#b5de2b"),
			mustHex("#fde725"),
		},
		min: 0, max: 1, alpha: 1,
	}
}

// Gray returns a plain black-to-white ramp.
func Gray() *Ramp {
	return &Ramp{
		name:  "gray",
		stops: []colorful.Color{mustHex("#000000"), mustHex("#ffffff")},
		min:   0, max: 1, alpha: 1,
	}
}

// ByName looks up a ramp by its CLI/prefs name. Unknown names fall back to
// viridis.
func ByName(name string) *Ramp {
	switch name {
	case "gray", "grey":
		return Gray()
	default:
		return Viridis()
	}
}

// Name returns the ramp's lookup name.
func (r *Ramp) Name() string { return r.name }

// At returns the interpolated color for v in [Min, Max].
func (r *Ramp) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < r.min:
		return nil, palette.ErrUnderflow
	case v > r.max:
		return nil, palette.ErrOverflow
	}
	span := r.max - r.min
	u := 0.0
	if span > 0 {
		u = (v - r.min) / span
	}
	pos := u * float64(len(r.stops)-1)
	i := int(pos)
	if i >= len(r.stops)-1 {
		i = len(r.stops) - 2
	}
	c := r.stops[i].BlendLab(r.stops[i+1], pos-float64(i)).Clamped()
	cr, cg, cb := c.RGB255()
	return color.NRGBA{R: cr, G: cg, B: cb, A: uint8(r.alpha*255 + 0.5)}, nil
}

// RGBA returns the ramp color for v as a concrete color, clamping
// out-of-range values to the nearest end. Convenience for pixel renderers
// that never want an error path.
func (r *Ramp) RGBA(v float64) color.NRGBA {
	if math.IsNaN(v) {
		v = r.min
	}
	if v < r.min {
		v = r.min
	}
	if v > r.max {
		v = r.max
	}
	c, _ := r.At(v)
	return c.(color.NRGBA)
}

// Max returns the value mapped to the last stop.
func (r *Ramp) Max() float64 { return r.max }

// SetMax sets the value mapped to the last stop.
func (r *Ramp) SetMax(v float64) { r.max = v }

// Min returns the value mapped to the first stop.
func (r *Ramp) Min() float64 { return r.min }

// SetMin sets the value mapped to the first stop.
func (r *Ramp) SetMin(v float64) { r.min = v }

// Alpha returns the opacity applied to ramp colors.
func (r *Ramp) Alpha() float64 { return r.alpha }

// SetAlpha sets the opacity applied to ramp colors.
func (r *Ramp) SetAlpha(a float64) { r.alpha = a }

// Palette returns a discretization of the ramp into n colors.
func (r *Ramp) Palette(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	colors := make([]color.Color, n)
	span := r.max - r.min
	for i := range colors {
		v := r.min + span*float64(i)/float64(n-1)
		c, err := r.At(v)
		if err != nil {
			c = Black
		}
		colors[i] = c
	}
	return rampPalette(colors)
}

type rampPalette []color.Color

// Colors implements palette.Palette.
func (p rampPalette) Colors() []color.Color { return p }
