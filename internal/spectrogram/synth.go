package spectrogram

import (
	"fmt"
	"math"
	"math/rand"
)

// Tone describes a synthetic narrowband signal drifting linearly in
// frequency, used to exercise the pipeline without telescope data.
type Tone struct {
	StartChannel float64 `json:"start_channel"`
	DriftRate    float64 `json:"drift_rate"` // Channels per time step
	SNR          float64 `json:"snr"`        // Peak amplitude over noise sigma
	WidthCh      float64 `json:"width_ch"`   // Gaussian half-width in channels
}

// SynthParams configures synthetic scan generation.
type SynthParams struct {
	Channels   int
	TimeSteps  int
	NoiseSigma float64
	Seed       int64
	Tones      []Tone
}

// DefaultSynthParams returns a modest scan with a single slow drifter.
func DefaultSynthParams() SynthParams {
	return SynthParams{
		Channels:   1024,
		TimeSteps:  64,
		NoiseSigma: 1.0,
		Seed:       1,
		Tones: []Tone{
			{StartChannel: 512, DriftRate: 0.8, SNR: 25, WidthCh: 1.5},
		},
	}
}

// Synthesize builds a spectrogram of Gaussian noise with the configured
// tones injected along their linear drift tracks.
func Synthesize(p SynthParams, meta Metadata) (*Spectrogram, error) {
	sp, err := New(p.Channels, p.TimeSteps, meta)
	if err != nil {
		return nil, fmt.Errorf("synthesize scan: %w", err)
	}
	if p.NoiseSigma < 0 {
		return nil, fmt.Errorf("synthesize scan: noise sigma must be >= 0, got %g", p.NoiseSigma)
	}

	rng := rand.New(rand.NewSource(p.Seed))
	for ch := 0; ch < p.Channels; ch++ {
		for t := 0; t < p.TimeSteps; t++ {
			sp.Set(ch, t, rng.NormFloat64()*p.NoiseSigma)
		}
	}

	for _, tone := range p.Tones {
		width := tone.WidthCh
		if width <= 0 {
			width = 1
		}
		peak := tone.SNR * p.NoiseSigma
		// Paint out to 4 sigma on each side of the track.
		reach := int(math.Ceil(width * 4))
		for t := 0; t < p.TimeSteps; t++ {
			center := tone.StartChannel + tone.DriftRate*float64(t)
			lo := int(math.Floor(center)) - reach
			hi := int(math.Ceil(center)) + reach
			for ch := lo; ch <= hi; ch++ {
				if ch < 0 || ch >= p.Channels {
					continue
				}
				d := (float64(ch) - center) / width
				sp.Set(ch, t, sp.At(ch, t)+peak*math.Exp(-0.5*d*d))
			}
		}
	}
	return sp, nil
}
