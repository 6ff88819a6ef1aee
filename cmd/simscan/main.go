// Command simscan synthesizes a scan bundle with injected drifting tones,
// for exercising the renderers and the viewer without telescope data.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"driftscope/internal/cluster"
	"driftscope/internal/project"
	"driftscope/internal/spectrogram"
)

func main() {
	outDir := flag.String("out", ".", "Output directory for the bundle")
	name := flag.String("name", "simscan", "Bundle name")
	channels := flag.Int("channels", 1024, "Number of frequency channels")
	timeSteps := flag.Int("timesteps", 64, "Number of time steps")
	sigma := flag.Float64("sigma", 1.0, "Noise sigma")
	seed := flag.Int64("seed", 1, "RNG seed")
	tones := flag.String("tones", "512:0.8:25", "Injected tones as chan:rate:snr[,chan:rate:snr...]")
	flag.Parse()

	params := spectrogram.SynthParams{
		Channels:   *channels,
		TimeSteps:  *timeSteps,
		NoiseSigma: *sigma,
		Seed:       *seed,
	}

	var hits []cluster.Hit
	for _, part := range strings.Split(*tones, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tone, err := parseTone(part)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad tone %q: %v\n", part, err)
			os.Exit(1)
		}
		params.Tones = append(params.Tones, tone)
		hits = append(hits, cluster.Hit{
			Channel:   int(tone.StartChannel),
			Time:      0,
			DriftRate: tone.DriftRate,
			SNR:       tone.SNR,
		})
	}

	sp, err := spectrogram.Synthesize(params, spectrogram.Metadata{Source: "simscan"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Synthesis failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}
	headerPath, err := project.WriteBundle(*outDir, *name, sp, hits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write bundle: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d channels x %d steps, %d tones)\n",
		headerPath, *channels, *timeSteps, len(params.Tones))
}

// parseTone parses "chan:rate:snr" with an optional ":width" suffix.
func parseTone(s string) (spectrogram.Tone, error) {
	fields := strings.Split(s, ":")
	if len(fields) < 3 || len(fields) > 4 {
		return spectrogram.Tone{}, fmt.Errorf("want chan:rate:snr[:width], got %d fields", len(fields))
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return spectrogram.Tone{}, fmt.Errorf("field %d: %w", i, err)
		}
		values[i] = v
	}
	tone := spectrogram.Tone{
		StartChannel: values[0],
		DriftRate:    values[1],
		SNR:          values[2],
		WidthCh:      1.5,
	}
	if len(values) == 4 {
		tone.WidthCh = values[3]
	}
	return tone, nil
}
