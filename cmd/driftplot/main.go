// Command driftplot renders diagnostic PNGs for a scan bundle: a zoomed
// cluster view of the hit list and a drift-line view per hit.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"driftscope/internal/cluster"
	"driftscope/internal/plot"
	"driftscope/internal/project"
	"driftscope/internal/render"
	"driftscope/pkg/colorutil"
	"driftscope/pkg/geometry"
)

func main() {
	scanPath := flag.String("scan", "", "Path to the .scan.json bundle header")
	outDir := flag.String("out", ".", "Output directory for PNGs")
	border := flag.Int("border", 7, "Cluster-zoom border margin in cells")
	width := flag.Int("width", 0, "Drift-view channel window width (0 = auto)")
	palette := flag.String("palette", "viridis", "Color ramp: viridis or gray")
	noLine := flag.Bool("noline", false, "Suppress the drift line overlay")
	noMarks := flag.Bool("nomarks", false, "Suppress hit markers on the cluster view")
	flag.Parse()

	if *scanPath == "" {
		fmt.Println("Usage: driftplot -scan <path.scan.json> [-out dir] [-border 7] [-width 0] [-palette viridis]")
		os.Exit(1)
	}

	scan, sp, hits, err := project.ReadBundle(*scanPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load bundle: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s: %d channels x %d time steps, %d hits\n",
		scan.Name, scan.Channels, scan.TimeSteps, len(hits))
	if len(hits) == 0 {
		fmt.Println("No hits to plot")
		return
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	renderer := render.NewPlotRenderer()
	renderer.Ramp = colorutil.ByName(*palette)

	// One zoomed view of the whole hit cluster.
	overlay := plot.Overlay{}
	if *noMarks {
		overlay = plot.MarkNone()
	}
	opts := render.DefaultHeatmapOptions()
	opts.Title = scan.Name + " hit cluster"
	h, err := plot.ClusterZoom(renderer, sp, cluster.Points(hits),
		geometry.UniformBorder(*border), overlay, opts, render.DefaultMarkerStyle())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cluster zoom failed: %v\n", err)
		os.Exit(1)
	}
	clusterPath := filepath.Join(*outDir, scan.Name+"_cluster.png")
	if err := h.SavePNG(clusterPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save %s: %v\n", clusterPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", clusterPath)

	// One drift-line view per hit.
	style := render.DefaultLineStyle()
	if *noLine {
		style = render.LineStyleNone
	}
	for i, hit := range hits {
		spec := plot.DriftSpec{
			StartChannel:   float64(hit.Channel),
			Rate:           hit.DriftRate,
			RateNormalizer: 1,
			RequestedWidth: *width,
		}
		opts := render.DefaultHeatmapOptions()
		opts.Ramp = renderer.Ramp
		opts.Title = fmt.Sprintf("%s hit %d: %.3f ch/step, SNR %.1f",
			scan.Name, i, hit.DriftRate, hit.SNR)

		dh, err := plot.DriftLine(renderer, sp, spec, style, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Drift view for hit %d failed: %v\n", i, err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, fmt.Sprintf("%s_drift_%03d.png", scan.Name, i))
		if err := dh.SavePNG(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}
