package plot

import (
	"image"
	"testing"

	"driftscope/internal/cluster"
	"driftscope/internal/render"
	"driftscope/internal/spectrogram"
	"driftscope/pkg/geometry"
)

// recordingRenderer captures the draw calls the resolvers hand over.
type recordingRenderer struct {
	heatmapView *spectrogram.View
	heatmapOpts render.HeatmapOptions
	marked      []geometry.Point2D
	lined       []geometry.Point2D
	lineCalls   int
}

type recordingHandle struct{}

func (recordingHandle) Image() (image.Image, error) { return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil }
func (recordingHandle) SavePNG(string) error        { return nil }

func (r *recordingRenderer) Heatmap(v *spectrogram.View, opts render.HeatmapOptions) (render.Handle, error) {
	r.heatmapView = v
	r.heatmapOpts = opts
	return recordingHandle{}, nil
}

func (r *recordingRenderer) MarkPoints(_ render.Handle, pts []geometry.Point2D, _ render.MarkerStyle) error {
	r.marked = pts
	return nil
}

func (r *recordingRenderer) DrawLine(_ render.Handle, pts []geometry.Point2D, _ render.LineStyle) error {
	r.lineCalls++
	r.lined = pts
	return nil
}

func testScan(t *testing.T) *spectrogram.Spectrogram {
	t.Helper()
	sp, err := spectrogram.New(64, 16, spectrogram.Metadata{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sp
}

func TestClusterZoomHandsResolvedRegionToRenderer(t *testing.T) {
	sp := testScan(t)
	rec := &recordingRenderer{}
	points := cluster.PointSet{{Channel: 10, Time: 5}, {Channel: 12, Time: 7}}

	h, err := ClusterZoom(rec, sp, points, geometry.UniformBorder(2), Overlay{},
		render.HeatmapOptions{}, render.DefaultMarkerStyle())
	if err != nil {
		t.Fatalf("ClusterZoom: %v", err)
	}
	if h == nil {
		t.Fatal("handle must be passed through")
	}
	if want := geometry.NewRegion(8, 14, 3, 9); rec.heatmapView.Requested != want {
		t.Errorf("heatmap region: got %+v, want %+v", rec.heatmapView.Requested, want)
	}
	if len(rec.marked) != 2 {
		t.Fatalf("marked %d points, want 2", len(rec.marked))
	}
	if rec.marked[0] != (geometry.Point2D{X: 10, Y: 5}) {
		t.Errorf("first marker: got %+v, want (10,5)", rec.marked[0])
	}
}

func TestClusterZoomEmptySetFailsBeforeRendering(t *testing.T) {
	sp := testScan(t)
	rec := &recordingRenderer{}
	_, err := ClusterZoom(rec, sp, nil, geometry.Border{}, Overlay{},
		render.HeatmapOptions{}, render.DefaultMarkerStyle())
	if err == nil {
		t.Fatal("expected error for empty point set")
	}
	if rec.heatmapView != nil {
		t.Error("renderer must not be invoked on resolution failure")
	}
}

func TestRectZoomSkipsMarkers(t *testing.T) {
	sp := testScan(t)
	rec := &recordingRenderer{}
	_, err := RectZoom(rec, sp, geometry.NewRegion(5, 20, 0, 15), geometry.Border{}, Overlay{},
		render.HeatmapOptions{}, render.DefaultMarkerStyle())
	if err != nil {
		t.Fatalf("RectZoom: %v", err)
	}
	if rec.marked != nil {
		t.Errorf("rect zoom with unset overlay must not mark points, got %+v", rec.marked)
	}
}

func TestDriftLineForcesTimeFlipAndFullTimeAxis(t *testing.T) {
	sp := testScan(t)
	rec := &recordingRenderer{}
	spec := DriftSpec{StartChannel: 30, Rate: 1, RateNormalizer: 1}

	_, err := DriftLine(rec, sp, spec, render.DefaultLineStyle(), render.HeatmapOptions{FlipTime: false})
	if err != nil {
		t.Fatalf("DriftLine: %v", err)
	}
	if !rec.heatmapOpts.FlipTime {
		t.Error("drift view must always flip the time axis")
	}
	if want := geometry.NewSpan(0, 15); rec.heatmapView.Requested.Times != want {
		t.Errorf("time extent: got %+v, want full axis %+v", rec.heatmapView.Requested.Times, want)
	}
	if len(rec.lined) != sp.TimeSteps() {
		t.Errorf("trajectory: got %d samples, want %d", len(rec.lined), sp.TimeSteps())
	}
}

func TestDriftLineSuppressed(t *testing.T) {
	sp := testScan(t)
	rec := &recordingRenderer{}
	spec := DriftSpec{StartChannel: 30, Rate: 1, RateNormalizer: 1}

	_, err := DriftLine(rec, sp, spec, render.LineStyleNone, render.HeatmapOptions{})
	if err != nil {
		t.Fatalf("DriftLine: %v", err)
	}
	if rec.lineCalls != 0 {
		t.Error("suppressed style must skip the line overlay entirely")
	}
	if rec.heatmapView == nil {
		t.Error("heatmap must still be drawn when the line is suppressed")
	}
}
