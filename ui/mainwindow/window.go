// Package mainwindow builds the viewer's main fyne window: a hit list on
// the left, a rendered quicklook on the right, and controls for switching
// between the cluster-zoom and drift-line views.
package mainwindow

import (
	"fmt"
	"image"
	"log"

	"driftscope/internal/app"
	"driftscope/internal/cluster"
	"driftscope/internal/plot"
	"driftscope/internal/render"
	"driftscope/pkg/colorutil"
	"driftscope/pkg/geometry"
	"driftscope/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// View modes offered by the mode selector.
const (
	modeClusterZoom = "Cluster zoom"
	modeDriftLine   = "Drift line"
)

// Window wraps the main viewer window.
type Window struct {
	win   fyne.Window
	state *app.State
	prefs *prefs.Prefs

	mode      string
	imgCanvas *fynecanvas.Image
	hitList   *widget.List
	status    *widget.Label
}

// New creates the main window.
func New(a fyne.App, state *app.State, p *prefs.Prefs) *Window {
	w := &Window{
		win:   a.NewWindow("Driftscope"),
		state: state,
		prefs: p,
		mode:  modeClusterZoom,
	}

	w.imgCanvas = fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 400, 300)))
	w.imgCanvas.FillMode = fynecanvas.ImageFillContain
	w.imgCanvas.SetMinSize(fyne.NewSize(600, 450))

	w.status = widget.NewLabel("No scan loaded")

	w.hitList = widget.NewList(
		func() int { return len(state.Hits()) },
		func() fyne.CanvasObject { return widget.NewLabel("hit") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			h := state.Hits()[i]
			o.(*widget.Label).SetText(fmt.Sprintf("ch %d  t %d  %.2f ch/step  SNR %.1f",
				h.Channel, h.Time, h.DriftRate, h.SNR))
		},
	)
	w.hitList.OnSelected = func(i widget.ListItemID) { state.Select(i) }

	modeSelect := widget.NewSelect([]string{modeClusterZoom, modeDriftLine}, func(m string) {
		w.mode = m
		w.redraw()
	})
	modeSelect.Selected = w.mode

	openBtn := widget.NewButton("Open scan…", w.openBundle)

	top := container.NewHBox(openBtn, modeSelect, w.status)
	side := container.NewBorder(widget.NewLabel("Hits"), nil, nil, nil, w.hitList)
	split := container.NewHSplit(side, container.NewStack(w.imgCanvas))
	split.SetOffset(0.3)

	w.win.SetContent(container.NewBorder(top, nil, nil, nil, split))
	w.win.Resize(fyne.NewSize(1100, 700))

	// State changes originate from fyne callbacks, so refreshing directly
	// stays on the event goroutine.
	state.OnChange(w.refresh)
	return w
}

// Show displays the window.
func (w *Window) Show() { w.win.Show() }

// ShowAndRun displays the window and runs the fyne main loop.
func (w *Window) ShowAndRun() { w.win.ShowAndRun() }

func (w *Window) openBundle() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		if err := w.state.LoadBundle(path); err != nil {
			log.Printf("Failed to load bundle %s: %v", path, err)
			dialog.ShowError(err, w.win)
		}
	}, w.win)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

// refresh updates the list and status after a state change, then redraws.
func (w *Window) refresh() {
	if scan := w.state.Scan(); scan != nil {
		w.status.SetText(fmt.Sprintf("%s: %d ch x %d steps, %d hits",
			scan.Name, scan.Channels, scan.TimeSteps, len(w.state.Hits())))
	}
	w.hitList.Refresh()
	w.redraw()
}

// redraw renders the current selection into the image canvas.
func (w *Window) redraw() {
	sp := w.state.Spectrogram()
	if sp == nil {
		return
	}
	hit, ok := w.state.Selected()
	if !ok {
		return
	}

	renderer := &render.QuicklookRenderer{
		Ramp: colorutil.ByName(w.prefs.String(prefs.KeyPalette)),
		Zoom: w.prefs.Int(prefs.KeyZoom),
	}

	var (
		h   render.Handle
		err error
	)
	switch w.mode {
	case modeDriftLine:
		spec := plot.DriftSpec{
			StartChannel:   float64(hit.Channel),
			Rate:           hit.DriftRate,
			RateNormalizer: 1,
		}
		opts := render.DefaultHeatmapOptions()
		opts.Title = fmt.Sprintf("drift %.2f ch/step @ ch %d", hit.DriftRate, hit.Channel)
		h, err = plot.DriftLine(renderer, sp, spec, render.DefaultLineStyle(), opts)
	default:
		border := geometry.UniformBorder(w.prefs.Int(prefs.KeyBorder))
		opts := render.HeatmapOptions{Title: "cluster", FlipTime: true}
		h, err = plot.ClusterZoom(renderer, sp, cluster.PointSet{hit.Point()},
			border, plot.Overlay{}, opts, render.DefaultMarkerStyle())
	}
	if err != nil {
		log.Printf("Render failed: %v", err)
		return
	}

	img, err := h.Image()
	if err != nil {
		log.Printf("Render failed: %v", err)
		return
	}
	w.imgCanvas.Image = img
	w.imgCanvas.Refresh()
}
