package render

import (
	"fmt"
	"image"
	"os"

	"driftscope/internal/spectrogram"
	"driftscope/pkg/colorutil"
	"driftscope/pkg/geometry"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Rendered plot dimensions.
const (
	plotWidth    = 7 * vg.Inch
	plotHeight   = 5 * vg.Inch
	colorBarWide = 1.1 * vg.Inch
)

// PlotRenderer draws through gonum/plot.
type PlotRenderer struct {
	Ramp        *colorutil.Ramp
	PaletteSize int
}

// NewPlotRenderer returns a renderer with the viridis ramp and a 256-color
// palette.
func NewPlotRenderer() *PlotRenderer {
	return &PlotRenderer{Ramp: colorutil.Viridis(), PaletteSize: 256}
}

// PlotHandle wraps an in-progress gonum plot.
type PlotHandle struct {
	p      *plot.Plot
	extent geometry.Region
	scale  spectrogram.DisplayScale

	barRamp *colorutil.Ramp // nil when the color bar is off
}

// Heatmap implements Renderer.
func (r *PlotRenderer) Heatmap(v *spectrogram.View, opts HeatmapOptions) (Handle, error) {
	ramp := opts.Ramp
	if ramp == nil {
		ramp = r.Ramp
	}
	size := r.PaletteSize
	if size < 2 {
		size = 256
	}

	scale := spectrogram.NewDisplayScale(v)
	hm := plotter.NewHeatMap(&heatGrid{view: v, scale: scale}, ramp.Palette(size))
	hm.Min, hm.Max = 0, 1

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	if opts.FlipTime {
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
	p.Add(hm)

	h := &PlotHandle{p: p, extent: v.Requested, scale: scale}
	if opts.ColorBar {
		bar := colorutil.ByName(ramp.Name())
		bar.SetMin(scale.Lo)
		bar.SetMax(scale.Hi)
		h.barRamp = bar
	}
	h.pinExtent()
	return h, nil
}

// pinExtent pins the axes to the requested region so added overlays never
// widen the displayed window.
func (h *PlotHandle) pinExtent() {
	h.p.X.Min = float64(h.extent.Channels.Lo) - 0.5
	h.p.X.Max = float64(h.extent.Channels.Hi) + 0.5
	h.p.Y.Min = float64(h.extent.Times.Lo) - 0.5
	h.p.Y.Max = float64(h.extent.Times.Hi) + 0.5
}

// MarkPoints implements Renderer.
func (r *PlotRenderer) MarkPoints(handle Handle, pts []geometry.Point2D, style MarkerStyle) error {
	h, ok := handle.(*PlotHandle)
	if !ok {
		return fmt.Errorf("mark points: handle is %T, not a plot handle", handle)
	}
	if len(pts) == 0 {
		return nil
	}

	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("mark points: %w", err)
	}
	c := style.Color
	if c == nil {
		c = colorutil.Red
	}
	radius := style.Radius
	if radius <= 0 {
		radius = 3
	}
	sc.GlyphStyle = vgdraw.GlyphStyle{
		Color:  c,
		Radius: vg.Points(radius),
		Shape:  vgdraw.CrossGlyph{},
	}
	h.p.Add(sc)
	h.pinExtent()
	return nil
}

// DrawLine implements Renderer.
func (r *PlotRenderer) DrawLine(handle Handle, pts []geometry.Point2D, style LineStyle) error {
	h, ok := handle.(*PlotHandle)
	if !ok {
		return fmt.Errorf("draw line: handle is %T, not a plot handle", handle)
	}
	if style.Suppressed() || len(pts) < 2 {
		return nil
	}

	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}
	ln, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("draw line: %w", err)
	}
	ln.LineStyle.Color = style.rgba()
	width := style.Width
	if width <= 0 {
		width = 1
	}
	ln.LineStyle.Width = vg.Points(width)
	if style.Dashed {
		ln.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	}
	h.p.Add(ln)
	h.pinExtent()
	return nil
}

// Image implements Handle.
func (h *PlotHandle) Image() (image.Image, error) {
	c, err := h.draw()
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// SavePNG implements Handle.
func (h *PlotHandle) SavePNG(path string) error {
	c, err := h.draw()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// draw lays out the plot, with an optional color-bar strip on the right.
func (h *PlotHandle) draw() (*vgimg.Canvas, error) {
	totalWidth := plotWidth
	if h.barRamp != nil {
		totalWidth += colorBarWide
	}
	img := vgimg.New(totalWidth, plotHeight)
	dc := vgdraw.New(img)

	main := vgdraw.Canvas{
		Canvas: dc,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: 0, Y: 0},
			Max: vg.Point{X: plotWidth, Y: plotHeight},
		},
	}
	h.p.Draw(main)

	if h.barRamp != nil {
		barPlot := plot.New()
		barPlot.HideX()
		bar := &plotter.ColorBar{ColorMap: h.barRamp}
		bar.Vertical = true
		barPlot.Add(bar)

		strip := vgdraw.Canvas{
			Canvas: dc,
			Rectangle: vg.Rectangle{
				Min: vg.Point{X: plotWidth, Y: 0},
				Max: vg.Point{X: totalWidth, Y: plotHeight},
			},
		}
		barPlot.Draw(strip)
	}
	return img, nil
}
