package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"driftscope/internal/spectrogram"
	"driftscope/pkg/colorutil"
	"driftscope/pkg/geometry"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// QuicklookRenderer draws directly into a raster image, one pixel per
// spectrogram cell before zooming. It backs the interactive viewer, where
// gonum/plot's layout pass is too slow for per-selection redraws.
type QuicklookRenderer struct {
	Ramp   *colorutil.Ramp
	Zoom   int     // Output pixels per cell (minimum 1)
	Smooth float64 // Gaussian blur radius in cells, 0 = off
}

// NewQuicklookRenderer returns a quicklook renderer with the viridis ramp
// and 4x zoom.
func NewQuicklookRenderer() *QuicklookRenderer {
	return &QuicklookRenderer{Ramp: colorutil.Viridis(), Zoom: 4}
}

// imageHandle accumulates quicklook draw calls in cell coordinates; zoom,
// flip and smoothing are applied when the image is realized.
type imageHandle struct {
	base   *image.RGBA
	extent geometry.Region
	title  string
	flip   bool
	zoom   int
	smooth float64
}

// Heatmap implements Renderer.
func (r *QuicklookRenderer) Heatmap(v *spectrogram.View, opts HeatmapOptions) (Handle, error) {
	ramp := opts.Ramp
	if ramp == nil {
		ramp = r.Ramp
	}
	if ramp == nil {
		ramp = colorutil.Viridis()
	}

	extent := v.Requested
	w := extent.Channels.Count()
	ht := extent.Times.Count()
	scale := spectrogram.NewDisplayScale(v)

	base := image.NewRGBA(image.Rect(0, 0, w, ht))
	for t := 0; t < ht; t++ {
		for ch := 0; ch < w; ch++ {
			absCh := extent.Channels.Lo + ch
			absT := extent.Times.Lo + t
			// Padding outside the matrix paints at the ramp floor, not
			// as a normalized raw zero.
			u := 0.0
			if v.Clipped.Contains(geometry.NewPoint(absCh, absT)) {
				u = scale.Normalize(v.At(absCh, absT))
			}
			base.SetRGBA(ch, t, toRGBA(ramp.RGBA(u)))
		}
	}

	zoom := r.Zoom
	if zoom < 1 {
		zoom = 1
	}
	return &imageHandle{
		base:   base,
		extent: extent,
		title:  opts.Title,
		flip:   opts.FlipTime,
		zoom:   zoom,
		smooth: r.Smooth,
	}, nil
}

// MarkPoints implements Renderer.
func (r *QuicklookRenderer) MarkPoints(handle Handle, pts []geometry.Point2D, style MarkerStyle) error {
	h, ok := handle.(*imageHandle)
	if !ok {
		return fmt.Errorf("mark points: handle is %T, not a quicklook handle", handle)
	}
	c := style.Color
	if c == nil {
		c = colorutil.Red
	}
	arm := int(style.Radius)
	if arm < 1 {
		arm = 1
	}
	for _, pt := range pts {
		x, y := h.cell(pt)
		for d := -arm; d <= arm; d++ {
			setIfInside(h.base, x+d, y, c)
			setIfInside(h.base, x, y+d, c)
		}
	}
	return nil
}

// DrawLine implements Renderer.
func (r *QuicklookRenderer) DrawLine(handle Handle, pts []geometry.Point2D, style LineStyle) error {
	h, ok := handle.(*imageHandle)
	if !ok {
		return fmt.Errorf("draw line: handle is %T, not a quicklook handle", handle)
	}
	if style.Suppressed() || len(pts) < 2 {
		return nil
	}
	c := style.rgba()
	for i := 0; i < len(pts)-1; i++ {
		x0, y0 := h.cell(pts[i])
		x1, y1 := h.cell(pts[i+1])
		drawSegment(h.base, x0, y0, x1, y1, c)
	}
	return nil
}

// cell maps overlay coordinates (channel, time) to base-image pixels.
func (h *imageHandle) cell(pt geometry.Point2D) (x, y int) {
	x = int(pt.X+0.5) - h.extent.Channels.Lo
	y = int(pt.Y+0.5) - h.extent.Times.Lo
	return x, y
}

// Image implements Handle.
func (h *imageHandle) Image() (image.Image, error) {
	var out image.Image = h.base

	if h.smooth > 0 {
		out = blur.Gaussian(out, h.smooth)
	}
	if !h.flip {
		// The base raster already runs time-downward; flip back for
		// callers that asked for time-upward display.
		out = imaging.FlipV(out)
	}
	if h.zoom > 1 {
		b := out.Bounds()
		out = imaging.Resize(out, b.Dx()*h.zoom, b.Dy()*h.zoom, imaging.NearestNeighbor)
	}
	if h.title != "" {
		out = withTitle(out, h.title)
	}
	return out, nil
}

// SavePNG implements Handle.
func (h *imageHandle) SavePNG(path string) error {
	img, err := h.Image()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save quicklook: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("save quicklook: %w", err)
	}
	return nil
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func setIfInside(img *image.RGBA, x, y int, c color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

// drawSegment draws a 1px Bresenham line between two cells.
func drawSegment(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setIfInside(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// withTitle stamps the title into the top-left corner.
func withTitle(img image.Image, title string) image.Image {
	out := imaging.Clone(img)
	d := font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(colorutil.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 14),
	}
	d.DrawString(title)
	return out
}
