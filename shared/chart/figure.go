package chart

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/dracory/weeviz/shared/errs"
)

// Figure size, matching a 7x4 inch page.
const (
	figureWidth      = 7 * vg.Inch
	figureHeight     = 4 * vg.Inch
	colorBarWidth    = 0.9 * vg.Inch
	defaultRasterDPI = 96
	maxRasterDPI     = 600
)

// Output formats understood by WriteTo.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
)

// Figure is a rendered chart. The exported fields summarize what was drawn
// so that text surfaces and tests can inspect it without decoding an image.
type Figure struct {
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	XLabel     string   `json:"x_label"`
	YLabel     string   `json:"y_label"`
	Bars       []Bar    `json:"bars,omitempty"`
	Heatmap    *Pivot   `json:"heatmap,omitempty"`
	Points     []Point  `json:"points,omitempty"`
	Categories []string `json:"categories,omitempty"`

	main     *plot.Plot
	colorBar *plot.Plot
}

// Draw renders the figure onto c. A heatmap's colour bar takes a strip on
// the right edge.
func (f *Figure) Draw(c draw.Canvas) {
	if f.colorBar == nil {
		f.main.Draw(c)
		return
	}

	f.main.Draw(draw.Crop(c, 0, -colorBarWidth, 0, 0))
	width := c.Rectangle.Size().X
	f.colorBar.Draw(draw.Crop(c, width-colorBarWidth, 0, 0, 0))
}

// WriteTo encodes the figure in the given format. dpi only affects raster
// formats; zero selects the screen default and values above 600 are capped.
func (f *Figure) WriteTo(w io.Writer, format string, dpi int) (int64, error) {
	if f == nil || f.main == nil {
		return 0, errs.ErrNoFigure
	}
	if dpi <= 0 {
		dpi = defaultRasterDPI
	}
	dpi = min(dpi, maxRasterDPI)

	var canvas interface {
		vg.CanvasSizer
		io.WriterTo
	}

	switch NormalizeFormat(format) {
	case FormatPNG:
		canvas = vgimg.PngCanvas{Canvas: newRaster(dpi)}
	case FormatJPEG:
		canvas = vgimg.JpegCanvas{Canvas: newRaster(dpi)}
	case FormatPDF:
		canvas = vgpdf.New(figureWidth, figureHeight)
	case FormatSVG:
		canvas = vgsvg.New(figureWidth, figureHeight)
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedFormat, format)
	}

	f.Draw(draw.New(canvas))
	return canvas.WriteTo(w)
}

// NormalizeFormat maps a format name or file extension onto a Format
// constant. Unknown names are returned lower-cased and unchanged.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch format {
	case "jpg":
		return FormatJPEG
	case "":
		return FormatPNG
	}
	return format
}

// Summary describes the figure as plain text lines.
func (f *Figure) Summary() []string {
	if f == nil {
		return nil
	}

	lines := []string{f.Title}
	switch {
	case len(f.Bars) > 0:
		for _, b := range f.Bars {
			lines = append(lines, fmt.Sprintf("%s: %.2f", b.Label, b.Value))
		}
	case f.Heatmap != nil:
		lines = append(lines, fmt.Sprintf("%s \\ %s: %s", f.Heatmap.RowColumn, f.Heatmap.XColumn, strings.Join(f.Heatmap.XLabels, ", ")))
		for r, label := range f.Heatmap.RowLabels {
			cells := make([]string, len(f.Heatmap.XLabels))
			for c := range cells {
				cells[c] = fmt.Sprintf("%.1f", f.Heatmap.Values[r][c])
			}
			lines = append(lines, fmt.Sprintf("%s: %s", label, strings.Join(cells, ", ")))
		}
	default:
		for _, p := range f.Points {
			x := fmt.Sprintf("%g", p.X)
			if p.Label != "" {
				x = p.Label
			}
			lines = append(lines, fmt.Sprintf("(%s, %g)", x, p.Y))
		}
	}
	return lines
}

// newPlot returns a plot with the shared title and axis styling.
func newPlot(title, xLabel, yLabel string, showGrid bool) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(11)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(9)
	p.Y.Label.TextStyle.Font.Size = vg.Points(9)
	p.X.Tick.Label.Font.Size = vg.Points(8)
	p.Y.Tick.Label.Font.Size = vg.Points(8)
	if showGrid {
		p.Add(plotter.NewGrid())
	}
	return p
}

func newRaster(dpi int) *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(figureWidth, figureHeight),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
}
