package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/dracory/weeviz/shared/errs"
)

// heatmapColors is the number of discrete steps in the heat palette.
const heatmapColors = 64

func buildHeatmap(in input) (*Figure, error) {
	pv, err := pivot(in)
	if err != nil {
		return nil, err
	}

	fig := &Figure{
		Kind:    KindHeatmap,
		Title:   in.spec.title(fmt.Sprintf("Heatmap: %s vs %s", pv.XColumn, pv.RowColumn)),
		XLabel:  pv.XColumn,
		YLabel:  pv.RowColumn,
		Heatmap: pv,
	}

	low, high := pv.bounds()
	if math.IsInf(low, 0) || math.IsInf(high, 0) {
		return nil, fmt.Errorf("%w: %s sums overflow", errs.ErrNonNumericAxis, pv.ValueColumn)
	}
	cm := moreland.ExtendedBlackBody()
	cm.SetMax(high)
	cm.SetMin(low)

	grid := pivotGrid{pv}
	hm := plotter.NewHeatMap(grid, cm.Palette(heatmapColors))
	hm.Min, hm.Max = low, high

	p := newPlot(fig.Title, pv.XColumn, pv.RowColumn, in.spec.ShowGrid)
	p.Add(hm)

	labels, err := cellLabels(grid, low, high)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	p.NominalX(pv.XLabels...)
	p.NominalY(reversed(pv.RowLabels)...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	fig.main = p
	fig.colorBar = newColorBar(cm, pv.ValueColumn)
	return fig, nil
}

// bounds returns the value range, widened when every cell is equal.
func (p *Pivot) bounds() (float64, float64) {
	low, high := math.Inf(1), math.Inf(-1)
	for _, row := range p.Values {
		for _, v := range row {
			low = math.Min(low, v)
			high = math.Max(high, v)
		}
	}
	if high <= low {
		high = low + 1
	}
	return low, high
}

// pivotGrid adapts a Pivot to plotter.GridXYZ. Grid row 0 is the bottom of
// the plot, so pivot rows are flipped to draw the first one on top.
type pivotGrid struct {
	p *Pivot
}

func (g pivotGrid) Dims() (c, r int) {
	return len(g.p.XLabels), len(g.p.RowLabels)
}

func (g pivotGrid) Z(c, r int) float64 {
	return g.p.Values[len(g.p.RowLabels)-1-r][c]
}

func (g pivotGrid) X(c int) float64 {
	return float64(c)
}

func (g pivotGrid) Y(r int) float64 {
	return float64(r)
}

// cellLabels annotates every cell with its value. Dark cells get white text.
func cellLabels(g pivotGrid, low, high float64) (*plotter.Labels, error) {
	cols, rows := g.Dims()

	data := plotter.XYLabels{}
	values := []float64{}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := g.Z(c, r)
			data.XYs = append(data.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			data.Labels = append(data.Labels, fmt.Sprintf("%.1f", z))
			values = append(values, z)
		}
	}

	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(7)
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
		if (values[i]-low)/(high-low) < 0.5 {
			labels.TextStyle[i].Color = color.White
		}
	}
	return labels, nil
}

func newColorBar(cm palette.ColorMap, label string) *plot.Plot {
	p := newPlot("", "", label, false)
	p.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: heatmapColors})
	p.HideX()
	p.Y.Padding = 0
	return p
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
