package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

func buildBar(in input) (*Figure, error) {
	columns := in.result.Columns()
	xName, yName := columns[in.xIdx], columns[in.yIdx]

	bars := groupBars(in)
	fig := &Figure{
		Kind:   KindBar,
		Title:  in.spec.title(fmt.Sprintf("%s and %s", xName, yName)),
		XLabel: xName,
		YLabel: yName,
		Bars:   bars,
	}

	p := newPlot(fig.Title, xName, yName, in.spec.ShowGrid)
	colors := sampleColors(len(bars))
	width := barWidth(len(bars))

	for i, b := range bars {
		bc, err := plotter.NewBarChart(plotter.Values{b.Value}, width)
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", b.Label, err)
		}
		bc.XMin = float64(i)
		bc.Color = colors[i]
		bc.LineStyle.Width = 0
		p.Add(bc)
	}

	if in.spec.ShowLabels && len(bars) > 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs: lo.Map(bars, func(b Bar, i int) plotter.XY {
				return plotter.XY{X: float64(i), Y: b.Value}
			}),
			Labels: lo.Map(bars, func(b Bar, _ int) string {
				return fmt.Sprintf("%.2f", b.Value)
			}),
		})
		if err != nil {
			return nil, err
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Font.Size = vg.Points(7)
			labels.TextStyle[i].XAlign = text.XCenter
		}
		labels.Offset = vg.Point{Y: vg.Points(3)}
		p.Add(labels)
	}

	p.NominalX(lo.Map(bars, func(b Bar, _ int) string { return b.Label })...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	fig.main = p
	return fig, nil
}

// barWidth shrinks bars as their number grows so they never overlap.
func barWidth(n int) vg.Length {
	if n <= 0 {
		return vg.Points(20)
	}
	w := float64(figureWidth.Points()) * 0.6 / float64(n)
	return vg.Points(math.Max(2, math.Min(40, w)))
}

// sampleColors spreads n colours over the perceptually uniform part of the
// Kindlmann map.
func sampleColors(n int) []color.Color {
	cm := moreland.Kindlmann()
	cm.SetMax(1)
	cm.SetMin(0)

	out := make([]color.Color, n)
	for i := range out {
		t := 0.5
		if n > 1 {
			t = 0.15 + 0.75*float64(i)/float64(n-1)
		}
		c, err := cm.At(t)
		if err != nil {
			c = color.Gray{Y: 128}
		}
		out[i] = c
	}
	return out
}
