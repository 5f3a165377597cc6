package chart

import (
	"fmt"
	"image/color"

	"github.com/samber/lo"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// buildPoints draws a line or scatter plot of the raw rows.
func buildPoints(in input) (*Figure, error) {
	columns := in.result.Columns()
	xName, yName := columns[in.xIdx], columns[in.yIdx]

	pts, categories := points(in)
	fig := &Figure{
		Kind:       in.spec.Kind,
		Title:      in.spec.title(fmt.Sprintf("%s Chart: %s vs %s", in.spec.Kind, xName, yName)),
		XLabel:     xName,
		YLabel:     yName,
		Points:     pts,
		Categories: categories,
	}

	p := newPlot(fig.Title, xName, yName, in.spec.ShowGrid)
	if len(pts) == 0 {
		fig.main = p
		return fig, nil
	}

	xys := lo.Map(pts, func(pt Point, _ int) plotter.XY {
		return plotter.XY{X: pt.X, Y: pt.Y}
	})

	if in.spec.Kind == KindLine {
		line, err := plotter.NewLine(plotter.XYs(xys))
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
		p.Add(line)
	}

	scatter, err := plotter.NewScatter(plotter.XYs(xys))
	if err != nil {
		return nil, err
	}
	colors := sampleColors(len(pts))
	radius := vg.Points(in.spec.markerSize())
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  colors[i],
			Radius: radius,
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	if len(categories) > 0 {
		p.NominalX(categories...)
	}

	fig.main = p
	return fig, nil
}
