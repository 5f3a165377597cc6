package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/dracory/weeviz/shared/errs"
	"github.com/dracory/weeviz/shared/table"
)

// labelSep joins multi-column group keys into one tick label.
const labelSep = " / "

// Build validates the request against the result and renders a new figure.
// It has no side effects; on error nothing is produced.
func Build(result *table.Result, spec Spec) (*Figure, error) {
	if result.Empty() {
		return nil, errs.ErrNoData
	}
	if strings.TrimSpace(spec.X) == "" || strings.TrimSpace(spec.Y) == "" {
		return nil, errs.ErrAxisNotSelected
	}

	xIdx := result.ColumnIndex(spec.X)
	yIdx := result.ColumnIndex(spec.Y)
	if xIdx < 0 || yIdx < 0 {
		return nil, fmt.Errorf("%w: unknown column", errs.ErrAxisNotSelected)
	}

	ys, valid := result.Floats(yIdx)
	if valid == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNonNumericAxis, spec.Y)
	}

	kind := spec.Kind
	if kind == "" {
		kind = KindBar
	}

	in := input{
		result: result,
		spec:   spec,
		xIdx:   xIdx,
		yIdx:   yIdx,
		ys:     ys,
	}

	switch kind {
	case KindBar:
		return buildBar(in)
	case KindHeatmap:
		return buildHeatmap(in)
	case KindLine, KindScatter:
		in.spec.Kind = kind
		return buildPoints(in)
	default:
		return nil, fmt.Errorf("unsupported chart type: %q", kind)
	}
}

// input carries the validated request through the builders.
type input struct {
	result *table.Result
	spec   Spec
	xIdx   int
	yIdx   int
	ys     []float64
}

// groupColumns returns X followed by every other categorical column. The Y
// column is excluded because it has been coerced to numbers.
func (in input) groupColumns() []int {
	cols := []int{in.xIdx}
	for j := 0; j < in.result.NumColumns(); j++ {
		if j == in.xIdx || j == in.yIdx {
			continue
		}
		if in.result.IsCategorical(j) {
			cols = append(cols, j)
		}
	}
	return cols
}

// keyOf renders the categorical key of row i for the given columns.
func (in input) keyOf(i int, cols []int) []string {
	return lo.Map(cols, func(j int, _ int) string {
		return table.DisplayValue(in.result.Value(i, j))
	})
}

// Bar is one bar of a grouped bar chart.
type Bar struct {
	Keys  []string `json:"keys"`
	Label string   `json:"label"`
	Value float64  `json:"value"`
}

// groupBars sums Y within each group and sorts by key, then by sum.
func groupBars(in input) []Bar {
	cols := in.groupColumns()

	index := map[string]int{}
	bars := []Bar{}
	for i := 0; i < in.result.NumRows(); i++ {
		keys := in.keyOf(i, cols)
		id := strings.Join(keys, "\x00")
		pos, ok := index[id]
		if !ok {
			pos = len(bars)
			index[id] = pos
			bars = append(bars, Bar{Keys: keys, Label: strings.Join(keys, labelSep)})
		}
		if !math.IsNaN(in.ys[i]) {
			bars[pos].Value += in.ys[i]
		}
	}

	sort.SliceStable(bars, func(a, b int) bool {
		if c := compareKeys(bars[a].Keys, bars[b].Keys); c != 0 {
			return c < 0
		}
		return bars[a].Value < bars[b].Value
	})
	return bars
}

func compareKeys(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// Pivot is a 2-D grid of summed values indexed by two categorical columns.
// Values is indexed [row][column]; row 0 is drawn at the top.
type Pivot struct {
	XColumn     string      `json:"x_column"`
	RowColumn   string      `json:"row_column"`
	ValueColumn string      `json:"value_column"`
	XLabels     []string    `json:"x_labels"`
	RowLabels   []string    `json:"row_labels"`
	Values      [][]float64 `json:"values"`
}

// Cell returns the value for an (x, row) pair, zero when absent.
func (p *Pivot) Cell(x, row string) float64 {
	c := lo.IndexOf(p.XLabels, x)
	r := lo.IndexOf(p.RowLabels, row)
	if c < 0 || r < 0 {
		return 0
	}
	return p.Values[r][c]
}

// pivot sums Y over (X, second categorical) pairs and fills gaps with zero.
func pivot(in input) (*Pivot, error) {
	cols := in.groupColumns()
	if len(cols) < 2 {
		return nil, errs.ErrInsufficientCategories
	}
	rowIdx := cols[1]

	xs := make([]string, in.result.NumRows())
	rs := make([]string, in.result.NumRows())
	for i := range xs {
		xs[i] = table.DisplayValue(in.result.Value(i, in.xIdx))
		rs[i] = table.DisplayValue(in.result.Value(i, rowIdx))
	}

	xLabels := lo.Uniq(xs)
	rowLabels := lo.Uniq(rs)
	sort.Strings(xLabels)
	sort.Strings(rowLabels)

	values := make([][]float64, len(rowLabels))
	for r := range values {
		values[r] = make([]float64, len(xLabels))
	}
	for i := range xs {
		if math.IsNaN(in.ys[i]) {
			continue
		}
		r := lo.IndexOf(rowLabels, rs[i])
		c := lo.IndexOf(xLabels, xs[i])
		values[r][c] += in.ys[i]
	}

	columns := in.result.Columns()
	return &Pivot{
		XColumn:     columns[in.xIdx],
		RowColumn:   columns[rowIdx],
		ValueColumn: columns[in.yIdx],
		XLabels:     xLabels,
		RowLabels:   rowLabels,
		Values:      values,
	}, nil
}

// Point is one raw row of a line or scatter plot. Label is set when X is
// categorical and X then holds the category's position.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// points keeps rows in result order and drops those without a plottable
// X or Y. Categorical X values are placed in order of first appearance.
func points(in input) ([]Point, []string) {
	categorical := in.result.IsCategorical(in.xIdx)

	var categories []string
	positions := map[string]int{}
	out := []Point{}
	for i := 0; i < in.result.NumRows(); i++ {
		if math.IsNaN(in.ys[i]) {
			continue
		}
		v := in.result.Value(i, in.xIdx)
		if !categorical {
			x, ok := table.ToFloat(v)
			if !ok {
				continue
			}
			out = append(out, Point{X: x, Y: in.ys[i]})
			continue
		}
		label := table.DisplayValue(v)
		pos, ok := positions[label]
		if !ok {
			pos = len(categories)
			positions[label] = pos
			categories = append(categories, label)
		}
		out = append(out, Point{X: float64(pos), Y: in.ys[i], Label: label})
	}
	return out, categories
}
