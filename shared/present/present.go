// Package present turns a query result into toolkit-independent view models:
// a grid for the results pane and the candidate lists for the axis selectors.
package present

import (
	"github.com/samber/lo"

	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/table"
)

// Grid is what a results pane displays. When Placeholder is set the pane
// shows it instead of a grid.
type Grid struct {
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	ColumnWidth int        `json:"column_width"`
	Placeholder string     `json:"placeholder,omitempty"`
}

// Empty reports whether the placeholder replaces the grid.
func (g Grid) Empty() bool {
	return g.Placeholder != ""
}

// Axes holds the axis selector state published after a query.
type Axes struct {
	Candidates []string `json:"candidates"`
	X          string   `json:"x"`
	Y          string   `json:"y"`
}

// Present builds a fresh grid for the result. columnWidth is in the
// surface's own unit (pixels, terminal cells).
func Present(result *table.Result, columnWidth int) Grid {
	if columnWidth <= 0 {
		columnWidth = constants.GridColumnWidthPx
	}
	if result.Empty() {
		return Grid{
			Columns:     []string{},
			Rows:        [][]string{},
			ColumnWidth: columnWidth,
			Placeholder: constants.NoDataPlaceholder,
		}
	}

	rows := lo.Map(result.Rows(), func(row []any, _ int) []string {
		return lo.Map(row, func(v any, _ int) string {
			return table.DisplayValue(v)
		})
	})

	return Grid{
		Columns:     result.Columns(),
		Rows:        rows,
		ColumnWidth: columnWidth,
	}
}

// PublishColumns pre-selects the first column for X and the second, when
// there is one, for Y.
func PublishColumns(result *table.Result) Axes {
	columns := result.Columns()
	if columns == nil {
		columns = []string{}
	}

	axes := Axes{Candidates: columns}
	if len(columns) > 0 {
		axes.X = columns[0]
	}
	if len(columns) > 1 {
		axes.Y = columns[1]
	}
	return axes
}
