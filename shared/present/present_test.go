package present_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/present"
	"github.com/dracory/weeviz/shared/table"
)

func TestPresent(t *testing.T) {
	result := table.New([]string{"a", "b"}, [][]any{{int64(1), nil}, {"x", 2.5}})

	grid := present.Present(result, constants.GridColumnWidthCells)
	assert.False(t, grid.Empty())
	assert.Equal(t, []string{"a", "b"}, grid.Columns)
	assert.Equal(t, [][]string{{"1", "NULL"}, {"x", "2.5"}}, grid.Rows)
	assert.Equal(t, constants.GridColumnWidthCells, grid.ColumnWidth)
}

func TestPresent_Placeholder(t *testing.T) {
	grid := present.Present(table.New([]string{"a"}, nil), 0)

	assert.True(t, grid.Empty())
	assert.Equal(t, constants.NoDataPlaceholder, grid.Placeholder)
	assert.Equal(t, constants.GridColumnWidthPx, grid.ColumnWidth)
	assert.Empty(t, grid.Rows)
}

func TestPublishColumns(t *testing.T) {
	axes := present.PublishColumns(table.New([]string{"x", "y", "z"}, nil))
	assert.Equal(t, present.Axes{Candidates: []string{"x", "y", "z"}, X: "x", Y: "y"}, axes)

	axes = present.PublishColumns(table.New([]string{"only"}, nil))
	assert.Equal(t, "only", axes.X)
	assert.Equal(t, "", axes.Y)

	axes = present.PublishColumns(nil)
	assert.Empty(t, axes.Candidates)
}
