package export_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dracory/weeviz/shared/chart"
	"github.com/dracory/weeviz/shared/errs"
	"github.com/dracory/weeviz/shared/export"
	"github.com/dracory/weeviz/shared/table"
)

func sampleResult() *table.Result {
	return table.New(
		[]string{"name", "qty", "note"},
		[][]any{
			{"apple", int64(3), nil},
			{"pear", 1.5, "ripe, sweet"},
		},
	)
}

func TestExportTable_CSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, export.ExportTable(sampleResult(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "qty", "note"},
		{"apple", "3", ""},
		{"pear", "1.5", "ripe, sweet"},
	}, records)
}

func TestWriteTable_JSONKeepsColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteTable(&buf, sampleResult(), export.FormatJSON))

	expected := `[
    {
        "name": "apple",
        "qty": 3,
        "note": null
    },
    {
        "name": "pear",
        "qty": 1.5,
        "note": "ripe, sweet"
    }
]
`
	assert.Equal(t, expected, buf.String())
}

func TestExportTable_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, export.ExportTable(sampleResult(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "qty", "note"}, rows[0])
	assert.Equal(t, "apple", rows[1][0])
	assert.Equal(t, "3", rows[1][1])
}

func TestExportTable_Errors(t *testing.T) {
	dir := t.TempDir()

	err := export.ExportTable(table.New([]string{"a"}, nil), filepath.Join(dir, "x.csv"))
	assert.ErrorIs(t, err, errs.ErrNoData)

	err = export.ExportTable(sampleResult(), filepath.Join(dir, "x.txt"))
	assert.ErrorIs(t, err, errs.ErrUnsupportedFormat)

	err = export.ExportTable(sampleResult(), filepath.Join(dir, "missing", "x.csv"))
	assert.ErrorIs(t, err, errs.ErrIO)
}

func TestExportTable_BlankPathIsCancel(t *testing.T) {
	assert.NoError(t, export.ExportTable(sampleResult(), "  "))
}

func TestExportFigure(t *testing.T) {
	result := table.New(
		[]string{"cat", "val"},
		[][]any{{"A", int64(1)}, {"B", int64(2)}},
	)
	fig, err := chart.Build(result, chart.Spec{X: "cat", Y: "val"})
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"chart.png", "chart.pdf", "chart.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, export.ExportFigure(fig, path, 72), name)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	err = export.ExportFigure(fig, filepath.Join(dir, "chart.gif"), 0)
	assert.ErrorIs(t, err, errs.ErrUnsupportedFormat)

	err = export.ExportFigure(nil, filepath.Join(dir, "chart.png"), 0)
	assert.ErrorIs(t, err, errs.ErrNoFigure)
}
