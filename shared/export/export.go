// Package export writes a query result or a figure to a file chosen by the
// user. The file extension selects the encoder.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/dracory/weeviz/shared/chart"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/errs"
	"github.com/dracory/weeviz/shared/table"
)

// Table formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// SheetName is the only worksheet of an xlsx export.
const SheetName = "Sheet1"

// TableFormats lists the result formats offered by save dialogs.
var TableFormats = []string{FormatCSV, FormatJSON, FormatXLSX}

// FigureFormats lists the chart formats offered by save dialogs.
var FigureFormats = []string{chart.FormatPNG, chart.FormatPDF, chart.FormatSVG}

// FormatOf returns the lower-cased extension of path without the dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ExportTable saves the result to path. A blank path is a cancelled save
// and writes nothing.
func ExportTable(result *table.Result, path string) error {
	if result.Empty() {
		return errs.ErrNoData
	}
	if strings.TrimSpace(path) == "" {
		return nil
	}

	format := FormatOf(path)
	if !lo.Contains(TableFormats, format) {
		return fmt.Errorf("%w: %q", errs.ErrUnsupportedFormat, filepath.Ext(path))
	}

	return writeFile(path, func(w io.Writer) error {
		return WriteTable(w, result, format)
	})
}

// WriteTable encodes the result in the given format.
func WriteTable(w io.Writer, result *table.Result, format string) error {
	if result.Empty() {
		return errs.ErrNoData
	}

	switch strings.ToLower(format) {
	case FormatCSV:
		return writeCSV(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	case FormatXLSX:
		return writeXLSX(w, result)
	}
	return fmt.Errorf("%w: %q", errs.ErrUnsupportedFormat, format)
}

// ExportFigure saves the figure to path. Raster output uses dpi, or the
// default chart resolution when dpi is zero. A blank path is a cancelled
// save.
func ExportFigure(fig *chart.Figure, path string, dpi int) error {
	if fig == nil {
		return errs.ErrNoFigure
	}
	if strings.TrimSpace(path) == "" {
		return nil
	}

	format := FormatOf(path)
	if !lo.Contains(FigureFormats, format) {
		return fmt.Errorf("%w: %q", errs.ErrUnsupportedFormat, filepath.Ext(path))
	}
	if dpi <= 0 {
		dpi = constants.DefaultChartDPI
	}

	return writeFile(path, func(w io.Writer) error {
		_, err := fig.WriteTo(w, format, dpi)
		return err
	})
}

// writeFile encodes into memory first so a failed encoding leaves no
// partial file behind.
func writeFile(path string, encode func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	return nil
}

func writeCSV(w io.Writer, result *table.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(result.Columns()); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	for _, row := range result.Rows() {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = table.FormatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrIO, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	return nil
}

// writeJSON writes an array of records with keys in column order.
func writeJSON(w io.Writer, result *table.Result) error {
	columns := result.Columns()

	var raw bytes.Buffer
	raw.WriteByte('[')
	for i, row := range result.Rows() {
		if i > 0 {
			raw.WriteByte(',')
		}
		raw.WriteByte('{')
		for j, name := range columns {
			if j > 0 {
				raw.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return err
			}
			value, err := json.Marshal(jsonValue(row[j]))
			if err != nil {
				return fmt.Errorf("column %s: %w", name, err)
			}
			raw.Write(key)
			raw.WriteByte(':')
			raw.Write(value)
		}
		raw.WriteByte('}')
	}
	raw.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, raw.Bytes(), "", "    "); err != nil {
		return err
	}
	out.WriteByte('\n')

	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	return nil
}

// jsonValue maps values JSON cannot represent to null.
func jsonValue(v any) any {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil
		}
	}
	return v
}

func writeXLSX(w io.Writer, result *table.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	header := lo.ToAnySlice(result.Columns())
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, row := range result.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		copy(values, row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	return nil
}
