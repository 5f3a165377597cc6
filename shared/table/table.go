// Package table holds the in-memory tabular value produced by a query:
// ordered column names and rows of independently typed positional values.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Result is a materialized query result. It is never mutated after New
// returns; a new execution produces a new Result.
type Result struct {
	columns []string
	rows    [][]any
}

// New builds a Result. Byte slices are converted to strings so that every
// cell is one of nil, bool, an integer, a float, string or time.Time.
func New(columns []string, rows [][]any) *Result {
	cols := make([]string, len(columns))
	copy(cols, columns)

	out := make([][]any, len(rows))
	for i, row := range rows {
		r := make([]any, len(cols))
		for j := range r {
			if j < len(row) {
				r[j] = Normalize(row[j])
			}
		}
		out[i] = r
	}

	return &Result{columns: cols, rows: out}
}

// Columns returns the column names in projection order.
func (r *Result) Columns() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Rows returns the rows. Callers must treat them as read-only.
func (r *Result) Rows() [][]any {
	if r == nil {
		return nil
	}
	return r.rows
}

// NumRows returns the number of rows.
func (r *Result) NumRows() int {
	if r == nil {
		return 0
	}
	return len(r.rows)
}

// NumColumns returns the number of columns.
func (r *Result) NumColumns() int {
	if r == nil {
		return 0
	}
	return len(r.columns)
}

// Empty reports whether there is nothing to chart or export.
func (r *Result) Empty() bool {
	return r.NumRows() == 0
}

// ColumnIndex returns the position of the named column or -1.
func (r *Result) ColumnIndex(name string) int {
	if r == nil {
		return -1
	}
	return lo.IndexOf(r.columns, name)
}

// Value returns the cell at row i, column j.
func (r *Result) Value(i, j int) any {
	return r.rows[i][j]
}

// IsCategorical reports whether column j holds discrete labels rather than
// quantities: it has at least one non-numeric value, or no values at all.
func (r *Result) IsCategorical(j int) bool {
	seen := false
	for _, row := range r.rows {
		v := row[j]
		if v == nil {
			continue
		}
		seen = true
		if !IsNumeric(v) {
			return true
		}
	}
	return !seen
}

// CategoricalColumns returns the names of all categorical columns in order.
func (r *Result) CategoricalColumns() []string {
	if r == nil {
		return nil
	}
	out := []string{}
	for j, name := range r.columns {
		if r.IsCategorical(j) {
			out = append(out, name)
		}
	}
	return out
}

// Floats coerces column j to float64. Values that cannot be coerced become
// NaN. The second return value counts the values that did coerce.
func (r *Result) Floats(j int) ([]float64, int) {
	out := make([]float64, len(r.rows))
	valid := 0
	for i, row := range r.rows {
		f, ok := ToFloat(row[j])
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = f
		valid++
	}
	return out, valid
}

// Normalize converts driver values into the cell types a Result holds.
func Normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	default:
		return v
	}
}

// IsNumeric reports whether v is a number.
func IsNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, bool:
		return true
	}
	return false
}

// ToFloat coerces a cell to float64. Numeric strings are parsed; nil, NaN,
// infinities and anything else fail.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case float32:
		f = float64(t)
	case float64:
		f = t
	case bool:
		if t {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatValue renders a cell as text for flat-file export. nil is empty.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// DisplayValue renders a cell for a grid. nil is shown as NULL.
func DisplayValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return FormatValue(v)
}
