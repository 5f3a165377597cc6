package table_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dracory/weeviz/shared/table"
)

func TestNew_NormalizesBytes(t *testing.T) {
	r := table.New([]string{"a", "b"}, [][]any{{[]byte("x"), int64(1)}})

	assert.Equal(t, "x", r.Value(0, 0))
	assert.Equal(t, 2, r.NumColumns())
	assert.Equal(t, 1, r.NumRows())
	assert.False(t, r.Empty())
}

func TestNilResult(t *testing.T) {
	var r *table.Result

	assert.True(t, r.Empty())
	assert.Nil(t, r.Columns())
	assert.Equal(t, -1, r.ColumnIndex("a"))
}

func TestIsCategorical(t *testing.T) {
	r := table.New(
		[]string{"num", "text", "mixed", "nulls"},
		[][]any{
			{int64(1), "a", 1.5, nil},
			{2.5, "b", "x", nil},
			{nil, nil, nil, nil},
		},
	)

	assert.False(t, r.IsCategorical(0))
	assert.True(t, r.IsCategorical(1))
	assert.True(t, r.IsCategorical(2))
	assert.True(t, r.IsCategorical(3))
	assert.Equal(t, []string{"text", "mixed", "nulls"}, r.CategoricalColumns())
}

func TestFloats(t *testing.T) {
	r := table.New([]string{"v"}, [][]any{{int64(2)}, {" 3.5 "}, {"abc"}, {nil}, {true}})

	fs, valid := r.Floats(0)
	assert.Equal(t, 3, valid)
	assert.Equal(t, 2.0, fs[0])
	assert.Equal(t, 3.5, fs[1])
	assert.True(t, math.IsNaN(fs[2]))
	assert.True(t, math.IsNaN(fs[3]))
	assert.Equal(t, 1.0, fs[4])
}

func TestFloats_Infinite(t *testing.T) {
	r := table.New([]string{"v"}, [][]any{{math.Inf(1)}, {"-Inf"}, {" inf "}, {4.0}})

	fs, valid := r.Floats(0)
	assert.Equal(t, 1, valid)
	assert.True(t, math.IsNaN(fs[0]))
	assert.True(t, math.IsNaN(fs[1]))
	assert.True(t, math.IsNaN(fs[2]))
	assert.Equal(t, 4.0, fs[3])

	_, ok := table.ToFloat(math.Inf(-1))
	assert.False(t, ok)
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "", table.FormatValue(nil))
	assert.Equal(t, "NULL", table.DisplayValue(nil))
	assert.Equal(t, "1.25", table.FormatValue(1.25))
	assert.Equal(t, "42", table.FormatValue(int64(42)))
	assert.Equal(t, "true", table.FormatValue(true))
	assert.Equal(t, "2024-01-02T03:04:05Z", table.FormatValue(ts))
	assert.Equal(t, "7", table.FormatValue(7))
}
