package api_sql_execute_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracory/weeviz/api/api_sql_execute"
	"github.com/dracory/weeviz/internal/testutil"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/session"
)

func TestSQLExecute(t *testing.T) {
	t.Run("select returns grid and axes", func(t *testing.T) {
		sess := testutil.NewSeatsSession(t, "")
		w := testutil.PostForm(api_sql_execute.New(sess), url.Values{"sql": {constants.DefaultQuery}})

		resp := testutil.DecodeResponse(t, w.Body.Bytes())
		require.Equal(t, "success", resp.Status, resp.Message)
		assert.Equal(t, float64(5), resp.Data["row_count"])

		grid := resp.Data["grid"].(map[string]any)
		assert.Equal(t, []any{"aircraft_code", "fare_conditions", "count(seat_no)"}, grid["columns"])
		assert.Equal(t, float64(constants.GridColumnWidthPx), grid["column_width"])
		assert.Len(t, grid["rows"], 5)

		axes := resp.Data["axes"].(map[string]any)
		assert.Equal(t, "aircraft_code", axes["x"])
		assert.Equal(t, "fare_conditions", axes["y"])

		assert.Equal(t, 5, sess.Result().NumRows())
	})

	t.Run("zero rows shows the placeholder", func(t *testing.T) {
		sess := testutil.NewSeatsSession(t, "")
		w := testutil.PostForm(api_sql_execute.New(sess), url.Values{"sql": {"select * from seats where 1 = 0"}})

		resp := testutil.DecodeResponse(t, w.Body.Bytes())
		require.Equal(t, "success", resp.Status, resp.Message)
		grid := resp.Data["grid"].(map[string]any)
		assert.Equal(t, constants.NoDataPlaceholder, grid["placeholder"])
	})

	t.Run("engine error keeps the previous result", func(t *testing.T) {
		sess := testutil.NewSeatsSession(t, "select * from aircrafts")
		before := sess.Result()

		w := testutil.PostForm(api_sql_execute.New(sess), url.Values{"sql": {"select * from nowhere"}})

		resp := testutil.DecodeResponse(t, w.Body.Bytes())
		assert.Equal(t, "error", resp.Status)
		assert.Contains(t, resp.Message, "sql execution failed")
		assert.Same(t, before, sess.Result())
	})

	t.Run("blank statement", func(t *testing.T) {
		w := testutil.PostForm(api_sql_execute.New(testutil.NewSeatsSession(t, "")), url.Values{"sql": {" "}})
		resp := testutil.DecodeResponse(t, w.Body.Bytes())
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "enter a valid SQL query", resp.Message)
	})

	t.Run("database not connected", func(t *testing.T) {
		w := testutil.PostForm(api_sql_execute.New(session.New()), url.Values{"sql": {"select 1"}})
		resp := testutil.DecodeResponse(t, w.Body.Bytes())
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "load a database first", resp.Message)
	})
}
