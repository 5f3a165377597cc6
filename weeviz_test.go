package weeviz_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracory/weeviz"
	"github.com/dracory/weeviz/internal/testutil"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/types"
)

func newApp(t *testing.T) (*weeviz.WeeViz, http.Handler) {
	t.Helper()
	app := weeviz.New(types.Config{}, weeviz.WithBasePath("/viz"))
	t.Cleanup(func() { app.Close() })
	return app, app.Handler()
}

func do(h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestNew_Defaults(t *testing.T) {
	app := weeviz.New(types.Config{})
	cfg := app.Config()

	assert.Equal(t, "/", cfg.BasePath)
	assert.Equal(t, "action", cfg.ActionParam)
	assert.Equal(t, []string{weeviz.SQLITE}, cfg.EnabledDrivers)
	assert.Equal(t, constants.DefaultChartDPI, cfg.ChartDPI)
	assert.NotNil(t, app.Session())
}

func TestNew_Options(t *testing.T) {
	app := weeviz.New(types.Config{},
		weeviz.WithBasePath("/x"),
		weeviz.WithActionParam("do"),
		weeviz.WithDrivers(weeviz.SQLITE, weeviz.POSTGRES),
		weeviz.WithChartDPI(72),
		weeviz.WithDefaultQuery("select 1"),
	)
	cfg := app.Config()

	assert.Equal(t, "/x", cfg.BasePath)
	assert.Equal(t, "do", cfg.ActionParam)
	assert.Equal(t, []string{"sqlite", "postgres"}, cfg.EnabledDrivers)
	assert.Equal(t, 72, cfg.ChartDPI)
	assert.Equal(t, "select 1", cfg.DefaultQuery)
}

func TestHandler_Routes(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		expectedStatus int
		contains       string
	}{
		{"default is home", "/viz", http.StatusOK, "Load Database"},
		{"home page", "/viz?action=" + constants.ActionHome, http.StatusOK, "Query Execution"},
		{"health", "/viz?action=" + constants.ActionHealthz, http.StatusOK, "ok"},
		{"unknown action", "/viz?action=nonexistent", http.StatusNotFound, "Unknown action: nonexistent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newApp(t)
			rr := do(h, http.MethodGet, tt.url, nil)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.contains)
			assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
		})
	}
}

func TestHandler_ExploreFlow(t *testing.T) {
	app, h := newApp(t)
	dbPath := testutil.NewSeatsDB(t)

	rr := do(h, http.MethodPost, "/viz?action="+constants.ActionApiDatabaseOpen, url.Values{"path": {dbPath}})
	resp := testutil.DecodeResponse(t, rr.Body.Bytes())
	require.Equal(t, "success", resp.Status, resp.Message)

	rr = do(h, http.MethodGet, "/viz?action="+constants.ActionApiTablesList, nil)
	resp = testutil.DecodeResponse(t, rr.Body.Bytes())
	require.Equal(t, "success", resp.Status, resp.Message)
	assert.Equal(t, []any{"aircrafts", "seats"}, resp.Data["tables"])

	rr = do(h, http.MethodPost, "/viz?action="+constants.ActionApiSQLExecute, url.Values{"sql": {constants.DefaultQuery}})
	resp = testutil.DecodeResponse(t, rr.Body.Bytes())
	require.Equal(t, "success", resp.Status, resp.Message)
	assert.EqualValues(t, 5, resp.Data["row_count"])

	rr = do(h, http.MethodPost, "/viz?action="+constants.ActionApiChartGenerate, url.Values{
		"x":    {"aircraft_code"},
		"y":    {"count(seat_no)"},
		"kind": {"Bar"},
	})
	resp = testutil.DecodeResponse(t, rr.Body.Bytes())
	require.Equal(t, "success", resp.Status, resp.Message)

	imageURL, ok := resp.Data["image_url"].(string)
	require.True(t, ok)
	rr = do(h, http.MethodGet, imageURL, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<svg")

	assert.NotNil(t, app.Session().Figure())
}

func TestOpenDatabase(t *testing.T) {
	app, _ := newApp(t)

	require.NoError(t, app.OpenDatabase(t.Context(), weeviz.SQLITE, testutil.NewSeatsDB(t)))
	conn, err := app.Session().Connection()
	require.NoError(t, err)
	assert.Equal(t, weeviz.SQLITE, conn.Driver)

	assert.Error(t, app.OpenDatabase(t.Context(), weeviz.POSTGRES, "host=localhost"))
}
