package api_database_open_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracory/weeviz/api/api_database_open"
	"github.com/dracory/weeviz/internal/testutil"
	"github.com/dracory/weeviz/shared/session"
)

func TestDatabaseOpen(t *testing.T) {
	t.Run("opens and lists tables", func(t *testing.T) {
		sess := session.New()
		defer sess.Close()

		w := testutil.PostForm(api_database_open.New(sess), url.Values{"path": {testutil.NewSeatsDB(t)}})
		require.Equal(t, http.StatusOK, w.Code)

		resp := testutil.DecodeResponse(t, w.Body.Bytes())
		require.Equal(t, "success", resp.Status, resp.Message)
		assert.Equal(t, "sqlite", resp.Data["driver"])
		assert.Equal(t, []any{"aircrafts", "seats"}, resp.Data["tables"])

		_, err := sess.Connection()
		assert.NoError(t, err)
	})

	t.Run("blank path is a cancelled dialog", func(t *testing.T) {
		sess := session.New()

		w := testutil.PostForm(api_database_open.New(sess), url.Values{"path": {"  "}})

		resp := testutil.DecodeResponse(t, w.Body.Bytes())
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, true, resp.Data["cancelled"])

		_, err := sess.Connection()
		assert.Error(t, err)
	})

	t.Run("missing file keeps the current database", func(t *testing.T) {
		sess := testutil.NewSeatsSession(t, "")
		before, _ := sess.Connection()

		w := testutil.PostForm(api_database_open.New(sess), url.Values{"path": {filepath.Join(t.TempDir(), "nope.db")}})

		resp := testutil.DecodeResponse(t, w.Body.Bytes())
		assert.Equal(t, "error", resp.Status)
		assert.Contains(t, resp.Message, "failed to open database")

		after, err := sess.Connection()
		require.NoError(t, err)
		assert.Same(t, before, after)
	})

	t.Run("unsupported HTTP method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		api_database_open.New(session.New()).ServeHTTP(w, req)

		resp := testutil.DecodeResponse(t, w.Body.Bytes())
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "open must be POST", resp.Message)
	})
}
