package api_database_open

import (
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/weeviz/internal/ports"
	"github.com/dracory/weeviz/shared/constants"
)

// apiDatabaseOpenController opens a database and lists its tables
type apiDatabaseOpenController struct {
	explorer ports.Explorer
}

// New creates a new database open handler
func New(explorer ports.Explorer) *apiDatabaseOpenController {
	return &apiDatabaseOpenController{
		explorer: explorer,
	}
}

// ServeHTTP opens the database named by the "path" form value (a file
// path for sqlite, a DSN otherwise) and responds with its tables. A blank
// path is a cancelled file dialog and changes nothing.
func (h *apiDatabaseOpenController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("open must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	driverName := strings.TrimSpace(r.Form.Get("driver"))
	if driverName == "" {
		driverName = constants.DriverSQLite
	}
	path := strings.TrimSpace(r.Form.Get("path"))

	if path == "" {
		api.Respond(w, r, api.SuccessWithData("cancelled", map[string]any{
			"cancelled": true,
		}))
		return
	}

	conn, err := h.explorer.Open(r.Context(), driverName, path)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	tables, err := h.explorer.Tables(r.Context())
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("database loaded", map[string]any{
		"driver": conn.Driver,
		"path":   path,
		"tables": tables,
		"count":  len(tables),
	}))
}
