package api_tables_list

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/weeviz/internal/ports"
)

// TablesList lists the tables of the open database in catalog order
type TablesList struct {
	explorer ports.Explorer
}

// New creates a new TablesList handler
func New(explorer ports.Explorer) *TablesList {
	return &TablesList{explorer: explorer}
}

// ServeHTTP processes the request to list database tables
func (h *TablesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	conn, err := h.explorer.Connection()
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	tables, err := h.explorer.Tables(r.Context())
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("tables_listed", map[string]any{
		"tables": tables,
		"count":  len(tables),
		"driver": conn.Driver,
	}))
}
