package api_table_columns

import (
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/weeviz/internal/ports"
)

// TableColumns lists the columns of one table in ordinal order
type TableColumns struct {
	explorer ports.Explorer
}

// New creates a new TableColumns handler
func New(explorer ports.Explorer) *TableColumns {
	return &TableColumns{explorer: explorer}
}

// ServeHTTP responds with the columns of the table named by "table".
func (h *TableColumns) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	table := strings.TrimSpace(r.URL.Query().Get("table"))

	columns, err := h.explorer.Columns(r.Context(), table)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("table_columns", map[string]any{
		"table":   table,
		"columns": columns,
	}))
}
