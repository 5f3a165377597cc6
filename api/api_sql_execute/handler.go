package api_sql_execute

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/weeviz/internal/ports"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/present"
)

// SQLExecute handles SQL statement execution
type SQLExecute struct {
	explorer ports.Explorer
}

// New creates a new SQLExecute handler
func New(explorer ports.Explorer) *SQLExecute {
	return &SQLExecute{
		explorer: explorer,
	}
}

// ServeHTTP runs the "sql" form value verbatim and responds with the grid
// to display and the new axis selector state.
func (h *SQLExecute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("sql_execute must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	result, err := h.explorer.Execute(r.Context(), r.Form.Get("sql"))
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("query executed", map[string]any{
		"grid":      present.Present(result, constants.GridColumnWidthPx),
		"axes":      present.PublishColumns(result),
		"row_count": result.NumRows(),
	}))
}
