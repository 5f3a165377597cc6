package api_results_export

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/weeviz/internal/ports"
)

// ResultsExport saves the last query result to a file
type ResultsExport struct {
	explorer ports.Explorer
}

// New creates a new ResultsExport handler
func New(explorer ports.Explorer) *ResultsExport {
	return &ResultsExport{explorer: explorer}
}

// ServeHTTP writes the result to the "path" form value. The extension
// picks the format. A blank path is a cancelled save dialog.
func (h *ResultsExport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("export must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	path := strings.TrimSpace(r.Form.Get("path"))
	if err := h.explorer.ExportResult(path); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	if path == "" {
		api.Respond(w, r, api.SuccessWithData("cancelled", map[string]any{"cancelled": true}))
		return
	}

	api.Respond(w, r, api.SuccessWithData("Data exported successfully as "+filepath.Base(path), map[string]any{
		"path": path,
	}))
}
