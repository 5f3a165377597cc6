package api_chart_export

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/weeviz/internal/ports"
)

// ChartExport saves the current figure to a file
type ChartExport struct {
	explorer ports.Explorer
}

// New creates a new ChartExport handler
func New(explorer ports.Explorer) *ChartExport {
	return &ChartExport{explorer: explorer}
}

// ServeHTTP writes the figure to the "path" form value. The extension
// picks png, pdf or svg. A blank path is a cancelled save dialog.
func (h *ChartExport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("export must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	path := strings.TrimSpace(r.Form.Get("path"))
	if err := h.explorer.ExportFigure(path); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	if path == "" {
		api.Respond(w, r, api.SuccessWithData("cancelled", map[string]any{"cancelled": true}))
		return
	}

	api.Respond(w, r, api.SuccessWithData("Chart saved successfully: "+filepath.Base(path), map[string]any{
		"path": path,
	}))
}
