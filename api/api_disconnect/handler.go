package api_disconnect

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/weeviz/internal/ports"
)

// Handler handles database disconnection requests
type Handler struct {
	explorer ports.Explorer
}

// New creates a new disconnect handler
func New(explorer ports.Explorer) *Handler {
	return &Handler{
		explorer: explorer,
	}
}

// ServeHTTP closes the open database. Without one it is a no-op.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("disconnect must be POST"))
		return
	}

	if err := h.explorer.Disconnect(); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.Success("disconnected"))
}
