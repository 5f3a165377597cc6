package api_chart_image

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dracory/api"
	"github.com/dracory/weeviz/internal/ports"
	"github.com/dracory/weeviz/shared/chart"
	"github.com/dracory/weeviz/shared/constants"
)

var contentTypes = map[string]string{
	chart.FormatSVG:  "image/svg+xml",
	chart.FormatPNG:  "image/png",
	chart.FormatJPEG: "image/jpeg",
	chart.FormatPDF:  "application/pdf",
}

// ChartImage streams the current figure so the page can display it
type ChartImage struct {
	explorer ports.Explorer
}

// New creates a new ChartImage handler
func New(explorer ports.Explorer) *ChartImage {
	return &ChartImage{explorer: explorer}
}

// ServeHTTP encodes the figure in the "format" query value (svg by
// default). Optional "dpi" applies to raster formats.
func (h *ChartImage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = chart.FormatSVG
	}
	format = chart.NormalizeFormat(format)
	dpi := 0
	if raw := r.URL.Query().Get("dpi"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > constants.MaxChartDPI {
			api.Respond(w, r, api.Error(fmt.Sprintf("dpi must be between 1 and %d", constants.MaxChartDPI)))
			return
		}
		dpi = parsed
	}

	var buf bytes.Buffer
	if err := h.explorer.WriteFigure(&buf, format, dpi); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
