package api_chart_generate

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dracory/api"
	"github.com/dracory/weeviz/internal/ports"
	"github.com/dracory/weeviz/shared/chart"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/types"
	"github.com/dracory/weeviz/shared/urls"
)

// ChartGenerate builds a chart from the last query result
type ChartGenerate struct {
	cfg      types.Config
	explorer ports.Explorer
}

// New creates a new ChartGenerate handler
func New(cfg types.Config, explorer ports.Explorer) *ChartGenerate {
	return &ChartGenerate{cfg: cfg, explorer: explorer}
}

// ServeHTTP reads the chart controls from the form and responds with a
// summary of the figure and the URL its image is served from.
func (h *ChartGenerate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("chart_generate must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	spec, err := SpecFromForm(r)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	fig, err := h.explorer.GenerateChart(spec)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	imageURL := urls.Build(h.cfg.BasePath, h.cfg.ActionParam, constants.ActionApiChartImage, map[string]string{
		"format": chart.FormatSVG,
		"v":      strconv.FormatInt(time.Now().UnixNano(), 36),
	})

	api.Respond(w, r, api.SuccessWithData("chart generated", map[string]any{
		"figure":    fig,
		"image_url": imageURL,
	}))
}

// SpecFromForm reads a chart.Spec from parsed form values.
func SpecFromForm(r *http.Request) (chart.Spec, error) {
	kind, err := chart.ParseKind(r.Form.Get("kind"))
	if err != nil {
		return chart.Spec{}, err
	}

	markerSize := constants.DefaultMarkerSize
	if v := strings.TrimSpace(r.Form.Get("marker_size")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return chart.Spec{}, err
		}
		markerSize = n
	}

	return chart.Spec{
		X:          strings.TrimSpace(r.Form.Get("x")),
		Y:          strings.TrimSpace(r.Form.Get("y")),
		Kind:       kind,
		ShowGrid:   formBool(r, "show_grid"),
		ShowLabels: formBool(r, "show_labels"),
		Title:      r.Form.Get("title"),
		MarkerSize: markerSize,
	}, nil
}

func formBool(r *http.Request, key string) bool {
	v := strings.ToLower(strings.TrimSpace(r.Form.Get(key)))
	return v == "1" || v == "true" || v == "on" || v == "yes"
}
