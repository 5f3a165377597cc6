package page_home

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/dracory/weeviz/internal/ports"
	"github.com/dracory/weeviz/shared"
	"github.com/dracory/weeviz/shared/chart"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/export"
	layout "github.com/dracory/weeviz/shared/layout"
	"github.com/dracory/weeviz/shared/types"
	"github.com/dracory/weeviz/shared/urls"
	"github.com/gouniverse/cdn"
	hb "github.com/gouniverse/hb"
)

const (
	// DefaultTitle is the default page title
	DefaultTitle = "Explorer"
	// DefaultViewport is the default viewport meta tag content
	DefaultViewport = "width=device-width, initial-scale=1.0"
)

//go:embed view.html script.js styles.css
var embeddedFS embed.FS

// pageHomeController renders the explorer window
type pageHomeController struct {
	config   types.Config
	explorer ports.Explorer
}

// New creates a new pageHomeController instance
func New(config types.Config, explorer ports.Explorer) *pageHomeController {
	return &pageHomeController{
		config:   config,
		explorer: explorer,
	}
}

// ServeHTTP handles HTTP requests for the home page
func (h *pageHomeController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	html, err := h.Handle(r.Context())
	if err != nil {
		http.Error(w, "Failed to render home page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// Handle renders the explorer window with its Database, Query Execution and
// Charts tabs. When a database is already open its tables are preloaded.
func (h *pageHomeController) Handle(ctx context.Context) (template.HTML, error) {
	pageCSS, err := shared.EmbeddedFileToString(embeddedFS, "styles.css")
	if err != nil {
		return "", err
	}
	pageJS, err := shared.EmbeddedFileToString(embeddedFS, "script.js")
	if err != nil {
		return "", err
	}
	pageHTML, err := shared.EmbeddedFileToString(embeddedFS, "view.html")
	if err != nil {
		return "", err
	}

	status := ""
	dbPath := h.config.DatabasePath
	tables := []string{}
	if conn, err := h.explorer.Connection(); err == nil {
		status = "Database loaded: " + conn.DSN
		dbPath = conn.DSN
		if list, err := h.explorer.Tables(ctx); err == nil {
			tables = list
		}
	}

	defaultQuery := h.config.DefaultQuery
	if defaultQuery == "" {
		defaultQuery = constants.DefaultQuery
	}

	build := func(action string) string {
		return urls.Build(h.config.BasePath, h.config.ActionParam, action)
	}

	apiURLs := map[string]string{
		"open":          build(constants.ActionApiDatabaseOpen),
		"disconnect":    build(constants.ActionApiDisconnect),
		"tables":        build(constants.ActionApiTablesList),
		"columns":       build(constants.ActionApiTableColumns),
		"execute":       build(constants.ActionApiSQLExecute),
		"exportResults": build(constants.ActionApiResultsExport),
		"chart":         build(constants.ActionApiChartGenerate),
		"exportChart":   build(constants.ActionApiChartExport),
	}

	appConfig := map[string]any{
		"api":           apiURLs,
		"defaultQuery":  defaultQuery,
		"dbPath":        dbPath,
		"tables":        tables,
		"connected":     status != "",
		"kinds":         chart.Kinds,
		"tableFormats":  export.TableFormats,
		"figureFormats": export.FigureFormats,
		"markerSize":    constants.DefaultMarkerSize,
		"markerMin":     constants.MinMarkerSize,
		"markerMax":     constants.MaxMarkerSize,
		"columnWidth":   constants.GridColumnWidthPx,
	}

	extraHead := []hb.TagInterface{
		hb.Style(pageCSS),
		hb.Meta().Attr("name", "viewport").Attr("content", DefaultViewport),
	}

	extraBody := []hb.TagInterface{
		hb.ScriptURL(cdn.VueJs_3()),
		hb.ScriptURL(cdn.Sweetalert2_11()),
		hb.Script(`window.appConfig = ` + string(toJSON(appConfig)) + `;`),
		hb.Script(pageJS),
	}

	page := layout.RenderWith(layout.Options{
		Title:        DefaultTitle,
		BasePath:     h.config.BasePath,
		ActionParam:  h.config.ActionParam,
		MainHTML:     pageHTML,
		StatusText:   status,
		ExtraHead:    extraHead,
		ExtraBodyEnd: extraBody,
	})

	return page, nil
}

// Helper function to convert Go values to JSON for JavaScript
func toJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}
