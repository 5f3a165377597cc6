// Package weeviz provides a small data explorer for SQLite files: browse the
// schema, run SQL, view the result grid, chart it and export results or
// charts. It is served over HTTP from a single mount path.
package weeviz

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dracory/weeviz/api"
	"github.com/dracory/weeviz/pages/page_home"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/driver"
	"github.com/dracory/weeviz/shared/session"
	"github.com/dracory/weeviz/shared/types"
	"github.com/dracory/weeviz/shared/urls"
)

// Supported database drivers
const (
	MYSQL    = constants.DriverMySQL
	POSTGRES = constants.DriverPostgres
	SQLITE   = constants.DriverSQLite
	SQLSRV   = constants.DriverSQLServer
)

// WeeViz represents the main application instance
type WeeViz struct {
	config  types.Config
	session *session.Session
	routes  map[string]http.Handler
	logger  *slog.Logger
}

// New creates a new WeeViz instance with the given configuration.
// The configuration should be loaded using LoadConfig() from config.go
func New(cfg types.Config, options ...func(*types.Config)) *WeeViz {
	for _, option := range options {
		option(&cfg)
	}

	if len(cfg.EnabledDrivers) == 0 {
		cfg.EnabledDrivers = []string{SQLITE}
	}
	if cfg.ActionParam == "" {
		cfg.ActionParam = urls.DefaultActionParam
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/"
	}
	if cfg.ChartDPI <= 0 {
		cfg.ChartDPI = constants.DefaultChartDPI
	}

	logger := slog.Default()
	sess := session.New(
		session.WithRegistry(driver.NewRegistry(cfg.EnabledDrivers)),
		session.WithChartDPI(cfg.ChartDPI),
		session.WithLogger(logger),
	)

	g := &WeeViz{
		config:  cfg,
		session: sess,
		logger:  logger,
	}
	g.routes = api.Handlers(cfg, sess)
	g.routes[constants.ActionHome] = page_home.New(cfg, sess)
	return g
}

// Config returns the effective configuration.
func (g *WeeViz) Config() types.Config {
	return g.config
}

// Session exposes the application state shared by every request.
func (g *WeeViz) Session() *session.Session {
	return g.session
}

// OpenDatabase opens a database before serving, e.g. from a -db flag.
func (g *WeeViz) OpenDatabase(ctx context.Context, driverName, dsn string) error {
	_, err := g.session.Open(ctx, driverName, dsn)
	return err
}

// Close releases the open connection.
func (g *WeeViz) Close() error {
	return g.session.Close()
}

// Handler returns an http.Handler that serves the WeeViz UI and API
func (g *WeeViz) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(g.config.BasePath, g.handleRequest)
	return g.middleware(mux)
}

// handleRequest routes requests to the appropriate handler
func (g *WeeViz) handleRequest(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimSpace(r.URL.Query().Get(g.config.ActionParam))

	switch action {
	case "":
		action = constants.ActionHome
	case constants.ActionHealthz:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}

	h, ok := g.routes[action]
	if !ok {
		g.logger.Warn("unknown action", "action", action)
		http.Error(w, "Unknown action: "+action, http.StatusNotFound)
		return
	}
	h.ServeHTTP(w, r)
}

// middleware applies common middleware to all handlers
func (g *WeeViz) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline' 'unsafe-eval' cdn.jsdelivr.net cdnjs.cloudflare.com cdn.tailwindcss.com unpkg.com; style-src 'self' 'unsafe-inline' cdn.jsdelivr.net; img-src 'self' data:;")

		next.ServeHTTP(w, r)
	})
}
