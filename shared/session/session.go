// Package session owns the explorer's application state: the open
// connection, the last query result and the last figure. Every method holds
// the session lock for its whole duration, so operations never interleave.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/dracory/weeviz/shared/chart"
	"github.com/dracory/weeviz/shared/driver"
	"github.com/dracory/weeviz/shared/errs"
	"github.com/dracory/weeviz/shared/export"
	"github.com/dracory/weeviz/shared/query"
	"github.com/dracory/weeviz/shared/schema"
	"github.com/dracory/weeviz/shared/table"
)

// ActiveConnection is the open database handle.
type ActiveConnection struct {
	Driver   string
	DSN      string
	DB       *gorm.DB
	OpenedAt time.Time

	closed bool
	closes int
}

// Closes reports how many times the handle was actually released.
func (c *ActiveConnection) Closes() int {
	return c.closes
}

// Closed reports whether the handle has been released.
func (c *ActiveConnection) Closed() bool {
	return c.closed
}

func (c *ActiveConnection) close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	c.closes++
	return driver.Close(c.DB)
}

// Opener opens a probed handle. driver.Open is the production opener.
type Opener func(ctx context.Context, driverName, dsn string) (*gorm.DB, error)

// Session is the single application-state object shared by a shell.
type Session struct {
	mu sync.Mutex

	conn   *ActiveConnection
	result *table.Result
	figure *chart.Figure

	registry *driver.Registry
	open     Opener
	dpi      int
	logger   *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithRegistry restricts the drivers Open accepts.
func WithRegistry(r *driver.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithOpener replaces the function used to open handles.
func WithOpener(o Opener) Option {
	return func(s *Session) { s.open = o }
}

// WithChartDPI sets the raster resolution of exported figures.
func WithChartDPI(dpi int) Option {
	return func(s *Session) { s.dpi = dpi }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New returns an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		open:   driver.Open,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens a new connection and, only once it is usable, closes the
// previous one exactly once. On failure the previous connection stays.
func (s *Session) Open(ctx context.Context, driverName, dsn string) (*ActiveConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := driver.Normalize(driverName)
	if s.registry != nil {
		if err := s.registry.Validate(name); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrConnection, err)
		}
	}

	db, err := s.open(ctx, name, dsn)
	if err != nil {
		s.logger.Warn("database open failed", "driver", name, "error", err)
		return nil, err
	}

	if err := s.conn.close(); err != nil {
		s.logger.Warn("closing previous database failed", "driver", s.conn.Driver, "error", err)
	}

	s.conn = &ActiveConnection{
		Driver:   name,
		DSN:      dsn,
		DB:       db,
		OpenedAt: time.Now(),
	}
	s.logger.Info("database opened", "driver", name, "dsn", dsn)
	return s.conn, nil
}

// Connection returns the open connection or errs.ErrNoConnection.
func (s *Session) Connection() (*ActiveConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connection()
}

func (s *Session) connection() (*ActiveConnection, error) {
	if s.conn == nil || s.conn.closed {
		return nil, errs.ErrNoConnection
	}
	return s.conn, nil
}

// Disconnect closes the open connection. The last result and figure stay
// available for export.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.close()
	s.logger.Info("database closed", "driver", s.conn.Driver)
	s.conn = nil
	return err
}

// Close releases everything the session holds. Used on shutdown.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.conn.close()
	s.conn = nil
	s.result = nil
	s.figure = nil
	return err
}

// Tables lists the tables of the open database.
func (s *Session) Tables(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.connection()
	if err != nil {
		return nil, err
	}
	return schema.ListTables(ctx, conn.DB, conn.Driver)
}

// Columns lists the columns of one table.
func (s *Session) Columns(ctx context.Context, tableName string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.connection()
	if err != nil {
		return nil, err
	}
	desc, err := schema.Describe(ctx, conn.DB, conn.Driver, tableName)
	if err != nil {
		return nil, err
	}
	return desc.Columns, nil
}

// Execute runs a statement. On success its result replaces the last one; on
// failure the last result is kept.
func (s *Session) Execute(ctx context.Context, statement string) (*table.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.connection()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := query.Execute(ctx, conn.DB, statement)
	if err != nil {
		s.logger.Warn("query failed", "error", err)
		return nil, err
	}

	s.result = result
	s.logger.Info("query executed",
		"rows", result.NumRows(),
		"columns", result.NumColumns(),
		"duration", time.Since(start),
	)
	return result, nil
}

// Result returns the last successful result, or nil.
func (s *Session) Result() *table.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// GenerateChart builds a figure from the last result. On success it
// replaces the current figure; on failure the current figure is kept.
func (s *Session) GenerateChart(spec chart.Spec) (*chart.Figure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fig, err := chart.Build(s.result, spec)
	if err != nil {
		return nil, err
	}
	s.figure = fig
	s.logger.Info("chart generated", "kind", fig.Kind, "x", spec.X, "y", spec.Y)
	return fig, nil
}

// Figure returns the current figure, or nil.
func (s *Session) Figure() *chart.Figure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.figure
}

// ExportResult saves the last result. A blank path is a cancelled save.
func (s *Session) ExportResult(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := export.ExportTable(s.result, path); err != nil {
		return err
	}
	if strings.TrimSpace(path) != "" {
		s.logger.Info("result exported", "path", path)
	}
	return nil
}

// ExportFigure saves the current figure. A blank path is a cancelled save.
func (s *Session) ExportFigure(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := export.ExportFigure(s.figure, path, s.dpi); err != nil {
		return err
	}
	if strings.TrimSpace(path) != "" {
		s.logger.Info("chart exported", "path", path)
	}
	return nil
}

// WriteFigure encodes the current figure for display.
func (s *Session) WriteFigure(w io.Writer, format string, dpi int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.figure == nil {
		return errs.ErrNoFigure
	}
	_, err := s.figure.WriteTo(w, format, dpi)
	return err
}
