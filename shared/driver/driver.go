// Package driver opens gorm handles for the database engines the explorer
// can browse and tracks which of them are enabled.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/errs"
)

// Registry tracks enabled database drivers by canonical name.
type Registry struct {
	enabled map[string]struct{}
}

// NewRegistry constructs a registry from the provided names. Aliases such as
// "sqlite3" or "pg" are normalized.
func NewRegistry(enabled []string) *Registry {
	m := make(map[string]struct{}, len(enabled))
	for _, n := range enabled {
		if n == "" {
			continue
		}
		m[Normalize(n)] = struct{}{}
	}
	return &Registry{enabled: m}
}

// IsEnabled returns true if the driver name is enabled.
func (r *Registry) IsEnabled(name string) bool {
	_, ok := r.enabled[Normalize(name)]
	return ok
}

// List returns a sorted list of enabled driver names.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.enabled))
	for n := range r.enabled {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Validate checks that a driver is named and enabled.
func (r *Registry) Validate(name string) error {
	if name == "" {
		return errors.New("driver is required")
	}
	if !r.IsEnabled(name) {
		return fmt.Errorf("driver not enabled: %s", name)
	}
	return nil
}

// Normalize maps common driver aliases to canonical names.
func Normalize(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "", "sqlite", "sqlite3":
		return constants.DriverSQLite
	case "pg", "postgres", "postgresql":
		return constants.DriverPostgres
	case "mysql", "mariadb":
		return constants.DriverMySQL
	case "mssql", "sqlserver":
		return constants.DriverSQLServer
	default:
		return strings.ToLower(d)
	}
}

// Open opens and probes a handle. For sqlite the DSN is a file path that
// must already exist; sqlite would otherwise silently create an empty file.
// Every failure is reported as errs.ErrConnection.
func Open(ctx context.Context, driverName, dsn string) (*gorm.DB, error) {
	name := Normalize(driverName)
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%w: a database path is required", errs.ErrConnection)
	}

	var dialector gorm.Dialector
	switch name {
	case constants.DriverSQLite:
		info, err := os.Stat(dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrConnection, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s is not a file", errs.ErrConnection, dsn)
		}
		dialector = sqlite.Open(dsn)
	case constants.DriverPostgres:
		dialector = postgres.Open(dsn)
	case constants.DriverMySQL:
		dialector = mysql.Open(dsn)
	case constants.DriverSQLServer:
		dialector = sqlserver.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: unsupported driver: %s", errs.ErrConnection, driverName)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrConnection, err)
	}

	if err := probe(ctx, name, db); err != nil {
		Close(db)
		return nil, fmt.Errorf("%w: %v", errs.ErrConnection, err)
	}

	return db, nil
}

// probe reads the catalog so that files which are not databases fail on
// open instead of on the first query.
func probe(ctx context.Context, name string, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if name != constants.DriverSQLite {
		return nil
	}
	var n int64
	return sqlDB.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master").Scan(&n)
}

// Close releases the pool behind a gorm handle.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
