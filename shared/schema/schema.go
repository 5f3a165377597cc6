// Package schema introspects the catalog of an open connection.
// It supports SQLite, PostgreSQL, MySQL and SQL Server.
package schema

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/driver"
	"github.com/dracory/weeviz/shared/errs"
)

// Table describes one table: its name and ordered column names.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// ListTables returns the table names in the order the catalog reports them.
func ListTables(ctx context.Context, db *gorm.DB, driverName string) ([]string, error) {
	if db == nil {
		return nil, errs.ErrNoConnection
	}

	var query string
	switch driver.Normalize(driverName) {
	case constants.DriverSQLite:
		query = `SELECT name FROM sqlite_master WHERE type = 'table'`
	case constants.DriverPostgres:
		query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'`
	case constants.DriverMySQL:
		query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'`
	case constants.DriverSQLServer:
		query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_type = 'BASE TABLE'
		AND table_catalog = DB_NAME()`
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driverName)
	}

	tables, err := queryStringList(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("error listing tables: %w", err)
	}
	return tables, nil
}

// ListColumns returns the column names of a table in ordinal order. A table
// the catalog does not know yields errs.ErrUnknownTable.
func ListColumns(ctx context.Context, db *gorm.DB, driverName, table string) ([]string, error) {
	if db == nil {
		return nil, errs.ErrNoConnection
	}
	if table == "" {
		return nil, fmt.Errorf("%w: table name is required", errs.ErrUnknownTable)
	}

	var (
		query string
		args  []any
	)
	switch driver.Normalize(driverName) {
	case constants.DriverSQLite:
		// pragma_table_info binds the name, so no identifier quoting is needed
		query = `SELECT name FROM pragma_table_info(?) ORDER BY cid`
		args = []any{table}
	case constants.DriverPostgres:
		query = `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ?
		ORDER BY ordinal_position`
		args = []any{table}
	case constants.DriverMySQL:
		query = `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`
		args = []any{table}
	case constants.DriverSQLServer:
		query = `
		SELECT c.name
		FROM sys.columns c
		JOIN sys.tables tb ON c.object_id = tb.object_id
		WHERE tb.name = ?
		ORDER BY c.column_id`
		args = []any{table}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driverName)
	}

	columns, err := queryStringList(ctx, db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error getting table info: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownTable, table)
	}
	return columns, nil
}

// Describe returns the descriptor for one table.
func Describe(ctx context.Context, db *gorm.DB, driverName, table string) (Table, error) {
	columns, err := ListColumns(ctx, db, driverName, table)
	if err != nil {
		return Table{}, err
	}
	return Table{Name: table, Columns: columns}, nil
}

// queryStringList executes a query that returns a single column of strings
func queryStringList(ctx context.Context, db *gorm.DB, query string, args ...any) ([]string, error) {
	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		result = append(result, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
