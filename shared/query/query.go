// Package query runs ad-hoc statements and materializes their results.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dracory/weeviz/shared/errs"
	"github.com/dracory/weeviz/shared/table"
)

// Execute runs the statement verbatim and returns the full result. Any
// engine failure is wrapped in errs.ErrQueryExecution. Statements that
// return no rows produce an empty, zero-column result.
func Execute(ctx context.Context, db *gorm.DB, statement string) (*table.Result, error) {
	if db == nil {
		return nil, errs.ErrNoConnection
	}
	if strings.TrimSpace(statement) == "" {
		return nil, errs.ErrEmptyQuery
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrQueryExecution, err)
	}

	// database/sql directly: gorm's Raw would rewrite '?' and '@name' tokens
	// that belong to the user's statement.
	rows, err := sqlDB.QueryContext(ctx, statement)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrQueryExecution, err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrQueryExecution, err)
	}
	return result, nil
}

// scanRows scans sql.Rows into a table.Result, keeping projection order
func scanRows(rows *sql.Rows) (*table.Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		data = append(data, values)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return table.New(cols, data), nil
}
