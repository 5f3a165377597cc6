// Package errs holds the sentinel errors shared by every explorer operation.
// Operations wrap them with detail via fmt.Errorf("%w: ...") and callers match
// them with errors.Is.
package errs

import "errors"

var (
	// ErrNoConnection is returned when an operation needs an open database.
	ErrNoConnection = errors.New("load a database first")
	// ErrConnection is returned when a database could not be opened.
	ErrConnection = errors.New("failed to open database")

	// ErrEmptyQuery is returned for a blank statement.
	ErrEmptyQuery = errors.New("enter a valid SQL query")
	// ErrQueryExecution wraps the engine's message for a failing statement.
	ErrQueryExecution = errors.New("sql execution failed")
	// ErrUnknownTable is returned when the catalog has no columns for a table.
	ErrUnknownTable = errors.New("unknown table")

	ErrNoData   = errors.New("no data available, run a query first")
	ErrNoFigure = errors.New("no chart available, generate a chart first")

	ErrAxisNotSelected        = errors.New("select both X and Y axis")
	ErrNonNumericAxis         = errors.New("y-axis must contain numeric data")
	ErrInsufficientCategories = errors.New("need at least two categorical columns for a heatmap")

	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrIO                = errors.New("failed to write file")
)
