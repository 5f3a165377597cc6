package ports

import (
	"context"
	"io"

	"github.com/dracory/weeviz/shared/chart"
	"github.com/dracory/weeviz/shared/session"
	"github.com/dracory/weeviz/shared/table"
)

// Explorer is the application state the api handlers drive. It is
// implemented by *session.Session.
type Explorer interface {
	Open(ctx context.Context, driverName, dsn string) (*session.ActiveConnection, error)
	Connection() (*session.ActiveConnection, error)
	Disconnect() error

	Tables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, tableName string) ([]string, error)

	Execute(ctx context.Context, statement string) (*table.Result, error)
	Result() *table.Result

	GenerateChart(spec chart.Spec) (*chart.Figure, error)
	Figure() *chart.Figure
	WriteFigure(w io.Writer, format string, dpi int) error

	ExportResult(path string) error
	ExportFigure(path string) error
}

var _ Explorer = (*session.Session)(nil)
