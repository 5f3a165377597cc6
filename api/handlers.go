package api

import (
	"net/http"

	"github.com/dracory/weeviz/api/api_chart_export"
	"github.com/dracory/weeviz/api/api_chart_generate"
	"github.com/dracory/weeviz/api/api_chart_image"
	"github.com/dracory/weeviz/api/api_database_open"
	"github.com/dracory/weeviz/api/api_disconnect"
	"github.com/dracory/weeviz/api/api_results_export"
	"github.com/dracory/weeviz/api/api_sql_execute"
	"github.com/dracory/weeviz/api/api_table_columns"
	"github.com/dracory/weeviz/api/api_tables_list"
	"github.com/dracory/weeviz/internal/ports"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/types"
)

// Handlers returns the JSON endpoints keyed by action name.
func Handlers(cfg types.Config, explorer ports.Explorer) map[string]http.Handler {
	return map[string]http.Handler{
		constants.ActionApiDatabaseOpen:  api_database_open.New(explorer),
		constants.ActionApiDisconnect:    api_disconnect.New(explorer),
		constants.ActionApiTablesList:    api_tables_list.New(explorer),
		constants.ActionApiTableColumns:  api_table_columns.New(explorer),
		constants.ActionApiSQLExecute:    api_sql_execute.New(explorer),
		constants.ActionApiResultsExport: api_results_export.New(explorer),
		constants.ActionApiChartGenerate: api_chart_generate.New(cfg, explorer),
		constants.ActionApiChartImage:    api_chart_image.New(explorer),
		constants.ActionApiChartExport:   api_chart_export.New(explorer),
	}
}
