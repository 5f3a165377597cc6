package constants

// Supported database drivers.
const (
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
	DriverMySQL     = "mysql"
	DriverSQLServer = "sqlserver"
)

// Action names for the single-endpoint router. Keep in sync with the page script.
const (
	ActionHome    = "page_home"
	ActionHealthz = "healthz"

	ActionApiDatabaseOpen = "api_database_open"
	ActionApiDisconnect   = "api_disconnect"

	ActionApiTablesList   = "api_tables_list"
	ActionApiTableColumns = "api_table_columns"

	ActionApiSQLExecute    = "api_sql_execute"
	ActionApiResultsExport = "api_results_export"

	ActionApiChartGenerate = "api_chart_generate"
	ActionApiChartImage    = "api_chart_image"
	ActionApiChartExport   = "api_chart_export"
)

// DefaultQuery pre-fills the query editor.
const DefaultQuery = `select aircraft_code, fare_conditions, count(seat_no) from seats group by aircraft_code, fare_conditions`

// Grid layout for the result presenter.
const (
	GridColumnWidthPx    = 150
	GridColumnWidthCells = 20
	NoDataPlaceholder    = "No data returned from the query!"
)

// Chart defaults.
const (
	DefaultChartDPI   = 300
	MaxChartDPI       = 600
	DefaultMarkerSize = 5
	MinMarkerSize     = 1
	MaxMarkerSize     = 20
)
