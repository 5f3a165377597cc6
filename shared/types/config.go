package types

// Config contains the configuration for the web shell and its handlers
type Config struct {
	// HTTPPort is the port the server listens on
	HTTPPort int
	// BasePath is the base URL path for the application
	BasePath string
	// ActionParam is the query parameter used for actions
	ActionParam string
	// EnabledDrivers is the list of enabled database drivers
	EnabledDrivers []string
	// ChartDPI is the raster resolution of exported charts
	ChartDPI int
	// DefaultQuery pre-fills the query editor
	DefaultQuery string
	// LogLevel is one of debug, info, warn, error
	LogLevel string
	// DatabasePath, when set, is opened on start
	DatabasePath string
}
