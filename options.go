package weeviz

import "github.com/dracory/weeviz/shared/types"

// WithBasePath sets the mount path for the handler (for generating links), e.g. "/viz"
func WithBasePath(basePath string) func(*types.Config) {
	return func(c *types.Config) {
		c.BasePath = basePath
	}
}

// WithActionParam sets the query param that selects behavior (default: "action")
func WithActionParam(param string) func(*types.Config) {
	return func(c *types.Config) {
		c.ActionParam = param
	}
}

// WithDrivers lists enabled database drivers (e.g., sqlite, postgres, mysql, sqlserver)
func WithDrivers(drivers ...string) func(*types.Config) {
	return func(c *types.Config) {
		c.EnabledDrivers = drivers
	}
}

// WithChartDPI sets the resolution of exported raster charts.
func WithChartDPI(dpi int) func(*types.Config) {
	return func(c *types.Config) {
		c.ChartDPI = dpi
	}
}

// WithDefaultQuery pre-fills the query editor.
func WithDefaultQuery(query string) func(*types.Config) {
	return func(c *types.Config) {
		c.DefaultQuery = query
	}
}
