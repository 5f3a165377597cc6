package urls

import (
	neturl "net/url"
	"sort"

	"github.com/dracory/weeviz/shared/constants"
	"github.com/samber/lo"
)

// DefaultActionParam is the query key that selects an action.
const DefaultActionParam = "action"

// Home builds the URL of the explorer window.
// Signature: Home(basePath, params)
func Home(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionHome, params...)
}

// DatabaseOpen builds the URL that opens a database file.
func DatabaseOpen(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionApiDatabaseOpen, params...)
}

// Disconnect builds the URL that closes the connection.
func Disconnect(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionApiDisconnect, params...)
}

// ListTables builds the URL for listing tables
func ListTables(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionApiTablesList, params...)
}

// TableColumns builds the URL listing the columns of one table
func TableColumns(basePath, table string, params ...map[string]string) string {
	p := lo.Assign(lo.FirstOr(params, map[string]string{}), map[string]string{"table": table})
	return URL(basePath, constants.ActionApiTableColumns, p)
}

// SQLExecute builds the URL for SQL execution
func SQLExecute(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionApiSQLExecute, params...)
}

// ResultsExport builds the URL that saves the last result.
func ResultsExport(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionApiResultsExport, params...)
}

// ChartGenerate builds the URL that builds a chart.
func ChartGenerate(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionApiChartGenerate, params...)
}

// ChartImage builds the URL that streams the current chart.
func ChartImage(basePath, format string, params ...map[string]string) string {
	p := lo.Assign(lo.FirstOr(params, map[string]string{}), map[string]string{"format": format})
	return URL(basePath, constants.ActionApiChartImage, p)
}

// ChartExport builds the URL that saves the current chart.
func ChartExport(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionApiChartExport, params...)
}

// URL is a convenience wrapper using the default action param.
// Signature: URL(basePath, action, parameters)
func URL(basePath, action string, params ...map[string]string) string {
	return Build(basePath, DefaultActionParam, action, params...)
}

// Build constructs a URL like: basePath?actionParam=action&k=v...
// - basePath: mount path, e.g. "/db"
// - actionParam: query key that selects behavior, e.g. "action"
// - action: the action value, e.g. "api_sql_execute"
// - params: optional extra query parameters; nil allowed
// Keys are sorted for stable output. Values are URL-escaped.
func Build(basePath, actionParam, action string, params ...map[string]string) string {
	p := lo.FirstOr(params, map[string]string{})
	if actionParam == "" {
		actionParam = DefaultActionParam
	}

	// Ensure basePath starts with '/'
	if basePath == "" || basePath[0] != '/' {
		basePath = "/" + basePath
	}
	q := neturl.Values{}
	q.Set(actionParam, action)
	if len(p) > 0 {
		// stable order
		keys := make([]string, 0, len(p))
		for k := range p {
			if k == "" || k == actionParam {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			q.Set(k, p[k])
		}
	}
	enc := q.Encode()
	if enc == "" {
		return basePath
	}
	return basePath + "?" + enc
}
