package weeviz

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracory/weeviz/shared/constants"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "/", cfg.BasePath)
	assert.Equal(t, "action", cfg.ActionParam)
	assert.Equal(t, []string{constants.DriverSQLite}, cfg.EnabledDrivers)
	assert.Equal(t, constants.DefaultChartDPI, cfg.ChartDPI)
	assert.Equal(t, constants.DefaultQuery, cfg.DefaultQuery)
	assert.Empty(t, cfg.DatabasePath)
}

func TestLoadConfig_EnvAndFlags(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("BASE_URL", "/env")
	t.Setenv("ENABLED_DRIVERS", "sqlite3, pg,,sqlite")
	t.Setenv("CHART_DPI", "150")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-base", "/flag", "-dpi", "72"})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "/flag", cfg.BasePath)
	assert.Equal(t, 72, cfg.ChartDPI)
	assert.Equal(t, []string{constants.DriverSQLite, constants.DriverPostgres}, cfg.EnabledDrivers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_PositionalDatabase(t *testing.T) {
	cfg, err := loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"data.sqlite"})
	require.NoError(t, err)
	assert.Equal(t, "data.sqlite", cfg.DatabasePath)

	cfg, err = loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-db", "a.db", "b.db"})
	require.NoError(t, err)
	assert.Equal(t, "a.db", cfg.DatabasePath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-dpi", "0"})
	assert.Error(t, err)

	_, err = loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-dpi", "100000"})
	assert.Error(t, err)

	t.Setenv("LOG_LEVEL", "loud")
	_, err = loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLogLevel("nope")
	assert.Error(t, err)
}
