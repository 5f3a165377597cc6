package weeviz

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dracory/env"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/driver"
	"github.com/dracory/weeviz/shared/types"
	"github.com/samber/lo"
)

// LoadConfig reads flags/env with sensible defaults.
// Flags take precedence over env.
func LoadConfig() (types.Config, error) {
	// Optionally load from .env files (missing files are ignored inside the lib)
	env.Load(".env")
	return loadConfig(flag.CommandLine, os.Args[1:])
}

func loadConfig(fs *flag.FlagSet, args []string) (types.Config, error) {
	var cfg types.Config

	cfg.HTTPPort = env.GetIntOrDefault("HTTP_PORT", 8080)
	cfg.BasePath = env.GetStringOrDefault("BASE_URL", "/")
	cfg.ActionParam = env.GetStringOrDefault("ACTION_PARAM", "action")
	cfg.EnabledDrivers = splitList(env.GetStringOrDefault("ENABLED_DRIVERS", constants.DriverSQLite))
	cfg.ChartDPI = env.GetIntOrDefault("CHART_DPI", constants.DefaultChartDPI)
	cfg.DefaultQuery = env.GetStringOrDefault("DEFAULT_QUERY", constants.DefaultQuery)
	cfg.LogLevel = env.GetStringOrDefault("LOG_LEVEL", "info")
	cfg.DatabasePath = env.GetStringOrDefault("DATABASE_PATH", "")

	port := fs.Int("port", cfg.HTTPPort, "HTTP port to listen on")
	base := fs.String("base", cfg.BasePath, "Base path to mount handler under (e.g. /viz)")
	dpi := fs.Int("dpi", cfg.ChartDPI, "Resolution of exported raster charts")
	db := fs.String("db", cfg.DatabasePath, "SQLite file to open on start")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.HTTPPort = *port
	cfg.BasePath = *base
	cfg.ChartDPI = *dpi
	cfg.DatabasePath = *db

	// a bare positional argument is the database to open
	if cfg.DatabasePath == "" && fs.NArg() > 0 {
		cfg.DatabasePath = fs.Arg(0)
	}

	return cfg, validateConfig(cfg)
}

func validateConfig(cfg types.Config) error {
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", cfg.HTTPPort)
	}
	if cfg.ChartDPI <= 0 || cfg.ChartDPI > constants.MaxChartDPI {
		return fmt.Errorf("CHART_DPI out of range 1..%d: %d", constants.MaxChartDPI, cfg.ChartDPI)
	}
	if len(cfg.EnabledDrivers) == 0 {
		return fmt.Errorf("ENABLED_DRIVERS is required")
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a LOG_LEVEL value onto a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

func splitList(s string) []string {
	parts := lo.Compact(lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	}))
	return lo.Uniq(lo.Map(parts, func(p string, _ int) string {
		return driver.Normalize(p)
	}))
}
