package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
)

const (
	ConfigDirName      = "gridiron-tui"
	DefaultConfigName  = "gridiron-tui"
	DefaultDBName      = "gridiron.db"
	DefaultLogName     = "gridiron-tui.log"
	CacheDirName       = "cache"
	EnvPrefix          = "gridiron"
	DefaultHTTPTimeout = 15 * time.Second
	DefaultSpeedMs     = 400
)

type Config struct {
	// PlaysSource and TeamsSource accept a http(s) url, a local file path or sqlite://<path>
	// pointing at a database filled by the import command.
	PlaysSource string `mapstructure:"plays_source"`
	TeamsSource string `mapstructure:"teams_source"`
	// LeftToRightTeam is the abbreviation of the team whose field position maps onto
	// increasing x. Every other team is drawn right to left.
	LeftToRightTeam string `mapstructure:"left_to_right_team"`
	SpeedMs         int    `mapstructure:"speed_ms"`
	ListenAddr      string `mapstructure:"listen_addr"`
	DBPath          string `mapstructure:"db_path"`
	Debug           bool   `mapstructure:"debug"`
}

// Speed returns the playback interval, using the default for unset or negative values.
func (c Config) Speed() time.Duration {
	if c.SpeedMs <= 0 {
		return DefaultSpeedMs * time.Millisecond
	}

	return time.Duration(c.SpeedMs) * time.Millisecond
}

// DatabasePath resolves DBPath. A bare file name is placed under the config dir.
func (c Config) DatabasePath() string {
	name := c.DBPath
	if name == "" {
		name = DefaultDBName
	}

	if filepath.Base(name) != name {
		return name
	}

	return Path(name)
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

func PathCache(name string) string {
	cacheDir, found := os.LookupEnv("CACHE_DIR")
	if found && cacheDir != "" {
		return cacheDir
	}

	return path.Join(xdg.CacheHome, ConfigDirName, name)
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(path.Join(xdg.ConfigHome, ConfigDirName, logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}

// StderrLoggerInit is used by the headless commands, which own the terminal.
func StderrLoggerInit(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Level maps the debug flag onto a log level.
func (c Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}
