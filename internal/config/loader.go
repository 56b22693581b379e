package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

// NewLoader creates a loader searching searchPaths, or the xdg config dir and the working
// directory when none are given. Changes are only published once Watch is called.
func NewLoader(changes chan<- Config, searchPaths ...string) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("plays_source", "bills.csv")
	loader.SetDefault("teams_source", "teams.csv")
	loader.SetDefault("left_to_right_team", "BUF")
	loader.SetDefault("speed_ms", DefaultSpeedMs)
	loader.SetDefault("listen_addr", "127.0.0.1:8080")
	loader.SetDefault("db_path", DefaultDBName)
	loader.SetDefault("debug", false)
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)

	if len(searchPaths) == 0 {
		searchPaths = []string{Path(""), "."}
	}

	for _, searchPath := range searchPaths {
		loader.AddConfigPath(searchPath)
	}

	loader.AutomaticEnv()

	return &loader
}

// Watch starts watching the config file in use. It must be called after the first Read. It
// does nothing when the loader has no changes channel.
func (cl *Loader) Watch() {
	if cl.changes == nil {
		return
	}

	cl.OnConfigChange(cl.onConfigChange)
	cl.WatchConfig()
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if in.Op != fsnotify.Write && in.Op != fsnotify.Rename {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	cl.changes <- config
}

func (cl *Loader) Write(config Config) error {
	cl.Set("plays_source", config.PlaysSource)
	cl.Set("teams_source", config.TeamsSource)
	cl.Set("left_to_right_team", config.LeftToRightTeam)
	cl.Set("speed_ms", config.SpeedMs)
	cl.Set("listen_addr", config.ListenAddr)
	cl.Set("db_path", config.DBPath)
	cl.Set("debug", config.Debug)

	if err := cl.WriteConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Join(err, errConfigWrite)
		}

		// First save, nothing was read yet.
		if errSafe := cl.SafeWriteConfig(); errSafe != nil {
			return errors.Join(errSafe, errConfigWrite)
		}
	}

	return nil
}

// Read loads the config. A missing config file, searched for or set explicitly, is not an error, the defaults and
// environment are used instead.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	return config, nil
}
