package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/gridiron-tui/internal/cache"
	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	"github.com/leighmacdonald/gridiron-tui/internal/store"
	"github.com/leighmacdonald/gridiron-tui/internal/web"
	"github.com/spf13/cobra"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()

	cfgFile     string
	playsSource string
	teamsSource string
	renderWeek  string
	renderIndex int
	renderOut   string
	serveAddr   string
	importDB    string

	rootCmd = &cobra.Command{
		Use:   "gridiron-tui",
		Short: "Football play-by-play field viewer",
		Long:  `gridiron-tui - Replays a season of play-by-play data on a football field diagram`,
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about gridiron-tui",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render a single frame as SVG",
		Long:  "Render the field with the overlays of one frame of a week, written as an SVG document",
		Args:  cobra.NoArgs,
		RunE:  render,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the field to a browser",
		Long:  "Serve the SVG field and drive playback over a websocket",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}

	importCmd = &cobra.Command{
		Use:   "import",
		Short: "Import the play and team sources into sqlite",
		Long:  "Fetch the play and team sources and store them in a sqlite database usable as sqlite://<path>",
		Args:  cobra.NoArgs,
		RunE:  importData,
	}
)

var (
	errApp         = errors.New("application error")
	errUnknownWeek = errors.New("unknown week")
	errNoWeeks     = errors.New("no weeks in play data")
)

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&playsSource, "plays", "", "Play-by-play source: url, file or sqlite://path")
	rootCmd.PersistentFlags().StringVar(&teamsSource, "teams", "", "Team source: url, file or sqlite://path")

	renderCmd.Flags().StringVar(&renderWeek, "week", "", "Week to render, defaults to the first week")
	renderCmd.Flags().IntVar(&renderIndex, "frame", 0, "Frame index within the week, -1 renders the bare field")
	renderCmd.Flags().StringVar(&renderOut, "out", "-", "Output file, - for stdout")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, defaults to listen_addr")
	importCmd.Flags().StringVar(&importDB, "db", "", "Database path, defaults to db_path")

	rootCmd.AddCommand(versionCmd, renderCmd, serveCmd, importCmd)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(BuildVersion)); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("gridiron-tui - Football play-by-play viewer\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)                  //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)                   //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)                     //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)              //nolint:forbidigo
}

// loadConfig reads the config file and applies the source flags on top.
func loadConfig(changes chan<- config.Config) (*config.Loader, config.Config, error) {
	loader := config.NewLoader(changes)
	if cfgFile != "" {
		loader.SetConfigFile(cfgFile)
	}

	conf, err := loader.Read()
	if err != nil {
		return nil, config.Config{}, errors.Join(err, errApp)
	}

	if playsSource != "" {
		conf.PlaysSource = playsSource
	}

	if teamsSource != "" {
		conf.TeamsSource = teamsSource
	}

	return loader, conf, nil
}

func fetch(ctx context.Context, conf config.Config) (datasource.Dataset, error) {
	fsCache, errCache := cache.New()
	if errCache != nil {
		return datasource.Dataset{}, errors.Join(errCache, errApp)
	}

	httpClient := &http.Client{Timeout: config.DefaultHTTPTimeout}

	return datasource.New(httpClient, fsCache).Fetch(ctx, conf.PlaysSource, conf.TeamsSource)
}

// run is the main entry point of gridiron-tui.
func run(cmd *cobra.Command, _ []string) error {
	// If PROFILE is set, it will be used as the output file path for the profiler.
	if len(os.Getenv("PROFILE")) > 0 {
		f, err := os.Create(os.Getenv("PROFILE"))
		if err != nil {
			return errors.Join(err, errApp)
		}

		if errStart := pprof.StartCPUProfile(f); errStart != nil {
			return errors.Join(errStart, errApp)
		}
		defer pprof.StopCPUProfile()
	}

	// Make sure our config & data home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)
	configLoader, userConfig, errConfig := loadConfig(configUpdates)
	if errConfig != nil {
		return errConfig
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, userConfig.Level())
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting gridiron-tui", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))

	configLoader.Watch()

	// A failed fetch is shown by the ui rather than aborting.
	dataset, errFetch := fetch(cmd.Context(), userConfig)
	if errFetch != nil {
		slog.Error("Failed to load data", slog.String("error", errFetch.Error()))
	}

	done := make(chan any)
	app := NewApp(userConfig, dataset, errFetch, configUpdates)

	go func() {
		if err := app.createUI(cmd.Context(), configLoader).Run(); err != nil {
			slog.Error("Failed to run UI", slog.String("error", err.Error()))
		}

		close(done)
	}()

	app.Start(cmd.Context(), done)

	return nil
}

func render(cmd *cobra.Command, _ []string) error {
	_, conf, errConfig := loadConfig(nil)
	if errConfig != nil {
		return errConfig
	}

	config.StderrLoggerInit(conf.Level())

	dataset, errFetch := fetch(cmd.Context(), conf)
	if errFetch != nil {
		return errFetch
	}

	out := io.Writer(os.Stdout)
	if renderOut != "" && renderOut != "-" {
		outFile, errCreate := os.Create(renderOut)
		if errCreate != nil {
			return errors.Join(errCreate, errApp)
		}

		defer func() {
			if err := outFile.Close(); err != nil {
				slog.Error("Failed to close output", slog.String("error", err.Error()))
			}
		}()

		out = outFile
	}

	return renderSVG(out, conf, dataset, renderWeek, renderIndex)
}

func serve(cmd *cobra.Command, _ []string) error {
	_, conf, errConfig := loadConfig(nil)
	if errConfig != nil {
		return errConfig
	}

	config.StderrLoggerInit(conf.Level())

	if serveAddr != "" {
		conf.ListenAddr = serveAddr
	}

	// The page reports a failed fetch and rejects commands.
	dataset, errFetch := fetch(cmd.Context(), conf)
	if errFetch != nil {
		slog.Error("Failed to load data", slog.String("error", errFetch.Error()))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := web.New(conf, dataset, errFetch).ListenAndServe(ctx); err != nil {
		return errors.Join(err, errApp)
	}

	return nil
}

func importData(cmd *cobra.Command, _ []string) error {
	_, conf, errConfig := loadConfig(nil)
	if errConfig != nil {
		return errConfig
	}

	config.StderrLoggerInit(conf.Level())

	dbPath := conf.DatabasePath()
	if importDB != "" {
		dbPath = importDB
	}

	dataset, errFetch := fetch(cmd.Context(), conf)
	if errFetch != nil {
		return errFetch
	}

	database, errDB := store.Open(cmd.Context(), dbPath, true)
	if errDB != nil {
		return errors.Join(errDB, errApp)
	}

	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	if err := store.Import(cmd.Context(), database, dataset.Plays, dataset.TeamRows); err != nil {
		return errors.Join(err, errApp)
	}

	slog.Info("Imported data", slog.String("path", dbPath),
		slog.Int("plays", len(dataset.Plays)), slog.Int("teams", len(dataset.TeamRows)))

	return nil
}
