package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	"github.com/leighmacdonald/gridiron-tui/internal/ui"
)

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

// App is the main application container. It only routes config changes from the file watcher
// into the UI.
type App struct {
	ui            UI
	config        config.Config
	dataset       datasource.Dataset
	fetchErr      error
	configUpdates chan config.Config
}

// NewApp returns a new application instance. A non nil fetchErr is passed on to the UI, which
// shows it instead of the field.
func NewApp(conf config.Config, dataset datasource.Dataset, fetchErr error, configUpdates chan config.Config) *App {
	return &App{
		config:        conf,
		dataset:       dataset,
		fetchErr:      fetchErr,
		configUpdates: configUpdates,
	}
}

// Start forwards config updates to the UI until ctx is cancelled or done is closed.
func (app *App) Start(ctx context.Context, done <-chan any) {
	for {
		select {
		case conf := <-app.configUpdates:
			app.config = conf
			if app.ui != nil {
				app.ui.Send(conf)
			}
		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}
}

func (app *App) createUI(ctx context.Context, loader ui.ConfigWriter) UI {
	if app.ui == nil {
		app.ui = ui.New(
			ctx,
			app.config,
			app.dataset,
			app.fetchErr,
			loader,
			ui.BuildInfo{Version: BuildVersion, Date: BuildDate, Commit: BuildCommit},
			config.PathCache(config.CacheDirName))
	}

	return app.ui
}
