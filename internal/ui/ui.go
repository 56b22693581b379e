package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	zone "github.com/lrstanley/bubblezone"
)

const (
	clearMessageTimeout = time.Second * 10
)

var ErrUIExit = errors.New("ui error returned")

type ConfigWriter interface {
	Write(config.Config) error
	Path() string
}

type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

type UI struct {
	program *tea.Program
}

// New creates the terminal ui. A non nil fetchErr puts it in the error state where
// nothing can be played.
func New(ctx context.Context, conf config.Config, dataset datasource.Dataset, fetchErr error,
	loader ConfigWriter, build BuildInfo, cachePath string,
) *UI {
	zone.NewGlobal()

	return &UI{
		program: tea.NewProgram(
			newRootModel(conf, dataset, fetchErr, loader, build, cachePath),
			tea.WithMouseCellMotion(),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithFPS(30)),
	}
}

func (t UI) Run() error {
	if _, err := t.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
