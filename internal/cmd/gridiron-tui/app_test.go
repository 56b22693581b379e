package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	"github.com/stretchr/testify/require"
)

type fakeUI struct {
	sent chan tea.Msg
}

func (f fakeUI) Send(msg tea.Msg) {
	f.sent <- msg
}

func (f fakeUI) Run() error {
	return nil
}

func TestAppForwardsConfig(t *testing.T) {
	updates := make(chan config.Config)
	app := NewApp(config.Config{}, datasource.Dataset{}, nil, updates)
	fake := fakeUI{sent: make(chan tea.Msg, 1)}
	app.ui = fake

	done := make(chan any)
	stopped := make(chan struct{})

	go func() {
		app.Start(t.Context(), done)
		close(stopped)
	}()

	updates <- config.Config{SpeedMs: 700}

	select {
	case msg := <-fake.sent:
		require.Equal(t, config.Config{SpeedMs: 700}, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("config not forwarded")
	}

	close(done)
	<-stopped
}
