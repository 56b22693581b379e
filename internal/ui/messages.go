package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type page int

const (
	pageMain page = iota
	pageHelp
)

// tickMsg is delivered by a playback timer. gen identifies the timer that scheduled it.
type tickMsg struct {
	gen int
}

type clearStatusMessageMsg struct{}

func clearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return clearStatusMessageMsg{}
	})
}

type statusMsg struct {
	Message string
	Err     bool
}

func setStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{Message: msg, Err: err}
	}
}

// controlMsg is emitted by the clickable transport controls.
type controlMsg int

const (
	controlPrevWeek controlMsg = iota
	controlNextWeek
	controlPlay
	controlPrev
	controlNext
	controlSpeed
)

func sendControl(control controlMsg) tea.Cmd {
	return func() tea.Msg { return control }
}
