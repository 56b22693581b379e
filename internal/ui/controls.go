package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/playback"
	"github.com/leighmacdonald/gridiron-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

type controlButton struct {
	name    string
	control controlMsg
}

var controlButtons = []controlButton{
	{name: "prev-week", control: controlPrevWeek},
	{name: "next-week", control: controlNextWeek},
	{name: "play", control: controlPlay},
	{name: "prev", control: controlPrev},
	{name: "next", control: controlNext},
	{name: "speed", control: controlSpeed},
}

// controlsModel is the transport bar: week selector, play/pause, step buttons and the
// speed input.
type controlsModel struct {
	id      string
	speed   textinput.Model
	editing bool
}

func newControlsModel(speedMs int) controlsModel {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 5
	input.Width = 6
	input.Placeholder = strconv.Itoa(config.DefaultSpeedMs)
	input.PromptStyle = styles.FocusedStyle
	input.TextStyle = styles.FocusedStyle
	input.Cursor.Style = styles.CursorStyle
	input.SetValue(strconv.Itoa(speedMs))

	return controlsModel{id: zone.NewPrefix(), speed: input}
}

func (m controlsModel) Update(msg tea.Msg) (controlsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		for _, button := range controlButtons {
			if zone.Get(m.id + button.name).InBounds(msg) {
				return m, sendControl(button.control)
			}
		}

		return m, nil
	case tea.KeyMsg:
		if !m.editing {
			return m, nil
		}

		var cmd tea.Cmd
		m.speed, cmd = m.speed.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m controlsModel) startEditing() (controlsModel, tea.Cmd) {
	m.editing = true
	m.speed.SetValue("")

	return m, m.speed.Focus()
}

// stopEditing leaves the input showing ms, which is the interval in effect.
func (m controlsModel) stopEditing(speedMs int) controlsModel {
	m.editing = false
	m.speed.Blur()
	m.speed.SetValue(strconv.Itoa(speedMs))

	return m
}

func (m controlsModel) value() string {
	return m.speed.Value()
}

// parseSpeed reads a millisecond interval. Blank, non numeric and non positive values fall
// back to the default.
func parseSpeed(value string) int {
	speedMs, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || speedMs <= 0 {
		return config.DefaultSpeedMs
	}

	return speedMs
}

func (m controlsModel) button(name string, label string, style lipgloss.Style) string {
	return zone.Mark(m.id+name, style.Render(label))
}

func (m controlsModel) View(state playback.State, fetchFailed bool) string {
	if fetchFailed {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			styles.WeekError.Render("Error loading data"),
			styles.ButtonDisabled.Render(styles.IconPlay+" Play"),
			styles.ButtonDisabled.Render(styles.IconPrev),
			styles.ButtonDisabled.Render(styles.IconNext),
		)
	}

	playLabel := styles.IconPlay + " Play"
	playStyle := styles.Button
	if state.Playing {
		playLabel = styles.IconPause + " Pause"
		playStyle = styles.ButtonActive
	}

	week := "Week " + state.Week
	if state.Week == "" {
		week = "No weeks"
	}

	speedStyle := styles.Button
	if m.editing {
		speedStyle = styles.ButtonActive
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.button("prev-week", "[", styles.Button),
		styles.WeekLabel.Render(week),
		m.button("next-week", "]", styles.Button),
		m.button("play", playLabel, playStyle),
		m.button("prev", styles.IconPrev, styles.Button),
		m.button("next", styles.IconNext, styles.Button),
		styles.SpeedLabel.Render("Speed"),
		m.button("speed", m.speed.View()+" ms", speedStyle),
	)
}
