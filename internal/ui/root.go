package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	"github.com/leighmacdonald/gridiron-tui/internal/draw"
	"github.com/leighmacdonald/gridiron-tui/internal/field"
	"github.com/leighmacdonald/gridiron-tui/internal/playback"
	"github.com/leighmacdonald/gridiron-tui/internal/ui/styles"
	"github.com/leighmacdonald/gridiron-tui/internal/visualizer"
	zone "github.com/lrstanley/bubblezone"
	"golang.org/x/exp/slices"
)

// Rows used by the control bar and the status bar.
const chromeHeight = 2

// rootModel is the top level model for the ui side of the app. It owns the playback
// controller, so every controller call happens inside Update.
type rootModel struct {
	height    int
	width     int
	page      page
	conf      config.Config
	writer    ConfigWriter
	dataset   datasource.Dataset
	fetchErr  error
	raster    *draw.Raster
	scheduler *teaScheduler
	ctrl      *playback.Controller
	controls  controlsModel
	status    statusBarModel
	help      helpModel
}

func newRootModel(conf config.Config, dataset datasource.Dataset, fetchErr error, writer ConfigWriter,
	build BuildInfo, cachePath string,
) *rootModel {
	raster := draw.NewRaster(field.LengthYards, field.WidthYards, 120, 27)
	field.Render(raster)

	scheduler := &teaScheduler{}
	vis := visualizer.New(raster, field.NewMapper(conf.LeftToRightTeam), dataset.Teams)

	var configPath string
	if writer != nil {
		configPath = writer.Path()
	}

	app := &rootModel{
		page:      pageMain,
		conf:      conf,
		writer:    writer,
		dataset:   dataset,
		fetchErr:  fetchErr,
		raster:    raster,
		scheduler: scheduler,
		ctrl:      playback.NewController(vis, scheduler, dataset.Frames, conf.Speed()),
		controls:  newControlsModel(int(conf.Speed() / time.Millisecond)),
		status:    newStatusBarModel(build.Version),
		help:      newHelpModel(build.Version, build.Date, build.Commit, configPath, cachePath),
	}

	if fetchErr == nil && len(dataset.Weeks) > 0 {
		app.ctrl.SelectWeek(dataset.Weeks[0])
	}

	return app
}

func (m *rootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("gridiron-tui"), textinput.Blink}
	if m.fetchErr != nil {
		cmds = append(cmds, setStatusMessage("Failed to load data", true))
	}

	return tea.Batch(cmds...)
}

func (m *rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	var cmd tea.Cmd

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width
		m.raster.Resize(fieldSize(m.width, m.height-chromeHeight))
	case tickMsg:
		m.scheduler.handle(msg)
	case config.Config:
		m.onConfig(msg)
	case statusMsg:
		m.status = m.status.setStatus(msg)
		cmd = clearErrorAfter(clearMessageTimeout)
	case clearStatusMessageMsg:
		m.status = m.status.clear()
	case controlMsg:
		cmd = m.onControl(msg)
	case tea.MouseMsg:
		m.controls, cmd = m.controls.Update(msg)
	case tea.KeyMsg:
		cmd = m.onKey(msg)
	}

	return m, tea.Batch(cmd, m.scheduler.drain())
}

func (m *rootModel) onKey(msg tea.KeyMsg) tea.Cmd {
	if m.controls.editing {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return tea.Quit
		case key.Matches(msg, defaultKeyMap.accept):
			return m.applySpeed()
		case key.Matches(msg, defaultKeyMap.back):
			m.controls = m.controls.stopEditing(m.speedMs())

			return nil
		}

		var cmd tea.Cmd
		m.controls, cmd = m.controls.Update(msg)

		return cmd
	}

	switch {
	case key.Matches(msg, defaultKeyMap.quit):
		return tea.Quit
	case key.Matches(msg, defaultKeyMap.help):
		if m.page == pageHelp {
			m.page = pageMain
		} else {
			m.page = pageHelp
		}
	case key.Matches(msg, defaultKeyMap.back):
		m.page = pageMain
	case key.Matches(msg, defaultKeyMap.play):
		return m.onControl(controlPlay)
	case key.Matches(msg, defaultKeyMap.prev):
		return m.onControl(controlPrev)
	case key.Matches(msg, defaultKeyMap.next):
		return m.onControl(controlNext)
	case key.Matches(msg, defaultKeyMap.prevWeek):
		return m.onControl(controlPrevWeek)
	case key.Matches(msg, defaultKeyMap.nextWeek):
		return m.onControl(controlNextWeek)
	case key.Matches(msg, defaultKeyMap.speed):
		return m.onControl(controlSpeed)
	}

	return nil
}

// onControl applies a transport action. Nothing is playable after a failed fetch.
func (m *rootModel) onControl(control controlMsg) tea.Cmd {
	if m.fetchErr != nil {
		return nil
	}

	switch control {
	case controlPrevWeek:
		m.shiftWeek(-1)
	case controlNextWeek:
		m.shiftWeek(1)
	case controlPlay:
		m.ctrl.TogglePlay()
	case controlPrev:
		m.ctrl.Step(playback.Prev)
	case controlNext:
		m.ctrl.Step(playback.Next)
	case controlSpeed:
		var cmd tea.Cmd
		m.controls, cmd = m.controls.startEditing()

		return cmd
	}

	return nil
}

func (m *rootModel) shiftWeek(offset int) {
	weeks := m.dataset.Weeks
	if len(weeks) == 0 {
		return
	}

	current := slices.Index(weeks, m.ctrl.State().Week)
	next := max(0, min(len(weeks)-1, current+offset))
	if next == current {
		return
	}

	m.ctrl.SelectWeek(weeks[next])
}

func (m *rootModel) applySpeed() tea.Cmd {
	speedMs := parseSpeed(m.controls.value())
	m.ctrl.SetInterval(time.Duration(speedMs) * time.Millisecond)
	m.controls = m.controls.stopEditing(speedMs)
	m.conf.SpeedMs = speedMs

	return m.saveConfig()
}

func (m *rootModel) speedMs() int {
	return int(m.ctrl.State().Interval / time.Millisecond)
}

func (m *rootModel) saveConfig() tea.Cmd {
	if m.writer == nil {
		return nil
	}

	conf := m.conf
	writer := m.writer

	return func() tea.Msg {
		if err := writer.Write(conf); err != nil {
			slog.Error("Failed to save config", slog.String("error", err.Error()))

			return statusMsg{Message: "Failed to save config", Err: true}
		}

		return statusMsg{Message: "Saved speed"}
	}
}

// onConfig handles an external edit of the config file. Only the playback speed is applied
// to a running session.
func (m *rootModel) onConfig(conf config.Config) {
	m.conf = conf
	if conf.Speed() == m.ctrl.State().Interval {
		return
	}

	m.ctrl.SetInterval(conf.Speed())
	if !m.controls.editing {
		m.controls = m.controls.stopEditing(m.speedMs())
	}
}

func (m *rootModel) View() string {
	if !m.isInitialized() {
		return ""
	}

	state := m.ctrl.State()
	header := styles.HeaderContainerStyle.Width(m.width).Render(m.controls.View(state, m.fetchErr != nil))
	footer := styles.FooterContainerStyle.Width(m.width).Render(m.status.View(m.width, state))
	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var content string

	switch {
	case m.page == pageHelp:
		content = m.help.View()
	case m.fetchErr != nil:
		content = styles.InfoMessage.Render("Error loading data\n\n" + m.fetchErr.Error())
	default:
		content = renderCells(m.raster.Cells())
	}

	ctr := styles.ContentContainerStyle.Width(m.width).Height(contentHeight).Render(content)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, ctr, footer))
}

func (m *rootModel) isInitialized() bool {
	return m.height != 0 && m.width != 0
}

// fieldSize fits the field into cols by rows terminal cells keeping its proportions, assuming
// a cell is twice as tall as it is wide.
func fieldSize(cols int, rows int) (int, int) {
	const aspect = field.WidthYards / field.LengthYards / 2

	cols = max(1, cols)
	rows = max(1, rows)

	fitRows := int(float64(cols) * aspect)
	if fitRows <= rows {
		return cols, max(1, fitRows)
	}

	return max(1, int(float64(rows)/aspect)), rows
}

// logMsg is useful for debugging events. Tail the log file ~/.config/gridiron-tui/gridiron-tui.log
func logMsg(inMsg tea.Msg) {
	// Filter out very noisy stuff
	switch inMsg.(type) {
	case tickMsg:
	case tea.MouseMsg:
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
