package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/csvrows"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	"github.com/leighmacdonald/gridiron-tui/internal/play"
	"github.com/leighmacdonald/gridiron-tui/internal/visualizer"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

const testPlays = `week,posteam,defteam,play_type,yardline_100,desc
1,BUF,NYJ,kickoff,35,Kick
1,NYJ,BUF,run,75,B.Hall up the middle
2,BUF,MIA,pass,60,J.Allen deep right
`

type recordingWriter struct {
	written []config.Config
}

func (w *recordingWriter) Write(conf config.Config) error {
	w.written = append(w.written, conf)

	return nil
}

func (w *recordingWriter) Path() string {
	return "/tmp/gridiron-tui.yaml"
}

func testDataset() datasource.Dataset {
	plays := csvrows.Parse(testPlays)

	return datasource.Dataset{
		Plays: plays,
		Teams: map[string]play.Team{},
		Weeks: play.Weeks(plays),
	}
}

func newTestModel(t *testing.T, fetchErr error) (*rootModel, *recordingWriter) {
	t.Helper()
	zone.NewGlobal()

	writer := &recordingWriter{}
	model := newRootModel(config.Config{LeftToRightTeam: "BUF", SpeedMs: 250}, testDataset(), fetchErr, writer,
		BuildInfo{Version: "test"}, t.TempDir())
	model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return model, writer
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func TestSchedulerDropsStaleTicks(t *testing.T) {
	scheduler := &teaScheduler{}

	var ticks []string
	first := scheduler.Every(time.Millisecond, func() { ticks = append(ticks, "first") })
	require.NotNil(t, scheduler.drain())
	require.Nil(t, scheduler.drain())

	first.Stop()
	scheduler.Every(time.Millisecond, func() { ticks = append(ticks, "second") })

	// The stopped timer's tick was already in flight.
	scheduler.handle(tickMsg{gen: 1})
	require.Empty(t, ticks)

	scheduler.handle(tickMsg{gen: 2})
	require.Equal(t, []string{"second"}, ticks)
	require.NotNil(t, scheduler.drain())
}

func TestSchedulerStopDuringTick(t *testing.T) {
	scheduler := &teaScheduler{}

	var timer interface{ Stop() }
	timer = scheduler.Every(time.Millisecond, func() { timer.Stop() })
	scheduler.drain()

	scheduler.handle(tickMsg{gen: 1})
	require.Nil(t, scheduler.drain())
	require.Nil(t, scheduler.live)
}

func TestParseSpeed(t *testing.T) {
	require.Equal(t, 250, parseSpeed("250"))
	require.Equal(t, 250, parseSpeed(" 250 "))
	require.Equal(t, config.DefaultSpeedMs, parseSpeed(""))
	require.Equal(t, config.DefaultSpeedMs, parseSpeed("fast"))
	require.Equal(t, config.DefaultSpeedMs, parseSpeed("0"))
	require.Equal(t, config.DefaultSpeedMs, parseSpeed("-10"))
}

func TestFieldSize(t *testing.T) {
	cols, rows := fieldSize(120, 100)
	require.Equal(t, 120, cols)
	require.Equal(t, 26, rows)

	cols, rows = fieldSize(400, 20)
	require.Equal(t, 20, rows)
	require.Less(t, cols, 400)
}

func TestSelectsFirstWeek(t *testing.T) {
	model, _ := newTestModel(t, nil)

	state := model.ctrl.State()
	require.Equal(t, "1", state.Week)
	require.Equal(t, 2, state.Count)
	require.Contains(t, model.View(), "Week 1")
}

func TestPlayAndTick(t *testing.T) {
	model, _ := newTestModel(t, nil)

	_, cmd := model.Update(runes(" "))
	require.NotNil(t, cmd)
	require.True(t, model.ctrl.State().Playing)
	require.Equal(t, 250*time.Millisecond, model.ctrl.State().Interval)

	model.Update(tickMsg{gen: model.scheduler.gen})
	require.Equal(t, 1, model.ctrl.State().Index)

	_, found := model.raster.Lookup(visualizer.IDMarker)
	require.True(t, found)
	require.Contains(t, model.View(), "Pause")

	model.Update(runes(" "))
	require.False(t, model.ctrl.State().Playing)
}

func TestStepAndWeekKeys(t *testing.T) {
	model, _ := newTestModel(t, nil)

	model.Update(tea.KeyMsg{Type: tea.KeyRight})
	model.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 1, model.ctrl.State().Index)

	model.Update(runes("]"))
	require.Equal(t, "2", model.ctrl.State().Week)
	require.Equal(t, 0, model.ctrl.State().Index)

	// Clamped at the last week.
	model.Update(runes("]"))
	require.Equal(t, "2", model.ctrl.State().Week)

	model.Update(runes("["))
	require.Equal(t, "1", model.ctrl.State().Week)
}

func TestApplySpeed(t *testing.T) {
	model, writer := newTestModel(t, nil)

	model.Update(runes("s"))
	require.True(t, model.controls.editing)

	model.Update(runes("9"))
	model.Update(runes("0"))
	model.Update(runes("0"))
	require.Equal(t, "900", model.controls.value())

	cmd := model.applySpeed()
	require.False(t, model.controls.editing)
	require.Equal(t, 900*time.Millisecond, model.ctrl.State().Interval)

	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, statusMsg{Message: "Saved speed"}, msg)
	require.Len(t, writer.written, 1)
	require.Equal(t, 900, writer.written[0].SpeedMs)
}

func TestBlankSpeedUsesDefault(t *testing.T) {
	model, _ := newTestModel(t, nil)

	model.Update(runes("s"))
	model.applySpeed()
	require.Equal(t, time.Duration(config.DefaultSpeedMs)*time.Millisecond, model.ctrl.State().Interval)
}

func TestExternalConfigChange(t *testing.T) {
	model, _ := newTestModel(t, nil)

	model.Update(config.Config{SpeedMs: 600})
	require.Equal(t, 600*time.Millisecond, model.ctrl.State().Interval)
	require.Equal(t, "600", model.controls.value())
}

func TestFetchErrorState(t *testing.T) {
	model, _ := newTestModel(t, errors.New("boom"))

	model.Update(runes(" "))
	model.Update(tea.KeyMsg{Type: tea.KeyRight})
	model.Update(runes("s"))
	require.False(t, model.ctrl.State().Playing)
	require.False(t, model.controls.editing)
	require.Equal(t, 0, model.ctrl.State().Count)

	view := model.View()
	require.Contains(t, view, "Error loading data")
}

func TestHelpToggle(t *testing.T) {
	model, _ := newTestModel(t, nil)

	model.Update(runes("?"))
	require.Equal(t, pageHelp, model.page)
	require.Contains(t, model.View(), "Cache Path")

	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, pageMain, model.page)
}
