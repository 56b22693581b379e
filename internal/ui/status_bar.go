package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/gridiron-tui/internal/playback"
	"github.com/leighmacdonald/gridiron-tui/internal/ui/styles"
	"github.com/muesli/reflow/truncate"
)

type statusBarModel struct {
	statusMsg   string
	statusError bool
	version     string
}

func newStatusBarModel(version string) statusBarModel {
	return statusBarModel{version: version}
}

func (m statusBarModel) setStatus(msg statusMsg) statusBarModel {
	m.statusMsg = msg.Message
	m.statusError = msg.Err

	return m
}

func (m statusBarModel) clear() statusBarModel {
	m.statusMsg = ""
	m.statusError = false

	return m
}

func (m statusBarModel) View(width int, state playback.State) string {
	args := []string{
		styles.StatusFrame.Render(fmt.Sprintf("%d/%d", state.Index, state.Count)),
	}

	if week, err := strconv.Atoi(state.Week); err == nil {
		args = append(args, styles.StatusWeek.Render(humanize.Ordinal(week)+" week"))
	}

	if state.Current != nil {
		args = append(args, styles.StatusTeams.Render(state.Current.PosTeam+" vs "+state.Current.DefTeam))
	}

	tail := []string{
		m.status(),
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(fmt.Sprintf("%s %s", defaultKeyMap.help.Help().Key, defaultKeyMap.help.Help().Desc)),
	}

	if state.Current != nil && state.Current.Desc != "" {
		used := lipgloss.Width(lipgloss.JoinHorizontal(lipgloss.Top, append(args, tail...)...))
		if remaining := width - used - 1; remaining > 3 {
			args = append(args, styles.StatusDesc.Render(truncate.StringWithTail(state.Current.Desc, uint(remaining), "…"))) //nolint:gosec
		}
	}

	args = append(args, tail...)

	return lipgloss.NewStyle().Width(width).Background(styles.Black).Render(lipgloss.JoinHorizontal(lipgloss.Top, args...))
}

func (m statusBarModel) status() string {
	if m.statusMsg == "" {
		return ""
	}

	if m.statusError {
		return styles.StatusError.Render(m.statusMsg)
	}

	return styles.StatusMessage.Render(m.statusMsg)
}
