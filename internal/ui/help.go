package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/gridiron-tui/internal/ui/styles"
)

type helpModel struct {
	helpView     help.Model
	configPath   string
	cachePath    string
	buildVersion string
	buildDate    string
	buildCommit  string
}

func newHelpModel(buildVersion string, buildDate string, buildCommit string, configPath string, cachePath string) helpModel {
	return helpModel{
		helpView:     help.New(),
		configPath:   configPath,
		cachePath:    cachePath,
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

func (m helpModel) View() string {
	left := m.helpView.FullHelpView([][]key.Binding{
		{
			defaultKeyMap.play,
			defaultKeyMap.prev,
			defaultKeyMap.next,
		},
	})

	middle := m.helpView.FullHelpView([][]key.Binding{
		{
			defaultKeyMap.prevWeek,
			defaultKeyMap.nextWeek,
			defaultKeyMap.speed,
			defaultKeyMap.accept,
		},
	})

	right := m.helpView.FullHelpView([][]key.Binding{
		{
			defaultKeyMap.help,
			defaultKeyMap.back,
			defaultKeyMap.quit,
		},
	})

	helpContent := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpBox.Render(left), styles.HelpBox.Render(middle), styles.HelpBox.Render(right))

	commit := m.buildCommit
	if len(commit) > 8 {
		commit = m.buildCommit[0:8]
	}

	configPath := m.configPath
	if configPath == "" {
		configPath = "(defaults)"
	}

	content := lipgloss.JoinVertical(lipgloss.Center, helpContent,
		styles.DetailRow("Version", m.buildVersion),
		styles.DetailRow("Commit", commit),
		styles.DetailRow("Date", m.buildDate),
		styles.DetailRow("Config Path", configPath),
		styles.DetailRow("Cache Path", m.cachePath),
	)

	return lipgloss.Place(lipgloss.Width(content), lipgloss.Height(content),
		lipgloss.Center, lipgloss.Center, content)
}
