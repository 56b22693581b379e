package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	Black    = lipgloss.Color("#111111")
	Gray     = lipgloss.Color("#3e3e3e")
	GrayDark = lipgloss.Color("#2f3030")
	White    = lipgloss.Color("#cccccc")

	Red   = lipgloss.Color("#B8383B")
	Blue  = lipgloss.Color("#5885A2")
	Green = lipgloss.Color("#4d7455")
	Gold  = lipgloss.Color("#ffd700")

	HeaderContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)
	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Center)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(Black)
	CursorStyle  = FocusedStyle
	NoStyle      = lipgloss.NewStyle()

	Button         = lipgloss.NewStyle().Foreground(White).Background(GrayDark).Padding(0, 1).MarginRight(1)
	ButtonActive   = Button.Foreground(Black).Background(Accent).Bold(true)
	ButtonDisabled = Button.Foreground(Gray).Background(Black)
	WeekLabel      = lipgloss.NewStyle().Foreground(Gold).Bold(true).Width(10).Align(lipgloss.Center)
	WeekError      = lipgloss.NewStyle().Foreground(Red).Background(Black).Bold(true).Padding(0, 1).MarginRight(1)
	SpeedLabel     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).PaddingLeft(1)

	StatusFrame   = lipgloss.NewStyle().Foreground(Accent).Bold(true).PaddingLeft(1).PaddingRight(2)
	StatusWeek    = lipgloss.NewStyle().Foreground(Gold).Bold(true).PaddingRight(2)
	StatusTeams   = lipgloss.NewStyle().Foreground(Blue).Bold(true).PaddingRight(2)
	StatusDesc    = lipgloss.NewStyle().Foreground(White)
	StatusError   = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage = lipgloss.NewStyle().Foreground(Green).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusHelp    = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center).PaddingRight(2)
	StatusVersion = lipgloss.NewStyle().Foreground(Green).Bold(true).Align(lipgloss.Center).PaddingRight(2)

	PanelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(16)
	PanelValue = lipgloss.NewStyle().Width(60)

	InfoMessage = lipgloss.NewStyle().Align(lipgloss.Center).Padding(1)

	HelpBox = lipgloss.NewStyle().Padding(3)

	IconPlay  = "▶"
	IconPause = "⏸"
	IconPrev  = "◀"
	IconNext  = "▶"
)

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}

// WrapX will wrap a centered string with the supplied character up to the lenth specified.
func WrapX(width int, value string, character string) string {
	all := width - lipgloss.Width(value)
	if all <= 0 {
		return value
	}

	return strings.Repeat(character, all/2) + value + strings.Repeat(character, all/2)
}
