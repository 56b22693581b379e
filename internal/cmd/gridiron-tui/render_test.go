package main

import (
	"bytes"
	"testing"

	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/csvrows"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	"github.com/leighmacdonald/gridiron-tui/internal/play"
	"github.com/stretchr/testify/require"
)

const testPlays = `week,posteam,defteam,play_type,yardline_100,desc
1,BUF,NYJ,kickoff,35,Kick
1,NYJ,BUF,run,75,B.Hall up the middle
2,BUF,MIA,pass,60,J.Allen deep right
`

const testTeams = `team_abbr,team_name,team_color,team_logo_wikipedia,team_logo_espn
NYJ,New York Jets,#125740,https://example.com/nyj.png,
`

func testDataset() datasource.Dataset {
	plays := csvrows.Parse(testPlays)
	teams := csvrows.Parse(testTeams)

	return datasource.Dataset{
		Plays:    plays,
		TeamRows: teams,
		Teams:    play.Teams(teams),
		Weeks:    play.Weeks(plays),
	}
}

func TestRenderFrame(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderSVG(&out, config.Config{LeftToRightTeam: "BUF"}, testDataset(), "1", 1))

	svg := out.String()
	require.Contains(t, svg, `id="marker"`)
	require.Contains(t, svg, `id="logo"`)
	require.Contains(t, svg, `id="kick-arc"`)
	require.Contains(t, svg, `id="run-line"`)
	require.Contains(t, svg, "https://example.com/nyj.png")
}

func TestRenderFirstWeekDefault(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderSVG(&out, config.Config{}, testDataset(), "", 0))
	require.Contains(t, out.String(), `id="marker"`)
	require.NotContains(t, out.String(), `id="kick-arc"`)
}

func TestRenderBareField(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderSVG(&out, config.Config{}, testDataset(), "2", -1))
	require.NotContains(t, out.String(), `id="marker"`)
	require.Contains(t, out.String(), "<svg")
}

func TestRenderUnknownWeek(t *testing.T) {
	var out bytes.Buffer
	require.ErrorIs(t, renderSVG(&out, config.Config{}, testDataset(), "17", 0), errUnknownWeek)
	require.ErrorIs(t, renderSVG(&out, config.Config{}, datasource.Dataset{}, "", 0), errNoWeeks)
}
