package play

import (
	"strings"

	"github.com/leighmacdonald/gridiron-tui/internal/csvrows"
)

const (
	ColTeamAbbr          = "team_abbr"
	ColTeamName          = "team_name"
	ColTeamColor         = "team_color"
	ColTeamLogoWikipedia = "team_logo_wikipedia"
	ColTeamLogoESPN      = "team_logo_espn"
)

// Team is the read-only metadata for a single team.
type Team struct {
	Abbr          string
	Name          string
	Color         string
	LogoWikipedia string
	LogoESPN      string
}

// Logo returns the preferred logo url, or an empty string when none is known.
func (t Team) Logo() string {
	if t.LogoWikipedia != "" {
		return t.LogoWikipedia
	}

	return t.LogoESPN
}

// Teams indexes team records by abbreviation. Records without an abbreviation are ignored,
// a later duplicate replaces an earlier one.
func Teams(records []csvrows.Record) map[string]Team {
	teams := make(map[string]Team, len(records))

	for _, record := range records {
		abbr := strings.TrimSpace(record[ColTeamAbbr])
		if abbr == "" {
			continue
		}

		teams[abbr] = Team{
			Abbr:          abbr,
			Name:          record[ColTeamName],
			Color:         record[ColTeamColor],
			LogoWikipedia: strings.TrimSpace(record[ColTeamLogoWikipedia]),
			LogoESPN:      strings.TrimSpace(record[ColTeamLogoESPN]),
		}
	}

	return teams
}
