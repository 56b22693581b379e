// Package field holds the fixed NFL field geometry, the yard line to drawing coordinate
// mapping and the static field renderer. All units are yards.
package field

import "strings"

const (
	LengthYards  = 120.0
	FeetWide     = 160.0
	WidthYards   = FeetWide / 3
	EndzoneDepth = 10.0

	// NFL hash marks sit 70'9" in from each sideline.
	HashFromSidelineFeet = 70 + 9.0/12
	HashFromSideline     = HashFromSidelineFeet / 3
	HashLength           = 2.0 / 3

	BoldLineWidth     = 0.08
	FaintLineWidth    = 0.02
	HashLineWidth     = 0.06
	MidfieldLineWidth = 0.12
	MidfieldRadius    = 1.2

	NumberFontSize = 6.0
	NumberFamily   = "Arial, Helvetica, sans-serif"

	// DefaultLeftToRight is the team whose field position maps onto increasing x.
	DefaultLeftToRight = "BUF"
)

const (
	ColourField    = "#2e7d32"
	ColourEndzone  = "#1b5e20"
	ColourLine     = "#ffffff"
	ColourFaint    = "rgba(255,255,255,0.16)"
	ColourMidFill  = "rgba(255,255,255,0.06)"
	ColourMidRing  = "rgba(255,255,255,0.12)"
	ColourNumerals = "#ffffff"
)

// Mapper converts yard-line-from-opponent-goal values into horizontal drawing coordinates.
type Mapper struct {
	leftToRight string
}

// NewMapper creates a mapper where team plays left to right. An empty team falls back to
// DefaultLeftToRight.
func NewMapper(team string) Mapper {
	team = strings.ToUpper(strings.TrimSpace(team))
	if team == "" {
		team = DefaultLeftToRight
	}

	return Mapper{leftToRight: team}
}

// LeftToRight returns the designated left to right team abbreviation.
func (m Mapper) LeftToRight() string {
	return m.leftToRight
}

// YardToX maps yardLine, 0 being the opponents goal line and 100 the teams own, for the team
// in possession.
func (m Mapper) YardToX(yardLine float64, team string) float64 {
	if strings.EqualFold(strings.TrimSpace(team), m.leftToRight) {
		return EndzoneDepth + yardLine
	}

	return LengthYards - EndzoneDepth - yardLine
}
