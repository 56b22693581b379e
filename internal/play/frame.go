// Package play turns play-by-play and team records into the ordered frames that drive the
// field animation.
package play

import (
	"math"
	"strconv"
	"strings"

	"github.com/leighmacdonald/gridiron-tui/internal/csvrows"
	"golang.org/x/exp/slices"
)

// Column names used by the play-by-play source.
const (
	ColWeek     = "week"
	ColPosTeam  = "posteam"
	ColDefTeam  = "defteam"
	ColPlayType = "play_type"
	ColYardLine = "yardline_100"
	ColDesc     = "desc"
)

// Frame is a single play positioned in time. YardLine is the distance from the goal line
// the possessing team is attacking.
type Frame struct {
	PosTeam  string
	DefTeam  string
	PlayType string
	Kind     Kind
	Traits   Traits
	YardLine float64
	Desc     string
}

// NewFrame builds a frame, classifying its play type once.
func NewFrame(posTeam string, defTeam string, playType string, yardLine float64, desc string) Frame {
	kind, traits := Classify(playType)

	return Frame{
		PosTeam:  posTeam,
		DefTeam:  defTeam,
		PlayType: playType,
		Kind:     kind,
		Traits:   traits,
		YardLine: yardLine,
		Desc:     desc,
	}
}

// DisplayTeam is the team whose logo represents the frame. On kickoffs and punts that is
// the receiving team.
func (f Frame) DisplayTeam() string {
	if f.Traits.KickOrPunt() && f.DefTeam != "" {
		return f.DefTeam
	}

	return f.PosTeam
}

// Build selects the records for week, in source order, and converts them into frames. Rows
// without any team or without a finite yard line are skipped.
func Build(records []csvrows.Record, week string) []Frame {
	frames := []Frame{}

	for _, record := range records {
		if record[ColWeek] != week {
			continue
		}

		frame, ok := FromRecord(record)
		if !ok {
			continue
		}

		frames = append(frames, frame)
	}

	return frames
}

// FromRecord converts a single record, reporting false when it does not describe a
// usable frame.
func FromRecord(record csvrows.Record) (Frame, bool) {
	posTeam := strings.TrimSpace(record[ColPosTeam])
	defTeam := strings.TrimSpace(record[ColDefTeam])
	if posTeam == "" && defTeam == "" {
		return Frame{}, false
	}

	yardLine, errYard := strconv.ParseFloat(strings.TrimSpace(record[ColYardLine]), 64)
	if errYard != nil || math.IsNaN(yardLine) || math.IsInf(yardLine, 0) {
		return Frame{}, false
	}

	return NewFrame(posTeam, defTeam, record[ColPlayType], yardLine, record[ColDesc]), true
}

// Weeks returns the distinct, non-empty week values sorted numerically. Values that are not
// numbers sort after numeric ones.
func Weeks(records []csvrows.Record) []string {
	seen := map[string]bool{}
	weeks := []string{}

	for _, record := range records {
		week := record[ColWeek]
		if week == "" || seen[week] {
			continue
		}

		seen[week] = true
		weeks = append(weeks, week)
	}

	slices.SortStableFunc(weeks, compareWeeks)

	return weeks
}

func compareWeeks(left string, right string) int {
	leftNum, errLeft := strconv.ParseFloat(strings.TrimSpace(left), 64)
	rightNum, errRight := strconv.ParseFloat(strings.TrimSpace(right), 64)

	switch {
	case errLeft == nil && errRight == nil:
		switch {
		case leftNum < rightNum:
			return -1
		case leftNum > rightNum:
			return 1
		default:
			return 0
		}
	case errLeft == nil:
		return -1
	case errRight == nil:
		return 1
	default:
		return strings.Compare(left, right)
	}
}
