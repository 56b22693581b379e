package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	"github.com/leighmacdonald/gridiron-tui/internal/draw"
	"github.com/leighmacdonald/gridiron-tui/internal/field"
	"github.com/leighmacdonald/gridiron-tui/internal/playback"
	"github.com/leighmacdonald/gridiron-tui/internal/visualizer"
	"golang.org/x/exp/slices"
)

// stillScheduler never ticks. A single rendered frame has no playback.
type stillScheduler struct{}

func (stillScheduler) Every(_ time.Duration, _ func()) playback.Timer {
	return stillTimer{}
}

type stillTimer struct{}

func (stillTimer) Stop() {}

// renderSVG writes the field showing frame index of week. An empty week selects the first
// one and a negative index leaves the field without a frame.
func renderSVG(out io.Writer, conf config.Config, dataset datasource.Dataset, week string, index int) error {
	if len(dataset.Weeks) == 0 {
		return errNoWeeks
	}

	if week == "" {
		week = dataset.Weeks[0]
	}

	if !slices.Contains(dataset.Weeks, week) {
		return fmt.Errorf("%w: %s", errUnknownWeek, week)
	}

	doc := draw.NewDocument(field.LengthYards, field.WidthYards)
	field.Render(doc)

	vis := visualizer.New(doc, field.NewMapper(conf.LeftToRightTeam), dataset.Teams)
	ctrl := playback.NewController(vis, stillScheduler{}, dataset.Frames, conf.Speed())
	ctrl.SelectWeek(week)

	if index >= 0 {
		ctrl.Seek(index)
	}

	if err := doc.WriteSVG(out); err != nil {
		return errors.Join(err, errApp)
	}

	return nil
}
