// Package visualizer draws the per play overlays: the position marker, the team logo and the
// trajectory or scoring banner for the transition from the previous play.
package visualizer

import (
	"math"

	"github.com/leighmacdonald/gridiron-tui/internal/draw"
	"github.com/leighmacdonald/gridiron-tui/internal/field"
	"github.com/leighmacdonald/gridiron-tui/internal/play"
)

// Element ids. Each id exists at most once on a surface.
const (
	IDMarker      = "marker"
	IDLogo        = "logo"
	IDKickArc     = "kick-arc"
	IDKickPuntArc = "kick-punt-arc"
	IDPassArc     = "pass-arc"
	IDRunLine     = "run-line"
	IDFieldGoal   = "fg-arc"
	IDTouchdown   = "td-line"
	IDEventText   = "event-text"
)

// OverlayIDs are removed before every frame is drawn.
var OverlayIDs = []string{IDKickArc, IDKickPuntArc, IDPassArc, IDRunLine, IDFieldGoal, IDTouchdown, IDEventText}

const (
	LogoSize = 8.0

	colourMarker = "#ffeb3b"
	colourPass   = "#1e88e5"
	colourRun    = "#e53935"
	colourWhite  = "#ffffff"
	bannerFamily = "Arial, Helvetica, sans-serif"
)

// Visualizer renders frames onto a surface. The surface is expected to already hold the
// static field.
type Visualizer struct {
	surface draw.Surface
	mapper  field.Mapper
	teams   map[string]play.Team
}

func New(surface draw.Surface, mapper field.Mapper, teams map[string]play.Team) *Visualizer {
	if teams == nil {
		teams = map[string]play.Team{}
	}

	return &Visualizer{surface: surface, mapper: mapper, teams: teams}
}

// Reset removes every overlay. Calling it repeatedly is harmless.
func (v *Visualizer) Reset() {
	for _, id := range OverlayIDs {
		v.surface.Clear(id)
	}
}

// Render draws cur, using prev to decide which trajectory to show. A nil cur hides the
// marker and logo, a nil prev draws only the marker and logo.
func (v *Visualizer) Render(prev *play.Frame, cur *play.Frame) {
	v.Reset()

	if cur == nil {
		v.surface.Clear(IDMarker)
		v.surface.Clear(IDLogo)

		return
	}

	curX := v.mapper.YardToX(cur.YardLine, cur.PosTeam)
	v.place(curX, cur.DisplayTeam())

	if prev == nil {
		return
	}

	prevX := v.mapper.YardToX(prev.YardLine, prev.PosTeam)

	if prev.Traits.KickOrPunt() {
		v.surface.Upsert(IDKickArc, draw.LayerOverlay, arc(prevX, curX, 4, 20, 0.25, draw.Style{
			Stroke: colourWhite, StrokeWidth: 0.18, Dash: "0.6 0.6", Opacity: 0.95,
		}))
	}

	if prev.Traits.LeadsToExtraPoint() && cur.Traits.ExtraPoint() {
		// The extra point is spotted where the touchdown ended.
		v.place(prevX, cur.DisplayTeam())
		v.banner(truncate(cur.Desc, 80, "Extra Point"), 3, false)

		return
	}

	if cur.Traits.KickOrPunt() {
		return
	}

	if cur.Traits.Pass() {
		v.surface.Upsert(IDPassArc, draw.LayerOverlay, arc(prevX, curX, 4, 24, 0.35, draw.Style{
			Stroke: colourPass, StrokeWidth: 0.2, Opacity: 0.98,
		}))
	}

	// A scoring play shows only its banner.
	switch {
	case cur.Traits.Scoring():
		v.banner(scoringLabel(*cur), 3.2, true)
	case cur.Traits.Run():
		v.surface.Upsert(IDRunLine, draw.LayerOverlay, draw.Line{
			X1: prevX, Y1: midY(), X2: curX, Y2: midY(),
			Style: draw.Style{Stroke: colourRun, StrokeWidth: 0.28, Opacity: 0.98},
		})
	case cur.Traits.FieldGoal():
		targetX := 0.0
		if curX > field.LengthYards/2 {
			targetX = field.LengthYards
		}
		v.surface.Upsert(IDFieldGoal, draw.LayerOverlay, arc(prevX, targetX, 8, 40, 0.25, draw.Style{
			Stroke: colourWhite, StrokeWidth: 0.22, Opacity: 0.95,
		}))
	case cur.Traits.TouchdownLabel():
		endCenterX := field.EndzoneDepth / 2
		if curX > field.LengthYards/2 {
			endCenterX = field.LengthYards - field.EndzoneDepth/2
		}
		v.surface.Upsert(IDTouchdown, draw.LayerOverlay, draw.Line{
			X1: prevX, Y1: midY(), X2: endCenterX, Y2: midY(),
			Style: draw.Style{Stroke: colourMarker, StrokeWidth: 0.36, Opacity: 0.98},
		})
	}
}

// place positions the marker line and the logo of team at x.
func (v *Visualizer) place(x float64, team string) {
	v.surface.Upsert(IDMarker, draw.LayerMarker, draw.Line{
		X1: x, Y1: 0, X2: x, Y2: field.WidthYards,
		Style: draw.Style{Stroke: colourMarker, StrokeWidth: 0.2, Opacity: 0.95},
	})

	v.surface.Upsert(IDLogo, draw.LayerLogo, draw.Image{
		X:      x - LogoSize/2,
		Y:      midY() - LogoSize/2,
		Width:  LogoSize,
		Height: LogoSize,
		Href:   v.teams[team].Logo(),
		Alt:    team,
	})
}

func (v *Visualizer) banner(content string, size float64, bold bool) {
	v.surface.Upsert(IDEventText, draw.LayerText, draw.Text{
		X:       field.LengthYards / 2,
		Y:       field.WidthYards * 0.12,
		Content: content,
		Size:    size,
		Family:  bannerFamily,
		Anchor:  draw.AnchorMiddle,
		Bold:    bold,
		Style:   draw.Style{Fill: colourWhite},
	})
}

func scoringLabel(frame play.Frame) string {
	switch {
	case frame.Traits.Touchdown():
		team := frame.PosTeam
		if team == "" {
			team = frame.DefTeam
		}
		if team == "" {
			return "TOUCHDOWN"
		}

		return "TOUCHDOWN — " + team
	case frame.Traits.FieldGoal():
		return withDesc("FIELD GOAL", frame.Desc)
	default:
		return withDesc("EXTRA POINT", frame.Desc)
	}
}

func withDesc(label string, desc string) string {
	if desc == "" {
		return label
	}

	return label + " — " + truncate(desc, 60, "")
}

// truncate cuts value to at most limit runes, returning fallback for an empty value.
func truncate(value string, limit int, fallback string) string {
	if value == "" {
		return fallback
	}

	runes := []rune(value)
	if len(runes) > limit {
		return string(runes[:limit])
	}

	return value
}

// arc builds a quadratic curve between x1 and x2 on the field's horizontal centre line. The
// peak height is factor times the horizontal span, clamped to [low, high].
func arc(x1 float64, x2 float64, low float64, high float64, factor float64, style draw.Style) draw.QuadPath {
	height := math.Min(high, math.Max(low, math.Abs(x2-x1)*factor))

	return draw.QuadPath{
		X1: x1, Y1: midY(),
		CX: (x1 + x2) / 2, CY: midY() - height,
		X2: x2, Y2: midY(),
		Style: style,
	}
}

func midY() float64 {
	return field.WidthYards / 2
}
