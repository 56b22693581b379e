package field

import (
	"strconv"

	"github.com/leighmacdonald/gridiron-tui/internal/draw"
)

// Render paints the static field onto surface. It is meant to be called once per surface.
func Render(surface draw.Surface) {
	surface.Draw(draw.LayerField, draw.Rect{Width: LengthYards, Height: WidthYards, Style: draw.Style{Fill: ColourField}})

	// Yard lines stop at the goal lines, end zones stay unmarked.
	for yard := int(EndzoneDepth); yard <= int(LengthYards-EndzoneDepth); yard++ {
		style := draw.Style{Stroke: ColourFaint, StrokeWidth: FaintLineWidth}
		if yard%5 == 0 {
			style = draw.Style{Stroke: ColourLine, StrokeWidth: BoldLineWidth}
		}

		x := float64(yard)
		surface.Draw(draw.LayerField, draw.Line{X1: x, Y1: 0, X2: x, Y2: WidthYards, Style: style})
	}

	hashStyle := draw.Style{Stroke: ColourLine, StrokeWidth: HashLineWidth}
	for yard := int(EndzoneDepth) + 1; yard <= int(LengthYards-EndzoneDepth)-1; yard++ {
		x := float64(yard)
		surface.Draw(draw.LayerField, draw.Line{
			X1: x, Y1: HashFromSideline, X2: x, Y2: HashFromSideline + HashLength, Style: hashStyle,
		})
		surface.Draw(draw.LayerField, draw.Line{
			X1: x, Y1: WidthYards - HashFromSideline, X2: x, Y2: WidthYards - HashFromSideline - HashLength, Style: hashStyle,
		})
	}

	renderNumbers(surface)

	surface.Draw(draw.LayerField, draw.Circle{
		CX: LengthYards / 2, CY: WidthYards / 2, R: MidfieldRadius,
		Style: draw.Style{Fill: ColourMidFill, Stroke: ColourMidRing, StrokeWidth: 0.05},
	})
	surface.Draw(draw.LayerField, draw.Line{
		X1: LengthYards / 2, Y1: 0, X2: LengthYards / 2, Y2: WidthYards,
		Style: draw.Style{Stroke: ColourLine, StrokeWidth: MidfieldLineWidth},
	})

	endzone := draw.Style{Fill: ColourEndzone}
	surface.Draw(draw.LayerField, draw.Rect{X: 0, Y: 0, Width: EndzoneDepth, Height: WidthYards, Style: endzone})
	surface.Draw(draw.LayerField, draw.Rect{X: LengthYards - EndzoneDepth, Y: 0, Width: EndzoneDepth, Height: WidthYards, Style: endzone})
}

// renderNumbers draws 10 through 50 from both goal lines, near both sidelines. The far
// side numbers are rotated so they read correctly from the opposite sideline.
func renderNumbers(surface draw.Surface) {
	nearY := NumberFontSize/2 + 1
	farY := WidthYards - 1 - NumberFontSize/2
	style := draw.Style{Fill: ColourNumerals, Opacity: 0.95}

	for n := 10; n <= 50; n += 10 {
		label := strconv.Itoa(n)
		positions := []float64{EndzoneDepth + float64(n), LengthYards - EndzoneDepth - float64(n)}
		if positions[0] == positions[1] {
			positions = positions[:1]
		}

		for _, x := range positions {
			surface.Draw(draw.LayerField, draw.Text{
				X: x, Y: nearY, Content: label, Size: NumberFontSize, Family: NumberFamily,
				Anchor: draw.AnchorMiddle, Baseline: draw.BaselineHanging, Style: style,
			})
			surface.Draw(draw.LayerField, draw.Text{
				X: x, Y: farY, Content: label, Size: NumberFontSize, Family: NumberFamily,
				Anchor: draw.AnchorMiddle, Rotate: 180, Style: style,
			})
		}
	}
}
