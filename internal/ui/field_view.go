package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/gridiron-tui/internal/draw"
)

// renderCells draws a raster grid, merging neighbouring cells of the same style into a single
// styled run per line.
func renderCells(cells [][]draw.Cell) string {
	lines := make([]string, len(cells))

	for rowIdx, row := range cells {
		var (
			builder strings.Builder
			run     strings.Builder
			current draw.Cell
		)

		flush := func() {
			if run.Len() == 0 {
				return
			}

			builder.WriteString(cellStyle(current).Render(run.String()))
			run.Reset()
		}

		for colIdx, cell := range row {
			if colIdx == 0 || !sameStyle(cell, current) {
				flush()
				current = cell
			}

			glyph := cell.Rune
			if glyph == 0 {
				glyph = ' '
			}

			run.WriteRune(glyph)
		}

		flush()
		lines[rowIdx] = builder.String()
	}

	return strings.Join(lines, "\n")
}

func sameStyle(left draw.Cell, right draw.Cell) bool {
	return left.Fg == right.Fg && left.Bg == right.Bg && left.Bold == right.Bold
}

func cellStyle(cell draw.Cell) lipgloss.Style {
	style := lipgloss.NewStyle().Inline(true)
	if cell.Fg != "" {
		style = style.Foreground(lipgloss.Color(cell.Fg))
	}

	if cell.Bg != "" {
		style = style.Background(lipgloss.Color(cell.Bg))
	}

	if cell.Bold {
		style = style.Bold(true)
	}

	return style
}
