package draw

import (
	"math"
	"strings"
)

// Strokes thinner than this, in field units, are too fine to survive rasterisation
// onto a character grid and are skipped.
const hairline = 0.05

// Cell is a single character position of a Raster.
type Cell struct {
	Rune rune
	Fg   string
	Bg   string
	Bold bool
}

// Raster is a Surface that rasterises onto a grid of character cells. Elements are kept in
// vector form, so the grid can be resized without redrawing.
type Raster struct {
	width  float64
	height float64
	cols   int
	rows   int
	scene  scene
}

func NewRaster(width float64, height float64, cols int, rows int) *Raster {
	raster := &Raster{width: width, height: height, scene: newScene()}
	raster.Resize(cols, rows)

	return raster
}

func (r *Raster) Resize(cols int, rows int) {
	r.cols = max(1, cols)
	r.rows = max(1, rows)
}

func (r *Raster) Size() (int, int) {
	return r.cols, r.rows
}

func (r *Raster) Draw(layer Layer, shape Shape) {
	r.scene.draw(layer, shape)
}

func (r *Raster) Upsert(id string, layer Layer, shape Shape) {
	r.scene.upsert(id, layer, shape)
}

func (r *Raster) Clear(id string) {
	r.scene.clear(id)
}

func (r *Raster) Lookup(id string) (Element, bool) {
	return r.scene.lookup(id)
}

// Cells rasterises every element in paint order and returns the grid, indexed [row][col].
func (r *Raster) Cells() [][]Cell {
	grid := make([][]Cell, r.rows)
	for row := range grid {
		grid[row] = make([]Cell, r.cols)
		for col := range grid[row] {
			grid[row][col].Rune = ' '
		}
	}

	for _, elem := range r.scene.ordered() {
		r.paint(grid, elem.Shape)
	}

	return grid
}

func (r *Raster) col(x float64) int {
	return clampInt(int(math.Floor(x/r.width*float64(r.cols))), 0, r.cols-1)
}

func (r *Raster) row(y float64) int {
	return clampInt(int(math.Floor(y/r.height*float64(r.rows))), 0, r.rows-1)
}

func (r *Raster) paint(grid [][]Cell, shape Shape) {
	switch shape := shape.(type) {
	case Rect:
		bg := hexColour(shape.Fill)
		if bg == "" {
			return
		}
		for row := r.row(shape.Y); row <= r.row(shape.Y+shape.Height-0.0001); row++ {
			for col := r.col(shape.X); col <= r.col(shape.X+shape.Width-0.0001); col++ {
				grid[row][col] = Cell{Rune: ' ', Bg: bg}
			}
		}
	case Line:
		fg := hexColour(shape.Stroke)
		if fg == "" || shape.StrokeWidth < hairline {
			return
		}
		r.line(grid, shape, fg)
	case Circle:
		fg := hexColour(shape.Stroke)
		if fg == "" {
			return
		}
		for step := range 32 {
			angle := float64(step) / 32 * 2 * math.Pi
			r.plot(grid, shape.CX+shape.R*math.Cos(angle), shape.CY+shape.R*math.Sin(angle), '·', fg)
		}
	case QuadPath:
		fg := hexColour(shape.Stroke)
		if fg == "" {
			return
		}
		steps := r.cols * 2
		for step := 0; step <= steps; step++ {
			if shape.Dash != "" && (step/2)%2 == 1 {
				continue
			}
			t := float64(step) / float64(steps)
			x := (1-t)*(1-t)*shape.X1 + 2*(1-t)*t*shape.CX + t*t*shape.X2
			y := (1-t)*(1-t)*shape.Y1 + 2*(1-t)*t*shape.CY + t*t*shape.Y2
			glyph := '•'
			if shape.Dash != "" {
				glyph = '·'
			}
			r.plot(grid, x, y, glyph, fg)
		}
	case Text:
		r.text(grid, shape.X, shape.Y, shape.Anchor, shape.Content, Cell{Fg: hexColour(shape.Fill), Bold: shape.Bold})
	case Image:
		label := strings.TrimSpace(shape.Alt)
		if label == "" {
			return
		}
		r.text(grid, shape.X+shape.Width/2, shape.Y+shape.Height/2, AnchorMiddle, " "+label+" ",
			Cell{Fg: "#ffffff", Bg: "#263238", Bold: true})
	}
}

func (r *Raster) line(grid [][]Cell, line Line, fg string) {
	col1, row1 := r.col(line.X1), r.row(line.Y1)
	col2, row2 := r.col(line.X2), r.row(line.Y2)

	switch {
	case col1 == col2 && row1 == row2:
		r.set(grid, row1, col1, '╎', fg)
	case col1 == col2:
		for row := min(row1, row2); row <= max(row1, row2); row++ {
			r.set(grid, row, col1, '│', fg)
		}
	case row1 == row2:
		for col := min(col1, col2); col <= max(col1, col2); col++ {
			r.set(grid, row1, col, '─', fg)
		}
	default:
		steps := max(absInt(col2-col1), absInt(row2-row1))
		for step := 0; step <= steps; step++ {
			t := float64(step) / float64(steps)
			r.set(grid, row1+int(math.Round(t*float64(row2-row1))), col1+int(math.Round(t*float64(col2-col1))), '·', fg)
		}
	}
}

func (r *Raster) plot(grid [][]Cell, x float64, y float64, glyph rune, fg string) {
	if x < 0 || y < 0 || x > r.width || y > r.height {
		return
	}

	r.set(grid, r.row(y), r.col(x), glyph, fg)
}

// set replaces the glyph while keeping the background of whatever was underneath.
func (r *Raster) set(grid [][]Cell, row int, col int, glyph rune, fg string) {
	cell := grid[row][col]
	cell.Rune = glyph
	cell.Fg = fg
	cell.Bold = false
	grid[row][col] = cell
}

func (r *Raster) text(grid [][]Cell, x float64, y float64, anchor Anchor, content string, style Cell) {
	runes := []rune(content)
	row := r.row(y)
	start := r.col(x)

	switch anchor {
	case AnchorMiddle:
		start -= len(runes) / 2
	case AnchorEnd:
		start -= len(runes)
	case AnchorStart:
	}

	for idx, glyph := range runes {
		col := start + idx
		if col < 0 || col >= r.cols {
			continue
		}
		cell := grid[row][col]
		cell.Rune = glyph
		cell.Fg = style.Fg
		cell.Bold = style.Bold
		if style.Bg != "" {
			cell.Bg = style.Bg
		}
		grid[row][col] = cell
	}
}

func hexColour(value string) string {
	if strings.HasPrefix(value, "#") {
		return value
	}

	return ""
}

func clampInt(value int, low int, high int) int {
	return max(low, min(high, value))
}

func absInt(value int) int {
	if value < 0 {
		return -value
	}

	return value
}
