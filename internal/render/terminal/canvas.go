// Package terminal is a text-mode backend built on tcell. Logical pixels are
// mapped onto terminal cells; every shape is rasterised into a cell buffer
// which is flushed to the screen once per frame.
package terminal

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// cell is one character position on the terminal.
type cell struct {
	bg rgb
	fg rgb
	ch rune
}

type rgb struct {
	r, g, b float64
}

func toRGB(clr color.Color) (rgb, float64) {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	return rgb{float64(n.R), float64(n.G), float64(n.B)}, float64(n.A) / 255
}

func (c rgb) blend(over rgb, alpha float64) rgb {
	return rgb{
		r: c.r*(1-alpha) + over.r*alpha,
		g: c.g*(1-alpha) + over.g*alpha,
		b: c.b*(1-alpha) + over.b*alpha,
	}
}

func (c rgb) tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.r), int32(c.g), int32(c.b))
}

// Canvas is a render.Image backed by a grid of terminal cells. Its logical
// size is in pixels; the cell grid is the terminal size.
type Canvas struct {
	width, height int // logical pixels
	cols, rows    int // terminal cells
	cells         []cell
}

// NewCanvas creates a canvas of the given logical size drawn onto cols x rows
// cells.
func NewCanvas(width, height, cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height, cols, rows)
	return c
}

// Resize changes the logical and cell dimensions, clearing the canvas when
// either changes.
func (c *Canvas) Resize(width, height, cols, rows int) {
	if width == c.width && height == c.height && cols == c.cols && rows == c.rows {
		return
	}
	c.width, c.height = max(width, 1), max(height, 1)
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.cells = make([]cell, c.cols*c.rows)
	c.Clear()
}

// Bounds returns the logical bounds of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Size returns the logical width and height.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Fill paints every cell with the given colour.
func (c *Canvas) Fill(clr color.Color) {
	col, _ := toRGB(clr)
	for i := range c.cells {
		c.cells[i] = cell{bg: col, fg: col, ch: ' '}
	}
}

// Clear resets the canvas to black.
func (c *Canvas) Clear() {
	c.Fill(color.Black)
}

// Dispose is a no-op; the canvas holds no external resources.
func (c *Canvas) Dispose() {}

// cellX converts a logical x coordinate to a column index.
func (c *Canvas) cellX(x float64) int {
	return int(math.Floor(x * float64(c.cols) / float64(c.width)))
}

// cellY converts a logical y coordinate to a row index.
func (c *Canvas) cellY(y float64) int {
	return int(math.Floor(y * float64(c.rows) / float64(c.height)))
}

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

// paint blends the background of a cell.
func (c *Canvas) paint(col, row int, clr rgb, alpha float64) {
	if p := c.at(col, row); p != nil {
		p.bg = p.bg.blend(clr, alpha)
		if p.ch == ' ' {
			p.fg = p.bg
		}
	}
}

// mark places a glyph in a cell.
func (c *Canvas) mark(col, row int, ch rune, clr rgb, alpha float64) {
	if p := c.at(col, row); p != nil {
		p.ch = ch
		p.fg = p.bg.blend(clr, alpha)
	}
}

// fillRect paints every cell whose area overlaps the logical rectangle.
func (c *Canvas) fillRect(x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 || math.IsNaN(w+h+x+y) {
		return
	}
	col, alpha := toRGB(clr)
	x0, y0 := c.cellX(x), c.cellY(y)
	x1, y1 := c.cellX(x+w-1e-9), c.cellY(y+h-1e-9)
	for row := max(y0, 0); row <= min(y1, c.rows-1); row++ {
		for cx := max(x0, 0); cx <= min(x1, c.cols-1); cx++ {
			c.paint(cx, row, col, alpha)
		}
	}
}

// strokeRect marks the cells along the outline of a logical rectangle.
func (c *Canvas) strokeRect(x, y, w, h float64, clr color.Color) {
	c.line(x, y, x+w, y, clr)
	c.line(x+w, y, x+w, y+h, clr)
	c.line(x+w, y+h, x, y+h, clr)
	c.line(x, y+h, x, y, clr)
}

// fillCircle paints the cells whose centres fall inside the circle.
func (c *Canvas) fillCircle(cx, cy, r float64, clr color.Color) {
	col, alpha := toRGB(clr)
	x0, y0 := c.cellX(cx-r), c.cellY(cy-r)
	x1, y1 := c.cellX(cx+r), c.cellY(cy+r)
	cw := float64(c.width) / float64(max(c.cols, 1))
	ch := float64(c.height) / float64(max(c.rows, 1))
	hit := false
	for row := y0; row <= y1; row++ {
		for x := x0; x <= x1; x++ {
			px := (float64(x) + 0.5) * cw
			py := (float64(row) + 0.5) * ch
			if (px-cx)*(px-cx)+(py-cy)*(py-cy) <= r*r {
				c.paint(x, row, col, alpha)
				hit = true
			}
		}
	}
	// Circles smaller than a cell still leave a mark.
	if !hit {
		c.mark(c.cellX(cx), c.cellY(cy), 'o', col, alpha)
	}
}

// line marks the cells crossed by a logical line segment.
func (c *Canvas) line(x0, y0, x1, y1 float64, clr color.Color) {
	col, alpha := toRGB(clr)
	ax, ay := float64(c.cellX(x0)), float64(c.cellY(y0))
	bx, by := float64(c.cellX(x1)), float64(c.cellY(y1))
	steps := int(math.Max(math.Abs(bx-ax), math.Abs(by-ay)))
	if steps > 4*(c.cols+c.rows) {
		steps = 4 * (c.cols + c.rows)
	}
	glyph := lineGlyph(x1-x0, y1-y0)
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		c.mark(int(math.Round(ax+(bx-ax)*t)), int(math.Round(ay+(by-ay)*t)), glyph, col, alpha)
	}
}

func lineGlyph(dx, dy float64) rune {
	switch {
	case math.Abs(dy) < math.Abs(dx)/2:
		return '-'
	case math.Abs(dx) < math.Abs(dy)/2:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// text writes a string starting at the cell containing (x, y).
func (c *Canvas) text(s string, x, y int, clr color.Color) {
	col, alpha := toRGB(clr)
	cx, cy := c.cellX(float64(x)), c.cellY(float64(y))
	for i, r := range []rune(s) {
		c.mark(cx+i, cy, r, col, alpha)
	}
}

// Flush copies the cell buffer onto the screen. The caller shows the screen.
func (c *Canvas) Flush(screen tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			p := c.cells[row*c.cols+col]
			style := tcell.StyleDefault.Background(p.bg.tcell()).Foreground(p.fg.tcell())
			screen.SetContent(col, row, p.ch, nil, style)
		}
	}
}
