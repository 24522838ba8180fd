// Package canvas provides the character-cell drawing surface for termplot.
//
// A Canvas is a dense width×height grid of Cells, each holding a glyph, two
// RGBA color channels, and style flags. Geometry rasterizers never touch
// terminal escape codes: they draw through the Canvas cell surface or
// through one of the sub-cell encoders (Braille, HalfBlock) which expose
// logical pixels at a resolution higher than one glyph per cell.
//
// All writes outside the canvas bounds are silent no-ops. Sub-cell writes
// to a cell that already carries sub-cell data merge non-destructively, so
// crossing lines coexist in one glyph instead of erasing each other.
package canvas

import (
	"github.com/mattn/go-runewidth"
)

// Style holds cell style flags.
type Style uint8

// Style flags. Combine with bitwise OR.
const (
	StyleBold Style = 1 << iota
	StyleDim
	StyleUnderline
	StyleReverse
)

// Cell is one terminal character position.
// A zero-alpha color means "terminal default" for that channel.
type Cell struct {
	Glyph rune
	Fg    RGBA
	Bg    RGBA
	Style Style
}

// Blank is the empty cell value.
var Blank = Cell{Glyph: ' '}

// IsBlank reports whether the cell renders as empty space with default colors.
func (c Cell) IsBlank() bool {
	return (c.Glyph == ' ' || c.Glyph == 0) && c.Fg.A == 0 && c.Bg.A == 0 && c.Style == 0
}

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell coordinate lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks the rectangle by n cells on every side.
// Collapses to an empty rectangle rather than inverting.
func (r Rect) Inset(n int) Rect {
	r.X += n
	r.Y += n
	r.W -= 2 * n
	r.H -= 2 * n
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Canvas is a dense grid of cells.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// New creates a blank canvas. Non-positive dimensions clamp to zero.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([]Cell, width*height)}
	c.Clear()
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the full canvas rectangle.
func (c *Canvas) Bounds() Rect {
	return Rect{W: c.width, H: c.height}
}

// Clear resets every cell to Blank.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Blank
	}
}

// At returns the cell at (x, y). Out-of-bounds reads return Blank.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Blank
	}
	return c.cells[y*c.width+x]
}

// Set writes a cell at (x, y). Out-of-bounds writes are silent no-ops.
func (c *Canvas) Set(x, y int, cell Cell) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell
}

// SetGlyph writes a glyph with a foreground color, preserving the cell's
// background. Out-of-bounds writes are silent no-ops.
func (c *Canvas) SetGlyph(x, y int, glyph rune, fg RGBA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	cell := &c.cells[y*c.width+x]
	cell.Glyph = glyph
	cell.Fg = fg
}

// WriteString writes text starting at (x, y), advancing by display width so
// wide runes occupy two cells. Text running past the right edge is dropped.
func (c *Canvas) WriteString(x, y int, text string, fg RGBA, style Style) {
	if y < 0 || y >= c.height {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= c.width {
			return
		}
		c.Set(x, y, Cell{Glyph: r, Fg: fg, Style: style})
		// The trailing half of a wide rune stays blank so the terminal can
		// place the full glyph.
		for i := 1; i < w; i++ {
			c.Set(x+i, y, Cell{Glyph: 0, Fg: fg, Style: style})
		}
		x += w
	}
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	dup := &Canvas{width: c.width, height: c.height, cells: make([]Cell, len(c.cells))}
	copy(dup.cells, c.cells)
	return dup
}

// Row returns a copy of row y, or nil when out of range.
func (c *Canvas) Row(y int) []Cell {
	if y < 0 || y >= c.height {
		return nil
	}
	row := make([]Cell, c.width)
	copy(row, c.cells[y*c.width:(y+1)*c.width])
	return row
}

// TruncateLabel shortens text to at most width display columns, appending an
// ellipsis when truncation occurred.
func TruncateLabel(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 1 {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, "…")
}
