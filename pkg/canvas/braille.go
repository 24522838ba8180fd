package canvas

// Braille renders logical pixels through the Unicode braille block
// (U+2800–U+28FF). Each cell addresses a 2-column × 4-row dot grid, giving
// 8 pixels per cell. Dots accumulate by bitwise OR, so writes to distinct
// sub-dots of one cell all persist.
type Braille struct {
	canvas *Canvas
	region Rect
}

// brailleBase is the first codepoint of the braille patterns block; the
// low 8 bits of a pattern codepoint are the dot mask.
const brailleBase = 0x2800

// brailleDots maps (row, col) within a cell to the dot bit defined by the
// Unicode braille layout: dots 1–3 and 7 form the left column, 4–6 and 8
// the right.
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// NewBraille creates a braille encoder over a region of the canvas.
// The region is clamped to the canvas bounds.
func NewBraille(c *Canvas, region Rect) *Braille {
	return &Braille{canvas: c, region: clampRect(region, c.Bounds())}
}

// Size returns the surface extent: 2 pixels per cell column, 4 per row.
func (b *Braille) Size() (w, h int) {
	return b.region.W * 2, b.region.H * 4
}

// SetPixel lights the dot at logical pixel (x, y). Writes outside the
// region are silent no-ops. When the target cell already holds a braille
// glyph the dot masks combine by OR and the colors blend; any other glyph
// is replaced.
func (b *Braille) SetPixel(x, y int, c RGBA) {
	if x < 0 || y < 0 {
		return
	}
	cx := b.region.X + x/2
	cy := b.region.Y + y/4
	if !b.region.Contains(cx, cy) {
		return
	}

	dot := brailleDots[y%4][x%2]
	cell := b.canvas.At(cx, cy)
	if mask, ok := brailleMask(cell.Glyph); ok {
		cell.Glyph = brailleBase | mask | dot
		if cell.Fg.IsSet() && cell.Fg != c {
			cell.Fg = Blend(cell.Fg, c)
		} else {
			cell.Fg = c
		}
	} else {
		cell.Glyph = brailleBase | dot
		cell.Fg = c
	}
	b.canvas.Set(cx, cy, cell)
}

// brailleMask extracts the dot mask from a braille glyph.
// Non-braille glyphs (including blanks) report ok=false.
func brailleMask(glyph rune) (rune, bool) {
	if glyph < brailleBase || glyph > brailleBase+0xFF {
		return 0, false
	}
	return glyph - brailleBase, true
}

func clampRect(r, bounds Rect) Rect {
	if r.X < bounds.X {
		r.W -= bounds.X - r.X
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.H -= bounds.Y - r.Y
		r.Y = bounds.Y
	}
	if r.X+r.W > bounds.X+bounds.W {
		r.W = bounds.X + bounds.W - r.X
	}
	if r.Y+r.H > bounds.Y+bounds.H {
		r.H = bounds.Y + bounds.H - r.Y
	}
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}
