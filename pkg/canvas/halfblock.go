package canvas

// Half-block glyphs. The upper half renders through the foreground channel
// and the lower half through the background channel, which lets one cell
// carry two independently colored pixels.
const (
	glyphUpper = '▀'
	glyphLower = '▄'
	glyphFull  = '█'
)

// HalfBlock renders logical pixels as vertical half blocks: each cell is
// one pixel wide and two pixels tall. Writing both halves of a cell with
// different colors keeps both by pairing the upper-half glyph's foreground
// with the lower color in the background channel; writing the same half
// twice blends the colors.
type HalfBlock struct {
	canvas *Canvas
	region Rect
}

// NewHalfBlock creates a half-block encoder over a region of the canvas.
// The region is clamped to the canvas bounds.
func NewHalfBlock(c *Canvas, region Rect) *HalfBlock {
	return &HalfBlock{canvas: c, region: clampRect(region, c.Bounds())}
}

// Size returns the surface extent: 1 pixel per cell column, 2 per row.
func (h *HalfBlock) Size() (w, hgt int) {
	return h.region.W, h.region.H * 2
}

// SetPixel lights the half-cell pixel at (x, y). Writes outside the region
// are silent no-ops; existing half-block state in the target cell merges
// rather than being overwritten.
func (h *HalfBlock) SetPixel(x, y int, c RGBA) {
	if x < 0 || y < 0 {
		return
	}
	cx := h.region.X + x
	cy := h.region.Y + y/2
	if !h.region.Contains(cx, cy) {
		return
	}

	upper, lower := decodeHalves(h.canvas.At(cx, cy))
	if y%2 == 0 {
		upper = mergeHalf(upper, c)
	} else {
		lower = mergeHalf(lower, c)
	}
	h.canvas.Set(cx, cy, encodeHalves(upper, lower))
}

func mergeHalf(existing, c RGBA) RGBA {
	if existing.IsSet() && existing != c {
		return Blend(existing, c)
	}
	return c
}

// decodeHalves recovers the two logical pixel colors from a cell.
// Cells holding anything but half-block state decode as empty.
func decodeHalves(cell Cell) (upper, lower RGBA) {
	switch cell.Glyph {
	case glyphUpper:
		return cell.Fg, cell.Bg
	case glyphLower:
		return cell.Bg, cell.Fg
	case glyphFull:
		return cell.Fg, cell.Fg
	default:
		return RGBA{}, RGBA{}
	}
}

// encodeHalves picks the glyph and channel assignment for a pair of half
// pixels: upper-only, lower-only, full block when both match, and
// upper-over-lower via fg/bg when they differ.
func encodeHalves(upper, lower RGBA) Cell {
	switch {
	case upper.IsSet() && lower.IsSet():
		if upper == lower {
			return Cell{Glyph: glyphFull, Fg: upper}
		}
		return Cell{Glyph: glyphUpper, Fg: upper, Bg: lower}
	case upper.IsSet():
		return Cell{Glyph: glyphUpper, Fg: upper}
	case lower.IsSet():
		return Cell{Glyph: glyphLower, Fg: lower}
	default:
		return Blank
	}
}
