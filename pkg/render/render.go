// Package render draws the textual furniture around panel surfaces: titles,
// axis lines with tick labels, legends, strip labels, and panel borders.
//
// Every function takes an available area, draws into the canvas, and
// returns the area left over for the next element, so the pipeline can
// compose the frame outside-in: titles first, then the legend, then the
// faceted panels with their axes. Drawing into an area too small to hold
// an element degrades by skipping it; nothing here errors.
package render

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/termplot/pkg/canvas"
	"github.com/matzehuels/termplot/pkg/plot"
	"github.com/matzehuels/termplot/pkg/scale"
)

// Gutter sizes around each panel's plot surface.
const (
	// yGutterWidth reserves columns left of the panel for y tick labels and
	// the axis line.
	yGutterWidth = 7
	// xGutterHeight reserves rows below the panel for the axis line and x
	// tick labels.
	xGutterHeight = 2
)

// legendMaxWidth caps the legend column so long category names cannot
// swallow the plot area.
const legendMaxWidth = 18

// Titles draws the title block and bottom labels, returning the area left
// for panels. Title and subtitle center on top; the x axis label centers
// below the panels; the caption sits dim in the bottom-left. A y axis
// label runs vertically down the left edge.
func Titles(c *canvas.Canvas, labels plot.Labels, theme plot.Theme) canvas.Rect {
	area := c.Bounds()
	text := hexColor(theme.TextColor)

	if labels.Title != "" && area.H > 0 {
		writeCentered(c, area, area.Y, labels.Title, text, canvas.StyleBold)
		area.Y++
		area.H--
	}
	if labels.Subtitle != "" && area.H > 0 {
		writeCentered(c, area, area.Y, labels.Subtitle, text, canvas.StyleDim)
		area.Y++
		area.H--
	}
	if labels.Caption != "" && area.H > 0 {
		c.WriteString(area.X, area.Y+area.H-1, canvas.TruncateLabel(labels.Caption, area.W), text, canvas.StyleDim)
		area.H--
	}
	if labels.X != "" && area.H > 0 {
		writeCentered(c, area, area.Y+area.H-1, labels.X, text, 0)
		area.H--
	}
	if labels.Y != "" && area.W > 2 {
		writeVertical(c, area, labels.Y, text)
		area.X += 2
		area.W -= 2
	}
	return area
}

// Legend draws the color legend along the right edge and returns the
// remaining area. A nil or single-level color map draws nothing; so does
// an area too narrow to give the panels reasonable room.
func Legend(c *canvas.Canvas, area canvas.Rect, colors *scale.ColorMap, title string, theme plot.Theme) canvas.Rect {
	if colors == nil || colors.Levels == nil || colors.Levels.Len() < 2 {
		return area
	}

	width := runewidth.StringWidth(title)
	for _, level := range colors.Levels.Levels {
		if w := runewidth.StringWidth(level) + 2; w > width {
			width = w
		}
	}
	if width > legendMaxWidth {
		width = legendMaxWidth
	}
	if area.W-width-1 < 2*yGutterWidth {
		return area
	}

	x := area.X + area.W - width
	y := area.Y
	text := hexColor(theme.TextColor)
	if title != "" {
		c.WriteString(x, y, canvas.TruncateLabel(title, width), text, canvas.StyleBold)
		y++
	}
	for _, level := range colors.Levels.Levels {
		if y >= area.Y+area.H {
			break
		}
		c.SetGlyph(x, y, '■', colors.Color(level))
		c.WriteString(x+2, y, canvas.TruncateLabel(level, width-2), text, 0)
		y++
	}

	area.W -= width + 1
	return area
}

// Border draws a box around the region and returns the inset interior.
// Regions too small to hold a border pass through unchanged.
func Border(c *canvas.Canvas, region canvas.Rect, theme plot.Theme) canvas.Rect {
	if region.W < 3 || region.H < 3 {
		return region
	}
	axis := hexColor(theme.AxisColor)
	right := region.X + region.W - 1
	bottom := region.Y + region.H - 1

	c.SetGlyph(region.X, region.Y, '┌', axis)
	c.SetGlyph(right, region.Y, '┐', axis)
	c.SetGlyph(region.X, bottom, '└', axis)
	c.SetGlyph(right, bottom, '┘', axis)
	for x := region.X + 1; x < right; x++ {
		c.SetGlyph(x, region.Y, '─', axis)
		c.SetGlyph(x, bottom, '─', axis)
	}
	for y := region.Y + 1; y < bottom; y++ {
		c.SetGlyph(region.X, y, '│', axis)
		c.SetGlyph(right, y, '│', axis)
	}
	return region.Inset(1)
}

// Strip draws a facet strip label across the top row of a panel region,
// rendered in reverse video the full panel width.
func Strip(c *canvas.Canvas, x, y, width int, title string, theme plot.Theme) {
	text := hexColor(theme.TextColor)
	label := canvas.TruncateLabel(title, width)
	pad := (width - runewidth.StringWidth(label)) / 2
	for i := 0; i < width; i++ {
		c.Set(x+i, y, canvas.Cell{Glyph: ' ', Fg: text, Style: canvas.StyleReverse})
	}
	c.WriteString(x+pad, y, label, text, canvas.StyleReverse)
}

// Axes reserves the tick gutters inside region, draws the two axis lines
// with tick marks and labels, and returns the inner plot rectangle. The
// horizontal axis labels whichever scale feeds horizontal position, so
// flipped coordinates label correctly without special cases upstream.
func Axes(c *canvas.Canvas, region canvas.Rect, scales *scale.Set, flipped bool, theme plot.Theme) canvas.Rect {
	inner := canvas.Rect{
		X: region.X + yGutterWidth,
		Y: region.Y,
		W: region.W - yGutterWidth,
		H: region.H - xGutterHeight,
	}
	if inner.Empty() {
		return canvas.Rect{}
	}

	axis := hexColor(theme.AxisColor)
	text := hexColor(theme.TextColor)
	axisX := inner.X - 1
	axisY := inner.Y + inner.H

	for y := inner.Y; y < axisY; y++ {
		c.SetGlyph(axisX, y, '│', axis)
	}
	for x := inner.X; x < inner.X+inner.W; x++ {
		c.SetGlyph(x, axisY, '─', axis)
	}
	c.SetGlyph(axisX, axisY, '└', axis)

	hScale, vScale := scales.X, scales.Y
	hLevels := scales.XLevels
	var vLevels *scale.Discrete
	if flipped {
		hScale, vScale = scales.Y, scales.X
		hLevels, vLevels = nil, scales.XLevels
	}

	drawHTicks(c, inner, axisY, hScale, hLevels, axis, text, theme.Grid)
	drawVTicks(c, inner, axisX, region.X, vScale, vLevels, axis, text, theme.Grid)
	return inner
}

func drawHTicks(c *canvas.Canvas, inner canvas.Rect, axisY int, s *scale.Continuous, levels *scale.Discrete, axis, text canvas.RGBA, grid bool) {
	type tick struct {
		norm  float64
		label string
	}
	var ticks []tick
	if levels != nil {
		n := levels.Len()
		for i, level := range levels.Levels {
			ticks = append(ticks, tick{norm: (float64(i) + 0.5) / float64(n), label: level})
		}
	} else {
		for _, v := range s.Breaks(targetBreaks(inner.W, 10)) {
			ticks = append(ticks, tick{norm: s.Normalize(v), label: formatTick(v)})
		}
	}

	for _, tk := range ticks {
		if tk.norm < 0 || tk.norm > 1 {
			continue
		}
		col := inner.X + int(tk.norm*float64(inner.W-1)+0.5)
		c.SetGlyph(col, axisY, '┴', axis)
		if grid {
			drawGridColumn(c, inner, col, axis)
		}
		label := canvas.TruncateLabel(tk.label, inner.W)
		start := col - runewidth.StringWidth(label)/2
		if max := inner.X + inner.W - runewidth.StringWidth(label); start > max {
			start = max
		}
		if start < inner.X {
			start = inner.X
		}
		c.WriteString(start, axisY+1, label, text, 0)
	}
}

func drawVTicks(c *canvas.Canvas, inner canvas.Rect, axisX, gutterX int, s *scale.Continuous, levels *scale.Discrete, axis, text canvas.RGBA, grid bool) {
	type tick struct {
		norm  float64
		label string
	}
	var ticks []tick
	if levels != nil {
		n := levels.Len()
		for i, level := range levels.Levels {
			ticks = append(ticks, tick{norm: (float64(i) + 0.5) / float64(n), label: level})
		}
	} else {
		for _, v := range s.Breaks(targetBreaks(inner.H, 4)) {
			ticks = append(ticks, tick{norm: s.Normalize(v), label: formatTick(v)})
		}
	}

	gutterW := axisX - gutterX
	for _, tk := range ticks {
		if tk.norm < 0 || tk.norm > 1 {
			continue
		}
		row := inner.Y + int((1-tk.norm)*float64(inner.H-1)+0.5)
		c.SetGlyph(axisX, row, '┤', axis)
		if grid {
			drawGridRow(c, inner, row, axis)
		}
		label := canvas.TruncateLabel(tk.label, gutterW)
		c.WriteString(axisX-runewidth.StringWidth(label), row, label, text, 0)
	}
}

func drawGridColumn(c *canvas.Canvas, inner canvas.Rect, col int, axis canvas.RGBA) {
	for y := inner.Y; y < inner.Y+inner.H; y++ {
		if c.At(col, y).IsBlank() {
			c.Set(col, y, canvas.Cell{Glyph: '·', Fg: axis, Style: canvas.StyleDim})
		}
	}
}

func drawGridRow(c *canvas.Canvas, inner canvas.Rect, row int, axis canvas.RGBA) {
	for x := inner.X; x < inner.X+inner.W; x++ {
		if c.At(x, row).IsBlank() {
			c.Set(x, row, canvas.Cell{Glyph: '·', Fg: axis, Style: canvas.StyleDim})
		}
	}
}

// targetBreaks sizes the tick count to the available span: one tick per
// density cells, between 2 and 8.
func targetBreaks(span, density int) int {
	n := span / density
	if n < 2 {
		n = 2
	}
	if n > 8 {
		n = 8
	}
	return n
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func writeCentered(c *canvas.Canvas, area canvas.Rect, y int, text string, fg canvas.RGBA, style canvas.Style) {
	label := canvas.TruncateLabel(text, area.W)
	x := area.X + (area.W-runewidth.StringWidth(label))/2
	if x < area.X {
		x = area.X
	}
	c.WriteString(x, y, label, fg, style)
}

func writeVertical(c *canvas.Canvas, area canvas.Rect, text string, fg canvas.RGBA) {
	runes := []rune(text)
	if len(runes) > area.H {
		runes = runes[:area.H]
	}
	y := area.Y + (area.H-len(runes))/2
	for i, r := range runes {
		c.SetGlyph(area.X, y+i, r, fg)
	}
}

// hexColor parses a theme hex color; empty or invalid strings mean the
// terminal default.
func hexColor(hex string) canvas.RGBA {
	if hex == "" {
		return canvas.RGBA{}
	}
	if c, ok := canvas.Hex(hex); ok {
		return c
	}
	return canvas.RGBA{}
}
