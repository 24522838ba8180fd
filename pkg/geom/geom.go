// Package geom rasterizes positioned points onto a panel's pixel surface.
//
// A Geom is the mark-drawing contract: it receives the layer's positioned
// points together with the panel's coordinate system and pixel surface,
// and draws solely through the surface's SetPixel interface (directly or
// via the canvas line/rect helpers). Four marks are built in: point,
// line, bar, and area. Per-kind parameters arrive as an opaque bag and
// are validated when the geom is constructed, so misconfiguration fails
// before any drawing happens.
package geom

import (
	"math"
	"sort"

	"github.com/matzehuels/termplot/pkg/canvas"
	"github.com/matzehuels/termplot/pkg/coord"
	"github.com/matzehuels/termplot/pkg/errors"
	"github.com/matzehuels/termplot/pkg/plot"
	"github.com/matzehuels/termplot/pkg/position"
	"github.com/matzehuels/termplot/pkg/scale"
)

// Geometry kind names.
const (
	KindPoint = "point"
	KindLine  = "line"
	KindBar   = "bar"
	KindArea  = "area"
)

// Context carries everything a geom needs to draw one layer on one panel.
type Context struct {
	Coord   *coord.System
	Surface canvas.PixelSurface
	// Colors is the group→color map; nil when the layer has no color
	// aesthetic.
	Colors *scale.ColorMap
	// Default is the mark color for ungrouped layers.
	Default canvas.RGBA
}

func (c Context) colorFor(p position.Point) canvas.RGBA {
	if c.Colors != nil {
		return c.Colors.Color(p.Group)
	}
	return c.Default
}

// Geom rasterizes one layer's positioned points.
type Geom interface {
	Draw(points []position.Point, ctx Context)
}

// NeedsZeroBaseline reports whether the kind draws from the zero baseline,
// forcing 0 into the y domain.
func NeedsZeroBaseline(kind string) bool {
	return kind == KindBar || kind == KindArea
}

// New resolves a geometry kind and validates its parameter bag. An empty
// kind means point.
func New(kind string, params map[string]any) (Geom, error) {
	switch kind {
	case "", KindPoint:
		size := 1
		if v, ok := params["size"]; ok {
			n, isNum := plot.CoerceNum(v)
			if !isNum || n < 1 {
				return nil, errors.New(errors.ErrCodeInvalidGeom,
					"point geometry: size must be a number >= 1, got %v", v)
			}
			size = int(n)
		}
		return point{size: size}, nil
	case KindLine:
		return line{}, nil
	case KindBar:
		width := 0.9
		if v, ok := params["width"]; ok {
			n, isNum := plot.CoerceNum(v)
			if !isNum || n <= 0 || n > 1 {
				return nil, errors.New(errors.ErrCodeInvalidGeom,
					"bar geometry: width must be a number in (0, 1], got %v", v)
			}
			width = n
		}
		return bar{width: width}, nil
	case KindArea:
		return area{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidGeom,
			"invalid geometry: %q (must be one of: point, line, bar, area)", kind)
	}
}

// ===========================================================================
// POINT
// ===========================================================================

// point draws one dot per positioned point. Sizes above 1 grow the dot
// into a filled square of size×size pixels centered on the point.
type point struct {
	size int
}

func (g point) Draw(points []position.Point, ctx Context) {
	for _, p := range points {
		px, py, ok := ctx.Coord.Transform(p.X, p.Y)
		if !ok {
			continue
		}
		c := ctx.colorFor(p)
		if g.size <= 1 {
			ctx.Surface.SetPixel(px, py, c)
			continue
		}
		half := g.size / 2
		canvas.FillRect(ctx.Surface, px-half, py-half, px-half+g.size-1, py-half+g.size-1, c)
	}
}

// ===========================================================================
// LINE
// ===========================================================================

// line connects each group's points in ascending x order.
type line struct{}

func (line) Draw(points []position.Point, ctx Context) {
	for _, group := range groupSeries(points) {
		var prevX, prevY int
		havePrev := false
		for _, p := range group {
			px, py, ok := ctx.Coord.Transform(p.X, p.Y)
			if !ok {
				// A clipped point breaks the line instead of bridging the gap.
				havePrev = false
				continue
			}
			if havePrev {
				canvas.DrawLine(ctx.Surface, prevX, prevY, px, py, ctx.colorFor(p))
			}
			prevX, prevY = px, py
			havePrev = true
		}
	}
}

// ===========================================================================
// BAR
// ===========================================================================

// bar draws one filled column per point, spanning from the zero baseline
// (or the point's stacked ymin..ymax range) and centered on x. Dodged
// points carry their own width; otherwise the configured fraction of the
// x resolution applies.
type bar struct {
	width float64
}

func (g bar) Draw(points []position.Point, ctx Context) {
	res := resolution(points)
	for _, p := range points {
		half := p.Width / 2
		if p.Width <= 0 {
			half = g.width * res / 2
		}

		lo, hi := 0.0, p.Y
		if p.HasRange {
			lo, hi = p.YMin, p.YMax
		}

		x0, y0, ok0 := ctx.Coord.Transform(p.X-half, lo)
		x1, y1, ok1 := ctx.Coord.Transform(p.X+half, hi)
		if !ok0 || !ok1 {
			continue
		}
		canvas.FillRect(ctx.Surface, x0, y0, x1, y1, ctx.colorFor(p))
	}
}

// resolution returns the smallest positive gap between distinct x values,
// or 1 when fewer than two distinct values exist.
func resolution(points []position.Point) float64 {
	xs := make([]float64, 0, len(points))
	for _, p := range points {
		xs = append(xs, p.X)
	}
	sort.Float64s(xs)

	best := math.Inf(1)
	for i := 1; i < len(xs); i++ {
		if gap := xs[i] - xs[i-1]; gap > 0 && gap < best {
			best = gap
		}
	}
	if math.IsInf(best, 1) {
		return 1
	}
	return best
}

// ===========================================================================
// AREA
// ===========================================================================

// area fills the region between each group's line and the zero baseline
// (or the stacked ymin), column by column with linear interpolation
// between adjacent points.
type area struct{}

func (area) Draw(points []position.Point, ctx Context) {
	for _, group := range groupSeries(points) {
		for i := 1; i < len(group); i++ {
			a, b := group[i-1], group[i]
			ax, ay, okA := ctx.Coord.Transform(a.X, a.Y)
			bx, by, okB := ctx.Coord.Transform(b.X, b.Y)
			if !okA || !okB {
				continue
			}
			c := ctx.colorFor(b)

			aBase := baselinePixel(ctx, a)
			bBase := baselinePixel(ctx, b)

			if ax == bx {
				canvas.FillRect(ctx.Surface, ax, ay, ax, aBase, c)
				continue
			}
			step := 1
			if bx < ax {
				step = -1
			}
			for x := ax; ; x += step {
				t := float64(x-ax) / float64(bx-ax)
				y := int(math.Round(float64(ay) + t*float64(by-ay)))
				base := int(math.Round(float64(aBase) + t*float64(bBase-aBase)))
				canvas.FillRect(ctx.Surface, x, y, x, base, c)
				if x == bx {
					break
				}
			}
		}
	}
}

// baselinePixel finds the pixel row of the point's lower edge: its stacked
// ymin when present, else the zero baseline, else the bottom of the
// surface when zero lies outside the clipped domain.
func baselinePixel(ctx Context, p position.Point) int {
	base := 0.0
	if p.HasRange {
		base = p.YMin
	}
	if _, py, ok := ctx.Coord.Transform(p.X, base); ok {
		return py
	}
	_, h := ctx.Surface.Size()
	return h - 1
}

// groupSeries splits points by group in first-seen order and sorts each
// series by x, preserving input order among equal x values.
func groupSeries(points []position.Point) [][]position.Point {
	byGroup := map[string][]position.Point{}
	var order []string
	for _, p := range points {
		if _, seen := byGroup[p.Group]; !seen {
			order = append(order, p.Group)
		}
		byGroup[p.Group] = append(byGroup[p.Group], p)
	}

	out := make([][]position.Point, 0, len(order))
	for _, g := range order {
		series := byGroup[g]
		sort.SliceStable(series, func(i, j int) bool { return series[i].X < series[j].X })
		out = append(out, series)
	}
	return out
}
