// Package position resolves overlapping marks before rasterization.
//
// The engine implements the five position adjustments of the plotting
// grammar: identity, dodge, stack, fill, and jitter. Input rows are never
// mutated; the output is a slice of PositionedPoints carrying both the
// adjusted and the original coordinates.
//
// Stacking is sign-aware: positive values stack upward from zero and
// negative values stack downward from zero, each with its own running
// baseline. Fill normalizes every stack by the per-group sum of absolute
// values, so mixed-sign groups still map into [-1, 1].
package position

import (
	"math"

	"github.com/matzehuels/termplot/pkg/errors"
	"github.com/matzehuels/termplot/pkg/plot"
)

// Point is one positioned mark. XOriginal and YOriginal always hold the
// row's unadjusted coordinates regardless of the adjustment applied.
type Point struct {
	X, Y       float64
	XOriginal  float64
	YOriginal  float64
	YMin, YMax float64
	HasRange   bool     // YMin/YMax are meaningful (stack, fill, bars)
	Group      string   // resolved series group, "" when ungrouped
	Width      float64  // mark width hint in x units (dodge)
	Row        plot.Row // originating row, for label and color resolution
}

// Adjust applies the position adjustment described by spec to rows.
// Empty input yields empty output for every mode. The only error class is
// configuration: an unknown adjustment kind.
func Adjust(rows []plot.Row, aes plot.Aes, spec plot.PositionSpec) ([]Point, error) {
	normalized, err := plot.NormalizePosition(spec)
	if err != nil {
		return nil, err
	}

	switch normalized.Kind {
	case plot.PositionIdentity:
		return identity(rows, aes), nil
	case plot.PositionDodge:
		return dodge(rows, aes, normalized.Width), nil
	case plot.PositionStack:
		return stack(rows, aes, false), nil
	case plot.PositionFill:
		return stack(rows, aes, true), nil
	case plot.PositionJitter:
		return jitter(rows, aes, normalized), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidPosition, "invalid position: %q", normalized.Kind)
	}
}

// base builds the unadjusted points: numeric coordinates with non-numeric
// values coerced, and the series group resolved from the mapping.
func base(rows []plot.Row, aes plot.Aes) []Point {
	xField := aes.Field(plot.ChannelX)
	yField := aes.Field(plot.ChannelY)
	groupField := aes.GroupField()

	// Non-numeric x values (categories) resolve to their first-seen slot
	// index so categorical bars land on distinct positions; anything else
	// non-numeric coerces to 0.
	slots := map[string]int{}

	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		var p Point
		if x, ok := row.Num(xField); ok {
			p.X = x
		} else if cat, ok := row.Str(xField); ok {
			slot, seen := slots[cat]
			if !seen {
				slot = len(slots)
				slots[cat] = slot
			}
			p.X = float64(slot)
		}
		p.Y = row.NumOr(yField, 0)
		p.XOriginal = p.X
		p.YOriginal = p.Y
		if groupField != "" {
			p.Group = row.StrOr(groupField, plot.UnknownCategory)
		}
		p.Row = row
		points = append(points, p)
	}
	return points
}

func identity(rows []plot.Row, aes plot.Aes) []Point {
	return base(rows, aes)
}

// xKey buckets points sharing an x position. Categorical x already resolved
// to slot indices in base, so the float value is a stable key.
func xKey(x float64) float64 {
	if x == 0 {
		// Avoid distinct +0/-0 buckets.
		return 0
	}
	return x
}

// dodge distributes the series groups side by side within resolution*width
// around each x. A single group degenerates to identity.
func dodge(rows []plot.Row, aes plot.Aes, width float64) []Point {
	points := base(rows, aes)
	if len(points) == 0 {
		return points
	}

	// Global group order: first encounter wins, so a group occupies the
	// same slot at every x.
	var groups []string
	seen := map[string]bool{}
	for _, p := range points {
		if !seen[p.Group] {
			seen[p.Group] = true
			groups = append(groups, p.Group)
		}
	}

	n := len(groups)
	if n <= 1 {
		return points
	}

	slot := map[string]int{}
	for i, g := range groups {
		slot[g] = i
	}

	span := resolution(points) * width
	step := span / float64(n)
	for i := range points {
		offset := (float64(slot[points[i].Group]) - float64(n-1)/2) * step
		points[i].X += offset
		points[i].Width = step
	}
	return points
}

// resolution returns the smallest positive gap between distinct x values,
// or 1 when no gap exists. This is the implicit bar width unit.
func resolution(points []Point) float64 {
	distinct := map[float64]bool{}
	for _, p := range points {
		distinct[xKey(p.X)] = true
	}
	if len(distinct) < 2 {
		return 1
	}
	xs := make([]float64, 0, len(distinct))
	for x := range distinct {
		xs = append(xs, x)
	}
	min := math.Inf(1)
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			if d := math.Abs(xs[i] - xs[j]); d > 0 && d < min {
				min = d
			}
		}
	}
	if math.IsInf(min, 1) {
		return 1
	}
	return min
}

// stack accumulates segments per x bucket in group-encounter order.
// Positive values grow an upward baseline from zero, negative values a
// downward one. With fill=true every segment is normalized by the bucket's
// sum of absolute values; a zero total collapses the bucket to zero.
func stack(rows []plot.Row, aes plot.Aes, fill bool) []Point {
	points := base(rows, aes)

	type baselines struct {
		up, down float64
	}
	bases := map[float64]*baselines{}

	for i := range points {
		key := xKey(points[i].X)
		b := bases[key]
		if b == nil {
			b = &baselines{}
			bases[key] = b
		}
		y := points[i].Y
		if y >= 0 {
			points[i].YMin = b.up
			points[i].YMax = b.up + y
			b.up = points[i].YMax
			points[i].Y = points[i].YMax
		} else {
			points[i].YMax = b.down
			points[i].YMin = b.down + y
			b.down = points[i].YMin
			points[i].Y = points[i].YMin
		}
		points[i].HasRange = true
	}

	if !fill {
		return points
	}

	totals := map[float64]float64{}
	for _, p := range points {
		totals[xKey(p.XOriginal)] += math.Abs(p.YOriginal)
	}
	for i := range points {
		total := totals[xKey(points[i].XOriginal)]
		if total == 0 {
			points[i].YMin = 0
			points[i].YMax = 0
			points[i].Y = 0
			continue
		}
		points[i].YMin /= total
		points[i].YMax /= total
		points[i].Y /= total
	}
	return points
}

// jitter adds uniform noise in [-w/2, w/2] × [-h/2, h/2]. A seeded spec is
// bitwise-reproducible across calls; an unseeded one derives its seed from
// the clock.
func jitter(rows []plot.Row, aes plot.Aes, spec plot.PositionSpec) []Point {
	points := base(rows, aes)
	rng := newLCG(jitterSeed(spec))
	for i := range points {
		points[i].X += (rng.Float64() - 0.5) * spec.Width
		points[i].Y += (rng.Float64() - 0.5) * spec.Height
	}
	return points
}
