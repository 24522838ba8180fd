// Package stat implements the statistic transforms applied to layer data
// before position adjustment.
//
// A Stat is a pure function from rows to rows. The built-in set is small:
// identity passes data through, count tallies rows per x value, bin builds
// a histogram over a numeric x, and summary collapses each x group to a
// single aggregate of y. All of them group in first-seen order and write
// their result under the CountField/derived y field so layers without an
// explicit y mapping still plot.
package stat

import (
	"math"
	"sort"

	"github.com/matzehuels/termplot/pkg/errors"
	"github.com/matzehuels/termplot/pkg/plot"
)

// Statistic kind names.
const (
	KindIdentity = "identity"
	KindCount    = "count"
	KindBin      = "bin"
	KindSummary  = "summary"
)

// CountField is the output field carrying computed counts when the layer
// maps no y aesthetic.
const CountField = "count"

// DefaultBins is the histogram bin count when none is configured.
const DefaultBins = 30

// Stat transforms layer rows before position adjustment. Implementations
// are pure: they never mutate the input rows.
type Stat interface {
	Compute(rows []plot.Row, aes plot.Aes) ([]plot.Row, error)
}

// New resolves a statistic kind and its parameter bag. An empty kind means
// identity. Parameters are validated here, per kind, so a typo fails fast
// instead of silently rendering garbage.
func New(kind string, params map[string]any) (Stat, error) {
	switch kind {
	case "", KindIdentity:
		return identity{}, nil
	case KindCount:
		return count{}, nil
	case KindBin:
		bins := DefaultBins
		if v, ok := params["bins"]; ok {
			n, isNum := plot.CoerceNum(v)
			if !isNum || n < 1 {
				return nil, errors.New(errors.ErrCodeInvalidStat,
					"bin statistic: bins must be a positive number, got %v", v)
			}
			bins = int(n)
		}
		return bin{bins: bins}, nil
	case KindSummary:
		fn := "mean"
		if v, ok := params["fn"]; ok {
			fn = plot.CoerceStr(v)
		}
		if !summaryFns[fn] {
			return nil, errors.New(errors.ErrCodeInvalidStat,
				"summary statistic: unknown fn %q (must be one of: mean, median, min, max, sum)", fn)
		}
		return summary{fn: fn}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStat,
			"invalid statistic: %q (must be one of: identity, count, bin, summary)", kind)
	}
}

// YField returns the y field a layer should plot after this statistic ran:
// the mapped y for identity, the count field for the tallying stats, and
// the mapped y for summary (which rewrites it in place).
func YField(kind string, aes plot.Aes) string {
	switch kind {
	case KindCount, KindBin:
		return CountField
	default:
		return aes.Field(plot.ChannelY)
	}
}

// ===========================================================================
// IDENTITY
// ===========================================================================

type identity struct{}

func (identity) Compute(rows []plot.Row, _ plot.Aes) ([]plot.Row, error) {
	return rows, nil
}

// ===========================================================================
// COUNT
// ===========================================================================

// count tallies rows per (x, group) combination. Output rows carry the x
// value, the group value, and the tally under CountField.
type count struct{}

func (count) Compute(rows []plot.Row, aes plot.Aes) ([]plot.Row, error) {
	xField := aes.Field(plot.ChannelX)
	group := aes.GroupField()

	type key struct{ x, g string }
	counts := map[key]int{}
	firstRow := map[key]plot.Row{}
	var order []key

	for _, row := range rows {
		k := key{x: row.StrOr(xField, plot.UnknownCategory)}
		if group != "" {
			k.g = row.StrOr(group, plot.UnknownCategory)
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
			firstRow[k] = row
		}
		counts[k]++
	}

	out := make([]plot.Row, 0, len(order))
	for _, k := range order {
		row := plot.Row{CountField: float64(counts[k])}
		if xField != "" {
			row[xField] = firstRow[k][xField]
		}
		if group != "" {
			row[group] = firstRow[k][group]
		}
		out = append(out, row)
	}
	return out, nil
}

// ===========================================================================
// BIN
// ===========================================================================

// bin builds an equal-width histogram over the numeric x extent. Every bin
// appears in the output, including empty ones, so bar layers show gaps
// instead of collapsing them.
type bin struct {
	bins int
}

func (b bin) Compute(rows []plot.Row, aes plot.Aes) ([]plot.Row, error) {
	xField := aes.Field(plot.ChannelX)

	min, max := math.Inf(1), math.Inf(-1)
	var xs []float64
	for _, row := range rows {
		v, ok := row.Num(xField)
		if !ok {
			continue
		}
		xs = append(xs, v)
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if len(xs) == 0 {
		return nil, nil
	}
	if min >= max {
		// Degenerate extent: one bin holds everything.
		max = min + 1
	}

	width := (max - min) / float64(b.bins)
	counts := make([]float64, b.bins)
	for _, v := range xs {
		i := int((v - min) / width)
		if i >= b.bins {
			i = b.bins - 1
		}
		counts[i]++
	}

	out := make([]plot.Row, 0, b.bins)
	for i, c := range counts {
		out = append(out, plot.Row{
			xField:     min + (float64(i)+0.5)*width,
			CountField: c,
		})
	}
	return out, nil
}

// ===========================================================================
// SUMMARY
// ===========================================================================

var summaryFns = map[string]bool{
	"mean": true, "median": true, "min": true, "max": true, "sum": true,
}

// summary collapses each (x, group) combination to one row whose y is the
// configured aggregate of the group's y values.
type summary struct {
	fn string
}

func (s summary) Compute(rows []plot.Row, aes plot.Aes) ([]plot.Row, error) {
	xField := aes.Field(plot.ChannelX)
	yField := aes.Field(plot.ChannelY)
	group := aes.GroupField()

	type key struct{ x, g string }
	values := map[key][]float64{}
	firstRow := map[key]plot.Row{}
	var order []key

	for _, row := range rows {
		k := key{x: row.StrOr(xField, plot.UnknownCategory)}
		if group != "" {
			k.g = row.StrOr(group, plot.UnknownCategory)
		}
		if _, seen := values[k]; !seen {
			order = append(order, k)
			firstRow[k] = row
		}
		values[k] = append(values[k], row.NumOr(yField, 0))
	}

	out := make([]plot.Row, 0, len(order))
	for _, k := range order {
		row := plot.Row{}
		if xField != "" {
			row[xField] = firstRow[k][xField]
		}
		if group != "" {
			row[group] = firstRow[k][group]
		}
		if yField != "" {
			row[yField] = aggregate(s.fn, values[k])
		}
		out = append(out, row)
	}
	return out, nil
}

func aggregate(fn string, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	switch fn {
	case "sum", "mean":
		var sum float64
		for _, v := range values {
			sum += v
		}
		if fn == "sum" {
			return sum
		}
		return sum / float64(len(values))
	case "median":
		sorted := make([]float64, len(values))
		copy(sorted, values)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 0 {
			return (sorted[mid-1] + sorted[mid]) / 2
		}
		return sorted[mid]
	case "min":
		out := values[0]
		for _, v := range values[1:] {
			out = math.Min(out, v)
		}
		return out
	default: // max
		out := values[0]
		for _, v := range values[1:] {
			out = math.Max(out, v)
		}
		return out
	}
}
