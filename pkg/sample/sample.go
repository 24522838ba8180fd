// Package sample reduces oversized datasets to a renderable budget.
//
// Five reduction methods cover the quality/cost spectrum:
//
//   - systematic: evenly spaced index sampling, deterministic and
//     order-preserving
//   - lttb: Largest-Triangle-Three-Buckets, preserves the visual trend
//     shape of ordered series
//   - stratified: proportional sampling per category with at least one
//     representative per category
//   - reservoir: single-pass uniform random sampling (Algorithm R) for
//     streaming input
//   - binned: spatial grid aggregation averaging numeric fields per bin,
//     the most aggressive level for extreme point counts
//
// The size law holds for every method: output length equals
// min(input length, target), and an input within budget passes through
// unchanged in its original order.
package sample

import (
	"math"
	"math/rand"

	"github.com/matzehuels/termplot/pkg/errors"
	"github.com/matzehuels/termplot/pkg/plot"
)

// Reduction method names.
const (
	MethodSystematic = "systematic"
	MethodLTTB       = "lttb"
	MethodStratified = "stratified"
	MethodReservoir  = "reservoir"
	MethodBinned     = "binned"
)

// ValidMethods is the set of supported reduction methods.
var ValidMethods = map[string]bool{
	MethodSystematic: true,
	MethodLTTB:       true,
	MethodStratified: true,
	MethodReservoir:  true,
	MethodBinned:     true,
}

// Options configures one reduction pass.
type Options struct {
	Method string
	// Target is the point budget. Zero or negative disables reduction.
	Target int
	// XField and YField locate the coordinates used by lttb and binned.
	XField string
	YField string
	// StratifyField is required by the stratified method.
	StratifyField string
	// Seed makes reservoir sampling reproducible when Seeded is true;
	// otherwise an ambient source is used.
	Seed   int64
	Seeded bool
	// Resolution is the binned grid edge length; defaults to 32.
	Resolution int
}

// Reduce shrinks rows to at most opts.Target rows using the configured
// method. Inputs already within budget return unchanged, in order. The
// only error class is configuration: an unknown method, or stratified
// sampling without a stratify field.
func Reduce(rows []plot.Row, opts Options) ([]plot.Row, error) {
	if opts.Method != "" && !ValidMethods[opts.Method] {
		return nil, errors.New(errors.ErrCodeInvalidSampling,
			"invalid sampling method: %q (must be one of: systematic, lttb, stratified, reservoir, binned)",
			opts.Method)
	}
	if opts.Method == MethodStratified && opts.StratifyField == "" {
		return nil, errors.New(errors.ErrCodeMissingOption,
			"stratified sampling requires the stratify field option")
	}

	if opts.Target <= 0 || len(rows) <= opts.Target {
		return rows, nil
	}

	switch opts.Method {
	case MethodLTTB:
		return lttb(rows, opts), nil
	case MethodStratified:
		return stratified(rows, opts), nil
	case MethodReservoir:
		return reservoir(rows, opts), nil
	case MethodBinned:
		return binned(rows, opts), nil
	default:
		return systematic(rows, opts.Target), nil
	}
}

// systematic keeps every n/target-th row, starting at index 0.
func systematic(rows []plot.Row, target int) []plot.Row {
	n := len(rows)
	out := make([]plot.Row, 0, target)
	for i := 0; i < target; i++ {
		out = append(out, rows[i*n/target])
	}
	return out
}

// lttb implements Largest-Triangle-Three-Buckets: the first and last rows
// always survive, the remainder is split into target-2 buckets, and each
// bucket keeps the row maximizing the triangle area with the previously
// kept row and the next bucket's average. A target below 3 degenerates to
// just the first and last row.
func lttb(rows []plot.Row, opts Options) []plot.Row {
	n := len(rows)
	target := opts.Target
	if target < 3 {
		if n >= 2 {
			return []plot.Row{rows[0], rows[n-1]}
		}
		return rows
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, row := range rows {
		// Missing coordinates coerce: an index fallback keeps the series
		// ordered for x, zero for y.
		if v, ok := row.Num(opts.XField); ok {
			xs[i] = v
		} else {
			xs[i] = float64(i)
		}
		ys[i] = row.NumOr(opts.YField, 0)
	}

	out := make([]plot.Row, 0, target)
	out = append(out, rows[0])
	prev := 0

	bucketSize := float64(n-2) / float64(target-2)
	for b := 0; b < target-2; b++ {
		start := int(math.Floor(float64(b)*bucketSize)) + 1
		end := int(math.Floor(float64(b+1)*bucketSize)) + 1
		if end >= n-1 {
			end = n - 1
		}
		if start >= end {
			start = end - 1
		}

		// Average of the next bucket (or the last row for the final one).
		nextStart := end
		nextEnd := int(math.Floor(float64(b+2)*bucketSize)) + 1
		if nextEnd >= n {
			nextEnd = n
		}
		var avgX, avgY float64
		count := nextEnd - nextStart
		if count <= 0 {
			avgX, avgY = xs[n-1], ys[n-1]
		} else {
			for i := nextStart; i < nextEnd; i++ {
				avgX += xs[i]
				avgY += ys[i]
			}
			avgX /= float64(count)
			avgY /= float64(count)
		}

		best := start
		bestArea := -1.0
		for i := start; i < end; i++ {
			// Twice the triangle area; the factor cancels in comparison.
			area := math.Abs((xs[prev]-avgX)*(ys[i]-ys[prev]) - (xs[prev]-xs[i])*(avgY-ys[prev]))
			if area > bestArea {
				bestArea = area
				best = i
			}
		}
		out = append(out, rows[best])
		prev = best
	}

	out = append(out, rows[n-1])
	return out
}

// stratified samples proportionally per category of the stratify field,
// guaranteeing at least one representative per category. Output preserves
// the original row order.
func stratified(rows []plot.Row, opts Options) []plot.Row {
	n := len(rows)

	var levels []string
	byLevel := map[string][]int{}
	for i, row := range rows {
		level := row.StrOr(opts.StratifyField, plot.UnknownCategory)
		if _, seen := byLevel[level]; !seen {
			levels = append(levels, level)
		}
		byLevel[level] = append(byLevel[level], i)
	}

	quotas := make(map[string]int, len(levels))
	total := 0
	for _, level := range levels {
		indices := byLevel[level]
		quota := int(math.Round(float64(opts.Target) * float64(len(indices)) / float64(n)))
		if quota < 1 {
			quota = 1
		}
		if quota > len(indices) {
			quota = len(indices)
		}
		quotas[level] = quota
		total += quota
	}
	// Min-one guarantees can overshoot the budget; shrink the largest
	// quotas first, never below one, so rare strata keep their survivor.
	// With more categories than Target the overshoot is unavoidable.
	for total > opts.Target {
		largest := ""
		for _, level := range levels {
			if quotas[level] > 1 && (largest == "" || quotas[level] > quotas[largest]) {
				largest = level
			}
		}
		if largest == "" {
			break
		}
		quotas[largest]--
		total--
	}

	keep := make([]bool, n)
	for _, level := range levels {
		indices := byLevel[level]
		quota := quotas[level]
		for i := 0; i < quota; i++ {
			keep[indices[i*len(indices)/quota]] = true
		}
	}

	out := make([]plot.Row, 0, total)
	for i, k := range keep {
		if k {
			out = append(out, rows[i])
		}
	}
	return out
}

// reservoir implements Algorithm R: a uniform random sample in one pass,
// suitable for unbounded streams. A supplied seed makes the sample
// reproducible; sampled rows keep their relative input order.
func reservoir(rows []plot.Row, opts Options) []plot.Row {
	var rng *rand.Rand
	if opts.Seeded {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(int64(rand.Uint64())))
	}

	indices := make([]int, opts.Target)
	for i := 0; i < opts.Target; i++ {
		indices[i] = i
	}
	for i := opts.Target; i < len(rows); i++ {
		j := rng.Intn(i + 1)
		if j < opts.Target {
			indices[j] = i
		}
	}

	// Restore input order.
	sortInts(indices)
	out := make([]plot.Row, 0, opts.Target)
	for _, i := range indices {
		out = append(out, rows[i])
	}
	return out
}

func sortInts(a []int) {
	// Insertion sort: reservoirs are small (the render budget).
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// binned aggregates rows into a resolution×resolution spatial grid over
// the x/y extent, averaging numeric fields per bin and keeping the first
// seen value for everything else. The output has one row per non-empty
// bin, at most Target rows.
func binned(rows []plot.Row, opts Options) []plot.Row {
	res := opts.Resolution
	if res <= 0 {
		res = 32
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		x := row.NumOr(opts.XField, 0)
		y := row.NumOr(opts.YField, 0)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	if minX >= maxX {
		maxX = minX + 1
	}
	if minY >= maxY {
		maxY = minY + 1
	}

	type bin struct {
		first  plot.Row
		sums   map[string]float64
		counts map[string]int
		n      int
	}
	bins := map[int]*bin{}
	var order []int

	for _, row := range rows {
		x := row.NumOr(opts.XField, 0)
		y := row.NumOr(opts.YField, 0)
		bx := int(float64(res-1) * (x - minX) / (maxX - minX))
		by := int(float64(res-1) * (y - minY) / (maxY - minY))
		key := by*res + bx

		b := bins[key]
		if b == nil {
			b = &bin{first: row, sums: map[string]float64{}, counts: map[string]int{}}
			bins[key] = b
			order = append(order, key)
		}
		b.n++
		for field, value := range row {
			if v, ok := plot.CoerceNum(value); ok {
				b.sums[field] += v
				b.counts[field]++
			}
		}
	}

	out := make([]plot.Row, 0, len(order))
	for _, key := range order {
		b := bins[key]
		row := plot.Row{}
		for field, value := range b.first {
			if count := b.counts[field]; count > 0 {
				row[field] = b.sums[field] / float64(count)
			} else {
				row[field] = value
			}
		}
		out = append(out, row)
	}
	if len(out) > opts.Target {
		out = systematic(out, opts.Target)
	}
	return out
}
