// Package scale maps data domains to the normalized [0, 1] range.
//
// Each aesthetic channel resolves to either a continuous scale (numeric,
// with an optional transform applied before normalization) or a discrete
// scale (categories mapped to evenly spaced slots). Scales never fail on
// data: an empty domain falls back to [0, 1] and a degenerate domain is
// widened by a small epsilon so normalization cannot produce NaN or Inf.
package scale

import (
	"math"
	"sort"

	"github.com/matzehuels/termplot/pkg/plot"
)

// degenerateEpsilon widens an all-equal domain so (v-min)/(max-min) stays
// finite.
const degenerateEpsilon = 0.5

// Continuous maps a numeric domain to [0, 1], applying its transform to
// values before normalizing via (v-min)/(max-min).
type Continuous struct {
	Min, Max  float64 // raw, untransformed domain
	Transform string

	tmin, tmax float64 // transformed domain bounds
}

// NewContinuous builds a continuous scale over the given values.
// Explicit limits in spec override the data-driven domain. NaN and Inf
// values are ignored while sizing the domain.
func NewContinuous(values []float64, spec plot.ScaleSpec) *Continuous {
	s := &Continuous{Transform: spec.Transform}
	if s.Transform == "" {
		s.Transform = plot.TransformIdentity
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if min > max {
		// Empty dataset: default [0, 1] domain so axes still render.
		min, max = 0, 1
	}
	if spec.Limits != nil {
		min, max = spec.Limits[0], spec.Limits[1]
		if min > max {
			min, max = max, min
		}
	}
	if min == max {
		min -= degenerateEpsilon
		max += degenerateEpsilon
	}

	s.Min, s.Max = min, max
	s.tmin = s.apply(min)
	s.tmax = s.apply(max)
	if s.tmin == s.tmax {
		s.tmin -= degenerateEpsilon
		s.tmax += degenerateEpsilon
	}
	return s
}

// apply evaluates the transform for a single value. Log of a non-positive
// value clamps to the smallest representable magnitude instead of
// producing -Inf; data never errors.
func (s *Continuous) apply(v float64) float64 {
	switch s.Transform {
	case plot.TransformLog10:
		if v <= 0 {
			v = math.SmallestNonzeroFloat64
		}
		return math.Log10(v)
	case plot.TransformSqrt:
		if v < 0 {
			return -math.Sqrt(-v)
		}
		return math.Sqrt(v)
	default:
		return v
	}
}

// Normalize maps v into [0, 1]. Values outside the domain extrapolate
// beyond the unit range; clipping is the coordinate system's concern.
// Reverse transforms mirror the result.
func (s *Continuous) Normalize(v float64) float64 {
	n := (s.apply(v) - s.tmin) / (s.tmax - s.tmin)
	if s.Transform == plot.TransformReverse {
		n = 1 - n
	}
	return n
}

// InDomain reports whether v lies inside the raw domain.
func (s *Continuous) InDomain(v float64) bool {
	return v >= s.Min && v <= s.Max && !math.IsNaN(v)
}

// Breaks returns ~n nicely rounded tick positions inside the domain,
// using Heckbert's nice-numbers loop.
func (s *Continuous) Breaks(n int) []float64 {
	if n < 2 {
		n = 2
	}
	span := niceNum(s.Max-s.Min, false)
	step := niceNum(span/float64(n-1), true)
	lo := math.Ceil(s.Min/step) * step
	hi := math.Floor(s.Max/step) * step

	var breaks []float64
	for v := lo; v <= hi+step/2; v += step {
		// Snap values like 0.30000000000000004 back onto the grid.
		breaks = append(breaks, math.Round(v/step)*step)
	}
	return breaks
}

func niceNum(x float64, round bool) float64 {
	if x <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(x))
	frac := x / math.Pow(10, exp)

	var nice float64
	if round {
		switch {
		case frac < 1.5:
			nice = 1
		case frac < 3:
			nice = 2
		case frac < 7:
			nice = 5
		default:
			nice = 10
		}
	} else {
		switch {
		case frac <= 1:
			nice = 1
		case frac <= 2:
			nice = 2
		case frac <= 5:
			nice = 5
		default:
			nice = 10
		}
	}
	return nice * math.Pow(10, exp)
}

// Discrete maps categories to evenly spaced slots, in first-seen or sorted
// order.
type Discrete struct {
	Levels []string
	index  map[string]int
}

// NewDiscrete builds a discrete scale over the given category values.
// Duplicates collapse; order is first-seen unless sorted is true.
func NewDiscrete(values []string, sorted bool) *Discrete {
	s := &Discrete{index: map[string]int{}}
	for _, v := range values {
		if _, seen := s.index[v]; !seen {
			s.index[v] = len(s.Levels)
			s.Levels = append(s.Levels, v)
		}
	}
	if sorted {
		sort.Strings(s.Levels)
		for i, l := range s.Levels {
			s.index[l] = i
		}
	}
	return s
}

// Slot returns the slot index of a category; unknown categories report
// ok=false.
func (s *Discrete) Slot(category string) (int, bool) {
	i, ok := s.index[category]
	return i, ok
}

// Normalize maps a category to the center of its slot in [0, 1].
// Unknown categories map to 0.
func (s *Discrete) Normalize(category string) float64 {
	i, ok := s.index[category]
	if !ok || len(s.Levels) == 0 {
		return 0
	}
	return (float64(i) + 0.5) / float64(len(s.Levels))
}

// Len returns the number of levels.
func (s *Discrete) Len() int {
	return len(s.Levels)
}
