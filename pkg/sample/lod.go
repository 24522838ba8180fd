package sample

import (
	"sort"
	"time"
)

// Level is one rung of the level-of-detail ladder. A level activates once
// the row count reaches Threshold and reduces to at most MaxPoints using
// Method. MaxPoints of zero means no reduction.
type Level struct {
	Name      string
	Threshold int
	MaxPoints int
	Method    string
}

// Ladder is an ascending-threshold list of levels.
type Ladder []Level

// DefaultLadder trades fidelity for speed as datasets grow: raw passes
// everything through, detail keeps trend shape with LTTB, overview thins
// with systematic sampling, and density collapses extreme counts into a
// spatial grid.
var DefaultLadder = Ladder{
	{Name: "raw", Threshold: 0, MaxPoints: 0, Method: ""},
	{Name: "detail", Threshold: 2_001, MaxPoints: 2_000, Method: MethodLTTB},
	{Name: "overview", Threshold: 20_001, MaxPoints: 5_000, Method: MethodSystematic},
	{Name: "density", Threshold: 200_001, MaxPoints: 4_096, Method: MethodBinned},
}

// Select returns the level with the highest threshold not exceeding the
// row count. An empty ladder returns nil.
func (l Ladder) Select(rowCount int) *Level {
	sorted := make(Ladder, len(l))
	copy(sorted, l)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold < sorted[j].Threshold
	})

	var match *Level
	for i := range sorted {
		if sorted[i].Threshold <= rowCount {
			match = &sorted[i]
		}
	}
	return match
}

// Adaptive tracks measured render latency against a frame budget and
// nudges the effective point budget between renders. It is advisory:
// nothing guarantees the next frame lands under budget, the budget just
// trends in the right direction.
type Adaptive struct {
	// FrameBudget is the target time per render.
	FrameBudget time.Duration
	// Min and Max clamp the point budget.
	Min, Max int

	budget int
}

// Budget growth/shrink factors per observation.
const (
	adaptiveGrow   = 1.25
	adaptiveShrink = 0.75
)

// NewAdaptive creates an adaptive budget starting at initial points with
// the given frame budget. Min defaults to 100, Max to 10× the initial
// budget.
func NewAdaptive(initial int, frameBudget time.Duration) *Adaptive {
	if initial <= 0 {
		initial = 1000
	}
	return &Adaptive{
		FrameBudget: frameBudget,
		Min:         100,
		Max:         initial * 10,
		budget:      initial,
	}
}

// Observe records one render's measured latency and adjusts the budget:
// over-budget renders shrink it, renders comfortably under budget (below
// half) grow it.
func (a *Adaptive) Observe(latency time.Duration) {
	switch {
	case latency > a.FrameBudget:
		a.budget = int(float64(a.budget) * adaptiveShrink)
	case latency < a.FrameBudget/2:
		a.budget = int(float64(a.budget) * adaptiveGrow)
	}
	if a.budget < a.Min {
		a.budget = a.Min
	}
	if a.Max > 0 && a.budget > a.Max {
		a.budget = a.Max
	}
}

// Budget returns the current advisory point budget.
func (a *Adaptive) Budget() int {
	return a.budget
}
