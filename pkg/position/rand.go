package position

import (
	"time"

	"github.com/matzehuels/termplot/pkg/plot"
)

// lcg is a linear-congruential generator with Knuth's MMIX constants:
//
//	state' = state*6364136223846793005 + 1442695040888963407 (mod 2^64)
//
// It exists so seeded jitter is bitwise-reproducible across calls and
// platforms: two runs with the same seed and input produce identical
// coordinates. It is not a source of cryptographic randomness.
type lcg struct {
	state uint64
}

const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407
)

func newLCG(seed int64) *lcg {
	return &lcg{state: uint64(seed)}
}

// Float64 returns the next value in [0, 1), using the top 53 bits of the
// advanced state.
func (l *lcg) Float64() float64 {
	l.state = l.state*lcgMultiplier + lcgIncrement
	return float64(l.state>>11) / (1 << 53)
}

// jitterSeed resolves the generator seed: the caller's seed when supplied,
// otherwise a time-derived one, making reproducibility opt-in.
func jitterSeed(spec plot.PositionSpec) int64 {
	if spec.Seeded {
		return spec.Seed
	}
	return time.Now().UnixNano()
}
