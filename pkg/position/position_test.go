package position

import (
	"math"
	"testing"

	"github.com/matzehuels/termplot/pkg/plot"
)

var barAes = plot.Aes{"x": "x", "y": "y", "group": "g"}

func adjust(t *testing.T, rows []plot.Row, aes plot.Aes, kind string, opts ...func(*plot.PositionSpec)) []Point {
	t.Helper()
	spec := plot.DefaultPosition(kind)
	for _, o := range opts {
		o(&spec)
	}
	points, err := Adjust(rows, aes, spec)
	if err != nil {
		t.Fatalf("Adjust(%s) error: %v", kind, err)
	}
	return points
}

func TestEmptyInputAllModes(t *testing.T) {
	for _, kind := range []string{"identity", "dodge", "stack", "fill", "jitter"} {
		points := adjust(t, nil, barAes, kind)
		if len(points) != 0 {
			t.Errorf("%s: empty input should yield empty output, got %d", kind, len(points))
		}
	}
}

func TestInvalidKind(t *testing.T) {
	_, err := Adjust(nil, barAes, plot.PositionSpec{Kind: "explode"})
	if err == nil {
		t.Error("unknown position kind should fail")
	}
}

func TestIdentity(t *testing.T) {
	rows := []plot.Row{
		{"x": 1.0, "y": 2.0},
		{"x": "not numeric", "y": nil},
	}
	points := adjust(t, rows, plot.Aes{"x": "x", "y": "y"}, "identity")

	if points[0].X != 1 || points[0].Y != 2 {
		t.Errorf("point 0 = %+v", points[0])
	}
	// Non-numeric coordinates coerce, never error. The category "not
	// numeric" is the first seen, so it lands on slot 0.
	if points[1].X != 0 || points[1].Y != 0 {
		t.Errorf("point 1 = %+v", points[1])
	}
	if points[0].XOriginal != 1 || points[0].YOriginal != 2 {
		t.Errorf("originals = %v/%v", points[0].XOriginal, points[0].YOriginal)
	}
}

func TestIdentityCategoricalSlots(t *testing.T) {
	rows := []plot.Row{
		{"x": "A", "y": 1.0},
		{"x": "B", "y": 2.0},
		{"x": "A", "y": 3.0},
	}
	points := adjust(t, rows, plot.Aes{"x": "x", "y": "y"}, "identity")
	if points[0].X != 0 || points[1].X != 1 || points[2].X != 0 {
		t.Errorf("slots = %v/%v/%v, want 0/1/0", points[0].X, points[1].X, points[2].X)
	}
}

func TestStackScenario(t *testing.T) {
	// Spec scenario: [{A,10,X},{A,20,Y}] stacks to [0,10] and [10,30].
	rows := []plot.Row{
		{"x": "A", "y": 10.0, "g": "X"},
		{"x": "A", "y": 20.0, "g": "Y"},
	}
	points := adjust(t, rows, barAes, "stack")

	if points[0].YMin != 0 || points[0].YMax != 10 {
		t.Errorf("record 1 = [%v,%v], want [0,10]", points[0].YMin, points[0].YMax)
	}
	if points[1].YMin != 10 || points[1].YMax != 30 {
		t.Errorf("record 2 = [%v,%v], want [10,30]", points[1].YMin, points[1].YMax)
	}
	if points[1].Y != 30 {
		t.Errorf("y = %v, want the segment top", points[1].Y)
	}
	// Originals untouched by the adjustment.
	if points[1].YOriginal != 20 {
		t.Errorf("yOriginal = %v, want 20", points[1].YOriginal)
	}
}

func TestStackContiguity(t *testing.T) {
	rows := []plot.Row{
		{"x": 1.0, "y": 3.0, "g": "a"},
		{"x": 2.0, "y": 5.0, "g": "a"},
		{"x": 1.0, "y": 4.0, "g": "b"},
		{"x": 2.0, "y": 1.0, "g": "b"},
		{"x": 1.0, "y": 2.0, "g": "c"},
	}
	points := adjust(t, rows, barAes, "stack")

	// Per x-group: ymin[0]==0 and ymin[i+1]==ymax[i] in encounter order.
	byX := map[float64][]Point{}
	for _, p := range points {
		byX[p.XOriginal] = append(byX[p.XOriginal], p)
	}
	for x, segs := range byX {
		if segs[0].YMin != 0 {
			t.Errorf("x=%v: first ymin = %v, want 0", x, segs[0].YMin)
		}
		for i := 1; i < len(segs); i++ {
			if segs[i].YMin != segs[i-1].YMax {
				t.Errorf("x=%v: ymin[%d]=%v != ymax[%d]=%v", x, i, segs[i].YMin, i-1, segs[i-1].YMax)
			}
		}
	}
}

func TestStackNegativeDualBaselines(t *testing.T) {
	rows := []plot.Row{
		{"x": 1.0, "y": 3.0, "g": "a"},
		{"x": 1.0, "y": -2.0, "g": "b"},
		{"x": 1.0, "y": 4.0, "g": "c"},
		{"x": 1.0, "y": -1.0, "g": "d"},
	}
	points := adjust(t, rows, barAes, "stack")

	// Positive values stack upward from 0.
	if points[0].YMin != 0 || points[0].YMax != 3 {
		t.Errorf("pos 1 = [%v,%v]", points[0].YMin, points[0].YMax)
	}
	if points[2].YMin != 3 || points[2].YMax != 7 {
		t.Errorf("pos 2 = [%v,%v]", points[2].YMin, points[2].YMax)
	}
	// Negative values stack downward from 0 on their own baseline.
	if points[1].YMax != 0 || points[1].YMin != -2 {
		t.Errorf("neg 1 = [%v,%v]", points[1].YMin, points[1].YMax)
	}
	if points[3].YMax != -2 || points[3].YMin != -3 {
		t.Errorf("neg 2 = [%v,%v]", points[3].YMin, points[3].YMax)
	}
}

func TestStackSinglePoint(t *testing.T) {
	points := adjust(t, []plot.Row{{"x": 1.0, "y": 5.0}}, plot.Aes{"x": "x", "y": "y"}, "stack")
	if points[0].YMin != 0 || points[0].YMax != 5 {
		t.Errorf("single point = [%v,%v], want [0,5]", points[0].YMin, points[0].YMax)
	}
}

func TestFillScenario(t *testing.T) {
	// Spec scenario: fill normalizes [10,20] to ymax 0.333 and 1.0.
	rows := []plot.Row{
		{"x": "A", "y": 10.0, "g": "X"},
		{"x": "A", "y": 20.0, "g": "Y"},
	}
	points := adjust(t, rows, barAes, "fill")

	if math.Abs(points[0].YMax-1.0/3) > 1e-9 {
		t.Errorf("record 1 ymax = %v, want ≈0.333", points[0].YMax)
	}
	if math.Abs(points[1].YMax-1.0) > 1e-5 {
		t.Errorf("record 2 ymax = %v, want ≈1.0", points[1].YMax)
	}
}

func TestFillFinalSegmentReachesOne(t *testing.T) {
	rows := []plot.Row{
		{"x": 1.0, "y": 2.0, "g": "a"},
		{"x": 1.0, "y": 6.0, "g": "b"},
		{"x": 2.0, "y": 1.0, "g": "a"},
		{"x": 2.0, "y": 1.0, "g": "b"},
	}
	points := adjust(t, rows, barAes, "fill")

	last := map[float64]float64{}
	for _, p := range points {
		if p.YMax > last[p.XOriginal] {
			last[p.XOriginal] = p.YMax
		}
	}
	for x, top := range last {
		if math.Abs(top-1.0) > 1e-5 {
			t.Errorf("x=%v top = %v, want ≈1.0", x, top)
		}
	}
}

func TestFillZeroTotal(t *testing.T) {
	rows := []plot.Row{
		{"x": 1.0, "y": 0.0, "g": "a"},
		{"x": 1.0, "y": 0.0, "g": "b"},
	}
	points := adjust(t, rows, barAes, "fill")
	for i, p := range points {
		if p.YMax != 0 || p.YMin != 0 {
			t.Errorf("point %d = [%v,%v], want zeros for zero total", i, p.YMin, p.YMax)
		}
	}
}

func TestFillSinglePoint(t *testing.T) {
	points := adjust(t, []plot.Row{{"x": 1.0, "y": 7.0}}, plot.Aes{"x": "x", "y": "y"}, "fill")
	if math.Abs(points[0].YMax-1.0) > 1e-9 {
		t.Errorf("single point fill = %v, want 1.0", points[0].YMax)
	}
}

func TestDodgeOffsetsSumToZero(t *testing.T) {
	rows := []plot.Row{
		{"x": 1.0, "y": 1.0, "g": "a"},
		{"x": 1.0, "y": 2.0, "g": "b"},
		{"x": 1.0, "y": 3.0, "g": "c"},
		{"x": 2.0, "y": 1.0, "g": "a"},
		{"x": 2.0, "y": 2.0, "g": "b"},
		{"x": 2.0, "y": 3.0, "g": "c"},
	}
	points := adjust(t, rows, barAes, "dodge")

	sums := map[float64]float64{}
	for _, p := range points {
		sums[p.XOriginal] += p.X - p.XOriginal
	}
	for x, sum := range sums {
		if math.Abs(sum) > 1e-9 {
			t.Errorf("x=%v offset sum = %v, want ≈0", x, sum)
		}
	}

	// Groups must not collide.
	seen := map[float64]bool{}
	for _, p := range points {
		if p.XOriginal != 1 {
			continue
		}
		if seen[p.X] {
			t.Errorf("duplicate dodged x %v", p.X)
		}
		seen[p.X] = true
	}
}

func TestDodgeSingleGroupIsIdentity(t *testing.T) {
	rows := []plot.Row{
		{"x": 1.0, "y": 1.0, "g": "only"},
		{"x": 2.0, "y": 2.0, "g": "only"},
	}
	points := adjust(t, rows, barAes, "dodge")
	for i, p := range points {
		if p.X != p.XOriginal {
			t.Errorf("point %d moved: %v != %v", i, p.X, p.XOriginal)
		}
	}
}

func TestJitterSeededReproducible(t *testing.T) {
	// Spec scenario: five identical points, jitter(0.4, 0.4, seed=42),
	// run twice, identical 5-tuples both times.
	rows := make([]plot.Row, 5)
	for i := range rows {
		rows[i] = plot.Row{"x": 1.0, "y": 1.0}
	}
	seeded := func(s *plot.PositionSpec) {
		s.Seed = 42
		s.Seeded = true
	}

	first := adjust(t, rows, plot.Aes{"x": "x", "y": "y"}, "jitter", seeded)
	second := adjust(t, rows, plot.Aes{"x": "x", "y": "y"}, "jitter", seeded)

	for i := range first {
		if first[i].X != second[i].X || first[i].Y != second[i].Y {
			t.Errorf("point %d differs across seeded runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestJitterDifferentSeedsDiffer(t *testing.T) {
	rows := make([]plot.Row, 5)
	for i := range rows {
		rows[i] = plot.Row{"x": 1.0, "y": 1.0}
	}
	a := adjust(t, rows, plot.Aes{"x": "x", "y": "y"}, "jitter", func(s *plot.PositionSpec) {
		s.Seed = 1
		s.Seeded = true
	})
	b := adjust(t, rows, plot.Aes{"x": "x", "y": "y"}, "jitter", func(s *plot.PositionSpec) {
		s.Seed = 2
		s.Seeded = true
	})

	differs := false
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("different seeds should move at least one coordinate")
	}
}

func TestJitterBounded(t *testing.T) {
	rows := make([]plot.Row, 100)
	for i := range rows {
		rows[i] = plot.Row{"x": 5.0, "y": 5.0}
	}
	points := adjust(t, rows, plot.Aes{"x": "x", "y": "y"}, "jitter", func(s *plot.PositionSpec) {
		s.Width = 0.4
		s.Height = 0.2
		s.Seed = 7
		s.Seeded = true
	})
	for i, p := range points {
		if math.Abs(p.X-5) > 0.2+1e-9 || math.Abs(p.Y-5) > 0.1+1e-9 {
			t.Errorf("point %d jittered out of bounds: %+v", i, p)
		}
		if p.XOriginal != 5 || p.YOriginal != 5 {
			t.Errorf("point %d originals changed: %+v", i, p)
		}
	}
}

func TestLCGDeterminism(t *testing.T) {
	a := newLCG(99)
	b := newLCG(99)
	for i := 0; i < 1000; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("iteration %d: %v != %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("value %v outside [0,1)", va)
		}
	}
}
