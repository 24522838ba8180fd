package sample

import (
	"math"
	"testing"

	"github.com/matzehuels/termplot/pkg/errors"
	"github.com/matzehuels/termplot/pkg/plot"
)

func seriesRows(n int) []plot.Row {
	rows := make([]plot.Row, n)
	for i := range rows {
		rows[i] = plot.Row{"x": float64(i), "y": math.Sin(float64(i) / 10)}
	}
	return rows
}

func TestSizeLawAllMethods(t *testing.T) {
	rows := seriesRows(1000)
	for i := range rows {
		rows[i]["g"] = []string{"a", "b", "c", "d"}[i%4]
	}
	for _, method := range []string{MethodSystematic, MethodLTTB, MethodStratified, MethodReservoir, MethodBinned} {
		opts := Options{
			Method: method, Target: 100,
			XField: "x", YField: "y",
			StratifyField: "g",
			Seed:          1, Seeded: true,
		}
		out, err := Reduce(rows, opts)
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		if len(out) > 100 {
			t.Errorf("%s: output length = %d, want <= 100", method, len(out))
		}
		if len(out) == 0 {
			t.Errorf("%s: output empty", method)
		}
	}
}

func TestWithinBudgetPassthrough(t *testing.T) {
	rows := seriesRows(50)
	for _, method := range []string{MethodSystematic, MethodLTTB, MethodReservoir} {
		out, err := Reduce(rows, Options{Method: method, Target: 100, XField: "x", YField: "y"})
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 50 {
			t.Fatalf("%s: length = %d, want 50", method, len(out))
		}
		for i := range out {
			if out[i]["x"] != rows[i]["x"] {
				t.Errorf("%s: row %d reordered", method, i)
			}
		}
	}
}

func TestSystematicScenario(t *testing.T) {
	// Spec scenario: 1000 rows to target 100 yields exactly 100, and the
	// first output row is the first input row.
	rows := seriesRows(1000)
	out, err := Reduce(rows, Options{Method: MethodSystematic, Target: 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 100 {
		t.Fatalf("length = %d, want exactly 100", len(out))
	}
	if out[0]["x"] != rows[0]["x"] {
		t.Error("output[0] should be input[0]")
	}
	// Deterministic and order-preserving.
	again, _ := Reduce(rows, Options{Method: MethodSystematic, Target: 100})
	for i := range out {
		if out[i]["x"] != again[i]["x"] {
			t.Fatal("systematic sampling should be deterministic")
		}
	}
	for i := 1; i < len(out); i++ {
		if out[i]["x"].(float64) <= out[i-1]["x"].(float64) {
			t.Fatal("systematic output should preserve order")
		}
	}
}

func TestLTTBKeepsEndpoints(t *testing.T) {
	rows := seriesRows(500)
	out, err := Reduce(rows, Options{Method: MethodLTTB, Target: 50, XField: "x", YField: "y"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 50 {
		t.Fatalf("length = %d, want 50", len(out))
	}
	if out[0]["x"] != rows[0]["x"] || out[len(out)-1]["x"] != rows[len(rows)-1]["x"] {
		t.Error("lttb must keep the first and last point")
	}
}

func TestLTTBKeepsPeaks(t *testing.T) {
	// A single sharp spike must survive aggressive reduction: that is the
	// point of triangle-area selection.
	rows := seriesRows(400)
	rows[200]["y"] = 100.0
	out, err := Reduce(rows, Options{Method: MethodLTTB, Target: 20, XField: "x", YField: "y"})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, row := range out {
		if row["y"] == 100.0 {
			found = true
		}
	}
	if !found {
		t.Error("the spike should survive lttb reduction")
	}
}

func TestLTTBTinyTarget(t *testing.T) {
	rows := seriesRows(100)
	out, err := Reduce(rows, Options{Method: MethodLTTB, Target: 2, XField: "x", YField: "y"})
	if err != nil {
		t.Fatal(err)
	}
	// Below 3, only first and last survive.
	if len(out) != 2 || out[0]["x"] != rows[0]["x"] || out[1]["x"] != rows[99]["x"] {
		t.Errorf("tiny target output = %v", out)
	}
}

func TestStratifiedKeepsAllCategories(t *testing.T) {
	var rows []plot.Row
	// Heavily skewed: 990 of "common", 10 of "rare".
	for i := 0; i < 990; i++ {
		rows = append(rows, plot.Row{"cat": "common", "x": float64(i)})
	}
	for i := 0; i < 10; i++ {
		rows = append(rows, plot.Row{"cat": "rare", "x": float64(i)})
	}

	out, err := Reduce(rows, Options{Method: MethodStratified, Target: 50, StratifyField: "cat"})
	if err != nil {
		t.Fatal(err)
	}
	counts := map[string]int{}
	for _, row := range out {
		counts[row.StrOr("cat", "")]++
	}
	if counts["rare"] < 1 {
		t.Error("every category must keep at least one representative")
	}
	if counts["common"] <= counts["rare"] {
		t.Errorf("proportionality lost: %v", counts)
	}
	// The budget trim shrinks the dominant stratum, not the rare one.
	if len(out) != 50 {
		t.Errorf("len(out) = %d, want the target of 50", len(out))
	}
}

func TestStratifiedMoreCategoriesThanTarget(t *testing.T) {
	var rows []plot.Row
	for i := 0; i < 20; i++ {
		rows = append(rows, plot.Row{"cat": string(rune('a' + i)), "x": float64(i)})
	}

	out, err := Reduce(rows, Options{Method: MethodStratified, Target: 5, StratifyField: "cat"})
	if err != nil {
		t.Fatal(err)
	}
	// All quotas are already one, so min-one wins over the budget.
	if len(out) != 20 {
		t.Errorf("len(out) = %d, want one row per category", len(out))
	}
}

func TestStratifiedWithoutFieldFails(t *testing.T) {
	_, err := Reduce(seriesRows(100), Options{Method: MethodStratified, Target: 10})
	if !errors.Is(err, errors.ErrCodeMissingOption) {
		t.Errorf("error = %v, want MISSING_OPTION", err)
	}
}

func TestReservoirSeededReproducible(t *testing.T) {
	rows := seriesRows(1000)
	opts := Options{Method: MethodReservoir, Target: 100, Seed: 42, Seeded: true}

	a, err := Reduce(rows, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Reduce(rows, opts)
	if len(a) != 100 || len(b) != 100 {
		t.Fatalf("lengths = %d/%d", len(a), len(b))
	}
	for i := range a {
		if a[i]["x"] != b[i]["x"] {
			t.Fatal("seeded reservoir should be reproducible")
		}
	}
	// Sampled rows keep input order.
	for i := 1; i < len(a); i++ {
		if a[i]["x"].(float64) <= a[i-1]["x"].(float64) {
			t.Fatal("reservoir output should preserve input order")
		}
	}
}

func TestBinnedAveragesFields(t *testing.T) {
	// Four points collapsing into one bin average their numeric fields.
	rows := []plot.Row{
		{"x": 0.0, "y": 0.0, "v": 10.0},
		{"x": 0.1, "y": 0.1, "v": 20.0},
		{"x": 100.0, "y": 100.0, "v": 1.0},
	}
	out, err := Reduce(rows, Options{Method: MethodBinned, Target: 2, XField: "x", YField: "y", Resolution: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("length = %d, want 2 bins", len(out))
	}
	v, _ := out[0].Num("v")
	if math.Abs(v-15) > 1e-9 {
		t.Errorf("bin average v = %v, want 15", v)
	}
}

func TestInvalidMethod(t *testing.T) {
	_, err := Reduce(seriesRows(10), Options{Method: "decimate", Target: 5})
	if !errors.Is(err, errors.ErrCodeInvalidSampling) {
		t.Errorf("error = %v, want INVALID_SAMPLING", err)
	}
}

func TestZeroTargetDisablesReduction(t *testing.T) {
	rows := seriesRows(100)
	out, err := Reduce(rows, Options{Method: MethodSystematic, Target: 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 100 {
		t.Errorf("length = %d, want passthrough", len(out))
	}
}

func TestEmptyInput(t *testing.T) {
	for _, method := range []string{MethodSystematic, MethodLTTB, MethodReservoir, MethodBinned} {
		out, err := Reduce(nil, Options{Method: method, Target: 10, XField: "x", YField: "y"})
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		if len(out) != 0 {
			t.Errorf("%s: empty input should yield empty output", method)
		}
	}
}
