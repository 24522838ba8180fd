package facet

import (
	"testing"

	"github.com/matzehuels/termplot/pkg/canvas"
	"github.com/matzehuels/termplot/pkg/plot"
)

var area = canvas.Rect{X: 0, Y: 0, W: 60, H: 20}

func TestNilSpecSinglePanel(t *testing.T) {
	rows := []plot.Row{{"x": 1.0}, {"x": 2.0}}
	layout, err := Compute(rows, nil, area, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Panels) != 1 || layout.Faceted {
		t.Fatalf("layout = %+v", layout)
	}
	p := layout.Panels[0]
	if p.Region != area {
		t.Errorf("single panel region = %+v, want full area", p.Region)
	}
	if len(p.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(p.Rows))
	}
}

func TestWrapPartitionsByLevel(t *testing.T) {
	rows := []plot.Row{
		{"g": "a", "x": 1.0},
		{"g": "b", "x": 2.0},
		{"g": "a", "x": 3.0},
		{"g": "c", "x": 4.0},
	}
	spec := &plot.FacetSpec{Kind: plot.FacetWrap, Field: "g", NCol: 2}
	layout, err := Compute(rows, spec, area, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(layout.Panels) != 3 {
		t.Fatalf("panels = %d, want 3", len(layout.Panels))
	}
	if layout.NCol != 2 || layout.NRow != 2 {
		t.Errorf("grid = %dx%d, want 2x2", layout.NRow, layout.NCol)
	}
	// First-seen level order.
	wantTitles := []string{"a", "b", "c"}
	wantCounts := []int{2, 1, 1}
	for i, p := range layout.Panels {
		if p.Title != wantTitles[i] {
			t.Errorf("panel %d title = %q, want %q", i, p.Title, wantTitles[i])
		}
		if len(p.Rows) != wantCounts[i] {
			t.Errorf("panel %d rows = %d, want %d", i, len(p.Rows), wantCounts[i])
		}
	}
}

func TestWrapDerivesGridDimensions(t *testing.T) {
	var rows []plot.Row
	for _, g := range []string{"a", "b", "c", "d", "e"} {
		rows = append(rows, plot.Row{"g": g})
	}

	tests := []struct {
		name       string
		spec       plot.FacetSpec
		nrow, ncol int
	}{
		{"ncol given rounds rows up", plot.FacetSpec{Kind: plot.FacetWrap, Field: "g", NCol: 2}, 3, 2},
		{"nrow given rounds cols up", plot.FacetSpec{Kind: plot.FacetWrap, Field: "g", NRow: 2}, 2, 3},
		{"neither given squares off", plot.FacetSpec{Kind: plot.FacetWrap, Field: "g"}, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := Compute(rows, &tt.spec, area, nil)
			if err != nil {
				t.Fatal(err)
			}
			if layout.NRow != tt.nrow || layout.NCol != tt.ncol {
				t.Errorf("grid = %dx%d, want %dx%d", layout.NRow, layout.NCol, tt.nrow, tt.ncol)
			}
			if layout.NRow*layout.NCol < len(layout.Panels) {
				t.Errorf("grid %dx%d cannot hold %d panels", layout.NRow, layout.NCol, len(layout.Panels))
			}
		})
	}
}

func TestWrapRegionsDisjoint(t *testing.T) {
	rows := []plot.Row{
		{"g": "a"}, {"g": "b"}, {"g": "c"}, {"g": "d"},
	}
	spec := &plot.FacetSpec{Kind: plot.FacetWrap, Field: "g", NCol: 2}
	layout, err := Compute(rows, spec, area, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i, p := range layout.Panels {
		if p.Region.Empty() {
			t.Errorf("panel %d region empty: %+v", i, p.Region)
		}
		// Strip row sits directly above the content region.
		_, sy := p.StripOrigin()
		if sy != p.Region.Y-1 {
			t.Errorf("panel %d strip y = %d, want %d", i, sy, p.Region.Y-1)
		}
		for j := i + 1; j < len(layout.Panels); j++ {
			q := layout.Panels[j]
			if rectsOverlap(p.Region, q.Region) {
				t.Errorf("panels %d and %d overlap: %+v vs %+v", i, j, p.Region, q.Region)
			}
		}
	}
}

func rectsOverlap(a, b canvas.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestGridEmptyCombinationsRender(t *testing.T) {
	// Rows only cover (r1,c1) and (r2,c2); the grid must still produce
	// all four panels.
	rows := []plot.Row{
		{"r": "r1", "c": "c1", "x": 1.0},
		{"r": "r2", "c": "c2", "x": 2.0},
	}
	spec := &plot.FacetSpec{Kind: plot.FacetGrid, RowField: "r", ColField: "c"}
	layout, err := Compute(rows, spec, area, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(layout.Panels) != 4 {
		t.Fatalf("panels = %d, want 4", len(layout.Panels))
	}
	empty := 0
	for _, p := range layout.Panels {
		if len(p.Rows) == 0 {
			empty++
		}
	}
	if empty != 2 {
		t.Errorf("empty panels = %d, want 2", empty)
	}
}

func TestGridOneSided(t *testing.T) {
	rows := []plot.Row{
		{"r": "a"}, {"r": "b"},
	}
	spec := &plot.FacetSpec{Kind: plot.FacetGrid, RowField: "r"}
	layout, err := Compute(rows, spec, area, nil)
	if err != nil {
		t.Fatal(err)
	}
	if layout.NRow != 2 || layout.NCol != 1 {
		t.Errorf("grid = %dx%d, want 2x1", layout.NRow, layout.NCol)
	}
}

func TestMissingFacetFieldGroupsAsUnknown(t *testing.T) {
	rows := []plot.Row{
		{"g": "a", "x": 1.0},
		{"x": 2.0}, // no facet field
	}
	spec := &plot.FacetSpec{Kind: plot.FacetWrap, Field: "g"}
	layout, err := Compute(rows, spec, area, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Panels) != 2 {
		t.Fatalf("panels = %d, want 2 (a + unknown)", len(layout.Panels))
	}
	if layout.Panels[1].Title != plot.UnknownCategory {
		t.Errorf("panel 1 title = %q, want %q", layout.Panels[1].Title, plot.UnknownCategory)
	}
}

func TestCustomLabeller(t *testing.T) {
	rows := []plot.Row{{"g": "a"}}
	spec := &plot.FacetSpec{Kind: plot.FacetWrap, Field: "g"}
	layeller := func(value, variable string) string { return variable + ": " + value }
	layout, err := Compute(rows, spec, area, layeller)
	if err != nil {
		t.Fatal(err)
	}
	if layout.Panels[0].Title != "g: a" {
		t.Errorf("title = %q, want %q", layout.Panels[0].Title, "g: a")
	}
}

func TestScaleSharingModes(t *testing.T) {
	tests := []struct {
		scales  string
		sharedX bool
		sharedY bool
	}{
		{plot.FacetScalesFixed, true, true},
		{plot.FacetScalesFree, false, false},
		{plot.FacetScalesFreeX, false, true},
		{plot.FacetScalesFreeY, true, false},
	}
	for _, tt := range tests {
		l := &Layout{Spec: plot.FacetSpec{Scales: tt.scales}}
		if l.SharedX() != tt.sharedX || l.SharedY() != tt.sharedY {
			t.Errorf("scales=%q: shared = %v/%v, want %v/%v",
				tt.scales, l.SharedX(), l.SharedY(), tt.sharedX, tt.sharedY)
		}
	}
}

func TestInvalidFacet(t *testing.T) {
	spec := &plot.FacetSpec{Kind: plot.FacetWrap} // missing field
	if _, err := Compute(nil, spec, area, nil); err == nil {
		t.Error("wrap without field should fail")
	}
}

func TestWrapNoData(t *testing.T) {
	spec := &plot.FacetSpec{Kind: plot.FacetWrap, Field: "g"}
	layout, err := Compute(nil, spec, area, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Panels) != 1 {
		t.Fatalf("panels = %d, want 1 empty panel", len(layout.Panels))
	}
}
