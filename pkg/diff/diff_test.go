package diff

import (
	"strings"
	"testing"

	"github.com/matzehuels/termplot/pkg/canvas"
	"github.com/matzehuels/termplot/pkg/errors"
)

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestFirstFrameIsFullRedraw(t *testing.T) {
	e := newEngine(t, Options{})
	c := canvas.New(4, 3)
	c.WriteString(0, 0, "hi", canvas.RGBA{R: 255, A: 255}, 0)

	res := e.Diff(c)
	if !res.HasChanges || !res.FullRedraw {
		t.Errorf("first frame: HasChanges=%v FullRedraw=%v, want both true", res.HasChanges, res.FullRedraw)
	}
	if len(res.ChangedCells) != 12 {
		t.Errorf("first frame should cover every cell, got %d", len(res.ChangedCells))
	}
	if res.Patch != "" {
		t.Errorf("first frame should carry no patch, got %q", res.Patch)
	}
	if res.ChangePercent != 1 {
		t.Errorf("ChangePercent = %v, want 1", res.ChangePercent)
	}
}

func TestUnchangedFrame(t *testing.T) {
	e := newEngine(t, Options{})
	c := canvas.New(10, 5)
	c.WriteString(2, 2, "stable", canvas.RGBA{G: 255, A: 255}, 0)

	e.Diff(c)
	res := e.Diff(c.Clone())
	if res.HasChanges {
		t.Error("identical frame should report no changes")
	}
	if len(res.ChangedCells) != 0 || res.Patch != "" || res.FullRedraw {
		t.Errorf("unchanged frame: %+v", res)
	}
	if res.TotalCells != 50 {
		t.Errorf("TotalCells = %d, want 50", res.TotalCells)
	}
}

func TestSingleCellChange(t *testing.T) {
	e := newEngine(t, Options{})
	a := canvas.New(10, 5)
	e.Diff(a)

	b := a.Clone()
	b.Set(3, 2, canvas.Cell{Glyph: '●', Fg: canvas.RGBA{R: 255, A: 255}})

	res := e.Diff(b)
	if !res.HasChanges || res.FullRedraw {
		t.Fatalf("HasChanges=%v FullRedraw=%v", res.HasChanges, res.FullRedraw)
	}
	if len(res.ChangedCells) != 1 {
		t.Fatalf("changed cells = %d, want 1", len(res.ChangedCells))
	}
	ch := res.ChangedCells[0]
	if ch.X != 3 || ch.Y != 2 || ch.Cell.Glyph != '●' {
		t.Errorf("change = %+v", ch)
	}
	// The patch repositions once and paints the glyph.
	if !strings.Contains(res.Patch, "\x1b[3;4H") {
		t.Errorf("patch missing cursor move: %q", res.Patch)
	}
	if !strings.Contains(res.Patch, "●") {
		t.Errorf("patch missing glyph: %q", res.Patch)
	}
}

func TestChangesSortedRowMajor(t *testing.T) {
	e := newEngine(t, Options{})
	a := canvas.New(6, 4)
	e.Diff(a)

	b := a.Clone()
	b.SetGlyph(4, 3, 'c', canvas.RGBA{A: 255})
	b.SetGlyph(1, 0, 'a', canvas.RGBA{A: 255})
	b.SetGlyph(5, 1, 'b', canvas.RGBA{A: 255})

	res := e.Diff(b)
	if len(res.ChangedCells) != 3 {
		t.Fatalf("changed = %d", len(res.ChangedCells))
	}
	order := []rune{res.ChangedCells[0].Cell.Glyph, res.ChangedCells[1].Cell.Glyph, res.ChangedCells[2].Cell.Glyph}
	if string(order) != "abc" {
		t.Errorf("row-major order violated: %q", string(order))
	}
}

func TestAdjacentCellsSkipCursorMoves(t *testing.T) {
	e := newEngine(t, Options{})
	a := canvas.New(10, 2)
	e.Diff(a)

	b := a.Clone()
	fg := canvas.RGBA{B: 255, A: 255}
	b.WriteString(2, 1, "run", fg, 0)

	res := e.Diff(b)
	if n := strings.Count(res.Patch, "H"); n != 1 {
		t.Errorf("adjacent run should reposition once, got %d moves: %q", n, res.Patch)
	}
	// One style run means one SGR emission.
	if n := strings.Count(res.Patch, "38;2;0;0;255"); n != 1 {
		t.Errorf("style re-emitted %d times, want 1: %q", n, res.Patch)
	}
}

func TestRedrawThreshold(t *testing.T) {
	e := newEngine(t, Options{RedrawThreshold: 0.5})
	a := canvas.New(10, 1)
	e.Diff(a)

	b := a.Clone()
	for x := 0; x < 6; x++ {
		b.SetGlyph(x, 0, 'x', canvas.RGBA{A: 255})
	}

	res := e.Diff(b)
	if !res.FullRedraw {
		t.Errorf("60%% change should trip the 50%% threshold: %+v", res)
	}
	if res.Patch != "" {
		t.Errorf("full redraw carries no patch: %q", res.Patch)
	}
}

func TestDimensionChangeForcesRedraw(t *testing.T) {
	e := newEngine(t, Options{})
	e.Diff(canvas.New(10, 5))

	res := e.Diff(canvas.New(12, 5))
	if !res.FullRedraw {
		t.Error("resized frame should force a full redraw")
	}
	if len(res.ChangedCells) != 60 {
		t.Errorf("changed = %d, want every cell of the new frame", len(res.ChangedCells))
	}
}

func TestColorTolerance(t *testing.T) {
	e := newEngine(t, Options{Tolerance: 8})
	a := canvas.New(2, 1)
	a.Set(0, 0, canvas.Cell{Glyph: 'x', Fg: canvas.RGBA{R: 100, A: 255}})
	e.Diff(a)

	b := a.Clone()
	b.Set(0, 0, canvas.Cell{Glyph: 'x', Fg: canvas.RGBA{R: 105, A: 255}})
	if res := e.Diff(b); res.HasChanges {
		t.Error("a 5-unit channel delta should fall inside tolerance 8")
	}

	c := b.Clone()
	c.Set(0, 0, canvas.Cell{Glyph: 'x', Fg: canvas.RGBA{R: 200, A: 255}})
	if res := e.Diff(c); !res.HasChanges {
		t.Error("a large channel delta should register as a change")
	}
}

func TestRegionGranularity(t *testing.T) {
	e := newEngine(t, Options{Granularity: GranularityRegion})
	a := canvas.New(10, 3)
	e.Diff(a)

	b := a.Clone()
	fg := canvas.RGBA{A: 255}
	b.WriteString(1, 0, "abc", fg, 0)
	b.SetGlyph(7, 0, 'z', fg)
	b.SetGlyph(2, 2, 'q', fg)

	res := e.Diff(b)
	if res.Patch != "" {
		t.Errorf("region mode emits no patch, got %q", res.Patch)
	}
	if len(res.Regions) != 3 {
		t.Fatalf("regions = %d, want 3: %+v", len(res.Regions), res.Regions)
	}
	first := res.Regions[0]
	if first.Y != 0 || first.X != 1 || len(first.Cells) != 3 {
		t.Errorf("first region = %+v", first)
	}
}

func TestInvalidGranularity(t *testing.T) {
	if _, err := New(Options{Granularity: "pixel"}); !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("error = %v, want INVALID_SPEC", err)
	}
}

func TestReset(t *testing.T) {
	e := newEngine(t, Options{})
	c := canvas.New(3, 3)
	e.Diff(c)
	e.Reset()

	if res := e.Diff(c); !res.FullRedraw {
		t.Error("after Reset the next frame should be a full redraw")
	}
}
