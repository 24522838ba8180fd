package canvas

import "testing"

func TestHalfBlockSize(t *testing.T) {
	c := New(10, 5)
	h := NewHalfBlock(c, c.Bounds())
	w, hgt := h.Size()
	if w != 10 || hgt != 10 {
		t.Errorf("Size = %dx%d, want 10x10", w, hgt)
	}
}

func TestHalfBlockUpperLower(t *testing.T) {
	red := RGBA{R: 255, A: 255}

	c := New(1, 1)
	h := NewHalfBlock(c, c.Bounds())
	h.SetPixel(0, 0, red)
	if cell := c.At(0, 0); cell.Glyph != '▀' || cell.Fg != red || cell.Bg.IsSet() {
		t.Errorf("upper only = %+v", cell)
	}

	c = New(1, 1)
	h = NewHalfBlock(c, c.Bounds())
	h.SetPixel(0, 1, red)
	if cell := c.At(0, 0); cell.Glyph != '▄' || cell.Fg != red {
		t.Errorf("lower only = %+v", cell)
	}
}

func TestHalfBlockFullSameColor(t *testing.T) {
	c := New(1, 1)
	h := NewHalfBlock(c, c.Bounds())
	green := RGBA{G: 255, A: 255}

	h.SetPixel(0, 0, green)
	h.SetPixel(0, 1, green)
	if cell := c.At(0, 0); cell.Glyph != '█' || cell.Fg != green {
		t.Errorf("both halves same color = %+v", cell)
	}
}

func TestHalfBlockTwoColors(t *testing.T) {
	// Different colors in both halves both persist: upper through fg,
	// lower through bg.
	c := New(1, 1)
	h := NewHalfBlock(c, c.Bounds())
	red := RGBA{R: 255, A: 255}
	blue := RGBA{B: 255, A: 255}

	h.SetPixel(0, 0, red)
	h.SetPixel(0, 1, blue)

	cell := c.At(0, 0)
	if cell.Glyph != '▀' || cell.Fg != red || cell.Bg != blue {
		t.Errorf("two colors = %+v", cell)
	}
}

func TestHalfBlockMergeOrderIndependent(t *testing.T) {
	red := RGBA{R: 255, A: 255}
	blue := RGBA{B: 255, A: 255}

	// Writing lower before upper must give the same cell.
	c := New(1, 1)
	h := NewHalfBlock(c, c.Bounds())
	h.SetPixel(0, 1, blue)
	h.SetPixel(0, 0, red)

	cell := c.At(0, 0)
	if cell.Glyph != '▀' || cell.Fg != red || cell.Bg != blue {
		t.Errorf("reverse order = %+v", cell)
	}
}

func TestHalfBlockRewriteBlends(t *testing.T) {
	c := New(1, 1)
	h := NewHalfBlock(c, c.Bounds())
	red := RGBA{R: 255, A: 255}
	blue := RGBA{B: 255, A: 255}

	h.SetPixel(0, 0, red)
	h.SetPixel(0, 0, blue)

	fg := c.At(0, 0).Fg
	if fg == red || fg == blue {
		t.Errorf("rewriting a half should blend, got %+v", fg)
	}
}

func TestHalfBlockOutOfBounds(t *testing.T) {
	c := New(2, 2)
	h := NewHalfBlock(c, c.Bounds())
	white := RGBA{R: 255, G: 255, B: 255, A: 255}

	h.SetPixel(-1, 0, white)
	h.SetPixel(0, -1, white)
	h.SetPixel(2, 0, white)
	h.SetPixel(0, 4, white)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if !c.At(x, y).IsBlank() {
				t.Fatalf("out-of-bounds pixel leaked into cell (%d,%d)", x, y)
			}
		}
	}
}

func TestFillRect(t *testing.T) {
	c := New(2, 2)
	h := NewHalfBlock(c, c.Bounds())
	col := RGBA{R: 100, G: 100, B: 100, A: 255}

	FillRect(h, 0, 0, 1, 3, col)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			cell := c.At(x, y)
			if cell.Glyph != '█' || cell.Fg != col {
				t.Errorf("cell (%d,%d) = %+v, want full block", x, y, cell)
			}
		}
	}
}
