package canvas_test

import (
	"fmt"

	"github.com/matzehuels/termplot/pkg/canvas"
)

// Two dots written to the same cell combine by OR, so crossing marks
// coexist in one glyph instead of erasing each other.
func ExampleBraille_SetPixel() {
	c := canvas.New(1, 1)
	b := canvas.NewBraille(c, canvas.Rect{X: 0, Y: 0, W: 1, H: 1})

	red := canvas.RGBA{R: 255, A: 255}
	b.SetPixel(0, 0, red) // top-left dot
	b.SetPixel(1, 3, red) // bottom-right dot

	fmt.Printf("%c\n", c.At(0, 0).Glyph)
	// Output: ⢁
}
