package canvas

// PixelSurface is the sub-cell drawing contract shared by the braille and
// half-block encoders. Logical pixel coordinates start at (0, 0) in the top
// left of the encoder's region; writes outside the surface are silent
// no-ops, and repeated writes to one cell merge rather than overwrite.
type PixelSurface interface {
	// SetPixel lights the logical pixel at (x, y) with the given color.
	SetPixel(x, y int, c RGBA)

	// Size returns the surface extent in logical pixels.
	Size() (w, h int)
}

// DrawLine rasterizes a line segment onto a pixel surface using Bresenham's
// algorithm. Endpoints may lie outside the surface; the out-of-bounds part
// is dropped pixel by pixel.
func DrawLine(s PixelSurface, x0, y0, x1, y1 int, c RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		s.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillRect lights every pixel in the rectangle [x0,x1]×[y0,y1] inclusive.
func FillRect(s PixelSurface, x0, y0, x1, y1 int, c RGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.SetPixel(x, y, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
