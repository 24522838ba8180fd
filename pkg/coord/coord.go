// Package coord composes normalized scale output with a panel's pixel
// rectangle.
//
// A System owns the mapping from data coordinates to logical pixel
// coordinates of one panel surface: scales normalize into [0, 1]², the
// coordinate system applies axis flip or a fixed aspect ratio, and the
// result lands on the panel's pixel grid with the y axis pointing up.
// Configured axis limits clip (drop) out-of-range points; they never
// distort the mapping of in-range points.
package coord

import (
	"math"

	"github.com/matzehuels/termplot/pkg/plot"
	"github.com/matzehuels/termplot/pkg/scale"
)

// System maps data coordinates onto a panel pixel surface.
type System struct {
	spec   plot.CoordSpec
	scales *scale.Set
	pixelW int
	pixelH int

	// Effective drawing window inside the pixel surface, shrunk when a
	// fixed aspect ratio letterboxes the panel.
	offX, offY int
	drawW      int
	drawH      int
}

// New creates a coordinate system for a panel surface of pixelW×pixelH
// logical pixels. The spec is normalized before use; an invalid kind
// surfaces as a configuration error.
func New(spec plot.CoordSpec, scales *scale.Set, pixelW, pixelH int) (*System, error) {
	normalized, err := spec.Normalize()
	if err != nil {
		return nil, err
	}
	s := &System{
		spec:   normalized,
		scales: scales,
		pixelW: pixelW,
		pixelH: pixelH,
		drawW:  pixelW,
		drawH:  pixelH,
	}
	if normalized.Kind == plot.CoordFixed {
		s.applyFixedAspect()
	}
	return s, nil
}

// applyFixedAspect shrinks the drawing window so ratio units of y span the
// same pixels as one unit of x, centering the window in the panel.
func (s *System) applyFixedAspect() {
	xSpan := s.scales.X.Max - s.scales.X.Min
	ySpan := s.scales.Y.Max - s.scales.Y.Min
	if xSpan <= 0 || ySpan <= 0 || s.pixelW <= 0 || s.pixelH <= 0 {
		return
	}

	perUnitX := float64(s.drawW) / xSpan
	wantPerUnitY := perUnitX * s.spec.Ratio
	perUnitY := float64(s.drawH) / ySpan

	if perUnitY > wantPerUnitY {
		// Too tall: shrink height.
		h := int(math.Round(wantPerUnitY * ySpan))
		s.offY = (s.drawH - h) / 2
		s.drawH = h
	} else if perUnitY < wantPerUnitY {
		// Too wide: shrink width.
		w := int(math.Round(perUnitY / s.spec.Ratio * xSpan))
		s.offX = (s.drawW - w) / 2
		s.drawW = w
	}
}

// Transform maps a data point to pixel coordinates on the panel surface.
// ok=false drops the point: NaN/Inf input, a point outside configured
// xlim/ylim, or (under clipping) a point outside the scale domain.
func (s *System) Transform(x, y float64) (px, py int, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	if s.spec.Clipped() {
		if s.spec.XLim != nil && (x < s.spec.XLim[0] || x > s.spec.XLim[1]) {
			return 0, 0, false
		}
		if s.spec.YLim != nil && (y < s.spec.YLim[0] || y > s.spec.YLim[1]) {
			return 0, 0, false
		}
	}

	nx := s.scales.X.Normalize(x)
	ny := s.scales.Y.Normalize(y)
	if s.spec.Kind == plot.CoordFlip {
		nx, ny = ny, nx
	}

	const slack = 1e-9
	if s.spec.Clipped() && (nx < -slack || nx > 1+slack || ny < -slack || ny > 1+slack) {
		return 0, 0, false
	}

	if s.drawW <= 0 || s.drawH <= 0 {
		return 0, 0, false
	}
	px = s.offX + int(math.Round(nx*float64(s.drawW-1)))
	// Pixel rows grow downward; data y grows upward.
	py = s.offY + int(math.Round((1-ny)*float64(s.drawH-1)))
	return px, py, true
}

// Flipped reports whether the axes are swapped.
func (s *System) Flipped() bool {
	return s.spec.Kind == plot.CoordFlip
}

// Scales returns the scale set this system composes with.
func (s *System) Scales() *scale.Set {
	return s.scales
}

// PixelSize returns the panel surface extent in logical pixels.
func (s *System) PixelSize() (w, h int) {
	return s.pixelW, s.pixelH
}
