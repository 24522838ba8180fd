package canvas

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is a premultiplied-free 8-bit color. Alpha zero means "unset": the
// terminal default is used for that channel and blending treats the slot as
// empty.
type RGBA struct {
	R, G, B, A uint8
}

// IsSet reports whether the color carries a value.
func (c RGBA) IsSet() bool { return c.A != 0 }

// RGBA implements image/color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex parses "#RRGGBB" or "#RGB" into an opaque color.
// Invalid input reports ok=false.
func Hex(s string) (RGBA, bool) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, false
	}
	r, g, b := cf.RGB255()
	return RGBA{R: r, G: g, B: b, A: 255}, true
}

// Blend mixes two colors in LUV space, which keeps perceived lightness
// stable when lines of different series cross in one cell. An unset color
// yields the other operand unchanged.
func Blend(a, b RGBA) RGBA {
	if !a.IsSet() {
		return b
	}
	if !b.IsSet() {
		return a
	}
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	m := ca.BlendLuv(cb, 0.5).Clamped()
	r, g, bl := m.RGB255()
	return RGBA{R: r, G: g, B: bl, A: 255}
}
