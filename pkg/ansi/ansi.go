// Package ansi encodes a canvas into a terminal string.
//
// The encoder walks the cell grid row by row, emitting SGR escape
// sequences only when the style run changes, and quantizes RGBA cell
// colors down to the terminal's color depth: truecolor passes through,
// 256 and 16 color modes snap to the nearest palette entry (via termenv's
// profile conversion), and none strips color entirely.
package ansi

import (
	"image/color"
	"strings"

	"github.com/muesli/termenv"

	"github.com/matzehuels/termplot/pkg/canvas"
	"github.com/matzehuels/termplot/pkg/plot"
)

// Encoder turns canvases into ANSI strings at a fixed color depth.
type Encoder struct {
	profile termenv.Profile
	color   bool
}

// NewEncoder creates an encoder for the given color mode (one of the
// plot.Color* constants). Mode auto probes the environment's terminal
// profile.
func NewEncoder(colorMode string) *Encoder {
	switch colorMode {
	case plot.ColorNone:
		return &Encoder{profile: termenv.Ascii, color: false}
	case plot.Color16:
		return &Encoder{profile: termenv.ANSI, color: true}
	case plot.Color256:
		return &Encoder{profile: termenv.ANSI256, color: true}
	case plot.ColorTruecolor:
		return &Encoder{profile: termenv.TrueColor, color: true}
	default:
		p := termenv.EnvColorProfile()
		return &Encoder{profile: p, color: p != termenv.Ascii}
	}
}

// Encode renders the canvas as height lines joined by newlines. Color
// output ends with a reset so the terminal state is left clean.
func (e *Encoder) Encode(c *canvas.Canvas) string {
	var b strings.Builder
	// Rough preallocation: glyphs plus some escape overhead.
	b.Grow(c.Width()*c.Height() + c.Height()*16)

	last := ""
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			cell := c.At(x, y)
			if cell.Glyph == 0 {
				// Continuation of a wide rune: the glyph before it covers
				// this column.
				continue
			}
			if e.color {
				if sgr := e.SGR(cell); sgr != last {
					b.WriteString(sgr)
					last = sgr
				}
			}
			b.WriteRune(cell.Glyph)
		}
		if y < c.Height()-1 {
			b.WriteByte('\n')
		}
	}
	if e.color && last != "" && last != sgrReset {
		b.WriteString(sgrReset)
	}
	return b.String()
}

const sgrReset = "\x1b[0m"

// SGR returns the escape sequence establishing the cell's exact style and
// colors, starting from a reset so it is position-independent.
func (e *Encoder) SGR(cell canvas.Cell) string {
	if !e.color {
		return ""
	}

	attrs := []string{"0"}
	if cell.Style&canvas.StyleBold != 0 {
		attrs = append(attrs, "1")
	}
	if cell.Style&canvas.StyleDim != 0 {
		attrs = append(attrs, "2")
	}
	if cell.Style&canvas.StyleUnderline != 0 {
		attrs = append(attrs, "4")
	}
	if cell.Style&canvas.StyleReverse != 0 {
		attrs = append(attrs, "7")
	}
	if cell.Fg.IsSet() {
		attrs = append(attrs, e.colorSeq(cell.Fg, false))
	}
	if cell.Bg.IsSet() {
		attrs = append(attrs, e.colorSeq(cell.Bg, true))
	}

	return "\x1b[" + strings.Join(attrs, ";") + "m"
}

// colorSeq quantizes an RGBA to the encoder's profile and renders its SGR
// fragment.
func (e *Encoder) colorSeq(c canvas.RGBA, bg bool) string {
	tc := e.profile.FromColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	if tc == nil {
		return ""
	}
	return tc.Sequence(bg)
}

// Profile exposes the resolved termenv profile, mainly for tests and the
// CLI's capability logging.
func (e *Encoder) Profile() termenv.Profile {
	return e.profile
}

// MoveTo returns the cursor-positioning sequence for a cell coordinate
// (0-based; the terminal sequence itself is 1-based).
func MoveTo(x, y int) string {
	var b strings.Builder
	b.WriteString("\x1b[")
	writeInt(&b, y+1)
	b.WriteByte(';')
	writeInt(&b, x+1)
	b.WriteByte('H')
	return b.String()
}

func writeInt(b *strings.Builder, v int) {
	if v >= 10 {
		writeInt(b, v/10)
	}
	b.WriteByte(byte('0' + v%10))
}
