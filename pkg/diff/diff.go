// Package diff computes minimal update patches between successive frames
// of the same plot.
//
// An Engine retains a snapshot of the previously rendered canvas. Each
// call to Diff compares the new frame against that snapshot, reports the
// changed cells, and (in cell granularity) emits an ANSI patch string
// that repositions the cursor only across gaps and re-emits style
// sequences only when the run changes. When too much of the frame changed
// a full redraw is cheaper than patching, so the engine gives up past a
// configurable threshold.
package diff

import (
	"strings"

	"github.com/matzehuels/termplot/pkg/ansi"
	"github.com/matzehuels/termplot/pkg/canvas"
	"github.com/matzehuels/termplot/pkg/errors"
	"github.com/matzehuels/termplot/pkg/plot"
)

// Granularity selects how changes are reported.
const (
	// GranularityCell reports individual changed cells and builds a patch.
	GranularityCell = "cell"
	// GranularityRegion merges contiguous same-row changes into spans for
	// hosts that repaint regions themselves.
	GranularityRegion = "region"
)

// DefaultRedrawThreshold is the change fraction above which patching is
// abandoned in favor of a full redraw.
const DefaultRedrawThreshold = 0.5

// Options configures a diff engine.
type Options struct {
	// Granularity is cell or region. Defaults to cell.
	Granularity string
	// Tolerance is the per-channel color slack below which two cell colors
	// count as equal. Zero means exact comparison.
	Tolerance uint8
	// RedrawThreshold is the changed-cell fraction that triggers a full
	// redraw instead of a patch. Zero applies the default; a negative value
	// disables full redraws entirely.
	RedrawThreshold float64
	// ColorMode controls the color depth of emitted patch sequences. One
	// of the plot.Color* constants; defaults to truecolor.
	ColorMode string
}

// ValidateAndSetDefaults checks option consistency and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Granularity == "" {
		o.Granularity = GranularityCell
	}
	if o.Granularity != GranularityCell && o.Granularity != GranularityRegion {
		return errors.New(errors.ErrCodeInvalidSpec,
			"invalid diff granularity: %q (must be one of: cell, region)", o.Granularity)
	}
	if o.RedrawThreshold == 0 {
		o.RedrawThreshold = DefaultRedrawThreshold
	}
	if o.ColorMode == "" {
		o.ColorMode = plot.ColorTruecolor
	}
	return nil
}

// Change is one changed cell with its new content.
type Change struct {
	X, Y int
	Cell canvas.Cell
}

// Region is a contiguous horizontal span of changed cells on one row.
type Region struct {
	Y     int
	X     int
	Cells []canvas.Cell
}

// Result describes one frame comparison.
type Result struct {
	// HasChanges is true when at least one cell differs from the snapshot
	// (always true on the first frame).
	HasChanges bool
	// ChangedCells lists changes in row-major order (cell granularity).
	ChangedCells []Change
	// Regions lists merged row spans (region granularity).
	Regions []Region
	// TotalCells is the frame's cell count.
	TotalCells int
	// ChangePercent is changed cells over total cells, in [0, 1].
	ChangePercent float64
	// Patch is the ANSI update string; empty on the first frame, under
	// region granularity, and when FullRedraw is set.
	Patch string
	// FullRedraw signals the caller should repaint the whole frame: set on
	// the first frame, on a dimension change, and past the threshold.
	FullRedraw bool
}

// Engine diffs successive canvases of one plot instance.
type Engine struct {
	opts Options
	enc  *ansi.Encoder
	prev *canvas.Canvas
}

// New creates a diff engine. Each plot instance needs its own engine since
// the previous-frame snapshot lives inside it.
func New(opts Options) (*Engine, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts, enc: ansi.NewEncoder(opts.ColorMode)}, nil
}

// Reset drops the retained snapshot; the next Diff reports a full redraw.
func (e *Engine) Reset() {
	e.prev = nil
}

// Diff compares the frame against the retained snapshot and replaces the
// snapshot with a copy of the frame. The first call, and any call after a
// dimension change, reports every cell as changed with no patch.
func (e *Engine) Diff(frame *canvas.Canvas) Result {
	total := frame.Width() * frame.Height()
	res := Result{TotalCells: total}

	fresh := e.prev == nil ||
		e.prev.Width() != frame.Width() || e.prev.Height() != frame.Height()

	if fresh {
		res.HasChanges = total > 0
		res.FullRedraw = true
		res.ChangePercent = 1
		for y := 0; y < frame.Height(); y++ {
			for x := 0; x < frame.Width(); x++ {
				res.ChangedCells = append(res.ChangedCells, Change{X: x, Y: y, Cell: frame.At(x, y)})
			}
		}
	} else {
		for y := 0; y < frame.Height(); y++ {
			for x := 0; x < frame.Width(); x++ {
				next := frame.At(x, y)
				if !e.equal(e.prev.At(x, y), next) {
					res.ChangedCells = append(res.ChangedCells, Change{X: x, Y: y, Cell: next})
				}
			}
		}
		res.HasChanges = len(res.ChangedCells) > 0
		if total > 0 {
			res.ChangePercent = float64(len(res.ChangedCells)) / float64(total)
		}
		if e.opts.RedrawThreshold > 0 && res.ChangePercent > e.opts.RedrawThreshold {
			res.FullRedraw = true
		}
	}

	if e.opts.Granularity == GranularityRegion {
		res.Regions = mergeRegions(res.ChangedCells)
	} else if !res.FullRedraw && res.HasChanges {
		res.Patch = e.patch(res.ChangedCells)
	}

	e.prev = frame.Clone()
	return res
}

// equal compares two cells under the configured color tolerance. Glyph and
// style always compare exactly.
func (e *Engine) equal(a, b canvas.Cell) bool {
	if a.Glyph != b.Glyph || a.Style != b.Style {
		return false
	}
	return e.colorClose(a.Fg, b.Fg) && e.colorClose(a.Bg, b.Bg)
}

func (e *Engine) colorClose(a, b canvas.RGBA) bool {
	if a.IsSet() != b.IsSet() {
		return false
	}
	if !a.IsSet() {
		return true
	}
	t := e.opts.Tolerance
	return absDelta(a.R, b.R) <= t && absDelta(a.G, b.G) <= t && absDelta(a.B, b.B) <= t
}

func absDelta(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// patch builds the ANSI update string for a row-major change list. The
// cursor is repositioned only when the next change is not immediately
// right of the previous one, and SGR sequences are re-emitted only when
// the style run changes.
func (e *Engine) patch(changes []Change) string {
	var b strings.Builder
	lastX, lastY := -2, -2
	lastSGR := ""

	for _, ch := range changes {
		if ch.Cell.Glyph == 0 {
			// Wide-rune continuation; the leading glyph repaints it.
			continue
		}
		if ch.Y != lastY || ch.X != lastX+1 {
			b.WriteString(ansi.MoveTo(ch.X, ch.Y))
		}
		if sgr := e.enc.SGR(ch.Cell); sgr != lastSGR {
			b.WriteString(sgr)
			lastSGR = sgr
		}
		b.WriteRune(ch.Cell.Glyph)
		lastX, lastY = ch.X, ch.Y
	}
	if b.Len() > 0 && lastSGR != "" && lastSGR != "\x1b[0m" {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

// mergeRegions folds a row-major change list into per-row contiguous spans.
func mergeRegions(changes []Change) []Region {
	var regions []Region
	for _, ch := range changes {
		n := len(regions)
		if n > 0 {
			last := &regions[n-1]
			if last.Y == ch.Y && last.X+len(last.Cells) == ch.X {
				last.Cells = append(last.Cells, ch.Cell)
				continue
			}
		}
		regions = append(regions, Region{Y: ch.Y, X: ch.X, Cells: []canvas.Cell{ch.Cell}})
	}
	return regions
}
