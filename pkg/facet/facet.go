// Package facet partitions rows into panels.
//
// A facet spec — wrap (one grouping field) or grid (row field × column
// field) — produces an ordered list of Panels, each owning a sub-rectangle
// of the plot area with space reserved for its strip label and inter-panel
// gutters. Combinations with zero matching rows still yield a panel so the
// grid stays rectangular: an empty plot area with axes renders instead of
// a hole.
package facet

import (
	"math"

	"github.com/matzehuels/termplot/pkg/canvas"
	"github.com/matzehuels/termplot/pkg/plot"
)

// Labeller renders a strip label from a facet value and the facetted
// variable name.
type Labeller func(value, variable string) string

// DefaultLabeller shows the bare value, the common strip style.
func DefaultLabeller(value, variable string) string {
	return value
}

// Panel is one rectangular sub-plot.
type Panel struct {
	Index   int
	Title   string     // strip label, "" for the implicit single panel
	Rows    []plot.Row // matching rows; may be empty
	Region  canvas.Rect
	GridRow int
	GridCol int
}

// Layout is the computed panel partition.
type Layout struct {
	Panels []Panel
	NRow   int
	NCol   int
	Spec   plot.FacetSpec
	// Faceted is false for the implicit single panel of an unfaceted plot.
	Faceted bool
}

// gutter is the blank column count between adjacent panels.
const gutter = 1

// stripHeight is the cell rows reserved for a panel's strip label.
const stripHeight = 1

// Compute partitions rows into panels within area.
// A nil spec yields a single full-area panel. The labeller may be nil, in
// which case DefaultLabeller applies.
func Compute(rows []plot.Row, spec *plot.FacetSpec, area canvas.Rect, labeller Labeller) (*Layout, error) {
	if labeller == nil {
		labeller = DefaultLabeller
	}
	if spec == nil {
		return &Layout{
			Panels: []Panel{{Rows: rows, Region: area}},
			NRow:   1,
			NCol:   1,
		}, nil
	}

	normalized, err := spec.Normalize()
	if err != nil {
		return nil, err
	}

	switch normalized.Kind {
	case plot.FacetWrap:
		return computeWrap(rows, normalized, area, labeller)
	default:
		return computeGrid(rows, normalized, area, labeller)
	}
}

func computeWrap(rows []plot.Row, spec plot.FacetSpec, area canvas.Rect, labeller Labeller) (*Layout, error) {
	levels, byLevel := partition(rows, spec.Field)
	n := len(levels)
	if n == 0 {
		// No data: one empty strip-less panel, axes still render.
		return &Layout{
			Panels:  []Panel{{Rows: nil, Region: area}},
			NRow:    1,
			NCol:    1,
			Spec:    spec,
			Faceted: true,
		}, nil
	}

	ncol := spec.NCol
	nrow := spec.NRow
	switch {
	case ncol > 0 && nrow == 0:
		nrow = ceilDiv(n, ncol)
	case nrow > 0 && ncol == 0:
		ncol = ceilDiv(n, nrow)
	case ncol == 0 && nrow == 0:
		ncol = int(math.Ceil(math.Sqrt(float64(n))))
		nrow = ceilDiv(n, ncol)
	}

	layout := &Layout{NRow: nrow, NCol: ncol, Spec: spec, Faceted: true}
	for i, level := range levels {
		row, col := i/ncol, i%ncol
		layout.Panels = append(layout.Panels, Panel{
			Index:   i,
			Title:   labeller(level, spec.Field),
			Rows:    byLevel[level],
			Region:  cellRegion(area, nrow, ncol, row, col),
			GridRow: row,
			GridCol: col,
		})
	}
	return layout, nil
}

func computeGrid(rows []plot.Row, spec plot.FacetSpec, area canvas.Rect, labeller Labeller) (*Layout, error) {
	rowLevels, _ := partition(rows, spec.RowField)
	colLevels, _ := partition(rows, spec.ColField)
	// A one-sided grid still has one lane on the missing axis.
	if spec.RowField == "" {
		rowLevels = []string{""}
	}
	if spec.ColField == "" {
		colLevels = []string{""}
	}
	if len(rowLevels) == 0 {
		rowLevels = []string{""}
	}
	if len(colLevels) == 0 {
		colLevels = []string{""}
	}

	layout := &Layout{NRow: len(rowLevels), NCol: len(colLevels), Spec: spec, Faceted: true}
	index := 0
	for r, rowLevel := range rowLevels {
		for c, colLevel := range colLevels {
			// Empty combinations still render as panels.
			var matched []plot.Row
			for _, row := range rows {
				if spec.RowField != "" && row.StrOr(spec.RowField, plot.UnknownCategory) != rowLevel {
					continue
				}
				if spec.ColField != "" && row.StrOr(spec.ColField, plot.UnknownCategory) != colLevel {
					continue
				}
				matched = append(matched, row)
			}
			layout.Panels = append(layout.Panels, Panel{
				Index:   index,
				Title:   gridTitle(rowLevel, colLevel, spec, labeller),
				Rows:    matched,
				Region:  cellRegion(area, len(rowLevels), len(colLevels), r, c),
				GridRow: r,
				GridCol: c,
			})
			index++
		}
	}
	return layout, nil
}

func gridTitle(rowLevel, colLevel string, spec plot.FacetSpec, labeller Labeller) string {
	switch {
	case spec.RowField != "" && spec.ColField != "":
		return labeller(colLevel, spec.ColField) + " / " + labeller(rowLevel, spec.RowField)
	case spec.RowField != "":
		return labeller(rowLevel, spec.RowField)
	default:
		return labeller(colLevel, spec.ColField)
	}
}

// partition splits rows by the category value of field, keeping first-seen
// level order. Rows missing the field land in the "unknown" level.
func partition(rows []plot.Row, field string) ([]string, map[string][]plot.Row) {
	if field == "" {
		return nil, nil
	}
	var levels []string
	byLevel := map[string][]plot.Row{}
	for _, row := range rows {
		level := row.StrOr(field, plot.UnknownCategory)
		if _, seen := byLevel[level]; !seen {
			levels = append(levels, level)
		}
		byLevel[level] = append(byLevel[level], row)
	}
	return levels, byLevel
}

// cellRegion computes the sub-rectangle for grid position (row, col),
// reserving the strip label row at the top of each panel and one gutter
// column between panels.
// ceilDiv divides rounding up; used to derive the missing grid dimension.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func cellRegion(area canvas.Rect, nrow, ncol, row, col int) canvas.Rect {
	availW := area.W - gutter*(ncol-1)
	availH := area.H - gutter*(nrow-1)
	if availW < 0 {
		availW = 0
	}
	if availH < 0 {
		availH = 0
	}

	w := availW / ncol
	h := availH / nrow
	x := area.X + col*(w+gutter)
	y := area.Y + row*(h+gutter)

	// The strip label eats the top row of the panel's own region; content
	// starts below it. Region covers the content area only.
	contentY := y + stripHeight
	contentH := h - stripHeight
	if contentH < 0 {
		contentH = 0
	}
	return canvas.Rect{X: x, Y: contentY, W: w, H: contentH}
}

// StripOrigin returns the cell where a panel's strip label row begins.
func (p Panel) StripOrigin() (x, y int) {
	return p.Region.X, p.Region.Y - stripHeight
}

// SharedX reports whether panels share one x scale.
func (l *Layout) SharedX() bool {
	s := l.Spec.Scales
	return s == "" || s == plot.FacetScalesFixed || s == plot.FacetScalesFreeY
}

// SharedY reports whether panels share one y scale.
func (l *Layout) SharedY() bool {
	s := l.Spec.Scales
	return s == "" || s == plot.FacetScalesFixed || s == plot.FacetScalesFreeX
}
