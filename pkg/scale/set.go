package scale

import (
	"github.com/matzehuels/termplot/pkg/canvas"
	"github.com/matzehuels/termplot/pkg/plot"
	"github.com/matzehuels/termplot/pkg/position"
)

// Set holds the scales resolved for one panel (or shared across panels
// under fixed facet scales).
type Set struct {
	X *Continuous
	Y *Continuous

	// XLevels is non-nil when the x aesthetic resolved to categories; the
	// continuous X scale then spans the slot indices and XLevels carries
	// the slot labels.
	XLevels *Discrete

	// Color maps the grouping category to its series color.
	Color *ColorMap

	// Size is non-nil when the size channel is bound to a field.
	Size *Continuous
}

// ColorMap assigns palette colors to discrete categories.
type ColorMap struct {
	Levels *Discrete
	colors []canvas.RGBA
}

// Color returns the color for a category, cycling the palette.
// An unknown category and the empty (ungrouped) category both get the
// first palette color.
func (m *ColorMap) Color(category string) canvas.RGBA {
	if m == nil || len(m.colors) == 0 {
		return canvas.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	i, ok := m.Levels.Slot(category)
	if !ok {
		i = 0
	}
	return m.colors[i%len(m.colors)]
}

// BuildOptions configures scale resolution for a panel.
type BuildOptions struct {
	Specs []plot.ScaleSpec
	// PaletteHex is the discrete color cycle as hex strings.
	PaletteHex []string
	// IncludeZeroY forces 0 into the y domain (bar and area layers draw
	// from the zero baseline).
	IncludeZeroY bool
}

// Build resolves the scale set for a panel from its positioned points and
// the originating rows.
func Build(points []position.Point, rows []plot.Row, aes plot.Aes, opts BuildOptions) *Set {
	set := &Set{}

	xSpec := specFor(opts.Specs, plot.ChannelX)
	ySpec := specFor(opts.Specs, plot.ChannelY)

	// Detect a categorical x: the mapped field exists but does not coerce
	// to a number. Slots were already assigned in first-seen order by the
	// position engine; rebuild the same levels here for labeling.
	xField := aes.Field(plot.ChannelX)
	if cats, isDiscrete := discreteValues(rows, xField, xSpec.Discrete); isDiscrete {
		set.XLevels = NewDiscrete(cats, false)
		if xSpec.Limits == nil {
			// Half-slot margin keeps the first and last category off the
			// panel edge.
			lim := [2]float64{-0.5, float64(set.XLevels.Len()) - 0.5}
			xSpec.Limits = &lim
		}
	}

	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points)*2)
	for _, p := range points {
		xs = append(xs, p.X)
		if p.HasRange {
			ys = append(ys, p.YMin, p.YMax)
		} else {
			ys = append(ys, p.Y)
		}
	}
	if opts.IncludeZeroY && len(ys) > 0 {
		ys = append(ys, 0)
	}

	set.X = NewContinuous(xs, xSpec)
	set.Y = NewContinuous(ys, ySpec)

	if group := aes.GroupField(); group != "" {
		var cats []string
		for _, row := range rows {
			cats = append(cats, row.StrOr(group, plot.UnknownCategory))
		}
		set.Color = NewColorMap(NewDiscrete(cats, false), opts.PaletteHex)
	}

	if sizeField := aes.Field(plot.ChannelSize); sizeField != "" {
		var vals []float64
		for _, row := range rows {
			if v, ok := row.Num(sizeField); ok {
				vals = append(vals, v)
			}
		}
		set.Size = NewContinuous(vals, specFor(opts.Specs, plot.ChannelSize))
	}

	return set
}

// NewColorMap builds a color map from discrete levels and a hex palette.
func NewColorMap(levels *Discrete, paletteHex []string) *ColorMap {
	if len(paletteHex) == 0 {
		paletteHex = plot.DefaultPalette
	}
	colors := make([]canvas.RGBA, 0, len(paletteHex))
	for _, hex := range paletteHex {
		if c, ok := canvas.Hex(hex); ok {
			colors = append(colors, c)
		}
	}
	if len(colors) == 0 {
		colors = []canvas.RGBA{{R: 255, G: 255, B: 255, A: 255}}
	}
	return &ColorMap{Levels: levels, colors: colors}
}

// discreteValues extracts the category values for field when the field is
// categorical (or forced discrete). A field whose first present value
// coerces to a number is continuous.
func discreteValues(rows []plot.Row, field string, force bool) ([]string, bool) {
	if field == "" {
		return nil, false
	}
	discrete := force
	if !discrete {
		found := false
		for _, row := range rows {
			if _, present := row[field]; !present {
				continue
			}
			found = true
			if _, numeric := row.Num(field); numeric {
				return nil, false
			}
			break
		}
		if !found {
			return nil, false
		}
	}
	cats := make([]string, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, row.StrOr(field, plot.UnknownCategory))
	}
	return cats, true
}

func specFor(specs []plot.ScaleSpec, aesthetic string) plot.ScaleSpec {
	for _, s := range specs {
		if s.Aesthetic == aesthetic {
			return s
		}
	}
	return plot.ScaleSpec{Aesthetic: aesthetic, Transform: plot.TransformIdentity}
}
