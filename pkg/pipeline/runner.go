package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/termplot/pkg/ansi"
	"github.com/matzehuels/termplot/pkg/canvas"
	"github.com/matzehuels/termplot/pkg/coord"
	"github.com/matzehuels/termplot/pkg/diff"
	"github.com/matzehuels/termplot/pkg/facet"
	"github.com/matzehuels/termplot/pkg/geom"
	"github.com/matzehuels/termplot/pkg/observability"
	"github.com/matzehuels/termplot/pkg/plot"
	"github.com/matzehuels/termplot/pkg/position"
	"github.com/matzehuels/termplot/pkg/render"
	"github.com/matzehuels/termplot/pkg/sample"
	"github.com/matzehuels/termplot/pkg/scale"
	"github.com/matzehuels/termplot/pkg/stat"
)

// Runner executes the render pipeline for one plot instance.
//
// The Runner owns the diff engine whose previous-frame snapshot makes
// RenderFrame incremental; everything else is recomputed per call.
// Independent Runners share no state.
type Runner struct {
	opts   Options
	logger *log.Logger
	diff   *diff.Engine
}

// NewRunner validates options and creates a runner.
func NewRunner(opts Options) (*Runner, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	diffOpts := opts.Diff
	diffOpts.ColorMode = opts.Render.ColorMode
	engine, err := diff.New(diffOpts)
	if err != nil {
		return nil, err
	}

	return &Runner{
		opts:   opts,
		logger: opts.Logger,
		diff:   engine,
	}, nil
}

// Render executes one full render and returns the frame string.
func (r *Runner) Render(ctx context.Context) (*Result, error) {
	frame, result, err := r.renderCanvas(ctx)
	if err != nil {
		return nil, err
	}

	encodeStart := time.Now()
	result.Output = ansi.NewEncoder(r.opts.Render.ColorMode).Encode(frame)
	result.Stats.EncodeTime = time.Since(encodeStart)
	return result, nil
}

// RenderFrame renders and additionally diffs against the previous frame.
// Streaming hosts apply result.Diff.Patch when set, and fall back to
// result.Output on a full redraw.
func (r *Runner) RenderFrame(ctx context.Context) (*Result, error) {
	frame, result, err := r.renderCanvas(ctx)
	if err != nil {
		return nil, err
	}

	diffStart := time.Now()
	d := r.diff.Diff(frame)
	result.Diff = &d
	result.Stats.DiffTime = time.Since(diffStart)
	observability.Diff().OnDiff(ctx, len(d.ChangedCells), d.TotalCells, d.FullRedraw)

	encodeStart := time.Now()
	result.Output = ansi.NewEncoder(r.opts.Render.ColorMode).Encode(frame)
	result.Stats.EncodeTime = time.Since(encodeStart)
	return result, nil
}

// ResetDiff drops the retained frame snapshot; the next RenderFrame
// reports a full redraw. Hosts call this after the terminal was resized
// or cleared under them.
func (r *Runner) ResetDiff() {
	r.diff.Reset()
}

// layerDef is a layer with its pieces resolved once per render.
type layerDef struct {
	layer plot.Layer
	aes   plot.Aes
	geom  geom.Geom
	stat  stat.Stat
}

// panelData is the transformed data of one panel: per-layer positioned
// points plus the post-statistic rows scales are built from.
type panelData struct {
	panel  facet.Panel
	points [][]position.Point // indexed like layers
	rows   []plot.Row         // union of post-stat layer rows
}

func (r *Runner) renderCanvas(ctx context.Context) (*canvas.Canvas, *Result, error) {
	spec := r.opts.Spec
	result := &Result{}
	result.Stats.RowsIn = len(spec.Rows)

	start := time.Now()

	layers, err := r.resolveLayers()
	if err != nil {
		return nil, nil, err
	}

	c := canvas.New(r.opts.Render.Width, r.opts.Render.Height)
	area := render.Titles(c, spec.Labels, spec.Theme)

	// The legend reflects the grouping of the first grouped layer and is
	// shared by every panel, so it resolves before faceting claims space.
	legendAes, colors := r.legendColors(layers)
	area = render.Legend(c, area, colors, legendAes.GroupField(), spec.Theme)

	layout, err := facet.Compute(spec.Rows, spec.Facet, area, r.opts.Labeller)
	if err != nil {
		return nil, nil, err
	}
	result.Stats.PanelCount = len(layout.Panels)
	observability.Render().OnRenderStart(ctx, len(spec.Rows), len(layout.Panels))

	transformStart := time.Now()
	panels, err := r.transformPanels(ctx, layout, layers)
	if err != nil {
		return nil, nil, err
	}
	result.Stats.TransformTime = time.Since(transformStart)

	layoutStart := time.Now()
	coordSpec, err := spec.Coord.Normalize()
	if err != nil {
		return nil, nil, err
	}
	globalSet := r.buildScales(panels, layers, nil)
	result.Stats.LayoutTime = time.Since(layoutStart)

	rasterStart := time.Now()
	for i := range panels {
		n, err := r.renderPanel(c, layout, &panels[i], layers, globalSet, colors, coordSpec)
		if err != nil {
			return nil, nil, err
		}
		result.Stats.PointCount += n
	}
	result.Stats.RasterTime = time.Since(rasterStart)

	r.logger.Debug("rendered plot",
		"rows", result.Stats.RowsIn,
		"points", result.Stats.PointCount,
		"panels", result.Stats.PanelCount,
		"duration", time.Since(start))
	observability.Render().OnRenderComplete(ctx, result.Stats.RowsIn, time.Since(start), nil)

	return c, result, nil
}

// resolveLayers constructs each layer's geometry and statistic once.
// Statistics that derive a new y column (count, bin) remap the layer's y
// channel onto that column.
func (r *Runner) resolveLayers() ([]layerDef, error) {
	spec := r.opts.Spec
	layers := make([]layerDef, 0, len(spec.Layers))
	for _, layer := range spec.Layers {
		g, err := geom.New(layer.Geom, layer.Params)
		if err != nil {
			return nil, err
		}
		s, err := stat.New(layer.Stat, layer.Params)
		if err != nil {
			return nil, err
		}

		aes := spec.Aes.Merge(layer.Aes)
		if y := stat.YField(layer.Stat, aes); y != aes.Field(plot.ChannelY) {
			aes = aes.Merge(plot.Aes{plot.ChannelY: y})
		}
		layers = append(layers, layerDef{layer: layer, aes: aes, geom: g, stat: s})
	}
	return layers, nil
}

// legendColors builds the shared color map from the first grouped layer.
func (r *Runner) legendColors(layers []layerDef) (plot.Aes, *scale.ColorMap) {
	for _, l := range layers {
		if group := l.aes.GroupField(); group != "" {
			var cats []string
			for _, row := range r.opts.Spec.Rows {
				cats = append(cats, row.StrOr(group, plot.UnknownCategory))
			}
			return l.aes, scale.NewColorMap(scale.NewDiscrete(cats, false), r.opts.Spec.Theme.PaletteHex())
		}
	}
	return plot.Aes{}, nil
}

// transformPanels runs statistic, reduction, and position adjustment for
// every panel and layer.
func (r *Runner) transformPanels(ctx context.Context, layout *facet.Layout, layers []layerDef) ([]panelData, error) {
	panels := make([]panelData, 0, len(layout.Panels))
	for _, panel := range layout.Panels {
		pd := panelData{panel: panel, points: make([][]position.Point, len(layers))}
		for i, l := range layers {
			rows, err := l.stat.Compute(panel.Rows, l.aes)
			if err != nil {
				return nil, err
			}
			rows, err = r.reduce(ctx, rows, l.aes)
			if err != nil {
				return nil, err
			}
			points, err := position.Adjust(rows, l.aes, l.layer.Position)
			if err != nil {
				return nil, err
			}
			pd.points[i] = points
			pd.rows = append(pd.rows, rows...)
		}
		panels = append(panels, pd)
	}
	return panels, nil
}

// reduce applies the configured reduction, or the level-of-detail ladder,
// to one layer's rows.
func (r *Runner) reduce(ctx context.Context, rows []plot.Row, aes plot.Aes) ([]plot.Row, error) {
	if r.opts.DisableReduction || len(rows) == 0 {
		return rows, nil
	}

	var opts sample.Options
	if r.opts.Reduce != nil {
		opts = *r.opts.Reduce
	} else {
		level := r.opts.Ladder.Select(len(rows))
		if level == nil || level.MaxPoints <= 0 {
			return rows, nil
		}
		opts = sample.Options{Method: level.Method, Target: level.MaxPoints}
	}
	if opts.XField == "" {
		opts.XField = aes.Field(plot.ChannelX)
	}
	if opts.YField == "" {
		opts.YField = aes.Field(plot.ChannelY)
	}
	if opts.Method == sample.MethodStratified && opts.StratifyField == "" {
		opts.StratifyField = aes.GroupField()
	}

	reduceStart := time.Now()
	out, err := sample.Reduce(rows, opts)
	if err != nil {
		return nil, err
	}
	if len(out) < len(rows) {
		observability.Reduce().OnReduce(ctx, opts.Method, len(rows), len(out), time.Since(reduceStart))
		r.logger.Debug("reduced dataset",
			"method", opts.Method, "in", len(rows), "out", len(out))
	}
	return out, nil
}

// buildScales resolves a scale set over the given panels (all of them for
// the shared set, a single one for free scales).
func (r *Runner) buildScales(panels []panelData, layers []layerDef, only *panelData) *scale.Set {
	var points []position.Point
	var rows []plot.Row
	include := panels
	if only != nil {
		include = []panelData{*only}
	}
	for _, pd := range include {
		for _, pts := range pd.points {
			points = append(points, pts...)
		}
		rows = append(rows, pd.rows...)
	}

	zero := false
	for _, l := range layers {
		if geom.NeedsZeroBaseline(effectiveGeom(l.layer)) {
			zero = true
		}
	}

	aes := plot.Aes{}
	if len(layers) > 0 {
		aes = layers[0].aes
	}
	return scale.Build(points, rows, aes, scale.BuildOptions{
		Specs:        r.opts.Spec.Scales,
		PaletteHex:   r.opts.Spec.Theme.PaletteHex(),
		IncludeZeroY: zero,
	})
}

func effectiveGeom(layer plot.Layer) string {
	if layer.Geom == "" {
		return geom.KindPoint
	}
	return layer.Geom
}

// renderPanel draws one panel: strip label, border, axes, and every
// layer's marks through the sub-cell surface. Returns the number of
// points handed to rasterizers.
func (r *Runner) renderPanel(c *canvas.Canvas, layout *facet.Layout, pd *panelData, layers []layerDef, globalSet *scale.Set, colors *scale.ColorMap, coordSpec plot.CoordSpec) (int, error) {
	spec := r.opts.Spec
	panel := pd.panel

	if panel.Title != "" {
		sx, sy := panel.StripOrigin()
		render.Strip(c, sx, sy, panel.Region.W, panel.Title, spec.Theme)
	}

	region := panel.Region
	if spec.Theme.Border {
		region = render.Border(c, region, spec.Theme)
	}

	set := r.panelScales(layout, pd, layers, globalSet)
	set.Color = colors

	inner := render.Axes(c, region, set, coordSpec.Kind == plot.CoordFlip, spec.Theme)
	if inner.Empty() {
		return 0, nil
	}

	surface := r.surface(c, inner)
	w, h := surface.Size()
	cs, err := coord.New(coordSpec, set, w, h)
	if err != nil {
		return 0, err
	}

	defaultColor := canvas.RGBA{R: 255, G: 255, B: 255, A: 255}
	if hex := spec.Theme.PaletteHex(); len(hex) > 0 {
		if col, ok := canvas.Hex(hex[0]); ok {
			defaultColor = col
		}
	}

	total := 0
	for i, l := range layers {
		points := pd.points[i]
		if layout.SharedX() && globalSet.XLevels != nil {
			points = alignCategories(points, l.aes.Field(plot.ChannelX), globalSet.XLevels)
		}
		gc := geom.Context{Coord: cs, Surface: surface, Default: defaultColor}
		if l.aes.GroupField() != "" {
			gc.Colors = set.Color
		}
		l.geom.Draw(points, gc)
		total += len(points)
	}
	return total, nil
}

// panelScales picks shared or per-panel scales per the facet scales mode.
func (r *Runner) panelScales(layout *facet.Layout, pd *panelData, layers []layerDef, globalSet *scale.Set) *scale.Set {
	if layout.SharedX() && layout.SharedY() {
		copied := *globalSet
		return &copied
	}
	panelSet := r.buildScales(nil, layers, pd)
	set := &scale.Set{
		X:       panelSet.X,
		Y:       panelSet.Y,
		XLevels: panelSet.XLevels,
		Size:    panelSet.Size,
	}
	if layout.SharedX() {
		set.X = globalSet.X
		set.XLevels = globalSet.XLevels
	}
	if layout.SharedY() {
		set.Y = globalSet.Y
	}
	return set
}

// alignCategories shifts a panel's first-seen categorical slot indices onto
// the shared level order, so the same category lands on the same slot in
// every panel under fixed scales. The local level order is rebuilt from
// the points' own rows, matching the assignment the position engine made.
func alignCategories(points []position.Point, xField string, shared *scale.Discrete) []position.Point {
	if xField == "" || shared == nil {
		return points
	}
	var cats []string
	for _, p := range points {
		cats = append(cats, p.Row.StrOr(xField, plot.UnknownCategory))
	}
	local := scale.NewDiscrete(cats, false)

	out := make([]position.Point, len(points))
	for i, p := range points {
		level := p.Row.StrOr(xField, plot.UnknownCategory)
		li, okLocal := local.Slot(level)
		gi, okShared := shared.Slot(level)
		if okLocal && okShared && li != gi {
			p.X += float64(gi - li)
		}
		out[i] = p
	}
	return out
}

// surface creates the sub-cell pixel surface for the resolved renderer.
func (r *Runner) surface(c *canvas.Canvas, inner canvas.Rect) canvas.PixelSurface {
	if r.opts.Render.ResolveRenderer() == plot.RendererBlock {
		return canvas.NewHalfBlock(c, inner)
	}
	return canvas.NewBraille(c, inner)
}
