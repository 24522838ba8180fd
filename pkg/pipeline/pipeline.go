// Package pipeline provides the core render pipeline for termplot.
//
// This package implements the complete stat → position → layout → render
// pipeline that can be used by the CLI, the live host, and library
// consumers. By centralizing this logic, we ensure consistent behavior
// across all entry points and avoid code duplication.
//
// # Architecture
//
// One render invocation is a pure function of (plot.Spec, RenderOptions)
// to a string:
//
//  1. Facet: partition rows into panels with strip labels and gutters
//  2. Transform: per panel and layer, run the statistic, reduce oversized
//     data to the render budget, and apply the position adjustment
//  3. Map: resolve scales and the coordinate system (shared or per panel)
//  4. Rasterize: geometry rasterizers draw through the sub-cell surface
//  5. Encode: quantize the canvas to an ANSI string
//
// The only state surviving across calls is the Runner's diff engine
// snapshot, used by RenderFrame for incremental updates. Two independent
// Runners never share state and may run concurrently.
//
// # Usage
//
// Create a Runner and render:
//
//	runner, err := pipeline.NewRunner(pipeline.Options{
//	    Spec:   spec,
//	    Render: plot.RenderOptions{Width: 100, Height: 30},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Render(ctx)
//	fmt.Print(result.Output)
//
// For streaming hosts, RenderFrame additionally diffs against the
// previous frame and carries a minimal ANSI patch in the result.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/termplot/pkg/diff"
	"github.com/matzehuels/termplot/pkg/errors"
	"github.com/matzehuels/termplot/pkg/facet"
	"github.com/matzehuels/termplot/pkg/geom"
	"github.com/matzehuels/termplot/pkg/plot"
	"github.com/matzehuels/termplot/pkg/sample"
	"github.com/matzehuels/termplot/pkg/stat"
)

// Options configures one Runner. Spec and Render mirror the public plot
// types; everything else tunes the pipeline itself.
type Options struct {
	// Spec is the declarative plot description.
	Spec plot.Spec

	// Render describes the output surface.
	Render plot.RenderOptions

	// Reduce, when non-nil, replaces the automatic level-of-detail ladder
	// with one fixed reduction applied to every layer.
	Reduce *sample.Options

	// Ladder is the level-of-detail ladder for automatic reduction.
	// Nil selects sample.DefaultLadder.
	Ladder sample.Ladder

	// DisableReduction turns off dataset reduction entirely.
	DisableReduction bool

	// Labeller renders facet strip labels. Nil selects the default.
	Labeller facet.Labeller

	// Diff configures the engine used by RenderFrame. The color mode is
	// always overridden to match Render.ColorMode.
	Diff diff.Options

	// Logger receives pipeline progress. Nil selects log.Default().
	Logger *log.Logger
}

// ValidateAndSetDefaults checks option consistency and fills defaults.
// Layer geometry, statistic, and position kinds are validated here so a
// misconfigured spec fails before any rendering work happens.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.Render.ValidateAndSetDefaults(); err != nil {
		return err
	}

	if len(o.Spec.Layers) == 0 {
		// A bare spec plots its rows as points.
		o.Spec.Layers = []plot.Layer{{Geom: geom.KindPoint}}
	}
	for i, layer := range o.Spec.Layers {
		if _, err := geom.New(layer.Geom, layer.Params); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "layer %d", i)
		}
		if _, err := stat.New(layer.Stat, layer.Params); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "layer %d", i)
		}
		normalized, err := plot.NormalizePosition(layer.Position)
		if err != nil {
			return errors.Wrap(errors.GetCode(err), err, "layer %d", i)
		}
		o.Spec.Layers[i].Position = normalized
	}

	if _, err := o.Spec.Coord.Normalize(); err != nil {
		return err
	}
	if o.Reduce != nil {
		if _, err := sample.Reduce(nil, *o.Reduce); err != nil {
			return err
		}
	}

	if o.Ladder == nil {
		o.Ladder = sample.DefaultLadder
	}
	if o.Labeller == nil {
		o.Labeller = facet.DefaultLabeller
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}

// Stats carries per-stage timings and counts of one render.
type Stats struct {
	TransformTime time.Duration // stats + reduction + position
	LayoutTime    time.Duration // faceting + scales + coordinates
	RasterTime    time.Duration // geometry drawing + furniture
	EncodeTime    time.Duration // canvas → ANSI
	DiffTime      time.Duration // frame comparison (RenderFrame only)

	RowsIn     int
	PointCount int // positioned points actually rasterized
	PanelCount int
}

// Result is the output of one render.
type Result struct {
	// Output is the full frame as an ANSI string of Height lines.
	Output string

	// Diff holds the frame comparison when rendered through RenderFrame.
	Diff *diff.Result

	Stats Stats
}
