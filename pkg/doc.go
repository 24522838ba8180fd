// Package pkg provides the core libraries for Termplot terminal plotting.
//
// # Overview
//
// Termplot renders declarative grammar-of-graphics plot specifications as
// sub-cell terminal graphics. The pkg directory is organized into four main
// areas:
//
//  1. Spec types - the declarative plot description ([plot])
//  2. Transform - statistics, reduction, and position adjustment
//  3. Layout - scales, coordinates, faceting
//  4. Raster - canvas, geometries, furniture, ANSI encoding, frame diffing
//
// # Architecture
//
// The typical data flow through Termplot:
//
//	plot.Spec + plot.RenderOptions
//	         ↓
//	    [facet] package (partition rows into panels)
//	         ↓
//	    [stat] / [sample] / [position] packages (transform rows to points)
//	         ↓
//	    [scale] / [coord] packages (map data space to pixel space)
//	         ↓
//	    [geom] / [canvas] / [render] packages (rasterize + furniture)
//	         ↓
//	    [ansi] / [diff] packages (encode, optionally diff frames)
//
// # Quick Start
//
// Render a line plot:
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/matzehuels/termplot/pkg/pipeline"
//	    "github.com/matzehuels/termplot/pkg/plot"
//	)
//
//	runner, err := pipeline.NewRunner(pipeline.Options{
//	    Spec: plot.Spec{
//	        Rows:   rows,
//	        Aes:    plot.Aes{plot.ChannelX: "time", plot.ChannelY: "value"},
//	        Layers: []plot.Layer{{Geom: "line"}},
//	    },
//	    Render: plot.RenderOptions{Width: 100, Height: 30},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Render(context.Background())
//	fmt.Print(result.Output)
//
// # Main Packages
//
// [plot] - Spec types shared by every stage: rows, aesthetic mappings,
// layers, scale/coord/facet specs, themes, and render options.
//
// [stat] - Statistical transforms (identity, count, bin, summary) applied
// per layer before positioning.
//
// [sample] - Dataset reduction methods (systematic, lttb, stratified,
// reservoir, binned) and the level-of-detail ladder that picks one
// automatically for oversized data.
//
// [position] - Position adjustments (identity, dodge, stack, fill, jitter)
// resolving overlapping geometry.
//
// [scale] - Continuous and discrete scales, transforms, breaks, and the
// color map for grouped layers.
//
// [coord] - Coordinate systems (cartesian, flip, fixed) composing normalized
// points with panel pixel rectangles and limit clipping.
//
// [facet] - Panel layouts (wrap, grid) with strip labels and shared or free
// scale modes.
//
// [canvas] - The cell grid plus braille and half-block sub-cell surfaces.
//
// [geom] - Geometry rasterizers (point, line, bar, area) drawing through a
// sub-cell surface.
//
// [render] - Plot furniture: titles, axes, ticks, grid, legends, facet
// strips, and borders.
//
// [ansi] - Canvas-to-ANSI encoding with color quantization per terminal
// profile.
//
// [diff] - Frame differ producing minimal cursor-move patches for streaming
// hosts.
//
// [pipeline] - Orchestration of the full spec-to-string render used by the
// CLI, the live host, and library consumers.
//
// [history] - File-based store for previously rendered plot specs, owned by
// the CLI layer.
//
// [errors] - Structured error codes shared across packages.
//
// [observability] - Optional hooks observing render, reduction, and diff
// activity.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/geom/...      # Specific package
//	go test -run Example        # Examples only
//
// [plot]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/plot
// [stat]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/stat
// [sample]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/sample
// [position]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/position
// [scale]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/scale
// [coord]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/coord
// [facet]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/facet
// [canvas]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/canvas
// [geom]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/geom
// [render]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/render
// [ansi]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/ansi
// [diff]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/diff
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/pipeline
// [history]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/history
// [errors]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/termplot/pkg/observability
package pkg
