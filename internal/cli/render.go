package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/termplot/pkg/history"
	"github.com/matzehuels/termplot/pkg/pipeline"
	"github.com/matzehuels/termplot/pkg/plot"
	"github.com/matzehuels/termplot/pkg/sample"
)

// renderOpts holds the command-line flags for the render command.
// Zero values mean "not set"; file-level [render] settings and pipeline
// defaults fill the gaps.
type renderOpts struct {
	output     string // output file path; empty writes to stdout
	width      int    // output width in cells
	height     int    // output height in cells
	renderer   string // sub-cell renderer: braille, block, sixel, auto
	colorMode  string // color mode: none, 16, 256, truecolor, auto
	maxPoints  int    // explicit reduction target; 0 uses the detail ladder
	noReduce   bool   // disable dataset reduction entirely
	save       bool   // save the rendered spec to the plot history
	historyDir string // history directory override
}

// newRenderCmd creates the render command for rasterizing a plot spec file.
// The file may be TOML or JSON; command-line flags override the file's
// optional [render] table.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a plot spec file to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.output != "" {
				f, err := os.Create(opts.output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return runRender(cmd.Context(), args[0], &opts, out)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the frame to a file instead of stdout")
	cmd.Flags().IntVarP(&opts.width, "width", "W", 0, "output width in cells")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 0, "output height in cells")
	cmd.Flags().StringVar(&opts.renderer, "renderer", "", "sub-cell renderer: braille (default), block, sixel, auto")
	cmd.Flags().StringVar(&opts.colorMode, "color", "", "color mode: auto (default), none, 16, 256, truecolor")
	cmd.Flags().IntVar(&opts.maxPoints, "max-points", 0, "reduce each layer to at most this many points")
	cmd.Flags().BoolVar(&opts.noReduce, "no-reduce", false, "disable automatic dataset reduction")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the plot to the history after rendering")
	cmd.Flags().StringVar(&opts.historyDir, "history-dir", "", "history directory (default ~/.config/termplot/history)")

	return cmd
}

// runRender loads the spec file, renders one frame, and writes it to out.
func runRender(ctx context.Context, path string, opts *renderOpts, out io.Writer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	file, err := loadSpecFile(path)
	if err != nil {
		return err
	}
	render := mergeRenderOptions(file.Render, opts)

	popts := pipeline.Options{
		Spec:             file.Spec,
		Render:           render,
		DisableReduction: opts.noReduce,
		Logger:           logger,
	}
	if opts.maxPoints > 0 {
		popts.Reduce = &sample.Options{Method: sample.MethodLTTB, Target: opts.maxPoints}
	}

	runner, err := pipeline.NewRunner(popts)
	if err != nil {
		return err
	}
	result, err := runner.Render(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, result.Output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d points across %d panel(s)",
		result.Stats.PointCount, result.Stats.PanelCount))

	if opts.save {
		store, err := history.NewStore(opts.historyDir)
		if err != nil {
			return err
		}
		entry := &history.Entry{Spec: file.Spec, Render: render}
		if err := store.Save(ctx, entry); err != nil {
			return err
		}
		logger.Info("Saved plot to history", "id", entry.ID)
	}
	return nil
}

// mergeRenderOptions layers command-line flags over the file's [render]
// table. Flags win when set; file values win over pipeline defaults.
func mergeRenderOptions(base plot.RenderOptions, opts *renderOpts) plot.RenderOptions {
	if opts.width > 0 {
		base.Width = opts.width
	}
	if opts.height > 0 {
		base.Height = opts.height
	}
	if opts.renderer != "" {
		base.Renderer = opts.renderer
	}
	if opts.colorMode != "" {
		base.ColorMode = opts.colorMode
	}
	return base
}
