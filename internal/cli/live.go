package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/termplot/pkg/pipeline"
)

// defaultLiveInterval is the spacing between live re-renders.
const defaultLiveInterval = 500 * time.Millisecond

// newLiveCmd creates the live command, a streaming host that re-renders a
// spec file on an interval. The file is re-read whenever its modification
// time changes, so edits appear on the next tick; unchanged files diff to
// zero changed cells.
func newLiveCmd() *cobra.Command {
	var (
		opts     renderOpts
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "live [file]",
		Short: "Watch a plot spec file and re-render it continuously",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newLiveModel(cmd.Context(), args[0], &opts, interval)
			program := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err := program.Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", defaultLiveInterval, "time between frames")
	cmd.Flags().IntVarP(&opts.width, "width", "W", 0, "output width in cells")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 0, "output height in cells")
	cmd.Flags().StringVar(&opts.renderer, "renderer", "", "sub-cell renderer: braille (default), block, sixel, auto")
	cmd.Flags().StringVar(&opts.colorMode, "color", "", "color mode: auto (default), none, 16, 256, truecolor")

	return cmd
}

// tickMsg drives one live frame.
type tickMsg time.Time

// liveModel is the bubbletea model for the live command. It owns a pipeline
// runner whose diff engine persists across ticks, so the status bar can
// report how much of the frame actually changed.
type liveModel struct {
	ctx      context.Context
	path     string
	opts     *renderOpts
	interval time.Duration
	logger   *log.Logger

	runner  *pipeline.Runner
	modTime time.Time

	frame   string
	frames  int
	changed int
	total   int
	full    bool
	err     error
}

func newLiveModel(ctx context.Context, path string, opts *renderOpts, interval time.Duration) *liveModel {
	return &liveModel{ctx: ctx, path: path, opts: opts, interval: interval, logger: loggerFromContext(ctx)}
}

func (m *liveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *liveModel) Init() tea.Cmd {
	m.step()
	return m.tick()
}

func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

// step renders the next frame. A changed file rebuilds the runner, which
// forces a full redraw; an unchanged file diffs against the previous frame.
func (m *liveModel) step() {
	info, err := os.Stat(m.path)
	if err != nil {
		m.err = err
		return
	}

	if m.runner == nil || !info.ModTime().Equal(m.modTime) {
		file, err := loadSpecFile(m.path)
		if err != nil {
			m.err = err
			return
		}
		runner, err := pipeline.NewRunner(pipeline.Options{
			Spec:   file.Spec,
			Render: mergeRenderOptions(file.Render, m.opts),
			Logger: m.logger,
		})
		if err != nil {
			m.err = err
			return
		}
		m.runner = runner
		m.modTime = info.ModTime()
	}

	result, err := m.runner.RenderFrame(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.frames++
	m.frame = result.Output
	if result.Diff != nil {
		m.changed = len(result.Diff.ChangedCells)
		m.total = result.Diff.TotalCells
		m.full = result.Diff.FullRedraw
	}
}

func (m *liveModel) View() string {
	if m.frame == "" && m.err != nil {
		return styleError.Render(fmt.Sprintf("live: %v", m.err)) + "\n" + m.statusLine()
	}
	return m.frame + "\n" + m.statusLine()
}

func (m *liveModel) statusLine() string {
	if m.err != nil {
		return styleError.Render(fmt.Sprintf("frame %d · %v · q to quit", m.frames, m.err))
	}
	delta := fmt.Sprintf("%d/%d cells changed", m.changed, m.total)
	if m.full {
		delta = "full redraw"
	}
	return styleDim.Render(fmt.Sprintf("frame %d · %s · q to quit", m.frames, delta))
}
