package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/termplot/pkg/history"
	"github.com/matzehuels/termplot/pkg/pipeline"
)

// newHistoryCmd creates the history command group for browsing saved plots.
func newHistoryCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse previously saved plots",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "history directory (default ~/.config/termplot/history)")

	cmd.AddCommand(newHistoryListCmd(&dir))
	cmd.AddCommand(newHistoryShowCmd(&dir))
	cmd.AddCommand(newHistoryDeleteCmd(&dir))

	return cmd
}

func newHistoryListCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved plots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewStore(*dir)
			if err != nil {
				return err
			}
			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render("No saved plots."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), historyTable(records))
			return nil
		},
	}
}

func newHistoryShowCmd(dir *string) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Re-render a saved plot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewStore(*dir)
			if err != nil {
				return err
			}
			return runHistoryShow(cmd.Context(), store, args[0], width, height, cmd)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "W", 0, "override the stored output width")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "override the stored output height")
	return cmd
}

func runHistoryShow(ctx context.Context, store *history.Store, id string, width, height int, cmd *cobra.Command) error {
	entry, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	render := entry.Render
	if width > 0 {
		render.Width = width
	}
	if height > 0 {
		render.Height = height
	}

	runner, err := pipeline.NewRunner(pipeline.Options{
		Spec:   entry.Spec,
		Render: render,
		Logger: loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	result, err := runner.Render(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	return nil
}

func newHistoryDeleteCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved plot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewStore(*dir)
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("Deleted plot", "id", args[0])
			return nil
		},
	}
}

// historyTable formats index records as a bordered table.
func historyTable(records []history.IndexRecord) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTitle.Padding(0, 1)
			}
			return styleValue.Padding(0, 1)
		}).
		Headers("ID", "CREATED", "TITLE", "ROWS")

	for _, rec := range records {
		title := rec.Title
		if title == "" {
			title = styleDim.Render("(untitled)")
		}
		t.Row(rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), title, strconv.Itoa(rec.RowCount))
	}
	return t.Render()
}
