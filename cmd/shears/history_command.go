package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"shears/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past transcode runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer func() { _ = store.Close() }()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			view := newTableView("When", "Source", "Mode", "Range", "Status", "Progress").rightAlign(5)
			for _, run := range runs {
				view.addRow(
					run.CreatedAt.Local().Format("2006-01-02 15:04"),
					filepath.Base(run.SourcePath),
					run.Mode,
					formatSeconds(run.StartSeconds)+" - "+formatSeconds(run.EndSeconds),
					string(run.Status),
					strconv.Itoa(run.Percent)+"%",
				)
			}
			fmt.Fprintln(out, view.render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}
