package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shears/internal/deps"
)

func newToolsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Show where the external toolchain resolves from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(cfg.Paths.ToolDir, []deps.Requirement{
				{Name: "FFmpeg", Command: cfg.Tools.FFmpeg, Description: "encoder and accelerator probe"},
				{Name: "FFprobe", Command: cfg.Tools.FFprobe, Description: "media prober"},
			})

			view := newTableView("Tool", "Status", "Location", "Role")
			for _, status := range statuses {
				state := "ok"
				detail := status.Command
				if !status.Available {
					state = "missing"
					detail = status.Detail
				}
				view.addRow(status.Name, state, detail, status.Description)
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.render())
			return nil
		},
	}
}
