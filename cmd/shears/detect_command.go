package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shears/internal/hwaccel"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Detect working hardware encoders",
		Long: `Detect runs a short synthetic encode per hardware vendor and reports
which encoders initialize on this machine, plus the recommended default.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ffmpegBin, err := ctx.ffmpegPath()
			if err != nil {
				return err
			}

			result := hwaccel.Detect(cmd.Context(), ffmpegBin, ctx.ensureLogger())
			out := cmd.OutOrStdout()
			for _, line := range result.ReportLines() {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
