package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shears/internal/encode"
	"shears/internal/media/ffprobe"
)

func newEstimateCommand(ctx *commandContext) *cobra.Command {
	flags := &jobFlags{}

	cmd := &cobra.Command{
		Use:   "estimate SOURCE",
		Short: "Estimate the output size of a cut",
		Long: `Estimate predicts the output file size from the source bitrate, the cut
length, and the job settings. The figure is a heuristic, not a promise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ffprobeBin, err := ctx.ffprobePath()
			if err != nil {
				return err
			}

			info, err := ffprobe.Probe(cmd.Context(), ffprobeBin, args[0])
			if err != nil {
				return err
			}

			job, err := flags.job(args[0], info.DurationSeconds)
			if err != nil {
				return err
			}
			if err := job.Validate(info.DurationSeconds); err != nil {
				return err
			}

			size := encode.EstimateSize(job, info, estimateParams(cfg))
			fmt.Fprintf(cmd.OutOrStdout(), "Estimated output size: %s (%d bytes)\n", formatBytes(size), size)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
