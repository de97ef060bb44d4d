package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shears/internal/encode"
	"shears/internal/media/ffprobe"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	flags := &jobFlags{}

	cmd := &cobra.Command{
		Use:   "plan SOURCE",
		Short: "Print the ffmpeg command for a cut without executing it",
		Args:  cobra.ExactArgs(1),
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

			planner := encode.NewPlanner(cfg.Audio.Codec, cfg.Audio.Bitrate)
			planned, err := planner.Plan(job)
			if err != nil {
				return err
			}

			ffmpegBin, err := ctx.ffmpegPath()
			if err != nil {
				// The plan is still useful without a resolvable encoder.
				ffmpegBin = cfg.Tools.FFmpeg
			}
			fmt.Fprintln(cmd.OutOrStdout(), ffmpegBin+" "+strings.Join(planned, " "))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
