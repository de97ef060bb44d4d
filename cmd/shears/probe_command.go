package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shears/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe FILE",
		Short: "Inspect a video file's duration, bitrate, and frame rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ffprobeBin, err := ctx.ffprobePath()
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), ffprobeBin, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				_, err := out.Write(append(result.RawJSON(), '\n'))
				return err
			}

			info, err := result.MediaInfo()
			if err != nil {
				return err
			}

			view := newTableView("Field", "Value").rightAlign(1)
			view.addRow("Duration", formatSeconds(info.DurationSeconds))
			view.addRow("Resolution", fmt.Sprintf("%dx%d", info.Width, info.Height))
			view.addRow("Frame rate", strconv.FormatFloat(info.FrameRate, 'f', 3, 64)+" fps")
			view.addRow("Bitrate", strconv.FormatFloat(info.BitrateKbps, 'f', 0, 64)+" kbps")
			view.addRow("Video streams", strconv.Itoa(result.VideoStreamCount()))
			fmt.Fprintln(out, view.render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw ffprobe JSON")
	return cmd
}
